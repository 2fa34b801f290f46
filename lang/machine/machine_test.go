package machine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vuurlang/vuur/lang/compiler"
	"github.com/vuurlang/vuur/lang/machine"
	"github.com/vuurlang/vuur/lang/parser"
)

// run parses, compiles and executes src, returning the fiber's take_return
// result as an int32, matching spec §8's "Arithmetic scenarios" table.
func run(t *testing.T, src string) (int32, error) {
	t.Helper()
	mod, err := parser.Parse("test.vuur", src)
	require.NoError(t, err)
	chunk, err := compiler.Compile(mod)
	require.NoError(t, err)
	th := &machine.Thread{}
	fiber, runErr := th.Run(chunk)
	if runErr != nil {
		return 0, runErr
	}
	ret, err := fiber.TakeReturn()
	if err != nil {
		return 0, err
	}
	return int32(ret), nil
}

func TestArithmeticScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int32
	}{
		{"precedence", "func Main() -> int { return 1 + 2 * 3 }", 7},
		{"grouping", "func Main() -> int { return (1 + 2) * 3 }", 9},
		{"negate-then-add", "func Main() -> int { return -4 + 6 }", 2},
		{"add-negated-group", "func Main() -> int { return 6 + (-4) }", 2},
		{"mul-div", "func Main() -> int { return 3 * 8 / 4 }", 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := run(t, c.src)
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestDivideByZeroFaultsTheFiber(t *testing.T) {
	_, err := run(t, "func Main() -> int { return 42 / 0 }")
	require.ErrorIs(t, err, machine.ErrDivideByZero)
}

func TestSubtractionOperandOrderIsLhsMinusRhs(t *testing.T) {
	got, err := run(t, "func Main() -> int { return 10 - 3 }")
	require.NoError(t, err)
	require.Equal(t, int32(7), got)
}

func TestWrappingOverflowDoesNotTrap(t *testing.T) {
	// 2147483647 + 1 wraps to math.MinInt32 rather than faulting.
	got, err := run(t, "func Main() -> int { return 2147483647 + 1 }")
	require.NoError(t, err)
	require.Equal(t, int32(-2147483648), got)
}

func TestEqualityPushesOneOrZero(t *testing.T) {
	got, err := run(t, "func Main() -> int { return 3 == 3 }")
	require.NoError(t, err)
	require.Equal(t, int32(1), got)

	got, err = run(t, "func Main() -> int { return 3 == 4 }")
	require.NoError(t, err)
	require.Equal(t, int32(0), got)
}

func TestVarDefAndLocalRead(t *testing.T) {
	got, err := run(t, "func Main() -> int {\n var x = 10\n return x + 1\n}")
	require.NoError(t, err)
	require.Equal(t, int32(11), got)
}

func TestFunctionCallWithArguments(t *testing.T) {
	got, err := run(t, `
func Main() -> int { return add(2, 3) }
func add(x: int, y: int) -> int { return x + y }
`)
	require.NoError(t, err)
	require.Equal(t, int32(5), got)
}

func TestNestedCalls(t *testing.T) {
	got, err := run(t, `
func Main() -> int { return double(triple(2)) }
func double(x: int) -> int { return x + x }
func triple(x: int) -> int { return x + x + x }
`)
	require.NoError(t, err)
	require.Equal(t, int32(12), got)
}

func TestIfTrueBranchDoesNotRunElse(t *testing.T) {
	got, err := run(t, `
func Main() -> int {
	if 1 == 1 {
		return 10
	} else {
		return 20
	}
}
`)
	require.NoError(t, err)
	require.Equal(t, int32(10), got)
}

func TestIfFalseBranchRunsElse(t *testing.T) {
	got, err := run(t, `
func Main() -> int {
	if 1 == 2 {
		return 10
	} else {
		return 20
	}
}
`)
	require.NoError(t, err)
	require.Equal(t, int32(20), got)
}

func TestIfElseIfChain(t *testing.T) {
	got, err := run(t, `
func Main() -> int {
	var x = 2
	if x == 1 {
		return 10
	} else if x == 2 {
		return 20
	} else {
		return 30
	}
}
`)
	require.NoError(t, err)
	require.Equal(t, int32(20), got)
}

func TestTakeReturnBeforeDoneIsFiberNotDone(t *testing.T) {
	mod, err := parser.Parse("test.vuur", "func Main() -> int { return 1 }")
	require.NoError(t, err)
	chunk, err := compiler.Compile(mod)
	require.NoError(t, err)
	fiber := machine.NewFiber(chunk)
	_, err = fiber.TakeReturn()
	require.ErrorIs(t, err, machine.ErrFiberNotDone)
}

func TestResumingADoneFiberIsAnError(t *testing.T) {
	mod, err := parser.Parse("test.vuur", "func Main() -> int { return 1 }")
	require.NoError(t, err)
	chunk, err := compiler.Compile(mod)
	require.NoError(t, err)
	th := &machine.Thread{}
	fiber, err := th.Run(chunk)
	require.NoError(t, err)
	require.True(t, fiber.Done())
	err = th.Resume(fiber)
	require.ErrorIs(t, err, machine.ErrFiberStillRunning)
}

func TestMaxStepsHaltsARunawayProgram(t *testing.T) {
	mod, err := parser.Parse("test.vuur", `
func Main() -> int { return loop(0) }
func loop(n: int) -> int { return loop(n + 1) }
`)
	require.NoError(t, err)
	chunk, err := compiler.Compile(mod)
	require.NoError(t, err)
	th := &machine.Thread{MaxSteps: 100}
	_, err = th.Run(chunk)
	require.Error(t, err)
}
