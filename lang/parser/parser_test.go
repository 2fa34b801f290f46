package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vuurlang/vuur/lang/ast"
	"github.com/vuurlang/vuur/lang/parser"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := parser.Parse("test.vuur", src)
	require.NoError(t, err)
	require.NotNil(t, mod)
	return mod
}

func TestParseVarDef(t *testing.T) {
	mod := mustParse(t, "var x = 1")
	require.Len(t, mod.Stmts, 1)
	v, ok := mod.Stmts[0].(*ast.VarDef)
	require.True(t, ok)
	require.Equal(t, "x", v.Name.Name)
	lit, ok := v.Value.(*ast.NumLit)
	require.True(t, ok)
	require.Equal(t, "1", lit.Raw)
}

func TestParseBinaryPrecedence(t *testing.T) {
	mod := mustParse(t, "var x = 1 + 2 * 3")
	v := mod.Stmts[0].(*ast.VarDef)
	bin, ok := v.Value.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op.String()[:1]) // sanity, cheap
	rhs, ok := bin.R.(*ast.Binary)
	require.True(t, ok, "2*3 should bind tighter than +, making it the right operand")
	lhs, ok := bin.L.(*ast.NumLit)
	require.True(t, ok)
	require.Equal(t, "1", lhs.Raw)
	require.Equal(t, "2", rhs.L.(*ast.NumLit).Raw)
	require.Equal(t, "3", rhs.R.(*ast.NumLit).Raw)
}

func TestParseLeftAssociativity(t *testing.T) {
	mod := mustParse(t, "var x = 1 - 2 - 3")
	v := mod.Stmts[0].(*ast.VarDef)
	outer := v.Value.(*ast.Binary)
	inner, ok := outer.L.(*ast.Binary)
	require.True(t, ok, "1-2-3 should parse as (1-2)-3")
	require.Equal(t, "1", inner.L.(*ast.NumLit).Raw)
	require.Equal(t, "2", inner.R.(*ast.NumLit).Raw)
	require.Equal(t, "3", outer.R.(*ast.NumLit).Raw)
}

func TestParseUnaryBindsTighterThanBinary(t *testing.T) {
	mod := mustParse(t, "var x = -1 + 2")
	v := mod.Stmts[0].(*ast.VarDef)
	bin := v.Value.(*ast.Binary)
	_, ok := bin.L.(*ast.Unary)
	require.True(t, ok)
}

func TestParseGroup(t *testing.T) {
	mod := mustParse(t, "var x = (1 + 2) * 3")
	v := mod.Stmts[0].(*ast.VarDef)
	bin := v.Value.(*ast.Binary)
	_, ok := bin.L.(*ast.Group)
	require.True(t, ok)
}

func TestParseAssignChainIsRightAssociative(t *testing.T) {
	mod := mustParse(t, "func f() {\n a = b = 1\n}")
	fn := mod.Stmts[0].(*ast.FuncDef)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	outer, ok := stmt.X.(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "a", outer.Name.Name)
	inner, ok := outer.Value.(*ast.Assign)
	require.True(t, ok, "a = b = 1 should nest as a = (b = 1)")
	require.Equal(t, "b", inner.Name.Name)
}

func TestParseMemberAccessChain(t *testing.T) {
	mod := mustParse(t, "var x = a.b.c")
	v := mod.Stmts[0].(*ast.VarDef)
	outer, ok := v.Value.(*ast.MemberAccess)
	require.True(t, ok)
	require.Equal(t, "c", outer.Name.Name)
	inner, ok := outer.Path.(*ast.MemberAccess)
	require.True(t, ok)
	require.Equal(t, "b", inner.Name.Name)
}

func TestParseMemberAssign(t *testing.T) {
	mod := mustParse(t, "func f() {\n a.b = 1\n}")
	fn := mod.Stmts[0].(*ast.FuncDef)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	ma, ok := stmt.X.(*ast.MemberAssign)
	require.True(t, ok)
	require.Equal(t, "b", ma.Name.Name)
}

func TestParseCallWithMixedArgs(t *testing.T) {
	mod := mustParse(t, "var x = f(1, n: 2, { 3 })")
	v := mod.Stmts[0].(*ast.VarDef)
	call := v.Value.(*ast.Call)
	require.Len(t, call.Args, 3)
	_, ok := call.Args[0].(*ast.PositionalArg)
	require.True(t, ok)
	named, ok := call.Args[1].(*ast.NamedArg)
	require.True(t, ok)
	require.Equal(t, "n", named.Name.Name)
	_, ok = call.Args[2].(*ast.BlockArg)
	require.True(t, ok)
}

func TestParseFuncDefWithArgsAndReturnType(t *testing.T) {
	mod := mustParse(t, "func add(x: int, y: &int) -> int {\n return x + y\n}")
	fn := mod.Stmts[0].(*ast.FuncDef)
	require.Equal(t, "add", fn.Name.Name)
	require.Len(t, fn.Args, 2)
	require.False(t, fn.Args[0].IsByRef())
	require.True(t, fn.Args[1].IsByRef())
	require.Equal(t, "int", fn.ReturnType.Name)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.NotNil(t, ret.Value)
}

func TestParseBareReturn(t *testing.T) {
	mod := mustParse(t, "func f() {\n return\n}")
	fn := mod.Stmts[0].(*ast.FuncDef)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.Nil(t, ret.Value)
}

func TestParseIfElseIf(t *testing.T) {
	mod := mustParse(t, "func f() {\n if x { return 1 } else if y { return 2 } else { return 3 }\n}")
	fn := mod.Stmts[0].(*ast.FuncDef)
	ifStmt := fn.Body.Stmts[0].(*ast.IfStmt)
	require.NotNil(t, ifStmt.ElseIf)
	require.Nil(t, ifStmt.Else)
	require.NotNil(t, ifStmt.ElseIf.Else)
	require.Nil(t, ifStmt.ElseIf.ElseIf)
}

func TestParseTypeDef(t *testing.T) {
	mod := mustParse(t, "type Point struct {\n x: int\n y: int\n}")
	td := mod.Stmts[0].(*ast.TypeDef)
	require.Equal(t, "Point", td.Name.Name)
	require.Len(t, td.Fields, 2)
}

func TestParseStopsAtFirstSyntaxError(t *testing.T) {
	_, err := parser.Parse("test.vuur", "var x = \nvar y = )")
	require.Error(t, err)
	synErr, ok := err.(*parser.SyntaxError)
	require.True(t, ok)
	require.NotZero(t, synErr.Span)
}

func TestParseUnexpectedTokenIsNotRecovered(t *testing.T) {
	// a missing ')' is a hard stop, not a BadExpr substitution.
	_, err := parser.Parse("test.vuur", "var x = f(1, 2")
	require.Error(t, err)
}
