// Package compiler implements component C5: the bytecode emitter. It walks
// an ast.Module, allocates locals and function ids, and packs each
// expression/statement into the fixed 32-bit instruction words consumed by
// the fiber VM (lang/machine), per spec §4.5.
package compiler

import "fmt"

// Opcode is the low byte of a packed 32-bit instruction word.
//
// Unlike the teacher's variable-length, CFG-linearized opcode set (DUP,
// EXCH, iterator/defer/catch opcodes, a varint-encoded argument), Vuur's
// opcode catalogue is the small, fixed hex table from spec §4.5: every
// instruction is exactly one 32-bit word, low byte opcode, upper 24 bits an
// unsigned K or signed two's-complement A. The table below reproduces that
// catalogue verbatim, including its gaps (e.g. no SUB/LT opcodes are
// skipped deliberately, matching the hex values the spec assigns).
type Opcode uint8

const (
	NOOP Opcode = 0x00
	POP  Opcode = 0x01

	ADD_I32 Opcode = 0x0A
	SUB_I32 Opcode = 0x0B
	MUL_I32 Opcode = 0x0C
	DIV_I32 Opcode = 0x0D
	NEG_I32 Opcode = 0x0E
	EQ_I32  Opcode = 0x0F

	PUSH_CONST     Opcode = 0x10
	PUSH_CONST_IMM Opcode = 0x11
	PUSH_LOCAL_I32 Opcode = 0x12

	FUNC Opcode = 0x20

	SKIP_1      Opcode = 0x30
	SKIP_EQ_I32 Opcode = 0x31

	CALL   Opcode = 0x50
	RETURN Opcode = 0x52
	JUMP   Opcode = 0x53

	ABORT Opcode = 0xFF
)

var opcodeNames = map[Opcode]string{
	NOOP:           "noop",
	POP:            "pop",
	ADD_I32:        "add_i32",
	SUB_I32:        "sub_i32",
	MUL_I32:        "mul_i32",
	DIV_I32:        "div_i32",
	NEG_I32:        "neg_i32",
	EQ_I32:         "eq_i32",
	PUSH_CONST:     "push_const",
	PUSH_CONST_IMM: "push_const_imm",
	PUSH_LOCAL_I32: "push_local_i32",
	FUNC:           "func",
	SKIP_1:         "skip_1",
	SKIP_EQ_I32:    "skip_eq_i32",
	CALL:           "call",
	RETURN:         "return",
	JUMP:           "jump",
	ABORT:          "abort",
}

// variableStack marks an opcode whose stack effect depends on its operand
// (CALL pops `arity`, RETURN pops down to one value) rather than being
// fixed, mirroring the teacher's own variableStackEffect sentinel.
const variableStack = 0x7f

// stackEffect records the fixed operand-stack delta of each opcode, per the
// "Stack effect" column of spec §4.5's catalogue. CALL and RETURN are
// variable and carry the sentinel above instead.
var stackEffect = map[Opcode]int8{
	NOOP:           0,
	POP:            -1,
	ADD_I32:        -1,
	SUB_I32:        -1,
	MUL_I32:        -1,
	DIV_I32:        -1,
	NEG_I32:        0,
	EQ_I32:         -1,
	PUSH_CONST:     +1,
	PUSH_CONST_IMM: +1,
	PUSH_LOCAL_I32: +1,
	FUNC:           0,
	SKIP_1:         -1,
	SKIP_EQ_I32:    -2,
	CALL:           variableStack,
	RETURN:         variableStack,
	JUMP:           0,
	ABORT:          0,
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("illegal op (0x%02X)", uint8(op))
}

// StackEffect reports the opcode's fixed operand-stack delta, or ok=false
// for CALL/RETURN whose effect depends on their operand.
func (op Opcode) StackEffect() (delta int8, ok bool) {
	e, found := stackEffect[op]
	if !found || e == variableStack {
		return 0, false
	}
	return e, true
}
