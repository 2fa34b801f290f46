package compiler

import "fmt"

// Instr is one packed 32-bit instruction word: low byte opcode, upper 24
// bits argument (K unsigned or A signed two's-complement), per spec §4.5.
// The teacher's instruction stream is a []byte of varint-encoded opcodes
// with 4-byte-padded jump targets; Vuur has no varint at all, every
// instruction is this one fixed-width type.
type Instr uint32

// maxArg24/minArg24 bound the signed two's-complement argument A: |A| <=
// 2^23 - 1, per spec §4.5.
const (
	maxArg24 = 1<<23 - 1
	minArg24 = -(1 << 23)
	mask24   = 1<<24 - 1
)

// EncodeK packs op with an unsigned 24-bit argument.
func EncodeK(op Opcode, k uint32) Instr {
	return Instr(uint32(op) | (k&mask24)<<8)
}

// EncodeA packs op with a signed 24-bit argument; a does not fit a caller
// must check with FitsArg24 first, since this function truncates silently.
func EncodeA(op Opcode, a int32) Instr {
	return EncodeK(op, uint32(a)&mask24)
}

// FitsArg24 reports whether a fits the signed 24-bit argument field.
func FitsArg24(a int64) bool {
	return a >= minArg24 && a <= maxArg24
}

// Op returns the instruction's opcode (the low byte).
func (i Instr) Op() Opcode { return Opcode(i & 0xFF) }

// K returns the instruction's argument as an unsigned 24-bit value.
func (i Instr) K() uint32 { return uint32(i) >> 8 }

// A returns the instruction's argument sign-extended from 24 to 32 bits.
func (i Instr) A() int32 {
	k := i.K()
	if k&(1<<23) != 0 {
		k |= 0xFF000000
	}
	return int32(k)
}

func (i Instr) String() string {
	op := i.Op()
	switch op {
	case NOOP, POP, ADD_I32, SUB_I32, MUL_I32, DIV_I32, NEG_I32, EQ_I32, ABORT:
		return op.String()
	default:
		return fmt.Sprintf("%s %d", op, i.K())
	}
}
