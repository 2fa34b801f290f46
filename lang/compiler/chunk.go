package compiler

import (
	"encoding/binary"
	"fmt"
)

// FuncID identifies a function in a Chunk's function table. Index 0 is a
// reserved stub ("no function", per spec §3), mirroring the original
// source's NonZeroU32-style id rather than a nullable reference; this is
// the Go-idiomatic shape named in the supplemented-features section: a
// named uint32 type rather than a bare int, so a zero FuncID reads as "no
// function" at call sites instead of silently indexing function 0.
type FuncID uint32

// noFunc is the reserved id at index 0.
const noFunc FuncID = 0

// Function is one entry of a Chunk's function table: spec §3's FuncDef'
// record (bytecode_start, bytecode_end, arity, local_count), plus the
// source name for diagnostics and disassembly.
type Function struct {
	Name          string
	BytecodeStart uint32
	BytecodeEnd   uint32
	Arity         uint32
	LocalCount    uint32
}

// Header is the 16-byte chunk file header from spec §6.
type Header struct {
	Version    uint8
	Endianness uint8 // 1 = LE, 2 = BE
	WordSize   uint8 // 4 or 8
}

const (
	headerStartByte = 0x1B
	headerMagic     = "vuur\x00"
	headerSize      = 16
	codeOffset      = headerSize

	EndiannessLE = 1
	EndiannessBE = 2
)

// String renders the header the way a disassembler or debug dump would,
// per the supplemented "(*Header).String() chunk-header display" feature.
func (h Header) String() string {
	endian := "LE"
	if h.Endianness == EndiannessBE {
		endian = "BE"
	}
	return fmt.Sprintf("vuur chunk v%d %s word=%d", h.Version, endian, h.WordSize)
}

// Encode writes the 16-byte header per spec §6's field layout.
func (h Header) Encode() [headerSize]byte {
	var b [headerSize]byte
	b[0] = headerStartByte
	copy(b[1:6], headerMagic)
	b[6] = h.Version
	b[7] = h.Endianness
	b[8] = h.WordSize
	return b
}

// DecodeHeader parses and validates a 16-byte chunk header; any deviation
// from the expected start byte/magic is a decode error, per spec §6.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < headerSize {
		return Header{}, fmt.Errorf("chunk header: need %d bytes, got %d", headerSize, len(b))
	}
	if b[0] != headerStartByte {
		return Header{}, fmt.Errorf("chunk header: bad start byte 0x%02X", b[0])
	}
	if string(b[1:6]) != headerMagic {
		return Header{}, fmt.Errorf("chunk header: bad magic %q", b[1:6])
	}
	return Header{Version: b[6], Endianness: b[7], WordSize: b[8]}, nil
}

// Chunk is the immutable compiled image described in spec §3: an
// instruction vector, a 1-indexed function table (index 0 reserved), an
// entrypoint, a header, and a table of 32-bit constants read by PUSH_CONST.
type Chunk struct {
	Header     Header
	Code       []Instr
	Functions  []Function // Functions[0] is the reserved stub
	Entrypoint FuncID
	Constants  []uint32
}

// Function looks up a function by id, returning false for the reserved
// stub id 0 or an out-of-range id.
func (c *Chunk) Function(id FuncID) (Function, bool) {
	if id == noFunc || int(id) >= len(c.Functions) {
		return Function{}, false
	}
	return c.Functions[id], true
}

// Encode serializes the chunk to the header + little-endian instruction
// stream format from spec §6. The function table and constants are Vuur's
// own chunk-level bookkeeping, not part of spec's minimal file format, so
// they are not serialized here; only the header and code vector are.
func (c *Chunk) Encode() []byte {
	hdr := c.Header.Encode()
	out := make([]byte, headerSize+4*len(c.Code))
	copy(out, hdr[:])
	for i, instr := range c.Code {
		binary.LittleEndian.PutUint32(out[codeOffset+4*i:], uint32(instr))
	}
	return out
}

// DecodeChunk parses a chunk's header and code vector, round-tripping
// Encode. The function table/entrypoint/constants are not recoverable from
// the wire format alone (see Encode) and are left zero-valued; callers that
// need them keep the in-memory *Chunk from Compile instead of round-tripping
// through Encode/DecodeChunk.
func DecodeChunk(b []byte) (*Chunk, error) {
	hdr, err := DecodeHeader(b)
	if err != nil {
		return nil, err
	}
	rest := b[codeOffset:]
	if len(rest)%4 != 0 {
		return nil, fmt.Errorf("chunk code: %d trailing bytes is not a multiple of 4", len(rest)%4)
	}
	code := make([]Instr, len(rest)/4)
	for i := range code {
		code[i] = Instr(binary.LittleEndian.Uint32(rest[4*i:]))
	}
	return &Chunk{Header: hdr, Code: code}, nil
}
