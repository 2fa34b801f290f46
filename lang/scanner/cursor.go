package scanner

import "unicode/utf8"

// sentinelChar is the character reported by Current/Peek/Peek2 when no
// further rune is available. Per spec §4.1, NUL is a valid character in
// well-formed source, so callers must use AtEnd to distinguish a true NUL
// byte from the end of input.
const sentinelChar = rune(0)

// Cursor walks a UTF-8 source string one rune at a time with one- and
// two-rune lookahead, tracking byte offsets. It implements component C1 of
// the core: a source cursor with span tracking.
//
// Invariant: Offset() <= PeekOffset() <= len(source).
type Cursor struct {
	src     string
	off     int  // byte offset of Current()
	nextOff int  // byte offset of Peek()
	cur     rune // the current rune, or sentinelChar before the first Bump
	started bool // whether Bump has been called at least once
}

// NewCursor returns a Cursor positioned just before the first rune of src.
// Call Bump once to prime it onto the first rune, matching the construction
// invariant of §4.2 ("primed at construction by one bump()").
func NewCursor(src string) *Cursor {
	return &Cursor{src: src, cur: sentinelChar}
}

// Current returns the last rune yielded by Bump, or the sentinel rune if
// Bump has not yet been called.
func (c *Cursor) Current() rune { return c.cur }

// AtEnd reports whether the cursor has consumed the entire source. It is
// the only reliable way to distinguish "no more input" from a literal NUL
// byte in the source, since both report sentinelChar from Current.
func (c *Cursor) AtEnd() bool {
	return c.started && c.off >= len(c.src)
}

// Offset returns the byte offset of the current rune.
func (c *Cursor) Offset() uint32 { return uint32(c.off) }

// Peek returns the rune following Current without advancing, or the
// sentinel rune at end of input.
func (c *Cursor) Peek() rune {
	r, _ := c.peekAt(c.nextOff)
	return r
}

// Peek2 returns the rune two positions ahead of Current without advancing.
func (c *Cursor) Peek2() rune {
	_, w := c.peekAt(c.nextOff)
	if w == 0 {
		return sentinelChar
	}
	r, _ := c.peekAt(c.nextOff + w)
	return r
}

// PeekOffset returns the byte offset of Peek(), or the source length if
// Peek() would be past the end.
func (c *Cursor) PeekOffset() uint32 { return uint32(c.nextOff) }

// Bump advances the cursor to the next rune and returns its byte offset and
// value. It returns ok=false once the source is exhausted.
func (c *Cursor) Bump() (offset uint32, r rune, ok bool) {
	if !c.started {
		c.started = true
		if len(c.src) == 0 {
			c.off, c.nextOff = 0, 0
			c.cur = sentinelChar
			return 0, sentinelChar, false
		}
		r, w := utf8.DecodeRuneInString(c.src)
		c.off = 0
		c.nextOff = w
		c.cur = r
		return 0, r, true
	}

	if c.off >= len(c.src) {
		c.cur = sentinelChar
		return c.Offset(), sentinelChar, false
	}

	r, w := c.peekAt(c.nextOff)
	if w == 0 {
		c.off = len(c.src)
		c.nextOff = len(c.src)
		c.cur = sentinelChar
		return c.Offset(), sentinelChar, false
	}
	c.off = c.nextOff
	c.cur = r
	c.nextOff = c.off + w
	return c.Offset(), r, true
}

// peekAt decodes the rune starting at byte offset off, returning its width
// in bytes (0 at end of input).
func (c *Cursor) peekAt(off int) (rune, int) {
	if off >= len(c.src) {
		return sentinelChar, 0
	}
	r, w := utf8.DecodeRuneInString(c.src[off:])
	return r, w
}
