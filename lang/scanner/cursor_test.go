package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorBumpAdvances(t *testing.T) {
	c := NewCursor("ab")
	_, r, ok := c.Bump()
	require.True(t, ok)
	require.Equal(t, 'a', r)
	require.Equal(t, 'a', c.Current())
	require.Equal(t, 'b', c.Peek())
	require.Equal(t, uint32(0), c.Offset())
	require.Equal(t, uint32(1), c.PeekOffset())

	_, r, ok = c.Bump()
	require.True(t, ok)
	require.Equal(t, 'b', r)
	require.Equal(t, 'b', c.Current())
	require.Equal(t, sentinelChar, c.Peek())
	require.False(t, c.AtEnd())

	_, r, ok = c.Bump()
	require.False(t, ok)
	require.Equal(t, sentinelChar, r)
	require.True(t, c.AtEnd())
}

func TestCursorEmptySource(t *testing.T) {
	c := NewCursor("")
	_, _, ok := c.Bump()
	require.False(t, ok)
	require.True(t, c.AtEnd())
}

func TestCursorPeek2(t *testing.T) {
	c := NewCursor("xyz")
	c.Bump()
	require.Equal(t, 'y', c.Peek())
	require.Equal(t, 'z', c.Peek2())
}

func TestCursorNulIsNotEnd(t *testing.T) {
	src := "a\x00b"
	c := NewCursor(src)
	c.Bump()
	c.Bump()
	require.Equal(t, sentinelChar, c.Current())
	require.False(t, c.AtEnd(), "a NUL byte in source must not be mistaken for end of input")
	c.Bump()
	require.Equal(t, 'b', c.Current())
}

func TestCursorMultiByteRunes(t *testing.T) {
	c := NewCursor("aé€")
	_, r, _ := c.Bump()
	require.Equal(t, 'a', r)
	require.Equal(t, uint32(1), c.PeekOffset())

	_, r, _ = c.Bump()
	require.Equal(t, 'é', r)

	_, r, _ = c.Bump()
	require.Equal(t, '€', r)

	_, _, ok := c.Bump()
	require.False(t, ok)
}
