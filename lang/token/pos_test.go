package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpanFragmentAndEnd(t *testing.T) {
	src := "func Main"
	sp := MakeSpan(0, 4)
	require.Equal(t, "func", sp.Fragment(src))
	require.Equal(t, uint32(4), sp.End())
}

func TestInside(t *testing.T) {
	cases := []struct {
		name     string
		ref, sub Span
		want     bool
	}{
		{"equal", MakeSpan(0, 4), MakeSpan(0, 4), true},
		{"nested", MakeSpan(0, 10), MakeSpan(2, 4), true},
		{"starts before", MakeSpan(2, 10), MakeSpan(0, 4), false},
		{"ends after", MakeSpan(0, 4), MakeSpan(2, 10), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Inside(c.ref, c.sub))
		})
	}
}

func TestLineCol(t *testing.T) {
	src := "aa\nbbb\nc"
	cases := []struct {
		off        uint32
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{6, 2, 4},
		{7, 3, 1},
	}
	for _, c := range cases {
		line, col := LineCol(src, c.off)
		require.Equal(t, c.line, line, "line at offset %d", c.off)
		require.Equal(t, c.col, col, "col at offset %d", c.off)
	}
}

func TestLineColAgreesWithNaiveScan(t *testing.T) {
	src := "func Main() -> int {\n  return 1 + 2\n}\n"
	for off := 0; off < len(src); off++ {
		line, col := LineCol(src, uint32(off))
		wantLine := strings.Count(src[:off], "\n") + 1
		require.Equal(t, wantLine, line, "offset %d", off)
		_ = col
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Filename: "a.vuur", Line: 3, Col: 5}
	require.Equal(t, "a.vuur:3:5", p.String())
	p.Filename = ""
	require.Equal(t, "3:5", p.String())
}
