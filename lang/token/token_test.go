package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		require.NotEmpty(t, tok.String(), "token %d missing string form", tok)
	}
}

func TestLookupKw(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		want := tok >= kwStart && tok <= kwEnd
		got := LookupKw(tok.String())
		if want {
			require.Equal(t, tok, got)
		} else {
			require.Equal(t, IDENT, got)
		}
	}
}

func TestIsBinop(t *testing.T) {
	binops := []Token{PLUS, MINUS, STAR, SLASH, PERCENT, EQEQ, BANGEQ, LT, GT, LE, GE}
	for _, tok := range binops {
		require.True(t, tok.IsBinop(), tok.String())
	}
	require.False(t, EQ.IsBinop())
	require.False(t, ARROW.IsBinop())
}

func TestIsUnop(t *testing.T) {
	require.True(t, MINUS.IsUnop())
	require.True(t, BANG.IsUnop())
	require.True(t, AMPERSAND.IsUnop())
	require.False(t, PLUS.IsUnop())
}

func TestGoString(t *testing.T) {
	require.Equal(t, "')'", RPAREN.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
}

func TestLiteral(t *testing.T) {
	val := Value{Raw: "x", Str: "hi"}
	require.Equal(t, "x", IDENT.Literal(val))
	require.Equal(t, `"hi"`, STRING.Literal(val))
	require.Equal(t, "", ILLEGAL.Literal(val))
}
