package scanner

import "github.com/vuurlang/vuur/lang/token"

// Rest returns the unconsumed remainder of the source, starting at the
// cursor's current offset. Supplemented from original_source/: useful for
// diagnostics and tooling that want to show "what's left" without
// re-lexing, and for a REPL-style host reading one statement at a time
// from a larger buffer.
func (s *Scanner) Rest() string {
	return s.src[s.cur.Offset():]
}

// TokenAndValue pairs one scanned token with its value payload and span,
// the three results Next returns, bundled for batch consumption by All.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
	Span  token.Span
}

// All drains src to completion and returns every token scanned, including
// the terminal EOF. Supplemented from original_source/: a convenience used
// by the minimal host's tokenize subcommand and by tests that want the
// whole token sequence without hand-rolling the Next loop.
func All(filename, src string) ([]TokenAndValue, token.ErrorList) {
	return drain(New(filename, src))
}

// AllWithMaxInterpDepth is like All but overrides the scanner's string-
// interpolation nesting ceiling (default DefaultMaxInterpDepth) before
// scanning, e.g. from internal/config.
func AllWithMaxInterpDepth(filename, src string, maxInterpDepth int) ([]TokenAndValue, token.ErrorList) {
	sc := New(filename, src)
	sc.SetMaxInterpDepth(maxInterpDepth)
	return drain(sc)
}

func drain(sc *Scanner) ([]TokenAndValue, token.ErrorList) {
	var out []TokenAndValue
	for {
		tok, val, span := sc.Next()
		out = append(out, TokenAndValue{Token: tok, Value: val, Span: span})
		if tok == token.EOF {
			break
		}
	}
	return out, sc.Errors()
}
