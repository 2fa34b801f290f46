// Package scanner implements components C1 (Cursor) and C2 (Scanner) of the
// Vuur lexer: a UTF-8 cursor with span tracking, and the token scanner built
// on top of it. Whitespace and comments are structural and never reach the
// token stream; Newline is the one exception, since it terminates
// statements (spec §4.2).
package scanner

import (
	"fmt"
	"unicode"

	"github.com/vuurlang/vuur/lang/token"
)

// DefaultMaxInterpDepth bounds how many string interpolations may nest
// before the scanner gives up, per spec §4.3.
const DefaultMaxInterpDepth = 8

// Scanner turns Vuur source into a stream of tokens. Errors are
// accumulated rather than raised immediately; callers check Errors() after
// draining the token stream, or after any single ILLEGAL token if they
// intend to stop early.
type Scanner struct {
	filename string
	src      string
	cur      *Cursor
	errs     token.ErrorList

	maxInterpDepth int
	interpStack    []int // one paren-depth counter per currently open %( ... )
}

// New returns a Scanner over src, attributing diagnostics to filename.
func New(filename, src string) *Scanner {
	s := &Scanner{
		filename:       filename,
		src:            src,
		cur:            NewCursor(src),
		maxInterpDepth: DefaultMaxInterpDepth,
	}
	s.cur.Bump()
	return s
}

// SetMaxInterpDepth overrides the string-interpolation nesting ceiling
// (default DefaultMaxInterpDepth), e.g. from internal/config. Must be
// called before the first Next().
func (s *Scanner) SetMaxInterpDepth(n int) { s.maxInterpDepth = n }

// Errors returns the diagnostics accumulated so far.
func (s *Scanner) Errors() token.ErrorList { return s.errs }

func (s *Scanner) errorf(off uint32, format string, args ...any) {
	s.errs.Add(token.PosAt(s.filename, s.src, off), fmt.Sprintf(format, args...))
}

// Next scans and returns the next token. At end of input it returns
// token.EOF forever after.
func (s *Scanner) Next() (token.Token, token.Value, token.Span) {
	for {
		if s.cur.AtEnd() {
			off := s.cur.Offset()
			return token.EOF, token.Value{}, token.MakeSpan(off, off)
		}

		start := s.cur.Offset()
		c := s.cur.Current()

		switch {
		case c == '\r' && s.cur.Peek() == '\n':
			s.cur.Bump()
			return s.finish(token.NEWLINE, start)
		case c == '\n' || c == '\r':
			return s.finish(token.NEWLINE, start)
		case isSpace(c):
			s.cur.Bump()
			continue
		case c == '/' && s.cur.Peek() == '/':
			s.skipLineComment()
			continue
		case c == '/' && s.cur.Peek() == '*':
			s.skipBlockComment(start)
			continue
		case isIdentStart(c):
			return s.scanIdent(start)
		case isDigit(c), c == '.' && isDigit(s.cur.Peek()):
			return s.scanNumber(start)
		case c == '"':
			return s.scanString(start)
		case c == '(' && len(s.interpStack) > 0:
			s.interpStack[len(s.interpStack)-1]++
			return s.finish(token.LPAREN, start)
		case c == ')' && len(s.interpStack) > 0:
			return s.scanInterpClose(start)
		default:
			return s.scanPunct(start)
		}
	}
}

// finish closes out a token that ends at the current rune: it computes the
// token's end offset, primes the cursor onto the first rune of the next
// token, and returns the span.
func (s *Scanner) finish(tok token.Token, start uint32) (token.Token, token.Value, token.Span) {
	end := s.cur.PeekOffset()
	s.cur.Bump()
	return tok, token.Value{}, token.MakeSpan(start, end)
}

func (s *Scanner) finishVal(tok token.Token, start uint32, val token.Value) (token.Token, token.Value, token.Span) {
	end := s.cur.PeekOffset()
	s.cur.Bump()
	return tok, val, token.MakeSpan(start, end)
}

func (s *Scanner) skipLineComment() {
	s.cur.Bump() // consume the second '/'
	for !s.cur.AtEnd() && s.cur.Peek() != '\n' && s.cur.Peek() != '\r' {
		s.cur.Bump()
	}
	s.cur.Bump()
}

// skipBlockComment consumes a /* ... */ comment, which may nest, per
// spec §4.2. Hitting end of input before the matching close is a hard
// error.
func (s *Scanner) skipBlockComment(start uint32) {
	s.cur.Bump() // consume '*'
	depth := 1
	for depth > 0 {
		if s.cur.AtEnd() {
			s.errorf(start, "unterminated block comment")
			return
		}
		s.cur.Bump()
		switch {
		case s.cur.Current() == '/' && s.cur.Peek() == '*':
			s.cur.Bump()
			depth++
		case s.cur.Current() == '*' && s.cur.Peek() == '/':
			s.cur.Bump()
			depth--
		}
	}
	s.cur.Bump()
}

func (s *Scanner) scanIdent(start uint32) (token.Token, token.Value, token.Span) {
	for isIdentPart(s.cur.Peek()) {
		s.cur.Bump()
	}
	end := s.cur.PeekOffset()
	raw := s.src[start:end]
	s.cur.Bump()
	return token.LookupKw(raw), token.Value{Raw: raw}, token.MakeSpan(start, end)
}

func (s *Scanner) scanPunct(start uint32) (token.Token, token.Value, token.Span) {
	c := s.cur.Current()
	switch c {
	case '(':
		return s.finish(token.LPAREN, start)
	case ')':
		return s.finish(token.RPAREN, start)
	case '{':
		return s.finish(token.LBRACE, start)
	case '}':
		return s.finish(token.RBRACE, start)
	case '.':
		return s.finish(token.DOT, start)
	case ',':
		return s.finish(token.COMMA, start)
	case ':':
		return s.finish(token.COLON, start)
	case '+':
		return s.finish(token.PLUS, start)
	case '*':
		return s.finish(token.STAR, start)
	case '/':
		return s.finish(token.SLASH, start)
	case '%':
		return s.finish(token.PERCENT, start)
	case '&':
		return s.finish(token.AMPERSAND, start)
	case '-':
		if s.cur.Peek() == '>' {
			s.cur.Bump()
			return s.finish(token.ARROW, start)
		}
		return s.finish(token.MINUS, start)
	case '=':
		if s.cur.Peek() == '=' {
			s.cur.Bump()
			return s.finish(token.EQEQ, start)
		}
		return s.finish(token.EQ, start)
	case '!':
		if s.cur.Peek() == '=' {
			s.cur.Bump()
			return s.finish(token.BANGEQ, start)
		}
		return s.finish(token.BANG, start)
	case '<':
		if s.cur.Peek() == '=' {
			s.cur.Bump()
			return s.finish(token.LE, start)
		}
		return s.finish(token.LT, start)
	case '>':
		if s.cur.Peek() == '=' {
			s.cur.Bump()
			return s.finish(token.GE, start)
		}
		return s.finish(token.GT, start)
	default:
		s.errorf(start, "unexpected character %q", c)
		return s.finish(token.ILLEGAL, start)
	}
}

// isSpace reports whether r is whitespace per spec §4.2: space, tab,
// no-break space, and BOM.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u00A0' || r == '\uFEFF'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
