package scanner

import (
	"strings"

	"github.com/vuurlang/vuur/lang/token"
)

// scanString scans a STRING (or, if it contains a %( interpolation opener,
// the first INTERP fragment of one) starting at the opening '"'. A literal
// newline inside the literal is a hard error (spec §4.3); \" escapes the
// quote.
func (s *Scanner) scanString(start uint32) (token.Token, token.Value, token.Span) {
	s.cur.Bump() // consume opening '"'
	return s.scanStringBody(start)
}

// scanInterpClose handles a ')' encountered while at least one
// interpolation is open. If the innermost interpolation's paren-nesting
// counter is above zero, the ')' merely closes a nested expression (e.g.
// the call in "%(f(x))") and is emitted as an ordinary RPAREN. Once the
// counter reaches zero, the ')' closes the interpolation itself and
// string scanning resumes immediately after it.
func (s *Scanner) scanInterpClose(start uint32) (token.Token, token.Value, token.Span) {
	top := len(s.interpStack) - 1
	if s.interpStack[top] > 0 {
		s.interpStack[top]--
		return s.finish(token.RPAREN, start)
	}
	s.interpStack = s.interpStack[:top]
	s.cur.Bump() // consume ')'
	return s.scanStringBody(s.cur.Offset())
}

// scanStringBody decodes string content starting at start up to the next
// closing '"' (STRING), the next unescaped %( opener (INTERP), or an
// error condition.
func (s *Scanner) scanStringBody(start uint32) (token.Token, token.Value, token.Span) {
	var sb strings.Builder
	for {
		if s.cur.AtEnd() {
			s.errorf(start, "string literal not terminated")
			end := s.cur.Offset()
			return token.ILLEGAL, token.Value{Raw: s.src[start:end]}, token.MakeSpan(start, end)
		}

		c := s.cur.Current()
		switch {
		case c == '"':
			end := s.cur.PeekOffset()
			raw := s.src[start:end]
			s.cur.Bump()
			return token.STRING, token.Value{Raw: raw, Str: sb.String()}, token.MakeSpan(start, end)

		case c == '\n' || c == '\r':
			s.errorf(start, "string literal not terminated")
			end := s.cur.Offset()
			return token.ILLEGAL, token.Value{Raw: s.src[start:end]}, token.MakeSpan(start, end)

		case c == '%' && s.cur.Peek() == '(':
			if len(s.interpStack) >= s.maxInterpDepth {
				s.errorf(start, "string interpolation nested too deeply (max %d)", s.maxInterpDepth)
			}
			s.interpStack = append(s.interpStack, 0)
			s.cur.Bump() // consume '('
			end := s.cur.PeekOffset()
			raw := s.src[start:end]
			s.cur.Bump() // onto the first token of the embedded expression
			return token.INTERP, token.Value{Raw: raw, Str: sb.String()}, token.MakeSpan(start, end)

		case c == '\\':
			s.scanEscape(&sb)

		default:
			sb.WriteRune(c)
			s.cur.Bump()
		}
	}
}

func (s *Scanner) scanEscape(sb *strings.Builder) {
	escOff := s.cur.Offset()
	s.cur.Bump() // consume '\'
	c := s.cur.Current()
	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '\\':
		sb.WriteByte('\\')
	case '"':
		sb.WriteByte('"')
	case '%':
		sb.WriteByte('%')
	case '0':
		sb.WriteByte(0)
	default:
		s.errorf(escOff, "unknown escape sequence '\\%c'", c)
		sb.WriteRune(c)
	}
	s.cur.Bump()
}
