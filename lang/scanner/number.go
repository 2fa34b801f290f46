package scanner

import (
	"math"
	"strconv"

	"github.com/vuurlang/vuur/lang/token"
)

// scanNumber scans a NUMBER literal in one of the forms from spec §4.2:
// binary (0b), octal (0o), hex (0x), a leading zero followed by another
// digit (parsed as the integral value of the whole fragment), a decimal
// integer, a real (digits '.' digits, the '.' not followed by a letter),
// or scientific notation (e/E exponent). The decoded value is packed into
// a 64-bit payload: two's complement for integral forms, the IEEE-754 bit
// pattern for Real/Scientific.
func (s *Scanner) scanNumber(start uint32) (token.Token, token.Value, token.Span) {
	switch {
	case s.cur.Current() == '0' && isRadixMarker(s.cur.Peek(), 'b'):
		return s.scanRadixInt(start, token.Binary, 2, isBinDigit)
	case s.cur.Current() == '0' && isRadixMarker(s.cur.Peek(), 'o'):
		return s.scanRadixInt(start, token.Octal, 8, isOctDigit)
	case s.cur.Current() == '0' && isRadixMarker(s.cur.Peek(), 'x'):
		return s.scanRadixInt(start, token.Hex, 16, isHexDigit)
	case s.cur.Current() == '0' && isDigit(s.cur.Peek()):
		return s.scanLeadingZeroInt(start)
	default:
		return s.scanDecimal(start)
	}
}

func isRadixMarker(r, want rune) bool {
	return r == want || r == want-('a'-'A')
}

// scanRadixInt scans 0b/0o/0x followed by one or more digits of the given
// radix.
func (s *Scanner) scanRadixInt(start uint32, format token.NumberFormat, base int, isDigitOfBase func(rune) bool) (token.Token, token.Value, token.Span) {
	s.cur.Bump() // consume radix marker ('b'/'o'/'x')
	digitsStart := s.cur.PeekOffset()
	for isDigitOfBase(s.cur.Peek()) {
		s.cur.Bump()
	}
	end := s.cur.PeekOffset()
	raw := s.src[start:end]
	digits := s.src[digitsStart:end]
	if digits == "" {
		s.errorf(start, "%s literal has no digits", format)
	}
	var bits uint64
	if digits != "" {
		v, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			s.errorf(start, "invalid %s literal: %s", format, err)
		}
		bits = v
	}
	return s.finishVal(token.NUMBER, start, token.Value{Raw: raw, Bits: bits, Format: format})
}

// scanLeadingZeroInt handles a leading 0 followed directly by another
// digit: per spec, this is parsed as the integral value of the whole
// digit run (no octal reinterpretation).
func (s *Scanner) scanLeadingZeroInt(start uint32) (token.Token, token.Value, token.Span) {
	for isDigit(s.cur.Peek()) {
		s.cur.Bump()
	}
	end := s.cur.PeekOffset()
	raw := s.src[start:end]
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.errorf(start, "invalid numeric literal: %s", err)
	}
	return s.finishVal(token.NUMBER, start, token.Value{Raw: raw, Bits: uint64(v), Format: token.Integral})
}

// scanDecimal scans a plain decimal integer, optionally followed by a
// fractional part (Real) and/or an exponent (Scientific).
func (s *Scanner) scanDecimal(start uint32) (token.Token, token.Value, token.Span) {
	if s.cur.Current() != '.' {
		for isDigit(s.cur.Peek()) {
			s.cur.Bump()
		}
	}

	format := token.Integral

	// Fractional part: only if the '.' is not followed by a letter, so that
	// e.g. a method-call chain on a number literal is not misparsed.
	if s.cur.Peek() == '.' && !isIdentStart(s.cur.Peek2()) {
		s.cur.Bump() // consume '.'
		for isDigit(s.cur.Peek()) {
			s.cur.Bump()
		}
		format = token.Real
	} else if s.cur.Current() == '.' {
		// scanNumber only routes here when Peek() after '.' is a digit, so the
		// leading '.' case (".5") is consumed as the fractional part directly.
		for isDigit(s.cur.Peek()) {
			s.cur.Bump()
		}
		format = token.Real
	}

	if p := s.cur.Peek(); p == 'e' || p == 'E' {
		s.cur.Bump() // consume 'e'/'E'
		if p2 := s.cur.Peek(); p2 == '+' || p2 == '-' {
			s.cur.Bump()
		}
		expDigits := 0
		for isDigit(s.cur.Peek()) {
			s.cur.Bump()
			expDigits++
		}
		if expDigits == 0 {
			s.errorf(start, "number literal exponent has no digits")
		}
		format = token.Scientific
	}

	end := s.cur.PeekOffset()
	raw := s.src[start:end]

	var bits uint64
	switch format {
	case token.Real, token.Scientific:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.errorf(start, "invalid number literal: %s", err)
		}
		bits = math.Float64bits(v)
	default:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.errorf(start, "invalid number literal: %s", err)
		}
		bits = uint64(v)
	}

	return s.finishVal(token.NUMBER, start, token.Value{Raw: raw, Bits: bits, Format: format})
}

func isBinDigit(r rune) bool { return r == '0' || r == '1' }

func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
