package parser

import (
	"github.com/vuurlang/vuur/lang/scanner"
	"github.com/vuurlang/vuur/lang/token"
)

// entry is one scanned token together with its payload and span.
type entry struct {
	tok  token.Token
	val  token.Value
	span token.Span
}

// tokenStream is component C3: it wraps the lexer with peek/consume
// primitives so the parser never talks to the scanner directly.
//
// peek walks forward from the current position each time it is called,
// without consuming; resetPeek rewinds that lookahead cursor back to the
// next unconsumed token, and next() consumes one token and invalidates any
// outstanding peek.
type tokenStream struct {
	sc *scanner.Scanner

	cur     entry
	buf     []entry
	peekPos int
}

func newTokenStream(filename, src string) *tokenStream {
	return &tokenStream{sc: scanner.New(filename, src)}
}

func (s *tokenStream) fill(n int) {
	for len(s.buf) <= n {
		tok, val, span := s.sc.Next()
		s.buf = append(s.buf, entry{tok, val, span})
	}
}

// peek returns the token at the current lookahead position and advances
// that position by one, so successive calls walk further into the stream.
func (s *tokenStream) peek() entry {
	s.fill(s.peekPos)
	e := s.buf[s.peekPos]
	s.peekPos++
	return e
}

// resetPeek rewinds the lookahead position back to the next unconsumed
// token.
func (s *tokenStream) resetPeek() { s.peekPos = 0 }

// next consumes and returns the next token, invalidating any lookahead.
func (s *tokenStream) next() entry {
	s.fill(0)
	e := s.buf[0]
	s.buf = s.buf[1:]
	if s.peekPos > 0 {
		s.peekPos--
	}
	s.cur = e
	return e
}

// current returns the token last produced by next (or consume), i.e. the
// parser's current token.
func (s *tokenStream) current() entry { return s.cur }

// ignoreMany consumes zero or more consecutive tokens of kind, starting
// with the current token.
func (s *tokenStream) ignoreMany(kind token.Token) {
	for s.cur.tok == kind {
		s.next()
	}
}

// UnexpectedToken is the error consume fails with when the current token's
// kind does not match what was requested.
type UnexpectedToken struct {
	Want token.Token
	Got  token.Token
	Span token.Span
}

func (e *UnexpectedToken) Error() string {
	return "expected " + e.Want.GoString() + ", found " + e.Got.GoString()
}

// consume requires the current token to have kind, advancing past it and
// returning it, or an *UnexpectedToken carrying the actual kind without
// consuming anything.
func (s *tokenStream) consume(kind token.Token) (entry, error) {
	cur := s.cur
	if cur.tok != kind {
		return cur, &UnexpectedToken{Want: kind, Got: cur.tok, Span: cur.span}
	}
	s.next()
	return cur, nil
}
