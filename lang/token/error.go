package token

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a single diagnostic produced by the scanner: a source Position
// and a message. This mirrors the shape of go/scanner.Error, which the
// teacher toolchain re-exports directly. The parser and the compiler report
// their own error types (parser.SyntaxError, compiler.CompileError).
type Error struct {
	Pos Position
	Msg string
}

func (e Error) Error() string {
	if e.Pos.Filename == "" && e.Pos.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorList collects zero or more Errors encountered by a single pass. The
// scanner keeps scanning after a recoverable error and accumulates all of
// them here, surfacing one combined error to the caller
// (spec §7: "each stage halts at the first error and surfaces it to the
// caller" for *fatal* errors; recoverable diagnostics, such as an out-of-
// range numeric literal, are accumulated instead of stopping the pass).
type ErrorList []*Error

// Add appends a new Error to the list.
func (el *ErrorList) Add(pos Position, msg string) {
	*el = append(*el, &Error{Pos: pos, Msg: msg})
}

// Sort orders the errors by position.
func (el ErrorList) Sort() {
	sort.Stable(byPosition(el))
}

type byPosition ErrorList

func (l byPosition) Len() int      { return len(l) }
func (l byPosition) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l byPosition) Less(i, j int) bool {
	a, b := l[i].Pos, l[j].Pos
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Col < b.Col
}

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (and %d more error", el[0].Error(), len(el)-1)
	if len(el) > 2 {
		sb.WriteByte('s')
	}
	sb.WriteByte(')')
	return sb.String()
}

// Unwrap lets errors.Is/As reach into the individual errors.
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

// Err returns el as an error, or nil if el is empty.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}
