// Package machine implements component C7: the fiber-based stack virtual
// machine that executes a compiler.Chunk. It owns exactly one mutable
// execution state (Fiber) per run, decoding and dispatching the chunk's
// packed 32-bit instructions over an operand stack and a call-frame stack.
package machine

import (
	"errors"

	"github.com/vuurlang/vuur/lang/compiler"
)

// Runtime faults, per spec §7: divide-by-zero, nil-return, fiber-state.
// Unlike the lexer/parser's token.ErrorList (many diagnostics accumulated
// per run), a fiber halts at its first fault, so a single error value is
// enough — there is nothing to accumulate.
var (
	ErrDivideByZero      = errors.New("divide by zero")
	ErrFiberNotDone      = errors.New("fiber not done")
	ErrFiberStillRunning = errors.New("fiber still running")
	ErrNilReturn         = errors.New("nil")
	ErrStackUnderflow    = errors.New("stack underflow")
)

// callFrame is one activation record on the Fiber's call stack: the
// frame's first local's stack index, and the ip to resume the caller at.
type callFrame struct {
	base       uint32
	returnAddr uint32
}

// Fiber is the mutable execution state from spec §3. A chunk is read-only
// and may be run any number of times; a Fiber is created per run and, once
// done, is never reused — matching "after done it is not reused".
type Fiber struct {
	chunk *compiler.Chunk

	ip    uint32
	stack []uint32
	calls []callFrame

	done    bool
	running bool
	err     error
}

// NewFiber creates a fiber positioned at chunk's entrypoint. No call frame
// is pushed for the entrypoint itself: it runs as if already "called" with
// no arguments, so its own RETURN sees an empty call stack and the fiber
// transitions straight to done, per spec §4.5's "if the call stack is
// empty at RETURN, the fiber transitions to done."
func NewFiber(chunk *compiler.Chunk) *Fiber {
	f := &Fiber{chunk: chunk}
	if fn, ok := chunk.Function(chunk.Entrypoint); ok {
		f.ip = fn.BytecodeStart
	}
	return f
}

// Done reports whether the fiber has reached a terminal state.
func (f *Fiber) Done() bool { return f.done }

// Err returns the fault that halted the fiber, if any.
func (f *Fiber) Err() error { return f.err }

// TakeReturn returns the top of the operand stack as the run's result.
// Calling it before the fiber is done is a fiber-state error.
func (f *Fiber) TakeReturn() (uint32, error) {
	if !f.done {
		return 0, ErrFiberNotDone
	}
	if f.err != nil {
		return 0, f.err
	}
	if len(f.stack) == 0 {
		return 0, ErrNilReturn
	}
	return f.stack[len(f.stack)-1], nil
}

// base returns the operand-stack index of the current frame's slot 0: the
// top call frame's recorded base, or 0 at the top level (no frames pushed
// yet).
func (f *Fiber) base() uint32 {
	if len(f.calls) == 0 {
		return 0
	}
	return f.calls[len(f.calls)-1].base
}

func (f *Fiber) push(v uint32) { f.stack = append(f.stack, v) }

// pop removes and returns the top of the operand stack. Spec §4.6 allows
// either substituting zero on underflow or treating it as a hard error,
// noting no §8 property depends on the choice; this implementation takes
// the hard-error branch, since a silent zero would mask a real compiler or
// decoder bug rather than a legitimate program state.
func (f *Fiber) pop() (uint32, error) {
	if len(f.stack) == 0 {
		return 0, ErrStackUnderflow
	}
	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return v, nil
}

func (f *Fiber) fault(err error) {
	f.err = err
	f.done = true
}
