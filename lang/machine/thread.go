package machine

import (
	"fmt"

	"github.com/vuurlang/vuur/lang/compiler"
)

// Thread runs fibers against a cooperative-completion safety valve. Spec §5
// rules out cancellation, blocking I/O and concurrent fibers entirely (no
// context.Context, no goroutine watching for external cancellation, unlike
// the teacher's Thread) — the only thing left to bound is a runaway
// program, via MaxSteps and MaxCallStackDepth, both consumed from
// internal/config by the host.
type Thread struct {
	// MaxSteps bounds the number of dispatched instructions before a fiber
	// is halted with a step-limit fault. A value <= 0 means no limit.
	MaxSteps int

	// MaxCallStackDepth bounds the number of nested CALLs before a fiber is
	// halted with a call-stack-depth fault. A value <= 0 means no limit.
	MaxCallStackDepth int
}

// Run executes chunk from its entrypoint to completion and returns the
// Fiber holding the final state (Done/Err/TakeReturn).
func (th *Thread) Run(chunk *compiler.Chunk) (*Fiber, error) {
	f := NewFiber(chunk)
	if err := th.Resume(f); err != nil {
		return f, err
	}
	return f, nil
}

// Resume runs f to completion. Calling it on a fiber that is already
// running or already done is a fiber-state error — spec's lifecycle note
// ("after done it is not reused") and the teacher's own
// "thread is already executing a program" guard, generalized to the fiber.
func (th *Thread) Resume(f *Fiber) error {
	if f.running || f.done {
		return ErrFiberStillRunning
	}
	f.running = true
	defer func() { f.running = false }()

	var steps int
	for !f.done {
		steps++
		if th.MaxSteps > 0 && steps > th.MaxSteps {
			f.fault(fmt.Errorf("step limit of %d exceeded", th.MaxSteps))
			break
		}
		if err := th.step(f); err != nil {
			f.fault(err)
			break
		}
	}
	return f.err
}

// step decodes and dispatches exactly one instruction, per the opcode
// catalogue in spec §4.5. It returns a non-nil error only for faults that
// should be surfaced as the fiber's terminal error; ABORT and a clean
// empty-call-stack RETURN set f.done directly and return nil.
func (th *Thread) step(f *Fiber) error {
	code := f.chunk.Code
	if f.ip >= uint32(len(code)) {
		f.done = true
		return nil
	}

	instr := code[f.ip]
	op := instr.Op()

	switch op {
	case compiler.NOOP:
		f.ip++

	case compiler.POP:
		if _, err := f.pop(); err != nil {
			return err
		}
		f.ip++

	case compiler.ADD_I32:
		return th.binaryI32(f, func(lhs, rhs int32) int32 { return lhs + rhs })

	case compiler.SUB_I32:
		return th.binaryI32(f, func(lhs, rhs int32) int32 { return lhs - rhs })

	case compiler.MUL_I32:
		return th.binaryI32(f, func(lhs, rhs int32) int32 { return lhs * rhs })

	case compiler.DIV_I32:
		rhs, err := f.pop()
		if err != nil {
			return err
		}
		lhs, err := f.pop()
		if err != nil {
			return err
		}
		if int32(rhs) == 0 {
			return ErrDivideByZero
		}
		f.push(uint32(int32(lhs) / int32(rhs)))
		f.ip++

	case compiler.NEG_I32:
		x, err := f.pop()
		if err != nil {
			return err
		}
		f.push(uint32(-int32(x)))
		f.ip++

	case compiler.EQ_I32:
		rhs, err := f.pop()
		if err != nil {
			return err
		}
		lhs, err := f.pop()
		if err != nil {
			return err
		}
		if lhs == rhs {
			f.push(1)
		} else {
			f.push(0)
		}
		f.ip++

	case compiler.PUSH_CONST:
		idx := instr.K()
		if idx >= uint32(len(f.chunk.Constants)) {
			return fmt.Errorf("constant index %d out of range", idx)
		}
		f.push(f.chunk.Constants[idx])
		f.ip++

	case compiler.PUSH_CONST_IMM:
		f.push(uint32(instr.A()))
		f.ip++

	case compiler.PUSH_LOCAL_I32:
		idx := f.base() + instr.K()
		if idx >= uint32(len(f.stack)) {
			return fmt.Errorf("local slot %d out of range", instr.K())
		}
		f.push(f.stack[idx])
		f.ip++

	case compiler.FUNC:
		// boundary marker: one nop word plus one reserved constant-table
		// word, per spec §4.5.
		f.ip += 2

	case compiler.SKIP_1:
		top, err := f.pop()
		if err != nil {
			return err
		}
		if top == 1 {
			f.ip += 2
		} else {
			f.ip++
		}

	case compiler.SKIP_EQ_I32:
		rhs, err := f.pop()
		if err != nil {
			return err
		}
		lhs, err := f.pop()
		if err != nil {
			return err
		}
		if lhs == rhs {
			f.ip += 2
		} else {
			f.ip++
		}

	case compiler.CALL:
		return th.call(f, instr)

	case compiler.RETURN:
		return th.ret(f)

	case compiler.JUMP:
		f.ip = instr.K()

	case compiler.ABORT:
		f.done = true

	default:
		return fmt.Errorf("illegal opcode 0x%02X at ip %d", uint8(op), f.ip)
	}
	return nil
}

// binaryI32 implements the three wrapping arithmetic opcodes (ADD/SUB/MUL):
// pop rhs then lhs (lhs was pushed first, per spec §4.5), apply fn with
// two's-complement wraparound, push the result.
func (th *Thread) binaryI32(f *Fiber, fn func(lhs, rhs int32) int32) error {
	rhs, err := f.pop()
	if err != nil {
		return err
	}
	lhs, err := f.pop()
	if err != nil {
		return err
	}
	f.push(uint32(fn(int32(lhs), int32(rhs))))
	f.ip++
	return nil
}

// call implements the CALL semantics from spec §4.5: the caller has
// already pushed arity arguments; compute the new frame's base, push
// (base, return_addr) onto the call stack, and jump to the callee's entry.
func (th *Thread) call(f *Fiber, instr compiler.Instr) error {
	id := compiler.FuncID(instr.K())
	fn, ok := f.chunk.Function(id)
	if !ok {
		return fmt.Errorf("call to undefined function id %d", id)
	}
	if th.MaxCallStackDepth > 0 && len(f.calls) >= th.MaxCallStackDepth {
		return fmt.Errorf("call stack depth of %d exceeded", th.MaxCallStackDepth)
	}
	arity := uint32(fn.Arity)
	if arity > uint32(len(f.stack)) {
		return fmt.Errorf("call to %q: not enough arguments on the stack", fn.Name)
	}
	base := uint32(len(f.stack)) - arity
	f.calls = append(f.calls, callFrame{base: base, returnAddr: f.ip + 1})
	f.ip = fn.BytecodeStart
	return nil
}

// ret implements RETURN: truncate the operand stack to one value (the
// return), reset it to the frame's base, push the return value back, and
// restore ip from the popped frame. An empty call stack means the
// top-level entrypoint itself returned: the fiber is done.
func (th *Thread) ret(f *Fiber) error {
	value, err := f.pop()
	if err != nil {
		return err
	}
	if len(f.calls) == 0 {
		f.stack = append(f.stack[:0], value)
		f.done = true
		return nil
	}
	frame := f.calls[len(f.calls)-1]
	f.calls = f.calls[:len(f.calls)-1]
	f.stack = append(f.stack[:frame.base], value)
	f.ip = frame.returnAddr
	return nil
}
