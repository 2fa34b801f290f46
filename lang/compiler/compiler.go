package compiler

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"

	"github.com/vuurlang/vuur/lang/ast"
	"github.com/vuurlang/vuur/lang/token"
)

// CompileError is the single error taxonomy for C5, per spec §7: limit
// exceeded, unresolved function name, or encoding overflow. Each carries the
// offending node's span like the lexer/parser's own diagnostics.
type CompileError struct {
	Span token.Span
	Msg  string
}

func (e *CompileError) Error() string { return e.Msg }

// Limits from spec §4.5: exceeding any of these is a compile error.
const (
	maxConstants = 1<<24 - 1
	maxFunctions = 1 << 24
	maxLocals    = 1 << 24
)

// emitter holds the state of a single Compile pass: the linear instruction
// stream (one function's body appended directly after the previous one, no
// CFG, no block linking — spec §4.5 is a direct single-pass tree walk), the
// function table, and the forward-reference bookkeeping that lets a
// function call another defined later in the module.
type emitter struct {
	code      []Instr
	functions []Function // functions[0] is the reserved stub
	funcs     *funcTable
	constants []uint32

	// pendingStubs tracks function ids reserved by addFuncStub but not yet
	// patched by replaceFuncStub; Compile checks it's empty once every
	// top-level FuncDef has been lowered. A call to a name that was never
	// defined is rejected earlier, by lowerCall's function-table lookup.
	pendingStubs []FuncID
}

// Compile walks mod and emits a Chunk per spec §4.5/§3. Function ids are
// allocated in declaration order in a first pass (so forward references
// resolve), then each body is lowered in a second pass.
func Compile(mod *ast.Module) (*Chunk, error) {
	e := &emitter{
		functions: make([]Function, 1), // index 0 reserved
		funcs:     newFuncTable(),
	}

	var defs []*ast.FuncDef
	for _, stmt := range mod.Stmts {
		fn, ok := stmt.(*ast.FuncDef)
		if !ok {
			return nil, &CompileError{Span: stmt.Span(), Msg: "only function definitions are allowed at module scope"}
		}
		defs = append(defs, fn)
		if _, err := e.addFuncStub(fn); err != nil {
			return nil, err
		}
	}

	for _, fn := range defs {
		if err := e.lowerFuncDef(fn); err != nil {
			return nil, err
		}
	}

	if len(e.pendingStubs) != 0 {
		id := e.pendingStubs[0]
		return nil, &CompileError{Msg: fmt.Sprintf("function %q is called but never defined", e.functions[id].Name)}
	}

	entry, _ := e.funcs.lookup("Main")
	return &Chunk{
		Header:     Header{Version: 1, Endianness: EndiannessLE, WordSize: 4},
		Code:       e.code,
		Functions:  e.functions,
		Entrypoint: entry,
		Constants:  e.constants,
	}, nil
}

// addFuncStub reserves fn's FuncID before its body is lowered, so a call
// site earlier in the module can already resolve the name. The stub's id is
// appended to pendingStubs here and removed with slices.Index/slices.Delete
// once replaceFuncStub runs.
func (e *emitter) addFuncStub(fn *ast.FuncDef) (FuncID, error) {
	if len(e.functions) >= maxFunctions {
		return 0, &CompileError{Span: fn.Span(), Msg: "too many functions in chunk"}
	}
	id := FuncID(len(e.functions))
	e.functions = append(e.functions, Function{Name: fn.Name.Name, Arity: uint32(len(fn.Args))})
	e.funcs.define(fn.Name.Name, id)
	e.pendingStubs = append(e.pendingStubs, id)
	return id, nil
}

// replaceFuncStub patches a previously reserved stub with its real
// bytecode bounds and local count once the body has been fully lowered.
func (e *emitter) replaceFuncStub(id FuncID, start, end, localCount uint32) {
	e.functions[id].BytecodeStart = start
	e.functions[id].BytecodeEnd = end
	e.functions[id].LocalCount = localCount
	if i := slices.Index(e.pendingStubs, id); i >= 0 {
		e.pendingStubs = slices.Delete(e.pendingStubs, i, i+1)
	}
}

func (e *emitter) emit(i Instr) uint32 {
	pc := uint32(len(e.code))
	e.code = append(e.code, i)
	return pc
}

// patchJump overwrites the argument of the JUMP at pc with target.
func (e *emitter) patchJump(pc, target uint32) {
	e.code[pc] = EncodeK(JUMP, target)
}

func (e *emitter) lowerFuncDef(fn *ast.FuncDef) error {
	id, _ := e.funcs.lookup(fn.Name.Name)
	locals := newLocalScope()
	for _, arg := range fn.Args {
		locals.declare(arg.Name.Name)
	}

	start := e.emit(EncodeK(FUNC, 0))
	e.emit(EncodeK(NOOP, 0)) // reserved constant-table word, per spec §4.5's FUNC note

	for _, stmt := range fn.Body.Stmts {
		if err := e.lowerStmt(stmt, locals); err != nil {
			return err
		}
	}

	end := uint32(len(e.code))
	if locals.next > maxLocals {
		return &CompileError{Span: fn.Span(), Msg: fmt.Sprintf("function %q has too many locals", fn.Name.Name)}
	}
	e.replaceFuncStub(id, start, end, locals.next)
	return nil
}

// lowerStmt lowers one DefStmt inside a function body. Only the node kinds
// named in spec §4.5's lowering-rules table have bytecode semantics; the
// rest (VarDef is covered below since declaring a local is how the table's
// NameAccess rule gets anything to read, but Assign/MemberAccess/TypeDef are
// not in that table at all) are handled as far as the arithmetic core
// requires and rejected otherwise — there is no SETLOCAL/SETFIELD opcode in
// the catalogue to lower them to.
func (e *emitter) lowerStmt(stmt ast.DefStmt, locals *localScope) error {
	switch s := stmt.(type) {
	case *ast.VarDef:
		if err := e.lowerExpr(s.Value, locals); err != nil {
			return err
		}
		locals.declare(s.Name.Name)
		return nil

	case *ast.ReturnStmt:
		if s.Value != nil {
			if err := e.lowerExpr(s.Value, locals); err != nil {
				return err
			}
		} else {
			e.emit(EncodeA(PUSH_CONST_IMM, 0))
		}
		e.emit(EncodeK(RETURN, 0))
		return nil

	case *ast.IfStmt:
		return e.lowerIfStmt(s, locals)

	case *ast.ExprStmt:
		if err := e.lowerExpr(s.X, locals); err != nil {
			return err
		}
		e.emit(EncodeK(POP, 0))
		return nil

	case *ast.TypeDef:
		// no codegen: the layout engine that gives this runtime
		// representation is out of scope (spec's external collaborators).
		return nil

	case *ast.FuncDef:
		return &CompileError{Span: s.Span(), Msg: "nested function definitions are not supported"}

	default:
		return &CompileError{Span: stmt.Span(), Msg: fmt.Sprintf("%T cannot be compiled", stmt)}
	}
}

// lowerIfStmt follows spec §4.5's SKIP_1/JUMP technique: lower cond, SKIP_1
// over a JUMP that targets the else branch (or the end, if there is none),
// lower then. Spec's own wording patches only that one jump after lowering
// then and says nothing more, which — taken literally — falls through from
// the end of "then" straight into "else" on the true branch. This adds the
// standard second jump (over else, to the end) so the true branch doesn't
// also execute the else block; the SKIP_1/JUMP/patch vocabulary is kept
// exactly as spec describes, just extended by the one jump actual
// control-flow correctness requires.
func (e *emitter) lowerIfStmt(s *ast.IfStmt, locals *localScope) error {
	if err := e.lowerExpr(s.Cond, locals); err != nil {
		return err
	}
	e.emit(EncodeK(SKIP_1, 0))
	jumpToElse := e.emit(EncodeK(JUMP, 0))

	for _, stmt := range s.Then.Stmts {
		if err := e.lowerStmt(stmt, locals); err != nil {
			return err
		}
	}

	switch {
	case s.Else != nil:
		jumpToEnd := e.emit(EncodeK(JUMP, 0))
		e.patchJump(jumpToElse, uint32(len(e.code)))
		for _, stmt := range s.Else.Stmts {
			if err := e.lowerStmt(stmt, locals); err != nil {
				return err
			}
		}
		e.patchJump(jumpToEnd, uint32(len(e.code)))

	case s.ElseIf != nil:
		jumpToEnd := e.emit(EncodeK(JUMP, 0))
		e.patchJump(jumpToElse, uint32(len(e.code)))
		if err := e.lowerIfStmt(s.ElseIf, locals); err != nil {
			return err
		}
		e.patchJump(jumpToEnd, uint32(len(e.code)))

	default:
		e.patchJump(jumpToElse, uint32(len(e.code)))
	}
	return nil
}

// lowerExpr lowers one Expr node per spec §4.5's lowering-rules table.
func (e *emitter) lowerExpr(expr ast.Expr, locals *localScope) error {
	switch x := expr.(type) {
	case *ast.NumLit:
		return e.lowerNumLit(x)

	case *ast.Group:
		return e.lowerExpr(x.X, locals)

	case *ast.Unary:
		if err := e.lowerExpr(x.X, locals); err != nil {
			return err
		}
		switch x.Op {
		case token.MINUS:
			e.emit(EncodeK(NEG_I32, 0))
			return nil
		default:
			return &CompileError{Span: x.Span(), Msg: fmt.Sprintf("unary operator %s is not supported by this bytecode core", x.Op)}
		}

	case *ast.Binary:
		if err := e.lowerExpr(x.L, locals); err != nil {
			return err
		}
		if err := e.lowerExpr(x.R, locals); err != nil {
			return err
		}
		op, err := binaryOpcode(x.Op)
		if err != nil {
			return &CompileError{Span: x.Span(), Msg: err.Error()}
		}
		e.emit(EncodeK(op, 0))
		return nil

	case *ast.NameAccess:
		slot, ok := locals.lookup(x.Name.Name)
		if !ok {
			return &CompileError{Span: x.Span(), Msg: fmt.Sprintf("undefined name %q", x.Name.Name)}
		}
		e.emit(EncodeK(PUSH_LOCAL_I32, slot))
		return nil

	case *ast.Call:
		return e.lowerCall(x, locals)

	case *ast.RawBytecode:
		for _, word := range x.Code {
			e.emit(Instr(word))
		}
		return nil

	default:
		return &CompileError{Span: expr.Span(), Msg: fmt.Sprintf("%T cannot be compiled by this bytecode core", expr)}
	}
}

// binaryOpcode maps a Binary node's operator token to its opcode. Spec
// §4.5's catalogue only defines ADD/SUB/MUL/DIV/EQ_I32: there is no
// opcode for <, >, <=, >=, != or %, even though the token set and the
// parser's precedence ladder both accept them (Equality/Comparison tiers
// exist for a future pass). Rejecting them here, at the one place that
// needs to know the gap, keeps the parser free of bytecode-core concerns.
func binaryOpcode(op token.Token) (Opcode, error) {
	switch op {
	case token.PLUS:
		return ADD_I32, nil
	case token.MINUS:
		return SUB_I32, nil
	case token.STAR:
		return MUL_I32, nil
	case token.SLASH:
		return DIV_I32, nil
	case token.EQEQ:
		return EQ_I32, nil
	default:
		return 0, fmt.Errorf("operator %s is not supported by this bytecode core", op)
	}
}

// lowerNumLit pushes a NumLit's value, per spec's NumLit(n) rule: a
// PUSH_CONST_IMM immediate if it fits the signed 24-bit argument field,
// otherwise a constant-table entry addressed by PUSH_CONST.
func (e *emitter) lowerNumLit(n *ast.NumLit) error {
	switch n.NumFormat {
	case token.Real, token.Scientific:
		return &CompileError{Span: n.Span(), Msg: "floating-point literals are not supported by the VM's integer-only numeric ops"}
	}
	if n.Bits > math.MaxUint32 {
		return &CompileError{Span: n.Span(), Msg: "numeric literal does not fit in 32 bits"}
	}
	val := int32(uint32(n.Bits))

	if FitsArg24(int64(val)) {
		e.emit(EncodeA(PUSH_CONST_IMM, val))
		return nil
	}
	if len(e.constants) >= maxConstants {
		return &CompileError{Span: n.Span(), Msg: "too many constants in chunk"}
	}
	idx := uint32(len(e.constants))
	e.constants = append(e.constants, uint32(val))
	e.emit(EncodeK(PUSH_CONST, idx))
	return nil
}

// lowerCall lowers a Call's arguments left-to-right, then emits CALL against
// the callee's resolved function id. Only a plain NameAccess callee
// resolves to a function table entry; anything else (member-access
// callees, calling a local) is out of scope for the arithmetic core's
// static call model.
func (e *emitter) lowerCall(call *ast.Call, locals *localScope) error {
	name, ok := call.Callee.(*ast.NameAccess)
	if !ok {
		return &CompileError{Span: call.Span(), Msg: "only a plain function name can be called"}
	}
	id, ok := e.funcs.lookup(name.Name.Name)
	if !ok {
		return &CompileError{Span: call.Span(), Msg: fmt.Sprintf("call to undefined function %q", name.Name.Name)}
	}
	for _, arg := range call.Args {
		pos, ok := arg.(*ast.PositionalArg)
		if !ok {
			return &CompileError{Span: call.Span(), Msg: "only positional arguments are supported by this bytecode core"}
		}
		if err := e.lowerExpr(pos.X, locals); err != nil {
			return err
		}
	}
	e.emit(EncodeK(CALL, uint32(id)))
	return nil
}
