package ast

import (
	"fmt"

	"github.com/vuurlang/vuur/lang/token"
)

// MemberPath is the receiver of a member access: either a bare name or a
// further member access being chained onto, per spec's tagged variant
// {Name(Ident), Chain(MemberAccess)}. This keeps member-access chains a
// linked tree rather than requiring a back-reference.
type MemberPath interface {
	Node
	isMemberPath()
}

// CallArg is one argument in a call's argument list: a plain expression, a
// name: value pair, or a trailing block argument.
type CallArg interface {
	Node
	isCallArg()
}

type (
	// NumLit is a number literal; Bits holds the two's-complement integer
	// or IEEE-754 bit pattern per NumFormat.
	NumLit struct {
		LitSpan   token.Span
		Raw       string
		Bits      uint64
		NumFormat token.NumberFormat
	}

	// Group is a parenthesized expression.
	Group struct {
		LParen, RParen token.Span
		X              Expr
	}

	// Unary is a prefix operator expression, e.g. -x.
	Unary struct {
		Op     token.Token
		OpSpan token.Span
		X      Expr
	}

	// Binary is an infix operator expression, e.g. x + y.
	Binary struct {
		Op token.Token
		L  Expr
		R  Expr
	}

	// Assign assigns Value to a plain name.
	Assign struct {
		Name  *Ident
		Eq    token.Span
		Value Expr
	}

	// NameAccess reads the value of an identifier.
	NameAccess struct {
		Name *Ident
	}

	// MemberAccess reads a named member off Path, e.g. x.y.
	MemberAccess struct {
		Path MemberPath
		Dot  token.Span
		Name *Ident
	}

	// MemberAssign assigns Value to a named member off Path, e.g. x.y = z.
	MemberAssign struct {
		Path  MemberPath
		Dot   token.Span
		Name  *Ident
		Eq    token.Span
		Value Expr
	}

	// Call invokes Callee with Args.
	Call struct {
		Callee Expr
		LParen token.Span
		Args   []CallArg
		RParen token.Span
	}

	// RawBytecode splices literal instruction words directly into the
	// emitted code, bypassing expression lowering. It exists for tests and
	// tooling that need to exercise the VM without going through the
	// emitter.
	RawBytecode struct {
		RawSpan token.Span
		Code    []uint32
	}

	// PositionalArg is a plain, unnamed call argument.
	PositionalArg struct {
		X Expr
	}

	// NamedArg is a name: value call argument.
	NamedArg struct {
		Name  *Ident
		Colon token.Span
		X     Expr
	}

	// BlockArg is a trailing block passed as a call argument (e.g. for
	// builders that accept a body), analogous to a trailing closure.
	BlockArg struct {
		X *Block
	}
)

func (n *NumLit) Format(f fmt.State, verb rune) { format(f, verb, n, n.NumFormat.String()+" "+n.Raw, nil) }
func (n *NumLit) Span() token.Span              { return n.LitSpan }
func (n *NumLit) Walk(Visitor)                  {}
func (n *NumLit) expr()                         {}

func (n *Group) Format(f fmt.State, verb rune) { format(f, verb, n, "(expr)", nil) }
func (n *Group) Span() token.Span              { return token.MakeSpan(n.LParen.ByteIndex, n.RParen.End()) }
func (n *Group) Walk(v Visitor)                { Walk(v, n.X) }
func (n *Group) expr()                         {}

func (n *Unary) Format(f fmt.State, verb rune) { format(f, verb, n, "unary "+n.Op.GoString(), nil) }
func (n *Unary) Span() token.Span              { return token.MakeSpan(n.OpSpan.ByteIndex, n.X.Span().End()) }
func (n *Unary) Walk(v Visitor)                { Walk(v, n.X) }
func (n *Unary) expr()                         {}

func (n *Binary) Format(f fmt.State, verb rune) { format(f, verb, n, "binary "+n.Op.GoString(), nil) }
func (n *Binary) Span() token.Span {
	return token.MakeSpan(n.L.Span().ByteIndex, n.R.Span().End())
}
func (n *Binary) Walk(v Visitor) {
	Walk(v, n.L)
	Walk(v, n.R)
}
func (n *Binary) expr() {}

func (n *Assign) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name.Name+" =", nil) }
func (n *Assign) Span() token.Span {
	return token.MakeSpan(n.Name.Span().ByteIndex, n.Value.Span().End())
}
func (n *Assign) Walk(v Visitor) {
	Walk(v, n.Name)
	Walk(v, n.Value)
}
func (n *Assign) expr() {}

func (n *NameAccess) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name.Name, nil) }
func (n *NameAccess) Span() token.Span              { return n.Name.Span() }
func (n *NameAccess) Walk(v Visitor)                { Walk(v, n.Name) }
func (n *NameAccess) expr()                         {}

func (n *MemberAccess) Format(f fmt.State, verb rune) { format(f, verb, n, "path."+n.Name.Name, nil) }
func (n *MemberAccess) Span() token.Span {
	return token.MakeSpan(n.Path.Span().ByteIndex, n.Name.Span().End())
}
func (n *MemberAccess) Walk(v Visitor) {
	Walk(v, n.Path)
	Walk(v, n.Name)
}
func (n *MemberAccess) expr()        {}
func (n *MemberAccess) isMemberPath() {}

func (n *MemberAssign) Format(f fmt.State, verb rune) {
	format(f, verb, n, "path."+n.Name.Name+" =", nil)
}
func (n *MemberAssign) Span() token.Span {
	return token.MakeSpan(n.Path.Span().ByteIndex, n.Value.Span().End())
}
func (n *MemberAssign) Walk(v Visitor) {
	Walk(v, n.Path)
	Walk(v, n.Name)
	Walk(v, n.Value)
}
func (n *MemberAssign) expr() {}

func (n *Call) Format(f fmt.State, verb rune) { format(f, verb, n, "call", map[string]int{"args": len(n.Args)}) }
func (n *Call) Span() token.Span {
	return token.MakeSpan(n.Callee.Span().ByteIndex, n.RParen.End())
}
func (n *Call) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *Call) expr() {}

func (n *RawBytecode) Format(f fmt.State, verb rune) {
	format(f, verb, n, "raw bytecode", map[string]int{"words": len(n.Code)})
}
func (n *RawBytecode) Span() token.Span { return n.RawSpan }
func (n *RawBytecode) Walk(Visitor)     {}
func (n *RawBytecode) expr()            {}

func (n *PositionalArg) Format(f fmt.State, verb rune) { format(f, verb, n, "arg", nil) }
func (n *PositionalArg) Span() token.Span              { return n.X.Span() }
func (n *PositionalArg) Walk(v Visitor)                { Walk(v, n.X) }
func (n *PositionalArg) isCallArg()                    {}

func (n *NamedArg) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name.Name+": arg", nil) }
func (n *NamedArg) Span() token.Span {
	return token.MakeSpan(n.Name.Span().ByteIndex, n.X.Span().End())
}
func (n *NamedArg) Walk(v Visitor) {
	Walk(v, n.Name)
	Walk(v, n.X)
}
func (n *NamedArg) isCallArg() {}

func (n *BlockArg) Format(f fmt.State, verb rune) { format(f, verb, n, "block arg", nil) }
func (n *BlockArg) Span() token.Span              { return n.X.Span() }
func (n *BlockArg) Walk(v Visitor)                { Walk(v, n.X) }
func (n *BlockArg) isCallArg()                    {}
