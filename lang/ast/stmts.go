package ast

import (
	"fmt"

	"github.com/vuurlang/vuur/lang/token"
)

// Arg is one parameter of a FuncDef's argument list, or one field of a
// TypeDef's body: name, declared type identifier, and whether it is passed
// by reference (a leading '&' on the type).
type Arg struct {
	Name  *Ident
	Colon token.Span
	ByRef token.Span // set (non-zero ByteSize) if '&' precedes Type
	Type  *Ident
}

func (n *Arg) IsByRef() bool { return n.ByRef.ByteSize > 0 }

func (n *Arg) Format(f fmt.State, verb rune) {
	lbl := n.Name.Name + ": "
	if n.IsByRef() {
		lbl += "&"
	}
	lbl += n.Type.Name
	format(f, verb, n, lbl, nil)
}
func (n *Arg) Span() token.Span {
	return token.MakeSpan(n.Name.Span().ByteIndex, n.Type.Span().End())
}
func (n *Arg) Walk(v Visitor) {
	Walk(v, n.Name)
	Walk(v, n.Type)
}

type (
	// FuncDef declares a named function: an ordered argument list, an
	// optional return type, and a body block.
	FuncDef struct {
		FuncSpan   token.Span
		Name       *Ident
		Args       []*Arg
		ReturnType *Ident // nil if no "-> Type"
		Body       *Block
	}

	// VarDef declares a local/module variable initialized from an
	// expression.
	VarDef struct {
		VarSpan token.Span
		Name    *Ident
		Eq      token.Span
		Value   Expr
	}

	// TypeDef declares a struct or interface shape. Per spec, the layout
	// engine that gives these runtime representation is an external
	// collaborator outside the core; TypeDef here only records the
	// declared shape. The emitter generates no code for it and does not
	// register the type name.
	TypeDef struct {
		TypeSpan token.Span
		Name     *Ident
		Kind     token.Token // token.STRUCT or token.INTERFACE
		Fields   []*Arg
		RBrace   token.Span
	}

	// ReturnStmt returns from the enclosing function, optionally with a
	// value.
	ReturnStmt struct {
		ReturnSpan token.Span
		Value      Expr // nil for a bare "return"
	}

	// IfStmt is a conditional. At most one of Else and ElseIf is non-nil;
	// Else holds a plain block ("else { ... }"), ElseIf holds a chained
	// conditional ("else if ...").
	IfStmt struct {
		IfSpan token.Span
		Cond   Expr
		Then   *Block
		Else   *Block
		ElseIf *IfStmt
	}

	// ExprStmt is an expression used as a statement (e.g. a call or an
	// assignment).
	ExprStmt struct {
		X Expr
	}
)

func (n *FuncDef) Format(f fmt.State, verb rune) {
	format(f, verb, n, "func "+n.Name.Name, map[string]int{"args": len(n.Args)})
}
func (n *FuncDef) Span() token.Span {
	return token.MakeSpan(n.FuncSpan.ByteIndex, n.Body.Span().End())
}
func (n *FuncDef) Walk(v Visitor) {
	Walk(v, n.Name)
	for _, a := range n.Args {
		Walk(v, a)
	}
	if n.ReturnType != nil {
		Walk(v, n.ReturnType)
	}
	Walk(v, n.Body)
}
func (n *FuncDef) defStmt() {}

func (n *VarDef) Format(f fmt.State, verb rune) {
	format(f, verb, n, "var "+n.Name.Name, nil)
}
func (n *VarDef) Span() token.Span {
	return token.MakeSpan(n.VarSpan.ByteIndex, n.Value.Span().End())
}
func (n *VarDef) Walk(v Visitor) {
	Walk(v, n.Name)
	Walk(v, n.Value)
}
func (n *VarDef) defStmt() {}

func (n *TypeDef) Format(f fmt.State, verb rune) {
	format(f, verb, n, "type "+n.Name.Name+" "+n.Kind.String(), map[string]int{"fields": len(n.Fields)})
}
func (n *TypeDef) Span() token.Span {
	return token.MakeSpan(n.TypeSpan.ByteIndex, n.RBrace.End())
}
func (n *TypeDef) Walk(v Visitor) {
	Walk(v, n.Name)
	for _, fld := range n.Fields {
		Walk(v, fld)
	}
}
func (n *TypeDef) defStmt() {}

func (n *ReturnStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "return", nil) }
func (n *ReturnStmt) Span() token.Span {
	if n.Value == nil {
		return n.ReturnSpan
	}
	return token.MakeSpan(n.ReturnSpan.ByteIndex, n.Value.Span().End())
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *ReturnStmt) defStmt() {}

func (n *IfStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "if", nil) }
func (n *IfStmt) Span() token.Span {
	end := n.Then.Span().End()
	switch {
	case n.ElseIf != nil:
		end = n.ElseIf.Span().End()
	case n.Else != nil:
		end = n.Else.Span().End()
	}
	return token.MakeSpan(n.IfSpan.ByteIndex, end)
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
	if n.ElseIf != nil {
		Walk(v, n.ElseIf)
	}
}
func (n *IfStmt) defStmt() {}

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Span() token.Span              { return n.X.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.X) }
func (n *ExprStmt) defStmt()                      {}
