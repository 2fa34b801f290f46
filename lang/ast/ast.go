// Package ast defines the abstract syntax tree produced by the parser
// (component C4) and consumed by the bytecode emitter (component C5). It is
// a pure tree: every node exclusively owns its children, with no back-edges
// or shared subtrees. Forward references (a function calling another
// defined later in the module) are resolved by the emitter through a
// function-id arena, not through mutable links in the tree itself.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vuurlang/vuur/lang/token"
)

// Node is any node in the tree.
type Node interface {
	fmt.Formatter
	Span() token.Span
	Walk(v Visitor)
}

// DefStmt is a module- or block-level declaration: one of FuncDef, VarDef,
// TypeDef, ReturnStmt, or a SimpleStmt (IfStmt, ExprStmt).
type DefStmt interface {
	Node
	defStmt()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Ident is a bare name, used both as the Name field of declarations and as
// the leaves of a MemberPath; a read of an identifier as an expression is
// represented by NameAccess, which wraps one.
type Ident struct {
	NameSpan token.Span
	Name     string
}

func (n *Ident) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name, nil) }
func (n *Ident) Span() token.Span              { return n.NameSpan }
func (n *Ident) Walk(Visitor)                  {}
func (n *Ident) isMemberPath()                 {}

// Module is the root node: an ordered sequence of top-level declarations.
type Module struct {
	Name  string // source filename, may be empty
	Stmts []DefStmt
	EOF   token.Span
}

func (n *Module) Format(f fmt.State, verb rune) {
	lbl := "module"
	if n.Name != "" {
		lbl += " " + n.Name
	}
	format(f, verb, n, lbl, map[string]int{"stmts": len(n.Stmts)})
}
func (n *Module) Span() token.Span {
	if len(n.Stmts) == 0 {
		return n.EOF
	}
	start := n.Stmts[0].Span()
	end := n.Stmts[len(n.Stmts)-1].Span()
	return token.MakeSpan(start.ByteIndex, end.End())
}
func (n *Module) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// Block is a brace-delimited sequence of declarations, the body of a
// function or of an if/else branch.
type Block struct {
	LBrace, RBrace token.Span
	Stmts          []DefStmt
}

func (n *Block) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *Block) Span() token.Span {
	return token.MakeSpan(n.LBrace.ByteIndex, n.RBrace.End())
}
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// format renders a node the way the rest of this package's nodes do:
// indentation is the caller's responsibility (see Printer), this only
// formats the node's own one-line label.
func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "\\n")
	label = strings.ReplaceAll(label, "\n", "\\n")
	label = strings.ReplaceAll(label, "\t", "\\t")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		switch {
		case len(runes) >= w:
			runes = runes[:w]
		case minus:
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		case !plus:
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
