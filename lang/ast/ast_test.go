package ast_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vuurlang/vuur/lang/ast"
	"github.com/vuurlang/vuur/lang/token"
)

func ident(name string, start uint32) *ast.Ident {
	return &ast.Ident{Name: name, NameSpan: token.MakeSpan(start, start+uint32(len(name)))}
}

func TestModuleSpanCoversAllStmts(t *testing.T) {
	ret := &ast.ReturnStmt{ReturnSpan: token.MakeSpan(10, 16)}
	mod := &ast.Module{Stmts: []ast.DefStmt{ret}, EOF: token.MakeSpan(20, 20)}
	sp := mod.Span()
	require.Equal(t, uint32(10), sp.ByteIndex)
	require.Equal(t, uint32(16), sp.End())
}

func TestEmptyModuleSpanIsEOF(t *testing.T) {
	mod := &ast.Module{EOF: token.MakeSpan(5, 5)}
	require.Equal(t, token.MakeSpan(5, 5), mod.Span())
}

func TestMemberAccessChain(t *testing.T) {
	// a.b.c: path of the outer access is the MemberAccess for a.b.
	base := &ast.NameAccess{Name: ident("a", 0)}
	inner := &ast.MemberAccess{Path: ident("a", 0), Dot: token.MakeSpan(1, 2), Name: ident("b", 2)}
	outer := &ast.MemberAccess{Path: inner, Dot: token.MakeSpan(3, 4), Name: ident("c", 4)}

	require.Equal(t, "c", outer.Name.Name)
	chained, ok := outer.Path.(*ast.MemberAccess)
	require.True(t, ok)
	require.Equal(t, "b", chained.Name.Name)
	require.Equal(t, uint32(0), outer.Span().ByteIndex)
	require.Equal(t, uint32(5), outer.Span().End())
	_ = base
}

func TestIfStmtElseIfIsMutuallyExclusiveWithElse(t *testing.T) {
	then := &ast.Block{LBrace: token.MakeSpan(0, 1), RBrace: token.MakeSpan(1, 2)}
	elseBlock := &ast.Block{LBrace: token.MakeSpan(3, 4), RBrace: token.MakeSpan(4, 5)}
	ifStmt := &ast.IfStmt{IfSpan: token.MakeSpan(0, 2), Then: then, Else: elseBlock}
	require.Nil(t, ifStmt.ElseIf)
	require.Equal(t, uint32(5), ifStmt.Span().End())
}

func TestWalkVisitsEveryNode(t *testing.T) {
	name := ident("add", 5)
	body := &ast.Block{LBrace: token.MakeSpan(20, 21), RBrace: token.MakeSpan(21, 22)}
	fn := &ast.FuncDef{
		FuncSpan: token.MakeSpan(0, 4),
		Name:     name,
		Args:     []*ast.Arg{{Name: ident("x", 10), Type: ident("int", 13)}},
		Body:     body,
	}
	mod := &ast.Module{Stmts: []ast.DefStmt{fn}, EOF: token.MakeSpan(22, 22)}

	var visited []ast.Node
	var visitor ast.VisitorFunc
	visitor = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		visited = append(visited, n)
		return visitor
	}
	ast.Walk(visitor, mod)

	require.Equal(t, []ast.Node{mod, fn, name, fn.Args[0], fn.Args[0].Name, fn.Args[0].Type, body}, visited)
}

func TestPrinterProducesOneLinePerNode(t *testing.T) {
	mod := &ast.Module{
		Stmts: []ast.DefStmt{
			&ast.VarDef{VarSpan: token.MakeSpan(0, 3), Name: ident("x", 4), Value: &ast.NumLit{LitSpan: token.MakeSpan(8, 9), Raw: "1", Bits: 1}},
		},
		EOF: token.MakeSpan(9, 9),
	}
	var buf bytes.Buffer
	p := &ast.Printer{Output: &buf}
	require.NoError(t, p.Print(mod))
	out := buf.String()
	require.Contains(t, out, "module")
	require.Contains(t, out, "var x")
}
