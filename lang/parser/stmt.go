package parser

import (
	"github.com/vuurlang/vuur/lang/ast"
	"github.com/vuurlang/vuur/lang/token"
)

// parseModule parses Module := (DefStmt)*.
func (p *parser) parseModule() *ast.Module {
	p.ts.ignoreMany(token.NEWLINE)
	p.cur = p.ts.current()
	var stmts []ast.DefStmt
	for p.cur.tok != token.EOF {
		stmts = append(stmts, p.parseDefStmt())
		p.endStmt()
	}
	return &ast.Module{Stmts: stmts, EOF: p.cur.span}
}

// endStmt requires the current statement to be terminated: a newline
// (possibly several, folded away), or a token that naturally closes the
// enclosing block (EOF or '}').
func (p *parser) endStmt() {
	switch p.cur.tok {
	case token.NEWLINE:
		p.ts.ignoreMany(token.NEWLINE)
		p.cur = p.ts.current()
	case token.EOF, token.RBRACE:
		// the enclosing Module/Block consumes this terminator itself.
	default:
		p.fail(p.cur.span, "expected newline, found %s", p.curLiteral())
	}
}

// parseDefStmt parses one DefStmt production.
func (p *parser) parseDefStmt() ast.DefStmt {
	switch p.cur.tok {
	case token.FUNC:
		return p.parseFuncDef()
	case token.VAR:
		return p.parseVarDef()
	case token.TYPE:
		return p.parseTypeDef()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.IF:
		return p.parseIfStmt()
	default:
		return &ast.ExprStmt{X: p.parseExpr(precLowest)}
	}
}

// parseBlock parses Block := "{" DefStmt* "}".
func (p *parser) parseBlock() *ast.Block {
	lbrace := p.expect(token.LBRACE)
	p.ts.ignoreMany(token.NEWLINE)
	p.cur = p.ts.current()

	var stmts []ast.DefStmt
	for p.cur.tok != token.RBRACE {
		stmts = append(stmts, p.parseDefStmt())
		p.endStmt()
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.Block{LBrace: lbrace, RBrace: rbrace, Stmts: stmts}
}

// parseFuncDef parses FuncDef := "func" Ident "(" Args ")" ("->" Type)? Block.
func (p *parser) parseFuncDef() *ast.FuncDef {
	funcSpan := p.expect(token.FUNC)
	name := p.parseIdent()

	p.expect(token.LPAREN)
	var args []*ast.Arg
	if p.cur.tok != token.RPAREN {
		args = append(args, p.parseArg())
		for p.cur.tok == token.COMMA {
			p.advance()
			args = append(args, p.parseArg())
		}
	}
	p.expect(token.RPAREN)

	var retType *ast.Ident
	if p.cur.tok == token.ARROW {
		p.advance()
		retType = p.parseIdent()
	}

	body := p.parseBlock()
	return &ast.FuncDef{FuncSpan: funcSpan, Name: name, Args: args, ReturnType: retType, Body: body}
}

// parseArg parses Arg := Ident ":" "&"? Ident.
func (p *parser) parseArg() *ast.Arg {
	name := p.parseIdent()
	colon := p.expect(token.COLON)
	var byRef token.Span
	if p.cur.tok == token.AMPERSAND {
		byRef = p.cur.span
		p.advance()
	}
	typ := p.parseIdent()
	return &ast.Arg{Name: name, Colon: colon, ByRef: byRef, Type: typ}
}

// parseVarDef parses VarDef := "var" Ident "=" Expr.
func (p *parser) parseVarDef() *ast.VarDef {
	varSpan := p.expect(token.VAR)
	name := p.parseIdent()
	eq := p.expect(token.EQ)
	value := p.parseExpr(precLowest)
	return &ast.VarDef{VarSpan: varSpan, Name: name, Eq: eq, Value: value}
}

// parseTypeDef parses a struct/interface declaration: the layout engine
// that gives these runtime representation lives outside the core (spec's
// external collaborators), so this only records the declared shape.
func (p *parser) parseTypeDef() *ast.TypeDef {
	typeSpan := p.expect(token.TYPE)
	name := p.parseIdent()
	if p.cur.tok != token.STRUCT && p.cur.tok != token.INTERFACE {
		p.fail(p.cur.span, "expected %s or %s, found %s", token.STRUCT.GoString(), token.INTERFACE.GoString(), p.curLiteral())
	}
	kind := p.cur.tok
	p.advance()

	p.expect(token.LBRACE)
	p.ts.ignoreMany(token.NEWLINE)
	p.cur = p.ts.current()
	var fields []*ast.Arg
	for p.cur.tok != token.RBRACE {
		fields = append(fields, p.parseArg())
		switch p.cur.tok {
		case token.COMMA, token.NEWLINE:
			p.ts.ignoreMany(token.COMMA)
			p.ts.ignoreMany(token.NEWLINE)
			p.cur = p.ts.current()
		}
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.TypeDef{TypeSpan: typeSpan, Name: name, Kind: kind, Fields: fields, RBrace: rbrace}
}

// parseReturnStmt parses "return" Expr?.
func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	returnSpan := p.expect(token.RETURN)
	var value ast.Expr
	if p.cur.tok != token.NEWLINE && p.cur.tok != token.EOF && p.cur.tok != token.RBRACE {
		value = p.parseExpr(precLowest)
	}
	return &ast.ReturnStmt{ReturnSpan: returnSpan, Value: value}
}

// parseIfStmt parses IfStmt := "if" Expr Block ("else" (IfStmt | Block))?.
func (p *parser) parseIfStmt() *ast.IfStmt {
	ifSpan := p.expect(token.IF)
	cond := p.parseExpr(precLowest)
	then := p.parseBlock()

	stmt := &ast.IfStmt{IfSpan: ifSpan, Cond: cond, Then: then}
	if p.cur.tok == token.ELSE {
		p.advance()
		if p.cur.tok == token.IF {
			stmt.ElseIf = p.parseIfStmt()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}
