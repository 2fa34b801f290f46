package parser

import (
	"github.com/vuurlang/vuur/lang/ast"
	"github.com/vuurlang/vuur/lang/token"
)

// precedence is a level on the Pratt ladder named in spec §4.4. Not every
// level has a token bound to it yet (Conditional, the logical/bitwise/Is/
// Range tiers are reserved for operators outside the arithmetic core this
// module implements), but the ladder is named in full so that adding one
// later is a matter of filling in infixPrecedence, not renumbering.
type precedence int

const (
	precNone precedence = iota
	precLowest
	precAssignment
	precConditional
	precLogicalOr
	precLogicalAnd
	precEquality
	precIs
	precComparison
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precBitwiseShift
	precRange
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

// infixPrecedence returns the precedence of tok used as an infix/postfix
// operator, or precNone if tok cannot continue an expression.
func infixPrecedence(tok token.Token) precedence {
	switch tok {
	case token.EQ:
		return precAssignment
	case token.EQEQ, token.BANGEQ:
		return precEquality
	case token.LT, token.GT, token.LE, token.GE:
		return precComparison
	case token.PLUS, token.MINUS:
		return precTerm
	case token.STAR, token.SLASH, token.PERCENT:
		return precFactor
	case token.LPAREN, token.DOT:
		return precCall
	default:
		return precNone
	}
}

// parseExpr parses an expression, consuming infix/postfix operators whose
// precedence is at least minPrec.
func (p *parser) parseExpr(minPrec precedence) ast.Expr {
	left := p.parsePrefix()
	for {
		prec := infixPrecedence(p.cur.tok)
		if prec < minPrec || prec == precNone {
			break
		}
		left = p.parseInfix(left, prec)
	}
	return left
}

// parsePrefix parses one of the prefix handlers: number literal, "("
// group, identifier (the start of a postfix chain), or a unary operator.
// An anonymous "func" expression is not implemented, since the arithmetic
// core this parses has no ast node for it (only named FuncDef exists).
func (p *parser) parsePrefix() ast.Expr {
	switch {
	case p.cur.tok == token.NUMBER:
		return p.parseNumLit()
	case p.cur.tok == token.LPAREN:
		return p.parseGroup()
	case p.cur.tok == token.IDENT:
		return &ast.NameAccess{Name: p.parseIdent()}
	case p.cur.tok.IsUnop():
		return p.parseUnary()
	default:
		p.fail(p.cur.span, "expected expression, found %s", p.curLiteral())
		panic("unreachable")
	}
}

func (p *parser) parseNumLit() *ast.NumLit {
	e := p.cur
	p.advance()
	return &ast.NumLit{LitSpan: e.span, Raw: e.val.Raw, Bits: e.val.Bits, NumFormat: e.val.Format}
}

func (p *parser) parseGroup() *ast.Group {
	lparen := p.expect(token.LPAREN)
	x := p.parseExpr(precLowest)
	rparen := p.expect(token.RPAREN)
	return &ast.Group{LParen: lparen, RParen: rparen, X: x}
}

func (p *parser) parseUnary() *ast.Unary {
	op := p.cur.tok
	opSpan := p.cur.span
	p.advance()
	x := p.parseExpr(precUnary)
	return &ast.Unary{Op: op, OpSpan: opSpan, X: x}
}

// parseInfix dispatches the token already known (by infixPrecedence) to
// continue the expression left is the head of.
func (p *parser) parseInfix(left ast.Expr, prec precedence) ast.Expr {
	switch p.cur.tok {
	case token.EQ:
		return p.parseAssign(left)
	case token.LPAREN:
		return p.parseCall(left)
	case token.DOT:
		return p.parseMemberAccess(left)
	default:
		return p.parseBinary(left, prec)
	}
}

func (p *parser) parseBinary(left ast.Expr, prec precedence) ast.Expr {
	op := p.cur.tok
	p.advance()
	// left-associative: the recursive call excludes operators at this same
	// precedence, so they bubble back up to this loop instead of binding to
	// the right-hand operand.
	right := p.parseExpr(prec + 1)
	return &ast.Binary{Op: op, L: left, R: right}
}

// parseAssign turns the chain into an Assign or MemberAssign, depending on
// whether left is a plain name or a member access; any other left-hand
// side is an error.
func (p *parser) parseAssign(left ast.Expr) ast.Expr {
	eq := p.cur.span
	p.advance()
	// right-associative: recurse at the same precedence so a chained
	// "a = b = c" nests as a = (b = c).
	value := p.parseExpr(precAssignment)

	switch lhs := left.(type) {
	case *ast.NameAccess:
		return &ast.Assign{Name: lhs.Name, Eq: eq, Value: value}
	case *ast.MemberAccess:
		return &ast.MemberAssign{Path: lhs.Path, Dot: lhs.Dot, Name: lhs.Name, Eq: eq, Value: value}
	default:
		p.fail(left.Span(), "invalid assignment target")
		panic("unreachable")
	}
}

// parseMemberAccess parses ".": the next token must be an identifier,
// producing a MemberAccess whose Path reshapes left into a MemberPath.
func (p *parser) parseMemberAccess(left ast.Expr) ast.Expr {
	dot := p.cur.span
	p.advance()
	var path ast.MemberPath
	switch l := left.(type) {
	case *ast.NameAccess:
		path = l.Name
	case *ast.MemberAccess:
		path = l
	default:
		p.fail(left.Span(), "invalid member access target")
	}
	name := p.parseIdent()
	return &ast.MemberAccess{Path: path, Dot: dot, Name: name}
}

// parseCall parses a "(" argument list, comma-separated expressions,
// terminated by ")" or end-of-file (an error).
func (p *parser) parseCall(callee ast.Expr) ast.Expr {
	lparen := p.expect(token.LPAREN)
	var args []ast.CallArg
	if p.cur.tok != token.RPAREN {
		args = append(args, p.parseCallArg())
		for p.cur.tok == token.COMMA {
			p.advance()
			args = append(args, p.parseCallArg())
		}
	}
	if p.cur.tok == token.EOF {
		p.fail(p.cur.span, "expected %s, found %s", token.RPAREN.GoString(), p.curLiteral())
	}
	rparen := p.expect(token.RPAREN)
	return &ast.Call{Callee: callee, LParen: lparen, Args: args, RParen: rparen}
}

// parseCallArg parses one call argument: name: value if an identifier is
// immediately followed by ":", a trailing block if "{" opens one, or a
// plain positional expression otherwise.
func (p *parser) parseCallArg() ast.CallArg {
	if p.cur.tok == token.LBRACE {
		return &ast.BlockArg{X: p.parseBlock()}
	}
	if p.cur.tok == token.IDENT {
		e := p.ts.peek()
		p.ts.resetPeek()
		if e.tok == token.COLON {
			name := p.parseIdent()
			colon := p.cur.span
			p.advance()
			return &ast.NamedArg{Name: name, Colon: colon, X: p.parseExpr(precLowest)}
		}
	}
	return &ast.PositionalArg{X: p.parseExpr(precLowest)}
}
