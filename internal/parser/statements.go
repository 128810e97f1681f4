package parser

import (
	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/token"
)

// parseStmt implements one alternative of spec §4.4's:
//
//	stmt ::= 'let' binding '=' expr | 'mut' binding '=' expr
//	        | 'break' expr | 'return' expr | NAME '=' expr | expr
//
// terminated by ';'. A bare expression, break, or return may omit the
// ';' as the block's final statement; let, mut, and assignment always
// require it. It reports whether the statement was left unterminated
// (isTail), which ends the block.
func (p *Parser) parseStmt() (stmt ast.Expr, isTail bool) {
	switch p.cur.Kind {
	case token.LET:
		return p.parseLet(), false
	case token.MUT:
		return p.parseMut(), false
	case token.BREAK:
		return p.parseBreak()
	case token.RETURN:
		return p.parseReturn()
	}
	if p.cur.Kind == token.IDENT && p.peek.Kind == token.ASSIGN {
		return p.parseAssign(), false
	}

	tok := p.cur
	e := p.parseExpression(Lowest)
	if p.cur.Kind == token.SEMI {
		p.next()
		c := &ast.Const{Inner: e}
		c.Tok = tok
		return c, false
	}
	return e, true
}

func (p *Parser) parseLet() ast.Expr {
	tok := p.expect(token.LET)
	bind := p.parseBinding()
	p.expect(token.ASSIGN)
	init := p.parseExpression(Lowest)
	p.expect(token.SEMI)
	let := &ast.Let{Bind: bind, Init: init}
	let.Tok = tok
	return let
}

func (p *Parser) parseMut() ast.Expr {
	tok := p.expect(token.MUT)
	bind := p.parseBinding()
	p.expect(token.ASSIGN)
	init := p.parseExpression(Lowest)
	p.expect(token.SEMI)
	mut := &ast.Mut{Bind: bind, Init: init}
	mut.Tok = tok
	return mut
}

// parseBreak allows an omitted value (bare `break;`), which the type
// checker treats as breaking with unit (spec §4.5). Like any other
// statement, break ends the enclosing block as its tail expression
// when it has no trailing ';' (spec §8's `loop { break 7 }`).
func (p *Parser) parseBreak() (stmt ast.Expr, isTail bool) {
	tok := p.expect(token.BREAK)
	var val ast.Expr
	if p.cur.Kind != token.SEMI && p.cur.Kind != token.RBRACE {
		val = p.parseExpression(Lowest)
	}
	b := &ast.Break{Value: val}
	b.Tok = tok
	if p.cur.Kind == token.SEMI {
		p.next()
		return b, false
	}
	return b, true
}

// parseReturn ends the enclosing block as its tail expression when it
// has no trailing ';' (spec §8's `if true { return 1 } else { x }`).
func (p *Parser) parseReturn() (stmt ast.Expr, isTail bool) {
	tok := p.expect(token.RETURN)
	val := p.parseExpression(Lowest)
	r := &ast.Return{Value: val}
	r.Tok = tok
	if p.cur.Kind == token.SEMI {
		p.next()
		return r, false
	}
	return r, true
}

func (p *Parser) parseAssign() ast.Expr {
	tok := p.cur
	name := p.name()
	p.expect(token.ASSIGN)
	val := p.parseExpression(Lowest)
	p.expect(token.SEMI)
	a := &ast.Assign{Name: name, Value: val}
	a.Tok = tok
	return a
}
