package parser

import (
	"strconv"

	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/opscan"
	"github.com/tara-lang/tarac/internal/token"
)

// parseExpression is the Pratt loop: it parses one prefix term, then
// repeatedly extends it with infix operators and call applications
// whose precedence is at least minPrec (spec §4.4's `expr ::= prefix
// { infix }*`, driven by Opdecls rather than a static table).
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	left := p.parsePrefix()

	lastPrec := -1
	var lastAssoc opscan.Assoc
	for {
		prec, assoc, isCall, ok := p.currentOperatorInfo()
		if !ok || prec < minPrec {
			break
		}
		if lastPrec == prec && (assoc == opscan.None || lastAssoc == opscan.None) {
			p.fail(p.cur, "adjacent none-associative operators of equal precedence")
		}
		if isCall {
			left = p.parseCall(left)
		} else {
			left = p.parseBinary(left, prec, assoc)
		}
		lastPrec, lastAssoc = prec, assoc
	}
	return left
}

// currentOperatorInfo reports the precedence/associativity of the
// current token if it can extend an expression: either a call's open
// paren (fixed, highest precedence) or a declared infix operator.
func (p *Parser) currentOperatorInfo() (prec int, assoc opscan.Assoc, isCall bool, ok bool) {
	if p.cur.Kind == token.LPAREN {
		return callPrec, opscan.Left, true, true
	}
	if p.cur.Kind == token.OP {
		name := p.in.InternString(p.cur.Spelling)
		if decl, found := p.ops.Infix(name); found {
			return decl.Precedence, decl.Assoc, false, true
		}
	}
	return 0, opscan.Left, false, false
}

// parseBinary consumes a declared infix operator and its right operand,
// producing Call{Recall(op), Tuple[left, right]} (spec §4.4).
func (p *Parser) parseBinary(left ast.Expr, prec int, assoc opscan.Assoc) ast.Expr {
	opTok := p.cur
	name := p.in.InternString(opTok.Spelling)
	p.next()

	nextMin := prec + 1
	if assoc == opscan.Right {
		nextMin = prec
	}
	right := p.parseExpression(nextMin)

	callee := &ast.Recall{}
	callee.Tok, callee.Name = opTok, name
	args := &ast.Tuple{Elems: []ast.Expr{left, right}}
	args.Tok = opTok
	call := &ast.Call{Callee: callee, Args: args}
	call.Tok = opTok
	return call
}

// parseCall consumes `(` args `)` applied to callee (the fixed
// highest-precedence postfix form of spec §4.4).
func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	tok := p.cur
	p.next()

	var args ast.Expr
	switch {
	case p.cur.Kind == token.RPAREN:
		u := &ast.Unit{}
		u.Tok = tok
		args = u
		p.next()
	default:
		first := p.parseExpression(Lowest)
		if p.cur.Kind == token.COMMA {
			elems := []ast.Expr{first}
			for p.cur.Kind == token.COMMA {
				p.next()
				elems = append(elems, p.parseExpression(Lowest))
			}
			p.expect(token.RPAREN)
			t := &ast.Tuple{Elems: elems}
			t.Tok = tok
			args = t
		} else {
			p.expect(token.RPAREN)
			args = first
		}
	}

	call := &ast.Call{Callee: callee, Args: args}
	call.Tok = tok
	return call
}

// parsePrefix parses one primary/unary term: the `prefix` half of
// spec §4.4's expression grammar.
func (p *Parser) parsePrefix() ast.Expr {
	switch p.cur.Kind {
	case token.NUMBER:
		return p.parseNumberLit()
	case token.STRING:
		return p.parseStringLit()
	case token.TRUE, token.FALSE:
		return p.parseBoolLit()
	case token.IDENT:
		return p.parseRecall()
	case token.LPAREN:
		return p.parseGroupOrTuple()
	case token.IF:
		return p.parseIf()
	case token.LOOP:
		return p.parseLoop()
	case token.LBRACE:
		return p.parseBareblock()
	case token.OP:
		return p.parsePrefixOp()
	default:
		p.fail(p.cur, "unexpected token in expression: %s %q", p.cur.Kind, p.cur.Spelling)
		return nil
	}
}

func (p *Parser) parsePrefixOp() ast.Expr {
	tok := p.cur
	name := p.in.InternString(tok.Spelling)
	decl, ok := p.ops.Prefix(name)
	if !ok {
		p.fail(tok, "operator %q has no prefix declaration", tok.Spelling)
	}
	p.next()
	operand := p.parseExpression(decl.Precedence)

	callee := &ast.Recall{}
	callee.Tok, callee.Name = tok, name
	call := &ast.Call{Callee: callee, Args: operand}
	call.Tok = tok
	return call
}

func (p *Parser) parseNumberLit() ast.Expr {
	tok := p.cur
	p.next()
	n, err := strconv.ParseInt(tok.Spelling, 10, 64)
	if err != nil {
		p.fail(tok, "invalid integer literal %q", tok.Spelling)
	}
	lit := &ast.NumberLit{Value: n}
	lit.Tok = tok
	return lit
}

func (p *Parser) parseStringLit() ast.Expr {
	tok := p.cur
	p.next()
	lit := &ast.StringLit{Value: tok.Spelling}
	lit.Tok = tok
	return lit
}

func (p *Parser) parseBoolLit() ast.Expr {
	tok := p.cur
	p.next()
	lit := &ast.BoolLit{Value: tok.Kind == token.TRUE}
	lit.Tok = tok
	return lit
}

func (p *Parser) parseRecall() ast.Expr {
	tok := p.cur
	name := p.name()
	r := &ast.Recall{Name: name}
	r.Tok = tok
	return r
}

// parseGroupOrTuple parses `(`, producing Unit for `()`, a plain
// grouped expression for a single parenthesized term, or a Tuple for
// two or more comma-separated terms.
func (p *Parser) parseGroupOrTuple() ast.Expr {
	tok := p.cur
	p.next()
	if p.cur.Kind == token.RPAREN {
		p.next()
		u := &ast.Unit{}
		u.Tok = tok
		return u
	}
	first := p.parseExpression(Lowest)
	if p.cur.Kind != token.COMMA {
		p.expect(token.RPAREN)
		return first
	}
	elems := []ast.Expr{first}
	for p.cur.Kind == token.COMMA {
		p.next()
		elems = append(elems, p.parseExpression(Lowest))
	}
	p.expect(token.RPAREN)
	t := &ast.Tuple{Elems: elems}
	t.Tok = tok
	return t
}

// parseIf implements `if-expr ::= 'if' expr block 'else' (block | if-expr)`.
func (p *Parser) parseIf() ast.Expr {
	tok := p.expect(token.IF)
	cond := p.parseExpression(Lowest)
	then := p.parseBareblock()
	p.expect(token.ELSE)
	var elseExpr ast.Expr
	if p.cur.Kind == token.IF {
		elseExpr = p.parseIf()
	} else {
		elseExpr = p.parseBareblock()
	}
	ifExpr := &ast.If{Cond: cond, Then: then, Else: elseExpr}
	ifExpr.Tok = tok
	return ifExpr
}

// parseLoop implements `loop-expr ::= 'loop' block`.
func (p *Parser) parseLoop() ast.Expr {
	tok := p.expect(token.LOOP)
	body := p.parseBareblock()
	loop := &ast.Loop{Body: body}
	loop.Tok = tok
	return loop
}

// parseBareblock implements `block ::= '{' stmt* '}'`; a trailing
// non-terminated statement is the block's value.
func (p *Parser) parseBareblock() *ast.Bareblock {
	tok := p.expect(token.LBRACE)
	var stmts []ast.Expr
	for p.cur.Kind != token.RBRACE {
		stmt, isTail := p.parseStmt()
		stmts = append(stmts, stmt)
		if isTail {
			break
		}
	}
	p.expect(token.RBRACE)
	b := &ast.Bareblock{Stmts: stmts}
	b.Tok = tok
	return b
}
