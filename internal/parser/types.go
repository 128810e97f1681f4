package parser

import (
	"github.com/tara-lang/tarac/internal/token"
	"github.com/tara-lang/tarac/internal/types"
)

// parseType implements:
//
//	type ::= NAME | type '->' type
//	       | ctor '(' type (',' type)* ')'
//	       | '(' type (',' type)+ ')'
//	ctor  ::= NAME | OP
//
// Types are interned immediately as they are parsed (spec §4.4), so a
// *types.Type returned here is already canonical. A ctor may be spelled
// with an operator token (chiefly '*', the product/tuple constructor
// from internal/types.Table.Star), since the grammar's NAME production
// never covers operator-spelled names and `*(int, bool)` is the only
// surface syntax for a product type annotation.
func (p *Parser) parseType() *types.Type {
	left := p.parsePrimaryType()
	if p.cur.Kind == token.ARROW {
		p.next()
		right := p.parseType() // right-associative: a -> b -> c is a -> (b -> c)
		return p.tb.Func(left, right)
	}
	return left
}

func (p *Parser) parsePrimaryType() *types.Type {
	switch p.cur.Kind {
	case token.IDENT, token.OP:
		tok := p.cur
		p.next()
		name := p.in.InternString(tok.Spelling)
		if name == p.wk.Unit && p.cur.Kind != token.LPAREN {
			return p.tb.Unit()
		}
		base := p.tb.Recall(name)
		if p.cur.Kind == token.LPAREN {
			p.next()
			elems := []*types.Type{p.parseType()}
			for p.cur.Kind == token.COMMA {
				p.next()
				elems = append(elems, p.parseType())
			}
			p.expect(token.RPAREN)
			if len(elems) == 1 {
				return p.tb.Call(base, elems[0])
			}
			return p.tb.Call(base, p.tb.TupleOf(elems))
		}
		return base
	case token.LPAREN:
		p.next()
		first := p.parseType()
		if p.cur.Kind != token.COMMA {
			p.expect(token.RPAREN)
			return first // grouping, not a tuple
		}
		elems := []*types.Type{first}
		for p.cur.Kind == token.COMMA {
			p.next()
			elems = append(elems, p.parseType())
		}
		p.expect(token.RPAREN)
		return p.tb.TupleOf(elems)
	default:
		p.fail(p.cur, "expected a type, got %s %q", p.cur.Kind, p.cur.Spelling)
		return nil
	}
}
