// Package parser implements the Pratt expression parser of spec §4.4:
// it consumes the operator scanner's token Buffer and the dynamic
// Opdecls table it produced, and emits an untyped Ast.
//
// Unlike a parser built against a fixed, compiled-in operator roster,
// every binary and unary operator's precedence comes from Opdecls,
// looked up by interned spelling at parse time instead of through a
// static token-kind→precedence map.
package parser

import (
	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/diagnostics"
	"github.com/tara-lang/tarac/internal/opscan"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/token"
	"github.com/tara-lang/tarac/internal/types"
)

// callPrec is the precedence of function application `f(args)`. It is
// fixed above any user-declared precedence, since Opdecls only assigns
// precedences to operator spellings, never to call syntax.
const callPrec = 1 << 30

// Lowest is the minimum precedence parseExpression is ever called with.
const Lowest = 0

// parseAbort unwinds the recursive descent on a fatal syntax error
// (spec §7: Parse errors abort their stage, no recovery within it).
type parseAbort struct{}

// Parser holds one file's parsing state.
type Parser struct {
	buf opscan.Buffer
	ops *opscan.Opdecls
	in  *symbols.Interner
	tb  *types.Table
	wk  symbols.Symbols

	pos  int
	cur  token.Token
	peek token.Token

	bag *diagnostics.Bag
}

// New creates a Parser over buf, consulting ops for operator
// precedence/associativity and tb for interning parsed type
// annotations on the fly.
func New(buf opscan.Buffer, ops *opscan.Opdecls, in *symbols.Interner, tb *types.Table, wk symbols.Symbols) *Parser {
	p := &Parser{buf: buf, ops: ops, in: in, tb: tb, wk: wk, bag: &diagnostics.Bag{}}
	p.cur = p.buf.At(0)
	p.peek = p.buf.At(1)
	return p
}

func (p *Parser) next() {
	p.pos++
	p.cur = p.peek
	p.peek = p.buf.At(p.pos + 1)
}

func (p *Parser) fail(tok token.Token, format string, args ...interface{}) {
	p.bag.Add(diagnostics.ParseError(tok, format, args...))
	panic(parseAbort{})
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.cur.Kind != k {
		p.fail(p.cur, "expected %s, got %s %q", k, p.cur.Kind, p.cur.Spelling)
	}
	tok := p.cur
	p.next()
	return tok
}

func (p *Parser) name() *symbols.Name {
	tok := p.expect(token.IDENT)
	return p.in.InternString(tok.Spelling)
}

// Parse runs the parser to completion, returning the Ast and any
// errors collected. A single Parse error aborts the whole file (spec
// §7), so the returned Bag holds at most one Parse error and nothing
// else; Lex errors stay in the operator scanner's own Bag.
func Parse(buf opscan.Buffer, ops *opscan.Opdecls, in *symbols.Interner, tb *types.Table, wk symbols.Symbols) (result *ast.Ast, bag *diagnostics.Bag) {
	p := New(buf, ops, in, tb, wk)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseAbort); ok {
				result = nil
				bag = p.bag
				return
			}
			panic(r)
		}
	}()
	a := p.parseAst()
	return a, p.bag
}

func (p *Parser) parseAst() *ast.Ast {
	a := &ast.Ast{}
	for p.cur.Kind != token.EOF {
		a.Functions = append(a.Functions, p.parseFunction())
	}
	return a
}

// parseFunction implements `function ::= 'func' NAME binding ':' type expr`.
func (p *Parser) parseFunction() *ast.Function {
	tok := p.expect(token.FUNC)
	name := p.name()
	args := p.parseBinding()
	p.expect(token.COLON)
	ret := p.parseType()
	body := p.parseExprStmtValue()
	return &ast.Function{Name: name, Args: args, Ret: ret, Body: body, Tok: tok}
}

// parseBinding implements `binding ::= '(' [binding (',' binding)*] ')' | NAME ':' type | ε`.
// An empty parenthesized list `()` is the ε case (spec §3: empty binding
// derives unit). A single parenthesized binding unwraps rather than
// wrapping in a one-element tuple (forbidden at the type layer).
func (p *Parser) parseBinding() *ast.Binding {
	switch p.cur.Kind {
	case token.LPAREN:
		tok := p.cur
		p.next()
		if p.cur.Kind == token.RPAREN {
			p.next()
			return &ast.Binding{Kind: ast.BindEmpty, Tok: tok}
		}
		first := p.parseBinding()
		if p.cur.Kind != token.COMMA {
			p.expect(token.RPAREN)
			return first
		}
		elems := []*ast.Binding{first}
		for p.cur.Kind == token.COMMA {
			p.next()
			elems = append(elems, p.parseBinding())
		}
		p.expect(token.RPAREN)
		return &ast.Binding{Kind: ast.BindTuple, Elems: elems, Tok: tok}
	case token.IDENT:
		tok := p.cur
		name := p.name()
		p.expect(token.COLON)
		annot := p.parseType()
		return &ast.Binding{Kind: ast.BindName, Name: name, Annot: annot, Tok: tok}
	default:
		p.fail(p.cur, "expected a binding, got %s %q", p.cur.Kind, p.cur.Spelling)
		return nil
	}
}

// parseExprStmtValue parses a function body: either a bare expression
// or a block, both of which are themselves Expr (spec §3).
func (p *Parser) parseExprStmtValue() ast.Expr {
	return p.parseExpression(Lowest)
}
