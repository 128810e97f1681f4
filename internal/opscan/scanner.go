package opscan

import (
	"strconv"

	"github.com/tara-lang/tarac/internal/diagnostics"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/token"
)

// tokenSource is satisfied by *lexer.Lexer; declared here instead of
// imported so opscan does not need to import lexer directly.
type tokenSource interface {
	NextToken() token.Token
}

// Buffer is the parser's random-access view of one file's tokens, with
// operator declarations already stripped out (spec §4.2: the parser's
// grammar has no production for them — they are purely a first-pass
// concern).
type Buffer struct {
	Tokens []token.Token
}

func (b Buffer) At(i int) token.Token {
	if i >= len(b.Tokens) {
		return b.Tokens[len(b.Tokens)-1] // EOF, always last
	}
	return b.Tokens[i]
}

// Scan makes one pass over src's tokens, copying everything but
// operator declarations into a Buffer and recording every infix/prefix
// declaration into an Opdecls table (spec §4.2). It does not balance
// parentheses or otherwise parse expressions; "infix"/"prefix" is
// recognized wherever it appears in the raw stream.
//
// Grammar recognized for a declaration:
//
//	infix  <precedence:NUMBER> <assoc:left|right|none> <spelling:OP|IDENT>
//	prefix <precedence:NUMBER> <spelling:OP|IDENT>
//
// Prefix operators have no associativity: unary application never
// chains two prefix operators of ambiguous order the way infix chains
// do, so there is nothing for an associativity to disambiguate.
func Scan(src tokenSource, in *symbols.Interner) (Buffer, *Opdecls, *diagnostics.Bag) {
	return ScanInto(src, in, newOpdecls())
}

// ScanInto is Scan but accepts a pre-seeded Opdecls (e.g. one a project
// manifest has already populated, spec §4.2) instead of always
// starting from an empty table. In-source infix/prefix declarations
// are added to ops alongside whatever it already holds; a spelling the
// manifest declared and the source redeclares is reported as a
// duplicate, the same as two in-source declarations would be.
func ScanInto(src tokenSource, in *symbols.Interner, ops *Opdecls) (Buffer, *Opdecls, *diagnostics.Bag) {
	bag := &diagnostics.Bag{}
	var tokens []token.Token

	for {
		tok := src.NextToken()
		switch tok.Kind {
		case token.INFIX:
			declareInfix(src, in, ops, bag, tok)
		case token.PREFIXOP:
			declarePrefix(src, in, ops, bag, tok)
		case token.EOF:
			tokens = append(tokens, tok)
			return Buffer{Tokens: tokens}, ops, bag
		case token.ILLEGAL:
			bag.Add(diagnostics.LexError(tok, tok.Spelling))
			tokens = append(tokens, tok)
		default:
			tokens = append(tokens, tok)
		}
	}
}

func declareInfix(src tokenSource, in *symbols.Interner, ops *Opdecls, bag *diagnostics.Bag, kw token.Token) {
	prec, ok := expectNumber(src, bag, kw)
	if !ok {
		return
	}
	assoc, ok := expectAssoc(src, bag, kw)
	if !ok {
		return
	}
	name, ok := expectSpelling(src, in, bag, kw)
	if !ok {
		return
	}
	if _, dup := ops.infix[name]; dup {
		bag.Add(diagnostics.OpDeclError(kw, "duplicate infix declaration for %q", name.String()))
		return
	}
	ops.infix[name] = OpDecl{Precedence: prec, Assoc: assoc}
}

func declarePrefix(src tokenSource, in *symbols.Interner, ops *Opdecls, bag *diagnostics.Bag, kw token.Token) {
	prec, ok := expectNumber(src, bag, kw)
	if !ok {
		return
	}
	name, ok := expectSpelling(src, in, bag, kw)
	if !ok {
		return
	}
	if _, dup := ops.prefix[name]; dup {
		bag.Add(diagnostics.OpDeclError(kw, "duplicate prefix declaration for %q", name.String()))
		return
	}
	ops.prefix[name] = OpDecl{Precedence: prec, Assoc: None}
}

func expectNumber(src tokenSource, bag *diagnostics.Bag, kw token.Token) (int, bool) {
	tok := src.NextToken()
	if tok.Kind != token.NUMBER {
		bag.Add(diagnostics.OpDeclError(kw, "malformed operator declaration: expected a precedence number, got %s", tok.Kind))
		return 0, false
	}
	n, err := strconv.Atoi(tok.Spelling)
	if err != nil {
		bag.Add(diagnostics.OpDeclError(tok, "malformed precedence %q", tok.Spelling))
		return 0, false
	}
	return n, true
}

func expectAssoc(src tokenSource, bag *diagnostics.Bag, kw token.Token) (Assoc, bool) {
	tok := src.NextToken()
	switch tok.Kind {
	case token.LEFT:
		return Left, true
	case token.RIGHT:
		return Right, true
	case token.NONE:
		return None, true
	default:
		bag.Add(diagnostics.OpDeclError(kw, "malformed operator declaration: expected left|right|none, got %s", tok.Kind))
		return None, false
	}
}

func expectSpelling(src tokenSource, in *symbols.Interner, bag *diagnostics.Bag, kw token.Token) (*symbols.Name, bool) {
	tok := src.NextToken()
	if tok.Kind != token.OP && tok.Kind != token.IDENT {
		bag.Add(diagnostics.OpDeclError(kw, "malformed operator declaration: expected an operator spelling, got %s", tok.Kind))
		return nil, false
	}
	return in.InternString(tok.Spelling), true
}
