// Package opscan implements the operator scanner (spec §4.2): the
// first pass over the raw token stream that copies tokens into a
// reusable buffer for the parser's random access while pulling
// user-declared operator precedences out of that stream.
package opscan

import "github.com/tara-lang/tarac/internal/symbols"

// Assoc is a binary operator's associativity.
type Assoc int

const (
	Left Assoc = iota
	Right
	None
)

func (a Assoc) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	case None:
		return "none"
	default:
		return "?"
	}
}

// OpDecl is one entry of the operator table: a declared precedence and
// (for infix operators) associativity.
type OpDecl struct {
	Precedence int
	Assoc      Assoc
}

// Opdecls is the operator table (spec §4.2/glossary): a mapping from
// operator spelling to (precedence, associativity), consulted by the
// Pratt parser. Infix and prefix declarations are tracked separately,
// since the same spelling may plausibly be declared as either (e.g.
// "-" as both binary subtraction and unary negation).
type Opdecls struct {
	infix  map[*symbols.Name]OpDecl
	prefix map[*symbols.Name]OpDecl
}

func newOpdecls() *Opdecls {
	return &Opdecls{
		infix:  make(map[*symbols.Name]OpDecl),
		prefix: make(map[*symbols.Name]OpDecl),
	}
}

// NewOpdecls returns an empty operator table, for callers (such as
// internal/manifest) that need to pre-seed declarations before the
// first file is scanned.
func NewOpdecls() *Opdecls {
	return newOpdecls()
}

// Infix looks up name's infix declaration.
func (o *Opdecls) Infix(name *symbols.Name) (OpDecl, bool) {
	d, ok := o.infix[name]
	return d, ok
}

// Prefix looks up name's prefix declaration.
func (o *Opdecls) Prefix(name *symbols.Name) (OpDecl, bool) {
	d, ok := o.prefix[name]
	return d, ok
}

// DeclareInfix registers an infix declaration made outside of source
// text (a project manifest's pre-seeded operator list). It reports
// false without overwriting if name already has an infix declaration,
// the same duplicate policy in-source `infix` declarations use.
func (o *Opdecls) DeclareInfix(name *symbols.Name, d OpDecl) bool {
	if _, dup := o.infix[name]; dup {
		return false
	}
	o.infix[name] = d
	return true
}

// DeclarePrefix is DeclareInfix's prefix-table counterpart.
func (o *Opdecls) DeclarePrefix(name *symbols.Name, d OpDecl) bool {
	if _, dup := o.prefix[name]; dup {
		return false
	}
	o.prefix[name] = d
	return true
}
