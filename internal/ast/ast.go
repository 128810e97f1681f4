// Package ast defines the untyped tree the parser produces (spec §3).
// Each concrete node is a distinct Go type implementing Expr; callers
// dispatch with a type switch (spec §9's Design Notes: "switch
// exhaustively; no fallthrough") rather than double-dispatch visitors.
package ast

import (
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/token"
	"github.com/tara-lang/tarac/internal/types"
)

// Expr is any expression-tagged node, including the statement forms
// (Let, Mut, Break, Return, Assign, Const) that spec §3 keeps
// expression-tagged. Every Expr carries a *types.Type slot that starts
// nil ("unknown", distinct from unit) and is filled in by the type
// checker (spec §4.4's "unknown vs unit" invariant).
type Expr interface {
	Pos() token.Token
	Type() *types.Type
	SetType(*types.Type)
	exprNode()
}

type base struct {
	Tok token.Token
	typ *types.Type
}

func (b *base) Pos() token.Token      { return b.Tok }
func (b *base) Type() *types.Type     { return b.typ }
func (b *base) SetType(t *types.Type) { b.typ = t }
func (b *base) exprNode()             {}

// --- Literals ---

type Unit struct{ base }

type NumberLit struct {
	base
	Value int64
}

type StringLit struct {
	base
	Value string
}

type BoolLit struct {
	base
	Value bool
}

// Recall is a bare identifier reference, resolved against the
// environment during type checking (spec §4.5).
type Recall struct {
	base
	Name *symbols.Name
}

// --- Compound expressions ---

type If struct {
	base
	Cond, Then, Else Expr
}

type Loop struct {
	base
	Body Expr
}

// Bareblock is `{ stmt* }`; its value is its trailing non-terminated
// expression statement. A block ending in a break or return is
// divergent; any other block yields unit.
type Bareblock struct {
	base
	Stmts []Expr
}

// Call covers both user-operator application (callee = Recall(opname))
// and ordinary function calls (spec §4.4).
type Call struct {
	base
	Callee Expr
	Args   Expr
}

// Tuple is an anonymous tuple expression, elements in left-to-right
// source order (spec §9's chosen tuple order).
type Tuple struct {
	base
	Elems []Expr
}

// --- Statement forms (still expression-tagged per spec §3) ---

type Let struct {
	base
	Bind *Binding
	Init Expr
}

type Mut struct {
	base
	Bind *Binding
	Init Expr
}

type Break struct {
	base
	Value Expr // nil if bare `break` with no value
}

type Return struct {
	base
	Value Expr
}

type Assign struct {
	base
	Name  *symbols.Name
	Value Expr
}

// Const is an expression-statement: the inner expression is checked
// and its value discarded.
type Const struct {
	base
	Inner Expr
}

// --- Bindings (spec §3) ---

// BindKind discriminates Binding's three shapes.
type BindKind int

const (
	BindEmpty BindKind = iota
	BindName
	BindTuple
)

// Binding is a parameter/let/mut pattern: Empty, Name{name, annot}, or
// Tuple[...bindings].
type Binding struct {
	Kind  BindKind
	Name  *symbols.Name // BindName
	Annot *types.Type   // BindName: declared type, already interned
	Elems []*Binding    // BindTuple, left-to-right source order
	Tok   token.Token
}

// --- Function & Ast (spec §3) ---

type Function struct {
	Name *symbols.Name
	Args *Binding
	Ret  *types.Type
	Body Expr
	Tok  token.Token
}

// Ast is an ordered list of Functions, the parser's full output for
// one compilation.
type Ast struct {
	Functions []*Function
}
