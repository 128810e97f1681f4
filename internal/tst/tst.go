// Package tst defines the typed, lowered tree the converter produces
// from an Ast (spec §4.6). Unlike ast.Expr, every tst.Expr already
// carries its final canonical *types.Type (copied, never recomputed)
// and every name reference has been resolved to either a local-slot
// index or a top-level function reference — there is nothing left for
// a downstream code generator to look up by name.
package tst

import (
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/token"
	"github.com/tara-lang/tarac/internal/types"
)

// Expr is any node of the lowered tree. As with ast.Expr, callers
// dispatch with a type switch over the concrete node types below.
type Expr interface {
	Pos() token.Token
	Type() *types.Type
	exprNode()
}

type base struct {
	Tok token.Token
	Typ *types.Type
}

func (b base) Pos() token.Token  { return b.Tok }
func (b base) Type() *types.Type { return b.Typ }
func (b base) exprNode()         {}

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

// LocalRef reads a parameter or let/mut-bound local by its assigned
// slot index (spec §4.6: every Recall resolves to a local-slot index
// or a function reference).
type LocalRef struct {
	base
	Slot int
}

// FuncRef reads a top-level function or builtin operator, resolved by
// name: these have no local-slot storage of their own.
type FuncRef struct {
	base
	Name *symbols.Name
}

// ArgRef is the whole argument value a function receives on entry,
// before any tuple-parameter destructuring projects pieces of it into
// named slots (see Function.Prologue).
type ArgRef struct{ base }

// Project reads one element of a tuple value by position. The
// converter introduces it wherever a tuple binding destructures —
// both `let (x, y) = e;` and a tuple-shaped function parameter.
type Project struct {
	base
	Tuple Expr
	Index int
}

type Tuple struct {
	base
	Elems []Expr
}

type Call struct {
	base
	Callee Expr
	Args   Expr
}

type If struct {
	base
	Cond, Then, Else Expr
}

type Loop struct {
	base
	Body Expr
}

// Assign stores Value into Slot. It covers every let/mut leaf binding,
// tuple-destructuring projection, and ordinary reassignment — the
// lowered tree has no other way to write a local.
type Assign struct {
	base
	Slot  int
	Value Expr
}

// Discard evaluates Inner and drops its value: the lowered form of a
// non-trailing expression-statement whose result the source discarded
// (spec §4.6: "a non-trailing expression whose value is used produces
// a Const" in the untyped tree; here the discard is explicit on the
// node itself rather than implied by block position).
type Discard struct {
	base
	Inner Expr
}

type Break struct {
	base
	Value Expr
}

type Return struct {
	base
	Value Expr
}

// Block is `{ stmt*; tail? }`. Tail is nil exactly when the source
// block had no trailing bare expression (it was empty or its last
// statement was a Let, Mut, Assign, Const, Break, or Return), so its
// type is unit, or divergent when it ends in a Break or Return; every
// Stmts entry is an Assign, Discard, Break, or Return.
type Block struct {
	base
	Stmts []Expr
	Tail  Expr
}

// Function is one converted function. ArgSlots parameter slots come
// first, populated by Prologue (empty only when Args is BindEmpty; a
// single BindName gets one Assign from the ArgRef), followed by
// LocalSlots let/mut-introduced slots in source order (spec §4.6).
type Function struct {
	Name       *symbols.Name
	ArgSlots   int
	LocalSlots int
	Ret        *types.Type
	Prologue   []Expr
	Body       Expr
	Tok        token.Token
}

// Tst is the converter's full output for one compilation.
type Tst struct {
	Functions []*Function
}
