// Package check implements the bidirectional type checker of spec
// §4.5: it walks an untyped Ast, assigns every Expr its canonical
// interned *types.Type, and verifies bindings, mutability, return,
// break, and assignment are well-typed.
//
// Unbound identifiers and type mismatches are collected into a Bag
// rather than aborting the pass (spec §7): after an error the checker
// substitutes the divergent type `!`, which unifies with anything, so
// one mistake does not cascade into a wall of unrelated mismatches.
package check

import (
	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/diagnostics"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/types"
)

// local is one scope entry: a binding's declared type and whether it
// was introduced by `mut` (and so is a legal Assign target).
type local struct {
	typ     *types.Type
	mutable bool
}

// scope is one lexical block's variable table, chained to its
// enclosing block so inner `let`/`mut` shadow without leaking out
// (spec §4.5: "re-binding shadows").
type scope struct {
	vars   map[*symbols.Name]*local
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[*symbols.Name]*local), parent: parent}
}

// loopFrame accumulates the value type of every `break` reachable from
// one enclosing Loop (spec §4.5: a loop's type is its break values'
// unified type, or unit if no break carried a value).
type loopFrame struct {
	valueType *types.Type
}

type checker struct {
	tb  *types.Table
	wk  symbols.Symbols
	bag *diagnostics.Bag

	funcs     map[*symbols.Name]*types.Type
	loopStack []*loopFrame
	curRet    *types.Type
}

// Check type-checks every function in a, annotating each Expr node's
// type slot in place. Per spec §7, errors are collected per function
// and the pass runs every function before returning, rather than
// aborting the whole compilation at the first mismatch.
func Check(a *ast.Ast, tb *types.Table, wk symbols.Symbols, in *symbols.Interner) *diagnostics.Bag {
	c := &checker{
		tb:    tb,
		wk:    wk,
		bag:   &diagnostics.Bag{},
		funcs: make(map[*symbols.Name]*types.Type),
	}
	registerBuiltins(tb, in, c.funcs)
	for _, fn := range a.Functions {
		c.funcs[fn.Name] = tb.Func(bindingType(tb, fn.Args), fn.Ret)
	}
	for _, fn := range a.Functions {
		c.checkFunction(fn)
	}
	return c.bag
}

func (c *checker) checkFunction(fn *ast.Function) {
	sc := newScope(nil)
	c.bindInto(sc, fn.Args, false)
	c.curRet = fn.Ret
	bodyT := c.checkExpr(sc, fn.Body)
	if _, ok := c.tb.Unify(fn.Ret, bodyT); !ok {
		c.bag.Add(diagnostics.TypeMismatchError(fn.Body.Pos(), fn.Ret, bodyT))
	}
}

// bindingType derives a Binding's type (spec §3): empty -> unit, name
// -> its annotation, tuple -> the star-applied product of its
// children's types, in left-to-right source order.
func bindingType(tb *types.Table, b *ast.Binding) *types.Type {
	switch b.Kind {
	case ast.BindEmpty:
		return tb.Unit()
	case ast.BindName:
		return b.Annot
	case ast.BindTuple:
		elems := make([]*types.Type, len(b.Elems))
		for i, e := range b.Elems {
			elems[i] = bindingType(tb, e)
		}
		return tb.Call(tb.Star(), tb.TupleOf(elems))
	default:
		panic("check: unknown binding kind")
	}
}

// bindInto declares b's names into sc with the given mutability. A
// function's parameter binding is always immutable; a `let` binding is
// immutable and a `mut` binding is mutable.
func (c *checker) bindInto(sc *scope, b *ast.Binding, mutable bool) {
	switch b.Kind {
	case ast.BindEmpty:
	case ast.BindName:
		sc.vars[b.Name] = &local{typ: b.Annot, mutable: mutable}
	case ast.BindTuple:
		for _, e := range b.Elems {
			c.bindInto(sc, e, mutable)
		}
	}
}

func (c *checker) lookupLocal(sc *scope, name *symbols.Name) *local {
	for s := sc; s != nil; s = s.parent {
		if l, ok := s.vars[name]; ok {
			return l
		}
	}
	return nil
}
