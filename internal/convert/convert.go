// Package convert lowers a type-checked ast.Ast into a tst.Tst (spec
// §4.6). It never re-checks types: its input is assumed well-typed, so
// any invariant violation it encounters (an Assign to a name no
// enclosing scope declared, an unknown node or binding kind) is a
// programmer error in an earlier stage and panics rather than
// reporting a diagnostic. A Recall with no local slot becomes a
// FuncRef by name.
package convert

import (
	"fmt"

	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/token"
	"github.com/tara-lang/tarac/internal/tst"
	"github.com/tara-lang/tarac/internal/types"
)

// scope resolves a name to the slot it was most recently bound to,
// chained to the enclosing block the way check.scope chains type
// bindings — shadowing works the same way in both stages.
type scope struct {
	vars   map[*symbols.Name]int
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[*symbols.Name]int), parent: parent}
}

func (s *scope) lookup(name *symbols.Name) (int, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if slot, ok := sc.vars[name]; ok {
			return slot, true
		}
	}
	return 0, false
}

// fc ("function converter") tracks slot allocation for one function.
// Parameters are allocated before the body is walked, so ArgSlots is
// simply the slot count at that point (spec §4.6: "parameters first,
// in left-to-right tuple order; then locals in source order").
type fc struct {
	tb       *types.Table
	nextSlot int
	prologue []tst.Expr
}

func (c *fc) alloc() int {
	slot := c.nextSlot
	c.nextSlot++
	return slot
}

// Convert lowers every function in a into the returned Tst.
func Convert(a *ast.Ast, tb *types.Table) *tst.Tst {
	out := &tst.Tst{}
	for _, fn := range a.Functions {
		out.Functions = append(out.Functions, convertFunction(tb, fn))
	}
	return out
}

func convertFunction(tb *types.Table, fn *ast.Function) *tst.Function {
	c := &fc{tb: tb}
	sc := newScope(nil)
	c.bindParams(sc, fn.Args)
	argSlots := c.nextSlot
	body := c.convertExpr(sc, fn.Body)
	return &tst.Function{
		Name:       fn.Name,
		ArgSlots:   argSlots,
		LocalSlots: c.nextSlot - argSlots,
		Ret:        fn.Ret,
		Prologue:   c.prologue,
		Body:       body,
		Tok:        fn.Tok,
	}
}

// bindingType mirrors check.bindingType: empty -> unit, name -> its
// annotation, tuple -> the star-applied product of its children.
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
		panic("convert: unknown binding kind")
	}
}

// bindParams allocates the function's parameter slots and appends the
// prologue that stores the single incoming argument value into them:
// one Assign from the ArgRef for a BindName, or Assign/Project pairs
// destructuring it for a tuple-shaped binding. A BindEmpty argument
// needs no slot: there is no value to read.
func (c *fc) bindParams(sc *scope, b *ast.Binding) {
	if b.Kind == ast.BindEmpty {
		return
	}
	arg := &tst.ArgRef{}
	arg.Tok = b.Tok
	arg.Typ = bindingType(c.tb, b)
	c.destructureLeaf(sc, b, arg, func(e tst.Expr) { c.prologue = append(c.prologue, e) })
}

// destructureLeaf recursively binds b against source, projecting one
// tuple element at a time for nested BindTuple shapes. It is shared by
// parameter binding (source = ArgRef) and let/mut tuple binding
// (source = a LocalRef into a temp slot holding the already-evaluated
// initializer, so the initializer is evaluated exactly once).
func (c *fc) destructureLeaf(sc *scope, b *ast.Binding, source tst.Expr, emit func(tst.Expr)) {
	switch b.Kind {
	case ast.BindEmpty:
		// Nothing to bind; a Project has no side effect worth discarding.
	case ast.BindName:
		slot := c.alloc()
		sc.vars[b.Name] = slot
		a := &tst.Assign{Slot: slot, Value: source}
		a.Tok = b.Tok
		a.Typ = b.Annot
		emit(a)
	case ast.BindTuple:
		for i, e := range b.Elems {
			proj := &tst.Project{Tuple: source, Index: i}
			proj.Tok = e.Tok
			proj.Typ = bindingType(c.tb, e)
			c.destructureLeaf(sc, e, proj, emit)
		}
	default:
		panic("convert: unknown binding kind")
	}
}

// convertBinding handles a let/mut statement's binding against its
// already-converted initializer. A BindTuple binding routes the
// initializer through one temp slot before projecting, so it is
// evaluated exactly once regardless of how many names it destructures
// into (spec §4.6: "flatten tuple destructuring ... into a sequence of
// single-name bindings plus projections").
func (c *fc) convertBinding(sc *scope, b *ast.Binding, init tst.Expr, tok token.Token, emit func(tst.Expr)) {
	switch b.Kind {
	case ast.BindEmpty:
		d := &tst.Discard{Inner: init}
		d.Tok = tok
		d.Typ = c.tb.Unit()
		emit(d)
	case ast.BindName:
		slot := c.alloc()
		sc.vars[b.Name] = slot
		a := &tst.Assign{Slot: slot, Value: init}
		a.Tok = tok
		a.Typ = b.Annot
		emit(a)
	case ast.BindTuple:
		tmp := c.alloc()
		store := &tst.Assign{Slot: tmp, Value: init}
		store.Tok = tok
		store.Typ = init.Type()
		emit(store)
		ref := &tst.LocalRef{Slot: tmp}
		ref.Tok = tok
		ref.Typ = init.Type()
		c.destructureLeaf(sc, b, ref, emit)
	default:
		panic("convert: unknown binding kind")
	}
}

func (c *fc) convertExpr(sc *scope, e ast.Expr) tst.Expr {
	switch n := e.(type) {
	case *ast.Unit:
		u := &tst.Unit{}
		u.Tok, u.Typ = n.Tok, n.Type()
		return u
	case *ast.NumberLit:
		v := &tst.NumberLit{Value: n.Value}
		v.Tok, v.Typ = n.Tok, n.Type()
		return v
	case *ast.StringLit:
		v := &tst.StringLit{Value: n.Value}
		v.Tok, v.Typ = n.Tok, n.Type()
		return v
	case *ast.BoolLit:
		v := &tst.BoolLit{Value: n.Value}
		v.Tok, v.Typ = n.Tok, n.Type()
		return v
	case *ast.Recall:
		if slot, ok := sc.lookup(n.Name); ok {
			r := &tst.LocalRef{Slot: slot}
			r.Tok, r.Typ = n.Tok, n.Type()
			return r
		}
		r := &tst.FuncRef{Name: n.Name}
		r.Tok, r.Typ = n.Tok, n.Type()
		return r
	case *ast.Tuple:
		elems := make([]tst.Expr, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = c.convertExpr(sc, el)
		}
		t := &tst.Tuple{Elems: elems}
		t.Tok, t.Typ = n.Tok, n.Type()
		return t
	case *ast.Call:
		callee := c.convertExpr(sc, n.Callee)
		args := c.convertExpr(sc, n.Args)
		call := &tst.Call{Callee: callee, Args: args}
		call.Tok, call.Typ = n.Tok, n.Type()
		return call
	case *ast.If:
		cond := c.convertExpr(sc, n.Cond)
		then := c.convertExpr(sc, n.Then)
		els := c.convertExpr(sc, n.Else)
		i := &tst.If{Cond: cond, Then: then, Else: els}
		i.Tok, i.Typ = n.Tok, n.Type()
		return i
	case *ast.Loop:
		body := c.convertExpr(sc, n.Body)
		l := &tst.Loop{Body: body}
		l.Tok, l.Typ = n.Tok, n.Type()
		return l
	case *ast.Bareblock:
		return c.convertBlock(sc, n)
	case *ast.Break:
		var v tst.Expr
		if n.Value != nil {
			v = c.convertExpr(sc, n.Value)
		} else {
			u := &tst.Unit{}
			u.Tok, u.Typ = n.Tok, c.tb.Unit()
			v = u
		}
		b := &tst.Break{Value: v}
		b.Tok, b.Typ = n.Tok, n.Type()
		return b
	case *ast.Return:
		v := c.convertExpr(sc, n.Value)
		r := &tst.Return{Value: v}
		r.Tok, r.Typ = n.Tok, n.Type()
		return r
	case *ast.Assign:
		slot, ok := sc.lookup(n.Name)
		if !ok {
			panic("convert: unresolved assignment target " + n.Name.String())
		}
		v := c.convertExpr(sc, n.Value)
		a := &tst.Assign{Slot: slot, Value: v}
		a.Tok, a.Typ = n.Tok, n.Type()
		return a
	default:
		panic(fmt.Sprintf("convert: unhandled expr type %T outside block context", e))
	}
}

// convertBlock lowers a Bareblock's statements in a child scope. Only
// a trailing bare-expression statement supplies Tail; every other
// trailing form (Let, Mut, Break, Return, Assign, Const) leaves Tail
// nil, matching the cases where check.inferBlock types the block as
// unit or, for a trailing Break/Return, as divergent (spec §4.6: "a
// trailing expression whose result is the block value is tagged as
// such").
func (c *fc) convertBlock(sc *scope, n *ast.Bareblock) *tst.Block {
	child := newScope(sc)
	blk := &tst.Block{}
	blk.Tok, blk.Typ = n.Tok, n.Type()
	emit := func(e tst.Expr) { blk.Stmts = append(blk.Stmts, e) }

	for i, stmt := range n.Stmts {
		last := i == len(n.Stmts)-1
		switch s := stmt.(type) {
		case *ast.Let:
			init := c.convertExpr(child, s.Init)
			c.convertBinding(child, s.Bind, init, s.Tok, emit)
		case *ast.Mut:
			init := c.convertExpr(child, s.Init)
			c.convertBinding(child, s.Bind, init, s.Tok, emit)
		case *ast.Const:
			inner := c.convertExpr(child, s.Inner)
			d := &tst.Discard{Inner: inner}
			d.Tok, d.Typ = s.Tok, c.tb.Unit()
			emit(d)
		case *ast.Break, *ast.Return, *ast.Assign:
			emit(c.convertExpr(child, stmt))
		default:
			value := c.convertExpr(child, stmt)
			if last {
				blk.Tail = value
				continue
			}
			d := &tst.Discard{Inner: value}
			d.Tok, d.Typ = stmt.Pos(), c.tb.Unit()
			emit(d)
		}
	}
	return blk
}
