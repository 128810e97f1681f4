package check

import (
	"fmt"

	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/diagnostics"
	"github.com/tara-lang/tarac/internal/types"
)

// checkExpr infers e's type against sc and stamps it onto e (spec
// §4.5's "every Expr node reachable from Ast has a non-null canonical
// type" postcondition).
func (c *checker) checkExpr(sc *scope, e ast.Expr) *types.Type {
	t := c.infer(sc, e)
	e.SetType(t)
	return t
}

func (c *checker) infer(sc *scope, e ast.Expr) *types.Type {
	switch n := e.(type) {
	case *ast.Unit:
		return c.tb.Unit()
	case *ast.NumberLit:
		return c.tb.Int()
	case *ast.StringLit:
		return c.tb.String()
	case *ast.BoolLit:
		return c.tb.Bool()
	case *ast.Recall:
		return c.inferRecall(sc, n)
	case *ast.Tuple:
		return c.inferTuple(sc, n)
	case *ast.Call:
		return c.inferCall(sc, n)
	case *ast.If:
		return c.inferIf(sc, n)
	case *ast.Loop:
		return c.inferLoop(sc, n)
	case *ast.Bareblock:
		return c.inferBlock(sc, n)
	case *ast.Let:
		return c.inferLet(sc, n)
	case *ast.Mut:
		return c.inferMut(sc, n)
	case *ast.Break:
		return c.inferBreak(sc, n)
	case *ast.Return:
		return c.inferReturn(sc, n)
	case *ast.Assign:
		return c.inferAssign(sc, n)
	case *ast.Const:
		c.checkExpr(sc, n.Inner)
		return c.tb.Unit()
	default:
		panic(fmt.Sprintf("check: unhandled expr type %T", e))
	}
}

func (c *checker) inferRecall(sc *scope, n *ast.Recall) *types.Type {
	if l := c.lookupLocal(sc, n.Name); l != nil {
		return l.typ
	}
	if t, ok := c.funcs[n.Name]; ok {
		return t
	}
	c.bag.Add(diagnostics.UnboundError(n.Pos(), n.Name.String()))
	return c.tb.Divergent()
}

func (c *checker) inferTuple(sc *scope, n *ast.Tuple) *types.Type {
	elems := make([]*types.Type, len(n.Elems))
	for i, el := range n.Elems {
		elems[i] = c.checkExpr(sc, el)
	}
	return c.tb.Call(c.tb.Star(), c.tb.TupleOf(elems))
}

func (c *checker) inferCall(sc *scope, n *ast.Call) *types.Type {
	calleeT := c.checkExpr(sc, n.Callee)
	argsT := c.checkExpr(sc, n.Args)
	if calleeT == c.tb.Divergent() {
		return c.tb.Divergent()
	}
	if calleeT.Tag() != types.Func {
		c.bag.Add(diagnostics.NotAFunctionError(n.Callee.Pos(), calleeT))
		return c.tb.Divergent()
	}
	if _, ok := c.tb.Unify(calleeT.Args(), argsT); !ok {
		c.bag.Add(diagnostics.TypeMismatchError(n.Args.Pos(), calleeT.Args(), argsT))
	}
	return calleeT.Ret()
}

func (c *checker) inferIf(sc *scope, n *ast.If) *types.Type {
	condT := c.checkExpr(sc, n.Cond)
	if _, ok := c.tb.Unify(c.tb.Bool(), condT); !ok {
		c.bag.Add(diagnostics.TypeMismatchError(n.Cond.Pos(), c.tb.Bool(), condT))
	}
	thenT := c.checkExpr(sc, n.Then)
	elseT := c.checkExpr(sc, n.Else)
	if unified, ok := c.tb.Unify(thenT, elseT); ok {
		return unified
	}
	c.bag.Add(diagnostics.TypeMismatchError(n.Else.Pos(), thenT, elseT))
	return c.tb.Divergent()
}

func (c *checker) inferLoop(sc *scope, n *ast.Loop) *types.Type {
	c.loopStack = append(c.loopStack, &loopFrame{})
	bodyT := c.checkExpr(sc, n.Body)
	if _, ok := c.tb.Unify(c.tb.Unit(), bodyT); !ok {
		c.bag.Add(diagnostics.TypeMismatchError(n.Body.Pos(), c.tb.Unit(), bodyT))
	}
	frame := c.loopStack[len(c.loopStack)-1]
	c.loopStack = c.loopStack[:len(c.loopStack)-1]
	if frame.valueType != nil {
		return frame.valueType
	}
	return c.tb.Unit()
}

// inferBlock types a Bareblock's statements in a child scope. Only a
// final statement that is a bare expression supplies the block's value.
// A block whose last statement is a Break or Return (with or without
// its `;`) never finishes, so it has the divergent type `!`; a block
// ending in Let, Mut, Assign, or Const, or an empty block, yields unit
// (spec §4.5).
func (c *checker) inferBlock(sc *scope, n *ast.Bareblock) *types.Type {
	child := newScope(sc)
	for _, stmt := range n.Stmts {
		c.checkExpr(child, stmt)
	}
	if len(n.Stmts) == 0 {
		return c.tb.Unit()
	}
	switch last := n.Stmts[len(n.Stmts)-1]; last.(type) {
	case *ast.Break, *ast.Return:
		return c.tb.Divergent()
	case *ast.Let, *ast.Mut, *ast.Assign, *ast.Const:
		return c.tb.Unit()
	default:
		return last.Type()
	}
}

func (c *checker) inferLet(sc *scope, n *ast.Let) *types.Type {
	initT := c.checkExpr(sc, n.Init)
	bindT := bindingType(c.tb, n.Bind)
	if _, ok := c.tb.Unify(bindT, initT); !ok {
		c.bag.Add(diagnostics.TypeMismatchError(n.Init.Pos(), bindT, initT))
	}
	c.bindInto(sc, n.Bind, false)
	return c.tb.Unit()
}

func (c *checker) inferMut(sc *scope, n *ast.Mut) *types.Type {
	initT := c.checkExpr(sc, n.Init)
	bindT := bindingType(c.tb, n.Bind)
	if _, ok := c.tb.Unify(bindT, initT); !ok {
		c.bag.Add(diagnostics.TypeMismatchError(n.Init.Pos(), bindT, initT))
	}
	c.bindInto(sc, n.Bind, true)
	return c.tb.Unit()
}

func (c *checker) inferBreak(sc *scope, n *ast.Break) *types.Type {
	if len(c.loopStack) == 0 {
		c.bag.Add(diagnostics.BreakOutsideLoopError(n.Pos()))
		if n.Value != nil {
			c.checkExpr(sc, n.Value)
		}
		return c.tb.Divergent()
	}
	var valT *types.Type
	if n.Value != nil {
		valT = c.checkExpr(sc, n.Value)
	} else {
		valT = c.tb.Unit()
	}
	frame := c.loopStack[len(c.loopStack)-1]
	if frame.valueType == nil {
		frame.valueType = valT
	} else if unified, ok := c.tb.Unify(frame.valueType, valT); ok {
		frame.valueType = unified
	} else {
		c.bag.Add(diagnostics.TypeMismatchError(n.Pos(), frame.valueType, valT))
	}
	return c.tb.Divergent()
}

func (c *checker) inferReturn(sc *scope, n *ast.Return) *types.Type {
	valT := c.checkExpr(sc, n.Value)
	if _, ok := c.tb.Unify(c.curRet, valT); !ok {
		c.bag.Add(diagnostics.TypeMismatchError(n.Pos(), c.curRet, valT))
	}
	return c.tb.Divergent()
}

func (c *checker) inferAssign(sc *scope, n *ast.Assign) *types.Type {
	l := c.lookupLocal(sc, n.Name)
	if l == nil {
		c.bag.Add(diagnostics.UnboundError(n.Pos(), n.Name.String()))
		c.checkExpr(sc, n.Value)
		return c.tb.Unit()
	}
	if !l.mutable {
		c.bag.Add(diagnostics.NotMutableError(n.Pos(), n.Name.String()))
	}
	valT := c.checkExpr(sc, n.Value)
	if _, ok := c.tb.Unify(l.typ, valT); !ok {
		c.bag.Add(diagnostics.TypeMismatchError(n.Value.Pos(), l.typ, valT))
	}
	return c.tb.Unit()
}
