package parser_test

import (
	"testing"

	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/lexer"
	"github.com/tara-lang/tarac/internal/opscan"
	"github.com/tara-lang/tarac/internal/parser"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/types"
)

func parse(t *testing.T, src string) *ast.Ast {
	t.Helper()
	in := symbols.New()
	wk := symbols.WellKnown(in)
	tb := types.NewTable(wk)
	lx := lexer.New(src, in)
	buf, ops, scanBag := opscan.Scan(lx, in)
	if !scanBag.Empty() {
		t.Fatalf("scan errors: %v", scanBag.Errors())
	}
	a, bag := parser.Parse(buf, ops, in, tb, wk)
	if bag != nil && !bag.Empty() {
		t.Fatalf("parse errors: %v", bag.Errors())
	}
	return a
}

func TestParseIdentityFunction(t *testing.T) {
	a := parse(t, `func id(x: int): int x`)
	if len(a.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(a.Functions))
	}
	fn := a.Functions[0]
	if fn.Name.String() != "id" {
		t.Errorf("got name %q, want id", fn.Name.String())
	}
	if fn.Args.Kind != ast.BindName || fn.Args.Name.String() != "x" {
		t.Errorf("got args %+v, want BindName x", fn.Args)
	}
	recall, ok := fn.Body.(*ast.Recall)
	if !ok {
		t.Fatalf("got body %T, want *ast.Recall", fn.Body)
	}
	if recall.Name.String() != "x" {
		t.Errorf("got recall %q, want x", recall.Name.String())
	}
}

func TestParseEmptyBindingIsEmpty(t *testing.T) {
	a := parse(t, `func f(): int 1`)
	if a.Functions[0].Args.Kind != ast.BindEmpty {
		t.Errorf("got kind %v, want BindEmpty", a.Functions[0].Args.Kind)
	}
}

func TestParseTupleBinding(t *testing.T) {
	a := parse(t, `func pair(x: int, y: bool): int 1`)
	bind := a.Functions[0].Args
	if bind.Kind != ast.BindTuple || len(bind.Elems) != 2 {
		t.Fatalf("got %+v, want a 2-element BindTuple", bind)
	}
	if bind.Elems[0].Name.String() != "x" || bind.Elems[1].Name.String() != "y" {
		t.Errorf("got elems %q, %q, want x, y (left-to-right)", bind.Elems[0].Name, bind.Elems[1].Name)
	}
}

func TestParseInfixOperatorPrecedence(t *testing.T) {
	// infix 6 left + ; infix 7 left * ; "1 + 2 * 3" should parse as 1 + (2 * 3)
	a := parse(t, `infix 6 left + infix 7 left * func f(): int 1 + 2 * 3`)
	body, ok := a.Functions[0].Body.(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", a.Functions[0].Body)
	}
	plus, ok := body.Callee.(*ast.Recall)
	if !ok || plus.Name.String() != "+" {
		t.Fatalf("got callee %+v, want Recall(+)", body.Callee)
	}
	rhs := body.Args.(*ast.Tuple).Elems[1]
	rhsCall, ok := rhs.(*ast.Call)
	if !ok {
		t.Fatalf("rhs of + is %T, want nested * Call (tighter precedence)", rhs)
	}
	if rhsCall.Callee.(*ast.Recall).Name.String() != "*" {
		t.Errorf("rhs callee is %+v, want Recall(*)", rhsCall.Callee)
	}
}

func TestParseRightAssocOperatorNestsOnRight(t *testing.T) {
	// "a ^ b ^ c" with right-assoc ^ should parse as a ^ (b ^ c).
	a := parse(t, `infix 8 right ^ func f(a: int, b: int, c: int): int a ^ b ^ c`)
	top := a.Functions[0].Body.(*ast.Call)
	rhs := top.Args.(*ast.Tuple).Elems[1]
	if _, ok := rhs.(*ast.Call); !ok {
		t.Fatalf("rhs is %T, want nested Call for right-associativity", rhs)
	}
}

func TestParseAdjacentNoneAssocIsParseError(t *testing.T) {
	in := symbols.New()
	wk := symbols.WellKnown(in)
	tb := types.NewTable(wk)
	lx := lexer.New(`infix 6 none == func f(a: bool, b: bool, c: bool): bool a == b == c`, in)
	buf, ops, _ := opscan.Scan(lx, in)
	_, bag := parser.Parse(buf, ops, in, tb, wk)
	if bag == nil || bag.Empty() {
		t.Fatalf("expected a parse error for chained none-assoc operators")
	}
}

func TestParsePrefixOperator(t *testing.T) {
	a := parse(t, `prefix 9 - func f(x: int): int -x`)
	call := a.Functions[0].Body.(*ast.Call)
	if call.Callee.(*ast.Recall).Name.String() != "-" {
		t.Errorf("got callee %+v, want Recall(-)", call.Callee)
	}
	if _, ok := call.Args.(*ast.Recall); !ok {
		t.Errorf("got args %T, want bare operand Recall", call.Args)
	}
}

func TestParseIfElse(t *testing.T) {
	a := parse(t, `func f(x: int): int if true { return 1 } else { x }`)
	ifExpr, ok := a.Functions[0].Body.(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", a.Functions[0].Body)
	}
	if _, ok := ifExpr.Cond.(*ast.BoolLit); !ok {
		t.Errorf("got cond %T, want *ast.BoolLit", ifExpr.Cond)
	}
	thenStmts := ifExpr.Then.(*ast.Bareblock).Stmts
	if len(thenStmts) != 1 {
		t.Fatalf("got %d then-stmts, want 1", len(thenStmts))
	}
	if _, ok := thenStmts[0].(*ast.Return); !ok {
		t.Errorf("got then-stmt %T, want *ast.Return", thenStmts[0])
	}
}

func TestParseLoopWithBreak(t *testing.T) {
	a := parse(t, `func f(): int loop { break 7 }`)
	loop, ok := a.Functions[0].Body.(*ast.Loop)
	if !ok {
		t.Fatalf("got %T, want *ast.Loop", a.Functions[0].Body)
	}
	stmts := loop.Body.(*ast.Bareblock).Stmts
	brk, ok := stmts[0].(*ast.Break)
	if !ok {
		t.Fatalf("got %T, want *ast.Break", stmts[0])
	}
	if _, ok := brk.Value.(*ast.NumberLit); !ok {
		t.Errorf("got break value %T, want *ast.NumberLit", brk.Value)
	}
}

func TestParseBlockTrailingExprIsValue(t *testing.T) {
	a := parse(t, `func f(): int { let x: int = 1; x }`)
	block := a.Functions[0].Body.(*ast.Bareblock)
	if len(block.Stmts) != 2 {
		t.Fatalf("got %d stmts, want 2", len(block.Stmts))
	}
	if _, ok := block.Stmts[0].(*ast.Let); !ok {
		t.Errorf("got stmt[0] %T, want *ast.Let", block.Stmts[0])
	}
	if _, ok := block.Stmts[1].(*ast.Recall); !ok {
		t.Errorf("got trailing stmt %T, want *ast.Recall (block value)", block.Stmts[1])
	}
}

func TestParseAssignAndMut(t *testing.T) {
	a := parse(t, `func f(): int { mut x: int = 1; x = 2; x }`)
	block := a.Functions[0].Body.(*ast.Bareblock)
	if _, ok := block.Stmts[0].(*ast.Mut); !ok {
		t.Errorf("got stmt[0] %T, want *ast.Mut", block.Stmts[0])
	}
	assign, ok := block.Stmts[1].(*ast.Assign)
	if !ok {
		t.Fatalf("got stmt[1] %T, want *ast.Assign", block.Stmts[1])
	}
	if assign.Name.String() != "x" {
		t.Errorf("got assign target %q, want x", assign.Name.String())
	}
}

func TestParseConstExprStatementDiscardsValue(t *testing.T) {
	a := parse(t, `func f(): int { 1; 2 }`)
	block := a.Functions[0].Body.(*ast.Bareblock)
	if _, ok := block.Stmts[0].(*ast.Const); !ok {
		t.Errorf("got stmt[0] %T, want *ast.Const", block.Stmts[0])
	}
}

func TestParseCall(t *testing.T) {
	a := parse(t, `func f(): int g(1, 2)`)
	call := a.Functions[0].Body.(*ast.Call)
	if _, ok := call.Callee.(*ast.Recall); !ok {
		t.Errorf("got callee %T, want *ast.Recall", call.Callee)
	}
	tuple, ok := call.Args.(*ast.Tuple)
	if !ok || len(tuple.Elems) != 2 {
		t.Fatalf("got args %+v, want a 2-element Tuple", call.Args)
	}
}

func TestParseFunctionTypeAnnotation(t *testing.T) {
	a := parse(t, `func apply(f: int -> int, x: int): int 1`)
	bind := a.Functions[0].Args.Elems[0]
	if bind.Annot.Tag() != types.Func {
		t.Errorf("got tag %v, want Func", bind.Annot.Tag())
	}
}
