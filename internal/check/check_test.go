package check_test

import (
	"testing"

	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/check"
	"github.com/tara-lang/tarac/internal/diagnostics"
	"github.com/tara-lang/tarac/internal/lexer"
	"github.com/tara-lang/tarac/internal/opscan"
	"github.com/tara-lang/tarac/internal/parser"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/types"
)

func checkSrc(t *testing.T, src string) (*ast.Ast, *types.Table, symbols.Symbols, *diagnostics.Bag) {
	t.Helper()
	in := symbols.New()
	wk := symbols.WellKnown(in)
	tb := types.NewTable(wk)
	lx := lexer.New(src, in)
	buf, ops, scanBag := opscan.Scan(lx, in)
	if !scanBag.Empty() {
		t.Fatalf("scan errors: %v", scanBag.Errors())
	}
	a, parseBag := parser.Parse(buf, ops, in, tb, wk)
	if parseBag != nil && !parseBag.Empty() {
		t.Fatalf("parse errors: %v", parseBag.Errors())
	}
	bag := check.Check(a, tb, wk, in)
	return a, tb, wk, bag
}

func TestCheckIdentityFunction(t *testing.T) {
	a, tb, _, bag := checkSrc(t, `func id(x: int): int x`)
	if !bag.Empty() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	body := a.Functions[0].Body
	if body.Type() != tb.Int() {
		t.Errorf("got body type %s, want int", body.Type())
	}
}

func TestCheckTupleProduct(t *testing.T) {
	a, tb, _, bag := checkSrc(t, `func pair(x: int, y: bool): *(int, bool) (x, y)`)
	if !bag.Empty() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	body := a.Functions[0].Body
	want := tb.Call(tb.Star(), tb.Pair(tb.Int(), tb.Bool()))
	if body.Type() != want {
		t.Errorf("got body type %s, want %s", body.Type(), want)
	}
	if a.Functions[0].Args.Kind != ast.BindTuple {
		t.Fatalf("expected BindTuple args")
	}
}

func TestCheckIfWithDivergentBranch(t *testing.T) {
	a, tb, _, bag := checkSrc(t, `func f(x: int): int if true { return 1; } else { x }`)
	if !bag.Empty() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	ifExpr := a.Functions[0].Body.(*ast.If)
	if ifExpr.Type() != tb.Int() {
		t.Errorf("got if type %s, want int (the else branch)", ifExpr.Type())
	}
}

func TestCheckLoopWithValueBreak(t *testing.T) {
	a, tb, _, bag := checkSrc(t, `func f(): int loop { break 7; }`)
	if !bag.Empty() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	loop := a.Functions[0].Body.(*ast.Loop)
	if loop.Type() != tb.Int() {
		t.Errorf("got loop type %s, want int", loop.Type())
	}
}

func TestCheckTypeMismatch(t *testing.T) {
	_, _, _, bag := checkSrc(t, `func f(): int true`)
	if bag.Empty() {
		t.Fatalf("expected a type mismatch error")
	}
	if bag.Errors()[0].Kind != diagnostics.TypeMismatch {
		t.Errorf("got kind %s, want TYPE", bag.Errors()[0].Kind)
	}
}

func TestCheckUserOperator(t *testing.T) {
	a, tb, _, bag := checkSrc(t, `infix 6 left + func g(x: int): int x + x`)
	if !bag.Empty() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	body := a.Functions[0].Body
	if body.Type() != tb.Int() {
		t.Errorf("got body type %s, want int", body.Type())
	}
}

func TestCheckUnboundIdentifier(t *testing.T) {
	_, _, _, bag := checkSrc(t, `func f(): int y`)
	if bag.Empty() {
		t.Fatalf("expected an unbound-identifier error")
	}
	if bag.Errors()[0].Kind != diagnostics.Unbound {
		t.Errorf("got kind %s, want UNBOUND", bag.Errors()[0].Kind)
	}
}

func TestCheckAssignToImmutableIsError(t *testing.T) {
	_, _, _, bag := checkSrc(t, `func f(): int { let x: int = 1; x = 2; x }`)
	if bag.Empty() {
		t.Fatalf("expected a not-mutable error")
	}
	if bag.Errors()[0].Kind != diagnostics.NotMutable {
		t.Errorf("got kind %s, want NOTMUT", bag.Errors()[0].Kind)
	}
}

func TestCheckAssignToMutableIsFine(t *testing.T) {
	_, _, _, bag := checkSrc(t, `func f(): int { mut x: int = 1; x = 2; x }`)
	if !bag.Empty() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
}

func TestCheckBreakOutsideLoop(t *testing.T) {
	_, _, _, bag := checkSrc(t, `func f(): int { break 1; }`)
	if bag.Empty() {
		t.Fatalf("expected a break-outside-loop error")
	}
	if bag.Errors()[0].Kind != diagnostics.BreakOutsideLoop {
		t.Errorf("got kind %s, want BREAKLOC", bag.Errors()[0].Kind)
	}
}

func TestCheckCallNonFunction(t *testing.T) {
	_, _, _, bag := checkSrc(t, `func f(x: int): int x(1)`)
	if bag.Empty() {
		t.Fatalf("expected a not-a-function error")
	}
	if bag.Errors()[0].Kind != diagnostics.NotAFunction {
		t.Errorf("got kind %s, want NOTFUNC", bag.Errors()[0].Kind)
	}
}

func TestCheckBlockTrailingConstIsUnit(t *testing.T) {
	a, tb, _, bag := checkSrc(t, `func f(): unit { 1; }`)
	if !bag.Empty() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	if a.Functions[0].Body.Type() != tb.Unit() {
		t.Errorf("got body type %s, want unit", a.Functions[0].Body.Type())
	}
}
