package prettyprinter_test

import (
	"strings"
	"testing"

	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/check"
	"github.com/tara-lang/tarac/internal/convert"
	"github.com/tara-lang/tarac/internal/lexer"
	"github.com/tara-lang/tarac/internal/opscan"
	"github.com/tara-lang/tarac/internal/parser"
	"github.com/tara-lang/tarac/internal/prettyprinter"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/tst"
	"github.com/tara-lang/tarac/internal/types"
)

func compileSrc(t *testing.T, src string) (*ast.Ast, *tst.Tst) {
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
	if !bag.Empty() {
		t.Fatalf("check errors: %v", bag.Errors())
	}
	return a, convert.Convert(a, tb)
}

func TestPrintAstShowsFunctionStructure(t *testing.T) {
	a, _ := compileSrc(t, `func id(x: int): int x`)
	out := prettyprinter.PrintAst(a)
	if !strings.Contains(out, "Function id") {
		t.Errorf("expected function header in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Recall(x)") {
		t.Errorf("expected body to reference x, got:\n%s", out)
	}
}

func TestPrintTstShowsResolvedSlotsAndTypes(t *testing.T) {
	_, lowered := compileSrc(t, `func id(x: int): int x`)
	out := prettyprinter.PrintTst(lowered)
	if !strings.Contains(out, "arg_slots=1") {
		t.Errorf("expected arg_slots=1 in output, got:\n%s", out)
	}
	if !strings.Contains(out, "LocalRef(0)") {
		t.Errorf("expected a LocalRef(0) node, got:\n%s", out)
	}
}
