package pipeline_test

import (
	"testing"

	"github.com/tara-lang/tarac/internal/diagnostics"
	"github.com/tara-lang/tarac/internal/pipeline"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/types"
)

func newCtx(t *testing.T, path, src string) *pipeline.Context {
	t.Helper()
	in := symbols.New()
	wk := symbols.WellKnown(in)
	tb := types.NewTable(wk)
	return pipeline.NewContext(path, src, in, wk, tb)
}

func TestRunProducesTstOnCleanSource(t *testing.T) {
	ctx := newCtx(t, "main.tara", `func id(x: int): int x`)
	pipeline.Run(ctx)

	if !ctx.Bag.Empty() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Bag.Errors())
	}
	if ctx.Ast == nil {
		t.Fatal("expected Ast to be populated")
	}
	if ctx.Tst == nil {
		t.Fatal("expected Tst to be populated")
	}
	if len(ctx.Tst.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(ctx.Tst.Functions))
	}
}

func TestRunStopsBeforeConvertOnTypeError(t *testing.T) {
	ctx := newCtx(t, "main.tara", `func bad(x: int): int "not an int"`)
	pipeline.Run(ctx)

	if ctx.Bag.Empty() {
		t.Fatal("expected a type error")
	}
	if ctx.Tst != nil {
		t.Fatal("expected conversion to be skipped after a type error")
	}
	found := false
	for _, e := range ctx.Bag.Errors() {
		if e.Kind == diagnostics.TypeMismatch {
			found = true
		}
		if e.File != "main.tara" {
			t.Errorf("got error file %q, want main.tara", e.File)
		}
	}
	if !found {
		t.Errorf("expected a TYPE diagnostic, got %v", ctx.Bag.Errors())
	}
}

func TestRunStopsBeforeCheckOnParseError(t *testing.T) {
	ctx := newCtx(t, "main.tara", `func bad(x: int): int {`)
	pipeline.Run(ctx)

	if ctx.Bag.Empty() {
		t.Fatal("expected a parse error")
	}
	if ctx.Ast != nil {
		t.Fatal("expected Ast to stay nil after a parse error")
	}
	if ctx.Tst != nil {
		t.Fatal("expected Tst to stay nil after a parse error")
	}
}
