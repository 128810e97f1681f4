package inspect_test

import (
	"path/filepath"
	"testing"

	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/buildsession"
	"github.com/tara-lang/tarac/internal/check"
	"github.com/tara-lang/tarac/internal/convert"
	"github.com/tara-lang/tarac/internal/inspect"
	"github.com/tara-lang/tarac/internal/lexer"
	"github.com/tara-lang/tarac/internal/opscan"
	"github.com/tara-lang/tarac/internal/parser"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/types"
)

func compile(t *testing.T, src string) (*types.Table, *ast.Ast) {
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
	return tb, a
}

func TestDumpWritesTypesFunctionsAndNodes(t *testing.T) {
	tb, a := compile(t, `func id(x: int): int x`)
	lowered := convert.Convert(a, tb)

	path := filepath.Join(t.TempDir(), "session.db")
	db, err := inspect.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	sess := buildsession.New()
	if err := inspect.Dump(db, sess, tb, lowered); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	var typeCount, fnCount, nodeCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM types WHERE session_id = ?`, sess.String()).Scan(&typeCount); err != nil {
		t.Fatalf("querying types: %v", err)
	}
	if typeCount == 0 {
		t.Errorf("expected at least one type row")
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM functions WHERE session_id = ?`, sess.String()).Scan(&fnCount); err != nil {
		t.Fatalf("querying functions: %v", err)
	}
	if fnCount != 1 {
		t.Errorf("got %d function rows, want 1", fnCount)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM tst_nodes WHERE session_id = ?`, sess.String()).Scan(&nodeCount); err != nil {
		t.Fatalf("querying tst_nodes: %v", err)
	}
	if nodeCount == 0 {
		t.Errorf("expected at least one tst_nodes row")
	}
}
