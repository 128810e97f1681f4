// Package pipeline sequences the compiler's stages over one source
// file: lex, scan for operator declarations, parse, type-check, and
// lower to the typed tree, in the fixed order spec §5 mandates
// ("single-threaded, strictly staged... each stage fully consumes its
// input before the next begins"). The stage order is not pluggable —
// there is nothing in this compiler for a caller to substitute at any
// one stage.
package pipeline

import (
	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/check"
	"github.com/tara-lang/tarac/internal/convert"
	"github.com/tara-lang/tarac/internal/diagnostics"
	"github.com/tara-lang/tarac/internal/lexer"
	"github.com/tara-lang/tarac/internal/opscan"
	"github.com/tara-lang/tarac/internal/parser"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/tst"
	"github.com/tara-lang/tarac/internal/types"
)

// Context carries one file's state across every stage, and the
// cross-file state (the string and type interns, spec §5: "the only
// implicit sharing is the type intern and the string intern") that
// outlives any single file.
type Context struct {
	FilePath string
	Source   string

	In *symbols.Interner
	Wk symbols.Symbols
	Tb *types.Table

	Ast *ast.Ast
	Tst *tst.Tst

	Bag *diagnostics.Bag
}

// NewContext creates a Context sharing in/wk/tb across every file in a
// compilation set (the caller constructs these once, before the first
// file, and passes the same values to every subsequent Context).
func NewContext(path, source string, in *symbols.Interner, wk symbols.Symbols, tb *types.Table) *Context {
	return &Context{FilePath: path, Source: source, In: in, Wk: wk, Tb: tb, Bag: &diagnostics.Bag{}}
}

// Run drives ctx through lex -> operator-scan -> parse -> check ->
// convert, stopping early the way spec §7 requires: a Lex/OpDecl error
// collected during scanning does not by itself abort parsing (the scan
// pass still finishes and hands the parser whatever buffer it built),
// but a Parse error aborts before checking, and any type error aborts
// before conversion ("any error at the end of the type-checking stage
// aborts the pipeline before conversion"). It scans with a fresh,
// file-local operator table.
func Run(ctx *Context) {
	RunWithOperators(ctx, opscan.NewOpdecls())
}

// RunWithOperators is Run, but scanning starts from ops instead of an
// empty table, so operators the caller pre-seeded (typically from a
// loaded project manifest) are visible to this file. The scan adds
// this file's own in-source declarations to ops itself, so a caller
// that reuses one table across files carries each file's declarations
// into every later file; cmd/tarac builds a fresh, manifest-seeded
// table for each file. Every diagnostic collected in ctx.Bag is
// stamped with ctx.FilePath on return.
func RunWithOperators(ctx *Context, ops *opscan.Opdecls) {
	defer ctx.Bag.SetFile(ctx.FilePath)

	lx := lexer.New(ctx.Source, ctx.In)
	buf, ops, scanBag := opscan.ScanInto(lx, ctx.In, ops)
	ctx.Bag.Merge(scanBag)

	a, parseBag := parser.Parse(buf, ops, ctx.In, ctx.Tb, ctx.Wk)
	if parseBag != nil {
		ctx.Bag.Merge(parseBag)
	}
	if a == nil {
		return
	}
	ctx.Ast = a

	checkBag := check.Check(a, ctx.Tb, ctx.Wk, ctx.In)
	ctx.Bag.Merge(checkBag)
	if !checkBag.Empty() {
		return
	}

	ctx.Tst = convert.Convert(a, ctx.Tb)
}
