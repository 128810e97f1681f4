// tarac is the Tara compiler front end's command line driver: it
// discovers a compilation set from one entry file, runs every file
// through internal/pipeline, and reports diagnostics (or, on request,
// dumps the parsed/lowered tree or a SQLite inspection database).
// There is no VM, no bytecode file, no REPL — this binary stops at
// producing a typed tree for an external code generator to consume.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tara-lang/tarac/internal/buildsession"
	"github.com/tara-lang/tarac/internal/config"
	"github.com/tara-lang/tarac/internal/diagnostics"
	"github.com/tara-lang/tarac/internal/diagterm"
	"github.com/tara-lang/tarac/internal/inspect"
	"github.com/tara-lang/tarac/internal/manifest"
	"github.com/tara-lang/tarac/internal/modules"
	"github.com/tara-lang/tarac/internal/opscan"
	"github.com/tara-lang/tarac/internal/pipeline"
	"github.com/tara-lang/tarac/internal/prettyprinter"
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/types"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a bug in tarac, please report it")
			os.Exit(1)
		}
	}()

	dumpAst := flag.Bool("dump-ast", false, "print the parsed tree for each file")
	dumpTst := flag.Bool("dump-tst", false, "print the lowered tree for each file")
	inspectOut := flag.String("inspect", "", "write a SQLite inspection database to this path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <entry-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	os.Exit(run(flag.Arg(0), *dumpAst, *dumpTst, *inspectOut))
}

func run(entry string, dumpAst, dumpTst bool, inspectOut string) int {
	color := diagterm.Enabled(os.Stderr.Fd())
	sess := buildsession.New()

	group, err := modules.Discover(entry)
	if err != nil {
		fmt.Fprintln(os.Stderr, diagterm.Red(fmt.Sprintf("error: %s", err), color))
		return 1
	}

	cfg, err := manifest.Load(filepath.Join(group.Dir, config.ManifestName))
	if err != nil {
		fmt.Fprintln(os.Stderr, diagterm.Red(fmt.Sprintf("error: %s", err), color))
		return 1
	}

	var db *sql.DB
	if inspectOut != "" {
		db, err = inspect.Open(inspectOut)
		if err != nil {
			fmt.Fprintln(os.Stderr, diagterm.Red(fmt.Sprintf("error: %s", err), color))
			return 1
		}
		defer db.Close()
	}

	in := symbols.New()
	wk := symbols.WellKnown(in)
	tb := types.NewTable(wk)

	exitCode := 0
	for _, path := range modules.AllFiles(group) {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, diagterm.Red(fmt.Sprintf("error: %s", err), color))
			exitCode = 1
			continue
		}

		ops := opscan.NewOpdecls()
		cfg.Seed(ops, in)

		ctx := &pipeline.Context{FilePath: path, Source: string(src), In: in, Wk: wk, Tb: tb, Bag: &diagnostics.Bag{}}
		pipeline.RunWithOperators(ctx, ops)

		for _, e := range ctx.Bag.Errors() {
			fmt.Fprintln(os.Stderr, diagterm.Red(e.Error(), color))
		}
		if !ctx.Bag.Empty() {
			exitCode = 1
			continue
		}

		rel := path
		if r, err := filepath.Rel(group.Dir, path); err == nil {
			rel = r
		}

		if dumpAst {
			fmt.Printf("=== %s (ast) ===\n", rel)
			fmt.Println(prettyprinter.PrintAst(ctx.Ast))
		}
		if dumpTst && ctx.Tst != nil {
			fmt.Printf("=== %s (tst) ===\n", rel)
			fmt.Println(prettyprinter.PrintTst(ctx.Tst))
		}
		if db != nil && ctx.Tst != nil {
			if err := inspect.Dump(db, sess, tb, ctx.Tst); err != nil {
				fmt.Fprintln(os.Stderr, diagterm.Red(fmt.Sprintf("error: %s", err), color))
				exitCode = 1
			}
		}
	}

	return exitCode
}
