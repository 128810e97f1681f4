// Package inspect writes a completed compile session's intern table,
// function signatures, and lowered tree to a SQLite file for external
// tooling (an editor plugin, a `tarac-why` CLI, not specified here) to
// query. It is write-only: tarac never reads a prior session's rows
// back to skip work, so this does not implement the disclaimed
// "incremental recompilation" feature (spec §1's Non-goals) — it is a
// dump, not a cache.
package inspect

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tara-lang/tarac/internal/buildsession"
	"github.com/tara-lang/tarac/internal/tst"
	"github.com/tara-lang/tarac/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS types (
	session_id TEXT NOT NULL,
	address    TEXT NOT NULL,
	kind       TEXT NOT NULL,
	text       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS functions (
	session_id  TEXT NOT NULL,
	name        TEXT NOT NULL,
	arg_slots   INTEGER NOT NULL,
	local_slots INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS tst_nodes (
	session_id TEXT NOT NULL,
	function   TEXT NOT NULL,
	seq        INTEGER NOT NULL,
	kind       TEXT NOT NULL,
	type_text  TEXT NOT NULL
);
`

// Open creates path (if absent) and ensures the schema above exists.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema in %s: %w", path, err)
	}
	return db, nil
}

// Dump writes tb's full intern table and out's functions (including a
// flattened walk of every Tst node reachable from each function body)
// into db, all tagged with sess's ID so rows from concurrent
// invocations sharing one database file never mix.
func Dump(db *sql.DB, sess buildsession.Session, tb *types.Table, out *tst.Tst) error {
	for _, t := range tb.All() {
		if _, err := db.Exec(
			`INSERT INTO types (session_id, address, kind, text) VALUES (?, ?, ?, ?)`,
			sess.String(), fmt.Sprintf("%p", t), t.Tag().String(), t.String(),
		); err != nil {
			return fmt.Errorf("inserting type row: %w", err)
		}
	}
	for _, fn := range out.Functions {
		name := fn.Name.String()
		if _, err := db.Exec(
			`INSERT INTO functions (session_id, name, arg_slots, local_slots) VALUES (?, ?, ?, ?)`,
			sess.String(), name, fn.ArgSlots, fn.LocalSlots,
		); err != nil {
			return fmt.Errorf("inserting function row for %s: %w", name, err)
		}
		seq := 0
		if err := walk(fn.Body, func(n tst.Expr) error {
			seq++
			_, err := db.Exec(
				`INSERT INTO tst_nodes (session_id, function, seq, kind, type_text) VALUES (?, ?, ?, ?, ?)`,
				sess.String(), name, seq, nodeKind(n), n.Type().String(),
			)
			return err
		}); err != nil {
			return fmt.Errorf("inserting tst_node row for %s: %w", name, err)
		}
		for _, stmt := range fn.Prologue {
			seq++
			if _, err := db.Exec(
				`INSERT INTO tst_nodes (session_id, function, seq, kind, type_text) VALUES (?, ?, ?, ?, ?)`,
				sess.String(), name, seq, nodeKind(stmt), stmt.Type().String(),
			); err != nil {
				return fmt.Errorf("inserting tst_node row for %s: %w", name, err)
			}
		}
	}
	return nil
}

func nodeKind(n tst.Expr) string {
	return fmt.Sprintf("%T", n)
}

// walk visits every Tst node reachable from root, each node before its
// children. A non-nil callback error stops the walk and is returned;
// Dump treats it as fatal to the dump (a closed database, typically).
func walk(root tst.Expr, visit func(tst.Expr) error) error {
	if root == nil {
		return nil
	}
	if err := visit(root); err != nil {
		return err
	}
	switch n := root.(type) {
	case *tst.Tuple:
		for _, e := range n.Elems {
			if err := walk(e, visit); err != nil {
				return err
			}
		}
	case *tst.Call:
		if err := walk(n.Callee, visit); err != nil {
			return err
		}
		return walk(n.Args, visit)
	case *tst.If:
		if err := walk(n.Cond, visit); err != nil {
			return err
		}
		if err := walk(n.Then, visit); err != nil {
			return err
		}
		return walk(n.Else, visit)
	case *tst.Loop:
		return walk(n.Body, visit)
	case *tst.Block:
		for _, s := range n.Stmts {
			if err := walk(s, visit); err != nil {
				return err
			}
		}
		return walk(n.Tail, visit)
	case *tst.Assign:
		return walk(n.Value, visit)
	case *tst.Discard:
		return walk(n.Inner, visit)
	case *tst.Break:
		return walk(n.Value, visit)
	case *tst.Return:
		return walk(n.Value, visit)
	case *tst.Project:
		return walk(n.Tuple, visit)
	}
	return nil
}
