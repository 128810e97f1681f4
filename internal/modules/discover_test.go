package modules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tara-lang/tarac/internal/modules"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscoverFindsSiblingFilesAndNestedGroup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.tara"), "")
	writeFile(t, filepath.Join(root, "util.tara"), "")
	writeFile(t, filepath.Join(root, ".hidden.tara"), "")
	writeFile(t, filepath.Join(root, "sub", "sub.tara"), "")
	writeFile(t, filepath.Join(root, "sub", "extra.tara"), "")
	writeFile(t, filepath.Join(root, "sub", ".hidden"), "")

	g, err := modules.Discover(filepath.Join(root, "main.tara"))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(g.Files) != 1 || filepath.Base(g.Files[0]) != "util.tara" {
		t.Fatalf("got root Files %v, want [util.tara]", g.Files)
	}
	if len(g.Children) != 1 || g.Children[0].Name != "sub" {
		t.Fatalf("got Children %+v, want one group named sub", g.Children)
	}
	if filepath.Base(g.Children[0].Body) != "sub.tara" {
		t.Errorf("got sub group Body %q, want sub.tara", g.Children[0].Body)
	}

	all := modules.AllFiles(g)
	if len(all) != 4 {
		t.Fatalf("got %d files, want 4 (main, util, sub/sub, sub/extra); got %v", len(all), all)
	}
}

func TestDiscoverPureNamespaceHasNoBody(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.tara"), "")
	writeFile(t, filepath.Join(root, "ns", "leaf.tara"), "")

	g, err := modules.Discover(filepath.Join(root, "main.tara"))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(g.Children) != 1 {
		t.Fatalf("got Children %+v, want one group", g.Children)
	}
	ns := g.Children[0]
	if ns.Body != "" {
		t.Errorf("got Body %q, want empty (pure namespace)", ns.Body)
	}
	if len(ns.Files) != 1 || filepath.Base(ns.Files[0]) != "leaf.tara" {
		t.Errorf("got Files %v, want [leaf.tara]", ns.Files)
	}
}
