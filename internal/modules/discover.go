// Package modules implements the file-discovery contract of spec §6:
// given one entry source file, find every sibling ".tara" file in its
// enclosing directory (and nested subdirectories, as nested module
// groups) to form the compilation set. Cross-file name resolution is
// explicitly out of scope (spec §1's "no cross-file module import
// resolution" Non-goal) — this package only walks the filesystem and
// groups files.
package modules

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tara-lang/tarac/internal/config"
)

// Group is one directory's module files plus its nested subdirectory
// groups. A directory with no ".tara" file of its own (Body == "") is
// a pure namespace: its Name still participates in the module tree,
// but it contributes no source of its own.
type Group struct {
	Name     string   // directory base name, or the entry file's module name at the root
	Dir      string   // absolute directory path
	Body     string   // path to dirName.tara if present (the entry file at the root), else ""
	Files    []string // every other *.tara file directly in Dir, sorted
	Children []*Group // nested subdirectories that contain or lead to source, sorted by Name
}

// Discover walks the parent directory of entry (which must itself end
// in config.SourceExt) and returns the Group rooted there. Hidden
// entries (leading '.') are skipped entirely, files and directories
// alike.
func Discover(entry string) (*Group, error) {
	abs, err := filepath.Abs(entry)
	if err != nil {
		return nil, err
	}
	return walkDir(filepath.Dir(abs), filepath.Base(abs))
}

// walkDir builds dir's Group; mainFile is the file name that becomes
// its Body (the entry file at the root, dirName.tara below it).
func walkDir(dir, mainFile string) (*Group, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	g := &Group{Name: config.TrimSourceExt(mainFile), Dir: dir}

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() {
			child, err := walkDir(filepath.Join(dir, e.Name()), e.Name()+config.SourceExt)
			if err != nil {
				return nil, err
			}
			if child.Body != "" || len(child.Files) > 0 || len(child.Children) > 0 {
				g.Children = append(g.Children, child)
			}
			continue
		}
		if !config.HasSourceExt(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if e.Name() == mainFile {
			g.Body = path
		} else {
			g.Files = append(g.Files, path)
		}
	}

	sort.Strings(g.Files)
	sort.Slice(g.Children, func(i, j int) bool { return g.Children[i].Name < g.Children[j].Name })
	return g, nil
}

// AllFiles flattens g and every descendant into one list of source
// file paths, the compilation set the pipeline consumes: g's Body
// first, then its sorted Files, then each child group's files in
// child order.
func AllFiles(g *Group) []string {
	var out []string
	if g.Body != "" {
		out = append(out, g.Body)
	}
	out = append(out, g.Files...)
	for _, child := range g.Children {
		out = append(out, AllFiles(child)...)
	}
	return out
}
