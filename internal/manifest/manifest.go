// Package manifest loads a project's optional tara.yaml file: a
// yaml-tagged Config struct and a Load function that tolerates the
// file being absent by returning zero-value defaults rather than an
// error.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tara-lang/tarac/internal/opscan"
	"github.com/tara-lang/tarac/internal/symbols"
)

// OperatorDecl is one manifest-declared operator (spec §4.2): a
// project-wide precedence that every file in the compilation set
// shares, instead of repeating an in-source infix/prefix declaration
// in each one.
type OperatorDecl struct {
	Symbol     string `yaml:"symbol"`
	Precedence int    `yaml:"precedence"`
	Assoc      string `yaml:"assoc"` // "left", "right", or "none"; omitted for prefix
	Prefix     bool   `yaml:"prefix,omitempty"`
}

// Config is tara.yaml's top-level shape.
type Config struct {
	Operators []OperatorDecl `yaml:"operators"`
	Target    string         `yaml:"target"` // forwarded to the external code generator, spec §6
	Out       string         `yaml:"out"`    // base name for out.o / out
}

// Load reads path and parses it as a Config. A missing file is not an
// error: it returns an empty Config, so a project with no tara.yaml
// compiles with no manifest-level operator pre-seeding and the code
// generator's own defaults for target/out.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Seed pre-registers cfg's operators into ops, before the first source
// file is scanned (spec §4.2). It reports no errors: a later manifest
// entry for a spelling already seeded is dropped (DeclareInfix/
// DeclarePrefix refuse it and Seed ignores their result), so the first
// entry wins. An in-source declaration that collides with a seeded
// spelling is reported as an OpDecl error once scanning reaches it.
func (cfg *Config) Seed(ops *opscan.Opdecls, in *symbols.Interner) {
	for _, decl := range cfg.Operators {
		name := in.InternString(decl.Symbol)
		if decl.Prefix {
			ops.DeclarePrefix(name, opscan.OpDecl{Precedence: decl.Precedence, Assoc: opscan.None})
			continue
		}
		ops.DeclareInfix(name, opscan.OpDecl{Precedence: decl.Precedence, Assoc: parseAssoc(decl.Assoc)})
	}
}

func parseAssoc(s string) opscan.Assoc {
	switch s {
	case "right":
		return opscan.Right
	case "none":
		return opscan.None
	default:
		return opscan.Left
	}
}
