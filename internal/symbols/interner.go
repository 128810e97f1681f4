// Package symbols implements the string interner (spec §4.1): it maps
// byte-slice spellings to a canonical, stable *Name, so every later
// stage compares identifiers and operator spellings by pointer instead
// of by string content.
package symbols

// Name is the canonical representation of an interned spelling.
// Pointer identity of *Name implies textual identity and vice versa.
type Name struct {
	Spelling string
}

func (n *Name) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Spelling
}

// Interner is an append-only store of canonical *Name pointers. It is
// accessed by exactly one pipeline stage at a time (spec §5) and is
// never concurrent, so it carries no locking.
type Interner struct {
	table map[string]*Name
}

// New creates an empty Interner.
func New() *Interner {
	return &Interner{table: make(map[string]*Name)}
}

// Intern returns the canonical *Name for spelling, creating one on
// first use. Equal byte slices always yield the same pointer, and the
// returned pointer lives as long as the Interner.
func (in *Interner) Intern(spelling []byte) *Name {
	s := string(spelling)
	if n, ok := in.table[s]; ok {
		return n
	}
	n := &Name{Spelling: s}
	in.table[s] = n
	return n
}

// InternString is a convenience wrapper around Intern for callers that
// already hold a string.
func (in *Interner) InternString(spelling string) *Name {
	return in.Intern([]byte(spelling))
}

// Len reports how many distinct spellings have been interned so far.
func (in *Interner) Len() int {
	return len(in.table)
}
