// Package diagnostics defines the compiler's error vocabulary (spec §7)
// and the Bag that collects more than one per function instead of
// aborting at the first (spec §4.5: type checking keeps going after a
// mismatch so a single run reports every error in a function body).
package diagnostics

import (
	"fmt"

	"github.com/tara-lang/tarac/internal/token"
)

// Kind classifies a diagnostic by the pipeline stage and condition that
// raised it (spec §7).
type Kind string

const (
	Io               Kind = "IO"       // source file could not be read
	Lex              Kind = "LEX"      // illegal character
	OpDecl           Kind = "OPDECL"   // duplicate or malformed operator declaration
	Parse            Kind = "PARSE"    // unexpected token
	Unbound          Kind = "UNBOUND"  // identifier has no binding in scope
	TypeMismatch     Kind = "TYPE"     // inferred/expected type disagreement
	NotAFunction     Kind = "NOTFUNC"  // call target is not a Func type
	NotMutable       Kind = "NOTMUT"   // assignment target was bound with let, not mut
	BreakOutsideLoop Kind = "BREAKLOC" // break outside a Loop
	Oom              Kind = "OOM"      // arena allocation exhausted
)

// Error is one diagnostic. Pos is the zero Token when a diagnostic has
// no single source location (e.g. Io).
type Error struct {
	Kind Kind
	Pos  token.Token
	File string
	Text string
}

func (e *Error) Error() string {
	loc := ""
	if e.Pos.Line > 0 {
		loc = fmt.Sprintf("%d:%d ", e.Pos.Line, e.Pos.Column)
	}
	file := e.File
	if file != "" {
		file += ": "
	}
	return fmt.Sprintf("%s%s[%s] %s", file, loc, e.Kind, e.Text)
}

func newError(kind Kind, tok token.Token, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: tok, Text: fmt.Sprintf(format, args...)}
}

func IoError(format string, args ...interface{}) *Error {
	return newError(Io, token.Token{}, format, args...)
}

func LexError(tok token.Token, spelling string) *Error {
	return newError(Lex, tok, "illegal character %q", spelling)
}

func OpDeclError(tok token.Token, format string, args ...interface{}) *Error {
	return newError(OpDecl, tok, format, args...)
}

func ParseError(tok token.Token, format string, args ...interface{}) *Error {
	return newError(Parse, tok, format, args...)
}

func UnboundError(tok token.Token, name string) *Error {
	return newError(Unbound, tok, "unbound identifier %q", name)
}

func TypeMismatchError(tok token.Token, expected, got fmt.Stringer) *Error {
	return newError(TypeMismatch, tok, "expected type %s, got %s", expected, got)
}

func NotAFunctionError(tok token.Token, got fmt.Stringer) *Error {
	return newError(NotAFunction, tok, "not a function: %s", got)
}

func NotMutableError(tok token.Token, name string) *Error {
	return newError(NotMutable, tok, "%q was not bound with mut, cannot assign", name)
}

func BreakOutsideLoopError(tok token.Token) *Error {
	return newError(BreakOutsideLoop, tok, "break outside of a loop")
}

func OomError(arena string) *Error {
	return newError(Oom, token.Token{}, "arena %q exhausted", arena)
}

// Bag accumulates zero or more Errors instead of stopping at the first,
// so one type-check pass over a function reports everything wrong with
// it (spec §4.5). SetFile sets the File field on every Error currently
// held, so callers can attach it once batches are complete.
type Bag struct {
	errs []*Error
}

func (b *Bag) Add(e *Error) { b.errs = append(b.errs, e) }

func (b *Bag) Empty() bool { return len(b.errs) == 0 }

func (b *Bag) Errors() []*Error { return b.errs }

// SetFile stamps File on every Error currently in the bag.
func (b *Bag) SetFile(file string) {
	for _, e := range b.errs {
		e.File = file
	}
}

// Merge appends other's errors onto b. A nil other is ignored; the
// stages (opscan, parser, check) always return a non-nil *Bag, empty
// on a clean run.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.errs = append(b.errs, other.errs...)
}

func (b *Bag) Error() string {
	if len(b.errs) == 0 {
		return ""
	}
	s := b.errs[0].Error()
	for _, e := range b.errs[1:] {
		s += "\n" + e.Error()
	}
	return s
}
