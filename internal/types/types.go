// Package types implements the type universe described in spec §3/§4.3:
// a hash-consed intern table of Type nodes where structural equality is
// pointer equality. Every Type reachable from a Table lives for the
// whole compilation in the table's arena.
package types

import "github.com/tara-lang/tarac/internal/symbols"

// Tag discriminates the Type variants of spec §3's table.
type Tag int

const (
	Recall     Tag = iota // named nominal type
	Func                  // function type: args -> ret
	Call                  // type constructor application: name(args)
	Tuple                 // anonymous ordered tuple type
	Divergent             // the type of break/return; unifies with any other type
)

func (t Tag) String() string {
	switch t {
	case Recall:
		return "Recall"
	case Func:
		return "Func"
	case Call:
		return "Call"
	case Tuple:
		return "Tuple"
	case Divergent:
		return "Divergent"
	default:
		return "?"
	}
}

// Type is a canonical, hash-consed type node. Two Types are the same
// type if and only if they are the same pointer (spec §3 invariant).
// Never construct a Type literal directly outside this package — go
// through a Table so it is interned.
type Type struct {
	tag Tag

	name *symbols.Name // Recall: the nominal name

	ctor *Type // Call: the type constructor (e.g. the interned Recall for "*")
	args *Type // Call: the constructor's argument (usually a Tuple); Func: the argument type

	ret *Type // Func: the return type

	elems []*Type // Tuple: canonical, already-interned element sequence, left-to-right source order
}

func (t *Type) Tag() Tag { return t.tag }

// Name returns the nominal name of a Recall type. Panics if t is not Recall.
func (t *Type) Name() *symbols.Name {
	t.mustBe(Recall)
	return t.name
}

// Ctor returns the type constructor of a Call type. Panics if t is not Call.
func (t *Type) Ctor() *Type {
	t.mustBe(Call)
	return t.ctor
}

// Args returns the argument type of a Call or Func type. Panics otherwise.
func (t *Type) Args() *Type {
	if t.tag != Call && t.tag != Func {
		panic("types: Args on non-Call/Func type")
	}
	return t.args
}

// Ret returns the return type of a Func type. Panics if t is not Func.
func (t *Type) Ret() *Type {
	t.mustBe(Func)
	return t.ret
}

// Elems returns the ordered element sequence of a Tuple type, in
// left-to-right source order (spec §9's chosen tuple order). Panics if
// t is not Tuple.
func (t *Type) Elems() []*Type {
	t.mustBe(Tuple)
	return t.elems
}

// IsUnit reports whether t is the unique zero-element tuple.
func (t *Type) IsUnit() bool {
	return t.tag == Tuple && len(t.elems) == 0
}

func (t *Type) mustBe(tag Tag) {
	if t.tag != tag {
		panic("types: wrong tag, expected " + tag.String() + " got " + t.tag.String())
	}
}

// String renders t for diagnostics (spec §7: TypeMismatch prints both
// types). Rendering never allocates a new Type — it only reads the
// canonical tree.
func (t *Type) String() string {
	if t == nil {
		return "<unknown>"
	}
	switch t.tag {
	case Recall:
		return t.name.String()
	case Func:
		return t.args.String() + " -> " + t.ret.String()
	case Call:
		return t.ctor.String() + "(" + t.args.String() + ")"
	case Tuple:
		if len(t.elems) == 0 {
			return "()"
		}
		s := "("
		for i, e := range t.elems {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + ")"
	case Divergent:
		return "!"
	default:
		return "?"
	}
}
