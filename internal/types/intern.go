package types

import (
	"hash/fnv"
	"unsafe"

	"github.com/tara-lang/tarac/internal/symbols"
)

// Table is the hash-consed store of canonical Types (spec §4.3). It
// owns every Type's storage and is append-only: entries are never
// removed, matching the string interner's contract and the arena
// discipline of spec §5.
type Table struct {
	wellKnown symbols.Symbols
	buckets   map[uint64][]*Type
	unit      *Type
	boolT     *Type
	intT      *Type
	stringT   *Type
	divergent *Type
}

// NewTable creates a Table seeded with the well-known primitive types
// (bool, int, string) and the unique unit type, so every later stage
// can ask for them by field access instead of re-interning.
func NewTable(wk symbols.Symbols) *Table {
	tb := &Table{wellKnown: wk, buckets: make(map[uint64][]*Type)}
	tb.unit = tb.internHead(&Type{tag: Tuple, elems: nil})
	tb.boolT = tb.Recall(wk.Bool)
	tb.intT = tb.Recall(wk.Int)
	tb.stringT = tb.Recall(wk.String)
	tb.divergent = &Type{tag: Divergent}
	return tb
}

func (tb *Table) Unit() *Type      { return tb.unit }
func (tb *Table) Bool() *Type      { return tb.boolT }
func (tb *Table) Int() *Type       { return tb.intT }
func (tb *Table) String() *Type    { return tb.stringT }
func (tb *Table) Divergent() *Type { return tb.divergent }

// Unify implements spec §9's divergent-type rule: `!` (the type of
// break/return) unifies with any other type by taking the other side.
// Otherwise two types unify only if they are the same canonical
// pointer (spec §3's pointer-equality invariant).
func (tb *Table) Unify(a, b *Type) (*Type, bool) {
	if a == b {
		return a, true
	}
	if a == tb.divergent {
		return b, true
	}
	if b == tb.divergent {
		return a, true
	}
	return nil, false
}

// Recall interns a named nominal type.
func (tb *Table) Recall(name *symbols.Name) *Type {
	return tb.internHead(&Type{tag: Recall, name: name})
}

// Func interns a function type args -> ret. Both args and ret must
// already be canonical (interned through this same Table).
func (tb *Table) Func(args, ret *Type) *Type {
	return tb.internHead(&Type{tag: Func, args: args, ret: ret})
}

// Call interns a type constructor application ctor(args).
func (tb *Table) Call(ctor, args *Type) *Type {
	return tb.internHead(&Type{tag: Call, ctor: ctor, args: args})
}

// TupleOf interns a tuple type from an already-ordered, already-
// canonical element slice. Rejects arity 1 with a panic (spec §3:
// "Tuple with one element is forbidden"). Pair never produces arity 1;
// TupleExtend does when tail is the empty unit tuple, and so panics
// there.
func (tb *Table) TupleOf(elems []*Type) *Type {
	if len(elems) == 1 {
		panic("types: arity-1 tuple is forbidden")
	}
	cp := make([]*Type, len(elems))
	copy(cp, elems)
	return tb.internHead(&Type{tag: Tuple, elems: cp})
}

// Pair interns the two-element tuple [lhs, rhs], in that source order.
func (tb *Table) Pair(lhs, rhs *Type) *Type {
	return tb.TupleOf([]*Type{lhs, rhs})
}

// TupleExtend implements spec §4.3's snoc operation. If tail is
// already a Tuple, it returns a new canonical Tuple with head
// appended after tail's existing elements, preserving left-to-right
// source order (spec §9's Open Question, resolved: append, not
// prepend — see DESIGN.md). Otherwise it behaves as Pair(tail, head).
func (tb *Table) TupleExtend(tail, head *Type) *Type {
	if tail.tag == Tuple {
		elems := make([]*Type, 0, len(tail.elems)+1)
		elems = append(elems, tail.elems...)
		elems = append(elems, head)
		return tb.TupleOf(elems)
	}
	return tb.Pair(tail, head)
}

// Star returns the interned Recall for the tuple/product type
// constructor name "*", the canonical ctor used by Call for products
// of arity >= 2 (spec §3).
func (tb *Table) Star() *Type {
	return tb.Recall(tb.wellKnown.Star)
}

// All returns every canonical type currently in the intern table, in
// no particular order. Used by internal/inspect to dump the type
// intern's contents for external tooling; the core itself never
// iterates its own table.
func (tb *Table) All() []*Type {
	var out []*Type
	for _, bucket := range tb.buckets {
		out = append(out, bucket...)
	}
	return out
}

// internHead hash-conses head: it looks head up by structural
// hash/equality among already-canonical children and returns the
// existing canonical pointer on a hit, or inserts head as the new
// canonical pointer on a miss (spec §4.3/§9: "a single
// pointer-comparison pass suffices" because children are already
// canonical).
func (tb *Table) internHead(head *Type) *Type {
	h := hashOf(head)
	for _, cand := range tb.buckets[h] {
		if structurallyEqual(cand, head) {
			return cand
		}
	}
	tb.buckets[h] = append(tb.buckets[h], head)
	return head
}

func structurallyEqual(a, b *Type) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case Recall:
		return a.name == b.name
	case Func:
		return a.args == b.args && a.ret == b.ret
	case Call:
		return a.ctor == b.ctor && a.args == b.args
	case Tuple:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if a.elems[i] != b.elems[i] {
				return false
			}
		}
		return true
	}
	return false
}

func hashOf(t *Type) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeUint := func(u uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(u >> (8 * i))
		}
		h.Write(buf[:])
	}
	writeUint(uint64(t.tag))
	switch t.tag {
	case Recall:
		writeUint(uint64(uintptr(unsafe.Pointer(t.name))))
	case Func:
		writeUint(uint64(uintptr(unsafe.Pointer(t.args))))
		writeUint(uint64(uintptr(unsafe.Pointer(t.ret))))
	case Call:
		writeUint(uint64(uintptr(unsafe.Pointer(t.ctor))))
		writeUint(uint64(uintptr(unsafe.Pointer(t.args))))
	case Tuple:
		writeUint(uint64(len(t.elems)))
		for _, e := range t.elems {
			writeUint(uint64(uintptr(unsafe.Pointer(e))))
		}
	}
	return h.Sum64()
}
