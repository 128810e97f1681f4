package check

import (
	"github.com/tara-lang/tarac/internal/symbols"
	"github.com/tara-lang/tarac/internal/types"
)

// registerBuiltins seeds funcs with the infix arithmetic, comparison,
// and logic operators every worked example assumes are already bound.
// The grammar has no syntax for source code to declare a function named
// after an operator spelling — NAME in `function ::= 'func' NAME ...`
// is always an identifier token, never an operator one — so these
// bindings exist only as a small compiler-provided prelude, registered
// before any user function is checked.
//
// Each operator's argument type is built as Call(Star, Pair(...)),
// matching the star-applied product type inferTuple assigns to an
// argument tuple expression: a bare Pair/TupleOf never unifies against
// that shape.
func registerBuiltins(tb *types.Table, in *symbols.Interner, funcs map[*symbols.Name]*types.Type) {
	binOp := tb.Func(tb.Call(tb.Star(), tb.Pair(tb.Int(), tb.Int())), tb.Int())
	for _, spelling := range []string{"+", "-", "*", "/", "%"} {
		funcs[in.InternString(spelling)] = binOp
	}

	cmpOp := tb.Func(tb.Call(tb.Star(), tb.Pair(tb.Int(), tb.Int())), tb.Bool())
	for _, spelling := range []string{"==", "!=", "<", ">", "<=", ">="} {
		funcs[in.InternString(spelling)] = cmpOp
	}

	logicOp := tb.Func(tb.Call(tb.Star(), tb.Pair(tb.Bool(), tb.Bool())), tb.Bool())
	for _, spelling := range []string{"&&", "||"} {
		funcs[in.InternString(spelling)] = logicOp
	}
}
