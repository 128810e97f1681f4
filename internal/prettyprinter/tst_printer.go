package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tara-lang/tarac/internal/tst"
)

// TstPrinter renders a *tst.Tst as an indented tree. Literals,
// references, projections, tuples, calls, ifs, and blocks are printed
// with their type; Unit, Loop, Assign, Discard, Break, and Return lines
// are printed without one.
type TstPrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTstPrinter() *TstPrinter { return &TstPrinter{} }

func (p *TstPrinter) String() string { return p.buf.String() }

func (p *TstPrinter) write(s string) { p.buf.WriteString(s) }
func (p *TstPrinter) line(s string)  { p.writeIndent(); p.write(s); p.write("\n") }
func (p *TstPrinter) writeIndent()   { p.write(strings.Repeat("  ", p.indent)) }

// PrintTst renders every function in out, in declaration order.
func PrintTst(out *tst.Tst) string {
	p := NewTstPrinter()
	for _, fn := range out.Functions {
		p.printFunction(fn)
	}
	return p.String()
}

func (p *TstPrinter) printFunction(fn *tst.Function) {
	p.line(fmt.Sprintf("Function %s (arg_slots=%d local_slots=%d) : %s",
		fn.Name.String(), fn.ArgSlots, fn.LocalSlots, fn.Ret.String()))
	p.indent++
	if len(fn.Prologue) > 0 {
		p.line("Prologue:")
		p.indent++
		for _, stmt := range fn.Prologue {
			p.writeIndent()
			p.printExpr(stmt)
			p.write("\n")
		}
		p.indent--
	}
	p.writeIndent()
	p.write("Body: ")
	p.printExpr(fn.Body)
	p.write("\n")
	p.indent--
}

func (p *TstPrinter) printExpr(e tst.Expr) {
	switch n := e.(type) {
	case *tst.Unit:
		p.write("Unit")
	case *tst.NumberLit:
		p.write(fmt.Sprintf("Number(%d) : %s", n.Value, n.Type()))
	case *tst.StringLit:
		p.write(fmt.Sprintf("String(%q) : %s", n.Value, n.Type()))
	case *tst.BoolLit:
		p.write(fmt.Sprintf("Bool(%t) : %s", n.Value, n.Type()))
	case *tst.LocalRef:
		p.write(fmt.Sprintf("LocalRef(%d) : %s", n.Slot, n.Type()))
	case *tst.FuncRef:
		p.write(fmt.Sprintf("FuncRef(%s) : %s", n.Name.String(), n.Type()))
	case *tst.ArgRef:
		p.write("ArgRef : " + n.Type().String())
	case *tst.Project:
		p.write(fmt.Sprintf("Project[%d] : %s\n", n.Index, n.Type()))
		p.indent++
		p.writeIndent()
		p.printExpr(n.Tuple)
		p.indent--
	case *tst.Tuple:
		p.write("Tuple : " + n.Type().String() + "\n")
		p.indent++
		for _, e := range n.Elems {
			p.writeIndent()
			p.printExpr(e)
			p.write("\n")
		}
		p.indent--
	case *tst.Call:
		p.write("Call : " + n.Type().String() + "\n")
		p.indent++
		p.writeIndent()
		p.write("Callee: ")
		p.printExpr(n.Callee)
		p.write("\n")
		p.writeIndent()
		p.write("Args: ")
		p.printExpr(n.Args)
		p.indent--
	case *tst.If:
		p.write("If : " + n.Type().String() + "\n")
		p.indent++
		p.writeIndent()
		p.write("Cond: ")
		p.printExpr(n.Cond)
		p.write("\n")
		p.writeIndent()
		p.write("Then: ")
		p.printExpr(n.Then)
		p.write("\n")
		p.writeIndent()
		p.write("Else: ")
		p.printExpr(n.Else)
		p.indent--
	case *tst.Loop:
		p.write("Loop\n")
		p.indent++
		p.writeIndent()
		p.printExpr(n.Body)
		p.indent--
	case *tst.Assign:
		p.write(fmt.Sprintf("Assign[%d] = ", n.Slot))
		p.printExpr(n.Value)
	case *tst.Discard:
		p.write("Discard ")
		p.printExpr(n.Inner)
	case *tst.Break:
		p.write("Break")
		if n.Value != nil {
			p.write(" ")
			p.printExpr(n.Value)
		}
	case *tst.Return:
		p.write("Return ")
		p.printExpr(n.Value)
	case *tst.Block:
		p.write("Block : " + n.Type().String() + "\n")
		p.indent++
		for _, s := range n.Stmts {
			p.writeIndent()
			p.printExpr(s)
			p.write("\n")
		}
		if n.Tail != nil {
			p.writeIndent()
			p.write("Tail: ")
			p.printExpr(n.Tail)
			p.write("\n")
		}
		p.indent--
	default:
		p.write(fmt.Sprintf("<unknown tst node %T>", n))
	}
}
