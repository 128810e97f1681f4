// Package prettyprinter renders an Ast or a Tst back to indented text,
// dispatching with a type switch over concrete node structs (spec's
// Design Notes: "switch exhaustively; no fallthrough") instead of an
// Accept/Visit pair — ast and tst deliberately carry no Accept method
// for exactly this reason.
package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tara-lang/tarac/internal/ast"
	"github.com/tara-lang/tarac/internal/types"
)

// AstPrinter renders an *ast.Ast as an indented tree, one line of
// structure per node. It prints the declared types of function returns
// and bindings ("?" for a nil type); expression nodes are printed
// without their checked types.
type AstPrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewAstPrinter() *AstPrinter { return &AstPrinter{} }

func (p *AstPrinter) String() string { return p.buf.String() }

func (p *AstPrinter) write(s string)  { p.buf.WriteString(s) }
func (p *AstPrinter) line(s string)   { p.writeIndent(); p.write(s); p.write("\n") }
func (p *AstPrinter) writeIndent()    { p.write(strings.Repeat("  ", p.indent)) }

// PrintAst renders every function in a, in declaration order.
func PrintAst(a *ast.Ast) string {
	p := NewAstPrinter()
	for _, fn := range a.Functions {
		p.printFunction(fn)
	}
	return p.String()
}

func (p *AstPrinter) printFunction(fn *ast.Function) {
	p.line(fmt.Sprintf("Function %s", fn.Name.String()))
	p.indent++
	p.writeIndent()
	p.write("Args: ")
	p.printBinding(fn.Args)
	p.write("\n")
	p.writeIndent()
	p.write("Ret: " + typeString(fn.Ret) + "\n")
	p.writeIndent()
	p.write("Body: ")
	p.printExpr(fn.Body)
	p.write("\n")
	p.indent--
}

func (p *AstPrinter) printBinding(b *ast.Binding) {
	switch b.Kind {
	case ast.BindEmpty:
		p.write("()")
	case ast.BindName:
		p.write(b.Name.String() + ": " + typeString(b.Annot))
	case ast.BindTuple:
		p.write("(")
		for i, e := range b.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.printBinding(e)
		}
		p.write(")")
	}
}

// printExpr dispatches by concrete type and writes a single-line or
// block-structured rendering starting at the current write position;
// callers that want a node on its own indented line call writeIndent
// first.
func (p *AstPrinter) printExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Unit:
		p.write("Unit")
	case *ast.NumberLit:
		p.write(fmt.Sprintf("Number(%d)", n.Value))
	case *ast.StringLit:
		p.write(fmt.Sprintf("String(%q)", n.Value))
	case *ast.BoolLit:
		p.write(fmt.Sprintf("Bool(%t)", n.Value))
	case *ast.Recall:
		p.write("Recall(" + n.Name.String() + ")")
	case *ast.If:
		p.write("If\n")
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
	case *ast.Loop:
		p.write("Loop\n")
		p.indent++
		p.writeIndent()
		p.printExpr(n.Body)
		p.indent--
	case *ast.Bareblock:
		p.write("Block\n")
		p.indent++
		for _, s := range n.Stmts {
			p.writeIndent()
			p.printExpr(s)
			p.write("\n")
		}
		p.indent--
	case *ast.Call:
		p.write("Call\n")
		p.indent++
		p.writeIndent()
		p.write("Callee: ")
		p.printExpr(n.Callee)
		p.write("\n")
		p.writeIndent()
		p.write("Args: ")
		p.printExpr(n.Args)
		p.indent--
	case *ast.Tuple:
		p.write("Tuple\n")
		p.indent++
		for _, e := range n.Elems {
			p.writeIndent()
			p.printExpr(e)
			p.write("\n")
		}
		p.indent--
	case *ast.Let:
		p.write("Let ")
		p.printBinding(n.Bind)
		p.write(" = ")
		p.printExpr(n.Init)
	case *ast.Mut:
		p.write("Mut ")
		p.printBinding(n.Bind)
		p.write(" = ")
		p.printExpr(n.Init)
	case *ast.Break:
		p.write("Break")
		if n.Value != nil {
			p.write(" ")
			p.printExpr(n.Value)
		}
	case *ast.Return:
		p.write("Return ")
		p.printExpr(n.Value)
	case *ast.Assign:
		p.write("Assign " + n.Name.String() + " = ")
		p.printExpr(n.Value)
	case *ast.Const:
		p.write("Const ")
		p.printExpr(n.Inner)
	default:
		p.write(fmt.Sprintf("<unknown ast node %T>", n))
	}
}

func typeString(t *types.Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}
