package syntax

import (
	"fmt"
	"io"
	"strings"

	"github.com/you-not-fish/lox/internal/value"
)

// ----------------------------------------------------------------------------
// Expression forms

// Infix renders x back into source form. Parenthesized subexpressions keep
// their parentheses and string literals are quoted, so the result parses
// to a tree equal to x.
func Infix(x Expr) string {
	var b strings.Builder
	infix(&b, x)
	return b.String()
}

func infix(b *strings.Builder, x Expr) {
	switch n := x.(type) {
	case nil:
		// nothing to print

	case *Literal:
		if n.Value.IsString() {
			b.WriteByte('"')
			b.WriteString(n.Value.AsString())
			b.WriteByte('"')
			return
		}
		b.WriteString(n.Value.String())

	case *Grouping:
		b.WriteByte('(')
		infix(b, n.X)
		b.WriteByte(')')

	case *Unary:
		b.WriteString(n.Op.Text())
		infix(b, n.X)

	case *Binary:
		infix(b, n.X)
		b.WriteString(" " + n.Op.Text() + " ")
		infix(b, n.Y)

	case *Logical:
		infix(b, n.X)
		b.WriteString(" " + n.Op.Text() + " ")
		infix(b, n.Y)

	case *Variable:
		b.WriteString(n.Name)

	case *Assign:
		b.WriteString(n.Name + " = ")
		infix(b, n.Value)

	default:
		panic(fmt.Sprintf("syntax.Infix: unexpected %T", x))
	}
}

// Prefix renders x in fully parenthesized prefix form, e.g.
//
//	(* (group (+ 5 2)) (- 6))
func Prefix(x Expr) string {
	var b strings.Builder
	prefix(&b, x)
	return b.String()
}

func prefix(b *strings.Builder, x Expr) {
	switch n := x.(type) {
	case nil:

	case *Literal:
		b.WriteString(n.Value.String())

	case *Grouping:
		parenthesize(b, "group", n.X)

	case *Unary:
		parenthesize(b, n.Op.Text(), n.X)

	case *Binary:
		parenthesize(b, n.Op.Text(), n.X, n.Y)

	case *Logical:
		parenthesize(b, n.Op.Text(), n.X, n.Y)

	case *Variable:
		b.WriteString(n.Name)

	case *Assign:
		b.WriteString("(= " + n.Name + " ")
		prefix(b, n.Value)
		b.WriteByte(')')

	default:
		panic(fmt.Sprintf("syntax.Prefix: unexpected %T", x))
	}
}

func parenthesize(b *strings.Builder, name string, xs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, x := range xs {
		b.WriteByte(' ')
		prefix(b, x)
	}
	b.WriteByte(')')
}

// ----------------------------------------------------------------------------
// Tree dump

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) error {
	p := &printer{w: w}
	p.print(node)
	return p.err
}

// FprintStmts writes every statement of a program to w.
func FprintStmts(w io.Writer, stmts []Stmt) error {
	p := &printer{w: w}
	for _, s := range stmts {
		p.print(s)
	}
	return p.err
}

type printer struct {
	w      io.Writer
	indent int
	err    error // first write error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// section prints a labeled child one level deeper.
func (p *printer) section(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	// Statements
	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *PrintStmt:
		p.printf("PrintStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *VarDecl:
		p.printf("VarDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name)
		if n.Init != nil {
			p.section("Init", n.Init)
		}
		p.indent--

	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.section("Cond", n.Cond)
		p.section("Then", n.Then)
		if n.Else != nil {
			p.section("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.section("Cond", n.Cond)
		p.section("Body", n.Body)
		p.indent--

	// Expressions
	case *Literal:
		p.printf("Literal %s %s\n", n.pos, literalString(n.Value))

	case *Grouping:
		p.printf("Grouping %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Unary:
		p.printf("Unary %s %s\n", n.pos, n.Op.Text())
		p.indent++
		p.print(n.X)
		p.indent--

	case *Binary:
		p.printf("Binary %s %s\n", n.pos, n.Op.Text())
		p.indent++
		p.print(n.X)
		p.print(n.Y)
		p.indent--

	case *Logical:
		p.printf("Logical %s %s\n", n.pos, n.Op.Text())
		p.indent++
		p.print(n.X)
		p.print(n.Y)
		p.indent--

	case *Variable:
		p.printf("Variable %s %s\n", n.pos, n.Name)

	case *Assign:
		p.printf("Assign %s %s\n", n.pos, n.Name)
		p.indent++
		p.print(n.Value)
		p.indent--

	default:
		p.printf("<unknown %T>\n", node)
	}
}

// literalString renders a literal for the tree dump; strings are quoted.
func literalString(v value.Value) string {
	if v.IsString() {
		return fmt.Sprintf("%q", v.AsString())
	}
	return v.String()
}
