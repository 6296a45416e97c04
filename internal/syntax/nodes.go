package syntax

import "github.com/you-not-fish/lox/internal/value"

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 classes of nodes: Expressions and Statements.
// All nodes implement the Node interface. Every node exclusively owns its
// children; trees never share subtrees and never cycle.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// Line returns the node's 1-based source line.
func (n *node) Line() int { return int(n.pos.line) }

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Expressions

// Literal represents a constant: number, string, true, false or nil.
type Literal struct {
	expr
	Value value.Value
}

// Grouping represents a parenthesized expression: (X)
type Grouping struct {
	expr
	X Expr // inner expression
}

// Unary represents a prefix operation: Op X, with Op one of ! -
type Unary struct {
	expr
	Op Token // Bang or Minus
	X  Expr  // operand
}

// Binary represents an arithmetic, comparison or equality operation.
type Binary struct {
	expr
	Op Token // operator token
	X  Expr  // left operand
	Y  Expr  // right operand
}

// Logical represents a short-circuiting operation: X and Y, X or Y.
type Logical struct {
	expr
	Op Token // And or Or
	X  Expr  // left operand
	Y  Expr  // right operand
}

// Variable represents a reference to a named variable.
type Variable struct {
	expr
	Name string
}

// Assign represents an assignment to an existing variable: Name = Value
type Assign struct {
	expr
	Name  string
	Value Expr
}

// ----------------------------------------------------------------------------
// Statements

// ExprStmt represents an expression evaluated for its effect.
type ExprStmt struct {
	stmt
	X Expr
}

// PrintStmt represents: print X;
type PrintStmt struct {
	stmt
	X Expr
}

// VarDecl represents: var Name = Init;
type VarDecl struct {
	stmt
	Name string
	Init Expr // initializer (nil if none)
}

// BlockStmt represents a block statement: { Stmts... }
type BlockStmt struct {
	stmt
	Stmts []Stmt
}

// IfStmt represents an if statement: if (Cond) Then [else Else]
type IfStmt struct {
	stmt
	Cond Expr // condition expression
	Then Stmt // then branch
	Else Stmt // else branch (nil if none)
}

// WhileStmt represents a loop: while (Cond) Body
// for loops are desugared into WhileStmt by the parser.
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
}
