package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *ExprStmt:
		Walk(n.X, v)

	case *PrintStmt:
		Walk(n.X, v)

	case *VarDecl:
		if n.Init != nil {
			Walk(n.Init, v)
		}

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *Grouping:
		Walk(n.X, v)

	case *Unary:
		Walk(n.X, v)

	case *Binary:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Logical:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Assign:
		Walk(n.Value, v)

	case *Literal, *Variable:
		// leaves
	}
}

// Inspect calls f for every node of each statement in stmts.
func Inspect(stmts []Stmt, f Visitor) {
	for _, s := range stmts {
		Walk(s, f)
	}
}

// Equal reports whether a and b are structurally identical trees.
// Positions are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Value.Equal(y.Value)

	case *Grouping:
		y, ok := b.(*Grouping)
		return ok && Equal(x.X, y.X)

	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equal(x.X, y.X)

	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.X, y.X) && Equal(x.Y, y.Y)

	case *Logical:
		y, ok := b.(*Logical)
		return ok && x.Op == y.Op && Equal(x.X, y.X) && Equal(x.Y, y.Y)

	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name

	case *Assign:
		y, ok := b.(*Assign)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value)

	case *ExprStmt:
		y, ok := b.(*ExprStmt)
		return ok && Equal(x.X, y.X)

	case *PrintStmt:
		y, ok := b.(*PrintStmt)
		return ok && Equal(x.X, y.X)

	case *VarDecl:
		y, ok := b.(*VarDecl)
		return ok && x.Name == y.Name && Equal(x.Init, y.Init)

	case *BlockStmt:
		y, ok := b.(*BlockStmt)
		return ok && EqualStmts(x.Stmts, y.Stmts)

	case *IfStmt:
		y, ok := b.(*IfStmt)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)

	case *WhileStmt:
		y, ok := b.(*WhileStmt)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Body, y.Body)
	}
	return false
}

// EqualStmts reports whether two statement lists are pairwise Equal.
func EqualStmts(a, b []Stmt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
