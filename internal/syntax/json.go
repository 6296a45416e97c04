package syntax

import (
	"io"

	"github.com/bytedance/sonic"
)

// FprintJSON writes a JSON representation of the AST to w.
// Object keys are sorted, so output is stable across runs.
func FprintJSON(w io.Writer, node Node) error {
	return encodeJSON(w, toJSON(node))
}

// FprintStmtsJSON writes a program as a JSON array of statements.
func FprintStmtsJSON(w io.Writer, stmts []Stmt) error {
	out := make([]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = toJSON(s)
	}
	return encodeJSON(w, out)
}

func encodeJSON(w io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *ExprStmt:
		return object("ExprStmt", n.pos, "expr", toJSON(n.X))

	case *PrintStmt:
		return object("PrintStmt", n.pos, "expr", toJSON(n.X))

	case *VarDecl:
		m := object("VarDecl", n.pos, "name", n.Name)
		if n.Init != nil {
			m["init"] = toJSON(n.Init)
		}
		return m

	case *BlockStmt:
		stmts := make([]interface{}, len(n.Stmts))
		for i, s := range n.Stmts {
			stmts[i] = toJSON(s)
		}
		return object("BlockStmt", n.pos, "stmts", stmts)

	case *IfStmt:
		m := object("IfStmt", n.pos, "cond", toJSON(n.Cond))
		m["then"] = toJSON(n.Then)
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}
		return m

	case *WhileStmt:
		m := object("WhileStmt", n.pos, "cond", toJSON(n.Cond))
		m["body"] = toJSON(n.Body)
		return m

	case *Literal:
		m := object("Literal", n.pos, "kind", n.Value.TypeName())
		switch {
		case n.Value.IsNumber():
			// JSON has no Inf or NaN, so numbers travel as their printed form.
			m["value"] = n.Value.String()
		case n.Value.IsString():
			m["value"] = n.Value.AsString()
		default:
			m["value"] = n.Value.String()
		}
		return m

	case *Grouping:
		return object("Grouping", n.pos, "expr", toJSON(n.X))

	case *Unary:
		m := object("Unary", n.pos, "op", n.Op.Text())
		m["x"] = toJSON(n.X)
		return m

	case *Binary:
		m := object("Binary", n.pos, "op", n.Op.Text())
		m["x"] = toJSON(n.X)
		m["y"] = toJSON(n.Y)
		return m

	case *Logical:
		m := object("Logical", n.pos, "op", n.Op.Text())
		m["x"] = toJSON(n.X)
		m["y"] = toJSON(n.Y)
		return m

	case *Variable:
		return object("Variable", n.pos, "name", n.Name)

	case *Assign:
		m := object("Assign", n.pos, "name", n.Name)
		m["value"] = toJSON(n.Value)
		return m

	default:
		return map[string]interface{}{"type": "unknown"}
	}
}

// object starts a JSON object for a node with one extra field.
func object(typ string, pos Pos, key string, val interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type": typ,
		"pos":  pos.String(),
		key:    val,
	}
}
