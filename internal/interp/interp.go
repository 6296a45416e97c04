// Package interp implements the tree-walking evaluator for lox programs.
package interp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/you-not-fish/lox/internal/diag"
	"github.com/you-not-fish/lox/internal/syntax"
	"github.com/you-not-fish/lox/internal/value"
)

// Interpreter evaluates syntax trees against an Environment.
// It is not safe for concurrent use.
type Interpreter struct {
	out Sink
	log *zap.Logger

	maxSteps int // loop iterations allowed per Execute; 0 means unlimited
	steps    int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger enables debug tracing of statement execution and scope changes.
func WithLogger(log *zap.Logger) Option {
	return func(in *Interpreter) {
		if log != nil {
			in.log = log
		}
	}
}

// WithMaxSteps bounds the number of loop iterations a single Execute call
// may run. Exceeding the bound is a runtime error. Zero means unlimited.
func WithMaxSteps(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.maxSteps = n
		}
	}
}

// New creates an Interpreter whose print statements write to out.
func New(out Sink, opts ...Option) *Interpreter {
	in := &Interpreter{out: out, log: zap.NewNop()}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Execute runs stmts in order against env. The first runtime error stops
// execution and is returned; output already written stays written.
func (in *Interpreter) Execute(stmts []syntax.Stmt, env *Environment) error {
	in.steps = 0
	for _, s := range stmts {
		if err := in.Exec(s, env); err != nil {
			return err
		}
	}
	return nil
}

// Exec runs a single statement against env.
func (in *Interpreter) Exec(s syntax.Stmt, env *Environment) error {
	if ce := in.log.Check(zap.DebugLevel, "exec"); ce != nil {
		ce.Write(
			zap.String("stmt", fmt.Sprintf("%T", s)),
			zap.Stringer("pos", s.Pos()),
			zap.Int("depth", env.Depth()),
		)
	}

	switch s := s.(type) {
	case *syntax.ExprStmt:
		_, err := in.Evaluate(s.X, env)
		return err

	case *syntax.PrintStmt:
		v, err := in.Evaluate(s.X, env)
		if err != nil {
			return err
		}
		if err := in.out.WriteLine(v.String()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil

	case *syntax.VarDecl:
		v := value.Nil
		if s.Init != nil {
			var err error
			if v, err = in.Evaluate(s.Init, env); err != nil {
				return err
			}
		}
		env.Define(s.Name, v)
		return nil

	case *syntax.BlockStmt:
		return in.execBlock(s.Stmts, NewEnvironment(env))

	case *syntax.IfStmt:
		cond, err := in.Evaluate(s.Cond, env)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return in.Exec(s.Then, env)
		}
		if s.Else != nil {
			return in.Exec(s.Else, env)
		}
		return nil

	case *syntax.WhileStmt:
		for {
			cond, err := in.Evaluate(s.Cond, env)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := in.step(s.Line()); err != nil {
				return err
			}
			if err := in.Exec(s.Body, env); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("interp: unexpected statement %T", s)
	}
}

// execBlock runs stmts in the block scope env. The scope is dropped on
// return whether or not an error occurred.
func (in *Interpreter) execBlock(stmts []syntax.Stmt, env *Environment) error {
	in.log.Debug("enter scope", zap.Int("depth", env.Depth()))
	defer in.log.Debug("exit scope", zap.Int("depth", env.Depth()))

	for _, s := range stmts {
		if err := in.Exec(s, env); err != nil {
			return err
		}
	}
	return nil
}

// step counts one loop iteration against the step limit.
func (in *Interpreter) step(line int) error {
	if in.maxSteps == 0 {
		return nil
	}
	in.steps++
	if in.steps > in.maxSteps {
		return diag.Errorf(diag.Runtime, line, "step limit exceeded")
	}
	return nil
}

// ----------------------------------------------------------------------------
// Expressions

// Evaluate computes the value of x in env.
func (in *Interpreter) Evaluate(x syntax.Expr, env *Environment) (value.Value, error) {
	switch x := x.(type) {
	case *syntax.Literal:
		return x.Value, nil

	case *syntax.Grouping:
		return in.Evaluate(x.X, env)

	case *syntax.Variable:
		v, ok := env.Get(x.Name)
		if !ok {
			return value.Nil, undefined(x.Line(), x.Name)
		}
		return v, nil

	case *syntax.Assign:
		v, err := in.Evaluate(x.Value, env)
		if err != nil {
			return value.Nil, err
		}
		if !env.Assign(x.Name, v) {
			return value.Nil, undefined(x.Line(), x.Name)
		}
		return v, nil

	case *syntax.Unary:
		return in.unary(x, env)

	case *syntax.Logical:
		left, err := in.Evaluate(x.X, env)
		if err != nil {
			return value.Nil, err
		}
		if (x.Op == syntax.Or && left.Truthy()) || (x.Op == syntax.And && !left.Truthy()) {
			return left, nil
		}
		return in.Evaluate(x.Y, env)

	case *syntax.Binary:
		left, err := in.Evaluate(x.X, env)
		if err != nil {
			return value.Nil, err
		}
		right, err := in.Evaluate(x.Y, env)
		if err != nil {
			return value.Nil, err
		}
		return binary(x, left, right)

	default:
		return value.Nil, fmt.Errorf("interp: unexpected expression %T", x)
	}
}

func undefined(line int, name string) error {
	return diag.Errorf(diag.Runtime, line, "undefined variable '%s'", name)
}

func (in *Interpreter) unary(x *syntax.Unary, env *Environment) (value.Value, error) {
	v, err := in.Evaluate(x.X, env)
	if err != nil {
		return value.Nil, err
	}

	switch x.Op {
	case syntax.Bang:
		return value.Bool(!v.Truthy()), nil
	case syntax.Minus:
		if !v.IsNumber() {
			return value.Nil, diag.Errorf(diag.Runtime, x.Line(),
				"operand must be a number for unary '-', got %s", v.TypeName())
		}
		return value.Number(-v.AsNumber()), nil
	}
	return value.Nil, fmt.Errorf("interp: unexpected unary operator %s", x.Op)
}

// binary applies a binary operator to evaluated operands.
func binary(x *syntax.Binary, l, r value.Value) (value.Value, error) {
	// Equality is defined for every pairing.
	switch x.Op {
	case syntax.Eql:
		return value.Bool(l.Equal(r)), nil
	case syntax.BangEq:
		return value.Bool(!l.Equal(r)), nil
	}

	switch {
	case l.IsNumber() && r.IsNumber():
		a, b := l.AsNumber(), r.AsNumber()
		switch x.Op {
		case syntax.Plus:
			return value.Number(a + b), nil
		case syntax.Minus:
			return value.Number(a - b), nil
		case syntax.Star:
			return value.Number(a * b), nil
		case syntax.Slash:
			return value.Number(a / b), nil
		case syntax.Lss:
			return value.Bool(a < b), nil
		case syntax.Leq:
			return value.Bool(a <= b), nil
		case syntax.Gtr:
			return value.Bool(a > b), nil
		case syntax.Geq:
			return value.Bool(a >= b), nil
		}

	case l.IsString() && r.IsString():
		if x.Op == syntax.Plus {
			return value.String(l.AsString() + r.AsString()), nil
		}
	}

	return value.Nil, diag.Errorf(diag.Runtime, x.Line(),
		"invalid operation '%s' on %s and %s", x.Op.Text(), l.TypeName(), r.TypeName())
}
