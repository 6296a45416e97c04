package interp

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/you-not-fish/lox/internal/diag"
	"github.com/you-not-fish/lox/internal/syntax"
	"github.com/you-not-fish/lox/internal/value"
)

// ----------------------------------------------------------------------------
// Test helpers

func parse(t *testing.T, src string) []syntax.Stmt {
	t.Helper()
	var errs diag.List
	stmts, err := syntax.Parse(syntax.Tokenize(src, &errs), &errs)
	require.NoError(t, err)
	require.Zero(t, errs.Len(), "unexpected errors: %v", errs.Errors())
	return stmts
}

// run executes src in a fresh root scope and returns the printed lines.
func run(t *testing.T, src string, opts ...Option) ([]string, error) {
	t.Helper()
	var out Lines
	err := New(&out, opts...).Execute(parse(t, src), NewEnvironment(nil))
	return out.Lines(), err
}

func eval(t *testing.T, src string) (value.Value, error) {
	t.Helper()
	x, err := syntax.ParseExpr(syntax.Tokenize(src, nil), nil)
	require.NoError(t, err)
	return New(&Lines{}).Evaluate(x, NewEnvironment(nil))
}

func runtimeError(t *testing.T, err error) *diag.Error {
	t.Helper()
	var de *diag.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, diag.Runtime, de.Kind)
	return de
}

// ----------------------------------------------------------------------------
// Expressions

func TestEvaluate(t *testing.T) {
	tests := []struct {
		src  string
		want value.Value
	}{
		// Arithmetic
		{"1 + 2", value.Number(3)},
		{"10 - 4 - 3", value.Number(3)},
		{"2 * 3 + 4", value.Number(10)},
		{"7 / 2", value.Number(3.5)},
		{"-(1 + 2)", value.Number(-3)},
		{"(5 + 2) * -6 == -42", value.True},

		// Comparison
		{"1 < 2", value.True},
		{"2 <= 2", value.True},
		{"1 > 2", value.False},
		{"3 >= 4", value.False},

		// Equality never crosses kinds
		{"1 == 1", value.True},
		{"1 != 2", value.True},
		{`1 == "1"`, value.False},
		{"nil == false", value.False},
		{"nil == nil", value.True},
		{"true == true", value.True},
		{`"a" == "a"`, value.True},
		{`"a" != "b"`, value.True},
		{"0 == false", value.False},

		// Strings
		{`"foo" + "bar"`, value.String("foobar")},
		{`"" + ""`, value.String("")},

		// Truthiness
		{"!nil", value.True},
		{"!false", value.True},
		{"!0", value.False},
		{`!""`, value.False},
		{"!!true", value.True},

		// Logical operators return an operand, not a boolean
		{`"hi" or 2`, value.String("hi")},
		{`nil or "yes"`, value.String("yes")},
		{"false or nil", value.Nil},
		{"1 and 2", value.Number(2)},
		{"nil and 2", value.Nil},
		{"false and 1", value.False},
		{`0 and "zero is truthy"`, value.String("zero is truthy")},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := eval(t, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	v, err := eval(t, "1 / 0")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v.AsNumber(), 1))

	v, err = eval(t, "-1 / 0")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v.AsNumber(), -1))

	v, err = eval(t, "0 / 0")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v.AsNumber()))
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{`-"x"`, "operand must be a number for unary '-', got string"},
		{"-nil", "operand must be a number for unary '-', got nil"},
		{"-true", "operand must be a number for unary '-', got boolean"},
		{`"a" - "b"`, "invalid operation '-' on string and string"},
		{`"a" < "b"`, "invalid operation '<' on string and string"},
		{`"a" < 1`, "invalid operation '<' on string and number"},
		{`1 + "a"`, "invalid operation '+' on number and string"},
		{"true + false", "invalid operation '+' on boolean and boolean"},
		{"nil * 2", "invalid operation '*' on nil and number"},
		{"x", "undefined variable 'x'"},
		{"x = 1", "undefined variable 'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := eval(t, tt.src)
			e := runtimeError(t, err)
			assert.Equal(t, tt.msg, e.Msg)
			assert.Equal(t, 1, e.Line)
		})
	}
}

// ----------------------------------------------------------------------------
// Statements

func TestExecute(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"print literals", `print 1; print 2.5; print "s"; print true; print false; print nil;`,
			[]string{"1", "2.5", "s", "true", "false", "nil"}},
		{"print arithmetic", "print (5 + 2) * -6;", []string{"-42"}},
		{"print infinity", "print 1 / 0; print -1 / 0;", []string{"inf", "-inf"}},
		{"var default nil", "var a; print a;", []string{"nil"}},
		{"redeclare overwrites", "var a = 1; var a = 2; print a;", []string{"2"}},
		{"redeclare uses old value", "var a = 1; var a = a + 1; print a;", []string{"2"}},
		{"inner declaration does not leak", "{ var a = 1; { var a = 2; } print a; }", []string{"1"}},
		{"assignment reaches outer", "var a = 1; { a = 2; } print a;", []string{"2"}},
		{"assignment value", "var a; var b; a = b = 3; print a; print b;", []string{"3", "3"}},
		{"shadow then assign", "var a = 1; { var a = 2; a = 3; print a; } print a;", []string{"3", "1"}},
		{"if then", "if (1) print \"yes\"; else print \"no\";", []string{"yes"}},
		{"if else", "if (nil) print \"yes\"; else print \"no\";", []string{"no"}},
		{"if no else", "if (false) print 1; print 2;", []string{"2"}},
		{"while", "var i = 0; while (i < 3) { print i; i = i + 1; }", []string{"0", "1", "2"}},
		{"while never runs", "while (false) print 1;", nil},
		{"for", "for (var i = 0; i < 3; i = i + 1) print i;", []string{"0", "1", "2"}},
		{"for scope", "var i = 10; for (var i = 0; i < 1; i = i + 1) {} print i;", []string{"10"}},
		{"for outer var", "var i = 0; for (; i < 2;) i = i + 1; print i;", []string{"2"}},
		{"string concat", `var s = "a"; s = s + "b"; print s;`, []string{"ab"}},
		{"fibonacci", `
var a = 0;
var temp;
for (var b = 1; a < 50; b = temp + b) {
  print a;
  temp = a;
  a = b;
}`, []string{"0", "1", "1", "2", "3", "5", "8", "13", "21", "34"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	// Assigning an undeclared variable is a runtime error, so reaching the
	// right operand would fail the run.
	got, err := run(t, `
print "hi" or (undeclared = 1);
print false and (undeclared = 1);
print nil and undeclared;
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi", "false", "nil"}, got)

	// The right operand does run when the left does not decide.
	got, err = run(t, "var n = 0; print false or (n = n + 1); print n;")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1"}, got)
}

func TestRuntimeErrorStopsExecution(t *testing.T) {
	got, err := run(t, "print 1;\nprint x;\nprint 2;")

	e := runtimeError(t, err)
	assert.Equal(t, 2, e.Line)
	assert.Equal(t, "undefined variable 'x'", e.Msg)
	assert.Equal(t, []string{"1"}, got, "output before the error is kept")
}

func TestRuntimeErrorInBlockDropsScope(t *testing.T) {
	env := NewEnvironment(nil)
	in := New(&Lines{})

	err := in.Execute(parse(t, "var a = 1; { var a = 2; a = -\"x\"; }"), env)
	runtimeError(t, err)

	v, ok := env.Get("a")
	require.True(t, ok)
	assert.Equal(t, value.Number(1), v)
	assert.Equal(t, []string{"a"}, env.Names())
}

func TestEnvironmentPersistsAcrossExecute(t *testing.T) {
	env := NewEnvironment(nil)
	var out Lines
	in := New(&out)

	require.NoError(t, in.Execute(parse(t, "var a = 1;"), env))
	require.NoError(t, in.Execute(parse(t, "a = a + 1;"), env))
	require.NoError(t, in.Execute(parse(t, "print a;"), env))
	assert.Equal(t, []string{"2"}, out.Lines())
}

func TestMaxSteps(t *testing.T) {
	_, err := run(t, "while (true) {}", WithMaxSteps(100))
	e := runtimeError(t, err)
	assert.Equal(t, "step limit exceeded", e.Msg)

	got, err := run(t, "for (var i = 0; i < 3; i = i + 1) print i;", WithMaxSteps(3))
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

type failingSink struct{}

func (failingSink) WriteLine(string) error { return errors.New("disk full") }

func TestSinkFailure(t *testing.T) {
	err := New(failingSink{}).Execute(parse(t, "print 1;"), NewEnvironment(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, diag.Kind(0), diag.KindOf(err))
}

func TestWriterSink(t *testing.T) {
	var buf strings.Builder
	err := New(WriterSink(&buf)).Execute(parse(t, `print "a"; print 1 + 1;`), NewEnvironment(nil))
	require.NoError(t, err)
	assert.Equal(t, "a\n2\n", buf.String())
}

func TestLinesReset(t *testing.T) {
	var l Lines
	require.NoError(t, l.WriteLine("x"))
	l.Reset()
	assert.Empty(t, l.Lines())
}

func TestTracing(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := run(t, "{ print 1; }", WithLogger(zap.New(core)))
	require.NoError(t, err)

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, []string{"exec", "enter scope", "exec", "exit scope"}, msgs)

	entry := logs.FilterMessage("enter scope").All()[0]
	assert.Equal(t, int64(1), entry.ContextMap()["depth"])
}
