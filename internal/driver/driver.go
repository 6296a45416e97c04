// Package driver runs lox source through the pipeline stages on behalf of
// the command-line front ends.
package driver

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/you-not-fish/lox/internal/config"
	"github.com/you-not-fish/lox/internal/diag"
	"github.com/you-not-fish/lox/internal/interp"
	"github.com/you-not-fish/lox/internal/syntax"
	"github.com/you-not-fish/lox/internal/value"
)

// Result holds what a pipeline call produced. Fields for stages that did
// not run are left zero.
type Result struct {
	Items  []syntax.Item // scanned tokens, always ending with EOF
	Expr   syntax.Expr   // ParseExpr and Evaluate
	Stmts  []syntax.Stmt // Program and Run
	Value  value.Value   // Evaluate
	Errors []*diag.Error // lexical and syntax errors, in order
}

// Session is a long-lived interpreter context. Bindings made by one Run or
// Evaluate call are visible to the next.
type Session struct {
	id  string
	env *interp.Environment
	in  *interp.Interpreter
	log *zap.Logger
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	log      *zap.Logger
	maxSteps int
}

// WithLogger sets the session logger. Every entry carries the session ID.
func WithLogger(log *zap.Logger) Option {
	return func(o *sessionOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMaxSteps bounds loop iterations per Run or Evaluate call.
func WithMaxSteps(n int) Option {
	return func(o *sessionOptions) {
		o.maxSteps = n
	}
}

// NewSession creates a session whose print output goes to out.
func NewSession(out io.Writer, opts ...Option) *Session {
	o := sessionOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	log := o.log.With(zap.String("session", id))
	s := &Session{
		id:  id,
		env: interp.NewEnvironment(nil),
		log: log,
	}
	s.in = interp.New(interp.WriterSink(out),
		interp.WithLogger(log.Named("interp")),
		interp.WithMaxSteps(o.maxSteps),
	)
	log.Debug("session started")
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Env returns the session's global scope.
func (s *Session) Env() *interp.Environment {
	return s.env
}

// Tokenize scans src. Scanning never stops early, so the token list is
// complete even when the returned error reports lexical errors.
func (s *Session) Tokenize(src string) (*Result, error) {
	var errs diag.List
	res := &Result{Items: syntax.Tokenize(src, &errs)}
	return s.finish("tokenize", res, &errs)
}

// ParseExpr scans and parses src as a single expression.
func (s *Session) ParseExpr(src string) (*Result, error) {
	var errs diag.List
	res := &Result{Items: syntax.Tokenize(src, &errs)}
	if x, err := syntax.ParseExpr(res.Items, &errs); err == nil {
		res.Expr = x
	}
	return s.finish("parse", res, &errs)
}

// Program scans and parses src as a sequence of statements.
func (s *Session) Program(src string) (*Result, error) {
	var errs diag.List
	res := &Result{Items: syntax.Tokenize(src, &errs)}
	if stmts, err := syntax.Parse(res.Items, &errs); err == nil {
		res.Stmts = stmts
	}
	return s.finish("program", res, &errs)
}

// Evaluate parses src as an expression and evaluates it in the session
// scope. Nothing is evaluated if scanning or parsing failed.
func (s *Session) Evaluate(src string) (*Result, error) {
	res, err := s.ParseExpr(src)
	if err != nil {
		return res, err
	}

	v, err := s.in.Evaluate(res.Expr, s.env)
	if err != nil {
		s.log.Debug("evaluate failed", zap.Error(err))
		return res, err
	}
	res.Value = v
	return res, nil
}

// Run parses src as a program and executes it in the session scope.
// Nothing is executed if scanning or parsing failed.
func (s *Session) Run(src string) (*Result, error) {
	res, err := s.Program(src)
	if err != nil {
		return res, err
	}

	if err := s.in.Execute(res.Stmts, s.env); err != nil {
		s.log.Debug("run failed", zap.Error(err))
		return res, err
	}
	return res, nil
}

// finish records the collected errors in res and logs the call.
func (s *Session) finish(stage string, res *Result, errs *diag.List) (*Result, error) {
	res.Errors = errs.Errors()
	s.log.Debug(stage,
		zap.Int("tokens", len(res.Items)),
		zap.Int("errors", errs.Len()),
	)
	return res, errs.Err()
}

// ExitCode maps the error returned by a pipeline call to a process exit
// status.
func ExitCode(err error, codes config.ExitConfig) int {
	if err == nil {
		return 0
	}
	switch diag.KindOf(err) {
	case diag.Lex, diag.Syntax:
		return codes.DataErr
	case diag.Runtime:
		return codes.Software
	}
	return 1
}

// Reports returns one "[line N] Error: msg" line per diagnostic in err.
func Reports(err error) []string {
	var list *diag.List
	if errors.As(err, &list) {
		out := make([]string, 0, list.Len())
		for _, e := range list.Errors() {
			out = append(out, e.Report())
		}
		return out
	}
	var de *diag.Error
	if errors.As(err, &de) {
		return []string{de.Report()}
	}
	if err != nil {
		return []string{err.Error()}
	}
	return nil
}
