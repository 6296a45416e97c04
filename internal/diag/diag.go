// Package diag defines the error triple shared by the lexer, parser and
// interpreter, and the accumulator callers thread through them.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an Error by the stage that raised it.
type Kind uint8

const (
	Lex Kind = iota + 1
	Syntax
	Runtime
)

var kindNames = [...]string{
	Lex:     "lex error",
	Syntax:  "syntax error",
	Runtime: "runtime error",
}

func (k Kind) String() string {
	if k >= Lex && k <= Runtime {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Error is a reportable (kind, message, line) triple.
type Error struct {
	Kind Kind
	Line int
	Msg  string
}

// Errorf builds an *Error with a formatted message.
func Errorf(kind Kind, line int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] %s: %s", e.Line, e.Kind, e.Msg)
}

// Report formats e the way the command-line front end prints it:
// "[line N] Error: msg".
func (e *Error) Report() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Msg)
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// List accumulates lexical and syntax errors in the order reported.
// The zero value is ready to use.
type List struct {
	errs []*Error
}

// Add records an error.
func (l *List) Add(kind Kind, line int, msg string) {
	l.errs = append(l.errs, &Error{Kind: kind, Line: line, Msg: msg})
}

// Append records an existing error.
func (l *List) Append(e *Error) {
	l.errs = append(l.errs, e)
}

// Len returns the number of recorded errors.
func (l *List) Len() int {
	return len(l.errs)
}

// Errors returns the recorded errors.
func (l *List) Errors() []*Error {
	return l.errs
}

// HasKind reports whether an error of the given kind was recorded.
func (l *List) HasKind(kind Kind) bool {
	for _, e := range l.errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Err returns nil if the list is empty, the single error if there is one,
// and the list itself otherwise.
func (l *List) Err() error {
	switch len(l.errs) {
	case 0:
		return nil
	case 1:
		return l.errs[0]
	}
	return l
}

// Error implements the error interface, one error per line.
func (l *List) Error() string {
	var b strings.Builder
	for i, e := range l.errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes the recorded errors to errors.Is and errors.As.
func (l *List) Unwrap() []error {
	errs := make([]error, len(l.errs))
	for i, e := range l.errs {
		errs[i] = e
	}
	return errs
}
