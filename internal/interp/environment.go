package interp

import (
	"fmt"
	"slices"
	"strings"

	"github.com/you-not-fish/lox/internal/value"
)

// Environment is one scope in the lexical scope chain.
// Scopes form a chain ending at a root scope with no parent.
//
// Lookup and assignment walk from the innermost scope outward; declaration
// always targets the receiver itself. A child never outlives its parent.
type Environment struct {
	parent *Environment
	vars   map[string]value.Value
	depth  int // 0 for the root scope
}

// NewEnvironment creates a scope enclosed by parent, which may be nil.
func NewEnvironment(parent *Environment) *Environment {
	e := &Environment{
		parent: parent,
		vars:   make(map[string]value.Value),
	}
	if parent != nil {
		e.depth = parent.depth + 1
	}
	return e
}

// Parent returns the enclosing scope, or nil for the root scope.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Depth returns the number of scopes enclosing e.
func (e *Environment) Depth() int {
	return e.depth
}

// Define binds name to v in this scope. An existing binding of the same
// name in this scope is overwritten.
func (e *Environment) Define(name string, v value.Value) {
	e.vars[name] = v
}

// Lookup returns the value bound to name in this scope only.
func (e *Environment) Lookup(name string) (value.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Get returns the value bound to name, searching from this scope up
// through all enclosing scopes.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return value.Nil, false
}

// Assign overwrites the nearest existing binding of name. It reports false,
// and changes nothing, when no scope in the chain binds name.
func (e *Environment) Assign(name string, v value.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return true
		}
	}
	return false
}

// Names returns the names bound in this scope, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of bindings in this scope.
func (e *Environment) Len() int {
	return len(e.vars)
}

// String returns a string representation of the scope chain for debugging,
// innermost scope first.
func (e *Environment) String() string {
	var buf strings.Builder
	for env := e; env != nil; env = env.parent {
		env.writeTo(&buf)
	}
	return buf.String()
}

func (e *Environment) writeTo(buf *strings.Builder) {
	prefix := strings.Repeat("  ", e.depth)
	fmt.Fprintf(buf, "%sscope %d {\n", prefix, e.depth)
	for _, name := range e.Names() {
		fmt.Fprintf(buf, "%s  %s: %#v\n", prefix, name, e.vars[name])
	}
	fmt.Fprintf(buf, "%s}\n", prefix)
}
