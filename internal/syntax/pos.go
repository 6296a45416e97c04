package syntax

import "fmt"

// Pos represents a position in the source text.
// The zero value is an invalid position.
type Pos struct {
	line uint32 // 1-based line number
	col  uint32 // 1-based column number, counted in characters
}

// NewPos creates a new Pos with the given line and column.
// Line and column numbers are 1-based.
func NewPos(line, col uint32) Pos {
	return Pos{line: line, col: col}
}

// String returns a string representation of the position as "line:col".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid.
// A position is valid if line > 0.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 {
	return p.line
}

// Col returns the 1-based column number.
func (p Pos) Col() uint32 {
	return p.col
}
