package syntax

import "unicode/utf8"

// source is a character reader with position tracking.
// It reads UTF-8 encoded source text and provides character-by-character access.
type source struct {
	// Input
	buf string // entire source text

	// Position tracking
	line uint32 // current line number (1-based)
	col  uint32 // current column number (1-based, in characters)

	// Current state
	ch    rune // current character, -1 for EOF
	chOff int  // byte offset of ch in buf
	offs  int  // byte offset just past ch

	// Error handling
	errh func(line, col uint32, msg string)
}

// newSource creates a new source over src.
// The errh function is called for each error; if nil, errors are silently ignored.
func newSource(src string, errh func(line, col uint32, msg string)) source {
	s := source{
		buf:  src,
		line: 1,
		col:  0,  // Will be incremented to 1 by first nextch()
		ch:   -1, // Sentinel: -1 means "before first char", prevents position update
		errh: errh,
	}
	s.nextch()
	return s
}

// nextch reads the next character from the source and updates position.
// Sets s.ch to -1 at EOF.
//
// Position tracking: (line, col) always refers to the position of s.ch after nextch() returns.
// Every newline advances the line, wherever it occurs (code, strings, comments).
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.chOff = s.offs
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	// Invalid UTF-8 decodes as utf8.RuneError, which the scanner reports
	// as an unexpected character.
	r, width := utf8.DecodeRuneInString(s.buf[s.offs:])
	s.ch = r
	s.offs += width
}

// pos returns the current position (position of current character).
func (s *source) pos() Pos {
	return NewPos(s.line, s.col)
}

// segment returns the source text from byte offset start up to s.ch.
func (s *source) segment(start int) string {
	return s.buf[start:s.chOff]
}

// errorAt reports a lexical error at the given position.
func (s *source) errorAt(line, col uint32, msg string) {
	if s.errh != nil {
		s.errh(line, col, msg)
	}
}

// Character classification helpers

// isLetter reports whether r can start an identifier (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r is skipped between tokens.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
