package syntax

import (
	"fmt"
	"strconv"

	"github.com/you-not-fish/lox/internal/diag"
	"github.com/you-not-fish/lox/internal/value"
)

// Scanner performs lexical analysis on lox source text.
// It never stops at an error: bad characters and unterminated strings are
// reported through the error handler and scanning continues.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token       // token type
	text   string      // token lexeme
	lit    value.Value // literal value (only valid when tok.IsLiteral())
	tokPos Pos         // token start position
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(src string, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{source: newSource(src, errh)}
}

// Tokenize scans src to completion and returns every token, ending with
// exactly one EOF item. Lexical errors are recorded in errs.
func Tokenize(src string, errs *diag.List) []Item {
	errh := func(line, col uint32, msg string) {
		if errs != nil {
			errs.Add(diag.Lex, int(line), msg)
		}
	}

	s := NewScanner(src, errh)
	var items []Item
	for {
		s.Next()
		items = append(items, s.Item())
		if s.tok == _EOF {
			return items
		}
	}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	// 1. Skip whitespace, newlines included
	s.skipWhitespace()

	// 2. Record token start position
	s.tokPos = s.pos()
	start := s.chOff
	s.lit = value.Nil

	// 3. Scan token based on current character
	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.text = ""
		return

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber(start)

	case s.ch == '"':
		if !s.scanString(start) {
			goto redo
		}

	default:
		if !s.scanOperator() {
			goto redo
		}
	}

	s.text = s.segment(start)
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Text returns the current token's lexeme.
func (s *Scanner) Text() string {
	return s.text
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() value.Value {
	return s.lit
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// Item returns the current token as an Item.
func (s *Scanner) Item() Item {
	return Item{Tok: s.tok, Text: s.text, Lit: s.lit, Pos: s.tokPos}
}

// skipWhitespace skips spaces, tabs, carriage returns and newlines.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	start := s.chOff
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.nextch()
	}

	s.tok = LookupKeyword(s.segment(start))
}

// scanNumber scans a run of digits with at most one decimal point.
// The point is taken even when no digit follows it, so "1..2" scans as
// "1." followed by "." and "2".
func (s *Scanner) scanNumber(start int) {
	s.scanDigits()
	if s.ch == '.' {
		s.nextch()
		s.scanDigits()
	}

	s.tok = _Number
	// The text is digits with an optional point, which always parses;
	// overly long inputs saturate to ±Inf.
	f, _ := strconv.ParseFloat(s.segment(start), 64)
	s.lit = value.Number(f)
}

// scanDigits scans decimal digits.
func (s *Scanner) scanDigits() {
	for isDigit(s.ch) {
		s.nextch()
	}
}

// scanString scans a string literal. Strings may span lines and have no
// escape sequences. It reports whether a token was produced; an
// unterminated string is reported at its opening line and dropped.
func (s *Scanner) scanString(start int) bool {
	line, col := s.line, s.col
	s.nextch() // skip opening "

	for s.ch != '"' {
		if s.ch < 0 {
			s.errorAt(line, col, "Unterminated string.")
			return false
		}
		s.nextch()
	}

	s.lit = value.String(s.buf[start+1 : s.chOff])
	s.nextch() // skip closing "
	s.tok = _String
	return true
}

// scanOperator scans an operator or delimiter.
// It reports false when no token was produced: a comment was skipped or
// the character was invalid (and reported).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '(':
		s.tok = _Lparen
	case ')':
		s.tok = _Rparen
	case '{':
		s.tok = _Lbrace
	case '}':
		s.tok = _Rbrace
	case '[':
		s.tok = _Lbrack
	case ']':
		s.tok = _Rbrack
	case ',':
		s.tok = _Comma
	case '.':
		s.tok = _Dot
	case ';':
		s.tok = _Semi
	case '-':
		s.tok = _Minus
	case '+':
		s.tok = _Plus
	case '*':
		s.tok = _Star
	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return false
		}
		s.tok = _Slash
	case '!':
		s.tok = s.pick('=', _BangEq, _Bang)
	case '=':
		s.tok = s.pick('=', _Eql, _Assign)
	case '<':
		s.tok = s.pick('=', _Leq, _Lss)
	case '>':
		s.tok = s.pick('=', _Geq, _Gtr)
	default:
		s.errorAt(s.tokPos.line, s.tokPos.col, fmt.Sprintf("Unexpected character: '%c'", ch))
		return false
	}

	return true
}

// pick consumes next and returns two if the current character is next,
// otherwise returns one without consuming anything.
func (s *Scanner) pick(next rune, two, one Token) Token {
	if s.ch == next {
		s.nextch()
		return two
	}
	return one
}

// skipLineComment skips a line comment (from // to end of line).
// The newline itself is left for skipWhitespace.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
