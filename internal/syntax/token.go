// Package syntax implements lexical and syntactic analysis for lox.
package syntax

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/lox/internal/value"
)

// Token represents the kind of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF Token = iota // end of input

	// Literals
	_Ident  // identifier: foo, _bar, x1
	_String // "text"
	_Number // 12, 3.5

	// Single-character delimiters
	_Lparen // (
	_Rparen // )
	_Lbrace // {
	_Rbrace // }
	_Lbrack // [
	_Rbrack // ]
	_Comma  // ,
	_Dot    // .
	_Semi   // ;

	// Operators
	_Minus  // -
	_Plus   // +
	_Slash  // /
	_Star   // *
	_Bang   // !
	_BangEq // !=
	_Assign // =
	_Eql    // ==
	_Gtr    // >
	_Geq    // >=
	_Lss    // <
	_Leq    // <=

	// Keywords
	_And
	_Class
	_Else
	_False
	_For
	_Fun
	_If
	_Nil
	_Or
	_Print
	_Return
	_Super
	_This
	_True
	_Var
	_While

	tokenCount
)

// tokenNames maps tokens to their display names.
var tokenNames = [...]string{
	_EOF: "EOF",

	_Ident:  "IDENTIFIER",
	_String: "STRING",
	_Number: "NUMBER",

	_Lparen: "LEFT_PAREN",
	_Rparen: "RIGHT_PAREN",
	_Lbrace: "LEFT_BRACE",
	_Rbrace: "RIGHT_BRACE",
	_Lbrack: "LEFT_BRACKET",
	_Rbrack: "RIGHT_BRACKET",
	_Comma:  "COMMA",
	_Dot:    "DOT",
	_Semi:   "SEMICOLON",

	_Minus:  "MINUS",
	_Plus:   "PLUS",
	_Slash:  "SLASH",
	_Star:   "STAR",
	_Bang:   "BANG",
	_BangEq: "BANG_EQUAL",
	_Assign: "EQUAL",
	_Eql:    "EQUAL_EQUAL",
	_Gtr:    "GREATER",
	_Geq:    "GREATER_EQUAL",
	_Lss:    "LESS",
	_Leq:    "LESS_EQUAL",

	_And:    "AND",
	_Class:  "CLASS",
	_Else:   "ELSE",
	_False:  "FALSE",
	_For:    "FOR",
	_Fun:    "FUN",
	_If:     "IF",
	_Nil:    "NIL",
	_Or:     "OR",
	_Print:  "PRINT",
	_Return: "RETURN",
	_Super:  "SUPER",
	_This:   "THIS",
	_True:   "TRUE",
	_Var:    "VAR",
	_While:  "WHILE",
}

// tokenText maps fixed-spelling tokens to their source text.
// Identifiers, strings and numbers have no fixed spelling.
var tokenText = [...]string{
	_Lparen: "(",
	_Rparen: ")",
	_Lbrace: "{",
	_Rbrace: "}",
	_Lbrack: "[",
	_Rbrack: "]",
	_Comma:  ",",
	_Dot:    ".",
	_Semi:   ";",

	_Minus:  "-",
	_Plus:   "+",
	_Slash:  "/",
	_Star:   "*",
	_Bang:   "!",
	_BangEq: "!=",
	_Assign: "=",
	_Eql:    "==",
	_Gtr:    ">",
	_Geq:    ">=",
	_Lss:    "<",
	_Leq:    "<=",

	_And:    "and",
	_Class:  "class",
	_Else:   "else",
	_False:  "false",
	_For:    "for",
	_Fun:    "fun",
	_If:     "if",
	_Nil:    "nil",
	_Or:     "or",
	_Print:  "print",
	_Return: "return",
	_Super:  "super",
	_This:   "this",
	_True:   "true",
	_Var:    "var",
	_While:  "while",
}

// String returns the display name of the token (e.g. "LEFT_PAREN").
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Text returns the fixed source spelling of t, or "" if t has none.
func (t Token) Text() string {
	if t < tokenCount {
		return tokenText[t]
	}
	return ""
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _And && t <= _While
}

// IsLiteral reports whether t carries a literal value (string or number).
func (t Token) IsLiteral() bool {
	return t == _String || t == _Number
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported operator tokens for interpreter access
const (
	EOF    Token = _EOF
	Ident  Token = _Ident
	Minus  Token = _Minus  // -
	Plus   Token = _Plus   // +
	Slash  Token = _Slash  // /
	Star   Token = _Star   // *
	Bang   Token = _Bang   // !
	BangEq Token = _BangEq // !=
	Eql    Token = _Eql    // ==
	Gtr    Token = _Gtr    // >
	Geq    Token = _Geq    // >=
	Lss    Token = _Lss    // <
	Leq    Token = _Leq    // <=
	And    Token = _And    // and
	Or     Token = _Or     // or
)

// keywords maps reserved words to their token.
var keywords = map[string]Token{
	"and":    _And,
	"class":  _Class,
	"else":   _Else,
	"false":  _False,
	"for":    _For,
	"fun":    _Fun,
	"if":     _If,
	"nil":    _Nil,
	"or":     _Or,
	"print":  _Print,
	"return": _Return,
	"super":  _Super,
	"this":   _This,
	"true":   _True,
	"var":    _Var,
	"while":  _While,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Ident.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Ident
}

// Item is one scanned token: its kind, the exact source text, the literal
// value for strings and numbers, and where it starts.
type Item struct {
	Tok  Token
	Text string      // lexeme; includes the quotes for strings
	Lit  value.Value // set only when Tok.IsLiteral()
	Pos  Pos
}

// Line returns the 1-based line the item starts on.
func (it Item) Line() int {
	return int(it.Pos.Line())
}

// LiteralText renders the literal column of a token dump: numbers always
// carry a fractional part ("42.0"), strings are raw, and everything else
// is "null".
func (it Item) LiteralText() string {
	switch it.Tok {
	case _Number:
		s := value.FormatNumber(it.Lit.AsNumber())
		if strings.ContainsAny(s, ".nN") {
			return s
		}
		return s + ".0"
	case _String:
		return it.Lit.AsString()
	}
	return "null"
}

// String renders the item as "KIND lexeme literal".
func (it Item) String() string {
	return it.Tok.String() + " " + it.Text + " " + it.LiteralText()
}

// describe renders the item for syntax error messages.
func (it Item) describe() string {
	if it.Tok == _EOF {
		return "EOF"
	}
	return fmt.Sprintf("'%s' (%s)", it.Text, it.Tok)
}
