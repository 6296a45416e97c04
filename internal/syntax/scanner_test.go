package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/lox/internal/diag"
	"github.com/you-not-fish/lox/internal/value"
)

func kinds(items []Item) []Token {
	toks := make([]Token, len(items))
	for i, it := range items {
		toks[i] = it.Tok
	}
	return toks
}

func texts(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		texts  []string
	}{
		// Identifiers
		{"ident", "foo", []Token{_Ident, _EOF}, []string{"foo", ""}},
		{"ident_underscore", "_bar", []Token{_Ident, _EOF}, []string{"_bar", ""}},
		{"ident_mixed", "var1 var_name", []Token{_Ident, _Ident, _EOF}, []string{"var1", "var_name", ""}},
		{"ident_caps", "FooBar", []Token{_Ident, _EOF}, []string{"FooBar", ""}},

		// Numbers
		{"int", "123", []Token{_Number, _EOF}, []string{"123", ""}},
		{"float", "3.14", []Token{_Number, _EOF}, []string{"3.14", ""}},
		{"float_no_frac", "3.", []Token{_Number, _EOF}, []string{"3.", ""}},
		{"double_dot", "1..2", []Token{_Number, _Dot, _Number, _EOF}, []string{"1.", ".", "2", ""}},
		{"number_then_ident", "42abc", []Token{_Number, _Ident, _EOF}, []string{"42", "abc", ""}},
		{"leading_dot", ".5", []Token{_Dot, _Number, _EOF}, []string{".", "5", ""}},

		// Strings keep their quotes in the lexeme
		{"string", `"hello"`, []Token{_String, _EOF}, []string{`"hello"`, ""}},
		{"string_empty", `""`, []Token{_String, _EOF}, []string{`""`, ""}},

		// Single-char tokens
		{"single", "( ) { } [ ] , . - + ; / *", []Token{
			_Lparen, _Rparen, _Lbrace, _Rbrace, _Lbrack, _Rbrack,
			_Comma, _Dot, _Minus, _Plus, _Semi, _Slash, _Star, _EOF,
		}, nil},

		// One or two character operators
		{"operators", "== != <= >= = ! < >", []Token{
			_Eql, _BangEq, _Leq, _Geq, _Assign, _Bang, _Lss, _Gtr, _EOF,
		}, []string{"==", "!=", "<=", ">=", "=", "!", "<", ">", ""}},
		{"operators_adjacent", "!===", []Token{_BangEq, _Eql, _EOF}, nil},

		// Keywords
		{"keywords", "and class else false for fun if nil or print return super this true var while", []Token{
			_And, _Class, _Else, _False, _For, _Fun, _If, _Nil, _Or,
			_Print, _Return, _Super, _This, _True, _Var, _While, _EOF,
		}, nil},
		{"keyword_prefix", "variable orchid", []Token{_Ident, _Ident, _EOF}, nil},

		// Comments
		{"comment_skip", "a // comment\nb", []Token{_Ident, _Ident, _EOF}, []string{"a", "b", ""}},
		{"comment_eof", "a // comment", []Token{_Ident, _EOF}, nil},
		{"comment_only", "// nothing here", []Token{_EOF}, nil},
		{"slash_not_comment", "a / b", []Token{_Ident, _Slash, _Ident, _EOF}, nil},

		// Statements
		{"statement", "var x = 42; if (x > 0) { print x; }", []Token{
			_Var, _Ident, _Assign, _Number, _Semi,
			_If, _Lparen, _Ident, _Gtr, _Number, _Rparen,
			_Lbrace, _Print, _Ident, _Semi, _Rbrace, _EOF,
		}, nil},

		// Whitespace handling
		{"whitespace_mixed", " \t\r\n a \t\n ", []Token{_Ident, _EOF}, nil},
		{"empty", "", []Token{_EOF}, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs diag.List
			items := Tokenize(tt.src, &errs)

			assert.Zero(t, errs.Len(), "unexpected errors: %v", errs.Errors())
			assert.Equal(t, tt.tokens, kinds(items))
			if tt.texts != nil {
				assert.Equal(t, tt.texts, texts(items))
			}
		})
	}
}

func TestScanLiterals(t *testing.T) {
	items := Tokenize(`42 3.14 0.5 "hi there"`, nil)
	require.Len(t, items, 5)

	assert.Equal(t, value.Number(42), items[0].Lit)
	assert.Equal(t, value.Number(3.14), items[1].Lit)
	assert.Equal(t, value.Number(0.5), items[2].Lit)
	assert.Equal(t, value.String("hi there"), items[3].Lit)
	assert.Equal(t, value.Nil, items[4].Lit)
}

func TestItemDump(t *testing.T) {
	items := Tokenize(`var x = 42; "s" 3.5 1.`, nil)

	want := []string{
		"VAR var null",
		"IDENTIFIER x null",
		"EQUAL = null",
		"NUMBER 42 42.0",
		"SEMICOLON ; null",
		`STRING "s" s`,
		"NUMBER 3.5 3.5",
		"NUMBER 1. 1.0",
		"EOF  null",
	}
	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.String()
	}
	assert.Equal(t, want, got)
}

func TestScanLines(t *testing.T) {
	src := "a\n// comment\nb \"multi\nline\" c\n\nd"
	items := Tokenize(src, nil)

	require.Equal(t, []Token{_Ident, _Ident, _String, _Ident, _Ident, _EOF}, kinds(items))
	lines := make([]int, len(items))
	for i, it := range items {
		lines[i] = it.Line()
	}
	assert.Equal(t, []int{1, 3, 3, 4, 6, 6}, lines)
	assert.Equal(t, value.String("multi\nline"), items[2].Lit)
}

func TestScanPositions(t *testing.T) {
	items := Tokenize("ab  +\n  cd", nil)

	assert.Equal(t, NewPos(1, 1), items[0].Pos)
	assert.Equal(t, NewPos(1, 5), items[1].Pos)
	assert.Equal(t, NewPos(2, 3), items[2].Pos)
}

func TestScanErrors(t *testing.T) {
	t.Run("invalid characters", func(t *testing.T) {
		var errs diag.List
		items := Tokenize("@ # $ % ^ &", &errs)

		assert.Equal(t, []Token{_EOF}, kinds(items))
		require.Equal(t, 6, errs.Len())
		var msgs []string
		for _, e := range errs.Errors() {
			assert.Equal(t, diag.Lex, e.Kind)
			assert.Equal(t, 1, e.Line)
			msgs = append(msgs, e.Msg)
		}
		assert.Equal(t, []string{
			"Unexpected character: '@'",
			"Unexpected character: '#'",
			"Unexpected character: '$'",
			"Unexpected character: '%'",
			"Unexpected character: '^'",
			"Unexpected character: '&'",
		}, msgs)
	})

	t.Run("scanning continues after an error", func(t *testing.T) {
		var errs diag.List
		items := Tokenize("a @ b\n$c", &errs)

		assert.Equal(t, []Token{_Ident, _Ident, _Ident, _EOF}, kinds(items))
		require.Equal(t, 2, errs.Len())
		assert.Equal(t, 1, errs.Errors()[0].Line)
		assert.Equal(t, 2, errs.Errors()[1].Line)
	})

	t.Run("unterminated string", func(t *testing.T) {
		var errs diag.List
		items := Tokenize("\"hello\" \"world\" \"unterminated string", &errs)

		assert.Equal(t, []Token{_String, _String, _EOF}, kinds(items))
		require.Equal(t, 1, errs.Len())
		assert.Equal(t, &diag.Error{Kind: diag.Lex, Line: 1, Msg: "Unterminated string."}, errs.Errors()[0])
	})

	t.Run("unterminated string reports its opening line", func(t *testing.T) {
		var errs diag.List
		items := Tokenize("x\n\"starts here\nand\nnever ends", &errs)

		assert.Equal(t, []Token{_Ident, _EOF}, kinds(items))
		require.Equal(t, 1, errs.Len())
		assert.Equal(t, 2, errs.Errors()[0].Line)
		// EOF still sits on the last line.
		assert.Equal(t, 4, items[1].Line())
	})

	t.Run("invalid UTF-8 is reported once", func(t *testing.T) {
		var errs diag.List
		items := Tokenize("a \xff b", &errs)

		assert.Equal(t, []Token{_Ident, _Ident, _EOF}, kinds(items))
		require.Equal(t, 1, errs.Len())
		assert.Equal(t, "Unexpected character: '�'", errs.Errors()[0].Msg)
	})

	t.Run("nil collector", func(t *testing.T) {
		items := Tokenize("@", nil)
		assert.Equal(t, []Token{_EOF}, kinds(items))
	})
}

func TestScanEndsWithSingleEOF(t *testing.T) {
	for _, src := range []string{"", "a", "@", "\"open", "1 + 2;", "// c"} {
		items := Tokenize(src, nil)
		require.NotEmpty(t, items, src)
		assert.Equal(t, _EOF, items[len(items)-1].Tok, src)
		for _, it := range items[:len(items)-1] {
			assert.NotEqual(t, _EOF, it.Tok, src)
		}
	}
}

func TestScannerStreaming(t *testing.T) {
	s := NewScanner("x <= 10", nil)

	s.Next()
	assert.Equal(t, _Ident, s.Token())
	assert.Equal(t, "x", s.Text())
	s.Next()
	assert.Equal(t, _Leq, s.Token())
	assert.Equal(t, NewPos(1, 3), s.Pos())
	s.Next()
	assert.Equal(t, value.Number(10), s.Literal())
	s.Next()
	assert.True(t, s.Token().IsEOF())
	// Further calls keep returning EOF.
	s.Next()
	assert.True(t, s.Token().IsEOF())
}
