package syntax

import (
	"fmt"

	"github.com/you-not-fish/lox/internal/diag"
	"github.com/you-not-fish/lox/internal/value"
)

// Parser performs syntax analysis over a scanned token sequence.
//
// It is a recursive-descent parser with one token of lookahead. The first
// grammar violation ends the parse: it is recorded in the error list and
// returned, and no resynchronization is attempted.
type Parser struct {
	items []Item
	idx   int

	// Current token info (cached from items[idx])
	tok Token
	cur Item

	// Error handling
	errs *diag.List
}

// NewParser creates a Parser over items. A missing trailing EOF item is
// supplied. Syntax errors are recorded in errs, which may be nil.
func NewParser(items []Item, errs *diag.List) *Parser {
	if n := len(items); n == 0 || items[n-1].Tok != _EOF {
		eof := Item{Tok: _EOF}
		if n > 0 {
			eof.Pos = items[n-1].Pos
		}
		items = append(items[:n:n], eof)
	}
	p := &Parser{items: items, errs: errs}
	p.idx = -1
	p.next() // prime the parser with first token
	return p
}

// Parse parses a whole program.
func Parse(items []Item, errs *diag.List) ([]Stmt, error) {
	return NewParser(items, errs).Parse()
}

// ParseExpr parses a single expression that must span all of items.
func ParseExpr(items []Item, errs *diag.List) (Expr, error) {
	return NewParser(items, errs).ParseExpr()
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token. It never moves past EOF.
func (p *Parser) next() {
	if p.idx < len(p.items)-1 {
		p.idx++
	}
	p.cur = p.items[p.idx]
	p.tok = p.cur.Tok
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, it reports a syntax error.
func (p *Parser) want(tok Token) error {
	if !p.got(tok) {
		return p.expected(describeToken(tok))
	}
	return nil
}

// describeToken renders an expected token kind for error messages.
func describeToken(tok Token) string {
	if text := tok.Text(); text != "" {
		return fmt.Sprintf("'%s' (%s)", text, tok)
	}
	return tok.String()
}

// ----------------------------------------------------------------------------
// Error handling

// expected reports "expected <what>, found <current token>".
func (p *Parser) expected(what string) error {
	return p.syntaxError(fmt.Sprintf("expected %s, found %s", what, p.cur.describe()))
}

// syntaxError reports a syntax error on the current token's line.
func (p *Parser) syntaxError(msg string) error {
	return p.syntaxErrorAt(p.cur.Line(), msg)
}

// syntaxErrorAt records and returns a syntax error at line.
func (p *Parser) syntaxErrorAt(line int, msg string) error {
	err := &diag.Error{Kind: diag.Syntax, Line: line, Msg: msg}
	if p.errs != nil {
		p.errs.Append(err)
	}
	return err
}

// ----------------------------------------------------------------------------
// Parsing entry points

// Parse parses statements until EOF.
func (p *Parser) Parse() ([]Stmt, error) {
	var stmts []Stmt
	for p.tok != _EOF {
		s, err := p.stmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// ParseExpr parses one expression followed by EOF.
func (p *Parser) ParseExpr() (Expr, error) {
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok != _EOF {
		return nil, p.expected("end of expression")
	}
	return x, nil
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a statement. Declarations are accepted in every statement
// position.
func (p *Parser) stmt() (Stmt, error) {
	switch p.tok {
	case _Var:
		return p.varDecl()

	case _If:
		return p.ifStmt()

	case _While:
		return p.whileStmt()

	case _For:
		return p.forStmt()

	case _Print:
		return p.printStmt()

	case _Lbrace:
		return p.blockStmt()

	default:
		return p.exprStmt()
	}
}

// varDecl parses: var Name [= Init] ;
func (p *Parser) varDecl() (Stmt, error) {
	d := &VarDecl{}
	d.pos = p.cur.Pos

	if err := p.want(_Var); err != nil {
		return nil, err
	}

	if p.tok != _Ident {
		return nil, p.expected("variable name")
	}
	d.Name = p.cur.Text
	p.next()

	if p.got(_Assign) {
		init, err := p.expr()
		if err != nil {
			return nil, err
		}
		d.Init = init
	}

	if err := p.want(_Semi); err != nil {
		return nil, err
	}
	return d, nil
}

// printStmt parses: print X ;
func (p *Parser) printStmt() (Stmt, error) {
	s := &PrintStmt{}
	s.pos = p.cur.Pos

	if err := p.want(_Print); err != nil {
		return nil, err
	}
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	s.X = x

	if err := p.want(_Semi); err != nil {
		return nil, err
	}
	return s, nil
}

// exprStmt parses: X ;
func (p *Parser) exprStmt() (Stmt, error) {
	s := &ExprStmt{}
	s.pos = p.cur.Pos

	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	s.X = x

	if err := p.want(_Semi); err != nil {
		return nil, err
	}
	return s, nil
}

// blockStmt parses { stmts... }
func (p *Parser) blockStmt() (Stmt, error) {
	b := &BlockStmt{}
	b.pos = p.cur.Pos

	if err := p.want(_Lbrace); err != nil {
		return nil, err
	}

	for p.tok != _Rbrace && p.tok != _EOF {
		s, err := p.stmt()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}

	if err := p.want(_Rbrace); err != nil {
		return nil, err
	}
	return b, nil
}

// condition parses: ( X )
func (p *Parser) condition() (Expr, error) {
	if err := p.want(_Lparen); err != nil {
		return nil, err
	}
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.want(_Rparen); err != nil {
		return nil, err
	}
	return x, nil
}

// ifStmt parses: if ( Cond ) Then [else Else]
// An else binds to the nearest if without one.
func (p *Parser) ifStmt() (Stmt, error) {
	s := &IfStmt{}
	s.pos = p.cur.Pos

	if err := p.want(_If); err != nil {
		return nil, err
	}

	var err error
	if s.Cond, err = p.condition(); err != nil {
		return nil, err
	}
	if s.Then, err = p.stmt(); err != nil {
		return nil, err
	}

	if p.got(_Else) {
		if s.Else, err = p.stmt(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// whileStmt parses: while ( Cond ) Body
func (p *Parser) whileStmt() (Stmt, error) {
	s := &WhileStmt{}
	s.pos = p.cur.Pos

	if err := p.want(_While); err != nil {
		return nil, err
	}

	var err error
	if s.Cond, err = p.condition(); err != nil {
		return nil, err
	}
	if s.Body, err = p.stmt(); err != nil {
		return nil, err
	}
	return s, nil
}

// forStmt parses: for ( [Init] ; [Cond] ; [Incr] ) Body
// and desugars it into
//
//	{ Init; while (Cond) { Body; Incr; } }
//
// An absent Init drops the outer block, an absent Incr leaves Body
// unwrapped, and an absent Cond becomes true.
func (p *Parser) forStmt() (Stmt, error) {
	pos := p.cur.Pos

	if err := p.want(_For); err != nil {
		return nil, err
	}
	if err := p.want(_Lparen); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch p.tok {
	case _Semi:
		p.next()
	case _Var:
		init, err = p.varDecl()
	default:
		init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if p.tok != _Semi {
		if cond, err = p.expr(); err != nil {
			return nil, err
		}
	}
	if err := p.want(_Semi); err != nil {
		return nil, err
	}

	var incr Expr
	if p.tok != _Rparen {
		if incr, err = p.expr(); err != nil {
			return nil, err
		}
	}
	if err := p.want(_Rparen); err != nil {
		return nil, err
	}

	body, err := p.stmt()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		step := &ExprStmt{X: incr}
		step.pos = incr.Pos()
		blk := &BlockStmt{Stmts: []Stmt{body, step}}
		blk.pos = body.Pos()
		body = blk
	}

	if cond == nil {
		lit := &Literal{Value: value.True}
		lit.pos = pos
		cond = lit
	}
	loop := &WhileStmt{Cond: cond, Body: body}
	loop.pos = pos

	if init == nil {
		return loop, nil
	}
	outer := &BlockStmt{Stmts: []Stmt{init, loop}}
	outer.pos = pos
	return outer, nil
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression.
func (p *Parser) expr() (Expr, error) {
	return p.assignment()
}

// assignment parses: Name = Value | logical-or
// Assignment is right associative and its target must be a variable.
func (p *Parser) assignment() (Expr, error) {
	x, err := p.binaryExpr(0)
	if err != nil {
		return nil, err
	}

	if p.tok != _Assign {
		return x, nil
	}
	eq := p.cur
	p.next()

	val, err := p.assignment()
	if err != nil {
		return nil, err
	}

	v, ok := x.(*Variable)
	if !ok {
		return nil, p.syntaxErrorAt(eq.Line(), "invalid assignment target")
	}
	a := &Assign{Name: v.Name, Value: val}
	a.pos = v.pos
	return a, nil
}

// precedence returns the binding power of a binary operator token.
// Returns 0 for non-operators.
//
//	1: or
//	2: and
//	3: == !=
//	4: < <= > >=
//	5: + -
//	6: * /
func precedence(t Token) int {
	switch t {
	case _Or:
		return 1
	case _And:
		return 2
	case _Eql, _BangEq:
		return 3
	case _Lss, _Leq, _Gtr, _Geq:
		return 4
	case _Plus, _Minus:
		return 5
	case _Star, _Slash:
		return 6
	}
	return 0
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Implements precedence climbing; all binary operators are left associative.
func (p *Parser) binaryExpr(prec int) (Expr, error) {
	x, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		op := p.tok
		oprec := precedence(op)
		if oprec <= prec {
			return x, nil
		}
		p.next() // consume operator

		y, err := p.binaryExpr(oprec)
		if err != nil {
			return nil, err
		}

		// Binary expression position starts at the left operand.
		if op == _And || op == _Or {
			l := &Logical{Op: op, X: x, Y: y}
			l.pos = x.Pos()
			x = l
		} else {
			b := &Binary{Op: op, X: x, Y: y}
			b.pos = x.Pos()
			x = b
		}
	}
}

// unaryExpr parses: ! X | - X | primary
func (p *Parser) unaryExpr() (Expr, error) {
	switch p.tok {
	case _Bang, _Minus:
		op := &Unary{Op: p.tok}
		op.pos = p.cur.Pos
		p.next()
		x, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		op.X = x
		return op, nil

	default:
		return p.primaryExpr()
	}
}

// primaryExpr parses literals, variable references and parenthesized
// expressions.
func (p *Parser) primaryExpr() (Expr, error) {
	pos := p.cur.Pos

	switch p.tok {
	case _Number, _String:
		lit := &Literal{Value: p.cur.Lit}
		lit.pos = pos
		p.next()
		return lit, nil

	case _True, _False, _Nil:
		lit := &Literal{Value: keywordValue(p.tok)}
		lit.pos = pos
		p.next()
		return lit, nil

	case _Ident:
		v := &Variable{Name: p.cur.Text}
		v.pos = pos
		p.next()
		return v, nil

	case _Lparen:
		p.next()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.want(_Rparen); err != nil {
			return nil, err
		}
		g := &Grouping{X: x}
		g.pos = pos
		return g, nil

	default:
		return nil, p.expected("expression")
	}
}

// keywordValue returns the constant named by true, false or nil.
func keywordValue(t Token) value.Value {
	switch t {
	case _True:
		return value.True
	case _False:
		return value.False
	}
	return value.Nil
}
