// Package parser implements the recursive-descent Lox parser: one
// function per grammar production, with panic-mode error recovery at
// declaration boundaries.
//
// Precedence, low to high:
//
//	assignment < logical-or < logical-and < equality < comparison <
//	term < factor < unary < call < primary
//
// Every binary rule is right-associative (implemented via
// right-recursion).
package parser

import (
	"github.com/sirupsen/logrus"

	"github.com/kristofer/glox/internal/ast"
	"github.com/kristofer/glox/internal/lexer"
	"github.com/kristofer/glox/internal/loxerr"
)

// ParseError is a single parse failure at a known source line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// maxCallArgs is the static call-argument-count limit: a call with 255
// or more arguments is a parse error.
const maxCallArgs = 255

// Parser turns a token stream into a list of declarations.
type Parser struct {
	ts     *TokenStream
	report loxerr.Report
}

// New creates a Parser over tokens (which must end with Eof).
func New(tokens []lexer.Token) *Parser {
	return &Parser{ts: NewTokenStream(tokens)}
}

// Parse parses the entire program. The declaration list is returned
// only if no parse error was recorded; otherwise the accumulated report
// is returned as an error.
func (p *Parser) Parse() ([]ast.Decl, error) {
	var decls []ast.Decl
	for !p.ts.Check(lexer.Eof) {
		d, err := p.declaration()
		if err != nil {
			p.recordAndSync(err)
			continue
		}
		if d != nil {
			decls = append(decls, d)
		}
	}
	if !p.report.IsEmpty() {
		return nil, p.report.AsError()
	}
	return decls, nil
}

func (p *Parser) recordAndSync(err error) {
	line, msg := errLine(err)
	p.report.Push(line, "%s", msg)
	logrus.Debugf("parser: syncing after error at line %d: %s", line, msg)
	p.ts.ConsumeUntilSemicolon()
}

func errLine(err error) (int, string) {
	if pe, ok := err.(*ParseError); ok {
		return pe.Line, pe.Message
	}
	return 0, err.Error()
}

// --- Declarations ---

func (p *Parser) declaration() (ast.Decl, error) {
	switch p.ts.PeekType() {
	case lexer.Var:
		return p.varDeclaration()
	case lexer.Fun:
		p.ts.Next()
		return p.function()
	default:
		return p.statement()
	}
}

func (p *Parser) varDeclaration() (ast.Decl, error) {
	p.ts.Next() // 'var'
	name, err := p.ts.Consume(lexer.Identifier)
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if _, ok := p.ts.Match(lexer.Equal); ok {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.ts.Consume(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Var{Name: name.Lexeme, Initializer: init}, nil
}

// function parses `IDENT '(' parameters? ')' block`, used for
// `fun NAME(...)` declarations (there are no Lox methods in this core,
// so function is only ever a top-level/nested function declaration).
func (p *Parser) function() (ast.Decl, error) {
	name, err := p.ts.Consume(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.Consume(lexer.LeftParen); err != nil {
		return nil, err
	}

	var params []string
	if !p.ts.Check(lexer.RightParen) {
		for {
			param, err := p.ts.Consume(lexer.Identifier)
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if _, ok := p.ts.Match(lexer.Comma); !ok {
				break
			}
		}
	}
	if _, err := p.ts.Consume(lexer.RightParen); err != nil {
		return nil, err
	}

	bodyDecl, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.Function{Name: name.Lexeme, Params: params, Body: bodyDecl.(*ast.Block)}, nil
}

func (p *Parser) statement() (ast.Decl, error) {
	switch p.ts.PeekType() {
	case lexer.Print:
		return p.printStatement()
	case lexer.LeftBrace:
		return p.block()
	case lexer.If:
		return p.ifStatement()
	case lexer.While:
		return p.whileStatement()
	case lexer.For:
		return p.forStatement()
	case lexer.Return:
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Decl, error) {
	p.ts.Next() // 'print'
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.Consume(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Print{Expr: expr}, nil
}

func (p *Parser) expressionStatement() (ast.Decl, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.Consume(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

func (p *Parser) block() (ast.Decl, error) {
	if _, err := p.ts.Consume(lexer.LeftBrace); err != nil {
		return nil, err
	}
	var decls []ast.Decl
	for !p.ts.Check(lexer.RightBrace) && !p.ts.Check(lexer.Eof) {
		d, err := p.declaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	if _, err := p.ts.Consume(lexer.RightBrace); err != nil {
		return nil, err
	}
	return &ast.Block{Decls: decls}, nil
}

func (p *Parser) ifStatement() (ast.Decl, error) {
	p.ts.Next() // 'if'
	if _, err := p.ts.Consume(lexer.LeftParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.Consume(lexer.RightParen); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Decl
	if _, ok := p.ts.Match(lexer.Else); ok {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Cond: cond, Then: then, ElseBranch: elseBranch}, nil
}

func (p *Parser) whileStatement() (ast.Decl, error) {
	p.ts.Next() // 'while'
	if _, err := p.ts.Consume(lexer.LeftParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.Consume(lexer.RightParen); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

// forStatement desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }`. An omitted
// condition becomes `true`.
func (p *Parser) forStatement() (ast.Decl, error) {
	p.ts.Next() // 'for'
	if _, err := p.ts.Consume(lexer.LeftParen); err != nil {
		return nil, err
	}

	var init ast.Decl
	var err error
	switch {
	case p.ts.Check(lexer.Semicolon):
		p.ts.Next()
	case p.ts.Check(lexer.Var):
		init, err = p.varDeclaration()
		if err != nil {
			return nil, err
		}
	default:
		init, err = p.expressionStatement()
		if err != nil {
			return nil, err
		}
	}

	var cond ast.Expr
	if !p.ts.Check(lexer.Semicolon) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.ts.Consume(lexer.Semicolon); err != nil {
		return nil, err
	}

	var incr ast.Expr
	if !p.ts.Check(lexer.RightParen) {
		incr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.ts.Consume(lexer.RightParen); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &ast.Block{Decls: []ast.Decl{body, &ast.ExprStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = ast.BoolLit{Value: true}
	}
	body = &ast.While{Cond: cond, Body: body}
	if init != nil {
		body = &ast.Block{Decls: []ast.Decl{init, body}}
	}
	return body, nil
}

func (p *Parser) returnStatement() (ast.Decl, error) {
	p.ts.Next() // 'return'
	var value ast.Expr
	if !p.ts.Check(lexer.Semicolon) {
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if _, err := p.ts.Consume(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Return{Expr: value}, nil
}

// --- Expressions ---

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expr, error) {
	left, err := p.or()
	if err != nil {
		return nil, err
	}

	if eq, ok := p.ts.Match(lexer.Equal); ok {
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := left.(*ast.Variable); ok {
			return &ast.Assignment{Name: v.Name, Value: value}, nil
		}
		return nil, &ParseError{Line: eq.Line, Message: "Invalid assignment target."}
	}
	return left, nil
}

func (p *Parser) or() (ast.Expr, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	if _, ok := p.ts.Match(lexer.Or); ok {
		right, err := p.or()
		if err != nil {
			return nil, err
		}
		return &ast.Or{Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) and() (ast.Expr, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	if _, ok := p.ts.Match(lexer.And); ok {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		return &ast.And{Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	switch p.ts.PeekType() {
	case lexer.BangEqual:
		p.ts.Next()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		return &ast.NotEqual{Left: left, Right: right}, nil
	case lexer.EqualEqual:
		p.ts.Next()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		return &ast.Equal{Left: left, Right: right}, nil
	default:
		return left, nil
	}
}

func (p *Parser) comparison() (ast.Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	switch p.ts.PeekType() {
	case lexer.LessEqual:
		p.ts.Next()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		return &ast.LessEqual{Left: left, Right: right}, nil
	case lexer.Less:
		p.ts.Next()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		return &ast.Less{Left: left, Right: right}, nil
	case lexer.GreaterEqual:
		p.ts.Next()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		return &ast.GreaterEqual{Left: left, Right: right}, nil
	case lexer.Greater:
		p.ts.Next()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		return &ast.Greater{Left: left, Right: right}, nil
	default:
		return left, nil
	}
}

func (p *Parser) term() (ast.Expr, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	switch p.ts.PeekType() {
	case lexer.Minus:
		p.ts.Next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		return &ast.Minus{Left: left, Right: right}, nil
	case lexer.Plus:
		p.ts.Next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		return &ast.Plus{Left: left, Right: right}, nil
	default:
		return left, nil
	}
}

func (p *Parser) factor() (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	switch p.ts.PeekType() {
	case lexer.Slash:
		p.ts.Next()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.Divide{Left: left, Right: right}, nil
	case lexer.Star:
		p.ts.Next()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.Multiply{Left: left, Right: right}, nil
	default:
		return left, nil
	}
}

func (p *Parser) unary() (ast.Expr, error) {
	switch p.ts.PeekType() {
	case lexer.Bang:
		p.ts.Next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Operand: operand}, nil
	case lexer.Minus:
		p.ts.Next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Minus{Left: ast.NumberLit{Value: 0}, Right: operand}, nil
	default:
		return p.call()
	}
}

// call parses `primary ('(' arguments? ')')*`, a left-associative chain
// of calls (and, eventually, of any other postfix operator the grammar
// might grow).
func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		if !p.ts.Check(lexer.LeftParen) {
			return expr, nil
		}
		p.ts.Next()
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.ts.Check(lexer.RightParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if len(args) >= maxCallArgs {
				return nil, &ParseError{Line: p.ts.Peek().Line, Message: "Can't have more than 254 arguments."}
			}
			if _, ok := p.ts.Match(lexer.Comma); !ok {
				break
			}
		}
	}
	closing, err := p.ts.Consume(lexer.RightParen)
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Args: args, Line: closing.Line}, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.ts.Peek()
	switch tok.Type {
	case lexer.Number:
		p.ts.Next()
		return ast.NumberLit{Value: tok.NumberValue}, nil
	case lexer.String:
		p.ts.Next()
		return ast.StringLit{Value: tok.StringValue}, nil
	case lexer.True:
		p.ts.Next()
		return ast.BoolLit{Value: true}, nil
	case lexer.False:
		p.ts.Next()
		return ast.BoolLit{Value: false}, nil
	case lexer.Nil:
		p.ts.Next()
		return ast.NilLit{}, nil
	case lexer.Identifier:
		p.ts.Next()
		return &ast.Variable{Name: tok.Lexeme}, nil
	case lexer.LeftParen:
		p.ts.Next()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.ts.Consume(lexer.RightParen); err != nil {
			return nil, err
		}
		return &ast.Paren{Inner: inner}, nil
	default:
		p.ts.Next()
		return nil, &ParseError{Line: tok.Line, Message: "Expected expression, got " + tok.Lexeme}
	}
}
