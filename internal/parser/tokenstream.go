package parser

import "github.com/kristofer/glox/internal/lexer"

// TokenStream is a one-lookahead reader over a token slice, always
// terminated by an Eof token the stream never reads past.
type TokenStream struct {
	tokens []lexer.Token
	pos    int
}

// NewTokenStream wraps tokens, which must end with an Eof token.
func NewTokenStream(tokens []lexer.Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Peek returns the next token without consuming it.
func (t *TokenStream) Peek() lexer.Token {
	return t.tokens[t.pos]
}

// PeekType returns the type of the next token.
func (t *TokenStream) PeekType() lexer.TokenType {
	return t.tokens[t.pos].Type
}

// Next consumes and returns the next token. At Eof it returns the Eof
// token and the stream stays positioned there.
func (t *TokenStream) Next() lexer.Token {
	tok := t.tokens[t.pos]
	if t.pos < len(t.tokens)-1 {
		t.pos++
	}
	return tok
}

// Check reports whether the next token has the given type, without
// consuming it.
func (t *TokenStream) Check(want lexer.TokenType) bool {
	return t.PeekType() == want
}

// Match consumes and returns (token, true) if the next token has type
// want; otherwise it leaves the stream untouched and returns (_, false).
func (t *TokenStream) Match(want lexer.TokenType) (lexer.Token, bool) {
	if t.Check(want) {
		return t.Next(), true
	}
	return lexer.Token{}, false
}

// Consume requires the next token to have type want, consuming it on
// success. On a mismatch it returns a *ParseError carrying the current
// token's line.
func (t *TokenStream) Consume(want lexer.TokenType) (lexer.Token, error) {
	if t.Check(want) {
		return t.Next(), nil
	}
	tok := t.Peek()
	return lexer.Token{}, &ParseError{
		Line:    tok.Line,
		Message: "Expected '" + want.String() + "', got '" + tok.Lexeme + "' instead",
	}
}

// ConsumeUntilSemicolon advances the stream past tokens until a
// Semicolon has been consumed or Eof is reached. It is the panic-mode
// recovery primitive used at declaration boundaries.
func (t *TokenStream) ConsumeUntilSemicolon() {
	for {
		if t.Check(lexer.Eof) {
			return
		}
		tok := t.Next()
		if tok.Type == lexer.Semicolon {
			return
		}
	}
}
