// Package lexer implements the scanner (tokenizer) for Lox: a single
// pass over the source text that emits a token sequence ending in EOF,
// collecting lexical errors into a loxerr.Report along the way.
package lexer

import (
	"strconv"

	"github.com/josharian/intern"
	"github.com/sirupsen/logrus"

	"github.com/kristofer/glox/internal/loxerr"
	"github.com/kristofer/glox/internal/source"
)

// Scanner turns source text into a token stream.
type Scanner struct {
	cursor *source.Cursor
	report loxerr.Report
}

// New creates a Scanner over src.
func New(src string) *Scanner {
	return &Scanner{cursor: source.New(src)}
}

// Scan consumes the entire input and returns its tokens, always
// terminated by an Eof token. If any lexical error was recorded, the
// tokens are discarded and the report is returned as an error instead,
// the pipeline halts before parsing on a non-empty report.
func (s *Scanner) Scan() ([]Token, error) {
	var tokens []Token
	for {
		tok, ok := s.next()
		if ok {
			tokens = append(tokens, tok)
			logrus.Debugf("lexer: emitted %s %q at line %d", tok.Type, tok.Lexeme, tok.Line)
		}
		if ok && tok.Type == Eof {
			break
		}
	}
	if !s.report.IsEmpty() {
		return nil, s.report.AsError()
	}
	return tokens, nil
}

// next scans and returns the next token. ok is false when the character
// produced no token (whitespace, comment, or a recorded lexical error).
func (s *Scanner) next() (Token, bool) {
	r, hasChar := s.cursor.Next()
	line := s.cursor.Line()

	if !hasChar {
		s.cursor.FlushLexeme()
		return Token{Type: Eof, Line: line}, true
	}

	var typ TokenType

	switch r {
	case '(':
		typ = LeftParen
	case ')':
		typ = RightParen
	case '{':
		typ = LeftBrace
	case '}':
		typ = RightBrace
	case ',':
		typ = Comma
	case '.':
		typ = Dot
	case '-':
		typ = Minus
	case '+':
		typ = Plus
	case ';':
		typ = Semicolon
	case '*':
		typ = Star
	case '!':
		if s.cursor.MaybeNext('=') {
			typ = BangEqual
		} else {
			typ = Bang
		}
	case '=':
		if s.cursor.MaybeNext('=') {
			typ = EqualEqual
		} else {
			typ = Equal
		}
	case '<':
		if s.cursor.MaybeNext('=') {
			typ = LessEqual
		} else {
			typ = Less
		}
	case '>':
		if s.cursor.MaybeNext('=') {
			typ = GreaterEqual
		} else {
			typ = Greater
		}
	case '/':
		if s.cursor.MaybeNext('/') {
			s.cursor.ConsumeUntil('\n')
			s.cursor.FlushLexeme()
			return Token{}, false
		}
		typ = Slash
	case ' ', '\t', '\r', '\n':
		s.cursor.FlushLexeme()
		return Token{}, false
	case '"':
		return s.scanString(line)
	default:
		switch {
		case isDigit(r):
			return s.scanNumber(line)
		case isAlpha(r):
			return s.scanIdentifier(line)
		default:
			s.report.Push(line, "Unexpected character %c", r)
			s.cursor.FlushLexeme()
			return Token{}, false
		}
	}

	lexeme := s.cursor.FlushLexeme()
	return Token{Type: typ, Lexeme: lexeme, Line: line}, true
}

func (s *Scanner) scanString(line int) (Token, bool) {
	s.cursor.ConsumeUntil('"')
	if !s.cursor.MaybeNext('"') {
		s.report.Push(line, "Unterminated string")
		s.cursor.FlushLexeme()
		return Token{}, false
	}
	lexeme := s.cursor.FlushLexeme()
	// lexeme is `"...contents..."`; strip the surrounding quotes.
	value := lexeme[1 : len(lexeme)-1]
	return Token{Type: String, Lexeme: lexeme, Line: line, StringValue: intern.String(value)}, true
}

func (s *Scanner) scanNumber(line int) (Token, bool) {
	s.cursor.ConsumeDigits()
	// Only consume a following '.' as a decimal point if a digit comes
	// after it; "123." scans as NUMBER("123") then a dangling DOT, which
	// the parser reports as a syntax error.
	if dot, ok := s.cursor.Peek(); ok && dot == '.' {
		if digit, ok := s.cursor.PeekAfter(); ok && isDigit(digit) {
			s.cursor.Next() // consume '.'
			s.cursor.ConsumeDigits()
		}
	}
	lexeme := s.cursor.FlushLexeme()
	n, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		s.report.Push(line, "%s is not a valid number", lexeme)
		return Token{}, false
	}
	return Token{Type: Number, Lexeme: lexeme, Line: line, NumberValue: n}, true
}

func (s *Scanner) scanIdentifier(line int) (Token, bool) {
	s.cursor.ConsumeAlphanumeric()
	lexeme := s.cursor.FlushLexeme()
	if kw, ok := keywords[lexeme]; ok {
		return Token{Type: kw, Lexeme: lexeme, Line: line}, true
	}
	return Token{Type: Identifier, Lexeme: intern.String(lexeme), Line: line}, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
