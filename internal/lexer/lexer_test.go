package lexer

import "testing"

func TestScan_BasicTokens(t *testing.T) {
	input := `(){},.-+;*!=<=>===!<>`

	tests := []struct {
		expectedType   TokenType
		expectedLexeme string
	}{
		{LeftParen, "("},
		{RightParen, ")"},
		{LeftBrace, "{"},
		{RightBrace, "}"},
		{Comma, ","},
		{Dot, "."},
		{Minus, "-"},
		{Plus, "+"},
		{Semicolon, ";"},
		{Star, "*"},
		{BangEqual, "!="},
		{LessEqual, "<="},
		{GreaterEqual, ">="},
		{EqualEqual, "=="},
		{Bang, "!"},
		{Less, "<"},
		{Greater, ">"},
		{Eof, ""},
	}

	tokens, err := New(input).Scan()
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	if len(tokens) != len(tests) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(tests), tokens)
	}
	for i, tt := range tests {
		if tokens[i].Type != tt.expectedType {
			t.Errorf("tokens[%d].Type = %s, want %s", i, tokens[i].Type, tt.expectedType)
		}
		if tokens[i].Lexeme != tt.expectedLexeme {
			t.Errorf("tokens[%d].Lexeme = %q, want %q", i, tokens[i].Lexeme, tt.expectedLexeme)
		}
	}
}

func TestScan_StringLiteral(t *testing.T) {
	tokens, err := New(`"hello world"`).Scan()
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	if tokens[0].Type != String || tokens[0].StringValue != "hello world" {
		t.Fatalf("got %+v", tokens[0])
	}
}

func TestScan_UnterminatedString(t *testing.T) {
	_, err := New(`"hello`).Scan()
	if err == nil {
		t.Fatal("expected an unterminated string error")
	}
}

func TestScan_NumberLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"123", 123},
		{"123.45", 123.45},
	}
	for _, tt := range tests {
		tokens, err := New(tt.src).Scan()
		if err != nil {
			t.Fatalf("unexpected scan error for %q: %v", tt.src, err)
		}
		if tokens[0].Type != Number || tokens[0].NumberValue != tt.want {
			t.Errorf("scan(%q) = %+v, want Number(%v)", tt.src, tokens[0], tt.want)
		}
	}
}

// "123." is a known edge case: the trailing dot is not part of the
// number because no digit follows it, per the decimal-point lookahead.
func TestScan_TrailingDotIsNotConsumed(t *testing.T) {
	tokens, err := New("123.").Scan()
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	if tokens[0].Type != Number || tokens[0].NumberValue != 123 {
		t.Fatalf("got %+v", tokens[0])
	}
	if tokens[1].Type != Dot {
		t.Fatalf("got %+v, want a dangling DOT token", tokens[1])
	}
}

func TestScan_KeywordsAndIdentifiers(t *testing.T) {
	tokens, err := New("var orchid = nil;").Scan()
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	wantTypes := []TokenType{Var, Identifier, Equal, Nil, Semicolon, Eof}
	for i, want := range wantTypes {
		if tokens[i].Type != want {
			t.Errorf("tokens[%d].Type = %s, want %s", i, tokens[i].Type, want)
		}
	}
}

func TestScan_CommentsAndWhitespaceAreSkipped(t *testing.T) {
	tokens, err := New("// a comment\n  \t 42").Scan()
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Type != Number {
		t.Fatalf("got %+v", tokens)
	}
}

func TestScan_UnexpectedCharacterIsReported(t *testing.T) {
	_, err := New("@").Scan()
	if err == nil {
		t.Fatal("expected an unexpected-character error")
	}
}

func TestScan_TracksLineNumbers(t *testing.T) {
	tokens, err := New("1\n2\n3").Scan()
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	for i, want := range []int{1, 2, 3} {
		if tokens[i].Line != want {
			t.Errorf("tokens[%d].Line = %d, want %d", i, tokens[i].Line, want)
		}
	}
}
