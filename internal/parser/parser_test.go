package parser

import (
	"strings"
	"testing"

	"github.com/kristofer/glox/internal/ast"
	"github.com/kristofer/glox/internal/lexer"
)

func parse(t *testing.T, src string) []ast.Decl {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("scan(%q): %v", src, err)
	}
	decls, err := New(tokens).Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	return decls
}

func TestParse_ExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3));"},
		{"(1 + 2) * 3;", "((1 + 2) * 3);"},
		{"-1 + 2;", "((0 - 1) + 2);"},
		{"!true == false;", "((!true) == false);"},
		{"a = b = 1;", "(a = (b = 1));"},
		{"1 < 2 and 3 > 4;", "((1 < 2) and (3 > 4));"},
		{"1 == 1 or 2 == 3;", "((1 == 1) or (2 == 3));"},
	}
	for _, tt := range tests {
		decls := parse(t, tt.src)
		if len(decls) != 1 {
			t.Fatalf("parse(%q): got %d decls, want 1", tt.src, len(decls))
		}
		got := ast.SprintDecl(decls[0])
		if got != tt.want {
			t.Errorf("parse(%q) = %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestParse_VarDeclaration(t *testing.T) {
	decls := parse(t, "var x = 1 + 2;")
	got := ast.SprintDecl(decls[0])
	want := "var x = (1 + 2);"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParse_VarDeclarationWithoutInitializer(t *testing.T) {
	decls := parse(t, "var x;")
	got := ast.SprintDecl(decls[0])
	if got != "var x;" {
		t.Errorf("got %s", got)
	}
}

func TestParse_IfElse(t *testing.T) {
	decls := parse(t, "if (x) print 1; else print 2;")
	got := ast.SprintDecl(decls[0])
	want := "if (x) print 1; else print 2;"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParse_WhileLoop(t *testing.T) {
	decls := parse(t, "while (x < 10) x = x + 1;")
	got := ast.SprintDecl(decls[0])
	want := "while ((x < 10)) (x = (x + 1));"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

// The for loop desugars into an equivalent while inside a block, per
// the desugaring invariant; assert on the desugared shape directly.
func TestParse_ForLoopDesugarsToWhile(t *testing.T) {
	decls := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	got := ast.SprintDecl(decls[0])
	want := "{ var i = 0; while ((i < 3)) { print i; (i = (i + 1)); } }"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParse_ForLoopWithOmittedClauses(t *testing.T) {
	decls := parse(t, "for (;;) print 1;")
	got := ast.SprintDecl(decls[0])
	want := "while (true) print 1;"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParse_FunctionDeclaration(t *testing.T) {
	decls := parse(t, "fun add(a, b) { return a + b; }")
	got := ast.SprintDecl(decls[0])
	want := "fun add(a, b) { return (a + b); }"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParse_CallExpression(t *testing.T) {
	decls := parse(t, "add(1, 2);")
	got := ast.SprintDecl(decls[0])
	want := "add(1, 2);"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParse_InvalidAssignmentTargetIsAnError(t *testing.T) {
	tokens, err := lexer.New("1 = 2;").Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	_, err = New(tokens).Parse()
	if err == nil {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
}

func TestParse_MissingSemicolonRecoversAtNextStatement(t *testing.T) {
	// The missing ';' after "print 1" is reported, recovery skips past the
	// next ';', and parsing resumes at "var = 3;", whose error is reported too.
	tokens, err := lexer.New("print 1 print 2; var = 3;").Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	_, err = New(tokens).Parse()
	if err == nil {
		t.Fatal("expected a parse error report")
	}
	if n := strings.Count(err.Error(), "Error:"); n != 2 {
		t.Fatalf("got %d reported errors, want 2: %v", n, err)
	}
}

func TestParse_TooManyCallArguments(t *testing.T) {
	src := "f("
	for i := 0; i < 255; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ");"
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	_, err = New(tokens).Parse()
	if err == nil {
		t.Fatal("expected a parse error for 255 arguments")
	}
}
