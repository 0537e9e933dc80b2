package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// SprintExpr renders an expression as valid, re-parseable Lox source:
// every compound node brackets itself in "(...)" so precedence survives
// the round trip without depending on the surrounding context, and a
// *Paren node is transparent — it prints its Inner directly rather than
// adding another layer of parens. That transparency is what keeps the
// printer idempotent under reparsing: reparsing bracketed output always
// wraps the bracketed subexpression in a fresh *Paren node (since the
// parser's primary rule turns every "(...)" it consumes into one), and
// without the pass-through this would accumulate an extra ring of
// parens each time the output was fed back through parse-then-print.
func SprintExpr(e Expr) string {
	switch v := e.(type) {
	case NumberLit:
		return strconv.FormatFloat(v.Value, 'f', -1, 64)
	case StringLit:
		return `"` + v.Value + `"`
	case BoolLit:
		return strconv.FormatBool(v.Value)
	case NilLit:
		return "nil"
	case *Not:
		return "(!" + SprintExpr(v.Operand) + ")"
	case *Plus:
		return bracket(SprintExpr(v.Left), "+", SprintExpr(v.Right))
	case *Minus:
		return bracket(SprintExpr(v.Left), "-", SprintExpr(v.Right))
	case *Multiply:
		return bracket(SprintExpr(v.Left), "*", SprintExpr(v.Right))
	case *Divide:
		return bracket(SprintExpr(v.Left), "/", SprintExpr(v.Right))
	case *Less:
		return bracket(SprintExpr(v.Left), "<", SprintExpr(v.Right))
	case *LessEqual:
		return bracket(SprintExpr(v.Left), "<=", SprintExpr(v.Right))
	case *Greater:
		return bracket(SprintExpr(v.Left), ">", SprintExpr(v.Right))
	case *GreaterEqual:
		return bracket(SprintExpr(v.Left), ">=", SprintExpr(v.Right))
	case *Equal:
		return bracket(SprintExpr(v.Left), "==", SprintExpr(v.Right))
	case *NotEqual:
		return bracket(SprintExpr(v.Left), "!=", SprintExpr(v.Right))
	case *Paren:
		return SprintExpr(v.Inner)
	case *Variable:
		return v.Name
	case *Assignment:
		return bracket(v.Name, "=", SprintExpr(v.Value))
	case *And:
		return bracket(SprintExpr(v.Left), "and", SprintExpr(v.Right))
	case *Or:
		return bracket(SprintExpr(v.Left), "or", SprintExpr(v.Right))
	case *Call:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = SprintExpr(a)
		}
		return SprintExpr(v.Callee) + "(" + strings.Join(args, ", ") + ")"
	default:
		return fmt.Sprintf("<?expr %T>", e)
	}
}

// SprintDecl renders a declaration as valid Lox source, recursing into
// nested declarations and expressions via SprintExpr.
func SprintDecl(d Decl) string {
	switch v := d.(type) {
	case *ExprStmt:
		return SprintExpr(v.Expr) + ";"
	case *Print:
		return "print " + SprintExpr(v.Expr) + ";"
	case *Var:
		if v.Initializer == nil {
			return "var " + v.Name + ";"
		}
		return "var " + v.Name + " = " + SprintExpr(v.Initializer) + ";"
	case *Block:
		parts := make([]string, len(v.Decls))
		for i, inner := range v.Decls {
			parts[i] = SprintDecl(inner)
		}
		return "{ " + strings.Join(parts, " ") + " }"
	case *If:
		if v.ElseBranch == nil {
			return "if (" + SprintExpr(v.Cond) + ") " + SprintDecl(v.Then)
		}
		return "if (" + SprintExpr(v.Cond) + ") " + SprintDecl(v.Then) + " else " + SprintDecl(v.ElseBranch)
	case *While:
		return "while (" + SprintExpr(v.Cond) + ") " + SprintDecl(v.Body)
	case *Function:
		return "fun " + v.Name + "(" + strings.Join(v.Params, ", ") + ") " + SprintDecl(v.Body)
	case *Return:
		if v.Expr == nil {
			return "return;"
		}
		return "return " + SprintExpr(v.Expr) + ";"
	default:
		return fmt.Sprintf("<?decl %T>", d)
	}
}

// SprintProgram renders a whole declaration list as a single source
// string, one declaration printed after another.
func SprintProgram(decls []Decl) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = SprintDecl(d)
	}
	return strings.Join(parts, "\n")
}

func bracket(left, op, right string) string {
	return "(" + left + " " + op + " " + right + ")"
}
