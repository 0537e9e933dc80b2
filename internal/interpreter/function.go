package interpreter

import (
	"github.com/kristofer/glox/internal/ast"
	"github.com/kristofer/glox/internal/environment"
	"github.com/kristofer/glox/internal/value"
)

// Function is a user-defined Lox closure: it captures the environment
// active at the point of its `fun` declaration — a Callable's captured
// environment always points there, never at the call site.
type Function struct {
	name    string
	params  []string
	body    *ast.Block
	closure *environment.Environment
}

func newFunction(decl *ast.Function, closure *environment.Environment) *Function {
	return &Function{name: decl.Name, params: decl.Params, body: decl.Body, closure: closure}
}

func (*Function) ValueKind() string { return "function" }
func (f *Function) Name() string    { return f.name }
func (f *Function) Arity() int      { return len(f.params) }

var _ value.Callable = (*Function)(nil)
