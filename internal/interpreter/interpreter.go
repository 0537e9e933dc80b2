// Package interpreter implements the tree-walking evaluator: it
// interprets declarations and expressions directly against a chain of
// environments.
//
// Every evaluation step returns a single error channel carrying one of
// three outcomes: nil (success), a *loxerr.RuntimeError, or a
// *returnSignal — the non-local control-flow mechanism for `return`.
// Only Call consumes a *returnSignal (Run reports one that escapes to
// top level as a runtime error); every other declaration just lets it
// bubble up unchanged, exactly as a genuine error would.
package interpreter

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kristofer/glox/internal/ast"
	"github.com/kristofer/glox/internal/environment"
	"github.com/kristofer/glox/internal/loxerr"
	"github.com/kristofer/glox/internal/value"
)

// returnSignal is the control-flow value a `return` statement raises.
// It implements error purely so it can travel through the same return
// slot as a *loxerr.RuntimeError. Call consumes it; Run converts one
// that escapes to top level into a runtime error.
type returnSignal struct{ Value value.Value }

func (r *returnSignal) Error() string {
	return fmt.Sprintf("return %s", value.Display(r.Value))
}

// Clock is the injectable wall-clock source backing the clock built-in.
type Clock func() float64

// Interpreter holds the state that persists across a REPL session: the
// global environment and the injected sink/clock collaborators.
type Interpreter struct {
	Globals  *environment.Environment
	Sink     io.Writer
	Clock    Clock
	Debugger *Debugger
}

// New creates an Interpreter with a fresh global environment, the
// clock built-in already registered, writing print output to sink.
// Runtime errors are returned from Run to the caller; they are not
// written to sink. Its Debugger starts disabled; callers that want
// breakpoint support call itp.Debugger.Enable().
func New(sink io.Writer, clock Clock) *Interpreter {
	itp := &Interpreter{
		Globals: environment.NewGlobal(),
		Sink:    sink,
		Clock:   clock,
	}
	itp.Debugger = NewDebugger(itp)
	itp.defineBuiltins()
	return itp
}

// Run evaluates a sequence of top-level declarations against the global
// environment. A *returnSignal escaping all the way to here is the
// "return outside a function" case and is reported as a runtime error.
func (itp *Interpreter) Run(decls []ast.Decl) error {
	for _, d := range decls {
		if err := itp.execDecl(itp.Globals, d); err != nil {
			if rs, ok := err.(*returnSignal); ok {
				return loxerr.Newf("'return' outside function (value: %s)", value.Display(rs.Value))
			}
			return err
		}
	}
	return nil
}

// --- Declarations ---

func (itp *Interpreter) execDecl(env *environment.Environment, d ast.Decl) error {
	switch v := d.(type) {
	case *ast.ExprStmt:
		_, err := itp.evalExpr(env, v.Expr)
		return err

	case *ast.Print:
		val, err := itp.evalExpr(env, v.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(itp.Sink, value.Display(val))
		return nil

	case *ast.Var:
		var val value.Value = value.NilValue
		if v.Initializer != nil {
			var err error
			val, err = itp.evalExpr(env, v.Initializer)
			if err != nil {
				return err
			}
		}
		env.Define(v.Name, val)
		return nil

	case *ast.Block:
		child := env.NewChild()
		return itp.execBlock(child, v.Decls)

	case *ast.If:
		cond, err := itp.evalExpr(env, v.Cond)
		if err != nil {
			return err
		}
		if value.IsTruthy(cond) {
			return itp.execDecl(env, v.Then)
		}
		if v.ElseBranch != nil {
			return itp.execDecl(env, v.ElseBranch)
		}
		return nil

	case *ast.While:
		for {
			cond, err := itp.evalExpr(env, v.Cond)
			if err != nil {
				return err
			}
			if !value.IsTruthy(cond) {
				return nil
			}
			if err := itp.execDecl(env, v.Body); err != nil {
				return err
			}
		}

	case *ast.Function:
		fn := newFunction(v, env)
		env.Define(v.Name, fn)
		return nil

	case *ast.Return:
		var val value.Value = value.NilValue
		if v.Expr != nil {
			var err error
			val, err = itp.evalExpr(env, v.Expr)
			if err != nil {
				return err
			}
		}
		return &returnSignal{Value: val}

	default:
		return loxerr.Newf("unhandled declaration %T", d)
	}
}

func (itp *Interpreter) execBlock(env *environment.Environment, decls []ast.Decl) error {
	for _, d := range decls {
		if err := itp.execDecl(env, d); err != nil {
			return err
		}
	}
	return nil
}

// --- Expressions ---

func (itp *Interpreter) evalExpr(env *environment.Environment, e ast.Expr) (value.Value, error) {
	switch v := e.(type) {
	case ast.NumberLit:
		return value.Number(v.Value), nil
	case ast.StringLit:
		return value.String(v.Value), nil
	case ast.BoolLit:
		return value.Boolean(v.Value), nil
	case ast.NilLit:
		return value.NilValue, nil

	case *ast.Paren:
		return itp.evalExpr(env, v.Inner)

	case *ast.Not:
		operand, err := itp.evalExpr(env, v.Operand)
		if err != nil {
			return nil, err
		}
		return value.Boolean(!value.IsTruthy(operand)), nil

	case *ast.Plus:
		return itp.evalPlus(env, v)
	case *ast.Minus:
		return itp.evalArithmetic(env, v.Left, v.Right, func(a, b float64) float64 { return a - b })
	case *ast.Multiply:
		return itp.evalArithmetic(env, v.Left, v.Right, func(a, b float64) float64 { return a * b })
	case *ast.Divide:
		return itp.evalArithmetic(env, v.Left, v.Right, func(a, b float64) float64 { return a / b })

	case *ast.Less:
		return itp.evalComparison(env, v.Left, v.Right, func(a, b float64) bool { return a < b })
	case *ast.LessEqual:
		return itp.evalComparison(env, v.Left, v.Right, func(a, b float64) bool { return a <= b })
	case *ast.Greater:
		return itp.evalComparison(env, v.Left, v.Right, func(a, b float64) bool { return a > b })
	case *ast.GreaterEqual:
		return itp.evalComparison(env, v.Left, v.Right, func(a, b float64) bool { return a >= b })

	case *ast.Equal:
		left, right, err := itp.evalPair(env, v.Left, v.Right)
		if err != nil {
			return nil, err
		}
		return value.Boolean(value.IsEqual(left, right)), nil

	case *ast.NotEqual:
		left, right, err := itp.evalPair(env, v.Left, v.Right)
		if err != nil {
			return nil, err
		}
		return value.Boolean(!value.IsEqual(left, right)), nil

	case *ast.Variable:
		val, ok := env.Get(v.Name)
		if !ok {
			return nil, loxerr.Newf("Undefined variable %s", v.Name)
		}
		return val, nil

	case *ast.Assignment:
		val, err := itp.evalExpr(env, v.Value)
		if err != nil {
			return nil, err
		}
		if !env.Assign(v.Name, val) {
			return nil, loxerr.Newf("Undefined variable %s", v.Name)
		}
		return val, nil

	case *ast.And:
		left, err := itp.evalExpr(env, v.Left)
		if err != nil {
			return nil, err
		}
		if !value.IsTruthy(left) {
			return left, nil
		}
		return itp.evalExpr(env, v.Right)

	case *ast.Or:
		left, err := itp.evalExpr(env, v.Left)
		if err != nil {
			return nil, err
		}
		if value.IsTruthy(left) {
			return left, nil
		}
		return itp.evalExpr(env, v.Right)

	case *ast.Call:
		return itp.evalCall(env, v)

	default:
		return nil, loxerr.Newf("unhandled expression %T", e)
	}
}

func (itp *Interpreter) evalPair(env *environment.Environment, l, r ast.Expr) (value.Value, value.Value, error) {
	left, err := itp.evalExpr(env, l)
	if err != nil {
		return nil, nil, err
	}
	right, err := itp.evalExpr(env, r)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// evalPlus handles '+': number+number adds, string+string concatenates,
// any other combination is a type error.
func (itp *Interpreter) evalPlus(env *environment.Environment, n *ast.Plus) (value.Value, error) {
	left, right, err := itp.evalPair(env, n.Left, n.Right)
	if err != nil {
		return nil, err
	}
	switch lv := left.(type) {
	case value.Number:
		if rv, ok := right.(value.Number); ok {
			return lv + rv, nil
		}
	case value.String:
		if rv, ok := right.(value.String); ok {
			return lv + rv, nil
		}
	}
	return nil, loxerr.Newf("Operands must be two numbers or two strings.")
}

func (itp *Interpreter) evalArithmetic(env *environment.Environment, l, r ast.Expr, op func(a, b float64) float64) (value.Value, error) {
	left, right, err := itp.evalPair(env, l, r)
	if err != nil {
		return nil, err
	}
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if !lok || !rok {
		return nil, notANumber(left, right, lok)
	}
	return value.Number(op(float64(ln), float64(rn))), nil
}

func (itp *Interpreter) evalComparison(env *environment.Environment, l, r ast.Expr, op func(a, b float64) bool) (value.Value, error) {
	left, right, err := itp.evalPair(env, l, r)
	if err != nil {
		return nil, err
	}
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if !lok || !rok {
		return nil, notANumber(left, right, lok)
	}
	return value.Boolean(op(float64(ln), float64(rn))), nil
}

func notANumber(left, right value.Value, leftOK bool) error {
	bad := right
	if !leftOK {
		bad = left
	}
	return loxerr.Newf("%s is not a number", value.Display(bad))
}

func (itp *Interpreter) evalCall(env *environment.Environment, c *ast.Call) (value.Value, error) {
	callee, err := itp.evalExpr(env, c.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := itp.evalExpr(env, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case *value.NativeCallable:
		if len(args) != fn.Arity() {
			return nil, arityError(fn.Name(), fn.Arity(), len(args))
		}
		return fn.Fn(args)

	case *Function:
		if len(args) != fn.Arity() {
			return nil, arityError(fn.Name(), fn.Arity(), len(args))
		}
		logrus.Debugf("interpreter: calling %s at line %d", fn.Name(), c.Line)
		callEnv := fn.closure.NewChild()
		for i, param := range fn.params {
			callEnv.Define(param, args[i])
		}
		itp.Debugger.onCall(fn.Name(), c.Line, callEnv)
		err := itp.execBlock(callEnv, fn.body.Decls)
		itp.Debugger.onReturn()
		if rs, ok := err.(*returnSignal); ok {
			return rs.Value, nil
		}
		if err != nil {
			return nil, err
		}
		return value.NilValue, nil

	default:
		return nil, loxerr.Newf("Can only call functions and classes")
	}
}

func arityError(name string, want, got int) error {
	return loxerr.Newf("Function %s expected %d arguments but got %d.", name, want, got)
}
