// Package value defines the Lox runtime value variant: Nil, Number,
// String, Boolean, and the two callable kinds (NativeCallable and
// user-defined Callable/closures).
package value

import (
	"fmt"
	"strconv"
)

// Value is implemented by every runtime value kind. ValueKind is
// exported (rather than an unexported marker method) specifically so
// that package interpreter can define the user-defined Callable variant
// there — it needs to hold a *environment.Environment, and environment
// already imports value, so the variant can't live in this package
// without an import cycle.
type Value interface {
	ValueKind() string
}

// Nil is the Lox nil value. There is exactly one instance, NilValue.
type Nil struct{}

func (Nil) ValueKind() string { return "nil" }

// NilValue is the single Nil instance; compare with ==.
var NilValue = Nil{}

// Number wraps an IEEE-754 double.
type Number float64

func (Number) ValueKind() string { return "number" }

// String wraps Lox string content (without surrounding quotes).
type String string

func (String) ValueKind() string { return "string" }

// Boolean wraps a Lox boolean.
type Boolean bool

func (Boolean) ValueKind() string { return "boolean" }

// Callable is implemented by both NativeCallable and the user-defined
// closure type in package interpreter.
type Callable interface {
	Value
	Name() string
	Arity() int
}

// NativeFunc is the Go function signature backing a NativeCallable.
type NativeFunc func(args []Value) (Value, error)

// NativeCallable is a built-in function registered into the global
// environment, e.g. clock.
type NativeCallable struct {
	FnName  string
	FnArity int
	Fn      NativeFunc
}

func (*NativeCallable) ValueKind() string { return "function" }
func (n *NativeCallable) Name() string     { return n.FnName }
func (n *NativeCallable) Arity() int       { return n.FnArity }

// IsTruthy implements Lox truthiness: Nil and Boolean(false) are falsy,
// everything else (including 0 and "") is truthy.
func IsTruthy(v Value) bool {
	switch vv := v.(type) {
	case Nil:
		return false
	case Boolean:
		return bool(vv)
	default:
		return true
	}
}

// IsEqual implements Lox structural equality: defined for all pairs,
// cross-variant comparisons are never equal, numeric comparison follows
// IEEE-754 (so NaN != NaN).
func IsEqual(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Number:
		bv, ok := b.(Number)
		return ok && float64(av) == float64(bv)
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	default:
		return a == b
	}
}

// Display renders v's print form: integral numbers with no
// fractional digits, non-integral numbers with exactly two decimal
// digits, strings double-quoted, callables as "<fn NAME>".
func Display(v Value) string {
	switch vv := v.(type) {
	case Nil:
		return "nil"
	case Number:
		f := float64(vv)
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', 2, 64)
	case String:
		return fmt.Sprintf("%q", string(vv))
	case Boolean:
		return strconv.FormatBool(bool(vv))
	case Callable:
		return fmt.Sprintf("<fn %s>", vv.Name())
	default:
		return fmt.Sprintf("%v", v)
	}
}

// TypeName names v's runtime type for diagnostics; it is simply v's
// ValueKind, kept as a separate function so call sites read naturally
// ("not a number" rather than "not ValueKind number").
func TypeName(v Value) string {
	return v.ValueKind()
}
