// Package environment implements the name-to-value scope chain that
// variable lookup, assignment, and closures all share.
//
// A Go *Environment already gives the sharing semantics closures need:
// any number of holders (closures, recursive call frames, nested
// blocks) referencing the same *Environment observe mutations made
// through any of them, because they all dereference the same pointer
// to the same underlying map. This is the direct counterpart of a
// RefCell<HashMap<...>> behind a shared reference — Go needs no
// interior-mutability wrapper because map mutation through a pointer is
// already visible to every alias.
package environment

import "github.com/kristofer/glox/internal/value"

// Environment is one scope in the chain: its own bindings plus an
// optional parent. Parent is nil iff this is the global environment.
type Environment struct {
	bindings map[string]value.Value
	parent   *Environment
}

// NewGlobal creates the root environment with no parent.
func NewGlobal() *Environment {
	return &Environment{bindings: make(map[string]value.Value)}
}

// NewChild creates a new environment whose parent is e, e.g. for a
// block or a function call frame.
func (e *Environment) NewChild() *Environment {
	return &Environment{bindings: make(map[string]value.Value), parent: e}
}

// Define binds name to v in this scope unconditionally. Redefining a
// name already bound in this same scope silently overwrites it.
func (e *Environment) Define(name string, v value.Value) {
	e.bindings[name] = v
}

// Get looks up name starting at this scope and walking up through
// parents, returning the first value found.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.bindings[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign walks up the chain for the nearest scope that already defines
// name and overwrites the binding there. It reports false if no scope
// defines name.
func (e *Environment) Assign(name string, v value.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.bindings[name]; ok {
			env.bindings[name] = v
			return true
		}
	}
	return false
}

// IsGlobal reports whether e has no parent.
func (e *Environment) IsGlobal() bool {
	return e.parent == nil
}

// Bindings returns this scope's own bindings, excluding parents. It
// exists for debugger inspection; ordinary lookup should use Get.
func (e *Environment) Bindings() map[string]value.Value {
	return e.bindings
}
