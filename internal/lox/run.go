// Package lox wires the scanner, parser, and interpreter into the
// single run(source, state) entry the CLI drives.
package lox

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kristofer/glox/internal/interpreter"
	"github.com/kristofer/glox/internal/lexer"
	"github.com/kristofer/glox/internal/loxerr"
	"github.com/kristofer/glox/internal/parser"
)

// FailureKind classifies why Run returned an error, so the CLI can pick
// the right exit code: 65 for a static failure (scan or parse),
// a distinct non-zero code for a runtime failure.
type FailureKind int

const (
	// NoFailure means err was nil.
	NoFailure FailureKind = iota
	// StaticFailure means err came from the scanner or parser.
	StaticFailure
	// RuntimeFailure means err came from the interpreter.
	RuntimeFailure
)

// State is the interpreter session that persists across REPL entries:
// one global environment, carried across successive Run calls so
// top-level bindings accumulate the way a REPL user expects.
type State struct {
	itp *interpreter.Interpreter
}

// NewState creates a State that writes `print` output to sink and
// sources `clock` from clock.
func NewState(sink io.Writer, clock interpreter.Clock) *State {
	return &State{itp: interpreter.New(sink, clock)}
}

// Debugger exposes the session's call-breakpoint debugger so the CLI
// can arm it before running a script.
func (s *State) Debugger() *interpreter.Debugger {
	return s.itp.Debugger
}

// Run scans, parses, and evaluates source against state's persistent
// global environment. It returns the error and its FailureKind; nil
// error implies NoFailure.
func Run(state *State, source string) (FailureKind, error) {
	tokens, err := lexer.New(source).Scan()
	if err != nil {
		return StaticFailure, err
	}

	decls, err := parser.New(tokens).Parse()
	if err != nil {
		return StaticFailure, err
	}

	if err := state.itp.Run(decls); err != nil {
		if _, ok := err.(*loxerr.RuntimeError); ok {
			logrus.Debugf("lox: runtime error: %v", err)
		}
		return RuntimeFailure, err
	}
	return NoFailure, nil
}
