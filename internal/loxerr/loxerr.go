// Package loxerr collects the three error kinds the interpreter produces:
// lexical errors, parse errors, and runtime errors. Lexical and parse
// errors share a line-carrying SyntaxError and accumulate into a Report
// backed by a *multierror.Error. Runtime errors and the non-local
// `return` control-flow signal are represented separately since the
// evaluator only ever has one of them in flight.
package loxerr

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// SyntaxError is a single lexical or parse failure at a known source line.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[Line %d] Error: %s", e.Line, e.Message)
}

// Report aggregates SyntaxErrors produced by the scanner or the parser.
// It is backed by a *multierror.Error so callers who want errors.Is /
// errors.As composability still get it, but String/Error render the
// spec-mandated one-per-line "[Line L] Error: MESSAGE" format rather
// than multierror's default bulleted summary.
type Report struct {
	merr *multierror.Error
}

// Push appends a syntax error to the report.
func (r *Report) Push(line int, format string, args ...any) {
	r.merr = multierror.Append(r.merr, &SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)})
}

// IsEmpty reports whether no errors have been pushed.
func (r *Report) IsEmpty() bool {
	return r.merr == nil || len(r.merr.Errors) == 0
}

// Errors returns the individual SyntaxErrors in push order.
func (r *Report) Errors() []*SyntaxError {
	if r.merr == nil {
		return nil
	}
	out := make([]*SyntaxError, 0, len(r.merr.Errors))
	for _, e := range r.merr.Errors {
		if se, ok := e.(*SyntaxError); ok {
			out = append(out, se)
		}
	}
	return out
}

// String renders the report as one "[Line L] Error: MESSAGE" line per
// error.
func (r *Report) String() string {
	var b strings.Builder
	for _, e := range r.Errors() {
		b.WriteString(e.Error())
		b.WriteByte('\n')
	}
	return b.String()
}

// AsError returns the report as an error, or nil if it is empty. The
// returned error's Error() method uses String(), not multierror's
// default format.
func (r *Report) AsError() error {
	if r.IsEmpty() {
		return nil
	}
	return reportError{r}
}

type reportError struct{ r *Report }

func (re reportError) Error() string { return re.r.String() }

// Unwrap exposes the underlying *multierror.Error so errors.Is and
// errors.As can reach the individual SyntaxErrors.
func (re reportError) Unwrap() error { return re.r.merr }

// RuntimeError is a runtime failure: undefined variable, wrong operand
// type, wrong arity, calling a non-callable. It terminates the current
// script (or REPL entry); the top-level Run entry returns it to its
// caller, which prints it.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime error: %s", e.Message)
}

// Newf constructs a RuntimeError with a formatted message.
func Newf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}
