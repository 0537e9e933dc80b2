package interpreter

import "github.com/kristofer/glox/internal/value"

// defineBuiltins registers every native function into the global
// environment. clock is the only built-in this language defines; it reports
// seconds since the Unix epoch through the interpreter's injected Clock
// so tests can supply a deterministic source.
func (itp *Interpreter) defineBuiltins() {
	itp.Globals.Define("clock", &value.NativeCallable{
		FnName:  "clock",
		FnArity: 0,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Number(itp.Clock()), nil
		},
	})
}
