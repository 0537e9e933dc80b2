package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kristofer/glox/internal/value"
)

// Debugger adapts the bytecode VM's breakpoint/step debugger to the
// tree-walking interpreter: instead of pausing at an instruction
// pointer, it pauses at the line of a call expression's closing paren
// (ast.Call.Line is the only line number the AST carries), which is
// the only point Interpreter already has a natural hook (evalCall).
type Debugger struct {
	itp         *Interpreter
	breakpoints map[int]bool
	stepMode    bool
	enabled     bool
	in          *bufio.Scanner
	out         io.Writer
	callDepth   int
}

// NewDebugger creates a disabled Debugger over itp. Enable turns it on;
// until then shouldPause always reports false and evalCall's hook is a
// no-op.
func NewDebugger(itp *Interpreter) *Debugger {
	return &Debugger{
		itp:         itp,
		breakpoints: make(map[int]bool),
		in:          bufio.NewScanner(os.Stdin),
		out:         os.Stdout,
	}
}

// Enable activates the debugger.
func (d *Debugger) Enable() { d.enabled = true }

// SetStepMode enables or disables pausing before every call.
func (d *Debugger) SetStepMode(enabled bool) { d.stepMode = enabled }

// AddBreakpoint arms a pause every time a user-function call closes on
// line; the breakpoint stays armed until RemoveBreakpoint.
func (d *Debugger) AddBreakpoint(line int) { d.breakpoints[line] = true }

// RemoveBreakpoint disarms a previously armed breakpoint.
func (d *Debugger) RemoveBreakpoint(line int) { delete(d.breakpoints, line) }

// shouldPause reports whether evalCall at the given line should stop
// for interaction.
func (d *Debugger) shouldPause(line int) bool {
	if !d.enabled {
		return false
	}
	return d.stepMode || d.breakpoints[line]
}

// onCall is invoked by evalCall right before a function's body runs. It
// blocks in an interactive prompt when paused; env is the frame about
// to execute, for "locals" inspection.
func (d *Debugger) onCall(name string, line int, env envLookup) {
	d.callDepth++
	if d.shouldPause(line) {
		d.prompt(name, line, env)
	}
}

func (d *Debugger) onReturn() {
	d.callDepth--
}

// envLookup is the slice of Environment this package needs without
// importing the concrete type into the debugger's narrow interface.
type envLookup interface {
	Bindings() map[string]value.Value
}

func (d *Debugger) prompt(name string, line int, env envLookup) {
	fmt.Fprintf(d.out, "\n=== paused: entering %s at line %d (depth %d) ===\n", name, line, d.callDepth)
	for {
		fmt.Fprint(d.out, "debug> ")
		if !d.in.Scan() {
			d.enabled = false
			return
		}
		fields := strings.Fields(d.in.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "help", "h", "?":
			d.printHelp()
		case "continue", "c":
			d.stepMode = false
			return
		case "step", "s":
			d.stepMode = true
			return
		case "locals", "l":
			d.showLocals(env)
		case "break", "b":
			if len(fields) < 2 {
				fmt.Fprintln(d.out, "Usage: break <line>")
				continue
			}
			ln, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintln(d.out, "Invalid line number")
				continue
			}
			d.AddBreakpoint(ln)
			fmt.Fprintf(d.out, "Breakpoint set at line %d\n", ln)
		case "delete", "d":
			if len(fields) < 2 {
				fmt.Fprintln(d.out, "Usage: delete <line>")
				continue
			}
			ln, err := strconv.Atoi(fields[1])
			if err == nil {
				d.RemoveBreakpoint(ln)
			}
		case "quit", "q":
			d.enabled = false
			return
		default:
			fmt.Fprintf(d.out, "Unknown command: %s (type 'help')\n", fields[0])
		}
	}
}

func (d *Debugger) showLocals(env envLookup) {
	bindings := env.Bindings()
	if len(bindings) == 0 {
		fmt.Fprintln(d.out, "  (none)")
		return
	}
	for name, v := range bindings {
		fmt.Fprintf(d.out, "  %s = %s\n", name, value.Display(v))
	}
}

func (d *Debugger) printHelp() {
	fmt.Fprintln(d.out, "Debugger commands:")
	fmt.Fprintln(d.out, "  help, h, ?       Show this help")
	fmt.Fprintln(d.out, "  continue, c      Resume execution")
	fmt.Fprintln(d.out, "  step, s          Pause before every call")
	fmt.Fprintln(d.out, "  locals, l        Show bindings in the paused call frame")
	fmt.Fprintln(d.out, "  break <line>, b  Break when a call closes on line")
	fmt.Fprintln(d.out, "  delete <line>, d Remove a breakpoint")
	fmt.Fprintln(d.out, "  quit, q          Disable the debugger and run to completion")
}
