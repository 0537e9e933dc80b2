package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kristofer/glox/internal/lox"
)

const version = "0.1.0"

func main() {
	debug := flag.Bool("debug", false, "enable verbose lexer/parser/interpreter tracing")
	showVersion := flag.Bool("version", false, "print the glox version and exit")
	breakLine := flag.Int("break", 0, "pause in the call debugger when a call closes on this line (0 disables)")
	flag.Usage = printUsage
	flag.Parse()

	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if *showVersion {
		fmt.Printf("glox version %s\n", version)
		return
	}

	args := flag.Args()
	switch len(args) {
	case 0:
		runREPL(*breakLine)
	case 1:
		runFile(args[0], *breakLine)
	default:
		printUsage()
		os.Exit(64)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: glox [-debug] [-version] [script]")
}

// runFile loads and executes a single script. A scan or parse failure
// exits 65; a runtime failure during top-level execution exits 70 —
// distinct codes so callers can tell static errors from execution
// errors.
func runFile(path string, breakLine int) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(65)
	}

	state := lox.NewState(os.Stdout, systemClock)
	if breakLine > 0 {
		state.Debugger().Enable()
		state.Debugger().AddBreakpoint(breakLine)
	}
	kind, err := lox.Run(state, string(data))
	switch kind {
	case lox.StaticFailure:
		fmt.Fprint(os.Stderr, err)
		os.Exit(65)
	case lox.RuntimeFailure:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(70)
	}
}

// runREPL reads one line at a time, evaluating each as its own program
// against a persistent State so top-level var/fun declarations remain
// visible to later lines. Blank lines are skipped. A runtime error
// prints and the prompt resumes; a static (scan/parse) error on one
// line likewise never terminates the session.
func runREPL(breakLine int) {
	state := lox.NewState(os.Stdout, systemClock)
	if breakLine > 0 {
		state.Debugger().Enable()
		state.Debugger().AddBreakpoint(breakLine)
	}
	in := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		line := in.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := lox.Run(state, line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	if err := in.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
}

func systemClock() float64 {
	return float64(time.Now().UnixMilli()) / 1000
}
