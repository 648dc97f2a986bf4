// Package monty is the embedding API §6 describes: a host process hands
// Monty a source string and a set of named inputs, gets back the value
// of the script's final expression (or a structured error), and may
// supply capability callbacks for everything the evaluator itself
// never touches directly (the clock, stdout/stderr). The shape mirrors
// the reference embedding's `Monty(source, script_name=...).run(os=...)`
// call pattern, named to match exactly (see
// datetime_planning_test.go).
package monty

import (
	"fmt"
	"io"

	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/bridge"
	"github.com/mwildehahn/monty/internal/datetime"
	"github.com/mwildehahn/monty/internal/eval"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/parser"
	"github.com/sirupsen/logrus"
)

// Monty is a compiled-once script, ready to run any number of times
// with different inputs and capabilities (§6 "Embedding API").
type Monty struct {
	inputs     []string
	scriptName string
	module     *ast.Module
}

// New parses source and returns a Monty ready to run. inputs names the
// free variables the script expects run() to supply; scriptName is
// purely diagnostic (it names the "file" in tracebacks and parse
// errors) and defaults to "<monty>".
func New(source string, inputs []string, scriptName string) (*Monty, error) {
	if scriptName == "" {
		scriptName = "<monty>"
	}
	mod, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("monty: parse %s: %w", scriptName, err)
	}
	return &Monty{inputs: inputs, scriptName: scriptName, module: mod}, nil
}

// OSAccess is the capability struct §6 describes: a bundle of optional
// host callbacks. A nil field is an absent capability; an operation
// that needs it raises OSError naming the missing capability rather
// than silently degrading (§5 "OSAccess capability").
type OSAccess struct {
	// ClockLocal returns the civil local date/time and the local UTC
	// offset in seconds, backing date.today()/datetime.now().
	ClockLocal func() (year, month, day, hour, minute, second, microsecond int, utcOffsetSeconds int64)
	StdoutWrite func(p []byte)
	StderrWrite func(p []byte)
}

func (o *OSAccess) clock() datetime.Clock {
	return func() (datetime.DateTime, int64) {
		year, month, day, hour, minute, second, micro, offset := o.ClockLocal()
		return datetime.DateTime{
			D: datetime.Date{Year: year, Month: month, Day: day},
			T: datetime.Time{Hour: hour, Minute: minute, Second: second, Microsecond: micro},
		}, offset
	}
}

type writerFunc func(p []byte)

func (w writerFunc) Write(p []byte) (int, error) {
	w(p)
	return len(p), nil
}

// RunOptions carries everything Instance.run accepts beyond the named
// inputs: the OSAccess capabilities, an explicit stdout sink (takes
// priority over os.stdout_write, matching the reference signature's
// separate `stdout` parameter), the resource Limits, a cancellation
// hook, and a diagnostic logger. Seed is accepted for embedding-API
// parity (§6's `seed: u64?`); this evaluator's Dict/Set are
// insertion-order-backed rather than hash-bucketed (§4.4), so a fixed
// seed is not actually load-bearing for iteration-order determinism —
// see DESIGN.md.
type RunOptions struct {
	OS        *OSAccess
	Stdout    io.Writer
	Seed      *uint64
	Limits    eval.Limits
	Cancelled func() bool
	Log       *logrus.Logger
}

// Run executes the script once against the given named inputs,
// returning the host-converted value of the script's final expression.
func (m *Monty) Run(inputs map[string]interface{}, opts RunOptions) (interface{}, error) {
	stdout := resolveStdout(opts)

	var clock datetime.Clock
	clockMissing := false
	if opts.OS != nil {
		if opts.OS.ClockLocal != nil {
			clock = opts.OS.clock()
		} else {
			clockMissing = true
		}
	}

	ev := eval.NewWithClock(m.scriptName, opts.Limits, stdout, opts.Cancelled, opts.Log, clock)
	ev.ClockMissing = clockMissing

	for _, name := range m.inputs {
		hostVal, ok := inputs[name]
		if !ok {
			return nil, fmt.Errorf("monty: run: missing input %q", name)
		}
		sv, err := bridge.ToSandbox(hostVal)
		if err != nil {
			return nil, fmt.Errorf("monty: run: converting input %q: %w", name, err)
		}
		ev.Globals.Assign(name, sv)
	}

	result, exc := ev.Run(m.module)
	if exc != nil {
		return nil, &ScriptError{Exc: exc}
	}
	hostVal, err := bridge.FromSandbox(result)
	if err != nil {
		return nil, fmt.Errorf("monty: run: converting result: %w", err)
	}
	return hostVal, nil
}

func resolveStdout(opts RunOptions) io.Writer {
	if opts.Stdout != nil {
		return opts.Stdout
	}
	if opts.OS != nil && opts.OS.StdoutWrite != nil {
		return writerFunc(opts.OS.StdoutWrite)
	}
	return io.Discard
}

// ScriptError wraps an uncaught script exception (§7 "Script
// exceptions"): the host sees the kind, message, and traceback, never
// a raw Go panic.
type ScriptError struct {
	Exc *exception.Exception
}

func (e *ScriptError) Error() string { return e.Exc.String() }
