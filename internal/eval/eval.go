// Package eval ties the Environment, call stack, operator semantics,
// and builtin method tables together into the tree-walking evaluator
// described by §4.5-§4.9 of the core specification: statement and
// expression dispatch over the AST, function call machinery with
// lexical closures, the control-flow and exception-propagation
// signals, and the iteration/comprehension protocols.
package eval

import (
	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/builtins"
	"github.com/mwildehahn/monty/internal/datetime"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/logging"
	"github.com/mwildehahn/monty/internal/value"
	"github.com/sirupsen/logrus"
)

// defaultClock backs date.today()/datetime.now() when the host supplies
// no clock: a fixed civil time so a script run with no embedding
// customization is still fully deterministic, per §4.7 "Clock source".
var defaultClock = datetime.FixedClock(datetime.DateTime{
	D: datetime.Date{Year: 2023, Month: 11, Day: 14},
	T: datetime.Time{Hour: 22, Minute: 13, Second: 20},
}, 0)

// Limits bounds the resources a single run may consume (§5 "Resource
// limits"): call-stack depth and — in a future pass, once the arena
// tracks allocation — live memory. Zero means unbounded.
type Limits struct {
	MaxCallDepth int
	MaxMemory    int64
}

// Evaluator is one script run: the module environment, the call stack
// used for recursion-limit enforcement and tracebacks, the builtin
// registry's I/O sink, and the cooperative-cancellation hook checked at
// every loop iteration and function call (§5 "Cancellation").
type Evaluator struct {
	Globals   *Environment
	Stack     *callStack
	Stdout    builtins.Stdout
	FileName  string
	Cancelled func() bool
	Log       *logrus.Logger
	Clock     datetime.Clock

	// ClockMissing marks that the host supplied an OSAccess capability
	// struct with no clock_local callback, so date.today()/datetime.now()
	// must raise OSError rather than fall back to Clock (§5 "OSAccess
	// capability"). Left false when the host supplies no capability
	// object at all, in which case Clock is the deterministic default.
	ClockMissing bool

	// activeExceptions is the stack of exceptions currently being
	// handled by an enclosing `except` block, consulted by bare `raise`
	// (re-raise) and by implicit __context__ chaining when a new
	// exception is raised while one is already in flight.
	activeExceptions []*exception.Exception
}

// New creates an Evaluator ready to run a module. stdout may be nil
// (print() then discards output); cancelled may be nil (never
// cancels); log may be nil (diagnostics are discarded).
func New(fileName string, limits Limits, stdout builtins.Stdout, cancelled func() bool) *Evaluator {
	return NewWithLogger(fileName, limits, stdout, cancelled, nil)
}

// NewWithLogger is New plus an explicit diagnostic logger, the form
// pkg/monty's embedding API uses so the host can route evaluator-level
// diagnostics (recursion-limit trips, cancellation) wherever it likes.
func NewWithLogger(fileName string, limits Limits, stdout builtins.Stdout, cancelled func() bool, log *logrus.Logger) *Evaluator {
	return NewWithClock(fileName, limits, stdout, cancelled, log, nil)
}

// NewWithClock is NewWithLogger plus an explicit clock backing
// date.today()/datetime.now() (§4.7 "Clock source"); clock may be nil,
// in which case a fixed deterministic civil time is used so scripts
// never read the OS clock implicitly.
func NewWithClock(fileName string, limits Limits, stdout builtins.Stdout, cancelled func() bool, log *logrus.Logger, clock datetime.Clock) *Evaluator {
	if cancelled == nil {
		cancelled = func() bool { return false }
	}
	if log == nil {
		log = logging.Noop()
	}
	if clock == nil {
		clock = defaultClock
	}
	log.WithFields(logrus.Fields{"file": fileName, "max_call_depth": limits.MaxCallDepth}).Debug("evaluator created")
	return &Evaluator{
		Globals:   NewModuleEnvironment(),
		Stack:     newCallStack(limits.MaxCallDepth),
		Stdout:    stdout,
		FileName:  fileName,
		Cancelled: cancelled,
		Log:       log,
		Clock:     clock,
	}
}

// Run executes a module's top-level statements in the module scope and
// returns the value of the final expression statement, if the module
// ends with one (the embedding API's "script as expression" shape);
// otherwise it returns None.
func (e *Evaluator) Run(mod *ast.Module) (value.Value, *exception.Exception) {
	var result value.Value = value.None
	for i, stmt := range mod.Body {
		if es, ok := stmt.(*ast.ExprStmt); ok && i == len(mod.Body)-1 {
			v, exc := e.evalExpr(e.Globals, es.Value)
			if exc != nil {
				return nil, exc
			}
			result = v
			continue
		}
		sig, exc := e.execStmt(e.Globals, stmt)
		if exc != nil {
			return nil, exc
		}
		if sig.kind != signalNone {
			break
		}
		result = value.None
	}
	return result, nil
}

func (e *Evaluator) checkCancelled() *exception.Exception {
	if e.Cancelled() {
		e.Log.Debug("run cancelled by host")
		return exception.New(exception.KeyboardInterrupt)
	}
	return nil
}

// ---- statement dispatch ----

func (e *Evaluator) execBlock(env *Environment, stmts []ast.Stmt) (signal, *exception.Exception) {
	for _, stmt := range stmts {
		sig, exc := e.execStmt(env, stmt)
		if exc != nil {
			return noSignal, exc
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (e *Evaluator) execStmt(env *Environment, stmt ast.Stmt) (signal, *exception.Exception) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, exc := e.evalExpr(env, s.Value)
		return noSignal, exc
	case *ast.Assign:
		v, exc := e.evalExpr(env, s.Value)
		if exc != nil {
			return noSignal, exc
		}
		for _, t := range s.Targets {
			if exc := e.assignTarget(env, t, v, assignByRule); exc != nil {
				return noSignal, exc
			}
		}
		return noSignal, nil
	case *ast.AugAssign:
		return noSignal, e.execAugAssign(env, s)
	case *ast.AnnAssign:
		if s.Value == nil {
			return noSignal, nil
		}
		v, exc := e.evalExpr(env, s.Value)
		if exc != nil {
			return noSignal, exc
		}
		return noSignal, e.assignTarget(env, s.Target, v, assignByRule)
	case *ast.If:
		cond, exc := e.evalExpr(env, s.Test)
		if exc != nil {
			return noSignal, exc
		}
		if value.Truthy(cond) {
			return e.execBlock(env, s.Body)
		}
		return e.execBlock(env, s.Orelse)
	case *ast.While:
		return e.execWhile(env, s)
	case *ast.For:
		return e.execFor(env, s)
	case *ast.FunctionDef:
		fn := &value.Function{
			Name:    s.Name,
			Code:    &funcCode{params: s.Params, body: s.Body},
			Closure: &closureScope{env: env},
		}
		env.Assign(s.Name, fn)
		return noSignal, nil
	case *ast.Return:
		if s.Value == nil {
			return signal{kind: signalReturn, value: value.None}, nil
		}
		v, exc := e.evalExpr(env, s.Value)
		if exc != nil {
			return noSignal, exc
		}
		return signal{kind: signalReturn, value: v}, nil
	case *ast.Break:
		return signal{kind: signalBreak}, nil
	case *ast.Continue:
		return signal{kind: signalContinue}, nil
	case *ast.Pass:
		return noSignal, nil
	case *ast.Raise:
		return noSignal, e.execRaise(env, s)
	case *ast.Try:
		return e.execTry(env, s)
	case *ast.With:
		return e.execWith(env, s)
	case *ast.Global:
		for _, n := range s.Names {
			env.declareGlobal(n)
		}
		return noSignal, nil
	case *ast.Nonlocal:
		for _, n := range s.Names {
			env.declareNonlocal(n)
		}
		return noSignal, nil
	case *ast.Assert:
		cond, exc := e.evalExpr(env, s.Test)
		if exc != nil {
			return noSignal, exc
		}
		if !value.Truthy(cond) {
			if s.Msg != nil {
				msg, exc := e.evalExpr(env, s.Msg)
				if exc != nil {
					return noSignal, exc
				}
				return noSignal, exception.New(exception.AssertionError, msg)
			}
			return noSignal, exception.New(exception.AssertionError)
		}
		return noSignal, nil
	case *ast.Import:
		name := s.Alias
		if name == "" {
			name = s.Module
		}
		env.Assign(name, &value.ModuleRef{Name: s.Module})
		return noSignal, nil
	}
	return noSignal, exception.NewMessage(exception.RuntimeError, "unhandled statement")
}

func (e *Evaluator) execWhile(env *Environment, s *ast.While) (signal, *exception.Exception) {
	for {
		if exc := e.checkCancelled(); exc != nil {
			return noSignal, exc
		}
		cond, exc := e.evalExpr(env, s.Test)
		if exc != nil {
			return noSignal, exc
		}
		if !value.Truthy(cond) {
			return e.execBlock(env, s.Orelse)
		}
		sig, exc := e.execBlock(env, s.Body)
		if exc != nil {
			return noSignal, exc
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalReturn:
			return sig, nil
		}
	}
}

func (e *Evaluator) execFor(env *Environment, s *ast.For) (signal, *exception.Exception) {
	iterVal, exc := e.evalExpr(env, s.Iter)
	if exc != nil {
		return noSignal, exc
	}
	elems, exc := iterate(iterVal)
	if exc != nil {
		return noSignal, exc
	}
	for _, item := range elems {
		if exc := e.checkCancelled(); exc != nil {
			return noSignal, exc
		}
		if exc := e.assignTarget(env, s.Target, item, assignByRule); exc != nil {
			return noSignal, exc
		}
		sig, exc := e.execBlock(env, s.Body)
		if exc != nil {
			return noSignal, exc
		}
		if sig.kind == signalBreak {
			return noSignal, nil
		}
		if sig.kind == signalReturn {
			return sig, nil
		}
	}
	return e.execBlock(env, s.Orelse)
}

func (e *Evaluator) execAugAssign(env *Environment, s *ast.AugAssign) *exception.Exception {
	cur, exc := e.evalExpr(env, s.Target)
	if exc != nil {
		return exc
	}
	rhs, exc := e.evalExpr(env, s.Value)
	if exc != nil {
		return exc
	}
	result, exc := binOp(s.Op, cur, rhs)
	if exc != nil {
		return exc
	}
	return e.assignTarget(env, s.Target, result, assignByRule)
}
