package eval

import (
	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

func (e *Evaluator) pushActive(exc *exception.Exception) {
	e.activeExceptions = append(e.activeExceptions, exc)
}

func (e *Evaluator) popActive() {
	if n := len(e.activeExceptions); n > 0 {
		e.activeExceptions = e.activeExceptions[:n-1]
	}
}

func (e *Evaluator) currentActive() *exception.Exception {
	if n := len(e.activeExceptions); n > 0 {
		return e.activeExceptions[n-1]
	}
	return nil
}

// execRaise implements `raise`, `raise Exc(...)`, and `raise Exc from
// Cause`. A bare `raise` re-raises the exception currently being
// handled, or raises RuntimeError if none is active, matching
// CPython's "No active exception to re-raise" behavior.
func (e *Evaluator) execRaise(env *Environment, s *ast.Raise) *exception.Exception {
	if s.Exc == nil {
		if active := e.currentActive(); active != nil {
			return active
		}
		return exception.NewMessage(exception.RuntimeError, "No active exception to re-raise")
	}
	v, exc := e.evalExpr(env, s.Exc)
	if exc != nil {
		return exc
	}
	target, ok := v.(*exception.Exception)
	if !ok {
		if ty, ok := v.(*value.Type); ok && exception.Valid(exception.Kind(ty.Name)) {
			target = exception.New(exception.Kind(ty.Name))
		} else {
			return exception.NewMessage(exception.TypeError, "exceptions must derive from BaseException")
		}
	}
	if s.Cause != nil {
		causeVal, exc := e.evalExpr(env, s.Cause)
		if exc != nil {
			return exc
		}
		if cause, ok := causeVal.(*exception.Exception); ok {
			target.SetCause(cause)
		} else if value.IsNone(causeVal) {
			target.SuppressContext()
		}
	}
	if active := e.currentActive(); active != nil && target.Context == nil {
		target.Context = active
	}
	return target
}

// execTry implements try/except/else/finally. The finally block always
// runs, on every path (normal completion, exception, or a
// return/break/continue signal propagating out of the body or a
// handler), and a finally that itself produces a signal or exception
// overrides whatever was in flight.
func (e *Evaluator) execTry(env *Environment, s *ast.Try) (signal, *exception.Exception) {
	sig, exc := e.execBlock(env, s.Body)
	if exc != nil {
		handled := false
		var handlerSig signal
		var handlerExc *exception.Exception
		for _, h := range s.Handlers {
			matched, matchExc := e.matchesExceptionType(env, h.Type, exc)
			if matchExc != nil {
				return noSignal, e.runFinally(s.Finally, env, noSignal, matchExc)
			}
			if !matched {
				continue
			}
			handled = true
			handlerEnv := env
			if h.Name != "" {
				handlerEnv.BindLocal(h.Name, exc)
			}
			e.pushActive(exc)
			handlerSig, handlerExc = e.execBlock(handlerEnv, h.Body)
			e.popActive()
			if h.Name != "" {
				handlerEnv.Delete(h.Name)
			}
			break
		}
		if !handled {
			return noSignal, e.runFinally(s.Finally, env, noSignal, exc)
		}
		return e.finishTry(s, env, handlerSig, handlerExc)
	}
	if sig.kind != signalNone {
		return e.finishTry(s, env, sig, nil)
	}
	elseSig, elseExc := e.execBlock(env, s.Orelse)
	return e.finishTry(s, env, elseSig, elseExc)
}

func (e *Evaluator) finishTry(s *ast.Try, env *Environment, sig signal, exc *exception.Exception) (signal, *exception.Exception) {
	if len(s.Finally) == 0 {
		return sig, exc
	}
	finallySig, finallyExc := e.execBlock(env, s.Finally)
	if finallyExc != nil {
		return noSignal, finallyExc
	}
	if finallySig.kind != signalNone {
		return finallySig, nil
	}
	return sig, exc
}

// runFinally executes a finally block when the try body/handlers ended
// in an unhandled exception, letting the finally block's own outcome
// override it.
func (e *Evaluator) runFinally(finally []ast.Stmt, env *Environment, sig signal, exc *exception.Exception) *exception.Exception {
	if len(finally) == 0 {
		return exc
	}
	finallySig, finallyExc := e.execBlock(env, finally)
	if finallyExc != nil {
		return finallyExc
	}
	if finallySig.kind != signalNone {
		return nil
	}
	return exc
}

// matchesExceptionType evaluates an except clause's type expression
// (nil for bare `except:`, a single exception type, or a tuple of
// types) and reports whether exc matches.
func (e *Evaluator) matchesExceptionType(env *Environment, typeExpr ast.Expr, exc *exception.Exception) (bool, *exception.Exception) {
	if typeExpr == nil {
		return true, nil
	}
	v, evalExc := e.evalExpr(env, typeExpr)
	if evalExc != nil {
		return false, evalExc
	}
	switch t := v.(type) {
	case *value.Type:
		return exception.Valid(exception.Kind(t.Name)) && exception.IsSubKind(exc.ExcKind, exception.Kind(t.Name)), nil
	case *value.Tuple:
		for _, el := range t.Elements {
			if ty, ok := el.(*value.Type); ok && exception.IsSubKind(exc.ExcKind, exception.Kind(ty.Name)) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, exception.NewMessage(exception.TypeError, "catching classes that do not inherit from BaseException is not allowed")
}
