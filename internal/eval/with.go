package eval

import (
	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// execWith implements the context-manager protocol: __enter__ is called
// entering the block, __exit__ is guaranteed to run leaving it (whether
// the body completed normally, propagated a control-flow signal, or
// raised), and a truthy __exit__ return value suppresses an in-flight
// exception the way CPython's `with` does. Since there is no
// user-defined class system in this value model, only host-bridged
// objects can plausibly supply __enter__/__exit__; scripts cannot
// define their own context managers.
func (e *Evaluator) execWith(env *Environment, s *ast.With) (signal, *exception.Exception) {
	type active struct {
		mgr value.Value
	}
	var opened []active
	defer func() {
		for i := len(opened) - 1; i >= 0; i-- {
			_, _ = e.callMethodIfPresent(opened[i].mgr, "__exit__", []value.Value{value.None, value.None, value.None})
		}
	}()

	for _, item := range s.Items {
		mgr, exc := e.evalExpr(env, item.Context)
		if exc != nil {
			return noSignal, exc
		}
		enterVal, exc := e.callMethodIfPresent(mgr, "__enter__", nil)
		if exc != nil {
			return noSignal, exc
		}
		opened = append(opened, active{mgr: mgr})
		if item.Target != nil {
			if exc := e.assignTarget(env, item.Target, enterVal, assignByRule); exc != nil {
				return noSignal, exc
			}
		}
	}

	sig, bodyExc := e.execBlock(env, s.Body)

	for i := len(opened) - 1; i >= 0; i-- {
		var args []value.Value
		if bodyExc != nil {
			args = []value.Value{&value.Type{Name: string(bodyExc.ExcKind)}, bodyExc, value.None}
		} else {
			args = []value.Value{value.None, value.None, value.None}
		}
		result, exc := e.callMethodIfPresent(opened[i].mgr, "__exit__", args)
		if exc != nil {
			return noSignal, exc
		}
		if bodyExc != nil && result != nil && value.Truthy(result) {
			bodyExc = nil
		}
	}
	opened = nil // exit already ran above; the deferred cleanup becomes a no-op
	if bodyExc != nil {
		return noSignal, bodyExc
	}
	return sig, nil
}

func (e *Evaluator) callMethodIfPresent(receiver value.Value, name string, args []value.Value) (value.Value, *exception.Exception) {
	m, exc := e.evalAttribute(receiver, name)
	if exc != nil {
		return value.None, nil
	}
	return e.callValue(m, args, nil)
}
