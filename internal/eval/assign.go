package eval

import (
	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// bindLeaf is how a destructured target's individual name gets written:
// Environment.Assign for ordinary assignment (honors global/nonlocal),
// Environment.BindLocal for comprehension targets and function
// parameters (always local, per §4.5/§9).
type bindLeaf func(env *Environment, name string, v value.Value)

func assignByRule(env *Environment, name string, v value.Value) { env.Assign(name, v) }
func bindLocalRule(env *Environment, name string, v value.Value) { env.BindLocal(name, v) }

// assignTarget implements a single assignment target, recursing through
// tuple/list destructuring and dispatching subscript/attribute targets
// to their container.
func (e *Evaluator) assignTarget(env *Environment, target ast.Expr, v value.Value, bind bindLeaf) *exception.Exception {
	switch t := target.(type) {
	case *ast.Name:
		bind(env, t.Id, v)
		return nil
	case *ast.TupleLit:
		return e.destructure(env, t.Elts, v, bind)
	case *ast.ListLit:
		return e.destructure(env, t.Elts, v, bind)
	case *ast.Subscript:
		container, exc := e.evalExpr(env, t.Value)
		if exc != nil {
			return exc
		}
		idx, exc := e.evalSubscriptIndex(env, t.Index)
		if exc != nil {
			return exc
		}
		return subscriptSet(container, idx, v)
	case *ast.Attribute:
		return exception.NewMessage(exception.TypeError,
			"'"+t.Attr+"' object does not support attribute assignment")
	}
	return exception.NewMessage(exception.SyntaxError, "invalid assignment target")
}

func (e *Evaluator) destructure(env *Environment, targets []ast.Expr, v value.Value, bind bindLeaf) *exception.Exception {
	elems, exc := iterate(v)
	if exc != nil {
		return exc
	}
	if len(elems) < len(targets) {
		return exception.ValueErrorMessage("not enough values to unpack")
	}
	if len(elems) > len(targets) {
		return exception.ValueErrorMessage("too many values to unpack")
	}
	for i, t := range targets {
		if exc := e.assignTarget(env, t, elems[i], bind); exc != nil {
			return exc
		}
	}
	return nil
}

// bindTargetLocal binds a comprehension/for-loop-style target always in
// the local scope, bypassing global/nonlocal declarations.
func (e *Evaluator) bindTargetLocal(env *Environment, target ast.Expr, v value.Value) *exception.Exception {
	return e.assignTarget(env, target, v, bindLocalRule)
}
