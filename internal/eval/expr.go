package eval

import (
	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/bigint"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

func (e *Evaluator) evalExpr(env *Environment, expr ast.Expr) (value.Value, *exception.Exception) {
	switch ex := expr.(type) {
	case *ast.Name:
		if v, ok := env.Lookup(ex.Id); ok {
			return v, nil
		}
		if v, ok := resolveGlobalName(ex.Id); ok {
			return v, nil
		}
		return nil, exception.NameErrorUndefined(ex.Id)
	case *ast.NumberLit:
		if ex.IsFloat {
			return value.NewFloat(ex.Float), nil
		}
		n, err := bigint.Parse(ex.IntText)
		if err != nil {
			return nil, exception.NewMessage(exception.ValueError, "invalid integer literal")
		}
		return value.NewBigInt(n), nil
	case *ast.StringLit:
		return value.NewStr(ex.Value), nil
	case *ast.BytesLit:
		return value.NewBytes(ex.Value), nil
	case *ast.BoolLit:
		return value.NewBool(ex.Value), nil
	case *ast.NoneLit:
		return value.None, nil
	case *ast.EllipsisLit:
		return value.Ellipsis, nil
	case *ast.ListLit:
		elems, exc := e.evalExprList(env, ex.Elts)
		if exc != nil {
			return nil, exc
		}
		return value.NewList(elems), nil
	case *ast.TupleLit:
		elems, exc := e.evalExprList(env, ex.Elts)
		if exc != nil {
			return nil, exc
		}
		return value.NewTuple(elems), nil
	case *ast.SetLit:
		elems, exc := e.evalExprList(env, ex.Elts)
		if exc != nil {
			return nil, exc
		}
		s, _ := value.NewSet(nil)
		for _, v := range elems {
			if err := s.Add(v); err != nil {
				return nil, exception.TypeErrorUnhashable(v.TypeName())
			}
		}
		return s, nil
	case *ast.DictLit:
		d := value.NewDict()
		for i, kExpr := range ex.Keys {
			k, exc := e.evalExpr(env, kExpr)
			if exc != nil {
				return nil, exc
			}
			v, exc := e.evalExpr(env, ex.Values[i])
			if exc != nil {
				return nil, exc
			}
			if err := d.SetChecked(k, v); err != nil {
				return nil, exception.TypeErrorUnhashable(k.TypeName())
			}
		}
		return d, nil
	case *ast.BinOp:
		left, exc := e.evalExpr(env, ex.Left)
		if exc != nil {
			return nil, exc
		}
		right, exc := e.evalExpr(env, ex.Right)
		if exc != nil {
			return nil, exc
		}
		return binOp(ex.Op, left, right)
	case *ast.UnaryOp:
		v, exc := e.evalExpr(env, ex.Operand)
		if exc != nil {
			return nil, exc
		}
		return unaryOp(ex.Op, v)
	case *ast.BoolOp:
		var last value.Value = value.None
		for _, sub := range ex.Values {
			v, exc := e.evalExpr(env, sub)
			if exc != nil {
				return nil, exc
			}
			last = v
			if ex.Op == "and" && !value.Truthy(v) {
				return v, nil
			}
			if ex.Op == "or" && value.Truthy(v) {
				return v, nil
			}
		}
		return last, nil
	case *ast.Compare:
		return e.evalCompare(env, ex)
	case *ast.Call:
		return e.evalCall(env, ex)
	case *ast.Attribute:
		recv, exc := e.evalExpr(env, ex.Value)
		if exc != nil {
			return nil, exc
		}
		return e.evalAttribute(recv, ex.Attr)
	case *ast.Subscript:
		container, exc := e.evalExpr(env, ex.Value)
		if exc != nil {
			return nil, exc
		}
		idx, exc := e.evalSubscriptIndex(env, ex.Index)
		if exc != nil {
			return nil, exc
		}
		return subscriptGet(container, idx)
	case *ast.IfExp:
		cond, exc := e.evalExpr(env, ex.Test)
		if exc != nil {
			return nil, exc
		}
		if value.Truthy(cond) {
			return e.evalExpr(env, ex.Body)
		}
		return e.evalExpr(env, ex.Orelse)
	case *ast.Lambda:
		return &value.Function{
			Name:    "<lambda>",
			Code:    &funcCode{params: ex.Params, exprBody: ex.Body},
			Closure: &closureScope{env: env},
		}, nil
	case *ast.ListComp:
		return e.evalListComp(env, ex)
	case *ast.SetComp:
		return e.evalSetComp(env, ex)
	case *ast.DictComp:
		return e.evalDictComp(env, ex)
	case *ast.GeneratorExp:
		return e.evalGeneratorExp(env, ex)
	}
	return nil, exception.NewMessage(exception.RuntimeError, "unhandled expression")
}

func (e *Evaluator) evalExprList(env *Environment, exprs []ast.Expr) ([]value.Value, *exception.Exception) {
	out := make([]value.Value, 0, len(exprs))
	for _, ex := range exprs {
		v, exc := e.evalExpr(env, ex)
		if exc != nil {
			return nil, exc
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *Evaluator) evalCompare(env *Environment, ex *ast.Compare) (value.Value, *exception.Exception) {
	left, exc := e.evalExpr(env, ex.Left)
	if exc != nil {
		return nil, exc
	}
	for i, op := range ex.Ops {
		right, exc := e.evalExpr(env, ex.Comparators[i])
		if exc != nil {
			return nil, exc
		}
		var ok bool
		switch op {
		case "in":
			ok, exc = containsOp(right, left)
		case "not in":
			ok, exc = containsOp(right, left)
			ok = !ok
		case "is":
			ok = value.Is(left, right)
		case "is not":
			ok = !value.Is(left, right)
		default:
			ok, exc = compareOp(op, left, right)
		}
		if exc != nil {
			return nil, exc
		}
		if !ok {
			return value.False, nil
		}
		left = right
	}
	return value.True, nil
}

// evalAttribute resolves `receiver.attr`: first the `datetime` module
// members and the fields of its date/time values, then the small fixed
// set of exception data fields (args, plus __cause__/__context__ chaining),
// then the native method tables for builtin container/string/bytes
// types. There is no user-defined class system, so any other receiver
// simply has no attributes.
func (e *Evaluator) evalAttribute(receiver value.Value, attr string) (value.Value, *exception.Exception) {
	if v, exc, ok := e.evalDatetimeAttribute(receiver, attr); ok {
		return v, exc
	}
	if exc, ok := receiver.(*exception.Exception); ok {
		switch attr {
		case "args":
			return value.NewTuple(append([]value.Value{}, exc.Args...)), nil
		case "__cause__":
			if exc.Cause == nil {
				return value.None, nil
			}
			return exc.Cause, nil
		case "__context__":
			if exc.Context == nil {
				return value.None, nil
			}
			return exc.Context, nil
		}
	}
	if m, ok := lookupMethod(receiver, attr); ok {
		return m, nil
	}
	return nil, exception.AttributeErrorMissing(receiver.TypeName(), attr)
}
