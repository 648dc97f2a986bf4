package eval

import (
	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/builtins"
	"github.com/mwildehahn/monty/internal/errors"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// evalCall evaluates a Call expression: positional args, keyword args,
// and the callee, then dispatches by the callee's concrete kind.
func (e *Evaluator) evalCall(env *Environment, ex *ast.Call) (value.Value, *exception.Exception) {
	fn, exc := e.evalExpr(env, ex.Func)
	if exc != nil {
		return nil, exc
	}
	args, exc := e.evalExprList(env, ex.Args)
	if exc != nil {
		return nil, exc
	}
	if ex.Starargs != nil {
		extra, exc := e.evalExpr(env, ex.Starargs)
		if exc != nil {
			return nil, exc
		}
		elems, exc := iterate(extra)
		if exc != nil {
			return nil, exc
		}
		args = append(args, elems...)
	}
	var kwargs map[string]value.Value
	if len(ex.Kwargs) > 0 {
		kwargs = make(map[string]value.Value, len(ex.Kwargs))
		for name, kExpr := range ex.Kwargs {
			v, exc := e.evalExpr(env, kExpr)
			if exc != nil {
				return nil, exc
			}
			kwargs[name] = v
		}
	}
	return e.callValueAt(fn, args, kwargs, ex.Pos())
}

// Call implements builtins.Caller for callbacks invoked without keyword
// arguments (sorted's key=, max/min's key=).
func (e *Evaluator) Call(fn value.Value, args []value.Value) (value.Value, *exception.Exception) {
	return e.callValue(fn, args, nil)
}

func (e *Evaluator) callValue(fn value.Value, args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	return e.callValueAt(fn, args, kwargs, errors.Position{})
}

func (e *Evaluator) callValueAt(fn value.Value, args []value.Value, kwargs map[string]value.Value, pos errors.Position) (value.Value, *exception.Exception) {
	switch f := fn.(type) {
	case *value.Function:
		return e.callFunction(f, args, kwargs, pos)
	case *value.BuiltinFunction:
		impl, ok := builtins.Registry[f.Name]
		if !ok {
			return nil, exception.TypeErrorNotCallable(fn.TypeName())
		}
		return impl(e, e.Stdout, builtins.Call{Args: args, Kwargs: kwargs})
	case *value.BoundMethod:
		if desc, ok := f.Descriptor.(*nativeMethodDescriptor); ok {
			return e.callNativeMethod(f.Receiver, desc.name, args, kwargs)
		}
		if userFn, ok := f.Descriptor.(*value.Function); ok {
			return e.callFunction(userFn, append([]value.Value{f.Receiver}, args...), kwargs, pos)
		}
		return nil, exception.TypeErrorNotCallable(fn.TypeName())
	case *value.Type:
		return e.constructType(f, args, kwargs)
	case *value.ModuleAttr:
		return e.callModuleAttr(f, args, kwargs)
	}
	return nil, exception.TypeErrorNotCallable(fn.TypeName())
}

func (e *Evaluator) callFunction(fn *value.Function, args []value.Value, kwargs map[string]value.Value, pos errors.Position) (value.Value, *exception.Exception) {
	if exc := e.checkCancelled(); exc != nil {
		return nil, exc
	}
	closure, _ := fn.Closure.(*closureScope)
	parentEnv := e.Globals
	if closure != nil {
		parentEnv = closure.env
	}
	if !e.Stack.push(fn.Name, e.FileName, pos) {
		e.Log.WithField("function", fn.Name).Warn("recursion limit exceeded")
		return nil, exception.New(exception.RecursionError)
	}
	defer e.Stack.pop()

	callEnv := NewChildEnvironment(parentEnv)
	code := fn.Code.(*funcCode)
	if exc := e.bindCallArgs(callEnv, parentEnv, code.params, args, kwargs); exc != nil {
		return nil, exc
	}
	if code.exprBody != nil {
		return e.evalExpr(callEnv, code.exprBody)
	}
	sig, exc := e.execBlock(callEnv, code.body)
	if exc != nil {
		return nil, exc
	}
	if sig.kind == signalReturn {
		return sig.value, nil
	}
	return value.None, nil
}

// bindCallArgs binds positional and keyword arguments to a function's
// parameter list. A default expression is evaluated in the function's
// defining scope each time it is needed, rather than once at def time;
// this differs from CPython for a default built from a mutating
// expression, a case the language subset this evaluator targets does
// not exercise.
func (e *Evaluator) bindCallArgs(env, defScope *Environment, params []ast.Param, args []value.Value, kwargs map[string]value.Value) *exception.Exception {
	if len(args) > len(params) {
		return exception.TypeErrorArgCount("<call>", len(params), len(args))
	}
	for i, p := range params {
		if i < len(args) {
			env.BindLocal(p.Name, args[i])
			continue
		}
		if v, ok := kwargs[p.Name]; ok {
			env.BindLocal(p.Name, v)
			continue
		}
		if p.Default != nil {
			v, exc := e.evalExpr(defScope, p.Default)
			if exc != nil {
				return exc
			}
			env.BindLocal(p.Name, v)
			continue
		}
		return exception.NewMessage(exception.TypeError, "missing required argument: '"+p.Name+"'")
	}
	return nil
}
