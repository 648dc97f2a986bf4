package eval

import (
	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// comprehensionElements evaluates a comprehension's iterable in the
// enclosing scope and returns a fresh child scope for the clause's
// target/if/elt expressions, matching Python 3's own-scope
// comprehensions (the loop variable never leaks into the enclosing
// scope, even though this evaluator then eagerly drains every element
// instead of running a real generator — see the documented
// generator-expression-materializes-to-list deviation).
func (e *Evaluator) comprehensionElements(env *Environment, gen ast.Comprehension) (*Environment, []value.Value, *exception.Exception) {
	iterVal, exc := e.evalExpr(env, gen.Iter)
	if exc != nil {
		return nil, nil, exc
	}
	elems, exc := iterate(iterVal)
	if exc != nil {
		return nil, nil, exc
	}
	return NewChildEnvironment(env), elems, nil
}

func (e *Evaluator) evalListComp(env *Environment, c *ast.ListComp) (value.Value, *exception.Exception) {
	compEnv, elems, exc := e.comprehensionElements(env, c.Generator)
	if exc != nil {
		return nil, exc
	}
	out := []value.Value{}
	for _, item := range elems {
		if exc := e.bindTargetLocal(compEnv, c.Generator.Target, item); exc != nil {
			return nil, exc
		}
		keep, exc := e.evalCompIfs(compEnv, c.Generator.Ifs)
		if exc != nil {
			return nil, exc
		}
		if !keep {
			continue
		}
		v, exc := e.evalExpr(compEnv, c.Elt)
		if exc != nil {
			return nil, exc
		}
		out = append(out, v)
	}
	return value.NewList(out), nil
}

func (e *Evaluator) evalSetComp(env *Environment, c *ast.SetComp) (value.Value, *exception.Exception) {
	compEnv, elems, exc := e.comprehensionElements(env, c.Generator)
	if exc != nil {
		return nil, exc
	}
	out, _ := value.NewSet(nil)
	for _, item := range elems {
		if exc := e.bindTargetLocal(compEnv, c.Generator.Target, item); exc != nil {
			return nil, exc
		}
		keep, exc := e.evalCompIfs(compEnv, c.Generator.Ifs)
		if exc != nil {
			return nil, exc
		}
		if !keep {
			continue
		}
		v, exc := e.evalExpr(compEnv, c.Elt)
		if exc != nil {
			return nil, exc
		}
		if err := out.Add(v); err != nil {
			return nil, exception.TypeErrorUnhashable(v.TypeName())
		}
	}
	return out, nil
}

func (e *Evaluator) evalDictComp(env *Environment, c *ast.DictComp) (value.Value, *exception.Exception) {
	compEnv, elems, exc := e.comprehensionElements(env, c.Generator)
	if exc != nil {
		return nil, exc
	}
	out := value.NewDict()
	for _, item := range elems {
		if exc := e.bindTargetLocal(compEnv, c.Generator.Target, item); exc != nil {
			return nil, exc
		}
		keep, exc := e.evalCompIfs(compEnv, c.Generator.Ifs)
		if exc != nil {
			return nil, exc
		}
		if !keep {
			continue
		}
		k, exc := e.evalExpr(compEnv, c.Key)
		if exc != nil {
			return nil, exc
		}
		v, exc := e.evalExpr(compEnv, c.Value)
		if exc != nil {
			return nil, exc
		}
		if err := out.SetChecked(k, v); err != nil {
			return nil, exception.TypeErrorUnhashable(k.TypeName())
		}
	}
	return out, nil
}

// evalGeneratorExp materializes to a List per the documented deviation:
// there is no lazy generator protocol in this evaluator, so
// `sum(x*x for x in xs)` receives a fully built list, which every
// builtin already knows how to consume via iterate().
func (e *Evaluator) evalGeneratorExp(env *Environment, c *ast.GeneratorExp) (value.Value, *exception.Exception) {
	compEnv, elems, exc := e.comprehensionElements(env, c.Generator)
	if exc != nil {
		return nil, exc
	}
	out := []value.Value{}
	for _, item := range elems {
		if exc := e.bindTargetLocal(compEnv, c.Generator.Target, item); exc != nil {
			return nil, exc
		}
		keep, exc := e.evalCompIfs(compEnv, c.Generator.Ifs)
		if exc != nil {
			return nil, exc
		}
		if !keep {
			continue
		}
		v, exc := e.evalExpr(compEnv, c.Elt)
		if exc != nil {
			return nil, exc
		}
		out = append(out, v)
	}
	return value.NewList(out), nil
}

func (e *Evaluator) evalCompIfs(env *Environment, ifs []ast.Expr) (bool, *exception.Exception) {
	for _, ifExpr := range ifs {
		cond, exc := e.evalExpr(env, ifExpr)
		if exc != nil {
			return false, exc
		}
		if !value.Truthy(cond) {
			return false, nil
		}
	}
	return true, nil
}
