// Package eval implements the tree-walking evaluator: scope resolution,
// control flow, the iteration protocol, and exception propagation over
// the AST produced by the parser package.
//
// The design follows the teacher interpreter's separation between a
// runtime environment (name -> value bindings, chained to an enclosing
// scope) and a call stack of frames used purely for diagnostics. Unlike
// the teacher's case-insensitive identifier map, names here are
// case-sensitive and there is no global symbol table: resolution is
// the rule in §4.5 of the specification (local, then the
// statically captured closure chain, then module globals, then
// builtins).
package eval

import "github.com/mwildehahn/monty/internal/value"

// Environment is one function activation's local scope, or the module
// top level. It never itself stores module globals or builtins; those
// live once per Evaluator and are consulted by name-resolution helpers
// that take an Environment plus its owning Evaluator.
type Environment struct {
	vars     map[string]value.Value
	parent   *Environment // lexically enclosing function scope, nil at module level
	globals  *Environment // the module-level scope, shared by every frame in one run
	isModule bool

	// global/nonlocal declare a name as referring to an outer scope for
	// both reads and writes within this Environment, overriding the
	// normal local-binds-on-assignment rule.
	declaredGlobal   map[string]bool
	declaredNonlocal map[string]bool
}

// NewModuleEnvironment creates the top-level scope for a run.
func NewModuleEnvironment() *Environment {
	env := &Environment{vars: make(map[string]value.Value), isModule: true}
	env.globals = env
	return env
}

// NewChildEnvironment creates a function activation's scope, lexically
// enclosed by parent (the scope active where the function was
// defined, not the caller's scope — this is what makes closures work).
func NewChildEnvironment(parent *Environment) *Environment {
	return &Environment{
		vars:    make(map[string]value.Value),
		parent:  parent,
		globals: parent.globals,
	}
}

func (e *Environment) declareGlobal(name string) {
	if e.declaredGlobal == nil {
		e.declaredGlobal = make(map[string]bool)
	}
	e.declaredGlobal[name] = true
}

func (e *Environment) declareNonlocal(name string) {
	if e.declaredNonlocal == nil {
		e.declaredNonlocal = make(map[string]bool)
	}
	e.declaredNonlocal[name] = true
}

// Lookup implements the read resolution order: local scope, then each
// enclosing function scope in turn, then module globals. Builtins are
// not consulted here; the evaluator falls back to those itself once
// Lookup reports not found.
func (e *Environment) Lookup(name string) (value.Value, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.vars[name]; ok {
			return v, true
		}
		if scope.isModule {
			break
		}
	}
	if e != e.globals {
		if v, ok := e.globals.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign implements the write resolution rule: binds in the local
// scope unless name was declared global or nonlocal in this frame, in
// which case it writes through to module globals or the nearest
// enclosing scope that already binds the name, respectively.
func (e *Environment) Assign(name string, v value.Value) {
	if e.declaredGlobal[name] {
		e.globals.vars[name] = v
		return
	}
	if e.declaredNonlocal[name] {
		for scope := e.parent; scope != nil; scope = scope.parent {
			if _, ok := scope.vars[name]; ok {
				scope.vars[name] = v
				return
			}
			if scope.isModule {
				break
			}
		}
		// No enclosing binding yet (first assignment under a nonlocal
		// declaration with none outstanding): bind in the immediate
		// parent, matching CPython's compile-time requirement that a
		// binding must exist, relaxed here since there is no separate
		// compile pass.
		if e.parent != nil {
			e.parent.vars[name] = v
			return
		}
	}
	e.vars[name] = v
}

// Delete removes a binding from the local scope (del statement target).
func (e *Environment) Delete(name string) bool {
	if _, ok := e.vars[name]; ok {
		delete(e.vars, name)
		return true
	}
	return false
}

// BindLocal sets name directly in this scope's local bindings,
// bypassing global/nonlocal declarations. Used for function parameters,
// comprehension targets and `except ... as` names, which always bind
// locally; for-loop and with targets go through Assign instead.
func (e *Environment) BindLocal(name string, v value.Value) {
	e.vars[name] = v
}
