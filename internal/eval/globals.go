package eval

import (
	"github.com/mwildehahn/monty/internal/builtins"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// typeNames lists the builtin type names a bare Name expression resolves
// to (as a first-class value.Type), beyond the closed exception
// hierarchy. These are the types isinstance()/except clauses/the
// conversion-call constructors (int(x), list(x), ...) all refer to by
// name.
var typeNames = []string{
	"bool", "int", "float", "str", "bytes",
	"list", "tuple", "dict", "set", "frozenset",
	"range", "slice", "type", "function", "NoneType",
}

func isBuiltinTypeName(name string) bool {
	for _, n := range typeNames {
		if n == name {
			return true
		}
	}
	return false
}

// resolveGlobalName implements the last two tiers of §4.5's read
// resolution order, tried once Environment.Lookup has failed: the fixed
// builtin function table, then the builtin type names and the closed
// exception hierarchy (both exposed as value.Type so `except ValueError`
// and `isinstance(x, int)` resolve the same way a user-written `Name`
// lookup would).
func resolveGlobalName(name string) (value.Value, bool) {
	if _, ok := builtins.Registry[name]; ok {
		return &value.BuiltinFunction{Name: name}, true
	}
	if isBuiltinTypeName(name) {
		return &value.Type{Name: name}, true
	}
	if exception.Valid(exception.Kind(name)) {
		return &value.Type{Name: name}, true
	}
	return nil, false
}
