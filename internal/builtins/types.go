package builtins

import (
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// matchesType implements isinstance(v, T): T may be a single Type
// object or a Tuple of Type objects (any match succeeds), and for
// Exception values it honors the closed exception hierarchy instead of
// exact-kind matching.
func matchesType(v, t value.Value) (bool, *exception.Exception) {
	if tup, ok := t.(*value.Tuple); ok {
		for _, elem := range tup.Elements {
			ok, exc := matchesType(v, elem)
			if exc != nil {
				return false, exc
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	if attr, ok := t.(*value.ModuleAttr); ok {
		return valueTypeName(v) == attr.Attr, nil
	}

	ty, ok := t.(*value.Type)
	if !ok {
		return false, typeError("isinstance() arg 2 must be a type, a tuple of types, or a union")
	}

	if exc, ok := v.(*exception.Exception); ok {
		if kind := exception.Kind(ty.Name); exception.Valid(kind) {
			return exc.IsSubKind(kind), nil
		}
		return false, nil
	}

	return valueTypeName(v) == ty.Name, nil
}

// valueTypeName returns the script-visible type name for v, matching
// the names isinstance() and type() expose (these coincide with
// Value.TypeName() for every builtin kind in this model).
func valueTypeName(v value.Value) string {
	return v.TypeName()
}
