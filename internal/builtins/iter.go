package builtins

import (
	"fmt"

	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// iterableElements materializes any of the builtin iterable kinds into
// a plain slice. The tree-walking evaluator owns the general iteration
// protocol (iter()/next() over arbitrary objects); builtins only ever
// receive the fixed container kinds, so a direct type switch here is
// both simpler and avoids a dependency on the evaluator.
func iterableElements(v value.Value) ([]value.Value, *exception.Exception) {
	switch vv := v.(type) {
	case *value.List:
		return vv.Elements(), nil
	case *value.Tuple:
		return vv.Elements, nil
	case *value.Str:
		out := make([]value.Value, len(vv.Runes))
		for i, r := range vv.Runes {
			out[i] = value.NewStr(string(r))
		}
		return out, nil
	case *value.Bytes:
		out := make([]value.Value, len(vv.Value))
		for i, b := range vv.Value {
			out[i] = value.NewInt(int64(b))
		}
		return out, nil
	case *value.Dict:
		return vv.Keys(), nil
	case *value.Set:
		return vv.Elements(), nil
	case *value.FrozenSet:
		return vv.Elements, nil
	case *value.Range:
		return vv.Materialize(), nil
	default:
		return nil, typeError(fmt.Sprintf("'%s' object is not iterable", v.TypeName()))
	}
}

func lengthOf(v value.Value) (int, bool) {
	switch vv := v.(type) {
	case *value.List:
		return vv.Len(), true
	case *value.Tuple:
		return len(vv.Elements), true
	case *value.Str:
		return vv.Len(), true
	case *value.Bytes:
		return len(vv.Value), true
	case *value.Dict:
		return vv.Len(), true
	case *value.Set:
		return vv.Len(), true
	case *value.FrozenSet:
		return len(vv.Elements), true
	case *value.Range:
		return int(vv.Len()), true
	default:
		return 0, false
	}
}
