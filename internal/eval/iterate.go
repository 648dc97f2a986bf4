package eval

import (
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// iterate materializes every element an iterable `for` target or
// comprehension clause walks over. Generator expressions are already
// eager per the documented materialize-to-list deviation, so there is
// no separate lazy iterator object anywhere in this evaluator: looping
// constructs only ever need the fully expanded element list.
func iterate(v value.Value) ([]value.Value, *exception.Exception) {
	switch vv := v.(type) {
	case *value.List:
		return append([]value.Value{}, vv.Elements()...), nil
	case *value.Tuple:
		return append([]value.Value{}, vv.Elements...), nil
	case *value.Str:
		out := make([]value.Value, len(vv.Runes))
		for i, r := range vv.Runes {
			out[i] = value.NewStrFromRunes([]rune{r})
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
		return append([]value.Value{}, vv.Elements()...), nil
	case *value.FrozenSet:
		return append([]value.Value{}, vv.Elements...), nil
	case *value.Range:
		return vv.Materialize(), nil
	}
	return nil, exception.TypeErrorNotIterable(v.TypeName())
}
