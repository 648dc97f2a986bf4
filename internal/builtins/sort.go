package builtins

import (
	"sort"

	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// sortElements implements the shared core of sorted() and list.sort():
// a stable sort by either the elements themselves or by a per-element
// key computed once up front (Python's decorate-sort-undecorate, done
// here without the decoration since we keep the computed keys
// alongside the elements instead).
func sortElements(caller Caller, elems []value.Value, key value.Value, reverse bool) ([]value.Value, *exception.Exception) {
	keys := elems
	if key != nil && !value.IsNone(key) {
		keys = make([]value.Value, len(elems))
		for i, e := range elems {
			k, exc := caller.Call(key, []value.Value{e})
			if exc != nil {
				return nil, exc
			}
			keys[i] = k
		}
	}

	var sortErr *exception.Exception
	idx := make([]int, len(elems))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := value.Less(keys[idx[i]], keys[idx[j]])
		if err != nil {
			sortErr = typeError(err.Error())
			return false
		}
		if reverse {
			greater, err := value.Less(keys[idx[j]], keys[idx[i]])
			if err != nil {
				sortErr = typeError(err.Error())
				return false
			}
			return greater
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}

	out := make([]value.Value, len(elems))
	for i, k := range idx {
		out[i] = elems[k]
	}
	return out, nil
}

// extremum implements max()/min(), which both accept either a single
// iterable argument or two-or-more positional candidates, plus an
// optional `key` and `default` keyword.
func extremum(caller Caller, call Call, name string, wantMax bool) (value.Value, *exception.Exception) {
	var candidates []value.Value
	if len(call.Args) == 1 {
		elems, exc := iterableElements(call.Args[0])
		if exc != nil {
			return nil, exc
		}
		candidates = elems
	} else {
		candidates = call.Args
	}

	if len(candidates) == 0 {
		if def, ok := call.Kwargs["default"]; ok {
			return def, nil
		}
		return nil, typeError(name + "() arg is an empty sequence")
	}

	key := call.Kwargs["key"]
	keyOf := func(v value.Value) (value.Value, *exception.Exception) {
		if key == nil || value.IsNone(key) {
			return v, nil
		}
		return caller.Call(key, []value.Value{v})
	}

	best := candidates[0]
	bestKey, exc := keyOf(best)
	if exc != nil {
		return nil, exc
	}
	for _, c := range candidates[1:] {
		k, exc := keyOf(c)
		if exc != nil {
			return nil, exc
		}
		var cmp bool
		var err error
		if wantMax {
			cmp, err = value.Less(bestKey, k)
		} else {
			cmp, err = value.Less(k, bestKey)
		}
		if err != nil {
			return nil, typeError(err.Error())
		}
		if cmp {
			best, bestKey = c, k
		}
	}
	return best, nil
}
