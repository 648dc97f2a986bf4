// Package bridge converts host Go values into sandbox value.Value and
// back, the boundary described by §4.8: on entry each host value is
// converted per a fixed table (subtyping collapsed to the nearest
// supported base, Bool never demoted to Int); on exit the reverse
// conversion produces plain Go values an embedder can consume directly
// or hand to encoding/json.
package bridge

import (
	"fmt"
	"math/big"

	"github.com/mwildehahn/monty/internal/bigint"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// ToSandbox converts a host value into its sandbox representation
// (§4.8's entry table). Lists and dicts are accepted only as
// []interface{} and map[string]interface{} (converted recursively);
// slices and maps of any other element type are rejected as unsupported.
func ToSandbox(v interface{}) (value.Value, error) {
	switch x := v.(type) {
	case nil:
		return value.None, nil
	case bool:
		return value.NewBool(x), nil
	case int:
		return value.NewInt(int64(x)), nil
	case int8:
		return value.NewInt(int64(x)), nil
	case int16:
		return value.NewInt(int64(x)), nil
	case int32:
		return value.NewInt(int64(x)), nil
	case int64:
		return value.NewInt(x), nil
	case uint:
		return value.NewBigInt(bigint.FromBigInt(new(big.Int).SetUint64(uint64(x)))), nil
	case uint64:
		return value.NewBigInt(bigint.FromBigInt(new(big.Int).SetUint64(x))), nil
	case *big.Int:
		return value.NewBigInt(bigint.FromBigInt(x)), nil
	case bigint.Int:
		return value.NewBigInt(x), nil
	case float32:
		return value.NewFloat(float64(x)), nil
	case float64:
		return value.NewFloat(x), nil
	case string:
		return value.NewStr(x), nil
	case []byte:
		return value.NewBytes(x), nil
	case MontyEllipsis:
		return value.Ellipsis, nil
	case []interface{}:
		elems, err := toSandboxSlice(x)
		if err != nil {
			return nil, err
		}
		return value.NewList(elems), nil
	case Tuple:
		elems, err := toSandboxSlice(x)
		if err != nil {
			return nil, err
		}
		return value.NewTuple(elems), nil
	case map[string]interface{}:
		d := value.NewDict()
		for _, k := range sortedKeys(x) {
			sv, err := ToSandbox(x[k])
			if err != nil {
				return nil, err
			}
			if err := d.SetChecked(value.NewStr(k), sv); err != nil {
				return nil, err
			}
		}
		return d, nil
	case Set:
		elems, err := toSandboxSlice([]interface{}(x))
		if err != nil {
			return nil, err
		}
		s, err := value.NewSet(elems)
		if err != nil {
			return nil, err
		}
		return s, nil
	case FrozenSet:
		elems, err := toSandboxSlice([]interface{}(x))
		if err != nil {
			return nil, err
		}
		fs, err := value.NewFrozenSet(elems)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case HostException:
		return exception.New(exception.Kind(x.Kind), mustToSandboxAll(x.Args)...), nil
	}
	return nil, fmt.Errorf("bridge: unsupported host value of type %T", v)
}

// MontyEllipsis is the host-side stand-in for Python's `...` singleton.
type MontyEllipsis struct{}

// Tuple is the host-side marker distinguishing a tuple input from a
// plain list; Go has no native tuple type, so this wrapper is how a
// caller selects Tuple over List on entry.
type Tuple []interface{}

// Set and FrozenSet are host-side markers for the two sandbox set
// kinds, for the same reason as Tuple.
type Set []interface{}
type FrozenSet []interface{}

// HostException lets a host construct a pre-built sandbox exception
// (e.g. to inject a capability failure) without going through script
// code.
type HostException struct {
	Kind string
	Args []interface{}
}

func toSandboxSlice(elems []interface{}) ([]value.Value, error) {
	out := make([]value.Value, len(elems))
	for i, e := range elems {
		sv, err := ToSandbox(e)
		if err != nil {
			return nil, err
		}
		out[i] = sv
	}
	return out, nil
}

func mustToSandboxAll(elems []interface{}) []value.Value {
	out, err := toSandboxSlice(elems)
	if err != nil {
		out = nil
	}
	return out
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// insertion order isn't available from a Go map; sort so dict
	// construction is at least reproducible across runs for a given
	// key set, rather than subject to Go's randomized map iteration.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
