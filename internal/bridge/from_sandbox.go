package bridge

import (
	"fmt"
	"math/big"

	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// FromSandbox converts a sandbox value back into a host Go value (the
// exit half of §4.8), the inverse of ToSandbox for every kind it
// produces. Collections round-trip as the same host-side marker types
// ToSandbox accepts, so `FromSandbox(ToSandbox(x))` is idempotent for
// every shape test_types.py exercises.
func FromSandbox(v value.Value) (interface{}, error) {
	switch x := v.(type) {
	case *value.Bool:
		return x.Value, nil
	case *value.Int:
		if n, ok := x.Value.Int64(); ok {
			return n, nil
		}
		n, _ := new(big.Int).SetString(x.Value.String(), 10)
		return n, nil
	case *value.Float:
		return x.Value, nil
	case *value.Str:
		return x.String(), nil
	case *value.Bytes:
		return append([]byte{}, x.Value...), nil
	case *value.List:
		return fromSandboxSlice(x.Elements())
	case *value.Tuple:
		elems, err := fromSandboxSlice(x.Elements)
		if err != nil {
			return nil, err
		}
		return Tuple(elems), nil
	case *value.Dict:
		out := make(map[string]interface{}, x.Len())
		for _, kv := range x.Items() {
			key, ok := kv[0].(*value.Str)
			if !ok {
				return nil, fmt.Errorf("bridge: non-string dict key %s cannot cross the host boundary", kv[0].TypeName())
			}
			hv, err := FromSandbox(kv[1])
			if err != nil {
				return nil, err
			}
			out[key.String()] = hv
		}
		return out, nil
	case *value.Set:
		elems, err := fromSandboxSlice(x.Elements())
		if err != nil {
			return nil, err
		}
		return Set(elems), nil
	case *value.FrozenSet:
		elems, err := fromSandboxSlice(x.Elements)
		if err != nil {
			return nil, err
		}
		return FrozenSet(elems), nil
	case *exception.Exception:
		args := make([]interface{}, len(x.Args))
		for i, a := range x.Args {
			hv, err := FromSandbox(a)
			if err != nil {
				return nil, err
			}
			args[i] = hv
		}
		return HostException{Kind: string(x.ExcKind), Args: args}, nil
	}
	if value.IsNone(v) {
		return nil, nil
	}
	if v == value.Ellipsis {
		return MontyEllipsis{}, nil
	}
	return nil, fmt.Errorf("bridge: sandbox value of type %s cannot cross the host boundary", v.TypeName())
}

func fromSandboxSlice(elems []value.Value) ([]interface{}, error) {
	out := make([]interface{}, len(elems))
	for i, e := range elems {
		hv, err := FromSandbox(e)
		if err != nil {
			return nil, err
		}
		out[i] = hv
	}
	return out, nil
}
