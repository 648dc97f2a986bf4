package eval

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/mwildehahn/monty/internal/bigint"
	"github.com/mwildehahn/monty/internal/builtins"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// constructType implements calling a value.Type as a conversion/
// constructor function: int(x), str(x), list(iterable), dict(), and so
// on. These are not part of the builtins.Registry (§4.6's fixed
// function set is closed and does not include the type names), but
// CPython scripts rely on them constantly, so evaluating `int("3")`
// needs to work the same way calling a Name that resolved to a type
// does.
func (e *Evaluator) constructType(ty *value.Type, args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	switch ty.Name {
	case "bool":
		if len(args) == 0 {
			return value.False, nil
		}
		return value.NewBool(value.Truthy(args[0])), nil
	case "int":
		return constructInt(args)
	case "float":
		return constructFloat(args)
	case "str":
		if len(args) == 0 {
			return value.NewStr(""), nil
		}
		return value.NewStr(builtins.Str(args[0])), nil
	case "bytes":
		return constructBytes(args, kwargs)
	case "list":
		if len(args) == 0 {
			return value.NewList(nil), nil
		}
		elems, exc := iterate(args[0])
		if exc != nil {
			return nil, exc
		}
		return value.NewList(append([]value.Value{}, elems...)), nil
	case "tuple":
		if len(args) == 0 {
			return value.NewTuple(nil), nil
		}
		elems, exc := iterate(args[0])
		if exc != nil {
			return nil, exc
		}
		return value.NewTuple(elems), nil
	case "dict":
		if len(args) == 0 {
			return value.NewDict(), nil
		}
		elems, exc := iterate(args[0])
		if exc != nil {
			return nil, exc
		}
		out := value.NewDict()
		for _, pair := range elems {
			tup, ok := pair.(*value.Tuple)
			if !ok || len(tup.Elements) != 2 {
				return nil, exception.ValueErrorMessage("dictionary update sequence element has wrong length")
			}
			if err := out.SetChecked(tup.Elements[0], tup.Elements[1]); err != nil {
				return nil, exception.TypeErrorUnhashable(tup.Elements[0].TypeName())
			}
		}
		return out, nil
	case "set":
		if len(args) == 0 {
			return mustSet(nil), nil
		}
		elems, exc := iterate(args[0])
		if exc != nil {
			return nil, exc
		}
		s, err := value.NewSet(elems)
		if err != nil {
			return nil, exception.TypeErrorUnhashable(args[0].TypeName())
		}
		return s, nil
	case "frozenset":
		if len(args) == 0 {
			fs, _ := value.NewFrozenSet(nil)
			return fs, nil
		}
		elems, exc := iterate(args[0])
		if exc != nil {
			return nil, exc
		}
		fs, err := value.NewFrozenSet(elems)
		if err != nil {
			return nil, exception.TypeErrorUnhashable(args[0].TypeName())
		}
		return fs, nil
	case "range":
		return constructRange(args)
	case "type":
		if len(args) != 1 {
			return nil, exception.TypeErrorArgCount("type", 1, len(args))
		}
		if exc, ok := args[0].(*exception.Exception); ok {
			return &value.Type{Name: string(exc.ExcKind)}, nil
		}
		return &value.Type{Name: args[0].TypeName()}, nil
	}
	if exception.Valid(exception.Kind(ty.Name)) {
		return exception.New(exception.Kind(ty.Name), args...), nil
	}
	return nil, exception.TypeErrorNotCallable(ty.Name)
}

func mustSet(elems []value.Value) *value.Set {
	s, _ := value.NewSet(elems)
	return s
}

func constructInt(args []value.Value) (value.Value, *exception.Exception) {
	if len(args) == 0 {
		return value.NewInt(0), nil
	}
	if len(args) == 2 {
		s, ok := args[0].(*value.Str)
		baseInt, bok := value.AsIntValue(args[1])
		if !ok || !bok {
			return nil, exception.TypeErrorBadOperandUnary("int", args[0].TypeName())
		}
		b, _ := baseInt.Int64()
		z, ok := new(big.Int).SetString(strings.TrimSpace(s.String()), int(b))
		if !ok {
			return nil, exception.ValueErrorMessage("invalid literal for int() with base " + strconv.FormatInt(b, 10) + ": " + builtins.Repr(s))
		}
		return value.NewBigInt(bigint.FromBigInt(z)), nil
	}
	switch v := args[0].(type) {
	case *value.Int:
		return v, nil
	case *value.Bool:
		iv, _ := value.AsIntValue(v)
		return value.NewBigInt(iv), nil
	case *value.Float:
		z, _ := big.NewFloat(v.Value).Int(nil)
		return value.NewBigInt(bigint.FromBigInt(z)), nil
	case *value.Str:
		n, err := bigint.Parse(strings.TrimSpace(v.String()))
		if err != nil {
			return nil, exception.ValueErrorMessage("invalid literal for int() with base 10: " + builtins.Repr(v))
		}
		return value.NewBigInt(n), nil
	}
	return nil, exception.TypeErrorBadOperandUnary("int", args[0].TypeName())
}

func constructFloat(args []value.Value) (value.Value, *exception.Exception) {
	if len(args) == 0 {
		return value.NewFloat(0), nil
	}
	switch v := args[0].(type) {
	case *value.Float:
		return v, nil
	case *value.Int:
		return value.NewFloat(v.Value.Float64()), nil
	case *value.Bool:
		if v.Value {
			return value.NewFloat(1), nil
		}
		return value.NewFloat(0), nil
	case *value.Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return nil, exception.ValueErrorMessage("could not convert string to float: " + builtins.Repr(v))
		}
		return value.NewFloat(f), nil
	}
	return nil, exception.TypeErrorBadOperandUnary("float", args[0].TypeName())
}

func constructBytes(args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	if len(args) == 0 {
		return value.NewBytes(nil), nil
	}
	switch v := args[0].(type) {
	case *value.Bytes:
		return v, nil
	case *value.Str:
		return value.NewBytes([]byte(v.String())), nil
	case *value.Int:
		n, ok := v.Value.Int64()
		if !ok || n < 0 {
			return nil, exception.ValueErrorMessage("negative count")
		}
		return value.NewBytes(make([]byte, n)), nil
	}
	elems, exc := iterate(args[0])
	if exc != nil {
		return nil, exc
	}
	out := make([]byte, 0, len(elems))
	for _, e := range elems {
		n, ok := value.AsIntValue(e)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("bytes", e.TypeName())
		}
		iv, _ := n.Int64()
		out = append(out, byte(iv))
	}
	return value.NewBytes(out), nil
}

func constructRange(args []value.Value) (value.Value, *exception.Exception) {
	ints := make([]int64, len(args))
	for i, a := range args {
		n, ok := value.AsIntValue(a)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("range", a.TypeName())
		}
		iv, _ := n.Int64()
		ints[i] = iv
	}
	switch len(ints) {
	case 1:
		return value.NewRange(0, ints[0], 1), nil
	case 2:
		return value.NewRange(ints[0], ints[1], 1), nil
	case 3:
		if ints[2] == 0 {
			return nil, exception.ValueErrorMessage("range() arg 3 must not be zero")
		}
		return value.NewRange(ints[0], ints[1], ints[2]), nil
	}
	return nil, exception.TypeErrorArgCount("range", 1, len(args))
}
