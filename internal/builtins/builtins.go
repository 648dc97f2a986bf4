// Package builtins implements the fixed set of global functions exposed
// to every script: abs, all, any, bin, chr, divmod, hash, hex, id,
// isinstance, len, max, min, oct, ord, pow, print, repr, round, sorted,
// sum. The set is closed; no other names live in the builtin
// namespace.
//
// Builtins that need to invoke a script-level callable (sorted's key,
// max/min's key) do so through the Caller interface rather than
// importing the evaluator package directly, the same inversion the
// teacher interpreter uses to let its stdlib call back into user code
// without an import cycle between the runtime and its builtin
// registry.
package builtins

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// Caller invokes a script callable with positional arguments. The
// evaluator implements this; builtins that accept a `key=` callback use
// it instead of calling into eval directly.
type Caller interface {
	Call(fn value.Value, args []value.Value) (value.Value, *exception.Exception)
}

// Stdout is the host-supplied sink for print(). The embedding API wires
// this to the OSAccess capability (or a default) before a run begins.
type Stdout interface {
	io.Writer
}

// Call is one builtin invocation: positional args plus any keyword
// arguments the call site supplied (sep/end for print, key/reverse for
// sorted/min/max).
type Call struct {
	Args   []value.Value
	Kwargs map[string]value.Value
}

// Func is the signature every builtin implements.
type Func func(caller Caller, stdout Stdout, call Call) (value.Value, *exception.Exception)

// Registry is the fixed table of builtin name -> implementation. It is
// a package-level var, not a constructor return, because the set is
// closed and never varies per Monty instance.
var Registry = map[string]Func{
	"abs":        biAbs,
	"all":        biAll,
	"any":        biAny,
	"bin":        biBin,
	"chr":        biChr,
	"divmod":     biDivmod,
	"hash":       biHash,
	"hex":        biHex,
	"id":         biID,
	"isinstance": biIsinstance,
	"len":        biLen,
	"max":        biMax,
	"min":        biMin,
	"oct":        biOct,
	"ord":        biOrd,
	"pow":        biPow,
	"print":      biPrint,
	"repr":       biRepr,
	"round":      biRound,
	"sorted":     biSorted,
	"sum":        biSum,
}

// Names returns the fixed builtin name set, sorted, for stub generation
// and CLI stub listing.
func Names() []string {
	out := make([]string, 0, len(Registry))
	for name := range Registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func argError(name string, want, got int) *exception.Exception {
	return exception.TypeErrorArgCount(name, want, got)
}

func typeError(msg string) *exception.Exception {
	return exception.NewMessage(exception.TypeError, msg)
}

func valueError(msg string) *exception.Exception {
	return exception.ValueErrorMessage(msg)
}

func biAbs(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	args := call.Args
	if len(args) != 1 {
		return nil, argError("abs", 1, len(args))
	}
	switch v := args[0].(type) {
	case *value.Int:
		return value.NewBigInt(v.Value.Abs()), nil
	case *value.Float:
		if v.Value < 0 {
			return value.NewFloat(-v.Value), nil
		}
		return v, nil
	case *value.Bool:
		if v.Value {
			return value.NewInt(1), nil
		}
		return value.NewInt(0), nil
	default:
		return nil, typeError(fmt.Sprintf("bad operand type for abs(): '%s'", args[0].TypeName()))
	}
}

func biAll(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	if len(call.Args) != 1 {
		return nil, argError("all", 1, len(call.Args))
	}
	elems, exc := iterableElements(call.Args[0])
	if exc != nil {
		return nil, exc
	}
	for _, e := range elems {
		if !value.Truthy(e) {
			return value.False, nil
		}
	}
	return value.True, nil
}

func biAny(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	if len(call.Args) != 1 {
		return nil, argError("any", 1, len(call.Args))
	}
	elems, exc := iterableElements(call.Args[0])
	if exc != nil {
		return nil, exc
	}
	for _, e := range elems {
		if value.Truthy(e) {
			return value.True, nil
		}
	}
	return value.False, nil
}

func biBin(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	n, exc := requireInt("bin", call.Args)
	if exc != nil {
		return nil, exc
	}
	sign := ""
	if n.Value.Sign() < 0 {
		sign = "-"
	}
	return value.NewStr(sign + "0b" + n.Value.Abs().Text(2)), nil
}

func biOct(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	n, exc := requireInt("oct", call.Args)
	if exc != nil {
		return nil, exc
	}
	sign := ""
	if n.Value.Sign() < 0 {
		sign = "-"
	}
	return value.NewStr(sign + "0o" + n.Value.Abs().Text(8)), nil
}

func biHex(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	n, exc := requireInt("hex", call.Args)
	if exc != nil {
		return nil, exc
	}
	sign := ""
	if n.Value.Sign() < 0 {
		sign = "-"
	}
	return value.NewStr(sign + "0x" + n.Value.Abs().Text(16)), nil
}

func requireInt(name string, args []value.Value) (*value.Int, *exception.Exception) {
	if len(args) != 1 {
		return nil, argError(name, 1, len(args))
	}
	n, ok := args[0].(*value.Int)
	if !ok {
		return nil, typeError(fmt.Sprintf("'%s' object cannot be interpreted as an integer", args[0].TypeName()))
	}
	return n, nil
}

func biChr(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	n, exc := requireInt("chr", call.Args)
	if exc != nil {
		return nil, exc
	}
	cp, ok := n.Value.Int64()
	if !ok || cp < 0 || cp > 0x10FFFF {
		return nil, valueError("chr() arg not in range(0x110000)")
	}
	return value.NewStr(string(rune(cp))), nil
}

func biOrd(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	args := call.Args
	if len(args) != 1 {
		return nil, argError("ord", 1, len(args))
	}
	s, ok := args[0].(*value.Str)
	if !ok || s.Len() != 1 {
		return nil, typeError(fmt.Sprintf("ord() expected a character, but string of length %d found", lenOrZero(args[0])))
	}
	return value.NewInt(int64(s.Runes[0])), nil
}

func lenOrZero(v value.Value) int {
	if s, ok := v.(*value.Str); ok {
		return s.Len()
	}
	return 0
}

func biDivmod(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	args := call.Args
	if len(args) != 2 {
		return nil, argError("divmod", 2, len(args))
	}
	a, aok := args[0].(*value.Int)
	b, bok := args[1].(*value.Int)
	if !aok || !bok {
		return nil, typeError(fmt.Sprintf(
			"unsupported operand type(s) for divmod(): '%s' and '%s'", args[0].TypeName(), args[1].TypeName()))
	}
	q, r, ok := a.Value.DivMod(b.Value)
	if !ok {
		return nil, exception.DivisionByZero("integer division or modulo by zero")
	}
	return value.NewTuple([]value.Value{value.NewBigInt(q), value.NewBigInt(r)}), nil
}

func biHash(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	if len(call.Args) != 1 {
		return nil, argError("hash", 1, len(call.Args))
	}
	h, err := value.Hash(call.Args[0])
	if err != nil {
		return nil, exception.TypeErrorUnhashable(call.Args[0].TypeName())
	}
	return value.NewInt(h), nil
}

func biID(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	if len(call.Args) != 1 {
		return nil, argError("id", 1, len(call.Args))
	}
	return value.NewInt(identityOf(call.Args[0])), nil
}

func biIsinstance(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	if len(call.Args) != 2 {
		return nil, argError("isinstance", 2, len(call.Args))
	}
	ok, exc := matchesType(call.Args[0], call.Args[1])
	if exc != nil {
		return nil, exc
	}
	return value.NewBool(ok), nil
}

func biLen(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	if len(call.Args) != 1 {
		return nil, argError("len", 1, len(call.Args))
	}
	n, ok := lengthOf(call.Args[0])
	if !ok {
		return nil, typeError(fmt.Sprintf("object of type '%s' has no len()", call.Args[0].TypeName()))
	}
	return value.NewInt(int64(n)), nil
}

func biPrint(_ Caller, stdout Stdout, call Call) (value.Value, *exception.Exception) {
	sep, end := " ", "\n"
	if v, ok := call.Kwargs["sep"]; ok {
		if s, ok := v.(*value.Str); ok {
			sep = s.String()
		}
	}
	if v, ok := call.Kwargs["end"]; ok {
		if s, ok := v.(*value.Str); ok {
			end = s.String()
		}
	}
	parts := make([]string, 0, len(call.Args))
	for _, a := range call.Args {
		parts = append(parts, Str(a))
	}
	if stdout != nil {
		_, _ = io.WriteString(stdout, strings.Join(parts, sep)+end)
	}
	return value.None, nil
}

func biRepr(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	if len(call.Args) != 1 {
		return nil, argError("repr", 1, len(call.Args))
	}
	return value.NewStr(Repr(call.Args[0])), nil
}

func biRound(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	args := call.Args
	if len(args) < 1 || len(args) > 2 {
		return nil, argError("round", 1, len(args))
	}
	ndigits := 0
	haveNdigits := false
	if len(args) == 2 && !value.IsNone(args[1]) {
		n, ok := args[1].(*value.Int)
		if !ok {
			return nil, typeError("'" + args[1].TypeName() + "' object cannot be interpreted as an integer")
		}
		v, _ := n.Value.Int64()
		ndigits = int(v)
		haveNdigits = true
	}
	return roundValue(args[0], ndigits, haveNdigits)
}

func biPow(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	args := call.Args
	if m, ok := call.Kwargs["mod"]; ok {
		args = append(append([]value.Value{}, args...), m)
	}
	if len(args) < 2 || len(args) > 3 {
		return nil, typeError("pow expected 2 or 3 arguments")
	}
	if len(args) == 3 {
		base, bok := args[0].(*value.Int)
		exp, eok := args[1].(*value.Int)
		mod, mok := args[2].(*value.Int)
		if !bok || !eok || !mok {
			return nil, typeError("pow() 3rd argument not allowed unless all arguments are integers")
		}
		if mod.Value.IsZero() {
			return nil, exception.DivisionByZero("pow() 3rd argument cannot be 0")
		}
		if exp.Value.Sign() < 0 {
			return nil, typeError("pow() 2nd argument cannot be negative when 3rd argument specified")
		}
		return value.NewBigInt(base.Value.PowMod(exp.Value, mod.Value)), nil
	}
	return numericPow(args[0], args[1])
}

func biSorted(caller Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	if len(call.Args) < 1 {
		return nil, argError("sorted", 1, len(call.Args))
	}
	elems, exc := iterableElements(call.Args[0])
	if exc != nil {
		return nil, exc
	}
	key := call.Kwargs["key"]
	reverse := false
	if r, ok := call.Kwargs["reverse"]; ok {
		reverse = value.Truthy(r)
	}
	out, exc := sortElements(caller, append([]value.Value(nil), elems...), key, reverse)
	if exc != nil {
		return nil, exc
	}
	return value.NewList(out), nil
}

func biSum(_ Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	args := call.Args
	if len(args) < 1 || len(args) > 2 {
		return nil, argError("sum", 1, len(args))
	}
	elems, exc := iterableElements(args[0])
	if exc != nil {
		return nil, exc
	}
	var acc value.Value = value.NewInt(0)
	if len(args) == 2 {
		acc = args[1]
	}
	for _, e := range elems {
		acc, exc = numericAdd(acc, e)
		if exc != nil {
			return nil, exc
		}
	}
	return acc, nil
}

func biMax(caller Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	return extremum(caller, call, "max", true)
}

func biMin(caller Caller, _ Stdout, call Call) (value.Value, *exception.Exception) {
	return extremum(caller, call, "min", false)
}

// identityOf gives every value a stable, distinct int64 for the
// lifetime of its backing Go object, matching the `id()` builtin's
// contract of uniqueness-while-alive without exposing a real pointer
// value to the script.
func identityOf(v value.Value) int64 {
	switch {
	case value.IsNone(v):
		return 0
	case v == value.Ellipsis:
		return 1
	case v == value.NotImplemented:
		return 2
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		return int64(rv.Pointer())
	}
	return 0
}
