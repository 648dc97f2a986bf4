package eval

import (
	"math"
	"strings"

	"github.com/mwildehahn/monty/internal/bigint"
	"github.com/mwildehahn/monty/internal/builtins"
	"github.com/mwildehahn/monty/internal/datetime"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// binOp implements every `BinOp` per §4.1/§4.2/§4.3/§4.4: the numeric
// tower, sequence concatenation/repetition, and bitwise integer ops.
// Values decline (return a TypeError) rather than silently doing
// something wrong for any combination the spec doesn't define.
func binOp(op string, left, right value.Value) (value.Value, *exception.Exception) {
	switch op {
	case "+":
		return addOp(left, right)
	case "-":
		return subOp(left, right)
	case "*":
		return mulOp(left, right)
	case "/":
		return divOp(left, right)
	case "//":
		return floorDivOp(left, right)
	case "%":
		return modOp(left, right)
	case "**":
		return powOp(left, right)
	case "&":
		return bitOp(left, right, "&")
	case "|":
		return bitOp(left, right, "|")
	case "^":
		return bitOp(left, right, "^")
	case "<<":
		return shiftOp(left, right, true)
	case ">>":
		return shiftOp(left, right, false)
	case "@":
		return nil, unsupportedOperand("@", left, right)
	}
	return nil, exception.NewMessage(exception.RuntimeError, "unknown operator "+op)
}

func unsupportedOperand(op string, left, right value.Value) *exception.Exception {
	return exception.TypeErrorUnsupportedOperand(op, left.TypeName(), right.TypeName())
}

func bothBool(a, b value.Value) bool {
	_, okA := a.(*value.Bool)
	_, okB := b.(*value.Bool)
	return okA && okB
}

func numericBinOp(op string, left, right value.Value,
	intOp func(a, b bigint.Int) (value.Value, *exception.Exception),
	floatOp func(a, b float64) (value.Value, *exception.Exception)) (value.Value, *exception.Exception) {
	if !value.IsNumeric(left) || !value.IsNumeric(right) {
		return nil, unsupportedOperand(op, left, right)
	}
	_, lf := left.(*value.Float)
	_, rf := right.(*value.Float)
	if lf || rf {
		a, _ := value.AsFloat64(left)
		b, _ := value.AsFloat64(right)
		return floatOp(a, b)
	}
	a, _ := value.AsIntValue(left)
	b, _ := value.AsIntValue(right)
	return intOp(a, b)
}

func addOp(left, right value.Value) (value.Value, *exception.Exception) {
	switch l := left.(type) {
	case *value.Str:
		r, ok := right.(*value.Str)
		if !ok {
			return nil, unsupportedOperand("+", left, right)
		}
		return value.NewStrFromRunes(append(append([]rune{}, l.Runes...), r.Runes...)), nil
	case *value.Bytes:
		r, ok := right.(*value.Bytes)
		if !ok {
			return nil, unsupportedOperand("+", left, right)
		}
		out := append(append([]byte{}, l.Value...), r.Value...)
		return value.NewBytes(out), nil
	case *value.List:
		r, ok := right.(*value.List)
		if !ok {
			return nil, unsupportedOperand("+", left, right)
		}
		out := append(append([]value.Value{}, l.Elements()...), r.Elements()...)
		return value.NewList(out), nil
	case *value.Tuple:
		r, ok := right.(*value.Tuple)
		if !ok {
			return nil, unsupportedOperand("+", left, right)
		}
		out := append(append([]value.Value{}, l.Elements...), r.Elements...)
		return value.NewTuple(out), nil
	}
	if v, exc, ok := datetimeAddOp(left, right); ok {
		return v, exc
	}
	if value.IsNumeric(left) && value.IsNumeric(right) {
		return numericBinOp("+", left, right,
			func(a, b bigint.Int) (value.Value, *exception.Exception) { return value.NewBigInt(a.Add(b)), nil },
			func(a, b float64) (value.Value, *exception.Exception) { return value.NewFloat(a + b), nil })
	}
	return nil, unsupportedOperand("+", left, right)
}

// datetimeAddOp implements `date ± timedelta`, `datetime ± timedelta`,
// and `timedelta + timedelta` (§4.7 "Arithmetic"). The bool return
// reports whether either operand was a datetime-module value at all,
// so callers can fall through to the numeric tower otherwise.
func datetimeAddOp(left, right value.Value) (value.Value, *exception.Exception, bool) {
	switch l := left.(type) {
	case *value.Date:
		r, ok := right.(*value.TimeDelta)
		if !ok {
			return nil, unsupportedOperand("+", left, right), true
		}
		d, err := l.V.AddDelta(r.V)
		if err != nil {
			return nil, exception.NewMessage(exception.OverflowError, err.Error()), true
		}
		return &value.Date{V: d}, nil, true
	case *value.DateTime:
		r, ok := right.(*value.TimeDelta)
		if !ok {
			return nil, unsupportedOperand("+", left, right), true
		}
		dt, err := l.V.AddDelta(r.V)
		if err != nil {
			return nil, exception.NewMessage(exception.OverflowError, err.Error()), true
		}
		return &value.DateTime{V: dt}, nil, true
	case *value.TimeDelta:
		switch r := right.(type) {
		case *value.TimeDelta:
			td, err := datetime.NewTimeDelta(l.V.Days+r.V.Days, l.V.Seconds+r.V.Seconds, l.V.Microseconds+r.V.Microseconds)
			if err != nil {
				return nil, exception.NewMessage(exception.OverflowError, err.Error()), true
			}
			return &value.TimeDelta{V: td}, nil, true
		case *value.Date:
			d, err := r.V.AddDelta(l.V)
			if err != nil {
				return nil, exception.NewMessage(exception.OverflowError, err.Error()), true
			}
			return &value.Date{V: d}, nil, true
		case *value.DateTime:
			dt, err := r.V.AddDelta(l.V)
			if err != nil {
				return nil, exception.NewMessage(exception.OverflowError, err.Error()), true
			}
			return &value.DateTime{V: dt}, nil, true
		}
		return nil, unsupportedOperand("+", left, right), true
	}
	if _, ok := right.(*value.Date); ok {
		return nil, unsupportedOperand("+", left, right), true
	}
	if _, ok := right.(*value.DateTime); ok {
		return nil, unsupportedOperand("+", left, right), true
	}
	return nil, nil, false
}

func subOp(left, right value.Value) (value.Value, *exception.Exception) {
	if ls, ok := left.(*value.Set); ok {
		if rs, ok := right.(*value.Set); ok {
			return setDifference(ls, rs)
		}
	}
	if lf, ok := left.(*value.FrozenSet); ok {
		if rf, ok := right.(*value.FrozenSet); ok {
			s, err := value.NewSet(lf.Elements)
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			rset, err := value.NewSet(rf.Elements)
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			diff, exc := setDifference(s, rset)
			if exc != nil {
				return nil, exc
			}
			fs, err := value.NewFrozenSet(diff.(*value.Set).Elements())
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			return fs, nil
		}
	}
	if v, exc, ok := datetimeSubOp(left, right); ok {
		return v, exc
	}
	return numericBinOp("-", left, right,
		func(a, b bigint.Int) (value.Value, *exception.Exception) { return value.NewBigInt(a.Sub(b)), nil },
		func(a, b float64) (value.Value, *exception.Exception) { return value.NewFloat(a - b), nil })
}

// datetimeSubOp implements `date - timedelta`, `date - date`,
// `datetime - timedelta`, `datetime - datetime`, and
// `timedelta - timedelta` (§4.7 "Arithmetic").
func datetimeSubOp(left, right value.Value) (value.Value, *exception.Exception, bool) {
	switch l := left.(type) {
	case *value.Date:
		switch r := right.(type) {
		case *value.TimeDelta:
			neg, err := datetime.NewTimeDelta(-r.V.Days, -r.V.Seconds, -r.V.Microseconds)
			if err != nil {
				return nil, exception.NewMessage(exception.OverflowError, err.Error()), true
			}
			d, err := l.V.AddDelta(neg)
			if err != nil {
				return nil, exception.NewMessage(exception.OverflowError, err.Error()), true
			}
			return &value.Date{V: d}, nil, true
		case *value.Date:
			return &value.TimeDelta{V: l.V.Sub(r.V)}, nil, true
		}
		return nil, unsupportedOperand("-", left, right), true
	case *value.DateTime:
		switch r := right.(type) {
		case *value.TimeDelta:
			neg, err := datetime.NewTimeDelta(-r.V.Days, -r.V.Seconds, -r.V.Microseconds)
			if err != nil {
				return nil, exception.NewMessage(exception.OverflowError, err.Error()), true
			}
			dt, err := l.V.AddDelta(neg)
			if err != nil {
				return nil, exception.NewMessage(exception.OverflowError, err.Error()), true
			}
			return &value.DateTime{V: dt}, nil, true
		case *value.DateTime:
			td, err := l.V.Sub(r.V)
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, "can't subtract offset-naive and offset-aware datetimes"), true
			}
			return &value.TimeDelta{V: td}, nil, true
		}
		return nil, unsupportedOperand("-", left, right), true
	case *value.TimeDelta:
		r, ok := right.(*value.TimeDelta)
		if !ok {
			return nil, unsupportedOperand("-", left, right), true
		}
		td, err := datetime.NewTimeDelta(l.V.Days-r.V.Days, l.V.Seconds-r.V.Seconds, l.V.Microseconds-r.V.Microseconds)
		if err != nil {
			return nil, exception.NewMessage(exception.OverflowError, err.Error()), true
		}
		return &value.TimeDelta{V: td}, nil, true
	}
	if _, ok := right.(*value.Date); ok {
		return nil, unsupportedOperand("-", left, right), true
	}
	if _, ok := right.(*value.DateTime); ok {
		return nil, unsupportedOperand("-", left, right), true
	}
	if _, ok := right.(*value.TimeDelta); ok {
		return nil, unsupportedOperand("-", left, right), true
	}
	return nil, nil, false
}

func setDifference(a, b *value.Set) (value.Value, *exception.Exception) {
	out, _ := value.NewSet(nil)
	for _, e := range a.Elements() {
		in, err := b.Contains(e)
		if err != nil {
			return nil, exception.NewMessage(exception.TypeError, err.Error())
		}
		if !in {
			if err := out.Add(e); err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
		}
	}
	return out, nil
}

func mulOp(left, right value.Value) (value.Value, *exception.Exception) {
	if n, rep, ok := sequenceRepeat(left, right); ok {
		return repeatSequence(n, rep)
	}
	if n, rep, ok := sequenceRepeat(right, left); ok {
		return repeatSequence(n, rep)
	}
	return numericBinOp("*", left, right,
		func(a, b bigint.Int) (value.Value, *exception.Exception) { return value.NewBigInt(a.Mul(b)), nil },
		func(a, b float64) (value.Value, *exception.Exception) { return value.NewFloat(a * b), nil })
}

// sequenceRepeat recognizes `<sequence> * <int>`, either argument order.
func sequenceRepeat(seq, n value.Value) (int, value.Value, bool) {
	count, isInt := value.AsIntValue(n)
	if !isInt {
		return 0, nil, false
	}
	switch seq.(type) {
	case *value.Str, *value.Bytes, *value.List, *value.Tuple:
		cv, _ := count.Int64()
		return int(cv), seq, true
	}
	return 0, nil, false
}

func repeatSequence(n int, seq value.Value) (value.Value, *exception.Exception) {
	if n < 0 {
		n = 0
	}
	switch s := seq.(type) {
	case *value.Str:
		out := make([]rune, 0, len(s.Runes)*n)
		for i := 0; i < n; i++ {
			out = append(out, s.Runes...)
		}
		return value.NewStrFromRunes(out), nil
	case *value.Bytes:
		out := make([]byte, 0, len(s.Value)*n)
		for i := 0; i < n; i++ {
			out = append(out, s.Value...)
		}
		return value.NewBytes(out), nil
	case *value.List:
		out := make([]value.Value, 0, s.Len()*n)
		for i := 0; i < n; i++ {
			out = append(out, s.Elements()...)
		}
		return value.NewList(out), nil
	case *value.Tuple:
		out := make([]value.Value, 0, len(s.Elements)*n)
		for i := 0; i < n; i++ {
			out = append(out, s.Elements...)
		}
		return value.NewTuple(out), nil
	}
	return nil, exception.NewMessage(exception.TypeError, "can't multiply sequence")
}

func divOp(left, right value.Value) (value.Value, *exception.Exception) {
	return numericBinOp("/", left, right,
		func(a, b bigint.Int) (value.Value, *exception.Exception) {
			if b.IsZero() {
				return nil, exception.DivisionByZero("division by zero")
			}
			return value.NewFloat(a.Float64() / b.Float64()), nil
		},
		func(a, b float64) (value.Value, *exception.Exception) {
			if b == 0 {
				return nil, exception.DivisionByZero("float division by zero")
			}
			return value.NewFloat(a / b), nil
		})
}

func floorDivOp(left, right value.Value) (value.Value, *exception.Exception) {
	return numericBinOp("//", left, right,
		func(a, b bigint.Int) (value.Value, *exception.Exception) {
			q, ok := a.FloorDiv(b)
			if !ok {
				return nil, exception.DivisionByZero("integer division or modulo by zero")
			}
			return value.NewBigInt(q), nil
		},
		func(a, b float64) (value.Value, *exception.Exception) {
			if b == 0 {
				return nil, exception.DivisionByZero("float floor division by zero")
			}
			return value.NewFloat(floorDivFloat(a, b)), nil
		})
}

func floorDivFloat(a, b float64) float64 {
	q := a / b
	if q >= 0 {
		return float64(int64(q))
	}
	iq := float64(int64(q))
	if iq != q {
		return iq - 1
	}
	return iq
}

func modOp(left, right value.Value) (value.Value, *exception.Exception) {
	return numericBinOp("%", left, right,
		func(a, b bigint.Int) (value.Value, *exception.Exception) {
			r, ok := a.Mod(b)
			if !ok {
				return nil, exception.DivisionByZero("integer division or modulo by zero")
			}
			return value.NewBigInt(r), nil
		},
		func(a, b float64) (value.Value, *exception.Exception) {
			if b == 0 {
				return nil, exception.DivisionByZero("float modulo")
			}
			r := a - b*floorDivFloat(a, b)
			return value.NewFloat(r), nil
		})
}

func powOp(left, right value.Value) (value.Value, *exception.Exception) {
	if !value.IsNumeric(left) || !value.IsNumeric(right) {
		return nil, unsupportedOperand("** or pow()", left, right)
	}
	_, lf := left.(*value.Float)
	_, rf := right.(*value.Float)
	bi, biok := value.AsIntValue(right)
	if !lf && !rf && biok && bi.Sign() < 0 {
		a, _ := value.AsFloat64(left)
		b, _ := value.AsFloat64(right)
		return value.NewFloat(math.Pow(a, b)), nil
	}
	if lf || rf {
		a, _ := value.AsFloat64(left)
		b, _ := value.AsFloat64(right)
		return value.NewFloat(math.Pow(a, b)), nil
	}
	a, _ := value.AsIntValue(left)
	b, _ := value.AsIntValue(right)
	return value.NewBigInt(a.Pow(b)), nil
}

func bitOp(left, right value.Value, op string) (value.Value, *exception.Exception) {
	li, lok := value.AsIntValue(left)
	ri, rok := value.AsIntValue(right)
	if !lok || !rok {
		return nil, unsupportedOperand(op, left, right)
	}
	var out bigint.Int
	switch op {
	case "&":
		out = li.And(ri)
	case "|":
		out = li.Or(ri)
	case "^":
		out = li.Xor(ri)
	}
	if bothBool(left, right) {
		return value.NewBool(!out.IsZero()), nil
	}
	return value.NewBigInt(out), nil
}

func shiftOp(left, right value.Value, isLeft bool) (value.Value, *exception.Exception) {
	op := "<<"
	if !isLeft {
		op = ">>"
	}
	li, lok := value.AsIntValue(left)
	ri, rok := value.AsIntValue(right)
	if !lok || !rok {
		return nil, unsupportedOperand(op, left, right)
	}
	if ri.Sign() < 0 {
		return nil, exception.NewMessage(exception.ValueError, "negative shift count")
	}
	count, _ := ri.Int64()
	if isLeft {
		return value.NewBigInt(li.Lsh(uint(count))), nil
	}
	return value.NewBigInt(li.Rsh(uint(count))), nil
}

// unaryOp implements `-`, `+`, `~`, `not`.
func unaryOp(op string, v value.Value) (value.Value, *exception.Exception) {
	switch op {
	case "not":
		return value.NewBool(!value.Truthy(v)), nil
	case "-":
		switch n := v.(type) {
		case *value.Bool:
			iv, _ := value.AsIntValue(n)
			return value.NewBigInt(iv.Neg()), nil
		case *value.Int:
			return value.NewBigInt(n.Value.Neg()), nil
		case *value.Float:
			return value.NewFloat(-n.Value), nil
		case *value.TimeDelta:
			td, err := datetime.NewTimeDelta(-n.V.Days, -n.V.Seconds, -n.V.Microseconds)
			if err != nil {
				return nil, exception.NewMessage(exception.OverflowError, err.Error())
			}
			return &value.TimeDelta{V: td}, nil
		}
		return nil, exception.TypeErrorBadOperandUnary("-", v.TypeName())
	case "+":
		switch n := v.(type) {
		case *value.Bool:
			iv, _ := value.AsIntValue(n)
			return value.NewBigInt(iv), nil
		case *value.Int, *value.Float:
			return v, nil
		}
		return nil, exception.TypeErrorBadOperandUnary("+", v.TypeName())
	case "~":
		iv, ok := value.AsIntValue(v)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("~", v.TypeName())
		}
		return value.NewBigInt(iv.Add(bigint.FromInt64(1)).Neg()), nil
	}
	return nil, exception.NewMessage(exception.RuntimeError, "unknown unary operator "+op)
}

// compareOp implements one step of a `Compare` chain: `<, <=, >, >=, ==,
// !=, in, not in, is, is not`.
func compareOp(op string, left, right value.Value) (bool, *exception.Exception) {
	switch op {
	case "==":
		eq, err := value.Equal(left, right)
		if err != nil {
			return false, exception.NewMessage(exception.TypeError, err.Error())
		}
		return eq, nil
	case "!=":
		eq, err := value.Equal(left, right)
		if err != nil {
			return false, exception.NewMessage(exception.TypeError, err.Error())
		}
		return !eq, nil
	case "is":
		return value.Is(left, right), nil
	case "is not":
		return !value.Is(left, right), nil
	case "in", "not in":
		found, exc := containsOp(right, left)
		if exc != nil {
			return false, exc
		}
		if op == "not in" {
			return !found, nil
		}
		return found, nil
	case "<":
		lt, err := value.Less(left, right)
		if err != nil {
			return false, exception.NewMessage(exception.TypeError, err.Error())
		}
		return lt, nil
	case ">":
		lt, err := value.Less(right, left)
		if err != nil {
			return false, exception.NewMessage(exception.TypeError, err.Error())
		}
		return lt, nil
	case "<=":
		gt, err := value.Less(right, left)
		if err != nil {
			return false, exception.NewMessage(exception.TypeError, err.Error())
		}
		return !gt, nil
	case ">=":
		lt, err := value.Less(left, right)
		if err != nil {
			return false, exception.NewMessage(exception.TypeError, err.Error())
		}
		return !lt, nil
	}
	return false, exception.NewMessage(exception.RuntimeError, "unknown comparison "+op)
}

// containsOp implements `item in container`.
func containsOp(container, item value.Value) (bool, *exception.Exception) {
	switch c := container.(type) {
	case *value.Str:
		sub, ok := item.(*value.Str)
		if !ok {
			return false, exception.NewMessage(exception.TypeError, "'in <string>' requires string as left operand, not "+item.TypeName())
		}
		return strings.Contains(string(c.Runes), string(sub.Runes)), nil
	case *value.Bytes:
		sub, ok := item.(*value.Bytes)
		if !ok {
			return false, exception.NewMessage(exception.TypeError, "a bytes-like object is required, not '"+item.TypeName()+"'")
		}
		return strings.Contains(string(c.Value), string(sub.Value)), nil
	case *value.List:
		for _, e := range c.Elements() {
			eq, err := value.Equal(e, item)
			if err != nil {
				return false, exception.NewMessage(exception.TypeError, err.Error())
			}
			if eq {
				return true, nil
			}
		}
		return false, nil
	case *value.Tuple:
		for _, e := range c.Elements {
			eq, err := value.Equal(e, item)
			if err != nil {
				return false, exception.NewMessage(exception.TypeError, err.Error())
			}
			if eq {
				return true, nil
			}
		}
		return false, nil
	case *value.Dict:
		_, found, err := c.GetChecked(item)
		if err != nil {
			return false, exception.TypeErrorUnhashable(item.TypeName())
		}
		return found, nil
	case *value.Set:
		found, err := c.Contains(item)
		if err != nil {
			return false, exception.TypeErrorUnhashable(item.TypeName())
		}
		return found, nil
	case *value.FrozenSet:
		for _, e := range c.Elements {
			eq, err := value.Equal(e, item)
			if err != nil {
				return false, exception.NewMessage(exception.TypeError, err.Error())
			}
			if eq {
				return true, nil
			}
		}
		return false, nil
	case *value.Range:
		n, ok := value.AsIntValue(item)
		if !ok {
			return false, nil
		}
		iv, _ := n.Int64()
		return c.Contains(iv), nil
	}
	return false, exception.NewMessage(exception.TypeError, "argument of type '"+container.TypeName()+"' is not iterable")
}

// render returns the str() rendering of v via builtins.Str. Nothing in
// the evaluator calls it at present.
func render(v value.Value) string { return builtins.Str(v) }
