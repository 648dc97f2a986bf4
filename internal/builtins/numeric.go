package builtins

import (
	"fmt"
	"math"

	"github.com/mwildehahn/monty/internal/bigint"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// numericAdd implements the `+` coercion rule used by sum(): Bool
// behaves as 0/1, Int/Float combine by the usual numeric tower, and
// any non-numeric operand raises the standard unsupported-operand
// TypeError sum() would surface from the underlying `+`.
func numericAdd(a, b value.Value) (value.Value, *exception.Exception) {
	if !value.IsNumeric(a) || !value.IsNumeric(b) {
		return nil, typeError("unsupported operand type(s) for +: '" + a.TypeName() + "' and '" + b.TypeName() + "'")
	}
	_, aFloat := a.(*value.Float)
	_, bFloat := b.(*value.Float)
	if aFloat || bFloat {
		af, _ := value.AsFloat64(a)
		bf, _ := value.AsFloat64(b)
		return value.NewFloat(af + bf), nil
	}
	ai, _ := value.AsIntValue(a)
	bi, _ := value.AsIntValue(b)
	return value.NewBigInt(ai.Add(bi)), nil
}

// numericPow implements two-argument pow()/`**` across the Bool/Int/
// Float tower. A negative integer exponent with an integer base
// produces a Float, matching CPython's `2 ** -1 == 0.5`.
func numericPow(a, b value.Value) (value.Value, *exception.Exception) {
	if !value.IsNumeric(a) || !value.IsNumeric(b) {
		return nil, typeError("unsupported operand type(s) for ** or pow(): '" + a.TypeName() + "' and '" + b.TypeName() + "'")
	}
	_, aFloat := a.(*value.Float)
	_, bFloat := b.(*value.Float)
	if aFloat || bFloat {
		af, _ := value.AsFloat64(a)
		bf, _ := value.AsFloat64(b)
		return value.NewFloat(math.Pow(af, bf)), nil
	}
	ai, _ := value.AsIntValue(a)
	bi, _ := value.AsIntValue(b)
	if bi.Sign() < 0 {
		af, _ := value.AsFloat64(a)
		bf, _ := value.AsFloat64(b)
		return value.NewFloat(math.Pow(af, bf)), nil
	}
	return value.NewBigInt(ai.Pow(bi)), nil
}

// roundValue implements round(x) and round(x, n). With no ndigits,
// Python's round() uses banker's rounding and returns an Int; with
// ndigits it returns a value of x's own type.
func roundValue(v value.Value, ndigits int, haveNdigits bool) (value.Value, *exception.Exception) {
	switch n := v.(type) {
	case *value.Int:
		if !haveNdigits || ndigits >= 0 {
			return n, nil
		}
		return value.NewBigInt(roundIntToPlace(n.Value, ndigits)), nil
	case *value.Bool:
		iv, _ := value.AsIntValue(v)
		if !haveNdigits {
			return value.NewBigInt(iv), nil
		}
		return value.NewBigInt(iv), nil
	case *value.Float:
		scale := math.Pow(10, float64(ndigits))
		r := bankersRound(n.Value * scale) / scale
		if !haveNdigits {
			return value.NewInt(int64(bankersRound(n.Value))), nil
		}
		return value.NewFloat(r), nil
	default:
		return nil, typeError(fmt.Sprintf("type %s doesn't define __round__ method", v.TypeName()))
	}
}

// bankersRound implements round-half-to-even, matching CPython's round().
func bankersRound(f float64) float64 {
	floor := math.Floor(f)
	diff := f - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			return floor
		}
		return floor + 1
	}
}

// roundIntToPlace implements round(int, negative_ndigits): zeroing the
// low |ndigits| decimal digits with banker's rounding at the boundary.
func roundIntToPlace(n bigint.Int, ndigits int) bigint.Int {
	place := bigint.FromInt64(1)
	ten := bigint.FromInt64(10)
	for i := 0; i < -ndigits; i++ {
		place = place.Mul(ten)
	}
	q, r, ok := n.DivMod(place)
	if !ok {
		return n
	}
	twice := r.Abs().Mul(bigint.FromInt64(2))
	cmp := twice.Cmp(place)
	roundUp := false
	switch {
	case cmp > 0:
		roundUp = true
	case cmp == 0:
		qv, _ := q.Int64()
		roundUp = qv%2 != 0
	}
	// DivMod floors, so r is never negative here and rounding up is
	// always q+1, whatever the sign of n.
	if roundUp {
		q = q.Add(bigint.FromInt64(1))
	}
	return q.Mul(place)
}
