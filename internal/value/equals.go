package value

import (
	"math"
	"math/big"

	"github.com/mwildehahn/monty/internal/bigint"
	"github.com/mwildehahn/monty/internal/datetime"
)

// Equal implements cross-variant structural equality per §3.1/§4.1:
// Bool/Int/Float compare numerically across kinds, collections compare
// element-wise, and Set/FrozenSet compare by membership.
func Equal(a, b Value) (bool, error) {
	if IsNumeric(a) && IsNumeric(b) {
		return numericEqual(a, b), nil
	}
	switch av := a.(type) {
	case noneValue:
		_, ok := b.(noneValue)
		return ok, nil
	case ellipsisValue:
		_, ok := b.(ellipsisValue)
		return ok, nil
	case notImplementedValue:
		_, ok := b.(notImplementedValue)
		return ok, nil
	case *Str:
		bv, ok := b.(*Str)
		return ok && runesEqual(av.Runes, bv.Runes), nil
	case *Bytes:
		bv, ok := b.(*Bytes)
		return ok && bytesEqual(av.Value, bv.Value), nil
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false, nil
		}
		for i := range av.Elements {
			eq, err := Equal(av.Elements[i], bv.Elements[i])
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	case *List:
		bv, ok := b.(*List)
		if !ok || av.Len() != bv.Len() {
			return false, nil
		}
		for i := 0; i < av.Len(); i++ {
			eq, err := Equal(av.elements[i], bv.elements[i])
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	case *Dict:
		return dictEqual(av, b)
	case *Set:
		return setLikeEqual(av.Elements(), b)
	case *FrozenSet:
		return setLikeEqual(av.Elements, b)
	case *Range:
		bv, ok := b.(*Range)
		if !ok {
			return false, nil
		}
		return av.Start == bv.Start && av.Stop == bv.Stop && av.Step == bv.Step, nil
	case *Type:
		bv, ok := b.(*Type)
		return ok && av.Name == bv.Name, nil
	case *Date:
		bv, ok := b.(*Date)
		return ok && av.V.Compare(bv.V) == 0, nil
	case *Time:
		bv, ok := b.(*Time)
		return ok && av.V.Compare(bv.V) == 0, nil
	case *DateTime:
		bv, ok := b.(*DateTime)
		return ok && av.V.Equal(bv.V), nil
	case *TimeDelta:
		bv, ok := b.(*TimeDelta)
		return ok && datetime.Compare(av.V, bv.V) == 0, nil
	case *TimeZone:
		bv, ok := b.(*TimeZone)
		return ok && av.V.Equal(bv.V), nil
	default:
		return Is(a, b), nil
	}
}

func numericEqual(a, b Value) bool {
	af, _ := AsFloat64(a)
	bf, _ := AsFloat64(b)
	ai, aIsInt := AsIntValue(a)
	bi, bIsInt := AsIntValue(b)
	if aIsInt && bIsInt {
		return ai.Equal(bi)
	}
	// An int equals a float only when the float is exactly that integer,
	// which keeps Equal consistent with Hash beyond 2**53.
	if aIsInt || bIsInt {
		n, f := ai, bf
		if bIsInt {
			n, f = bi, af
		}
		if math.IsInf(f, 0) || f != math.Trunc(f) {
			return false
		}
		fi, _ := new(big.Float).SetFloat64(f).Int(nil)
		return n.Equal(bigint.FromBigInt(fi))
	}
	return af == bf
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dictEqual(a *Dict, b Value) (bool, error) {
	bv, ok := b.(*Dict)
	if !ok || a.Len() != bv.Len() {
		return false, nil
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bvVal, found, err := bv.GetChecked(k)
		if err != nil {
			return false, err
		}
		if !found {
			return false, nil
		}
		eq, err := Equal(av, bvVal)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// setLikeEqual implements Set == FrozenSet by membership, in either
// direction.
func setLikeEqual(aElems []Value, b Value) (bool, error) {
	var bElems []Value
	switch bv := b.(type) {
	case *Set:
		bElems = bv.Elements()
	case *FrozenSet:
		bElems = bv.Elements
	default:
		return false, nil
	}
	if len(aElems) != len(bElems) {
		return false, nil
	}
	for _, e := range aElems {
		found := false
		for _, o := range bElems {
			eq, err := Equal(e, o)
			if err != nil {
				return false, err
			}
			if eq {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}
