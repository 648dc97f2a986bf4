package value

import (
	"fmt"

	"github.com/mwildehahn/monty/internal/datetime"
)

// Less implements the default `<` ordering used by comparisons,
// sorted()/list.sort with no key, and min()/max(). It mirrors Equal's
// structure: numeric types compare across kinds, strings/bytes compare
// lexicographically by element, and sequences compare lexicographically
// by element with shorter-is-less on a common prefix. Unordered types
// (dict, set, the sentinels) return an error, which callers turn into
// the standard "'<' not supported between instances of ..." TypeError.
func Less(a, b Value) (bool, error) {
	if IsNumeric(a) && IsNumeric(b) {
		af, _ := AsFloat64(a)
		bf, _ := AsFloat64(b)
		ai, aIsInt := AsIntValue(a)
		bi, bIsInt := AsIntValue(b)
		if aIsInt && bIsInt {
			return ai.Cmp(bi) < 0, nil
		}
		return af < bf, nil
	}
	switch av := a.(type) {
	case *Str:
		bv, ok := b.(*Str)
		if !ok {
			return false, unorderable(a, b)
		}
		return runesLess(av.Runes, bv.Runes), nil
	case *Bytes:
		bv, ok := b.(*Bytes)
		if !ok {
			return false, unorderable(a, b)
		}
		return bytesLess(av.Value, bv.Value), nil
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok {
			return false, unorderable(a, b)
		}
		return sequenceLess(av.Elements, bv.Elements)
	case *List:
		bv, ok := b.(*List)
		if !ok {
			return false, unorderable(a, b)
		}
		return sequenceLess(av.elements, bv.elements)
	case *Date:
		bv, ok := b.(*Date)
		if !ok {
			return false, unorderable(a, b)
		}
		return av.V.Compare(bv.V) < 0, nil
	case *Time:
		bv, ok := b.(*Time)
		if !ok {
			return false, unorderable(a, b)
		}
		return av.V.Compare(bv.V) < 0, nil
	case *TimeDelta:
		bv, ok := b.(*TimeDelta)
		if !ok {
			return false, unorderable(a, b)
		}
		return datetime.Compare(av.V, bv.V) < 0, nil
	case *DateTime:
		bv, ok := b.(*DateTime)
		if !ok {
			return false, unorderable(a, b)
		}
		cmp, err := av.V.Compare(bv.V)
		if err != nil {
			return false, fmt.Errorf("can't compare offset-naive and offset-aware datetimes")
		}
		return cmp < 0, nil
	default:
		return false, unorderable(a, b)
	}
}

func unorderable(a, b Value) error {
	return fmt.Errorf("'<' not supported between instances of '%s' and '%s'", a.TypeName(), b.TypeName())
}

func runesLess(a, b []rune) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func bytesLess(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func sequenceLess(a, b []Value) (bool, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		eq, err := Equal(a[i], b[i])
		if err != nil {
			return false, err
		}
		if !eq {
			return Less(a[i], b[i])
		}
	}
	return len(a) < len(b), nil
}
