package value

import (
	"math"
	"strconv"

	"github.com/mwildehahn/monty/internal/bigint"
)

// Bool is distinct from Int (its own variant and type), but compares and
// hashes equal to Int(0)/Int(1) per §3.1. Two shared instances exist so
// that `True is True` and `False is False` always hold.
type Bool struct{ Value bool }

func (b *Bool) Kind() Kind       { return KindBool }
func (b *Bool) TypeName() string { return "bool" }

var (
	True  = &Bool{Value: true}
	False = &Bool{Value: false}
)

// NewBool returns the canonical True/False singleton for b.
func NewBool(b bool) *Bool {
	if b {
		return True
	}
	return False
}

// Int is an arbitrary-precision signed integer.
type Int struct{ Value bigint.Int }

func (i *Int) Kind() Kind       { return KindInt }
func (i *Int) TypeName() string { return "int" }

// NewInt wraps a machine int64.
func NewInt(v int64) *Int { return &Int{Value: bigint.FromInt64(v)} }

// NewBigInt wraps an already-constructed bigint.Int.
func NewBigInt(v bigint.Int) *Int { return &Int{Value: v} }

// ParseInt parses a decimal (or 0x/0o/0b prefixed) integer literal.
func ParseInt(s string) (*Int, error) {
	v, err := bigint.Parse(s)
	if err != nil {
		return nil, err
	}
	return &Int{Value: v}, nil
}

// Float is an IEEE-754 binary64 value.
type Float struct{ Value float64 }

func (f *Float) Kind() Kind       { return KindFloat }
func (f *Float) TypeName() string { return "float" }

// NewFloat wraps a float64.
func NewFloat(v float64) *Float { return &Float{Value: v} }

// AsIntValue extracts the bigint.Int a numeric value represents as an
// integer (Bool counts as 0/1, Int directly). A Float is never
// converted, even when it holds an exact integer.
func AsIntValue(v Value) (bigint.Int, bool) {
	switch vv := v.(type) {
	case *Bool:
		if vv.Value {
			return bigint.One, true
		}
		return bigint.Zero, true
	case *Int:
		return vv.Value, true
	}
	return bigint.Int{}, false
}

// AsFloat64 extracts a float64 from any numeric value.
func AsFloat64(v Value) (float64, bool) {
	switch vv := v.(type) {
	case *Bool:
		if vv.Value {
			return 1, true
		}
		return 0, true
	case *Int:
		return vv.Value.Float64(), true
	case *Float:
		return vv.Value, true
	}
	return 0, false
}

// IsNumeric reports whether v participates in the numeric tower.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case *Bool, *Int, *Float:
		return true
	}
	return false
}

// FormatFloat renders a float the way the reference interpreter's repr
// does: shortest round-trip representation, always with a decimal point
// or exponent so it reads back as a float.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if a := math.Abs(f); a >= 1e6 && a < 1e16 {
		// 'g' switches to an exponent from 1e6; repr stays positional below 1e16.
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	hasDotOrExp := false
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			hasDotOrExp = true
			break
		}
	}
	if !hasDotOrExp {
		s += ".0"
	}
	return s
}
