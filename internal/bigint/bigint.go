// Package bigint implements Monty's arbitrary-precision signed integer.
//
// Every Int carries two representationally transparent forms: a fast
// path for values that fit in a machine word, and a heap-allocated
// math/big.Int for everything else. Every operation accepts either form
// and normalizes its result, demoting a heap value back to the small
// form whenever it fits.
package bigint

import (
	"fmt"
	"math/big"
)

// smallMin/smallMax bound the fast-path representation. Using the full
// int64 range (rather than some narrower "small int" band) keeps the
// fast path as wide as possible while still needing a heap escape for
// anything a single machine word cannot hold.
const (
	smallMin = minInt64
	smallMax = maxInt64

	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)

// mersenne61 is 2^61 - 1, the modulus CPython's integer hash uses.
const mersenne61 = (int64(1) << 61) - 1

// Int is Monty's arbitrary-precision integer value. The zero Int is 0.
type Int struct {
	small int64
	big   *big.Int // non-nil only when the value doesn't fit in small
}

// FromInt64 builds an Int from a machine int64.
func FromInt64(v int64) Int { return Int{small: v} }

// FromBigInt builds an Int from a math/big.Int, normalizing to the small
// form when possible. The supplied value is copied, never aliased.
func FromBigInt(v *big.Int) Int {
	if v.IsInt64() {
		return Int{small: v.Int64()}
	}
	return Int{big: new(big.Int).Set(v)}
}

// Zero, One are commonly used constants.
var (
	Zero = FromInt64(0)
	One  = FromInt64(1)
)

// isBig reports whether this Int is stored in heap form.
func (n Int) isBig() bool { return n.big != nil }

// asBig returns a math/big.Int representing n, for use in heap arithmetic.
// For a small n it is a fresh allocation; for a heap n it is n's own
// storage, so callers must not mutate it in place.
func (n Int) asBig() *big.Int {
	if n.big != nil {
		return n.big
	}
	return big.NewInt(n.small)
}

// normalize demotes a heap big.Int to the small form when it fits.
func normalize(v *big.Int) Int {
	if v.IsInt64() {
		return Int{small: v.Int64()}
	}
	return Int{big: v}
}

// Int64 returns n as an int64 and whether it fit without truncation.
func (n Int) Int64() (int64, bool) {
	if !n.isBig() {
		return n.small, true
	}
	if n.big.IsInt64() {
		return n.big.Int64(), true
	}
	return 0, false
}

// Float64 returns the nearest float64 approximation of n.
func (n Int) Float64() float64 {
	if !n.isBig() {
		return float64(n.small)
	}
	f, _ := new(big.Float).SetInt(n.big).Float64()
	return f
}

// Sign returns -1, 0, or 1.
func (n Int) Sign() int {
	if !n.isBig() {
		switch {
		case n.small < 0:
			return -1
		case n.small > 0:
			return 1
		default:
			return 0
		}
	}
	return n.big.Sign()
}

// IsZero reports whether n is exactly zero.
func (n Int) IsZero() bool { return n.Sign() == 0 }

// String renders the decimal representation.
func (n Int) String() string {
	if !n.isBig() {
		return fmt.Sprintf("%d", n.small)
	}
	return n.big.String()
}

// Text renders n in the given base as big.Int.Text does, with a leading
// '-' when n is negative; bin/oct/hex pass the absolute value and add
// their own sign prefix.
func (n Int) Text(base int) string {
	return n.asBig().Text(base)
}

// addOverflows reports whether a+b overflows int64.
func addOverflows(a, b int64) bool {
	s := a + b
	return ((a ^ s) & (b ^ s)) < 0
}

func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	p := a * b
	return p/b != a
}

// Add returns n + m.
func (n Int) Add(m Int) Int {
	if !n.isBig() && !m.isBig() && !addOverflows(n.small, m.small) {
		return Int{small: n.small + m.small}
	}
	return normalize(new(big.Int).Add(n.asBig(), m.asBig()))
}

// Sub returns n - m.
func (n Int) Sub(m Int) Int {
	if !n.isBig() && !m.isBig() && m.small != minInt64 && !addOverflows(n.small, -m.small) {
		return Int{small: n.small - m.small}
	}
	return normalize(new(big.Int).Sub(n.asBig(), m.asBig()))
}

// Neg returns -n.
func (n Int) Neg() Int {
	if !n.isBig() && n.small != minInt64 {
		return Int{small: -n.small}
	}
	return normalize(new(big.Int).Neg(n.asBig()))
}

// Abs returns |n|.
func (n Int) Abs() Int {
	if n.Sign() < 0 {
		return n.Neg()
	}
	return n
}

// Mul returns n * m.
func (n Int) Mul(m Int) Int {
	if !n.isBig() && !m.isBig() && !mulOverflows(n.small, m.small) {
		return Int{small: n.small * m.small}
	}
	return normalize(new(big.Int).Mul(n.asBig(), m.asBig()))
}

// DivMod returns floor division and the remainder with the sign of the
// divisor, matching the reference interpreter's // and % semantics.
// Division by zero returns ok=false.
func (n Int) DivMod(m Int) (q, r Int, ok bool) {
	if m.IsZero() {
		return Int{}, Int{}, false
	}
	a, b := n.asBig(), m.asBig()
	qq, rr := new(big.Int), new(big.Int)
	qq.DivMod(a, b, rr) // Euclidean division: rr is always >= 0
	// Convert Euclidean remainder/quotient into floor-division semantics
	// (remainder takes the sign of the divisor).
	if rr.Sign() != 0 && b.Sign() < 0 {
		rr.Add(rr, b)
		qq.Sub(qq, big.NewInt(1))
	}
	return normalize(qq), normalize(rr), true
}

// FloorDiv returns n // m (floor division toward negative infinity).
func (n Int) FloorDiv(m Int) (Int, bool) {
	q, _, ok := n.DivMod(m)
	return q, ok
}

// Mod returns n % m with the sign of m.
func (n Int) Mod(m Int) (Int, bool) {
	_, r, ok := n.DivMod(m)
	return r, ok
}

// Pow returns n ** e for a non-negative exponent.
func (n Int) Pow(e Int) Int {
	return normalize(new(big.Int).Exp(n.asBig(), e.asBig(), nil))
}

// PowMod returns (n ** e) mod m, for three-argument pow().
func (n Int) PowMod(e, m Int) Int {
	return normalize(new(big.Int).Exp(n.asBig(), e.asBig(), m.asBig()))
}

// Cmp returns -1, 0, or 1 for n compared to m.
func (n Int) Cmp(m Int) int {
	if !n.isBig() && !m.isBig() {
		switch {
		case n.small < m.small:
			return -1
		case n.small > m.small:
			return 1
		default:
			return 0
		}
	}
	return n.asBig().Cmp(m.asBig())
}

// Equal reports n == m.
func (n Int) Equal(m Int) bool { return n.Cmp(m) == 0 }

// And, Or, Xor implement bitwise operations on non-negative integers.
func (n Int) And(m Int) Int { return normalize(new(big.Int).And(n.asBig(), m.asBig())) }
func (n Int) Or(m Int) Int  { return normalize(new(big.Int).Or(n.asBig(), m.asBig())) }
func (n Int) Xor(m Int) Int { return normalize(new(big.Int).Xor(n.asBig(), m.asBig())) }

// Lsh, Rsh shift by a non-negative count.
func (n Int) Lsh(count uint) Int { return normalize(new(big.Int).Lsh(n.asBig(), count)) }
func (n Int) Rsh(count uint) Int { return normalize(new(big.Int).Rsh(n.asBig(), count)) }

// Hash implements the reference interpreter's canonical integer hash:
// n mod (2**61 - 1), with -1 mapped to -2 (CPython never produces a hash
// of -1, reserving it as an error sentinel; Monty keeps the same
// avoidance so a hash collision with the sentinel never causes ambiguity).
//
// This formula depends only on the mathematical value of n, never on
// whether it is stored in small or heap form, which is exactly the
// invariant the value model's cross-representation hash rule requires.
func (n Int) Hash() int64 {
	mod := big.NewInt(mersenne61)
	mag := new(big.Int).Abs(n.asBig())
	h := new(big.Int).Mod(mag, mod).Int64()
	if n.Sign() < 0 {
		h = -h
	}
	if h == -1 {
		h = -2
	}
	return h
}

// Parse parses a base-10 (or 0x/0o/0b-prefixed) integer literal.
func Parse(s string) (Int, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Int{}, fmt.Errorf("invalid integer literal %q", s)
	}
	return normalize(v), nil
}
