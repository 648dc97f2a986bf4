package bigint

import (
	"math/big"
	"testing"
)

func TestSmallHeapTransparency(t *testing.T) {
	small := FromInt64(42)
	heap := Int{big: big.NewInt(42)}

	if !small.Equal(heap) {
		t.Fatalf("small and heap forms of 42 should be equal")
	}
	if small.Hash() != heap.Hash() {
		t.Fatalf("hash(small(42))=%d != hash(heap(42))=%d", small.Hash(), heap.Hash())
	}
}

func TestHashStableAcrossConstructions(t *testing.T) {
	big1 := new(big.Int).Lsh(big.NewInt(1), 64) // 2**64
	big2 := new(big.Int).Mul(big.NewInt(1<<32), big.NewInt(1<<32))

	a := FromBigInt(big1)
	b := FromBigInt(big2)
	if a.Hash() != b.Hash() {
		t.Fatalf("hash(2**64) constructed two ways must match: %d vs %d", a.Hash(), b.Hash())
	}
}

func TestOverflowPromotesToHeap(t *testing.T) {
	max := FromInt64(maxInt64)
	one := FromInt64(1)
	sum := max.Add(one)

	if v, ok := sum.Int64(); ok {
		t.Fatalf("expected overflow to heap form, got int64 %d", v)
	}
	want := new(big.Int).Add(big.NewInt(maxInt64), big.NewInt(1))
	if sum.String() != want.String() {
		t.Fatalf("sum=%s want=%s", sum.String(), want.String())
	}
}

func TestDemotionAfterHeapArithmetic(t *testing.T) {
	huge := FromBigInt(new(big.Int).Lsh(big.NewInt(1), 100))
	back := huge.Sub(huge).Add(FromInt64(42))

	if v, ok := back.Int64(); !ok || v != 42 {
		t.Fatalf("expected demotion to small(42), got %+v ok=%v", back, ok)
	}
}

func TestFloorDivAndModSignOfDivisor(t *testing.T) {
	cases := []struct {
		a, b, wantQ, wantR int64
	}{
		{7, 3, 2, 1},
		{-7, 3, -3, 2},
		{7, -3, -3, -2},
		{-7, -3, 2, -1},
	}
	for _, c := range cases {
		q, r, ok := FromInt64(c.a).DivMod(FromInt64(c.b))
		if !ok {
			t.Fatalf("division by zero unexpected for %d/%d", c.a, c.b)
		}
		qi, _ := q.Int64()
		ri, _ := r.Int64()
		if qi != c.wantQ || ri != c.wantR {
			t.Errorf("%d // %d = %d (want %d), %% = %d (want %d)", c.a, c.b, qi, c.wantQ, ri, c.wantR)
		}
	}
}

func TestDivModByZero(t *testing.T) {
	if _, _, ok := FromInt64(1).DivMod(FromInt64(0)); ok {
		t.Fatalf("expected division by zero to fail")
	}
}

func TestPowMod(t *testing.T) {
	r := FromInt64(4).PowMod(FromInt64(13), FromInt64(497))
	if v, _ := r.Int64(); v != 445 {
		t.Fatalf("pow(4,13,497) = %d, want 445", v)
	}
}

func TestHashOfNegativeOneSentinelAvoided(t *testing.T) {
	// CPython reserves hash == -1 as an error sentinel; the canonical
	// hash function maps what would be -1 to -2.
	n := FromInt64(-1)
	// -1 mod (2**61-1), negated, happens to already be -1 for n=-1 itself
	// by construction of the formula; assert no observable hash is -1.
	if n.Hash() == -1 {
		t.Fatalf("hash(-1) must not be the reserved sentinel value -1")
	}
}
