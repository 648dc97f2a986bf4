package bridge

import (
	"testing"

	"github.com/mwildehahn/monty/internal/value"
)

// roundTrip pushes a host value to the sandbox and back, the contract
// crates/monty-python/tests/test_types.py pins for every host value
// kind.
func roundTrip(t *testing.T, in interface{}) interface{} {
	t.Helper()
	sv, err := ToSandbox(in)
	if err != nil {
		t.Fatalf("ToSandbox(%#v): %v", in, err)
	}
	out, err := FromSandbox(sv)
	if err != nil {
		t.Fatalf("FromSandbox: %v", err)
	}
	return out
}

func TestNoneRoundTrip(t *testing.T) {
	sv, err := ToSandbox(nil)
	if err != nil {
		t.Fatalf("ToSandbox(nil): %v", err)
	}
	if !value.IsNone(sv) {
		t.Errorf("ToSandbox(nil) = %#v, want None", sv)
	}
	out, err := FromSandbox(sv)
	if err != nil {
		t.Fatalf("FromSandbox: %v", err)
	}
	if out != nil {
		t.Errorf("FromSandbox(None) = %#v, want nil", out)
	}
}

func TestBoolRoundTrip(t *testing.T) {
	for _, b := range []bool{true, false} {
		sv, err := ToSandbox(b)
		if err != nil {
			t.Fatalf("ToSandbox(%v): %v", b, err)
		}
		if _, ok := sv.(*value.Bool); !ok {
			t.Errorf("ToSandbox(%v) did not produce *value.Bool, got %T", b, sv)
		}
		if got := roundTrip(t, b); got != b {
			t.Errorf("round trip %v: got %v", b, got)
		}
	}
}

func TestIntRoundTrip(t *testing.T) {
	for _, n := range []int{42, -100, 0} {
		if got := roundTrip(t, n); got != int64(n) {
			t.Errorf("round trip %d: got %v (%T)", n, got, got)
		}
	}
}

func TestFloatRoundTrip(t *testing.T) {
	for _, f := range []float64{3.14, -2.5, 0.0} {
		if got := roundTrip(t, f); got != f {
			t.Errorf("round trip %v: got %v", f, got)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"hello", "", "unicode: éè"} {
		if got := roundTrip(t, s); got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestBytesRoundTrip(t *testing.T) {
	cases := [][]byte{[]byte("hello"), {}, {0x00, 0x01, 0x02}}
	for _, b := range cases {
		got, ok := roundTrip(t, b).([]byte)
		if !ok {
			t.Fatalf("round trip %v did not produce []byte", b)
		}
		if string(got) != string(b) {
			t.Errorf("round trip %v: got %v", b, got)
		}
	}
}

func TestListRoundTrip(t *testing.T) {
	cases := []interface{}{
		[]interface{}{int64(1), int64(2), int64(3)},
		[]interface{}{},
		[]interface{}{"a", "b"},
	}
	for _, in := range cases {
		got := roundTrip(t, in)
		gotSlice, ok := got.([]interface{})
		if !ok {
			t.Fatalf("round trip %v did not produce []interface{}, got %T", in, got)
		}
		if !deepEqualSlice(gotSlice, in.([]interface{})) {
			t.Errorf("round trip %v: got %v", in, got)
		}
	}
}

func TestTupleRoundTrip(t *testing.T) {
	cases := []Tuple{
		{int64(1), int64(2), int64(3)},
		{},
		{"a"},
	}
	for _, in := range cases {
		got, ok := roundTrip(t, in).(Tuple)
		if !ok {
			t.Fatalf("round trip %v did not produce Tuple", in)
		}
		if !deepEqualSlice([]interface{}(got), []interface{}(in)) {
			t.Errorf("round trip %v: got %v", in, got)
		}
	}
}

func TestDictRoundTrip(t *testing.T) {
	in := map[string]interface{}{"a": int64(1), "b": int64(2)}
	got, ok := roundTrip(t, in).(map[string]interface{})
	if !ok {
		t.Fatalf("round trip did not produce map[string]interface{}, got %T", got)
	}
	if len(got) != len(in) || got["a"] != in["a"] || got["b"] != in["b"] {
		t.Errorf("round trip %v: got %v", in, got)
	}
	empty, _ := roundTrip(t, map[string]interface{}{}).(map[string]interface{})
	if len(empty) != 0 {
		t.Errorf("round trip {}: got %v", empty)
	}
}

func TestSetRoundTrip(t *testing.T) {
	in := Set{int64(1), int64(2), int64(3)}
	got, ok := roundTrip(t, in).(Set)
	if !ok {
		t.Fatalf("round trip did not produce Set, got %T", got)
	}
	if !sameMembers([]interface{}(got), []interface{}(in)) {
		t.Errorf("round trip %v: got %v", in, got)
	}
}

func TestFrozenSetRoundTrip(t *testing.T) {
	in := FrozenSet{int64(1), int64(2), int64(3)}
	got, ok := roundTrip(t, in).(FrozenSet)
	if !ok {
		t.Fatalf("round trip did not produce FrozenSet, got %T", got)
	}
	if !sameMembers([]interface{}(got), []interface{}(in)) {
		t.Errorf("round trip %v: got %v", in, got)
	}
	empty, _ := roundTrip(t, FrozenSet{}).(FrozenSet)
	if len(empty) != 0 {
		t.Errorf("round trip frozenset(): got %v", empty)
	}
}

func TestEllipsisRoundTrip(t *testing.T) {
	sv, err := ToSandbox(MontyEllipsis{})
	if err != nil {
		t.Fatalf("ToSandbox: %v", err)
	}
	if sv != value.Ellipsis {
		t.Errorf("ToSandbox(MontyEllipsis{}) = %#v, want the Ellipsis singleton", sv)
	}
	if _, ok := roundTrip(t, MontyEllipsis{}).(MontyEllipsis); !ok {
		t.Error("round trip did not produce MontyEllipsis")
	}
}

func TestNestedListRoundTrip(t *testing.T) {
	nested := []interface{}{
		[]interface{}{int64(1), int64(2)},
		[]interface{}{int64(3), []interface{}{int64(4), int64(5)}},
	}
	got, ok := roundTrip(t, nested).([]interface{})
	if !ok {
		t.Fatalf("round trip did not produce []interface{}, got %T", got)
	}
	if !deepEqualSlice(got, nested) {
		t.Errorf("nested round trip mismatch: got %v, want %v", got, nested)
	}
}

func TestNestedDictRoundTrip(t *testing.T) {
	nested := map[string]interface{}{
		"a": map[string]interface{}{
			"b": map[string]interface{}{"c": int64(1)},
		},
	}
	got, ok := roundTrip(t, nested).(map[string]interface{})
	if !ok {
		t.Fatalf("round trip did not produce map[string]interface{}, got %T", got)
	}
	a, ok := got["a"].(map[string]interface{})
	if !ok {
		t.Fatalf("nested map lost its shape: got %v", got)
	}
	b, ok := a["b"].(map[string]interface{})
	if !ok || b["c"] != int64(1) {
		t.Errorf("nested round trip mismatch: got %v", got)
	}
}

func TestUnsupportedHostValue(t *testing.T) {
	if _, err := ToSandbox(struct{ X int }{1}); err == nil {
		t.Error("expected an error converting an unsupported host type")
	}
}

func deepEqualSlice(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if av, aok := a[i].([]interface{}); aok {
			bv, bok := b[i].([]interface{})
			if !bok || !deepEqualSlice(av, bv) {
				return false
			}
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameMembers(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
