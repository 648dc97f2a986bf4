package eval

// A generator expression materializes eagerly into a list-backed value
// rather than a lazy generator object — a deliberate, documented
// deviation from CPython for the subset this evaluator targets.

import "testing"

func TestGeneratorExprTypeIsList(t *testing.T) {
	src := `
gen_result = (x * 2 for x in range(5))
type(gen_result) == list
`
	if got, want := reprOf(t, src), "True"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGeneratorExprValue(t *testing.T) {
	src := `
gen_result = (x * 2 for x in range(5))
gen_result == [0, 2, 4, 6, 8]
`
	if got, want := reprOf(t, src), "True"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
