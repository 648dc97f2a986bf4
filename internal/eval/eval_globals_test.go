package eval

// Global name resolution edge cases: reading or mutating a global does
// not require a `global` declaration, only rebinding does (§4.5).

import "testing"

func TestNestedInnerReadsGlobalWithoutDeclaration(t *testing.T) {
	src := `
x = 42

def outer():
    def inner():
        return x  # reads global x with no 'global' keyword

    return inner()

outer()
`
	if got, want := reprOf(t, src), "42"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMutatingGlobalDictWithoutDeclaration(t *testing.T) {
	src := `
data = {'a': 1}

def add_entry():
    data['b'] = 2  # mutation, not rebinding: no 'global' needed

add_entry()
data
`
	if got, want := reprOf(t, src), "{'a': 1, 'b': 2}"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRebindingGlobalRequiresDeclaration(t *testing.T) {
	// Without `global`, an assignment inside a function creates a new
	// local binding instead of rebinding the module-level name.
	src := `
n = 1

def set_local():
    n = 2
    return n

set_local()
n
`
	if got, want := reprOf(t, src), "1"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
