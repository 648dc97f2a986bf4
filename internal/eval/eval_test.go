package eval

import (
	"bytes"
	"testing"

	"github.com/mwildehahn/monty/internal/builtins"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/parser"
	"github.com/mwildehahn/monty/internal/value"
)

// run parses and executes src, returning the value of its final
// top-level expression statement (or None) and any unhandled
// exception — the same contract pkg/monty exposes to the host.
func run(t *testing.T, src string) (value.Value, *exception.Exception) {
	t.Helper()
	mod, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out bytes.Buffer
	e := New("<test>", Limits{MaxCallDepth: 256}, &out, nil)
	return e.Run(mod)
}

func runOK(t *testing.T, src string) value.Value {
	t.Helper()
	v, exc := run(t, src)
	if exc != nil {
		t.Fatalf("unexpected exception: %s", exc.String())
	}
	return v
}

func reprOf(t *testing.T, src string) string {
	t.Helper()
	return builtins.Repr(runOK(t, src))
}

func TestArithmetic(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":       "7",
		"(1 + 2) * 3":     "9",
		"2 ** 10":         "1024",
		"7 // 2":          "3",
		"7 % 2":           "1",
		"-7 // 2":         "-4",
		"10 / 4":          "2.5",
		"2 ** 100":        "1267650600228229401496703205376",
		"1 if True else 2": "1",
	}
	for src, want := range cases {
		if got := reprOf(t, src); got != want {
			t.Errorf("%s: got %s, want %s", src, got, want)
		}
	}
}

func TestStringAndListLiterals(t *testing.T) {
	if got, want := reprOf(t, "'hello' + ' ' + 'world'"), "'hello world'"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got, want := reprOf(t, "[1, 2, 3] + [4]"), "[1, 2, 3, 4]"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestVariablesAndControlFlow(t *testing.T) {
	src := `
total = 0
for i in range(10):
    if i % 2 == 0:
        continue
    total += i
total
`
	if got, want := reprOf(t, src), "25"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestWhileBreak(t *testing.T) {
	src := `
n = 0
while True:
    n += 1
    if n == 5:
        break
n
`
	if got, want := reprOf(t, src), "5"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestFunctionsClosuresAndDefaults(t *testing.T) {
	src := `
def make_adder(x):
    def adder(y=1):
        return x + y
    return adder

add5 = make_adder(5)
add5(10) + add5()
`
	if got, want := reprOf(t, src), "21"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRecursion(t *testing.T) {
	src := `
def fact(n):
    if n <= 1:
        return 1
    return n * fact(n - 1)

fact(10)
`
	if got, want := reprOf(t, src), "3628800"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestLambda(t *testing.T) {
	if got, want := reprOf(t, "(lambda x, y=10: x + y)(5)"), "15"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGlobalAndNonlocal(t *testing.T) {
	src := `
counter = 0

def bump():
    global counter
    counter += 1

bump()
bump()
counter
`
	if got, want := reprOf(t, src), "2"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	src2 := `
def make_counter():
    n = 0
    def bump():
        nonlocal n
        n += 1
        return n
    return bump

c = make_counter()
c()
c()
c()
`
	if got, want := reprOf(t, src2), "3"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestExceptionsRaiseAndCatch(t *testing.T) {
	src := `
def risky(n):
    if n < 0:
        raise ValueError("negative")
    return n

try:
    risky(-1)
    result = "no error"
except ValueError as e:
    result = "caught: " + str(e)

result
`
	if got, want := reprOf(t, src), "'caught: negative'"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestExceptionFinallyAlwaysRuns(t *testing.T) {
	src := `
log = []

def f():
    try:
        log.append("try")
        raise RuntimeError("boom")
    finally:
        log.append("finally")

try:
    f()
except RuntimeError:
    log.append("except")

log
`
	if got, want := reprOf(t, src), "['try', 'finally', 'except']"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestExceptionReraise(t *testing.T) {
	src := `
def f():
    try:
        raise ValueError("inner")
    except ValueError:
        raise

try:
    f()
    outcome = "no error"
except ValueError as e:
    outcome = "reraised: " + str(e)

outcome
`
	if got, want := reprOf(t, src), "'reraised: inner'"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestUnhandledExceptionPropagatesToHost(t *testing.T) {
	_, exc := run(t, `raise KeyError("missing")`)
	if exc == nil {
		t.Fatal("expected an unhandled exception")
	}
	if got, want := string(exc.ExcKind), "KeyError"; got != want {
		t.Errorf("exception kind = %s, want %s", got, want)
	}
}

func TestComprehensions(t *testing.T) {
	if got, want := reprOf(t, "[x * x for x in range(5) if x % 2 == 0]"), "[0, 4, 16]"; got != want {
		t.Errorf("list comp: got %s, want %s", got, want)
	}
	if got, want := reprOf(t, "{x for x in [1, 1, 2, 3, 3]}"), "{1, 2, 3}"; got != want {
		t.Errorf("set comp: got %s, want %s", got, want)
	}
	if got, want := reprOf(t, "{x: x * x for x in range(3)}"), "{0: 0, 1: 1, 2: 4}"; got != want {
		t.Errorf("dict comp: got %s, want %s", got, want)
	}
}

func TestGeneratorExpressionMaterializesEagerly(t *testing.T) {
	// A deliberate deviation from CPython: generator expressions are
	// evaluated eagerly into a list-backed value rather than lazily;
	// list(...) over the result yields the computed values in order.
	if got, want := reprOf(t, "list(x + 1 for x in range(3))"), "[1, 2, 3]"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestComprehensionScopeDoesNotLeak(t *testing.T) {
	src := `
x = "outer"
squares = [x for x in range(3)]
x
`
	if got, want := reprOf(t, src), "'outer'"; got != want {
		t.Errorf("comprehension variable leaked into enclosing scope: got %s, want %s", got, want)
	}
}

func TestMethodDispatch(t *testing.T) {
	if got, want := reprOf(t, "'  hi  '.strip()"), "'hi'"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got, want := reprOf(t, "sorted([3, 1, 2])"), "[1, 2, 3]"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got, want := reprOf(t, "sorted(['bb', 'a', 'ccc'], key=len, reverse=True)"), "['ccc', 'bb', 'a']"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDictMethods(t *testing.T) {
	src := `
d = {"a": 1, "b": 2}
d["c"] = 3
list(d.items())
`
	if got, want := reprOf(t, src), "[('a', 1), ('b', 2), ('c', 3)]"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSliceAssignmentAndClamping(t *testing.T) {
	if got, want := reprOf(t, "[1, 2, 3, 4, 5][1:100]"), "[2, 3, 4, 5]"; got != want {
		t.Errorf("slice clamp: got %s, want %s", got, want)
	}
	if got, want := reprOf(t, "[1, 2, 3, 4, 5][-100:2]"), "[1, 2]"; got != want {
		t.Errorf("negative slice clamp: got %s, want %s", got, want)
	}
}

func TestWithStatementRunsExitOnException(t *testing.T) {
	// There is no user-defined class system, so a plain value has no
	// __enter__/__exit__; missing hooks are a documented no-op, so
	// __enter__ yields None and the body's exception simply propagates
	// once __exit__ (also missing) declines to suppress it.
	src := `
log = []
managed = 1
try:
    with managed as v:
        log.append(v)
        raise ValueError("boom")
except ValueError:
    log.append("caught")
log
`
	if got, want := reprOf(t, src), "[None, 'caught']"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
