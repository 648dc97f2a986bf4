// Package exception implements Monty's closed exception-kind hierarchy
// (§3.3) and the runtime exception value that carries it. Exception
// identity is modeled the way the teacher interpreter models its class
// hierarchy for `isinstance`-style checks: a static table mapping each
// kind to its bases, walked at runtime, rather than a dynamic class
// graph — the core spec rules out runtime class creation entirely, so a
// fixed table is both sufficient and exactly what §9 ("Exception
// inheritance") prescribes.
package exception

// Kind identifies one exception class in the fixed hierarchy. The set is
// closed: scripts cannot define new kinds, and host-supplied exception
// subclasses are coerced to their nearest member (§3.3, §4.8).
type Kind string

const (
	BaseException     Kind = "BaseException"
	SystemExit        Kind = "SystemExit"
	KeyboardInterrupt Kind = "KeyboardInterrupt"
	Exception_        Kind = "Exception"
	ArithmeticError   Kind = "ArithmeticError"
	OverflowError     Kind = "OverflowError"
	ZeroDivisionError Kind = "ZeroDivisionError"
	LookupError       Kind = "LookupError"
	IndexError        Kind = "IndexError"
	KeyError          Kind = "KeyError"
	RuntimeError      Kind = "RuntimeError"
	NotImplementedErr Kind = "NotImplementedError"
	RecursionError    Kind = "RecursionError"
	AttributeError    Kind = "AttributeError"
	AssertionError    Kind = "AssertionError"
	MemoryError       Kind = "MemoryError"
	NameError         Kind = "NameError"
	SyntaxError       Kind = "SyntaxError"
	TypeError         Kind = "TypeError"
	ValueError        Kind = "ValueError"
	StopIteration     Kind = "StopIteration"
	OSError           Kind = "OSError"
	TimeoutError      Kind = "TimeoutError"
)

// parents maps each kind to its immediate base. BaseException has no
// parent (the empty Kind "" terminates the walk).
var parents = map[Kind]Kind{
	SystemExit:        BaseException,
	KeyboardInterrupt: BaseException,
	Exception_:        BaseException,
	ArithmeticError:   Exception_,
	OverflowError:     ArithmeticError,
	ZeroDivisionError: ArithmeticError,
	LookupError:       Exception_,
	IndexError:        LookupError,
	KeyError:          LookupError,
	RuntimeError:      Exception_,
	NotImplementedErr: RuntimeError,
	RecursionError:    RuntimeError,
	AttributeError:    Exception_,
	AssertionError:    Exception_,
	MemoryError:       Exception_,
	NameError:         Exception_,
	SyntaxError:       Exception_,
	TypeError:         Exception_,
	ValueError:        Exception_,
	StopIteration:     Exception_,
	OSError:           Exception_,
	TimeoutError:      OSError,
}

// allKinds lists every member of the closed hierarchy, used to validate
// Kind values coming from the host bridge and to drive the builtin
// exception-class registry exposed to scripts.
var allKinds = []Kind{
	BaseException, SystemExit, KeyboardInterrupt, Exception_,
	ArithmeticError, OverflowError, ZeroDivisionError,
	LookupError, IndexError, KeyError,
	RuntimeError, NotImplementedErr, RecursionError,
	AttributeError, AssertionError, MemoryError, NameError,
	SyntaxError, TypeError, ValueError, StopIteration,
	OSError, TimeoutError,
}

// Valid reports whether k is a member of the closed hierarchy.
func Valid(k Kind) bool {
	for _, candidate := range allKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// AllKinds returns every kind in the hierarchy (for module/registry
// population).
func AllKinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// Parent returns k's immediate base, or "" if k is BaseException or
// unknown.
func Parent(k Kind) Kind { return parents[k] }

// IsSubKind reports whether k is base or a (possibly transitive)
// descendant of base. Every kind is its own subkind.
func IsSubKind(k, base Kind) bool {
	for cur := k; cur != ""; cur = parents[cur] {
		if cur == base {
			return true
		}
	}
	return base == "" && k == ""
}

// NearestSupportedBase walks up from k until it finds a kind in
// allKinds, used to coerce host exception subclasses per §4.8 ("a host
// `int` subclass becomes plain `Int`" applies the same way to
// exceptions: an unrecognized subclass is coerced to its nearest known
// ancestor). If k itself is unknown and has no known ancestor, it falls
// back to Exception_.
func NearestSupportedBase(k Kind) Kind {
	for cur := k; cur != ""; cur = parents[cur] {
		if Valid(cur) {
			return cur
		}
	}
	return Exception_
}
