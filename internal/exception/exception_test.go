package exception

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/mwildehahn/monty/internal/value"
)

func TestIsSubKind(t *testing.T) {
	tests := []struct {
		name     string
		k        Kind
		base     Kind
		expected bool
	}{
		{"self", ValueError, ValueError, true},
		{"direct parent", ZeroDivisionError, ArithmeticError, true},
		{"transitive", ZeroDivisionError, Exception_, true},
		{"transitive to base", ZeroDivisionError, BaseException, true},
		{"unrelated", ValueError, LookupError, false},
		{"sibling", IndexError, KeyError, false},
		{"timeout under os error", TimeoutError, OSError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSubKind(tt.k, tt.base); got != tt.expected {
				t.Errorf("IsSubKind(%s, %s) = %v, want %v", tt.k, tt.base, got, tt.expected)
			}
		})
	}
}

func TestNearestSupportedBase(t *testing.T) {
	if got := NearestSupportedBase(ValueError); got != ValueError {
		t.Errorf("expected ValueError to map to itself, got %s", got)
	}
	if got := NearestSupportedBase(Kind("SomeHostSubclass")); got != Exception_ {
		t.Errorf("expected unknown kind to fall back to Exception, got %s", got)
	}
}

func TestExceptionMessage(t *testing.T) {
	e := NewMessage(ValueError, "bad input")
	snaps.MatchSnapshot(t, "message="+e.Message()+" str="+e.String())
}

func TestExceptionNoArgs(t *testing.T) {
	e := New(RuntimeError)
	snaps.MatchSnapshot(t, "message="+e.Message()+" str="+e.String())
}

func TestExceptionMultipleArgs(t *testing.T) {
	e := New(ValueError, value.NewInt(1), value.NewStr("two"))
	snaps.MatchSnapshot(t, e.Message())
}

func TestExceptionChain(t *testing.T) {
	cause := NewMessage(ValueError, "root cause")
	wrapped := NewMessage(RuntimeError, "wrapper")
	wrapped.SetCause(cause)

	got, rel := wrapped.Chain()
	if got != cause || rel != chainExplicit {
		t.Errorf("expected explicit chain to cause, got %v rel %v", got, rel)
	}
	if wrapped.ChainHeader() != "The above exception was the direct cause of the following exception:" {
		t.Errorf("unexpected chain header: %q", wrapped.ChainHeader())
	}
}

func TestExceptionContextSuppressed(t *testing.T) {
	ctx := NewMessage(ValueError, "context")
	wrapped := NewMessage(RuntimeError, "wrapper")
	wrapped.Context = ctx
	wrapped.SuppressContext()

	got, rel := wrapped.Chain()
	if got != nil || rel != chainNone {
		t.Errorf("expected no chain once context is suppressed, got %v rel %v", got, rel)
	}
}

func TestMessageHelpers(t *testing.T) {
	snaps.MatchSnapshot(t, []string{
		TypeErrorUnsupportedOperand("+", "int", "str").Message(),
		TypeErrorArgCount("f", 1, 2).Message(),
		NameErrorUndefined("x").Message(),
		AttributeErrorMissing("list", "foo").Message(),
	})
}
