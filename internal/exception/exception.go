package exception

import (
	"fmt"
	"strings"

	monterrors "github.com/mwildehahn/monty/internal/errors"
	"github.com/mwildehahn/monty/internal/value"
)

// Exception is the runtime representation of a raised or caught
// exception. It implements value.Value so it can travel through the
// evaluator like any other value (assigned to a name in an `except ... as
// e` clause, stored in a list, passed to a handler), while separately
// carrying the traceback machinery from the errors package.
type Exception struct {
	ExcKind   Kind
	Args      []value.Value
	Cause     *Exception // explicit `raise ... from cause`
	Context   *Exception // implicit chaining from a handler-time raise
	Traceback monterrors.StackTrace
	suppress  bool // __suppress_context__ equivalent, set by `from None`
}

// New constructs an exception of the given kind with the given
// positional constructor arguments (mirrors BaseException.args).
func New(kind Kind, args ...value.Value) *Exception {
	return &Exception{ExcKind: kind, Args: args}
}

// NewMessage constructs a single-string-argument exception, the common
// case for builtin-raised errors.
func NewMessage(kind Kind, message string) *Exception {
	return New(kind, value.NewStr(message))
}

func (e *Exception) Kind() value.Kind   { return value.KindException }
func (e *Exception) TypeName() string   { return string(e.ExcKind) }
func (e *Exception) IsSubKind(k Kind) bool { return IsSubKind(e.ExcKind, k) }

// SetCause records an explicit `raise X from Y`. Setting a cause always
// suppresses the implicit context in str/repr rendering, matching
// `__cause__`/`__suppress_context__` semantics.
func (e *Exception) SetCause(cause *Exception) {
	e.Cause = cause
	e.suppress = true
}

// SuppressContext implements `raise X from None`.
func (e *Exception) SuppressContext() { e.suppress = true }

// Message returns the exception's display message: the sole argument's
// str() if there is exactly one, a tuple-like rendering of all args if
// there are several, or "" if there are none.
func (e *Exception) Message() string {
	switch len(e.Args) {
	case 0:
		return ""
	case 1:
		return displayArg(e.Args[0])
	default:
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = reprArg(a)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
}

// String renders the exception the way an uncaught traceback's final
// line does: "KindName: message", or bare "KindName" with no message.
func (e *Exception) String() string {
	msg := e.Message()
	if msg == "" {
		return string(e.ExcKind)
	}
	return fmt.Sprintf("%s: %s", e.ExcKind, msg)
}

// Chain returns the context to report in a traceback: the explicit
// cause if the context was suppressed, otherwise whichever of
// Cause/Context is set. A nil return means there is nothing to chain.
func (e *Exception) Chain() (*Exception, chainRelation) {
	if e.Cause != nil {
		return e.Cause, chainExplicit
	}
	if !e.suppress && e.Context != nil {
		return e.Context, chainImplicit
	}
	return nil, chainNone
}

type chainRelation int

const (
	chainNone chainRelation = iota
	chainExplicit
	chainImplicit
)

// ChainHeader returns the line CPython prints between a chained
// exception and the one that follows it, or "" if there is no chain.
func (e *Exception) ChainHeader() string {
	_, rel := e.Chain()
	switch rel {
	case chainExplicit:
		return "The above exception was the direct cause of the following exception:"
	case chainImplicit:
		return "During handling of the above exception, another exception occurred:"
	default:
		return ""
	}
}

func displayArg(v value.Value) string {
	if s, ok := v.(*value.Str); ok {
		return string(s.Runes)
	}
	return reprArg(v)
}

func reprArg(v value.Value) string {
	switch vv := v.(type) {
	case *value.Str:
		return "'" + string(vv.Runes) + "'"
	case *value.Int:
		return vv.Value.String()
	case *value.Float:
		return value.FormatFloat(vv.Value)
	case *value.Bool:
		if vv.Value {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprintf("%v", v)
	}
}
