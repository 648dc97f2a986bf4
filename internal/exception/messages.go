package exception

import "fmt"

// The constructors in this file produce exceptions whose message text is
// pinned to match the reference interpreter's wording (§4.9, §7
// "Message parity"). Centralizing the wording here keeps every call
// site — builtins, the evaluator, the bridge — byte-identical instead
// of each hand-rolling its own phrasing.

// TypeErrorUnsupportedOperand builds the message CPython emits for a
// binary operator applied to incompatible types, e.g.
// "unsupported operand type(s) for +: 'int' and 'str'".
func TypeErrorUnsupportedOperand(op, leftType, rightType string) *Exception {
	return NewMessage(TypeError, fmt.Sprintf(
		"unsupported operand type(s) for %s: '%s' and '%s'", op, leftType, rightType))
}

// TypeErrorBadOperandUnary builds the message for a unary operator
// applied to an unsupported type, e.g. "bad operand type for unary -: 'str'".
func TypeErrorBadOperandUnary(op, operandType string) *Exception {
	return NewMessage(TypeError, fmt.Sprintf(
		"bad operand type for unary %s: '%s'", op, operandType))
}

// TypeErrorNotCallable builds "'<type>' object is not callable".
func TypeErrorNotCallable(typeName string) *Exception {
	return NewMessage(TypeError, fmt.Sprintf("'%s' object is not callable", typeName))
}

// TypeErrorNotIterable builds "'<type>' object is not iterable".
func TypeErrorNotIterable(typeName string) *Exception {
	return NewMessage(TypeError, fmt.Sprintf("'%s' object is not iterable", typeName))
}

// TypeErrorNotSubscriptable builds "'<type>' object is not subscriptable".
func TypeErrorNotSubscriptable(typeName string) *Exception {
	return NewMessage(TypeError, fmt.Sprintf("'%s' object is not subscriptable", typeName))
}

// TypeErrorUnhashable builds "unhashable type: '<type>'".
func TypeErrorUnhashable(typeName string) *Exception {
	return NewMessage(TypeError, fmt.Sprintf("unhashable type: '%s'", typeName))
}

// TypeErrorArgCount builds the wrong-argument-count message for a
// builtin or user function call, e.g.
// "f() takes 2 positional arguments but 3 were given".
func TypeErrorArgCount(funcName string, want, got int) *Exception {
	wantWord := "arguments"
	if want == 1 {
		wantWord = "argument"
	}
	gotWord := "were"
	if got == 1 {
		gotWord = "was"
	}
	return NewMessage(TypeError, fmt.Sprintf(
		"%s() takes %d positional %s but %d %s given", funcName, want, wantWord, got, gotWord))
}

// NameErrorUndefined builds "name '<name>' is not defined".
func NameErrorUndefined(name string) *Exception {
	return NewMessage(NameError, fmt.Sprintf("name '%s' is not defined", name))
}

// UnboundLocalError builds the message raised when a local is
// referenced before assignment within its own scope.
func UnboundLocalError(name string) *Exception {
	return NewMessage(NameError, fmt.Sprintf(
		"cannot access local variable '%s' where it is not associated with a value", name))
}

// IndexErrorOutOfRange builds "<kind> index out of range".
func IndexErrorOutOfRange(kind string) *Exception {
	return NewMessage(IndexError, fmt.Sprintf("%s index out of range", kind))
}

// KeyErrorMissing builds a KeyError whose sole argument is a str holding
// the missing key's rendering (key.String()), so the message shows the
// key's repr the way CPython's KeyError does, not a sentence.
func KeyErrorMissing(key fmt.Stringer) *Exception {
	return NewMessage(KeyError, key.String())
}

// DivisionByZero builds a ZeroDivisionError with the given message, e.g.
// "division by zero" or "integer division or modulo by zero".
func DivisionByZero(op string) *Exception {
	return NewMessage(ZeroDivisionError, op)
}

// AttributeErrorMissing builds "'<type>' object has no attribute '<name>'".
func AttributeErrorMissing(typeName, attr string) *Exception {
	return NewMessage(AttributeError, fmt.Sprintf(
		"'%s' object has no attribute '%s'", typeName, attr))
}

// ValueErrorMessage is a thin wrapper kept for symmetry with the other
// helpers so call sites never construct ValueError ad hoc.
func ValueErrorMessage(msg string) *Exception {
	return NewMessage(ValueError, msg)
}

// MissingCapability builds the OSError raised when a script calls an
// OSAccess capability the host did not register (§6 "Absent
// capabilities cause the corresponding operations to raise OSError with
// a message naming the missing capability").
func MissingCapability(name string) *Exception {
	return NewMessage(OSError, fmt.Sprintf("capability %q is not available", name))
}
