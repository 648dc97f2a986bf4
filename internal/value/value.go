// Package value implements Monty's runtime value model: a tagged union
// over exactly the variants described by the core specification, with
// structural cross-variant equality, a hash function consistent with
// that equality, and arena-scoped mutable containers.
//
// The design follows the teacher interpreter's runtime value package
// (a Value interface implemented by small concrete structs, dispatched
// by type switch rather than virtual method tables) generalized from a
// statically-typed scripting language's primitives to a dynamically
// typed one's tagged union.
package value

// Value is the universal runtime value type. Every variant in the core
// spec's §3.1 value model implements it.
type Value interface {
	// Kind returns the variant discriminant.
	Kind() Kind
	// TypeName returns the value's type name as the scripting language
	// spells it (e.g. "int", "NoneType").
	TypeName() string
}

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindEllipsis
	KindNotImplemented
	KindBool
	KindInt
	KindFloat
	KindStr
	KindBytes
	KindList
	KindTuple
	KindDict
	KindSet
	KindFrozenSet
	KindRange
	KindSlice
	KindType
	KindFunction
	KindBuiltinFunction
	KindBoundMethod
	KindException
	KindModuleRef
	KindModuleAttr
	KindDate
	KindDateTime
	KindTime
	KindTimeDelta
	KindTimeZone
)

// singleton sentinel values. None/Ellipsis/NotImplemented are each a
// single shared instance so that `is` identity is trivially correct.
type noneValue struct{}
type ellipsisValue struct{}
type notImplementedValue struct{}

func (noneValue) Kind() Kind             { return KindNone }
func (noneValue) TypeName() string       { return "NoneType" }
func (ellipsisValue) Kind() Kind         { return KindEllipsis }
func (ellipsisValue) TypeName() string   { return "ellipsis" }
func (notImplementedValue) Kind() Kind   { return KindNotImplemented }
func (notImplementedValue) TypeName() string { return "NotImplementedType" }

// None, Ellipsis and NotImplemented are the three singleton sentinels.
// Comparing a Value against these with == is a valid `is` check because
// every sentinel of a given kind is this exact instance.
var (
	None           Value = noneValue{}
	Ellipsis       Value = ellipsisValue{}
	NotImplemented Value = notImplementedValue{}
)

// IsNone reports whether v is the None singleton.
func IsNone(v Value) bool { return v == None }

// Is implements the `is` operator: same singleton, same heap handle for
// mutable containers, or (implementation-defined but consistent within
// one evaluation) same identity for boxed immutables.
func Is(a, b Value) bool {
	switch av := a.(type) {
	case noneValue, ellipsisValue, notImplementedValue:
		return a == b
	case *Bool:
		bv, ok := b.(*Bool)
		return ok && av == bv
	case *List:
		bv, ok := b.(*List)
		return ok && av.handle == bv.handle
	case *Dict:
		bv, ok := b.(*Dict)
		return ok && av.handle == bv.handle
	case *Set:
		bv, ok := b.(*Set)
		return ok && av.handle == bv.handle
	default:
		return a == b
	}
}

// Truthy implements the boolean coercion used by `if`, `while`, `and`,
// `or`, `not`, and boolean contexts in general.
func Truthy(v Value) bool {
	switch vv := v.(type) {
	case noneValue:
		return false
	case *Bool:
		return vv.Value
	case *Int:
		return !vv.Value.IsZero()
	case *Float:
		return vv.Value != 0
	case *Str:
		return len(vv.Runes) != 0
	case *Bytes:
		return len(vv.Value) != 0
	case *List:
		return vv.Len() != 0
	case *Tuple:
		return len(vv.Elements) != 0
	case *Dict:
		return vv.Len() != 0
	case *Set:
		return vv.Len() != 0
	case *FrozenSet:
		return len(vv.Elements) != 0
	case *Range:
		return vv.Len() != 0
	default:
		return true
	}
}
