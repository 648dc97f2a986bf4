package builtins

import (
	"fmt"
	"strings"

	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// Str renders v the way the script-level str() would: for Str itself
// this is the raw text (no quoting); every other kind falls back to
// Repr. Exported because the evaluator's str() builtin and the `%s`
// string formatting operator both need identical rendering.
func Str(v value.Value) string {
	if s, ok := v.(*value.Str); ok {
		return s.String()
	}
	if exc, ok := v.(*exception.Exception); ok {
		return exc.String()
	}
	switch vv := v.(type) {
	case *value.Date:
		return vv.V.String()
	case *value.DateTime:
		return vv.V.String()
	case *value.Time:
		return vv.V.String()
	case *value.TimeDelta:
		return vv.V.String()
	case *value.TimeZone:
		return vv.V.String()
	}
	return Repr(v)
}

// Repr renders v the way the script-level repr() would, with
// cycle-aware handling for the mutable container kinds per the
// containment model's cycle rule.
func Repr(v value.Value) string {
	return reprSeen(v, map[interface{}]bool{})
}

func reprSeen(v value.Value, seen map[interface{}]bool) string {
	switch vv := v.(type) {
	case nil:
		return "None"
	case *value.Bool:
		if vv.Value {
			return "True"
		}
		return "False"
	case *value.Int:
		return vv.Value.String()
	case *value.Float:
		return value.FormatFloat(vv.Value)
	case *value.Str:
		return reprString(vv.Runes)
	case *value.Bytes:
		return reprBytes(vv.Value)
	case *value.List:
		if seen[vv] {
			return "[...]"
		}
		seen[vv] = true
		defer delete(seen, vv)
		parts := make([]string, vv.Len())
		for i, e := range vv.Elements() {
			parts[i] = reprSeen(e, seen)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *value.Tuple:
		parts := make([]string, len(vv.Elements))
		for i, e := range vv.Elements {
			parts[i] = reprSeen(e, seen)
		}
		if len(parts) == 1 {
			return "(" + parts[0] + ",)"
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *value.Dict:
		if seen[vv] {
			return "{...}"
		}
		seen[vv] = true
		defer delete(seen, vv)
		parts := make([]string, 0, vv.Len())
		for _, kv := range vv.Items() {
			parts = append(parts, reprSeen(kv[0], seen)+": "+reprSeen(kv[1], seen))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *value.Set:
		if vv.Len() == 0 {
			return "set()"
		}
		if seen[vv] {
			return "{...}"
		}
		seen[vv] = true
		defer delete(seen, vv)
		parts := make([]string, 0, vv.Len())
		for _, e := range vv.Elements() {
			parts = append(parts, reprSeen(e, seen))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *value.FrozenSet:
		if len(vv.Elements) == 0 {
			return "frozenset()"
		}
		parts := make([]string, len(vv.Elements))
		for i, e := range vv.Elements {
			parts[i] = reprSeen(e, seen)
		}
		return "frozenset({" + strings.Join(parts, ", ") + "})"
	case *value.Range:
		if vv.Step == 1 {
			return fmt.Sprintf("range(%d, %d)", vv.Start, vv.Stop)
		}
		return fmt.Sprintf("range(%d, %d, %d)", vv.Start, vv.Stop, vv.Step)
	case *value.Type:
		return fmt.Sprintf("<class '%s'>", vv.Name)
	case *value.Function:
		return fmt.Sprintf("<function %s>", vv.Name)
	case *value.BuiltinFunction:
		return fmt.Sprintf("<built-in function %s>", vv.Name)
	case *exception.Exception:
		return vv.String()
	case *value.Date:
		return vv.V.Repr()
	case *value.DateTime:
		return vv.V.Repr()
	case *value.Time:
		return vv.V.Repr()
	case *value.TimeDelta:
		return vv.V.Repr()
	case *value.TimeZone:
		return vv.V.Repr()
	default:
		if value.IsNone(v) {
			return "None"
		}
		if v == value.Ellipsis {
			return "Ellipsis"
		}
		if v == value.NotImplemented {
			return "NotImplemented"
		}
		return fmt.Sprintf("<%s object>", v.TypeName())
	}
}

func reprString(runes []rune) string {
	quote := byte('\'')
	hasSingle, hasDouble := false, false
	for _, r := range runes {
		if r == '\'' {
			hasSingle = true
		}
		if r == '"' {
			hasDouble = true
		}
	}
	if hasSingle && !hasDouble {
		quote = '"'
	}
	var sb strings.Builder
	sb.WriteByte(quote)
	for _, r := range runes {
		switch r {
		case rune(quote):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}

func reprBytes(bs []byte) string {
	var sb strings.Builder
	sb.WriteString("b'")
	for _, b := range bs {
		switch {
		case b == '\'':
			sb.WriteString(`\'`)
		case b == '\\':
			sb.WriteString(`\\`)
		case b == '\n':
			sb.WriteString(`\n`)
		case b == '\r':
			sb.WriteString(`\r`)
		case b == '\t':
			sb.WriteString(`\t`)
		case b >= 0x20 && b < 0x7f:
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, `\x%02x`, b)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
