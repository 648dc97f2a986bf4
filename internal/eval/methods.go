package eval

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mwildehahn/monty/internal/builtins"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// caser drives str.upper/lower/title/capitalize with Unicode-aware
// casing (§4.3's string method set never restricted to ASCII), the way
// the pack's other interpreters reach for golang.org/x/text/cases
// rather than the byte-oriented strings.ToUpper/ToLower.
var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
	titleCaser = cases.Title(language.Und)
)

// nativeMethodDescriptor is the BoundMethod.Descriptor for every method
// on a builtin type (§4.3/§4.4's "standard method set"). These never
// appear in builtins.Registry — that table is the closed set of
// top-level functions from §4.6 — so method dispatch is a separate,
// evaluator-local lookup keyed by the receiver's kind.
type nativeMethodDescriptor struct{ name string }

func (n *nativeMethodDescriptor) Kind() value.Kind { return value.KindBuiltinFunction }
func (n *nativeMethodDescriptor) TypeName() string { return "builtin_function_or_method" }

var strMethods = methodSet(
	"split", "rsplit", "join", "strip", "lstrip", "rstrip", "replace",
	"startswith", "endswith", "upper", "lower", "encode", "find", "rfind",
	"index", "rindex", "count", "title", "capitalize", "format", "zfill",
	"ljust", "rjust", "center", "partition", "rpartition", "splitlines",
	"isdigit", "isalpha", "isalnum", "isspace", "isupper", "islower",
)

var bytesMethods = methodSet(
	"decode", "split", "join", "strip", "startswith", "endswith",
	"find", "replace", "upper", "lower", "hex",
)

var listMethods = methodSet(
	"append", "insert", "pop", "remove", "clear", "copy", "extend",
	"index", "count", "reverse", "sort",
)

var dictMethods = methodSet(
	"get", "keys", "values", "items", "pop", "popitem", "update",
	"setdefault", "clear", "copy",
)

var setMethods = methodSet(
	"add", "remove", "discard", "pop", "clear", "copy", "update",
	"union", "intersection", "difference", "symmetric_difference",
	"issubset", "issuperset", "isdisjoint",
)

var frozenSetMethods = methodSet(
	"union", "intersection", "difference", "symmetric_difference",
	"issubset", "issuperset", "isdisjoint", "copy",
)

var tupleMethods = methodSet("index", "count")

func methodSet(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// lookupMethod resolves a receiver.attr Attribute expression against the
// builtin method surface. It does not handle exception attributes
// (args, __cause__, __context__) — those are plain data fields, dealt
// with directly in evalAttribute.
func lookupMethod(receiver value.Value, name string) (value.Value, bool) {
	var table map[string]bool
	switch receiver.(type) {
	case *value.Str:
		table = strMethods
	case *value.Bytes:
		table = bytesMethods
	case *value.List:
		table = listMethods
	case *value.Dict:
		table = dictMethods
	case *value.Set:
		table = setMethods
	case *value.FrozenSet:
		table = frozenSetMethods
	case *value.Tuple:
		table = tupleMethods
	default:
		return nil, false
	}
	if !table[name] {
		return nil, false
	}
	return &value.BoundMethod{Receiver: receiver, Descriptor: &nativeMethodDescriptor{name: name}}, true
}

// callNativeMethod dispatches a bound native method call. It is an
// Evaluator method so the rare method that needs to invoke a script
// callable (list.sort(key=...)) can do so.
func (e *Evaluator) callNativeMethod(receiver value.Value, name string, args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	switch r := receiver.(type) {
	case *value.Str:
		return strMethod(r, name, args, kwargs)
	case *value.Bytes:
		return bytesMethod(r, name, args, kwargs)
	case *value.List:
		return e.listMethod(r, name, args, kwargs)
	case *value.Dict:
		return dictMethod(r, name, args, kwargs)
	case *value.Set:
		return setMethod(r, name, args, kwargs)
	case *value.FrozenSet:
		return frozenSetMethod(r, name, args, kwargs)
	case *value.Tuple:
		return tupleMethod(r, name, args, kwargs)
	}
	return nil, exception.AttributeErrorMissing(receiver.TypeName(), name)
}

func argCountErr(name string, want, got int) *exception.Exception {
	return exception.TypeErrorArgCount(name, want, got)
}

// ---- str ----

func strMethod(s *value.Str, name string, args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	text := s.String()
	switch name {
	case "upper":
		return value.NewStr(upperCaser.String(text)), nil
	case "lower":
		return value.NewStr(lowerCaser.String(text)), nil
	case "title":
		return value.NewStr(titleCaser.String(text)), nil
	case "capitalize":
		if text == "" {
			return value.NewStr(""), nil
		}
		r := []rune(lowerCaser.String(text))
		r[0] = []rune(upperCaser.String(string(r[0])))[0]
		return value.NewStr(string(r)), nil
	case "strip":
		return value.NewStr(strings.Trim(text, stripCutset(args))), nil
	case "lstrip":
		return value.NewStr(strings.TrimLeft(text, stripCutset(args))), nil
	case "rstrip":
		return value.NewStr(strings.TrimRight(text, stripCutset(args))), nil
	case "split":
		return strSplit(text, args, false)
	case "rsplit":
		return strSplit(text, args, true)
	case "splitlines":
		lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
			lines = lines[:len(lines)-1]
		}
		out := make([]value.Value, len(lines))
		for i, l := range lines {
			out[i] = value.NewStr(l)
		}
		return value.NewList(out), nil
	case "join":
		if len(args) != 1 {
			return nil, argCountErr("join", 1, len(args))
		}
		elems, exc := iterate(args[0])
		if exc != nil {
			return nil, exc
		}
		parts := make([]string, len(elems))
		for i, e := range elems {
			sv, ok := e.(*value.Str)
			if !ok {
				return nil, exception.TypeErrorBadOperandUnary("join", e.TypeName())
			}
			parts[i] = sv.String()
		}
		return value.NewStr(strings.Join(parts, text)), nil
	case "replace":
		if len(args) < 2 || len(args) > 3 {
			return nil, argCountErr("replace", 2, len(args))
		}
		old, ok1 := args[0].(*value.Str)
		newS, ok2 := args[1].(*value.Str)
		if !ok1 || !ok2 {
			return nil, exception.TypeErrorBadOperandUnary("replace", args[0].TypeName())
		}
		count := -1
		if len(args) == 3 {
			n, _ := value.AsIntValue(args[2])
			c, _ := n.Int64()
			count = int(c)
		}
		return value.NewStr(strings.Replace(text, old.String(), newS.String(), count)), nil
	case "startswith":
		return strAffix(text, args, strings.HasPrefix)
	case "endswith":
		return strAffix(text, args, strings.HasSuffix)
	case "find":
		idx, exc := strFind(text, args, false)
		if exc != nil {
			return nil, exc
		}
		return value.NewInt(int64(idx)), nil
	case "rfind":
		idx, exc := strFind(text, args, true)
		if exc != nil {
			return nil, exc
		}
		return value.NewInt(int64(idx)), nil
	case "index":
		idx, exc := strFind(text, args, false)
		if exc != nil {
			return nil, exc
		}
		if idx < 0 {
			return nil, exception.ValueErrorMessage("substring not found")
		}
		return value.NewInt(int64(idx)), nil
	case "rindex":
		idx, exc := strFind(text, args, true)
		if exc != nil {
			return nil, exc
		}
		if idx < 0 {
			return nil, exception.ValueErrorMessage("substring not found")
		}
		return value.NewInt(int64(idx)), nil
	case "count":
		if len(args) != 1 {
			return nil, argCountErr("count", 1, len(args))
		}
		sub, ok := args[0].(*value.Str)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("count", args[0].TypeName())
		}
		return value.NewInt(int64(strings.Count(text, sub.String()))), nil
	case "zfill":
		if len(args) != 1 {
			return nil, argCountErr("zfill", 1, len(args))
		}
		n, _ := value.AsIntValue(args[0])
		width, _ := n.Int64()
		return value.NewStr(zfill(text, int(width))), nil
	case "ljust":
		return padStr(text, args, true)
	case "rjust":
		return padStr(text, args, false)
	case "center":
		return centerStr(text, args)
	case "partition":
		return strPartition(text, args, false)
	case "rpartition":
		return strPartition(text, args, true)
	case "encode":
		return value.NewBytes([]byte(text)), nil
	case "isdigit":
		return value.NewBool(isAllRune(text, func(r rune) bool { return r >= '0' && r <= '9' })), nil
	case "isalpha":
		return value.NewBool(isAllRune(text, func(r rune) bool {
			return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		})), nil
	case "isalnum":
		return value.NewBool(isAllRune(text, func(r rune) bool {
			return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		})), nil
	case "isspace":
		return value.NewBool(isAllRune(text, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' })), nil
	case "isupper":
		up, low := upperCaser.String(text), lowerCaser.String(text)
		return value.NewBool(text == up && up != low), nil
	case "islower":
		up, low := upperCaser.String(text), lowerCaser.String(text)
		return value.NewBool(text == low && up != low), nil
	case "format":
		return value.NewStr(strFormat(text, args, kwargs)), nil
	}
	return nil, exception.AttributeErrorMissing("str", name)
}

func stripCutset(args []value.Value) string {
	if len(args) == 0 || value.IsNone(args[0]) {
		return " \t\n\r\v\f"
	}
	if s, ok := args[0].(*value.Str); ok {
		return s.String()
	}
	return " \t\n\r\v\f"
}

func strSplit(text string, args []value.Value, fromRight bool) (value.Value, *exception.Exception) {
	var sep string
	hasSep := false
	if len(args) >= 1 && !value.IsNone(args[0]) {
		s, ok := args[0].(*value.Str)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("split", args[0].TypeName())
		}
		sep = s.String()
		hasSep = true
	}
	maxsplit := -1
	if len(args) >= 2 && !value.IsNone(args[1]) {
		n, _ := value.AsIntValue(args[1])
		c, _ := n.Int64()
		maxsplit = int(c)
	}
	var parts []string
	if !hasSep {
		parts = strings.Fields(text)
	} else if maxsplit < 0 {
		parts = strings.Split(text, sep)
	} else if fromRight {
		parts = splitNFromRight(text, sep, maxsplit)
	} else {
		parts = strings.SplitN(text, sep, maxsplit+1)
	}
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.NewStr(p)
	}
	return value.NewList(out), nil
}

func splitNFromRight(text, sep string, n int) []string {
	all := strings.Split(text, sep)
	if len(all) <= n+1 {
		return all
	}
	head := strings.Join(all[:len(all)-n], sep)
	out := append([]string{head}, all[len(all)-n:]...)
	return out
}

func strAffix(text string, args []value.Value, f func(s, prefix string) bool) (value.Value, *exception.Exception) {
	if len(args) < 1 {
		return nil, argCountErr("startswith/endswith", 1, len(args))
	}
	s, ok := args[0].(*value.Str)
	if !ok {
		return nil, exception.TypeErrorBadOperandUnary("startswith", args[0].TypeName())
	}
	return value.NewBool(f(text, s.String())), nil
}

func strFind(text string, args []value.Value, fromRight bool) (int, *exception.Exception) {
	if len(args) < 1 {
		return 0, argCountErr("find", 1, len(args))
	}
	sub, ok := args[0].(*value.Str)
	if !ok {
		return 0, exception.TypeErrorBadOperandUnary("find", args[0].TypeName())
	}
	if fromRight {
		return strings.LastIndex(text, sub.String()), nil
	}
	return strings.Index(text, sub.String()), nil
}

func zfill(s string, width int) string {
	if len(s) >= width {
		return s
	}
	sign := ""
	body := s
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, body = s[:1], s[1:]
	}
	return sign + strings.Repeat("0", width-len(s)) + body
}

func padArgs(args []value.Value) (int, string, *exception.Exception) {
	if len(args) < 1 {
		return 0, "", argCountErr("pad", 1, len(args))
	}
	n, _ := value.AsIntValue(args[0])
	width, _ := n.Int64()
	fill := " "
	if len(args) >= 2 {
		s, ok := args[1].(*value.Str)
		if !ok || s.Len() != 1 {
			return 0, "", exception.TypeErrorBadOperandUnary("pad", args[1].TypeName())
		}
		fill = s.String()
	}
	return int(width), fill, nil
}

func padStr(text string, args []value.Value, left bool) (value.Value, *exception.Exception) {
	width, fill, exc := padArgs(args)
	if exc != nil {
		return nil, exc
	}
	n := width - len([]rune(text))
	if n <= 0 {
		return value.NewStr(text), nil
	}
	pad := strings.Repeat(fill, n)
	if left {
		return value.NewStr(text + pad), nil
	}
	return value.NewStr(pad + text), nil
}

func centerStr(text string, args []value.Value) (value.Value, *exception.Exception) {
	width, fill, exc := padArgs(args)
	if exc != nil {
		return nil, exc
	}
	n := width - len([]rune(text))
	if n <= 0 {
		return value.NewStr(text), nil
	}
	left := n / 2
	right := n - left
	return value.NewStr(strings.Repeat(fill, left) + text + strings.Repeat(fill, right)), nil
}

func strPartition(text string, args []value.Value, fromRight bool) (value.Value, *exception.Exception) {
	if len(args) != 1 {
		return nil, argCountErr("partition", 1, len(args))
	}
	sep, ok := args[0].(*value.Str)
	if !ok {
		return nil, exception.TypeErrorBadOperandUnary("partition", args[0].TypeName())
	}
	var idx int
	if fromRight {
		idx = strings.LastIndex(text, sep.String())
	} else {
		idx = strings.Index(text, sep.String())
	}
	if idx < 0 {
		if fromRight {
			return value.NewTuple([]value.Value{value.NewStr(""), value.NewStr(""), value.NewStr(text)}), nil
		}
		return value.NewTuple([]value.Value{value.NewStr(text), value.NewStr(""), value.NewStr("")}), nil
	}
	return value.NewTuple([]value.Value{
		value.NewStr(text[:idx]),
		value.NewStr(sep.String()),
		value.NewStr(text[idx+len(sep.String()):]),
	}), nil
}

func isAllRune(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

// strFormat implements the documented subset of str.format: positional
// `{}`/`{0}` and keyword `{name}` replacement fields, no nested
// conversion/format specs.
func strFormat(text string, args []value.Value, kwargs map[string]value.Value) string {
	var sb strings.Builder
	auto := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '{' && i+1 < len(text) && text[i+1] == '{' {
			sb.WriteByte('{')
			i += 2
			continue
		}
		if c == '}' && i+1 < len(text) && text[i+1] == '}' {
			sb.WriteByte('}')
			i += 2
			continue
		}
		if c == '{' {
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				sb.WriteString(text[i:])
				break
			}
			field := text[i+1 : i+end]
			sb.WriteString(formatField(field, args, kwargs, &auto))
			i += end + 1
			continue
		}
		sb.WriteByte(c)
		i++
	}
	return sb.String()
}

func formatField(field string, args []value.Value, kwargs map[string]value.Value, auto *int) string {
	if field == "" {
		idx := *auto
		*auto++
		if idx < len(args) {
			return builtins.Str(args[idx])
		}
		return ""
	}
	if n, err := strconv.Atoi(field); err == nil && n >= 0 && n < len(args) {
		return builtins.Str(args[n])
	}
	if v, ok := kwargs[field]; ok {
		return builtins.Str(v)
	}
	return ""
}

// ---- bytes ----

func bytesMethod(b *value.Bytes, name string, args []value.Value, _ map[string]value.Value) (value.Value, *exception.Exception) {
	raw := b.Value
	switch name {
	case "decode":
		return value.NewStr(string(raw)), nil
	case "hex":
		var sb strings.Builder
		for _, by := range raw {
			sb.WriteString(hexDigits[by>>4 : by>>4+1])
			sb.WriteString(hexDigits[by&0xf : by&0xf+1])
		}
		return value.NewStr(sb.String()), nil
	case "upper":
		return value.NewBytes([]byte(strings.ToUpper(string(raw)))), nil
	case "lower":
		return value.NewBytes([]byte(strings.ToLower(string(raw)))), nil
	case "startswith":
		return strAffix(string(raw), args, strings.HasPrefix)
	case "endswith":
		return strAffix(string(raw), args, strings.HasSuffix)
	case "find":
		if len(args) != 1 {
			return nil, argCountErr("find", 1, len(args))
		}
		sub, ok := args[0].(*value.Bytes)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("find", args[0].TypeName())
		}
		return value.NewInt(int64(strings.Index(string(raw), string(sub.Value)))), nil
	case "replace":
		if len(args) != 2 {
			return nil, argCountErr("replace", 2, len(args))
		}
		old, ok1 := args[0].(*value.Bytes)
		newB, ok2 := args[1].(*value.Bytes)
		if !ok1 || !ok2 {
			return nil, exception.TypeErrorBadOperandUnary("replace", args[0].TypeName())
		}
		return value.NewBytes([]byte(strings.ReplaceAll(string(raw), string(old.Value), string(newB.Value)))), nil
	case "split":
		sepBytes := []byte{}
		if len(args) >= 1 {
			sb, ok := args[0].(*value.Bytes)
			if !ok {
				return nil, exception.TypeErrorBadOperandUnary("split", args[0].TypeName())
			}
			sepBytes = sb.Value
		}
		parts := strings.Split(string(raw), string(sepBytes))
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.NewBytes([]byte(p))
		}
		return value.NewList(out), nil
	case "join":
		if len(args) != 1 {
			return nil, argCountErr("join", 1, len(args))
		}
		elems, exc := iterate(args[0])
		if exc != nil {
			return nil, exc
		}
		parts := make([]string, len(elems))
		for i, e := range elems {
			bv, ok := e.(*value.Bytes)
			if !ok {
				return nil, exception.TypeErrorBadOperandUnary("join", e.TypeName())
			}
			parts[i] = string(bv.Value)
		}
		return value.NewBytes([]byte(strings.Join(parts, string(raw)))), nil
	case "strip":
		return value.NewBytes([]byte(strings.Trim(string(raw), " \t\n\r\v\f"))), nil
	}
	return nil, exception.AttributeErrorMissing("bytes", name)
}

const hexDigits = "0123456789abcdef"

// ---- list ----

func (e *Evaluator) listMethod(l *value.List, name string, args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	switch name {
	case "append":
		if len(args) != 1 {
			return nil, argCountErr("append", 1, len(args))
		}
		l.Append(args[0])
		return value.None, nil
	case "insert":
		if len(args) != 2 {
			return nil, argCountErr("insert", 2, len(args))
		}
		n, ok := value.AsIntValue(args[0])
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("insert", args[0].TypeName())
		}
		i, _ := n.Int64()
		l.Insert(int(i), args[1])
		return value.None, nil
	case "pop":
		idx := -1
		if len(args) == 1 {
			n, _ := value.AsIntValue(args[0])
			iv, _ := n.Int64()
			idx = int(iv)
		}
		if l.Len() == 0 {
			return nil, exception.NewMessage(exception.IndexError, "pop from empty list")
		}
		v, err := l.Pop(idx)
		if err != nil {
			return nil, exception.IndexErrorOutOfRange("list")
		}
		return v, nil
	case "remove":
		if len(args) != 1 {
			return nil, argCountErr("remove", 1, len(args))
		}
		for i, e := range l.Elements() {
			eq, err := value.Equal(e, args[0])
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			if eq {
				l.RemoveAt(i)
				return value.None, nil
			}
		}
		return nil, exception.ValueErrorMessage("list.remove(x): x not in list")
	case "clear":
		l.Clear()
		return value.None, nil
	case "copy":
		return l.Copy(), nil
	case "extend":
		if len(args) != 1 {
			return nil, argCountErr("extend", 1, len(args))
		}
		elems, exc := iterate(args[0])
		if exc != nil {
			return nil, exc
		}
		l.Extend(elems)
		return value.None, nil
	case "index":
		if len(args) < 1 {
			return nil, argCountErr("index", 1, len(args))
		}
		for i, e := range l.Elements() {
			eq, err := value.Equal(e, args[0])
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			if eq {
				return value.NewInt(int64(i)), nil
			}
		}
		return nil, exception.ValueErrorMessage("value not in list")
	case "count":
		if len(args) != 1 {
			return nil, argCountErr("count", 1, len(args))
		}
		n := 0
		for _, e := range l.Elements() {
			eq, err := value.Equal(e, args[0])
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			if eq {
				n++
			}
		}
		return value.NewInt(int64(n)), nil
	case "reverse":
		l.Reverse()
		return value.None, nil
	case "sort":
		return value.None, e.sortList(l, kwargs)
	}
	return nil, exception.AttributeErrorMissing("list", name)
}

func (e *Evaluator) sortList(l *value.List, kwargs map[string]value.Value) *exception.Exception {
	key := kwargs["key"]
	reverse := false
	if r, ok := kwargs["reverse"]; ok {
		reverse = value.Truthy(r)
	}
	elems := l.Elements()
	keys := make([]value.Value, len(elems))
	for i, el := range elems {
		if key != nil && !value.IsNone(key) {
			kv, exc := e.Call(key, []value.Value{el})
			if exc != nil {
				return exc
			}
			keys[i] = kv
		} else {
			keys[i] = el
		}
	}
	idxs := make([]int, len(elems))
	for i := range idxs {
		idxs[i] = i
	}
	var sortErr *exception.Exception
	sort.SliceStable(idxs, func(a, b int) bool {
		if sortErr != nil {
			return false
		}
		lt, err := value.Less(keys[idxs[a]], keys[idxs[b]])
		if err != nil {
			sortErr = exception.NewMessage(exception.TypeError, err.Error())
			return false
		}
		return lt
	})
	if sortErr != nil {
		return sortErr
	}
	out := make([]value.Value, len(elems))
	for i, idx := range idxs {
		if reverse {
			out[len(elems)-1-i] = elems[idx]
		} else {
			out[i] = elems[idx]
		}
	}
	copy(elems, out)
	return nil
}

// ---- tuple ----

func tupleMethod(t *value.Tuple, name string, args []value.Value, _ map[string]value.Value) (value.Value, *exception.Exception) {
	switch name {
	case "index":
		if len(args) < 1 {
			return nil, argCountErr("index", 1, len(args))
		}
		for i, e := range t.Elements {
			eq, err := value.Equal(e, args[0])
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			if eq {
				return value.NewInt(int64(i)), nil
			}
		}
		return nil, exception.ValueErrorMessage("value not in tuple")
	case "count":
		if len(args) != 1 {
			return nil, argCountErr("count", 1, len(args))
		}
		n := 0
		for _, e := range t.Elements {
			eq, err := value.Equal(e, args[0])
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			if eq {
				n++
			}
		}
		return value.NewInt(int64(n)), nil
	}
	return nil, exception.AttributeErrorMissing("tuple", name)
}

// ---- dict ----

func dictMethod(d *value.Dict, name string, args []value.Value, _ map[string]value.Value) (value.Value, *exception.Exception) {
	switch name {
	case "get":
		if len(args) < 1 || len(args) > 2 {
			return nil, argCountErr("get", 1, len(args))
		}
		v, ok, err := d.GetChecked(args[0])
		if err != nil {
			return nil, exception.TypeErrorUnhashable(args[0].TypeName())
		}
		if ok {
			return v, nil
		}
		if len(args) == 2 {
			return args[1], nil
		}
		return value.None, nil
	case "keys":
		return value.NewList(d.Keys()), nil
	case "values":
		items := d.Items()
		out := make([]value.Value, len(items))
		for i, kv := range items {
			out[i] = kv[1]
		}
		return value.NewList(out), nil
	case "items":
		items := d.Items()
		out := make([]value.Value, len(items))
		for i, kv := range items {
			out[i] = value.NewTuple([]value.Value{kv[0], kv[1]})
		}
		return value.NewList(out), nil
	case "pop":
		if len(args) < 1 || len(args) > 2 {
			return nil, argCountErr("pop", 1, len(args))
		}
		v, ok, err := d.GetChecked(args[0])
		if err != nil {
			return nil, exception.TypeErrorUnhashable(args[0].TypeName())
		}
		if !ok {
			if len(args) == 2 {
				return args[1], nil
			}
			return nil, exception.KeyErrorMissing(builtinsReprStringer{args[0]})
		}
		_, _ = d.Delete(args[0])
		return v, nil
	case "popitem":
		items := d.Items()
		if len(items) == 0 {
			return nil, exception.NewMessage(exception.KeyError, "popitem(): dictionary is empty")
		}
		last := items[len(items)-1]
		_, _ = d.Delete(last[0])
		return value.NewTuple([]value.Value{last[0], last[1]}), nil
	case "update":
		if len(args) == 1 {
			if other, ok := args[0].(*value.Dict); ok {
				for _, kv := range other.Items() {
					if err := d.SetChecked(kv[0], kv[1]); err != nil {
						return nil, exception.TypeErrorUnhashable(kv[0].TypeName())
					}
				}
				return value.None, nil
			}
			elems, exc := iterate(args[0])
			if exc != nil {
				return nil, exc
			}
			for _, pair := range elems {
				tup, ok := pair.(*value.Tuple)
				if !ok || len(tup.Elements) != 2 {
					return nil, exception.ValueErrorMessage("dictionary update sequence element has wrong length")
				}
				if err := d.SetChecked(tup.Elements[0], tup.Elements[1]); err != nil {
					return nil, exception.TypeErrorUnhashable(tup.Elements[0].TypeName())
				}
			}
		}
		return value.None, nil
	case "setdefault":
		if len(args) < 1 || len(args) > 2 {
			return nil, argCountErr("setdefault", 1, len(args))
		}
		v, ok, err := d.GetChecked(args[0])
		if err != nil {
			return nil, exception.TypeErrorUnhashable(args[0].TypeName())
		}
		if ok {
			return v, nil
		}
		def := value.Value(value.None)
		if len(args) == 2 {
			def = args[1]
		}
		if err := d.SetChecked(args[0], def); err != nil {
			return nil, exception.TypeErrorUnhashable(args[0].TypeName())
		}
		return def, nil
	case "clear":
		for _, k := range d.Keys() {
			_, _ = d.Delete(k)
		}
		return value.None, nil
	case "copy":
		return d.Copy(), nil
	}
	return nil, exception.AttributeErrorMissing("dict", name)
}

// builtinsReprStringer adapts a value.Value to fmt.Stringer via repr(),
// matching CPython's KeyError(key) argument rendering.
type builtinsReprStringer struct{ v value.Value }

func (b builtinsReprStringer) String() string { return builtins.Repr(b.v) }

// ---- set / frozenset ----

func setMethod(s *value.Set, name string, args []value.Value, _ map[string]value.Value) (value.Value, *exception.Exception) {
	switch name {
	case "add":
		if len(args) != 1 {
			return nil, argCountErr("add", 1, len(args))
		}
		if err := s.Add(args[0]); err != nil {
			return nil, exception.TypeErrorUnhashable(args[0].TypeName())
		}
		return value.None, nil
	case "remove":
		if len(args) != 1 {
			return nil, argCountErr("remove", 1, len(args))
		}
		ok, err := s.Remove(args[0])
		if err != nil {
			return nil, exception.TypeErrorUnhashable(args[0].TypeName())
		}
		if !ok {
			return nil, exception.KeyErrorMissing(builtinsReprStringer{args[0]})
		}
		return value.None, nil
	case "discard":
		if len(args) != 1 {
			return nil, argCountErr("discard", 1, len(args))
		}
		_, _ = s.Remove(args[0])
		return value.None, nil
	case "pop":
		elems := s.Elements()
		if len(elems) == 0 {
			return nil, exception.NewMessage(exception.KeyError, "pop from an empty set")
		}
		v := elems[0]
		_, _ = s.Remove(v)
		return v, nil
	case "clear":
		s.Clear()
		return value.None, nil
	case "copy":
		return s.Copy(), nil
	case "update":
		for _, a := range args {
			elems, exc := iterate(a)
			if exc != nil {
				return nil, exc
			}
			for _, e := range elems {
				if err := s.Add(e); err != nil {
					return nil, exception.TypeErrorUnhashable(e.TypeName())
				}
			}
		}
		return value.None, nil
	case "union", "intersection", "difference", "symmetric_difference":
		return setAlgebra(s.Elements(), name, args)
	case "issubset":
		return setRelation(s.Elements(), args, name)
	case "issuperset":
		return setRelation(s.Elements(), args, name)
	case "isdisjoint":
		return setRelation(s.Elements(), args, name)
	}
	return nil, exception.AttributeErrorMissing("set", name)
}

func frozenSetMethod(fs *value.FrozenSet, name string, args []value.Value, _ map[string]value.Value) (value.Value, *exception.Exception) {
	switch name {
	case "union", "intersection", "difference", "symmetric_difference":
		out, exc := setAlgebra(fs.Elements, name, args)
		if exc != nil {
			return nil, exc
		}
		frozen, err := value.NewFrozenSet(out.(*value.Set).Elements())
		if err != nil {
			return nil, exception.TypeErrorUnhashable("object")
		}
		return frozen, nil
	case "issubset", "issuperset", "isdisjoint":
		return setRelation(fs.Elements, args, name)
	case "copy":
		return fs, nil
	}
	return nil, exception.AttributeErrorMissing("frozenset", name)
}

func setAlgebra(base []value.Value, op string, args []value.Value) (value.Value, *exception.Exception) {
	cur, _ := value.NewSet(base)
	for _, arg := range args {
		other, exc := iterate(arg)
		if exc != nil {
			return nil, exc
		}
		otherSet, err := value.NewSet(other)
		if err != nil {
			return nil, exception.TypeErrorUnhashable("object")
		}
		next, err := combineSets(cur, otherSet, op)
		if err != nil {
			return nil, exception.NewMessage(exception.TypeError, err.Error())
		}
		cur = next
	}
	return cur, nil
}

func combineSets(a, b *value.Set, op string) (*value.Set, error) {
	out, _ := value.NewSet(nil)
	switch op {
	case "union":
		for _, e := range a.Elements() {
			_ = out.Add(e)
		}
		for _, e := range b.Elements() {
			_ = out.Add(e)
		}
	case "intersection":
		for _, e := range a.Elements() {
			in, err := b.Contains(e)
			if err != nil {
				return nil, err
			}
			if in {
				_ = out.Add(e)
			}
		}
	case "difference":
		for _, e := range a.Elements() {
			in, err := b.Contains(e)
			if err != nil {
				return nil, err
			}
			if !in {
				_ = out.Add(e)
			}
		}
	case "symmetric_difference":
		for _, e := range a.Elements() {
			in, err := b.Contains(e)
			if err != nil {
				return nil, err
			}
			if !in {
				_ = out.Add(e)
			}
		}
		for _, e := range b.Elements() {
			in, err := a.Contains(e)
			if err != nil {
				return nil, err
			}
			if !in {
				_ = out.Add(e)
			}
		}
	}
	return out, nil
}

func setRelation(base []value.Value, args []value.Value, op string) (value.Value, *exception.Exception) {
	if len(args) != 1 {
		return nil, argCountErr(op, 1, len(args))
	}
	other, exc := iterate(args[0])
	if exc != nil {
		return nil, exc
	}
	selfSet, _ := value.NewSet(base)
	otherSet, err := value.NewSet(other)
	if err != nil {
		return nil, exception.TypeErrorUnhashable("object")
	}
	switch op {
	case "issubset":
		for _, e := range selfSet.Elements() {
			in, err := otherSet.Contains(e)
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			if !in {
				return value.False, nil
			}
		}
		return value.True, nil
	case "issuperset":
		for _, e := range otherSet.Elements() {
			in, err := selfSet.Contains(e)
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			if !in {
				return value.False, nil
			}
		}
		return value.True, nil
	case "isdisjoint":
		for _, e := range selfSet.Elements() {
			in, err := otherSet.Contains(e)
			if err != nil {
				return nil, exception.NewMessage(exception.TypeError, err.Error())
			}
			if in {
				return value.False, nil
			}
		}
		return value.True, nil
	}
	return nil, exception.NewMessage(exception.RuntimeError, "unknown set relation "+op)
}
