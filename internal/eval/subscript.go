package eval

import (
	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// sliceBounds resolves a `a:b:c` slice descriptor against a sequence of
// the given length, applying Python's clamping rule (out-of-range
// indices clamp silently rather than raising, per §4.4).
func sliceBounds(sl *value.Slice, length int) (start, stop, step int) {
	step = 1
	if sl.Step != nil && !value.IsNone(sl.Step) {
		n, _ := value.AsIntValue(sl.Step)
		v, _ := n.Int64()
		step = int(v)
		if step == 0 {
			step = 1
		}
	}
	if step > 0 {
		start, stop = 0, length
	} else {
		start, stop = length-1, -length-1
	}
	if sl.Start != nil && !value.IsNone(sl.Start) {
		start = clampSliceIndex(sl.Start, length, step > 0, true)
	}
	if sl.Stop != nil && !value.IsNone(sl.Stop) {
		stop = clampSliceIndex(sl.Stop, length, step > 0, false)
	}
	return start, stop, step
}

func clampSliceIndex(v value.Value, length int, forward, isStart bool) int {
	n, _ := value.AsIntValue(v)
	i64, _ := n.Int64()
	i := int(i64)
	if i < 0 {
		i += length
	}
	if forward {
		if i < 0 {
			i = 0
		}
		if i > length {
			i = length
		}
	} else {
		if i < -1 {
			i = -1
		}
		if i >= length {
			i = length - 1
		}
	}
	return i
}

// evalSubscriptIndex evaluates a Subscript's Index, producing either a
// resolved Slice descriptor or a plain index value.
func (e *Evaluator) evalSubscriptIndex(env *Environment, idx ast.Expr) (value.Value, *exception.Exception) {
	if se, ok := idx.(*ast.SliceExpr); ok {
		var lower, upper, step value.Value = value.None, value.None, value.None
		if se.Lower != nil {
			v, exc := e.evalExpr(env, se.Lower)
			if exc != nil {
				return nil, exc
			}
			lower = v
		}
		if se.Upper != nil {
			v, exc := e.evalExpr(env, se.Upper)
			if exc != nil {
				return nil, exc
			}
			upper = v
		}
		if se.Step != nil {
			v, exc := e.evalExpr(env, se.Step)
			if exc != nil {
				return nil, exc
			}
			step = v
		}
		return &value.Slice{Start: lower, Stop: upper, Step: step}, nil
	}
	return e.evalExpr(env, idx)
}

// subscriptGet implements `container[index]` for both the plain-index
// and slice forms.
func subscriptGet(container, index value.Value) (value.Value, *exception.Exception) {
	if sl, ok := index.(*value.Slice); ok {
		return sliceGet(container, sl)
	}
	switch c := container.(type) {
	case *value.List:
		n, ok := value.AsIntValue(index)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("list indices", index.TypeName())
		}
		i, _ := n.Int64()
		v, err := c.Get(int(i))
		if err != nil {
			return nil, exception.IndexErrorOutOfRange("list")
		}
		return v, nil
	case *value.Tuple:
		n, ok := value.AsIntValue(index)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("tuple indices", index.TypeName())
		}
		i, _ := n.Int64()
		idx := int(i)
		if idx < 0 {
			idx += len(c.Elements)
		}
		if idx < 0 || idx >= len(c.Elements) {
			return nil, exception.IndexErrorOutOfRange("tuple")
		}
		return c.Elements[idx], nil
	case *value.Str:
		n, ok := value.AsIntValue(index)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("string indices", index.TypeName())
		}
		i, _ := n.Int64()
		idx := int(i)
		if idx < 0 {
			idx += len(c.Runes)
		}
		if idx < 0 || idx >= len(c.Runes) {
			return nil, exception.IndexErrorOutOfRange("string")
		}
		return value.NewStrFromRunes([]rune{c.Runes[idx]}), nil
	case *value.Bytes:
		n, ok := value.AsIntValue(index)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("bytes indices", index.TypeName())
		}
		i, _ := n.Int64()
		idx := int(i)
		if idx < 0 {
			idx += len(c.Value)
		}
		if idx < 0 || idx >= len(c.Value) {
			return nil, exception.IndexErrorOutOfRange("bytes")
		}
		return value.NewInt(int64(c.Value[idx])), nil
	case *value.Dict:
		v, found, err := c.GetChecked(index)
		if err != nil {
			return nil, exception.TypeErrorUnhashable(index.TypeName())
		}
		if !found {
			return nil, exception.KeyErrorMissing(builtinsReprStringer{index})
		}
		return v, nil
	case *value.Range:
		n, ok := value.AsIntValue(index)
		if !ok {
			return nil, exception.TypeErrorBadOperandUnary("range indices", index.TypeName())
		}
		i, _ := n.Int64()
		v, ok := c.At(i)
		if !ok {
			return nil, exception.IndexErrorOutOfRange("range")
		}
		return value.NewInt(v), nil
	}
	return nil, exception.TypeErrorNotSubscriptable(container.TypeName())
}

func sliceGet(container value.Value, sl *value.Slice) (value.Value, *exception.Exception) {
	switch c := container.(type) {
	case *value.List:
		start, stop, step := sliceBounds(sl, c.Len())
		return value.NewList(c.Slice(start, stop, step)), nil
	case *value.Tuple:
		start, stop, step := sliceBounds(sl, len(c.Elements))
		return value.NewTuple(c.Slice(start, stop, step)), nil
	case *value.Str:
		start, stop, step := sliceBounds(sl, len(c.Runes))
		runes := sliceRunes(c.Runes, start, stop, step)
		return value.NewStrFromRunes(runes), nil
	case *value.Bytes:
		start, stop, step := sliceBounds(sl, len(c.Value))
		return value.NewBytes(sliceBytes(c.Value, start, stop, step)), nil
	}
	return nil, exception.TypeErrorNotSubscriptable(container.TypeName())
}

func sliceRunes(rs []rune, start, stop, step int) []rune {
	var out []rune
	if step > 0 {
		for i := start; i < stop && i < len(rs); i += step {
			if i >= 0 {
				out = append(out, rs[i])
			}
		}
	} else if step < 0 {
		for i := start; i > stop && i >= 0; i += step {
			if i < len(rs) {
				out = append(out, rs[i])
			}
		}
	}
	return out
}

func sliceBytes(bs []byte, start, stop, step int) []byte {
	var out []byte
	if step > 0 {
		for i := start; i < stop && i < len(bs); i += step {
			if i >= 0 {
				out = append(out, bs[i])
			}
		}
	} else if step < 0 {
		for i := start; i > stop && i >= 0; i += step {
			if i < len(bs) {
				out = append(out, bs[i])
			}
		}
	}
	return out
}

// subscriptSet implements `container[index] = value` for a plain index
// on a list or dict, and for a step-1 list slice; assigning to any
// other slice raises ValueError.
func subscriptSet(container, index, v value.Value) *exception.Exception {
	if sl, ok := index.(*value.Slice); ok {
		l, ok := container.(*value.List)
		if !ok {
			return exception.TypeErrorNotSubscriptable(container.TypeName())
		}
		start, stop, step := sliceBounds(sl, l.Len())
		if step != 1 {
			return exception.NewMessage(exception.ValueError, "attempt to assign sequence to extended slice")
		}
		elems, exc := iterate(v)
		if exc != nil {
			return exc
		}
		replaceListSlice(l, start, stop, elems)
		return nil
	}
	switch c := container.(type) {
	case *value.List:
		n, ok := value.AsIntValue(index)
		if !ok {
			return exception.TypeErrorBadOperandUnary("list indices", index.TypeName())
		}
		i, _ := n.Int64()
		if err := c.Set(int(i), v); err != nil {
			return exception.IndexErrorOutOfRange("list assignment")
		}
		return nil
	case *value.Dict:
		if err := c.SetChecked(index, v); err != nil {
			return exception.TypeErrorUnhashable(index.TypeName())
		}
		return nil
	}
	return exception.TypeErrorNotSubscriptable(container.TypeName())
}

func replaceListSlice(l *value.List, start, stop int, elems []value.Value) {
	if start > stop {
		stop = start
	}
	out := append([]value.Value{}, l.Slice(0, start, 1)...)
	out = append(out, elems...)
	out = append(out, l.Slice(stop, l.Len(), 1)...)
	l.Clear()
	l.Extend(out)
}

func subscriptDelete(container, index value.Value) *exception.Exception {
	switch c := container.(type) {
	case *value.List:
		n, ok := value.AsIntValue(index)
		if !ok {
			return exception.TypeErrorBadOperandUnary("list indices", index.TypeName())
		}
		i, _ := n.Int64()
		if _, err := c.Pop(int(i)); err != nil {
			return exception.IndexErrorOutOfRange("list assignment")
		}
		return nil
	case *value.Dict:
		ok, err := c.Delete(index)
		if err != nil {
			return exception.TypeErrorUnhashable(index.TypeName())
		}
		if !ok {
			return exception.KeyErrorMissing(builtinsReprStringer{index})
		}
		return nil
	}
	return exception.TypeErrorNotSubscriptable(container.TypeName())
}
