package parser

import (
	"testing"

	"github.com/mwildehahn/monty/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	m, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return m
}

func TestParseSimpleAssign(t *testing.T) {
	m := mustParse(t, "x = 1 + 2\n")
	if len(m.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(m.Body))
	}
	assign, ok := m.Body[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", m.Body[0])
	}
	if len(assign.Targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(assign.Targets))
	}
	if _, ok := assign.Targets[0].(*ast.Name); !ok {
		t.Fatalf("expected Name target, got %T", assign.Targets[0])
	}
	bin, ok := assign.Value.(*ast.BinOp)
	if !ok {
		t.Fatalf("expected BinOp value, got %T", assign.Value)
	}
	if bin.Op != "+" {
		t.Fatalf("expected '+', got %q", bin.Op)
	}
}

func TestParseChainedAssign(t *testing.T) {
	m := mustParse(t, "a = b = 1\n")
	assign := m.Body[0].(*ast.Assign)
	if len(assign.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(assign.Targets))
	}
	if n, ok := assign.Targets[0].(*ast.Name); !ok || n.Id != "a" {
		t.Fatalf("expected target 'a', got %#v", assign.Targets[0])
	}
	if n, ok := assign.Targets[1].(*ast.Name); !ok || n.Id != "b" {
		t.Fatalf("expected target 'b', got %#v", assign.Targets[1])
	}
}

func TestParseIfElif(t *testing.T) {
	src := "if x:\n    y = 1\nelif z:\n    y = 2\nelse:\n    y = 3\n"
	m := mustParse(t, src)
	ifst, ok := m.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", m.Body[0])
	}
	if len(ifst.Body) != 1 {
		t.Fatalf("expected 1 body stmt, got %d", len(ifst.Body))
	}
	if len(ifst.Orelse) != 1 {
		t.Fatalf("expected elif desugared into single orelse stmt, got %d", len(ifst.Orelse))
	}
	elif, ok := ifst.Orelse[0].(*ast.If)
	if !ok {
		t.Fatalf("expected nested *ast.If, got %T", ifst.Orelse[0])
	}
	if len(elif.Orelse) != 1 {
		t.Fatalf("expected else body, got %d stmts", len(elif.Orelse))
	}
}

func TestParseFunctionDef(t *testing.T) {
	src := "def add(a, b=1):\n    return a + b\n"
	m := mustParse(t, src)
	fn, ok := m.Body[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("expected *ast.FunctionDef, got %T", m.Body[0])
	}
	if fn.Name != "add" {
		t.Fatalf("expected name 'add', got %q", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[1].Default == nil {
		t.Fatalf("expected default for 'b'")
	}
	ret, ok := fn.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", fn.Body[0])
	}
	if _, ok := ret.Value.(*ast.BinOp); !ok {
		t.Fatalf("expected BinOp return value, got %T", ret.Value)
	}
}

func TestParseForTupleTarget(t *testing.T) {
	m := mustParse(t, "for k, v in items:\n    pass\n")
	forst := m.Body[0].(*ast.For)
	tup, ok := forst.Target.(*ast.TupleLit)
	if !ok {
		t.Fatalf("expected TupleLit target, got %T", forst.Target)
	}
	if len(tup.Elts) != 2 {
		t.Fatalf("expected 2 target elements, got %d", len(tup.Elts))
	}
}

func TestParseTryExceptFinally(t *testing.T) {
	src := "try:\n    x = 1\nexcept ValueError as e:\n    x = 2\nfinally:\n    x = 3\n"
	m := mustParse(t, src)
	tr, ok := m.Body[0].(*ast.Try)
	if !ok {
		t.Fatalf("expected *ast.Try, got %T", m.Body[0])
	}
	if len(tr.Handlers) != 1 {
		t.Fatalf("expected 1 handler, got %d", len(tr.Handlers))
	}
	if tr.Handlers[0].Name != "e" {
		t.Fatalf("expected handler name 'e', got %q", tr.Handlers[0].Name)
	}
	if len(tr.Finally) != 1 {
		t.Fatalf("expected finally body, got %d stmts", len(tr.Finally))
	}
}

func TestParseComparisonChain(t *testing.T) {
	m := mustParse(t, "x = 1 < 2 <= 3\n")
	assign := m.Body[0].(*ast.Assign)
	cmp, ok := assign.Value.(*ast.Compare)
	if !ok {
		t.Fatalf("expected *ast.Compare, got %T", assign.Value)
	}
	if len(cmp.Ops) != 2 || cmp.Ops[0] != "<" || cmp.Ops[1] != "<=" {
		t.Fatalf("unexpected ops: %v", cmp.Ops)
	}
}

func TestParseNotIn(t *testing.T) {
	m := mustParse(t, "x = a not in b\n")
	assign := m.Body[0].(*ast.Assign)
	cmp := assign.Value.(*ast.Compare)
	if cmp.Ops[0] != "not in" {
		t.Fatalf("expected 'not in', got %q", cmp.Ops[0])
	}
}

func TestParseBoolAndPrecedence(t *testing.T) {
	m := mustParse(t, "x = a or b and c\n")
	assign := m.Body[0].(*ast.Assign)
	or, ok := assign.Value.(*ast.BoolOp)
	if !ok || or.Op != "or" {
		t.Fatalf("expected top-level 'or', got %#v", assign.Value)
	}
	if _, ok := or.Values[1].(*ast.BoolOp); !ok {
		t.Fatalf("expected 'and' nested under 'or', got %T", or.Values[1])
	}
}

func TestParseListCompAndCall(t *testing.T) {
	m := mustParse(t, "x = [f(i) for i in range(10) if i % 2 == 0]\n")
	assign := m.Body[0].(*ast.Assign)
	comp, ok := assign.Value.(*ast.ListComp)
	if !ok {
		t.Fatalf("expected *ast.ListComp, got %T", assign.Value)
	}
	call, ok := comp.Elt.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call element, got %T", comp.Elt)
	}
	if name, ok := call.Func.(*ast.Name); !ok || name.Id != "f" {
		t.Fatalf("expected call to 'f', got %#v", call.Func)
	}
	if len(comp.Generator.Ifs) != 1 {
		t.Fatalf("expected 1 'if' clause, got %d", len(comp.Generator.Ifs))
	}
}

func TestParseDictAndSlice(t *testing.T) {
	m := mustParse(t, "x = {'a': 1, 'b': 2}[k:1:2]\n")
	assign := m.Body[0].(*ast.Assign)
	sub, ok := assign.Value.(*ast.Subscript)
	if !ok {
		t.Fatalf("expected *ast.Subscript, got %T", assign.Value)
	}
	if _, ok := sub.Value.(*ast.DictLit); !ok {
		t.Fatalf("expected DictLit base, got %T", sub.Value)
	}
	if _, ok := sub.Index.(*ast.SliceExpr); !ok {
		t.Fatalf("expected SliceExpr index, got %T", sub.Index)
	}
}

func TestParseLambdaAndTernary(t *testing.T) {
	m := mustParse(t, "f = lambda x: x if x > 0 else -x\n")
	assign := m.Body[0].(*ast.Assign)
	lam, ok := assign.Value.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected *ast.Lambda, got %T", assign.Value)
	}
	if _, ok := lam.Body.(*ast.IfExp); !ok {
		t.Fatalf("expected IfExp body, got %T", lam.Body)
	}
}

func TestParseAugAssign(t *testing.T) {
	m := mustParse(t, "x += 1\n")
	aug, ok := m.Body[0].(*ast.AugAssign)
	if !ok {
		t.Fatalf("expected *ast.AugAssign, got %T", m.Body[0])
	}
	if aug.Op != "+" {
		t.Fatalf("expected op '+', got %q", aug.Op)
	}
}

func TestParseWithStatement(t *testing.T) {
	m := mustParse(t, "with open('f') as fh:\n    pass\n")
	w, ok := m.Body[0].(*ast.With)
	if !ok {
		t.Fatalf("expected *ast.With, got %T", m.Body[0])
	}
	if len(w.Items) != 1 || w.Items[0].Target == nil {
		t.Fatalf("expected 1 with-item with target")
	}
}

func TestParseRaiseFrom(t *testing.T) {
	m := mustParse(t, "raise ValueError('bad') from err\n")
	r, ok := m.Body[0].(*ast.Raise)
	if !ok {
		t.Fatalf("expected *ast.Raise, got %T", m.Body[0])
	}
	if r.Cause == nil {
		t.Fatalf("expected cause expression")
	}
}

func TestParseAttributeAndMethodCallChain(t *testing.T) {
	m := mustParse(t, "x = obj.method(1).other\n")
	assign := m.Body[0].(*ast.Assign)
	attr, ok := assign.Value.(*ast.Attribute)
	if !ok {
		t.Fatalf("expected *ast.Attribute, got %T", assign.Value)
	}
	if attr.Attr != "other" {
		t.Fatalf("expected attr 'other', got %q", attr.Attr)
	}
	call, ok := attr.Value.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", attr.Value)
	}
	inner, ok := call.Func.(*ast.Attribute)
	if !ok || inner.Attr != "method" {
		t.Fatalf("expected attribute 'method', got %#v", call.Func)
	}
}
