package value

// CodeRef is an opaque reference to a user function's AST and defining
// scope metadata. The eval package defines the concrete type; value
// only needs to carry it around without inspecting it, which keeps this
// package free of a dependency on the AST.
type CodeRef any

// Closure is an opaque reference to the evaluator's enclosing scope
// chain at the point a function was defined.
type Closure any

// Function is a user-defined function or lambda, carrying the closure
// it captured at definition time.
type Function struct {
	Name    string
	Code    CodeRef
	Closure Closure
}

func (f *Function) Kind() Kind       { return KindFunction }
func (f *Function) TypeName() string { return "function" }

// BuiltinFunction references one of the fixed built-in functions (§4.6)
// by stable name; the eval/builtins package resolves Name to an
// implementation rather than Value doing string dispatch itself.
type BuiltinFunction struct {
	Name string
}

func (b *BuiltinFunction) Kind() Kind       { return KindBuiltinFunction }
func (b *BuiltinFunction) TypeName() string { return "builtin_function_or_method" }

// BoundMethod pairs a receiver with an unbound method descriptor (itself
// a Function or BuiltinFunction).
type BoundMethod struct {
	Receiver   Value
	Descriptor Value
}

func (m *BoundMethod) Kind() Kind       { return KindBoundMethod }
func (m *BoundMethod) TypeName() string { return "method" }

// Type is a first-class type object: evaluating a type name like `int`
// yields one of these.
type Type struct {
	Name string
}

func (t *Type) Kind() Kind       { return KindType }
func (t *Type) TypeName() string { return "type" }

// ModuleRef is a reference to a pre-registered module, such as
// `datetime`.
type ModuleRef struct {
	Name string
}

func (m *ModuleRef) Kind() Kind       { return KindModuleRef }
func (m *ModuleRef) TypeName() string { return "module" }

// ModuleAttr is a resolved member of a pre-registered module: either a
// type constructor (`datetime.date`) or a module/type-level function
// (`datetime.date.today`), named dotted from the module root so a
// single string dispatches the call.
type ModuleAttr struct {
	Module string
	Attr   string
}

func (m *ModuleAttr) Kind() Kind       { return KindModuleAttr }
func (m *ModuleAttr) TypeName() string { return "builtin_function_or_method" }
