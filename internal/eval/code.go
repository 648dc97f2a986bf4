package eval

import (
	"github.com/mwildehahn/monty/internal/ast"
)

// funcCode is the concrete type behind value.CodeRef for user-defined
// functions: the parsed parameter list and body, captured once at
// definition time.
type funcCode struct {
	params []ast.Param
	body   []ast.Stmt
	// exprBody is set for lambdas, whose body is a single expression
	// rather than a statement list; when non-nil it takes precedence
	// over body.
	exprBody ast.Expr
}

// closureScope is the concrete type behind value.Closure: the
// Environment active at the point a def/lambda statement was
// evaluated, which becomes the parent scope of every activation of
// that function.
type closureScope struct {
	env *Environment
}
