// Package parser implements a recursive-descent/precedence-climbing
// parser over the lexer's token stream, producing the AST the
// evaluator walks. Like the lexer, it covers the script subset: no
// decorators, no async/await, no structural pattern matching, no
// walrus operator, single-clause comprehensions only.
package parser

import (
	"fmt"

	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/errors"
	"github.com/mwildehahn/monty/internal/lexer"
)

// Parser consumes a pre-lexed token slice.
type Parser struct {
	toks []lexer.Token
	pos  int
	src  string
}

// Parse lexes and parses src in one call, returning the module AST or
// the first syntax error encountered.
func Parse(src string) (*ast.Module, error) {
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks, src: src}
	return p.parseModule()
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) at(k lexer.TokenKind) bool { return p.cur().Kind == k }

// peekNext returns the token after the current one, or the current
// token itself at end of stream (always EOF there).
func (p *Parser) peekNext() lexer.Token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k lexer.TokenKind, what string) (lexer.Token, error) {
	if !p.at(k) {
		return lexer.Token{}, p.errorf("expected %s, got %q", what, p.cur().Text)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	pos := p.cur().Pos
	return &errors.CompilerError{Message: fmt.Sprintf(format, args...), Pos: pos, Source: p.src}
}

func pos(t lexer.Token) ast.Base { return ast.Base{Position: t.Pos} }

func (p *Parser) parseModule() (*ast.Module, error) {
	m := &ast.Module{}
	for !p.at(lexer.EOF) {
		if p.at(lexer.NEWLINE) {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		m.Body = append(m.Body, stmt...)
	}
	return m, nil
}

// parseStatement returns a slice because a simple_stmt line may hold
// several semicolon-separated statements.
func (p *Parser) parseStatement() ([]ast.Stmt, error) {
	switch p.cur().Kind {
	case lexer.KwIf:
		s, err := p.parseIf()
		return []ast.Stmt{s}, err
	case lexer.KwWhile:
		s, err := p.parseWhile()
		return []ast.Stmt{s}, err
	case lexer.KwFor:
		s, err := p.parseFor()
		return []ast.Stmt{s}, err
	case lexer.KwDef:
		s, err := p.parseFunctionDef()
		return []ast.Stmt{s}, err
	case lexer.KwTry:
		s, err := p.parseTry()
		return []ast.Stmt{s}, err
	case lexer.KwWith:
		s, err := p.parseWith()
		return []ast.Stmt{s}, err
	default:
		return p.parseSimpleStmtLine()
	}
}

func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(lexer.Colon, "':'"); err != nil {
		return nil, err
	}
	if p.at(lexer.NEWLINE) {
		p.advance()
		if _, err := p.expect(lexer.INDENT, "indented block"); err != nil {
			return nil, err
		}
		var body []ast.Stmt
		for !p.at(lexer.DEDENT) && !p.at(lexer.EOF) {
			if p.at(lexer.NEWLINE) {
				p.advance()
				continue
			}
			stmts, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			body = append(body, stmts...)
		}
		if p.at(lexer.DEDENT) {
			p.advance()
		}
		return body, nil
	}
	// Single-line suite: `if x: y`.
	return p.parseSimpleStmtLine()
}

func (p *Parser) parseSimpleStmtLine() ([]ast.Stmt, error) {
	var out []ast.Stmt
	for {
		s, err := p.parseSimpleStmt()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		if p.at(lexer.Semicolon) {
			p.advance()
			if p.at(lexer.NEWLINE) || p.at(lexer.EOF) {
				break
			}
			continue
		}
		break
	}
	if p.at(lexer.NEWLINE) {
		p.advance()
	}
	return out, nil
}

func (p *Parser) parseSimpleStmt() (ast.Stmt, error) {
	t := p.cur()
	switch t.Kind {
	case lexer.KwReturn:
		p.advance()
		if p.at(lexer.NEWLINE) || p.at(lexer.Semicolon) || p.at(lexer.EOF) || p.at(lexer.DEDENT) {
			return &ast.Return{Base: pos(t)}, nil
		}
		v, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return &ast.Return{Base: pos(t), Value: v}, nil
	case lexer.KwBreak:
		p.advance()
		return &ast.Break{Base: pos(t)}, nil
	case lexer.KwContinue:
		p.advance()
		return &ast.Continue{Base: pos(t)}, nil
	case lexer.KwPass:
		p.advance()
		return &ast.Pass{Base: pos(t)}, nil
	case lexer.KwRaise:
		return p.parseRaise()
	case lexer.KwGlobal:
		return p.parseGlobal()
	case lexer.KwNonlocal:
		return p.parseNonlocal()
	case lexer.KwAssert:
		return p.parseAssert()
	case lexer.KwImport:
		return p.parseImport()
	default:
		return p.parseExprOrAssignStmt()
	}
}

// parseImport handles `import module [as alias]`. Dotted module paths
// and `from X import Y` are not needed by any pre-registered module
// this evaluator exposes, so only the bare form is supported.
func (p *Parser) parseImport() (ast.Stmt, error) {
	t := p.advance()
	nameTok, err := p.expect(lexer.NAME, "module name")
	if err != nil {
		return nil, err
	}
	imp := &ast.Import{Base: pos(t), Module: nameTok.Text}
	if p.at(lexer.KwAs) {
		p.advance()
		aliasTok, err := p.expect(lexer.NAME, "alias name")
		if err != nil {
			return nil, err
		}
		imp.Alias = aliasTok.Text
	}
	return imp, nil
}

func (p *Parser) parseGlobal() (ast.Stmt, error) {
	t := p.advance()
	var names []string
	for {
		n, err := p.expect(lexer.NAME, "name")
		if err != nil {
			return nil, err
		}
		names = append(names, n.Text)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	return &ast.Global{Base: pos(t), Names: names}, nil
}

func (p *Parser) parseNonlocal() (ast.Stmt, error) {
	t := p.advance()
	var names []string
	for {
		n, err := p.expect(lexer.NAME, "name")
		if err != nil {
			return nil, err
		}
		names = append(names, n.Text)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	return &ast.Nonlocal{Base: pos(t), Names: names}, nil
}

func (p *Parser) parseAssert(e ...struct{}) (ast.Stmt, error) {
	t := p.advance()
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	a := &ast.Assert{Base: pos(t), Test: test}
	if p.at(lexer.Comma) {
		p.advance()
		msg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		a.Msg = msg
	}
	return a, nil
}

func (p *Parser) parseRaise() (ast.Stmt, error) {
	t := p.advance()
	r := &ast.Raise{Base: pos(t)}
	if p.at(lexer.NEWLINE) || p.at(lexer.Semicolon) || p.at(lexer.EOF) {
		return r, nil
	}
	exc, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	r.Exc = exc
	if p.at(lexer.KwFrom) {
		p.advance()
		cause, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		r.Cause = cause
	}
	return r, nil
}

// parseExprOrAssignStmt handles expression statements, assignment,
// augmented assignment, and annotated assignment, which all start the
// same way (an expression).
func (p *Parser) parseExprOrAssignStmt() (ast.Stmt, error) {
	start := p.cur()
	first, err := p.parseExprList()
	if err != nil {
		return nil, err
	}

	if op, ok := augAssignOp(p.cur().Kind); ok {
		p.advance()
		val, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return &ast.AugAssign{Base: pos(start), Target: first, Op: op, Value: val}, nil
	}

	if p.at(lexer.Colon) {
		p.advance()
		annot, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		a := &ast.AnnAssign{Base: pos(start), Target: first, Annotation: annot}
		if p.at(lexer.Assign) {
			p.advance()
			v, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			a.Value = v
		}
		return a, nil
	}

	if p.at(lexer.Assign) {
		targets := []ast.Expr{first}
		for p.at(lexer.Assign) {
			p.advance()
			v, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			targets = append(targets, v)
		}
		// chained a = b = c: every parsed expression but the last is a
		// target, the last is the value assigned to all of them.
		value := targets[len(targets)-1]
		targets = targets[:len(targets)-1]
		return &ast.Assign{Base: pos(start), Targets: targets, Value: value}, nil
	}

	return &ast.ExprStmt{Base: pos(start), Value: first}, nil
}

func augAssignOp(k lexer.TokenKind) (string, bool) {
	switch k {
	case lexer.PlusEq:
		return "+", true
	case lexer.MinusEq:
		return "-", true
	case lexer.StarEq:
		return "*", true
	case lexer.SlashEq:
		return "/", true
	case lexer.DoubleSlashEq:
		return "//", true
	case lexer.PercentEq:
		return "%", true
	case lexer.DoubleStarEq:
		return "**", true
	case lexer.AmpEq:
		return "&", true
	case lexer.PipeEq:
		return "|", true
	case lexer.CaretEq:
		return "^", true
	case lexer.LShiftEq:
		return "<<", true
	case lexer.RShiftEq:
		return ">>", true
	default:
		return "", false
	}
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	t := p.advance()
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.If{Base: pos(t), Test: test, Body: body}
	if p.at(lexer.KwElif) {
		elif, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		node.Orelse = []ast.Stmt{elif}
	} else if p.at(lexer.KwElse) {
		p.advance()
		orelse, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Orelse = orelse
	}
	return node, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	t := p.advance()
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.While{Base: pos(t), Test: test, Body: body}
	if p.at(lexer.KwElse) {
		p.advance()
		orelse, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Orelse = orelse
	}
	return node, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	t := p.advance()
	target, err := p.parseTargetList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwIn, "'in'"); err != nil {
		return nil, err
	}
	iter, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.For{Base: pos(t), Target: target, Iter: iter, Body: body}
	if p.at(lexer.KwElse) {
		p.advance()
		orelse, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Orelse = orelse
	}
	return node, nil
}

// parseTargetList parses a for/comprehension target. Each element is
// parsed below the comparison level so the `in` that follows is not
// taken as a membership test.
func (p *Parser) parseTargetList() (ast.Expr, error) {
	first, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.Comma) {
		return first, nil
	}
	elts := []ast.Expr{first}
	for p.at(lexer.Comma) {
		p.advance()
		if p.at(lexer.KwIn) {
			break
		}
		e, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	return &ast.TupleLit{Base: ast.NewBase(first.Pos()), Elts: elts}, nil
}

func (p *Parser) parseFunctionDef() (ast.Stmt, error) {
	t := p.advance()
	name, err := p.expect(lexer.NAME, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(lexer.RParen) {
		pn, err := p.expect(lexer.NAME, "parameter name")
		if err != nil {
			return nil, err
		}
		param := ast.Param{Name: pn.Text}
		if p.at(lexer.Colon) { // skip type annotation
			p.advance()
			if _, err := p.parseExpr(); err != nil {
				return nil, err
			}
		}
		if p.at(lexer.Assign) {
			p.advance()
			d, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			param.Default = d
		}
		params = append(params, param)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	if p.at(lexer.Arrow) { // skip return type annotation
		p.advance()
		if _, err := p.parseExpr(); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{Base: pos(t), Name: name.Text, Params: params, Body: body}, nil
}

func (p *Parser) parseTry() (ast.Stmt, error) {
	t := p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.Try{Base: pos(t), Body: body}
	for p.at(lexer.KwExcept) {
		ht := p.advance()
		h := ast.ExceptHandler{Base: pos(ht)}
		if !p.at(lexer.Colon) {
			typ, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			h.Type = typ
			if p.at(lexer.KwAs) {
				p.advance()
				n, err := p.expect(lexer.NAME, "name")
				if err != nil {
					return nil, err
				}
				h.Name = n.Text
			}
		}
		hb, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		h.Body = hb
		node.Handlers = append(node.Handlers, h)
	}
	if p.at(lexer.KwElse) {
		p.advance()
		orelse, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Orelse = orelse
	}
	if p.at(lexer.KwFinally) {
		p.advance()
		fin, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Finally = fin
	}
	return node, nil
}

func (p *Parser) parseWith() (ast.Stmt, error) {
	t := p.advance()
	var items []ast.WithItem
	for {
		ctx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		item := ast.WithItem{Context: ctx}
		if p.at(lexer.KwAs) {
			p.advance()
			target, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			item.Target = target
		}
		items = append(items, item)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.With{Base: pos(t), Items: items, Body: body}, nil
}
