package parser

import (
	"strconv"

	"github.com/mwildehahn/monty/internal/ast"
	"github.com/mwildehahn/monty/internal/lexer"
)

// parseExprList parses a single expression, or an implicit tuple when
// commas follow at the top level (`a, b = 1, 2`, `return a, b`).
func (p *Parser) parseExprList() (ast.Expr, error) {
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.Comma) {
		return first, nil
	}
	elts := []ast.Expr{first}
	for p.at(lexer.Comma) {
		p.advance()
		if p.atExprEnd() {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	return &ast.TupleLit{Base: ast.NewBase(first.Pos()), Elts: elts}, nil
}

func (p *Parser) atExprEnd() bool {
	switch p.cur().Kind {
	case lexer.NEWLINE, lexer.EOF, lexer.Semicolon, lexer.Assign, lexer.Colon,
		lexer.RParen, lexer.RBracket, lexer.RBrace, lexer.DEDENT:
		return true
	}
	return false
}

// parseExpr parses a full expression, including conditional expressions
// and lambdas (the top of the precedence tower).
func (p *Parser) parseExpr() (ast.Expr, error) {
	if p.at(lexer.KwLambda) {
		return p.parseLambda()
	}
	return p.parseTernary()
}

func (p *Parser) parseLambda() (ast.Expr, error) {
	t := p.advance()
	var params []ast.Param
	for !p.at(lexer.Colon) {
		n, err := p.expect(lexer.NAME, "parameter name")
		if err != nil {
			return nil, err
		}
		param := ast.Param{Name: n.Text}
		if p.at(lexer.Assign) {
			p.advance()
			d, err := p.parseTernary()
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
	if _, err := p.expect(lexer.Colon, "':'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Base: pos(t), Params: params, Body: body}, nil
}

func (p *Parser) parseTernary() (ast.Expr, error) {
	body, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.KwIf) {
		p.advance()
		test, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KwElse, "'else'"); err != nil {
			return nil, err
		}
		orelse, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.IfExp{Base: ast.NewBase(body.Pos()), Test: test, Body: body, Orelse: orelse}, nil
	}
	return body, nil
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.KwOr) {
		return left, nil
	}
	values := []ast.Expr{left}
	for p.at(lexer.KwOr) {
		p.advance()
		v, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return &ast.BoolOp{Base: ast.NewBase(left.Pos()), Op: "or", Values: values}, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.KwAnd) {
		return left, nil
	}
	values := []ast.Expr{left}
	for p.at(lexer.KwAnd) {
		p.advance()
		v, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return &ast.BoolOp{Base: ast.NewBase(left.Pos()), Op: "and", Values: values}, nil
}

func (p *Parser) parseNot() (ast.Expr, error) {
	if p.at(lexer.KwNot) {
		t := p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Base: pos(t), Op: "not", Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	var ops []string
	var comparators []ast.Expr
	for {
		op, ok := p.peekCompareOp()
		if !ok {
			break
		}
		p.consumeCompareOp()
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
	if len(ops) == 0 {
		return left, nil
	}
	return &ast.Compare{Base: ast.NewBase(left.Pos()), Left: left, Ops: ops, Comparators: comparators}, nil
}

func (p *Parser) peekCompareOp() (string, bool) {
	switch p.cur().Kind {
	case lexer.Lt:
		return "<", true
	case lexer.Gt:
		return ">", true
	case lexer.LtEq:
		return "<=", true
	case lexer.GtEq:
		return ">=", true
	case lexer.EqEq:
		return "==", true
	case lexer.NotEq:
		return "!=", true
	case lexer.KwIn:
		return "in", true
	case lexer.KwIs:
		return "is", true
	case lexer.KwNot:
		if p.peekNext().Kind == lexer.KwIn {
			return "not in", true
		}
	}
	return "", false
}

func (p *Parser) consumeCompareOp() {
	if p.at(lexer.KwNot) {
		p.advance()
		p.advance()
		return
	}
	if p.at(lexer.KwIs) {
		p.advance()
		if p.at(lexer.KwNot) {
			p.advance()
		}
		return
	}
	p.advance()
}

func (p *Parser) parseBitOr() (ast.Expr, error) {
	return p.parseBinLevel(p.parseBitXor, map[lexer.TokenKind]string{lexer.Pipe: "|"})
}

func (p *Parser) parseBitXor() (ast.Expr, error) {
	return p.parseBinLevel(p.parseBitAnd, map[lexer.TokenKind]string{lexer.Caret: "^"})
}

func (p *Parser) parseBitAnd() (ast.Expr, error) {
	return p.parseBinLevel(p.parseShift, map[lexer.TokenKind]string{lexer.Amp: "&"})
}

func (p *Parser) parseShift() (ast.Expr, error) {
	return p.parseBinLevel(p.parseAdditive, map[lexer.TokenKind]string{lexer.LShift: "<<", lexer.RShift: ">>"})
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinLevel(p.parseMultiplicative, map[lexer.TokenKind]string{lexer.Plus: "+", lexer.Minus: "-"})
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinLevel(p.parseUnary, map[lexer.TokenKind]string{
		lexer.Star: "*", lexer.Slash: "/", lexer.DoubleSlash: "//", lexer.Percent: "%", lexer.At: "@",
	})
}

func (p *Parser) parseBinLevel(next func() (ast.Expr, error), ops map[lexer.TokenKind]string) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.cur().Kind]
		if !ok {
			break
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Base: ast.NewBase(left.Pos()), Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur().Kind {
	case lexer.Plus:
		t := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Base: pos(t), Op: "+", Operand: operand}, nil
	case lexer.Minus:
		t := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Base: pos(t), Op: "-", Operand: operand}, nil
	case lexer.Tilde:
		t := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Base: pos(t), Op: "~", Operand: operand}, nil
	default:
		return p.parsePower()
	}
}

func (p *Parser) parsePower() (ast.Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.DoubleStar) {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Base: ast.NewBase(left.Pos()), Left: left, Op: "**", Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case lexer.Dot:
			p.advance()
			name, err := p.expect(lexer.NAME, "attribute name")
			if err != nil {
				return nil, err
			}
			expr = &ast.Attribute{Base: ast.NewBase(expr.Pos()), Value: expr, Attr: name.Text}
		case lexer.LParen:
			expr, err = p.parseCall(expr)
			if err != nil {
				return nil, err
			}
		case lexer.LBracket:
			expr, err = p.parseSubscript(expr)
			if err != nil {
				return nil, err
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseCall(fn ast.Expr) (ast.Expr, error) {
	p.advance() // consume '('
	call := &ast.Call{Base: ast.NewBase(fn.Pos()), Func: fn, Kwargs: map[string]ast.Expr{}}
	for !p.at(lexer.RParen) {
		if p.at(lexer.Star) {
			p.advance()
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Starargs = v
		} else if p.at(lexer.NAME) && p.peekNext().Kind == lexer.Assign {
			name := p.advance()
			p.advance() // '='
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Kwargs[name.Text] = v
		} else {
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, v)
		}
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) parseSubscript(target ast.Expr) (ast.Expr, error) {
	p.advance() // consume '['
	index, err := p.parseSliceOrIndex()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBracket, "']'"); err != nil {
		return nil, err
	}
	return &ast.Subscript{Base: ast.NewBase(target.Pos()), Value: target, Index: index}, nil
}

func (p *Parser) parseSliceOrIndex() (ast.Expr, error) {
	start := p.cur()
	var lower, upper, step ast.Expr
	var err error
	if !p.at(lexer.Colon) {
		lower, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.at(lexer.Colon) {
			return lower, nil
		}
	}
	// slice syntax
	if _, err := p.expect(lexer.Colon, "':'"); err != nil {
		return nil, err
	}
	if !p.at(lexer.Colon) && !p.at(lexer.RBracket) {
		upper, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if p.at(lexer.Colon) {
		p.advance()
		if !p.at(lexer.RBracket) {
			step, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
	}
	return &ast.SliceExpr{Base: pos(start), Lower: lower, Upper: upper, Step: step}, nil
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	t := p.cur()
	switch t.Kind {
	case lexer.NAME:
		p.advance()
		return &ast.Name{Base: pos(t), Id: t.Text}, nil
	case lexer.NUMBER:
		p.advance()
		return parseNumberLit(t)
	case lexer.STRING:
		p.advance()
		text := t.Text
		for p.at(lexer.STRING) { // implicit adjacent string concatenation
			text += p.advance().Text
		}
		return &ast.StringLit{Base: pos(t), Value: text}, nil
	case lexer.BYTES:
		p.advance()
		return &ast.BytesLit{Base: pos(t), Value: []byte(t.Text)}, nil
	case lexer.KwTrue:
		p.advance()
		return &ast.BoolLit{Base: pos(t), Value: true}, nil
	case lexer.KwFalse:
		p.advance()
		return &ast.BoolLit{Base: pos(t), Value: false}, nil
	case lexer.KwNone:
		p.advance()
		return &ast.NoneLit{Base: pos(t)}, nil
	case lexer.Ellipsis:
		p.advance()
		return &ast.EllipsisLit{Base: pos(t)}, nil
	case lexer.LParen:
		return p.parseParenForm()
	case lexer.LBracket:
		return p.parseListForm()
	case lexer.LBrace:
		return p.parseBraceForm()
	default:
		return nil, p.errorf("unexpected token %q", t.Text)
	}
}

func parseNumberLit(t lexer.Token) (ast.Expr, error) {
	isFloat := false
	for _, r := range t.Text {
		if r == '.' || r == 'e' || r == 'E' {
			isFloat = true
			break
		}
	}
	n := &ast.NumberLit{Base: pos(t), IsFloat: isFloat, IntText: t.Text}
	if isFloat {
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, err
		}
		n.Float = f
	}
	return n, nil
}

func (p *Parser) parseParenForm() (ast.Expr, error) {
	t := p.advance() // '('
	if p.at(lexer.RParen) {
		p.advance()
		return &ast.TupleLit{Base: pos(t)}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.KwFor) {
		gen, err := p.parseComprehensionClause()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.GeneratorExp{Base: pos(t), Elt: first, Generator: gen}, nil
	}
	if p.at(lexer.Comma) {
		elts := []ast.Expr{first}
		for p.at(lexer.Comma) {
			p.advance()
			if p.at(lexer.RParen) {
				break
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elts = append(elts, e)
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.TupleLit{Base: pos(t), Elts: elts}, nil
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	return first, nil
}

func (p *Parser) parseListForm() (ast.Expr, error) {
	t := p.advance() // '['
	if p.at(lexer.RBracket) {
		p.advance()
		return &ast.ListLit{Base: pos(t)}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.KwFor) {
		gen, err := p.parseComprehensionClause()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBracket, "']'"); err != nil {
			return nil, err
		}
		return &ast.ListComp{Base: pos(t), Elt: first, Generator: gen}, nil
	}
	elts := []ast.Expr{first}
	for p.at(lexer.Comma) {
		p.advance()
		if p.at(lexer.RBracket) {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	if _, err := p.expect(lexer.RBracket, "']'"); err != nil {
		return nil, err
	}
	return &ast.ListLit{Base: pos(t), Elts: elts}, nil
}

func (p *Parser) parseBraceForm() (ast.Expr, error) {
	t := p.advance() // '{'
	if p.at(lexer.RBrace) {
		p.advance()
		return &ast.DictLit{Base: pos(t)}, nil
	}
	firstKey, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.Colon) {
		p.advance()
		firstVal, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.at(lexer.KwFor) {
			gen, err := p.parseComprehensionClause()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
				return nil, err
			}
			return &ast.DictComp{Base: pos(t), Key: firstKey, Value: firstVal, Generator: gen}, nil
		}
		keys := []ast.Expr{firstKey}
		vals := []ast.Expr{firstVal}
		for p.at(lexer.Comma) {
			p.advance()
			if p.at(lexer.RBrace) {
				break
			}
			k, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Colon, "':'"); err != nil {
				return nil, err
			}
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
			vals = append(vals, v)
		}
		if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
			return nil, err
		}
		return &ast.DictLit{Base: pos(t), Keys: keys, Values: vals}, nil
	}
	// set display
	if p.at(lexer.KwFor) {
		gen, err := p.parseComprehensionClause()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
			return nil, err
		}
		return &ast.SetComp{Base: pos(t), Elt: firstKey, Generator: gen}, nil
	}
	elts := []ast.Expr{firstKey}
	for p.at(lexer.Comma) {
		p.advance()
		if p.at(lexer.RBrace) {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.SetLit{Base: pos(t), Elts: elts}, nil
}

func (p *Parser) parseComprehensionClause() (ast.Comprehension, error) {
	if _, err := p.expect(lexer.KwFor, "'for'"); err != nil {
		return ast.Comprehension{}, err
	}
	target, err := p.parseTargetList()
	if err != nil {
		return ast.Comprehension{}, err
	}
	if _, err := p.expect(lexer.KwIn, "'in'"); err != nil {
		return ast.Comprehension{}, err
	}
	iter, err := p.parseOr()
	if err != nil {
		return ast.Comprehension{}, err
	}
	c := ast.Comprehension{Target: target, Iter: iter}
	for p.at(lexer.KwIf) {
		p.advance()
		cond, err := p.parseOr()
		if err != nil {
			return ast.Comprehension{}, err
		}
		c.Ifs = append(c.Ifs, cond)
	}
	return c, nil
}
