package parser

import (
	"strconv"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/pkg/token"
)

// parseExpression is the Pratt engine's entry point: parse a prefix
// expression, then fold in infix/postfix operators whose precedence
// exceeds the caller's floor.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur().Type]
	if !ok {
		p.fail("unexpected token %s at %s", p.cur().Type, p.cur().Pos)
	}
	left := prefix()

	for precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.cur().Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

// parseIntegerLiteral assumes the lexer already rejected overflowing
// literals (spec §8's documented 64-bit limit), so the conversion here
// cannot fail.
func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.advance()
	v, _ := strconv.ParseInt(tok.Literal, 10, 64)
	return &ast.IntegerLiteral{Token: tok, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.advance()
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.fail("malformed float literal %q at %s", tok.Literal, tok.Pos)
	}
	return &ast.FloatLiteral{Token: tok, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.advance()
	return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.advance()}
}

// parseIdentifierOrObjectLiteral disambiguates `ClassName { field = value }`
// from a plain identifier by looking one token ahead before consuming it,
// per spec §4.2's primary-expression rule.
func (p *Parser) parseIdentifierOrObjectLiteral() ast.Expression {
	if p.peek().Type == token.LBRACE {
		return p.parseObjectLiteral()
	}
	tok := p.advance()
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	nameTok := p.advance()
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}
	p.expect(token.LBRACE)
	p.skipNewlines()

	var fields []*ast.ObjectField
	for !p.curIs(token.RBRACE) {
		fieldNameTok := p.expect(token.IDENT)
		fieldName := &ast.Identifier{Token: fieldNameTok, Value: fieldNameTok.Literal}
		p.expect(token.ASSIGN)
		value := p.parseExpression(LOWEST)
		fields = append(fields, &ast.ObjectField{Name: fieldName, Value: value})
		p.skipNewlines()
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
		p.skipNewlines()
	}
	p.skipNewlines()
	p.expect(token.RBRACE)

	return &ast.ObjectLiteral{Token: nameTok, ClassName: name, Fields: fields}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // '['
	var elems []ast.Expression
	if !p.curIs(token.RBRACKET) {
		elems = append(elems, p.parseExpression(LOWEST))
		for p.curIs(token.COMMA) {
			p.advance()
			elems = append(elems, p.parseExpression(LOWEST))
		}
	}
	p.expect(token.RBRACKET)
	return &ast.ArrayLiteral{Token: tok, Elements: elems}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	tok := p.advance() // '('
	expr := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return &ast.GroupedExpression{Token: tok, Expression: expr}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.advance()
	right := p.parseExpression(PREFIX)
	return &ast.UnaryExpression{Token: tok, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	prec := precedences[tok.Type]
	var right ast.Expression
	if tok.Type == token.POW {
		// Right-associative: recurse at one precedence lower than this
		// operator's own level so a chain `a ** b ** c` parses as
		// `a ** (b ** c)`.
		right = p.parseExpression(prec - 1)
	} else {
		right = p.parseExpression(prec)
	}
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	tok := p.advance() // '('
	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		args = append(args, p.parseExpression(LOWEST))
		for p.curIs(token.COMMA) {
			p.advance()
			args = append(args, p.parseExpression(LOWEST))
		}
	}
	p.expect(token.RPAREN)
	return &ast.CallExpression{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // '['
	index := p.parseExpression(LOWEST)
	p.expect(token.RBRACKET)
	return &ast.IndexExpression{Token: tok, Left: left, Index: index}
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // '.'
	nameTok := p.expect(token.IDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}
	return &ast.MemberExpression{Token: tok, Object: left, Name: name}
}

// parsePipelineExpression consumes every remaining `|> stage` at this
// precedence level into a single flat PipelineExpression, since pipeline is
// the lowest-precedence operator (spec §4.2 level 1) and left-folds.
func (p *Parser) parsePipelineExpression(initial ast.Expression) ast.Expression {
	tok := p.cur()
	pe := &ast.PipelineExpression{Token: tok, Initial: initial}
	for p.curIs(token.PIPE) {
		p.advance()
		pe.Stages = append(pe.Stages, p.parseExpression(PIPELINE))
	}
	return pe
}

func (p *Parser) parseMatchExpression() ast.Expression {
	tok := p.advance() // 'match'
	scrutinee := p.parseExpression(LOWEST)
	p.expect(token.LBRACE)
	p.skipNewlines()

	var cases []*ast.MatchCase
	for !p.curIs(token.RBRACE) {
		pattern := p.parseExpression(LOWEST)
		p.expect(token.FATARROW)
		result := p.parseExpression(LOWEST)
		cases = append(cases, &ast.MatchCase{Pattern: pattern, Result: result})
		p.skipNewlines()
		if p.curIs(token.COMMA) {
			p.advance()
			p.skipNewlines()
		}
	}
	p.expect(token.RBRACE)

	return &ast.MatchExpression{Token: tok, Scrutinee: scrutinee, Cases: cases}
}

func (p *Parser) parseLambdaExpression() ast.Expression {
	tok := p.advance() // '|'

	var params []*ast.Param
	if !p.curIs(token.BAR) {
		params = append(params, p.parseLambdaParam())
		for p.curIs(token.COMMA) {
			p.advance()
			params = append(params, p.parseLambdaParam())
		}
	}
	p.expect(token.BAR)

	returnType := ""
	if p.curIs(token.ARROW) {
		p.advance()
		returnType = p.parseTypeName()
	}

	var body ast.Node
	if p.curIs(token.LBRACE) {
		body = p.parseBlockStatement()
	} else {
		body = p.parseExpression(LOWEST)
	}

	return &ast.LambdaExpression{Token: tok, Params: params, ReturnType: returnType, Body: body}
}

func (p *Parser) parseLambdaParam() *ast.Param {
	nameTok := p.expect(token.IDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}
	typeName := "auto"
	if p.curIs(token.COLON) {
		p.advance()
		typeName = p.parseTypeName()
	}
	return &ast.Param{Name: name, TypeName: typeName}
}

// parseTypeName parses a type reference: a type keyword or a bare
// class-name identifier. Array and generic type syntax are reserved but not
// parsed, per spec §4.2.
func (p *Parser) parseTypeName() string {
	if p.cur().Type.IsTypeKeyword() || p.curIs(token.IDENT) {
		return p.advance().Literal
	}
	p.fail("expected a type, found %s at %s", p.cur().Type, p.cur().Pos)
	return ""
}
