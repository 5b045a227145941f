package parser

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/pkg/token"
)

func (p *Parser) parseFunctionDeclaration(async bool) ast.Statement {
	tok := p.expect(token.FUNC)
	nameTok := p.expect(token.IDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	p.expect(token.LPAREN)
	params := p.parseParamList()
	p.expect(token.RPAREN)

	returnType := "void"
	if p.curIs(token.ARROW) {
		p.advance()
		returnType = p.parseTypeName()
	}

	body := p.parseBlockStatement()

	return &ast.FunctionDeclaration{
		Token: tok, Name: name, Params: params, ReturnType: returnType, Body: body, Async: async,
	}
}

// parseFunctionSignature parses a func header with no body, as used inside
// a trait declaration.
func (p *Parser) parseFunctionSignature() *ast.FunctionDeclaration {
	tok := p.expect(token.FUNC)
	nameTok := p.expect(token.IDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	p.expect(token.LPAREN)
	params := p.parseParamList()
	p.expect(token.RPAREN)

	returnType := "void"
	if p.curIs(token.ARROW) {
		p.advance()
		returnType = p.parseTypeName()
	}

	return &ast.FunctionDeclaration{Token: tok, Name: name, Params: params, ReturnType: returnType}
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.curIs(token.RPAREN) {
		return params
	}
	for {
		nameTok := p.expect(token.IDENT)
		name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}
		p.expect(token.COLON)
		typeName := p.parseTypeName()
		params = append(params, &ast.Param{Name: name, TypeName: typeName})
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return params
}

func (p *Parser) parseClassDeclaration() ast.Statement {
	tok := p.expect(token.CLASS)
	nameTok := p.expect(token.IDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	var traits []*ast.Identifier
	if p.curIs(token.COLON) {
		p.advance()
		traitTok := p.expect(token.IDENT)
		traits = append(traits, &ast.Identifier{Token: traitTok, Value: traitTok.Literal})
		for p.curIs(token.COMMA) {
			p.advance()
			traitTok = p.expect(token.IDENT)
			traits = append(traits, &ast.Identifier{Token: traitTok, Value: traitTok.Literal})
		}
	}

	p.skipNewlines()
	p.expect(token.LBRACE)
	p.skipNewlines()

	cd := &ast.ClassDeclaration{Token: tok, Name: name, Traits: traits}
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.FUNC) {
			cd.Methods = append(cd.Methods, p.parseFunctionDeclaration(false).(*ast.FunctionDeclaration))
		} else {
			cd.Fields = append(cd.Fields, p.parseVarDeclaration().(*ast.VarDeclaration))
		}
		p.skipNewlines()
	}
	p.expect(token.RBRACE)

	return cd
}

func (p *Parser) parseTraitDeclaration() ast.Statement {
	tok := p.expect(token.TRAIT)
	nameTok := p.expect(token.IDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	p.skipNewlines()
	p.expect(token.LBRACE)
	p.skipNewlines()

	td := &ast.TraitDeclaration{Token: tok, Name: name}
	for !p.curIs(token.RBRACE) {
		td.Methods = append(td.Methods, p.parseFunctionSignature())
		p.skipNewlines()
	}
	p.expect(token.RBRACE)

	return td
}
