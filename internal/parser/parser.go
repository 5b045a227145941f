package parser

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/pkg/token"
)

// Precedence levels, lowest to highest, per spec §4.2's table.
const (
	_ int = iota
	LOWEST
	PIPELINE // |>
	OR       // or
	AND      // and
	EQUALS   // == !=
	COMPARE  // < > <= >=
	SUM      // + -
	PRODUCT  // * / %
	POWER    // ** (right-associative)
	PREFIX   // unary not, -, await
	POSTFIX  // call(...), index[...], member.name
)

var precedences = map[token.Type]int{
	token.PIPE:    PIPELINE,
	token.OR:      OR,
	token.AND:     AND,
	token.EQ:      EQUALS,
	token.NEQ:     EQUALS,
	token.LT:      COMPARE,
	token.GT:      COMPARE,
	token.LE:      COMPARE,
	token.GE:      COMPARE,
	token.PLUS:    SUM,
	token.MINUS:   SUM,
	token.STAR:    PRODUCT,
	token.SLASH:   PRODUCT,
	token.PERCENT: PRODUCT,
	token.POW:     POWER,
	token.LPAREN:  POSTFIX,
	token.LBRACKET: POSTFIX,
	token.DOT:     POSTFIX,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser turns a finite token vector (sentinel-terminated by EOF) into a
// Program. It fails fast: the first error aborts via panic(parseAbort{}),
// caught once at ParseProgram's top level.
type Parser struct {
	tokens []token.Token
	pos    int

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New constructs a Parser over a token vector produced by the lexer.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.prefixFns = map[token.Type]prefixParseFn{
		token.INT:      p.parseIntegerLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.NULL:     p.parseNullLiteral,
		token.IDENT:    p.parseIdentifierOrObjectLiteral,
		token.LBRACKET: p.parseArrayLiteral,
		token.LPAREN:   p.parseGroupedExpression,
		token.MATCH:    p.parseMatchExpression,
		token.BAR:      p.parseLambdaExpression,
		token.MINUS:    p.parseUnaryExpression,
		token.NOT:      p.parseUnaryExpression,
		token.AWAIT:    p.parseUnaryExpression,
	}

	p.infixFns = map[token.Type]infixParseFn{
		token.PIPE:     p.parsePipelineExpression,
		token.OR:       p.parseBinaryExpression,
		token.AND:      p.parseBinaryExpression,
		token.EQ:       p.parseBinaryExpression,
		token.NEQ:      p.parseBinaryExpression,
		token.LT:       p.parseBinaryExpression,
		token.GT:       p.parseBinaryExpression,
		token.LE:       p.parseBinaryExpression,
		token.GE:       p.parseBinaryExpression,
		token.PLUS:     p.parseBinaryExpression,
		token.MINUS:    p.parseBinaryExpression,
		token.STAR:     p.parseBinaryExpression,
		token.SLASH:    p.parseBinaryExpression,
		token.PERCENT:  p.parseBinaryExpression,
		token.POW:      p.parseBinaryExpression,
		token.LPAREN:   p.parseCallExpression,
		token.LBRACKET: p.parseIndexExpression,
		token.DOT:      p.parseMemberExpression,
	}

	return p
}

// parseAbort is the sentinel panic value used to unwind to ParseProgram on
// the first syntax error.
type parseAbort struct{ err *errors.CompilerError }

// ParseProgram runs the parser to completion, returning a Program node or a
// single *errors.CompilerError. It never returns a partial AST alongside an
// error.
func (p *Parser) ParseProgram() (prog *ast.Program, err *errors.CompilerError) {
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(parseAbort)
			if !ok {
				panic(r)
			}
			prog = nil
			err = abort.err
		}
	}()

	program := &ast.Program{}
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		program.Statements = append(program.Statements, p.parseStatement())
		p.skipNewlines()
	}
	return program, nil
}

func (p *Parser) fail(format string, args ...any) {
	panic(parseAbort{err: errors.New(errors.KindParse, p.cur().Pos, format, args...)})
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Type != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(tt token.Type) bool { return p.cur().Type == tt }

func (p *Parser) expect(tt token.Type) token.Token {
	if !p.curIs(tt) {
		p.fail("expected %s, found %s at %s", tt, p.cur().Type, p.cur().Pos)
	}
	return p.advance()
}

func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.cur().Type]; ok {
		return pr
	}
	return LOWEST
}
