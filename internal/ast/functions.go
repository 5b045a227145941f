package ast

import (
	"bytes"
	"strings"

	"github.com/vela-lang/vela/pkg/token"
)

// Param is one formal parameter: a name plus its declared type string (one
// of the primitive type keywords or a class name).
type Param struct {
	Name     *Identifier
	TypeName string
}

func (p *Param) String() string {
	return p.Name.String() + ": " + p.TypeName
}

// FunctionDeclaration is a `func` declaration. Body is nil for a trait
// method signature, which carries only the header.
type FunctionDeclaration struct {
	Token      token.Token // the 'func' token
	Name       *Identifier
	Params     []*Param
	ReturnType string
	Body       *BlockStatement
	Async      bool
}

func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDeclaration) Pos() token.Position  { return fd.Token.Pos }
func (fd *FunctionDeclaration) String() string {
	var out bytes.Buffer
	if fd.Async {
		out.WriteString("async ")
	}
	out.WriteString("func ")
	out.WriteString(fd.Name.String())
	out.WriteString("(")
	params := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") -> ")
	out.WriteString(fd.ReturnType)
	if fd.Body != nil {
		out.WriteString(" ")
		out.WriteString(fd.Body.String())
	}
	return out.String()
}

// CallExpression applies an expression (the callee) to an ordered argument
// list: `callee(args...)`.
type CallExpression struct {
	Token    token.Token // the '(' token
	Callee   Expression
	Args     []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() token.Position  { return ce.Callee.Pos() }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		args[i] = a.String()
	}
	return ce.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// MemberExpression is `object.name`.
type MemberExpression struct {
	Token  token.Token // the '.' token
	Object Expression
	Name   *Identifier
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) Pos() token.Position  { return me.Object.Pos() }
func (me *MemberExpression) String() string {
	return me.Object.String() + "." + me.Name.String()
}

// PipelineExpression is `initial |> f |> g`, lowered as left-fold
// application `g(f(initial))`.
type PipelineExpression struct {
	Token   token.Token // the first '|>' token
	Initial Expression
	Stages  []Expression
}

func (pe *PipelineExpression) expressionNode()      {}
func (pe *PipelineExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PipelineExpression) Pos() token.Position  { return pe.Initial.Pos() }
func (pe *PipelineExpression) String() string {
	parts := []string{pe.Initial.String()}
	for _, s := range pe.Stages {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " |> ")
}

// MatchCase is one `pattern => result` arm of a MatchExpression.
type MatchCase struct {
	Pattern Expression
	Result  Expression
}

func (mc *MatchCase) String() string {
	return mc.Pattern.String() + " => " + mc.Result.String()
}

// MatchExpression is `match scrutinee { pattern => result, ... }`.
type MatchExpression struct {
	Token     token.Token // the 'match' token
	Scrutinee Expression
	Cases     []*MatchCase
}

func (me *MatchExpression) expressionNode()      {}
func (me *MatchExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MatchExpression) Pos() token.Position  { return me.Token.Pos }
func (me *MatchExpression) String() string {
	var out bytes.Buffer
	out.WriteString("match ")
	out.WriteString(me.Scrutinee.String())
	out.WriteString(" {\n")
	for _, c := range me.Cases {
		out.WriteString("  ")
		out.WriteString(c.String())
		out.WriteString(",\n")
	}
	out.WriteString("}")
	return out.String()
}
