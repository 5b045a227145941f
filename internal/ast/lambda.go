package ast

import (
	"bytes"
	"strings"

	"github.com/vela-lang/vela/pkg/token"
)

// LambdaExpression is `|params| body`, where body is either a bare
// expression or a brace-delimited block. ReturnType is empty when the
// lambda omits `-> type`.
type LambdaExpression struct {
	Token      token.Token // the first '|' token
	Params     []*Param
	ReturnType string
	Body       Node // either Expression or *BlockStatement
}

func (le *LambdaExpression) expressionNode()      {}
func (le *LambdaExpression) TokenLiteral() string { return le.Token.Literal }
func (le *LambdaExpression) Pos() token.Position  { return le.Token.Pos }
func (le *LambdaExpression) String() string {
	var out bytes.Buffer
	params := make([]string, len(le.Params))
	for i, p := range le.Params {
		params[i] = p.String()
	}
	out.WriteString("|")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString("|")
	if le.ReturnType != "" {
		out.WriteString(" -> ")
		out.WriteString(le.ReturnType)
	}
	out.WriteString(" ")
	if le.Body != nil {
		out.WriteString(le.Body.String())
	}
	return out.String()
}
