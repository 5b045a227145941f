package ast

import (
	"bytes"
	"strings"

	"github.com/vela-lang/vela/pkg/token"
)

// VarDeclaration is a (possibly const) local or top-level variable
// declaration, with an optional declared type string and initializer.
// An empty TypeName means the type is to be inferred (spec's `auto`
// default when no type is written).
type VarDeclaration struct {
	Token       token.Token // the leading type keyword or variable's first token
	Name        *Identifier
	TypeName    string
	Initializer Expression
	Const       bool
}

func (vd *VarDeclaration) statementNode()       {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDeclaration) Pos() token.Position  { return vd.Token.Pos }
func (vd *VarDeclaration) String() string {
	var out bytes.Buffer
	if vd.Const {
		out.WriteString("const ")
	}
	if vd.TypeName != "" {
		out.WriteString(vd.TypeName)
		out.WriteString(" ")
	}
	out.WriteString(vd.Name.String())
	if vd.Initializer != nil {
		out.WriteString(" = ")
		out.WriteString(vd.Initializer.String())
	}
	return out.String()
}

// AssignStatement is `target op value` where op is one of `=`, `+=`, `-=`.
type AssignStatement struct {
	Token    token.Token // the operator token
	Target   Expression
	Operator string
	Value    Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() token.Position  { return as.Target.Pos() }
func (as *AssignStatement) String() string {
	return as.Target.String() + " " + as.Operator + " " + as.Value.String()
}

// ReturnStatement is `return` or `return value`.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() token.Position  { return rs.Token.Pos }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return"
	}
	return "return " + rs.Value.String()
}

// IfStatement is `if cond then_block` with an optional else branch, which
// may itself be another IfStatement (else-if chain) or a *BlockStatement.
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Then      *BlockStatement
	Else      Statement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() token.Position  { return is.Token.Pos }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(is.Condition.String())
	out.WriteString(" ")
	out.WriteString(is.Then.String())
	if is.Else != nil {
		out.WriteString(" else ")
		out.WriteString(is.Else.String())
	}
	return out.String()
}

// WhileStatement is `while cond body`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() token.Position  { return ws.Token.Pos }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " " + ws.Body.String()
}

// ForStatement is `for variable in iterable body`.
type ForStatement struct {
	Token    token.Token
	Variable *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Pos() token.Position  { return fs.Token.Pos }
func (fs *ForStatement) String() string {
	return "for " + fs.Variable.String() + " in " + fs.Iterable.String() + " " + fs.Body.String()
}

// BreakStatement exits the innermost loop.
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStatement) Pos() token.Position  { return bs.Token.Pos }
func (bs *BreakStatement) String() string       { return "break" }

// ContinueStatement skips to the next iteration of the innermost loop.
type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ContinueStatement) Pos() token.Position  { return cs.Token.Pos }
func (cs *ContinueStatement) String() string       { return "continue" }

// ParallelStatement is `parallel { task1 task2 ... }`: an ordered list of
// task expressions. The core lowerer treats it as sequential (spec §5).
type ParallelStatement struct {
	Token token.Token
	Tasks []Expression
}

func (ps *ParallelStatement) statementNode()       {}
func (ps *ParallelStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *ParallelStatement) Pos() token.Position  { return ps.Token.Pos }
func (ps *ParallelStatement) String() string {
	var out bytes.Buffer
	out.WriteString("parallel {\n")
	for _, t := range ps.Tasks {
		out.WriteString("  ")
		out.WriteString(t.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ImportStatement recognizes `import a, b from "module"` and
// `import "module" as alias` syntactically; no resolution is performed.
type ImportStatement struct {
	Token   token.Token
	Module  string
	Items   []*Identifier // nil for the `as alias` form
	Alias   *Identifier   // nil for the `from` form
}

func (is *ImportStatement) statementNode()       {}
func (is *ImportStatement) TokenLiteral() string { return is.Token.Literal }
func (is *ImportStatement) Pos() token.Position  { return is.Token.Pos }
func (is *ImportStatement) String() string {
	var out bytes.Buffer
	out.WriteString("import ")
	if len(is.Items) > 0 {
		items := make([]string, len(is.Items))
		for i, it := range is.Items {
			items[i] = it.String()
		}
		out.WriteString(strings.Join(items, ", "))
		out.WriteString(" from ")
		out.WriteString("\"" + is.Module + "\"")
	} else {
		out.WriteString("\"" + is.Module + "\"")
		if is.Alias != nil {
			out.WriteString(" as ")
			out.WriteString(is.Alias.String())
		}
	}
	return out.String()
}
