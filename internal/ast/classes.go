package ast

import (
	"bytes"
	"strings"

	"github.com/vela-lang/vela/pkg/token"
)

// ClassDeclaration is `class Name [: Trait, ...] { methods and fields }`.
// The parser accepts no generic parameter syntax on a class.
type ClassDeclaration struct {
	Token   token.Token // the 'class' token
	Name    *Identifier
	Traits  []*Identifier
	Fields  []*VarDeclaration
	Methods []*FunctionDeclaration
}

func (cd *ClassDeclaration) statementNode()       {}
func (cd *ClassDeclaration) TokenLiteral() string { return cd.Token.Literal }
func (cd *ClassDeclaration) Pos() token.Position  { return cd.Token.Pos }
func (cd *ClassDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("class ")
	out.WriteString(cd.Name.String())
	if len(cd.Traits) > 0 {
		traits := make([]string, len(cd.Traits))
		for i, t := range cd.Traits {
			traits[i] = t.String()
		}
		out.WriteString(" : ")
		out.WriteString(strings.Join(traits, ", "))
	}
	out.WriteString(" {\n")
	for _, f := range cd.Fields {
		out.WriteString("  ")
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	for _, m := range cd.Methods {
		out.WriteString("  ")
		out.WriteString(m.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// TraitDeclaration is `trait Name { method signatures }`. Each element of
// Methods has a nil Body (a signature only).
type TraitDeclaration struct {
	Token   token.Token // the 'trait' token
	Name    *Identifier
	Methods []*FunctionDeclaration
}

func (td *TraitDeclaration) statementNode()       {}
func (td *TraitDeclaration) TokenLiteral() string { return td.Token.Literal }
func (td *TraitDeclaration) Pos() token.Position  { return td.Token.Pos }
func (td *TraitDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("trait ")
	out.WriteString(td.Name.String())
	out.WriteString(" {\n")
	for _, m := range td.Methods {
		out.WriteString("  ")
		out.WriteString(m.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}
