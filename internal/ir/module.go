// Package ir defines Vela's typed three-address intermediate representation:
// a module of extern declarations, de-duplicated global constants, and
// functions made of ordered basic blocks. Every node offers a textual
// String() form; the notation resembles LLVM IR but is a form of this
// module's own design rather than a reproduction of any particular
// assembler's syntax (see DESIGN.md).
//
// The shape is grounded in `original_source/src/backend/llvm_compiler.py`,
// which targets real LLVM IR; the opcode-table idiom (OpCode enum plus a
// parallel string table) is carried over from the teacher's
// `internal/bytecode/instruction.go`.
package ir

import "strings"

// Param is one function parameter: a name and its lowered machine type.
type Param struct {
	Name string
	Type *LLType
}

// Function is a named, typed sequence of basic blocks. The entry block
// (Blocks[0]) holds every OpAlloca for the function's locals and parameters,
// per spec's stack-slot convention.
type Function struct {
	Name       string
	Params     []Param
	ReturnType *LLType
	Blocks     []*BasicBlock
}

func (f *Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = "%" + p.Name + ": " + p.Type.String()
	}
	out := "func " + f.Name + "(" + strings.Join(params, ", ") + ") -> " + f.ReturnType.String() + " {\n"
	for _, b := range f.Blocks {
		out += b.String()
	}
	out += "}\n"
	return out
}

// Global is a module-level byte-array constant with internal linkage.
// Content holds a string constant's bytes; Globals are de-duplicated by
// Content so two identical print format strings share one definition.
type Global struct {
	Name    string
	Content string
}

// Type is the global's storage shape: a fixed-length array of i8 sized to
// its content (the backend NUL-terminates it, per the C string convention
// `printf` expects).
func (g *Global) Type() *LLType { return ArrayOf(I8, len(g.Content)+1) }

func (g *Global) String() string {
	return "@" + g.Name + " = internal constant " + g.Type().String() + " " + quote(g.Content)
}

// ExternDecl declares an external function the module calls but does not
// define (printf, malloc, free).
type ExternDecl struct {
	Name       string
	ParamTypes []*LLType
	ReturnType *LLType
	Variadic   bool
}

func (e *ExternDecl) String() string {
	params := make([]string, len(e.ParamTypes))
	for i, t := range e.ParamTypes {
		params[i] = t.String()
	}
	if e.Variadic {
		params = append(params, "...")
	}
	return "extern " + e.Name + "(" + strings.Join(params, ", ") + ") -> " + e.ReturnType.String()
}

// Module is the top-level compilation unit the lowerer produces: a
// `; module <name>` header line, extern declarations, de-duplicated globals,
// then functions, in that order.
type Module struct {
	Name      string
	Externs   []*ExternDecl
	Globals   []*Global
	Functions []*Function
}

func (m *Module) String() string {
	var out strings.Builder
	if m.Name != "" {
		out.WriteString("; module " + m.Name + "\n\n")
	}
	for _, e := range m.Externs {
		out.WriteString(e.String())
		out.WriteString("\n")
	}
	if len(m.Externs) > 0 {
		out.WriteString("\n")
	}
	for _, g := range m.Globals {
		out.WriteString(g.String())
		out.WriteString("\n")
	}
	if len(m.Globals) > 0 {
		out.WriteString("\n")
	}
	for i, f := range m.Functions {
		out.WriteString(f.String())
		if i != len(m.Functions)-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
