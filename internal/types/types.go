// Package types implements Vela's type model: a tagged-variant Type with
// structural equality, a scope-chain TypeEnvironment, and the
// Go-native form of the reference implementation's
// `original_source/src/frontend/types.py` (`Type`, `TypeEnvironment`,
// `can_assign`).
package types

import (
	"fmt"
	"strings"
)

// Kind tags the variant a Type carries.
type Kind int

const (
	Int Kind = iota
	Float
	Str
	Bool
	Void
	Null
	Auto
	Array
	Function
	Class
	Trait
	Generic
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "str"
	case Bool:
		return "bool"
	case Void:
		return "void"
	case Null:
		return "null"
	case Auto:
		return "auto"
	case Array:
		return "array"
	case Function:
		return "function"
	case Class:
		return "class"
	case Trait:
		return "trait"
	case Generic:
		return "generic"
	default:
		return "unknown"
	}
}

// Type is a tagged variant over Vela's type algebra. Equality is
// structural: Array compares Elem recursively, Function compares Params and
// Return recursively, and Class/Trait/Generic compare by Name.
type Type struct {
	Kind   Kind
	Name   string   // set for Class, Trait, Generic
	Elem   *Type    // set for Array
	Params []*Type  // set for Function
	Return *Type    // set for Function
}

// Primitive singletons, safe to compare by value since they carry no
// recursive fields.
var (
	IntType   = &Type{Kind: Int, Name: "int"}
	FloatType = &Type{Kind: Float, Name: "float"}
	StrType   = &Type{Kind: Str, Name: "str"}
	BoolType  = &Type{Kind: Bool, Name: "bool"}
	VoidType  = &Type{Kind: Void, Name: "void"}
	NullType  = &Type{Kind: Null, Name: "null"}
	AutoType  = &Type{Kind: Auto, Name: "auto"}
)

// NewArray constructs an array(elem) type.
func NewArray(elem *Type) *Type { return &Type{Kind: Array, Name: "array", Elem: elem} }

// NewFunction constructs a function(params...) -> return type.
func NewFunction(params []*Type, ret *Type) *Type {
	return &Type{Kind: Function, Name: "function", Params: params, Return: ret}
}

// NewClass constructs a nominal class(name) type.
func NewClass(name string) *Type { return &Type{Kind: Class, Name: name} }

// NewTrait constructs a nominal trait(name) type.
func NewTrait(name string) *Type { return &Type{Kind: Trait, Name: name} }

// NewGeneric constructs a generic(name) type (reserved surface; never
// produced by the checker today, per spec §9).
func NewGeneric(name string) *Type { return &Type{Kind: Generic, Name: name} }

// Equal reports structural equality: array element types and function
// signatures are compared recursively, nominal types by name.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Array:
		return Equal(a.Elem, b.Elem)
	case Function:
		if len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equal(a.Return, b.Return)
	case Class, Trait, Generic:
		return a.Name == b.Name
	default:
		return true
	}
}

// String renders the type's canonical spelling.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Array:
		return fmt.Sprintf("[%s]", t.Elem)
	case Function:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return)
	default:
		return t.Name
	}
}

// CanAssign implements spec §4.3's assignability relation, rule order
// matching `can_assign` in the reference implementation:
//  1. target is auto: always true.
//  2. structural equality: true.
//  3. source is null and target is a reference kind (class/str/array): true.
//  4. target is float and source is int: true (widening).
//  5. otherwise false.
func CanAssign(target, source *Type) bool {
	if target.Kind == Auto {
		return true
	}
	if Equal(target, source) {
		return true
	}
	if source.Kind == Null {
		switch target.Kind {
		case Class, Str, Array:
			return true
		}
		return false
	}
	if target.Kind == Float && source.Kind == Int {
		return true
	}
	return false
}

// ClassInfo records a registered class's fields, methods, and declared
// trait conformance list.
type ClassInfo struct {
	Name    string
	Fields  map[string]*Type
	Methods map[string]*Type
	Traits  []string
}

// TraitInfo records a registered trait's method signatures.
type TraitInfo struct {
	Name    string
	Methods map[string]*Type
}

// Environment is a lexically scoped type environment: a parent-linked chain
// of scopes, each mapping names to variable/function/class/trait types. A
// fresh scope is pushed only for function bodies (spec §4.3): inner blocks
// share their enclosing function's scope.
type Environment struct {
	parent    *Environment
	variables map[string]*Type
	functions map[string]*Type
	classes   map[string]*ClassInfo
	traits    map[string]*TraitInfo
}

// NewEnvironment constructs a root or child scope. Pass nil for the
// outermost (builtin-seeded) scope.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		parent:    parent,
		variables: make(map[string]*Type),
		functions: make(map[string]*Type),
		classes:   make(map[string]*ClassInfo),
		traits:    make(map[string]*TraitInfo),
	}
}

func (e *Environment) DefineVariable(name string, t *Type) { e.variables[name] = t }

func (e *Environment) GetVariable(name string) (*Type, bool) {
	if t, ok := e.variables[name]; ok {
		return t, true
	}
	if e.parent != nil {
		return e.parent.GetVariable(name)
	}
	return nil, false
}

func (e *Environment) DefineFunction(name string, t *Type) { e.functions[name] = t }

func (e *Environment) GetFunction(name string) (*Type, bool) {
	if t, ok := e.functions[name]; ok {
		return t, true
	}
	if e.parent != nil {
		return e.parent.GetFunction(name)
	}
	return nil, false
}

func (e *Environment) DefineClass(name string, c *ClassInfo) { e.classes[name] = c }

func (e *Environment) GetClass(name string) (*ClassInfo, bool) {
	if c, ok := e.classes[name]; ok {
		return c, true
	}
	if e.parent != nil {
		return e.parent.GetClass(name)
	}
	return nil, false
}

func (e *Environment) DefineTrait(name string, t *TraitInfo) { e.traits[name] = t }

func (e *Environment) GetTrait(name string) (*TraitInfo, bool) {
	if t, ok := e.traits[name]; ok {
		return t, true
	}
	if e.parent != nil {
		return e.parent.GetTrait(name)
	}
	return nil, false
}

// FromTypeName converts a parsed type-string into a Type. Any name that
// isn't one of the primitive keywords is treated as a class reference, per
// spec §6's type string vocabulary.
func FromTypeName(name string) *Type {
	switch name {
	case "int":
		return IntType
	case "float":
		return FloatType
	case "str":
		return StrType
	case "bool":
		return BoolType
	case "void":
		return VoidType
	case "auto":
		return AutoType
	case "null":
		return NullType
	default:
		return NewClass(name)
	}
}
