package ir

import (
	"fmt"
	"strconv"
)

// Value is an IR operand: an immediate constant, a reference to a virtual
// register produced by some instruction, or a reference to a module-level
// global. Values are immutable once constructed, following the AST
// package's node-construction convention.
type Value struct {
	Kind     string // "const.int", "const.float", "const.bool", "reg", "global"
	Type     *LLType
	IntVal   int64
	FloatVal float64
	BoolVal  bool
	Name     string // register name (without '%') or global name (without '@')
}

// ConstInt builds an i64 immediate.
func ConstInt(v int64) Value { return Value{Kind: "const.int", Type: I64, IntVal: v} }

// ConstFloat builds an f64 immediate.
func ConstFloat(v float64) Value { return Value{Kind: "const.float", Type: F64, FloatVal: v} }

// ConstBool builds an i1 immediate.
func ConstBool(v bool) Value { return Value{Kind: "const.bool", Type: I1, BoolVal: v} }

// ConstNull builds a null pointer immediate of the given pointer type.
func ConstNull(t *LLType) Value { return Value{Kind: "const.null", Type: t} }

// Reg references a virtual register (an instruction's result).
func Reg(name string, t *LLType) Value { return Value{Kind: "reg", Type: t, Name: name} }

// GlobalRef references a module-level global by name.
func GlobalRef(name string, t *LLType) Value { return Value{Kind: "global", Type: t, Name: name} }

func (v Value) String() string {
	switch v.Kind {
	case "const.int":
		return strconv.FormatInt(v.IntVal, 10)
	case "const.float":
		return strconv.FormatFloat(v.FloatVal, 'g', -1, 64)
	case "const.bool":
		if v.BoolVal {
			return "true"
		}
		return "false"
	case "const.null":
		return "null"
	case "reg":
		return "%" + v.Name
	case "global":
		return "@" + v.Name
	default:
		return fmt.Sprintf("<invalid value kind %q>", v.Kind)
	}
}
