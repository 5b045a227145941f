package ir

import "fmt"

// LLType is the lowerer's target type vocabulary: the narrow set of
// machine-level shapes every Vela type lowers to, grounded in
// `original_source/src/backend/llvm_compiler.py`'s `get_llvm_type` mapping
// (int -> i64, float -> f64, bool -> i1, void -> void, str -> i8*,
// array(T) -> T*).
type LLType struct {
	Kind string // "i64", "i32", "f64", "i1", "void", "i8", "ptr", "arr"
	Elem *LLType // set when Kind == "ptr" or "arr"
	Len  int     // set when Kind == "arr": the fixed element count
}

var (
	I64  = &LLType{Kind: "i64"}
	I32  = &LLType{Kind: "i32"}
	F64  = &LLType{Kind: "f64"}
	I1   = &LLType{Kind: "i1"}
	Void = &LLType{Kind: "void"}
	I8   = &LLType{Kind: "i8"}
)

// PtrTo constructs a pointer-to-elem type, e.g. PtrTo(I8) for Vela's str.
func PtrTo(elem *LLType) *LLType { return &LLType{Kind: "ptr", Elem: elem} }

// ArrayOf constructs a fixed-length array-of-elem type, used only for the
// byte-array shape of a string global's storage.
func ArrayOf(elem *LLType, length int) *LLType { return &LLType{Kind: "arr", Elem: elem, Len: length} }

func (t *LLType) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case "ptr":
		return fmt.Sprintf("%s*", t.Elem)
	case "arr":
		return fmt.Sprintf("[%d x %s]", t.Len, t.Elem)
	default:
		return t.Kind
	}
}

// Equal reports whether two LLTypes describe the same shape.
func Equal(a, b *LLType) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case "ptr":
		return Equal(a.Elem, b.Elem)
	case "arr":
		return a.Len == b.Len && Equal(a.Elem, b.Elem)
	default:
		return true
	}
}
