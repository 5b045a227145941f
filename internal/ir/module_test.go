package ir_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ir"
)

func TestLLTypeString(t *testing.T) {
	require.Equal(t, "i64", ir.I64.String())
	require.Equal(t, "i8*", ir.PtrTo(ir.I8).String())
	require.Equal(t, "[6 x i8]", ir.ArrayOf(ir.I8, 6).String())
}

func TestLLTypeEqual(t *testing.T) {
	require.True(t, ir.Equal(ir.I64, ir.I64))
	require.True(t, ir.Equal(ir.PtrTo(ir.I8), ir.PtrTo(ir.I8)))
	require.False(t, ir.Equal(ir.PtrTo(ir.I8), ir.PtrTo(ir.I64)))
	require.True(t, ir.Equal(ir.ArrayOf(ir.I8, 3), ir.ArrayOf(ir.I8, 3)))
	require.False(t, ir.Equal(ir.ArrayOf(ir.I8, 3), ir.ArrayOf(ir.I8, 4)))
}

func TestValueStrings(t *testing.T) {
	require.Equal(t, "1", ir.ConstInt(1).String())
	require.Equal(t, "true", ir.ConstBool(true).String())
	require.Equal(t, "%x", ir.Reg("x", ir.I64).String())
	require.Equal(t, "@g", ir.GlobalRef("g", ir.I64).String())
	require.Equal(t, "null", ir.ConstNull(ir.PtrTo(ir.I8)).String())
}

func TestInstructionStringBinaryOp(t *testing.T) {
	in := &ir.Instruction{
		Op:     ir.OpAddI,
		Result: "t1",
		Type:   ir.I64,
		Args:   []ir.Value{ir.ConstInt(1), ir.ConstInt(2)},
	}
	require.Equal(t, "%t1 = add i64 1, 2", in.String())
}

func TestInstructionStringCall(t *testing.T) {
	in := &ir.Instruction{
		Op:     ir.OpCall,
		Result: "t1",
		Type:   ir.I32,
		Args:   []ir.Value{ir.GlobalRef("fmt.0", ir.PtrTo(ir.I8))},
		Callee: "printf",
	}
	require.Equal(t, "%t1 = call i32 printf(@fmt.0)", in.String())
}

func TestInstructionStringAlloca(t *testing.T) {
	in := &ir.Instruction{Op: ir.OpAlloca, Result: "t1", Type: ir.PtrTo(ir.I64)}
	require.Equal(t, "%t1 = alloca i64", in.String())
}

func TestTerminatorStrings(t *testing.T) {
	require.Equal(t, "ret void", ir.Ret().String())
	require.Equal(t, "ret 1", ir.RetValue(ir.ConstInt(1)).String())
	require.Equal(t, "br label %merge", ir.Br("merge").String())
	require.Equal(t, "br %c, label %then, label %else", ir.CondBr(ir.Reg("c", ir.I1), "then", "else").String())
}

func TestModuleStringOrdersSections(t *testing.T) {
	mod := &ir.Module{
		Name:    "m",
		Externs: []*ir.ExternDecl{{Name: "printf", ParamTypes: []*ir.LLType{ir.PtrTo(ir.I8)}, ReturnType: ir.I32, Variadic: true}},
		Globals: []*ir.Global{{Name: "str.0", Content: "hi\n"}},
		Functions: []*ir.Function{{
			Name:       "main",
			ReturnType: ir.Void,
			Blocks: []*ir.BasicBlock{{
				Label: "entry",
				Term:  ir.Ret(),
			}},
		}},
	}

	out := mod.String()
	require.True(t, strings.Contains(out, "extern printf(i8*, ...) -> i32"))
	require.True(t, strings.Contains(out, `@str.0 = internal constant [4 x i8] "hi\n"`))
	require.True(t, strings.Contains(out, "func main() -> void {"))
	require.True(t, strings.Index(out, "extern") < strings.Index(out, "@str.0"))
	require.True(t, strings.Index(out, "@str.0") < strings.Index(out, "func main"))
}
