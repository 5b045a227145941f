// Package lower translates a type-checked Vela program into the typed
// three-address IR defined by package ir. It is the Go-native successor to
// `original_source/src/backend/llvm_compiler.py`'s LLVMCompiler, reworked
// around this module's own register-based IR instead of emitting real LLVM
// IR via llvmlite.
//
// Lowering follows the parser's fail-fast discipline (see
// internal/parser.Parser): a single malformed or unresolvable construct
// aborts the whole pass via a panic/recover sentinel, because by this stage
// the type checker has already run and accumulated every recoverable
// diagnostic. Anything the lowerer itself rejects is an internal error
// (spec's `LoweringError` kind), not a user-facing one.
package lower

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/internal/ir"
	"github.com/vela-lang/vela/internal/typecheck"
	"github.com/vela-lang/vela/internal/types"
	"github.com/vela-lang/vela/pkg/token"
)

// Lowerer walks a checked Program and builds an ir.Module. One Lowerer
// lowers exactly one program; create a fresh one per compilation.
type Lowerer struct {
	checker *typecheck.Checker

	mod *ir.Module

	fn    *ir.Function
	block *ir.BasicBlock

	// slots maps a local's name to the pointer Value its OpAlloca produced,
	// scoped to the function currently being lowered.
	slots map[string]ir.Value

	// slotTypes records each slot's checked Vela type, so expression
	// lowering can pick the int/float instruction variant and print's
	// format string without re-running inference.
	slotTypes map[string]*types.Type

	// globals de-duplicates string/format constants by content, per spec's
	// "de-duplicated global constants" contract.
	globals map[string]string

	// loops is a stack of enclosing while-loop exit points, innermost last,
	// so break/continue can branch to the right cond/end block without
	// threading loop context through every statement lowerer.
	loops []loopTargets

	regN   int
	blockN int
}

// loopTargets records the two blocks break/continue branch to for one
// enclosing loop.
type loopTargets struct {
	cond *ir.BasicBlock
	end  *ir.BasicBlock
}

// New constructs a Lowerer over the annotations a Checker produced for the
// same Program that will be passed to Lower.
func New(checker *typecheck.Checker) *Lowerer {
	return &Lowerer{checker: checker}
}

// lowerAbort is the sentinel panic value used to unwind to Lower on the
// first internal lowering failure, mirroring the parser's parseAbort.
type lowerAbort struct{ err *errors.CompilerError }

// Lower runs the lowerer to completion, returning a Module or a single
// *errors.CompilerError. It never returns a partial module alongside an
// error.
func Lower(program *ast.Program, checker *typecheck.Checker) (mod *ir.Module, err *errors.CompilerError) {
	l := New(checker)

	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(lowerAbort)
			if !ok {
				panic(r)
			}
			mod = nil
			err = abort.err
		}
	}()

	l.mod = &ir.Module{
		Name: "vela_module",
		Externs: []*ir.ExternDecl{
			{Name: "printf", ParamTypes: []*ir.LLType{ir.PtrTo(ir.I8)}, ReturnType: ir.I32, Variadic: true},
			{Name: "malloc", ParamTypes: []*ir.LLType{ir.I64}, ReturnType: ir.PtrTo(ir.I8)},
			{Name: "free", ParamTypes: []*ir.LLType{ir.PtrTo(ir.I8)}, ReturnType: ir.Void},
		},
	}
	l.globals = map[string]string{}

	for _, stmt := range program.Statements {
		l.lowerTopLevel(stmt)
	}

	return l.mod, nil
}

func (l *Lowerer) fail(pos token.Position, format string, args ...any) {
	panic(lowerAbort{err: errors.New(errors.KindLowering, pos, format, args...)})
}

// lowerTopLevel dispatches the handful of statement kinds legal at program
// scope. Class and trait declarations are accepted by the grammar and
// registered by the checker, but per spec's design notes lowering ignores
// them entirely: there is no object layout or vtable to emit.
func (l *Lowerer) lowerTopLevel(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		l.lowerFunction(s)
	case *ast.ClassDeclaration, *ast.TraitDeclaration:
		// lowering ignores them (spec §9 design notes).
	case *ast.ImportStatement:
		// syntactic only; nothing to lower.
	case *ast.VarDeclaration:
		l.fail(s.Pos(), "top-level variable declarations are not supported by lowering")
	default:
		l.fail(stmt.Pos(), "unsupported top-level statement %T", stmt)
	}
}

// llvmType maps a checked Vela type to its lowered machine shape, per
// spec §4.4's conversion table.
func (l *Lowerer) llvmType(t *types.Type) *ir.LLType {
	if t == nil {
		return ir.I64
	}
	switch t.Kind {
	case types.Int, types.Auto:
		return ir.I64
	case types.Float:
		return ir.F64
	case types.Bool:
		return ir.I1
	case types.Void:
		return ir.Void
	case types.Str:
		return ir.PtrTo(ir.I8)
	case types.Null:
		return ir.PtrTo(ir.I8)
	case types.Array:
		return ir.PtrTo(l.llvmType(t.Elem))
	default:
		// Class/Trait/Generic/Function values have no runtime representation
		// in this backend; treat them as an opaque i8* handle.
		return ir.PtrTo(ir.I8)
	}
}

func (l *Lowerer) newReg(t *ir.LLType) ir.Value {
	l.regN++
	name := fmt.Sprintf("t%d", l.regN)
	return ir.Reg(name, t)
}

func (l *Lowerer) newLabel(prefix string) string {
	l.blockN++
	return fmt.Sprintf("%s.%d", prefix, l.blockN)
}

// emit appends an instruction to the current block and returns its result
// Value (the zero Value if the instruction is void).
func (l *Lowerer) emit(in *ir.Instruction) ir.Value {
	l.block.Instructions = append(l.block.Instructions, in)
	if in.Result == "" {
		return ir.Value{}
	}
	return ir.Reg(in.Result, in.Type)
}

// newBlock appends a fresh, empty basic block to the current function and
// makes it the current function's last block (callers reposition with
// setBlock once they're ready to start emitting into it).
func (l *Lowerer) newBlock(label string) *ir.BasicBlock {
	b := &ir.BasicBlock{Label: label}
	l.fn.Blocks = append(l.fn.Blocks, b)
	return b
}

// setBlock repositions emission to b.
func (l *Lowerer) setBlock(b *ir.BasicBlock) { l.block = b }

// terminated reports whether the current block already has a terminator,
// mirroring the original compiler's `builder.block.is_terminated` check.
func (l *Lowerer) terminated() bool { return l.block.Term != nil }

// internString interns a byte-string constant as a module global, reusing
// an existing global when the content already has one.
func (l *Lowerer) internString(content string) string {
	if name, ok := l.globals[content]; ok {
		return name
	}
	name := fmt.Sprintf("str.%d", len(l.globals))
	l.mod.Globals = append(l.mod.Globals, &ir.Global{Name: name, Content: content})
	l.globals[content] = name
	return name
}

// bitcastGlobal loads a named global's address and bitcasts it from
// [N x i8]* to i8*, the two-step shape spec's end-to-end scenario 1
// describes for passing a string constant to printf.
func (l *Lowerer) bitcastGlobal(name string, arrType *ir.LLType) ir.Value {
	src := ir.GlobalRef(name, ir.PtrTo(arrType))
	res := l.newReg(ir.PtrTo(ir.I8))
	l.emit(&ir.Instruction{Op: ir.OpBitcast, Result: res.Name, Type: ir.PtrTo(ir.I8), Args: []ir.Value{src}})
	return res
}
