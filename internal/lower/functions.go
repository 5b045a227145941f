package lower

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/ir"
	"github.com/vela-lang/vela/internal/types"
)

// lowerFunction lowers one top-level function declaration, grounded in
// `original_source/src/backend/llvm_compiler.py`'s compile_function: build
// the signature, open an entry block, alloca every parameter and local up
// front, lower the body, and backfill a fallthrough return if control
// reaches the end of the function unterminated.
func (l *Lowerer) lowerFunction(s *ast.FunctionDeclaration) {
	paramTypes := make([]*types.Type, len(s.Params))
	for i, p := range s.Params {
		paramTypes[i] = types.FromTypeName(p.TypeName)
	}
	returnType := types.FromTypeName(s.ReturnType)

	irParams := make([]ir.Param, len(s.Params))
	for i, p := range s.Params {
		irParams[i] = ir.Param{Name: p.Name.Value, Type: l.llvmType(paramTypes[i])}
	}

	fn := &ir.Function{
		Name:       s.Name.Value,
		Params:     irParams,
		ReturnType: l.llvmType(returnType),
	}
	l.mod.Functions = append(l.mod.Functions, fn)

	outerFn, outerBlock, outerSlots, outerSlotTypes := l.fn, l.block, l.slots, l.slotTypes
	l.fn = fn
	l.slots = map[string]ir.Value{}
	l.slotTypes = map[string]*types.Type{}

	entry := l.newBlock("entry")
	l.setBlock(entry)

	// Hoist every local's stack slot up front, spec's entry-block
	// allocation convention, before lowering a single statement.
	for i, p := range s.Params {
		l.declareSlot(p.Name.Value, paramTypes[i])
	}
	if s.Body != nil {
		for _, vd := range hoistLocals(s.Body.Statements) {
			l.declareSlotFromDeclaration(vd)
		}
	}

	// Bind parameter values into their slots. Parameters are themselves
	// registers named after the parameter, per Function.String's rendering.
	for i, p := range s.Params {
		l.storeSlot(p.Name.Value, ir.Reg(p.Name.Value, irParams[i].Type))
	}

	if s.Body != nil {
		l.lowerBlockStatements(s.Body.Statements)
	}

	if !l.terminated() {
		if fn.ReturnType == ir.Void {
			l.block.Term = ir.Ret()
		} else if ir.Equal(fn.ReturnType, ir.F64) {
			l.block.Term = ir.RetValue(ir.ConstFloat(0))
		} else {
			l.block.Term = ir.RetValue(ir.ConstInt(0))
		}
	}

	l.fn, l.block, l.slots, l.slotTypes = outerFn, outerBlock, outerSlots, outerSlotTypes
}

// declareSlot allocates a stack slot for name:veltype in the entry block and
// records its pointer Value and source type.
func (l *Lowerer) declareSlot(name string, t *types.Type) ir.Value {
	elemType := l.llvmType(t)
	ptr := l.newReg(ir.PtrTo(elemType))
	l.emit(&ir.Instruction{Op: ir.OpAlloca, Result: ptr.Name, Type: ir.PtrTo(elemType)})
	l.slots[name] = ptr
	l.slotTypes[name] = t
	return ptr
}

// declareSlotFromDeclaration mirrors checkVarDeclaration's type resolution:
// an explicit, non-auto TypeName wins; otherwise the type is whatever the
// checker inferred for the initializer (falling back to int, this
// backend's default, for an uninitialized auto local).
func (l *Lowerer) declareSlotFromDeclaration(vd *ast.VarDeclaration) {
	if vd.TypeName != "" && vd.TypeName != "auto" {
		l.declareSlot(vd.Name.Value, types.FromTypeName(vd.TypeName))
		return
	}
	if vd.Initializer != nil {
		if t, ok := l.checker.TypeOf(vd.Initializer); ok {
			l.declareSlot(vd.Name.Value, t)
			return
		}
	}
	l.declareSlot(vd.Name.Value, types.IntType)
}

func (l *Lowerer) storeSlot(name string, v ir.Value) {
	ptr, ok := l.slots[name]
	if !ok {
		return
	}
	l.emit(&ir.Instruction{Op: ir.OpStore, Type: ptr.Type.Elem, Args: []ir.Value{v, ptr}})
}

func (l *Lowerer) loadSlot(name string) (ir.Value, bool) {
	ptr, ok := l.slots[name]
	if !ok {
		return ir.Value{}, false
	}
	res := l.newReg(ptr.Type.Elem)
	l.emit(&ir.Instruction{Op: ir.OpLoad, Result: res.Name, Type: ptr.Type.Elem, Args: []ir.Value{ptr}})
	return res, true
}

// hoistLocals walks a function body's statement tree and returns every
// VarDeclaration reachable without crossing into a nested function
// declaration (the parser accepts one inside a block; lowerStatement
// refuses it).
func hoistLocals(stmts []ast.Statement) []*ast.VarDeclaration {
	var out []*ast.VarDeclaration
	var walk func([]ast.Statement)
	walk = func(stmts []ast.Statement) {
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case *ast.VarDeclaration:
				out = append(out, s)
			case *ast.BlockStatement:
				walk(s.Statements)
			case *ast.IfStatement:
				walk(s.Then.Statements)
				if s.Else != nil {
					walk([]ast.Statement{s.Else})
				}
			case *ast.WhileStatement:
				walk(s.Body.Statements)
			case *ast.ForStatement:
				walk(s.Body.Statements)
			}
		}
	}
	walk(stmts)
	return out
}
