package lower

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/ir"
	"github.com/vela-lang/vela/internal/types"
	"github.com/vela-lang/vela/pkg/token"
)

func (l *Lowerer) lowerExpression(expr ast.Expression) ir.Value {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return ir.ConstInt(e.Value)
	case *ast.FloatLiteral:
		return ir.ConstFloat(e.Value)
	case *ast.BooleanLiteral:
		return ir.ConstBool(e.Value)
	case *ast.NullLiteral:
		return ir.ConstNull(ir.PtrTo(ir.I8))
	case *ast.StringLiteral:
		return l.lowerStringLiteral(e.Value)
	case *ast.Identifier:
		v, ok := l.loadSlot(e.Value)
		if !ok {
			l.fail(e.Pos(), "undefined variable %s", e.Value)
		}
		return v
	case *ast.GroupedExpression:
		return l.lowerExpression(e.Expression)
	case *ast.UnaryExpression:
		return l.lowerUnary(e)
	case *ast.BinaryExpression:
		return l.lowerBinary(e)
	case *ast.CallExpression:
		return l.lowerCallExpression(e)
	case *ast.ArrayLiteral:
		l.fail(e.Pos(), "array literals are not implemented by lowering")
	case *ast.IndexExpression:
		l.fail(e.Pos(), "indexing is not implemented by lowering")
	case *ast.MemberExpression:
		l.fail(e.Pos(), "member access is not implemented by lowering")
	case *ast.MatchExpression:
		l.fail(e.Pos(), "match expressions are not implemented by lowering")
	case *ast.PipelineExpression:
		l.fail(e.Pos(), "pipeline expressions are not implemented by lowering")
	case *ast.LambdaExpression:
		l.fail(e.Pos(), "lambda expressions are not implemented by lowering")
	case *ast.ObjectLiteral:
		l.fail(e.Pos(), "object construction is not implemented by lowering")
	default:
		l.fail(expr.Pos(), "unsupported expression kind %T", expr)
	}
	panic("unreachable")
}

// lowerStringLiteral interns the literal's bytes as a global and returns the
// bitcast i8* pointer to it, the shape spec's scenario 1 describes for a
// standalone string value.
func (l *Lowerer) lowerStringLiteral(value string) ir.Value {
	name := l.internString(value)
	return l.bitcastGlobal(name, ir.ArrayOf(ir.I8, len(value)+1))
}

func (l *Lowerer) lowerUnary(e *ast.UnaryExpression) ir.Value {
	switch e.Operator {
	case "not":
		operand := l.lowerExpression(e.Right)
		res := l.newReg(ir.I1)
		l.emit(&ir.Instruction{Op: ir.OpNot, Result: res.Name, Type: ir.I1, Args: []ir.Value{operand}})
		return res
	case "await":
		// Transparent pass-through: the core never schedules concurrency.
		return l.lowerExpression(e.Right)
	case "-":
		operand := l.lowerExpression(e.Right)
		if ir.Equal(operand.Type, ir.F64) {
			res := l.newReg(ir.F64)
			l.emit(&ir.Instruction{Op: ir.OpNegF, Result: res.Name, Type: ir.F64, Args: []ir.Value{operand}})
			return res
		}
		res := l.newReg(ir.I64)
		l.emit(&ir.Instruction{Op: ir.OpNegI, Result: res.Name, Type: ir.I64, Args: []ir.Value{operand}})
		return res
	default:
		l.fail(e.Pos(), "unsupported unary operator %q", e.Operator)
	}
	panic("unreachable")
}

func (l *Lowerer) lowerBinary(e *ast.BinaryExpression) ir.Value {
	switch e.Operator {
	case "and", "or":
		return l.lowerAndOr(e)
	default:
		left := l.lowerExpression(e.Left)
		right := l.lowerExpression(e.Right)
		return l.lowerArith(e.Operator, left, right, e.Pos())
	}
}

// lowerArith implements the arithmetic and comparison operator family,
// grounded in compile_expression's BinaryOp dispatch, with one correction:
// where the original only inspects the left operand's LLVM type (silently
// mishandling a mixed int/float pair), this version widens both operands to
// float whenever either is float, matching the checker's "float absorbs
// int" rule (spec scenario 6) and the type lower_arith is fed.
func (l *Lowerer) lowerArith(op string, left, right ir.Value, pos token.Position) ir.Value {
	isFloat := ir.Equal(left.Type, ir.F64) || ir.Equal(right.Type, ir.F64)
	if isFloat {
		left = l.toFloat(left)
		right = l.toFloat(right)
	}

	switch op {
	case "+", "-", "*", "/":
		var code ir.OpCode
		resType := ir.I64
		if isFloat {
			resType = ir.F64
			switch op {
			case "+":
				code = ir.OpAddF
			case "-":
				code = ir.OpSubF
			case "*":
				code = ir.OpMulF
			case "/":
				code = ir.OpDivF
			}
		} else {
			switch op {
			case "+":
				code = ir.OpAddI
			case "-":
				code = ir.OpSubI
			case "*":
				code = ir.OpMulI
			case "/":
				code = ir.OpSDivI
			}
		}
		res := l.newReg(resType)
		l.emit(&ir.Instruction{Op: code, Result: res.Name, Type: resType, Args: []ir.Value{left, right}})
		return res

	case "%":
		if isFloat {
			l.fail(pos, "modulo is only implemented for integer operands")
		}
		res := l.newReg(ir.I64)
		l.emit(&ir.Instruction{Op: ir.OpSRemI, Result: res.Name, Type: ir.I64, Args: []ir.Value{left, right}})
		return res

	case "**":
		// REDESIGN DECISION: the original compiler lowers `**` as a plain
		// multiply (a documented bug). Integer exponentiation is lowered
		// as an exponentiation-by-squaring loop instead; a float operand
		// has no such routine here and is refused explicitly rather than
		// silently mishandled.
		if isFloat {
			l.fail(pos, "exponentiation is only implemented for integer operands")
		}
		return l.lowerIntPow(left, right)

	case "==", "!=", "<", ">", "<=", ">=":
		var code ir.OpCode
		if isFloat {
			switch op {
			case "==":
				code = ir.OpFCmpEQ
			case "!=":
				code = ir.OpFCmpNE
			case "<":
				code = ir.OpFCmpLT
			case ">":
				code = ir.OpFCmpGT
			case "<=":
				code = ir.OpFCmpLE
			case ">=":
				code = ir.OpFCmpGE
			}
		} else {
			switch op {
			case "==":
				code = ir.OpICmpEQ
			case "!=":
				code = ir.OpICmpNE
			case "<":
				code = ir.OpICmpLT
			case ">":
				code = ir.OpICmpGT
			case "<=":
				code = ir.OpICmpLE
			case ">=":
				code = ir.OpICmpGE
			}
		}
		res := l.newReg(ir.I1)
		l.emit(&ir.Instruction{Op: code, Result: res.Name, Type: ir.I1, Args: []ir.Value{left, right}})
		return res

	default:
		l.fail(pos, "unsupported binary operator %q", op)
	}
	panic("unreachable")
}

// lowerAndOr lowers `and`/`or` via conditional branches into a temporary
// slot, giving true short-circuit semantics. REDESIGN DECISION: the
// original compiler lowers both as bitwise `and_`/`or_`, which evaluates
// both operands unconditionally and is wrong whenever the right-hand side
// has a side effect the left should have skipped.
func (l *Lowerer) lowerAndOr(e *ast.BinaryExpression) ir.Value {
	resultSlot := l.allocTemp(ir.I1)
	left := l.lowerExpression(e.Left)
	l.storeTemp(resultSlot, left)

	rhsBlock := l.newBlock(l.newLabel(e.Operator + ".rhs"))
	mergeBlock := l.newBlock(l.newLabel(e.Operator + ".end"))

	if e.Operator == "and" {
		l.block.Term = ir.CondBr(left, rhsBlock.Label, mergeBlock.Label)
	} else {
		l.block.Term = ir.CondBr(left, mergeBlock.Label, rhsBlock.Label)
	}

	l.setBlock(rhsBlock)
	right := l.lowerExpression(e.Right)
	l.storeTemp(resultSlot, right)
	if !l.terminated() {
		l.block.Term = ir.Br(mergeBlock.Label)
	}

	l.setBlock(mergeBlock)
	return l.loadTemp(resultSlot)
}

// lowerIntPow lowers integer `**` as exponentiation by squaring, assuming a
// non-negative exponent (Vela has no negative-exponent integer semantics).
func (l *Lowerer) lowerIntPow(base, exp ir.Value) ir.Value {
	resultSlot := l.allocTemp(ir.I64)
	l.storeTemp(resultSlot, ir.ConstInt(1))
	baseSlot := l.allocTemp(ir.I64)
	l.storeTemp(baseSlot, base)
	expSlot := l.allocTemp(ir.I64)
	l.storeTemp(expSlot, exp)

	condBlock := l.newBlock(l.newLabel("pow.cond"))
	bodyBlock := l.newBlock(l.newLabel("pow.body"))
	oddThenBlock := l.newBlock(l.newLabel("pow.odd"))
	oddEndBlock := l.newBlock(l.newLabel("pow.oddend"))
	endBlock := l.newBlock(l.newLabel("pow.end"))

	l.block.Term = ir.Br(condBlock.Label)

	l.setBlock(condBlock)
	e := l.loadTemp(expSlot)
	cont := l.newReg(ir.I1)
	l.emit(&ir.Instruction{Op: ir.OpICmpGT, Result: cont.Name, Type: ir.I1, Args: []ir.Value{e, ir.ConstInt(0)}})
	l.block.Term = ir.CondBr(cont, bodyBlock.Label, endBlock.Label)

	l.setBlock(bodyBlock)
	e2 := l.loadTemp(expSlot)
	rem := l.newReg(ir.I64)
	l.emit(&ir.Instruction{Op: ir.OpSRemI, Result: rem.Name, Type: ir.I64, Args: []ir.Value{e2, ir.ConstInt(2)}})
	isOdd := l.newReg(ir.I1)
	l.emit(&ir.Instruction{Op: ir.OpICmpNE, Result: isOdd.Name, Type: ir.I1, Args: []ir.Value{rem, ir.ConstInt(0)}})
	l.block.Term = ir.CondBr(isOdd, oddThenBlock.Label, oddEndBlock.Label)

	l.setBlock(oddThenBlock)
	r := l.loadTemp(resultSlot)
	b := l.loadTemp(baseSlot)
	r2 := l.newReg(ir.I64)
	l.emit(&ir.Instruction{Op: ir.OpMulI, Result: r2.Name, Type: ir.I64, Args: []ir.Value{r, b}})
	l.storeTemp(resultSlot, r2)
	l.block.Term = ir.Br(oddEndBlock.Label)

	l.setBlock(oddEndBlock)
	b3 := l.loadTemp(baseSlot)
	b4 := l.newReg(ir.I64)
	l.emit(&ir.Instruction{Op: ir.OpMulI, Result: b4.Name, Type: ir.I64, Args: []ir.Value{b3, b3}})
	l.storeTemp(baseSlot, b4)
	e3 := l.loadTemp(expSlot)
	e4 := l.newReg(ir.I64)
	l.emit(&ir.Instruction{Op: ir.OpSDivI, Result: e4.Name, Type: ir.I64, Args: []ir.Value{e3, ir.ConstInt(2)}})
	l.storeTemp(expSlot, e4)
	l.block.Term = ir.Br(condBlock.Label)

	l.setBlock(endBlock)
	return l.loadTemp(resultSlot)
}

func (l *Lowerer) lowerCallExpression(e *ast.CallExpression) ir.Value {
	ident, ok := e.Callee.(*ast.Identifier)
	if !ok {
		l.fail(e.Pos(), "only direct function calls are supported by lowering")
	}

	if ident.Value == "print" {
		return l.lowerPrintCall(e.Args, e.Pos())
	}
	if ident.Value == "len" || ident.Value == "range" || ident.Value == "str" {
		l.fail(e.Pos(), "builtin %q is not implemented by lowering", ident.Value)
	}

	args := make([]ir.Value, len(e.Args))
	for i, a := range e.Args {
		args[i] = l.lowerExpression(a)
	}

	retType := types.VoidType
	if t, ok := l.checker.TypeOf(e); ok {
		retType = t
	}
	llRet := l.llvmType(retType)
	if ir.Equal(llRet, ir.Void) {
		l.emit(&ir.Instruction{Op: ir.OpCall, Type: ir.Void, Args: args, Callee: ident.Value})
		return ir.Value{}
	}
	res := l.newReg(llRet)
	l.emit(&ir.Instruction{Op: ir.OpCall, Result: res.Name, Type: llRet, Args: args, Callee: ident.Value})
	return res
}

// lowerPrintCall mirrors compile_print's four-way format dispatch, per spec
// §8 scenario 1: a string-literal argument's bytes are interned verbatim
// (no folded-in newline) as their own global, and every case's trailing
// newline lives in the shared, content-deduplicated format global instead
// ("%s\n", "%ld\n", "%f\n", "%p\n") so two print sites of the same kind
// reuse one format constant.
func (l *Lowerer) lowerPrintCall(args []ast.Expression, pos token.Position) ir.Value {
	if len(args) == 0 {
		return ir.ConstInt(0)
	}

	if sl, ok := args[0].(*ast.StringLiteral); ok {
		strPtr := l.lowerStringLiteral(sl.Value)
		fmtPtr := l.printfFormat("%s\n")
		return l.callPrintf(fmtPtr, strPtr)
	}

	arg := l.lowerExpression(args[0])
	var fmtContent string
	switch {
	case ir.Equal(arg.Type, ir.F64):
		fmtContent = "%f\n"
	case ir.Equal(arg.Type, ir.I64), ir.Equal(arg.Type, ir.I1):
		fmtContent = "%ld\n"
	default:
		fmtContent = "%p\n"
	}
	fmtPtr := l.printfFormat(fmtContent)
	return l.callPrintf(fmtPtr, arg)
}

func (l *Lowerer) printfFormat(content string) ir.Value {
	name := l.internString(content)
	return l.bitcastGlobal(name, ir.ArrayOf(ir.I8, len(content)+1))
}

func (l *Lowerer) callPrintf(args ...ir.Value) ir.Value {
	res := l.newReg(ir.I32)
	l.emit(&ir.Instruction{Op: ir.OpCall, Result: res.Name, Type: ir.I32, Args: args, Callee: "printf"})
	return res
}

// toFloat widens an i64 value to f64, constant-folding literal operands
// instead of emitting a conversion instruction.
func (l *Lowerer) toFloat(v ir.Value) ir.Value {
	if ir.Equal(v.Type, ir.F64) {
		return v
	}
	if v.Kind == "const.int" {
		return ir.ConstFloat(float64(v.IntVal))
	}
	res := l.newReg(ir.F64)
	l.emit(&ir.Instruction{Op: ir.OpSIToFP, Result: res.Name, Type: ir.F64, Args: []ir.Value{v}})
	return res
}

// convertTo widens v to target's lowered shape where the checker's
// assignability rule allows int->float but the source value didn't already
// take that shape (spec scenario 6's "insert the appropriate conversion").
func (l *Lowerer) convertTo(v ir.Value, target *types.Type) ir.Value {
	if target == nil {
		return v
	}
	if target.Kind == types.Float && !ir.Equal(v.Type, ir.F64) {
		return l.toFloat(v)
	}
	return v
}

// allocTemp, storeTemp and loadTemp manage anonymous stack slots used for
// control-flow-merged values (and/or, exponentiation), since this IR has no
// phi instruction.
func (l *Lowerer) allocTemp(t *ir.LLType) ir.Value {
	ptr := l.newReg(ir.PtrTo(t))
	l.emit(&ir.Instruction{Op: ir.OpAlloca, Result: ptr.Name, Type: ir.PtrTo(t)})
	return ptr
}

func (l *Lowerer) storeTemp(ptr, v ir.Value) {
	l.emit(&ir.Instruction{Op: ir.OpStore, Type: ptr.Type.Elem, Args: []ir.Value{v, ptr}})
}

func (l *Lowerer) loadTemp(ptr ir.Value) ir.Value {
	res := l.newReg(ptr.Type.Elem)
	l.emit(&ir.Instruction{Op: ir.OpLoad, Result: res.Name, Type: ptr.Type.Elem, Args: []ir.Value{ptr}})
	return res
}
