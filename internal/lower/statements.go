package lower

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/ir"
	"github.com/vela-lang/vela/internal/types"
)

// lowerBlockStatements lowers a statement sequence in the current block,
// stopping early if a statement terminates the block (return/break/continue
// equivalents), mirroring compile_block's straight-line walk.
func (l *Lowerer) lowerBlockStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		if l.terminated() {
			return
		}
		l.lowerStatement(stmt)
	}
}

func (l *Lowerer) lowerStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		l.lowerVarDeclaration(s)
	case *ast.AssignStatement:
		l.lowerAssignStatement(s)
	case *ast.ExpressionStatement:
		if s.Expression != nil {
			l.lowerExpression(s.Expression)
		}
	case *ast.ReturnStatement:
		l.lowerReturnStatement(s)
	case *ast.IfStatement:
		l.lowerIfStatement(s)
	case *ast.WhileStatement:
		l.lowerWhileStatement(s)
	case *ast.ForStatement:
		l.fail(s.Pos(), "for-in lowering is not implemented")
	case *ast.BreakStatement:
		l.lowerBreakStatement(s)
	case *ast.ContinueStatement:
		l.lowerContinueStatement(s)
	case *ast.BlockStatement:
		l.lowerBlockStatements(s.Statements)
	case *ast.ParallelStatement:
		// The core backend has no scheduler; tasks run sequentially for
		// their side effects, per spec §5's single-threaded semantics.
		for _, task := range s.Tasks {
			l.lowerExpression(task)
		}
	case *ast.ImportStatement:
		// syntactic only.
	case *ast.ClassDeclaration, *ast.TraitDeclaration:
		// lowering ignores them (spec §9 design notes); the parser accepts
		// them inside blocks, so they can appear in function bodies.
	default:
		l.fail(stmt.Pos(), "unsupported statement kind %T", stmt)
	}
}

func (l *Lowerer) lowerVarDeclaration(s *ast.VarDeclaration) {
	if s.Initializer == nil {
		return
	}
	v := l.lowerExpression(s.Initializer)
	v = l.convertTo(v, l.slotTypes[s.Name.Value])
	l.storeSlot(s.Name.Value, v)
}

func (l *Lowerer) lowerAssignStatement(s *ast.AssignStatement) {
	ident, ok := s.Target.(*ast.Identifier)
	if !ok {
		l.fail(s.Pos(), "assignment to non-identifier targets is not implemented")
		return
	}
	v := l.lowerExpression(s.Value)
	if s.Operator != "=" {
		cur, ok := l.loadSlot(ident.Value)
		if !ok {
			l.fail(s.Pos(), "undefined variable %s", ident.Value)
		}
		op := map[string]string{"+=": "+", "-=": "-"}[s.Operator]
		if op == "" {
			l.fail(s.Pos(), "unsupported assignment operator %q", s.Operator)
		}
		v = l.lowerArith(op, cur, v, s.Pos())
	}
	v = l.convertTo(v, l.slotTypes[ident.Value])
	l.storeSlot(ident.Value, v)
}

// lowerBreakStatement branches to the innermost enclosing loop's end block.
func (l *Lowerer) lowerBreakStatement(s *ast.BreakStatement) {
	if len(l.loops) == 0 {
		l.fail(s.Pos(), "break outside a loop")
	}
	target := l.loops[len(l.loops)-1]
	l.block.Term = ir.Br(target.end.Label)
}

// lowerContinueStatement branches to the innermost enclosing loop's
// condition block, re-evaluating the loop test.
func (l *Lowerer) lowerContinueStatement(s *ast.ContinueStatement) {
	if len(l.loops) == 0 {
		l.fail(s.Pos(), "continue outside a loop")
	}
	target := l.loops[len(l.loops)-1]
	l.block.Term = ir.Br(target.cond.Label)
}

func (l *Lowerer) lowerReturnStatement(s *ast.ReturnStatement) {
	if s.Value == nil {
		l.block.Term = ir.Ret()
		return
	}
	v := l.lowerExpression(s.Value)
	if ir.Equal(l.fn.ReturnType, ir.F64) {
		v = l.convertTo(v, types.FloatType)
	}
	l.block.Term = ir.RetValue(v)
}

// lowerIfStatement mirrors compile_if: then/else/merge blocks, branching to
// merge from whichever arm falls through unterminated.
func (l *Lowerer) lowerIfStatement(s *ast.IfStatement) {
	cond := l.lowerExpression(s.Condition)

	thenBlock := l.newBlock(l.newLabel("if.then"))
	var elseBlock *ir.BasicBlock
	if s.Else != nil {
		elseBlock = l.newBlock(l.newLabel("if.else"))
	}
	mergeBlock := l.newBlock(l.newLabel("if.end"))

	if elseBlock != nil {
		l.block.Term = ir.CondBr(cond, thenBlock.Label, elseBlock.Label)
	} else {
		l.block.Term = ir.CondBr(cond, thenBlock.Label, mergeBlock.Label)
	}

	l.setBlock(thenBlock)
	l.lowerStatement(s.Then)
	if !l.terminated() {
		l.block.Term = ir.Br(mergeBlock.Label)
	}

	if elseBlock != nil {
		l.setBlock(elseBlock)
		l.lowerStatement(s.Else)
		if !l.terminated() {
			l.block.Term = ir.Br(mergeBlock.Label)
		}
	}

	l.setBlock(mergeBlock)
}

// lowerWhileStatement mirrors compile_while: cond/body/end blocks, looping
// back to cond from the body unless the body already terminated (e.g. a
// return).
func (l *Lowerer) lowerWhileStatement(s *ast.WhileStatement) {
	condBlock := l.newBlock(l.newLabel("while.cond"))
	bodyBlock := l.newBlock(l.newLabel("while.body"))
	endBlock := l.newBlock(l.newLabel("while.end"))

	l.block.Term = ir.Br(condBlock.Label)

	l.setBlock(condBlock)
	cond := l.lowerExpression(s.Condition)
	l.block.Term = ir.CondBr(cond, bodyBlock.Label, endBlock.Label)

	l.loops = append(l.loops, loopTargets{cond: condBlock, end: endBlock})
	l.setBlock(bodyBlock)
	l.lowerStatement(s.Body)
	if !l.terminated() {
		l.block.Term = ir.Br(condBlock.Label)
	}
	l.loops = l.loops[:len(l.loops)-1]

	l.setBlock(endBlock)
}
