// Package typecheck implements Vela's static type checker: scope-chain
// resolution, inference, and assignability checking over the parser's AST.
//
// Grounded in `original_source/src/frontend/types.py`'s `TypeChecker`
// (`infer_type`, `check_statement`, `can_assign`) and the teacher's
// error-accumulation idiom (`internal/semantic/analyzer.go`'s
// `addError(format, args...)`): the checker never aborts on the first
// error, instead falling back to `auto` so later statements can still be
// inspected, and the overall check succeeds iff the accumulated error list
// is empty (spec §4.3, §7).
package typecheck

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/internal/types"
	"github.com/vela-lang/vela/pkg/token"
)

// Checker walks a Program, annotating every expression node with its
// inferred type in a side table keyed by node identity (spec §9: the AST
// itself is never mutated).
type Checker struct {
	env         *types.Environment
	annotations map[ast.Expression]*types.Type
	errs        errors.List
	loopDepth   int
}

// New constructs a Checker with the outermost scope seeded with the
// built-in functions spec §4.3 names: print, len, range (one or two int
// arguments, see checkRangeCall), str.
func New() *Checker {
	c := &Checker{
		env:         types.NewEnvironment(nil),
		annotations: make(map[ast.Expression]*types.Type),
	}
	c.seedBuiltins()
	return c
}

func (c *Checker) seedBuiltins() {
	c.env.DefineFunction("print", types.NewFunction([]*types.Type{types.AutoType}, types.VoidType))
	c.env.DefineFunction("len", types.NewFunction([]*types.Type{types.NewArray(types.AutoType)}, types.IntType))
	// range is overloaded over two arities (range(int) and range(int,int)),
	// both returning [int]; this single-param entry is only the type
	// identifier "range" resolves to when referenced (not called) directly,
	// e.g. passed as a pipeline stage. inferCall special-cases an actual
	// call to "range" via checkRangeCall, since Environment has no
	// overload-list shape to register both arities under one name.
	c.env.DefineFunction("range", types.NewFunction([]*types.Type{types.IntType}, types.NewArray(types.IntType)))
	c.env.DefineFunction("str", types.NewFunction([]*types.Type{types.AutoType}, types.StrType))
}

// Check runs the checker over the full program and returns the accumulated
// error list; the check succeeds iff the list is empty.
func (c *Checker) Check(program *ast.Program) errors.List {
	for _, stmt := range program.Statements {
		c.checkStatement(stmt)
	}
	return c.errs
}

// TypeOf looks up an expression's annotated type; ok is false if the
// expression was never visited (e.g. dead code inside an aborted branch).
func (c *Checker) TypeOf(expr ast.Expression) (*types.Type, bool) {
	t, ok := c.annotations[expr]
	return t, ok
}

func (c *Checker) addError(pos token.Position, format string, args ...any) {
	c.errs = append(c.errs, errors.New(errors.KindType, pos, format, args...))
}

func (c *Checker) annotate(expr ast.Expression, t *types.Type) *types.Type {
	c.annotations[expr] = t
	return t
}

// ---- statements ----

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		c.checkVarDeclaration(s)
	case *ast.AssignStatement:
		c.checkAssignStatement(s)
	case *ast.ExpressionStatement:
		c.infer(s.Expression)
	case *ast.ReturnStatement:
		if s.Value != nil {
			c.infer(s.Value)
		}
	case *ast.IfStatement:
		c.checkIfStatement(s)
	case *ast.WhileStatement:
		c.checkWhileStatement(s)
	case *ast.ForStatement:
		c.checkForStatement(s)
	case *ast.BreakStatement:
		if c.loopDepth == 0 {
			c.addError(s.Pos(), "break outside a loop")
		}
	case *ast.ContinueStatement:
		if c.loopDepth == 0 {
			c.addError(s.Pos(), "continue outside a loop")
		}
	case *ast.BlockStatement:
		for _, inner := range s.Statements {
			c.checkStatement(inner)
		}
	case *ast.ParallelStatement:
		for _, task := range s.Tasks {
			c.infer(task)
		}
	case *ast.ImportStatement:
		// Syntactic recognition only; no module resolution (spec §1
		// Non-goals).
	case *ast.FunctionDeclaration:
		c.checkFunctionDeclaration(s)
	case *ast.ClassDeclaration:
		c.checkClassDeclaration(s)
	case *ast.TraitDeclaration:
		c.checkTraitDeclaration(s)
	default:
		c.addError(stmt.Pos(), "internal: unchecked statement kind %T", stmt)
	}
}

func (c *Checker) checkVarDeclaration(s *ast.VarDeclaration) {
	var initType *types.Type
	if s.Initializer != nil {
		initType = c.infer(s.Initializer)
	}

	if s.TypeName == "" || s.TypeName == "auto" {
		if initType == nil {
			initType = types.AutoType
		}
		c.env.DefineVariable(s.Name.Value, initType)
		return
	}

	declared := types.FromTypeName(s.TypeName)
	if initType != nil && !types.CanAssign(declared, initType) {
		c.addError(s.Pos(), "cannot assign %s to %s", initType, declared)
	}
	c.env.DefineVariable(s.Name.Value, declared)
}

func (c *Checker) checkAssignStatement(s *ast.AssignStatement) {
	targetType := c.infer(s.Target)
	valueType := c.infer(s.Value)
	if !types.CanAssign(targetType, valueType) {
		c.addError(s.Pos(), "cannot assign %s to %s", valueType, targetType)
	}
}

func (c *Checker) checkIfStatement(s *ast.IfStatement) {
	condType := c.infer(s.Condition)
	if condType.Kind != types.Bool {
		c.addError(s.Condition.Pos(), "condition must be bool, got %s", condType)
	}
	c.checkStatement(s.Then)
	if s.Else != nil {
		c.checkStatement(s.Else)
	}
}

func (c *Checker) checkWhileStatement(s *ast.WhileStatement) {
	condType := c.infer(s.Condition)
	if condType.Kind != types.Bool {
		c.addError(s.Condition.Pos(), "condition must be bool, got %s", condType)
	}
	c.loopDepth++
	c.checkStatement(s.Body)
	c.loopDepth--
}

// checkForStatement validates the collection is an array(T) and binds the
// loop variable to T within the body, per the redesign decision recorded
// in DESIGN.md (parsing and type checking accept for-in in full; only
// lowering refuses it).
func (c *Checker) checkForStatement(s *ast.ForStatement) {
	collType := c.infer(s.Iterable)
	var elem *types.Type
	if collType.Kind == types.Array {
		elem = collType.Elem
	} else {
		c.addError(s.Iterable.Pos(), "for-in collection must be an array, got %s", collType)
		elem = types.AutoType
	}
	c.env.DefineVariable(s.Variable.Value, elem)
	c.loopDepth++
	c.checkStatement(s.Body)
	c.loopDepth--
}

func (c *Checker) checkFunctionDeclaration(s *ast.FunctionDeclaration) {
	paramTypes := make([]*types.Type, len(s.Params))
	for i, p := range s.Params {
		paramTypes[i] = types.FromTypeName(p.TypeName)
	}
	returnType := types.FromTypeName(s.ReturnType)
	funcType := types.NewFunction(paramTypes, returnType)

	// Register in the enclosing scope before checking the body so that
	// recursive calls resolve.
	c.env.DefineFunction(s.Name.Value, funcType)

	if s.Body == nil {
		return // trait signature
	}

	outer := c.env
	c.env = types.NewEnvironment(outer)
	for i, p := range s.Params {
		c.env.DefineVariable(p.Name.Value, paramTypes[i])
	}
	c.checkStatement(s.Body)
	c.env = outer
}

func (c *Checker) checkClassDeclaration(s *ast.ClassDeclaration) {
	info := &types.ClassInfo{
		Name:    s.Name.Value,
		Fields:  make(map[string]*types.Type),
		Methods: make(map[string]*types.Type),
	}
	for _, t := range s.Traits {
		info.Traits = append(info.Traits, t.Value)
	}

	for _, f := range s.Fields {
		if f.TypeName != "" {
			info.Fields[f.Name.Value] = types.FromTypeName(f.TypeName)
		} else {
			info.Fields[f.Name.Value] = types.AutoType
		}
	}
	for _, m := range s.Methods {
		paramTypes := make([]*types.Type, len(m.Params))
		for i, p := range m.Params {
			paramTypes[i] = types.FromTypeName(p.TypeName)
		}
		info.Methods[m.Name.Value] = types.NewFunction(paramTypes, types.FromTypeName(m.ReturnType))
	}
	c.env.DefineClass(info.Name, info)

	// Trait conformance: every named trait's methods must be structurally
	// present in the class's own method list (spec §9 "reserved surface").
	for _, traitName := range info.Traits {
		trait, ok := c.env.GetTrait(traitName)
		if !ok {
			c.addError(s.Pos(), "unknown trait %s referenced by class %s", traitName, info.Name)
			continue
		}
		for methodName, sig := range trait.Methods {
			classSig, ok := info.Methods[methodName]
			if !ok {
				c.addError(s.Pos(), "class %s does not implement method %s required by trait %s", info.Name, methodName, traitName)
				continue
			}
			if !types.Equal(classSig, sig) {
				c.addError(s.Pos(), "class %s method %s has signature %s, trait %s requires %s", info.Name, methodName, classSig, traitName, sig)
			}
		}
	}

	for _, m := range s.Methods {
		c.checkFunctionDeclaration(m)
	}
}

func (c *Checker) checkTraitDeclaration(s *ast.TraitDeclaration) {
	info := &types.TraitInfo{Name: s.Name.Value, Methods: make(map[string]*types.Type)}
	for _, m := range s.Methods {
		paramTypes := make([]*types.Type, len(m.Params))
		for i, p := range m.Params {
			paramTypes[i] = types.FromTypeName(p.TypeName)
		}
		info.Methods[m.Name.Value] = types.NewFunction(paramTypes, types.FromTypeName(m.ReturnType))
	}
	c.env.DefineTrait(info.Name, info)
}

// ---- expressions ----

func (c *Checker) infer(expr ast.Expression) *types.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return c.annotate(e, types.IntType)
	case *ast.FloatLiteral:
		return c.annotate(e, types.FloatType)
	case *ast.StringLiteral:
		return c.annotate(e, types.StrType)
	case *ast.BooleanLiteral:
		return c.annotate(e, types.BoolType)
	case *ast.NullLiteral:
		return c.annotate(e, types.NullType)
	case *ast.Identifier:
		return c.inferIdentifier(e)
	case *ast.BinaryExpression:
		return c.inferBinary(e)
	case *ast.UnaryExpression:
		return c.inferUnary(e)
	case *ast.GroupedExpression:
		return c.annotate(e, c.infer(e.Expression))
	case *ast.ArrayLiteral:
		return c.inferArrayLiteral(e)
	case *ast.IndexExpression:
		return c.inferIndex(e)
	case *ast.CallExpression:
		return c.inferCall(e)
	case *ast.MemberExpression:
		return c.inferMember(e)
	case *ast.LambdaExpression:
		return c.inferLambda(e)
	case *ast.PipelineExpression:
		return c.inferPipeline(e)
	case *ast.MatchExpression:
		return c.inferMatch(e)
	case *ast.ObjectLiteral:
		return c.inferObjectLiteral(e)
	default:
		c.addError(expr.Pos(), "internal: uninferred expression kind %T", expr)
		return c.annotate(expr, types.AutoType)
	}
}

func (c *Checker) inferIdentifier(e *ast.Identifier) *types.Type {
	if t, ok := c.env.GetVariable(e.Value); ok {
		return c.annotate(e, t)
	}
	if t, ok := c.env.GetFunction(e.Value); ok {
		return c.annotate(e, t)
	}
	c.addError(e.Pos(), "undefined variable %s", e.Value)
	return c.annotate(e, types.AutoType)
}

func (c *Checker) inferBinary(e *ast.BinaryExpression) *types.Type {
	left := c.infer(e.Left)
	right := c.infer(e.Right)

	switch e.Operator {
	case "+", "-", "*", "/", "%", "**":
		if left.Kind == types.Float || right.Kind == types.Float {
			return c.annotate(e, types.FloatType)
		}
		return c.annotate(e, types.IntType)
	case "==", "!=", "<", ">", "<=", ">=", "and", "or":
		return c.annotate(e, types.BoolType)
	default:
		c.addError(e.Pos(), "internal: unknown binary operator %q", e.Operator)
		return c.annotate(e, types.AutoType)
	}
}

func (c *Checker) inferUnary(e *ast.UnaryExpression) *types.Type {
	operand := c.infer(e.Right)
	switch e.Operator {
	case "not":
		return c.annotate(e, types.BoolType)
	case "-":
		return c.annotate(e, operand)
	case "await":
		// Transparent pass-through, per spec §5: the core never executes
		// concurrency, so await simply yields its operand's type.
		return c.annotate(e, operand)
	default:
		c.addError(e.Pos(), "internal: unknown unary operator %q", e.Operator)
		return c.annotate(e, types.AutoType)
	}
}

func (c *Checker) inferArrayLiteral(e *ast.ArrayLiteral) *types.Type {
	if len(e.Elements) == 0 {
		return c.annotate(e, types.NewArray(types.AutoType))
	}
	elemType := c.infer(e.Elements[0])
	for _, elem := range e.Elements[1:] {
		c.infer(elem)
	}
	return c.annotate(e, types.NewArray(elemType))
}

func (c *Checker) inferIndex(e *ast.IndexExpression) *types.Type {
	leftType := c.infer(e.Left)
	c.infer(e.Index)
	if leftType.Kind == types.Array {
		return c.annotate(e, leftType.Elem)
	}
	c.addError(e.Pos(), "cannot index non-array type %s", leftType)
	return c.annotate(e, types.AutoType)
}

// rangeBuiltinIdent reports whether e's callee is the bare identifier
// "range", the one builtin spec §4.3 overloads across two arities
// (range(int) and range(int,int)); internal/types.Environment has no
// overload-list shape (one *Type per name), so the two signatures are
// special-cased here instead of registered as two environment entries.
func rangeBuiltinIdent(callee ast.Expression) bool {
	ident, ok := callee.(*ast.Identifier)
	return ok && ident.Value == "range"
}

func (c *Checker) inferCall(e *ast.CallExpression) *types.Type {
	calleeType := c.infer(e.Callee)
	argTypes := make([]*types.Type, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = c.infer(a)
	}

	if calleeType.Kind != types.Function {
		c.addError(e.Pos(), "cannot call non-function type %s", calleeType)
		return c.annotate(e, types.AutoType)
	}

	if rangeBuiltinIdent(e.Callee) {
		return c.annotate(e, c.checkRangeCall(e, argTypes))
	}

	if calleeType.Kind != types.Auto && len(calleeType.Params) > 0 {
		// Argument count/type checking only runs when both sides are
		// non-auto, per spec §4.3.
		if len(argTypes) == len(calleeType.Params) {
			for i, want := range calleeType.Params {
				if want.Kind == types.Auto || argTypes[i].Kind == types.Auto {
					continue
				}
				if !types.CanAssign(want, argTypes[i]) {
					c.addError(e.Args[i].Pos(), "argument %d: cannot assign %s to %s", i+1, argTypes[i], want)
				}
			}
		} else {
			c.addError(e.Pos(), "expected %d arguments, got %d", len(calleeType.Params), len(argTypes))
		}
	}

	return c.annotate(e, calleeType.Return)
}

// checkRangeCall validates the two overloaded arities spec §4.3 pre-seeds
// range under: range(int) -> [int] and range(int,int) -> [int]. Both
// always return array(int); only the argument count/types vary.
func (c *Checker) checkRangeCall(e *ast.CallExpression, argTypes []*types.Type) *types.Type {
	switch len(argTypes) {
	case 1, 2:
		for i, a := range argTypes {
			if a.Kind == types.Auto {
				continue
			}
			if !types.CanAssign(types.IntType, a) {
				c.addError(e.Args[i].Pos(), "argument %d: cannot assign %s to int", i+1, a)
			}
		}
	default:
		c.addError(e.Pos(), "range expects 1 or 2 arguments, got %d", len(argTypes))
	}
	return types.NewArray(types.IntType)
}

func (c *Checker) inferMember(e *ast.MemberExpression) *types.Type {
	objType := c.infer(e.Object)
	if objType.Kind == types.Class {
		if info, ok := c.env.GetClass(objType.Name); ok {
			if ft, ok := info.Fields[e.Name.Value]; ok {
				return c.annotate(e, ft)
			}
			if mt, ok := info.Methods[e.Name.Value]; ok {
				return c.annotate(e, mt)
			}
		}
	}
	return c.annotate(e, types.AutoType)
}

func (c *Checker) inferLambda(e *ast.LambdaExpression) *types.Type {
	paramTypes := make([]*types.Type, len(e.Params))
	for i, p := range e.Params {
		paramTypes[i] = types.FromTypeName(p.TypeName)
	}
	returnType := types.VoidType
	if e.ReturnType != "" {
		returnType = types.FromTypeName(e.ReturnType)
	}

	outer := c.env
	c.env = types.NewEnvironment(outer)
	for i, p := range e.Params {
		c.env.DefineVariable(p.Name.Value, paramTypes[i])
	}
	switch body := e.Body.(type) {
	case *ast.BlockStatement:
		c.checkStatement(body)
	case ast.Expression:
		bodyType := c.infer(body)
		if e.ReturnType == "" {
			returnType = bodyType
		}
	}
	c.env = outer

	return c.annotate(e, types.NewFunction(paramTypes, returnType))
}

// inferPipeline left-folds: each stage must be callable, and the pipeline's
// result is the final stage's return type. Stages that aren't statically
// known functions (e.g. parameters typed auto) are accepted without
// argument checking.
func (c *Checker) inferPipeline(e *ast.PipelineExpression) *types.Type {
	current := c.infer(e.Initial)
	for _, stage := range e.Stages {
		stageType := c.infer(stage)
		if stageType.Kind == types.Function {
			if len(stageType.Params) == 1 && stageType.Params[0].Kind != types.Auto && current.Kind != types.Auto {
				if !types.CanAssign(stageType.Params[0], current) {
					c.addError(stage.Pos(), "cannot pipe %s into stage expecting %s", current, stageType.Params[0])
				}
			}
			current = stageType.Return
		} else {
			current = types.AutoType
		}
	}
	return c.annotate(e, current)
}

// inferMatch infers the scrutinee and every case, returning the first
// case's result type (mirroring the array-literal rule of taking the
// first element's type as representative).
func (c *Checker) inferMatch(e *ast.MatchExpression) *types.Type {
	c.infer(e.Scrutinee)
	var resultType *types.Type
	for _, cs := range e.Cases {
		c.infer(cs.Pattern)
		t := c.infer(cs.Result)
		if resultType == nil {
			resultType = t
		}
	}
	if resultType == nil {
		resultType = types.AutoType
	}
	return c.annotate(e, resultType)
}

func (c *Checker) inferObjectLiteral(e *ast.ObjectLiteral) *types.Type {
	classType := types.NewClass(e.ClassName.Value)
	info, ok := c.env.GetClass(e.ClassName.Value)
	for _, f := range e.Fields {
		valType := c.infer(f.Value)
		if ok {
			if fieldType, ok := info.Fields[f.Name.Value]; ok && !types.CanAssign(fieldType, valType) {
				c.addError(f.Value.Pos(), "cannot assign %s to field %s of type %s", valType, f.Name.Value, fieldType)
			}
		}
	}
	if !ok {
		c.addError(e.Pos(), "undefined class %s", e.ClassName.Value)
	}
	return c.annotate(e, classType)
}
