package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, lexErr := lexer.New(src).Tokenize()
	require.Nil(t, lexErr, "lexer error: %v", lexErr)
	prog, parseErr := New(toks).ParseProgram()
	require.Nil(t, parseErr, "parser error: %v", parseErr)
	return prog
}

func parseExprSrc(t *testing.T, src string) ast.Expression {
	t.Helper()
	prog := parseProgram(t, src)
	require.Len(t, prog.Statements, 1)
	stmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok, "expected an ExpressionStatement, got %T", prog.Statements[0])
	return stmt.Expression
}

func TestParseVarDeclaration(t *testing.T) {
	prog := parseProgram(t, "int x = 1\n")
	require.Len(t, prog.Statements, 1)
	decl, ok := prog.Statements[0].(*ast.VarDeclaration)
	require.True(t, ok)
	require.Equal(t, "int", decl.TypeName)
	require.Equal(t, "x", decl.Name.Value)
	require.NotNil(t, decl.Initializer)
}

func TestParseAutoVarDeclarationWithoutInitializer(t *testing.T) {
	prog := parseProgram(t, "auto x\n")
	decl := prog.Statements[0].(*ast.VarDeclaration)
	require.Equal(t, "auto", decl.TypeName)
	require.Nil(t, decl.Initializer)
}

func TestParseAssignmentOperators(t *testing.T) {
	for _, op := range []string{"=", "+=", "-="} {
		prog := parseProgram(t, "x "+op+" 1\n")
		stmt, ok := prog.Statements[0].(*ast.AssignStatement)
		require.True(t, ok, "operator %q", op)
		require.Equal(t, op, stmt.Operator)
	}
}

func TestParseExpressionStatement(t *testing.T) {
	prog := parseProgram(t, "f(1)\n")
	_, ok := prog.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok)
}

func TestParseReturnStatementWithAndWithoutValue(t *testing.T) {
	prog := parseProgram(t, "func f() -> int { return 1 }\n")
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	require.NotNil(t, ret.Value)

	prog = parseProgram(t, "func f() -> void { return }\n")
	fn = prog.Statements[0].(*ast.FunctionDeclaration)
	ret = fn.Body.Statements[0].(*ast.ReturnStatement)
	require.Nil(t, ret.Value)
}

func TestParseIfElseIfElseChain(t *testing.T) {
	prog := parseProgram(t, `if a {
  b
} else if c {
  d
} else {
  e
}
`)
	ifStmt := prog.Statements[0].(*ast.IfStatement)
	require.NotNil(t, ifStmt.Condition)
	require.Len(t, ifStmt.Then.Statements, 1)

	elseIf, ok := ifStmt.Else.(*ast.IfStatement)
	require.True(t, ok, "expected the else branch to itself be an if")
	require.NotNil(t, elseIf.Else)
}

func TestParseWhileStatement(t *testing.T) {
	prog := parseProgram(t, "while x { y }\n")
	while := prog.Statements[0].(*ast.WhileStatement)
	require.NotNil(t, while.Condition)
	require.Len(t, while.Body.Statements, 1)
}

func TestParseForInStatement(t *testing.T) {
	prog := parseProgram(t, "for item in items { print(item) }\n")
	forStmt := prog.Statements[0].(*ast.ForStatement)
	require.Equal(t, "item", forStmt.Variable.Value)
	_, ok := forStmt.Iterable.(*ast.Identifier)
	require.True(t, ok)
}

func TestParseBreakAndContinue(t *testing.T) {
	prog := parseProgram(t, "while true { break\ncontinue }\n")
	while := prog.Statements[0].(*ast.WhileStatement)
	_, ok := while.Body.Statements[0].(*ast.BreakStatement)
	require.True(t, ok)
	_, ok = while.Body.Statements[1].(*ast.ContinueStatement)
	require.True(t, ok)
}

func TestParseParallelStatement(t *testing.T) {
	prog := parseProgram(t, "parallel {\n  f()\n  g()\n}\n")
	ps := prog.Statements[0].(*ast.ParallelStatement)
	require.Len(t, ps.Tasks, 2)
}

func TestParseImportItemListFromModule(t *testing.T) {
	prog := parseProgram(t, `import a, b from "module"`+"\n")
	imp := prog.Statements[0].(*ast.ImportStatement)
	require.Equal(t, "module", imp.Module)
	require.Len(t, imp.Items, 2)
	require.Equal(t, "a", imp.Items[0].Value)
	require.Equal(t, "b", imp.Items[1].Value)
	require.Nil(t, imp.Alias)
}

func TestParseImportModuleWithAlias(t *testing.T) {
	prog := parseProgram(t, `import "module" as m`+"\n")
	imp := prog.Statements[0].(*ast.ImportStatement)
	require.Equal(t, "module", imp.Module)
	require.Nil(t, imp.Items)
	require.NotNil(t, imp.Alias)
	require.Equal(t, "m", imp.Alias.Value)
}

func TestParseImportBareModuleNameNoAlias(t *testing.T) {
	prog := parseProgram(t, "import mathlib\n")
	imp := prog.Statements[0].(*ast.ImportStatement)
	require.Equal(t, "mathlib", imp.Module)
	require.Nil(t, imp.Alias)
}

func TestParseFromImportItemList(t *testing.T) {
	prog := parseProgram(t, "from mathlib import sin, cos\n")
	imp := prog.Statements[0].(*ast.ImportStatement)
	require.Equal(t, "mathlib", imp.Module)
	require.Len(t, imp.Items, 2)
	require.Equal(t, "sin", imp.Items[0].Value)
	require.Equal(t, "cos", imp.Items[1].Value)
	require.Nil(t, imp.Alias)
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, "func add(a: int, b: int) -> int { return a + b }\n")
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	require.Equal(t, "add", fn.Name.Value)
	require.Equal(t, "int", fn.ReturnType)
	require.False(t, fn.Async)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "a", fn.Params[0].Name.Value)
	require.Equal(t, "int", fn.Params[0].TypeName)
}

func TestParseFunctionDeclarationDefaultsVoidReturn(t *testing.T) {
	prog := parseProgram(t, "func noop() { }\n")
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	require.Equal(t, "void", fn.ReturnType)
}

func TestParseAsyncFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, "async func f() -> void { }\n")
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	require.True(t, fn.Async)
}

func TestParseClassDeclarationWithTraitsFieldsAndMethods(t *testing.T) {
	prog := parseProgram(t, `class Point : Shape, Drawable {
  int x = 0
  int y = 0
  func sum() -> int { return x + y }
}
`)
	cd := prog.Statements[0].(*ast.ClassDeclaration)
	require.Equal(t, "Point", cd.Name.Value)
	require.Len(t, cd.Traits, 2)
	require.Equal(t, "Shape", cd.Traits[0].Value)
	require.Equal(t, "Drawable", cd.Traits[1].Value)
	require.Len(t, cd.Fields, 2)
	require.Len(t, cd.Methods, 1)
	require.Equal(t, "sum", cd.Methods[0].Name.Value)
}

func TestParseClassDeclarationWithoutTraits(t *testing.T) {
	prog := parseProgram(t, "class Empty {\n}\n")
	cd := prog.Statements[0].(*ast.ClassDeclaration)
	require.Empty(t, cd.Traits)
}

func TestParseTraitDeclarationMethodSignaturesOnly(t *testing.T) {
	prog := parseProgram(t, `trait Shape {
  func area() -> float
  func perimeter() -> float
}
`)
	td := prog.Statements[0].(*ast.TraitDeclaration)
	require.Equal(t, "Shape", td.Name.Value)
	require.Len(t, td.Methods, 2)
	require.Nil(t, td.Methods[0].Body)
}

func TestParseBlockStatement(t *testing.T) {
	prog := parseProgram(t, "{\n  int x = 1\n  int y = 2\n}\n")
	block := prog.Statements[0].(*ast.BlockStatement)
	require.Len(t, block.Statements, 2)
}

func TestParsePrecedenceArithmetic(t *testing.T) {
	// a + b * c parses as a + (b * c)
	expr := parseExprSrc(t, "a + b * c\n")
	bin := expr.(*ast.BinaryExpression)
	require.Equal(t, "+", bin.Operator)
	require.Equal(t, "a", bin.Left.(*ast.Identifier).Value)
	rhs := bin.Right.(*ast.BinaryExpression)
	require.Equal(t, "*", rhs.Operator)
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	// a ** b ** c parses as a ** (b ** c)
	expr := parseExprSrc(t, "a ** b ** c\n")
	outer := expr.(*ast.BinaryExpression)
	require.Equal(t, "**", outer.Operator)
	require.Equal(t, "a", outer.Left.(*ast.Identifier).Value)
	inner := outer.Right.(*ast.BinaryExpression)
	require.Equal(t, "**", inner.Operator)
	require.Equal(t, "b", inner.Left.(*ast.Identifier).Value)
	require.Equal(t, "c", inner.Right.(*ast.Identifier).Value)
}

func TestParsePrecedenceComparisonVsArithmetic(t *testing.T) {
	// a + b < c + d parses as (a + b) < (c + d)
	expr := parseExprSrc(t, "a + b < c + d\n")
	cmp := expr.(*ast.BinaryExpression)
	require.Equal(t, "<", cmp.Operator)
	_, ok := cmp.Left.(*ast.BinaryExpression)
	require.True(t, ok)
	_, ok = cmp.Right.(*ast.BinaryExpression)
	require.True(t, ok)
}

func TestParsePrecedenceAndOverOr(t *testing.T) {
	// a or b and c parses as a or (b and c)
	expr := parseExprSrc(t, "a or b and c\n")
	or := expr.(*ast.BinaryExpression)
	require.Equal(t, "or", or.Operator)
	require.Equal(t, "a", or.Left.(*ast.Identifier).Value)
	and := or.Right.(*ast.BinaryExpression)
	require.Equal(t, "and", and.Operator)
}

func TestParsePipelineIsLowestAndLeftFolds(t *testing.T) {
	expr := parseExprSrc(t, "a |> b |> c\n")
	pe := expr.(*ast.PipelineExpression)
	require.Equal(t, "a", pe.Initial.(*ast.Identifier).Value)
	require.Len(t, pe.Stages, 2)
	require.Equal(t, "b", pe.Stages[0].(*ast.Identifier).Value)
	require.Equal(t, "c", pe.Stages[1].(*ast.Identifier).Value)
}

func TestParseUnaryOperators(t *testing.T) {
	for _, src := range []string{"-a\n", "not a\n", "await a\n"} {
		expr := parseExprSrc(t, src)
		un, ok := expr.(*ast.UnaryExpression)
		require.True(t, ok, "source %q", src)
		require.Equal(t, "a", un.Right.(*ast.Identifier).Value)
	}
}

func TestParsePostfixCallIndexMemberChain(t *testing.T) {
	expr := parseExprSrc(t, "a.b(1)[2]\n")
	idx := expr.(*ast.IndexExpression)
	call := idx.Left.(*ast.CallExpression)
	member := call.Callee.(*ast.MemberExpression)
	require.Equal(t, "b", member.Name.Value)
	require.Len(t, call.Args, 1)
}

func TestParsePrimaryLiterals(t *testing.T) {
	require.IsType(t, &ast.IntegerLiteral{}, parseExprSrc(t, "1\n"))
	require.IsType(t, &ast.FloatLiteral{}, parseExprSrc(t, "1.5\n"))
	require.IsType(t, &ast.StringLiteral{}, parseExprSrc(t, "\"s\"\n"))
	require.IsType(t, &ast.BooleanLiteral{}, parseExprSrc(t, "true\n"))
	require.IsType(t, &ast.BooleanLiteral{}, parseExprSrc(t, "false\n"))
	require.IsType(t, &ast.NullLiteral{}, parseExprSrc(t, "null\n"))
	require.IsType(t, &ast.Identifier{}, parseExprSrc(t, "x\n"))
}

func TestParseGroupedExpression(t *testing.T) {
	expr := parseExprSrc(t, "(1 + 2) * 3\n")
	bin := expr.(*ast.BinaryExpression)
	require.Equal(t, "*", bin.Operator)
	_, ok := bin.Left.(*ast.GroupedExpression)
	require.True(t, ok)
}

func TestParseArrayLiteral(t *testing.T) {
	expr := parseExprSrc(t, "[1, 2, 3]\n")
	arr := expr.(*ast.ArrayLiteral)
	require.Len(t, arr.Elements, 3)

	empty := parseExprSrc(t, "[]\n").(*ast.ArrayLiteral)
	require.Empty(t, empty.Elements)
}

func TestParseObjectLiteralDisambiguatedFromIdentifier(t *testing.T) {
	expr := parseExprSrc(t, "Point { x = 1, y = 2 }\n")
	obj := expr.(*ast.ObjectLiteral)
	require.Equal(t, "Point", obj.ClassName.Value)
	require.Len(t, obj.Fields, 2)
	require.Equal(t, "x", obj.Fields[0].Name.Value)
}

func TestParseBareIdentifierNotMistakenForObjectLiteral(t *testing.T) {
	// Followed by newline/EOF rather than `{`, stays a plain identifier.
	expr := parseExprSrc(t, "x\n")
	_, ok := expr.(*ast.Identifier)
	require.True(t, ok)
}

func TestParseMatchExpression(t *testing.T) {
	expr := parseExprSrc(t, `match x {
  1 => "one",
  2 => "two"
}
`)
	m := expr.(*ast.MatchExpression)
	require.Equal(t, "x", m.Scrutinee.(*ast.Identifier).Value)
	require.Len(t, m.Cases, 2)
	require.Equal(t, int64(1), m.Cases[0].Pattern.(*ast.IntegerLiteral).Value)
}

func TestParseLambdaExpressionWithBlockBody(t *testing.T) {
	expr := parseExprSrc(t, "|a: int, b| -> int { return a + b }\n")
	lam := expr.(*ast.LambdaExpression)
	require.Len(t, lam.Params, 2)
	require.Equal(t, "int", lam.Params[0].TypeName)
	require.Equal(t, "auto", lam.Params[1].TypeName)
	require.Equal(t, "int", lam.ReturnType)
	_, ok := lam.Body.(*ast.BlockStatement)
	require.True(t, ok)
}

func TestParseLambdaExpressionWithExpressionBody(t *testing.T) {
	expr := parseExprSrc(t, "|x| x + 1\n")
	lam := expr.(*ast.LambdaExpression)
	require.Len(t, lam.Params, 1)
	_, ok := lam.Body.(ast.Expression)
	require.True(t, ok)
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	toks, lexErr := lexer.New(")\n").Tokenize()
	require.Nil(t, lexErr)
	_, err := New(toks).ParseProgram()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "ParseError")
}

func TestParseErrorOnUnclosedParenFailsFast(t *testing.T) {
	toks, lexErr := lexer.New("func f( -> void {}\n").Tokenize()
	require.Nil(t, lexErr)
	_, err := New(toks).ParseProgram()
	require.NotNil(t, err)
}

func TestParseErrorReportsPositionOfOffendingToken(t *testing.T) {
	toks, lexErr := lexer.New("int x = \n").Tokenize()
	require.Nil(t, lexErr)
	_, err := New(toks).ParseProgram()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "ParseError")
	require.Contains(t, err.Error(), "1:")
}
