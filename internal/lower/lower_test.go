package lower

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/internal/lexer"
	"github.com/vela-lang/vela/internal/parser"
	"github.com/vela-lang/vela/internal/typecheck"
)

func lowerSource(t *testing.T, src string) (string, *errors.CompilerError) {
	t.Helper()
	toks, lexErr := lexer.New(src).Tokenize()
	require.Nil(t, lexErr)
	prog, parseErr := parser.New(toks).ParseProgram()
	require.Nil(t, parseErr)

	checker := typecheck.New()
	checkErrs := checker.Check(prog)
	require.Empty(t, checkErrs, "%v", checkErrs)

	mod, lowerErr := Lower(prog, checker)
	if lowerErr != nil {
		return "", lowerErr
	}
	return mod.String(), nil
}

func TestLowerHelloWorldScenario(t *testing.T) {
	out, err := lowerSource(t, `func main() -> void { print("Hello") }`)
	require.Nil(t, err)

	require.True(t, strings.Contains(out, `internal constant [6 x i8] "Hello"`), out)
	require.True(t, strings.Contains(out, `internal constant [4 x i8] "%s\n"`), out)
	require.Equal(t, 2, strings.Count(out, "bitcast"), out)
	require.True(t, strings.Contains(out, "call i32 printf(%"), out)
	require.True(t, strings.Contains(out, "ret void"), out)
}

func TestLowerArithmeticReturnsInt(t *testing.T) {
	out, err := lowerSource(t, `func add(a: int, b: int) -> int { return a + b }`)
	require.Nil(t, err)
	require.True(t, strings.Contains(out, "add i64"), out)
	require.True(t, strings.Contains(out, "ret %"), out)
}

func TestLowerFloatAbsorbsIntInsertsConversion(t *testing.T) {
	out, err := lowerSource(t, `func f() -> void {
		auto x = 1
		float y = x
	}`)
	require.Nil(t, err)
	require.True(t, strings.Contains(out, "sitofp"), out)
}

func TestLowerIfElseBranches(t *testing.T) {
	out, err := lowerSource(t, `func f(a: int) -> int {
		if a > 0 {
			return 1
		} else {
			return 0
		}
	}`)
	require.Nil(t, err)
	require.True(t, strings.Contains(out, "if.then"), out)
	require.True(t, strings.Contains(out, "if.else"), out)
	require.True(t, strings.Contains(out, "if.end"), out)
	require.True(t, strings.Contains(out, "icmp.gt"), out)
}

func TestLowerWhileLoop(t *testing.T) {
	out, err := lowerSource(t, `func f(n: int) -> int {
		int i = 0
		while i < n {
			i = i + 1
		}
		return i
	}`)
	require.Nil(t, err)
	require.True(t, strings.Contains(out, "while.cond"), out)
	require.True(t, strings.Contains(out, "while.body"), out)
	require.True(t, strings.Contains(out, "while.end"), out)
}

func TestLowerWhileLoopBreakAndContinue(t *testing.T) {
	out, err := lowerSource(t, `func f(n: int) -> int {
		int i = 0
		while i < n {
			if i == 2 {
				break
			}
			i = i + 1
			continue
		}
		return i
	}`)
	require.Nil(t, err)
	require.True(t, strings.Contains(out, "br label %while.end"), out)
	require.True(t, strings.Contains(out, "br label %while.cond"), out)
}

func TestLowerBreakOutsideLoopIsRefused(t *testing.T) {
	_, _, checkErrs, parseErr := func() (*ast.Program, *typecheck.Checker, errors.List, *errors.CompilerError) {
		toks, lexErr := lexer.New(`func f() -> void { break }`).Tokenize()
		require.Nil(t, lexErr)
		prog, pErr := parser.New(toks).ParseProgram()
		if pErr != nil {
			return nil, nil, nil, pErr
		}
		checker := typecheck.New()
		return prog, checker, checker.Check(prog), nil
	}()
	require.Nil(t, parseErr)
	require.NotEmpty(t, checkErrs)
	require.Contains(t, checkErrs.Error(), "break outside a loop")
}

func TestLowerAndShortCircuitsViaBranch(t *testing.T) {
	out, err := lowerSource(t, `func f(a: bool, b: bool) -> bool { return a and b }`)
	require.Nil(t, err)
	require.True(t, strings.Contains(out, "and.rhs"), out)
	require.True(t, strings.Contains(out, "and.end"), out)
}

func TestLowerOrShortCircuitsViaBranch(t *testing.T) {
	out, err := lowerSource(t, `func f(a: bool, b: bool) -> bool { return a or b }`)
	require.Nil(t, err)
	require.True(t, strings.Contains(out, "or.rhs"), out)
	require.True(t, strings.Contains(out, "or.end"), out)
}

func TestLowerIntegerPowerUsesSquaringLoop(t *testing.T) {
	out, err := lowerSource(t, `func f(a: int, b: int) -> int { return a ** b }`)
	require.Nil(t, err)
	require.True(t, strings.Contains(out, "pow.cond"), out)
	require.True(t, strings.Contains(out, "pow.body"), out)
	require.True(t, strings.Contains(out, "pow.end"), out)
	entry := out[:strings.Index(out, "pow.cond")]
	require.False(t, strings.Contains(entry, "mul i64"), "must not lower ** as a plain multiply: %s", out)
	require.Equal(t, 2, strings.Count(out, "mul i64"), "expected only the squaring loop's two multiplies: %s", out)
}

func TestLowerFloatPowerIsRefused(t *testing.T) {
	_, err := lowerSource(t, `func f(a: float, b: float) -> float { return a ** b }`)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "exponentiation")
}

func TestLowerForInIsRefused(t *testing.T) {
	_, err := lowerSource(t, `func f() -> void {
		for x in [1, 2, 3] {
			print(x)
		}
	}`)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "for-in")
}

func TestLowerClassDeclarationIsIgnored(t *testing.T) {
	out, err := lowerSource(t, `class Point {
		int x
		func sum() -> int { return 1 }
	}
	func main() -> void { print("ok") }`)
	require.Nil(t, err)
	require.False(t, strings.Contains(out, "Point"), out)
	require.True(t, strings.Contains(out, "func main"), out)
}

func TestLowerCallsUserFunction(t *testing.T) {
	out, err := lowerSource(t, `func inc(a: int) -> int { return a + 1 }
	func main() -> int { return inc(1) }`)
	require.Nil(t, err)
	require.True(t, strings.Contains(out, "call i64 inc(1)"), out)
}

func TestLowerDirectEntrypoint(t *testing.T) {
	toks, lexErr := lexer.New(`func main() -> void {}`).Tokenize()
	require.Nil(t, lexErr)
	prog, parseErr := parser.New(toks).ParseProgram()
	require.Nil(t, parseErr)
	checker := typecheck.New()
	require.Empty(t, checker.Check(prog))

	mod, err := Lower(prog, checker)
	require.Nil(t, err)
	require.Len(t, mod.Functions, 1)
	require.Equal(t, "main", mod.Functions[0].Name)

	_, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
}
