package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/internal/ir"
	"github.com/vela-lang/vela/internal/lexer"
	"github.com/vela-lang/vela/internal/lower"
	"github.com/vela-lang/vela/internal/parser"
	"github.com/vela-lang/vela/internal/typecheck"
	"github.com/vela-lang/vela/pkg/token"
)

// readInput resolves a source buffer from either the -e/--eval flag, a file
// argument, or stdin, mirroring the teacher's run/lex/parse command
// dispatch (spec §6's CLI contract only names a file argument; stdin and
// -e are carried over from the teacher's convenience flags).
func readInput(evalExpr string, args []string) (input, filename string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
}

// lexAll runs the lexer to completion over input.
func lexAll(input string) ([]token.Token, *errors.CompilerError) {
	l := lexer.New(input)
	return l.Tokenize()
}

// parseAll runs the lexer then the parser, returning whichever phase fails
// first per spec §4.2's no-recovery discipline.
func parseAll(input string) (*ast.Program, *errors.CompilerError) {
	tokens, lexErr := lexAll(input)
	if lexErr != nil {
		return nil, lexErr
	}
	p := parser.New(tokens)
	return p.ParseProgram()
}

// checkAll parses then type-checks, returning the checker (for annotation
// lookups) and the accumulated error list (spec §4.3: the checker never
// aborts early).
func checkAll(input string) (*ast.Program, *typecheck.Checker, errors.List, *errors.CompilerError) {
	program, err := parseAll(input)
	if err != nil {
		return nil, nil, nil, err
	}
	checker := typecheck.New()
	errs := checker.Check(program)
	return program, checker, errs, nil
}

// lowerAll runs the full pipeline through IR lowering. It refuses to lower
// when the type checker reported errors, per spec §7's propagation policy
// (the lowerer assumes a clean type-checked AST).
func lowerAll(input string) (*ir.Module, errors.List, *errors.CompilerError) {
	program, checker, typeErrs, err := checkAll(input)
	if err != nil {
		return nil, nil, err
	}
	if len(typeErrs) > 0 {
		return nil, typeErrs, nil
	}
	mod, lowerErr := lowerAllChecked(program, checker)
	return mod, nil, lowerErr
}

// lowerAllChecked lowers a program that has already been parsed and
// type-checked with no errors, for callers (compile, run) that need to
// inspect the AST or error list before deciding whether to lower.
func lowerAllChecked(program *ast.Program, checker *typecheck.Checker) (*ir.Module, *errors.CompilerError) {
	return lower.Lower(program, checker)
}

// usesColor reports whether diagnostics should be ANSI-colored, deferring
// to fatih/color's own terminal/NO_COLOR detection.
func usesColor() bool {
	return !color.NoColor
}

// printFatal formats and prints a single non-recoverable CompilerError
// (LexError, ParseError, or LoweringError) to stderr with source context.
func printFatal(err *errors.CompilerError, source, filename string) {
	err.SetContext(source, filename)
	fmt.Fprint(os.Stderr, err.FormatWithContext(1, usesColor()))
}

// printErrorList formats every accumulated TypeError to stderr, in the
// order the checker discovered them.
func printErrorList(errs errors.List, source, filename string) {
	for _, e := range errs {
		e.SetContext(source, filename)
		fmt.Fprint(os.Stderr, e.FormatWithContext(1, usesColor()))
	}
}
