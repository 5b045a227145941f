package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/vela-lang/vela/internal/ast"
)

var (
	compileOutput      string
	compileNoOptimize  bool
	compileDumpTokens  bool
	compileDumpAST     bool
	compileDumpIR      bool
	compileEmit        string
	compileVerboseFlag bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Lower a Vela source file to its typed IR module",
	Long: `Run the full front-end pipeline — lex, parse, type-check, lower — and
write the resulting IR module's canonical textual form to a file.

compile is the core's hand-off point to the ahead-of-time back-end
collaborator (spec §1): this tool does not generate machine code or
invoke a linker. The written output is exactly the contract described in
spec §6 — a named module, printf/malloc/free externs, named functions
with explicit types, one-terminator basic blocks, and internal-linkage
global constants — ready for that collaborator to consume.

--no-optimize is accepted and forwarded as a no-op marker comment on the
first line of the written output: IR optimization passes are an explicit Non-goal of
this core (spec §1) and belong entirely to the back-end.

Examples:
  vela compile script.vela
  vela compile script.vela -o script.ir
  vela compile --dump-ir script.vela
  vela compile --emit=yaml-ast script.vela`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: <input>.ir)")
	compileCmd.Flags().BoolVar(&compileNoOptimize, "no-optimize", false, "accepted for CLI-contract compatibility; IR optimization is out of the core's scope")
	compileCmd.Flags().BoolVar(&compileDumpTokens, "dump-tokens", false, "dump the token stream")
	compileCmd.Flags().BoolVar(&compileDumpAST, "dump-ast", false, "dump the parsed AST")
	compileCmd.Flags().BoolVar(&compileDumpIR, "dump-ir", false, "print the lowered IR module to stdout")
	compileCmd.Flags().StringVar(&compileEmit, "emit", "ir", "what to write to the output file: ir or yaml-ast")
	compileCmd.Flags().BoolVarP(&compileVerboseFlag, "verbose", "V", false, "verbose progress output")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	if compileVerboseFlag {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	if compileDumpTokens {
		tokens, lexErr := lexAll(input)
		if lexErr != nil {
			printFatal(lexErr, input, filename)
			return fmt.Errorf("lexing failed")
		}
		dumpTokens(tokens)
	}

	if compileEmit == "yaml-ast" {
		return compileEmitYAMLAST(input, filename)
	}

	program, checker, typeErrs, fatalErr := checkAll(input)
	if fatalErr != nil {
		printFatal(fatalErr, input, filename)
		return fmt.Errorf("%s failed", fatalErr.Kind)
	}
	if compileDumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
	}
	if len(typeErrs) > 0 {
		printErrorList(typeErrs, input, filename)
		return fmt.Errorf("type checking failed with %d error(s)", len(typeErrs))
	}

	mod, lowerErr := lowerAllChecked(program, checker)
	if lowerErr != nil {
		printFatal(lowerErr, input, filename)
		return fmt.Errorf("lowering failed")
	}

	if compileDumpIR {
		fmt.Println("IR:")
		fmt.Println(mod.String())
	}

	outFile := compileOutput
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".ir"
		} else {
			outFile = filename + ".ir"
		}
	}

	body := mod.String()
	if compileNoOptimize {
		body = "; --no-optimize: optimization passes deferred to the back-end\n" + body
	}
	if err := os.WriteFile(outFile, []byte(body), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if compileVerboseFlag {
		fmt.Fprintf(os.Stderr, "IR module written to %s (%d bytes)\n", outFile, len(body))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}
	return nil
}

// astDump is the YAML-serializable shape of an AST used by
// --emit=yaml-ast, grounded in the teacher's parse.go dumpASTNode but
// producing structured data instead of printed lines.
type astDump struct {
	Kind     string     `yaml:"kind"`
	Text     string     `yaml:"text,omitempty"`
	Children []astDump  `yaml:"children,omitempty"`
}

func dumpNode(n ast.Node) astDump {
	d := astDump{Kind: fmt.Sprintf("%T", n)}
	switch v := n.(type) {
	case *ast.Program:
		for _, s := range v.Statements {
			d.Children = append(d.Children, dumpNode(s))
		}
	case *ast.BlockStatement:
		for _, s := range v.Statements {
			d.Children = append(d.Children, dumpNode(s))
		}
	case *ast.ExpressionStatement:
		d.Children = []astDump{dumpNode(v.Expression)}
	default:
		d.Text = n.String()
	}
	return d
}

func compileEmitYAMLAST(input, filename string) error {
	program, err := parseAll(input)
	if err != nil {
		printFatal(err, input, filename)
		return fmt.Errorf("parsing failed")
	}
	out, encErr := yaml.Marshal(dumpNode(program))
	if encErr != nil {
		return fmt.Errorf("failed to encode yaml ast: %w", encErr)
	}

	outFile := compileOutput
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".ast.yaml"
		} else {
			outFile = filename + ".ast.yaml"
		}
	}
	if err := os.WriteFile(outFile, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}
	fmt.Printf("Wrote AST -> %s\n", outFile)
	return nil
}
