package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	runEvalExpr   string
	runOptimize   bool
	runDumpTokens bool
	runDumpAST    bool
	runDumpIR     bool
	runVerbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Vela source file",
	Long: `Run the full front-end pipeline over a Vela source file and hand the
resulting IR module off to the JIT executor collaborator.

Per spec §1, the machine-code generator and JIT/AOT driver are external
collaborators: this command's job ends once it has produced a valid IR
module. Lacking a wired executor, run prints the module it would hand
off; a real deployment replaces that print with an actual call into the
JIT collaborator.

Examples:
  vela run script.vela
  vela run -e "func main() -> void { print(\"hi\") }"
  vela run --dump-ir script.vela`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "run inline code instead of reading from a file")
	runCmd.Flags().BoolVarP(&runOptimize, "optimize", "O", false, "accepted for CLI-contract compatibility; optimization is the back-end's concern")
	runCmd.Flags().BoolVar(&runDumpTokens, "dump-tokens", false, "dump the token stream")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump the parsed AST")
	runCmd.Flags().BoolVar(&runDumpIR, "dump-ir", false, "label the printed IR module with an IR: header (run always prints the module)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "verbose progress output")
}

func runRun(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(runEvalExpr, args)
	if err != nil {
		return err
	}

	if runDumpTokens {
		tokens, lexErr := lexAll(input)
		if lexErr != nil {
			printFatal(lexErr, input, filename)
			return fmt.Errorf("lexing failed")
		}
		dumpTokens(tokens)
	}

	program, checker, typeErrs, fatalErr := checkAll(input)
	if fatalErr != nil {
		printFatal(fatalErr, input, filename)
		return fmt.Errorf("%s failed", fatalErr.Kind)
	}
	if runDumpAST {
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

	if runVerbose {
		fmt.Fprintf(os.Stderr, "Lowered %s to a %d-function IR module; handing off to the JIT executor collaborator\n", filename, len(mod.Functions))
	}

	if runDumpIR {
		fmt.Println("IR:")
	}
	// The JIT/AOT driver is an explicit external collaborator (spec §1).
	// Absent one wired into this build, the core's contract is satisfied
	// by producing the module; print it so the hand-off point is visible.
	fmt.Println(mod.String())
	return nil
}
