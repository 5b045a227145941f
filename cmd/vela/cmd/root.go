package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// noColor backs the persistent --no-color flag; rootCmd's PersistentPreRun
// copies it into fatih/color's color.NoColor, which usesColor (pipeline.go)
// reads alongside fatih/color's own terminal/NO_COLOR detection, so piping
// vela's output never depends on the caller exporting NO_COLOR.
var noColor bool

var rootCmd = &cobra.Command{
	Use:   "vela",
	Short: "Vela compiler front-end",
	Long: `vela drives Vela's front-end pipeline: lexer, parser, type checker,
and IR lowerer.

Vela is a statically-typed, ahead-of-time compiled language. This tool
takes source through lexing, parsing, type checking, and lowering to a
typed IR module; it does not itself generate machine code, link, or
execute programs — those stages are external collaborators that consume
the IR this tool emits.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostic output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
