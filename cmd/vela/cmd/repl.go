package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Vela session",
	Long: `Start a read-eval-print loop that lexes, parses, type-checks, and lowers
each statement you enter, printing the resulting IR (spec §1 lists the REPL
among the command-line front-end's auxiliary surface, not the core).

A line that leaves an unmatched '{' continues onto the next line until the
braces balance, so multi-line function and class bodies can be entered
naturally. Type .exit or press Ctrl+D to quit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

var (
	replBlueColor   = color.New(color.FgBlue)
	replYellowColor = color.New(color.FgYellow)
	replRedColor    = color.New(color.FgRed)
	replGreenColor  = color.New(color.FgGreen)
)

func runRepl(_ *cobra.Command, _ []string) error {
	replGreenColor.Println("vela " + Version + " — interactive front-end session")
	replBlueColor.Println("Type Vela source, '.exit' to quit. Unbalanced '{' continues onto the next line.")

	rl, err := readline.New("vela> ")
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	var buf strings.Builder
	depth := 0

	for {
		prompt := "vela> "
		if depth > 0 {
			prompt = "   .. "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err != nil {
			fmt.Println("Goodbye.")
			return nil
		}

		if depth == 0 && strings.TrimSpace(line) == ".exit" {
			fmt.Println("Goodbye.")
			return nil
		}

		rl.SaveHistory(line)
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		buf.WriteString(line)
		buf.WriteString("\n")

		if depth > 0 {
			continue
		}
		if depth < 0 {
			replRedColor.Println("unbalanced '}'")
			buf.Reset()
			depth = 0
			continue
		}

		src := buf.String()
		buf.Reset()
		if strings.TrimSpace(src) == "" {
			continue
		}
		evalREPLChunk(src)
	}
}

func evalREPLChunk(src string) {
	mod, typeErrs, fatalErr := lowerAll(src)
	if fatalErr != nil {
		fatalErr.SetContext(src, "<repl>")
		replRedColor.Fprint(os.Stdout, fatalErr.FormatWithContext(1, usesColor()))
		return
	}
	if len(typeErrs) > 0 {
		for _, e := range typeErrs {
			e.SetContext(src, "<repl>")
			replRedColor.Fprint(os.Stdout, e.FormatWithContext(1, usesColor()))
		}
		return
	}
	replYellowColor.Println(mod.String())
}
