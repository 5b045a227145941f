// Command vela drives the compiler front-end: lex, parse, type-check, and
// lower source files into the typed IR module the back-end collaborator
// consumes. See cmd/vela/cmd for the subcommand surface.
package main

import (
	"fmt"
	"os"

	"github.com/vela-lang/vela/cmd/vela/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
