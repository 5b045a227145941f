package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Report the vela binary's version, commit, and build date, and the pipeline stages it drives.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vela version %s\n", Version)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Println("Pipeline: lexer -> parser -> type checker -> IR lowerer")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
