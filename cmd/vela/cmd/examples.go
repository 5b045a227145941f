package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// examples bundles the end-to-end scenarios from spec §8 so a reader can
// exercise the pipeline without hand-writing a source file. Not part of
// the core (spec §1 lists examples among the CLI's auxiliary surface).
var examples = map[string]string{
	"hello": `func main() -> void {
  print("Hello")
}`,
	"add": `func add(a: int, b: int) -> int {
  return a + b
}`,
	"widen": `func f() -> int {
  auto x = 2
  x = x + 3
  return x
}`,
	"branch": `func g(n: int) -> int {
  if n < 0 {
    return 0
  }
  return n * n
}`,
	"loop": `func loop() -> void {
  auto i = 0
  while i < 3 {
    i = i + 1
  }
}`,
}

var examplesCmd = &cobra.Command{
	Use:   "examples [name]",
	Short: "List or print bundled Vela example programs",
	Long: `With no argument, list the bundled example names (drawn from spec §8's
end-to-end scenarios). With a name, print that example's source.

Pipe an example straight into run (which reads stdin when given no file;
check and compile take a file argument) to see the pipeline work:
  vela examples hello | vela run
  vela examples add | vela run --dump-ir`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExamples,
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}

func runExamples(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		names := make([]string, 0, len(examples))
		for name := range examples {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	src, ok := examples[args[0]]
	if !ok {
		return fmt.Errorf("no such example: %s", args[0])
	}
	fmt.Println(src)
	return nil
}
