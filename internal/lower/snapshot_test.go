package lower

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// Snapshot tests over the lowered IR's textual dump, grounded on the
// teacher's fixture_test.go use of go-snaps.MatchSnapshot for interpreter
// output comparison — here applied to the lowerer's serialized module text
// instead of runtime output, since Vela's pipeline ends at the IR contract.
func TestLowerSnapshotHelloWorld(t *testing.T) {
	out, err := lowerSource(t, `func main() -> void { print("Hello") }`)
	require.Nil(t, err)
	snaps.MatchSnapshot(t, "hello_world_ir", out)
}

func TestLowerSnapshotArithmeticAndBranch(t *testing.T) {
	out, err := lowerSource(t, `func classify(n: int) -> int {
  if n < 0 {
    return 0
  }
  return n * n
}`)
	require.Nil(t, err)
	snaps.MatchSnapshot(t, "arithmetic_and_branch_ir", out)
}

func TestLowerSnapshotWhileLoop(t *testing.T) {
	out, err := lowerSource(t, `func countUp() -> void {
  auto i = 0
  while i < 3 {
    i = i + 1
  }
}`)
	require.Nil(t, err)
	snaps.MatchSnapshot(t, "while_loop_ir", out)
}
