package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create pipe: %v", pipeErr)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRunEvalHelloWorldHandsOffIR(t *testing.T) {
	runEvalExpr = `func main() -> void { print("Hello") }`
	runDumpIR = false
	runVerbose = false
	t.Cleanup(func() { runEvalExpr = "" })

	out, err := captureStdout(t, func() error { return runRun(nil, nil) })
	if err != nil {
		t.Fatalf("unexpected error: %v, output: %s", err, out)
	}
	if !strings.Contains(out, "func main") {
		t.Errorf("expected IR dump to contain the lowered function, got: %s", out)
	}
	if !strings.Contains(out, "call i32 printf") {
		t.Errorf("expected IR dump to contain a printf call, got: %s", out)
	}
}

func TestRunEvalTypeErrorFailsBeforeLowering(t *testing.T) {
	runEvalExpr = `func f() -> void { bool b = 5 }`
	t.Cleanup(func() { runEvalExpr = "" })

	out, err := captureStdout(t, func() error { return runRun(nil, nil) })
	if err == nil {
		t.Fatalf("expected a type error, got none; output: %s", out)
	}
	if !strings.Contains(err.Error(), "type checking failed") {
		t.Errorf("expected a type-checking failure, got: %v", err)
	}
}

func TestRunEvalParseErrorFailsFast(t *testing.T) {
	runEvalExpr = `func f( -> void {}`
	t.Cleanup(func() { runEvalExpr = "" })

	_, err := captureStdout(t, func() error { return runRun(nil, nil) })
	if err == nil {
		t.Fatal("expected a parse error, got none")
	}
	if !strings.Contains(err.Error(), "ParseError") {
		t.Errorf("expected a ParseError, got: %v", err)
	}
}
