package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.vela")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write temp source: %v", err)
	}
	return path
}

func TestCheckValidProgramSucceeds(t *testing.T) {
	path := writeTempSource(t, `func add(a: int, b: int) -> int { return a + b }`)
	checkFormat = "text"
	checkDumpAST = false
	checkDumpTokens = false

	out, err := captureStdout(t, func() error { return runCheck(nil, []string{path}) })
	if err != nil {
		t.Fatalf("unexpected error: %v, output: %s", err, out)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("expected ok output, got: %s", out)
	}
}

func TestCheckTypeMismatchReportsError(t *testing.T) {
	path := writeTempSource(t, `func f() -> void { bool b = 5 }`)
	checkFormat = "text"

	out, err := captureStdout(t, func() error { return runCheck(nil, []string{path}) })
	if err == nil {
		t.Fatalf("expected a type error, got none; output: %s", out)
	}
	if !strings.Contains(err.Error(), "type checking failed") {
		t.Errorf("expected a type-checking failure, got: %v", err)
	}
}

func TestCheckYAMLFormatReportsDiagnostics(t *testing.T) {
	path := writeTempSource(t, `func f() -> void { bool b = 5 }`)
	checkFormat = "yaml"
	t.Cleanup(func() { checkFormat = "text" })

	out, err := captureStdout(t, func() error { return runCheck(nil, []string{path}) })
	if err == nil {
		t.Fatalf("expected a type error, got none; output: %s", out)
	}
	if !strings.Contains(out, "kind: TypeError") {
		t.Errorf("expected yaml diagnostic kind, got: %s", out)
	}
}
