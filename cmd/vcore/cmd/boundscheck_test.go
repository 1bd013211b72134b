package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func captureStderr(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	err := fn()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

// TestRunBoundsCheckCleanFixturePasses exercises the happy path: a fixture
// with no bounds violations should not be treated as a failure.
func TestRunBoundsCheckCleanFixturePasses(t *testing.T) {
	body := `
unit: clean
types:
  - name: byte
    kind: integer
    range: {left: 0, right: 255}
consts:
  - name: answer
    type: byte
    value: {kind: int, value: 42}
`
	path := writeFixture(t, "clean.yaml", body)

	oldNoColor := noColor
	defer func() { noColor = oldNoColor }()
	noColor = true

	_, err := captureStderr(t, func() error {
		return runBoundsCheck(boundsCheckCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runBoundsCheck failed on a clean fixture: %v", err)
	}
}

// TestRunBoundsCheckMalformedFixtureReportsError exercises loadFixture's
// panic-to-error conversion for a fixture referencing an unknown type.
func TestRunBoundsCheckMalformedFixtureReportsError(t *testing.T) {
	body := `
unit: broken
consts:
  - name: x
    type: nonexistent
    value: {kind: int, value: 1}
`
	path := writeFixture(t, "broken.yaml", body)

	oldNoColor := noColor
	defer func() { noColor = oldNoColor }()
	noColor = true

	_, err := captureStderr(t, func() error {
		return runBoundsCheck(boundsCheckCmd, []string{path})
	})
	if err == nil {
		t.Fatal("expected an error for a fixture referencing an unknown type")
	}
	if !strings.Contains(err.Error(), "malformed fixture") {
		t.Fatalf("error = %v, want it to mention a malformed fixture", err)
	}
}

// TestRunBoundsCheckMissingFileReportsError ensures a nonexistent fixture
// path surfaces the underlying os.ReadFile error rather than panicking.
func TestRunBoundsCheckMissingFileReportsError(t *testing.T) {
	oldNoColor := noColor
	defer func() { noColor = oldNoColor }()
	noColor = true

	_, err := captureStderr(t, func() error {
		return runBoundsCheck(boundsCheckCmd, []string{filepath.Join(t.TempDir(), "missing.yaml")})
	})
	if err == nil {
		t.Fatal("expected an error for a missing fixture file")
	}
}

// TestRunBoundsCheckFallsBackToConfiguredFixtureDirs exercises
// resolveFixturePaths: with no file arguments, bounds-check should glob
// cfg.FixtureDirs for *.yaml fixtures instead of failing cobra's arg check.
func TestRunBoundsCheckFallsBackToConfiguredFixtureDirs(t *testing.T) {
	dir := t.TempDir()
	body := `
unit: clean
types:
  - name: byte
    kind: integer
    range: {left: 0, right: 255}
consts:
  - name: answer
    type: byte
    value: {kind: int, value: 42}
`
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	oldNoColor, oldCfg := noColor, cfg
	defer func() { noColor, cfg = oldNoColor, oldCfg }()
	noColor = true
	cfg = &Config{FixtureDirs: []string{dir}}

	_, err := captureStderr(t, func() error {
		return runBoundsCheck(boundsCheckCmd, nil)
	})
	if err != nil {
		t.Fatalf("runBoundsCheck with no args should fall back to fixtureDirs, got: %v", err)
	}
}

// TestResolveFixturePathsErrorsWithNoArgsAndNoConfig ensures the fallback
// fails loudly rather than silently checking zero files.
func TestResolveFixturePathsErrorsWithNoArgsAndNoConfig(t *testing.T) {
	oldCfg := cfg
	defer func() { cfg = oldCfg }()
	cfg = &Config{}

	if _, err := resolveFixturePaths(nil); err == nil {
		t.Fatal("expected an error when no args and no fixtureDirs are configured")
	}
}
