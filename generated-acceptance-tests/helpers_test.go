package acceptance_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// contentDir is where the default configuration looks for articles.
const contentDir = "hugo/content"

// runLint executes the articlelint binary and returns stdout, stderr, and exit code.
func runLint(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(lintBinary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run articlelint: %v", err)
		}
	}
	return stdout.String(), stderr.String(), exitCode
}

// runLintExpect runs articlelint expecting the given exit code and returns stdout.
func runLintExpect(t *testing.T, dir string, wantCode int, args ...string) string {
	t.Helper()
	stdout, stderr, exitCode := runLint(t, dir, args...)
	if exitCode != wantCode {
		t.Fatalf("expected exit %d, got %d\nargs: %v\nstdout: %s\nstderr: %s", wantCode, exitCode, args, stdout, stderr)
	}
	return stdout
}

// lintReport mirrors the JSON document printed by --json.
type lintReport struct {
	Checks []struct {
		Check    string `json:"check"`
		Articles int    `json:"articles"`
		Findings int    `json:"findings"`
		Aborted  bool   `json:"aborted"`
	} `json:"checks"`
	Findings []struct {
		Type       string `json:"type"`
		Article    string `json:"article"`
		Path       string `json:"path"`
		Line       int    `json:"line"`
		Suggestion string `json:"suggestion"`
	} `json:"findings"`
	Summary struct {
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
	} `json:"summary"`
}

// runLintJSON runs articlelint with --json, checks the exit code, and parses the report.
func runLintJSON(t *testing.T, dir string, wantCode int, args ...string) lintReport {
	t.Helper()
	stdout := runLintExpect(t, dir, wantCode, append(args, "--json")...)
	var report lintReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("failed to parse JSON report: %v\noutput: %s", err, stdout)
	}
	return report
}

// newSite creates a temp dir holding an empty hugo/content tree.
func newSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, contentDir), 0o755); err != nil {
		t.Fatalf("failed to create content dir: %v", err)
	}
	return dir
}

// addArticle writes hugo/content/<article>/index.md.
func addArticle(t *testing.T, dir, article, content string) {
	t.Helper()
	writeFile(t, dir, filepath.Join(contentDir, article, "index.md"), content)
}

// writeFile creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// readFile reads a file's content.
func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	return string(content)
}

// snapshotFiles returns a map of relative path → content for every file under dir.
func snapshotFiles(t *testing.T, dir string) map[string]string {
	t.Helper()
	snap := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		snap[rel] = readFile(t, dir, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk %s: %v", dir, err)
	}
	return snap
}

// assertSnapshotUnchanged compares the files under dir against a snapshot.
func assertSnapshotUnchanged(t *testing.T, dir string, snap map[string]string) {
	t.Helper()
	current := snapshotFiles(t, dir)
	if len(current) != len(snap) {
		t.Fatalf("file count changed: had %d, now %d", len(snap), len(current))
	}
	for name, oldContent := range snap {
		newContent, ok := current[name]
		if !ok {
			t.Fatalf("file %s disappeared", name)
		}
		if newContent != oldContent {
			t.Fatalf("file %s content changed", name)
		}
	}
}
