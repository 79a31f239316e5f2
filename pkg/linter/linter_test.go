package linter_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/yaklabco/codelint/pkg/engine"
	"github.com/yaklabco/codelint/pkg/engine/enginetest"
	"github.com/yaklabco/codelint/pkg/linter"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestRunFullIgnoresNodeModules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const dirty = "debugger\n"
	writeFile(t, dir, "src/app.js", dirty)
	writeFile(t, dir, "node_modules/dep/index.js", dirty)

	eng := &enginetest.Engine{
		Scripts: map[string]enginetest.Script{
			dirty: {Findings: []engine.Finding{
				{Err: &engine.AnalysisError{Severity: engine.SeverityWarning, Message: "debugger statement"}},
			}},
		},
	}
	server := linter.New(eng)

	result, err := server.RunFull(context.Background(), dir)
	if err != nil {
		t.Fatalf("RunFull() error = %v", err)
	}
	if result.Stats.FilesDiscovered != 1 {
		t.Errorf("FilesDiscovered = %d, want 1 (node_modules skipped)", result.Stats.FilesDiscovered)
	}
	if len(result.Files) != 1 || result.Files[0].Path != filepath.Join(dir, "src", "app.js") {
		t.Errorf("Files = %+v", result.Files)
	}
}

func TestRunSingleNotApplicable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "README.md", "# hi\n")

	server := linter.New(&enginetest.Engine{})
	fr, err := server.RunSingle(context.Background(), dir, path)
	if err != nil {
		t.Fatalf("RunSingle() error = %v", err)
	}
	if fr != nil {
		t.Errorf("result = %+v, want nil", fr)
	}
}

func TestRunSingleFindings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const dirty = "debugger\n"
	path := writeFile(t, dir, "a.ts", dirty)

	eng := &enginetest.Engine{
		Scripts: map[string]enginetest.Script{
			dirty: {Findings: []engine.Finding{
				{Err: &engine.AnalysisError{Severity: engine.SeverityError, Message: "debugger statement"}},
			}},
		},
	}
	server := linter.New(eng)

	fr, err := server.RunSingle(context.Background(), dir, path)
	if err != nil {
		t.Fatalf("RunSingle() error = %v", err)
	}
	if fr == nil || len(fr.Diagnostics) != 1 {
		t.Fatalf("result = %+v, want one diagnostic", fr)
	}
}

// The shared engine handle must tolerate concurrent full and single
// runs against the same tree.
func TestConcurrentRuns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.js", "one\n")
	writeFile(t, dir, "b.js", "two\n")
	single := writeFile(t, dir, "c.js", "three\n")

	server := linter.New(&enginetest.Engine{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := server.RunFull(context.Background(), dir); err != nil {
				t.Errorf("RunFull() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := server.RunSingle(context.Background(), dir, single); err != nil {
				t.Errorf("RunSingle() error = %v", err)
			}
		}()
	}
	wg.Wait()
}
