package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/codelint/pkg/analyzer"
	"github.com/yaklabco/codelint/pkg/engine"
	"github.com/yaklabco/codelint/pkg/engine/enginetest"
	"github.com/yaklabco/codelint/pkg/runner"
	"github.com/yaklabco/codelint/pkg/walker"
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

func newRunner(eng *enginetest.Engine) *runner.Runner {
	return runner.New(analyzer.New(eng), &walker.Walker{})
}

func TestRunFullEmptyTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newRunner(&enginetest.Engine{})

	result, err := r.RunFull(context.Background(), runner.Options{Roots: []string{dir}})
	if err != nil {
		t.Fatalf("RunFull() error = %v", err)
	}
	if result.Stats.FilesDiscovered != 0 || len(result.Files) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestRunFullCleanAndFindings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const dirty = "debugger\ndebugger\ndebugger\n"
	writeFile(t, dir, "clean.js", "let ok = 1\n")
	dirtyPath := writeFile(t, dir, "dirty.js", dirty)

	findings := make([]engine.Finding, 3)
	for idx := range findings {
		findings[idx] = engine.Finding{Err: &engine.AnalysisError{
			Severity: engine.SeverityWarning,
			Message:  "debugger statement",
			Labels:   []engine.LabeledSpan{{Offset: idx * 9, Length: 8}},
		}}
	}
	eng := &enginetest.Engine{
		Scripts: map[string]enginetest.Script{dirty: {Findings: findings}},
	}
	r := newRunner(eng)

	result, err := r.RunFull(context.Background(), runner.Options{Roots: []string{dir}, Jobs: 4})
	if err != nil {
		t.Fatalf("RunFull() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 2 {
		t.Errorf("FilesDiscovered = %d, want 2", result.Stats.FilesDiscovered)
	}
	if len(result.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(result.Files))
	}

	// Exactly one clean file with a non-nil empty list, and one file
	// with exactly three diagnostics - regardless of dispatch order.
	byPath := result.ToMap()
	clean, ok := byPath[filepath.Join(dir, "clean.js")]
	if !ok || clean == nil || len(clean) != 0 {
		t.Errorf("clean file diagnostics = %v, want empty non-nil list", clean)
	}
	if got := byPath[dirtyPath]; len(got) != 3 {
		t.Errorf("dirty file diagnostics = %d, want 3", len(got))
	}

	if result.Stats.FilesClean != 1 || result.Stats.Diagnostics != 3 {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestRunFullSkipsUnrecognizedExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.js", "x\n")
	writeFile(t, dir, "notes.txt", "x\n")
	writeFile(t, dir, "style.css", "x\n")

	r := newRunner(&enginetest.Engine{})
	result, err := r.RunFull(context.Background(), runner.Options{Roots: []string{dir}})
	if err != nil {
		t.Fatalf("RunFull() error = %v", err)
	}
	if result.Stats.FilesDiscovered != 1 {
		t.Errorf("FilesDiscovered = %d, want 1", result.Stats.FilesDiscovered)
	}
}

func TestRunFullManyFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const total = 50
	for idx := range total {
		writeFile(t, dir, filepath.Join("src", "sub", "f"+string(rune('a'+idx%26))+string(rune('0'+idx/26))+".ts"), "clean\n")
	}

	r := newRunner(&enginetest.Engine{})
	result, err := r.RunFull(context.Background(), runner.Options{Roots: []string{dir}, Jobs: 8})
	if err != nil {
		t.Fatalf("RunFull() error = %v", err)
	}
	if result.Stats.FilesDiscovered != total || result.Stats.FilesClean != total {
		t.Errorf("Stats = %+v, want %d discovered and clean", result.Stats, total)
	}
}

func TestRunFullFailedFileDoesNotAbortBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "good.js", "ok\n")
	blocked := writeFile(t, dir, "blocked.js", "x\n")
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o644) })
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	r := newRunner(&enginetest.Engine{})
	result, err := r.RunFull(context.Background(), runner.Options{Roots: []string{dir}})
	if err != nil {
		t.Fatalf("RunFull() error = %v", err)
	}

	if result.Stats.FilesFailed != 1 {
		t.Errorf("FilesFailed = %d, want 1", result.Stats.FilesFailed)
	}
	// The readable file still reports.
	if result.Stats.FilesAnalyzed != 2 {
		t.Errorf("FilesAnalyzed = %d, want 2", result.Stats.FilesAnalyzed)
	}
}

func TestRunFullCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.js", "x\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRunner(&enginetest.Engine{})
	if _, err := r.RunFull(ctx, runner.Options{Roots: []string{dir}}); err == nil {
		t.Error("RunFull() with cancelled context returned nil error")
	}
}

func TestRunSingle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const dirty = "debugger\n"
	path := writeFile(t, dir, "a.js", dirty)

	eng := &enginetest.Engine{
		Scripts: map[string]enginetest.Script{
			dirty: {Findings: []engine.Finding{
				{Err: &engine.AnalysisError{Severity: engine.SeverityWarning, Message: "debugger statement"}},
			}},
		},
	}
	r := newRunner(eng)

	fr, err := r.RunSingle(context.Background(), runner.Options{Roots: []string{dir}}, path)
	if err != nil {
		t.Fatalf("RunSingle() error = %v", err)
	}
	if fr == nil || len(fr.Diagnostics) != 1 {
		t.Fatalf("result = %+v, want one diagnostic", fr)
	}
	if fr.Path != path {
		t.Errorf("Path = %q, want %q", fr.Path, path)
	}
}

func TestRunSingleCleanFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "clean.ts", "ok\n")
	r := newRunner(&enginetest.Engine{})

	fr, err := r.RunSingle(context.Background(), runner.Options{Roots: []string{dir}}, path)
	if err != nil {
		t.Fatalf("RunSingle() error = %v", err)
	}
	if fr == nil || fr.Diagnostics == nil || len(fr.Diagnostics) != 0 {
		t.Errorf("result = %+v, want empty non-nil diagnostics", fr)
	}
}

func TestRunSingleNotApplicable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Content would produce findings if it were analyzed; the
	// extension check must short-circuit first.
	path := writeFile(t, dir, "notes.txt", "debugger\n")

	eng := &enginetest.Engine{
		Scripts: map[string]enginetest.Script{
			"debugger\n": {Findings: []engine.Finding{
				{Err: &engine.AnalysisError{Message: "unreachable"}},
			}},
		},
	}
	r := newRunner(eng)

	fr, err := r.RunSingle(context.Background(), runner.Options{Roots: []string{dir}}, path)
	if err != nil {
		t.Fatalf("RunSingle() error = %v", err)
	}
	if fr != nil {
		t.Errorf("result = %+v, want nil for unrecognized extension", fr)
	}
	if eng.ParseCalls() != 0 {
		t.Errorf("ParseCalls = %d, want 0", eng.ParseCalls())
	}
}
