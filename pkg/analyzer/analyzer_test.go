package analyzer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/codelint/pkg/analyzer"
	"github.com/yaklabco/codelint/pkg/engine"
	"github.com/yaklabco/codelint/pkg/engine/enginetest"
	"github.com/yaklabco/codelint/pkg/protocol"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestAnalyzePathClean(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "clean.js", "let x = 1\n")
	a := analyzer.New(&enginetest.Engine{})

	outcome, err := a.AnalyzePath(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzePath() error = %v", err)
	}
	if outcome != nil {
		t.Errorf("clean file outcome = %+v, want nil", outcome)
	}
}

func TestAnalyzePathParseErrorsShortCircuit(t *testing.T) {
	t.Parallel()

	const content = "let { = broken\n"
	path := writeFile(t, t.TempDir(), "broken.js", content)

	eng := &enginetest.Engine{
		Scripts: map[string]enginetest.Script{
			content: {
				ParseErrors: []*engine.AnalysisError{
					{Severity: engine.SeverityError, Message: "unexpected token",
						Labels: []engine.LabeledSpan{{Offset: 4, Length: 1}}},
				},
				// Findings that must never be reached.
				Findings: []engine.Finding{{Err: &engine.AnalysisError{Message: "unreachable"}}},
			},
		},
	}
	a := analyzer.New(eng)

	outcome, err := a.AnalyzePath(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzePath() error = %v", err)
	}
	if outcome == nil || len(outcome.Diagnostics) != 1 {
		t.Fatalf("outcome = %+v, want one diagnostic", outcome)
	}
	if outcome.Diagnostics[0].Message != "unexpected token" {
		t.Errorf("message = %q", outcome.Diagnostics[0].Message)
	}

	// Parse errors block the semantic and lint stages entirely.
	if eng.SemanticCalls() != 0 {
		t.Errorf("SemanticCalls = %d, want 0", eng.SemanticCalls())
	}
	if eng.LintCalls() != 0 {
		t.Errorf("LintCalls = %d, want 0", eng.LintCalls())
	}
}

func TestAnalyzePathSemanticErrorsShortCircuit(t *testing.T) {
	t.Parallel()

	const content = "let a = 1\nlet a = 2\n"
	path := writeFile(t, t.TempDir(), "dup.js", content)

	eng := &enginetest.Engine{
		Scripts: map[string]enginetest.Script{
			content: {
				SemanticErrors: []*engine.AnalysisError{
					{Severity: engine.SeverityError, Message: "duplicate declaration"},
				},
			},
		},
	}
	a := analyzer.New(eng)

	outcome, err := a.AnalyzePath(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzePath() error = %v", err)
	}
	if outcome == nil || len(outcome.Diagnostics) != 1 {
		t.Fatalf("outcome = %+v, want one diagnostic", outcome)
	}
	if eng.LintCalls() != 0 {
		t.Errorf("LintCalls = %d, want 0 after semantic errors", eng.LintCalls())
	}
}

func TestAnalyzePathLintFindings(t *testing.T) {
	t.Parallel()

	const content = "debugger\n"
	path := writeFile(t, t.TempDir(), "dbg.js", content)

	eng := &enginetest.Engine{
		Scripts: map[string]enginetest.Script{
			content: {
				Findings: []engine.Finding{
					{Err: &engine.AnalysisError{
						Severity: engine.SeverityWarning,
						Message:  "debugger statement",
						Labels:   []engine.LabeledSpan{{Offset: 0, Length: 8}},
					}},
				},
			},
		},
	}
	a := analyzer.New(eng)

	outcome, err := a.AnalyzePath(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzePath() error = %v", err)
	}
	if outcome == nil || len(outcome.Diagnostics) != 1 {
		t.Fatalf("outcome = %+v, want one diagnostic", outcome)
	}
	diag := outcome.Diagnostics[0]
	if diag.Severity != protocol.SeverityWarning {
		t.Errorf("Severity = %d, want warning", diag.Severity)
	}
	if diag.Range.End.Character != 8 {
		t.Errorf("End.Character = %d, want 8", diag.Range.End.Character)
	}
	if outcome.Fixed {
		t.Error("Fixed = true without fix capability")
	}
	if eng.FixCalls() != 0 {
		t.Errorf("FixCalls = %d, want 0", eng.FixCalls())
	}
}

func TestAnalyzePathAutofixPersists(t *testing.T) {
	t.Parallel()

	const content = "debugger\nlet x = 1\n"
	path := writeFile(t, t.TempDir(), "fixme.js", content)

	eng := &enginetest.Engine{
		FixCapability: true,
		Scripts: map[string]enginetest.Script{
			content: {
				Findings: []engine.Finding{
					{
						Err: &engine.AnalysisError{
							Severity: engine.SeverityWarning,
							Message:  "debugger statement",
							Labels:   []engine.LabeledSpan{{Offset: 0, Length: 8}},
						},
						Fixes: []engine.FixEdit{{Start: 0, End: 9, NewText: ""}},
					},
				},
			},
		},
	}
	a := analyzer.New(eng)

	outcome, err := a.AnalyzePath(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzePath() error = %v", err)
	}
	if outcome == nil || !outcome.Fixed {
		t.Fatalf("outcome = %+v, want Fixed", outcome)
	}

	// On-disk content equals the fixed text.
	onDisk, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read back: %v", readErr)
	}
	if string(onDisk) != "let x = 1\n" {
		t.Errorf("on-disk content = %q, want fixed text", onDisk)
	}

	// Diagnostics still reference pre-fix positions.
	if len(outcome.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v, want one", outcome.Diagnostics)
	}
	diag := outcome.Diagnostics[0]
	if diag.Range.Start != (protocol.Position{Line: 0, Character: 0}) || diag.Range.End.Character != 8 {
		t.Errorf("Range = %+v, want pre-fix span of line 0", diag.Range)
	}
}

func TestAnalyzePathUnreadableFile(t *testing.T) {
	t.Parallel()

	a := analyzer.New(&enginetest.Engine{})
	outcome, err := a.AnalyzePath(context.Background(), filepath.Join(t.TempDir(), "missing.js"))
	if err != nil {
		t.Fatalf("AnalyzePath() error = %v, want synthetic diagnostic", err)
	}
	if outcome == nil || !outcome.Failed {
		t.Fatalf("outcome = %+v, want Failed", outcome)
	}
	if len(outcome.Diagnostics) != 1 || outcome.Diagnostics[0].Severity != protocol.SeverityError {
		t.Errorf("diagnostics = %+v, want one synthetic error", outcome.Diagnostics)
	}
}

func TestAnalyzePathUnknownDialect(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "style.css", "body {}\n")
	eng := &enginetest.Engine{}
	a := analyzer.New(eng)

	outcome, err := a.AnalyzePath(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzePath() error = %v", err)
	}
	if outcome == nil || !outcome.Failed {
		t.Fatalf("outcome = %+v, want Failed", outcome)
	}
	if eng.ParseCalls() != 0 {
		t.Errorf("ParseCalls = %d, want 0 for unknown dialect", eng.ParseCalls())
	}
}

func TestAnalyzePathExternalModificationBlocksFix(t *testing.T) {
	t.Parallel()

	const content = "debugger\n"
	dir := t.TempDir()
	path := writeFile(t, dir, "racy.js", content)

	eng := &enginetest.Engine{
		FixCapability: true,
		Scripts: map[string]enginetest.Script{
			content: {
				Findings: []engine.Finding{
					{
						Err:   &engine.AnalysisError{Severity: engine.SeverityWarning, Message: "debugger statement"},
						Fixes: []engine.FixEdit{{Start: 0, End: 9, NewText: ""}},
					},
				},
			},
		},
		// Simulate an external edit between read and write.
		ApplyFixesFunc: func(text string, findings []engine.Finding) engine.FixResult {
			if err := os.WriteFile(path, []byte("externally changed\n"), 0o644); err != nil {
				t.Errorf("external write: %v", err)
			}
			return engine.FixResult{Fixed: "", Residual: findings}
		},
	}
	a := analyzer.New(eng)

	outcome, err := a.AnalyzePath(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzePath() error = %v", err)
	}
	if outcome == nil || outcome.Fixed {
		t.Fatalf("outcome = %+v, want unfixed", outcome)
	}

	// External content survives.
	onDisk, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read back: %v", readErr)
	}
	if string(onDisk) != "externally changed\n" {
		t.Errorf("on-disk content = %q, external edit clobbered", onDisk)
	}
}

func TestAnalyzePathCancelled(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.js", "x\n")
	a := analyzer.New(&enginetest.Engine{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.AnalyzePath(ctx, path)
	if err == nil {
		t.Error("AnalyzePath() with cancelled context returned nil error")
	}
}
