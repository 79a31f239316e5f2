// Package linter is the project-scoped entry point for editor-driven
// analysis. A ServerLinter holds one shared engine for the lifetime of
// the server process and exposes whole-project and single-file runs.
package linter

import (
	"context"

	"github.com/yaklabco/codelint/pkg/analyzer"
	"github.com/yaklabco/codelint/pkg/engine"
	"github.com/yaklabco/codelint/pkg/runner"
	"github.com/yaklabco/codelint/pkg/walker"
)

// ServerLinter wraps a shared, immutably configured engine. Both run
// operations are safe to call repeatedly and concurrently with each
// other; the engine handle is read-only once constructed, and the
// dispatch machinery is assembled fresh per invocation.
type ServerLinter struct {
	analyzer *analyzer.Analyzer
}

// New creates a ServerLinter around an engine. The engine's rule set
// and fix capability are fixed for the linter's lifetime.
func New(eng engine.Engine) *ServerLinter {
	return &ServerLinter{analyzer: analyzer.New(eng)}
}

// optionsFor builds the per-invocation options for a root, excluding
// the conventional dependency directory.
func optionsFor(root string) runner.Options {
	return runner.Options{
		Roots:          []string{root},
		IgnorePatterns: []string{runner.DefaultIgnore},
	}
}

// runnerFor assembles a dispatch pipeline whose discovery honors the
// options' ignore patterns and extension set.
func (s *ServerLinter) runnerFor(opts runner.Options) *runner.Runner {
	w := &walker.Walker{
		Extensions:     opts.Extensions,
		IgnorePatterns: opts.IgnorePatterns,
	}
	if len(w.Extensions) == 0 {
		w.Extensions = engine.ValidExtensions()
	}
	return runner.New(s.analyzer, w)
}

// RunFull analyzes every eligible file under root and returns one
// FileResult per analyzed file. Clean files carry an empty diagnostic
// list so the editor clears their previous diagnostics.
func (s *ServerLinter) RunFull(ctx context.Context, root string) (*runner.Result, error) {
	return s.RunFullWith(ctx, optionsFor(root))
}

// RunFullWith analyzes with caller-supplied options. The CLI uses this
// to thread configured ignore patterns and job caps through the same
// pipeline the editor path uses.
func (s *ServerLinter) RunFullWith(ctx context.Context, opts runner.Options) (*runner.Result, error) {
	return s.runnerFor(opts).RunFull(ctx, opts)
}

// RunSingle analyzes one file scoped to root. It returns (nil, nil)
// when the file's extension is not recognized: not applicable, not an
// error.
func (s *ServerLinter) RunSingle(ctx context.Context, root, path string) (*runner.FileResult, error) {
	opts := optionsFor(root)
	return s.runnerFor(opts).RunSingle(ctx, opts, path)
}
