// Package enginetest provides a scriptable Engine for tests. Stage
// results are keyed by source text, and per-stage call counters let
// tests assert that short-circuiting stages were never invoked.
package enginetest

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/yaklabco/codelint/pkg/engine"
)

// Script describes the staged results for one source text.
type Script struct {
	ParseErrors    []*engine.AnalysisError
	SemanticErrors []*engine.AnalysisError
	Findings       []engine.Finding
}

// Engine is a scriptable engine.Engine implementation. It is safe for
// concurrent use once configured.
type Engine struct {
	// Scripts maps exact source text to its staged results. Texts with
	// no entry use the zero Script (clean file).
	Scripts map[string]Script

	// FixCapability is returned from HasFixCapability.
	FixCapability bool

	// ApplyFixesFunc overrides the default fix application, which
	// applies each finding's edits in offset order.
	ApplyFixesFunc func(text string, findings []engine.Finding) engine.FixResult

	parseCalls    atomic.Int64
	semanticCalls atomic.Int64
	lintCalls     atomic.Int64
	fixCalls      atomic.Int64
}

type fakeTree struct{ script Script }

type fakeModel struct{ script Script }

func (e *Engine) scriptFor(text string) Script {
	if e.Scripts == nil {
		return Script{}
	}
	return e.Scripts[text]
}

// Parse implements engine.Engine.
func (e *Engine) Parse(_ context.Context, text string, _ engine.Dialect) engine.ParseResult {
	e.parseCalls.Add(1)
	script := e.scriptFor(text)
	return engine.ParseResult{
		Tree:   &fakeTree{script: script},
		Errors: script.ParseErrors,
	}
}

// BuildSemanticModel implements engine.Engine.
func (e *Engine) BuildSemanticModel(_ context.Context, _ string, _ engine.Dialect, tree engine.Tree) engine.SemanticResult {
	e.semanticCalls.Add(1)
	script := tree.(*fakeTree).script
	return engine.SemanticResult{
		Model:  &fakeModel{script: script},
		Errors: script.SemanticErrors,
	}
}

// Lint implements engine.Engine.
func (e *Engine) Lint(_ context.Context, model engine.SemanticModel) []engine.Finding {
	e.lintCalls.Add(1)
	return model.(*fakeModel).script.Findings
}

// HasFixCapability implements engine.Engine.
func (e *Engine) HasFixCapability() bool { return e.FixCapability }

// ApplyFixes implements engine.Engine.
func (e *Engine) ApplyFixes(text string, findings []engine.Finding) engine.FixResult {
	e.fixCalls.Add(1)
	if e.ApplyFixesFunc != nil {
		return e.ApplyFixesFunc(text, findings)
	}

	var edits []engine.FixEdit
	for _, finding := range findings {
		edits = append(edits, finding.Fixes...)
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Start < edits[j].Start })

	var out strings.Builder
	cursor := 0
	for _, edit := range edits {
		if edit.Start < cursor || edit.End > len(text) {
			continue
		}
		out.WriteString(text[cursor:edit.Start])
		out.WriteString(edit.NewText)
		cursor = edit.End
	}
	out.WriteString(text[cursor:])

	return engine.FixResult{Fixed: out.String(), Residual: findings}
}

// ParseCalls returns the number of Parse invocations.
func (e *Engine) ParseCalls() int64 { return e.parseCalls.Load() }

// SemanticCalls returns the number of BuildSemanticModel invocations.
func (e *Engine) SemanticCalls() int64 { return e.semanticCalls.Load() }

// LintCalls returns the number of Lint invocations.
func (e *Engine) LintCalls() int64 { return e.lintCalls.Load() }

// FixCalls returns the number of ApplyFixes invocations.
func (e *Engine) FixCalls() int64 { return e.fixCalls.Load() }
