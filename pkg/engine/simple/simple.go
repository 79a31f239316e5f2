// Package simple provides a small reference implementation of the
// engine contract. It scans script sources with a lightweight
// tokenizer, checks bracket balance and string termination at parse
// time, flags top-level redeclarations at semantic time, and runs a
// compact built-in rule set with fix support.
//
// It exists so the CLI and integration tests can drive the full
// orchestration pipeline without an external engine; production
// deployments plug in their own engine.Engine.
package simple

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/yaklabco/codelint/pkg/engine"
)

// Config controls an engine instance. The configuration is fixed at
// construction; instances are safe for concurrent use.
type Config struct {
	// Fix enables fix generation and reporting of fix capability.
	Fix bool

	// DisabledRules lists rule codes to skip (e.g. "no-console").
	DisabledRules []string
}

// Engine implements engine.Engine.
type Engine struct {
	fix      bool
	disabled map[string]bool
}

// New creates a configured engine.
func New(cfg Config) *Engine {
	disabled := make(map[string]bool, len(cfg.DisabledRules))
	for _, code := range cfg.DisabledRules {
		disabled[code] = true
	}
	return &Engine{fix: cfg.Fix, disabled: disabled}
}

// HasFixCapability implements engine.Engine.
func (e *Engine) HasFixCapability() bool { return e.fix }

// Parse implements engine.Engine.
func (e *Engine) Parse(_ context.Context, text string, dialect engine.Dialect) engine.ParseResult {
	tokens, errs := scan(text)
	return engine.ParseResult{
		Tree:   &tree{text: text, dialect: dialect, tokens: tokens},
		Errors: errs,
	}
}

// BuildSemanticModel implements engine.Engine. The returned model is
// task-confined per the engine contract.
func (e *Engine) BuildSemanticModel(_ context.Context, text string, _ engine.Dialect, t engine.Tree) engine.SemanticResult {
	parsed := t.(*tree)
	model, errs := buildModel(text, parsed.tokens)
	return engine.SemanticResult{Model: model, Errors: errs}
}

// Lint implements engine.Engine.
func (e *Engine) Lint(_ context.Context, m engine.SemanticModel) []engine.Finding {
	model := m.(*semanticModel)
	var findings []engine.Finding
	for _, rule := range builtinRules {
		if e.disabled[rule.code] {
			continue
		}
		findings = append(findings, rule.run(model, e.fix)...)
	}
	return findings
}

// ApplyFixes implements engine.Engine. Overlapping edits are resolved
// in favor of the earlier edit; all findings remain reportable.
func (e *Engine) ApplyFixes(text string, findings []engine.Finding) engine.FixResult {
	var edits []engine.FixEdit
	for _, finding := range findings {
		edits = append(edits, finding.Fixes...)
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Start < edits[j].Start })

	var out strings.Builder
	out.Grow(len(text))
	cursor := 0
	for _, edit := range edits {
		if edit.Start < cursor || edit.End > len(text) || edit.End < edit.Start {
			continue
		}
		out.WriteString(text[cursor:edit.Start])
		out.WriteString(edit.NewText)
		cursor = edit.End
	}
	out.WriteString(text[cursor:])

	return engine.FixResult{Fixed: out.String(), Residual: slices.Clone(findings)}
}

// tree is the parse stage's opaque handle.
type tree struct {
	text    string
	dialect engine.Dialect
	tokens  []token
}
