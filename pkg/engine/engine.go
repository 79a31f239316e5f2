// Package engine defines the analysis engine contract consumed by the
// orchestration layer. The engine itself is opaque: parsing, semantic
// analysis, lint rules, and fix generation are implementation details
// behind the Engine interface. The interface lives here, in the
// consumer's package tree, so that alternative engines can be plugged
// in without touching the orchestration code.
package engine

import "context"

// Tree is an opaque parse tree handle. The orchestration layer only
// threads it from Parse into BuildSemanticModel.
type Tree any

// SemanticModel is an opaque semantic-analysis handle.
//
// A SemanticModel is confined to the task that created it: it must not
// be stored in any structure that crosses a goroutine boundary, and it
// must be discarded when the analysis of its file completes.
// Implementations are free to use non-thread-safe internals.
type SemanticModel any

// ParseResult carries the tree and any syntax errors from one parse.
type ParseResult struct {
	Tree   Tree
	Errors []*AnalysisError
}

// SemanticResult carries the model and any semantic errors.
type SemanticResult struct {
	Model  SemanticModel
	Errors []*AnalysisError
}

// FixEdit is one byte-range replacement produced by a fix.
type FixEdit struct {
	// Start is the byte index where the edit begins (inclusive).
	Start int

	// End is the byte index where the edit ends (exclusive).
	End int

	// NewText is the replacement text.
	NewText string
}

// Finding is one lint result: the error to report plus the edits that
// would fix it, if the producing rule can fix it.
type Finding struct {
	Err   *AnalysisError
	Fixes []FixEdit
}

// HasFix reports whether the finding carries fix edits.
func (f Finding) HasFix() bool { return len(f.Fixes) > 0 }

// FixResult is the outcome of applying fixes to a text.
type FixResult struct {
	// Fixed is the text after all applicable edits.
	Fixed string

	// Residual contains the findings that remain reportable after
	// fixing, fixed or not. Reporting is not suppressed by fixing.
	Residual []Finding
}

// Engine is a shared, reusable analysis engine. Implementations must be
// safe for concurrent use: the rule set and fix capability are
// configured once at construction and never mutated afterwards.
type Engine interface {
	// Parse builds a syntax tree for text in the given dialect.
	// Syntax errors are data, not an error return.
	Parse(ctx context.Context, text string, dialect Dialect) ParseResult

	// BuildSemanticModel derives semantic information from a parsed
	// tree. The returned model is confined to the calling task.
	BuildSemanticModel(ctx context.Context, text string, dialect Dialect, tree Tree) SemanticResult

	// Lint runs the configured rules against a semantic model.
	Lint(ctx context.Context, model SemanticModel) []Finding

	// HasFixCapability reports whether this engine instance was
	// configured to produce fixes.
	HasFixCapability() bool

	// ApplyFixes applies the findings' edits to text. Only called when
	// HasFixCapability is true and findings exist.
	ApplyFixes(text string, findings []Finding) FixResult
}
