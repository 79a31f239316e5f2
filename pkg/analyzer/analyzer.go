// Package analyzer runs the staged analysis pipeline against a single
// file: read, dialect selection, parse, semantic analysis, lint, and
// optional autofix persistence. Stages short-circuit: the first stage
// that produces findings ends the pipeline for that file.
package analyzer

import (
	"context"
	"fmt"

	"github.com/yaklabco/codelint/pkg/diagnostic"
	"github.com/yaklabco/codelint/pkg/engine"
	"github.com/yaklabco/codelint/pkg/fsutil"
	"github.com/yaklabco/codelint/pkg/protocol"
	"github.com/yaklabco/codelint/pkg/sourcetext"
)

// DefaultSource is the source tag attached to emitted diagnostics.
const DefaultSource = "codelint"

// Outcome is the analysis result for one file. A nil *Outcome from
// AnalyzePath means the file is clean.
type Outcome struct {
	// Path is the analyzed file's original path. Diagnostics are
	// always attributed to it, even after an autofix rewrite.
	Path string

	// Diagnostics are positioned against the pre-fix text.
	Diagnostics []protocol.Diagnostic

	// Fixed is true when autofixed content was written back to disk.
	Fixed bool

	// Failed is true when the outcome reports an infrastructure
	// failure (unreadable file, unknown dialect, write failure) as a
	// synthetic diagnostic rather than engine findings.
	Failed bool
}

// Analyzer analyzes single files with a shared engine. The engine
// handle is read-only after construction and safe to share across
// concurrent AnalyzePath calls; everything else the pipeline allocates
// (source text, parse tree, semantic model) is task-local.
type Analyzer struct {
	engine engine.Engine
	source string
}

// New creates an Analyzer around a shared engine.
func New(eng engine.Engine) *Analyzer {
	return &Analyzer{engine: eng, source: DefaultSource}
}

// AnalyzePath runs the staged pipeline for path. It returns nil when
// the file is fully clean. An error return is reserved for
// cancellation; per-file failures degrade to a synthetic diagnostic so
// one broken file never aborts a batch.
func (a *Analyzer) AnalyzePath(ctx context.Context, path string) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("analyze %s: %w", path, ctx.Err())
		}
		return a.failure(path, fmt.Sprintf("cannot read file: %v", err)), nil
	}

	dialect, err := engine.DialectFromPath(path)
	if err != nil {
		return a.failure(path, fmt.Sprintf("cannot determine dialect: %v", err)), nil
	}

	text := string(content)
	src := sourcetext.NewText(text)

	parsed := a.engine.Parse(ctx, text, dialect)
	if len(parsed.Errors) > 0 {
		return &Outcome{
			Path:        path,
			Diagnostics: diagnostic.FromErrors(parsed.Errors, src, path, a.source),
		}, nil
	}

	// The semantic model stays confined to this frame; it is handed to
	// Lint and discarded, never stored or sent anywhere.
	sem := a.engine.BuildSemanticModel(ctx, text, dialect, parsed.Tree)
	if len(sem.Errors) > 0 {
		return &Outcome{
			Path:        path,
			Diagnostics: diagnostic.FromErrors(sem.Errors, src, path, a.source),
		}, nil
	}

	findings := a.engine.Lint(ctx, sem.Model)
	if len(findings) == 0 {
		return nil, nil
	}

	if a.engine.HasFixCapability() {
		return a.applyFixes(ctx, path, text, src, info, findings)
	}

	return &Outcome{
		Path:        path,
		Diagnostics: diagnostic.FromFindings(findings, src, path, a.source),
	}, nil
}

// applyFixes persists fixed content and reports the pre-fix findings.
// Fixing never suppresses reporting: the editor is told what was found
// and fixed in the same batch.
func (a *Analyzer) applyFixes(
	ctx context.Context,
	path, text string,
	src *sourcetext.Text,
	info *fsutil.FileInfo,
	findings []engine.Finding,
) (*Outcome, error) {
	fixed := a.engine.ApplyFixes(text, findings)

	outcome := &Outcome{
		Path:        path,
		Diagnostics: diagnostic.FromFindings(fixed.Residual, src, path, a.source),
	}

	if fixed.Fixed == text {
		return outcome, nil
	}

	// Refuse to clobber edits made while analysis ran.
	modified, err := fsutil.Modified(ctx, info)
	if err != nil || modified {
		outcome.Failed = true
		outcome.Diagnostics = append(outcome.Diagnostics,
			a.syntheticDiagnostic("file changed during analysis; fixes were not applied"))
		return outcome, nil
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(fixed.Fixed), info.Mode); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("analyze %s: %w", path, ctx.Err())
		}
		outcome.Failed = true
		outcome.Diagnostics = append(outcome.Diagnostics,
			a.syntheticDiagnostic(fmt.Sprintf("cannot write fixed content: %v", err)))
		return outcome, nil
	}

	outcome.Fixed = true
	return outcome, nil
}

// failure wraps an infrastructure failure as an outcome with one
// synthetic diagnostic, keeping the rest of the batch alive.
func (a *Analyzer) failure(path, message string) *Outcome {
	return &Outcome{
		Path:        path,
		Diagnostics: []protocol.Diagnostic{a.syntheticDiagnostic(message)},
		Failed:      true,
	}
}

func (a *Analyzer) syntheticDiagnostic(message string) protocol.Diagnostic {
	return protocol.Diagnostic{
		Severity: protocol.SeverityError,
		Source:   a.source,
		Message:  message,
	}
}
