// Package diagnostic converts engine analysis errors into positioned,
// editor-displayable diagnostics.
package diagnostic

import (
	"github.com/yaklabco/codelint/pkg/engine"
	"github.com/yaklabco/codelint/pkg/protocol"
	"github.com/yaklabco/codelint/pkg/sourcetext"
)

// FromError translates one analysis error against the source text that
// produced it. path attributes related locations; source tags the
// diagnostic's origin (e.g. "codelint").
//
// Position resolution never fails: corrupt offsets degrade to the
// document origin rather than dropping the diagnostic.
func FromError(err *engine.AnalysisError, text *sourcetext.Text, path, source string) protocol.Diagnostic {
	diag := protocol.Diagnostic{
		Severity: mapSeverity(err.Severity),
		Code:     err.Code,
		Source:   source,
		Message:  err.Message,
	}
	if err.Help != "" {
		diag.Message += "\n\n" + err.Help
	}

	if text == nil || len(err.Labels) == 0 {
		// No spans: the diagnostic covers an empty default range.
		return diag
	}

	// Primary range spans the extremes across all labels. Ties go to
	// the first occurrence; only the extremum values matter.
	start := err.Labels[0].Offset
	end := err.Labels[0].End()
	for _, label := range err.Labels[1:] {
		if label.Offset < start {
			start = label.Offset
		}
		if label.End() > end {
			end = label.End()
		}
	}
	diag.Range = text.RangeFor(start, end)

	uri := protocol.FileURI(path)
	for _, label := range err.Labels {
		diag.RelatedInformation = append(diag.RelatedInformation, protocol.RelatedInformation{
			Location: protocol.Location{
				URI:   uri,
				Range: text.RangeFor(label.Offset, label.End()),
			},
			Message: label.Message,
		})
	}

	return diag
}

// FromErrors translates a batch of analysis errors.
func FromErrors(errs []*engine.AnalysisError, text *sourcetext.Text, path, source string) []protocol.Diagnostic {
	if len(errs) == 0 {
		return nil
	}
	diags := make([]protocol.Diagnostic, 0, len(errs))
	for _, err := range errs {
		diags = append(diags, FromError(err, text, path, source))
	}
	return diags
}

// FromFindings translates the errors carried by lint findings.
func FromFindings(findings []engine.Finding, text *sourcetext.Text, path, source string) []protocol.Diagnostic {
	if len(findings) == 0 {
		return nil
	}
	diags := make([]protocol.Diagnostic, 0, len(findings))
	for _, finding := range findings {
		diags = append(diags, FromError(finding.Err, text, path, source))
	}
	return diags
}

// mapSeverity is total: recognized engine severities map to their
// editor counterpart, everything else to unset.
func mapSeverity(sev engine.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case engine.SeverityError:
		return protocol.SeverityError
	case engine.SeverityWarning:
		return protocol.SeverityWarning
	default:
		return protocol.SeverityUnset
	}
}
