package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/codelint/pkg/protocol"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
// Positions are zero-based on the wire and one-based for humans.
func (s *Styles) FormatDiagnostic(path string, diag protocol.Diagnostic) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s%s",
		s.FilePath.Render(path),
		s.Location.Render(fmt.Sprintf(":%d:%d", diag.Range.Start.Line+1, diag.Range.Start.Character+1)),
	)

	line := fmt.Sprintf("  %s  %s  %s", location, s.FormatSeverity(diag.Severity), s.Message.Render(firstLine(diag.Message)))
	if diag.Code != "" {
		line += "  " + s.Code.Render("("+diag.Code+")")
	}
	builder.WriteString(line + "\n")

	for _, rel := range diag.RelatedInformation {
		builder.WriteString("    " + s.Related.Render(rel.Message) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev protocol.DiagnosticSeverity) string {
	switch sev {
	case protocol.SeverityError:
		return s.Error.Render("error")
	case protocol.SeverityWarning:
		return s.Warning.Render("warning")
	case protocol.SeverityInformation:
		return s.Info.Render("info")
	case protocol.SeverityHint:
		return s.Hint.Render("hint")
	default:
		return s.Dim.Render("note")
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		word := "issues"
		if issueCount == 1 {
			word = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, word))
	}
	return header
}

// firstLine trims a multi-line message (message plus help) down to its
// headline for compact output.
func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}
	return message
}
