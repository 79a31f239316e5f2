// Package protocol defines the editor-facing diagnostic wire types.
// The shapes follow the Language Server Protocol so that the transport
// layer can marshal them directly into publishDiagnostics payloads.
package protocol

// Position is a zero-based line/character pair. Character counts UTF-16
// code units from the start of the line, as editors expect.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open [Start, End) region of a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsZero reports whether the range is the zero value (an empty range at
// the start of the document).
func (r Range) IsZero() bool {
	return r.Start == Position{} && r.End == Position{}
}

// Location identifies a range inside a specific document.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// DiagnosticSeverity is the editor-side severity scale.
type DiagnosticSeverity int

const (
	// SeverityUnset omits the severity field; editors display these as
	// unclassified/informational.
	SeverityUnset DiagnosticSeverity = 0

	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

// RelatedInformation points at a secondary location relevant to a
// diagnostic, shown by editors as a "see also" entry.
type RelatedInformation struct {
	Location Location `json:"location"`
	Message  string   `json:"message"`
}

// Diagnostic is one editor-displayable finding.
type Diagnostic struct {
	Range              Range                `json:"range"`
	Severity           DiagnosticSeverity   `json:"severity,omitempty"`
	Code               string               `json:"code,omitempty"`
	Source             string               `json:"source,omitempty"`
	Message            string               `json:"message"`
	RelatedInformation []RelatedInformation `json:"relatedInformation,omitempty"`
}
