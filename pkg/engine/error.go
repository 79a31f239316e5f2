package engine

// Severity defines the importance of an analysis error.
type Severity uint8

const (
	// SeverityAdvice is for informational findings.
	SeverityAdvice Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityAdvice:
		return "advice"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// LabeledSpan annotates one byte region of the source with an optional
// message. Offsets count bytes from the start of the text the error was
// produced against.
type LabeledSpan struct {
	Offset  int
	Length  int
	Message string
}

// End returns the exclusive end offset of the span.
func (s LabeledSpan) End() int { return s.Offset + s.Length }

// AnalysisError is one error produced by any engine stage. It carries a
// severity, a primary message, optional help text, and zero or more
// labeled spans pointing into the source.
type AnalysisError struct {
	Severity Severity
	Code     string
	Message  string
	Help     string
	Labels   []LabeledSpan
}

func (e *AnalysisError) Error() string { return e.Message }
