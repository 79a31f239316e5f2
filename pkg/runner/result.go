package runner

import "github.com/yaklabco/codelint/pkg/protocol"

// FileResult pairs a file path with its diagnostics. An empty (but
// non-nil) Diagnostics slice means the file is clean; editors use the
// empty list to clear previously published diagnostics for that path.
type FileResult struct {
	// Path is the analyzed file's path.
	Path string

	// Diagnostics are positioned against the text that was analyzed.
	Diagnostics []protocol.Diagnostic

	// Fixed is true when autofixed content was written to disk.
	Fixed bool

	// Failed is true when the diagnostics report an infrastructure
	// failure for this file rather than engine findings.
	Failed bool
}

// Clean reports whether the file produced no diagnostics.
func (fr FileResult) Clean() bool { return len(fr.Diagnostics) == 0 }

// Stats captures aggregate counts for one run. Counts are threaded
// through the Result rather than kept in shared mutable state.
type Stats struct {
	// FilesDiscovered is the number of paths the producer forwarded
	// into the work queue.
	FilesDiscovered int

	// FilesAnalyzed is the number of files that completed analysis.
	FilesAnalyzed int

	// FilesClean is the number of files with zero diagnostics.
	FilesClean int

	// FilesFixed is the number of files rewritten by autofix.
	FilesFixed int

	// FilesFailed is the number of files reporting an infrastructure
	// failure.
	FilesFailed int

	// Diagnostics is the total diagnostic count across all files.
	Diagnostics int
}

// Result is the aggregate of one full-project run. Element order in
// Files is unspecified and must not be relied upon.
type Result struct {
	Files []FileResult
	Stats Stats
}

// HasDiagnostics reports whether any file produced diagnostics.
func (r *Result) HasDiagnostics() bool {
	if r == nil {
		return false
	}
	return r.Stats.Diagnostics > 0
}

// ToMap converts the aggregate into the path-to-diagnostics mapping
// consumed by the editor-protocol layer.
func (r *Result) ToMap() map[string][]protocol.Diagnostic {
	if r == nil {
		return nil
	}
	out := make(map[string][]protocol.Diagnostic, len(r.Files))
	for _, fr := range r.Files {
		out[fr.Path] = fr.Diagnostics
	}
	return out
}

func (r *Result) accumulate(fr FileResult) {
	r.Files = append(r.Files, fr)
	r.Stats.FilesAnalyzed++
	r.Stats.Diagnostics += len(fr.Diagnostics)
	switch {
	case fr.Failed:
		r.Stats.FilesFailed++
	case fr.Clean():
		r.Stats.FilesClean++
	}
	if fr.Fixed {
		r.Stats.FilesFixed++
	}
}
