package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldRoot       = "root"
	FieldRoots      = "roots"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfig  = "config"
	FieldDialect = "dialect"
	FieldFix     = "fix"
	FieldJobs    = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesAnalyzed   = "files_analyzed"
	FieldFilesClean      = "files_clean"
	FieldFilesFixed      = "files_fixed"
	FieldFilesFailed     = "files_failed"
	FieldDiagnostics     = "diagnostics"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
