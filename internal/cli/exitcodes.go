package cli

import (
	"github.com/yaklabco/codelint/pkg/protocol"
	"github.com/yaklabco/codelint/pkg/runner"
)

// Exit codes for codelint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssuesFound indicates the check completed but found errors.
	ExitIssuesFound = 1

	// ExitWarnings indicates the check found warnings (strict mode only).
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ExitCodeFromResult determines the exit code based on result and
// strict mode. Infrastructure failures count as errors.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	hasErrors := result.Stats.FilesFailed > 0
	hasOthers := false
	for _, file := range result.Files {
		for _, diag := range file.Diagnostics {
			if diag.Severity == protocol.SeverityError {
				hasErrors = true
			} else {
				hasOthers = true
			}
		}
	}

	switch {
	case hasErrors:
		return ExitIssuesFound
	case strict && hasOthers:
		return ExitWarnings
	default:
		return ExitSuccess
	}
}
