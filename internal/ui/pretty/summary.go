package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/codelint/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues in 2 files (14 checked), 1 fixed, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.Diagnostics == 0 && stats.FilesFailed == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesAnalyzed, pluralFiles(stats.FilesAnalyzed)))
		if stats.FilesFixed > 0 {
			msg += ", " + s.Success.Render(fmt.Sprintf("%d %s fixed", stats.FilesFixed, pluralFiles(stats.FilesFixed)))
		}
		return msg + "\n"
	}

	var parts []string

	issueWord := "issues"
	if stats.Diagnostics == 1 {
		issueWord = "issue"
	}
	withIssues := stats.FilesAnalyzed - stats.FilesClean
	parts = append(parts, fmt.Sprintf("%d %s in %d %s (%d checked)",
		stats.Diagnostics, issueWord, withIssues, pluralFiles(withIssues), stats.FilesAnalyzed))

	if stats.FilesFixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s fixed", stats.FilesFixed, pluralFiles(stats.FilesFixed))))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed", stats.FilesFailed, pluralFiles(stats.FilesFailed))))
	}

	return strings.Join(parts, ", ") + "\n"
}

func pluralFiles(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}
