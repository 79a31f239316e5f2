package simple

import (
	"strings"

	"github.com/yaklabco/codelint/pkg/engine"
)

type rule struct {
	code string
	run  func(m *semanticModel, fix bool) []engine.Finding
}

var builtinRules = []rule{
	{code: "no-debugger", run: runNoDebugger},
	{code: "no-console", run: runNoConsole},
	{code: "no-trailing-spaces", run: runNoTrailingSpaces},
}

// runNoDebugger flags debugger statements. The fix removes the whole
// line when the statement is alone on it, otherwise just the statement.
func runNoDebugger(m *semanticModel, fix bool) []engine.Finding {
	var findings []engine.Finding
	for _, tok := range m.tokens {
		if tok.kind != tokenWord || tok.text != "debugger" {
			continue
		}
		finding := engine.Finding{
			Err: &engine.AnalysisError{
				Severity: engine.SeverityWarning,
				Code:     "no-debugger",
				Message:  "unexpected debugger statement",
				Help:     "delete this statement",
				Labels:   []engine.LabeledSpan{{Offset: tok.offset, Length: len(tok.text), Message: "debugger statement"}},
			},
		}
		if fix {
			finding.Fixes = []engine.FixEdit{debuggerEdit(m.text, tok)}
		}
		findings = append(findings, finding)
	}
	return findings
}

func debuggerEdit(text string, tok token) engine.FixEdit {
	end := tok.offset + len(tok.text)
	if end < len(text) && text[end] == ';' {
		end++
	}
	lineStart := strings.LastIndexByte(text[:tok.offset], '\n') + 1
	lineEnd := end
	if idx := strings.IndexByte(text[end:], '\n'); idx >= 0 {
		lineEnd = end + idx + 1
	} else {
		lineEnd = len(text)
	}
	// Whole-line removal only when nothing else shares the line.
	if strings.TrimSpace(text[lineStart:tok.offset]) == "" && strings.TrimSpace(strings.TrimSuffix(text[end:lineEnd], "\n")) == "" {
		return engine.FixEdit{Start: lineStart, End: lineEnd}
	}
	return engine.FixEdit{Start: tok.offset, End: end}
}

// runNoConsole flags console member accesses. Advisory only; no fix.
func runNoConsole(m *semanticModel, _ bool) []engine.Finding {
	var findings []engine.Finding
	for i, tok := range m.tokens {
		if tok.kind != tokenWord || tok.text != "console" {
			continue
		}
		if i+1 >= len(m.tokens) || m.tokens[i+1].kind != tokenPunct || m.tokens[i+1].text != "." {
			continue
		}
		findings = append(findings, engine.Finding{
			Err: &engine.AnalysisError{
				Severity: engine.SeverityAdvice,
				Code:     "no-console",
				Message:  "unexpected console call",
				Help:     "remove console calls before committing",
				Labels:   []engine.LabeledSpan{{Offset: tok.offset, Length: len(tok.text), Message: "console call"}},
			},
		})
	}
	return findings
}

// runNoTrailingSpaces flags trailing whitespace on each line. The fix
// deletes the trailing run.
func runNoTrailingSpaces(m *semanticModel, fix bool) []engine.Finding {
	var findings []engine.Finding
	lineStart := 0
	for lineStart <= len(m.text) {
		lineEnd := len(m.text)
		if idx := strings.IndexByte(m.text[lineStart:], '\n'); idx >= 0 {
			lineEnd = lineStart + idx
		}
		line := m.text[lineStart:lineEnd]
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) < len(line) {
			start := lineStart + len(trimmed)
			finding := engine.Finding{
				Err: &engine.AnalysisError{
					Severity: engine.SeverityWarning,
					Code:     "no-trailing-spaces",
					Message:  "trailing whitespace",
					Help:     "remove the trailing whitespace",
					Labels:   []engine.LabeledSpan{{Offset: start, Length: lineEnd - start, Message: "trailing whitespace"}},
				},
			}
			if fix {
				finding.Fixes = []engine.FixEdit{{Start: start, End: lineEnd}}
			}
			findings = append(findings, finding)
		}
		lineStart = lineEnd + 1
	}
	return findings
}
