// Package runner orchestrates multi-file analysis: it fans file paths
// out across a bounded worker pool and aggregates per-file results.
package runner

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/yaklabco/codelint/pkg/engine"
)

// DefaultIgnore is the conventional dependency directory excluded from
// every run.
const DefaultIgnore = "node_modules"

// Options controls one analysis run. Options are built per invocation
// and never mutated after construction.
type Options struct {
	// Roots are the directories (or single files) to analyze.
	Roots []string

	// IgnorePatterns are glob patterns for paths to skip, merged with
	// the conventional dependency-directory ignore by the facade.
	IgnorePatterns []string

	// Extensions restricts eligible files, lowercase with leading dot.
	// Empty means the engine's recognized extension set.
	Extensions []string

	// Jobs caps concurrent per-file analysis tasks.
	// Zero or negative means runtime.NumCPU().
	Jobs int
}

func (o Options) effectiveJobs() int {
	if o.Jobs <= 0 {
		return runtime.NumCPU()
	}
	return o.Jobs
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return engine.ValidExtensions()
	}
	return o.Extensions
}

// eligible reports whether path's extension is in the recognized set.
// Discovery already applied ignore rules; the pipeline applies
// extension membership itself.
func (o Options) eligible(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range o.effectiveExtensions() {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
