// Package config defines the run configuration for codelint.
// These types are pure data structures; loading and discovery live in
// load.go so library consumers can construct configs directly.
package config

import (
	"fmt"
	"sort"

	"github.com/yaklabco/codelint/pkg/engine"
	"github.com/yaklabco/codelint/pkg/runner"
)

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled *bool          `yaml:"enabled"`
	Options map[string]any `yaml:"options,omitempty"`
}

// Config is the root configuration structure for codelint.
type Config struct {
	// Ignore contains glob patterns for files and directories to skip,
	// in addition to the built-in defaults.
	Ignore []string `yaml:"ignore"`

	// Extensions restricts analysis to the listed file extensions
	// (with leading dot). Empty means all supported extensions.
	Extensions []string `yaml:"extensions"`

	// Jobs is the number of parallel analysis workers. Zero means one
	// worker per CPU.
	Jobs int `yaml:"jobs"`

	// Rules contains per-rule configuration keyed by rule code.
	Rules map[string]RuleConfig `yaml:"rules"`

	// CLI-level options (not persisted to config files).

	// Fix enables writing fixes back to disk.
	Fix bool `yaml:"-"`
}

// NewConfig returns a configuration with defaults applied.
func NewConfig() *Config {
	return &Config{
		Rules: make(map[string]RuleConfig),
	}
}

// Validate checks the configuration for nonsense values.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs: must be non-negative, got %d", c.Jobs)
	}
	for _, ext := range c.Extensions {
		if ext == "" || ext[0] != '.' {
			return fmt.Errorf("extensions: %q must start with a dot", ext)
		}
	}
	for _, pattern := range c.Ignore {
		if pattern == "" {
			return fmt.Errorf("ignore: empty pattern")
		}
	}
	return nil
}

// RunnerOptions converts the configuration into runner options for the
// given roots.
func (c *Config) RunnerOptions(roots []string) runner.Options {
	ignore := append([]string{runner.DefaultIgnore}, c.Ignore...)
	exts := c.Extensions
	if len(exts) == 0 {
		exts = engine.ValidExtensions()
	}
	return runner.Options{
		Roots:          roots,
		IgnorePatterns: ignore,
		Extensions:     exts,
		Jobs:           c.Jobs,
	}
}

// DisabledRules lists the rule codes explicitly disabled, sorted for
// deterministic behavior.
func (c *Config) DisabledRules() []string {
	var disabled []string
	for code, rc := range c.Rules {
		if rc.Enabled != nil && !*rc.Enabled {
			disabled = append(disabled, code)
		}
	}
	sort.Strings(disabled)
	return disabled
}
