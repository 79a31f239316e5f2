package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileNames are the project config file names we search for, in
// order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var configFileNames = []string{
	".codelint.yml",
	".codelint.yaml",
	"codelint.yml",
	"codelint.yaml",
}

// vcsRootMarkers are directories that indicate a VCS root and stop the
// upward search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// Load resolves the configuration for workDir. If explicitPath is set
// it is loaded directly and discovery is skipped; otherwise the
// directory tree is searched upward for a project config file. A
// missing project config yields defaults, not an error.
func Load(ctx context.Context, workDir, explicitPath string) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	path := explicitPath
	if path == "" {
		found, err := FindProjectConfig(workDir)
		if err != nil {
			return nil, err
		}
		if found == "" {
			return NewConfig(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FindProjectConfig searches upward from workDir for a project config
// file, stopping at a VCS root or the filesystem root. Returns the
// empty string when nothing is found.
func FindProjectConfig(workDir string) (string, error) {
	dir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", workDir, err)
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("stat %s: %w", candidate, err)
			}
		}

		atRoot := false
		for _, marker := range vcsRootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				atRoot = true
				break
			}
		}

		parent := filepath.Dir(dir)
		if atRoot || parent == dir {
			return "", nil
		}
		dir = parent
	}
}
