// Package walker discovers candidate source files under project roots.
// It applies extension membership, ignore patterns, hidden-path rules,
// and vendored-path detection, and streams matches lazily so large
// trees are never materialized up front.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Walker walks directory trees yielding eligible file paths.
// The zero value walks everything with no extension filter; callers
// normally set Extensions to the engine's recognized set.
type Walker struct {
	// Extensions is the set of eligible extensions, lowercase with
	// leading dot. Empty means every extension is eligible.
	Extensions []string

	// IgnorePatterns are glob patterns matched against each path
	// component and the root-relative path (e.g. "node_modules",
	// "dist", "*.min.js").
	IgnorePatterns []string

	// IncludeVendored walks paths that look vendored (node_modules,
	// vendor trees, generated bundles). Off by default.
	IncludeVendored bool

	// IncludeHidden walks dot-directories and dot-files. Off by default.
	IncludeHidden bool
}

// Walk traverses root, calling yield for each eligible file in
// traversal order. Returning false from yield stops the walk early.
// Permission errors on subtrees are skipped, not fatal.
func (w *Walker) Walk(ctx context.Context, root string, yield func(path string) bool) error {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}

	// A root that is itself a file bypasses directory rules except the
	// extension filter.
	if !info.IsDir() {
		if w.eligibleExt(root) {
			yield(root)
		}
		return nil
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if w.skipDir(entry.Name(), rel) {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinked files are analyzed through their target; directory
		// symlinks are not followed to avoid cycles.
		if entry.Type()&fs.ModeSymlink != 0 {
			target, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil
			}
			targetInfo, statErr := os.Stat(target)
			if statErr != nil || targetInfo.IsDir() {
				return nil
			}
		}

		if w.skipFile(entry.Name(), rel) {
			return nil
		}
		if !w.eligibleExt(path) {
			return nil
		}

		if !yield(path) {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}

func (w *Walker) skipDir(name, rel string) bool {
	if !w.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	if !w.IncludeVendored && enry.IsVendor(filepath.ToSlash(rel)+"/") {
		return true
	}
	return w.matchesIgnore(name, rel)
}

func (w *Walker) skipFile(name, rel string) bool {
	if !w.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	if !w.IncludeVendored && enry.IsVendor(filepath.ToSlash(rel)) {
		return true
	}
	return w.matchesIgnore(name, rel)
}

// matchesIgnore matches patterns against the base name, every path
// component, and the root-relative path.
func (w *Walker) matchesIgnore(name, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.IgnorePatterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(pattern, rel); err == nil && matched {
			return true
		}
		for part := range strings.SplitSeq(rel, "/") {
			if matched, err := filepath.Match(pattern, part); err == nil && matched {
				return true
			}
		}
	}
	return false
}

func (w *Walker) eligibleExt(path string) bool {
	if len(w.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range w.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
