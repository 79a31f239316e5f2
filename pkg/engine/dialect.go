package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Dialect is the source-language variant selected per file. It affects
// which grammar and semantic rules the engine applies.
type Dialect string

const (
	DialectJavaScript Dialect = "javascript"
	DialectJSX        Dialect = "jsx"
	DialectTypeScript Dialect = "typescript"
	DialectTSX        Dialect = "tsx"
)

// ErrUnknownDialect is returned when a path's extension is not in the
// recognized set.
var ErrUnknownDialect = errors.New("unknown source dialect")

// dialectByExt maps lowercase extensions (with leading dot) to dialects.
var dialectByExt = map[string]Dialect{
	".js":  DialectJavaScript,
	".mjs": DialectJavaScript,
	".cjs": DialectJavaScript,
	".jsx": DialectJSX,
	".ts":  DialectTypeScript,
	".mts": DialectTypeScript,
	".cts": DialectTypeScript,
	".tsx": DialectTSX,
}

// ValidExtensions returns the recognized file extensions, lowercase
// with leading dot. The slice is a copy and may be mutated by callers.
func ValidExtensions() []string {
	exts := make([]string, 0, len(dialectByExt))
	for ext := range dialectByExt {
		exts = append(exts, ext)
	}
	return exts
}

// DialectFromPath determines the dialect from a path's extension.
func DialectFromPath(path string) (Dialect, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dialect, ok := dialectByExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, ext)
	}
	return dialect, nil
}

// IsSupportedPath reports whether the path has a recognized extension.
func IsSupportedPath(path string) bool {
	_, ok := dialectByExt[strings.ToLower(filepath.Ext(path))]
	return ok
}
