// Package report formats violations for GitHub Actions logs and machine-readable reports.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/witcheck/internal/types"
)

// AnnotationLine formats a violation as a GitHub Actions error annotation.
// The file path is made relative to baseDir when possible.
func AnnotationLine(v types.Violation, baseDir string) string {
	return fmt.Sprintf("::error file=%s,line=%d::%s", relativePath(v.File, baseDir), v.Line, v.Message)
}

// FormatAnnotations returns one annotation per violation, newline separated.
func FormatAnnotations(violations []types.Violation, baseDir string) string {
	lines := make([]string, 0, len(violations))
	for _, v := range violations {
		lines = append(lines, AnnotationLine(v, baseDir))
	}
	return strings.Join(lines, "\n")
}

// ErrorLine formats a file-less error annotation.
func ErrorLine(message string) string {
	return "::error::" + message
}

// GroupStart opens a collapsible log group.
func GroupStart(title string) string {
	return "::group::" + title
}

// GroupEnd closes the current log group.
func GroupEnd() string {
	return "::endgroup::"
}

// Group writes a titled log group around body.
//
//nolint:errcheck // writing to CI log; errors are not recoverable
func Group(w io.Writer, title string, body func(io.Writer)) {
	fmt.Fprintln(w, GroupStart(title))
	defer fmt.Fprintln(w, GroupEnd())
	body(w)
}

func relativePath(path string, baseDir string) string {
	if baseDir == "" {
		return filepath.ToSlash(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
