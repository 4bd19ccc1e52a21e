package since

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/witcheck/internal/types"
)

const (
	// DefaultExcludeDir is the vendored dependency directory skipped during traversal
	DefaultExcludeDir = "deps"
	// DefaultExtension is the WIT source file extension
	DefaultExtension = ".wit"
)

// Options tunes the checker. Zero values fall back to the defaults.
type Options struct {
	MaxLookback int
	ExcludeDir  string
	Extension   string
}

// DefaultOptions returns the options used by ValidateFile and ValidateDirectory.
func DefaultOptions() Options {
	return Options{
		MaxLookback: DefaultMaxLookback,
		ExcludeDir:  DefaultExcludeDir,
		Extension:   DefaultExtension,
	}
}

// Validator checks WIT files for missing version annotations
type Validator struct {
	opts Options
}

// NewValidator creates a Validator, filling unset options with defaults.
func NewValidator(opts Options) *Validator {
	defaults := DefaultOptions()
	if opts.MaxLookback <= 0 {
		opts.MaxLookback = defaults.MaxLookback
	}
	if opts.ExcludeDir == "" {
		opts.ExcludeDir = defaults.ExcludeDir
	}
	if opts.Extension == "" {
		opts.Extension = defaults.Extension
	}
	return &Validator{opts: opts}
}

// Options returns the effective options.
func (v *Validator) Options() Options {
	return v.opts
}

// ValidateFile validates a single WIT file using the default options.
func ValidateFile(path string) ([]types.Violation, error) {
	return NewValidator(Options{}).ValidateFile(path)
}

// ValidateDirectory validates every WIT file under root using the default options.
func ValidateDirectory(root string) ([]types.Violation, error) {
	return NewValidator(Options{}).ValidateDirectory(root)
}

// ValidateFile reads path and returns one violation per unannotated declaration.
func (v *Validator) ValidateFile(path string) ([]types.Violation, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	return v.ValidateLines(path, strings.Split(string(content), "\n")), nil
}

// ValidateLines checks already-split file content. path is only used for reporting.
func (v *Validator) ValidateLines(path string, lines []string) []types.Violation {
	violations := []types.Violation{}

	for _, match := range FindDeclarations(lines) {
		if HasVersionAnnotation(lines, match.LineNumber-1, v.opts.MaxLookback) {
			continue
		}
		violations = append(violations, types.NewViolation(path, match.LineNumber, match.Kind, match.Name))
	}

	return violations
}

// ValidateDirectory walks root in lexical order, skipping any directory below
// root named by the exclusion token, and aggregates violations from every
// file with the configured extension. Any read failure aborts the scan.
func (v *Validator) ValidateDirectory(root string) ([]types.Violation, error) {
	violations := []types.Violation{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return &WalkError{Path: path, Cause: walkErr}
		}

		if d.IsDir() {
			if path != root && d.Name() == v.opts.ExcludeDir {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), v.opts.Extension) {
			return nil
		}
		if !isRegularFile(path, d) {
			return nil
		}

		fileViolations, err := v.ValidateFile(path)
		if err != nil {
			return err
		}
		violations = append(violations, fileViolations...)
		return nil
	})
	if err != nil {
		var walkErr *WalkError
		var readErr *FileReadError
		if errors.As(err, &walkErr) || errors.As(err, &readErr) {
			return nil, err
		}
		return nil, &WalkError{Path: root, Cause: err}
	}

	return violations, nil
}

// isRegularFile accepts regular files and symlinks that resolve to one.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
