package since

import "fmt"

// FileReadError represents an error reading a WIT file
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file read error: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("file read error: %s", e.Path)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}

// WalkError represents a failure enumerating the directory tree
type WalkError struct {
	Path  string
	Cause error
}

func (e *WalkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("walk error: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("walk error: %s", e.Path)
}

func (e *WalkError) Unwrap() error {
	return e.Cause
}
