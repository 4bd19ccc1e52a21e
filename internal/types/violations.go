// Package types provides type definitions for structured data used throughout the witcheck system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// DeclarationKind identifies a top-level WIT declaration that must carry a version annotation
type DeclarationKind string

// Declaration kinds in matching priority order
const (
	KindInterface DeclarationKind = "interface"
	KindWorld     DeclarationKind = "world"
	KindType      DeclarationKind = "type"
	KindRecord    DeclarationKind = "record"
	KindVariant   DeclarationKind = "variant"
	KindEnum      DeclarationKind = "enum"
	KindFlags     DeclarationKind = "flags"
	KindResource  DeclarationKind = "resource"
)

// DeclarationKinds lists every kind in the order the matcher tries them.
var DeclarationKinds = []DeclarationKind{
	KindInterface,
	KindWorld,
	KindType,
	KindRecord,
	KindVariant,
	KindEnum,
	KindFlags,
	KindResource,
}

// Violation represents a declaration without a satisfying version annotation
type Violation struct {
	File        string          `json:"file"`
	Line        int             `json:"line"` // 1-indexed
	Declaration DeclarationKind `json:"declaration"`
	Name        string          `json:"name"`
	Message     string          `json:"message"`
}

// NewViolation builds a Violation with the standard missing-annotation message.
func NewViolation(file string, line int, kind DeclarationKind, name string) Violation {
	return Violation{
		File:        file,
		Line:        line,
		Declaration: kind,
		Name:        name,
		Message:     MissingAnnotationMessage(kind, name),
	}
}

// MissingAnnotationMessage returns the human-readable message for an unannotated declaration
func MissingAnnotationMessage(kind DeclarationKind, name string) string {
	return fmt.Sprintf("Missing @since annotation for %s '%s'", kind, name)
}

// Violations represents a collection of missing-annotation findings
type Violations struct {
	Violations []Violation `json:"violations"`
}

// CountByKind tallies violations per declaration kind.
func (v *Violations) CountByKind() map[DeclarationKind]int {
	counts := make(map[DeclarationKind]int)
	if v == nil {
		return counts
	}
	for _, violation := range v.Violations {
		counts[violation.Declaration]++
	}
	return counts
}
