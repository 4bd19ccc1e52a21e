// Package since checks that top-level WIT declarations carry @since or @unstable annotations.
package since

import (
	"regexp"

	"github.com/jonathan/witcheck/internal/types"
)

// DeclarationMatch is a line that opens a declaration of a recognized kind
type DeclarationMatch struct {
	Kind       types.DeclarationKind
	Name       string
	LineNumber int // 1-indexed; zero when matched outside of a file
}

type declarationPattern struct {
	kind  types.DeclarationKind
	regex *regexp.Regexp
}

// Keywords match case-insensitively; the identifier stays lowercase kebab-case.
const identifierGroup = `((?-i:[a-z][a-z0-9-]*))`

var declarationPatterns = []declarationPattern{
	{kind: types.KindInterface, regex: regexp.MustCompile(`(?i)^\s*interface\s+` + identifierGroup + `\s*\{`)},
	{kind: types.KindWorld, regex: regexp.MustCompile(`(?i)^\s*world\s+` + identifierGroup + `\s*\{`)},
	{kind: types.KindType, regex: regexp.MustCompile(`(?i)^\s*type\s+` + identifierGroup + `\s*=`)},
	{kind: types.KindRecord, regex: regexp.MustCompile(`(?i)^\s*record\s+` + identifierGroup + `\s*\{`)},
	{kind: types.KindVariant, regex: regexp.MustCompile(`(?i)^\s*variant\s+` + identifierGroup + `\s*\{`)},
	{kind: types.KindEnum, regex: regexp.MustCompile(`(?i)^\s*enum\s+` + identifierGroup + `\s*\{`)},
	{kind: types.KindFlags, regex: regexp.MustCompile(`(?i)^\s*flags\s+` + identifierGroup + `\s*\{`)},
	// resources may be forward-declared without a body
	{kind: types.KindResource, regex: regexp.MustCompile(`(?i)^\s*resource\s+` + identifierGroup + `\s*[{;]`)},
}

// MatchDeclaration reports whether line opens a recognized declaration.
// Kinds are tried in priority order and the first match wins.
func MatchDeclaration(line string) (*DeclarationMatch, bool) {
	for _, p := range declarationPatterns {
		m := p.regex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return &DeclarationMatch{Kind: p.kind, Name: m[1]}, true
	}
	return nil, false
}

// FindDeclarations returns every declaration in lines with its 1-indexed line number.
func FindDeclarations(lines []string) []DeclarationMatch {
	var matches []DeclarationMatch
	for i, line := range lines {
		if m, ok := MatchDeclaration(line); ok {
			m.LineNumber = i + 1
			matches = append(matches, *m)
		}
	}
	return matches
}
