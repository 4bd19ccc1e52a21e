// Package proposals validates the WIT packages of proposals touched by a change set.
package proposals

import (
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"sort"
)

// Environment variables holding JSON arrays of changed files per WIT version
const (
	EnvWit02Files = "WIT_02_FILES"
	EnvWit03Files = "WIT_03_FILES"
)

// Supported WIT versions
const (
	Version02 = "0.2"
	Version03 = "0.3"
)

var proposalPathPattern = regexp.MustCompile(`^proposals/([^/]+)/`)

// Target is one proposal WIT directory to validate
type Target struct {
	Proposal string
	Version  string
	Dir      string
}

// Title is the log group title for the target.
func (t Target) Title() string {
	return fmt.Sprintf("Validating %s v%s", t.Proposal, t.Version)
}

// Label identifies the target in error annotations.
func (t Target) Label() string {
	return fmt.Sprintf("%s v%s", t.Proposal, t.Version)
}

// ParseFiles decodes a JSON array of file paths. Empty, "null" or malformed input yields no files.
func ParseFiles(filesJSON string) []string {
	if filesJSON == "" || filesJSON == "null" {
		return []string{}
	}
	var files []string
	if err := json.Unmarshal([]byte(filesJSON), &files); err != nil {
		return []string{}
	}
	return files
}

// ExtractProposals returns the sorted, de-duplicated proposal names referenced by files.
func ExtractProposals(files []string) []string {
	seen := make(map[string]struct{})
	for _, f := range files {
		if m := proposalPathPattern.FindStringSubmatch(f); m != nil {
			seen[m[1]] = struct{}{}
		}
	}

	proposals := make([]string, 0, len(seen))
	for p := range seen {
		proposals = append(proposals, p)
	}
	sort.Strings(proposals)
	return proposals
}

// WitPath returns the WIT directory of a proposal for the given version.
func WitPath(proposal string, version string) (string, error) {
	switch version {
	case Version02:
		return path.Join("proposals", proposal, "wit"), nil
	case Version03:
		return path.Join("proposals", proposal, "wit-0.3.0-draft"), nil
	default:
		return "", fmt.Errorf("unknown version: %s", version)
	}
}

// TargetsFromEnv builds the ordered target list from the changed-file variables.
// lookup is usually os.Getenv.
func TargetsFromEnv(lookup func(string) string) ([]Target, error) {
	filesByVersion := []struct {
		env     string
		version string
	}{
		{env: EnvWit02Files, version: Version02},
		{env: EnvWit03Files, version: Version03},
	}

	var targets []Target
	for _, fv := range filesByVersion {
		for _, proposal := range ExtractProposals(ParseFiles(lookup(fv.env))) {
			dir, err := WitPath(proposal, fv.version)
			if err != nil {
				return nil, err
			}
			targets = append(targets, Target{Proposal: proposal, Version: fv.version, Dir: dir})
		}
	}
	return targets, nil
}
