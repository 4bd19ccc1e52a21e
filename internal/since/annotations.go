package since

import (
	"regexp"
	"strings"
)

// DefaultMaxLookback is how many lines above a declaration are searched for an annotation
const DefaultMaxLookback = 20

var (
	sincePattern    = regexp.MustCompile(`^@since\s*\(\s*version\s*=\s*[0-9a-z.\-]+\s*\)`)
	unstablePattern = regexp.MustCompile(`^@unstable\s*\(\s*feature\s*=\s*[a-z][a-z0-9-]*\s*\)`)
)

// HasVersionAnnotation walks backward from the line above index looking for
// @since or @unstable. Doc comments, other @-tags and blank lines are skipped;
// any other content ends the search. At most maxLookback lines are examined.
func HasVersionAnnotation(lines []string, index int, maxLookback int) bool {
	if maxLookback <= 0 {
		maxLookback = DefaultMaxLookback
	}
	if index > len(lines) {
		index = len(lines)
	}

	for i := index - 1; i >= 0 && i >= index-maxLookback; i-- {
		trimmed := strings.TrimSpace(lines[i])

		switch {
		case sincePattern.MatchString(trimmed):
			return true
		case unstablePattern.MatchString(trimmed):
			return true
		case strings.HasPrefix(trimmed, "///"):
			continue
		case strings.HasPrefix(trimmed, "@"):
			// unknown tags are tolerated so new annotations don't break the check
			continue
		case trimmed == "":
			continue
		}
		return false
	}

	return false
}

// IsVersionAnnotation reports whether a single trimmed line satisfies the annotation requirement.
func IsVersionAnnotation(line string) bool {
	trimmed := strings.TrimSpace(line)
	return sincePattern.MatchString(trimmed) || unstablePattern.MatchString(trimmed)
}
