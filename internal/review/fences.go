package review

import "strings"

// StripFences removes at most one leading markdown fence marker (optionally
// tagged, e.g. ```json) and at most one trailing marker, then trims
// surrounding whitespace. Idempotent: stripping twice equals stripping once.
// It performs no other content alteration and never tries to repair broken
// JSON.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	// Drop the opening fence line (marker plus optional language tag).
	lines = lines[1:]
	if n := len(lines); strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
