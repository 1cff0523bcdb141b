package review

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a strict, expert code reviewer. Your job is to find bugs in a single changed file, given its diff and full content.

Rules:
1. Only report genuine bugs: logic errors, crashes, data corruption, security holes, race conditions. Do not report style preferences.
2. Reference line numbers from the full file content.
3. Rate severity as "low", "medium", "high", or "critical".
4. Rate your confidence as an integer from 0 to 100.
5. suggestedFix must contain only replacement code, never prose instructions. Use an empty string if you have no fix.

You MUST respond with ONLY a JSON object of this exact shape. No markdown, no explanation, no preamble.

{
  "analysis": "One paragraph summarizing your review of the file.",
  "bugReports": [
    {
      "description": "What is wrong and why it matters",
      "confidence": 80,
      "severity": "low|medium|high|critical",
      "suggestedFix": "replacement code",
      "lineStart": 1,
      "lineEnd": 1
    }
  ]
}

If there are no bugs, respond with an empty bugReports array.`

// SystemPrompt returns the system prompt for the LLM.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt assembles the review prompt for one file from its path,
// full content, and diff. Sentinel separator lines are stripped from the
// diff before it is embedded.
func BuildUserPrompt(path, content, diff string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Review the changed file %s.\n", path)

	b.WriteString("\n--- BEGIN DIFF ---\n")
	b.WriteString(StripSentinels(diff))
	b.WriteString("\n--- END DIFF ---\n")

	b.WriteString("\n--- BEGIN FILE CONTENT ---\n")
	b.WriteString(content)
	b.WriteString("\n--- END FILE CONTENT ---\n")

	return b.String()
}

// sentinelMarkers are conflict-style separators that upstream diff tooling
// inserts between old and new hunks. They carry no review content.
var sentinelMarkers = []string{"<<<<<<<", "=======", ">>>>>>>"}

// StripSentinels removes sentinel separator lines from a diff.
func StripSentinels(diff string) string {
	lines := strings.Split(diff, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isSentinel(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isSentinel(line string) bool {
	for _, m := range sentinelMarkers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}
