package output

import (
	"io"
	"sort"
	"strings"

	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/review"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.println("## AI PR Review")
	ew.println("")
	total := len(report.Findings)
	if total == 0 {
		ew.println("No issues found.")
		return ew.err
	}

	ew.printf("**%d finding(s)** — %d critical, %d high, %d medium, %d low\n",
		total,
		report.Summary.Counts.Critical,
		report.Summary.Counts.High,
		report.Summary.Counts.Medium,
		report.Summary.Counts.Low,
	)
	ew.println("")

	byFile := make(map[string][]review.BugReport)
	for _, f := range report.Findings {
		byFile[f.FilePath] = append(byFile[f.FilePath], f)
	}
	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		ew.printf("### `%s`\n\n", path)
		ew.println("| Lines | Severity | Confidence | Description |")
		ew.println("|---|---|---|---|")
		for _, f := range byFile[path] {
			ew.printf("| %d-%d | %s | %d%% | %s |\n",
				f.LineStart, f.LineEnd, f.Severity, f.Confidence,
				escapeTableCell(f.Description))
		}
		ew.println("")

		for _, f := range byFile[path] {
			if f.SuggestedFix == "" {
				continue
			}
			ew.printf("<details><summary>Suggested fix for lines %d-%d</summary>\n\n", f.LineStart, f.LineEnd)
			ew.println("```")
			ew.println(f.SuggestedFix)
			ew.println("```")
			ew.println("\n</details>\n")
		}
	}

	return ew.err
}

func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
