package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/review"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

var severityOrder = []review.Severity{
	review.SeverityCritical,
	review.SeverityHigh,
	review.SeverityMedium,
	review.SeverityLow,
}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	total := len(report.Findings)
	ew.printf("AI PR Review — %s mode\n", report.Mode)
	ew.printf("Files reviewed: %d\n", len(report.Files))
	ew.println(strings.Repeat("─", 60))
	ew.printf("Findings: %d total", total)
	if total > 0 {
		ew.printf(" (%d critical, %d high, %d medium, %d low)",
			report.Summary.Counts.Critical,
			report.Summary.Counts.High,
			report.Summary.Counts.Medium,
			report.Summary.Counts.Low,
		)
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	if total == 0 {
		ew.println("\nNo issues found. Looks good!")
		return ew.err
	}

	grouped := groupBySeverity(report.Findings)
	for _, sev := range severityOrder {
		findings := grouped[sev]
		if len(findings) == 0 {
			continue
		}

		ew.printf("\n%s %s\n", severityIcon(sev), strings.ToUpper(string(sev)))
		ew.println(strings.Repeat("─", 40))

		sort.SliceStable(findings, func(i, j int) bool {
			return findings[i].FilePath < findings[j].FilePath
		})

		for _, f := range findings {
			ew.printf("\n  %s:%d-%d\n", f.FilePath, f.LineStart, f.LineEnd)
			ew.printf("  Confidence: %d%%\n", f.Confidence)
			for _, line := range wrapText(f.Description, 70) {
				ew.printf("    %s\n", line)
			}
			if f.SuggestedFix != "" {
				ew.println("  Suggested fix:")
				for _, line := range strings.Split(f.SuggestedFix, "\n") {
					ew.printf("    %s\n", line)
				}
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms (git: %dms, LLM: %dms)\n",
		report.Timing.TotalMs, report.Timing.GitMs, report.Timing.LLMMs)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func groupBySeverity(findings []review.BugReport) map[review.Severity][]review.BugReport {
	m := make(map[review.Severity][]review.BugReport)
	for _, f := range findings {
		m[f.Severity] = append(m[f.Severity], f)
	}
	return m
}

func severityIcon(s review.Severity) string {
	switch s {
	case review.SeverityCritical:
		return "[!!!]"
	case review.SeverityHigh:
		return "[!!]"
	case review.SeverityMedium:
		return "[!]"
	case review.SeverityLow:
		return "[-]"
	default:
		return "[?]"
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
