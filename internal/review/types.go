package review

// Severity represents the severity level of a bug report.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ValidSeverity reports whether s is one of the four allowed severity values.
func ValidSeverity(s string) bool {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// MeetsThreshold returns true if severity is at or above the threshold.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	return SeverityRank(s) >= SeverityRank(Severity(threshold))
}

// BugReport is one validated finding for a file under review. It is built
// exactly once, from a candidate that passed schema validation plus the
// ambient file path, and is immutable afterwards.
type BugReport struct {
	Description  string   `json:"description"`
	Confidence   int      `json:"confidence"`
	Severity     Severity `json:"severity"`
	SuggestedFix string   `json:"suggestedFix"`
	FilePath     string   `json:"filePath"`
	LineStart    int      `json:"lineStart"`
	LineEnd      int      `json:"lineEnd"`
}

// SeverityCounts holds counts by severity level.
type SeverityCounts struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// Summary provides an overview of findings.
type Summary struct {
	Counts          SeverityCounts `json:"counts"`
	HighestSeverity Severity       `json:"highestSeverity"`
}

// Timing contains performance metrics for a run.
type Timing struct {
	GitMs   int64 `json:"gitMs"`
	LLMMs   int64 `json:"llmMs"`
	TotalMs int64 `json:"totalMs"`
}

// Report is the top-level output structure for a run.
type Report struct {
	Tool     string      `json:"tool"`
	Version  string      `json:"version"`
	RunID    string      `json:"runId"`
	Mode     string      `json:"mode"`
	Files    []string    `json:"files"`
	Summary  Summary     `json:"summary"`
	Findings []BugReport `json:"findings"`
	Timing   Timing      `json:"timing"`
}

// ComputeSummary calculates the summary from findings.
func ComputeSummary(findings []BugReport) Summary {
	var s Summary
	for _, f := range findings {
		switch f.Severity {
		case SeverityLow:
			s.Counts.Low++
		case SeverityMedium:
			s.Counts.Medium++
		case SeverityHigh:
			s.Counts.High++
		case SeverityCritical:
			s.Counts.Critical++
		}
		if SeverityRank(f.Severity) > SeverityRank(s.HighestSeverity) {
			s.HighestSeverity = f.Severity
		}
	}
	return s
}
