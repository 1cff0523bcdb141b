package review

import "testing"

func TestSeverityRank(t *testing.T) {
	if SeverityRank(SeverityCritical) <= SeverityRank(SeverityHigh) {
		t.Error("critical should outrank high")
	}
	if SeverityRank(SeverityHigh) <= SeverityRank(SeverityMedium) {
		t.Error("high should outrank medium")
	}
	if SeverityRank(SeverityMedium) <= SeverityRank(SeverityLow) {
		t.Error("medium should outrank low")
	}
	if SeverityRank("bogus") != 0 {
		t.Error("unknown severity should rank 0")
	}
}

func TestValidSeverity(t *testing.T) {
	for _, s := range []string{"low", "medium", "high", "critical"} {
		if !ValidSeverity(s) {
			t.Errorf("ValidSeverity(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "Low", "HIGH", "urgent", "info"} {
		if ValidSeverity(s) {
			t.Errorf("ValidSeverity(%q) = true, want false", s)
		}
	}
}

func TestMeetsThreshold(t *testing.T) {
	tests := []struct {
		severity  Severity
		threshold string
		want      bool
	}{
		{SeverityHigh, "high", true},
		{SeverityCritical, "high", true},
		{SeverityMedium, "high", false},
		{SeverityLow, "low", true},
		{SeverityCritical, "none", false},
		{SeverityCritical, "", false},
	}
	for _, tt := range tests {
		if got := MeetsThreshold(tt.severity, tt.threshold); got != tt.want {
			t.Errorf("MeetsThreshold(%q, %q) = %v, want %v", tt.severity, tt.threshold, got, tt.want)
		}
	}
}

func TestComputeSummary(t *testing.T) {
	findings := []BugReport{
		{Severity: SeverityLow},
		{Severity: SeverityMedium},
		{Severity: SeverityMedium},
		{Severity: SeverityCritical},
	}
	s := ComputeSummary(findings)
	if s.Counts.Low != 1 || s.Counts.Medium != 2 || s.Counts.High != 0 || s.Counts.Critical != 1 {
		t.Errorf("Counts = %+v", s.Counts)
	}
	if s.HighestSeverity != SeverityCritical {
		t.Errorf("HighestSeverity = %q, want critical", s.HighestSeverity)
	}
}

func TestComputeSummary_Empty(t *testing.T) {
	s := ComputeSummary(nil)
	if s.Counts != (SeverityCounts{}) {
		t.Errorf("Counts = %+v, want zero", s.Counts)
	}
	if s.HighestSeverity != "" {
		t.Errorf("HighestSeverity = %q, want empty", s.HighestSeverity)
	}
}
