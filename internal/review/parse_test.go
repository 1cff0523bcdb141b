package review

import (
	"errors"
	"testing"
)

func TestParseReply_ValidArray(t *testing.T) {
	input := `[
		{
			"description": "Nil pointer dereference when cfg is unset",
			"confidence": 90,
			"severity": "high",
			"suggestedFix": "if cfg == nil { return }",
			"lineStart": 10,
			"lineEnd": 12
		},
		{
			"description": "Off-by-one in loop bound",
			"confidence": 60,
			"severity": "medium",
			"suggestedFix": "",
			"lineStart": 20,
			"lineEnd": 20
		}
	]`

	reports, err := ParseReply(input, nil)
	if err != nil {
		t.Fatalf("ParseReply error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	r := reports[0]
	if r.Description != "Nil pointer dereference when cfg is unset" {
		t.Errorf("reports[0].Description = %q", r.Description)
	}
	if r.Confidence != 90 {
		t.Errorf("reports[0].Confidence = %d, want 90", r.Confidence)
	}
	if r.Severity != SeverityHigh {
		t.Errorf("reports[0].Severity = %q, want %q", r.Severity, SeverityHigh)
	}
	if r.LineStart != 10 || r.LineEnd != 12 {
		t.Errorf("reports[0] lines = %d-%d, want 10-12", r.LineStart, r.LineEnd)
	}
	if r.FilePath != "" {
		t.Errorf("reports[0].FilePath = %q, want unset before AttachFilePath", r.FilePath)
	}
	if reports[1].SuggestedFix != "" {
		t.Errorf("reports[1].SuggestedFix = %q, want empty", reports[1].SuggestedFix)
	}
}

func TestParseReply_EmptyArray(t *testing.T) {
	reports, err := ParseReply("[]", nil)
	if err != nil {
		t.Fatalf("ParseReply error: %v", err)
	}
	if reports == nil {
		t.Fatal("reports is nil, want empty slice")
	}
	if len(reports) != 0 {
		t.Errorf("got %d reports, want 0", len(reports))
	}
}

func TestParseReply_ObjectWithBugReports(t *testing.T) {
	input := `{
		"analysis": "The file looks mostly fine apart from one issue.",
		"bugReports": [
			{
				"description": "Unchecked error from Close",
				"confidence": 75,
				"severity": "low",
				"suggestedFix": "defer func() { _ = f.Close() }()",
				"lineStart": 3,
				"lineEnd": 3
			}
		]
	}`
	reports, err := ParseReply(input, nil)
	if err != nil {
		t.Fatalf("ParseReply error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0].Severity != SeverityLow {
		t.Errorf("Severity = %q, want low", reports[0].Severity)
	}
}

func TestParseReply_ObjectWithoutBugReports(t *testing.T) {
	// No bugReports key means the model found nothing.
	for _, input := range []string{`{"analysis": "all clear"}`, `{}`} {
		reports, err := ParseReply(input, nil)
		if err != nil {
			t.Fatalf("ParseReply(%q) error: %v", input, err)
		}
		if len(reports) != 0 {
			t.Errorf("ParseReply(%q): got %d reports, want 0", input, len(reports))
		}
	}
}

func TestParseReply_MalformedJSON(t *testing.T) {
	for _, input := range []string{"not json at all", "[{", `{"bugReports": [}`} {
		_, err := ParseReply(input, nil)
		if !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("ParseReply(%q) error = %v, want ErrMalformedPayload", input, err)
		}
	}
}

func TestParseReply_UnexpectedShape(t *testing.T) {
	cases := []string{
		`"just a string"`,
		`42`,
		`true`,
		`{"bugReports": "not an array"}`,
		`{"bugReports": {"description": "nested object"}}`,
	}
	for _, input := range cases {
		_, err := ParseReply(input, nil)
		if !errors.Is(err, ErrUnexpectedShape) {
			t.Errorf("ParseReply(%q) error = %v, want ErrUnexpectedShape", input, err)
		}
	}
}

func TestParseReply_RejectsBadCandidatesIndividually(t *testing.T) {
	// One valid report surrounded by invalid ones: siblings survive.
	input := `[
		{"description": "missing fields"},
		{
			"description": "Race on shared counter",
			"confidence": 85,
			"severity": "high",
			"suggestedFix": "use atomic.AddInt64",
			"lineStart": 7,
			"lineEnd": 9
		},
		{
			"description": "bad severity",
			"confidence": 50,
			"severity": "catastrophic",
			"suggestedFix": "",
			"lineStart": 1,
			"lineEnd": 1
		},
		"not even an object"
	]`
	reports, err := ParseReply(input, nil)
	if err != nil {
		t.Fatalf("ParseReply error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0].Description != "Race on shared counter" {
		t.Errorf("surviving report = %q", reports[0].Description)
	}
}

func TestParseReply_CandidateValidation(t *testing.T) {
	valid := map[string]string{
		"description":  `"d"`,
		"confidence":   `50`,
		"severity":     `"low"`,
		"suggestedFix": `""`,
		"lineStart":    `1`,
		"lineEnd":      `2`,
	}
	build := func(overrides map[string]string) string {
		s := "[{"
		first := true
		for _, k := range []string{"description", "confidence", "severity", "suggestedFix", "lineStart", "lineEnd"} {
			v, ok := overrides[k]
			if !ok {
				v = valid[k]
			}
			if v == "OMIT" {
				continue
			}
			if !first {
				s += ","
			}
			s += `"` + k + `":` + v
			first = false
		}
		return s + "}]"
	}

	tests := []struct {
		name      string
		overrides map[string]string
		accepted  bool
	}{
		{"all valid", nil, true},
		{"confidence zero", map[string]string{"confidence": `0`}, true},
		{"confidence hundred", map[string]string{"confidence": `100`}, true},
		{"equal line bounds", map[string]string{"lineStart": `5`, "lineEnd": `5`}, true},
		{"missing description", map[string]string{"description": "OMIT"}, false},
		{"empty description", map[string]string{"description": `"  "`}, false},
		{"description wrong type", map[string]string{"description": `123`}, false},
		{"confidence negative", map[string]string{"confidence": `-1`}, false},
		{"confidence over range", map[string]string{"confidence": `101`}, false},
		{"confidence string", map[string]string{"confidence": `"80"`}, false},
		{"severity unknown", map[string]string{"severity": `"urgent"`}, false},
		{"severity missing", map[string]string{"severity": "OMIT"}, false},
		{"fix missing", map[string]string{"suggestedFix": "OMIT"}, false},
		{"fix wrong type", map[string]string{"suggestedFix": `42`}, false},
		{"lineStart missing", map[string]string{"lineStart": "OMIT"}, false},
		{"lineEnd wrong type", map[string]string{"lineEnd": `"9"`}, false},
		{"inverted line range", map[string]string{"lineStart": `10`, "lineEnd": `2`}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports, err := ParseReply(build(tt.overrides), nil)
			if err != nil {
				t.Fatalf("ParseReply error: %v", err)
			}
			want := 0
			if tt.accepted {
				want = 1
			}
			if len(reports) != want {
				t.Errorf("got %d reports, want %d", len(reports), want)
			}
		})
	}
}

func TestParseReply_TruncatesFractionalConfidence(t *testing.T) {
	input := `[{"description":"d","confidence":87.9,"severity":"low","suggestedFix":"","lineStart":1,"lineEnd":1}]`
	reports, err := ParseReply(input, nil)
	if err != nil {
		t.Fatalf("ParseReply error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0].Confidence != 87 {
		t.Errorf("Confidence = %d, want 87", reports[0].Confidence)
	}
}

func TestAttachFilePath(t *testing.T) {
	in := []BugReport{
		{Description: "a", FilePath: "model-guess.go"},
		{Description: "b"},
	}
	out := AttachFilePath(in, "src/app.ts")
	if len(out) != 2 {
		t.Fatalf("got %d reports, want 2", len(out))
	}
	for i, r := range out {
		if r.FilePath != "src/app.ts" {
			t.Errorf("out[%d].FilePath = %q, want src/app.ts", i, r.FilePath)
		}
	}
	if out[0].Description != "a" || out[1].Description != "b" {
		t.Error("AttachFilePath must preserve order")
	}
	// Input slice is untouched.
	if in[0].FilePath != "model-guess.go" {
		t.Error("AttachFilePath mutated its input")
	}
}

func TestAttachFilePath_Empty(t *testing.T) {
	out := AttachFilePath([]BugReport{}, "a.go")
	if out == nil || len(out) != 0 {
		t.Errorf("AttachFilePath([], ...) = %v, want empty slice", out)
	}
}
