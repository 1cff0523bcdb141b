package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/RyanBeasley1994/ai-pr-reviewer/internal/diag"
)

var (
	// ErrMalformedPayload signals reply text that is not valid JSON.
	ErrMalformedPayload = errors.New("reply is not valid JSON")
	// ErrUnexpectedShape signals valid JSON that is neither an array nor an
	// object carrying a bugReports array.
	ErrUnexpectedShape = errors.New("reply JSON has unexpected shape")
)

// ParseReply decodes cleaned reply text and returns the candidates that
// satisfy the bug-report schema. Rejected candidates are reported to the
// sink and dropped individually; one bad element never invalidates its
// siblings. FilePath is not yet set on the results.
func ParseReply(text string, sink diag.Sink) ([]BugReport, error) {
	if sink == nil {
		sink = diag.Nop()
	}

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	candidates, err := candidateArray(value)
	if err != nil {
		return nil, err
	}

	reports := make([]BugReport, 0, len(candidates))
	for i, c := range candidates {
		r, err := validateCandidate(c)
		if err != nil {
			sink.Debugf("dropping candidate %d: %v", i, err)
			continue
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// candidateArray normalizes the two accepted reply shapes into a candidate
// slice: a bare top-level array, or an object with a bugReports array (the
// sibling analysis text is informational only). An object without a
// bugReports key means the model found nothing.
func candidateArray(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case map[string]any:
		raw, ok := v["bugReports"]
		if !ok {
			return nil, nil
		}
		arr, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: bugReports is %T, want array", ErrUnexpectedShape, raw)
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("%w: top-level %T", ErrUnexpectedShape, value)
	}
}

// validateCandidate checks one decoded element against the bug-report
// schema. Every field except filePath must be present and well-typed; the
// model's own guess at a path, if any, is discarded here.
func validateCandidate(c any) (BugReport, error) {
	obj, ok := c.(map[string]any)
	if !ok {
		return BugReport{}, fmt.Errorf("candidate is %T, want object", c)
	}

	desc, ok := obj["description"].(string)
	if !ok {
		return BugReport{}, errors.New("description is not a string")
	}
	if strings.TrimSpace(desc) == "" {
		return BugReport{}, errors.New("description is empty")
	}

	conf, ok := obj["confidence"].(float64)
	if !ok {
		return BugReport{}, errors.New("confidence is not a number")
	}
	if conf < 0 || conf > 100 {
		return BugReport{}, fmt.Errorf("confidence %v outside [0,100]", conf)
	}

	sev, ok := obj["severity"].(string)
	if !ok {
		return BugReport{}, errors.New("severity is not a string")
	}
	if !ValidSeverity(sev) {
		return BugReport{}, fmt.Errorf("severity %q not in {low, medium, high, critical}", sev)
	}

	fix, ok := obj["suggestedFix"].(string)
	if !ok {
		return BugReport{}, errors.New("suggestedFix is not a string")
	}

	start, ok := obj["lineStart"].(float64)
	if !ok {
		return BugReport{}, errors.New("lineStart is not a number")
	}
	end, ok := obj["lineEnd"].(float64)
	if !ok {
		return BugReport{}, errors.New("lineEnd is not a number")
	}
	if start > end {
		return BugReport{}, fmt.Errorf("lineStart %v > lineEnd %v", start, end)
	}

	return BugReport{
		Description:  desc,
		Confidence:   int(conf),
		Severity:     Severity(sev),
		SuggestedFix: fix,
		LineStart:    int(start),
		LineEnd:      int(end),
	}, nil
}

// AttachFilePath returns a new slice where every report carries path as its
// FilePath, overriding any value the model might have guessed, in validator
// order. This is the only place FilePath is written.
func AttachFilePath(reports []BugReport, path string) []BugReport {
	out := make([]BugReport, len(reports))
	for i, r := range reports {
		r.FilePath = path
		out[i] = r
	}
	return out
}
