package evaluation

import (
	"strings"

	"github.com/its-adityagoyal/JobSummarizer/internal/fuzzy"
)

// DefaultThreshold is the inclusive pass mark for field comparisons.
const DefaultThreshold = 50

// Kind classifies the result of one field comparison. A skipped comparison
// means no expectation was defined for the field; it is neither a pass nor a
// failure.
type Kind string

const (
	Pass    Kind = "pass"
	Fail    Kind = "fail"
	Skipped Kind = "skipped"
)

// Outcome is the result of comparing one consolidated field against its
// expected value.
type Outcome struct {
	Field     string `json:"field"`
	Kind      Kind   `json:"kind"`
	Score     int    `json:"score"`
	Threshold int    `json:"threshold"`
	Expected  string `json:"expected,omitempty"`
	Actual    string `json:"actual,omitempty"`
}

// MatchField scores actual against expected with the provided ratio. An
// absent or empty expected value yields a Skipped outcome without invoking
// the ratio at all. The comparison always uses the untruncated strings.
func MatchField(field, actual, expected string, threshold int, ratio fuzzy.Ratio) Outcome {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	if strings.TrimSpace(expected) == "" {
		return Outcome{Field: field, Kind: Skipped, Threshold: threshold, Actual: actual}
	}

	score := ratio(actual, expected)
	kind := Fail
	if score >= threshold {
		kind = Pass
	}

	return Outcome{
		Field:     field,
		Kind:      kind,
		Score:     score,
		Threshold: threshold,
		Expected:  expected,
		Actual:    actual,
	}
}
