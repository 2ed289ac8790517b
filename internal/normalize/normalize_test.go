package normalize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/its-adityagoyal/JobSummarizer/internal/record"
)

func TestNormalizeScalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "null", input: nil, want: ""},
		{name: "lower-cases", input: "Software ENGINEER", want: "software engineer"},
		{name: "removes commas", input: "Pune, Mumbai, Delhi", want: "pune mumbai delhi"},
		{name: "hyphen becomes space", input: "full-time", want: "full time"},
		{name: "pipe becomes space", input: "day|night", want: "day night"},
		{name: "period becomes space", input: "B.Tech", want: "b tech"},
		{name: "colon becomes space", input: "salary:high", want: "salary high"},
		{name: "strips punctuation", input: "apply (online)!", want: "apply online"},
		{name: "rupee symbol", input: "₹500", want: "rs500"},
		{name: "rupee with space", input: "₹ 500", want: "rs 500"},
		{name: "dollar symbol", input: "$2000", want: "usd2000"},
		{name: "senior substring", input: "Senior Engineer", want: "sr engineer"},
		{name: "junior substring", input: "Junior Dev", want: "jr dev"},
		{name: "seniority false positive", input: "seniority", want: "srity"},
		{name: "collapses whitespace", input: "  a \t b\n c  ", want: "a b c"},
		{name: "number", input: json.Number("42"), want: "42"},
		{name: "boolean", input: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalizeSequence(t *testing.T) {
	t.Parallel()

	input := []any{"Go", nil, "", "SQL, NoSQL", []any{"REST"}}
	if got := Normalize(input); got != "go sql nosql rest" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestNormalizeObjectCanonical(t *testing.T) {
	t.Parallel()

	// The same members in a different document order must normalize equally.
	a := record.Object{
		{Key: "min", Value: json.Number("10000")},
		{Key: "currency", Value: "INR"},
	}
	b := record.Object{
		{Key: "currency", Value: "INR"},
		{Key: "min", Value: json.Number("10000")},
	}

	got, other := Normalize(a), Normalize(b)
	if got != other {
		t.Fatalf("expected equal canonical forms, got %q and %q", got, other)
	}
	if !strings.Contains(got, "currency") || !strings.Contains(got, "10000") {
		t.Fatalf("canonical form lost content: %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []any{
		"Senior Software Engineer, Full-Time (₹50,000/month)",
		"B.Tech | M.Tech: preferred",
		"$100 - $200",
		[]any{"Docker", "Kubernetes, Helm"},
		record.Object{{Key: "a", Value: "x, y"}},
	}

	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %v: %q vs %q", input, once, twice)
		}
	}
}
