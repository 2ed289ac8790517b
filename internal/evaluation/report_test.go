package evaluation

import (
	"encoding/json"
	"os"
	"testing"

	"go.uber.org/zap"
)

func TestRunEvaluatesEveryFieldInOrder(t *testing.T) {
	t.Parallel()

	fields := []string{"Company name", "Job title", "Location"}
	consolidated := map[string]string{
		"Company name": "acme corp",
		"Job title":    "software engineer",
		"Location":     "pune",
	}
	expected := map[string]string{
		"Company name": "acme corp",
		"Job title":    "data analyst",
	}

	exact := func(a, b string) int {
		if a == b {
			return 100
		}
		return 0
	}

	report := Run("PDF7", fields, consolidated, expected, 0, exact, zap.NewNop())

	if report.File != "PDF7" {
		t.Fatalf("expected file PDF7, got %q", report.File)
	}
	if len(report.Outcomes) != len(fields) {
		t.Fatalf("expected %d outcomes, got %d", len(fields), len(report.Outcomes))
	}
	for i, field := range fields {
		if report.Outcomes[i].Field != field {
			t.Fatalf("expected outcome %d for field %q, got %q", i, field, report.Outcomes[i].Field)
		}
	}

	if got := report.Passed(); got != 1 {
		t.Fatalf("expected 1 passed, got %d", got)
	}
	if got := report.Failed(); got != 1 {
		t.Fatalf("expected 1 failed, got %d", got)
	}
	if got := report.Skipped(); got != 1 {
		t.Fatalf("expected 1 skipped, got %d", got)
	}

	failures := report.Failures()
	if len(failures) != 1 || failures[0].Field != "Job title" {
		t.Fatalf("expected a single failure for Job title, got %+v", failures)
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	fields := []string{"a", "b"}
	consolidated := map[string]string{"a": "x", "b": "y"}
	expected := map[string]string{"a": "z", "b": "y"}

	exact := func(a, b string) int {
		if a == b {
			return 100
		}
		return 0
	}

	report := Run("file", fields, consolidated, expected, 0, exact, zap.NewNop())

	if report.Failed() != 1 || report.Passed() != 1 {
		t.Fatalf("expected the run to continue past the failing field, got %+v", report.Outcomes)
	}
}

func TestDumpToTmpFile(t *testing.T) {
	t.Parallel()

	report := &Report{
		File: "PDF7",
		Outcomes: []Outcome{
			{Field: "Company name", Kind: Pass, Score: 90, Threshold: 50, Expected: "acme", Actual: "acme corp"},
		},
	}

	filename, err := report.DumpToTmpFile()
	if err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	defer os.Remove(filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("expected a readable dump file, got %s", err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("expected valid JSON in the dump, got %s", err)
	}
	if decoded.File != "PDF7" || len(decoded.Outcomes) != 1 {
		t.Fatalf("expected the dump to round-trip the report, got %+v", decoded)
	}
}
