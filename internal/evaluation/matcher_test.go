package evaluation

import (
	"testing"

	"go.uber.org/zap"
)

// fixedRatio ignores its inputs and returns a preset score.
func fixedRatio(score int) func(a, b string) int {
	return func(_, _ string) int { return score }
}

func TestMatchFieldThresholdBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		score     int
		threshold int
		want      Kind
	}{
		{name: "below threshold fails", score: 49, threshold: 50, want: Fail},
		{name: "at threshold passes", score: 50, threshold: 50, want: Pass},
		{name: "above threshold passes", score: 51, threshold: 50, want: Pass},
		{name: "custom threshold fail", score: 79, threshold: 80, want: Fail},
		{name: "custom threshold pass", score: 80, threshold: 80, want: Pass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			outcome := MatchField("Job title", "x", "y", tt.threshold, fixedRatio(tt.score))
			if outcome.Kind != tt.want {
				t.Fatalf("score %d vs threshold %d: expected %s, got %s",
					tt.score, tt.threshold, tt.want, outcome.Kind)
			}
			if outcome.Score != tt.score {
				t.Fatalf("expected score %d in outcome, got %d", tt.score, outcome.Score)
			}
		})
	}
}

func TestMatchFieldSkippedWithoutExpectation(t *testing.T) {
	t.Parallel()

	called := false
	ratio := func(_, _ string) int {
		called = true
		return 100
	}

	for _, expected := range []string{"", "   "} {
		outcome := MatchField("Location", "pune", expected, 50, ratio)
		if outcome.Kind != Skipped {
			t.Fatalf("expected skipped outcome, got %s", outcome.Kind)
		}
	}
	if called {
		t.Fatalf("ratio must not be invoked for skipped comparisons")
	}
}

func TestMatchFieldDefaultThreshold(t *testing.T) {
	t.Parallel()

	outcome := MatchField("f", "a", "b", 0, fixedRatio(DefaultThreshold))
	if outcome.Threshold != DefaultThreshold {
		t.Fatalf("expected default threshold %d, got %d", DefaultThreshold, outcome.Threshold)
	}
	if outcome.Kind != Pass {
		t.Fatalf("score at default threshold should pass, got %s", outcome.Kind)
	}
}

func TestRunReportsEveryField(t *testing.T) {
	t.Parallel()

	consolidated := map[string]string{
		"Company name": "acme",
		"Job title":    "sr engineer",
	}
	expected := map[string]string{
		"Company name": "acme",
		"Job title":    "completely different",
	}
	fields := []string{"Company name", "Job title", "Location"}

	ratio := func(a, b string) int {
		if a == b {
			return 100
		}
		return 0
	}

	report := Run("PDF7", fields, consolidated, expected, 50, ratio, zap.NewNop())

	if len(report.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(report.Outcomes))
	}
	if report.Passed() != 1 || report.Failed() != 1 || report.Skipped() != 1 {
		t.Fatalf("unexpected counts: pass=%d fail=%d skip=%d",
			report.Passed(), report.Failed(), report.Skipped())
	}

	failures := report.Failures()
	if len(failures) != 1 || failures[0].Field != "Job title" {
		t.Fatalf("unexpected failures: %+v", failures)
	}
	if failures[0].Expected != "completely different" || failures[0].Actual != "sr engineer" {
		t.Fatalf("failure must carry untruncated strings: %+v", failures[0])
	}
}
