package evaluation

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/its-adityagoyal/JobSummarizer/internal/fuzzy"
	"github.com/its-adityagoyal/JobSummarizer/internal/logger"
)

const previewLength = 120

// Report aggregates the per-field outcomes of one evaluation run.
type Report struct {
	File     string    `json:"file"`
	Outcomes []Outcome `json:"outcomes"`
}

// Run compares every consolidated field against the expected table,
// evaluating each field in the given order. A failing field never stops the
// remaining comparisons; every outcome is logged individually.
func Run(file string, fields []string, consolidated, expected map[string]string, threshold int, ratio fuzzy.Ratio, log *zap.Logger) *Report {
	report := &Report{File: file}

	for _, field := range fields {
		outcome := MatchField(field, consolidated[field], expected[field], threshold, ratio)
		report.Outcomes = append(report.Outcomes, outcome)

		if log == nil {
			continue
		}

		switch outcome.Kind {
		case Skipped:
			log.Info("field comparison skipped",
				zap.String("field", field),
				zap.String("reason", "no expectation defined"),
			)
		case Pass:
			log.Info("field comparison passed",
				zap.String("field", field),
				zap.Int("score", outcome.Score),
				zap.Int("threshold", outcome.Threshold),
			)
		case Fail:
			log.Warn("field comparison failed",
				zap.String("field", field),
				zap.Int("score", outcome.Score),
				zap.Int("threshold", outcome.Threshold),
				zap.String("expected", logger.TruncateForLog(outcome.Expected, previewLength)),
				zap.String("actual", logger.TruncateForLog(outcome.Actual, previewLength)),
			)
		}
	}

	return report
}

func (r *Report) count(kind Kind) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Report) Passed() int  { return r.count(Pass) }
func (r *Report) Failed() int  { return r.count(Fail) }
func (r *Report) Skipped() int { return r.count(Skipped) }

// Failures returns the failing outcomes in evaluation order.
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Kind == Fail {
			failed = append(failed, o)
		}
	}
	return failed
}

// DumpToTmpFile writes the full untruncated report as indented JSON to a
// temporary file and returns its name.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "evaluation_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
