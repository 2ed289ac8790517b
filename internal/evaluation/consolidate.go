// Package evaluation consolidates extracted job-posting fields and compares
// them against expected values.
package evaluation

import (
	"strings"

	"github.com/its-adityagoyal/JobSummarizer/internal/normalize"
	"github.com/its-adityagoyal/JobSummarizer/internal/record"
)

// Consolidate collects each field's normalized values across all records into
// one string per field, preserving record order. Values that are absent or
// normalize to empty are dropped; a field with no retained values at all is
// omitted from the result.
func Consolidate(records []record.Record, fields []string) map[string]string {
	out := make(map[string]string)

	for _, field := range fields {
		var values []string
		for _, r := range records {
			obj, ok := r.(record.Object)
			if !ok {
				continue
			}
			raw, ok := obj.Get(field)
			if !ok {
				continue
			}
			normalized := normalize.Normalize(raw)
			if normalized == "" {
				continue
			}
			values = append(values, normalized)
		}

		if len(values) > 0 {
			out[field] = strings.Join(values, " ")
		}
	}

	return out
}
