// Package similarity scores two record lists by best-match embedding
// similarity.
package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/its-adityagoyal/JobSummarizer/internal/ai"
	"github.com/its-adityagoyal/JobSummarizer/internal/record"
)

// ErrNoEntries is returned when either record list is empty. The aggregate is
// a mean over rows, so an empty list has no defined score.
var ErrNoEntries = errors.New("no entries to score")

// Scorer computes the max-pairwise similarity percentage between two record
// lists using an injected embedder.
type Scorer struct {
	embedder ai.Embedder
	logger   *zap.Logger
}

func NewScorer(embedder ai.Embedder, logger *zap.Logger) *Scorer {
	return &Scorer{embedder: embedder, logger: logger}
}

// MaxPairwise converts both lists to value-only strings, embeds them, and for
// each entry of listA takes the cosine similarity of its best match in listB.
// The row maxima are averaged and scaled to a 0..100 percentage.
func (s *Scorer) MaxPairwise(ctx context.Context, listA, listB []record.Record) (float64, error) {
	if len(listA) == 0 || len(listB) == 0 {
		return 0, ErrNoEntries
	}

	stringsA := entryStrings(listA)
	stringsB := entryStrings(listB)

	vectorsA, err := s.embedder.Embed(ctx, stringsA)
	if err != nil {
		return 0, fmt.Errorf("embedding first list: %w", err)
	}
	vectorsB, err := s.embedder.Embed(ctx, stringsB)
	if err != nil {
		return 0, fmt.Errorf("embedding second list: %w", err)
	}

	if len(vectorsA) != len(stringsA) || len(vectorsB) != len(stringsB) {
		return 0, fmt.Errorf("embedder returned %d and %d vectors for %d and %d entries",
			len(vectorsA), len(vectorsB), len(stringsA), len(stringsB))
	}

	var sum float64
	for i, va := range vectorsA {
		best := math.Inf(-1)
		for _, vb := range vectorsB {
			if score := Cosine(va, vb); score > best {
				best = score
			}
		}

		if s.logger != nil {
			s.logger.Debug("best match for entry",
				zap.Int("entry", i),
				zap.Float64("score", best),
			)
		}
		sum += best
	}

	return sum / float64(len(vectorsA)) * 100, nil
}

// Cosine returns the cosine similarity of two vectors. Mismatched or
// zero-norm vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func entryStrings(records []record.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, record.EntryToString(r))
	}
	return out
}
