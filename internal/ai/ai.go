// Package ai defines the narrow surfaces of the LLM collaborators so that
// pipeline code can be tested against stubs.
package ai

import (
	"context"
	"strings"
)

// Extractor turns a scanned PDF of job postings into a raw JSON string.
type Extractor interface {
	ExtractJobDetails(ctx context.Context, pdfPath string) (string, error)
}

// Embedder maps a batch of strings to fixed-dimension vectors. The vector
// dimension is constant for a given model.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// StripCodeFence removes a surrounding Markdown code fence from a model
// reply. Models regularly wrap JSON output in ```json blocks even when asked
// not to.
func StripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
