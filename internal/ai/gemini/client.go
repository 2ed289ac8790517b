// Package gemini implements the extraction and embedding collaborators on
// top of the Google GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/its-adityagoyal/JobSummarizer/internal/ai"
	"github.com/its-adityagoyal/JobSummarizer/internal/logger"
	"github.com/its-adityagoyal/JobSummarizer/internal/utils"
)

const (
	defaultModel      = "gemini-2.5-pro"
	defaultEmbedModel = "text-embedding-004"
	pdfMIMEType       = "application/pdf"
	retryBackoff      = 2 * time.Second
)

// Client talks to the Gemini API for PDF extraction and text embeddings.
type Client struct {
	client     *genai.Client
	model      string
	embedModel string
	maxRetries int
	logger     *zap.Logger
}

// New creates a Client configured for the Gemini API backend. Empty model
// names fall back to defaults.
func New(ctx context.Context, apiKey, model, embedModel string, maxRetries int, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if embedModel = strings.TrimSpace(embedModel); embedModel == "" {
		embedModel = defaultEmbedModel
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		client:     client,
		model:      model,
		embedModel: embedModel,
		maxRetries: maxRetries,
		logger:     logger.WithCommonFields(log, "gemini", model),
	}, nil
}

// ExtractJobDetails uploads the PDF inline with the extraction prompt and
// returns the model reply with any Markdown code fence stripped.
func (c *Client) ExtractJobDetails(ctx context.Context, pdfPath string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("reading pdf %q: %w", pdfPath, err)
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: ai.ExtractionPrompt},
			{InlineData: &genai.Blob{MIMEType: pdfMIMEType, Data: data}},
		},
	}}

	var raw string
	err = c.withRetries(ctx, "generate content", func() error {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
		if err != nil {
			return err
		}

		raw = collectText(resp)
		if raw == "" {
			return errors.New("gemini api returned empty response")
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return ai.StripCodeFence(raw), nil
}

// Embed maps each text to its embedding vector, preserving input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("gemini client is not initialized")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, &genai.Content{
			Parts: []*genai.Part{{Text: text}},
		})
	}

	var vectors [][]float32
	err := c.withRetries(ctx, "embed content", func() error {
		resp, err := c.client.Models.EmbedContent(ctx, c.embedModel, contents, nil)
		if err != nil {
			return err
		}

		if len(resp.Embeddings) != len(texts) {
			return fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
		}

		vectors = make([][]float32, 0, len(resp.Embeddings))
		for _, embedding := range resp.Embeddings {
			if embedding == nil || len(embedding.Values) == 0 {
				return errors.New("gemini api returned an empty embedding")
			}
			vectors = append(vectors, embedding.Values)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return vectors, nil
}

// withRetries runs op up to maxRetries+1 times with a fixed backoff between
// attempts, honoring context cancellation while waiting.
func (c *Client) withRetries(ctx context.Context, name string, op func() error) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying gemini call",
				zap.String("call", name),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(ctx, retryBackoff); err != nil {
				return err
			}
		}

		if lastErr = op(); lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
