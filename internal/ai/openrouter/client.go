// Package openrouter implements the extraction collaborator against the
// OpenRouter chat completions API. The PDF travels inline as a base64 data
// URL file part.
package openrouter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/its-adityagoyal/JobSummarizer/internal/ai"
	"github.com/its-adityagoyal/JobSummarizer/internal/logger"
	"github.com/its-adityagoyal/JobSummarizer/internal/utils"
)

const (
	apiURL       = "https://openrouter.ai/api/v1/chat/completions"
	contentType  = "application/json"
	defaultModel = "deepseek/deepseek-chat"
	retryBackoff = 2 * time.Second
)

// Client calls the OpenRouter chat completions endpoint.
type Client struct {
	token      string
	model      string
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func New(token, model string, maxRetries int, log *zap.Logger) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		token:      token,
		model:      model,
		maxRetries: maxRetries,
		backoff:    retryBackoff,
		logger:     logger.WithCommonFields(log, "openrouter", model),
		HTTPClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		APIURL: apiURL,
	}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string    `json:"type"`
	Text string    `json:"text,omitempty"`
	File *filePart `json:"file,omitempty"`
}

type filePart struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractJobDetails sends the extraction prompt together with the PDF and
// returns the model reply with any Markdown code fence stripped.
func (c *Client) ExtractJobDetails(ctx context.Context, pdfPath string) (string, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("reading pdf %q: %w", pdfPath, err)
	}

	dataURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(data)

	payload := chatRequest{
		Model: c.model,
		Messages: []message{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: ai.ExtractionPrompt},
				{Type: "file", File: &filePart{
					Filename: filepath.Base(pdfPath),
					FileData: dataURL,
				}},
			},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	var content string
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying chat completion",
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(ctx, c.backoff); err != nil {
				return "", err
			}
		}

		content, lastErr = c.completeChat(ctx, body)
		if lastErr == nil {
			return ai.StripCodeFence(content), nil
		}
	}

	return "", fmt.Errorf("chat completion: %w", lastErr)
}

func (c *Client) completeChat(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s: %s",
			resp.Status, logger.TruncateForLog(string(data), 200))
	}

	var response chatResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", errors.New("no choices found in the response")
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("no text content found in the response")
	}

	return content, nil
}
