package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posting.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatalf("writing pdf: %v", err)
	}
	return path
}

func chatReply(content string) string {
	return `{"choices": [{"message": {"content": ` + mustQuote(content) + `}}]}`
}

func mustQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestExtractJobDetails(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Write([]byte(chatReply("```json\n[{\"Company name\": \"Acme\"}]\n```")))
	}))
	defer server.Close()

	client := New("sk-test", "", 0, zap.NewNop())
	client.APIURL = server.URL

	raw, err := client.ExtractJobDetails(context.Background(), writePDF(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raw != `[{"Company name": "Acme"}]` {
		t.Fatalf("expected fences stripped, got %q", raw)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotBody.Model != defaultModel {
		t.Fatalf("expected default model, got %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 1 || len(gotBody.Messages[0].Content) != 2 {
		t.Fatalf("unexpected message shape: %+v", gotBody.Messages)
	}

	file := gotBody.Messages[0].Content[1].File
	if file == nil {
		t.Fatalf("expected file part")
	}
	if file.Filename != "posting.pdf" {
		t.Fatalf("unexpected filename: %q", file.Filename)
	}
	if !strings.HasPrefix(file.FileData, "data:application/pdf;base64,") {
		t.Fatalf("expected base64 data url, got %q", file.FileData)
	}
}

func TestExtractJobDetailsBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New("sk-test", "", 0, zap.NewNop())
	client.APIURL = server.URL

	if _, err := client.ExtractJobDetails(context.Background(), writePDF(t)); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}

func TestExtractJobDetailsRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Write([]byte(chatReply(`[{"a": 1}]`)))
	}))
	defer server.Close()

	client := New("sk-test", "custom/model", 2, zap.NewNop())
	client.APIURL = server.URL
	client.backoff = time.Millisecond

	raw, err := client.ExtractJobDetails(context.Background(), writePDF(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != `[{"a": 1}]` {
		t.Fatalf("unexpected content: %q", raw)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestExtractJobDetailsEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := New("sk-test", "", 0, zap.NewNop())
	client.APIURL = server.URL

	if _, err := client.ExtractJobDetails(context.Background(), writePDF(t)); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestExtractJobDetailsMissingPDF(t *testing.T) {
	t.Parallel()

	client := New("sk-test", "", 0, zap.NewNop())
	if _, err := client.ExtractJobDetails(context.Background(), filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatalf("expected error for missing pdf")
	}
}
