package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/neuralnexus/assistant/internal/core/domain"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	if !domain.IsKind(err, domain.ErrNotConfigured) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCompleteBuildsPromptAndParses(t *testing.T) {
	var captured chatCompletionsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer llm-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{
			"choices": [{"message": {"content": "VERDICT: TRUE"}}],
			"usage": {"total_tokens": 420}
		}`))
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "llm-key", BaseURL: server.URL, Model: "test-model"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.nowFn = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	results := []domain.SearchResult{
		{Title: "Coffee facts", URL: "https://example.org/coffee", Description: "about coffee"},
	}
	parserCalled := ""
	response, err := client.Complete(context.Background(), "You check facts.", "is it true?", results,
		func(raw string) map[string]any {
			parserCalled = raw
			return map[string]any{"verdict": "TRUE"}
		})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if captured.Model != "test-model" {
		t.Fatalf("expected model test-model, got %s", captured.Model)
	}
	if captured.Temperature != 0.7 || captured.MaxTokens != 1000 {
		t.Fatalf("unexpected sampling params: %+v", captured)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
	if !strings.Contains(captured.Messages[0].Content, "Current time: 2026-08-30 12:00:00") {
		t.Fatalf("system prompt missing timestamp: %q", captured.Messages[0].Content)
	}
	if !strings.Contains(captured.Messages[1].Content, "Source: Coffee facts\nURL: https://example.org/coffee\nabout coffee") {
		t.Fatalf("user prompt missing rendered result: %q", captured.Messages[1].Content)
	}

	if response.RawText != "VERDICT: TRUE" {
		t.Fatalf("unexpected raw text %q", response.RawText)
	}
	if parserCalled != "VERDICT: TRUE" {
		t.Fatalf("parser not invoked with raw text, got %q", parserCalled)
	}
	if response.Parsed["verdict"] != "TRUE" {
		t.Fatalf("unexpected parsed mapping: %v", response.Parsed)
	}
	if response.TokenCostEstimate != 0.42 {
		t.Fatalf("expected token cost estimate 0.42, got %f", response.TokenCostEstimate)
	}
}

func TestCompleteProviderErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "llm-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Complete(context.Background(), "sys", "query", nil, nil)
	if !domain.IsKind(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [], "usage": {"total_tokens": 0}}`))
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "llm-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Complete(context.Background(), "sys", "query", nil, nil)
	if !domain.IsKind(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error for empty choices, got %v", err)
	}
}
