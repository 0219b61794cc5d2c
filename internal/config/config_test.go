package config

import (
	"strings"
	"testing"
)

func TestLoadAppliesPipelineDefaults(t *testing.T) {
	t.Setenv("SEARCH_TIMEOUT_SECONDS", "")
	t.Setenv("SEARCH_MAX_RETRIES", "")
	t.Setenv("SEARCH_CONCURRENCY", "")
	t.Setenv("SEARCH_CACHE_CAPACITY", "")
	t.Setenv("SEARCH_CACHE_TTL_SECONDS", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LLM_BASE_URL", "")

	cfg := Load()
	if cfg.SearchTimeoutSeconds != 10 {
		t.Fatalf("expected default search timeout 10, got %d", cfg.SearchTimeoutSeconds)
	}
	if cfg.SearchMaxRetries != 2 {
		t.Fatalf("expected default max retries 2, got %d", cfg.SearchMaxRetries)
	}
	if cfg.SearchConcurrency != 3 {
		t.Fatalf("expected default concurrency 3, got %d", cfg.SearchConcurrency)
	}
	if cfg.SearchCacheCapacity != 100 || cfg.SearchCacheTTLSeconds != 300 {
		t.Fatalf("unexpected cache defaults: %d / %d", cfg.SearchCacheCapacity, cfg.SearchCacheTTLSeconds)
	}
	if cfg.LLMModel != "hf:meta-llama/Llama-3.3-70B-Instruct" {
		t.Fatalf("unexpected default model %q", cfg.LLMModel)
	}
	if cfg.LLMBaseURL != "https://glhf.chat/api/openai/v1" {
		t.Fatalf("unexpected default base URL %q", cfg.LLMBaseURL)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("SEARCH_MAX_RETRIES", "4")
	t.Setenv("SEARCH_CONCURRENCY", "8")
	t.Setenv("API_RATE_LIMIT_RPS", "25")
	t.Setenv("LLM_MODEL", "hf:other/model")

	cfg := Load()
	if cfg.SearchMaxRetries != 4 {
		t.Fatalf("expected max retries 4, got %d", cfg.SearchMaxRetries)
	}
	if cfg.SearchConcurrency != 8 {
		t.Fatalf("expected concurrency 8, got %d", cfg.SearchConcurrency)
	}
	if cfg.APIRateLimitRPS != 25 {
		t.Fatalf("expected rate limit 25, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.LLMModel != "hf:other/model" {
		t.Fatalf("expected model override, got %q", cfg.LLMModel)
	}
}

func TestValidateReportsAllMissingCredentials(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"BRAVE_API_KEY", "LLM_API_KEY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %s: %v", want, err)
		}
	}

	cfg.BraveAPIKey = "search-key"
	cfg.LLMAPIKey = "llm-key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
