package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIPort  string
	LogLevel string

	BraveAPIKey           string
	SearchEndpoint        string
	SearchTimeoutSeconds  int
	SearchMaxRetries      int
	SearchConcurrency     int
	SearchCacheCapacity   int
	SearchCacheTTLSeconds int

	LLMAPIKey         string
	LLMBaseURL        string
	LLMModel          string
	LLMTimeoutSeconds int

	APIRateLimitRPS   int
	APIRateLimitBurst int
	APIMaxInFlight    int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		BraveAPIKey:           mustEnv("BRAVE_API_KEY", ""),
		SearchEndpoint:        mustEnv("SEARCH_ENDPOINT", ""),
		SearchTimeoutSeconds:  mustEnvInt("SEARCH_TIMEOUT_SECONDS", 10),
		SearchMaxRetries:      mustEnvInt("SEARCH_MAX_RETRIES", 2),
		SearchConcurrency:     mustEnvInt("SEARCH_CONCURRENCY", 3),
		SearchCacheCapacity:   mustEnvInt("SEARCH_CACHE_CAPACITY", 100),
		SearchCacheTTLSeconds: mustEnvInt("SEARCH_CACHE_TTL_SECONDS", 300),

		LLMAPIKey:         mustEnv("LLM_API_KEY", ""),
		LLMBaseURL:        mustEnv("LLM_BASE_URL", "https://glhf.chat/api/openai/v1"),
		LLMModel:          mustEnv("LLM_MODEL", "hf:meta-llama/Llama-3.3-70B-Instruct"),
		LLMTimeoutSeconds: mustEnvInt("LLM_TIMEOUT_SECONDS", 60),

		APIRateLimitRPS:   mustEnvInt("API_RATE_LIMIT_RPS", 10),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 20),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 64),
	}
}

// Validate reports every missing credential at once so a misconfigured
// deployment fails fast with a complete picture.
func (c Config) Validate() error {
	var missing []string
	if c.BraveAPIKey == "" {
		missing = append(missing, "BRAVE_API_KEY")
	}
	if c.LLMAPIKey == "" {
		missing = append(missing, "LLM_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
