// Package openai talks to an OpenAI-compatible chat-completions endpoint.
// Unlike the search side, completion makes a single attempt and lets provider
// errors propagate to the caller.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/neuralnexus/assistant/internal/core/domain"
)

const (
	defaultBaseURL = "https://glhf.chat/api/openai/v1"
	defaultModel   = "hf:meta-llama/Llama-3.3-70B-Instruct"

	completionTemperature = 0.7
	completionMaxTokens   = 1000
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	nowFn      func() time.Time
}

// New builds the completion client. A missing API key is a configuration
// error raised at construction, never mid-query.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.WrapError(domain.ErrNotConfigured, "llm client", fmt.Errorf("API key is required"))
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		nowFn:      time.Now,
	}, nil
}

func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete issues one chat completion with the search results rendered into
// the user message and a timestamp appended to the system prompt, then hands
// the raw text to the role's parser. TokenCostEstimate on the response is
// usage.total_tokens / 1000, a cost approximation rather than latency.
func (c *Client) Complete(
	ctx context.Context,
	systemPrompt, userQuery string,
	results []domain.SearchResult,
	parser domain.SectionParser,
) (*domain.LLMResponse, error) {
	request := chatCompletionsRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: systemPrompt + "\nCurrent time: " + c.nowFn().Format("2006-01-02 15:04:05"),
			},
			{
				Role:    "user",
				Content: "Query: " + userQuery + "\n\nSearch Results:\n" + formatResults(results),
			},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	}

	var response chatCompletionsResponse
	if err := c.postJSON(ctx, "/chat/completions", request, &response, "completion"); err != nil {
		return nil, domain.WrapError(domain.ErrUpstream, "chat completion", err)
	}
	if len(response.Choices) == 0 {
		return nil, domain.WrapError(domain.ErrUpstream, "chat completion", fmt.Errorf("provider returned no choices"))
	}

	rawText := response.Choices[0].Message.Content

	parsed := map[string]any{}
	if parser != nil {
		parsed = parser(rawText)
	}

	return &domain.LLMResponse{
		RawText:           rawText,
		Parsed:            parsed,
		TokenCostEstimate: float64(response.Usage.TotalTokens) / 1000.0,
	}, nil
}

func formatResults(results []domain.SearchResult) string {
	var b strings.Builder
	for _, result := range results {
		fmt.Fprintf(&b, "Source: %s\nURL: %s\n%s\n\n", result.Title, result.URL, result.Description)
	}
	return b.String()
}
