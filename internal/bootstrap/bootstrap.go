package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/neuralnexus/assistant/internal/config"
	"github.com/neuralnexus/assistant/internal/core/domain"
	"github.com/neuralnexus/assistant/internal/core/ports"
	"github.com/neuralnexus/assistant/internal/core/role"
	"github.com/neuralnexus/assistant/internal/core/usecase"
	"github.com/neuralnexus/assistant/internal/infrastructure/llm/openai"
	"github.com/neuralnexus/assistant/internal/infrastructure/search/brave"
	"github.com/neuralnexus/assistant/internal/observability/metrics"
)

type App struct {
	Config    config.Config
	Metrics   *metrics.HTTPServerMetrics
	Assistant *usecase.AssistantUseCase
}

func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	m := metrics.NewHTTPServerMetrics("api")

	searchClient, err := brave.New(brave.Config{
		APIKey:        cfg.BraveAPIKey,
		Endpoint:      cfg.SearchEndpoint,
		Timeout:       time.Duration(cfg.SearchTimeoutSeconds) * time.Second,
		MaxRetries:    cfg.SearchMaxRetries,
		Concurrency:   cfg.SearchConcurrency,
		CacheCapacity: cfg.SearchCacheCapacity,
		CacheTTL:      time.Duration(cfg.SearchCacheTTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("init search client: %w", err)
	}

	llmClient, err := openai.New(openai.Config{
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		Timeout: time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("init llm client: %w", err)
	}

	definitions, err := role.Load()
	if err != nil {
		return nil, fmt.Errorf("load role definitions: %w", err)
	}

	assistant, err := usecase.NewAssistantUseCase(
		definitions,
		&instrumentedSearch{inner: searchClient, metrics: m},
		&instrumentedCompletion{inner: llmClient, metrics: m},
	)
	if err != nil {
		return nil, fmt.Errorf("build assistant: %w", err)
	}

	return &App{
		Config:    cfg,
		Metrics:   m,
		Assistant: assistant,
	}, nil
}

// instrumentedSearch records search observations without the client knowing
// about the metrics registry.
type instrumentedSearch struct {
	inner   ports.SearchService
	metrics *metrics.HTTPServerMetrics
}

func (s *instrumentedSearch) Search(ctx context.Context, query, roleContext string) domain.SearchOutcome {
	outcome := s.inner.Search(ctx, query, roleContext)
	s.metrics.RecordSearch(
		"search",
		outcome.Metrics.CacheHit,
		outcome.Metrics.Error != "",
		outcome.Metrics.ResultsCount,
		time.Duration(outcome.Metrics.TotalTime*float64(time.Second)),
	)
	s.metrics.RecordConfidence("search", outcome.Confidence.Score)
	return outcome
}

type instrumentedCompletion struct {
	inner   *openai.Client
	metrics *metrics.HTTPServerMetrics
}

func (c *instrumentedCompletion) Complete(
	ctx context.Context,
	systemPrompt, userQuery string,
	results []domain.SearchResult,
	parser domain.SectionParser,
) (*domain.LLMResponse, error) {
	response, err := c.inner.Complete(ctx, systemPrompt, userQuery, results, parser)
	if err != nil {
		return nil, err
	}
	c.metrics.RecordTokenCost("llm", c.inner.Model(), response.TokenCostEstimate)
	return response, nil
}
