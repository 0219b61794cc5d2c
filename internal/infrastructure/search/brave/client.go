// Package brave implements the search side of the answer pipeline against the
// Brave web-search API: query enhancement, relevance ranking, source-quality
// confidence, a bounded response cache, and retry/backoff on upstream
// failures. Failures never escape Search; they land in the returned metrics.
package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/neuralnexus/assistant/internal/core/domain"
	"github.com/neuralnexus/assistant/internal/core/scoring"
	"github.com/neuralnexus/assistant/internal/infrastructure/resilience"
)

const defaultEndpoint = "https://api.search.brave.com/res/v1/web/search"

// noAssessmentReason is returned whenever confidence was not computed: cache
// hits intentionally skip reassessment, and failed searches have nothing to
// assess.
const noAssessmentReason = "No confidence assessment"

type Config struct {
	APIKey        string
	Endpoint      string
	Timeout       time.Duration
	MaxRetries    int
	Concurrency   int
	CacheCapacity int
	CacheTTL      time.Duration

	// Backoff units override the 1s/2s production defaults; tests shrink
	// them to keep retry paths fast.
	TimeoutBackoff   time.Duration
	RateLimitBackoff time.Duration
}

type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	exec       *resilience.Executor
	cache      *queryCache
	sem        chan struct{}
}

// New builds the search client. A missing API key is a configuration error;
// there is no degraded keyless mode.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.WrapError(domain.ErrNotConfigured, "brave search", fmt.Errorf("API key is required"))
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 2
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}
	capacity := cfg.CacheCapacity
	if capacity <= 0 {
		capacity = 100
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		exec: resilience.NewExecutor(resilience.Config{
			MaxAttempts:          maxRetries,
			TimeoutBackoffUnit:   cfg.TimeoutBackoff,
			RateLimitBackoffUnit: cfg.RateLimitBackoff,
			BreakerEnabled:       true,
		}),
		cache: newQueryCache(capacity, ttl),
		sem:   make(chan struct{}, concurrency),
	}, nil
}

// Search runs one full search pass: cache lookup, role-biased query
// enhancement, the retried provider call, per-result relevance scoring,
// ranking, and confidence aggregation. TotalTime is set on every return path.
func (c *Client) Search(ctx context.Context, query, roleContext string) domain.SearchOutcome {
	start := time.Now()
	metrics := domain.SearchMetrics{}

	if cached, ok := c.cache.get(query); ok {
		metrics.CacheHit = true
		metrics.TotalTime = time.Since(start).Seconds()
		metrics.ResultsCount = len(cached)
		// The cache path skips confidence recomputation on purpose: signals
		// are not cached alongside results.
		return domain.SearchOutcome{
			Results: cached,
			Metrics: metrics,
			Confidence: domain.ConfidenceResult{
				Score:   0,
				Reasons: []string{noAssessmentReason},
			},
		}
	}

	sanitized := sanitizeQuery(enhanceQuery(query, roleContext))
	terms := strings.Fields(sanitized)

	raw, err := c.request(ctx, url.Values{
		"q":                {sanitized},
		"count":            {"10"},
		"freshness":        {"pw"},
		"text_decorations": {"false"},
		"text_format":      {"raw"},
	})
	if err != nil {
		metrics.Error = err.Error()
		metrics.TotalTime = time.Since(start).Seconds()
		return domain.SearchOutcome{
			Metrics: metrics,
			Confidence: domain.ConfidenceResult{
				Score:   0,
				Reasons: []string{noAssessmentReason},
			},
		}
	}

	queryTime := time.Since(start).Seconds()
	currentYear := time.Now().Year()

	results := make([]domain.SearchResult, 0, len(raw.Web.Results))
	signals := make([]domain.SourceSignal, 0, len(raw.Web.Results))
	for _, item := range raw.Web.Results {
		results = append(results, domain.SearchResult{
			Title:          item.Title,
			URL:            item.URL,
			Description:    item.Description,
			QueryTime:      queryTime,
			RelevanceScore: scoring.Relevance(item.Title, item.Description, terms),
		})
		signals = append(signals, domain.SourceSignal{
			Domain:          hostOf(item.URL),
			PublicationYear: publicationYear(item.DatePublished, currentYear),
			// Source-type detection is a declared gap; every provider result
			// scores as unknown.
			Type: domain.SourceTypeUnknown,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	c.cache.put(query, results)

	metrics.TotalTime = time.Since(start).Seconds()
	metrics.ResultsCount = len(results)

	return domain.SearchOutcome{
		Results:    results,
		Metrics:    metrics,
		Confidence: scoring.Confidence(signals, currentYear),
	}
}

type braveResponse struct {
	Web struct {
		Results []braveResult `json:"results"`
	} `json:"web"`
}

type braveResult struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Description   string `json:"description"`
	DatePublished string `json:"date_published"`
}

func (c *Client) request(ctx context.Context, params url.Values) (*braveResponse, error) {
	var out braveResponse
	err := c.exec.Execute(ctx, "brave_search", func(ctx context.Context) error {
		select {
		case c.sem <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
		defer func() { <-c.sem }()

		return c.get(ctx, params, &out)
	}, classifySearchError)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("X-Subscription-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			Operation:  "search",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode search response: %w", err)
	}
	return nil
}

// sanitizeQuery collapses whitespace runs to single spaces.
func sanitizeQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// queryModifiers maps role-context keyword categories to the single canonical
// modifier prepended per matching category, in table order.
var queryModifiers = []struct {
	keywords []string
	modifier string
}{
	{[]string{"fact check", "verify", "evidence"}, "fact check"},
	{[]string{"research paper", "academic", "study"}, "research paper"},
	{[]string{"technical documentation", "api", "implementation"}, "technical documentation"},
	{[]string{"news", "recent", "current events"}, "news"},
	{[]string{"analysis", "insights", "expert opinion"}, "analysis"},
}

func enhanceQuery(query, roleContext string) string {
	roleTerms := strings.ToLower(roleContext)

	var modifiers []string
	for _, category := range queryModifiers {
		for _, keyword := range category.keywords {
			if strings.Contains(roleTerms, keyword) {
				modifiers = append(modifiers, category.modifier)
				break
			}
		}
	}

	if len(modifiers) == 0 {
		return query
	}
	return strings.Join(modifiers, " ") + " " + query
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

// publicationYear reads the leading year of a provider date string, falling
// back to the current year when the provider sent nothing usable.
func publicationYear(datePublished string, currentYear int) int {
	if len(datePublished) >= 4 {
		if year, err := strconv.Atoi(datePublished[:4]); err == nil && year > 0 {
			return year
		}
	}
	return currentYear
}
