package ports

import (
	"context"

	"github.com/neuralnexus/assistant/internal/core/domain"
)

// SearchService performs one search-provider round trip, including query
// enhancement, relevance ranking, and confidence aggregation. Failures are
// swallowed into SearchOutcome.Metrics.Error rather than returned.
type SearchService interface {
	Search(ctx context.Context, query, roleContext string) domain.SearchOutcome
}

// CompletionService issues one chat completion and parses it with the role's
// section parser. Provider errors propagate to the caller.
type CompletionService interface {
	Complete(ctx context.Context, systemPrompt, userQuery string, results []domain.SearchResult, parser domain.SectionParser) (*domain.LLMResponse, error)
}
