package domain

// SourceType classifies the publication channel of a search source.
type SourceType string

const (
	SourceTypeAcademic SourceType = "academic"
	SourceTypeNews     SourceType = "news"
	SourceTypeBlog     SourceType = "blog"
	SourceTypeForum    SourceType = "forum"
	SourceTypeUnknown  SourceType = "unknown"
)

// SearchResult is one ranked hit from the search provider. Immutable once
// constructed; uniqueness within a response is by URL.
type SearchResult struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Description    string  `json:"description"`
	QueryTime      float64 `json:"query_time_seconds"`
	RelevanceScore float64 `json:"relevance_score"`
}

// SourceSignal is the ephemeral per-result record used for quality scoring.
// It is discarded once confidence has been computed.
type SourceSignal struct {
	Domain          string
	PublicationYear int
	Type            SourceType
}

// SearchMetrics tracks a single search invocation. TotalTime is set exactly
// once per call path, success or failure.
type SearchMetrics struct {
	TotalTime    float64 `json:"total_time_seconds"`
	CacheHit     bool    `json:"cache_hit"`
	ResultsCount int     `json:"results_count"`
	Error        string  `json:"error,omitempty"`
}

// ConfidenceResult is the aggregate trust assessment over a batch of sources.
type ConfidenceResult struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// SearchOutcome bundles everything a single search call produces.
type SearchOutcome struct {
	Results    []SearchResult
	Metrics    SearchMetrics
	Confidence ConfidenceResult
}
