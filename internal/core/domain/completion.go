package domain

// LLMResponse is the outcome of one completion call. Parsed holds the
// role-defined section mapping. TokenCostEstimate is total tokens / 1000, a
// cost approximation taken from the provider usage report rather than
// wall-clock latency.
type LLMResponse struct {
	RawText           string         `json:"raw_text"`
	Parsed            map[string]any `json:"parsed"`
	TokenCostEstimate float64        `json:"token_cost_estimate"`
}

// SectionParser turns raw completion text into the role's section mapping.
// Implementations must never panic or return an error for malformed input;
// they default missing sections instead.
type SectionParser func(rawText string) map[string]any
