package role

import (
	"context"
	"fmt"
	"strings"

	"github.com/neuralnexus/assistant/internal/core/domain"
	"github.com/neuralnexus/assistant/internal/core/ports"
)

// Runtime binds one persona definition to the shared search and completion
// clients. A Runtime is ready as soon as construction succeeds; constructing
// one without its clients is a configuration error.
type Runtime struct {
	def    Definition
	search ports.SearchService
	llm    ports.CompletionService
}

func NewRuntime(def Definition, search ports.SearchService, llm ports.CompletionService) (*Runtime, error) {
	if search == nil || llm == nil {
		return nil, domain.WrapError(domain.ErrNotConfigured, "role "+def.Key,
			fmt.Errorf("search and completion clients are required"))
	}
	return &Runtime{def: def, search: search, llm: llm}, nil
}

func (r *Runtime) Definition() Definition { return r.def }

func (r *Runtime) Info() ports.RoleInfo {
	return ports.RoleInfo{
		Key:              r.def.Key,
		Name:             r.def.Name,
		Description:      r.def.Description,
		InputLabel:       r.def.UI.InputLabel,
		InputHelp:        r.def.UI.InputHelp,
		InputPlaceholder: r.def.UI.InputPlaceholder,
		SubmitLabel:      r.def.UI.SubmitLabel,
	}
}

// ProcessQuery runs the persona's pipeline: search with the persona's hint,
// complete with its system prompt and parser, then assemble the display
// answer. Search failures degrade to an empty evidence set and surface via
// the returned metrics; completion failures abort the query.
func (r *Runtime) ProcessQuery(ctx context.Context, query string) (string, domain.SearchMetrics, error) {
	outcome := r.search.Search(ctx, query, r.def.SearchHint)

	response, err := r.llm.Complete(ctx, r.def.SystemPrompt, query, outcome.Results, r.def.Parser())
	if err != nil {
		return "", outcome.Metrics, err
	}

	return r.assemble(query, outcome, response.RawText), outcome.Metrics, nil
}

func (r *Runtime) assemble(query string, outcome domain.SearchOutcome, rawText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.def.Theme.Title)

	if r.def.Theme.QueryHeading != "" {
		fmt.Fprintf(&b, "### %s\n**\"%s\"**\n\n", r.def.Theme.QueryHeading, query)
	}
	if r.def.OpinionCheck && IsOpinionBased(query) {
		b.WriteString("⚠️ **Opinion-based question:** answers reflect subjective judgment, not only verifiable fact.\n\n")
	}
	b.WriteString(ConfidenceBanner(outcome.Confidence.Score, outcome.Confidence.Reasons))
	b.WriteString("\n")

	if r.def.Theme.BodyHeading != "" {
		fmt.Fprintf(&b, "### %s\n", r.def.Theme.BodyHeading)
	}
	b.WriteString(rawText)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "### %s\n", r.def.Theme.EvidenceHeading)
	b.WriteString(evidenceList(outcome.Results))
	return b.String()
}

// evidenceList renders search results as a numbered markdown list, keeping
// the first occurrence of each URL and trimming the Wikipedia title suffix.
func evidenceList(results []domain.SearchResult) string {
	var b strings.Builder
	seen := make(map[string]bool, len(results))
	n := 0
	for _, result := range results {
		if seen[result.URL] {
			continue
		}
		seen[result.URL] = true
		n++
		title := strings.ReplaceAll(result.Title, " - Wikipedia", "")
		fmt.Fprintf(&b, "%d. **[%s](%s)**\n   _%s_\n\n", n, title, result.URL, result.Description)
	}
	return b.String()
}
