// Package scoring holds the pure ranking math for the answer pipeline:
// per-result relevance against query terms, per-source quality, and the
// aggregate confidence blend. No I/O happens here.
package scoring

import (
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/neuralnexus/assistant/internal/core/domain"
)

// Relevance scores how strongly a result matches the query terms, in [0,1].
// Counts distinct terms present as substrings of the lower-cased
// title+description, normalized by the term count, with a 1.5x boost when the
// full joined query appears verbatim.
func Relevance(title, description string, queryTerms []string) float64 {
	terms := distinctLower(queryTerms)
	if len(terms) == 0 {
		return 0
	}

	text := strings.ToLower(title + " " + description)

	hits := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			hits++
		}
	}

	relevance := float64(hits) / float64(len(terms))
	if strings.Contains(text, strings.Join(terms, " ")) {
		relevance *= 1.5
	}
	if relevance > 1 {
		return 1
	}
	return relevance
}

// domainReputation maps a top-level domain label to a reputation weight.
// Unlisted TLDs fall back to 0.3.
var domainReputation = map[string]float64{
	"edu": 0.9,
	"gov": 0.9,
	"org": 0.7,
	"com": 0.5,
}

// sourceTypeWeight maps the publication channel to a quality weight.
// Unknown types fall back to 0.2.
var sourceTypeWeight = map[string]float64{
	string(domain.SourceTypeAcademic): 0.9,
	string(domain.SourceTypeNews):     0.6,
	string(domain.SourceTypeBlog):     0.4,
	string(domain.SourceTypeForum):    0.3,
}

// SourceQuality scores one source signal in [0,1]: TLD reputation at full
// weight, freshness decaying linearly over ten years at 0.3 weight, and the
// source-type weight, summed and normalized by 2.0.
func SourceQuality(sig domain.SourceSignal, currentYear int) float64 {
	quality := 0.0

	reputation, ok := domainReputation[topLevelLabel(sig.Domain)]
	if !ok {
		reputation = 0.3
	}
	quality += reputation

	yearsOld := float64(currentYear - sig.PublicationYear)
	freshness := 1 - yearsOld/10
	if freshness < 0 {
		freshness = 0
	}
	quality += freshness * 0.3

	typeWeight, ok := sourceTypeWeight[string(sig.Type)]
	if !ok {
		typeWeight = 0.2
	}
	quality += typeWeight

	return clamp01(quality / 2.0)
}

// topLevelLabel extracts the final label of the host's public suffix, so
// "news.example.ac.uk" yields "uk" and "www.mit.edu" yields "edu".
func topLevelLabel(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return ""
	}
	suffix, _ := publicsuffix.PublicSuffix(host)
	if idx := strings.LastIndex(suffix, "."); idx >= 0 {
		return suffix[idx+1:]
	}
	return suffix
}

func distinctLower(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
