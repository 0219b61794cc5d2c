package scoring

import (
	"testing"

	"github.com/neuralnexus/assistant/internal/core/domain"
)

func TestRelevanceNoTermPresent(t *testing.T) {
	got := Relevance("Rust memory model", "ownership and borrowing", []string{"coffee", "commodity"})
	if got != 0 {
		t.Fatalf("expected zero relevance, got %f", got)
	}
}

func TestRelevanceEmptyTerms(t *testing.T) {
	if got := Relevance("anything", "at all", nil); got != 0 {
		t.Fatalf("expected zero relevance for empty terms, got %f", got)
	}
}

func TestRelevancePartialMatch(t *testing.T) {
	got := Relevance("Coffee prices rise", "global markets react", []string{"coffee", "commodity"})
	if got != 0.5 {
		t.Fatalf("expected 0.5, got %f", got)
	}
}

func TestRelevanceExactPhraseBoostIsClamped(t *testing.T) {
	got := Relevance("Is coffee traded widely", "coffee traded on markets", []string{"coffee", "traded"})
	if got != 1 {
		t.Fatalf("expected phrase-boosted relevance clamped to 1, got %f", got)
	}
}

func TestRelevanceCaseInsensitive(t *testing.T) {
	got := Relevance("COFFEE Facts", "", []string{"Coffee"})
	if got != 1 {
		t.Fatalf("expected 1, got %f", got)
	}
}

func TestSourceQualityBounds(t *testing.T) {
	year := 2026
	signals := []domain.SourceSignal{
		{Domain: "mit.edu", PublicationYear: 2026, Type: domain.SourceTypeAcademic},
		{Domain: "example.com", PublicationYear: 1990, Type: domain.SourceTypeForum},
		{Domain: "weird.xyz", PublicationYear: 2030, Type: "podcast"},
		{Domain: "", PublicationYear: 0, Type: ""},
	}
	for _, sig := range signals {
		got := SourceQuality(sig, year)
		if got < 0 || got > 1 {
			t.Fatalf("quality out of range for %+v: %f", sig, got)
		}
	}
}

func TestSourceQualityDomainReputation(t *testing.T) {
	year := 2026
	edu := SourceQuality(domain.SourceSignal{Domain: "mit.edu", PublicationYear: year, Type: domain.SourceTypeUnknown}, year)
	xyz := SourceQuality(domain.SourceSignal{Domain: "weird.xyz", PublicationYear: year, Type: domain.SourceTypeUnknown}, year)
	if edu <= xyz {
		t.Fatalf("expected edu (%f) to outrank unknown TLD (%f)", edu, xyz)
	}

	// current-year edu source of unknown type: (0.9 + 0.3 + 0.2) / 2
	if diff := edu - 0.7; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected 0.7 for fresh edu source, got %f", edu)
	}
}

func TestSourceQualityMultiLabelSuffix(t *testing.T) {
	year := 2026
	got := SourceQuality(domain.SourceSignal{Domain: "physics.ox.ac.uk", PublicationYear: year, Type: domain.SourceTypeUnknown}, year)
	// "ac.uk" resolves to the "uk" label, which has no reputation entry.
	want := (0.3 + 0.3 + 0.2) / 2.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestSourceQualityFreshnessDecay(t *testing.T) {
	year := 2026
	fresh := SourceQuality(domain.SourceSignal{Domain: "example.org", PublicationYear: 2026, Type: domain.SourceTypeNews}, year)
	stale := SourceQuality(domain.SourceSignal{Domain: "example.org", PublicationYear: 2006, Type: domain.SourceTypeNews}, year)
	if fresh <= stale {
		t.Fatalf("expected fresh (%f) to outrank twenty-year-old source (%f)", fresh, stale)
	}
}
