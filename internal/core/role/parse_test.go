package role

import (
	"reflect"
	"testing"
)

var factCheckRules = []SectionRule{
	{Header: "VERDICT", Field: "verdict", Label: "Verdict"},
	{Header: "CONFIDENCE LEVEL", Field: "confidence_level", Label: "Confidence Level"},
	{Header: "OPINION WARNING", Field: "opinion_warning", Label: "Opinion Warning"},
	{Header: "EXPLANATION", Field: "explanation", Label: "Explanation"},
	{Header: "CONTEXT", Field: "context", Label: "Additional Context"},
	{Header: "REFERENCES", Field: "references", Label: "References", List: true},
}

func TestParseSectionsRoundTrip(t *testing.T) {
	raw := "VERDICT: TRUE\nEXPLANATION: because X\nCONTEXT: extra\nREFERENCES:\n- http://a.example\n- http://b.example"

	parsed := ParseSections(raw, factCheckRules)

	if parsed["verdict"] != "TRUE" {
		t.Errorf("verdict = %v", parsed["verdict"])
	}
	if parsed["explanation"] != "because X" {
		t.Errorf("explanation = %v", parsed["explanation"])
	}
	if parsed["context"] != "extra" {
		t.Errorf("context = %v", parsed["context"])
	}
	want := []string{"http://a.example", "http://b.example"}
	if !reflect.DeepEqual(parsed["references"], want) {
		t.Errorf("references = %v, want %v", parsed["references"], want)
	}
}

func TestParseSectionsScalarContinuation(t *testing.T) {
	rules := []SectionRule{
		{Header: "SUMMARY", Field: "summary"},
		{Header: "ANALYSIS", Field: "analysis"},
	}
	raw := "SUMMARY: short answer\nANALYSIS: first line\nsecond line\n\nthird line"

	parsed := ParseSections(raw, rules)

	if parsed["summary"] != "short answer" {
		t.Errorf("summary = %v", parsed["summary"])
	}
	if parsed["analysis"] != "first line\nsecond line\nthird line" {
		t.Errorf("analysis = %q", parsed["analysis"])
	}
}

func TestParseSectionsMalformedInputDefaults(t *testing.T) {
	parsed := ParseSections("no headers here\njust prose", factCheckRules)

	for _, rule := range factCheckRules {
		if rule.List {
			if entries := parsed[rule.Field].([]string); len(entries) != 0 {
				t.Errorf("%s = %v, want empty", rule.Field, entries)
			}
		} else if parsed[rule.Field] != "" {
			t.Errorf("%s = %v, want empty string", rule.Field, parsed[rule.Field])
		}
	}
}

func TestParseSectionsListWithoutBullets(t *testing.T) {
	rules := []SectionRule{{Header: "INSPIRATION", Field: "inspiration", List: true}}

	parsed := ParseSections("INSPIRATION:\nthe sea\nold maps", rules)

	want := []string{"the sea", "old maps"}
	if !reflect.DeepEqual(parsed["inspiration"], want) {
		t.Errorf("inspiration = %v, want %v", parsed["inspiration"], want)
	}
}
