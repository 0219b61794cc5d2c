// Package role implements the persona layer of the answer pipeline. Personas
// are declarative: an embedded YAML document defines each role's system
// prompt, search hint, section schema, theme, and UI metadata, and a single
// generic engine handles parsing and rendering for all of them.
package role

import (
	"github.com/neuralnexus/assistant/internal/core/domain"
)

// SectionRule declares one header the model is instructed to emit and where
// its content lands in the parsed mapping.
type SectionRule struct {
	Header string `yaml:"header"`
	Field  string `yaml:"field"`
	Label  string `yaml:"label"`
	List   bool   `yaml:"list"`
}

// Theme carries the persona's display framing. QueryHeading and BodyHeading
// are optional sub-headings: when set, the rendered answer echoes the query
// under QueryHeading and introduces the model text under BodyHeading.
type Theme struct {
	AccentColor     string `yaml:"accent_color"`
	Title           string `yaml:"title"`
	QueryHeading    string `yaml:"query_heading"`
	BodyHeading     string `yaml:"body_heading"`
	EvidenceHeading string `yaml:"evidence_heading"`
}

// UIMeta is presentation metadata handed to the UI layer untouched.
type UIMeta struct {
	InputLabel       string `yaml:"input_label"`
	InputHelp        string `yaml:"input_help"`
	InputPlaceholder string `yaml:"input_placeholder"`
	SubmitLabel      string `yaml:"submit_label"`
}

// Definition is one persona. Definitions are immutable after load.
type Definition struct {
	Key          string        `yaml:"key"`
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	SystemPrompt string        `yaml:"system_prompt"`
	SearchHint   string        `yaml:"search_hint"`
	OpinionCheck bool          `yaml:"opinion_check"`
	Sections     []SectionRule `yaml:"sections"`
	Theme        Theme         `yaml:"theme"`
	UI           UIMeta        `yaml:"ui"`
}

// Parser returns the section parser bound to this persona's schema.
func (d Definition) Parser() domain.SectionParser {
	return func(rawText string) map[string]any {
		return ParseSections(rawText, d.Sections)
	}
}
