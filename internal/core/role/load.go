package role

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed roles.yaml
var rolesYAML []byte

// Load decodes the embedded persona definitions and validates them. Called
// once at bootstrap; a broken definition file is a build artifact problem and
// fails startup.
func Load() ([]Definition, error) {
	var doc struct {
		Roles []Definition `yaml:"roles"`
	}
	if err := yaml.Unmarshal(rolesYAML, &doc); err != nil {
		return nil, fmt.Errorf("decode role definitions: %w", err)
	}
	if len(doc.Roles) == 0 {
		return nil, fmt.Errorf("role definitions: no roles declared")
	}

	seen := make(map[string]bool, len(doc.Roles))
	for _, def := range doc.Roles {
		if err := validate(def); err != nil {
			return nil, fmt.Errorf("role definitions: %w", err)
		}
		if seen[def.Key] {
			return nil, fmt.Errorf("role definitions: duplicate key %q", def.Key)
		}
		seen[def.Key] = true
	}
	return doc.Roles, nil
}

func validate(def Definition) error {
	if def.Key == "" {
		return fmt.Errorf("role %q has no key", def.Name)
	}
	if def.Name == "" || def.SystemPrompt == "" {
		return fmt.Errorf("role %q is missing name or system prompt", def.Key)
	}
	if len(def.Sections) == 0 {
		return fmt.Errorf("role %q declares no sections", def.Key)
	}
	headers := make(map[string]bool, len(def.Sections))
	fields := make(map[string]bool, len(def.Sections))
	for _, rule := range def.Sections {
		if rule.Header == "" || rule.Field == "" {
			return fmt.Errorf("role %q has a section with an empty header or field", def.Key)
		}
		if headers[rule.Header] || fields[rule.Field] {
			return fmt.Errorf("role %q declares section %q twice", def.Key, rule.Header)
		}
		headers[rule.Header] = true
		fields[rule.Field] = true
	}
	if def.Theme.Title == "" || def.Theme.EvidenceHeading == "" {
		return fmt.Errorf("role %q is missing theme headings", def.Key)
	}
	return nil
}
