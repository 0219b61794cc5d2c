package role

import "strings"

// ParseSections extracts the persona's declared sections from the model's
// raw text with a single line scan. A header line switches the current
// section and seeds it from the remainder of that line; later lines append
// to the current scalar section or, for list sections, become entries with
// any leading "- " bullet stripped. Unrecognized leading text is ignored.
// Every declared field is always present in the result, defaulted to "" or
// an empty slice, so malformed input degrades instead of failing.
func ParseSections(rawText string, rules []SectionRule) map[string]any {
	sections := make(map[string]any, len(rules))
	for _, rule := range rules {
		if rule.List {
			sections[rule.Field] = []string{}
		} else {
			sections[rule.Field] = ""
		}
	}

	var current SectionRule
	active := false
	for _, line := range strings.Split(rawText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if rule, rest, ok := matchHeader(trimmed, rules); ok {
			current, active = rule, true
			if rest == "" {
				continue
			}
			if rule.List {
				sections[rule.Field] = append(sections[rule.Field].([]string), stripBullet(rest))
			} else {
				sections[rule.Field] = rest
			}
			continue
		}
		if !active {
			continue
		}

		if current.List {
			sections[current.Field] = append(sections[current.Field].([]string), stripBullet(trimmed))
			continue
		}
		if prev := sections[current.Field].(string); prev == "" {
			sections[current.Field] = trimmed
		} else {
			sections[current.Field] = prev + "\n" + trimmed
		}
	}
	return sections
}

func matchHeader(line string, rules []SectionRule) (SectionRule, string, bool) {
	for _, rule := range rules {
		if strings.HasPrefix(line, rule.Header+":") {
			return rule, strings.TrimSpace(line[len(rule.Header)+1:]), true
		}
	}
	return SectionRule{}, "", false
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, "- "))
}
