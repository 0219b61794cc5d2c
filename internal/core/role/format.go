package role

import (
	"fmt"
	"regexp"
	"strings"
)

// opinionIndicators flag queries that ask for a judgment rather than a fact:
// preference words, moral or aesthetic verdicts, and belief language.
var opinionIndicators = []*regexp.Regexp{
	regexp.MustCompile(`\b(best|better|worst|worse|favorite|prefer)\b`),
	regexp.MustCompile(`\b(should|ought|right|wrong|good|bad)\b`),
	regexp.MustCompile(`\b(beautiful|ugly|nice|pleasant|attractive)\b`),
	regexp.MustCompile(`\b(feel|think|believe|opinion|viewpoint)\b`),
	regexp.MustCompile(`\b(popular|controversial|debatable)\b`),
}

// IsOpinionBased reports whether the query reads as a subjective question.
func IsOpinionBased(query string) bool {
	lowered := strings.ToLower(query)
	for _, indicator := range opinionIndicators {
		if indicator.MatchString(lowered) {
			return true
		}
	}
	return false
}

// ConfidenceLabel maps an aggregate confidence score onto the display scale.
func ConfidenceLabel(score float64) string {
	switch {
	case score >= 0.9:
		return "Very High"
	case score >= 0.7:
		return "High"
	case score >= 0.5:
		return "Moderate"
	case score >= 0.3:
		return "Low"
	default:
		return "Very Low"
	}
}

// ConfidenceBanner renders the confidence score and its reasons as a single
// markdown block.
func ConfidenceBanner(score float64, reasons []string) string {
	return fmt.Sprintf("🎯 **Confidence Level: %s**\n*%s*\n", ConfidenceLabel(score), strings.Join(reasons, ", "))
}

// Render turns parsed sections into display markup: one block per declared
// section that extracted non-empty, headed with the persona's accent color.
// List entries that look like URLs become links. When nothing extracted the
// raw text is returned verbatim so the user never sees an empty answer.
func Render(def Definition, rawText string) string {
	parsed := ParseSections(rawText, def.Sections)

	var blocks []string
	for _, rule := range def.Sections {
		switch value := parsed[rule.Field].(type) {
		case string:
			if value == "" {
				continue
			}
			blocks = append(blocks, fmt.Sprintf("## <span style='color: %s'>%s</span>\n\n%s",
				def.Theme.AccentColor, rule.Label, value))
		case []string:
			if len(value) == 0 {
				continue
			}
			var b strings.Builder
			fmt.Fprintf(&b, "## <span style='color: %s'>%s</span>\n", def.Theme.AccentColor, rule.Label)
			for _, entry := range value {
				fmt.Fprintf(&b, "\n- %s", linkify(entry))
			}
			blocks = append(blocks, b.String())
		}
	}

	if len(blocks) == 0 {
		return rawText
	}
	return strings.Join(blocks, "\n\n")
}

func linkify(entry string) string {
	if strings.HasPrefix(entry, "http://") || strings.HasPrefix(entry, "https://") {
		return fmt.Sprintf("[%s](%s)", entry, entry)
	}
	return entry
}
