package match

import "strings"

// bulletMarkers are the list prefixes the summary model is known to emit.
var bulletMarkers = []string{"- ", "* ", "• "}

// ParseSummarySentences extracts the ability sentences from the raw summary.
// Only bullet lines count; headings and blank lines are dropped. The career
// line uses "->" between positions, which reads poorly as an embedding input,
// so arrows are folded into comma-joined text.
func ParseSummarySentences(summary string) []string {
	var sentences []string
	for _, line := range strings.Split(summary, "\n") {
		line = strings.TrimSpace(line)

		var body string
		for _, marker := range bulletMarkers {
			if strings.HasPrefix(line, marker) {
				body = strings.TrimSpace(strings.TrimPrefix(line, marker))
				break
			}
		}
		if body == "" {
			continue
		}

		body = foldCareerArrows(body)
		sentences = append(sentences, body)
	}
	return sentences
}

func foldCareerArrows(s string) string {
	if !strings.Contains(s, "->") && !strings.Contains(s, "→") {
		return s
	}
	s = strings.ReplaceAll(s, "->", "\x00")
	s = strings.ReplaceAll(s, "→", "\x00")
	parts := strings.Split(s, "\x00")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
