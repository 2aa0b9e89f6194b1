package signals

import "strings"

// Markers is the declarative table of textual markers scanned in commit
// messages and added diff lines. Matching is case-insensitive.
type Markers struct {
	Breaking []string `koanf:"breaking" json:"breaking"`
	Security []string `koanf:"security" json:"security"`
}

// DefaultMarkers returns the built-in marker token tables.
func DefaultMarkers() Markers {
	return Markers{
		Breaking: []string{
			"breaking change",
			"breaking-change",
			"backwards incompatible",
			"backward incompatible",
			"api break",
		},
		Security: []string{
			"security",
			"cve-",
			"vulnerability",
			"exploit",
			"denial of service",
			"injection",
		},
	}
}

// countTokens sums the occurrences of every token in text.
func countTokens(text string, tokens []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, token := range tokens {
		count += strings.Count(lower, strings.ToLower(token))
	}
	return count
}

// containsToken reports whether text contains any of the tokens.
func containsToken(text string, tokens []string) bool {
	lower := strings.ToLower(text)
	for _, token := range tokens {
		if strings.Contains(lower, strings.ToLower(token)) {
			return true
		}
	}
	return false
}
