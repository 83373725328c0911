package ingestion

import (
	"regexp"
	"strings"
)

// Match is the outcome of resolving a raw column header against the field
// dictionary.
type Match struct {
	Field      CanonicalField
	Category   Category
	Confidence Confidence
}

var headerSeparators = regexp.MustCompile(`[\s_\-]+`)

// normalizeHeaderText lowercases a header and collapses runs of whitespace,
// underscores and hyphens into single spaces so that "Employee_Name",
// "employee-name" and "Employee  Name" all compare equal.
func normalizeHeaderText(s string) string {
	return strings.TrimSpace(headerSeparators.ReplaceAllString(strings.ToLower(s), " "))
}

// Normalize resolves one raw header string to its best canonical field.
//
// Match rules are tried in priority order over the whole dictionary: an exact
// variant match (high confidence) beats a substring match in either direction
// (medium), which beats a fuzzy word-overlap match (low). Within one rule the
// first field in dictionary declaration order wins. An unmatched header is an
// expected outcome, not an error: ok is false and the column stays unmapped.
func Normalize(header string) (Match, bool) {
	input := normalizeHeaderText(header)
	if input == "" {
		return Match{}, false
	}

	for _, spec := range fieldDictionary {
		for _, variant := range spec.Variants {
			if input == normalizeHeaderText(variant) {
				return Match{Field: spec.Field, Category: spec.Category, Confidence: ConfidenceHigh}, true
			}
		}
	}

	for _, spec := range fieldDictionary {
		for _, variant := range spec.Variants {
			v := normalizeHeaderText(variant)
			if strings.Contains(input, v) || strings.Contains(v, input) {
				return Match{Field: spec.Field, Category: spec.Category, Confidence: ConfidenceMedium}, true
			}
		}
	}

	for _, spec := range fieldDictionary {
		for _, variant := range spec.Variants {
			if fuzzyHeaderMatch(input, normalizeHeaderText(variant)) {
				return Match{Field: spec.Field, Category: spec.Category, Confidence: ConfidenceLow}, true
			}
		}
	}

	return Match{}, false
}

// fuzzyHeaderMatch strips stopwords from both sides, then counts how many
// words have a substring counterpart on the other side. A ratio at or above
// fuzzyMatchThreshold is treated as a match.
func fuzzyHeaderMatch(a, b string) bool {
	wordsA := significantWords(a)
	wordsB := significantWords(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}

	matched := 0
	for _, wa := range wordsA {
		for _, wb := range wordsB {
			if strings.Contains(wa, wb) || strings.Contains(wb, wa) {
				matched++
				break
			}
		}
	}

	longer := len(wordsA)
	if len(wordsB) > longer {
		longer = len(wordsB)
	}
	return float64(matched)/float64(longer) >= fuzzyMatchThreshold
}

func significantWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(s) {
		if isStopword(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

func isStopword(w string) bool {
	for _, sw := range fuzzyStopwords {
		if w == sw {
			return true
		}
	}
	return false
}
