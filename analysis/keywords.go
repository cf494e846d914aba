package analysis

import (
	"regexp"
	"slices"
	"unicode/utf8"

	"mercadolibre-insights/lexicon"
)

const maxKeywords = 5

// wordRegexp matches runs of Unicode letters, digits and underscores.
var wordRegexp = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// ExtractKeywords returns up to five of the most frequent non-stop-word terms
// in text. Equal counts keep the order in which the words first appeared.
func ExtractKeywords(text string) []string {
	if text == "" {
		return []string{}
	}

	counts := make(map[string]int)
	var order []string
	for _, w := range wordRegexp.FindAllString(lower(text), -1) {
		if utf8.RuneCountInString(w) <= 1 || lexicon.IsStopWord(w) {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	if order == nil {
		return []string{}
	}
	return order
}
