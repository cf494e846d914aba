// Package analysis scores review and description text against the fixed
// lexicon tables. All matching is plain substring containment on the
// lower-cased text, so a term also matches inside a longer word ("mal" in
// "animal"); results must stay reproducible, so this is not tokenised.
package analysis

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mercadolibre-insights/models"
)

// Sentiment labels.
const (
	Positive = "positive"
	Neutral  = "neutral"
	Negative = "negative"
)

const polarityThreshold = 0.2

// lower folds s with Spanish casing rules. A Caser keeps state, so one is
// built per call.
func lower(s string) string {
	return cases.Lower(language.Spanish).String(s)
}

func isBlank(text string) bool {
	return text == "" || text == models.NotAvailable
}

// countPresent returns how many terms occur anywhere in text.
func countPresent(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func polarity(pos, neg int) float64 {
	total := pos + neg
	if total == 0 {
		return 0
	}
	return float64(pos-neg) / float64(total)
}

func label(p float64) string {
	switch {
	case p > polarityThreshold:
		return Positive
	case p < -polarityThreshold:
		return Negative
	default:
		return Neutral
	}
}

func confidence(pos, neg int) float64 {
	return min(1.0, float64(pos+neg)/10)
}
