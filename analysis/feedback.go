package analysis

import (
	"strings"

	"mercadolibre-insights/lexicon"
	"mercadolibre-insights/models"
)

const maxFeedbackSentences = 5

// FeedbackClassifier sorts review texts into satisfaction levels and themes
// and pulls out sentences that report issues, praise or suggestions.
type FeedbackClassifier struct {
	levels      []lexicon.Group
	themes      []lexicon.Group
	issues      []string
	praise      []string
	suggestions []string
}

func NewFeedbackClassifier() *FeedbackClassifier {
	return &FeedbackClassifier{
		levels:      lexicon.SatisfactionLevels(),
		themes:      lexicon.Themes(),
		issues:      lexicon.IssueIndicators(),
		praise:      lexicon.PraiseIndicators(),
		suggestions: lexicon.SuggestionIndicators(),
	}
}

// Classify summarises texts. Empty and unknown texts are skipped.
func (c *FeedbackClassifier) Classify(texts []string) models.FeedbackSummary {
	summary := models.FeedbackSummary{
		SatisfactionLevels: make(map[string]int, len(c.levels)),
		CommonThemes:       make(map[string]int),
	}
	for _, l := range c.levels {
		summary.SatisfactionLevels[l.Name] = 0
	}

	var issues, praise, suggestions []string
	for _, text := range texts {
		if isBlank(text) {
			continue
		}
		lowered := lower(text)

		// First matching level wins; a text may match none.
		for _, l := range c.levels {
			if containsAny(lowered, l.Words) {
				summary.SatisfactionLevels[l.Name]++
				break
			}
		}

		for _, th := range c.themes {
			if containsAny(lowered, th.Words) {
				summary.CommonThemes[th.Name]++
			}
		}

		issues = append(issues, matchingSentences(text, lowered, c.issues)...)
		praise = append(praise, matchingSentences(text, lowered, c.praise)...)
		suggestions = append(suggestions, matchingSentences(text, lowered, c.suggestions)...)
	}

	summary.SpecificIssues = uniqueFirst(issues, maxFeedbackSentences)
	summary.PraisePoints = uniqueFirst(praise, maxFeedbackSentences)
	summary.Suggestions = uniqueFirst(suggestions, maxFeedbackSentences)
	return summary
}

// matchingSentences splits text on periods and returns the trimmed sentences
// containing any indicator.
func matchingSentences(text, lowered string, indicators []string) []string {
	if !containsAny(lowered, indicators) {
		return nil
	}
	var out []string
	for _, sentence := range strings.Split(text, ".") {
		if containsAny(lower(sentence), indicators) {
			out = append(out, strings.TrimSpace(sentence))
		}
	}
	return out
}

// uniqueFirst drops repeated sentences and keeps at most limit of them.
func uniqueFirst(items []string, limit int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, min(len(items), limit))
	for _, it := range items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
		if len(out) == limit {
			break
		}
	}
	return out
}
