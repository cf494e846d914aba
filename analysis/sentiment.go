package analysis

import (
	"math"
	"slices"
	"strings"

	"mercadolibre-insights/lexicon"
	"mercadolibre-insights/models"
)

const (
	phraseWindow  = 5
	maxKeyPhrases = 5
)

// SentimentAnalyzer scores a single text for polarity, emotions, topical
// context and trend.
type SentimentAnalyzer struct {
	positive []string
	negative []string
	all      []string
	emotions []lexicon.Emotion
	contexts []lexicon.Context
	trends   []lexicon.Group
}

// NewSentimentAnalyzer snapshots the lexicon tables it matches against.
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{
		positive: lexicon.PositiveWords(),
		negative: lexicon.NegativeWords(),
		all:      lexicon.SentimentWords(),
		emotions: lexicon.Emotions(),
		contexts: lexicon.Contexts(),
		trends:   lexicon.TrendIndicators(),
	}
}

// NeutralResult is what Analyze returns for empty or unknown text.
func NeutralResult() models.SentimentResult {
	return models.SentimentResult{
		Sentiment:         Neutral,
		KeyPhrases:        []string{},
		Emotions:          map[string]float64{},
		DominantEmotion:   Neutral,
		ContextSentiment:  map[string]models.ContextScore{},
		SentimentTrend:    Neutral,
		ContextualPhrases: []models.ContextualPhrase{},
	}
}

// Analyze scores text. It never fails; text with no lexicon hits comes back
// neutral with zero scores.
func (a *SentimentAnalyzer) Analyze(text string) models.SentimentResult {
	if isBlank(text) {
		return NeutralResult()
	}

	lowered := lower(text)
	tokens := strings.Fields(lowered)

	pos := countPresent(lowered, a.positive)
	neg := countPresent(lowered, a.negative)
	p := polarity(pos, neg)

	emotions, dominant, intensity := a.scoreEmotions(lowered)
	phrases := a.contextualPhrases(lowered, tokens)

	keyPhrases := make([]string, len(phrases))
	for i, ph := range phrases {
		keyPhrases[i] = ph.Phrase
	}

	return models.SentimentResult{
		Sentiment:          label(p),
		Polarity:           p,
		Subjectivity:       a.subjectivity(lowered, tokens),
		Confidence:         confidence(pos, neg),
		KeyPhrases:         keyPhrases,
		Emotions:           emotions,
		DominantEmotion:    dominant,
		EmotionalIntensity: intensity,
		ContextSentiment:   a.contextScores(tokens),
		SentimentTrend:     a.trend(lowered),
		ContextualPhrases:  phrases,
	}
}

// AnalyzeContext runs only the positive/negative count over text.
func (a *SentimentAnalyzer) AnalyzeContext(text string) models.ContextScore {
	if text == "" {
		return models.ContextScore{Sentiment: Neutral}
	}
	lowered := lower(text)
	pos := countPresent(lowered, a.positive)
	neg := countPresent(lowered, a.negative)
	p := polarity(pos, neg)
	return models.ContextScore{
		Sentiment:  label(p),
		Polarity:   p,
		Confidence: confidence(pos, neg),
	}
}

// subjectivity is the share of tokens taken by lexicon hits, capped at 1:
// with substring matching one token can hold several terms ("malo" holds
// "mal" too).
func (a *SentimentAnalyzer) subjectivity(lowered string, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	hits := countPresent(lowered, a.all)
	return min(1.0, float64(hits)/float64(len(tokens)))
}

func (a *SentimentAnalyzer) scoreEmotions(lowered string) (map[string]float64, string, float64) {
	scores := make([]float64, len(a.emotions))
	for i, e := range a.emotions {
		for _, w := range e.Words {
			if strings.Contains(lowered, w) {
				scores[i] += e.Intensity
			}
		}
	}

	var total float64
	for _, s := range scores {
		total += math.Abs(s)
	}
	if total > 0 {
		for i := range scores {
			scores[i] /= total
		}
	}

	out := make(map[string]float64, len(scores))
	dominant := Neutral
	best := math.Inf(-1)
	var intensity float64
	signal := false
	for i, e := range a.emotions {
		out[e.Name] = scores[i]
		intensity += math.Abs(scores[i])
		if scores[i] != 0 {
			signal = true
		}
		if scores[i] > best {
			best = scores[i]
			dominant = e.Name
		}
	}
	if !signal {
		dominant = Neutral
	}
	return out, dominant, intensity
}

func (a *SentimentAnalyzer) contextScores(tokens []string) map[string]models.ContextScore {
	out := make(map[string]models.ContextScore)
	for _, c := range a.contexts {
		var relevant []string
		for _, tok := range tokens {
			if containsAny(tok, c.Keywords) {
				relevant = append(relevant, tok)
			}
		}
		if len(relevant) == 0 {
			continue
		}
		score := a.AnalyzeContext(strings.Join(relevant, " "))
		score.Polarity *= c.Weight
		out[c.Name] = score
	}
	return out
}

func (a *SentimentAnalyzer) trend(lowered string) string {
	trend := Neutral
	best := 0
	for _, g := range a.trends {
		if n := countPresent(lowered, g.Words); n > best {
			best = n
			trend = g.Name
		}
	}
	return trend
}

// contextualPhrases builds a phrase for every lexicon term that is also a
// whole token, then keeps the five with the most lexicon words around them.
func (a *SentimentAnalyzer) contextualPhrases(lowered string, tokens []string) []models.ContextualPhrase {
	var phrases []models.ContextualPhrase
	for _, w := range a.all {
		if !strings.Contains(lowered, w) {
			continue
		}
		idx := slices.Index(tokens, w)
		if idx < 0 {
			continue
		}
		start := max(0, idx-phraseWindow)
		end := min(len(tokens), idx+phraseWindow+1)
		window := tokens[start:end]

		context := []string{}
		for _, tok := range window {
			if lexicon.IsSentimentWord(tok) {
				context = append(context, tok)
			}
		}
		phrases = append(phrases, models.ContextualPhrase{
			Phrase:           strings.Join(window, " "),
			SentimentContext: context,
			Position:         float64(idx) / float64(len(tokens)),
		})
	}

	slices.SortStableFunc(phrases, func(x, y models.ContextualPhrase) int {
		return len(y.SentimentContext) - len(x.SentimentContext)
	})
	if len(phrases) > maxKeyPhrases {
		phrases = phrases[:maxKeyPhrases]
	}
	if phrases == nil {
		phrases = []models.ContextualPhrase{}
	}
	return phrases
}
