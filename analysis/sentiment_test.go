package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadolibre-insights/models"
)

func TestAnalyzeBlankText(t *testing.T) {
	a := NewSentimentAnalyzer()
	for _, text := range []string{"", models.NotAvailable} {
		assert.Equal(t, NeutralResult(), a.Analyze(text), "text %q", text)
	}
}

func TestAnalyzePositiveReview(t *testing.T) {
	r := NewSentimentAnalyzer().Analyze("Excelente calidad, muy bueno, recomiendo")

	assert.Equal(t, Positive, r.Sentiment)
	assert.Greater(t, r.Polarity, 0.2)
	assert.Equal(t, 1.0, r.Polarity)
	assert.Equal(t, 0.5, r.Confidence)
	assert.Equal(t, 1.0, r.Subjectivity)

	assert.Equal(t, "joy", r.DominantEmotion)
	assert.InDelta(t, 1.0/1.8, r.Emotions["joy"], 1e-9)
	assert.InDelta(t, 0.8/1.8, r.Emotions["anticipation"], 1e-9)
	assert.InDelta(t, 1.0, r.EmotionalIntensity, 1e-9)
	assert.Len(t, r.Emotions, 8)

	require.Contains(t, r.ContextSentiment, "product_quality")
	q := r.ContextSentiment["product_quality"]
	assert.Equal(t, Positive, q.Sentiment)
	assert.InDelta(t, 1.2, q.Polarity, 1e-9)
	assert.InDelta(t, 0.1, q.Confidence, 1e-9)
	assert.NotContains(t, r.ContextSentiment, "price_value")

	assert.Equal(t, Neutral, r.SentimentTrend)

	require.Len(t, r.ContextualPhrases, 2)
	assert.Equal(t, "excelente calidad, muy bueno, recomiendo", r.ContextualPhrases[0].Phrase)
	assert.Equal(t, []string{"excelente", "recomiendo"}, r.ContextualPhrases[0].SentimentContext)
	assert.Equal(t, 0.0, r.ContextualPhrases[0].Position)
	assert.InDelta(t, 0.8, r.ContextualPhrases[1].Position, 1e-9)
	assert.Len(t, r.KeyPhrases, 2)
}

func TestAnalyzeNegativeReview(t *testing.T) {
	r := NewSentimentAnalyzer().Analyze("Terrible, no funciona, pésimo, decepción")

	assert.Equal(t, Negative, r.Sentiment)
	assert.Less(t, r.Polarity, -0.2)
	// "funciona" is also found inside "no funciona".
	assert.InDelta(t, -0.6, r.Polarity, 1e-9)

	strongest, weight := "", 0.0
	for name, score := range r.Emotions {
		if math.Abs(score) > weight {
			strongest, weight = name, math.Abs(score)
		}
	}
	assert.Equal(t, "disgust", strongest)
	assert.InDelta(t, -2.7/3.3, r.Emotions["disgust"], 1e-9)
	assert.InDelta(t, -0.6/3.3, r.Emotions["sadness"], 1e-9)

	require.Len(t, r.ContextualPhrases, 1)
	assert.Equal(t, []string{"decepción"}, r.ContextualPhrases[0].SentimentContext)
}

func TestAnalyzeDominantEmotion(t *testing.T) {
	r := NewSentimentAnalyzer().Analyze("feliz y genial, una sorpresa")
	assert.Equal(t, "joy", r.DominantEmotion)

	r = NewSentimentAnalyzer().Analyze("el envío llegó a tiempo")
	assert.Equal(t, Neutral, r.DominantEmotion)
	assert.Equal(t, 0.0, r.EmotionalIntensity)
	for _, score := range r.Emotions {
		assert.Equal(t, 0.0, score)
	}
}

// Lexicon terms match as substrings, so "mal" is found inside "animal". This
// is the intended, reproducible behaviour.
func TestAnalyzeSubstringMatchingQuirk(t *testing.T) {
	r := NewSentimentAnalyzer().Analyze("un animal de peluche")
	assert.Equal(t, Negative, r.Sentiment)
	assert.Equal(t, -1.0, r.Polarity)
	assert.Empty(t, r.ContextualPhrases, "no token equals a lexicon term")
}

func TestAnalyzeSubjectivityIsCapped(t *testing.T) {
	// "malo" contains both "malo" and "mal".
	r := NewSentimentAnalyzer().Analyze("malo")
	assert.Equal(t, 1.0, r.Subjectivity)
}

func TestAnalyzeTrend(t *testing.T) {
	a := NewSentimentAnalyzer()
	tests := []struct {
		text string
		want string
	}{
		{"mejoró mucho y se mantiene estable", "stable"},
		{"mejoró y es estable", "improving"},
		{"empeoró y después falló", "declining"},
		{"llegó bien", Neutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.Analyze(tt.text).SentimentTrend, tt.text)
	}
}

func TestAnalyzeKeepsTopFivePhrases(t *testing.T) {
	text := "excelente bueno genial perfecto recomiendo recomendado satisfecho contento"
	r := NewSentimentAnalyzer().Analyze(text)
	assert.Len(t, r.ContextualPhrases, 5)
	assert.Len(t, r.KeyPhrases, 5)
	for i := 1; i < len(r.ContextualPhrases); i++ {
		assert.GreaterOrEqual(t,
			len(r.ContextualPhrases[i-1].SentimentContext),
			len(r.ContextualPhrases[i].SentimentContext))
	}
}

func TestAnalyzeBoundsHoldForArbitraryText(t *testing.T) {
	a := NewSentimentAnalyzer()
	texts := []string{
		" ",
		"...",
		"malo mal pésimo",
		"no funciona no recomiendo no recomendado",
		"EXCELENTE!!! muy bien, muy bueno, súper rápido y eficiente",
		"precio caro, atención mala, soporte lento, fácil de usar pero complicado",
		"ÓPTIMO Óptimo óptimo",
		"\t\n",
	}
	for _, text := range texts {
		r := a.Analyze(text)
		assert.GreaterOrEqual(t, r.Polarity, -1.0, text)
		assert.LessOrEqual(t, r.Polarity, 1.0, text)
		assert.GreaterOrEqual(t, r.Confidence, 0.0, text)
		assert.LessOrEqual(t, r.Confidence, 1.0, text)
		assert.GreaterOrEqual(t, r.Subjectivity, 0.0, text)
		assert.LessOrEqual(t, r.Subjectivity, 1.0, text)
		assert.LessOrEqual(t, len(r.KeyPhrases), 5, text)
	}
}

func TestAnalyzeContextWeights(t *testing.T) {
	r := NewSentimentAnalyzer().Analyze("precio caro")
	require.Contains(t, r.ContextSentiment, "price_value")
	pv := r.ContextSentiment["price_value"]
	assert.Equal(t, Negative, pv.Sentiment)
	assert.InDelta(t, -1.0, pv.Polarity, 1e-9)
}

func TestAnalyzeContextHelper(t *testing.T) {
	a := NewSentimentAnalyzer()
	assert.Equal(t, models.ContextScore{Sentiment: Neutral}, a.AnalyzeContext(""))

	got := a.AnalyzeContext("Calidad excelente")
	assert.Equal(t, Positive, got.Sentiment)
	assert.Equal(t, 1.0, got.Polarity)
	assert.InDelta(t, 0.2, got.Confidence, 1e-9)
}
