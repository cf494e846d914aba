package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadolibre-insights/lexicon"
	"mercadolibre-insights/models"
)

func TestClassifyReviews(t *testing.T) {
	texts := []string{
		"Excelente producto. Llegó rápido.",
		"Tiene un problema con la batería. Debería mejorar.",
		models.NotAvailable,
		"",
		"Excelente producto. Llegó rápido.",
	}

	s := NewFeedbackClassifier().Classify(texts)

	assert.Equal(t, 2, s.SatisfactionLevels[lexicon.VerySatisfied])
	assert.Equal(t, 1, s.SatisfactionLevels[lexicon.Dissatisfied])
	assert.Equal(t, 0, s.SatisfactionLevels[lexicon.Satisfied])
	assert.Len(t, s.SatisfactionLevels, 5)

	assert.Equal(t, map[string]int{"performance": 2}, s.CommonThemes)

	assert.Equal(t, []string{"Excelente producto"}, s.PraisePoints)
	assert.Equal(t, []string{"Tiene un problema con la batería"}, s.SpecificIssues)
	assert.Equal(t, []string{"Debería mejorar"}, s.Suggestions)
}

func TestClassifyFirstMatchingLevelWins(t *testing.T) {
	// "excelente" is very satisfied, "malo" would be dissatisfied.
	s := NewFeedbackClassifier().Classify([]string{"excelente pero el envío malo"})
	assert.Equal(t, 1, s.SatisfactionLevels[lexicon.VerySatisfied])
	assert.Equal(t, 0, s.SatisfactionLevels[lexicon.Dissatisfied])
}

func TestClassifyTextMatchingNoLevel(t *testing.T) {
	s := NewFeedbackClassifier().Classify([]string{"llegó el martes"})
	total := 0
	for _, n := range s.SatisfactionLevels {
		total += n
	}
	assert.Zero(t, total)
	assert.Empty(t, s.CommonThemes)
}

func TestClassifyMultipleThemes(t *testing.T) {
	s := NewFeedbackClassifier().Classify([]string{"Buen precio y la entrega fue rápida, soporte atento"})
	assert.Equal(t, 1, s.CommonThemes["price"])
	assert.Equal(t, 1, s.CommonThemes["delivery"])
	assert.Equal(t, 1, s.CommonThemes["support"])
	assert.NotContains(t, s.CommonThemes, "quality")
}

func TestClassifyCapsAndDeduplicates(t *testing.T) {
	var texts []string
	for i := 0; i < 8; i++ {
		texts = append(texts, fmt.Sprintf("Problema número %d. Sugerencia %d.", i, i))
		texts = append(texts, fmt.Sprintf("Problema número %d.", i))
	}
	texts = append(texts, "Es bueno. Es bueno. Es bueno.")

	s := NewFeedbackClassifier().Classify(texts)

	for name, list := range map[string][]string{
		"issues":      s.SpecificIssues,
		"praise":      s.PraisePoints,
		"suggestions": s.Suggestions,
	} {
		require.LessOrEqual(t, len(list), 5, name)
		seen := map[string]bool{}
		for _, sentence := range list {
			assert.False(t, seen[sentence], "%s repeats %q", name, sentence)
			seen[sentence] = true
		}
	}
	assert.Len(t, s.SpecificIssues, 5)
	assert.Len(t, s.Suggestions, 5)
	assert.Equal(t, []string{"Es bueno"}, s.PraisePoints)
}

func TestClassifyEmpty(t *testing.T) {
	s := NewFeedbackClassifier().Classify(nil)
	assert.Len(t, s.SatisfactionLevels, 5)
	assert.Empty(t, s.CommonThemes)
	assert.NotNil(t, s.SpecificIssues)
	assert.NotNil(t, s.PraisePoints)
	assert.NotNil(t, s.Suggestions)
}
