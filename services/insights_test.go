package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadolibre-insights/analysis"
	"mercadolibre-insights/lexicon"
	"mercadolibre-insights/models"
	"mercadolibre-insights/utils"
)

func newTestService() *InsightService {
	return NewInsightService(utils.NewNopLogger())
}

func product(price, category, description string, reviews ...string) *models.ProductRecord {
	p := models.NewProductRecord("https://articulo.mercadolibre.com.ar/MLA-" + price)
	p.Price = price
	p.CategoryPath = category
	p.Description = description
	p.ReviewSnippets = reviews
	return p
}

func sampleProducts() []*models.ProductRecord {
	return []*models.ProductRecord{
		product("100", "Electrónica > Audio", "Funda de cuero con garantía",
			"Excelente calidad, muy resistente."),
		product("200", "Electrónica > Audio", "Incluye caja y manual",
			"El envío fue lento y caro."),
		product("300", models.NotAvailable, models.NotAvailable),
	}
}

func TestInsightEmptyInput(t *testing.T) {
	r := newTestService().Generate(nil)

	assert.Equal(t, 0, r.TotalProducts)
	assert.False(t, r.PriceAnalysis.PriceRange.Min.Valid)
	assert.False(t, r.PriceAnalysis.PriceRange.Avg.Valid)
	assert.Equal(t, models.PriceSegments{}, r.PriceAnalysis.PriceSegments)
	assert.Len(t, r.FeatureAnalysis, len(lexicon.FeatureCategories()))
	assert.Empty(t, r.FeatureAnalysis.Mentioned())
	assert.Equal(t, "low", r.CompetitiveAnalysis.PricePositioning.PriceCompetitiveness)
	assert.Equal(t, analysis.Neutral, r.SentimentAnalysis.Overall[models.SourceReviews].Sentiment)
	assert.Equal(t, []models.ActionItem{{Priority: "low", Action: "Maintain current strategy"}},
		r.MarketingRecommendations.ActionItems)
}

func TestInsightEmptyInputSerialisesUnknownPrices(t *testing.T) {
	r := newTestService().Generate([]*models.ProductRecord{})

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"price_range":{"min":"N/A","max":"N/A","avg":"N/A"}`)
	assert.Contains(t, string(out), `"market_average":"N/A"`)
}

func TestInsightPrices(t *testing.T) {
	r := newTestService().Generate(sampleProducts())

	pr := r.PriceAnalysis.PriceRange
	assert.Equal(t, models.Known(100), pr.Min)
	assert.Equal(t, models.Known(300), pr.Max)
	assert.Equal(t, models.Known(200), pr.Avg)
	assert.Equal(t, models.PriceSegments{Budget: 1, MidRange: 1, Premium: 1}, r.PriceAnalysis.PriceSegments)

	pp := r.CompetitiveAnalysis.PricePositioning
	assert.Equal(t, models.Known(200), pp.MarketAverage)
	assert.Equal(t, "high", pp.PriceCompetitiveness)
}

func TestInsightPriceCompetitivenessLow(t *testing.T) {
	r := newTestService().Generate([]*models.ProductRecord{
		product("100", "", ""),
		product("100", "", ""),
		product("abc", "", ""),
	})
	assert.Equal(t, models.PriceSegments{MidRange: 2}, r.PriceAnalysis.PriceSegments)
	assert.Equal(t, "low", r.CompetitiveAnalysis.PricePositioning.PriceCompetitiveness)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"1.234,56", 1234.56, true},
		{"15.999", 15999, true},
		{" 250 ", 250, true},
		{"99,9", 99.9, true},
		{"", 0, false},
		{models.NotAvailable, 0, false},
		{"abc", 0, false},
		{"Inf", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParsePrice(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestInsightFeatureCounts(t *testing.T) {
	r := newTestService().Generate(sampleProducts())

	fa := r.FeatureAnalysis
	assert.Equal(t, 1, fa.Mentions("material"))
	assert.Equal(t, 1, fa.Mentions("warranty"))
	assert.Equal(t, 3, fa.Mentions("package"))
	assert.Equal(t, []string{"material", "warranty", "package"}, fa.Mentioned())
}

func TestInsightCategoryDistribution(t *testing.T) {
	r := newTestService().Generate(sampleProducts())

	assert.Equal(t, 3, r.TotalProducts)
	assert.Equal(t, map[string]int{"Electrónica > Audio": 2}, r.CompetitiveAnalysis.CategoryDistribution)
}

func TestInsightReviewCategories(t *testing.T) {
	r := newTestService().Generate(sampleProducts())

	cats := r.SentimentAnalysis.Reviews()
	require.Len(t, cats, 4)
	assert.Equal(t, analysis.Positive, cats.SentimentOf("quality"))
	assert.Equal(t, analysis.Neutral, cats.SentimentOf("performance"))
	assert.Equal(t, analysis.Negative, cats.SentimentOf("value"))
	assert.Equal(t, analysis.Neutral, cats.SentimentOf("usability"))

	mr := r.MarketingRecommendations
	assert.Equal(t, []string{"quality"}, mr.FeatureHighlights)
	assert.Equal(t, []string{"value"}, mr.ImprovementAreas)
	assert.Equal(t, []models.ActionItem{
		{Priority: "high", Action: "Enhance value"},
		{Priority: "medium", Action: "Promote quality"},
		{Priority: "low", Action: "Maintain current strategy"},
	}, mr.ActionItems)
}

func TestInsightCustomerFeedback(t *testing.T) {
	r := newTestService().Generate(sampleProducts())

	fb := r.CustomerFeedback[models.SourceReviews]
	assert.Equal(t, 1, fb.SatisfactionLevels[lexicon.VerySatisfied])
	assert.Equal(t, 1, fb.SatisfactionLevels[lexicon.Dissatisfied])
	assert.Equal(t, map[string]int{"quality": 1, "price": 1, "delivery": 1}, fb.CommonThemes)
}

func TestInsightSkipsPanickingProduct(t *testing.T) {
	products := []*models.ProductRecord{
		product("100", "A", ""),
		nil,
		product("300", "A", ""),
	}

	var r *models.InsightReport
	require.NotPanics(t, func() { r = newTestService().Generate(products) })
	assert.Equal(t, 3, r.TotalProducts)
	assert.Equal(t, models.Known(200), r.PriceAnalysis.PriceRange.Avg)
	assert.Equal(t, 2, r.CompetitiveAnalysis.CategoryDistribution["A"])
}

func TestInsightFeatureAnalysisKeepsOrder(t *testing.T) {
	r := newTestService().Generate(sampleProducts())

	out, err := json.Marshal(r.FeatureAnalysis)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"material":1,"size":0,"color":0,`, string(out))
}
