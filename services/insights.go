package services

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"mercadolibre-insights/analysis"
	"mercadolibre-insights/lexicon"
	"mercadolibre-insights/models"
	"mercadolibre-insights/utils"
)

const (
	budgetRatio      = 0.7
	premiumRatio     = 1.3
	competitiveRatio = 0.9
)

// InsightService turns the scraped product corpus into an InsightReport.
// Generate performs no I/O and keeps no state between calls.
type InsightService struct {
	logger     *utils.Logger
	sentiment  *analysis.SentimentAnalyzer
	feedback   *analysis.FeedbackClassifier
	features   []lexicon.Group
	categories []lexicon.Group
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{
		logger:     logger,
		sentiment:  analysis.NewSentimentAnalyzer(),
		feedback:   analysis.NewFeedbackClassifier(),
		features:   lexicon.FeatureCategories(),
		categories: lexicon.ReviewCategories(),
	}
}

// corpus is what Generate gathers from the products before aggregating.
type corpus struct {
	prices       []float64
	categories   map[string]int
	reviews      []string
	descriptions []string
}

func (s *InsightService) Generate(products []*models.ProductRecord) *models.InsightReport {
	c := corpus{categories: make(map[string]int)}
	for i, p := range products {
		s.collect(&c, i, p)
	}

	report := &models.InsightReport{
		TotalProducts:   len(products),
		PriceAnalysis:   analysePrices(c.prices),
		FeatureAnalysis: s.countFeatures(c.descriptions),
	}

	overall := s.sentiment.Analyze(strings.Join(c.reviews, " "))
	byCategory := s.analyseCategories(c.reviews)
	report.SentimentAnalysis = models.SentimentAnalysis{
		Overall:    map[string]models.SentimentResult{models.SourceReviews: overall},
		ByCategory: map[string]models.CategorySentiments{models.SourceReviews: byCategory},
	}

	feedback := s.feedback.Classify(c.reviews)
	report.CustomerFeedback = map[string]models.FeedbackSummary{models.SourceReviews: feedback}

	report.CompetitiveAnalysis = models.CompetitiveAnalysis{
		CategoryDistribution: c.categories,
		PricePositioning: models.PricePositioning{
			MarketAverage:        report.PriceAnalysis.PriceRange.Avg,
			PriceCompetitiveness: priceCompetitiveness(report.PriceAnalysis.PriceRange),
		},
	}

	report.MarketingRecommendations = Recommend(
		report.PriceAnalysis.PriceSegments,
		report.FeatureAnalysis,
		byCategory,
		feedback,
	)

	report.Keywords = models.KeywordHighlights{
		Descriptions: analysis.ExtractKeywords(strings.Join(c.descriptions, " ")),
		Reviews:      analysis.ExtractKeywords(strings.Join(c.reviews, " ")),
	}

	s.logger.Info("[insights] Analysed %d products: %d priced, %d reviews, %d descriptions",
		len(products), len(c.prices), len(c.reviews), len(c.descriptions))
	return report
}

// collect adds one product to the corpus. A record that panics is skipped so
// the rest of the run is unaffected; fields gathered before the panic stay.
func (s *InsightService) collect(c *corpus, idx int, p *models.ProductRecord) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("[insights] Skipping product #%d: %v", idx, r)
		}
	}()

	if price, ok := ParsePrice(p.Price); ok {
		c.prices = append(c.prices, price)
	}
	if !models.IsMissing(p.CategoryPath) {
		c.categories[p.CategoryPath]++
	}
	c.reviews = append(c.reviews, p.ReviewSnippets...)
	if !models.IsMissing(p.Description) {
		c.descriptions = append(c.descriptions, p.Description)
	}
}

// ParsePrice reads an es-AR formatted price: periods group thousands and a
// comma marks decimals ("1.234,56" is 1234.56).
func ParsePrice(raw string) (float64, bool) {
	if models.IsMissing(raw) {
		return 0, false
	}
	normalised := strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
	normalised = strings.ReplaceAll(normalised, ",", ".")
	v, err := strconv.ParseFloat(normalised, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func analysePrices(prices []float64) models.PriceAnalysis {
	if len(prices) == 0 {
		return models.PriceAnalysis{}
	}

	avg := stat.Mean(prices, nil)
	var seg models.PriceSegments
	for _, p := range prices {
		switch {
		case p < avg*budgetRatio:
			seg.Budget++
		case p > avg*premiumRatio:
			seg.Premium++
		default:
			seg.MidRange++
		}
	}

	return models.PriceAnalysis{
		PriceRange: models.PriceRange{
			Min: models.Known(floats.Min(prices)),
			Max: models.Known(floats.Max(prices)),
			Avg: models.Known(avg),
		},
		PriceSegments: seg,
	}
}

func priceCompetitiveness(r models.PriceRange) string {
	if r.Min.Valid && r.Avg.Valid && r.Min.Value < r.Avg.Value*competitiveRatio {
		return "high"
	}
	return "low"
}

// countFeatures counts, per feature category, every keyword found in every
// description.
func (s *InsightService) countFeatures(descriptions []string) models.FeatureCounts {
	lowered := make([]string, len(descriptions))
	for i, d := range descriptions {
		lowered[i] = strings.ToLower(d)
	}

	out := make(models.FeatureCounts, 0, len(s.features))
	for _, f := range s.features {
		mentions := 0
		for _, d := range lowered {
			for _, kw := range f.Words {
				if strings.Contains(d, kw) {
					mentions++
				}
			}
		}
		out = append(out, models.FeatureCount{Feature: f.Name, Mentions: mentions})
	}
	return out
}

// analyseCategories analyses, for each review category, the concatenation of
// the reviews that mention one of its keywords.
func (s *InsightService) analyseCategories(reviews []string) models.CategorySentiments {
	out := make(models.CategorySentiments, 0, len(s.categories))
	for _, cat := range s.categories {
		var matching []string
		for _, r := range reviews {
			lr := strings.ToLower(r)
			for _, kw := range cat.Words {
				if strings.Contains(lr, kw) {
					matching = append(matching, r)
					break
				}
			}
		}
		out = append(out, models.CategorySentiment{
			Category: cat.Name,
			Result:   s.sentiment.Analyze(strings.Join(matching, " ")),
		})
	}
	return out
}
