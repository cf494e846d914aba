package models

import (
	"encoding/json"
	"math"
)

// Amount is a numeric report value that may be unknown. Unknown amounts are
// written as "N/A" so the JSON matches the products file format.
type Amount struct {
	Value float64
	Valid bool
}

// Known wraps v as a valid Amount.
func Known(v float64) Amount { return Amount{Value: v, Valid: true} }

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid || math.IsNaN(a.Value) || math.IsInf(a.Value, 0) {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(a.Value)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*a = Known(v)
		return nil
	}
	*a = Amount{}
	return nil
}

// ContextScore is the sentiment of the part of a text that talks about one
// topic (quality, price, usability, service).
type ContextScore struct {
	Sentiment  string  `json:"sentiment"`
	Polarity   float64 `json:"polarity"`
	Confidence float64 `json:"confidence"`
}

// ContextualPhrase is the window of tokens around a lexicon word.
type ContextualPhrase struct {
	Phrase           string   `json:"phrase"`
	SentimentContext []string `json:"sentiment_context"`
	Position         float64  `json:"position"`
}

// SentimentResult is the full lexicon analysis of one text.
type SentimentResult struct {
	Sentiment          string                  `json:"sentiment"`
	Polarity           float64                 `json:"polarity"`
	Subjectivity       float64                 `json:"subjectivity"`
	Confidence         float64                 `json:"confidence"`
	KeyPhrases         []string                `json:"key_phrases"`
	Emotions           map[string]float64      `json:"emotions"`
	DominantEmotion    string                  `json:"dominant_emotion"`
	EmotionalIntensity float64                 `json:"emotional_intensity"`
	ContextSentiment   map[string]ContextScore `json:"context_sentiment"`
	SentimentTrend     string                  `json:"sentiment_trend"`
	ContextualPhrases  []ContextualPhrase      `json:"contextual_phrases"`
}

// FeedbackSummary aggregates a set of review texts.
type FeedbackSummary struct {
	SatisfactionLevels map[string]int `json:"satisfaction_levels"`
	CommonThemes       map[string]int `json:"common_themes"`
	SpecificIssues     []string       `json:"specific_issues"`
	PraisePoints       []string       `json:"praise_points"`
	Suggestions        []string       `json:"suggestions"`
}

type PriceRange struct {
	Min Amount `json:"min"`
	Max Amount `json:"max"`
	Avg Amount `json:"avg"`
}

type PriceSegments struct {
	Budget   int `json:"budget"`
	MidRange int `json:"mid_range"`
	Premium  int `json:"premium"`
}

type PriceAnalysis struct {
	PriceRange    PriceRange    `json:"price_range"`
	PriceSegments PriceSegments `json:"price_segments"`
}

// CategorySentiment pairs a review category with its analysis. Categories are
// kept as a list so report order is stable.
type CategorySentiment struct {
	Category string          `json:"category"`
	Result   SentimentResult `json:"result"`
}

// CategorySentiments is the ordered per-category analysis. It serialises as an
// object keyed by category.
type CategorySentiments []CategorySentiment

// Get returns the analysis for category, if it was computed.
func (cs CategorySentiments) Get(category string) (SentimentResult, bool) {
	for _, c := range cs {
		if c.Category == category {
			return c.Result, true
		}
	}
	return SentimentResult{}, false
}

// SentimentOf returns the label for category, or "" if it was not computed.
func (cs CategorySentiments) SentimentOf(category string) string {
	r, ok := cs.Get(category)
	if !ok {
		return ""
	}
	return r.Sentiment
}

func (cs CategorySentiments) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(cs), func(i int) (string, any) {
		return cs[i].Category, cs[i].Result
	})
}

type SentimentAnalysis struct {
	Overall    map[string]SentimentResult    `json:"overall"`
	ByCategory map[string]CategorySentiments `json:"by_category"`
}

// Reviews returns the per-category analysis of review snippets.
func (s SentimentAnalysis) Reviews() CategorySentiments {
	return s.ByCategory[SourceReviews]
}

// SourceReviews keys the review-snippet analyses inside the report.
const SourceReviews = "reviews"

// FeatureCount is the number of keyword hits of one feature category.
type FeatureCount struct {
	Feature  string
	Mentions int
}

// FeatureCounts keeps the fixed feature order; it serialises as an object.
type FeatureCounts []FeatureCount

// Mentions returns the count for feature, zero if unknown.
func (fc FeatureCounts) Mentions(feature string) int {
	for _, f := range fc {
		if f.Feature == feature {
			return f.Mentions
		}
	}
	return 0
}

// Mentioned lists the features with at least one hit, in fixed order.
func (fc FeatureCounts) Mentioned() []string {
	out := make([]string, 0, len(fc))
	for _, f := range fc {
		if f.Mentions > 0 {
			out = append(out, f.Feature)
		}
	}
	return out
}

func (fc FeatureCounts) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(fc), func(i int) (string, any) {
		return fc[i].Feature, fc[i].Mentions
	})
}

type PricePositioning struct {
	MarketAverage        Amount `json:"market_average"`
	PriceCompetitiveness string `json:"price_competitiveness"`
}

type CompetitiveAnalysis struct {
	CategoryDistribution map[string]int   `json:"category_distribution"`
	PricePositioning     PricePositioning `json:"price_positioning"`
}

type MarketPositioning struct {
	PricePosition    string `json:"price_position"`
	QualityPosition  string `json:"quality_position"`
	ValueProposition string `json:"value_proposition"`
}

type PrimarySecondary struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type ContentStrategy struct {
	KeyMessages               []string `json:"key_messages"`
	UniqueSellingPropositions []string `json:"unique_selling_propositions"`
	ContentFocus              string   `json:"content_focus"`
}

type PromotionalStrategy struct {
	DiscountApproach      string   `json:"discount_approach"`
	BundlingOpportunities []string `json:"bundling_opportunities"`
	SeasonalFocus         string   `json:"seasonal_focus"`
}

type CompetitiveAdvantages struct {
	PriceAdvantage   string `json:"price_advantage"`
	QualityAdvantage string `json:"quality_advantage"`
	ServiceAdvantage string `json:"service_advantage"`
}

type ActionItem struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
}

type RiskMitigation struct {
	PriceRisks   string `json:"price_risks"`
	QualityRisks string `json:"quality_risks"`
	ServiceRisks string `json:"service_risks"`
}

type GrowthOpportunity struct {
	Area      string `json:"area"`
	Potential string `json:"potential"`
}

// MarketingRecommendations is the decision block derived from the rest of the
// report.
type MarketingRecommendations struct {
	KeySellingPoints      []string              `json:"key_selling_points"`
	TargetAudience        string                `json:"target_audience"`
	PricingStrategy       string                `json:"pricing_strategy"`
	FeatureHighlights     []string              `json:"feature_highlights"`
	ImprovementAreas      []string              `json:"improvement_areas"`
	MarketPositioning     MarketPositioning     `json:"market_positioning"`
	CustomerSegments      PrimarySecondary      `json:"customer_segments"`
	MarketingChannels     PrimarySecondary      `json:"marketing_channels"`
	ContentStrategy       ContentStrategy       `json:"content_strategy"`
	PromotionalStrategy   PromotionalStrategy   `json:"promotional_strategy"`
	CompetitiveAdvantages CompetitiveAdvantages `json:"competitive_advantages"`
	ActionItems           []ActionItem          `json:"action_items"`
	RiskMitigation        RiskMitigation        `json:"risk_mitigation"`
	GrowthOpportunities   []GrowthOpportunity   `json:"growth_opportunities"`
}

// KeywordHighlights holds the most frequent terms of the corpus.
type KeywordHighlights struct {
	Descriptions []string `json:"descriptions"`
	Reviews      []string `json:"reviews"`
}

// InsightReport holds the computed analytics over the product corpus.
type InsightReport struct {
	TotalProducts            int                        `json:"total_products"`
	PriceAnalysis            PriceAnalysis              `json:"price_analysis"`
	FeatureAnalysis          FeatureCounts              `json:"feature_analysis"`
	SentimentAnalysis        SentimentAnalysis          `json:"sentiment_analysis"`
	CustomerFeedback         map[string]FeedbackSummary `json:"customer_feedback"`
	CompetitiveAnalysis      CompetitiveAnalysis        `json:"competitive_analysis"`
	MarketingRecommendations MarketingRecommendations   `json:"marketing_recommendations"`
	Keywords                 KeywordHighlights          `json:"keywords"`
}
