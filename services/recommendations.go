package services

import (
	"slices"
	"strings"

	"mercadolibre-insights/analysis"
	"mercadolibre-insights/models"
)

// Review categories the decision table looks up. customer_service is not one
// of the analysed review categories, so lookups of it always miss and the
// service fields stay at their default.
const (
	categoryQuality         = "quality"
	categoryValue           = "value"
	categoryCustomerService = "customer_service"

	uspMinConfidence   = 0.7
	yearRoundMinThemes = 3

	priorityHigh    = "high"
	priorityMedium  = "medium"
	priorityLow     = "low"
	levelHigh       = "high"
	levelLow        = "low"
	potentialHigh   = "high"
	potentialMedium = "medium"
)

var bundlingFeatures = []string{"package", "compatibility", "accessories"}

// Recommend derives the marketing decision block. Every field comes from its
// own decision function over the already computed aggregates.
func Recommend(
	seg models.PriceSegments,
	features models.FeatureCounts,
	reviews models.CategorySentiments,
	feedback models.FeedbackSummary,
) models.MarketingRecommendations {
	return models.MarketingRecommendations{
		KeySellingPoints:      keySellingPoints(features),
		TargetAudience:        targetAudience(seg),
		PricingStrategy:       pricingStrategy(seg),
		FeatureHighlights:     categoriesWith(reviews, analysis.Positive),
		ImprovementAreas:      categoriesWith(reviews, analysis.Negative),
		MarketPositioning:     marketPositioning(seg, reviews),
		CustomerSegments:      customerSegments(reviews),
		MarketingChannels:     marketingChannels(feedback.CommonThemes),
		ContentStrategy:       contentStrategy(features, reviews),
		PromotionalStrategy:   promotionalStrategy(seg, features, feedback.CommonThemes),
		CompetitiveAdvantages: competitiveAdvantages(seg, reviews),
		ActionItems:           actionItems(reviews, feedback.Suggestions),
		RiskMitigation:        riskMitigation(seg, reviews),
		GrowthOpportunities:   growthOpportunities(features, reviews),
	}
}

func premiumLed(seg models.PriceSegments) bool { return seg.Premium > seg.Budget }
func budgetLed(seg models.PriceSegments) bool  { return seg.Budget > seg.Premium }

func keySellingPoints(features models.FeatureCounts) []string {
	return features.Mentioned()
}

func targetAudience(seg models.PriceSegments) string {
	if premiumLed(seg) {
		return "premium"
	}
	return "budget"
}

func pricingStrategy(seg models.PriceSegments) string {
	if premiumLed(seg) {
		return "premium"
	}
	return "competitive"
}

// categoriesWith lists, in category order, the categories labelled sentiment.
func categoriesWith(reviews models.CategorySentiments, sentiment string) []string {
	out := []string{}
	for _, c := range reviews {
		if c.Result.Sentiment == sentiment {
			out = append(out, c.Category)
		}
	}
	return out
}

func marketPositioning(seg models.PriceSegments, reviews models.CategorySentiments) models.MarketPositioning {
	mp := models.MarketPositioning{
		PricePosition:    targetAudience(seg),
		QualityPosition:  "standard",
		ValueProposition: "price-focused",
	}
	if reviews.SentimentOf(categoryQuality) == analysis.Positive {
		mp.QualityPosition = "high"
		mp.ValueProposition = "quality-focused"
	}
	return mp
}

func customerSegments(reviews models.CategorySentiments) models.PrimarySecondary {
	cs := models.PrimarySecondary{Primary: "price-sensitive", Secondary: "feature-focused"}
	if reviews.SentimentOf(categoryQuality) == analysis.Positive {
		cs.Primary = "quality-conscious"
	}
	if reviews.SentimentOf(categoryValue) == analysis.Positive {
		cs.Secondary = "value-seekers"
	}
	return cs
}

// marketingChannels keys off the names of the detected feedback themes.
func marketingChannels(themes map[string]int) models.PrimarySecondary {
	mc := models.PrimarySecondary{Primary: "search_engines", Secondary: "direct_sales"}
	if anyThemeContains(themes, "social") {
		mc.Primary = "social_media"
	}
	if anyThemeContains(themes, "envío") {
		mc.Secondary = "marketplace"
	}
	return mc
}

func anyThemeContains(themes map[string]int, fragment string) bool {
	for name := range themes {
		if strings.Contains(strings.ToLower(name), fragment) {
			return true
		}
	}
	return false
}

func contentStrategy(features models.FeatureCounts, reviews models.CategorySentiments) models.ContentStrategy {
	cs := models.ContentStrategy{
		KeyMessages:               []string{},
		UniqueSellingPropositions: []string{},
		ContentFocus:              "value",
	}
	for _, f := range features.Mentioned() {
		cs.KeyMessages = append(cs.KeyMessages, "Highlight "+f)
	}
	for _, c := range reviews {
		if c.Result.Sentiment == analysis.Positive && c.Result.Confidence > uspMinConfidence {
			cs.UniqueSellingPropositions = append(cs.UniqueSellingPropositions, "Emphasize "+c.Category)
		}
	}
	if reviews.SentimentOf(categoryQuality) == analysis.Positive {
		cs.ContentFocus = "quality"
	}
	return cs
}

func promotionalStrategy(seg models.PriceSegments, features models.FeatureCounts, themes map[string]int) models.PromotionalStrategy {
	ps := models.PromotionalStrategy{
		DiscountApproach:      "aggressive",
		BundlingOpportunities: []string{},
		SeasonalFocus:         "peak_seasons",
	}
	if seg.Premium > 0 {
		ps.DiscountApproach = "selective"
	}
	for _, f := range features.Mentioned() {
		if slices.Contains(bundlingFeatures, f) {
			ps.BundlingOpportunities = append(ps.BundlingOpportunities, f)
		}
	}
	if len(themes) > yearRoundMinThemes {
		ps.SeasonalFocus = "year-round"
	}
	return ps
}

func competitiveAdvantages(seg models.PriceSegments, reviews models.CategorySentiments) models.CompetitiveAdvantages {
	return models.CompetitiveAdvantages{
		PriceAdvantage:   highIf(budgetLed(seg)),
		QualityAdvantage: highIf(reviews.SentimentOf(categoryQuality) == analysis.Positive),
		ServiceAdvantage: highIf(reviews.SentimentOf(categoryCustomerService) == analysis.Positive),
	}
}

// actionItems lists high priority fixes, then medium priority promotions, then
// exactly one low priority item.
func actionItems(reviews models.CategorySentiments, suggestions []string) []models.ActionItem {
	var items []models.ActionItem
	for _, c := range categoriesWith(reviews, analysis.Negative) {
		items = append(items, models.ActionItem{Priority: priorityHigh, Action: "Enhance " + c})
	}
	for _, c := range categoriesWith(reviews, analysis.Positive) {
		items = append(items, models.ActionItem{Priority: priorityMedium, Action: "Promote " + c})
	}
	low := "Maintain current strategy"
	if len(suggestions) > 0 {
		low = "Monitor market trends"
	}
	return append(items, models.ActionItem{Priority: priorityLow, Action: low})
}

func riskMitigation(seg models.PriceSegments, reviews models.CategorySentiments) models.RiskMitigation {
	return models.RiskMitigation{
		PriceRisks:   highIf(budgetLed(seg)),
		QualityRisks: highIf(reviews.SentimentOf(categoryQuality) == analysis.Negative),
		ServiceRisks: highIf(reviews.SentimentOf(categoryCustomerService) == analysis.Negative),
	}
}

// growthOpportunities has one entry per mentioned feature; the potential is
// high when a review category of the same name is positive.
func growthOpportunities(features models.FeatureCounts, reviews models.CategorySentiments) []models.GrowthOpportunity {
	out := []models.GrowthOpportunity{}
	for _, f := range features.Mentioned() {
		potential := potentialMedium
		if reviews.SentimentOf(f) == analysis.Positive {
			potential = potentialHigh
		}
		out = append(out, models.GrowthOpportunity{Area: f, Potential: potential})
	}
	return out
}

func highIf(cond bool) string {
	if cond {
		return levelHigh
	}
	return levelLow
}
