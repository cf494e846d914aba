package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"mercadolibre-insights/models"
	"mercadolibre-insights/utils"
)

const (
	// minReviewLength is the shortest review snippet, in runes, worth keeping.
	minReviewLength = 11
	maxReviews      = 5
)

// priceRegexp captures an es-AR amount: digits with optional thousand
// separators and an optional decimal part after a comma.
var priceRegexp = regexp.MustCompile(`\d[\d.]*(?:,\d+)?`)

// Cleaner finalises scraped ProductRecords before they are stored and analysed.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean returns normalised copies of the records. Records without a URL and
// repeated URLs are dropped; fields that carry nothing get the N/A sentinel.
func (c *Cleaner) Clean(raw []*models.ProductRecord) []*models.ProductRecord {
	seen := make(map[string]struct{})
	result := make([]*models.ProductRecord, 0, len(raw))

	for _, r := range raw {
		if r == nil {
			continue
		}
		url := strings.TrimSpace(r.URL)
		if url == "" {
			c.logger.Warn("[cleaner] Dropping product with empty URL: %s", r.Title)
			continue
		}

		if _, dup := seen[url]; dup {
			c.logger.Debug("[cleaner] Duplicate URL skipped: %s", url)
			continue
		}
		seen[url] = struct{}{}

		result = append(result, &models.ProductRecord{
			URL:                   url,
			Title:                 normaliseOptional(r.Title),
			Price:                 normalisePrice(r.Price),
			CategoryPath:          orNotAvailable(normaliseText(r.CategoryPath)),
			Description:           orNotAvailable(normaliseText(r.Description)),
			NumSales:              orNotAvailable(normaliseText(r.NumSales)),
			ReviewSnippets:        cleanReviews(r.ReviewSnippets),
			Location:              normaliseOptional(r.Location),
			ProductReviewsSummary: normaliseOptional(r.ProductReviewsSummary),
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d products (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// normalisePrice keeps the first amount found in raw, in its original es-AR
// notation ("$ 15.999" becomes "15.999").
func normalisePrice(raw string) string {
	if models.IsMissing(raw) {
		return models.NotAvailable
	}
	match := strings.TrimRight(priceRegexp.FindString(raw), ".")
	if match == "" {
		return models.NotAvailable
	}
	return match
}

// cleanReviews keeps up to maxReviews distinct snippets long enough to carry
// an opinion.
func cleanReviews(snippets []string) []string {
	out := make([]string, 0, min(len(snippets), maxReviews))
	seen := make(map[string]struct{}, len(snippets))
	for _, s := range snippets {
		if len(out) == maxReviews {
			break
		}
		s = normaliseText(s)
		if utf8.RuneCountInString(s) < minReviewLength {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

// normaliseOptional is normaliseText for fields that are omitted when empty.
func normaliseOptional(s string) string {
	s = normaliseText(s)
	if s == models.NotAvailable {
		return ""
	}
	return s
}

func orNotAvailable(s string) string {
	if s == "" {
		return models.NotAvailable
	}
	return s
}
