package mercadolibre

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mercadolibre-insights/models"
)

// resultsPerPage is how many listings MercadoLibre shows per search page.
const resultsPerPage = 50

// Card selectors, tried in order until one matches.
var (
	cardSelectors     = []string{"li.ui-search-layout__item", "div.ui-search-result__content", "div.ui-search-result"}
	linkSelectors     = []string{"a.ui-search-item__group__element[href]", "a.ui-search-link[href]", "a[href]"}
	titleSelectors    = []string{"h2.ui-search-item__title", ".poly-component__title"}
	fractionSelectors = []string{"span.andes-money-amount__fraction", "span.price-tag-fraction"}
	centsSelectors    = []string{"span.andes-money-amount__cents", "span.price-tag-cents"}
	locationSelectors = []string{"span.ui-search-item__group__element--location", "span.ui-search-item__location"}
	reviewsSelectors  = []string{"span.ui-search-reviews__amount", "span.ui-search-item__reviews"}
)

// productPathMarkers identify product pages among the links of a card.
var productPathMarkers = []string{"/articulo/", "/MLA-", "/p/MLA"}

// headerProfiles are complete browser header sets; one is picked per request.
var headerProfiles = []map[string]string{
	{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language": "es-AR,es;q=0.9,en;q=0.8",
	},
	{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Edge/122.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language": "es-AR,es;q=0.9,en;q=0.8",
	},
	{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:123.0) Gecko/20100101 Firefox/123.0",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language": "es-AR,es;q=0.5",
	},
}

// SearchURL builds the listing URL of page (0-based) for keyword.
func SearchURL(baseURL, keyword string, page int) string {
	slug := strings.Join(strings.Fields(strings.ToLower(keyword)), "-")
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return fmt.Sprintf("%s%s_Desde_%d", baseURL, url.PathEscape(slug), page*resultsPerPage+1)
}

// fetchPage downloads one search page with a randomly chosen header profile.
func (s *Scraper) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headerProfiles[rand.Intn(len(headerProfiles))] {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", pageURL, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", pageURL, err)
	}
	return body, nil
}

// ParseSearchResults extracts the product cards of a search page. It returns
// the number of cards found alongside the accepted products; cards without a
// product link are counted but skipped.
func ParseSearchResults(r io.Reader) ([]*models.ProductRecord, int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("parse search page: %w", err)
	}

	var cards *goquery.Selection
	for _, sel := range cardSelectors {
		if cards = doc.Find(sel); cards.Length() > 0 {
			break
		}
	}

	var products []*models.ProductRecord
	cards.Each(func(_ int, card *goquery.Selection) {
		if p := parseCard(card); p != nil {
			products = append(products, p)
		}
	})
	return products, cards.Length(), nil
}

func parseCard(card *goquery.Selection) *models.ProductRecord {
	link := firstMatch(card, linkSelectors)
	if link == nil {
		return nil
	}
	href, _ := link.Attr("href")
	href = strings.TrimSpace(href)
	if !isProductURL(href) {
		return nil
	}

	p := models.NewProductRecord(href)
	p.Title = firstText(card, titleSelectors)
	if fraction := firstText(card, fractionSelectors); fraction != "" {
		p.Price = fraction
		if cents := firstText(card, centsSelectors); cents != "" {
			p.Price += "," + cents
		}
	}
	p.Location = firstText(card, locationSelectors)
	p.ProductReviewsSummary = firstText(card, reviewsSelectors)
	return p
}

// isProductURL accepts only absolute MercadoLibre Argentina product links.
func isProductURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || !strings.Contains(u.Host, "mercadolibre.com.ar") {
		return false
	}
	for _, marker := range productPathMarkers {
		if strings.Contains(raw, marker) {
			return true
		}
	}
	return false
}

func firstMatch(s *goquery.Selection, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := s.Find(sel).First(); found.Length() > 0 {
			return found
		}
	}
	return nil
}

func firstText(s *goquery.Selection, selectors []string) string {
	if found := firstMatch(s, selectors); found != nil {
		return strings.TrimSpace(found.Text())
	}
	return ""
}
