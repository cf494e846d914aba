package mercadolibre

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"

	"mercadolibre-insights/models"
	"mercadolibre-insights/utils"
)

const (
	maxReviewSnippets = 5
	minSnippetLength  = 11
	breadcrumbJoiner  = " > "
)

// DetailFetcher loads the detail page of one product.
type DetailFetcher interface {
	FetchDetails(ctx context.Context, productURL string) (*models.ProductDetails, error)
}

// Browser is a headless Chrome shared by all detail page visits; each visit
// runs in its own tab.
type Browser struct {
	browserCtx context.Context
	cancel     context.CancelFunc
	timeout    time.Duration
	retry      *utils.RetryConfig
	logger     *utils.Logger
}

// NewBrowser starts headless Chrome. chromeBin may be empty, in which case the
// binary is looked up on the system.
func NewBrowser(chromeBin string, timeout time.Duration, retry *utils.RetryConfig, logger *utils.Logger) (*Browser, error) {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[browser] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(headerProfiles[0]["User-Agent"]),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...any) {}))
	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// Running an empty action list launches the browser so later tabs share it.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("browser: start: %w", err)
	}

	return &Browser{
		browserCtx: browserCtx,
		cancel:     cancel,
		timeout:    timeout,
		retry:      retry,
		logger:     logger,
	}, nil
}

// Close shuts the browser down.
func (b *Browser) Close() {
	b.cancel()
}

// pageDetails is what the extraction script returns; it is reduced to
// ProductDetails by buildDetails.
type pageDetails struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	SalesTexts   []string   `json:"salesTexts"`
	ReviewGroups [][]string `json:"reviewGroups"`
	Breadcrumbs  []string   `json:"breadcrumbs"`
}

const extractDetailsJS = `
(function() {
	var text = function(el) { return el ? (el.textContent || '') : ''; };
	var result = { title: '', description: '', salesTexts: [], reviewGroups: [], breadcrumbs: [] };

	result.title = text(document.querySelector('h1.ui-pdp-title'));

	var descSelectors = [
		'div.item-description__text',
		'p.ui-pdp-description__content',
		'div.ui-pdp-description__content',
		'div.ui-pdp-description__content__container',
		'div.ui-pdp-description__content__container__text'
	];
	for (var i = 0; i < descSelectors.length; i++) {
		var el = document.querySelector(descSelectors[i]);
		if (el) { result.description = text(el); break; }
	}

	var salesSelectors = [
		'span.ui-pdp-subtitle',
		'p.ui-pdp-subtitle',
		'span.ui-pdp-header__subtitle',
		'div.ui-pdp-header__info',
		'div.ui-pdp-seller__sales-info',
		'span.ui-pdp-seller__sales-info__text'
	];
	for (var s = 0; s < salesSelectors.length; s++) {
		var salesEl = document.querySelector(salesSelectors[s]);
		if (salesEl) result.salesTexts.push(text(salesEl));
	}

	var reviewSelectors = [
		'p.ui-review-capability-comments__comment__content',
		'div.ui-review-capability__comment__content',
		'p.ui-review-capability__comment__content'
	];
	for (var r = 0; r < reviewSelectors.length; r++) {
		var nodes = document.querySelectorAll(reviewSelectors[r]);
		var group = [];
		for (var n = 0; n < nodes.length && n < 5; n++) group.push(text(nodes[n]));
		result.reviewGroups.push(group);
	}

	var crumbs = document.querySelectorAll('a.andes-breadcrumb__link');
	for (var c = 0; c < crumbs.length; c++) result.breadcrumbs.push(text(crumbs[c]));

	return result;
})()
`

// FetchDetails visits productURL in a new tab and extracts its details.
func (b *Browser) FetchDetails(ctx context.Context, productURL string) (*models.ProductDetails, error) {
	var raw pageDetails

	err := b.retry.Do(ctx, "detail-page", func(ctx context.Context) error {
		tabCtx, cancel := chromedp.NewContext(b.browserCtx)
		defer cancel()
		stop := context.AfterFunc(ctx, cancel)
		defer stop()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
		defer cancelTimeout()

		err := chromedp.Run(tabCtx,
			chromedp.Navigate(productURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(1500*time.Millisecond),

			// Scroll so lazily loaded reviews are rendered
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(time.Second),
			chromedp.Evaluate(`window.scrollTo(0, 0)`, nil),

			chromedp.Evaluate(extractDetailsJS, &raw),
		)
		if err != nil {
			return fmt.Errorf("chromedp detail extract: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	details := buildDetails(raw)
	b.logger.Debug("[browser] %s: %d reviews, sales %q", productURL, len(details.ReviewSnippets), details.NumSales)
	return details, nil
}

// buildDetails reduces the raw page extraction: the first sales text with a
// count wins, reviews come from the first selector yielding snippets longer
// than ten characters, and breadcrumbs form the category path.
func buildDetails(raw pageDetails) *models.ProductDetails {
	d := &models.ProductDetails{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
	}

	for _, text := range raw.SalesTexts {
		if n := ParseSales(text); n != "" {
			d.NumSales = n
			break
		}
	}

	for _, group := range raw.ReviewGroups {
		var snippets []string
		for _, text := range group {
			text = strings.TrimSpace(text)
			if utf8.RuneCountInString(text) >= minSnippetLength {
				snippets = append(snippets, text)
			}
			if len(snippets) == maxReviewSnippets {
				break
			}
		}
		if len(snippets) > 0 {
			d.ReviewSnippets = snippets
			break
		}
	}

	var crumbs []string
	for _, c := range raw.Breadcrumbs {
		if c = strings.TrimSpace(c); c != "" {
			crumbs = append(crumbs, c)
		}
	}
	d.CategoryPath = strings.Join(crumbs, breadcrumbJoiner)

	return d
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
