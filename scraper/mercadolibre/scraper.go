// Package mercadolibre collects product records from MercadoLibre Argentina:
// search result pages over plain HTTP, then product detail pages through a
// headless browser.
package mercadolibre

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"mercadolibre-insights/config"
	"mercadolibre-insights/models"
	"mercadolibre-insights/utils"
)

// Scraper orchestrates the MercadoLibre scraping process.
type Scraper struct {
	cfg        *config.Config
	logger     *utils.Logger
	client     *http.Client
	details    DetailFetcher
	pages      *utils.WorkerPool
	pool       *utils.WorkerPool
	visitedURL *utils.URLSet
	retry      *utils.RetryConfig
}

// New creates a ready-to-use Scraper. details may be nil, in which case the
// products keep what the search pages show.
func New(cfg *config.Config, details DetailFetcher, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:        cfg,
		logger:     logger,
		client:     &http.Client{Timeout: cfg.RequestTimeout},
		details:    details,
		pages:      utils.NewWorkerPool(1, cfg.MinPagePause, cfg.MaxPagePause),
		pool:       utils.NewWorkerPool(cfg.MaxConcurrency, cfg.MinBatchPause, cfg.MaxBatchPause),
		visitedURL: utils.NewURLSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   cfg.RetryBaseDelay,
			Logger:      logger,
		},
	}
}

// Scrape is the entry point that drives pagination and detail-page scraping.
// It fails only when nothing could be collected and a page request failed.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.ProductRecord, error) {
	s.logger.Info("[mercadolibre] Starting scrape — keyword: %q, pages: %d",
		s.cfg.Keyword, s.cfg.PagesToScrape)

	products, pageErr := s.collectSearchResults(ctx)
	if len(products) == 0 {
		if pageErr != nil {
			return nil, fmt.Errorf("mercadolibre: no products collected: %w", pageErr)
		}
		s.logger.Warn("[mercadolibre] Search returned no products")
		return products, nil
	}

	s.enrich(ctx, products)

	s.logger.Info("[mercadolibre] Scrape complete — total products: %d", len(products))
	return products, ctx.Err()
}

// collectSearchResults walks the search pages in order, pausing between them.
// Pagination stops at the first page without result cards.
func (s *Scraper) collectSearchResults(ctx context.Context) ([]*models.ProductRecord, error) {
	pagesCtx, stop := context.WithCancel(ctx)
	defer stop()

	var (
		products []*models.ProductRecord
		errs     []error
	)
	s.pages.Run(pagesCtx, s.cfg.PagesToScrape, func(ctx context.Context, page int) {
		pageURL := SearchURL(s.cfg.BaseURL, s.cfg.Keyword, page)
		s.logger.Info("[mercadolibre] Scraping page %d — URL: %s", page+1, pageURL)

		var body []byte
		err := s.retry.Do(ctx, fmt.Sprintf("search-page-%d", page+1), func(ctx context.Context) error {
			var err error
			body, err = s.fetchPage(ctx, pageURL)
			return err
		})
		if err != nil {
			s.logger.Error("[mercadolibre] Page %d failed: %v", page+1, err)
			errs = append(errs, err)
			return
		}

		found, cards, err := ParseSearchResults(bytes.NewReader(body))
		if err != nil {
			s.logger.Error("[mercadolibre] Page %d unreadable: %v", page+1, err)
			errs = append(errs, err)
			return
		}
		if cards == 0 {
			s.logger.Warn("[mercadolibre] Page %d has no result cards (layout change, empty search or blocked request) — stopping", page+1)
			stop()
			return
		}

		added := 0
		for _, p := range found {
			if !s.visitedURL.Add(p.URL) {
				s.logger.Debug("[mercadolibre] Skipping duplicate: %s", p.URL)
				continue
			}
			products = append(products, p)
			added++
		}
		s.logger.Info("[mercadolibre] Page %d done — %d cards, %d new products, %d so far",
			page+1, cards, added, len(products))
	})

	return products, errors.Join(errs...)
}

// enrich merges detail page data into every product. A product whose detail
// page fails keeps its search page data.
func (s *Scraper) enrich(ctx context.Context, products []*models.ProductRecord) {
	if s.details == nil {
		s.logger.Warn("[mercadolibre] No browser available, skipping detail pages")
		return
	}

	var mu sync.Mutex
	enriched := 0
	s.pool.Run(ctx, len(products), func(ctx context.Context, i int) {
		p := products[i]
		s.logger.Info("[mercadolibre] Processing product %d/%d: %s", i+1, len(products), p.URL)

		details, err := s.details.FetchDetails(ctx, p.URL)
		if err != nil {
			s.logger.Warn("[mercadolibre] Detail page failed for %s: %v", p.URL, err)
			return
		}
		p.Merge(details)

		mu.Lock()
		enriched++
		mu.Unlock()
	})
	s.logger.Info("[mercadolibre] Enriched %d/%d products from detail pages", enriched, len(products))
}
