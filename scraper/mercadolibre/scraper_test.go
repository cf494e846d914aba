package mercadolibre

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadolibre-insights/config"
	"mercadolibre-insights/models"
	"mercadolibre-insights/utils"
)

func card(id string) string {
	return fmt.Sprintf(`<li class="ui-search-layout__item">
		<a class="ui-search-link" href="https://articulo.mercadolibre.com.ar/MLA-%s">ver</a>
		<span class="andes-money-amount__fraction">1.000</span>
	</li>`, id)
}

func page(cards ...string) string {
	return "<html><body><ol>" + strings.Join(cards, "") + "</ol></body></html>"
}

type fakeDetails struct {
	mu      sync.Mutex
	calls   []string
	details map[string]*models.ProductDetails
}

func (f *fakeDetails) FetchDetails(_ context.Context, productURL string) (*models.ProductDetails, error) {
	f.mu.Lock()
	f.calls = append(f.calls, productURL)
	f.mu.Unlock()

	if d, ok := f.details[productURL]; ok {
		return d, nil
	}
	return nil, errors.New("detail page unavailable")
}

func testConfig(baseURL string, pages int) *config.Config {
	return &config.Config{
		Keyword:        "auriculares",
		PagesToScrape:  pages,
		MaxConcurrency: 2,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
		RequestTimeout: 5 * time.Second,
		BaseURL:        baseURL,
	}
}

func TestScrapePaginatesAndEnriches(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()

		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/auriculares_Desde_1":
			fmt.Fprint(w, page(card("1"), card("2")))
		case "/auriculares_Desde_51":
			fmt.Fprint(w, page(card("2"), card("3")))
		default:
			fmt.Fprint(w, page())
		}
	}))
	defer srv.Close()

	details := &fakeDetails{details: map[string]*models.ProductDetails{
		"https://articulo.mercadolibre.com.ar/MLA-1": {
			Title:          "Auriculares X1",
			NumSales:       "5000",
			ReviewSnippets: []string{"Excelente sonido, recomiendo"},
			CategoryPath:   "Electrónica > Audio",
		},
		"https://articulo.mercadolibre.com.ar/MLA-3": {Description: "Inalámbricos con estuche"},
	}}

	s := New(testConfig(srv.URL, 4), details, utils.NewNopLogger())
	products, err := s.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "https://articulo.mercadolibre.com.ar/MLA-1", products[0].URL)
	assert.Equal(t, "Auriculares X1", products[0].Title)
	assert.Equal(t, "5000", products[0].NumSales)
	assert.Equal(t, "Electrónica > Audio", products[0].CategoryPath)
	assert.Equal(t, "1.000", products[0].Price)

	assert.Equal(t, models.NotAvailable, products[1].Description, "failed enrichment keeps search data")
	assert.Equal(t, "1.000", products[1].Price)
	assert.Equal(t, "Inalámbricos con estuche", products[2].Description)

	assert.Len(t, details.calls, 3)
	assert.Equal(t, 1, hits["/auriculares_Desde_101"], "empty page is fetched once")
	assert.Zero(t, hits["/auriculares_Desde_151"], "pagination stops after an empty page")
}

func TestScrapeWithoutBrowser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page(card("7")))
	}))
	defer srv.Close()

	products, err := New(testConfig(srv.URL, 1), nil, utils.NewNopLogger()).Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, models.NotAvailable, products[0].Description)
}

func TestScrapeFailsWhenNothingCollected(t *testing.T) {
	var mu sync.Mutex
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	products, err := New(testConfig(srv.URL, 1), nil, utils.NewNopLogger()).Scrape(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 503")
	assert.Empty(t, products)
	assert.Equal(t, 2, requests, "one retry")
}

func TestScrapeEmptySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page())
	}))
	defer srv.Close()

	products, err := New(testConfig(srv.URL, 3), nil, utils.NewNopLogger()).Scrape(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
