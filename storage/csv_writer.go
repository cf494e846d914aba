package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mercadolibre-insights/models"
)

// reviewSeparator joins the review snippets of a product into one CSV cell.
const reviewSeparator = " | "

var csvHeader = []string{
	"url", "title", "price", "category_path", "description", "num_sales",
	"review_snippets", "location", "product_reviews_summary",
}

// CSVWriter writes product records to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteProducts appends one row per product.
func (c *CSVWriter) WriteProducts(products []*models.ProductRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range products {
		row := []string{
			p.URL,
			p.Title,
			p.Price,
			p.CategoryPath,
			p.Description,
			p.NumSales,
			strings.Join(p.ReviewSnippets, reviewSeparator),
			p.Location,
			p.ProductReviewsSummary,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}
