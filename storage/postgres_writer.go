package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"mercadolibre-insights/models"
)

const (
	productColumns = 9
	insertBatch    = 50
	pingAttempts   = 10
	pingInterval   = 2 * time.Second
)

// PostgresWriter persists products and insight reports to PostgreSQL.
// Every report written by one writer shares its run id and keyword.
type PostgresWriter struct {
	db      *sql.DB
	runID   uuid.UUID
	keyword string
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter for one scrape of keyword.
func NewPostgresWriter(dsn, keyword string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < pingAttempts; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(pingInterval)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db, runID: uuid.New(), keyword: keyword}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

// RunID identifies the insight reports stored by this writer.
func (pw *PostgresWriter) RunID() uuid.UUID { return pw.runID }

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id                      SERIAL PRIMARY KEY,
			url                     TEXT   UNIQUE NOT NULL,
			title                   TEXT   NOT NULL DEFAULT '',
			price                   TEXT   NOT NULL DEFAULT 'N/A',
			category_path           TEXT   NOT NULL DEFAULT 'N/A',
			description             TEXT   NOT NULL DEFAULT 'N/A',
			num_sales               TEXT   NOT NULL DEFAULT 'N/A',
			review_snippets         TEXT[] NOT NULL DEFAULT '{}',
			location                TEXT   NOT NULL DEFAULT '',
			product_reviews_summary TEXT   NOT NULL DEFAULT '',
			created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_path);

		CREATE TABLE IF NOT EXISTS insight_reports (
			id             UUID PRIMARY KEY,
			keyword        TEXT        NOT NULL,
			total_products INTEGER     NOT NULL,
			report         JSONB       NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_insight_reports_keyword ON insight_reports(keyword);
	`)
	return err
}

// Clear deletes all existing products from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM products")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// WriteProducts batch-inserts all products, clearing old data first.
func (pw *PostgresWriter) WriteProducts(products []*models.ProductRecord) error {
	if len(products) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	for i := 0; i < len(products); i += insertBatch {
		end := min(i+insertBatch, len(products))
		query, args := buildProductInsert(products[i:end])
		if _, err := pw.db.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert products: %w", err)
		}
	}
	return nil
}

func buildProductInsert(batch []*models.ProductRecord) (string, []any) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*productColumns)

	for idx, p := range batch {
		base := idx * productColumns
		placeholders := make([]string, productColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			p.URL, p.Title, p.Price, p.CategoryPath, p.Description, p.NumSales,
			pq.Array(p.ReviewSnippets), p.Location, p.ProductReviewsSummary)
	}

	query := fmt.Sprintf(`
		INSERT INTO products (url, title, price, category_path, description, num_sales,
			review_snippets, location, product_reviews_summary)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

// WriteInsights stores the report as JSONB under the writer's run id. Writing
// again for the same run replaces the stored report.
func (pw *PostgresWriter) WriteInsights(report *models.InsightReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("postgres: encode report: %w", err)
	}

	_, err = pw.db.Exec(`
		INSERT INTO insight_reports (id, keyword, total_products, report)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET total_products = EXCLUDED.total_products, report = EXCLUDED.report
	`, pw.runID.String(), pw.keyword, report.TotalProducts, payload)
	if err != nil {
		return fmt.Errorf("postgres: insert report: %w", err)
	}
	return nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored products, used by the insight service.
func (pw *PostgresWriter) FetchAll() ([]*models.ProductRecord, error) {
	rows, err := pw.db.Query(`
		SELECT url, title, price, category_path, description, num_sales,
		       review_snippets, location, product_reviews_summary
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var products []*models.ProductRecord
	for rows.Next() {
		p := &models.ProductRecord{}
		if err := rows.Scan(
			&p.URL, &p.Title, &p.Price, &p.CategoryPath, &p.Description, &p.NumSales,
			pq.Array(&p.ReviewSnippets), &p.Location, &p.ProductReviewsSummary,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if p.ReviewSnippets == nil {
			p.ReviewSnippets = []string{}
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
