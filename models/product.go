package models

import "strings"

// NotAvailable is the placeholder the scraper stores when a field could not be
// extracted. The insight engine treats it exactly like an absent field.
const NotAvailable = "N/A"

// ProductRecord is one MercadoLibre listing, first filled from the search
// results page and then enriched from the product detail page.
type ProductRecord struct {
	URL                   string   `json:"url"`
	Title                 string   `json:"title,omitempty"`
	Price                 string   `json:"price"`
	CategoryPath          string   `json:"category_path"`
	Description           string   `json:"description"`
	NumSales              string   `json:"num_sales"`
	ReviewSnippets        []string `json:"review_snippets"`
	Location              string   `json:"location,omitempty"`
	ProductReviewsSummary string   `json:"product_reviews_summary,omitempty"`
}

// NewProductRecord returns a record for url with every optional field set to
// the NotAvailable sentinel.
func NewProductRecord(url string) *ProductRecord {
	return &ProductRecord{
		URL:            url,
		Price:          NotAvailable,
		CategoryPath:   NotAvailable,
		Description:    NotAvailable,
		NumSales:       NotAvailable,
		ReviewSnippets: []string{},
	}
}

// ProductDetails is what a detail page visit yields. Zero values mean the
// field was not found on the page.
type ProductDetails struct {
	Title          string
	Description    string
	NumSales       string
	ReviewSnippets []string
	CategoryPath   string
}

// Merge copies every field found on the detail page into the record.
func (p *ProductRecord) Merge(d *ProductDetails) {
	if d == nil {
		return
	}
	if d.Title != "" {
		p.Title = d.Title
	}
	if d.Description != "" {
		p.Description = d.Description
	}
	if d.NumSales != "" {
		p.NumSales = d.NumSales
	}
	if len(d.ReviewSnippets) > 0 {
		p.ReviewSnippets = d.ReviewSnippets
	}
	if d.CategoryPath != "" {
		p.CategoryPath = d.CategoryPath
	}
}

// IsMissing reports whether v carries no usable value.
func IsMissing(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == NotAvailable
}
