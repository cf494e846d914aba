package storage

import "mercadolibre-insights/models"

// ProductWriter is the interface any product storage backend must satisfy.
type ProductWriter interface {
	WriteProducts(products []*models.ProductRecord) error
}

// InsightWriter persists a computed insight report.
type InsightWriter interface {
	WriteInsights(report *models.InsightReport) error
}
