package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"mercadolibre-insights/models"
)

// JSONWriter writes a value to a UTF-8 JSON file indented with four spaces.
// Characters such as '>' in category paths are written as-is.
type JSONWriter struct {
	path string
}

func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// WriteProducts writes the products as a JSON array, replacing the file.
func (j *JSONWriter) WriteProducts(products []*models.ProductRecord) error {
	if products == nil {
		products = []*models.ProductRecord{}
	}
	return j.write(products)
}

// WriteInsights writes the report as a JSON object, replacing the file.
func (j *JSONWriter) WriteInsights(report *models.InsightReport) error {
	return j.write(report)
}

func (j *JSONWriter) write(v any) error {
	if err := ensureDir(j.path); err != nil {
		return fmt.Errorf("json: %w", err)
	}

	f, err := os.Create(j.path)
	if err != nil {
		return fmt.Errorf("json: create file %q: %w", j.path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return fmt.Errorf("json: encode %q: %w", j.path, err)
	}
	return f.Close()
}
