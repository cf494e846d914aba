package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountMarshal(t *testing.T) {
	tests := []struct {
		in   Amount
		want string
	}{
		{Known(200), `200`},
		{Known(12.5), `12.5`},
		{Amount{}, `"N/A"`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestAmountUnmarshalSentinel(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"N/A"`), &a))
	assert.False(t, a.Valid)

	require.NoError(t, json.Unmarshal([]byte(`99.9`), &a))
	assert.True(t, a.Valid)
	assert.Equal(t, 99.9, a.Value)
}

func TestFeatureCountsKeepOrder(t *testing.T) {
	fc := FeatureCounts{{"material", 2}, {"size", 0}, {"brand", 1}}

	got, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Equal(t, `{"material":2,"size":0,"brand":1}`, string(got))
	assert.Equal(t, []string{"material", "brand"}, fc.Mentioned())
	assert.Equal(t, 0, fc.Mentions("warranty"))
}

func TestCategorySentimentsLookup(t *testing.T) {
	cs := CategorySentiments{
		{Category: "quality", Result: SentimentResult{Sentiment: "positive"}},
		{Category: "value", Result: SentimentResult{Sentiment: "negative"}},
	}
	assert.Equal(t, "positive", cs.SentimentOf("quality"))
	assert.Equal(t, "negative", cs.SentimentOf("value"))
	assert.Equal(t, "", cs.SentimentOf("customer_service"))

	got, err := json.Marshal(cs)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"quality":\{.*\},"value":\{.*\}\}$`, string(got))
}

func TestProductRecordMerge(t *testing.T) {
	p := NewProductRecord("https://articulo.mercadolibre.com.ar/MLA-1")
	p.Price = "1.500"
	p.Merge(&ProductDetails{Description: "Remera de algodón", ReviewSnippets: []string{"Excelente calidad"}})

	assert.Equal(t, "1.500", p.Price)
	assert.Equal(t, "Remera de algodón", p.Description)
	assert.Equal(t, NotAvailable, p.NumSales)
	assert.Equal(t, NotAvailable, p.CategoryPath)
	assert.Len(t, p.ReviewSnippets, 1)

	p.Merge(nil)
	assert.Equal(t, "Remera de algodón", p.Description)
}

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(""))
	assert.True(t, IsMissing(" N/A "))
	assert.False(t, IsMissing("0"))
}
