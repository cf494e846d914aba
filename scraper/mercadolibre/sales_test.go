package mercadolibre

import "testing"

func TestParseSales(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Nuevo | +100 vendidos", "100"},
		{"+5 mil vendidos", "5000"},
		{"+1,5 mil ventas", "1500"},
		{"2.5 miles vendidos", "2500"},
		{"Más de 50 vendidos", "50"},
		{"+1.000 vendidos", "1.000"},
		{"25 unidades vendidas", "25"},
		{"+10 vendidos para la familia", "10"},
		{"Sin ventas todavía", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ParseSales(tt.text); got != tt.want {
				t.Errorf("ParseSales(%q) = %q; want %q", tt.text, got, tt.want)
			}
		})
	}
}
