package mercadolibre

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// unitsSoldRegexp matches "+100 vendidos", "25 unidades vendidas", "+1.000 ventas".
	unitsSoldRegexp = regexp.MustCompile(`(?i)\+?(\d+(?:\.\d{3})*)\s+(?:vendidos|ventas|unidades vendidas|unidades|compras|compradores)`)
	// thousandsSoldRegexp matches "+5 mil vendidos" and "1,5 miles ventas".
	thousandsSoldRegexp = regexp.MustCompile(`(?i)\+?(\d+(?:[.,]\d+)?)\s*(?:mil|miles)\s+(?:vendidos|ventas)`)
	// moreThanSoldRegexp matches "más de 50 vendidos".
	moreThanSoldRegexp = regexp.MustCompile(`(?i)más de\s+(\d+(?:[.,]\d+)?)\s+(?:vendidos|ventas)`)
)

// ParseSales extracts the number of units sold from a product subtitle such
// as "Nuevo | +5 mil vendidos". It returns "" when the text has no count.
// Counts given in thousands are expanded ("5 mil" is "5000").
func ParseSales(text string) string {
	if m := unitsSoldRegexp.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := thousandsSoldRegexp.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			return ""
		}
		return strconv.Itoa(int(v * 1000))
	}
	if m := moreThanSoldRegexp.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
