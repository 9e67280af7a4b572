package formatting

import (
	"fmt"
	"strconv"
)

// FormatPrice форматирует цену прайс-листа: "60 €", дробную часть только если она есть
func FormatPrice(price float64, currency string) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if currency == "" {
		return s
	}
	return fmt.Sprintf("%s %s", s, currency)
}
