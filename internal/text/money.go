package text

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFormatter prints amounts with a currency symbol and locale grouping
type MoneyFormatter struct {
	Symbol  string
	printer *message.Printer
}

// NewMoneyFormatter creates a formatter for the given locale, e.g. "en" or "en-IN"
func NewMoneyFormatter(locale, symbol string) (*MoneyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	return &MoneyFormatter{Symbol: symbol, printer: message.NewPrinter(tag)}, nil
}

// DefaultMoneyFormatter uses English grouping and the "Rs. " symbol
func DefaultMoneyFormatter() *MoneyFormatter {
	return &MoneyFormatter{Symbol: "Rs. ", printer: message.NewPrinter(language.English)}
}

// Format renders v with two decimals, e.g. "Rs. 1,225.00" or "-Rs. 40.00"
func (m *MoneyFormatter) Format(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	// avoid printing -0.00 for tiny negative remainders
	v = math.Round(v*100) / 100
	if v == 0 {
		sign = ""
	}
	return sign + m.Symbol + m.printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
