package expense

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Converter turns foreign-currency amounts into the reporting currency.
type Converter struct {
	Reporting   string
	Foreign     string
	DefaultRate decimal.Decimal
}

// NewConverter creates a converter. A non-positive default rate falls back to
// one.
func NewConverter(reporting, foreign string, defaultRate float64) Converter {
	rate := decimal.NewFromFloat(defaultRate)
	if !rate.IsPositive() {
		rate = decimal.NewFromInt(1)
	}
	return Converter{Reporting: reporting, Foreign: foreign, DefaultRate: rate}
}

// Convert returns foreign*rate rounded to a whole unit. A zero rate uses the
// default rate.
func (c Converter) Convert(foreign, rate float64) (float64, error) {
	r := decimal.NewFromFloat(rate)
	if r.IsZero() {
		r = c.DefaultRate
	}
	if r.IsNegative() {
		return 0, fmt.Errorf("%w: exchange rate must be positive", ErrInvalidInput)
	}
	amount := decimal.NewFromFloat(foreign).Mul(r).Round(0)
	return amount.InexactFloat64(), nil
}
