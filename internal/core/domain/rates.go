package domain

import (
	"github.com/shopspring/decimal"

	"github.com/ale-project/ale_backend/internal/apperrors"
)

// NormalizeRates rescales a caller-supplied rate table so that the quote
// currency maps to exactly 1 and every other entry is expressed relative
// to it (each rate divided by the base's rate). Fails with MissingInput
// when the table has no entry for the quote currency, since there is no
// base to normalize against.
func NormalizeRates(quoteCurrency string, rates map[string]float64) (map[string]decimal.Decimal, error) {
	base, ok := rates[quoteCurrency]
	if !ok || base == 0 {
		return nil, apperrors.New(apperrors.MissingInput,
			"cannot mark-to-market if no current exchange rates are supplied")
	}
	baseRate := decimal.NewFromFloat(base)
	normalized := make(map[string]decimal.Decimal, len(rates))
	for currency, rate := range rates {
		normalized[currency] = decimal.NewFromFloat(rate).Div(baseRate)
	}
	return normalized, nil
}
