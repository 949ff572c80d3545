package domain

import "github.com/shopspring/decimal"

// NearZero is the tolerance inside which a journal entry total counts as
// balanced. Credit/debit/rate math is done in decimals, so this only has
// to absorb rounding introduced by caller-supplied values.
var NearZero = decimal.RequireFromString("0.0000000001")

// IsNearZero reports whether d is within the balance tolerance of zero.
func IsNearZero(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(NearZero)
}
