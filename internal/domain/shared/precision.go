package shared

import "github.com/shopspring/decimal"

// Decimal places kept by the storage columns. Line totals are at most
// QuantityPlaces+PricePlaces places, which order totals hold exactly.
const (
	QuantityPlaces int32 = 4
	PricePlaces    int32 = 2
)

// Upper bounds (exclusive) for a single line, keeping every order total
// inside its column.
var (
	MaxQuantity     = decimal.NewFromInt(1_000_000)
	MaxPricePerUnit = decimal.NewFromInt(10_000_000)
)

// WithinPlaces reports whether d has no significant digits beyond places.
// Trailing zeros are not significant, so "2.50" is within 1 place.
func WithinPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}
