// Package pricing holds the shop's price and profit arithmetic.
//
// Amounts are integer cents. The per-unit overhead share (rateio) is kept as an
// unrounded decimal so that a batch whose overhead does not divide evenly still
// prices every unit from the same exact share; rounding to cents happens once,
// on the final figure.
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	// DefaultMarkup is applied when a product is registered without one.
	DefaultMarkup = decimal.RequireFromString("2.5")

	hundred = decimal.NewFromInt(100)
)

// Rateio is the per-unit share of a collection's freight and gift overhead.
// A collection without pieces has no share.
func Rateio(freight, extras int64, pieces int) decimal.Decimal {
	if pieces <= 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(freight + extras).Div(decimal.NewFromInt(int64(pieces)))
}

// UnitCost is base cost plus rateio, in cents.
func UnitCost(baseCost int64, rateio decimal.Decimal) int64 {
	return toCents(decimal.NewFromInt(baseCost).Add(rateio))
}

// IdealPrice is the list price before any discount.
func IdealPrice(baseCost int64, rateio, markup decimal.Decimal) int64 {
	return toCents(decimal.NewFromInt(baseCost).Add(rateio).Mul(markup))
}

// ClampDiscount bounds a discount percentage to [0, 100].
func ClampDiscount(percent decimal.Decimal) decimal.Decimal {
	if percent.IsNegative() {
		return decimal.Zero
	}

	if percent.GreaterThan(hundred) {
		return hundred
	}

	return percent
}

// ApplyDiscount takes percent (0..100, clamped) off price.
func ApplyDiscount(price int64, percent decimal.Decimal) int64 {
	factor := decimal.NewFromInt(1).Sub(ClampDiscount(percent).Div(hundred))
	return toCents(decimal.NewFromInt(price).Mul(factor))
}

// NetProfit is what a sale leaves after the unit's cost and overhead share.
func NetProfit(salePrice, baseCost int64, rateio decimal.Decimal) int64 {
	return toCents(decimal.NewFromInt(salePrice).Sub(decimal.NewFromInt(baseCost)).Sub(rateio))
}

// Percent returns part/whole*100, or 0 when whole is not positive.
func Percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}

	return decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)).Round(2).InexactFloat64()
}

// Average returns total/count in cents, or 0 when count is zero.
func Average(total int64, count int) int64 {
	if count <= 0 {
		return 0
	}

	return toCents(decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(count))))
}

func toCents(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
