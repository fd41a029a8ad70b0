package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/autentke/autentke/internal/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRateio(t *testing.T) {
	tests := []struct {
		name    string
		freight int64
		extras  int64
		pieces  int
		want    decimal.Decimal
	}{
		{name: "EvenSplit", freight: 10000, extras: 5000, pieces: 10, want: d("1500")},
		{name: "NoPieces", freight: 10000, extras: 5000, pieces: 0, want: decimal.Zero},
		{name: "NegativePieces", freight: 10000, extras: 0, pieces: -1, want: decimal.Zero},
		{name: "NoOverhead", freight: 0, extras: 0, pieces: 4, want: decimal.Zero},
		{name: "UnevenSplit", freight: 10000, extras: 0, pieces: 3, want: d("10000").Div(d("3"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Rateio(tt.freight, tt.extras, tt.pieces)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestIdealPrice(t *testing.T) {
	rateio := pricing.Rateio(10000, 5000, 10)

	assert.Equal(t, int64(16250), pricing.IdealPrice(5000, rateio, d("2.5")))
	assert.Equal(t, int64(11700), pricing.IdealPrice(5000, rateio, d("1.8")))
	assert.Equal(t, int64(12500), pricing.IdealPrice(5000, decimal.Zero, pricing.DefaultMarkup))

	// 100.00 / 3 per unit, 10.00 base, markup 2 -> (1000 + 3333.33) * 2 = 8666.67
	assert.Equal(t, int64(8667), pricing.IdealPrice(1000, pricing.Rateio(10000, 0, 3), d("2")))
}

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name    string
		price   int64
		percent decimal.Decimal
		want    int64
	}{
		{name: "Identity", price: 16250, percent: decimal.Zero, want: 16250},
		{name: "Ten", price: 16250, percent: d("10"), want: 14625},
		{name: "Full", price: 16250, percent: d("100"), want: 0},
		{name: "Fractional", price: 10000, percent: d("12.5"), want: 8750},
		{name: "NegativeClamped", price: 10000, percent: d("-20"), want: 10000},
		{name: "AboveHundredClamped", price: 10000, percent: d("150"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.ApplyDiscount(tt.price, tt.percent))
		})
	}
}

func TestNetProfit(t *testing.T) {
	rateio := pricing.Rateio(10000, 5000, 10)

	assert.Equal(t, int64(8125), pricing.NetProfit(14625, 5000, rateio))
	assert.Equal(t, int64(-500), pricing.NetProfit(6000, 5000, rateio))
	assert.Equal(t, int64(6500), pricing.UnitCost(5000, rateio))
}

func TestClampDiscount(t *testing.T) {
	assert.True(t, pricing.ClampDiscount(d("-1")).IsZero())
	assert.True(t, pricing.ClampDiscount(d("101")).Equal(d("100")))
	assert.True(t, pricing.ClampDiscount(d("35.5")).Equal(d("35.5")))
}

func TestPercentAndAverage(t *testing.T) {
	assert.Equal(t, 0.0, pricing.Percent(14625, 0))
	assert.Equal(t, 0.0, pricing.Percent(14625, -10))
	assert.Equal(t, 50.0, pricing.Percent(250000, 500000))
	assert.Equal(t, 2.93, pricing.Percent(14625, 500000))

	assert.Equal(t, int64(0), pricing.Average(14625, 0))
	assert.Equal(t, int64(14625), pricing.Average(29250, 2))
	assert.Equal(t, int64(3333), pricing.Average(10000, 3))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "162.50", want: 16250},
		{in: "162,50", want: 16250},
		{in: "1.234,56", want: 123456},
		{in: "1,234.56", want: 123456},
		{in: "R$ 10", want: 1000},
		{in: "  7 ", want: 700},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := pricing.ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "162.50", pricing.FormatAmount(16250))
	assert.Equal(t, "-68.75", pricing.FormatAmount(-6875))
	assert.Equal(t, "0.00", pricing.FormatAmount(0))
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{14625, "R$ 146,25"},
		{123456, "R$ 1.234,56"},
		{100000000, "R$ 1.000.000,00"},
		{-6875, "-R$ 68,75"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.FormatBRL(tt.cents))
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "2,5", pricing.FormatDecimal(decimal.RequireFromString("2.5")))
	assert.Equal(t, "10", pricing.FormatDecimal(decimal.NewFromInt(10)))
}
