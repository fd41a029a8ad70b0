package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/pricing"
)

var (
	ErrNotFound    = apperr.NotFound("product not found")
	ErrAlreadySold = apperr.Conflict("product already sold")
)

// Sale kinds shown on the sales report.
const (
	KindNormal = "NORMAL"
	KindPromo  = "PROMOÇÃO"
)

// Product is a single piece of stock. Sale is set exactly when the piece has
// been sold; an unsold product carries no buyer, payment or channel data.
type Product struct {
	ID           uuid.UUID
	CollectionID uuid.UUID
	Name         string
	Photo        string
	BaseCost     int64 // cents
	Markup       decimal.Decimal
	SalePrice    *int64 // cents, nil until priced
	Archived     bool
	Sale         *Sale
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Sale holds what is recorded when a product leaves the stock.
type Sale struct {
	Buyer         string
	BuyerContact  string
	PaymentMethod string
	Channel       string
	Campaign      string
	Discount      decimal.Decimal // percent, 0..100
	SoldAt        time.Time
}

func (s *Sale) Kind() string {
	if s.Discount.IsPositive() {
		return KindPromo
	}

	return KindNormal
}

func (p *Product) Sold() bool { return p.Sale != nil }

// Price returns the current sale price, or 0 when none was computed yet.
func (p *Product) Price() int64 {
	if p.SalePrice == nil {
		return 0
	}

	return *p.SalePrice
}

// IdealPrice is (base cost + rateio) x markup.
func (p *Product) IdealPrice(rateio decimal.Decimal) int64 {
	return pricing.IdealPrice(p.BaseCost, rateio, p.Markup)
}

// UnitCost is base cost plus the collection's overhead share.
func (p *Product) UnitCost(rateio decimal.Decimal) int64 {
	return pricing.UnitCost(p.BaseCost, rateio)
}

// NetProfit is zero for unsold products.
func (p *Product) NetProfit(rateio decimal.Decimal) int64 {
	if !p.Sold() || p.SalePrice == nil {
		return 0
	}

	return pricing.NetProfit(*p.SalePrice, p.BaseCost, rateio)
}
