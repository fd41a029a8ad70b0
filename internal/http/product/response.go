package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autentke/autentke/internal/product"
)

type productResponse struct {
	ID           uuid.UUID       `json:"id"`
	CollectionID uuid.UUID       `json:"collection_id"`
	Name         string          `json:"name"`
	Photo        string          `json:"photo,omitempty"`
	BaseCost     int64           `json:"base_cost"`
	Markup       decimal.Decimal `json:"markup"`
	SalePrice    *int64          `json:"sale_price,omitempty"`
	Sold         bool            `json:"sold"`
	Archived     bool            `json:"archived"`
	Sale         *saleResponse   `json:"sale,omitempty"`
	Quote        *quoteResponse  `json:"quote,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

type saleResponse struct {
	Buyer         string          `json:"buyer"`
	BuyerContact  string          `json:"buyer_contact,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Channel       string          `json:"channel,omitempty"`
	Campaign      string          `json:"campaign,omitempty"`
	Discount      decimal.Decimal `json:"discount"`
	Kind          string          `json:"kind"`
	SoldAt        time.Time       `json:"sold_at"`
}

type quoteResponse struct {
	Rateio     decimal.Decimal `json:"rateio"`
	UnitCost   int64           `json:"unit_cost"`
	IdealPrice int64           `json:"ideal_price"`
	NetProfit  int64           `json:"net_profit"`
}

func toResponse(p *product.Product) productResponse {
	resp := productResponse{
		ID:           p.ID,
		CollectionID: p.CollectionID,
		Name:         p.Name,
		Photo:        p.Photo,
		BaseCost:     p.BaseCost,
		Markup:       p.Markup,
		SalePrice:    p.SalePrice,
		Sold:         p.Sold(),
		Archived:     p.Archived,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if p.Sale != nil {
		resp.Sale = &saleResponse{
			Buyer:         p.Sale.Buyer,
			BuyerContact:  p.Sale.BuyerContact,
			PaymentMethod: p.Sale.PaymentMethod,
			Channel:       p.Sale.Channel,
			Campaign:      p.Sale.Campaign,
			Discount:      p.Sale.Discount,
			Kind:          p.Sale.Kind(),
			SoldAt:        p.Sale.SoldAt,
		}
	}

	return resp
}

func toResponseList(ps []*product.Product) []productResponse {
	resp := make([]productResponse, len(ps))
	for i, p := range ps {
		resp[i] = toResponse(p)
	}

	return resp
}
