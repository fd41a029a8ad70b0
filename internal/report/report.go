// Package report rolls sales, stock and expenses up into the figures shown on
// the dashboard and the sales report. Everything is recomputed from a
// snapshot on each call.
package report

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autentke/autentke/internal/collection"
	"github.com/autentke/autentke/internal/expense"
	"github.com/autentke/autentke/internal/pricing"
	"github.com/autentke/autentke/internal/product"
)

// NoOrigin labels sales recorded without a channel or campaign.
const NoOrigin = "(sem origem)"

// Snapshot is the data one report is computed from.
type Snapshot struct {
	Products    []*product.Product
	Collections []*collection.Collection
	Expenses    []*expense.Expense
}

// Rateios maps collection ids to their per-piece overhead share. Products whose
// collection is absent get a zero share.
func (s Snapshot) Rateios() map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal, len(s.Collections))
	for _, c := range s.Collections {
		out[c.ID] = c.Rateio()
	}

	return out
}

// Sold returns the sold products of ps, archived ones included.
func Sold(ps []*product.Product) []*product.Product {
	var out []*product.Product

	for _, p := range ps {
		if p.Sold() {
			out = append(out, p)
		}
	}

	return out
}

// Revenue is the sum of the sale prices of sold products.
func Revenue(ps []*product.Product) int64 {
	var total int64

	for _, p := range ps {
		if p.Sold() && p.SalePrice != nil {
			total += *p.SalePrice
		}
	}

	return total
}

// GrossProfit is the sum of the net profit of every sold product.
func GrossProfit(ps []*product.Product, rateios map[uuid.UUID]decimal.Decimal) int64 {
	var total int64

	for _, p := range ps {
		total += p.NetProfit(rateios[p.CollectionID])
	}

	return total
}

func TotalExpenses(es []*expense.Expense) int64 {
	var total int64

	for _, e := range es {
		total += e.Amount
	}

	return total
}

type Summary struct {
	Revenue       int64 `json:"revenue"`
	GrossProfit   int64 `json:"gross_profit"`
	TotalExpenses int64 `json:"total_expenses"`
	NetProfit     int64 `json:"net_profit"`
	AverageTicket int64 `json:"average_ticket"`
	SoldCount     int   `json:"sold_count"`
	StockCount    int   `json:"stock_count"`
}

// Summarize computes the headline figures of a snapshot.
func Summarize(snap Snapshot) Summary {
	sold := Sold(snap.Products)
	revenue := Revenue(sold)
	gross := GrossProfit(sold, snap.Rateios())
	expenses := TotalExpenses(snap.Expenses)

	return Summary{
		Revenue:       revenue,
		GrossProfit:   gross,
		TotalExpenses: expenses,
		NetProfit:     gross - expenses,
		AverageTicket: pricing.Average(revenue, len(sold)),
		SoldCount:     len(sold),
		StockCount:    len(Stock(snap.Products)),
	}
}

// Stock returns unsold products that are not archived.
func Stock(ps []*product.Product) []*product.Product {
	var out []*product.Product

	for _, p := range ps {
		if !p.Sold() && !p.Archived {
			out = append(out, p)
		}
	}

	return out
}

// Bucket is one line of a breakdown.
type Bucket struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Amount  int64   `json:"amount"`
	Percent float64 `json:"percent"`
}

// Channels groups sales by channel, largest revenue first.
func Channels(ps []*product.Product) []Bucket {
	return groupSales(ps, func(s *product.Sale) string { return s.Channel })
}

// Campaigns groups sales by campaign tag, largest revenue first.
func Campaigns(ps []*product.Product) []Bucket {
	return groupSales(ps, func(s *product.Sale) string { return s.Campaign })
}

func groupSales(ps []*product.Product, key func(*product.Sale) string) []Bucket {
	idx := make(map[string]int)

	var (
		out   []Bucket
		total int64
	)

	for _, p := range ps {
		if !p.Sold() {
			continue
		}

		name := key(p.Sale)
		if name == "" {
			name = NoOrigin
		}

		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, Bucket{Name: name})
		}

		out[i].Count++
		out[i].Amount += p.Price()
		total += p.Price()
	}

	return finish(out, total)
}

// Categories sums expenses per category, largest first.
func Categories(es []*expense.Expense) []Bucket {
	idx := make(map[string]int)

	var (
		out   []Bucket
		total int64
	)

	for _, e := range es {
		i, ok := idx[e.Category]
		if !ok {
			i = len(out)
			idx[e.Category] = i
			out = append(out, Bucket{Name: e.Category})
		}

		out[i].Count++
		out[i].Amount += e.Amount
		total += e.Amount
	}

	return finish(out, total)
}

func finish(bs []Bucket, total int64) []Bucket {
	for i := range bs {
		bs[i].Percent = pricing.Percent(bs[i].Amount, total)
	}

	slices.SortFunc(bs, func(a, b Bucket) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return bs
}

type Buyer struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Amount int64  `json:"amount"`
}

// TopBuyers ranks buyers by number of purchases, ties broken alphabetically,
// and keeps the first limit.
func TopBuyers(ps []*product.Product, limit int) []Buyer {
	idx := make(map[string]int)

	var out []Buyer

	for _, p := range ps {
		if !p.Sold() || p.Sale.Buyer == "" {
			continue
		}

		i, ok := idx[p.Sale.Buyer]
		if !ok {
			i = len(out)
			idx[p.Sale.Buyer] = i
			out = append(out, Buyer{Name: p.Sale.Buyer})
		}

		out[i].Count++
		out[i].Amount += p.Price()
	}

	slices.SortFunc(out, func(a, b Buyer) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

type GoalProgress struct {
	Month   string  `json:"month"`
	Target  int64   `json:"target"`
	Revenue int64   `json:"revenue"`
	Percent float64 `json:"percent"`
	// Default is set when no goal was stored for the month.
	Default bool `json:"default"`
}

// Progress returns revenue as a percentage of target; 0 for a non-positive target.
func Progress(revenue, target int64) float64 {
	return pricing.Percent(revenue, target)
}
