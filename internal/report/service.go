package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autentke/autentke/internal/collection"
	"github.com/autentke/autentke/internal/expense"
	"github.com/autentke/autentke/internal/goal"
	"github.com/autentke/autentke/internal/product"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=report
type Products interface {
	List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error)
}

type Collections interface {
	List(ctx context.Context) ([]*collection.Collection, error)
}

type Expenses interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

type Goals interface {
	Current(ctx context.Context) (*goal.Goal, error)
	List(ctx context.Context) ([]*goal.Goal, error)
}

type Options struct {
	StoreName string
	// DefaultGoal in cents, used for months without a stored goal.
	DefaultGoal int64
	TopBuyers   int
}

type Service struct {
	products    Products
	collections Collections
	expenses    Expenses
	goals       Goals
	opts        Options
	now         func() time.Time
}

func NewService(products Products, collections Collections, expenses Expenses, goals Goals, opts Options) *Service {
	if opts.TopBuyers <= 0 {
		opts.TopBuyers = 5
	}

	return &Service{
		products:    products,
		collections: collections,
		expenses:    expenses,
		goals:       goals,
		opts:        opts,
		now:         time.Now,
	}
}

// StockItem is an unsold product with its derived pricing.
type StockItem struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Photo          string          `json:"photo,omitempty"`
	CollectionID   uuid.UUID       `json:"collection_id"`
	CollectionName string          `json:"collection_name"`
	BaseCost       int64           `json:"base_cost"`
	Markup         decimal.Decimal `json:"markup"`
	UnitCost       int64           `json:"unit_cost"`
	IdealPrice     int64           `json:"ideal_price"`
	SalePrice      int64           `json:"sale_price"`
}

// SaleLine is one sold product on the sales report.
type SaleLine struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Photo          string          `json:"photo,omitempty"`
	CollectionName string          `json:"collection_name"`
	BaseCost       int64           `json:"base_cost"`
	Markup         decimal.Decimal `json:"markup"`
	Buyer          string          `json:"buyer"`
	BuyerContact   string          `json:"buyer_contact,omitempty"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	Channel        string          `json:"channel,omitempty"`
	Campaign       string          `json:"campaign,omitempty"`
	Kind           string          `json:"kind"`
	Discount       decimal.Decimal `json:"discount"`
	SalePrice      int64           `json:"sale_price"`
	UnitCost       int64           `json:"unit_cost"`
	Profit         int64           `json:"profit"`
	Archived       bool            `json:"archived"`
	SoldAt         time.Time       `json:"sold_at"`
}

type CollectionLine struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Pieces  int             `json:"pieces"`
	Freight int64           `json:"freight"`
	Extras  int64           `json:"extras"`
	Rateio  decimal.Decimal `json:"rateio"`
	Unsold  int             `json:"unsold"`
}

type Dashboard struct {
	StoreName   string             `json:"store_name"`
	Month       string             `json:"month"`
	Summary     Summary            `json:"summary"`
	Goal        GoalProgress       `json:"goal"`
	Channels    []Bucket           `json:"channels"`
	Campaigns   []Bucket           `json:"campaigns"`
	Categories  []Bucket           `json:"categories"`
	TopBuyers   []Buyer            `json:"top_buyers"`
	Stock       []StockItem        `json:"stock"`
	Collections []CollectionLine   `json:"collections"`
	Expenses    []*expense.Expense `json:"expenses"`
	Goals       []*goal.Goal       `json:"goals"`
	GeneratedAt time.Time          `json:"generated_at"`
}

type History struct {
	StoreName   string     `json:"store_name"`
	Sales       []SaleLine `json:"sales"`
	Summary     Summary    `json:"summary"`
	Channels    []Bucket   `json:"channels"`
	Campaigns   []Bucket   `json:"campaigns"`
	GeneratedAt time.Time  `json:"generated_at"`
}

func (s *Service) snapshot(ctx context.Context, filter product.ListFilter) (Snapshot, error) {
	ps, err := s.products.List(ctx, filter)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing products: %w", err)
	}

	cs, err := s.collections.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing collections: %w", err)
	}

	es, err := s.expenses.List(ctx, expense.ListFilter{})
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing expenses: %w", err)
	}

	return Snapshot{Products: ps, Collections: cs, Expenses: es}, nil
}

// Dashboard composes the main back office view.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	snap, err := s.snapshot(ctx, product.ListFilter{})
	if err != nil {
		return nil, err
	}

	progress, err := s.goalProgress(ctx, Revenue(snap.Products))
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	rateios := snap.Rateios()
	names := collectionNames(snap.Collections)
	stock := Stock(snap.Products)

	items := make([]StockItem, 0, len(stock))
	unsold := make(map[uuid.UUID]int)

	for _, p := range stock {
		rateio := rateios[p.CollectionID]
		unsold[p.CollectionID]++

		items = append(items, StockItem{
			ID:             p.ID,
			Name:           p.Name,
			Photo:          p.Photo,
			CollectionID:   p.CollectionID,
			CollectionName: names[p.CollectionID],
			BaseCost:       p.BaseCost,
			Markup:         p.Markup,
			UnitCost:       p.UnitCost(rateio),
			IdealPrice:     p.IdealPrice(rateio),
			SalePrice:      p.Price(),
		})
	}

	lines := make([]CollectionLine, 0, len(snap.Collections))
	for _, c := range snap.Collections {
		lines = append(lines, CollectionLine{
			ID:      c.ID,
			Name:    c.Name,
			Pieces:  c.Pieces,
			Freight: c.Freight,
			Extras:  c.Extras,
			Rateio:  c.Rateio(),
			Unsold:  unsold[c.ID],
		})
	}

	return &Dashboard{
		StoreName:   s.opts.StoreName,
		Month:       progress.Month,
		Summary:     Summarize(snap),
		Goal:        progress,
		Channels:    Channels(snap.Products),
		Campaigns:   Campaigns(snap.Products),
		Categories:  Categories(snap.Expenses),
		TopBuyers:   TopBuyers(snap.Products, s.opts.TopBuyers),
		Stock:       items,
		Collections: lines,
		Expenses:    snap.Expenses,
		Goals:       goals,
		GeneratedAt: s.now(),
	}, nil
}

// History lists every sale, newest first, with totals.
func (s *Service) History(ctx context.Context) (*History, error) {
	sold := true

	snap, err := s.snapshot(ctx, product.ListFilter{Sold: &sold, NewestSaleFirst: true})
	if err != nil {
		return nil, err
	}

	rateios := snap.Rateios()
	names := collectionNames(snap.Collections)

	sales := make([]SaleLine, 0, len(snap.Products))
	for _, p := range Sold(snap.Products) {
		rateio := rateios[p.CollectionID]

		sales = append(sales, SaleLine{
			ID:             p.ID,
			Name:           p.Name,
			Photo:          p.Photo,
			CollectionName: names[p.CollectionID],
			BaseCost:       p.BaseCost,
			Markup:         p.Markup,
			Buyer:          p.Sale.Buyer,
			BuyerContact:   p.Sale.BuyerContact,
			PaymentMethod:  p.Sale.PaymentMethod,
			Channel:        p.Sale.Channel,
			Campaign:       p.Sale.Campaign,
			Kind:           p.Sale.Kind(),
			Discount:       p.Sale.Discount,
			SalePrice:      p.Price(),
			UnitCost:       p.UnitCost(rateio),
			Profit:         p.NetProfit(rateio),
			Archived:       p.Archived,
			SoldAt:         p.Sale.SoldAt,
		})
	}

	return &History{
		StoreName:   s.opts.StoreName,
		Sales:       sales,
		Summary:     Summarize(snap),
		Channels:    Channels(snap.Products),
		Campaigns:   Campaigns(snap.Products),
		GeneratedAt: s.now(),
	}, nil
}

// goalProgress measures revenue against the current month's goal, falling
// back to the configured default target.
func (s *Service) goalProgress(ctx context.Context, revenue int64) (GoalProgress, error) {
	progress := GoalProgress{
		Month:   goal.MonthKey(s.now()),
		Target:  s.opts.DefaultGoal,
		Revenue: revenue,
		Default: true,
	}

	g, err := s.goals.Current(ctx)

	switch {
	case err == nil:
		progress.Target = g.Target
		progress.Default = false
	case !errors.Is(err, goal.ErrNotFound):
		return GoalProgress{}, fmt.Errorf("getting current goal: %w", err)
	}

	progress.Percent = Progress(revenue, progress.Target)

	return progress, nil
}

func collectionNames(cs []*collection.Collection) map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(cs))
	for _, c := range cs {
		out[c.ID] = c.Name
	}

	return out
}
