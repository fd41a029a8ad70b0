package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/collection"
	"github.com/autentke/autentke/internal/pricing"
	"github.com/autentke/autentke/internal/textnorm"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	CreateProducts(ctx context.Context, ps []*Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	MarkSold(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ArchiveSold(ctx context.Context) (int64, error)

	BeginBatch(ctx context.Context) (BatchTx, error)
}

// BatchTx reprices several products atomically.
type BatchTx interface {
	ListUnsoldInCollection(ctx context.Context, collectionID uuid.UUID) ([]*Product, error)
	UpdatePricing(ctx context.Context, id uuid.UUID, markup decimal.Decimal, salePrice int64) error
	Commit() error
	Rollback() error
}

// CollectionLookup resolves the collection a product belongs to.
type CollectionLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*collection.Collection, error)
}

type Options struct {
	DefaultMarkup decimal.Decimal
	// PromoDiscount is the percentage taken off a promo sale. Zero turns
	// promotions off.
	PromoDiscount decimal.Decimal
}

type Service struct {
	repo        Repository
	collections CollectionLookup
	opts        Options
	now         func() time.Time
}

func NewService(repo Repository, collections CollectionLookup, opts Options) *Service {
	if !opts.DefaultMarkup.IsPositive() {
		opts.DefaultMarkup = pricing.DefaultMarkup
	}

	return &Service{
		repo:        repo,
		collections: collections,
		opts:        opts,
		now:         time.Now,
	}
}

type ListFilter struct {
	Sold         *bool
	Archived     *bool
	CollectionID *uuid.UUID
	// NewestSaleFirst orders by sale date descending.
	NewestSaleFirst bool
}

// MaxQuantity bounds how many identical units one create may register.
const MaxQuantity = 1000

type CreateParams struct {
	CollectionID uuid.UUID
	Name         string
	Photo        string
	BaseCost     int64
	Markup       decimal.Decimal
	Quantity     int
}

func (s *Service) normalize(params CreateParams) (CreateParams, error) {
	params.Name = textnorm.ProductName(params.Name)

	if params.Name == "" {
		return params, apperr.Invalid("product name is required")
	}

	if params.BaseCost < 0 {
		return params, apperr.Invalid("base cost cannot be negative")
	}

	if params.Quantity == 0 {
		params.Quantity = 1
	}

	if params.Quantity < 0 {
		return params, apperr.Invalid("quantity must be positive")
	}

	if params.Quantity > MaxQuantity {
		return params, apperr.Invalid("quantity cannot exceed %d", MaxQuantity)
	}

	if params.Markup.IsZero() {
		params.Markup = s.opts.DefaultMarkup
	}

	if params.Markup.IsNegative() {
		return params, apperr.Invalid("markup must be positive")
	}

	return params, nil
}

// ItemError reports which entry of a CreateMany call was rejected.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string { return fmt.Sprintf("item %d: %v", e.Index+1, e.Err) }

func (e *ItemError) Unwrap() error { return e.Err }

// Create registers Quantity identical pieces priced at the ideal price of the
// collection they belong to.
func (s *Service) Create(ctx context.Context, params CreateParams) ([]*Product, error) {
	ps, err := s.CreateMany(ctx, []CreateParams{params})
	if err != nil {
		var itemErr *ItemError
		if errors.As(err, &itemErr) {
			return nil, itemErr.Err
		}

		return nil, err
	}

	return ps, nil
}

// CreateMany validates and prices every entry first and then stores all the
// resulting products in one transaction, so either every entry is created or
// none is.
func (s *Service) CreateMany(ctx context.Context, items []CreateParams) ([]*Product, error) {
	collections := make(map[uuid.UUID]*collection.Collection)

	var ps []*Product

	for i, params := range items {
		params, err := s.normalize(params)
		if err != nil {
			return nil, &ItemError{Index: i, Err: err}
		}

		c, ok := collections[params.CollectionID]
		if !ok {
			c, err = s.collections.Get(ctx, params.CollectionID)
			if err != nil {
				if errors.Is(err, collection.ErrNotFound) {
					return nil, &ItemError{Index: i, Err: apperr.Invalid("unknown collection %s", params.CollectionID)}
				}

				return nil, fmt.Errorf("resolving collection: %w", err)
			}

			collections[params.CollectionID] = c
		}

		price := pricing.IdealPrice(params.BaseCost, c.Rateio(), params.Markup)

		for range params.Quantity {
			unitPrice := price
			ps = append(ps, &Product{
				CollectionID: c.ID,
				Name:         params.Name,
				Photo:        params.Photo,
				BaseCost:     params.BaseCost,
				Markup:       params.Markup,
				SalePrice:    &unitPrice,
			})
		}
	}

	if len(ps) == 0 {
		return nil, nil
	}

	if err := s.repo.CreateProducts(ctx, ps); err != nil {
		return nil, err
	}

	return ps, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

// Quote is the derived pricing of one product.
type Quote struct {
	Rateio     decimal.Decimal
	UnitCost   int64
	IdealPrice int64
	NetProfit  int64
}

// Quote prices p against its collection.
func (s *Service) Quote(ctx context.Context, p *Product) (Quote, error) {
	rateio, err := s.rateio(ctx, p)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Rateio:     rateio,
		UnitCost:   p.UnitCost(rateio),
		IdealPrice: p.IdealPrice(rateio),
		NetProfit:  p.NetProfit(rateio),
	}, nil
}

type SellParams struct {
	Buyer         string
	BuyerContact  string
	PaymentMethod string
	Channel       string
	Campaign      string
	// Discount in percent. When nil, Promo selects the configured promo
	// discount and otherwise no discount applies.
	Discount *decimal.Decimal
	Promo    bool
}

// Sell records a sale at the product's current price minus the discount. A
// product that was never priced sells from its ideal price.
func (s *Service) Sell(ctx context.Context, id uuid.UUID, params SellParams) (*Product, error) {
	buyer := textnorm.PersonName(params.Buyer)
	if buyer == "" {
		return nil, apperr.Invalid("buyer name is required")
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Sold() {
		return nil, ErrAlreadySold
	}

	discount := decimal.Zero

	switch {
	case params.Discount != nil:
		discount = pricing.ClampDiscount(*params.Discount)
	case params.Promo:
		discount = s.opts.PromoDiscount
	}

	list := p.Price()
	if p.SalePrice == nil {
		rateio, err := s.rateio(ctx, p)
		if err != nil {
			return nil, err
		}

		list = p.IdealPrice(rateio)
	}

	price := pricing.ApplyDiscount(list, discount)
	p.SalePrice = &price
	p.Sale = &Sale{
		Buyer:         buyer,
		BuyerContact:  textnorm.Label(params.BuyerContact),
		PaymentMethod: textnorm.Label(params.PaymentMethod),
		Channel:       textnorm.Label(params.Channel),
		Campaign:      textnorm.Label(params.Campaign),
		Discount:      discount,
		SoldAt:        s.now(),
	}

	if err := s.repo.MarkSold(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

type EditParams struct {
	Name     string
	Photo    string
	BaseCost int64
	Markup   decimal.Decimal
	Discount decimal.Decimal
	// SalePrice overrides the computed price when set.
	SalePrice *int64
}

// Edit updates the mutable fields and reprices from the discount.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, params EditParams) (*Product, error) {
	params.Name = textnorm.ProductName(params.Name)

	if params.Name == "" {
		return nil, apperr.Invalid("product name is required")
	}

	if params.BaseCost < 0 {
		return nil, apperr.Invalid("base cost cannot be negative")
	}

	if !params.Markup.IsPositive() {
		return nil, apperr.Invalid("markup must be positive")
	}

	if params.SalePrice != nil && *params.SalePrice < 0 {
		return nil, apperr.Invalid("sale price cannot be negative")
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = params.Name
	p.Photo = params.Photo
	p.BaseCost = params.BaseCost
	p.Markup = params.Markup

	discount := pricing.ClampDiscount(params.Discount)

	if params.SalePrice != nil {
		p.SalePrice = params.SalePrice
	} else {
		rateio, err := s.rateio(ctx, p)
		if err != nil {
			return nil, err
		}

		computed := pricing.ApplyDiscount(p.IdealPrice(rateio), discount)
		p.SalePrice = &computed
	}

	if p.Sold() {
		p.Sale.Discount = discount
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}

// ArchiveSold hides every sold product from the daily stock view.
func (s *Service) ArchiveSold(ctx context.Context) (int64, error) {
	return s.repo.ArchiveSold(ctx)
}

// Liquidate reprices every unsold product of a collection with a new markup.
// Either all products are repriced or none is.
func (s *Service) Liquidate(ctx context.Context, collectionID uuid.UUID, markup decimal.Decimal) (int, error) {
	if !markup.IsPositive() {
		return 0, apperr.Invalid("markup must be positive")
	}

	c, err := s.collections.Get(ctx, collectionID)
	if err != nil {
		return 0, err
	}

	btx, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin liquidation: %w", err)
	}
	defer btx.Rollback()

	ps, err := btx.ListUnsoldInCollection(ctx, c.ID)
	if err != nil {
		return 0, fmt.Errorf("listing unsold products: %w", err)
	}

	rateio := c.Rateio()

	for _, p := range ps {
		price := pricing.IdealPrice(p.BaseCost, rateio, markup)
		if err := btx.UpdatePricing(ctx, p.ID, markup, price); err != nil {
			return 0, fmt.Errorf("repricing product %s: %w", p.ID, err)
		}
	}

	if err := btx.Commit(); err != nil {
		return 0, fmt.Errorf("commit liquidation: %w", err)
	}

	slog.InfoContext(ctx, "collection liquidated",
		"collection_id", c.ID,
		"markup", markup.String(),
		"repriced", len(ps))

	return len(ps), nil
}

// rateio resolves the product's collection. A product whose collection has
// vanished is priced with no overhead share.
func (s *Service) rateio(ctx context.Context, p *Product) (decimal.Decimal, error) {
	c, err := s.collections.Get(ctx, p.CollectionID)
	if err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			slog.WarnContext(ctx, "product without collection priced with zero rateio",
				"product_id", p.ID, "collection_id", p.CollectionID)

			return decimal.Zero, nil
		}

		return decimal.Zero, fmt.Errorf("resolving collection: %w", err)
	}

	return c.Rateio(), nil
}
