package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/collection"
	"github.com/autentke/autentke/internal/product"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// lote returns the reference collection: 10 pieces, 100.00 freight, 50.00 gifts.
func lote() *collection.Collection {
	return &collection.Collection{ID: uuid.New(), Name: "LOTE", Pieces: 10, Freight: 10000, Extras: 5000}
}

func newService(ctrl *gomock.Controller) (*product.Service, *product.MockRepository, *product.MockCollectionLookup) {
	repo := product.NewMockRepository(ctrl)
	lookup := product.NewMockCollectionLookup(ctrl)

	return product.NewService(repo, lookup, product.Options{PromoDiscount: dec("10")}), repo, lookup
}

func unsold(collectionID uuid.UUID) *product.Product {
	price := int64(16250)

	return &product.Product{
		ID:           uuid.New(),
		CollectionID: collectionID,
		Name:         "ANEL",
		BaseCost:     5000,
		Markup:       dec("2.5"),
		SalePrice:    &price,
	}
}

func priced(p *product.Product, cents int64) *product.Product {
	p.SalePrice = &cents
	return p
}

func TestService_Create(t *testing.T) {
	c := lote()

	type testCase struct {
		name      string
		params    product.CreateParams
		setupMock func(repo *product.MockRepository, lookup *product.MockCollectionLookup)
		wantCount int
		wantPrice int64
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "DefaultMarkup",
			params: product.CreateParams{CollectionID: c.ID, Name: "anel prata", BaseCost: 5000},
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup) {
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				repo.EXPECT().CreateProducts(gomock.Any(), gomock.Len(1)).Return(nil)
			},
			wantCount: 1,
			wantPrice: 16250,
		},
		{
			name:   "SeveralUnits",
			params: product.CreateParams{CollectionID: c.ID, Name: "brinco", BaseCost: 5000, Markup: dec("1.8"), Quantity: 3},
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup) {
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				repo.EXPECT().CreateProducts(gomock.Any(), gomock.Len(3)).Return(nil)
			},
			wantCount: 3,
			wantPrice: 11700,
		},
		{
			name:   "UnknownCollection",
			params: product.CreateParams{CollectionID: c.ID, Name: "colar", BaseCost: 5000},
			setupMock: func(_ *product.MockRepository, lookup *product.MockCollectionLookup) {
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(nil, collection.ErrNotFound)
			},
			wantErr:  true,
			wantKind: apperr.KindInvalid,
		},
		{
			name:     "MissingName",
			params:   product.CreateParams{CollectionID: c.ID, BaseCost: 5000},
			wantErr:  true,
			wantKind: apperr.KindInvalid,
		},
		{
			name:     "NegativeCost",
			params:   product.CreateParams{CollectionID: c.ID, Name: "colar", BaseCost: -1},
			wantErr:  true,
			wantKind: apperr.KindInvalid,
		},
		{
			name:     "NegativeMarkup",
			params:   product.CreateParams{CollectionID: c.ID, Name: "colar", BaseCost: 10, Markup: dec("-2")},
			wantErr:  true,
			wantKind: apperr.KindInvalid,
		},
		{
			name:     "TooManyUnits",
			params:   product.CreateParams{CollectionID: c.ID, Name: "colar", BaseCost: 10, Quantity: product.MaxQuantity + 1},
			wantErr:  true,
			wantKind: apperr.KindInvalid,
		},
		{
			name:   "RepoError",
			params: product.CreateParams{CollectionID: c.ID, Name: "colar", BaseCost: 5000},
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup) {
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				repo.EXPECT().CreateProducts(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr:  true,
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, repo, lookup := newService(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, lookup)
			}

			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			require.Len(t, got, tt.wantCount)

			for _, p := range got {
				assert.Equal(t, tt.wantPrice, p.Price())
				assert.Equal(t, c.ID, p.CollectionID)
				assert.False(t, p.Sold())
			}
		})
	}
}

func TestService_Create_NormalizesName(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, lookup := newService(ctrl)
	c := lote()

	lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
	repo.EXPECT().CreateProducts(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Create(context.Background(), product.CreateParams{CollectionID: c.ID, Name: "  pulseira  ouro ", BaseCost: 100})
	require.NoError(t, err)
	assert.Equal(t, "PULSEIRA OURO", got[0].Name)
	assert.True(t, dec("2.5").Equal(got[0].Markup))
}

func TestService_CreateMany(t *testing.T) {
	c := lote()

	t.Run("OneTransaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo, lookup := newService(ctrl)

		lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
		repo.EXPECT().CreateProducts(gomock.Any(), gomock.Len(4)).Return(nil)

		got, err := svc.CreateMany(context.Background(), []product.CreateParams{
			{CollectionID: c.ID, Name: "anel", BaseCost: 5000, Quantity: 3},
			{CollectionID: c.ID, Name: "colar", BaseCost: 8000},
		})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "ANEL", got[0].Name)
		assert.Equal(t, "COLAR", got[3].Name)
		assert.Equal(t, int64(23750), got[3].Price())

		assert.Equal(t, int64(16250), got[0].Price())
		assert.NotSame(t, got[0].SalePrice, got[1].SalePrice)
	})

	t.Run("InvalidEntryStoresNothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, lookup := newService(ctrl)

		lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)

		_, err := svc.CreateMany(context.Background(), []product.CreateParams{
			{CollectionID: c.ID, Name: "anel", BaseCost: 5000},
			{CollectionID: c.ID, Name: "colar", BaseCost: -1},
			{CollectionID: c.ID, Name: "brinco", BaseCost: 3000},
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

		var itemErr *product.ItemError
		require.ErrorAs(t, err, &itemErr)
		assert.Equal(t, 1, itemErr.Index)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo, lookup := newService(ctrl)

		lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
		repo.EXPECT().CreateProducts(gomock.Any(), gomock.Len(2)).Return(errors.New("db down"))

		got, err := svc.CreateMany(context.Background(), []product.CreateParams{
			{CollectionID: c.ID, Name: "anel", BaseCost: 5000},
			{CollectionID: c.ID, Name: "colar", BaseCost: 8000},
		})
		require.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestService_Sell(t *testing.T) {
	c := lote()
	ten := dec("10")
	over := dec("150")

	type testCase struct {
		name       string
		params     product.SellParams
		product    func() *product.Product
		setupMock  func(repo *product.MockRepository, lookup *product.MockCollectionLookup, p *product.Product)
		wantPrice  int64
		wantProfit int64
		wantKind   string
		wantErr    error
		wantErrKnd apperr.Kind
	}

	tests := []testCase{
		{
			name:    "TenPercent",
			params:  product.SellParams{Buyer: "ana souza", Channel: "Instagram", Discount: &ten},
			product: func() *product.Product { return unsold(c.ID) },
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantPrice:  14625,
			wantProfit: 8125,
			wantKind:   product.KindPromo,
		},
		{
			name:    "NoDiscount",
			params:  product.SellParams{Buyer: "ana"},
			product: func() *product.Product { return unsold(c.ID) },
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantPrice:  16250,
			wantProfit: 9750,
			wantKind:   product.KindNormal,
		},
		{
			name:    "PromoUsesConfiguredDiscount",
			params:  product.SellParams{Buyer: "ana", Promo: true},
			product: func() *product.Product { return unsold(c.ID) },
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantPrice:  14625,
			wantProfit: 8125,
			wantKind:   product.KindPromo,
		},
		{
			name:    "DiscountClamped",
			params:  product.SellParams{Buyer: "ana", Discount: &over},
			product: func() *product.Product { return unsold(c.ID) },
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantPrice:  0,
			wantProfit: -6500,
			wantKind:   product.KindPromo,
		},
		{
			name:    "ManualPrice",
			params:  product.SellParams{Buyer: "ana"},
			product: func() *product.Product { return priced(unsold(c.ID), 9990) },
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantPrice:  9990,
			wantProfit: 3490,
			wantKind:   product.KindNormal,
		},
		{
			name:    "ManualPriceWithPromo",
			params:  product.SellParams{Buyer: "ana", Promo: true},
			product: func() *product.Product { return priced(unsold(c.ID), 9990) },
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantPrice:  8991,
			wantProfit: 2491,
			wantKind:   product.KindPromo,
		},
		{
			name:   "NeverPricedUsesIdealPrice",
			params: product.SellParams{Buyer: "ana", Discount: &ten},
			product: func() *product.Product {
				p := unsold(c.ID)
				p.SalePrice = nil
				return p
			},
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil).Times(2)
				repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantPrice:  14625,
			wantProfit: 8125,
			wantKind:   product.KindPromo,
		},
		{
			name:   "MissingCollectionZeroRateio",
			params: product.SellParams{Buyer: "ana"},
			product: func() *product.Product {
				p := unsold(c.ID)
				p.SalePrice = nil
				return p
			},
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				lookup.EXPECT().Get(gomock.Any(), c.ID).Return(nil, collection.ErrNotFound).Times(2)
				repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantPrice:  12500,
			wantProfit: 7500,
			wantKind:   product.KindNormal,
		},
		{
			name:   "AlreadySold",
			params: product.SellParams{Buyer: "ana"},
			product: func() *product.Product {
				p := unsold(c.ID)
				p.Sale = &product.Sale{Buyer: "Bia"}
				return p
			},
			setupMock: func(repo *product.MockRepository, _ *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
			},
			wantErr:    product.ErrAlreadySold,
			wantErrKnd: apperr.KindConflict,
		},
		{
			name:    "LostRace",
			params:  product.SellParams{Buyer: "ana"},
			product: func() *product.Product { return unsold(c.ID) },
			setupMock: func(repo *product.MockRepository, lookup *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				repo.EXPECT().MarkSold(gomock.Any(), p).Return(product.ErrAlreadySold)
			},
			wantErr:    product.ErrAlreadySold,
			wantErrKnd: apperr.KindConflict,
		},
		{
			name:    "NotFound",
			params:  product.SellParams{Buyer: "ana"},
			product: func() *product.Product { return unsold(c.ID) },
			setupMock: func(repo *product.MockRepository, _ *product.MockCollectionLookup, p *product.Product) {
				repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(nil, product.ErrNotFound)
			},
			wantErr:    product.ErrNotFound,
			wantErrKnd: apperr.KindNotFound,
		},
		{
			name:       "MissingBuyer",
			params:     product.SellParams{Buyer: "   "},
			product:    func() *product.Product { return unsold(c.ID) },
			wantErrKnd: apperr.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, repo, lookup := newService(ctrl)
			p := tt.product()

			if tt.setupMock != nil {
				tt.setupMock(repo, lookup, p)
			}

			got, err := svc.Sell(context.Background(), p.ID, tt.params)

			if tt.wantErrKnd != apperr.KindInternal {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrKnd, apperr.KindOf(err))

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			require.True(t, got.Sold())
			assert.Equal(t, tt.wantPrice, got.Price())
			assert.Equal(t, tt.wantKind, got.Sale.Kind())
			assert.False(t, got.Sale.SoldAt.IsZero())

			quote, err := svc.Quote(context.Background(), got)
			require.NoError(t, err)
			assert.Equal(t, tt.wantProfit, quote.NetProfit)
		})
	}
}

func TestService_Sell_NormalizesBuyer(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newService(ctrl)
	c := lote()
	p := unsold(c.ID)

	repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
	repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)

	got, err := svc.Sell(context.Background(), p.ID, product.SellParams{
		Buyer:         "maria  DA silva",
		BuyerContact:  " @maria ",
		PaymentMethod: "Pix",
		Channel:       " WhatsApp ",
		Campaign:      "dia das mães",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Da Silva", got.Sale.Buyer)
	assert.Equal(t, "@maria", got.Sale.BuyerContact)
	assert.Equal(t, "WhatsApp", got.Sale.Channel)
	assert.Equal(t, "dia das mães", got.Sale.Campaign)
}

func TestService_Sell_PromoDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo, product.NewMockCollectionLookup(ctrl), product.Options{})
	p := unsold(uuid.New())

	repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
	repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)

	got, err := svc.Sell(context.Background(), p.ID, product.SellParams{Buyer: "ana", Promo: true})
	require.NoError(t, err)
	assert.Equal(t, int64(16250), got.Price())
	assert.True(t, got.Sale.Discount.IsZero())
	assert.Equal(t, product.KindNormal, got.Sale.Kind())
}

func TestService_EditThenSell(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newService(ctrl)
	p := unsold(uuid.New())
	manual := int64(9990)

	repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil).Times(2)
	repo.EXPECT().UpdateProduct(gomock.Any(), p).Return(nil)
	repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)

	_, err := svc.Edit(context.Background(), p.ID, product.EditParams{
		Name:      p.Name,
		BaseCost:  p.BaseCost,
		Markup:    p.Markup,
		SalePrice: &manual,
	})
	require.NoError(t, err)

	got, err := svc.Sell(context.Background(), p.ID, product.SellParams{Buyer: "ana"})
	require.NoError(t, err)
	assert.Equal(t, int64(9990), got.Price())
}

func TestService_Edit(t *testing.T) {
	c := lote()

	t.Run("RecomputesFromDiscount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo, lookup := newService(ctrl)
		p := unsold(c.ID)

		repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
		lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
		repo.EXPECT().UpdateProduct(gomock.Any(), p).Return(nil)

		got, err := svc.Edit(context.Background(), p.ID, product.EditParams{
			Name:     "anel ouro",
			BaseCost: 6500,
			Markup:   dec("2"),
			Discount: dec("10"),
		})
		require.NoError(t, err)
		// (65.00 + 15.00) * 2 = 160.00, minus 10% = 144.00
		assert.Equal(t, int64(14400), got.Price())
		assert.Equal(t, "ANEL OURO", got.Name)
		assert.Nil(t, got.Sale)
	})

	t.Run("ManualPrice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo, _ := newService(ctrl)
		p := unsold(c.ID)
		manual := int64(9990)

		repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
		repo.EXPECT().UpdateProduct(gomock.Any(), p).Return(nil)

		got, err := svc.Edit(context.Background(), p.ID, product.EditParams{
			Name:      "anel",
			BaseCost:  5000,
			Markup:    dec("2.5"),
			SalePrice: &manual,
		})
		require.NoError(t, err)
		assert.Equal(t, manual, got.Price())
	})

	t.Run("SoldKeepsDiscount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo, lookup := newService(ctrl)
		p := unsold(c.ID)
		p.Sale = &product.Sale{Buyer: "Ana", Discount: decimal.Zero}

		repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
		lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
		repo.EXPECT().UpdateProduct(gomock.Any(), p).Return(nil)

		got, err := svc.Edit(context.Background(), p.ID, product.EditParams{
			Name:     "anel",
			BaseCost: 5000,
			Markup:   dec("2.5"),
			Discount: dec("10"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(14625), got.Price())
		assert.True(t, dec("10").Equal(got.Sale.Discount))
	})

	t.Run("InvalidMarkup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newService(ctrl)

		_, err := svc.Edit(context.Background(), uuid.New(), product.EditParams{Name: "anel", Markup: decimal.Zero})
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo, _ := newService(ctrl)
		id := uuid.New()

		repo.EXPECT().GetProduct(gomock.Any(), id).Return(nil, product.ErrNotFound)

		_, err := svc.Edit(context.Background(), id, product.EditParams{Name: "anel", Markup: dec("2")})
		assert.ErrorIs(t, err, product.ErrNotFound)
	})
}

func TestService_Liquidate(t *testing.T) {
	c := lote()

	t.Run("RepricesUnsold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo, lookup := newService(ctrl)
		btx := product.NewMockBatchTx(ctrl)

		cheap := unsold(c.ID)
		cheap.BaseCost = 2000

		items := []*product.Product{unsold(c.ID), unsold(c.ID), cheap}

		lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
		repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
		btx.EXPECT().ListUnsoldInCollection(gomock.Any(), c.ID).Return(items, nil)

		markup := dec("1.8")
		// (50.00 + 15.00) * 1.8 = 117.00 and (20.00 + 15.00) * 1.8 = 63.00
		btx.EXPECT().UpdatePricing(gomock.Any(), items[0].ID, markup, int64(11700)).Return(nil)
		btx.EXPECT().UpdatePricing(gomock.Any(), items[1].ID, markup, int64(11700)).Return(nil)
		btx.EXPECT().UpdatePricing(gomock.Any(), cheap.ID, markup, int64(6300)).Return(nil)
		btx.EXPECT().Commit().Return(nil)
		btx.EXPECT().Rollback().Return(nil)

		n, err := svc.Liquidate(context.Background(), c.ID, markup)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("FailureRollsBack", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo, lookup := newService(ctrl)
		btx := product.NewMockBatchTx(ctrl)

		items := []*product.Product{unsold(c.ID), unsold(c.ID)}

		lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
		repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
		btx.EXPECT().ListUnsoldInCollection(gomock.Any(), c.ID).Return(items, nil)
		btx.EXPECT().UpdatePricing(gomock.Any(), items[0].ID, gomock.Any(), gomock.Any()).Return(errors.New("db error"))
		btx.EXPECT().Commit().Times(0)
		btx.EXPECT().Rollback().Return(nil)

		_, err := svc.Liquidate(context.Background(), c.ID, dec("1.8"))
		assert.Error(t, err)
	})

	t.Run("InvalidMarkup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newService(ctrl)

		_, err := svc.Liquidate(context.Background(), c.ID, decimal.Zero)
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	})

	t.Run("UnknownCollection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, lookup := newService(ctrl)

		lookup.EXPECT().Get(gomock.Any(), c.ID).Return(nil, collection.ErrNotFound)

		_, err := svc.Liquidate(context.Background(), c.ID, dec("1.8"))
		assert.ErrorIs(t, err, collection.ErrNotFound)
	})
}

func TestService_ArchiveSold(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newService(ctrl)

	repo.EXPECT().ArchiveSold(gomock.Any()).Return(int64(4), nil)

	n, err := svc.ArchiveSold(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestProduct_NetProfit(t *testing.T) {
	rateio := lote().Rateio()
	p := unsold(uuid.New())

	assert.Equal(t, int64(0), p.NetProfit(rateio))
	assert.Equal(t, int64(16250), p.IdealPrice(rateio))

	price := int64(14625)
	p.SalePrice = &price
	p.Sale = &product.Sale{Buyer: "Ana", Discount: dec("10")}

	assert.Equal(t, int64(8125), p.NetProfit(rateio))
	assert.Equal(t, int64(6500), p.UnitCost(rateio))
}
