package product_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/autentke/autentke/internal/collection"
	productHandler "github.com/autentke/autentke/internal/http/product"
	"github.com/autentke/autentke/internal/http/web"
	"github.com/autentke/autentke/internal/product"
)

type fixture struct {
	router http.Handler
	repo   *product.MockRepository
	lookup *product.MockCollectionLookup
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := product.NewMockRepository(ctrl)
	lookup := product.NewMockCollectionLookup(ctrl)

	pages, err := web.NewRenderer()
	require.NoError(t, err)

	h := productHandler.NewHandler(product.NewService(repo, lookup, product.Options{
		PromoDiscount: decimal.NewFromInt(10),
	}), pages)

	r := chi.NewRouter()
	r.Route("/products", h.Routes)
	r.Route("/api/v1/products", h.APIRoutes)

	return fixture{router: r, repo: repo, lookup: lookup}
}

func postForm(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func lote() *collection.Collection {
	return &collection.Collection{ID: uuid.New(), Name: "LOTE", Pieces: 10, Freight: 10000, Extras: 5000}
}

func unsold(c *collection.Collection) *product.Product {
	price := int64(16250)

	return &product.Product{
		ID:           uuid.New(),
		CollectionID: c.ID,
		Name:         "ANEL",
		BaseCost:     5000,
		Markup:       decimal.RequireFromString("2.5"),
		SalePrice:    &price,
	}
}

func TestHandler_Create(t *testing.T) {
	f := setup(t)
	c := lote()

	f.lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
	f.repo.EXPECT().CreateProducts(gomock.Any(), gomock.Len(2)).Return(nil)

	w := postForm(t, f.router, "/products", url.Values{
		"collection_id": {c.ID.String()},
		"name":          {"anel prata"},
		"base_cost":     {"50,00"},
		"quantity":      {"2"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestHandler_Create_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{name: "BadCollection", values: url.Values{"collection_id": {"x"}, "name": {"anel"}, "base_cost": {"10"}}},
		{name: "MissingCost", values: url.Values{"collection_id": {uuid.NewString()}, "name": {"anel"}}},
		{name: "BadCost", values: url.Values{"collection_id": {uuid.NewString()}, "name": {"anel"}, "base_cost": {"dez"}}},
		{name: "BadMarkup", values: url.Values{"collection_id": {uuid.NewString()}, "name": {"anel"}, "base_cost": {"10"}, "markup": {"2x"}}},
		{name: "BadQuantity", values: url.Values{"collection_id": {uuid.NewString()}, "name": {"anel"}, "base_cost": {"10"}, "quantity": {"dois"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			w := postForm(t, f.router, "/products", tt.values)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandler_Sell(t *testing.T) {
	c := lote()

	type testCase struct {
		name       string
		values     url.Values
		setupMock  func(f fixture, p *product.Product)
		wantStatus int
		wantPrice  int64
	}

	tests := []testCase{
		{
			name:   "Discount",
			values: url.Values{"buyer": {"ana souza"}, "channel": {"Instagram"}, "discount": {"10"}},
			setupMock: func(f fixture, p *product.Product) {
				f.repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				f.repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantStatus: http.StatusSeeOther,
			wantPrice:  14625,
		},
		{
			name:   "Promo",
			values: url.Values{"buyer": {"ana"}, "promo": {"sim"}},
			setupMock: func(f fixture, p *product.Product) {
				f.repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				f.repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantStatus: http.StatusSeeOther,
			wantPrice:  14625,
		},
		{
			name:   "ManualPrice",
			values: url.Values{"buyer": {"ana"}, "promo": {"sim"}},
			setupMock: func(f fixture, p *product.Product) {
				manual := int64(9990)
				p.SalePrice = &manual

				f.repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				f.repo.EXPECT().MarkSold(gomock.Any(), p).Return(nil)
			},
			wantStatus: http.StatusSeeOther,
			wantPrice:  8991,
		},
		{
			name:       "MalformedDiscount",
			values:     url.Values{"buyer": {"ana"}, "discount": {"dez"}},
			wantStatus: http.StatusBadRequest,
			wantPrice:  16250,
		},
		{
			name:       "MissingBuyer",
			values:     url.Values{"discount": {"10"}},
			wantStatus: http.StatusBadRequest,
			wantPrice:  16250,
		},
		{
			name:   "AlreadySold",
			values: url.Values{"buyer": {"ana"}},
			setupMock: func(f fixture, p *product.Product) {
				f.repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
				f.repo.EXPECT().MarkSold(gomock.Any(), p).Return(product.ErrAlreadySold)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "NotFound",
			values: url.Values{"buyer": {"ana"}},
			setupMock: func(f fixture, p *product.Product) {
				f.repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(nil, product.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantPrice:  16250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			p := unsold(c)

			if tt.setupMock != nil {
				tt.setupMock(f, p)
			}

			w := postForm(t, f.router, "/products/"+p.ID.String()+"/sell", tt.values)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantPrice != 0 {
				assert.Equal(t, tt.wantPrice, p.Price())
			}
		})
	}
}

func TestHandler_Sell_InvalidID(t *testing.T) {
	f := setup(t)

	w := postForm(t, f.router, "/products/not-a-uuid/sell", url.Values{"buyer": {"ana"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Edit_ManualPrice(t *testing.T) {
	f := setup(t)
	p := unsold(lote())

	f.repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
	f.repo.EXPECT().UpdateProduct(gomock.Any(), p).Return(nil)

	w := postForm(t, f.router, "/products/"+p.ID.String()+"/edit", url.Values{
		"name":       {"anel"},
		"base_cost":  {"50"},
		"markup":     {"2,5"},
		"sale_price": {"99,90"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, int64(9990), p.Price())
}

func TestHandler_DeleteAndArchive(t *testing.T) {
	f := setup(t)
	id := uuid.New()

	f.repo.EXPECT().DeleteProduct(gomock.Any(), id).Return(nil)
	f.repo.EXPECT().ArchiveSold(gomock.Any()).Return(int64(2), nil)

	w := postForm(t, f.router, "/products/"+id.String()+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = postForm(t, f.router, "/products/archive", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestHandler_APIGet(t *testing.T) {
	f := setup(t)
	c := lote()
	p := unsold(c)

	f.repo.EXPECT().GetProduct(gomock.Any(), p.ID).Return(p, nil)
	f.lookup.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+p.ID.String(), nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Name  string `json:"name"`
		Sold  bool   `json:"sold"`
		Quote struct {
			UnitCost   int64 `json:"unit_cost"`
			IdealPrice int64 `json:"ideal_price"`
		} `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "ANEL", body.Name)
	assert.False(t, body.Sold)
	assert.Equal(t, int64(6500), body.Quote.UnitCost)
	assert.Equal(t, int64(16250), body.Quote.IdealPrice)
}

func TestHandler_APIList(t *testing.T) {
	f := setup(t)
	collectionID := uuid.New()
	sold := false

	f.repo.EXPECT().
		ListProducts(gomock.Any(), product.ListFilter{Sold: &sold, CollectionID: &collectionID}).
		Return([]*product.Product{unsold(lote())}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?sold=false&collection_id="+collectionID.String(), nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}

func TestHandler_APIList_BadFilter(t *testing.T) {
	f := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?sold=talvez", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
