package product

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/http/form"
	"github.com/autentke/autentke/internal/http/web"
	"github.com/autentke/autentke/internal/pricing"
	"github.com/autentke/autentke/internal/product"
)

type Handler struct {
	svc   *product.Service
	pages *web.Renderer
}

func NewHandler(svc *product.Service, pages *web.Renderer) *Handler {
	return &Handler{svc: svc, pages: pages}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.pages.Submit(h.create))
	r.Post("/archive", h.pages.Submit(h.archive))
	r.Post("/{id}/sell", h.pages.Submit(h.sell))
	r.Post("/{id}/edit", h.pages.Submit(h.edit))
	r.Post("/{id}/delete", h.pages.Submit(h.delete))
}

func (h *Handler) APIRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

func (h *Handler) create(r *http.Request) web.Result {
	collectionID, err := form.UUID(r, "collection_id")
	if err != nil {
		return web.Fail(err)
	}

	cost, err := form.RequiredCents(r, "base_cost")
	if err != nil {
		return web.Fail(err)
	}

	markup, err := form.Decimal(r, "markup")
	if err != nil {
		return web.Fail(err)
	}

	qty, err := form.Int(r, "quantity")
	if err != nil {
		return web.Fail(err)
	}

	ps, err := h.svc.Create(r.Context(), product.CreateParams{
		CollectionID: collectionID,
		Name:         form.String(r, "name"),
		Photo:        form.String(r, "photo"),
		BaseCost:     cost,
		Markup:       markup,
		Quantity:     qty,
	})
	if err != nil {
		return web.Fail(err)
	}

	return web.Ok("%d x %s cadastrado(s) a %s", len(ps), ps[0].Name, pricing.FormatBRL(ps[0].Price()))
}

func (h *Handler) sell(r *http.Request) web.Result {
	id, err := form.ID(r)
	if err != nil {
		return web.Fail(err)
	}

	discount, err := form.OptionalDecimal(r, "discount")
	if err != nil {
		return web.Fail(err)
	}

	p, err := h.svc.Sell(r.Context(), id, product.SellParams{
		Buyer:         form.String(r, "buyer"),
		BuyerContact:  form.String(r, "buyer_contact"),
		PaymentMethod: form.String(r, "payment_method"),
		Channel:       form.String(r, "channel"),
		Campaign:      form.String(r, "campaign"),
		Discount:      discount,
		Promo:         form.Bool(r, "promo"),
	})
	if err != nil {
		return web.Fail(err)
	}

	return web.Ok("%s vendido para %s por %s", p.Name, p.Sale.Buyer, pricing.FormatBRL(p.Price()))
}

func (h *Handler) edit(r *http.Request) web.Result {
	id, err := form.ID(r)
	if err != nil {
		return web.Fail(err)
	}

	cost, err := form.Cents(r, "base_cost")
	if err != nil {
		return web.Fail(err)
	}

	markup, err := form.Decimal(r, "markup")
	if err != nil {
		return web.Fail(err)
	}

	discount, err := form.Decimal(r, "discount")
	if err != nil {
		return web.Fail(err)
	}

	salePrice, err := form.OptionalCents(r, "sale_price")
	if err != nil {
		return web.Fail(err)
	}

	p, err := h.svc.Edit(r.Context(), id, product.EditParams{
		Name:      form.String(r, "name"),
		Photo:     form.String(r, "photo"),
		BaseCost:  cost,
		Markup:    markup,
		Discount:  discount,
		SalePrice: salePrice,
	})
	if err != nil {
		return web.Fail(err)
	}

	return web.Ok("%s atualizado: %s", p.Name, pricing.FormatBRL(p.Price()))
}

func (h *Handler) delete(r *http.Request) web.Result {
	id, err := form.ID(r)
	if err != nil {
		return web.Fail(err)
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		return web.Fail(err)
	}

	return web.Ok("Produto excluído")
}

func (h *Handler) archive(r *http.Request) web.Result {
	n, err := h.svc.ArchiveSold(r.Context())
	if err != nil {
		return web.Fail(err)
	}

	return web.Ok("%d produto(s) vendido(s) arquivado(s)", n)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := product.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("sold"); s != "" {
		sold, err := strconv.ParseBool(s)
		if err != nil {
			web.JSONError(w, r, apperr.InvalidWrap(err, "invalid sold filter %q", s))
			return
		}

		filter.Sold = &sold
	}

	if s := q.Get("archived"); s != "" {
		archived, err := strconv.ParseBool(s)
		if err != nil {
			web.JSONError(w, r, apperr.InvalidWrap(err, "invalid archived filter %q", s))
			return
		}

		filter.Archived = &archived
	}

	if s := q.Get("collection_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			web.JSONError(w, r, apperr.InvalidWrap(err, "invalid collection_id %q", s))
			return
		}

		filter.CollectionID = &id
	}

	ps, err := h.svc.List(r.Context(), filter)
	if err != nil {
		web.JSONError(w, r, err)
		return
	}

	web.JSON(w, http.StatusOK, toResponseList(ps))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := form.ID(r)
	if err != nil {
		web.JSONError(w, r, err)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		web.JSONError(w, r, err)
		return
	}

	quote, err := h.svc.Quote(r.Context(), p)
	if err != nil {
		web.JSONError(w, r, err)
		return
	}

	resp := toResponse(p)
	resp.Quote = &quoteResponse{
		Rateio:     quote.Rateio,
		UnitCost:   quote.UnitCost,
		IdealPrice: quote.IdealPrice,
		NetProfit:  quote.NetProfit,
	}

	web.JSON(w, http.StatusOK, resp)
}
