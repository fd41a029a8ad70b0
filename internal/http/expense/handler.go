package expense

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/expense"
	"github.com/autentke/autentke/internal/http/form"
	"github.com/autentke/autentke/internal/http/web"
	"github.com/autentke/autentke/internal/pricing"
)

type Handler struct {
	svc   *expense.Service
	pages *web.Renderer
}

func NewHandler(svc *expense.Service, pages *web.Renderer) *Handler {
	return &Handler{svc: svc, pages: pages}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.pages.Submit(h.create))
	r.Post("/{id}/delete", h.pages.Submit(h.delete))
}

func (h *Handler) APIRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

func (h *Handler) create(r *http.Request) web.Result {
	amount, err := form.RequiredCents(r, "amount")
	if err != nil {
		return web.Fail(err)
	}

	spentAt, err := form.Date(r, "spent_at")
	if err != nil {
		return web.Fail(err)
	}

	e, err := h.svc.Create(r.Context(), expense.CreateParams{
		Description: form.String(r, "description"),
		Amount:      amount,
		Category:    form.String(r, "category"),
		SpentAt:     spentAt,
	})
	if err != nil {
		return web.Fail(err)
	}

	return web.Ok("Despesa %s de %s adicionada", e.Description, pricing.FormatBRL(e.Amount))
}

func (h *Handler) delete(r *http.Request) web.Result {
	id, err := form.ID(r)
	if err != nil {
		return web.Fail(err)
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		return web.Fail(err)
	}

	return web.Ok("Despesa excluída")
}

// list filters by category and by a from/to day range; both days are
// included.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := expense.ListFilter{Category: q.Get("category")}

	if s := q.Get("from"); s != "" {
		from, err := time.Parse(time.DateOnly, s)
		if err != nil {
			web.JSONError(w, r, apperr.InvalidWrap(err, "invalid from date %q", s))
			return
		}

		filter.From = &from
	}

	if s := q.Get("to"); s != "" {
		to, err := time.Parse(time.DateOnly, s)
		if err != nil {
			web.JSONError(w, r, apperr.InvalidWrap(err, "invalid to date %q", s))
			return
		}

		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	es, err := h.svc.List(r.Context(), filter)
	if err != nil {
		web.JSONError(w, r, err)
		return
	}

	if es == nil {
		es = []*expense.Expense{}
	}

	web.JSON(w, http.StatusOK, es)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := form.ID(r)
	if err != nil {
		web.JSONError(w, r, err)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		web.JSONError(w, r, err)
		return
	}

	web.JSON(w, http.StatusOK, e)
}
