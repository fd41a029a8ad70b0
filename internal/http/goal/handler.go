package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autentke/autentke/internal/goal"
	"github.com/autentke/autentke/internal/http/form"
	"github.com/autentke/autentke/internal/http/web"
	"github.com/autentke/autentke/internal/pricing"
)

type Handler struct {
	svc   *goal.Service
	pages *web.Renderer
}

func NewHandler(svc *goal.Service, pages *web.Renderer) *Handler {
	return &Handler{svc: svc, pages: pages}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.pages.Submit(h.set))
	r.Post("/{id}/delete", h.pages.Submit(h.delete))
}

func (h *Handler) set(r *http.Request) web.Result {
	target, err := form.RequiredCents(r, "target")
	if err != nil {
		return web.Fail(err)
	}

	g, err := h.svc.Set(r.Context(), form.String(r, "month"), target)
	if err != nil {
		return web.Fail(err)
	}

	return web.Ok("Meta de %s definida em %s", g.Month, pricing.FormatBRL(g.Target))
}

func (h *Handler) delete(r *http.Request) web.Result {
	id, err := form.ID(r)
	if err != nil {
		return web.Fail(err)
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		return web.Fail(err)
	}

	return web.Ok("Meta excluída")
}
