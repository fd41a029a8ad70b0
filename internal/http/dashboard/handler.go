package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/autentke/autentke/internal/http/web"
	"github.com/autentke/autentke/internal/report"
)

type Handler struct {
	reports       *report.Service
	pages         *web.Renderer
	defaultMarkup decimal.Decimal
}

func NewHandler(reports *report.Service, pages *web.Renderer, defaultMarkup decimal.Decimal) *Handler {
	return &Handler{reports: reports, pages: pages, defaultMarkup: defaultMarkup}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.index)
	r.Get("/report", h.history)
}

func (h *Handler) APIRoutes(r chi.Router) {
	r.Get("/dashboard", h.dashboardJSON)
	r.Get("/report", h.historyJSON)
}

type dashboardView struct {
	Dashboard     *report.Dashboard
	DefaultMarkup decimal.Decimal
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	d, err := h.reports.Dashboard(r.Context())
	if err != nil {
		h.pages.Finish(w, r, web.Fail(err))
		return
	}

	h.pages.Render(w, r, http.StatusOK, "dashboard.html", web.Page{
		Title: d.StoreName,
		Flash: web.PopFlash(w, r),
		Data:  dashboardView{Dashboard: d, DefaultMarkup: h.defaultMarkup},
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	hist, err := h.reports.History(r.Context())
	if err != nil {
		h.pages.Finish(w, r, web.Fail(err))
		return
	}

	h.pages.Render(w, r, http.StatusOK, "report.html", web.Page{
		Title: hist.StoreName + " - relatório",
		Flash: web.PopFlash(w, r),
		Data:  hist,
	})
}

func (h *Handler) dashboardJSON(w http.ResponseWriter, r *http.Request) {
	d, err := h.reports.Dashboard(r.Context())
	if err != nil {
		web.JSONError(w, r, err)
		return
	}

	web.JSON(w, http.StatusOK, d)
}

func (h *Handler) historyJSON(w http.ResponseWriter, r *http.Request) {
	hist, err := h.reports.History(r.Context())
	if err != nil {
		web.JSONError(w, r, err)
		return
	}

	web.JSON(w, http.StatusOK, hist)
}
