package collection

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/collection"
	"github.com/autentke/autentke/internal/http/form"
	"github.com/autentke/autentke/internal/http/web"
	"github.com/autentke/autentke/internal/importer"
	"github.com/autentke/autentke/internal/product"
)

const maxUpload = 10 << 20

type Handler struct {
	collections *collection.Service
	products    *product.Service
	imports     *importer.Service
	pages       *web.Renderer
}

func NewHandler(collections *collection.Service, products *product.Service, imports *importer.Service, pages *web.Renderer) *Handler {
	return &Handler{
		collections: collections,
		products:    products,
		imports:     imports,
		pages:       pages,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.pages.Submit(h.create))
	r.Post("/{id}/edit", h.pages.Submit(h.edit))
	r.Post("/{id}/delete", h.pages.Submit(h.delete))
	r.Post("/{id}/liquidate", h.pages.Submit(h.liquidate))
	r.Post("/{id}/import", h.pages.Submit(h.importList))
}

func params(r *http.Request) (collection.Params, error) {
	pieces, err := form.Int(r, "pieces")
	if err != nil {
		return collection.Params{}, err
	}

	freight, err := form.Cents(r, "freight")
	if err != nil {
		return collection.Params{}, err
	}

	extras, err := form.Cents(r, "extras")
	if err != nil {
		return collection.Params{}, err
	}

	return collection.Params{
		Name:    form.String(r, "name"),
		Pieces:  pieces,
		Freight: freight,
		Extras:  extras,
	}, nil
}

func (h *Handler) create(r *http.Request) web.Result {
	p, err := params(r)
	if err != nil {
		return web.Fail(err)
	}

	c, err := h.collections.Create(r.Context(), p)
	if err != nil {
		return web.Fail(err)
	}

	return web.Ok("Coleção %s criada", c.Name)
}

// edit changes the batch data. Prices already stored on its products are
// kept; liquidation reprices them.
func (h *Handler) edit(r *http.Request) web.Result {
	id, err := form.ID(r)
	if err != nil {
		return web.Fail(err)
	}

	p, err := params(r)
	if err != nil {
		return web.Fail(err)
	}

	c, err := h.collections.Update(r.Context(), id, p)
	if err != nil {
		return web.Fail(err)
	}

	return web.Ok("Coleção %s atualizada", c.Name)
}

func (h *Handler) delete(r *http.Request) web.Result {
	id, err := form.ID(r)
	if err != nil {
		return web.Fail(err)
	}

	if err := h.collections.Delete(r.Context(), id); err != nil {
		return web.Fail(err)
	}

	return web.Ok("Coleção excluída")
}

func (h *Handler) liquidate(r *http.Request) web.Result {
	id, err := form.ID(r)
	if err != nil {
		return web.Fail(err)
	}

	markup, err := form.Decimal(r, "markup")
	if err != nil {
		return web.Fail(err)
	}

	n, err := h.products.Liquidate(r.Context(), id, markup)
	if err != nil {
		return web.Fail(err)
	}

	return web.Ok("%d produto(s) reprecificado(s)", n)
}

func (h *Handler) importList(r *http.Request) web.Result {
	id, err := form.ID(r)
	if err != nil {
		return web.Fail(err)
	}

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return web.Fail(apperr.InvalidWrap(err, "failed to parse upload"))
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return web.Fail(apperr.InvalidWrap(err, "file field is required"))
	}
	defer file.Close()

	res, err := h.imports.Import(r.Context(), id, file)
	if err != nil {
		return web.Fail(err)
	}

	return web.Ok("%d produto(s) importado(s) de %d linha(s)", res.Products, res.Lines)
}
