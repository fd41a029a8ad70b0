package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/autentke/autentke/internal/http/collection"
	"github.com/autentke/autentke/internal/http/dashboard"
	"github.com/autentke/autentke/internal/http/expense"
	"github.com/autentke/autentke/internal/http/export"
	"github.com/autentke/autentke/internal/http/goal"
	"github.com/autentke/autentke/internal/http/product"
)

type Options struct {
	Timeout        time.Duration
	AllowedOrigins []string
}

func New(
	opts Options,
	dashboardV1 *dashboard.Handler,
	collectionsV1 *collection.Handler,
	productsV1 *product.Handler,
	expensesV1 *expense.Handler,
	goalsV1 *goal.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	dashboardV1.Routes(router)

	router.Route("/collections", collectionsV1.Routes)
	router.Route("/products", productsV1.Routes)
	router.Route("/expenses", expensesV1.Routes)
	router.Route("/goals", goalsV1.Routes)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		dashboardV1.APIRoutes(r)
		exportV1.Routes(r)

		r.Route("/products", productsV1.APIRoutes)
		r.Route("/expenses", expensesV1.APIRoutes)
	})

	return router
}
