package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autentke/autentke/internal/app"
	"github.com/autentke/autentke/internal/config"
	autentkeHttp "github.com/autentke/autentke/internal/http"
	collectionHandler "github.com/autentke/autentke/internal/http/collection"
	dashboardHandler "github.com/autentke/autentke/internal/http/dashboard"
	expenseHandler "github.com/autentke/autentke/internal/http/expense"
	exportHandler "github.com/autentke/autentke/internal/http/export"
	goalHandler "github.com/autentke/autentke/internal/http/goal"
	productHandler "github.com/autentke/autentke/internal/http/product"
	"github.com/autentke/autentke/internal/http/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	pages, err := web.NewRenderer()
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	var (
		dashboardH  = dashboardHandler.NewHandler(a.Reports, pages, cfg.Shop.DefaultMarkup)
		collectionH = collectionHandler.NewHandler(a.Collections, a.Products, a.Imports, pages)
		productH    = productHandler.NewHandler(a.Products, pages)
		expenseH    = expenseHandler.NewHandler(a.Expenses, pages)
		goalH       = goalHandler.NewHandler(a.Goals, pages)
		exportH     = exportHandler.NewHandler(a.Exports)
	)

	router := autentkeHttp.New(autentkeHttp.Options{
		Timeout:        cfg.Server.Timeout,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, dashboardH, collectionH, productH, expenseH, goalH, exportH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr, "store", cfg.App.Name)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
