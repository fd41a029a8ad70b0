// Package app wires the stores and services shared by every binary.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/autentke/autentke/internal/collection"
	collectionStore "github.com/autentke/autentke/internal/collection/store"
	"github.com/autentke/autentke/internal/config"
	"github.com/autentke/autentke/internal/database"
	"github.com/autentke/autentke/internal/expense"
	expenseStore "github.com/autentke/autentke/internal/expense/store"
	"github.com/autentke/autentke/internal/export"
	"github.com/autentke/autentke/internal/goal"
	goalStore "github.com/autentke/autentke/internal/goal/store"
	"github.com/autentke/autentke/internal/importer"
	"github.com/autentke/autentke/internal/importer/packinglist"
	"github.com/autentke/autentke/internal/product"
	productStore "github.com/autentke/autentke/internal/product/store"
	"github.com/autentke/autentke/internal/report"
)

type App struct {
	DB        *sql.DB
	StoreName string

	Collections *collection.Service
	Products    *product.Service
	Expenses    *expense.Service
	Goals       *goal.Service
	Reports     *report.Service
	Imports     *importer.Service
	Exports     *export.Service
}

// New connects to the database, applies migrations when enabled and builds
// the services. Close releases the connection.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.DB.Migrate {
		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			return nil, fmt.Errorf("migrating database: %w", err)
		}
	}

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	return Wire(db, cfg), nil
}

// Wire builds the services on an open database.
func Wire(db *sql.DB, cfg *config.Config) *App {
	var (
		collections = collection.NewService(collectionStore.New(db))
		products    = product.NewService(productStore.New(db), collections, product.Options{
			DefaultMarkup: cfg.Shop.DefaultMarkup,
			PromoDiscount: cfg.Shop.PromoDiscount,
		})
		expenses = expense.NewService(expenseStore.New(db))
		goals    = goal.NewService(goalStore.New(db))
		reports  = report.NewService(products, collections, expenses, goals, report.Options{
			StoreName:   cfg.App.Name,
			DefaultGoal: cfg.DefaultGoalCents(),
			TopBuyers:   cfg.Shop.TopBuyers,
		})
	)

	return &App{
		DB:          db,
		StoreName:   cfg.App.Name,
		Collections: collections,
		Products:    products,
		Expenses:    expenses,
		Goals:       goals,
		Reports:     reports,
		Imports:     importer.NewService(packinglist.NewParser(), products),
		Exports:     export.NewService(reports),
	}
}

func (a *App) Close() error {
	return a.DB.Close()
}
