//go:build integration

// Package databasetest starts a throwaway PostgreSQL for store tests.
package databasetest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/autentke/autentke/internal/database"
)

// New starts a PostgreSQL container, applies the migrations and returns an
// open connection. Everything is torn down when the test ends.
func New(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("autentke"),
		postgres.WithUsername("autentke"),
		postgres.WithPassword("autentke"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	if err := database.Migrate(connStr); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	db, err := database.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// Truncate empties every table between subtests.
func Truncate(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec(`TRUNCATE products, collections, expenses, goals`); err != nil {
		t.Fatalf("Failed to truncate: %v", err)
	}
}
