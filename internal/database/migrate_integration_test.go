//go:build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/autentke/autentke/internal/database"
)

func TestMigrateRoundTrip(t *testing.T) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("autentke"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	version, _, err := database.MigrationVersion(connStr)
	require.NoError(t, err)
	assert.Zero(t, version)

	require.NoError(t, database.Migrate(connStr))
	require.NoError(t, database.Migrate(connStr), "second run is a no-op")

	version, dirty, err := database.MigrationVersion(connStr)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	require.NoError(t, database.Rollback(connStr, 1))

	db, err := database.New(ctx, connStr)
	require.NoError(t, err)
	defer db.Close()

	var exists bool
	require.NoError(t, db.QueryRowContext(ctx, `SELECT to_regclass('public.products') IS NOT NULL`).Scan(&exists))
	assert.False(t, exists)
}
