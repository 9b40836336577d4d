// Package dbtest opens throwaway migrated databases for repository tests.
package dbtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database"
)

// New returns an isolated in-memory sqlite database with the portal schema
// applied. It is closed when the test finishes.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: config.DatabaseDriverSqlite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_time_format=sqlite", uuid.NewString()),
	}

	db, err := database.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, cfg.Driver, Logger()))

	return db
}

// Logger discards everything below error level.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
