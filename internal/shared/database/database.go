package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/samber/oops"
	_ "modernc.org/sqlite"

	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

//go:embed migrations
var migrations embed.FS

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open connects to the configured relational store.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if !cfg.Driver.IsValid() {
		return nil, oops.With("driver", cfg.Driver).Wrap(portalErrors.ErrUnsupportedDriver)
	}

	db, err := sqlx.ConnectContext(ctx, cfg.Driver.String(), cfg.DSN)
	if err != nil {
		return nil, oops.With("driver", cfg.Driver, "context", "failed to connect to database").Wrap(err)
	}

	if cfg.Driver == config.DatabaseDriverSqlite {
		// A single connection keeps in-memory databases shared and avoids
		// SQLITE_BUSY on concurrent writers.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, oops.With("context", "failed to enable foreign keys").Wrap(err)
		}
	}

	return db, nil
}

// Migrate applies every pending migration for the given driver.
func Migrate(db *sqlx.DB, driver config.DatabaseDriver, logger *slog.Logger) error {
	m, err := newMigrate(db, driver)
	if err != nil {
		return err
	}
	m.Log = &migrateLogger{logger: logger}

	// Closing m would close the underlying connection pool, so it is left open.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.With("driver", driver, "context", "migration up failed").Wrap(err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return oops.With("context", "failed to read migration version").Wrap(err)
	}
	logger.Info("Database schema up to date", "driver", driver, "version", version, "dirty", dirty)

	return nil
}

func newMigrate(db *sqlx.DB, driver config.DatabaseDriver) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations/"+driver.String())
	if err != nil {
		return nil, oops.With("driver", driver, "context", "failed to open embedded migrations").Wrap(err)
	}

	var instance migratedb.Driver
	switch driver {
	case config.DatabaseDriverPostgres:
		instance, err = postgres.WithInstance(db.DB, &postgres.Config{})
	case config.DatabaseDriverSqlite:
		instance, err = sqlite.WithInstance(db.DB, &sqlite.Config{})
	default:
		return nil, oops.With("driver", driver).Wrap(portalErrors.ErrUnsupportedDriver)
	}
	if err != nil {
		return nil, oops.With("driver", driver, "context", "failed to create migration driver").Wrap(err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver.String(), instance)
	if err != nil {
		return nil, oops.With("driver", driver, "context", "failed to create migrate instance").Wrap(err)
	}

	return m, nil
}

// migrateLogger implements migrate.Logger on top of slog
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug("migrate", "message", fmt.Sprintf(format, v...))
}

func (l *migrateLogger) Verbose() bool {
	return false
}
