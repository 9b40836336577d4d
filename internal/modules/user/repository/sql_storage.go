package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/user/domain"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

// SQLStorage implements Repository on top of the relational store
type SQLStorage struct {
	db *sqlx.DB
}

// NewSQLStorage creates a new user storage
func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

func (s *SQLStorage) Touch(ctx context.Context, userID string, seen time.Time) (*domain.User, error) {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO portal_users (id, created_at, last_seen) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET last_seen = excluded.last_seen`), userID, seen.UTC(), seen.UTC())
	if err != nil {
		return nil, oops.With("user_id", userID, "context", "failed to touch user").Wrap(err)
	}
	return s.GetUser(ctx, userID)
}

func (s *SQLStorage) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(`SELECT id, created_at, last_seen FROM portal_users WHERE id = ?`), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("user_id", userID).Wrap(portalErrors.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("user_id", userID, "context", "failed to read user").Wrap(err)
	}
	return &user, nil
}
