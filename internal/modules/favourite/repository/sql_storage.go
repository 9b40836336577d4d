package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/favourite/domain"
)

// SQLStorage implements Repository on top of the relational store
type SQLStorage struct {
	db *sqlx.DB
}

// NewSQLStorage creates a new favourite storage
func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

func (s *SQLStorage) Add(ctx context.Context, userID, url string, created time.Time) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO favourites (user_id, url, created_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id, url) DO NOTHING`), userID, url, created.UTC())
	if err != nil {
		return oops.With("user_id", userID, "url", url, "context", "failed to add favourite").Wrap(err)
	}
	return nil
}

func (s *SQLStorage) Remove(ctx context.Context, userID, url string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM favourites WHERE user_id = ? AND url = ?`), userID, url)
	if err != nil {
		return oops.With("user_id", userID, "url", url, "context", "failed to remove favourite").Wrap(err)
	}
	return nil
}

func (s *SQLStorage) List(ctx context.Context, userID string) ([]*domain.Favourite, error) {
	var favourites []*domain.Favourite
	err := s.db.SelectContext(ctx, &favourites, s.db.Rebind(`
		SELECT id, user_id, url, created_at FROM favourites WHERE user_id = ? ORDER BY created_at, id`), userID)
	if err != nil {
		return nil, oops.With("user_id", userID, "context", "failed to list favourites").Wrap(err)
	}
	return favourites, nil
}

func (s *SQLStorage) Exists(ctx context.Context, userID, url string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, s.db.Rebind(`
		SELECT EXISTS (SELECT 1 FROM favourites WHERE user_id = ? AND url = ?)`), userID, url)
	if err != nil {
		return false, oops.With("user_id", userID, "url", url, "context", "failed to check favourite").Wrap(err)
	}
	return exists, nil
}
