package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/feedback/domain"
)

// SQLStorage implements Repository on top of the relational store
type SQLStorage struct {
	db *sqlx.DB
}

// NewSQLStorage creates a new feedback storage
func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

func (s *SQLStorage) Save(ctx context.Context, feedback *domain.Feedback) error {
	err := s.db.GetContext(ctx, &feedback.ID, s.db.Rebind(`
		INSERT INTO feedback (email, referer, body, created_at) VALUES (?, ?, ?, ?) RETURNING id`),
		feedback.Email, feedback.Referer, feedback.Body, feedback.CreatedAt.UTC())
	if err != nil {
		return oops.With("context", "failed to save feedback").Wrap(err)
	}
	return nil
}
