package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/reshetovitsme/mobile-portal/internal/modules/user/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/user/repository"
)

// Service handles anonymous visitor identity
type Service struct {
	repo   repository.Repository
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new user service
func New(repo repository.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "users"),
		now:    time.Now,
	}
}

// Identify returns the user owning the given cookie value. A missing or
// malformed value yields a freshly created user.
func (s *Service) Identify(ctx context.Context, cookieValue string) (*domain.User, error) {
	id, err := uuid.Parse(cookieValue)
	if err != nil {
		id = uuid.New()
		s.logger.Debug("Issuing new visitor identity", "user_id", id)
	}

	return s.repo.Touch(ctx, id.String(), s.now())
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetUser(ctx, userID)
}
