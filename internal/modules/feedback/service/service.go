package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/feedback/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/feedback/repository"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
	"github.com/reshetovitsme/mobile-portal/internal/shared/notify"
)

const (
	Event         = "feedback_submitted"
	emailTemplate = "feedback/email.txt"
)

// Notifier delivers operator notifications
type Notifier interface {
	Notify(ctx context.Context, msg notify.Message) error
}

// Service accepts visitor feedback
type Service struct {
	repo     repository.Repository
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new feedback service
func New(repo repository.Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger.With("component", "feedback"),
		now:      time.Now,
	}
}

// Submit validates and stores the form, then tells the operators about
// it. Invalid forms return ErrInvalidForm with form.Errors filled in.
func (s *Service) Submit(ctx context.Context, form *domain.Form) (*domain.Feedback, error) {
	if !form.Validate() {
		return nil, oops.With("fields", form.Errors).Wrap(portalErrors.ErrInvalidForm)
	}

	feedback := &domain.Feedback{
		Email:     form.Email,
		Referer:   form.Referer,
		Body:      form.Body,
		CreatedAt: s.now(),
	}
	if err := s.repo.Save(ctx, feedback); err != nil {
		return nil, err
	}

	msg, err := notify.NewMessage(Event, "Mobile portal feedback", emailTemplate, feedback)
	if err != nil {
		s.logger.Error("Failed to render feedback notification", "feedback_id", feedback.ID, "error", err)
		return feedback, nil
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.logger.Error("Failed to notify about feedback", "feedback_id", feedback.ID, "error", err)
	}

	return feedback, nil
}
