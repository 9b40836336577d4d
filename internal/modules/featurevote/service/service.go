package service

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/repository"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
	"github.com/reshetovitsme/mobile-portal/internal/shared/notify"
)

const (
	Event         = "feature_submitted"
	emailTemplate = "featurevote/email.txt"
)

// Notifier delivers operator notifications
type Notifier interface {
	Notify(ctx context.Context, msg notify.Message) error
}

// Transactor runs fn inside a single transaction
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service handles feature suggestions and votes
type Service struct {
	repo     repository.Repository
	tx       Transactor
	notifier Notifier
	markdown goldmark.Markdown
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new feature vote service
func New(repo repository.Repository, tx Transactor, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tx:       tx,
		notifier: notifier,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		logger: logger.With("component", "featurevote"),
		now:    time.Now,
	}
}

// ListPublic lists moderated features, most recently discussed first
func (s *Service) ListPublic(ctx context.Context) ([]*domain.Feature, error) {
	return s.repo.ListPublic(ctx)
}

// Get retrieves a public feature
func (s *Service) Get(ctx context.Context, id int64) (*domain.Feature, error) {
	return s.repo.GetPublic(ctx, id)
}

// Submit stores a suggestion for moderation and notifies the operators.
// Invalid forms return ErrInvalidForm with form.Errors filled in.
func (s *Service) Submit(ctx context.Context, form *domain.Form) (*domain.Feature, error) {
	if !form.Validate() {
		return nil, oops.With("fields", form.Errors).Wrap(portalErrors.ErrInvalidForm)
	}

	feature := &domain.Feature{
		UserName:    form.UserName,
		UserEmail:   form.UserEmail,
		Title:       form.Title,
		Description: form.Description,
		Created:     s.now(),
	}
	if err := s.repo.Create(ctx, feature); err != nil {
		return nil, err
	}

	s.logger.Info("Feature suggested", "feature_id", feature.ID, "title", feature.Title)

	msg, err := notify.NewMessage(Event, "Feature suggested: "+feature.Title, emailTemplate, feature)
	if err != nil {
		s.logger.Error("Failed to render feature notification", "feature_id", feature.ID, "error", err)
		return feature, nil
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.logger.Error("Failed to notify about feature", "feature_id", feature.ID, "error", err)
	}

	return feature, nil
}

// Vote records the user's vote. Each user holds at most one vote per
// feature: voting the other way moves it, voting the same way again does
// nothing.
func (s *Service) Vote(ctx context.Context, userID string, featureID int64, direction domain.Direction) (*domain.Feature, error) {
	if direction != domain.Up && direction != domain.Down {
		return nil, oops.With("direction", direction).Wrap(portalErrors.ErrInvalidVote)
	}

	var feature *domain.Feature
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.LockPublic(ctx, featureID); err != nil {
			return err
		}

		previous, err := s.repo.GetVote(ctx, featureID, userID)
		if err != nil {
			return err
		}

		if previous != direction {
			up, down := tally(previous, direction)
			if err := s.repo.AdjustVotes(ctx, featureID, up, down); err != nil {
				return err
			}
			if err := s.repo.SetVote(ctx, featureID, userID, direction); err != nil {
				return err
			}
		}

		feature, err = s.repo.GetPublic(ctx, featureID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return feature, nil
}

// tally returns the counter deltas for moving a vote from previous to next.
func tally(previous, next domain.Direction) (up, down int) {
	switch previous {
	case domain.Up:
		up--
	case domain.Down:
		down--
	}
	switch next {
	case domain.Up:
		up++
	case domain.Down:
		down++
	}
	return up, down
}

// UserVote returns the user's vote on a feature, or 0.
func (s *Service) UserVote(ctx context.Context, userID string, featureID int64) (domain.Direction, error) {
	return s.repo.GetVote(ctx, featureID, userID)
}

// RenderDescription converts the Markdown description to HTML. Raw HTML in
// the source is dropped.
func (s *Service) RenderDescription(feature *domain.Feature) template.HTML {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(feature.Description), &buf); err != nil {
		s.logger.Warn("Failed to render description", "feature_id", feature.ID, "error", err)
		return template.HTML(template.HTMLEscapeString(feature.Description))
	}
	return template.HTML(buf.String())
}
