package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/favourite/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/favourite/repository"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

// Resolver maps a path served by the portal to its canonical form.
type Resolver interface {
	Resolve(requestURI string) (canonical string, ok bool)
}

// Router is satisfied by *http.ServeMux.
type Router interface {
	Handler(r *http.Request) (h http.Handler, pattern string)
}

// MuxResolver resolves paths against the registered routes.
type MuxResolver struct {
	Router Router
}

func (m MuxResolver) Resolve(requestURI string) (string, bool) {
	u, err := url.ParseRequestURI(requestURI)
	if err != nil {
		return "", false
	}

	cleaned := path.Clean(u.Path)
	if strings.HasSuffix(u.Path, "/") && cleaned != "/" {
		cleaned += "/"
	}
	u.Path, u.RawPath = cleaned, ""

	req, err := http.NewRequest(http.MethodGet, u.RequestURI(), nil)
	if err != nil {
		return "", false
	}
	_, pattern := m.Router.Handler(req)
	if pattern == "" {
		return "", false
	}

	// ServeMux reports the target as the pattern when it would redirect to
	// add a trailing slash.
	if pattern == cleaned+"/" {
		u.Path = pattern
	}
	return u.RequestURI(), true
}

// Service manages visitors' favourite pages
type Service struct {
	repo     repository.Repository
	resolver Resolver
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new favourite service
func New(repo repository.Repository, resolver Resolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger.With("component", "favourites"),
		now:      time.Now,
	}
}

// Add saves a page for the user under its canonical URL. Off-site URLs and
// paths that no route serves are rejected with ErrInvalidFavourite.
func (s *Service) Add(ctx context.Context, userID, rawURL string) error {
	canonical, ok := s.Canonical(rawURL)
	if !ok {
		return oops.With("url", rawURL).Wrap(portalErrors.ErrInvalidFavourite)
	}

	if err := s.repo.Add(ctx, userID, canonical, s.now()); err != nil {
		return err
	}

	s.logger.Debug("Favourite added", "user_id", userID, "url", canonical)
	return nil
}

// Valid reports whether rawURL points at a page on this site.
func (s *Service) Valid(rawURL string) bool {
	_, ok := s.Canonical(rawURL)
	return ok
}

// Canonical returns the form under which rawURL is stored, so variants of
// one page share a single favourite.
func (s *Service) Canonical(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "", false
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(rawURL, "//") {
		return "", false
	}
	return s.resolver.Resolve(u.RequestURI())
}

// Remove forgets a saved page. Removing an unsaved page is not an error.
func (s *Service) Remove(ctx context.Context, userID, rawURL string) error {
	return s.repo.Remove(ctx, userID, s.canonicalOrRaw(rawURL))
}

// List returns the user's favourites, oldest first
func (s *Service) List(ctx context.Context, userID string) ([]*domain.Favourite, error) {
	return s.repo.List(ctx, userID)
}

// IsFavourite reports whether the user saved the URL
func (s *Service) IsFavourite(ctx context.Context, userID, rawURL string) (bool, error) {
	return s.repo.Exists(ctx, userID, s.canonicalOrRaw(rawURL))
}

func (s *Service) canonicalOrRaw(rawURL string) string {
	if canonical, ok := s.Canonical(rawURL); ok {
		return canonical
	}
	return rawURL
}
