package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/place/repository"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

// StationType is the entity type of rail stations.
const StationType = "rail-station"

// MetadataProvider attaches live data to entities before they are shown
type MetadataProvider interface {
	AugmentMetadata(ctx context.Context, entities []*domain.Entity, board domain.BoardType)
}

// DetailsProvider looks up a single service of a live board without
// fetching the board itself.
type DetailsProvider interface {
	ServiceDetails(ctx context.Context, serviceID string) (map[string]any, error)
}

// Service handles place lookups and live metadata
type Service struct {
	repo      repository.Repository
	providers []MetadataProvider
	logger    *slog.Logger
}

// New creates a new place service
func New(repo repository.Repository, logger *slog.Logger, providers ...MetadataProvider) *Service {
	return &Service{
		repo:      repo,
		providers: providers,
		logger:    logger.With("component", "places"),
	}
}

// SaveEntity saves an entity and its identifiers
func (s *Service) SaveEntity(ctx context.Context, entity *domain.Entity) error {
	return s.repo.SaveEntity(ctx, entity)
}

// ListStations lists rail stations by name
func (s *Service) ListStations(ctx context.Context) ([]*domain.Entity, error) {
	return s.repo.ListEntities(ctx, StationType)
}

// Get resolves an identifier of the form "scheme:value"
func (s *Service) Get(ctx context.Context, identifier string) (*domain.Entity, error) {
	scheme, value, ok := strings.Cut(identifier, ":")
	if !ok || scheme == "" || value == "" {
		return nil, oops.With("identifier", identifier).Wrap(portalErrors.ErrNotFound)
	}

	// crs codes are conventionally upper case but typed in any case
	if scheme == domain.IdentifierCRS {
		value = strings.ToUpper(value)
	}

	return s.repo.GetByIdentifier(ctx, scheme, value)
}

// GetWithMetadata resolves an entity and lets every provider augment it.
func (s *Service) GetWithMetadata(ctx context.Context, identifier string, board domain.BoardType) (*domain.Entity, error) {
	entity, err := s.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}

	entities := []*domain.Entity{entity}
	for _, p := range s.providers {
		p.AugmentMetadata(ctx, entities, board)
	}

	return entity, nil
}

// ServiceDetails fetches one service for a station with a single call to
// the first provider that can look services up.
func (s *Service) ServiceDetails(ctx context.Context, identifier, serviceID string) (*domain.Entity, map[string]any, error) {
	entity, err := s.Get(ctx, identifier)
	if err != nil {
		return nil, nil, err
	}

	notFound := oops.With("identifier", identifier, "service_id", serviceID).Wrap(portalErrors.ErrNotFound)
	if serviceID == "" || entity.Identifiers[domain.IdentifierCRS] == "" {
		return nil, nil, notFound
	}

	for _, p := range s.providers {
		details, ok := p.(DetailsProvider)
		if !ok {
			continue
		}

		result, err := details.ServiceDetails(ctx, serviceID)
		if err != nil {
			s.logger.Warn("Could not retrieve service details", "identifier", identifier, "service_id", serviceID, "error", err)
			return nil, nil, notFound
		}
		return entity, result, nil
	}

	return nil, nil, notFound
}
