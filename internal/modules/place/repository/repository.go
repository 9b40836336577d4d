//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

package repository

import (
	"context"

	"github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
)

// Repository defines the interface for place persistence
type Repository interface {
	SaveEntity(ctx context.Context, entity *domain.Entity) error
	GetByIdentifier(ctx context.Context, scheme, value string) (*domain.Entity, error)
	ListEntities(ctx context.Context, entityType string) ([]*domain.Entity, error)
}
