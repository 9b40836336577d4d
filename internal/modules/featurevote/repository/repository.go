//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

package repository

import (
	"context"

	"github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/domain"
)

// Repository defines the interface for feature persistence. Methods join
// the transaction carried by ctx, if any.
type Repository interface {
	Create(ctx context.Context, feature *domain.Feature) error
	ListPublic(ctx context.Context) ([]*domain.Feature, error)
	// GetPublic returns only public features that were not removed.
	GetPublic(ctx context.Context, id int64) (*domain.Feature, error)
	// LockPublic is GetPublic that also holds the feature's row lock until
	// the transaction in ctx ends, serialising votes on the feature.
	LockPublic(ctx context.Context, id int64) error

	// GetVote returns 0 when the user has not voted.
	GetVote(ctx context.Context, featureID int64, userID string) (domain.Direction, error)
	SetVote(ctx context.Context, featureID int64, userID string, direction domain.Direction) error
	AdjustVotes(ctx context.Context, featureID int64, up, down int) error
}
