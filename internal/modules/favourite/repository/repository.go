//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

package repository

import (
	"context"
	"time"

	"github.com/reshetovitsme/mobile-portal/internal/modules/favourite/domain"
)

// Repository defines the interface for favourite persistence
type Repository interface {
	// Add is a no-op when the user already saved the URL.
	Add(ctx context.Context, userID, url string, created time.Time) error
	Remove(ctx context.Context, userID, url string) error
	List(ctx context.Context, userID string) ([]*domain.Favourite, error)
	Exists(ctx context.Context, userID, url string) (bool, error)
}
