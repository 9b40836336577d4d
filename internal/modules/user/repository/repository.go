//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

package repository

import (
	"context"
	"time"

	"github.com/reshetovitsme/mobile-portal/internal/modules/user/domain"
)

// Repository defines the interface for user data persistence
type Repository interface {
	// Touch creates the user when missing and records the visit time.
	Touch(ctx context.Context, userID string, seen time.Time) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}
