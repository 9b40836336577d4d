//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

package repository

import (
	"context"

	"github.com/reshetovitsme/mobile-portal/internal/modules/feedback/domain"
)

// Repository defines the interface for feedback persistence
type Repository interface {
	Save(ctx context.Context, feedback *domain.Feedback) error
}
