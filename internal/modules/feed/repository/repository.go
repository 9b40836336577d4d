//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

package repository

import (
	"context"
	"time"

	"github.com/reshetovitsme/mobile-portal/internal/modules/feed/domain"
)

// Repository defines the interface for feed and item persistence
type Repository interface {
	SaveFeed(ctx context.Context, feed *domain.Feed) error
	ListFeeds(ctx context.Context, feedType domain.FeedType) ([]*domain.Feed, error)
	GetFeed(ctx context.Context, feedType domain.FeedType, slug string) (*domain.Feed, error)
	TouchFeed(ctx context.Context, feedID int64, modified time.Time) error

	UpsertItem(ctx context.Context, item *domain.Item) error
	ListItems(ctx context.Context, feedID int64, limit int) ([]*domain.Item, error)
	ListUpcoming(ctx context.Context, feedID int64, from time.Time) ([]*domain.Item, error)
	GetItem(ctx context.Context, feedID, itemID int64) (*domain.Item, error)
}
