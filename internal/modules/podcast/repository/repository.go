//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

package repository

import (
	"context"
	"time"

	"github.com/reshetovitsme/mobile-portal/internal/modules/podcast/domain"
)

// Repository defines the interface for podcast persistence
type Repository interface {
	SaveCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, code string) (*domain.Category, error)

	SavePodcast(ctx context.Context, podcast *domain.Podcast) error
	ListPodcasts(ctx context.Context, categoryID int64, medium domain.Medium) ([]*domain.Podcast, error)
	ListAllPodcasts(ctx context.Context) ([]*domain.Podcast, error)
	GetPodcast(ctx context.Context, categoryID, podcastID int64) (*domain.Podcast, error)
	GetPodcastByRSSURL(ctx context.Context, rssURL string) (*domain.Podcast, error)
	TouchPodcast(ctx context.Context, podcastID int64, updated time.Time) error

	UpsertItem(ctx context.Context, item *domain.Item) error
	ListItems(ctx context.Context, podcastID int64) ([]*domain.Item, error)
}
