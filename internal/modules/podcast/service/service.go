package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"

	"github.com/reshetovitsme/mobile-portal/internal/modules/podcast/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/podcast/repository"
	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
	"github.com/reshetovitsme/mobile-portal/internal/shared/syndication"
)

// IndexURL is where podcast browsing starts.
const IndexURL = "/podcasts/"

// Fetcher downloads remote feeds
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*gofeed.Feed, error)
}

// Service handles podcast browsing and refreshes
type Service struct {
	repo    repository.Repository
	fetcher Fetcher
	cfg     config.PodcastsConfig
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a new podcast service
func New(cfg config.PodcastsConfig, repo repository.Repository, fetcher Fetcher, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger.With("component", "podcasts"),
		now:     time.Now,
	}
}

// SaveCategory creates or updates a category
func (s *Service) SaveCategory(ctx context.Context, category *domain.Category) error {
	return s.repo.SaveCategory(ctx, category)
}

// SavePodcast creates or updates a podcast
func (s *Service) SavePodcast(ctx context.Context, podcast *domain.Podcast) error {
	if podcast.Medium == "" {
		podcast.Medium = domain.MediumAudio
	}
	return s.repo.SavePodcast(ctx, podcast)
}

// ListCategories lists categories in display order
func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// GetCategory retrieves a category by code
func (s *Service) GetCategory(ctx context.Context, code string) (*domain.Category, error) {
	return s.repo.GetCategory(ctx, code)
}

// ListPodcasts lists a category's podcasts. An empty medium lists all of them.
func (s *Service) ListPodcasts(ctx context.Context, category *domain.Category, medium domain.Medium) ([]*domain.Podcast, error) {
	return s.repo.ListPodcasts(ctx, category.ID, medium)
}

// GetPodcast retrieves a podcast with the category it is filed under
func (s *Service) GetPodcast(ctx context.Context, code string, podcastID int64) (*domain.Category, *domain.Podcast, error) {
	category, err := s.repo.GetCategory(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	podcast, err := s.repo.GetPodcast(ctx, category.ID, podcastID)
	if err != nil {
		return nil, nil, err
	}

	return category, podcast, nil
}

// ListItems lists a podcast's episodes
func (s *Service) ListItems(ctx context.Context, podcast *domain.Podcast) ([]*domain.Item, error) {
	return s.repo.ListItems(ctx, podcast.ID)
}

// TopDownloads returns the podcast aggregating the most downloaded episodes
func (s *Service) TopDownloads(ctx context.Context) (*domain.Podcast, []*domain.Item, error) {
	podcast, err := s.repo.GetPodcastByRSSURL(ctx, s.cfg.TopDownloadsRSSURL)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.repo.ListItems(ctx, podcast.ID)
	if err != nil {
		return nil, nil, err
	}

	return podcast, items, nil
}

// ITunesURedirect decides where the browser goes after answering the
// iTunes U prompt. An empty location means the answer was recorded in the
// background and nothing should be shown.
func (s *Service) ITunesURedirect(useITunesU, remember, noRedirect bool) string {
	switch {
	case noRedirect:
		return ""
	case !useITunesU && remember:
		return IndexURL
	case !useITunesU:
		return IndexURL + "?show_itunesu_link=false"
	default:
		return s.cfg.ITunesUURL
	}
}

// Name identifies the import job in logs
func (s *Service) Name() string {
	return "podcasts"
}

// Import refreshes the episodes of every podcast. A failing podcast does
// not stop the others.
func (s *Service) Import(ctx context.Context) error {
	podcasts, err := s.repo.ListAllPodcasts(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, podcast := range podcasts {
		if err := s.importPodcast(ctx, podcast); err != nil {
			s.logger.Error("Error importing podcast", "podcast_id", podcast.ID, "url", podcast.RSSURL, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) importPodcast(ctx context.Context, podcast *domain.Podcast) error {
	remote, err := s.fetcher.Fetch(ctx, podcast.RSSURL)
	if err != nil {
		return err
	}

	imported := 0
	for _, remoteItem := range remote.Items {
		item := convertItem(podcast, remoteItem)
		if item.GUID == "" {
			continue
		}
		if err := s.repo.UpsertItem(ctx, item); err != nil {
			return err
		}
		imported++
	}

	if err := s.repo.TouchPodcast(ctx, podcast.ID, s.now()); err != nil {
		return err
	}

	s.logger.Info("Imported podcast", "podcast_id", podcast.ID, "items", imported)
	return nil
}

func convertItem(podcast *domain.Podcast, remote *gofeed.Item) *domain.Item {
	itunes := syndication.ITunes(remote)

	url := remote.Link
	if len(remote.Enclosures) > 0 && remote.Enclosures[0].URL != "" {
		url = remote.Enclosures[0].URL
	}

	item := &domain.Item{
		PodcastID:     podcast.ID,
		GUID:          lo.CoalesceOrEmpty(remote.GUID, url),
		Title:         remote.Title,
		Description:   lo.CoalesceOrEmpty(remote.Description, itunes.Summary, itunes.Subtitle),
		URL:           url,
		PublishedDate: remote.PublishedParsed,
		Duration:      syndication.ParseDuration(itunes.Duration),
	}

	if order, err := strconv.Atoi(strings.TrimSpace(itunes.Order)); err == nil {
		item.Ordering = &order
	}

	return item
}
