package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/gorilla/feeds"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/feed/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/feed/repository"
	"github.com/reshetovitsme/mobile-portal/internal/shared/device"
	"github.com/reshetovitsme/mobile-portal/internal/shared/syndication"
)

// ItemsPerPage bounds news listings and generated feeds.
const ItemsPerPage = 50

// Fetcher downloads remote feeds
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*gofeed.Feed, error)
}

// Service handles news and event feeds
type Service struct {
	repo    repository.Repository
	fetcher Fetcher
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a new feed service
func New(repo repository.Repository, fetcher Fetcher, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		fetcher: fetcher,
		logger:  logger.With("component", "feeds"),
		now:     time.Now,
	}
}

// SaveFeed registers a feed to be imported
func (s *Service) SaveFeed(ctx context.Context, feed *domain.Feed) error {
	return s.repo.SaveFeed(ctx, feed)
}

// ListFeeds lists feeds of a type by title
func (s *Service) ListFeeds(ctx context.Context, feedType domain.FeedType) ([]*domain.Feed, error) {
	return s.repo.ListFeeds(ctx, feedType)
}

// GetFeed retrieves a feed by type and slug
func (s *Service) GetFeed(ctx context.Context, feedType domain.FeedType, slug string) (*domain.Feed, error) {
	return s.repo.GetFeed(ctx, feedType, slug)
}

// ListItems lists the newest items of a news feed, or the upcoming items of
// an event feed.
func (s *Service) ListItems(ctx context.Context, feed *domain.Feed) ([]*domain.Item, error) {
	if feed.Type == domain.FeedTypeEvent {
		return s.ListUpcoming(ctx, feed, s.now())
	}
	return s.repo.ListItems(ctx, feed.ID, ItemsPerPage)
}

// ListUpcoming lists events starting today or later, soonest first. Events
// that started earlier today are still included.
func (s *Service) ListUpcoming(ctx context.Context, feed *domain.Feed, now time.Time) ([]*domain.Item, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.repo.ListUpcoming(ctx, feed.ID, today)
}

// GetItem retrieves an item with the feed it belongs to
func (s *Service) GetItem(ctx context.Context, feedType domain.FeedType, slug string, itemID int64) (*domain.Feed, *domain.Item, error) {
	feed, err := s.repo.GetFeed(ctx, feedType, slug)
	if err != nil {
		return nil, nil, err
	}

	item, err := s.repo.GetItem(ctx, feed.ID, itemID)
	if err != nil {
		return nil, nil, err
	}

	return feed, item, nil
}

// DescriptionForDevice returns the item's HTML description with active
// content removed and images fitted to the device. Markup that cannot be
// parsed is shown as text.
func (s *Service) DescriptionForDevice(item *domain.Item, profile device.Profile) string {
	adapted, err := device.AdaptFragment(item.Description, profile)
	if err != nil {
		s.logger.Warn("Could not adapt item description", "item_id", item.ID, "error", err)
		return html.EscapeString(item.Description)
	}
	return adapted
}

// GenerateFeed re-syndicates a feed's items for feed readers
func (s *Service) GenerateFeed(ctx context.Context, feed *domain.Feed, baseURL string) (*feeds.Feed, error) {
	items, err := s.ListItems(ctx, feed)
	if err != nil {
		return nil, oops.With("feed_id", feed.ID, "context", "failed to get items").Wrap(err)
	}

	out := &feeds.Feed{
		Title:       feed.Title,
		Link:        &feeds.Link{Href: baseURL + feed.URL()},
		Description: fmt.Sprintf("%s from %s", feed.Title, lo.CoalesceOrEmpty(feed.Unit, "the university")),
		Updated:     feed.LastModified,
		Created:     feed.LastModified,
	}

	out.Items = lo.Map(items, func(item *domain.Item, _ int) *feeds.Item {
		return s.itemToFeedItem(feed, item, baseURL)
	})

	return out, nil
}

func (s *Service) itemToFeedItem(feed *domain.Feed, item *domain.Item, baseURL string) *feeds.Item {
	description := item.Description
	if item.DTStart != nil {
		description = fmt.Sprintf("<p>%s</p>%s", item.DTStart.Format("Mon, 02 Jan 2006 15:04"), description)
	}

	out := &feeds.Item{
		Title:       item.Title,
		Link:        &feeds.Link{Href: baseURL + feed.ItemURL(item)},
		Description: description,
		Id:          item.GUID,
		Created:     item.LastModified,
		Updated:     item.LastModified,
	}
	if item.Link != "" {
		out.Source = &feeds.Link{Href: item.Link}
	}
	return out
}

// Name identifies the import job in logs
func (s *Service) Name() string {
	return "feeds"
}

// Import fetches every registered feed and upserts its items. A failing
// feed does not stop the others.
func (s *Service) Import(ctx context.Context) error {
	all, err := s.repo.ListFeeds(ctx, "")
	if err != nil {
		return err
	}

	var errs []error
	for _, feed := range all {
		if err := s.importFeed(ctx, feed); err != nil {
			s.logger.Error("Error importing feed", "feed_id", feed.ID, "url", feed.RSSURL, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) importFeed(ctx context.Context, feed *domain.Feed) error {
	remote, err := s.fetcher.Fetch(ctx, feed.RSSURL)
	if err != nil {
		return err
	}

	imported := 0
	for _, remoteItem := range remote.Items {
		item := s.convertItem(feed, remoteItem)
		if item.GUID == "" {
			continue
		}
		if err := s.repo.UpsertItem(ctx, item); err != nil {
			return err
		}
		imported++
	}

	if err := s.repo.TouchFeed(ctx, feed.ID, s.now()); err != nil {
		return err
	}

	s.logger.Info("Imported feed", "feed_id", feed.ID, "slug", feed.Slug, "items", imported)
	return nil
}

func (s *Service) convertItem(feed *domain.Feed, remote *gofeed.Item) *domain.Item {
	item := &domain.Item{
		FeedID:      feed.ID,
		GUID:        lo.CoalesceOrEmpty(remote.GUID, remote.Link, remote.Title),
		Title:       remote.Title,
		Description: lo.CoalesceOrEmpty(remote.Content, remote.Description),
		Link:        remote.Link,
	}

	switch {
	case remote.UpdatedParsed != nil:
		item.LastModified = *remote.UpdatedParsed
	case remote.PublishedParsed != nil:
		item.LastModified = *remote.PublishedParsed
	default:
		item.LastModified = s.now()
	}

	if feed.Type == domain.FeedTypeEvent {
		item.DTStart, _ = syndication.ParseTime(syndication.ExtensionAny(remote, "dtstart", "xcal", "ev"))
		item.DTEnd, _ = syndication.ParseTime(syndication.ExtensionAny(remote, "dtend", "xcal", "ev"))
		if item.DTStart == nil {
			item.DTStart, _ = syndication.ParseTime(syndication.Extension(remote, "ev", "startdate"))
			item.DTEnd, _ = syndication.ParseTime(syndication.Extension(remote, "ev", "enddate"))
		}
		item.LocationName = syndication.ExtensionAny(remote, "location", "xcal", "ev")
	}

	item.LocationLat = syndication.ParseFloat(syndication.Extension(remote, "geo", "lat"))
	item.LocationLon = syndication.ParseFloat(syndication.Extension(remote, "geo", "long"))

	return item
}
