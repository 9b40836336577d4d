package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/feed/domain"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

const itemColumns = `id, feed_id, guid, title, description, link, last_modified,
	dt_start, dt_end, location_name, location_lat, location_lon`

// SQLStorage implements Repository on top of the relational store
type SQLStorage struct {
	db *sqlx.DB
}

// NewSQLStorage creates a new feed storage
func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

// SaveFeed inserts a feed or updates the one with the same type and slug
func (s *SQLStorage) SaveFeed(ctx context.Context, feed *domain.Feed) error {
	if feed.LastModified.IsZero() {
		feed.LastModified = time.Now()
	}

	err := s.db.GetContext(ctx, &feed.ID, s.db.Rebind(`
		INSERT INTO feeds (slug, title, unit, rss_url, feed_type, last_modified)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (feed_type, slug) DO UPDATE SET
			title = excluded.title,
			unit = excluded.unit,
			rss_url = excluded.rss_url
		RETURNING id`),
		feed.Slug, feed.Title, feed.Unit, feed.RSSURL, feed.Type, feed.LastModified.UTC())
	if err != nil {
		return oops.With("slug", feed.Slug, "feed_type", feed.Type, "context", "failed to save feed").Wrap(err)
	}
	return nil
}

// ListFeeds lists feeds of a type ordered by title. An empty type lists all feeds.
func (s *SQLStorage) ListFeeds(ctx context.Context, feedType domain.FeedType) ([]*domain.Feed, error) {
	query := `SELECT id, slug, title, unit, rss_url, feed_type, last_modified FROM feeds`
	var args []any
	if feedType != "" {
		query += ` WHERE feed_type = ?`
		args = append(args, feedType)
	}
	query += ` ORDER BY title`

	var feeds []*domain.Feed
	if err := s.db.SelectContext(ctx, &feeds, s.db.Rebind(query), args...); err != nil {
		return nil, oops.With("feed_type", feedType, "context", "failed to list feeds").Wrap(err)
	}
	return feeds, nil
}

// GetFeed retrieves a feed by type and slug
func (s *SQLStorage) GetFeed(ctx context.Context, feedType domain.FeedType, slug string) (*domain.Feed, error) {
	var feed domain.Feed
	err := s.db.GetContext(ctx, &feed, s.db.Rebind(`
		SELECT id, slug, title, unit, rss_url, feed_type, last_modified
		FROM feeds WHERE feed_type = ? AND slug = ?`), feedType, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("feed_type", feedType, "slug", slug).Wrap(portalErrors.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("feed_type", feedType, "slug", slug, "context", "failed to get feed").Wrap(err)
	}
	return &feed, nil
}

// TouchFeed records when the feed last changed
func (s *SQLStorage) TouchFeed(ctx context.Context, feedID int64, modified time.Time) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE feeds SET last_modified = ? WHERE id = ?`), modified.UTC(), feedID)
	if err != nil {
		return oops.With("feed_id", feedID, "context", "failed to touch feed").Wrap(err)
	}
	return nil
}

// UpsertItem inserts an item or refreshes the one with the same guid in its feed
func (s *SQLStorage) UpsertItem(ctx context.Context, item *domain.Item) error {
	err := s.db.GetContext(ctx, &item.ID, s.db.Rebind(`
		INSERT INTO items (feed_id, guid, title, description, link, last_modified,
			dt_start, dt_end, location_name, location_lat, location_lon)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (feed_id, guid) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			link = excluded.link,
			last_modified = excluded.last_modified,
			dt_start = excluded.dt_start,
			dt_end = excluded.dt_end,
			location_name = excluded.location_name,
			location_lat = excluded.location_lat,
			location_lon = excluded.location_lon
		RETURNING id`),
		item.FeedID, item.GUID, item.Title, item.Description, item.Link, item.LastModified.UTC(),
		utc(item.DTStart), utc(item.DTEnd), item.LocationName, item.LocationLat, item.LocationLon)
	if err != nil {
		return oops.With("feed_id", item.FeedID, "guid", item.GUID, "context", "failed to upsert item").Wrap(err)
	}
	return nil
}

// ListItems lists the newest items of a feed
func (s *SQLStorage) ListItems(ctx context.Context, feedID int64, limit int) ([]*domain.Item, error) {
	var items []*domain.Item
	err := s.db.SelectContext(ctx, &items, s.db.Rebind(`
		SELECT `+itemColumns+` FROM items
		WHERE feed_id = ?
		ORDER BY last_modified DESC, id DESC
		LIMIT ?`), feedID, limit)
	if err != nil {
		return nil, oops.With("feed_id", feedID, "context", "failed to list items").Wrap(err)
	}
	return items, nil
}

// ListUpcoming lists items starting at or after from, soonest first
func (s *SQLStorage) ListUpcoming(ctx context.Context, feedID int64, from time.Time) ([]*domain.Item, error) {
	var items []*domain.Item
	err := s.db.SelectContext(ctx, &items, s.db.Rebind(`
		SELECT `+itemColumns+` FROM items
		WHERE feed_id = ? AND dt_start >= ?
		ORDER BY dt_start, id`), feedID, from.UTC())
	if err != nil {
		return nil, oops.With("feed_id", feedID, "from", from, "context", "failed to list upcoming items").Wrap(err)
	}
	return items, nil
}

// GetItem retrieves an item of a feed
func (s *SQLStorage) GetItem(ctx context.Context, feedID, itemID int64) (*domain.Item, error) {
	var item domain.Item
	err := s.db.GetContext(ctx, &item, s.db.Rebind(`
		SELECT `+itemColumns+` FROM items WHERE feed_id = ? AND id = ?`), feedID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("feed_id", feedID, "item_id", itemID).Wrap(portalErrors.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("feed_id", feedID, "item_id", itemID, "context", "failed to get item").Wrap(err)
	}
	return &item, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
