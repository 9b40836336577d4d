package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/podcast/domain"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

const podcastColumns = `id, category_id, title, description, rss_url, medium, last_updated`

// SQLStorage implements Repository on top of the relational store
type SQLStorage struct {
	db *sqlx.DB
}

// NewSQLStorage creates a new podcast storage
func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

// SaveCategory inserts a category or updates the one with the same code
func (s *SQLStorage) SaveCategory(ctx context.Context, category *domain.Category) error {
	err := s.db.GetContext(ctx, &category.ID, s.db.Rebind(`
		INSERT INTO podcast_categories (code, name, ordering) VALUES (?, ?, ?)
		ON CONFLICT (code) DO UPDATE SET name = excluded.name, ordering = excluded.ordering
		RETURNING id`), category.Code, category.Name, category.Ordering)
	if err != nil {
		return oops.With("code", category.Code, "context", "failed to save category").Wrap(err)
	}
	return nil
}

// ListCategories lists categories in display order
func (s *SQLStorage) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	err := s.db.SelectContext(ctx, &categories, `SELECT id, code, name, ordering FROM podcast_categories ORDER BY ordering, name`)
	if err != nil {
		return nil, oops.With("context", "failed to list categories").Wrap(err)
	}
	return categories, nil
}

// GetCategory retrieves a category by code
func (s *SQLStorage) GetCategory(ctx context.Context, code string) (*domain.Category, error) {
	var category domain.Category
	err := s.db.GetContext(ctx, &category, s.db.Rebind(`SELECT id, code, name, ordering FROM podcast_categories WHERE code = ?`), code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("code", code).Wrap(portalErrors.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("code", code, "context", "failed to get category").Wrap(err)
	}
	return &category, nil
}

// SavePodcast inserts a podcast or updates the one with the same feed URL
func (s *SQLStorage) SavePodcast(ctx context.Context, podcast *domain.Podcast) error {
	err := s.db.GetContext(ctx, &podcast.ID, s.db.Rebind(`
		INSERT INTO podcasts (category_id, title, description, rss_url, medium) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (rss_url) DO UPDATE SET
			category_id = excluded.category_id,
			title = excluded.title,
			description = excluded.description,
			medium = excluded.medium
		RETURNING id`),
		podcast.CategoryID, podcast.Title, podcast.Description, podcast.RSSURL, podcast.Medium)
	if err != nil {
		return oops.With("rss_url", podcast.RSSURL, "context", "failed to save podcast").Wrap(err)
	}
	return nil
}

// ListPodcasts lists a category's podcasts, optionally of one medium
func (s *SQLStorage) ListPodcasts(ctx context.Context, categoryID int64, medium domain.Medium) ([]*domain.Podcast, error) {
	query := `SELECT ` + podcastColumns + ` FROM podcasts WHERE category_id = ?`
	args := []any{categoryID}
	if medium != "" {
		query += ` AND medium = ?`
		args = append(args, medium)
	}
	query += ` ORDER BY title`

	var podcasts []*domain.Podcast
	if err := s.db.SelectContext(ctx, &podcasts, s.db.Rebind(query), args...); err != nil {
		return nil, oops.With("category_id", categoryID, "medium", medium, "context", "failed to list podcasts").Wrap(err)
	}
	return podcasts, nil
}

// ListAllPodcasts lists every podcast
func (s *SQLStorage) ListAllPodcasts(ctx context.Context) ([]*domain.Podcast, error) {
	var podcasts []*domain.Podcast
	if err := s.db.SelectContext(ctx, &podcasts, `SELECT `+podcastColumns+` FROM podcasts ORDER BY id`); err != nil {
		return nil, oops.With("context", "failed to list podcasts").Wrap(err)
	}
	return podcasts, nil
}

// GetPodcast retrieves a podcast within a category
func (s *SQLStorage) GetPodcast(ctx context.Context, categoryID, podcastID int64) (*domain.Podcast, error) {
	return s.getPodcast(ctx, `category_id = ? AND id = ?`, categoryID, podcastID)
}

// GetPodcastByRSSURL retrieves a podcast by its feed URL
func (s *SQLStorage) GetPodcastByRSSURL(ctx context.Context, rssURL string) (*domain.Podcast, error) {
	return s.getPodcast(ctx, `rss_url = ?`, rssURL)
}

func (s *SQLStorage) getPodcast(ctx context.Context, where string, args ...any) (*domain.Podcast, error) {
	var podcast domain.Podcast
	err := s.db.GetContext(ctx, &podcast, s.db.Rebind(`SELECT `+podcastColumns+` FROM podcasts WHERE `+where), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("where", where, "args", args).Wrap(portalErrors.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("where", where, "args", args, "context", "failed to get podcast").Wrap(err)
	}
	return &podcast, nil
}

// TouchPodcast records the last successful refresh
func (s *SQLStorage) TouchPodcast(ctx context.Context, podcastID int64, updated time.Time) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE podcasts SET last_updated = ? WHERE id = ?`), updated.UTC(), podcastID)
	if err != nil {
		return oops.With("podcast_id", podcastID, "context", "failed to touch podcast").Wrap(err)
	}
	return nil
}

// UpsertItem inserts an episode or refreshes the one with the same guid
func (s *SQLStorage) UpsertItem(ctx context.Context, item *domain.Item) error {
	var published *time.Time
	if item.PublishedDate != nil {
		published = new(time.Time)
		*published = item.PublishedDate.UTC()
	}

	err := s.db.GetContext(ctx, &item.ID, s.db.Rebind(`
		INSERT INTO podcast_items (podcast_id, guid, title, description, url, published_date, ordering, duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (podcast_id, guid) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			url = excluded.url,
			published_date = excluded.published_date,
			ordering = excluded.ordering,
			duration = excluded.duration
		RETURNING id`),
		item.PodcastID, item.GUID, item.Title, item.Description, item.URL, published, item.Ordering, item.Duration)
	if err != nil {
		return oops.With("podcast_id", item.PodcastID, "guid", item.GUID, "context", "failed to upsert episode").Wrap(err)
	}
	return nil
}

// ListItems lists episodes by explicit ordering, then newest first
func (s *SQLStorage) ListItems(ctx context.Context, podcastID int64) ([]*domain.Item, error) {
	var items []*domain.Item
	err := s.db.SelectContext(ctx, &items, s.db.Rebind(`
		SELECT id, podcast_id, guid, title, description, url, published_date, ordering, duration
		FROM podcast_items
		WHERE podcast_id = ?
		ORDER BY ordering ASC NULLS LAST, published_date DESC, id DESC`), podcastID)
	if err != nil {
		return nil, oops.With("podcast_id", podcastID, "context", "failed to list episodes").Wrap(err)
	}
	return items, nil
}
