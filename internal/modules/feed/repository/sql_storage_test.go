package repository

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/mobile-portal/internal/modules/feed/domain"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database/dbtest"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

func newFeed(t *testing.T, store *SQLStorage, feedType domain.FeedType, slug string) *domain.Feed {
	t.Helper()
	feed := &domain.Feed{Slug: slug, Title: slug, RSSURL: "https://example.org/" + slug, Type: feedType}
	require.NoError(t, store.SaveFeed(t.Context(), feed))
	require.NotZero(t, feed.ID)
	return feed
}

func TestSQLStorage_Feeds(t *testing.T) {
	store := NewSQLStorage(dbtest.New(t))
	ctx := t.Context()

	science := newFeed(t, store, domain.FeedTypeNews, "science")
	newFeed(t, store, domain.FeedTypeNews, "arts")
	newFeed(t, store, domain.FeedTypeEvent, "science")

	news, err := store.ListFeeds(ctx, domain.FeedTypeNews)
	require.NoError(t, err)
	require.Len(t, news, 2)
	assert.Equal(t, "arts", news[0].Slug)

	all, err := store.ListFeeds(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// saving again keeps the id
	again := &domain.Feed{Slug: "science", Title: "Science", RSSURL: "https://example.org/new", Type: domain.FeedTypeNews}
	require.NoError(t, store.SaveFeed(ctx, again))
	assert.Equal(t, science.ID, again.ID)

	got, err := store.GetFeed(ctx, domain.FeedTypeNews, "science")
	require.NoError(t, err)
	assert.Equal(t, "Science", got.Title)
	assert.Equal(t, "https://example.org/new", got.RSSURL)

	_, err = store.GetFeed(ctx, domain.FeedTypeEvent, "arts")
	assert.ErrorIs(t, err, portalErrors.ErrNotFound)
}

func TestSQLStorage_ItemsNewestFirst(t *testing.T) {
	store := NewSQLStorage(dbtest.New(t))
	ctx := t.Context()
	feed := newFeed(t, store, domain.FeedTypeNews, "science")
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for i, guid := range []string{"a", "b", "c"} {
		require.NoError(t, store.UpsertItem(ctx, &domain.Item{
			FeedID:       feed.ID,
			GUID:         guid,
			Title:        guid,
			LastModified: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	// upserting an existing guid updates in place
	require.NoError(t, store.UpsertItem(ctx, &domain.Item{FeedID: feed.ID, GUID: "a", Title: "A2", LastModified: base.Add(5 * time.Hour)}))

	items, err := store.ListItems(ctx, feed.ID, 10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"A2", "c", "b"}, lo.Map(items, func(i *domain.Item, _ int) string { return i.Title }))

	limited, err := store.ListItems(ctx, feed.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	got, err := store.GetItem(ctx, feed.ID, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)
	assert.True(t, got.LastModified.Equal(base.Add(5*time.Hour)))

	_, err = store.GetItem(ctx, feed.ID+100, items[0].ID)
	assert.ErrorIs(t, err, portalErrors.ErrNotFound)
}

func TestSQLStorage_ListUpcoming(t *testing.T) {
	store := NewSQLStorage(dbtest.New(t))
	ctx := t.Context()
	feed := newFeed(t, store, domain.FeedTypeEvent, "talks")
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	events := map[string]*time.Time{
		"yesterday":    lo.ToPtr(today.Add(-12 * time.Hour)),
		"this morning": lo.ToPtr(today.Add(9 * time.Hour)),
		"next week":    lo.ToPtr(today.Add(7 * 24 * time.Hour)),
		"tomorrow":     lo.ToPtr(today.Add(33 * time.Hour)),
		"undated":      nil,
	}
	for title, start := range events {
		require.NoError(t, store.UpsertItem(ctx, &domain.Item{
			FeedID:       feed.ID,
			GUID:         title,
			Title:        title,
			LastModified: today,
			DTStart:      start,
			LocationName: "Exam Schools",
			LocationLat:  lo.ToPtr(51.75),
		}))
	}

	items, err := store.ListUpcoming(ctx, feed.ID, today)
	require.NoError(t, err)
	assert.Equal(t, []string{"this morning", "tomorrow", "next week"}, lo.Map(items, func(i *domain.Item, _ int) string { return i.Title }))
	assert.Equal(t, "Exam Schools", items[0].LocationName)
	require.NotNil(t, items[0].LocationLat)
	assert.Nil(t, items[0].LocationLon)
}
