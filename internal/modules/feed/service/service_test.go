package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/reshetovitsme/mobile-portal/internal/modules/feed/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/feed/repository/mocks"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database/dbtest"
	"github.com/reshetovitsme/mobile-portal/internal/shared/device"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

type stubFetcher map[string]*gofeed.Feed

func (f stubFetcher) Fetch(_ context.Context, url string) (*gofeed.Feed, error) {
	if feed, ok := f[url]; ok {
		return feed, nil
	}
	return nil, errors.New("connection refused")
}

type FeedServiceTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	repo    *mocks.MockRepository
	fetcher stubFetcher
	service *Service
	now     time.Time
}

func (s *FeedServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mocks.NewMockRepository(s.ctrl)
	s.fetcher = stubFetcher{}
	s.now = time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)
	s.service = New(s.repo, s.fetcher, dbtest.Logger())
	s.service.now = func() time.Time { return s.now }
}

func (s *FeedServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestFeedServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeedServiceTestSuite))
}

func (s *FeedServiceTestSuite) TestListItems_News() {
	ctx := context.Background()
	feed := &domain.Feed{ID: 1, Type: domain.FeedTypeNews}
	s.repo.EXPECT().ListItems(ctx, int64(1), ItemsPerPage).Return([]*domain.Item{{ID: 5}}, nil)

	items, err := s.service.ListItems(ctx, feed)

	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *FeedServiceTestSuite) TestListItems_EventsFromStartOfToday() {
	ctx := context.Background()
	feed := &domain.Feed{ID: 2, Type: domain.FeedTypeEvent}
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	s.repo.EXPECT().ListUpcoming(ctx, int64(2), today).Return(nil, nil)

	_, err := s.service.ListItems(ctx, feed)

	s.NoError(err)
}

func (s *FeedServiceTestSuite) TestGetItem_FeedNotFound() {
	ctx := context.Background()
	s.repo.EXPECT().GetFeed(ctx, domain.FeedTypeNews, "missing").Return(nil, portalErrors.ErrNotFound)

	_, _, err := s.service.GetItem(ctx, domain.FeedTypeNews, "missing", 1)

	s.ErrorIs(err, portalErrors.ErrNotFound)
}

func (s *FeedServiceTestSuite) TestGetItem() {
	ctx := context.Background()
	feed := &domain.Feed{ID: 3, Slug: "science", Type: domain.FeedTypeNews}
	s.repo.EXPECT().GetFeed(ctx, domain.FeedTypeNews, "science").Return(feed, nil)
	s.repo.EXPECT().GetItem(ctx, int64(3), int64(9)).Return(&domain.Item{ID: 9, FeedID: 3}, nil)

	gotFeed, item, err := s.service.GetItem(ctx, domain.FeedTypeNews, "science", 9)

	s.Require().NoError(err)
	s.Equal(feed, gotFeed)
	s.Equal("/news/science/9/", gotFeed.ItemURL(item))
}

func (s *FeedServiceTestSuite) TestGenerateFeed() {
	ctx := context.Background()
	feed := &domain.Feed{ID: 1, Slug: "science", Title: "Science news", Type: domain.FeedTypeNews, LastModified: s.now}
	s.repo.EXPECT().ListItems(ctx, int64(1), ItemsPerPage).Return([]*domain.Item{
		{ID: 7, GUID: "urn:item:7", Title: "Telescope", Description: "<p>Big</p>", Link: "https://example.org/7", LastModified: s.now},
	}, nil)

	out, err := s.service.GenerateFeed(ctx, feed, "https://m.example.org")
	s.Require().NoError(err)

	s.Equal("https://m.example.org/news/science/", out.Link.Href)
	s.Require().Len(out.Items, 1)
	s.Equal("https://m.example.org/news/science/7/", out.Items[0].Link.Href)
	s.Equal("urn:item:7", out.Items[0].Id)

	rss, err := out.ToRss()
	s.Require().NoError(err)
	s.Contains(rss, "<title>Telescope</title>")
}

func (s *FeedServiceTestSuite) TestDescriptionForDevice() {
	item := &domain.Item{Description: `<p>Hi</p><script>alert(1)</script><img src="a.png" width="800" height="400">`}

	got := s.service.DescriptionForDevice(item, device.ForClass(device.ClassSmart))

	s.NotContains(got, "<script")
	s.Contains(got, `width="280"`)
	s.Contains(got, `height="140"`)
}

func (s *FeedServiceTestSuite) TestImport_EventsWithExtensions() {
	ctx := context.Background()
	feed := &domain.Feed{ID: 4, Slug: "talks", Type: domain.FeedTypeEvent, RSSURL: "https://example.org/talks.rss"}
	s.fetcher[feed.RSSURL] = &gofeed.Feed{Items: []*gofeed.Item{
		{
			GUID:  "talk-1",
			Title: "Inaugural lecture",
			Extensions: ext.Extensions{
				"xcal": {
					"dtstart":  {{Name: "dtstart", Value: "2026-11-02T17:00:00Z"}},
					"dtend":    {{Name: "dtend", Value: "2026-11-02T18:00:00Z"}},
					"location": {{Name: "location", Value: "Sheldonian Theatre"}},
				},
				"geo": {
					"lat":  {{Name: "lat", Value: "51.7543"}},
					"long": {{Name: "long", Value: "-1.2549"}},
				},
			},
		},
		{Title: "", GUID: ""},
	}}

	s.repo.EXPECT().ListFeeds(ctx, domain.FeedType("")).Return([]*domain.Feed{feed}, nil)
	s.repo.EXPECT().UpsertItem(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, item *domain.Item) error {
		s.Equal("talk-1", item.GUID)
		s.Equal(int64(4), item.FeedID)
		s.Require().NotNil(item.DTStart)
		s.True(item.DTStart.Equal(time.Date(2026, 11, 2, 17, 0, 0, 0, time.UTC)))
		s.Equal("Sheldonian Theatre", item.LocationName)
		s.InDelta(-1.2549, lo.FromPtr(item.LocationLon), 1e-9)
		s.Equal(s.now, item.LastModified)
		return nil
	})
	s.repo.EXPECT().TouchFeed(ctx, int64(4), s.now).Return(nil)

	s.NoError(s.service.Import(ctx))
}

func (s *FeedServiceTestSuite) TestImport_FailingFeedDoesNotStopOthers() {
	ctx := context.Background()
	broken := &domain.Feed{ID: 1, Type: domain.FeedTypeNews, RSSURL: "https://down.example.org/rss"}
	working := &domain.Feed{ID: 2, Type: domain.FeedTypeNews, RSSURL: "https://example.org/rss"}
	published := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	s.fetcher[working.RSSURL] = &gofeed.Feed{Items: []*gofeed.Item{
		{Link: "https://example.org/a", Title: "A", PublishedParsed: &published},
	}}

	s.repo.EXPECT().ListFeeds(ctx, domain.FeedType("")).Return([]*domain.Feed{broken, working}, nil)
	s.repo.EXPECT().UpsertItem(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, item *domain.Item) error {
		s.Equal("https://example.org/a", item.GUID)
		s.Equal(published, item.LastModified)
		s.Nil(item.DTStart)
		return nil
	})
	s.repo.EXPECT().TouchFeed(ctx, int64(2), s.now).Return(nil)

	err := s.service.Import(ctx)

	s.Error(err)
	s.Contains(err.Error(), "connection refused")
}
