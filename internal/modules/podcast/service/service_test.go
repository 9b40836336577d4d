package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/reshetovitsme/mobile-portal/internal/modules/podcast/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/podcast/repository/mocks"
	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database/dbtest"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

const (
	topDownloadsURL = "https://rss.example.org/topdownloads.xml"
	itunesuURL      = "https://itunes.example.org/university"
)

type stubFetcher map[string]*gofeed.Feed

func (f stubFetcher) Fetch(_ context.Context, url string) (*gofeed.Feed, error) {
	if feed, ok := f[url]; ok {
		return feed, nil
	}
	return nil, errors.New("no such host")
}

type PodcastServiceTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	repo    *mocks.MockRepository
	fetcher stubFetcher
	service *Service
	now     time.Time
}

func (s *PodcastServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mocks.NewMockRepository(s.ctrl)
	s.fetcher = stubFetcher{}
	s.now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.service = New(config.PodcastsConfig{
		TopDownloadsRSSURL: topDownloadsURL,
		ITunesUURL:         itunesuURL,
	}, s.repo, s.fetcher, dbtest.Logger())
	s.service.now = func() time.Time { return s.now }
}

func (s *PodcastServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestPodcastServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PodcastServiceTestSuite))
}

func (s *PodcastServiceTestSuite) TestGetPodcast() {
	ctx := context.Background()
	category := &domain.Category{ID: 2, Code: "science"}
	s.repo.EXPECT().GetCategory(ctx, "science").Return(category, nil)
	s.repo.EXPECT().GetPodcast(ctx, int64(2), int64(10)).Return(&domain.Podcast{ID: 10, CategoryID: 2}, nil)

	gotCategory, podcast, err := s.service.GetPodcast(ctx, "science", 10)

	s.Require().NoError(err)
	s.Equal(category, gotCategory)
	s.Equal(int64(10), podcast.ID)
}

func (s *PodcastServiceTestSuite) TestGetPodcast_UnknownCategory() {
	ctx := context.Background()
	s.repo.EXPECT().GetCategory(ctx, "nope").Return(nil, portalErrors.ErrNotFound)

	_, _, err := s.service.GetPodcast(ctx, "nope", 10)

	s.ErrorIs(err, portalErrors.ErrNotFound)
}

func (s *PodcastServiceTestSuite) TestListPodcasts_ByMedium() {
	ctx := context.Background()
	category := &domain.Category{ID: 2}
	s.repo.EXPECT().ListPodcasts(ctx, int64(2), domain.MediumVideo).Return([]*domain.Podcast{{ID: 1}}, nil)

	podcasts, err := s.service.ListPodcasts(ctx, category, domain.MediumVideo)

	s.NoError(err)
	s.Len(podcasts, 1)
}

func (s *PodcastServiceTestSuite) TestTopDownloads() {
	ctx := context.Background()
	s.repo.EXPECT().GetPodcastByRSSURL(ctx, topDownloadsURL).Return(&domain.Podcast{ID: 99}, nil)
	s.repo.EXPECT().ListItems(ctx, int64(99)).Return([]*domain.Item{{ID: 1}, {ID: 2}}, nil)

	podcast, items, err := s.service.TopDownloads(ctx)

	s.Require().NoError(err)
	s.Equal(int64(99), podcast.ID)
	s.Len(items, 2)
}

func (s *PodcastServiceTestSuite) TestTopDownloads_NotImported() {
	ctx := context.Background()
	s.repo.EXPECT().GetPodcastByRSSURL(ctx, topDownloadsURL).Return(nil, portalErrors.ErrNotFound)

	_, _, err := s.service.TopDownloads(ctx)

	s.ErrorIs(err, portalErrors.ErrNotFound)
}

func (s *PodcastServiceTestSuite) TestITunesURedirect() {
	tests := []struct {
		name                      string
		use, remember, noRedirect bool
		want                      string
	}{
		{"background save", true, true, true, ""},
		{"declined and remembered", false, true, false, IndexURL},
		{"declined once", false, false, false, IndexURL + "?show_itunesu_link=false"},
		{"accepted", true, false, false, itunesuURL},
		{"accepted and remembered", true, true, false, itunesuURL},
	}

	for _, tt := range tests {
		s.Equal(tt.want, s.service.ITunesURedirect(tt.use, tt.remember, tt.noRedirect), tt.name)
	}
}

func (s *PodcastServiceTestSuite) TestImport() {
	ctx := context.Background()
	published := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	podcast := &domain.Podcast{ID: 3, RSSURL: "https://rss.example.org/lectures.xml"}
	broken := &domain.Podcast{ID: 4, RSSURL: "https://down.example.org/feed.xml"}
	s.fetcher[podcast.RSSURL] = &gofeed.Feed{Items: []*gofeed.Item{
		{
			GUID:            "ep-1",
			Title:           "Lecture 1",
			PublishedParsed: &published,
			Enclosures:      []*gofeed.Enclosure{{URL: "https://media.example.org/ep1.mp3", Type: "audio/mpeg"}},
			ITunesExt:       &ext.ITunesItemExtension{Duration: "1:02:05", Order: "2", Summary: "Introductions"},
		},
	}}

	s.repo.EXPECT().ListAllPodcasts(ctx).Return([]*domain.Podcast{podcast, broken}, nil)
	s.repo.EXPECT().UpsertItem(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, item *domain.Item) error {
		s.Equal(int64(3), item.PodcastID)
		s.Equal("ep-1", item.GUID)
		s.Equal("https://media.example.org/ep1.mp3", item.URL)
		s.Equal("Introductions", item.Description)
		s.Equal(3725, item.Duration)
		s.Require().NotNil(item.Ordering)
		s.Equal(2, *item.Ordering)
		s.Equal(&published, item.PublishedDate)
		return nil
	})
	s.repo.EXPECT().TouchPodcast(ctx, int64(3), s.now).Return(nil)

	err := s.service.Import(ctx)

	s.Error(err)
	s.Contains(err.Error(), "no such host")
}

func (s *PodcastServiceTestSuite) TestSavePodcast_DefaultsToAudio() {
	ctx := context.Background()
	s.repo.EXPECT().SavePodcast(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Podcast) error {
		s.Equal(domain.MediumAudio, p.Medium)
		return nil
	})

	s.NoError(s.service.SavePodcast(ctx, &domain.Podcast{Title: "Talks"}))
}

func (s *PodcastServiceTestSuite) TestDurationText() {
	s.Equal("0:45", domain.Item{Duration: 45}.DurationText())
	s.Equal("2:05", domain.Item{Duration: 125}.DurationText())
	s.Equal("1:02:05", domain.Item{Duration: 3725}.DurationText())
}
