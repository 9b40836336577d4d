package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	feedDomain "github.com/reshetovitsme/mobile-portal/internal/modules/feed/domain"
	feedRepository "github.com/reshetovitsme/mobile-portal/internal/modules/feed/repository"
	feedService "github.com/reshetovitsme/mobile-portal/internal/modules/feed/service"
	placeDomain "github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/place/ldb"
	placeRepository "github.com/reshetovitsme/mobile-portal/internal/modules/place/repository"
	placeService "github.com/reshetovitsme/mobile-portal/internal/modules/place/service"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database/dbtest"
)

// fixedBoard attaches the same board to every entity, or an error marker when failed is set.
type fixedBoard struct {
	failed bool
}

func (p fixedBoard) AugmentMetadata(_ context.Context, entities []*placeDomain.Entity, _ placeDomain.BoardType) {
	for _, e := range entities {
		if p.failed {
			e.SetMetadata(ldb.MetadataBoard, map[string]any{"error": true})
			continue
		}
		e.SetMetadata(ldb.MetadataBoard, map[string]any{
			"locationName": "Oxford",
			"nrccMessages": map[string]any{"message": []any{"Engineering works at Didcot"}},
			"trainServices": map[string]any{"service": []any{
				map[string]any{
					"std":         "12:15",
					"etd":         "On time",
					"sta":         "12:10",
					"eta":         "12:12",
					"platform":    "2",
					"origin":      map[string]any{"location": []any{map[string]any{"locationName": "Banbury"}}},
					"destination": map[string]any{"location": []any{map[string]any{"locationName": "London Paddington"}}},
				},
			}},
		})
	}
}

type HandlerTestSuite struct {
	suite.Suite
	ctx      context.Context
	db       *sqlx.DB
	feeds    *feedService.Service
	places   *placeService.Service
	handler  *Handler
	provider *fixedBoard
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = dbtest.New(s.T())
	logger := dbtest.Logger()

	s.provider = &fixedBoard{}
	s.feeds = feedService.New(feedRepository.NewSQLStorage(s.db), nil, logger)
	s.places = placeService.New(placeRepository.NewSQLStorage(s.db), logger, s.provider)
	s.handler = New(s.feeds, s.places, logger)

	s.Require().NoError(s.places.SaveEntity(s.ctx, &placeDomain.Entity{
		Title:       "Oxford",
		Type:        placeService.StationType,
		Identifiers: map[string]string{placeDomain.IdentifierCRS: "OXF"},
	}))
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) TestHelp() {
	s.Equal(helpText, s.handler.Reply(s.ctx, "/start"))
	s.Equal(helpText, s.handler.Reply(s.ctx, "/unknown"))
	s.Equal(helpText, s.handler.Reply(s.ctx, "   "))
}

func (s *HandlerTestSuite) TestNews() {
	s.Contains(s.handler.Reply(s.ctx, "/news"), "no feeds")

	feed := &feedDomain.Feed{Slug: "university", Title: "University news", RSSURL: "https://news.example.org/rss", Type: feedDomain.FeedTypeNews}
	s.Require().NoError(s.feeds.SaveFeed(s.ctx, feed))

	s.Contains(s.handler.Reply(s.ctx, "/news@portal_bot"), "University news: /news university")
	s.Contains(s.handler.Reply(s.ctx, "/news university"), "nothing to show")
	s.Contains(s.handler.Reply(s.ctx, "/news missing"), "Feed not found: missing")
}

func (s *HandlerTestSuite) TestNews_ListsNewestItems() {
	repo := s.feedRepo()
	feed := &feedDomain.Feed{Slug: "university", Title: "University news", RSSURL: "https://news.example.org/rss", Type: feedDomain.FeedTypeNews}
	s.Require().NoError(repo.SaveFeed(s.ctx, feed))

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"one", "two", "three", "four", "five", "six"} {
		s.Require().NoError(repo.UpsertItem(s.ctx, &feedDomain.Item{
			FeedID:       feed.ID,
			GUID:         title,
			Title:        title,
			LastModified: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	reply := s.handler.Reply(s.ctx, "/news university")
	s.Contains(reply, "• six")
	s.Contains(reply, "• two")
	s.NotContains(reply, "• one")
}

func (s *HandlerTestSuite) TestEvents() {
	repo := s.feedRepo()
	feed := &feedDomain.Feed{Slug: "talks", Title: "Talks", RSSURL: "https://events.example.org/rss", Type: feedDomain.FeedTypeEvent}
	s.Require().NoError(repo.SaveFeed(s.ctx, feed))

	start := time.Now().Add(72 * time.Hour).UTC()
	s.Require().NoError(repo.UpsertItem(s.ctx, &feedDomain.Item{
		FeedID: feed.ID, GUID: "talk", Title: "Quantum talk", LastModified: time.Now(), DTStart: &start,
	}))

	reply := s.handler.Reply(s.ctx, "/events talks")
	s.Contains(reply, "Quantum talk ("+start.Format("Mon 02 Jan 15:04")+")")
	s.Contains(s.handler.Reply(s.ctx, "/news talks"), "Feed not found")
}

func (s *HandlerTestSuite) TestDepartures() {
	reply := s.handler.Reply(s.ctx, "/departures oxf")

	s.Contains(reply, "Departures at Oxford")
	s.Contains(reply, "⚠️ Engineering works at Didcot")
	s.Contains(reply, "12:15 London Paddington On time [2]")
}

func (s *HandlerTestSuite) TestArrivals() {
	reply := s.handler.Reply(s.ctx, "/arrivals OXF")

	s.Contains(reply, "Arrivals at Oxford")
	s.Contains(reply, "12:10 from Banbury 12:12 [2]")
}

func (s *HandlerTestSuite) TestDepartures_Errors() {
	s.Contains(s.handler.Reply(s.ctx, "/departures"), "Usage: /departures <station code>")
	s.Contains(s.handler.Reply(s.ctx, "/departures XXX"), "Station not found: XXX")

	s.provider.failed = true
	s.Contains(s.handler.Reply(s.ctx, "/departures OXF"), "unavailable")
}

func (s *HandlerTestSuite) feedRepo() *feedRepository.SQLStorage {
	return feedRepository.NewSQLStorage(s.db)
}
