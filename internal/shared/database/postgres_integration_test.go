//go:build integration

package database_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	favouriteRepository "github.com/reshetovitsme/mobile-portal/internal/modules/favourite/repository"
	featureDomain "github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/domain"
	featureRepository "github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/repository"
	featureService "github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/service"
	feedDomain "github.com/reshetovitsme/mobile-portal/internal/modules/feed/domain"
	feedRepository "github.com/reshetovitsme/mobile-portal/internal/modules/feed/repository"
	placeDomain "github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
	placeRepository "github.com/reshetovitsme/mobile-portal/internal/modules/place/repository"
	userRepository "github.com/reshetovitsme/mobile-portal/internal/modules/user/repository"
	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database/dbtest"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
	"github.com/reshetovitsme/mobile-portal/internal/shared/notify"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("portal"),
		postgres.WithUsername("portal"),
		postgres.WithPassword("portal"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := database.Open(s.ctx, config.DatabaseConfig{Driver: config.DatabaseDriverPostgres, DSN: dsn})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(database.Migrate(db, config.DatabaseDriverPostgres, dbtest.Logger()))
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	for _, table := range []string{
		"feature_votes", "features", "favourites", "portal_users", "feedback",
		"items", "feeds", "place_identifiers", "place_entities",
	} {
		_, err := s.db.ExecContext(s.ctx, "DELETE FROM "+table)
		s.Require().NoError(err)
	}
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestMigrate_IsRepeatable() {
	s.NoError(database.Migrate(s.db, config.DatabaseDriverPostgres, dbtest.Logger()))
}

func (s *PostgresIntegrationSuite) TestFeeds_UpsertItem() {
	repo := feedRepository.NewSQLStorage(s.db)
	feed := &feedDomain.Feed{Slug: "university", Title: "University news", RSSURL: "https://news.example.org/rss", Type: feedDomain.FeedTypeNews}
	s.Require().NoError(repo.SaveFeed(s.ctx, feed))

	item := &feedDomain.Item{FeedID: feed.ID, GUID: "a", Title: "First", LastModified: time.Now()}
	s.Require().NoError(repo.UpsertItem(s.ctx, item))
	firstID := item.ID

	updated := &feedDomain.Item{FeedID: feed.ID, GUID: "a", Title: "First, revised", LastModified: time.Now()}
	s.Require().NoError(repo.UpsertItem(s.ctx, updated))
	s.Equal(firstID, updated.ID)

	got, err := repo.GetItem(s.ctx, feed.ID, firstID)
	s.Require().NoError(err)
	s.Equal("First, revised", got.Title)

	_, err = repo.GetFeed(s.ctx, feedDomain.FeedTypeEvent, "university")
	s.ErrorIs(err, portalErrors.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestFavourites_Idempotent() {
	users := userRepository.NewSQLStorage(s.db)
	_, err := users.Touch(s.ctx, "7c6d5a0e-95a6-4b8e-9a55-8f0d0c3f8a11", time.Now())
	s.Require().NoError(err)

	repo := favouriteRepository.NewSQLStorage(s.db)
	for range 2 {
		s.Require().NoError(repo.Add(s.ctx, "7c6d5a0e-95a6-4b8e-9a55-8f0d0c3f8a11", "/news/", time.Now()))
	}

	list, err := repo.List(s.ctx, "7c6d5a0e-95a6-4b8e-9a55-8f0d0c3f8a11")
	s.Require().NoError(err)
	s.Len(list, 1)

	for range 2 {
		s.Require().NoError(repo.Remove(s.ctx, "7c6d5a0e-95a6-4b8e-9a55-8f0d0c3f8a11", "/news/"))
	}
	exists, err := repo.Exists(s.ctx, "7c6d5a0e-95a6-4b8e-9a55-8f0d0c3f8a11", "/news/")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *PostgresIntegrationSuite) TestFeatures_VoteInTransaction() {
	users := userRepository.NewSQLStorage(s.db)
	_, err := users.Touch(s.ctx, "voter", time.Now())
	s.Require().NoError(err)

	repo := featureRepository.NewSQLStorage(s.db)
	feature := &featureDomain.Feature{Title: "Dark mode", UserName: "Sam", UserEmail: "sam@example.org", Created: time.Now(), IsPublic: true}
	s.Require().NoError(repo.Create(s.ctx, feature))

	tx := database.NewTransactionManager(s.db)
	err = tx.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := repo.SetVote(ctx, feature.ID, "voter", featureDomain.Up); err != nil {
			return err
		}
		return repo.AdjustVotes(ctx, feature.ID, 1, 0)
	})
	s.Require().NoError(err)

	got, err := repo.GetPublic(s.ctx, feature.ID)
	s.Require().NoError(err)
	s.Equal(1, got.UpVote)

	vote, err := repo.GetVote(s.ctx, feature.ID, "voter")
	s.Require().NoError(err)
	s.Equal(featureDomain.Up, vote)

	public, err := repo.ListPublic(s.ctx)
	s.Require().NoError(err)
	s.Len(public, 1)
}

func (s *PostgresIntegrationSuite) TestFeatures_ConcurrentVotesCountOnce() {
	users := userRepository.NewSQLStorage(s.db)
	_, err := users.Touch(s.ctx, "voter", time.Now())
	s.Require().NoError(err)

	repo := featureRepository.NewSQLStorage(s.db)
	feature := &featureDomain.Feature{Title: "Dark mode", UserName: "Sam", UserEmail: "sam@example.org", Created: time.Now(), IsPublic: true}
	s.Require().NoError(repo.Create(s.ctx, feature))

	svc := featureService.New(repo, database.NewTransactionManager(s.db), notify.NewFanout(dbtest.Logger()), dbtest.Logger())

	const voters = 8
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for range voters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Vote(s.ctx, "voter", feature.ID, featureDomain.Up)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	got, err := repo.GetPublic(s.ctx, feature.ID)
	s.Require().NoError(err)
	s.Equal(1, got.UpVote)
	s.Equal(0, got.DownVote)
}

func (s *PostgresIntegrationSuite) TestPlaces_LookupByIdentifier() {
	repo := placeRepository.NewSQLStorage(s.db)
	s.Require().NoError(repo.SaveEntity(s.ctx, &placeDomain.Entity{
		Title:       "Oxford",
		Type:        "rail-station",
		Identifiers: map[string]string{placeDomain.IdentifierCRS: "OXF", "tiploc": "OXFD"},
	}))

	got, err := repo.GetByIdentifier(s.ctx, "tiploc", "OXFD")
	s.Require().NoError(err)
	s.Equal("Oxford", got.Title)
	s.Equal("OXF", got.Identifiers[placeDomain.IdentifierCRS])
}
