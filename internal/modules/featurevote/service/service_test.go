package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/repository/mocks"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database/dbtest"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
	"github.com/reshetovitsme/mobile-portal/internal/shared/notify"
)

type stubNotifier struct {
	messages []notify.Message
}

func (n *stubNotifier) Notify(_ context.Context, msg notify.Message) error {
	n.messages = append(n.messages, msg)
	return errors.New("broker unavailable")
}

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type FeatureVoteServiceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	repo     *mocks.MockRepository
	notifier *stubNotifier
	service  *Service
	now      time.Time
}

func (s *FeatureVoteServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mocks.NewMockRepository(s.ctrl)
	s.notifier = &stubNotifier{}
	s.now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.service = New(s.repo, passthroughTx{}, s.notifier, dbtest.Logger())
	s.service.now = func() time.Time { return s.now }
}

func (s *FeatureVoteServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestFeatureVoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeatureVoteServiceTestSuite))
}

func (s *FeatureVoteServiceTestSuite) TestSubmit() {
	ctx := context.Background()
	s.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f *domain.Feature) error {
		s.False(f.IsPublic)
		s.Equal(s.now, f.Created)
		s.Equal("Dark mode", f.Title)
		f.ID = 12
		return nil
	})

	feature, err := s.service.Submit(ctx, &domain.Form{
		UserName:    "Sam",
		UserEmail:   "sam@example.org",
		Title:       " Dark mode ",
		Description: "Please",
	})

	s.Require().NoError(err)
	s.Equal(int64(12), feature.ID)
	s.Require().Len(s.notifier.messages, 1)
	s.Equal(Event, s.notifier.messages[0].Event)
	s.Contains(s.notifier.messages[0].Body, "Sam <sam@example.org>")
}

func (s *FeatureVoteServiceTestSuite) TestSubmit_Invalid() {
	form := &domain.Form{UserName: "Sam", UserEmail: "not-an-email"}

	_, err := s.service.Submit(context.Background(), form)

	s.ErrorIs(err, portalErrors.ErrInvalidForm)
	s.Contains(form.Errors, "user_email")
	s.Contains(form.Errors, "title")
	s.Contains(form.Errors, "description")
	s.NotContains(form.Errors, "user_name")
}

func (s *FeatureVoteServiceTestSuite) TestVote_First() {
	ctx := context.Background()
	gomock.InOrder(
		s.repo.EXPECT().LockPublic(ctx, int64(3)).Return(nil),
		s.repo.EXPECT().GetVote(ctx, int64(3), "alice").Return(domain.Direction(0), nil),
		s.repo.EXPECT().AdjustVotes(ctx, int64(3), 1, 0).Return(nil),
		s.repo.EXPECT().SetVote(ctx, int64(3), "alice", domain.Up).Return(nil),
		s.repo.EXPECT().GetPublic(ctx, int64(3)).Return(&domain.Feature{ID: 3, UpVote: 1}, nil),
	)

	updated, err := s.service.Vote(ctx, "alice", 3, domain.Up)

	s.NoError(err)
	s.Equal(1, updated.NetVotes())
}

func (s *FeatureVoteServiceTestSuite) TestVote_ChangeDirection() {
	ctx := context.Background()
	s.repo.EXPECT().LockPublic(ctx, int64(3)).Return(nil)
	s.repo.EXPECT().GetPublic(ctx, int64(3)).Return(&domain.Feature{ID: 3}, nil)
	s.repo.EXPECT().GetVote(ctx, int64(3), "alice").Return(domain.Up, nil)
	s.repo.EXPECT().AdjustVotes(ctx, int64(3), -1, 1).Return(nil)
	s.repo.EXPECT().SetVote(ctx, int64(3), "alice", domain.Down).Return(nil)

	_, err := s.service.Vote(ctx, "alice", 3, domain.Down)

	s.NoError(err)
}

func (s *FeatureVoteServiceTestSuite) TestVote_SameDirectionIsNoop() {
	ctx := context.Background()
	s.repo.EXPECT().LockPublic(ctx, int64(3)).Return(nil)
	s.repo.EXPECT().GetPublic(ctx, int64(3)).Return(&domain.Feature{ID: 3}, nil)
	s.repo.EXPECT().GetVote(ctx, int64(3), "alice").Return(domain.Down, nil)

	_, err := s.service.Vote(ctx, "alice", 3, domain.Down)

	s.NoError(err)
}

func (s *FeatureVoteServiceTestSuite) TestVote_UnknownFeature() {
	ctx := context.Background()
	s.repo.EXPECT().LockPublic(ctx, int64(404)).Return(portalErrors.ErrNotFound)

	_, err := s.service.Vote(ctx, "alice", 404, domain.Up)

	s.ErrorIs(err, portalErrors.ErrNotFound)
}

func (s *FeatureVoteServiceTestSuite) TestVote_InvalidDirection() {
	_, err := s.service.Vote(context.Background(), "alice", 3, domain.Direction(2))

	s.ErrorIs(err, portalErrors.ErrInvalidVote)
}

func (s *FeatureVoteServiceTestSuite) TestParseDirection() {
	up, err := domain.ParseDirection("up")
	s.NoError(err)
	s.Equal(domain.Up, up)

	down, err := domain.ParseDirection("DOWN")
	s.NoError(err)
	s.Equal(domain.Down, down)

	_, err = domain.ParseDirection("sideways")
	s.ErrorIs(err, portalErrors.ErrInvalidVote)
}

func (s *FeatureVoteServiceTestSuite) TestRenderDescription() {
	html := s.service.RenderDescription(&domain.Feature{
		Description: "Add **dark mode**\n<script>alert(1)</script>",
	})

	s.Contains(string(html), "<strong>dark mode</strong>")
	s.NotContains(string(html), "<script>")
}
