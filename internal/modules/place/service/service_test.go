package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/place/ldb"
	"github.com/reshetovitsme/mobile-portal/internal/modules/place/repository/mocks"
	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database/dbtest"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

type recordingProvider struct {
	boards  []domain.BoardType
	details domain.ServiceDetailsFunc
}

func (p *recordingProvider) AugmentMetadata(_ context.Context, entities []*domain.Entity, board domain.BoardType) {
	p.boards = append(p.boards, board)
	for _, e := range entities {
		e.SetMetadata("ldb", map[string]any{"locationName": e.Title})
	}
}

func (p *recordingProvider) ServiceDetails(ctx context.Context, serviceID string) (map[string]any, error) {
	if p.details == nil {
		return nil, errors.New("no such service")
	}
	return p.details(ctx, serviceID)
}

// boardOnlyProvider cannot look services up.
type boardOnlyProvider struct{}

func (boardOnlyProvider) AugmentMetadata(context.Context, []*domain.Entity, domain.BoardType) {}

type PlaceServiceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	repo     *mocks.MockRepository
	provider *recordingProvider
	service  *Service
}

func (s *PlaceServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mocks.NewMockRepository(s.ctrl)
	s.provider = &recordingProvider{}
	s.service = New(s.repo, dbtest.Logger(), s.provider)
}

func (s *PlaceServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestPlaceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlaceServiceTestSuite))
}

func oxford() *domain.Entity {
	return &domain.Entity{ID: 1, Title: "Oxford", Identifiers: map[string]string{"crs": "OXF"}}
}

func (s *PlaceServiceTestSuite) TestGet_NormalisesCRS() {
	ctx := context.Background()
	s.repo.EXPECT().GetByIdentifier(ctx, "crs", "OXF").Return(oxford(), nil)

	entity, err := s.service.Get(ctx, "crs:oxf")

	s.Require().NoError(err)
	s.Equal("Oxford", entity.Title)
}

func (s *PlaceServiceTestSuite) TestGet_MalformedIdentifier() {
	for _, identifier := range []string{"", "OXF", ":OXF", "crs:"} {
		_, err := s.service.Get(context.Background(), identifier)
		s.ErrorIs(err, portalErrors.ErrNotFound, identifier)
	}
}

func (s *PlaceServiceTestSuite) TestGetWithMetadata_RunsProviders() {
	ctx := context.Background()
	s.repo.EXPECT().GetByIdentifier(ctx, "crs", "OXF").Return(oxford(), nil)

	entity, err := s.service.GetWithMetadata(ctx, "crs:OXF", domain.BoardTypeArrivals)

	s.Require().NoError(err)
	s.Equal([]domain.BoardType{domain.BoardTypeArrivals}, s.provider.boards)
	s.Equal(map[string]any{"locationName": "Oxford"}, entity.Metadata["ldb"])
}

func (s *PlaceServiceTestSuite) TestGetWithMetadata_NotFound() {
	ctx := context.Background()
	s.repo.EXPECT().GetByIdentifier(ctx, "crs", "ZZZ").Return(nil, portalErrors.ErrNotFound)

	_, err := s.service.GetWithMetadata(ctx, "crs:ZZZ", domain.BoardTypeDepartures)

	s.ErrorIs(err, portalErrors.ErrNotFound)
	s.Empty(s.provider.boards)
}

func (s *PlaceServiceTestSuite) TestServiceDetails() {
	ctx := context.Background()
	s.provider.details = func(_ context.Context, serviceID string) (map[string]any, error) {
		return map[string]any{"serviceID": serviceID}, nil
	}
	s.repo.EXPECT().GetByIdentifier(ctx, "crs", "OXF").Return(oxford(), nil)

	entity, details, err := s.service.ServiceDetails(ctx, "crs:OXF", "abc")

	s.Require().NoError(err)
	s.Equal("Oxford", entity.Title)
	s.Equal("abc", details["serviceID"])
	s.Empty(s.provider.boards, "no board is fetched for a service page")
}

func (s *PlaceServiceTestSuite) TestServiceDetails_Unavailable() {
	ctx := context.Background()
	s.repo.EXPECT().GetByIdentifier(ctx, "crs", "OXF").Return(oxford(), nil).Times(3)

	s.provider.details = func(context.Context, string) (map[string]any, error) {
		return nil, errors.New("timeout")
	}
	_, _, err := s.service.ServiceDetails(ctx, "crs:OXF", "abc")
	s.ErrorIs(err, portalErrors.ErrNotFound)

	_, _, err = s.service.ServiceDetails(ctx, "crs:OXF", "")
	s.ErrorIs(err, portalErrors.ErrNotFound)

	boardOnly := New(s.repo, dbtest.Logger(), boardOnlyProvider{})
	_, _, err = boardOnly.ServiceDetails(ctx, "crs:OXF", "abc")
	s.ErrorIs(err, portalErrors.ErrNotFound)
}

func (s *PlaceServiceTestSuite) TestServiceDetails_RequiresStation() {
	ctx := context.Background()
	building := &domain.Entity{ID: 2, Title: "Bodleian", Identifiers: map[string]string{"osm": "W123"}}
	s.repo.EXPECT().GetByIdentifier(ctx, "osm", "W123").Return(building, nil)
	s.provider.details = func(context.Context, string) (map[string]any, error) {
		s.Fail("details must not be fetched for a non-station")
		return nil, nil
	}

	_, _, err := s.service.ServiceDetails(ctx, "osm:W123", "abc")

	s.ErrorIs(err, portalErrors.ErrNotFound)
}

func (s *PlaceServiceTestSuite) TestServiceDetails_SingleOutboundCall() {
	ctx := context.Background()
	var calls atomic.Int32
	var actions []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		actions = append(actions, r.Header.Get("SOAPAction"))
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		_, _ = w.Write([]byte(serviceDetailsResponse))
	}))
	defer srv.Close()

	provider := ldb.NewProvider(config.LDBConfig{
		Endpoint:    srv.URL,
		Token:       "secret",
		MaxServices: 10,
		MaxResults:  1,
		Timeout:     time.Second,
	}, dbtest.Logger())
	svc := New(s.repo, dbtest.Logger(), provider)
	s.repo.EXPECT().GetByIdentifier(ctx, "crs", "OXF").Return(oxford(), nil)

	_, details, err := svc.ServiceDetails(ctx, "crs:OXF", "abc123")

	s.Require().NoError(err)
	s.Equal("Great Western Railway", details["operator"])
	s.Equal(int32(1), calls.Load())
	s.Require().Len(actions, 1)
	s.True(strings.HasSuffix(actions[0], "GetServiceDetails\""), actions[0])
}

const serviceDetailsResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <GetServiceDetailsResponse xmlns="http://thalesgroup.com/RTTI/2017-10-01/ldb/">
      <GetServiceDetailsResult>
        <locationName>Oxford</locationName>
        <operator>Great Western Railway</operator>
      </GetServiceDetailsResult>
    </GetServiceDetailsResponse>
  </soap:Body>
</soap:Envelope>`
