package ldb

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
)

// Metadata keys set on entities.
const (
	MetadataBoard          = "ldb"
	MetadataServiceType    = "service_type"
	MetadataServiceDetails = domain.MetadataServiceDetails

	ServiceType = "ldb"
)

// BoardClient is the subset of the web service used by the provider
type BoardClient interface {
	DepartureBoard(ctx context.Context, numRows int, crs string) (*Object, error)
	ArrivalBoard(ctx context.Context, numRows int, crs string) (*Object, error)
	ServiceDetails(ctx context.Context, serviceID string) (*Object, error)
}

// Connector builds a client for one request.
type Connector func() (BoardClient, error)

// Provider attaches live boards to station entities
type Provider struct {
	maxServices int
	maxResults  int
	connect     Connector
	logger      *slog.Logger
}

// NewProvider creates a provider calling the configured endpoint
func NewProvider(cfg config.LDBConfig, logger *slog.Logger) *Provider {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return NewProviderWithConnector(cfg, func() (BoardClient, error) {
		return NewClient(cfg.Endpoint, cfg.Token, httpClient)
	}, logger)
}

// NewProviderWithConnector creates a provider with a custom client factory
func NewProviderWithConnector(cfg config.LDBConfig, connect Connector, logger *slog.Logger) *Provider {
	return &Provider{
		maxServices: cfg.MaxServices,
		maxResults:  cfg.MaxResults,
		connect:     connect,
		logger:      logger.With("component", "ldb"),
	}
}

// AugmentMetadata fetches a board for each station among entities, up to
// the configured number of results. Failures never escape: an entity whose
// board could not be fetched carries {"error": true} under the "ldb" key.
func (p *Provider) AugmentMetadata(ctx context.Context, entities []*domain.Entity, board domain.BoardType) {
	stations := lo.Filter(entities, func(e *domain.Entity, _ int) bool {
		return e.Identifiers[domain.IdentifierCRS] != ""
	})
	stations = lo.Slice(stations, 0, max(p.maxResults, 0))
	if len(stations) == 0 {
		return
	}

	client, err := p.connect()
	if err != nil {
		p.logger.Warn("Could not create live departure board client", "error", err)
		markError(stations)
		return
	}

	for _, entity := range stations {
		crs := entity.Identifiers[domain.IdentifierCRS]

		result, err := p.fetchBoard(ctx, client, board, crs)
		if err != nil {
			p.logger.Warn("Could not retrieve live board for station", "crs", crs, "board", board, "error", err)
			markError([]*domain.Entity{entity})
			continue
		}

		entity.SetMetadata(MetadataBoard, TransformMap(result))
		entity.SetMetadata(MetadataServiceType, ServiceType)
		entity.SetMetadata(MetadataServiceDetails, domain.ServiceDetailsFunc(func(ctx context.Context, serviceID string) (map[string]any, error) {
			return serviceDetails(ctx, client, serviceID)
		}))
	}
}

// ServiceDetails fetches one service's calling points with a fresh client.
func (p *Provider) ServiceDetails(ctx context.Context, serviceID string) (map[string]any, error) {
	client, err := p.connect()
	if err != nil {
		return nil, oops.With("service_id", serviceID, "context", "failed to create client").Wrap(err)
	}
	return serviceDetails(ctx, client, serviceID)
}

func (p *Provider) fetchBoard(ctx context.Context, client BoardClient, board domain.BoardType, crs string) (*Object, error) {
	if board == domain.BoardTypeArrivals {
		return client.ArrivalBoard(ctx, p.maxServices, crs)
	}
	return client.DepartureBoard(ctx, p.maxServices, crs)
}

func serviceDetails(ctx context.Context, client BoardClient, serviceID string) (map[string]any, error) {
	result, err := client.ServiceDetails(ctx, serviceID)
	if err != nil {
		return nil, oops.With("service_id", serviceID).Wrap(err)
	}
	return TransformMap(result), nil
}

func markError(entities []*domain.Entity) {
	for _, entity := range entities {
		entity.SetMetadata(MetadataBoard, map[string]any{"error": true})
	}
}
