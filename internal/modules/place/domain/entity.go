package domain

import (
	"context"
	"slices"

	"github.com/samber/lo"
)

// IdentifierCRS is the scheme of National Rail station codes.
const IdentifierCRS = "crs"

// MetadataServiceDetails holds a ServiceDetailsFunc when the entity's live
// board supports looking up individual services.
const MetadataServiceDetails = "service_details"

// Entity is a point of interest such as a rail station or a building.
type Entity struct {
	ID          int64             `db:"id" json:"id"`
	Title       string            `db:"title" json:"title"`
	Type        string            `db:"entity_type" json:"type"`
	Lat         *float64          `db:"lat" json:"lat,omitempty"`
	Lon         *float64          `db:"lon" json:"lon,omitempty"`
	Identifiers map[string]string `db:"-" json:"identifiers"`

	// Metadata is filled per request by providers and may hold callbacks,
	// so it is never serialized directly.
	Metadata map[string]any `db:"-" json:"-"`
}

// Identifier is one (scheme, value) pair naming an entity.
type Identifier struct {
	EntityID int64  `db:"entity_id"`
	Scheme   string `db:"scheme"`
	Value    string `db:"value"`
}

// URL is the canonical page of the entity. It prefers the crs code since
// that is what the live board is keyed on.
func (e *Entity) URL() string {
	if crs, ok := e.Identifiers[IdentifierCRS]; ok {
		return "/places/" + IdentifierCRS + ":" + crs + "/"
	}
	schemes := lo.Keys(e.Identifiers)
	if len(schemes) == 0 {
		return "/places/"
	}
	slices.Sort(schemes)
	return "/places/" + schemes[0] + ":" + e.Identifiers[schemes[0]] + "/"
}

// SetMetadata lazily allocates the metadata map.
func (e *Entity) SetMetadata(key string, value any) {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	e.Metadata[key] = value
}

// ServiceDetailsFunc fetches the calling points of a single service. It is
// stored in metadata by providers that support drilling into a board.
type ServiceDetailsFunc func(ctx context.Context, serviceID string) (map[string]any, error)
