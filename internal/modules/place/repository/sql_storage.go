package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

// SQLStorage implements Repository on top of the relational store
type SQLStorage struct {
	db *sqlx.DB
	tx *database.TransactionManager
}

// NewSQLStorage creates a new place storage
func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{
		db: db,
		tx: database.NewTransactionManager(db),
	}
}

// SaveEntity inserts the entity, or updates the one already owning any of
// its identifiers, and claims every identifier for it.
func (s *SQLStorage) SaveEntity(ctx context.Context, entity *domain.Entity) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exec := database.Executor(ctx, s.db)

		if entity.ID == 0 {
			entity.ID = s.findExisting(ctx, exec, entity.Identifiers)
		}

		if entity.ID == 0 {
			err := sqlx.GetContext(ctx, exec, &entity.ID, exec.Rebind(
				`INSERT INTO place_entities (title, entity_type, lat, lon) VALUES (?, ?, ?, ?) RETURNING id`),
				entity.Title, entity.Type, entity.Lat, entity.Lon)
			if err != nil {
				return oops.With("title", entity.Title, "context", "failed to insert place").Wrap(err)
			}
		} else {
			_, err := exec.ExecContext(ctx, exec.Rebind(
				`UPDATE place_entities SET title = ?, entity_type = ?, lat = ?, lon = ? WHERE id = ?`),
				entity.Title, entity.Type, entity.Lat, entity.Lon, entity.ID)
			if err != nil {
				return oops.With("entity_id", entity.ID, "context", "failed to update place").Wrap(err)
			}
		}

		for scheme, value := range entity.Identifiers {
			_, err := exec.ExecContext(ctx, exec.Rebind(
				`INSERT INTO place_identifiers (entity_id, scheme, value) VALUES (?, ?, ?)
				ON CONFLICT (scheme, value) DO UPDATE SET entity_id = excluded.entity_id`),
				entity.ID, scheme, value)
			if err != nil {
				return oops.With("entity_id", entity.ID, "scheme", scheme, "context", "failed to save identifier").Wrap(err)
			}
		}

		return nil
	})
}

func (s *SQLStorage) findExisting(ctx context.Context, exec sqlx.ExtContext, identifiers map[string]string) int64 {
	for scheme, value := range identifiers {
		var id int64
		err := sqlx.GetContext(ctx, exec, &id, exec.Rebind(
			`SELECT entity_id FROM place_identifiers WHERE scheme = ? AND value = ?`), scheme, value)
		if err == nil {
			return id
		}
	}
	return 0
}

// GetByIdentifier looks an entity up by one of its identifiers
func (s *SQLStorage) GetByIdentifier(ctx context.Context, scheme, value string) (*domain.Entity, error) {
	var entity domain.Entity
	err := s.db.GetContext(ctx, &entity, s.db.Rebind(`
		SELECT e.id, e.title, e.entity_type, e.lat, e.lon
		FROM place_entities e
		JOIN place_identifiers i ON i.entity_id = e.id
		WHERE i.scheme = ? AND i.value = ?`), scheme, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("scheme", scheme, "value", value).Wrap(portalErrors.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("scheme", scheme, "value", value, "context", "failed to get place").Wrap(err)
	}

	if err := s.loadIdentifiers(ctx, []*domain.Entity{&entity}); err != nil {
		return nil, err
	}
	return &entity, nil
}

// ListEntities lists entities of a type ordered by title. An empty type
// lists everything.
func (s *SQLStorage) ListEntities(ctx context.Context, entityType string) ([]*domain.Entity, error) {
	query := `SELECT id, title, entity_type, lat, lon FROM place_entities`
	args := []any{}
	if entityType != "" {
		query += ` WHERE entity_type = ?`
		args = append(args, entityType)
	}
	query += ` ORDER BY title`

	var entities []*domain.Entity
	if err := s.db.SelectContext(ctx, &entities, s.db.Rebind(query), args...); err != nil {
		return nil, oops.With("entity_type", entityType, "context", "failed to list places").Wrap(err)
	}

	if err := s.loadIdentifiers(ctx, entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (s *SQLStorage) loadIdentifiers(ctx context.Context, entities []*domain.Entity) error {
	if len(entities) == 0 {
		return nil
	}

	byID := lo.KeyBy(entities, func(e *domain.Entity) int64 { return e.ID })
	query, args, err := sqlx.In(`SELECT entity_id, scheme, value FROM place_identifiers WHERE entity_id IN (?)`, lo.Keys(byID))
	if err != nil {
		return oops.With("context", "failed to build identifier query").Wrap(err)
	}

	var identifiers []domain.Identifier
	if err := s.db.SelectContext(ctx, &identifiers, s.db.Rebind(query), args...); err != nil {
		return oops.With("context", "failed to load identifiers").Wrap(err)
	}

	for _, id := range identifiers {
		entity := byID[id.EntityID]
		if entity.Identifiers == nil {
			entity.Identifiers = make(map[string]string)
		}
		entity.Identifiers[id.Scheme] = id.Value
	}
	return nil
}
