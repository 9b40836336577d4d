package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/domain"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

const featureColumns = `id, user_name, user_email, title, description, up_vote, down_vote,
	created, last_commented, is_public, is_removed`

// SQLStorage implements Repository on top of the relational store
type SQLStorage struct {
	db *sqlx.DB
}

// NewSQLStorage creates a new feature storage
func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

func (s *SQLStorage) Create(ctx context.Context, feature *domain.Feature) error {
	exec := database.Executor(ctx, s.db)
	err := sqlx.GetContext(ctx, exec, &feature.ID, exec.Rebind(`
		INSERT INTO features (user_name, user_email, title, description, up_vote, down_vote,
			created, last_commented, is_public, is_removed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		feature.UserName, feature.UserEmail, feature.Title, feature.Description, feature.UpVote, feature.DownVote,
		feature.Created.UTC(), lastCommented(feature), feature.IsPublic, feature.IsRemoved)
	if err != nil {
		return oops.With("title", feature.Title, "context", "failed to create feature").Wrap(err)
	}
	return nil
}

func lastCommented(feature *domain.Feature) any {
	if feature.LastCommented == nil {
		return nil
	}
	return feature.LastCommented.UTC()
}

func (s *SQLStorage) ListPublic(ctx context.Context) ([]*domain.Feature, error) {
	var features []*domain.Feature
	err := s.db.SelectContext(ctx, &features, `SELECT `+featureColumns+` FROM features
		WHERE is_public AND NOT is_removed
		ORDER BY last_commented DESC NULLS LAST, created DESC, id DESC`)
	if err != nil {
		return nil, oops.With("context", "failed to list features").Wrap(err)
	}
	return features, nil
}

func (s *SQLStorage) GetPublic(ctx context.Context, id int64) (*domain.Feature, error) {
	exec := database.Executor(ctx, s.db)
	var feature domain.Feature
	err := sqlx.GetContext(ctx, exec, &feature, exec.Rebind(`SELECT `+featureColumns+` FROM features
		WHERE id = ? AND is_public AND NOT is_removed`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("feature_id", id).Wrap(portalErrors.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("feature_id", id, "context", "failed to get feature").Wrap(err)
	}
	return &feature, nil
}

func (s *SQLStorage) LockPublic(ctx context.Context, id int64) error {
	exec := database.Executor(ctx, s.db)
	query := `SELECT id FROM features WHERE id = ? AND is_public AND NOT is_removed`
	// sqlite has no row locks; its single writer already serialises votes.
	if exec.DriverName() == "postgres" {
		query += ` FOR UPDATE`
	}

	var locked int64
	err := sqlx.GetContext(ctx, exec, &locked, exec.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return oops.With("feature_id", id).Wrap(portalErrors.ErrNotFound)
	}
	if err != nil {
		return oops.With("feature_id", id, "context", "failed to lock feature").Wrap(err)
	}
	return nil
}

func (s *SQLStorage) GetVote(ctx context.Context, featureID int64, userID string) (domain.Direction, error) {
	exec := database.Executor(ctx, s.db)
	var direction domain.Direction
	err := sqlx.GetContext(ctx, exec, &direction, exec.Rebind(`
		SELECT direction FROM feature_votes WHERE feature_id = ? AND user_id = ?`), featureID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, oops.With("feature_id", featureID, "user_id", userID, "context", "failed to get vote").Wrap(err)
	}
	return direction, nil
}

func (s *SQLStorage) SetVote(ctx context.Context, featureID int64, userID string, direction domain.Direction) error {
	exec := database.Executor(ctx, s.db)
	_, err := exec.ExecContext(ctx, exec.Rebind(`
		INSERT INTO feature_votes (feature_id, user_id, direction) VALUES (?, ?, ?)
		ON CONFLICT (feature_id, user_id) DO UPDATE SET direction = excluded.direction`),
		featureID, userID, int(direction))
	if err != nil {
		return oops.With("feature_id", featureID, "user_id", userID, "context", "failed to record vote").Wrap(err)
	}
	return nil
}

func (s *SQLStorage) AdjustVotes(ctx context.Context, featureID int64, up, down int) error {
	exec := database.Executor(ctx, s.db)
	_, err := exec.ExecContext(ctx, exec.Rebind(`
		UPDATE features SET up_vote = up_vote + ?, down_vote = down_vote + ? WHERE id = ?`),
		up, down, featureID)
	if err != nil {
		return oops.With("feature_id", featureID, "context", "failed to adjust votes").Wrap(err)
	}
	return nil
}
