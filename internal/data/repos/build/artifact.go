package build

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/buildstore-backend/internal/domain"
	"github.com/yungbote/buildstore-backend/internal/platform/logger"
)

type ArtifactRepo interface {
	Resolve(ctx context.Context, tx *gorm.DB, candidate *types.Artifact) (*types.Artifact, bool, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Artifact, error)
	GetByDedupKey(ctx context.Context, tx *gorm.DB, key string) (*types.Artifact, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type artifactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArtifactRepo(db *gorm.DB, baseLog *logger.Logger) ArtifactRepo {
	repoLog := baseLog.With("repo", "ArtifactRepo")
	return &artifactRepo{db: db, log: repoLog}
}

// Resolve deduplicates a candidate artifact by its identity key. An existing
// row always wins, even when the candidate carries different size or origin
// metadata; only a genuinely unknown key inserts a new row. The insert is an
// ON CONFLICT DO NOTHING guarded by the dedup_key unique index, so a racing
// insert from another transaction degrades into a re-fetch of the winner and
// never aborts the surrounding transaction.
func (ar *artifactRepo) Resolve(ctx context.Context, tx *gorm.DB, candidate *types.Artifact) (*types.Artifact, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if candidate == nil {
		return nil, false, fmt.Errorf("resolve artifact: nil candidate")
	}

	key := candidate.ComputeDedupKey()

	existing, err := ar.getByDedupKey(ctx, transaction, key)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	row := *candidate
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.DedupKey = key

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dedup_key"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		ar.log.Debug("Resolve lost insert race, re-fetching", "dedup_key", key)
		winner, err := ar.getByDedupKey(ctx, transaction, key)
		if err != nil {
			return nil, false, fmt.Errorf("re-fetch artifact after conflict: %w", err)
		}
		return winner, false, nil
	}

	return &row, true, nil
}

func (ar *artifactRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Artifact, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Artifact
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *artifactRepo) GetByDedupKey(ctx context.Context, tx *gorm.DB, key string) (*types.Artifact, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return ar.getByDedupKey(ctx, transaction, key)
}

func (ar *artifactRepo) getByDedupKey(ctx context.Context, transaction *gorm.DB, key string) (*types.Artifact, error) {
	var result types.Artifact
	if err := transaction.WithContext(ctx).
		Where("dedup_key = ?", key).
		Take(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *artifactRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Artifact{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
