package build

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/buildstore-backend/internal/data/db"
	types "github.com/yungbote/buildstore-backend/internal/domain"
	apperrors "github.com/yungbote/buildstore-backend/internal/pkg/errors"
	"github.com/yungbote/buildstore-backend/internal/platform/logger"
)

type BuildRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *types.BuildRecord) (*types.BuildRecord, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.BuildRecord, error)
	AddBuiltArtifacts(ctx context.Context, tx *gorm.DB, recordID int64, artifactIDs []uuid.UUID) error
	AddDependencies(ctx context.Context, tx *gorm.DB, recordID int64, artifactIDs []uuid.UUID) error
	GetBuiltArtifacts(ctx context.Context, tx *gorm.DB, recordID int64) ([]*types.Artifact, error)
	GetDependencies(ctx context.Context, tx *gorm.DB, recordID int64) ([]*types.Artifact, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type buildRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBuildRecordRepo(db *gorm.DB, baseLog *logger.Logger) BuildRecordRepo {
	repoLog := baseLog.With("repo", "BuildRecordRepo")
	return &buildRecordRepo{db: db, log: repoLog}
}

func (br *buildRecordRepo) Create(ctx context.Context, tx *gorm.DB, record *types.BuildRecord) (*types.BuildRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if record == nil {
		return nil, fmt.Errorf("create build record: nil record")
	}
	if record.ID == 0 {
		return nil, fmt.Errorf("create build record: missing allocated id: %w", apperrors.ErrInvalidArgument)
	}

	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("build record %d already exists: %w", record.ID, apperrors.ErrConflict)
		}
		return nil, err
	}
	return record, nil
}

func (br *buildRecordRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.BuildRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var result types.BuildRecord
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Take(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("build record %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &result, nil
}

// AddBuiltArtifacts records the artifacts this build produced. The unique
// index on artifact_id rejects an artifact already built by another record;
// that surfaces as ErrConflict and aborts the caller's transaction.
func (br *buildRecordRepo) AddBuiltArtifacts(ctx context.Context, tx *gorm.DB, recordID int64, artifactIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if len(artifactIDs) == 0 {
		return nil
	}

	rows := make([]*types.BuildRecordBuiltArtifact, 0, len(artifactIDs))
	for _, artifactID := range artifactIDs {
		rows = append(rows, &types.BuildRecordBuiltArtifact{
			BuildRecordID: recordID,
			ArtifactID:    artifactID,
		})
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("artifact already built by another record: %w", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

func (br *buildRecordRepo) AddDependencies(ctx context.Context, tx *gorm.DB, recordID int64, artifactIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if len(artifactIDs) == 0 {
		return nil
	}

	rows := make([]*types.BuildRecordDependency, 0, len(artifactIDs))
	for _, artifactID := range artifactIDs {
		rows = append(rows, &types.BuildRecordDependency{
			BuildRecordID: recordID,
			ArtifactID:    artifactID,
		})
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("duplicate dependency association: %w", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

func (br *buildRecordRepo) GetBuiltArtifacts(ctx context.Context, tx *gorm.DB, recordID int64) ([]*types.Artifact, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Artifact
	if err := transaction.WithContext(ctx).
		Joins("JOIN build_record_built_artifact bba ON bba.artifact_id = artifact.id").
		Where("bba.build_record_id = ?", recordID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *buildRecordRepo) GetDependencies(ctx context.Context, tx *gorm.DB, recordID int64) ([]*types.Artifact, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Artifact
	if err := transaction.WithContext(ctx).
		Joins("JOIN build_record_dependency brd ON brd.artifact_id = artifact.id").
		Where("brd.build_record_id = ?", recordID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *buildRecordRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.BuildRecord{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
