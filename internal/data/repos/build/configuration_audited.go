package build

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/buildstore-backend/internal/domain"
	apperrors "github.com/yungbote/buildstore-backend/internal/pkg/errors"
	"github.com/yungbote/buildstore-backend/internal/platform/logger"
)

// BuildConfigurationAuditedRepo is read-only: audited rows are produced by
// the configuration-save path, never by this module.
type BuildConfigurationAuditedRepo interface {
	GetAllByConfigurationIDOrderByRevDesc(ctx context.Context, tx *gorm.DB, configurationID uuid.UUID) ([]*types.BuildConfigurationAudited, error)
	GetLatestByConfigurationID(ctx context.Context, tx *gorm.DB, configurationID uuid.UUID) (*types.BuildConfigurationAudited, error)
	GetByConfigurationIDAndRev(ctx context.Context, tx *gorm.DB, configurationID uuid.UUID, rev int32) (*types.BuildConfigurationAudited, error)
}

type buildConfigurationAuditedRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBuildConfigurationAuditedRepo(db *gorm.DB, baseLog *logger.Logger) BuildConfigurationAuditedRepo {
	repoLog := baseLog.With("repo", "BuildConfigurationAuditedRepo")
	return &buildConfigurationAuditedRepo{db: db, log: repoLog}
}

// GetAllByConfigurationIDOrderByRevDesc returns every audited revision of a
// configuration, most recent first. A configuration that was ever saved has
// at least one revision, so an empty result means the ID is unknown.
func (br *buildConfigurationAuditedRepo) GetAllByConfigurationIDOrderByRevDesc(ctx context.Context, tx *gorm.DB, configurationID uuid.UUID) ([]*types.BuildConfigurationAudited, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.BuildConfigurationAudited
	if err := transaction.WithContext(ctx).
		Where("configuration_id = ?", configurationID).
		Order("rev DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("audited revisions of configuration %s: %w", configurationID, apperrors.ErrNotFound)
	}
	return results, nil
}

func (br *buildConfigurationAuditedRepo) GetLatestByConfigurationID(ctx context.Context, tx *gorm.DB, configurationID uuid.UUID) (*types.BuildConfigurationAudited, error) {
	revisions, err := br.GetAllByConfigurationIDOrderByRevDesc(ctx, tx, configurationID)
	if err != nil {
		return nil, err
	}
	return revisions[0], nil
}

func (br *buildConfigurationAuditedRepo) GetByConfigurationIDAndRev(ctx context.Context, tx *gorm.DB, configurationID uuid.UUID, rev int32) (*types.BuildConfigurationAudited, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var result types.BuildConfigurationAudited
	if err := transaction.WithContext(ctx).
		Where("configuration_id = ? AND rev = ?", configurationID, rev).
		Take(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("audited revision %d of configuration %s: %w", rev, configurationID, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &result, nil
}
