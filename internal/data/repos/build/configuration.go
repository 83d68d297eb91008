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

type BuildConfigurationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, configs []*types.BuildConfiguration) ([]*types.BuildConfiguration, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.BuildConfiguration, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.BuildConfiguration, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error
}

type buildConfigurationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBuildConfigurationRepo(db *gorm.DB, baseLog *logger.Logger) BuildConfigurationRepo {
	repoLog := baseLog.With("repo", "BuildConfigurationRepo")
	return &buildConfigurationRepo{db: db, log: repoLog}
}

func (br *buildConfigurationRepo) Create(ctx context.Context, tx *gorm.DB, configs []*types.BuildConfiguration) ([]*types.BuildConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if len(configs) == 0 {
		return []*types.BuildConfiguration{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

func (br *buildConfigurationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.BuildConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var result types.BuildConfiguration
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Take(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("build configuration %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &result, nil
}

func (br *buildConfigurationRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.BuildConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.BuildConfiguration
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *buildConfigurationRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.BuildConfiguration{}).
		Where("id = ?", id).
		Updates(updates).Error
}
