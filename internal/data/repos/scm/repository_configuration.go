package scm

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
	"github.com/yungbote/buildstore-backend/internal/scmurl"
)

type RepositoryConfigurationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, configs []*types.RepositoryConfiguration) ([]*types.RepositoryConfiguration, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RepositoryConfiguration, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error
	QueryWithPredicates(ctx context.Context, tx *gorm.DB, preds ...scmurl.Predicate) ([]*types.RepositoryConfiguration, error)
	SearchByScmURL(ctx context.Context, tx *gorm.DB, query string) ([]*types.RepositoryConfiguration, error)
}

type repositoryConfigurationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRepositoryConfigurationRepo(db *gorm.DB, baseLog *logger.Logger) RepositoryConfigurationRepo {
	repoLog := baseLog.With("repo", "RepositoryConfigurationRepo")
	return &repositoryConfigurationRepo{db: db, log: repoLog}
}

func (rr *repositoryConfigurationRepo) Create(ctx context.Context, tx *gorm.DB, configs []*types.RepositoryConfiguration) ([]*types.RepositoryConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(configs) == 0 {
		return []*types.RepositoryConfiguration{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&configs).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("internal url already registered: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return configs, nil
}

func (rr *repositoryConfigurationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RepositoryConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.RepositoryConfiguration
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Take(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("repository configuration %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &result, nil
}

func (rr *repositoryConfigurationRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.RepositoryConfiguration{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// QueryWithPredicates returns every repository configuration satisfying all
// supplied predicates (AND semantics). Matching happens on normalized URLs in
// memory, so predicates stay independent of the storage query language; an
// unmatched query just yields an empty slice, never an error.
func (rr *repositoryConfigurationRepo) QueryWithPredicates(ctx context.Context, tx *gorm.DB, preds ...scmurl.Predicate) ([]*types.RepositoryConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var candidates []*types.RepositoryConfiguration
	if err := transaction.WithContext(ctx).
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	match := scmurl.And(preds...)
	results := make([]*types.RepositoryConfiguration, 0, len(candidates))
	for _, candidate := range candidates {
		if match(candidate) {
			results = append(results, candidate)
		}
	}
	return results, nil
}

func (rr *repositoryConfigurationRepo) SearchByScmURL(ctx context.Context, tx *gorm.DB, query string) ([]*types.RepositoryConfiguration, error) {
	return rr.QueryWithPredicates(ctx, tx, scmurl.SearchByScmURL(query))
}
