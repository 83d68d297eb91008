package build

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/buildstore-backend/internal/domain"
	apperrors "github.com/yungbote/buildstore-backend/internal/pkg/errors"
	"github.com/yungbote/buildstore-backend/internal/platform/logger"
)

type UserRepo interface {
	FindOrCreate(ctx context.Context, tx *gorm.DB, username, email string) (*types.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

// FindOrCreate returns the user with the given username, creating it on
// first reference. Uniqueness is on username; a concurrent create degrades
// into a re-fetch of the winner via ON CONFLICT DO NOTHING.
func (ur *userRepo) FindOrCreate(ctx context.Context, tx *gorm.DB, username, email string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if username == "" {
		return nil, fmt.Errorf("username is required: %w", apperrors.ErrInvalidArgument)
	}

	existing, err := ur.getByUsername(ctx, transaction, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
	}
	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		winner, err := ur.getByUsername(ctx, transaction, username)
		if err != nil {
			return nil, fmt.Errorf("re-fetch user after conflict: %w", err)
		}
		return winner, nil
	}
	return row, nil
}

func (ur *userRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	result, err := ur.getByUsername(ctx, transaction, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return result, nil
}

func (ur *userRepo) getByUsername(ctx context.Context, transaction *gorm.DB, username string) (*types.User, error) {
	var result types.User
	if err := transaction.WithContext(ctx).
		Where("username = ?", username).
		Take(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
