package build

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/buildstore-backend/internal/domain"
	apperrors "github.com/yungbote/buildstore-backend/internal/pkg/errors"
	"github.com/yungbote/buildstore-backend/internal/platform/logger"
)

type SequenceRepo interface {
	NextBuildRecordID(ctx context.Context) (int64, error)
}

type sequenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSequenceRepo(db *gorm.DB, baseLog *logger.Logger) SequenceRepo {
	repoLog := baseLog.With("repo", "SequenceRepo")
	return &sequenceRepo{db: db, log: repoLog}
}

// NextBuildRecordID atomically increments the counter row and returns the new
// value. The increment always runs on its own connection, outside any caller
// transaction: a rolled-back build leaves a gap in the sequence, never a
// reused ID, and concurrent allocations don't queue behind long-running
// transactions.
func (sr *sequenceRepo) NextBuildRecordID(ctx context.Context) (int64, error) {
	var next int64
	err := sr.db.WithContext(ctx).
		Raw(
			"UPDATE build_record_sequence SET last_id = last_id + 1 WHERE name = ? RETURNING last_id",
			types.BuildRecordSequenceName,
		).
		Scan(&next).Error
	if err != nil {
		sr.log.Error("NextBuildRecordID failed", "error", err)
		return 0, fmt.Errorf("allocate build record id: %w", apperrors.ErrUnavailable)
	}
	if next == 0 {
		sr.log.Error("NextBuildRecordID found no counter row", "name", types.BuildRecordSequenceName)
		return 0, fmt.Errorf("build record sequence not seeded: %w", apperrors.ErrUnavailable)
	}
	return next, nil
}
