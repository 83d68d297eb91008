package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/buildstore-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(

		// =========================
		// Identity
		// =========================
		&types.User{},

		// =========================
		// SCM repositories
		// =========================
		&types.RepositoryConfiguration{},

		// =========================
		// Build configuration + audit trail
		// =========================
		&types.BuildConfiguration{},
		&types.BuildConfigurationAudited{},

		// =========================
		// Build outcomes
		// =========================
		&types.Artifact{},
		&types.BuildRecord{},
		&types.BuildRecordBuiltArtifact{},
		&types.BuildRecordDependency{},
		&types.BuildRecordSequence{},
	); err != nil {
		return err
	}

	return seedSequences(db)
}

// seedSequences makes sure every counter row exists before the first
// allocation. Existing counters keep their value.
func seedSequences(db *gorm.DB) error {
	row := &types.BuildRecordSequence{Name: types.BuildRecordSequenceName, LastID: 0}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}
