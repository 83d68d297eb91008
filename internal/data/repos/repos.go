package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/buildstore-backend/internal/data/repos/build"
	"github.com/yungbote/buildstore-backend/internal/data/repos/scm"
	"github.com/yungbote/buildstore-backend/internal/platform/logger"
)

type UserRepo = build.UserRepo
type BuildConfigurationRepo = build.BuildConfigurationRepo
type BuildConfigurationAuditedRepo = build.BuildConfigurationAuditedRepo
type ArtifactRepo = build.ArtifactRepo
type BuildRecordRepo = build.BuildRecordRepo
type SequenceRepo = build.SequenceRepo

type RepositoryConfigurationRepo = scm.RepositoryConfigurationRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return build.NewUserRepo(db, baseLog) }

func NewBuildConfigurationRepo(db *gorm.DB, baseLog *logger.Logger) BuildConfigurationRepo {
	return build.NewBuildConfigurationRepo(db, baseLog)
}

func NewBuildConfigurationAuditedRepo(db *gorm.DB, baseLog *logger.Logger) BuildConfigurationAuditedRepo {
	return build.NewBuildConfigurationAuditedRepo(db, baseLog)
}

func NewArtifactRepo(db *gorm.DB, baseLog *logger.Logger) ArtifactRepo {
	return build.NewArtifactRepo(db, baseLog)
}

func NewBuildRecordRepo(db *gorm.DB, baseLog *logger.Logger) BuildRecordRepo {
	return build.NewBuildRecordRepo(db, baseLog)
}

func NewSequenceRepo(db *gorm.DB, baseLog *logger.Logger) SequenceRepo {
	return build.NewSequenceRepo(db, baseLog)
}

func NewRepositoryConfigurationRepo(db *gorm.DB, baseLog *logger.Logger) RepositoryConfigurationRepo {
	return scm.NewRepositoryConfigurationRepo(db, baseLog)
}
