package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/buildstore-backend/internal/data/repos"
	"github.com/yungbote/buildstore-backend/internal/platform/logger"
)

type Repos struct {
	User                      repos.UserRepo
	BuildConfiguration        repos.BuildConfigurationRepo
	BuildConfigurationAudited repos.BuildConfigurationAuditedRepo
	Artifact                  repos.ArtifactRepo
	BuildRecord               repos.BuildRecordRepo
	Sequence                  repos.SequenceRepo
	RepositoryConfiguration   repos.RepositoryConfigurationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:                      repos.NewUserRepo(db, log),
		BuildConfiguration:        repos.NewBuildConfigurationRepo(db, log),
		BuildConfigurationAudited: repos.NewBuildConfigurationAuditedRepo(db, log),
		Artifact:                  repos.NewArtifactRepo(db, log),
		BuildRecord:               repos.NewBuildRecordRepo(db, log),
		Sequence:                  repos.NewSequenceRepo(db, log),
		RepositoryConfiguration:   repos.NewRepositoryConfigurationRepo(db, log),
	}
}
