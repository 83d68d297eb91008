package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/buildstore-backend/internal/platform/logger"
	"github.com/yungbote/buildstore-backend/internal/services"
)

type Services struct {
	Datastore services.DatastoreService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Datastore: services.NewDatastoreService(
			db,
			log,
			reposet.BuildConfigurationAudited,
			reposet.User,
			reposet.Artifact,
			reposet.BuildRecord,
			reposet.Sequence,
		),
	}
}
