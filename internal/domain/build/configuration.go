package build

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/buildstore-backend/internal/domain/scm"
)

// BuildConfiguration is the mutable, current definition of how a build runs.
// Every save produces an immutable BuildConfigurationAudited row; build
// records always point at the audited revision, never at this row.
type BuildConfiguration struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"column:name;uniqueIndex;not null" json:"name"`

	BuildScript string `gorm:"column:build_script;type:text" json:"build_script"`
	ScmRevision string `gorm:"column:scm_revision" json:"scm_revision"`
	Description string `gorm:"column:description" json:"description"`

	RepositoryConfigurationID *uuid.UUID                   `gorm:"type:uuid;column:repository_configuration_id;index" json:"repository_configuration_id,omitempty"`
	RepositoryConfiguration   *scm.RepositoryConfiguration `gorm:"foreignKey:RepositoryConfigurationID;references:ID" json:"repository_configuration,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BuildConfiguration) TableName() string { return "build_configuration" }
