package build

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BuildConfigurationAudited is an immutable point-in-time copy of a
// BuildConfiguration, keyed by (configuration_id, rev). Rows are written by
// the configuration-save audit path; nothing in this module updates or
// deletes them.
type BuildConfigurationAudited struct {
	ConfigurationID uuid.UUID `gorm:"type:uuid;primaryKey;column:configuration_id" json:"configuration_id"`
	Rev             int32     `gorm:"primaryKey;column:rev" json:"rev"`

	Name        string `gorm:"column:name;not null" json:"name"`
	BuildScript string `gorm:"column:build_script;type:text" json:"build_script"`
	ScmRevision string `gorm:"column:scm_revision" json:"scm_revision"`

	RepositoryConfigurationID *uuid.UUID `gorm:"type:uuid;column:repository_configuration_id" json:"repository_configuration_id,omitempty"`

	GenericParameters datatypes.JSON `gorm:"column:generic_parameters;type:jsonb" json:"generic_parameters"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (BuildConfigurationAudited) TableName() string { return "build_configuration_audited" }
