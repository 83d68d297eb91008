package build

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	BuildStatusSuccess = "success"
	BuildStatusFailed  = "failed"
)

// BuildRecord is the immutable outcome of one completed build. The ID comes
// from the build record sequence, the snapshot reference points at a
// BuildConfigurationAudited row, and the two artifact sets live in explicit
// join tables.
type BuildRecord struct {
	ID int64 `gorm:"primaryKey;column:id" json:"id"`

	ConfigurationID  uuid.UUID `gorm:"type:uuid;not null;column:configuration_id;index" json:"configuration_id"`
	ConfigurationRev int32     `gorm:"not null;column:configuration_rev" json:"configuration_rev"`

	UserID uuid.UUID `gorm:"type:uuid;not null;column:user_id;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	SubmitTime time.Time `gorm:"column:submit_time;not null" json:"submit_time"`
	StartTime  time.Time `gorm:"column:start_time;not null" json:"start_time"`
	EndTime    time.Time `gorm:"column:end_time;not null" json:"end_time"`

	Status     string         `gorm:"column:status;not null;default:'success'" json:"status"`
	BuildLog   string         `gorm:"column:build_log;type:text" json:"build_log,omitempty"`
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb" json:"attributes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`

	// Resolved artifact sets, populated by the datastore service on return.
	BuiltArtifacts []*Artifact `gorm:"-" json:"built_artifacts,omitempty"`
	Dependencies   []*Artifact `gorm:"-" json:"dependencies,omitempty"`
}

func (BuildRecord) TableName() string { return "build_record" }

// BuildRecordBuiltArtifact links a record to an artifact it produced. The
// unique index on artifact_id enforces that an artifact is built by at most
// one record.
type BuildRecordBuiltArtifact struct {
	BuildRecordID int64     `gorm:"primaryKey;column:build_record_id" json:"build_record_id"`
	ArtifactID    uuid.UUID `gorm:"type:uuid;primaryKey;column:artifact_id;uniqueIndex" json:"artifact_id"`
}

func (BuildRecordBuiltArtifact) TableName() string { return "build_record_built_artifact" }

// BuildRecordDependency links a record to an artifact it consumed. The same
// artifact may be a dependency of many records.
type BuildRecordDependency struct {
	BuildRecordID int64     `gorm:"primaryKey;column:build_record_id" json:"build_record_id"`
	ArtifactID    uuid.UUID `gorm:"type:uuid;primaryKey;column:artifact_id;index" json:"artifact_id"`
}

func (BuildRecordDependency) TableName() string { return "build_record_dependency" }

// BuildRecordSequenceName is the counter row key for build record IDs.
const BuildRecordSequenceName = "build_record"

// BuildRecordSequence is the single-row counter backing build record ID
// allocation.
type BuildRecordSequence struct {
	Name   string `gorm:"primaryKey;column:name" json:"name"`
	LastID int64  `gorm:"column:last_id;not null" json:"last_id"`
}

func (BuildRecordSequence) TableName() string { return "build_record_sequence" }
