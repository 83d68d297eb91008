package scm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RepositoryConfiguration identifies one source repository from two vantage
// points: the internal mirror URL (always present, unique) and the external
// origin URL (optional).
type RepositoryConfiguration struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	InternalURL string `gorm:"column:internal_url;uniqueIndex;not null" json:"internal_url"`
	ExternalURL string `gorm:"column:external_url" json:"external_url,omitempty"`

	PreBuildSyncEnabled bool `gorm:"column:prebuild_sync_enabled;not null;default:false" json:"prebuild_sync_enabled"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (RepositoryConfiguration) TableName() string { return "repository_configuration" }
