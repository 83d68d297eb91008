package build

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	RepoTypeMaven    = "maven"
	RepoTypeNPM      = "npm"
	RepoTypeCocoaPod = "cocoapod"
	RepoTypeGeneric  = "generic"
)

// Artifact is a content-addressed build output or input. Identity is the
// checksum tuple; (identifier, repo_type) is the fallback when no checksum
// was supplied. The dedup_key column materializes whichever applies so a
// single unique index can guard both.
type Artifact struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Identifier string `gorm:"column:identifier;not null;index" json:"identifier"`
	RepoType   string `gorm:"column:repo_type;not null" json:"repo_type"`

	MD5    string `gorm:"column:md5" json:"md5"`
	SHA1   string `gorm:"column:sha1" json:"sha1"`
	SHA256 string `gorm:"column:sha256" json:"sha256"`

	DedupKey string `gorm:"column:dedup_key;uniqueIndex;not null" json:"-"`

	SizeBytes  int64  `gorm:"column:size_bytes" json:"size_bytes"`
	DeployPath string `gorm:"column:deploy_path" json:"deploy_path"`

	// Set only for artifacts imported from an external repository.
	OriginURL  string     `gorm:"column:origin_url" json:"origin_url,omitempty"`
	ImportDate *time.Time `gorm:"column:import_date" json:"import_date,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Artifact) TableName() string { return "artifact" }

// HasChecksum reports whether any digest is present.
func (a *Artifact) HasChecksum() bool {
	return a.MD5 != "" || a.SHA1 != "" || a.SHA256 != ""
}

// ComputeDedupKey derives the identity key used for deduplication: the
// checksum tuple when at least one digest is present, otherwise
// (identifier, repo_type).
func (a *Artifact) ComputeDedupKey() string {
	if a.HasChecksum() {
		return fmt.Sprintf("cs:%s:%s:%s", a.MD5, a.SHA1, a.SHA256)
	}
	return fmt.Sprintf("id:%s:%s", a.Identifier, a.RepoType)
}
