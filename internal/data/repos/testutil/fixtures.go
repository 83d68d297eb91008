package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/buildstore-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedRepositoryConfiguration(tb testing.TB, ctx context.Context, tx *gorm.DB, internalURL, externalURL string) *types.RepositoryConfiguration {
	tb.Helper()
	rc := &types.RepositoryConfiguration{
		ID:          uuid.New(),
		InternalURL: internalURL,
		ExternalURL: externalURL,
	}
	if err := tx.WithContext(ctx).Create(rc).Error; err != nil {
		tb.Fatalf("seed repository configuration: %v", err)
	}
	return rc
}

// SeedBuildConfiguration creates a configuration together with its first
// audited revision, the way the external save path would.
func SeedBuildConfiguration(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.BuildConfiguration {
	tb.Helper()
	bc := &types.BuildConfiguration{
		ID:          uuid.New(),
		Name:        name,
		BuildScript: "mvn deploy",
	}
	if err := tx.WithContext(ctx).Create(bc).Error; err != nil {
		tb.Fatalf("seed build configuration: %v", err)
	}
	SeedAuditedRevision(tb, ctx, tx, bc, 1)
	return bc
}

func SeedAuditedRevision(tb testing.TB, ctx context.Context, tx *gorm.DB, bc *types.BuildConfiguration, rev int32) *types.BuildConfigurationAudited {
	tb.Helper()
	aud := &types.BuildConfigurationAudited{
		ConfigurationID: bc.ID,
		Rev:             rev,
		Name:            bc.Name,
		BuildScript:     bc.BuildScript,
		ScmRevision:     bc.ScmRevision,
	}
	if err := tx.WithContext(ctx).Create(aud).Error; err != nil {
		tb.Fatalf("seed audited revision: %v", err)
	}
	return aud
}

// NewArtifact builds an unsaved candidate artifact whose three digests derive
// from one checksum seed, mirroring how completed builds hand artifacts in.
func NewArtifact(identifier, checksum string, size int64) *types.Artifact {
	return &types.Artifact{
		Identifier: identifier,
		RepoType:   types.RepoTypeMaven,
		MD5:        "md5-fake-" + checksum,
		SHA1:       "sha1-fake-" + checksum,
		SHA256:     "sha256-fake-" + checksum,
		SizeBytes:  size,
	}
}

// NewImportedArtifact is NewArtifact plus origin metadata.
func NewImportedArtifact(identifier, checksum string, size int64) *types.Artifact {
	a := NewArtifact(identifier, checksum, size)
	now := time.Now().UTC()
	a.OriginURL = fmt.Sprintf("http://central.example.com/%s.jar", identifier)
	a.ImportDate = &now
	return a
}
