package build

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/buildstore-backend/internal/data/repos/testutil"
	types "github.com/yungbote/buildstore-backend/internal/domain"
	apperrors "github.com/yungbote/buildstore-backend/internal/pkg/errors"
)

func TestBuildRecordRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	recordRepo := NewBuildRecordRepo(db, testutil.Logger(t))
	artifactRepo := NewArtifactRepo(db, testutil.Logger(t))
	sequenceRepo := NewSequenceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	bc := testutil.SeedBuildConfiguration(t, ctx, tx, "record-repo-config")
	user := testutil.SeedUser(t, ctx, tx, "record-repo-user")

	built, _, err := artifactRepo.Resolve(ctx, tx, testutil.NewArtifact("org.test:built", "b1", 100))
	if err != nil {
		t.Fatalf("Resolve built: %v", err)
	}
	dep, _, err := artifactRepo.Resolve(ctx, tx, testutil.NewImportedArtifact("org.test:dep", "d1", 200))
	if err != nil {
		t.Fatalf("Resolve dependency: %v", err)
	}

	id, err := sequenceRepo.NextBuildRecordID(ctx)
	if err != nil {
		t.Fatalf("NextBuildRecordID: %v", err)
	}

	now := time.Now().UTC()
	record := &types.BuildRecord{
		ID:               id,
		ConfigurationID:  bc.ID,
		ConfigurationRev: 1,
		UserID:           user.ID,
		SubmitTime:       now,
		StartTime:        now,
		EndTime:          now,
		Status:           types.BuildStatusSuccess,
	}
	if _, err := recordRepo.Create(ctx, tx, record); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := recordRepo.AddBuiltArtifacts(ctx, tx, record.ID, []uuid.UUID{built.ID}); err != nil {
		t.Fatalf("AddBuiltArtifacts: %v", err)
	}
	if err := recordRepo.AddDependencies(ctx, tx, record.ID, []uuid.UUID{dep.ID}); err != nil {
		t.Fatalf("AddDependencies: %v", err)
	}

	got, err := recordRepo.GetByID(ctx, tx, record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ConfigurationID != bc.ID || got.ConfigurationRev != 1 {
		t.Fatalf("GetByID: wrong snapshot reference: %+v", got)
	}

	builtArtifacts, err := recordRepo.GetBuiltArtifacts(ctx, tx, record.ID)
	if err != nil {
		t.Fatalf("GetBuiltArtifacts: %v", err)
	}
	if len(builtArtifacts) != 1 || builtArtifacts[0].ID != built.ID {
		t.Fatalf("GetBuiltArtifacts: unexpected result: %+v", builtArtifacts)
	}

	dependencies, err := recordRepo.GetDependencies(ctx, tx, record.ID)
	if err != nil {
		t.Fatalf("GetDependencies: %v", err)
	}
	if len(dependencies) != 1 || dependencies[0].ID != dep.ID {
		t.Fatalf("GetDependencies: unexpected result: %+v", dependencies)
	}
}

func TestBuildRecordRepoGetByIDNotFound(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	recordRepo := NewBuildRecordRepo(db, testutil.Logger(t))
	ctx := context.Background()

	if _, err := recordRepo.GetByID(ctx, tx, -1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// An artifact can be the built output of at most one record. The duplicate
// insert is the last statement on the transaction: the conflict aborts it.
func TestBuildRecordRepoBuiltArtifactOnce(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	recordRepo := NewBuildRecordRepo(db, testutil.Logger(t))
	artifactRepo := NewArtifactRepo(db, testutil.Logger(t))
	sequenceRepo := NewSequenceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	bc := testutil.SeedBuildConfiguration(t, ctx, tx, "built-once-config")
	user := testutil.SeedUser(t, ctx, tx, "built-once-user")

	artifact, _, err := artifactRepo.Resolve(ctx, tx, testutil.NewArtifact("org.test:once", "once", 100))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	now := time.Now().UTC()
	for i := 0; i < 2; i++ {
		id, err := sequenceRepo.NextBuildRecordID(ctx)
		if err != nil {
			t.Fatalf("NextBuildRecordID: %v", err)
		}
		record := &types.BuildRecord{
			ID:               id,
			ConfigurationID:  bc.ID,
			ConfigurationRev: 1,
			UserID:           user.ID,
			SubmitTime:       now,
			StartTime:        now,
			EndTime:          now,
		}
		if _, err := recordRepo.Create(ctx, tx, record); err != nil {
			t.Fatalf("Create record %d: %v", i, err)
		}

		err = recordRepo.AddBuiltArtifacts(ctx, tx, record.ID, []uuid.UUID{artifact.ID})
		if i == 0 && err != nil {
			t.Fatalf("AddBuiltArtifacts (first): %v", err)
		}
		if i == 1 && !errors.Is(err, apperrors.ErrConflict) {
			t.Fatalf("AddBuiltArtifacts (second): expected ErrConflict, got %v", err)
		}
	}
}
