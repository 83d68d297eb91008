package build

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/buildstore-backend/internal/data/repos/testutil"
	types "github.com/yungbote/buildstore-backend/internal/domain"
)

func TestArtifactRepoResolveDedup(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewArtifactRepo(db, testutil.Logger(t))
	ctx := context.Background()

	before, err := repo.CountAll(ctx, tx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}

	first, wasNew, err := repo.Resolve(ctx, tx, testutil.NewArtifact("org.test:artifact1", "1", 111))
	if err != nil {
		t.Fatalf("Resolve (first): %v", err)
	}
	if !wasNew {
		t.Fatalf("Resolve (first): expected a new row")
	}

	// Same checksum, different size and origin metadata: identity wins.
	candidate := testutil.NewImportedArtifact("org.test:artifact1", "1", 999)
	second, wasNew, err := repo.Resolve(ctx, tx, candidate)
	if err != nil {
		t.Fatalf("Resolve (second): %v", err)
	}
	if wasNew {
		t.Fatalf("Resolve (second): expected the existing row")
	}
	if second.ID != first.ID {
		t.Fatalf("Resolve (second): expected id %s, got %s", first.ID, second.ID)
	}
	if second.SizeBytes != 111 {
		t.Fatalf("Resolve (second): existing metadata should win, got size %d", second.SizeBytes)
	}

	after, err := repo.CountAll(ctx, tx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}
	if after != before+1 {
		t.Fatalf("expected exactly one new artifact row, got %d", after-before)
	}
}

func TestArtifactRepoResolveDistinctChecksums(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewArtifactRepo(db, testutil.Logger(t))
	ctx := context.Background()

	first, _, err := repo.Resolve(ctx, tx, testutil.NewArtifact("org.test:artifact1", "1", 111))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, wasNew, err := repo.Resolve(ctx, tx, testutil.NewArtifact("org.test:artifact2", "2", 222))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !wasNew {
		t.Fatalf("distinct checksum should insert a new row")
	}
	if second.ID == first.ID {
		t.Fatalf("distinct checksums must not share a row")
	}
}

// Racing resolutions of one checksum across separate connections must all
// land on a single row, each racer seeing the same identity.
func TestArtifactRepoResolveConcurrent(t *testing.T) {
	db := testutil.DB(t)

	repo := NewArtifactRepo(db, testutil.Logger(t))
	ctx := context.Background()

	checksum := "race-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		db.Exec("DELETE FROM artifact WHERE sha256 = ?", "sha256-fake-"+checksum)
	})

	const n = 8

	var mu sync.Mutex
	ids := make(map[uuid.UUID]bool, n)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			resolved, _, err := repo.Resolve(gctx, nil, testutil.NewArtifact("org.test:race", checksum, 111))
			if err != nil {
				return err
			}
			mu.Lock()
			ids[resolved.ID] = true
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Resolve: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected a single stored identity, got %d", len(ids))
	}
}

func TestArtifactRepoResolveFallbackKey(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewArtifactRepo(db, testutil.Logger(t))
	ctx := context.Background()

	noChecksum := func() *types.Artifact {
		return &types.Artifact{
			Identifier: "org.test:no-checksum",
			RepoType:   types.RepoTypeMaven,
			SizeBytes:  10,
		}
	}

	first, wasNew, err := repo.Resolve(ctx, tx, noChecksum())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !wasNew {
		t.Fatalf("expected a new row for unseen fallback key")
	}

	second, wasNew, err := repo.Resolve(ctx, tx, noChecksum())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if wasNew || second.ID != first.ID {
		t.Fatalf("identifier+repo_type fallback should dedup, got new=%v id=%s", wasNew, second.ID)
	}

	other := noChecksum()
	other.RepoType = types.RepoTypeNPM
	third, wasNew, err := repo.Resolve(ctx, tx, other)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !wasNew || third.ID == first.ID {
		t.Fatalf("different repo_type must be a different identity")
	}
}
