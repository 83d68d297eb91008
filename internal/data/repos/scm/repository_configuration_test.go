package scm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/buildstore-backend/internal/data/repos/testutil"
	types "github.com/yungbote/buildstore-backend/internal/domain"
	apperrors "github.com/yungbote/buildstore-backend/internal/pkg/errors"
	"github.com/yungbote/buildstore-backend/internal/scmurl"
)

func TestRepositoryConfigurationPredicateQueries(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRepositoryConfigurationRepo(db, testutil.Logger(t))
	ctx := context.Background()

	internalURL := "git+ssh://internal.repo.com/repo.git"
	externalURL := "https://github.com/external/repo.git"
	seeded := testutil.SeedRepositoryConfiguration(t, ctx, tx, internalURL, externalURL)

	expectFound := func(name string, preds ...scmurl.Predicate) {
		t.Helper()
		results, err := repo.QueryWithPredicates(ctx, tx, preds...)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, rc := range results {
			if rc.ID == seeded.ID {
				return
			}
		}
		t.Fatalf("%s: repository configuration was not found", name)
	}
	expectMissing := func(name string, preds ...scmurl.Predicate) {
		t.Helper()
		results, err := repo.QueryWithPredicates(ctx, tx, preds...)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, rc := range results {
			if rc.ID == seeded.ID {
				t.Fatalf("%s: repository configuration should not be found", name)
			}
		}
	}

	expectFound("search substring", scmurl.SearchByScmURL("repo"))
	expectMissing("search no match", scmurl.SearchByScmURL("repoX"))
	expectFound("search other scheme", scmurl.SearchByScmURL("ssh://internal.repo.com/repo.git"))
	expectFound("search http scheme", scmurl.SearchByScmURL("http://internal.repo.com/repo.git"))
	expectFound("exact internal", scmurl.WithExactInternalScmRepoURL(internalURL))
	expectFound("internal partial", scmurl.WithInternalScmRepoURL("ssh://internal.repo.com/repo"))
	expectFound("external partial", scmurl.WithExternalScmRepoURL("http://github.com/external/repo.git"))
	expectMissing("internal never sees external", scmurl.WithInternalScmRepoURL("http://github.com/external/repo.git"))
	expectMissing("external never sees internal", scmurl.WithExternalScmRepoURL("ssh://internal.repo.com/"))
	expectFound("conjunction", scmurl.WithInternalScmRepoURL("internal.repo.com"), scmurl.WithExternalScmRepoURL("github.com"))
	expectMissing("conjunction with miss", scmurl.WithInternalScmRepoURL("internal.repo.com"), scmurl.WithExternalScmRepoURL("nowhere"))
}

func TestRepositoryConfigurationCRUD(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRepositoryConfigurationRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.RepositoryConfiguration{
		{InternalURL: "git+ssh://internal.repo.com/crud.git"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 configuration, got %d", len(created))
	}

	if _, err := repo.Create(ctx, tx, []*types.RepositoryConfiguration{
		{InternalURL: "git+ssh://internal.repo.com/crud.git"},
	}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("Create (duplicate internal url): expected ErrConflict, got %v", err)
	}
}

func TestRepositoryConfigurationUpdateFields(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRepositoryConfigurationRepo(db, testutil.Logger(t))
	ctx := context.Background()

	seeded := testutil.SeedRepositoryConfiguration(t, ctx, tx,
		"git+ssh://internal.repo.com/update.git", "")

	if err := repo.UpdateFields(ctx, tx, seeded.ID, map[string]any{
		"external_url": "https://github.com/external/update.git",
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ExternalURL != "https://github.com/external/update.git" {
		t.Fatalf("UpdateFields: external url not updated, got %q", got.ExternalURL)
	}

	if _, err := repo.GetByID(ctx, tx, uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetByID: expected ErrNotFound, got %v", err)
	}
}

func TestRepositoryConfigurationSearchByScmURL(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRepositoryConfigurationRepo(db, testutil.Logger(t))
	ctx := context.Background()

	seeded := testutil.SeedRepositoryConfiguration(t, ctx, tx,
		"git+ssh://internal.repo.com/search-only.git", "")

	results, err := repo.SearchByScmURL(ctx, tx, "internal.repo.com/search-only")
	if err != nil {
		t.Fatalf("SearchByScmURL: %v", err)
	}
	found := false
	for _, rc := range results {
		if rc.ID == seeded.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("SearchByScmURL should match on the internal URL")
	}
}
