package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/buildstore-backend/internal/data/repos"
	types "github.com/yungbote/buildstore-backend/internal/domain"
	apperrors "github.com/yungbote/buildstore-backend/internal/pkg/errors"
	"github.com/yungbote/buildstore-backend/internal/platform/logger"
)

type DatastoreService interface {
	StoreCompletedBuild(ctx context.Context, req StoreCompletedBuildRequest) (*types.BuildRecord, error)
	RevisionsOf(ctx context.Context, configurationID uuid.UUID) ([]*types.BuildConfigurationAudited, error)
}

// StoreCompletedBuildRequest carries everything a finished build hands over:
// the configuration reference (latest audited revision is used when Rev is
// nil), the triggering user, the timestamp triple, and the two candidate
// artifact sets, none of which are persisted yet.
type StoreCompletedBuildRequest struct {
	ConfigurationID  uuid.UUID
	ConfigurationRev *int32

	Username string
	Email    string

	SubmitTime time.Time
	StartTime  time.Time
	EndTime    time.Time

	Status     string
	BuildLog   string
	Attributes datatypes.JSON

	BuiltArtifacts []*types.Artifact
	Dependencies   []*types.Artifact
}

type datastoreService struct {
	db              *gorm.DB
	log             *logger.Logger
	auditedRepo     repos.BuildConfigurationAuditedRepo
	userRepo        repos.UserRepo
	artifactRepo    repos.ArtifactRepo
	buildRecordRepo repos.BuildRecordRepo
	sequenceRepo    repos.SequenceRepo
}

func NewDatastoreService(
	db *gorm.DB,
	baseLog *logger.Logger,
	auditedRepo repos.BuildConfigurationAuditedRepo,
	userRepo repos.UserRepo,
	artifactRepo repos.ArtifactRepo,
	buildRecordRepo repos.BuildRecordRepo,
	sequenceRepo repos.SequenceRepo,
) DatastoreService {
	serviceLog := baseLog.With("service", "DatastoreService")
	return &datastoreService{
		db:              db,
		log:             serviceLog,
		auditedRepo:     auditedRepo,
		userRepo:        userRepo,
		artifactRepo:    artifactRepo,
		buildRecordRepo: buildRecordRepo,
		sequenceRepo:    sequenceRepo,
	}
}

// StoreCompletedBuild persists one finished build as a single transaction:
// snapshot resolution, user find-or-create, ID allocation, artifact
// deduplication, and the record with both artifact associations. Any failure
// rolls the whole transaction back; the allocated ID is consumed either way,
// which leaves a gap, never a duplicate.
func (ds *datastoreService) StoreCompletedBuild(ctx context.Context, req StoreCompletedBuildRequest) (*types.BuildRecord, error) {
	if req.ConfigurationID == uuid.Nil {
		return nil, fmt.Errorf("configuration reference is required: %w", apperrors.ErrInvalidArgument)
	}
	if req.Username == "" {
		return nil, fmt.Errorf("user is required: %w", apperrors.ErrInvalidArgument)
	}

	var record *types.BuildRecord
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var snapshot *types.BuildConfigurationAudited
		var err error
		if req.ConfigurationRev != nil {
			snapshot, err = ds.auditedRepo.GetByConfigurationIDAndRev(ctx, tx, req.ConfigurationID, *req.ConfigurationRev)
		} else {
			snapshot, err = ds.auditedRepo.GetLatestByConfigurationID(ctx, tx, req.ConfigurationID)
		}
		if err != nil {
			return err
		}

		user, err := ds.userRepo.FindOrCreate(ctx, tx, req.Username, req.Email)
		if err != nil {
			return err
		}

		recordID, err := ds.sequenceRepo.NextBuildRecordID(ctx)
		if err != nil {
			return err
		}

		// One shared resolution scope, so a dependency carrying the same
		// checksum as a built artifact lands on the same stored row.
		seen := map[string]*types.Artifact{}
		built, err := ds.resolveSet(ctx, tx, req.BuiltArtifacts, seen)
		if err != nil {
			return fmt.Errorf("resolve built artifacts: %w", err)
		}
		dependencies, err := ds.resolveSet(ctx, tx, req.Dependencies, seen)
		if err != nil {
			return fmt.Errorf("resolve dependency artifacts: %w", err)
		}

		status := req.Status
		if status == "" {
			status = types.BuildStatusSuccess
		}

		rec := &types.BuildRecord{
			ID:               recordID,
			ConfigurationID:  snapshot.ConfigurationID,
			ConfigurationRev: snapshot.Rev,
			UserID:           user.ID,
			SubmitTime:       req.SubmitTime,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			Status:           status,
			BuildLog:         req.BuildLog,
			Attributes:       req.Attributes,
		}
		if _, err := ds.buildRecordRepo.Create(ctx, tx, rec); err != nil {
			return err
		}

		if err := ds.buildRecordRepo.AddBuiltArtifacts(ctx, tx, rec.ID, artifactIDs(built)); err != nil {
			return err
		}
		if err := ds.buildRecordRepo.AddDependencies(ctx, tx, rec.ID, artifactIDs(dependencies)); err != nil {
			return err
		}

		rec.User = user
		rec.BuiltArtifacts = built
		rec.Dependencies = dependencies
		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	ds.log.Info("stored completed build",
		"build_record_id", record.ID,
		"configuration_id", record.ConfigurationID,
		"configuration_rev", record.ConfigurationRev,
		"built_artifacts", len(record.BuiltArtifacts),
		"dependencies", len(record.Dependencies),
	)
	return record, nil
}

// resolveSet resolves candidates through the artifact identity store and
// drops duplicates within the set. The seen map spans both sets of one call.
func (ds *datastoreService) resolveSet(ctx context.Context, tx *gorm.DB, candidates []*types.Artifact, seen map[string]*types.Artifact) ([]*types.Artifact, error) {
	results := make([]*types.Artifact, 0, len(candidates))
	inSet := map[uuid.UUID]bool{}
	for _, candidate := range candidates {
		if candidate == nil {
			return nil, fmt.Errorf("nil artifact candidate: %w", apperrors.ErrInvalidArgument)
		}
		key := candidate.ComputeDedupKey()
		resolved, ok := seen[key]
		if !ok {
			var err error
			resolved, _, err = ds.artifactRepo.Resolve(ctx, tx, candidate)
			if err != nil {
				return nil, err
			}
			seen[key] = resolved
		}
		if inSet[resolved.ID] {
			continue
		}
		inSet[resolved.ID] = true
		results = append(results, resolved)
	}
	return results, nil
}

func artifactIDs(artifacts []*types.Artifact) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(artifacts))
	for _, a := range artifacts {
		ids = append(ids, a.ID)
	}
	return ids
}

// RevisionsOf exposes the audited history of a configuration, newest first.
func (ds *datastoreService) RevisionsOf(ctx context.Context, configurationID uuid.UUID) ([]*types.BuildConfigurationAudited, error) {
	return ds.auditedRepo.GetAllByConfigurationIDOrderByRevDesc(ctx, nil, configurationID)
}
