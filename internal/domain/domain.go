package domain

import (
	"github.com/yungbote/buildstore-backend/internal/domain/build"
	"github.com/yungbote/buildstore-backend/internal/domain/scm"
)

const (
	RepoTypeMaven    = build.RepoTypeMaven
	RepoTypeNPM      = build.RepoTypeNPM
	RepoTypeCocoaPod = build.RepoTypeCocoaPod
	RepoTypeGeneric  = build.RepoTypeGeneric

	BuildStatusSuccess = build.BuildStatusSuccess
	BuildStatusFailed  = build.BuildStatusFailed

	BuildRecordSequenceName = build.BuildRecordSequenceName
)

type User = build.User

type BuildConfiguration = build.BuildConfiguration
type BuildConfigurationAudited = build.BuildConfigurationAudited

type Artifact = build.Artifact
type BuildRecord = build.BuildRecord
type BuildRecordBuiltArtifact = build.BuildRecordBuiltArtifact
type BuildRecordDependency = build.BuildRecordDependency
type BuildRecordSequence = build.BuildRecordSequence

type RepositoryConfiguration = scm.RepositoryConfiguration
