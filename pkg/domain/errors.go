package domain

import "errors"

// ErrMalformedID is returned when an Id cannot be built or parsed following the
// "{moniker}\{providerType}\{modelID}" scheme.
var ErrMalformedID = errors.New("malformed dependency id")

// ErrEmptyDependencyID is returned when a dependency without an Id enters the pipeline.
var ErrEmptyDependencyID = errors.New("dependency id is empty")

// ErrAmbiguousKind is returned when a dependency is flagged both as an SDK node and as a package node.
var ErrAmbiguousKind = errors.New("dependency is both an sdk and a package node")

// ErrNilBuilder is returned when a filter needs a world or top-level builder that was not supplied.
var ErrNilBuilder = errors.New("snapshot builder is nil")

// ErrInconsistentSnapshot is returned when a top-level dependency is missing from the world.
var ErrInconsistentSnapshot = errors.New("inconsistent snapshot")

// ErrSnapshotNotFound is returned when no snapshot exists for a project and target framework.
var ErrSnapshotNotFound = errors.New("snapshot not found")
