package service

import "errors"

var (
	// ErrAssetNotFound is returned when an asset id resolves to nothing.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrNodeNotFound is returned when an edge endpoint does not exist.
	ErrNodeNotFound = errors.New("node not found")
	// ErrEdgeNotFound is returned when an edge id resolves to nothing.
	ErrEdgeNotFound = errors.New("edge not found")
	// ErrEdgeExists is returned when the same (source, target, relation) edge already exists.
	ErrEdgeExists = errors.New("edge already exists")
	// ErrUnknownRelation is returned for a relation outside the schema.
	ErrUnknownRelation = errors.New("unknown edge relation")
	// ErrInvalidVersion is returned when an asset version is not valid semver.
	ErrInvalidVersion = errors.New("invalid asset version, expected semver")
	// ErrAssetNotTrashed is returned when restore is called on an active asset.
	ErrAssetNotTrashed = errors.New("asset is not in the trash")
)
