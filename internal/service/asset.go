package service

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/semver"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/blacksmith/atlas/internal/cache"
	"github.com/blacksmith/atlas/internal/library"
	"github.com/blacksmith/atlas/internal/model"
	"github.com/blacksmith/atlas/internal/queue"
	"github.com/blacksmith/atlas/internal/store"
)

// NewAssetService creates a new AssetService.
func NewAssetService(store store.Store, cache cache.AssetCache, events queue.AssetQueue, lib *library.Library) *AssetService {
	return &AssetService{
		store:   store,
		cache:   cache,
		events:  events,
		library: lib,
	}
}

// AssetService is the core of the library: asset CRUD, filtering, the
// trash lifecycle and the filesystem side effects behind it.
type AssetService struct {
	store   store.Store
	cache   cache.AssetCache
	events  queue.AssetQueue
	library *library.Library
}

// CreateAsset stores a new asset and wires its bookkeeping edges
// (creator, project) in the same transaction.
func (s *AssetService) CreateAsset(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}
	if asset.Status == "" {
		asset.Status = model.AssetStatusActive
	}
	if asset.Version == "" {
		asset.Version = "1.0.0"
	}
	if _, err := semver.NewVersion(asset.Version); err != nil {
		return nil, ErrInvalidVersion
	}
	if asset.Tags == "" {
		asset.Tags = "[]"
	}

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateAsset(ctx, asset); err != nil {
			return err
		}

		if asset.CreatorID != "" {
			if err := createBookkeepingEdge(ctx, tx, model.RelationUserCreatedAsset, asset.CreatorID, asset.ID); err != nil {
				return err
			}
		}

		if asset.ProjectID != "" {
			if err := createBookkeepingEdge(ctx, tx, model.RelationProjectContainsAsset, asset.ProjectID, asset.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, queue.EventAssetCreated, asset)

	return asset, nil
}

func createBookkeepingEdge(ctx context.Context, tx store.Store, relation, sourceID, targetID string) error {
	kind, _, _ := model.RelationEndpoints(relation)

	source, err := uuid.Parse(sourceID)
	if err != nil {
		return err
	}

	exists, err := tx.NodeExists(ctx, kind, source)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNodeNotFound
	}

	edge := &model.Edge{
		ID:       uuid.New().String(),
		Relation: relation,
		SourceID: sourceID,
		TargetID: targetID,
		Meta:     "{}",
	}

	return tx.CreateEdge(ctx, edge)
}

// GetAsset returns an asset, cache first.
func (s *AssetService) GetAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	cached, err := s.cache.GetAsset(ctx, id)
	if err != nil {
		logrus.Warnf("asset cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	asset, err := s.store.GetAsset(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	if err := s.cache.SetAsset(ctx, asset); err != nil {
		logrus.Warnf("asset cache write failed: %v", err)
	}

	return asset, nil
}

// ListAssets applies the filter plus the tag conjunction: every
// requested tag must be present on the asset. Tags live in a json
// column the query cannot index, so with tags set the store fetch is
// unpaginated and limit/offset apply after filtering.
func (s *AssetService) ListAssets(ctx context.Context, filter store.AssetFilter, tags []string) ([]*model.Asset, int64, error) {
	if filter.Status == "" {
		filter.Status = model.AssetStatusActive
	}

	if len(tags) == 0 {
		return s.store.ListAssets(ctx, filter)
	}

	limit, offset := filter.Limit, filter.Offset
	filter.Limit, filter.Offset = 0, 0

	assets, _, err := s.store.ListAssets(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]*model.Asset, 0, len(assets))
	for _, asset := range assets {
		keep := true
		for _, tag := range tags {
			if !asset.HasTag(tag) {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, asset)
		}
	}

	total := int64(len(filtered))
	if offset > 0 {
		if offset >= len(filtered) {
			filtered = filtered[:0]
		} else {
			filtered = filtered[offset:]
		}
	}
	if limit > 0 && limit < len(filtered) {
		filtered = filtered[:limit]
	}

	return filtered, total, nil
}

// UpdateAsset saves changed fields and invalidates the cache.
func (s *AssetService) UpdateAsset(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	id, err := uuid.Parse(asset.ID)
	if err != nil {
		return nil, ErrAssetNotFound
	}

	current, err := s.store.GetAsset(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	// a body without a version keeps the current one
	if asset.Version == "" {
		asset.Version = current.Version
	} else if asset.Version != current.Version {
		if _, err := semver.NewVersion(asset.Version); err != nil {
			return nil, ErrInvalidVersion
		}
	}

	asset.CreatedAt = current.CreatedAt
	asset.Status = current.Status
	asset.TrashedAt = current.TrashedAt
	if err := s.store.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}

	if err := s.cache.DeleteAsset(ctx, id); err != nil {
		logrus.Warnf("asset cache invalidation failed: %v", err)
	}

	s.publishEvent(ctx, queue.EventAssetUpdated, asset)

	return asset, nil
}

// BumpVersion bumps the asset semver on the given level: major, minor
// or patch.
func (s *AssetService) BumpVersion(ctx context.Context, id uuid.UUID, level string) (*model.Asset, error) {
	asset, err := s.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	version, err := semver.NewVersion(asset.Version)
	if err != nil {
		return nil, ErrInvalidVersion
	}

	var next semver.Version
	switch level {
	case "major":
		next = version.IncMajor()
	case "minor":
		next = version.IncMinor()
	default:
		next = version.IncPatch()
	}

	asset.Version = next.String()
	return s.UpdateAsset(ctx, asset)
}

// TrashAsset soft deletes the asset and moves its folder under the
// library trash dir. The row update and the rename happen together so
// a failed rename leaves the asset active.
func (s *AssetService) TrashAsset(ctx context.Context, id uuid.UUID) error {
	asset, err := s.store.GetAsset(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssetNotFound
		}
		return err
	}

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.TrashAsset(ctx, id, time.Now()); err != nil {
			return err
		}

		if _, err := s.library.MoveToTrash(asset.ID, asset.FilePath); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.cache.DeleteAsset(ctx, id); err != nil {
		logrus.Warnf("asset cache invalidation failed: %v", err)
	}

	s.publishEvent(ctx, queue.EventAssetTrashed, asset)

	return nil
}

// RestoreAsset brings a trashed asset back, files included.
func (s *AssetService) RestoreAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	asset, err := s.store.GetAsset(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	if asset.Status != model.AssetStatusTrashed {
		return nil, ErrAssetNotTrashed
	}

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.RestoreAsset(ctx, id); err != nil {
			return err
		}

		return s.library.RestoreFromTrash(asset.ID, asset.FilePath)
	})
	if err != nil {
		return nil, err
	}

	asset.Status = model.AssetStatusActive
	asset.TrashedAt = nil

	// a read while the asset sat in the trash may have cached the
	// trashed row
	if err := s.cache.DeleteAsset(ctx, id); err != nil {
		logrus.Warnf("asset cache invalidation failed: %v", err)
	}

	s.publishEvent(ctx, queue.EventAssetRestored, asset)

	return asset, nil
}

// EraseAsset hard deletes the asset row, its incident edges and the
// trashed files. Used by the trash purge job once retention runs out.
func (s *AssetService) EraseAsset(ctx context.Context, id uuid.UUID) error {
	asset, err := s.store.GetAsset(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssetNotFound
		}
		return err
	}

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.DeleteNodeEdges(ctx, id); err != nil {
			return err
		}

		return tx.EraseAsset(ctx, id)
	})
	if err != nil {
		return err
	}

	if err := s.library.Purge(asset.ID); err != nil {
		logrus.Warnf("purging trashed files for %s failed: %v", asset.ID, err)
	}

	if err := s.cache.DeleteAsset(ctx, id); err != nil {
		logrus.Warnf("asset cache invalidation failed: %v", err)
	}

	s.publishEvent(ctx, queue.EventAssetErased, asset)

	return nil
}

// OpenFolder reveals the asset folder in the host file manager.
func (s *AssetService) OpenFolder(ctx context.Context, id uuid.UUID) error {
	asset, err := s.GetAsset(ctx, id)
	if err != nil {
		return err
	}

	return s.library.OpenFolder(asset.FilePath)
}

func (s *AssetService) publishEvent(ctx context.Context, eventType string, asset *model.Asset) {
	event := &queue.AssetEvent{
		Type:      eventType,
		AssetID:   asset.ID,
		ProjectID: asset.ProjectID,
		At:        time.Now(),
	}

	if err := s.events.PublishEvent(ctx, event); err != nil {
		logrus.Errorf("publishing %s event for %s failed: %v", eventType, asset.ID, err)
	}
}
