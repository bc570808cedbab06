package service

import (
	"context"
	"errors"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blacksmith/atlas/internal/model"
	"github.com/blacksmith/atlas/internal/store"
)

// DefaultTraversalDepth bounds dependency walks when the caller does
// not ask for a depth.
const DefaultTraversalDepth = 10

// NewGraphService creates a new GraphService.
func NewGraphService(store store.Store) *GraphService {
	return &GraphService{store: store}
}

// GraphService manages the typed edges and answers the relationship
// queries backing the library browser: what a build uses, what uses it
// and what it depends on.
type GraphService struct {
	store store.Store
}

// CreateEdge inserts a typed edge after checking the relation is part
// of the schema, both endpoints exist with the expected kinds and the
// edge is not a duplicate.
func (s *GraphService) CreateEdge(ctx context.Context, relation string, sourceID, targetID uuid.UUID, meta map[string]string) (*model.Edge, error) {
	sourceKind, targetKind, ok := model.RelationEndpoints(relation)
	if !ok {
		return nil, ErrUnknownRelation
	}

	exists, err := s.store.NodeExists(ctx, sourceKind, sourceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNodeNotFound
	}

	exists, err = s.store.NodeExists(ctx, targetKind, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNodeNotFound
	}

	if _, err := s.store.GetEdgeByEndpoints(ctx, sourceID, targetID, relation); err == nil {
		return nil, ErrEdgeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	edge := &model.Edge{
		ID:       uuid.New().String(),
		Relation: relation,
		SourceID: sourceID.String(),
		TargetID: targetID.String(),
	}
	if err := edge.SetMeta(meta); err != nil {
		return nil, err
	}

	if err := s.store.CreateEdge(ctx, edge); err != nil {
		return nil, err
	}

	return edge, nil
}

func (s *GraphService) GetEdge(ctx context.Context, id uuid.UUID) (*model.Edge, error) {
	edge, err := s.store.GetEdge(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEdgeNotFound
		}
		return nil, err
	}
	return edge, nil
}

func (s *GraphService) ListEdges(ctx context.Context, filter store.EdgeFilter) ([]*model.Edge, error) {
	return s.store.ListEdges(ctx, filter)
}

func (s *GraphService) DeleteEdge(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetEdge(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteEdge(ctx, id)
}

// outboundTargets collects target ids of the asset's edges for one
// relation.
func (s *GraphService) outboundTargets(ctx context.Context, sourceID uuid.UUID, relation string) ([]uuid.UUID, error) {
	edges, err := s.store.ListEdges(ctx, store.EdgeFilter{
		Relation: relation,
		SourceID: sourceID.String(),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(edges))
	for _, edge := range edges {
		id, err := uuid.Parse(edge.TargetID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *GraphService) inboundSources(ctx context.Context, targetID uuid.UUID, relation string) ([]uuid.UUID, error) {
	edges, err := s.store.ListEdges(ctx, store.EdgeFilter{
		Relation: relation,
		TargetID: targetID.String(),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(edges))
	for _, edge := range edges {
		id, err := uuid.Parse(edge.SourceID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// AssetTextures returns the textures an asset uses directly.
func (s *GraphService) AssetTextures(ctx context.Context, assetID uuid.UUID) ([]*model.Texture, error) {
	ids, err := s.outboundTargets(ctx, assetID, model.RelationAssetUsesTexture)
	if err != nil {
		return nil, err
	}
	return s.store.ListTexturesFromIDs(ctx, ids)
}

// AssetMaterials returns the materials assigned to an asset.
func (s *GraphService) AssetMaterials(ctx context.Context, assetID uuid.UUID) ([]*model.Material, error) {
	ids, err := s.outboundTargets(ctx, assetID, model.RelationAssetHasMaterial)
	if err != nil {
		return nil, err
	}
	return s.store.ListMaterialsFromIDs(ctx, ids)
}

// AssetGeometry returns the geometry caches an asset uses.
func (s *GraphService) AssetGeometry(ctx context.Context, assetID uuid.UUID) ([]*model.Geometry, error) {
	ids, err := s.outboundTargets(ctx, assetID, model.RelationAssetUsesGeometry)
	if err != nil {
		return nil, err
	}
	return s.store.ListGeometriesFromIDs(ctx, ids)
}

// TextureAssets answers "which assets use this texture", both directly
// and through a material that maps it.
func (s *GraphService) TextureAssets(ctx context.Context, textureID uuid.UUID) ([]*model.Asset, error) {
	assetIDs := mapset.NewSet[uuid.UUID]()

	direct, err := s.inboundSources(ctx, textureID, model.RelationAssetUsesTexture)
	if err != nil {
		return nil, err
	}
	assetIDs.Append(direct...)

	materials, err := s.inboundSources(ctx, textureID, model.RelationMaterialUsesTexture)
	if err != nil {
		return nil, err
	}
	for _, materialID := range materials {
		through, err := s.inboundSources(ctx, materialID, model.RelationAssetHasMaterial)
		if err != nil {
			return nil, err
		}
		assetIDs.Append(through...)
	}

	return s.store.ListAssetsFromIDs(ctx, assetIDs.ToSlice())
}

// Dependencies walks asset_depends_on breadth first up to depth edges
// away. The visited set makes cycles terminate.
func (s *GraphService) Dependencies(ctx context.Context, assetID uuid.UUID, depth int) ([]*model.Asset, error) {
	if depth <= 0 || depth > DefaultTraversalDepth {
		depth = DefaultTraversalDepth
	}

	visited := mapset.NewSet[uuid.UUID](assetID)
	found := mapset.NewSet[uuid.UUID]()
	frontier := []uuid.UUID{assetID}

	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []uuid.UUID

		for _, id := range frontier {
			targets, err := s.outboundTargets(ctx, id, model.RelationAssetDependsOn)
			if err != nil {
				return nil, err
			}

			for _, target := range targets {
				if visited.Contains(target) {
					continue
				}
				visited.Add(target)
				found.Add(target)
				next = append(next, target)
			}
		}

		frontier = next
	}

	return s.store.ListAssetsFromIDs(ctx, found.ToSlice())
}

// Dependents returns the assets that depend on the given asset
// directly.
func (s *GraphService) Dependents(ctx context.Context, assetID uuid.UUID) ([]*model.Asset, error) {
	ids, err := s.inboundSources(ctx, assetID, model.RelationAssetDependsOn)
	if err != nil {
		return nil, err
	}
	return s.store.ListAssetsFromIDs(ctx, ids)
}

// ProjectAssets returns the assets a project contains.
func (s *GraphService) ProjectAssets(ctx context.Context, projectID uuid.UUID) ([]*model.Asset, error) {
	ids, err := s.outboundTargets(ctx, projectID, model.RelationProjectContainsAsset)
	if err != nil {
		return nil, err
	}
	return s.store.ListAssetsFromIDs(ctx, ids)
}

// UserAssets returns the assets a user created.
func (s *GraphService) UserAssets(ctx context.Context, userID uuid.UUID) ([]*model.Asset, error) {
	ids, err := s.outboundTargets(ctx, userID, model.RelationUserCreatedAsset)
	if err != nil {
		return nil, err
	}
	return s.store.ListAssetsFromIDs(ctx, ids)
}
