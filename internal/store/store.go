package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/blacksmith/atlas/internal/model"
)

// AssetFilter narrows ListAssets. All set fields AND together; tag
// filtering happens in the service layer because tags are stored as a
// json array.
type AssetFilter struct {
	Query     string // free text over name and description
	Category  string
	ProjectID string
	CreatorID string
	Status    string
	Sort      string // name, created, size
	Limit     int
	Offset    int
}

// EdgeFilter narrows ListEdges.
type EdgeFilter struct {
	Relation string
	SourceID string
	TargetID string
}

type Store interface {
	AssetStore
	TextureStore
	MaterialStore
	GeometryStore
	ProjectStore
	UserStore
	GraphStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type AssetStore interface {
	// CreateAsset creates a new asset.
	CreateAsset(ctx context.Context, asset *model.Asset) error
	// GetAsset retrieves an asset by ID.
	GetAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	// ListAssets retrieves assets matching the filter with the total count.
	ListAssets(ctx context.Context, filter AssetFilter) ([]*model.Asset, int64, error)
	// ListAssetsFromIDs retrieves assets by IDs.
	ListAssetsFromIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Asset, error)
	// UpdateAsset updates an asset.
	UpdateAsset(ctx context.Context, asset *model.Asset) error
	// TrashAsset soft deletes an asset.
	TrashAsset(ctx context.Context, id uuid.UUID, at time.Time) error
	// RestoreAsset brings a trashed asset back.
	RestoreAsset(ctx context.Context, id uuid.UUID) error
	// EraseAsset hard deletes an asset row.
	EraseAsset(ctx context.Context, id uuid.UUID) error
	// ListTrashedBefore retrieves trashed assets older than the cutoff.
	ListTrashedBefore(ctx context.Context, cutoff time.Time) ([]*model.Asset, error)
}

type TextureStore interface {
	CreateTexture(ctx context.Context, texture *model.Texture) error
	GetTexture(ctx context.Context, id uuid.UUID) (*model.Texture, error)
	ListTextures(ctx context.Context, limit, offset int) ([]*model.Texture, int64, error)
	ListTexturesFromIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Texture, error)
	UpdateTexture(ctx context.Context, texture *model.Texture) error
	DeleteTexture(ctx context.Context, id uuid.UUID) error
}

type MaterialStore interface {
	CreateMaterial(ctx context.Context, material *model.Material) error
	GetMaterial(ctx context.Context, id uuid.UUID) (*model.Material, error)
	ListMaterials(ctx context.Context, limit, offset int) ([]*model.Material, int64, error)
	ListMaterialsFromIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Material, error)
	UpdateMaterial(ctx context.Context, material *model.Material) error
	DeleteMaterial(ctx context.Context, id uuid.UUID) error
}

type GeometryStore interface {
	CreateGeometry(ctx context.Context, geometry *model.Geometry) error
	GetGeometry(ctx context.Context, id uuid.UUID) (*model.Geometry, error)
	ListGeometries(ctx context.Context, limit, offset int) ([]*model.Geometry, int64, error)
	ListGeometriesFromIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Geometry, error)
	UpdateGeometry(ctx context.Context, geometry *model.Geometry) error
	DeleteGeometry(ctx context.Context, id uuid.UUID) error
}

type ProjectStore interface {
	CreateProject(ctx context.Context, project *model.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type GraphStore interface {
	// CreateEdge inserts an edge. Endpoint existence and uniqueness are
	// checked by the caller via NodeExists/GetEdgeByEndpoints.
	CreateEdge(ctx context.Context, edge *model.Edge) error
	// GetEdge retrieves an edge by ID.
	GetEdge(ctx context.Context, id uuid.UUID) (*model.Edge, error)
	// GetEdgeByEndpoints retrieves the edge for (source, target, relation).
	GetEdgeByEndpoints(ctx context.Context, sourceID, targetID uuid.UUID, relation string) (*model.Edge, error)
	// ListEdges retrieves edges matching the filter.
	ListEdges(ctx context.Context, filter EdgeFilter) ([]*model.Edge, error)
	// DeleteEdge deletes an edge by ID.
	DeleteEdge(ctx context.Context, id uuid.UUID) error
	// DeleteNodeEdges removes every edge touching the node.
	DeleteNodeEdges(ctx context.Context, id uuid.UUID) error
	// NodeExists reports whether a node of the kind exists.
	NodeExists(ctx context.Context, kind string, id uuid.UUID) (bool, error)
	// CountNodes returns node counts keyed by kind.
	CountNodes(ctx context.Context) (map[string]int64, error)
	// CountEdges returns edge counts keyed by relation.
	CountEdges(ctx context.Context) (map[string]int64, error)
	// CountAssetsByCategory returns active asset counts keyed by category.
	CountAssetsByCategory(ctx context.Context) (map[string]int64, error)
	// SumAssetSizes returns the total file size of active assets.
	SumAssetSizes(ctx context.Context) (int64, error)
}
