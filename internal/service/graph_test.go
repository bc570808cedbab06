package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/blacksmith/atlas/internal/model"
	"github.com/blacksmith/atlas/internal/store"
	"github.com/blacksmith/atlas/internal/tester"
)

func seedAsset(t *testing.T, db store.Store, name string) uuid.UUID {
	t.Helper()

	asset := &model.Asset{
		ID:       uuid.New().String(),
		Name:     name,
		Category: "props",
		FilePath: "/library/props/" + name,
		Version:  "1.0.0",
		Status:   model.AssetStatusActive,
		Tags:     "[]",
	}
	assert.NoError(t, db.CreateAsset(context.TODO(), asset))

	return uuid.MustParse(asset.ID)
}

func TestGraphService_CreateEdge(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	graph := NewGraphService(db)

	assetID := seedAsset(t, db, "campfire")

	texture := &model.Texture{ID: uuid.New().String(), Name: "campfire_diffuse", FilePath: "/library/tex/campfire_diffuse.exr"}
	assert.NoError(t, db.CreateTexture(context.TODO(), texture))
	textureID := uuid.MustParse(texture.ID)

	edge, err := graph.CreateEdge(context.TODO(), model.RelationAssetUsesTexture, assetID, textureID, map[string]string{"usage": "diffuse"})
	assert.NoError(t, err)
	assert.NotEmpty(t, edge.ID)

	meta, err := edge.MetaMap()
	assert.NoError(t, err)
	assert.Equal(t, "diffuse", meta["usage"])

	// the same endpoints and relation again is a duplicate
	_, err = graph.CreateEdge(context.TODO(), model.RelationAssetUsesTexture, assetID, textureID, nil)
	assert.ErrorIs(t, err, ErrEdgeExists)

	_, err = graph.CreateEdge(context.TODO(), "asset_likes_texture", assetID, textureID, nil)
	assert.ErrorIs(t, err, ErrUnknownRelation)

	_, err = graph.CreateEdge(context.TODO(), model.RelationAssetUsesTexture, assetID, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	// a texture is not a material, kinds are checked per relation
	_, err = graph.CreateEdge(context.TODO(), model.RelationAssetHasMaterial, assetID, textureID, nil)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestGraphService_DeleteEdge(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	graph := NewGraphService(db)

	a := seedAsset(t, db, "wagon")
	b := seedAsset(t, db, "wheel")

	edge, err := graph.CreateEdge(context.TODO(), model.RelationAssetDependsOn, a, b, nil)
	assert.NoError(t, err)

	edgeID := uuid.MustParse(edge.ID)
	assert.NoError(t, graph.DeleteEdge(context.TODO(), edgeID))
	assert.ErrorIs(t, graph.DeleteEdge(context.TODO(), edgeID), ErrEdgeNotFound)
}

func TestGraphService_TextureAssets(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	graph := NewGraphService(db)

	direct := seedAsset(t, db, "direct_user")
	viaMaterial := seedAsset(t, db, "material_user")

	texture := &model.Texture{ID: uuid.New().String(), Name: "rust_rough", FilePath: "/library/tex/rust_rough.exr"}
	assert.NoError(t, db.CreateTexture(context.TODO(), texture))
	textureID := uuid.MustParse(texture.ID)

	material := &model.Material{ID: uuid.New().String(), Name: "rusty_metal", Engine: "karma", Parameters: "{}"}
	assert.NoError(t, db.CreateMaterial(context.TODO(), material))
	materialID := uuid.MustParse(material.ID)

	_, err := graph.CreateEdge(context.TODO(), model.RelationAssetUsesTexture, direct, textureID, nil)
	assert.NoError(t, err)
	_, err = graph.CreateEdge(context.TODO(), model.RelationMaterialUsesTexture, materialID, textureID, nil)
	assert.NoError(t, err)
	_, err = graph.CreateEdge(context.TODO(), model.RelationAssetHasMaterial, viaMaterial, materialID, nil)
	assert.NoError(t, err)

	assets, err := graph.TextureAssets(context.TODO(), textureID)
	assert.NoError(t, err)
	assert.Len(t, assets, 2)

	names := make([]string, 0, len(assets))
	for _, asset := range assets {
		names = append(names, asset.Name)
	}
	assert.ElementsMatch(t, []string{"direct_user", "material_user"}, names)
}

func TestGraphService_Dependencies(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	graph := NewGraphService(db)

	a := seedAsset(t, db, "set_forest")
	b := seedAsset(t, db, "tree_cluster")
	c := seedAsset(t, db, "tree_single")

	_, err := graph.CreateEdge(context.TODO(), model.RelationAssetDependsOn, a, b, nil)
	assert.NoError(t, err)
	_, err = graph.CreateEdge(context.TODO(), model.RelationAssetDependsOn, b, c, nil)
	assert.NoError(t, err)
	// cycle back to the root must not loop the walk
	_, err = graph.CreateEdge(context.TODO(), model.RelationAssetDependsOn, c, a, nil)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		depth int
		want  int
	}{
		{name: "one level", depth: 1, want: 1},
		{name: "full walk", depth: 0, want: 2},
		{name: "cycle terminates", depth: 100, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, err := graph.Dependencies(context.TODO(), a, tt.depth)
			assert.NoError(t, err)
			assert.Len(t, deps, tt.want)
		})
	}

	dependents, err := graph.Dependents(context.TODO(), b)
	assert.NoError(t, err)
	assert.Len(t, dependents, 1)
	assert.Equal(t, "set_forest", dependents[0].Name)
}
