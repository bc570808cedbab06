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

func TestCatalogService_TextureLifecycle(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	catalog := NewCatalogService(db)
	graph := NewGraphService(db)

	texture, err := catalog.CreateTexture(context.TODO(), &model.Texture{
		Name:       "bark_diffuse",
		FilePath:   "/library/tex/bark_diffuse.1001.exr",
		Resolution: "4096x4096",
		ColorSpace: "acescg",
		UDIM:       true,
		TileCount:  4,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, texture.ID)

	textureID := uuid.MustParse(texture.ID)

	got, err := catalog.GetTexture(context.TODO(), textureID)
	assert.NoError(t, err)
	assert.Equal(t, "bark_diffuse", got.Name)
	assert.True(t, got.UDIM)

	got.ColorSpace = "srgb"
	updated, err := catalog.UpdateTexture(context.TODO(), got)
	assert.NoError(t, err)
	assert.Equal(t, "srgb", updated.ColorSpace)

	// deleting a node takes its incident edges with it
	assetID := seedAsset(t, db, "bark_user")
	_, err = graph.CreateEdge(context.TODO(), model.RelationAssetUsesTexture, assetID, textureID, nil)
	assert.NoError(t, err)

	assert.NoError(t, catalog.DeleteTexture(context.TODO(), textureID))

	_, err = catalog.GetTexture(context.TODO(), textureID)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	edges, err := graph.ListEdges(context.TODO(), store.EdgeFilter{TargetID: texture.ID})
	assert.NoError(t, err)
	assert.Empty(t, edges)
}

func TestCatalogService_Project(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	catalog := NewCatalogService(store.NewGormStore(tester.TestDB()))

	project, err := catalog.CreateProject(context.TODO(), &model.Project{Name: "Iron Harvest", Code: "IRH"})
	assert.NoError(t, err)
	assert.Equal(t, model.ProjectStatusActive, project.Status)

	// show codes are unique
	_, err = catalog.CreateProject(context.TODO(), &model.Project{Name: "Iron Harvest Reshoot", Code: "IRH"})
	assert.Error(t, err)

	projects, err := catalog.ListProjects(context.TODO())
	assert.NoError(t, err)
	assert.Len(t, projects, 1)

	_, err = catalog.GetProject(context.TODO(), uuid.New())
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestCatalogService_User(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	catalog := NewCatalogService(store.NewGormStore(tester.TestDB()))

	user, err := catalog.CreateUser(context.TODO(), &model.User{
		Name:       "kaeli",
		Email:      "kaeli@blacksmith.vfx",
		Role:       "lead",
		Department: "lookdev",
	})
	assert.NoError(t, err)

	user.Department = "fx"
	updated, err := catalog.UpdateUser(context.TODO(), user)
	assert.NoError(t, err)
	assert.Equal(t, "fx", updated.Department)

	assert.NoError(t, catalog.DeleteUser(context.TODO(), uuid.MustParse(user.ID)))

	users, err := catalog.ListUsers(context.TODO())
	assert.NoError(t, err)
	assert.Empty(t, users)
}
