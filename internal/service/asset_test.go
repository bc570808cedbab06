package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/blacksmith/atlas/internal/library"
	"github.com/blacksmith/atlas/internal/model"
	"github.com/blacksmith/atlas/internal/queue"
	"github.com/blacksmith/atlas/internal/store"
	"github.com/blacksmith/atlas/internal/tester"
)

func newTestAssetService() *AssetService {
	lib := library.New(tester.LibraryRoot())
	return NewAssetService(store.NewGormStore(tester.TestDB()), tester.Cache(), queue.NewNopQueue(), lib)
}

func TestAssetService_CreateAsset(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	service := newTestAssetService()

	tests := []struct {
		name     string
		asset    *model.Asset
		version  string
		wantErr  error
		wantTags []string
	}{
		{
			name:     "defaults",
			asset:    &model.Asset{Name: "pine_tree_01", Category: "environments", FilePath: "/library/env/pine_tree_01"},
			version:  "1.0.0",
			wantTags: []string{},
		},
		{
			name: "explicit version and tags",
			asset: func() *model.Asset {
				asset := &model.Asset{Name: "hero_sword", Category: "props", FilePath: "/library/props/hero_sword", Version: "2.1.0"}
				_ = asset.SetTags([]string{"hero", "metal"})
				return asset
			}(),
			version:  "2.1.0",
			wantTags: []string{"hero", "metal"},
		},
		{
			name:    "bad version",
			asset:   &model.Asset{Name: "broken", Category: "props", FilePath: "/library/props/broken", Version: "latest"},
			wantErr: ErrInvalidVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := service.CreateAsset(context.TODO(), tt.asset)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.Equal(t, model.AssetStatusActive, created.Status)
			assert.Equal(t, tt.version, created.Version)
			assert.Equal(t, tt.wantTags, created.TagList())
		})
	}
}

func TestAssetService_CreateAsset_BookkeepingEdges(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	service := newTestAssetService()
	graph := NewGraphService(db)

	user := &model.User{ID: uuid.New().String(), Name: "kaeli", Email: "kaeli@blacksmith.vfx"}
	assert.NoError(t, db.CreateUser(context.TODO(), user))

	project := &model.Project{ID: uuid.New().String(), Name: "Iron Harvest", Code: "IRH"}
	assert.NoError(t, db.CreateProject(context.TODO(), project))

	asset, err := service.CreateAsset(context.TODO(), &model.Asset{
		Name:      "anvil_station",
		Category:  "props",
		FilePath:  "/library/props/anvil_station",
		CreatorID: user.ID,
		ProjectID: project.ID,
	})
	assert.NoError(t, err)

	created, err := graph.UserAssets(context.TODO(), uuid.MustParse(user.ID))
	assert.NoError(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, asset.ID, created[0].ID)

	contained, err := graph.ProjectAssets(context.TODO(), uuid.MustParse(project.ID))
	assert.NoError(t, err)
	assert.Len(t, contained, 1)

	// an unknown creator rolls the whole create back
	_, err = service.CreateAsset(context.TODO(), &model.Asset{
		Name:      "orphan",
		Category:  "props",
		FilePath:  "/library/props/orphan",
		CreatorID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, ErrNodeNotFound)

	_, total, err := service.ListAssets(context.TODO(), store.AssetFilter{Query: "orphan"}, nil)
	assert.NoError(t, err)
	assert.Zero(t, total)
}

func TestAssetService_ListAssets_Tags(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	service := newTestAssetService()

	seed := []struct {
		name string
		tags []string
	}{
		{name: "oak_tree", tags: []string{"tree", "autumn"}},
		{name: "pine_tree", tags: []string{"tree", "winter"}},
		{name: "boulder", tags: []string{"rock"}},
	}
	for _, s := range seed {
		asset := &model.Asset{Name: s.name, Category: "environments", FilePath: "/library/env/" + s.name}
		assert.NoError(t, asset.SetTags(s.tags))
		_, err := service.CreateAsset(context.TODO(), asset)
		assert.NoError(t, err)
	}

	tests := []struct {
		name string
		tags []string
		want int
	}{
		{name: "no tags", tags: nil, want: 3},
		{name: "single tag", tags: []string{"tree"}, want: 2},
		{name: "all tags must match", tags: []string{"tree", "winter"}, want: 1},
		{name: "no match", tags: []string{"tree", "rock"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assets, _, err := service.ListAssets(context.TODO(), store.AssetFilter{}, tt.tags)
			assert.NoError(t, err)
			assert.Len(t, assets, tt.want)
		})
	}
}

func TestAssetService_TrashRestore(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	root := tester.LibraryRoot()
	lib := library.New(root)
	service := NewAssetService(store.NewGormStore(tester.TestDB()), tester.Cache(), queue.NewNopQueue(), lib)

	assetDir := filepath.Join(root, "props", "lantern")
	assert.NoError(t, os.MkdirAll(assetDir, os.ModePerm))

	asset, err := service.CreateAsset(context.TODO(), &model.Asset{
		Name:     "lantern",
		Category: "props",
		FilePath: assetDir,
	})
	assert.NoError(t, err)

	id := uuid.MustParse(asset.ID)
	assert.NoError(t, service.TrashAsset(context.TODO(), id))

	_, err = os.Stat(assetDir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(lib.TrashDir(), asset.ID))
	assert.NoError(t, err)

	trashed, err := service.GetAsset(context.TODO(), id)
	assert.NoError(t, err)
	assert.Equal(t, model.AssetStatusTrashed, trashed.Status)
	assert.NotNil(t, trashed.TrashedAt)

	// trashed assets are hidden from the default listing
	_, total, err := service.ListAssets(context.TODO(), store.AssetFilter{}, nil)
	assert.NoError(t, err)
	assert.Zero(t, total)

	restored, err := service.RestoreAsset(context.TODO(), id)
	assert.NoError(t, err)
	assert.Equal(t, model.AssetStatusActive, restored.Status)
	assert.Nil(t, restored.TrashedAt)

	_, err = os.Stat(assetDir)
	assert.NoError(t, err)

	_, err = service.RestoreAsset(context.TODO(), id)
	assert.ErrorIs(t, err, ErrAssetNotTrashed)
}

func TestAssetService_RestoreAsset_CacheInvalidation(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	root := tester.LibraryRoot()
	lib := library.New(root)
	service := NewAssetService(store.NewGormStore(tester.TestDB()), tester.Cache(), queue.NewNopQueue(), lib)

	assetDir := filepath.Join(root, "props", "bellows")
	assert.NoError(t, os.MkdirAll(assetDir, os.ModePerm))

	asset, err := service.CreateAsset(context.TODO(), &model.Asset{
		Name:     "bellows",
		Category: "props",
		FilePath: assetDir,
	})
	assert.NoError(t, err)

	id := uuid.MustParse(asset.ID)
	assert.NoError(t, service.TrashAsset(context.TODO(), id))

	// this read caches the trashed row
	trashed, err := service.GetAsset(context.TODO(), id)
	assert.NoError(t, err)
	assert.Equal(t, model.AssetStatusTrashed, trashed.Status)

	_, err = service.RestoreAsset(context.TODO(), id)
	assert.NoError(t, err)

	// the restore must evict the cached row, so a fresh read sees the
	// asset active again
	restored, err := service.GetAsset(context.TODO(), id)
	assert.NoError(t, err)
	assert.Equal(t, model.AssetStatusActive, restored.Status)
	assert.Nil(t, restored.TrashedAt)
}

func TestAssetService_UpdateAsset_KeepsVersion(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	service := newTestAssetService()

	asset, err := service.CreateAsset(context.TODO(), &model.Asset{
		Name:     "forge",
		Category: "props",
		FilePath: "/library/props/forge",
		Version:  "1.2.3",
	})
	assert.NoError(t, err)

	// an update body without a version keeps the stored one
	asset.Description = "hero forge set piece"
	asset.Version = ""
	updated, err := service.UpdateAsset(context.TODO(), asset)
	assert.NoError(t, err)
	assert.Equal(t, "1.2.3", updated.Version)
	assert.Equal(t, "hero forge set piece", updated.Description)

	bumped, err := service.BumpVersion(context.TODO(), uuid.MustParse(asset.ID), "patch")
	assert.NoError(t, err)
	assert.Equal(t, "1.2.4", bumped.Version)
}

func TestAssetService_ListAssets_TagsPagination(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	service := newTestAssetService()

	seed := []struct {
		name string
		tags []string
	}{
		{name: "anvil"},
		{name: "bellows", tags: []string{"forge"}},
		{name: "chisel"},
		{name: "furnace", tags: []string{"forge"}},
		{name: "tongs", tags: []string{"forge"}},
	}
	for _, s := range seed {
		asset := &model.Asset{Name: s.name, Category: "props", FilePath: "/library/props/" + s.name}
		assert.NoError(t, asset.SetTags(s.tags))
		_, err := service.CreateAsset(context.TODO(), asset)
		assert.NoError(t, err)
	}

	filter := store.AssetFilter{Sort: "name", Limit: 2}

	// tag matches beyond the first store page must still show up
	assets, total, err := service.ListAssets(context.TODO(), filter, []string{"forge"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, assets, 2)
	assert.Equal(t, "bellows", assets[0].Name)
	assert.Equal(t, "furnace", assets[1].Name)

	filter.Offset = 2
	assets, total, err = service.ListAssets(context.TODO(), filter, []string{"forge"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, assets, 1)
	assert.Equal(t, "tongs", assets[0].Name)
}

func TestAssetService_BumpVersion(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	service := newTestAssetService()

	asset, err := service.CreateAsset(context.TODO(), &model.Asset{
		Name:     "river_rock",
		Category: "environments",
		FilePath: "/library/env/river_rock",
		Version:  "1.2.3",
	})
	assert.NoError(t, err)

	id := uuid.MustParse(asset.ID)

	tests := []struct {
		level string
		want  string
	}{
		{level: "patch", want: "1.2.4"},
		{level: "minor", want: "1.3.0"},
		{level: "major", want: "2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			bumped, err := service.BumpVersion(context.TODO(), id, tt.level)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, bumped.Version)
		})
	}

	_, err = service.BumpVersion(context.TODO(), uuid.New(), "patch")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}
