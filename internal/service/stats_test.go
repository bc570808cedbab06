package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blacksmith/atlas/internal/library"
	"github.com/blacksmith/atlas/internal/model"
	"github.com/blacksmith/atlas/internal/queue"
	"github.com/blacksmith/atlas/internal/store"
	"github.com/blacksmith/atlas/internal/tester"
)

func TestStatsService_Refresh(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	lib := library.New(tester.LibraryRoot())
	assets := NewAssetService(db, tester.Cache(), queue.NewNopQueue(), lib)
	stats := NewStatsService(db, tester.Cache(), lib)

	for _, seed := range []struct {
		name     string
		category string
		size     int64
	}{
		{name: "oak_tree", category: "environments", size: 1024},
		{name: "pine_tree", category: "environments", size: 2048},
		{name: "hero_sword", category: "props", size: 512},
	} {
		_, err := assets.CreateAsset(context.TODO(), &model.Asset{
			Name:     seed.name,
			Category: seed.category,
			FilePath: "/library/" + seed.category + "/" + seed.name,
			FileSize: seed.size,
		})
		assert.NoError(t, err)
	}

	report, err := stats.Refresh(context.TODO())
	assert.NoError(t, err)

	assert.Equal(t, int64(3), report.Nodes[model.KindAsset])
	assert.Equal(t, int64(2), report.AssetsByCategory["environments"])
	assert.Equal(t, int64(1), report.AssetsByCategory["props"])
	assert.Equal(t, int64(3584), report.TotalAssetBytes)
	assert.NotEmpty(t, report.TotalAssetSize)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestStatsService_StatsCached(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	lib := library.New(tester.LibraryRoot())
	cache := tester.Cache()
	stats := NewStatsService(db, cache, lib)

	first, err := stats.Stats(context.TODO())
	assert.NoError(t, err)

	// a second read comes from the cache and keeps the timestamp
	second, err := stats.Stats(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, first.GeneratedAt.Unix(), second.GeneratedAt.Unix())
}

func TestStatsService_Health(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	stats := NewStatsService(db, tester.Cache(), library.New(tester.LibraryRoot()))

	checks, ok := stats.Health(context.TODO(), nil)
	assert.True(t, ok)
	assert.Equal(t, "ok", checks["database"])
	assert.Equal(t, "ok", checks["cache"])

	// a dead cache degrades but does not fail the health check
	checks, ok = stats.Health(context.TODO(), func(ctx context.Context) error {
		return assert.AnError
	})
	assert.True(t, ok)
	assert.NotEqual(t, "ok", checks["cache"])
}
