package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blacksmith/atlas/internal/tester"
)

func TestSeed(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	g := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	assert.NoError(t, Seed(ctx, g))

	assets, total, err := g.ListAssets(ctx, AssetFilter{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	counts, err := g.CountEdges(ctx)
	assert.NoError(t, err)
	var edges int64
	for _, n := range counts {
		edges += n
	}
	assert.Equal(t, int64(8), edges)

	// demo assets belong to the seeded project and carry a creator
	for _, asset := range assets {
		assert.NotEmpty(t, asset.ProjectID)
		assert.NotEmpty(t, asset.CreatorID)
	}

	// a second run leaves the populated database alone
	assert.NoError(t, Seed(ctx, g))

	_, total, err = g.ListAssets(ctx, AssetFilter{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
