package jobs

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/blacksmith/atlas/internal/cache"
	"github.com/blacksmith/atlas/internal/model"
	"github.com/blacksmith/atlas/internal/store"
)

const warmBatchSize = 100

// CacheWarmTask pushes the most recently updated assets into the
// cache so the first browser page load after a deploy is warm.
type CacheWarmTask struct {
	store store.Store
	cache cache.AssetCache
	cron  string
}

func NewCacheWarmTask(interval string, store store.Store, cache cache.AssetCache) *CacheWarmTask {
	return &CacheWarmTask{
		store: store,
		cache: cache,
		cron:  interval,
	}
}

func (c *CacheWarmTask) Name() string {
	return "cache_warm"
}

func (c *CacheWarmTask) Schedule() string {
	return c.cron
}

func (c *CacheWarmTask) Run() {
	ctx := context.Background()

	assets, _, err := c.store.ListAssets(ctx, store.AssetFilter{
		Status: model.AssetStatusActive,
		Limit:  warmBatchSize,
	})
	if err != nil {
		logrus.Errorf("cache warm listing failed: %v", err)
		return
	}

	for _, asset := range assets {
		if err := c.cache.SetAsset(ctx, asset); err != nil {
			logrus.Warnf("cache warm write for %s failed: %v", asset.ID, err)
			return
		}
	}
}
