package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/blacksmith/atlas/internal/model"
)

var _ AssetCache = (*MemoryAssetCache)(nil)

// MemoryAssetCache is a process-local AssetCache used by tests and by
// dev setups without a redis instance.
type MemoryAssetCache struct {
	mu     sync.RWMutex
	assets map[string]*model.Asset
	stats  []byte
}

func NewMemoryAssetCache() *MemoryAssetCache {
	return &MemoryAssetCache{
		assets: make(map[string]*model.Asset),
	}
}

func (m *MemoryAssetCache) GetAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	asset, ok := m.assets[id.String()]
	if !ok {
		return nil, nil
	}
	clone := *asset
	return &clone, nil
}

func (m *MemoryAssetCache) SetAsset(ctx context.Context, asset *model.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *asset
	m.assets[asset.ID] = &clone
	return nil
}

func (m *MemoryAssetCache) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.assets, id.String())
	return nil
}

func (m *MemoryAssetCache) SetStats(ctx context.Context, stats any) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = data
	return nil
}

func (m *MemoryAssetCache) GetStats(ctx context.Context, out any) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.stats == nil {
		return false, nil
	}
	return true, json.Unmarshal(m.stats, out)
}
