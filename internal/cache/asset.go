package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/blacksmith/atlas/internal/compress"
	"github.com/blacksmith/atlas/internal/model"
)

const assetTTL = time.Hour

func assetKey(id string) string {
	return "atlas:asset:" + id
}

func statsKey() string {
	return "atlas:stats"
}

// AssetCache keeps hot asset rows out of the database. The library
// browser hits the same handful of assets over and over while artists
// page through a category.
type AssetCache interface {
	// GetAsset gets an asset from the cache, nil on a miss.
	GetAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	// SetAsset sets an asset in the cache.
	SetAsset(ctx context.Context, asset *model.Asset) error
	// DeleteAsset deletes an asset from the cache.
	DeleteAsset(ctx context.Context, id uuid.UUID) error
	// SetStats stores the precomputed library stats blob.
	SetStats(ctx context.Context, stats any) error
	// GetStats loads the precomputed library stats into out, false on a miss.
	GetStats(ctx context.Context, out any) (bool, error)
}

var _ AssetCache = (*RedisAssetCache)(nil)

type RedisAssetCache struct {
	client  *redis.Client
	encoder compress.Compress
}

func NewRedisAssetCache(r *Redis) *RedisAssetCache {
	return &RedisAssetCache{client: r.Client(), encoder: compress.NewGZip()}
}

func (r *RedisAssetCache) GetAsset(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	res := r.client.Get(ctx, assetKey(id.String()))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	data, err := r.encoder.Decode(buf)
	if err != nil {
		return nil, err
	}

	asset := &model.Asset{}
	if err := json.Unmarshal(data, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

func (r *RedisAssetCache) SetAsset(ctx context.Context, asset *model.Asset) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return err
	}

	encoded, err := r.encoder.Encode(data)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, assetKey(asset.ID), encoded, assetTTL).Err()
}

func (r *RedisAssetCache) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, assetKey(id.String())).Err()
}

func (r *RedisAssetCache) SetStats(ctx context.Context, stats any) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, statsKey(), data, 5*time.Minute).Err()
}

func (r *RedisAssetCache) GetStats(ctx context.Context, out any) (bool, error) {
	res := r.client.Get(ctx, statsKey())
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return false, nil
		}
		return false, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return false, err
	}

	return true, json.Unmarshal(buf, out)
}
