package service

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/load"
	"github.com/sirupsen/logrus"

	"github.com/blacksmith/atlas/internal/cache"
	"github.com/blacksmith/atlas/internal/library"
	"github.com/blacksmith/atlas/internal/store"
)

// LibraryStats is the payload behind GET /stats. Producers watch the
// per-category totals; ops watches the disk numbers.
type LibraryStats struct {
	Nodes            map[string]int64 `json:"nodes"`
	Edges            map[string]int64 `json:"edges"`
	AssetsByCategory map[string]int64 `json:"assets_by_category"`
	TotalAssetBytes  int64            `json:"total_asset_bytes"`
	TotalAssetSize   string           `json:"total_asset_size"`
	DiskTotalBytes   uint64           `json:"disk_total_bytes"`
	DiskFreeBytes    uint64           `json:"disk_free_bytes"`
	Load1            float64          `json:"load1"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// NewStatsService creates a new StatsService.
func NewStatsService(store store.Store, cache cache.AssetCache, lib *library.Library) *StatsService {
	return &StatsService{
		store:   store,
		cache:   cache,
		library: lib,
	}
}

// StatsService computes and caches the library stats.
type StatsService struct {
	store   store.Store
	cache   cache.AssetCache
	library *library.Library
}

// Stats returns the library stats, cached for a few minutes.
func (s *StatsService) Stats(ctx context.Context) (*LibraryStats, error) {
	cached := &LibraryStats{}
	hit, err := s.cache.GetStats(ctx, cached)
	if err != nil {
		logrus.Warnf("stats cache read failed: %v", err)
	}
	if hit {
		return cached, nil
	}

	return s.Refresh(ctx)
}

// Refresh recomputes the stats and stores them in the cache. The stats
// cron job calls this so browser requests mostly hit the cache.
func (s *StatsService) Refresh(ctx context.Context) (*LibraryStats, error) {
	nodes, err := s.store.CountNodes(ctx)
	if err != nil {
		return nil, err
	}

	edges, err := s.store.CountEdges(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.store.CountAssetsByCategory(ctx)
	if err != nil {
		return nil, err
	}

	totalBytes, err := s.store.SumAssetSizes(ctx)
	if err != nil {
		return nil, err
	}

	stats := &LibraryStats{
		Nodes:            nodes,
		Edges:            edges,
		AssetsByCategory: byCategory,
		TotalAssetBytes:  totalBytes,
		TotalAssetSize:   humanize.Bytes(uint64(totalBytes)),
		GeneratedAt:      time.Now(),
	}

	if usage, err := s.library.Usage(); err == nil {
		stats.DiskTotalBytes = usage.Total
		stats.DiskFreeBytes = usage.Free
	} else {
		logrus.Warnf("library disk usage unavailable: %v", err)
	}

	if avg, err := load.Avg(); err == nil {
		stats.Load1 = avg.Load1
	}

	if err := s.cache.SetStats(ctx, stats); err != nil {
		logrus.Warnf("stats cache write failed: %v", err)
	}

	return stats, nil
}

// Health reports the state of the service dependencies. ok is false
// when the database is unreachable.
func (s *StatsService) Health(ctx context.Context, pingCache func(context.Context) error) (map[string]string, bool) {
	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	ok := true

	if _, err := s.store.CountNodes(ctx); err != nil {
		checks["database"] = err.Error()
		ok = false
	}

	if pingCache != nil {
		if err := pingCache(ctx); err != nil {
			// a cold cache degrades reads but does not take the library down
			checks["cache"] = err.Error()
		}
	}

	return checks, ok
}
