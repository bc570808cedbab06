package jobs

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/blacksmith/atlas/internal/service"
)

// StatsRefreshTask recomputes the library stats so /stats mostly
// serves from the cache.
type StatsRefreshTask struct {
	stats *service.StatsService
	cron  string
}

func NewStatsRefreshTask(interval string, stats *service.StatsService) *StatsRefreshTask {
	return &StatsRefreshTask{
		stats: stats,
		cron:  interval,
	}
}

func (s *StatsRefreshTask) Name() string {
	return "stats_refresh"
}

func (s *StatsRefreshTask) Schedule() string {
	return s.cron
}

func (s *StatsRefreshTask) Run() {
	if _, err := s.stats.Refresh(context.Background()); err != nil {
		logrus.Errorf("stats refresh failed: %v", err)
	}
}
