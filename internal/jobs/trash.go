package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/blacksmith/atlas/internal/service"
	"github.com/blacksmith/atlas/internal/store"
)

// TrashPurger hard-deletes assets that sat in the trash past the
// retention window, files included.
type TrashPurger struct {
	store     store.Store
	assets    *service.AssetService
	retention time.Duration
	cron      string
}

func NewTrashPurger(store store.Store, assets *service.AssetService, retention time.Duration) *TrashPurger {
	return &TrashPurger{
		store:     store,
		assets:    assets,
		retention: retention,
		cron:      "@every 1h",
	}
}

func (t *TrashPurger) Name() string {
	return "trash_purge"
}

func (t *TrashPurger) Schedule() string {
	return t.cron
}

func (t *TrashPurger) Run() {
	ctx := context.Background()
	cutoff := time.Now().Add(-t.retention)

	trashed, err := t.store.ListTrashedBefore(ctx, cutoff)
	if err != nil {
		logrus.Errorf("listing expired trash failed: %v", err)
		return
	}

	for _, asset := range trashed {
		id, err := uuid.Parse(asset.ID)
		if err != nil {
			continue
		}

		if err := t.assets.EraseAsset(ctx, id); err != nil {
			logrus.Errorf("purging asset %s failed: %v", asset.ID, err)
			continue
		}

		logrus.Infof("purged trashed asset %s (%s)", asset.Name, asset.ID)
	}
}
