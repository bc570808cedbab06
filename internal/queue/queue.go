package queue

import (
	"context"
	"time"
)

const AssetEventTopic = "atlas.asset.events"

const (
	EventAssetCreated  = "asset.created"
	EventAssetUpdated  = "asset.updated"
	EventAssetTrashed  = "asset.trashed"
	EventAssetRestored = "asset.restored"
	EventAssetErased   = "asset.erased"
)

// AssetEvent is what downstream consumers (render farm triggers, usage
// reporting) see when an asset changes.
type AssetEvent struct {
	Type      string    `json:"type"`
	AssetID   string    `json:"asset_id"`
	ProjectID string    `json:"project_id,omitempty"`
	At        time.Time `json:"at"`
}

// AssetQueue publishes asset lifecycle events.
type AssetQueue interface {
	// PublishEvent appends an asset event to the queue.
	PublishEvent(ctx context.Context, event *AssetEvent) error
	// Close flushes and releases the producer.
	Close() error
}
