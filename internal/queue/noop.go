package queue

import "context"

var _ AssetQueue = (*NopQueue)(nil)

// NopQueue is used when no broker is configured.
type NopQueue struct {
}

func NewNopQueue() *NopQueue {
	return &NopQueue{}
}

func (n *NopQueue) PublishEvent(ctx context.Context, event *AssetEvent) error {
	return nil
}

func (n *NopQueue) Close() error {
	return nil
}
