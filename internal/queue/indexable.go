package queue

import (
	"context"

	"github.com/seoworks/indexable/internal/model"
)

// IndexableCreatedTopic carries events for freshly built indexables.
var IndexableCreatedTopic = "indexable.created"

// IndexableUpdatedTopic carries events for permalink or version updates.
var IndexableUpdatedTopic = "indexable.updated"

// IndexableQueue publishes indexable change events for downstream consumers
// (link graph rebuilds, sitemap regeneration).
type IndexableQueue interface {
	// PublishCreated announces a freshly built indexable.
	PublishCreated(ctx context.Context, ind *model.Indexable) error
	// PublishUpdated announces an update to an existing indexable.
	PublishUpdated(ctx context.Context, ind *model.Indexable) error
	// Close flushes pending events and releases the producer.
	Close() error
}

// Nop drops all events, used when no broker is configured.
type Nop struct {
}

var _ IndexableQueue = (*Nop)(nil)

func NewNop() *Nop {
	return &Nop{}
}

func (n *Nop) PublishCreated(ctx context.Context, ind *model.Indexable) error {
	return nil
}

func (n *Nop) PublishUpdated(ctx context.Context, ind *model.Indexable) error {
	return nil
}

func (n *Nop) Close() error {
	return nil
}
