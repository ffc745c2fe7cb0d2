package cache

import (
	"context"
	"errors"

	"github.com/seoworks/indexable/internal/model"
)

// ErrCacheMiss is returned when the cache holds nothing for a key.
var ErrCacheMiss = errors.New("cache miss")

// IndexableCache is a read-through cache for permalink lookups. The permalink
// is the key because it is the one lookup the frontend performs on every
// request.
type IndexableCache interface {
	// GetByPermalink gets the cached indexable for a permalink.
	GetByPermalink(ctx context.Context, permalink string) (*model.Indexable, error)
	// SetByPermalink caches an indexable under its permalink.
	SetByPermalink(ctx context.Context, permalink string, ind *model.Indexable) error
	// DeleteByPermalink drops the cached indexable for a permalink.
	DeleteByPermalink(ctx context.Context, permalink string) error
}
