package store

import (
	"context"
	"errors"

	"github.com/seoworks/indexable/internal/model"
)

// ErrNotFound is returned by single-row lookups when no row matches. Absence
// is an expected outcome for every lookup in this package, never a fault.
var ErrNotFound = errors.New("record not found")

type Store interface {
	IndexableStore
	ContentStore
	SettingStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type IndexableStore interface {
	// CreateIndexable inserts a new indexable row.
	CreateIndexable(ctx context.Context, ind *model.Indexable) error
	// SaveIndexable persists changes to an existing indexable row.
	SaveIndexable(ctx context.Context, ind *model.Indexable) error
	// GetIndexableByID retrieves an indexable by primary key.
	GetIndexableByID(ctx context.Context, id int64) (*model.Indexable, error)
	// GetIndexableByObject retrieves the indexable for an (object id, object type) pair.
	GetIndexableByObject(ctx context.Context, objectID int64, objectType string) (*model.Indexable, error)
	// ListIndexablesByObjects retrieves all indexables matching any of the object ids for one object type.
	ListIndexablesByObjects(ctx context.Context, objectIDs []int64, objectType string) ([]*model.Indexable, error)
	// GetIndexableByType retrieves the singleton indexable for an object type (home page, date archive).
	GetIndexableByType(ctx context.Context, objectType string) (*model.Indexable, error)
	// GetIndexableByTypeAndSubType retrieves the indexable keyed by (object type, object sub-type).
	GetIndexableByTypeAndSubType(ctx context.Context, objectType, objectSubType string) (*model.Indexable, error)
	// GetIndexableByPermalink retrieves the indexable whose stored hash and raw permalink both match.
	GetIndexableByPermalink(ctx context.Context, permalinkHash, permalink string) (*model.Indexable, error)
	// ListIndexablesByIDs retrieves indexables by primary key, in no particular order.
	ListIndexablesByIDs(ctx context.Context, ids []int64) ([]*model.Indexable, error)
	// ListIndexablesByType retrieves all indexables of an object type.
	ListIndexablesByType(ctx context.Context, objectType string) ([]*model.Indexable, error)
	// ListIndexablesByTypeAndSubType retrieves all indexables of an (object type, object sub-type) pair.
	ListIndexablesByTypeAndSubType(ctx context.Context, objectType, objectSubType string) ([]*model.Indexable, error)
	// ListIndexablesMissingPermalink retrieves up to limit indexables with no resolved permalink.
	ListIndexablesMissingPermalink(ctx context.Context, limit int) ([]*model.Indexable, error)
	// CountPostsWithOutdatedProminentWords counts posts of the given types whose
	// indexable is not at the given prominent words version.
	CountPostsWithOutdatedProminentWords(ctx context.Context, version int64, postTypes []string) (int64, error)
	// FindPostsWithOutdatedProminentWords returns up to limit ids of posts of the
	// given types whose indexable is not at the given prominent words version.
	FindPostsWithOutdatedProminentWords(ctx context.Context, version int64, postTypes []string, limit int) ([]int64, error)
}

type ContentStore interface {
	// GetPost retrieves a post row by id.
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	// GetPostBySlug retrieves a post row by slug.
	GetPostBySlug(ctx context.Context, slug string) (*model.Post, error)
	// GetTerm retrieves a term row by id.
	GetTerm(ctx context.Context, id int64) (*model.Term, error)
	// GetTermBySlug retrieves a term row by taxonomy and slug.
	GetTermBySlug(ctx context.Context, taxonomy, slug string) (*model.Term, error)
	// GetUser retrieves a user row by id.
	GetUser(ctx context.Context, id int64) (*model.User, error)
	// GetUserBySlug retrieves a user row by slug.
	GetUserBySlug(ctx context.Context, slug string) (*model.User, error)
	// ListPostTypes returns the distinct post types present in the content table.
	ListPostTypes(ctx context.Context) ([]string, error)
}

type SettingStore interface {
	// GetSetting retrieves one setting value; ErrNotFound when the key was never saved.
	GetSetting(ctx context.Context, key string) (string, error)
	// SaveSetting upserts one setting value.
	SaveSetting(ctx context.Context, key, value string) error
	// ListSettings retrieves all settings.
	ListSettings(ctx context.Context) ([]*model.Setting, error)
}
