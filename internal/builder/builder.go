package builder

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/seoworks/indexable/internal/frontend"
	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/queue"
	"github.com/seoworks/indexable/internal/store"
	"github.com/sirupsen/logrus"
)

// Builder constructs and persists indexables, one factory per indexable kind.
// A builder failure propagates to the caller, the repository never retries.
type Builder interface {
	// ForIDAndType builds the indexable for a content object.
	ForIDAndType(ctx context.Context, objectID int64, objectType string) (*model.Indexable, error)
	// ForHomePage builds the home page indexable.
	ForHomePage(ctx context.Context) (*model.Indexable, error)
	// ForDateArchive builds the date archive indexable.
	ForDateArchive(ctx context.Context) (*model.Indexable, error)
	// ForPostTypeArchive builds the archive indexable of a post type.
	ForPostTypeArchive(ctx context.Context, postType string) (*model.Indexable, error)
	// ForSystemPage builds a system page indexable (search page, 404).
	ForSystemPage(ctx context.Context, objectSubType string) (*model.Indexable, error)
	// ForUnknown builds the fallback row for pages that match nothing.
	ForUnknown(ctx context.Context) (*model.Indexable, error)
	// WithStore returns a builder writing through the given store, so a batch
	// of builds can run inside one transaction.
	WithStore(st store.Store) Builder
}

// StoreBuilder builds indexables from the content tables and announces every
// build on the event queue.
type StoreBuilder struct {
	store store.Store
	queue queue.IndexableQueue
}

var _ Builder = (*StoreBuilder)(nil)

func NewStoreBuilder(store store.Store, queue queue.IndexableQueue) *StoreBuilder {
	return &StoreBuilder{
		store: store,
		queue: queue,
	}
}

func (b *StoreBuilder) WithStore(st store.Store) Builder {
	return &StoreBuilder{store: st, queue: b.queue}
}

func (b *StoreBuilder) ForIDAndType(ctx context.Context, objectID int64, objectType string) (*model.Indexable, error) {
	ind := &model.Indexable{
		ObjectID:   &objectID,
		ObjectType: objectType,
	}

	switch objectType {
	case model.ObjectTypePost:
		post, err := b.store.GetPost(ctx, objectID)
		if err != nil {
			return nil, fmt.Errorf("building indexable for post %d: %w", objectID, err)
		}
		ind.ObjectSubType = post.PostType
		ind.PostStatus = post.PostStatus

	case model.ObjectTypeTerm:
		term, err := b.store.GetTerm(ctx, objectID)
		if err != nil {
			return nil, fmt.Errorf("building indexable for term %d: %w", objectID, err)
		}
		ind.ObjectSubType = term.Taxonomy

	case model.ObjectTypeUser:
		if _, err := b.store.GetUser(ctx, objectID); err != nil {
			return nil, fmt.Errorf("building indexable for user %d: %w", objectID, err)
		}

	default:
		return nil, fmt.Errorf("cannot build indexable for object type %q", objectType)
	}

	return b.create(ctx, ind)
}

func (b *StoreBuilder) ForHomePage(ctx context.Context) (*model.Indexable, error) {
	ind := &model.Indexable{ObjectType: model.ObjectTypeHomePage}

	// A configured front page gives the home page a concrete object id.
	value, err := b.store.GetSetting(ctx, frontend.SettingFrontPageID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		if id, perr := strconv.ParseInt(value, 10, 64); perr == nil && id != 0 {
			ind.ObjectID = &id
		}
	}

	return b.create(ctx, ind)
}

func (b *StoreBuilder) ForDateArchive(ctx context.Context) (*model.Indexable, error) {
	return b.create(ctx, &model.Indexable{ObjectType: model.ObjectTypeDateArchive})
}

func (b *StoreBuilder) ForPostTypeArchive(ctx context.Context, postType string) (*model.Indexable, error) {
	return b.create(ctx, &model.Indexable{
		ObjectType:    model.ObjectTypePostTypeArchive,
		ObjectSubType: postType,
	})
}

func (b *StoreBuilder) ForSystemPage(ctx context.Context, objectSubType string) (*model.Indexable, error) {
	return b.create(ctx, &model.Indexable{
		ObjectType:    model.ObjectTypeSystemPage,
		ObjectSubType: objectSubType,
	})
}

func (b *StoreBuilder) ForUnknown(ctx context.Context) (*model.Indexable, error) {
	return b.create(ctx, &model.Indexable{
		ObjectType: model.ObjectTypeUnknown,
		PostStatus: model.PostStatusUnindexed,
	})
}

func (b *StoreBuilder) create(ctx context.Context, ind *model.Indexable) (*model.Indexable, error) {
	if err := b.store.CreateIndexable(ctx, ind); err != nil {
		logrus.Errorf("error creating indexable for %s: %v", ind.ObjectType, err)
		return nil, err
	}

	if err := b.queue.PublishCreated(ctx, ind); err != nil {
		// Event delivery is best effort, the row is already persisted.
		logrus.Errorf("error publishing indexable created event: %v", err)
	}

	return ind, nil
}
