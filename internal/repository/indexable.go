package repository

import (
	"context"
	"errors"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/seoworks/indexable/internal/builder"
	"github.com/seoworks/indexable/internal/cache"
	"github.com/seoworks/indexable/internal/frontend"
	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/permalink"
	"github.com/seoworks/indexable/internal/queue"
	"github.com/seoworks/indexable/internal/store"
	"github.com/sirupsen/logrus"
)

// DefaultOutdatedLimit caps FindPostsWithOutdatedProminentWords when the
// caller passes no limit.
const DefaultOutdatedLimit = 10

// AncestorResolver computes the indexable ids of an indexable's ancestors,
// nearest ancestor first. It may populate the record's AncestorChain as a
// side effect of computing the hierarchy.
type AncestorResolver interface {
	AncestorIDs(ctx context.Context, ind *model.Indexable) ([]int64, error)
}

// Repository resolves, lazily creates and caches indexable records. Every
// indexable returned by a public method has its permalink populated when one
// is resolvable for its type.
//
// Lookups followed by an auto-create are not atomic. Two concurrent requests
// resolving the same missing indexable can both miss and both insert a row;
// the original system accepts that race and so does this one.
type Repository struct {
	store     store.Store
	builder   builder.Builder
	resolver  *permalink.Resolver
	hierarchy AncestorResolver
	cache     cache.IndexableCache // optional, nil disables caching
	events    queue.IndexableQueue
}

func New(store store.Store, builder builder.Builder, resolver *permalink.Resolver, hierarchy AncestorResolver, cache cache.IndexableCache, events queue.IndexableQueue) *Repository {
	return &Repository{
		store:     store,
		builder:   builder,
		resolver:  resolver,
		hierarchy: hierarchy,
		cache:     cache,
		events:    events,
	}
}

// FindForCurrentPage resolves the indexable for the page a request is for.
// The first matching kind wins and only one branch executes. When nothing
// matches, or the matched lookup yields no existing or creatable record, a
// fallback row with object type unknown is persisted and returned.
func (r *Repository) FindForCurrentPage(ctx context.Context, loc frontend.Location) (*model.Indexable, error) {
	var ind *model.Indexable
	var err error

	switch loc.Kind {
	case frontend.KindSimple, frontend.KindStaticHome:
		ind, err = r.FindByIDAndType(ctx, loc.ObjectID, model.ObjectTypePost, true)
	case frontend.KindPostsHome:
		ind, err = r.FindForHomePage(ctx, true)
	case frontend.KindTermArchive:
		ind, err = r.FindByIDAndType(ctx, loc.ObjectID, model.ObjectTypeTerm, true)
	case frontend.KindDateArchive:
		ind, err = r.FindForDateArchive(ctx, true)
	case frontend.KindSearch:
		ind, err = r.FindForSystemPage(ctx, model.SubTypeSearchPage, true)
	case frontend.KindPostTypeArchive:
		ind, err = r.FindForPostTypeArchive(ctx, loc.PostType, true)
	case frontend.KindAuthorArchive:
		ind, err = r.FindByIDAndType(ctx, loc.ObjectID, model.ObjectTypeUser, true)
	case frontend.KindNotFound:
		ind, err = r.FindForSystemPage(ctx, model.SubTypeNotFound, true)
	}

	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		logrus.Debugf("no indexable for %s page, falling back to unknown", loc.Kind)
	}
	if ind != nil {
		return ind, nil
	}

	return r.builder.ForUnknown(ctx)
}

// FindByPermalink retrieves the indexable whose stored permalink equals the
// given one, matching hash and raw string. Never auto-creates.
func (r *Repository) FindByPermalink(ctx context.Context, link string) (*model.Indexable, error) {
	if r.cache != nil {
		ind, err := r.cache.GetByPermalink(ctx, link)
		if err == nil {
			return ind, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logrus.Errorf("permalink cache read failed: %v", err)
		}
	}

	ind, err := r.store.GetIndexableByPermalink(ctx, model.PermalinkHash(link), link)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.SetByPermalink(ctx, link, ind); err != nil {
			logrus.Errorf("permalink cache write failed: %v", err)
		}
	}

	return ind, nil
}

// FindByIDAndType retrieves the indexable for an (object id, object type)
// pair, building it on a miss when autoCreate is set.
func (r *Repository) FindByIDAndType(ctx context.Context, objectID int64, objectType string, autoCreate bool) (*model.Indexable, error) {
	ind, err := r.store.GetIndexableByObject(ctx, objectID, objectType)
	if errors.Is(err, store.ErrNotFound) && autoCreate {
		ind, err = r.builder.ForIDAndType(ctx, objectID, objectType)
	}
	if err != nil {
		return nil, err
	}

	return r.EnsurePermalink(ctx, ind)
}

// FindByMultipleIDsAndType is the batch form of FindByIDAndType. Existing
// rows are fetched in one query; the missing ids are built inside one
// transaction when autoCreate is set, so a failed build persists none of the
// batch. The order of the result is not guaranteed to match the input order.
func (r *Repository) FindByMultipleIDsAndType(ctx context.Context, objectIDs []int64, objectType string, autoCreate bool) ([]*model.Indexable, error) {
	if len(objectIDs) == 0 {
		return nil, nil
	}

	inds, err := r.store.ListIndexablesByObjects(ctx, objectIDs, objectType)
	if err != nil {
		return nil, err
	}

	if autoCreate {
		missing := mapset.NewSet[int64](objectIDs...)
		for _, ind := range inds {
			if ind.ObjectID != nil {
				missing.Remove(*ind.ObjectID)
			}
		}

		if missing.Cardinality() > 0 {
			var built []*model.Indexable
			err := r.store.Transaction(ctx, func(tx store.Store) error {
				txBuilder := r.builder.WithStore(tx)
				for _, objectID := range missing.ToSlice() {
					ind, err := txBuilder.ForIDAndType(ctx, objectID, objectType)
					if err != nil {
						return err
					}
					built = append(built, ind)
				}

				return nil
			})
			if err != nil {
				return nil, err
			}
			inds = append(inds, built...)
		}
	}

	for _, ind := range inds {
		if _, err := r.EnsurePermalink(ctx, ind); err != nil {
			return nil, err
		}
	}

	return inds, nil
}

// FindForHomePage retrieves the home page indexable.
func (r *Repository) FindForHomePage(ctx context.Context, autoCreate bool) (*model.Indexable, error) {
	ind, err := r.store.GetIndexableByType(ctx, model.ObjectTypeHomePage)
	if errors.Is(err, store.ErrNotFound) && autoCreate {
		ind, err = r.builder.ForHomePage(ctx)
	}
	if err != nil {
		return nil, err
	}

	return r.EnsurePermalink(ctx, ind)
}

// FindForDateArchive retrieves the date archive indexable.
func (r *Repository) FindForDateArchive(ctx context.Context, autoCreate bool) (*model.Indexable, error) {
	ind, err := r.store.GetIndexableByType(ctx, model.ObjectTypeDateArchive)
	if errors.Is(err, store.ErrNotFound) && autoCreate {
		ind, err = r.builder.ForDateArchive(ctx)
	}
	if err != nil {
		return nil, err
	}

	return r.EnsurePermalink(ctx, ind)
}

// FindForPostTypeArchive retrieves the archive indexable of a post type.
func (r *Repository) FindForPostTypeArchive(ctx context.Context, postType string, autoCreate bool) (*model.Indexable, error) {
	ind, err := r.store.GetIndexableByTypeAndSubType(ctx, model.ObjectTypePostTypeArchive, postType)
	if errors.Is(err, store.ErrNotFound) && autoCreate {
		ind, err = r.builder.ForPostTypeArchive(ctx, postType)
	}
	if err != nil {
		return nil, err
	}

	return r.EnsurePermalink(ctx, ind)
}

// FindForSystemPage retrieves a system page indexable by sub-type.
func (r *Repository) FindForSystemPage(ctx context.Context, objectSubType string, autoCreate bool) (*model.Indexable, error) {
	ind, err := r.store.GetIndexableByTypeAndSubType(ctx, model.ObjectTypeSystemPage, objectSubType)
	if errors.Is(err, store.ErrNotFound) && autoCreate {
		ind, err = r.builder.ForSystemPage(ctx, objectSubType)
	}
	if err != nil {
		return nil, err
	}

	return r.EnsurePermalink(ctx, ind)
}

// FindAllByType lists all indexables of an object type. Listing never
// fabricates rows.
func (r *Repository) FindAllByType(ctx context.Context, objectType string) ([]*model.Indexable, error) {
	inds, err := r.store.ListIndexablesByType(ctx, objectType)
	if err != nil {
		return nil, err
	}

	return r.ensureAll(ctx, inds)
}

// FindAllByTypeAndSubType lists all indexables of an (object type, object
// sub-type) pair. Listing never fabricates rows.
func (r *Repository) FindAllByTypeAndSubType(ctx context.Context, objectType, objectSubType string) ([]*model.Indexable, error) {
	inds, err := r.store.ListIndexablesByTypeAndSubType(ctx, objectType, objectSubType)
	if err != nil {
		return nil, err
	}

	return r.ensureAll(ctx, inds)
}

// Ancestors returns the ordered ancestor chain of an indexable. A cached
// non-empty chain is returned directly. Otherwise the hierarchy resolver
// computes the ancestor ids and the matching rows are returned in exactly
// that id order; ancestor chains are positional, database order would be
// wrong. An empty id list, or the single sentinel id 0, means no ancestors.
func (r *Repository) Ancestors(ctx context.Context, ind *model.Indexable) ([]*model.Indexable, error) {
	if len(ind.AncestorChain) > 0 {
		return r.ensureAll(ctx, ind.AncestorChain)
	}

	ids, err := r.hierarchy.AncestorIDs(ctx, ind)
	if err != nil {
		return nil, err
	}

	// The resolver may have filled the cached chain while computing the
	// hierarchy.
	if len(ind.AncestorChain) > 0 {
		return r.ensureAll(ctx, ind.AncestorChain)
	}

	if len(ids) == 0 || (len(ids) == 1 && ids[0] == 0) {
		return []*model.Indexable{}, nil
	}

	rows, err := r.store.ListIndexablesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*model.Indexable, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	ordered := make([]*model.Indexable, 0, len(ids))
	for _, id := range ids {
		row, ok := byID[id]
		if !ok {
			continue
		}
		if _, err := r.EnsurePermalink(ctx, row); err != nil {
			return nil, err
		}
		ordered = append(ordered, row)
	}

	return ordered, nil
}

// EnsurePermalink resolves and persists the permalink of an indexable that
// has none. Idempotent: once a permalink is stored, repeat calls perform no
// further writes and announce nothing.
func (r *Repository) EnsurePermalink(ctx context.Context, ind *model.Indexable) (*model.Indexable, error) {
	if ind == nil {
		return nil, nil
	}
	if ind.HasPermalink() {
		return ind, nil
	}

	link, err := r.resolver.Resolve(ctx, ind)
	if err != nil {
		return nil, err
	}
	if link == "" {
		// No permalink is resolvable for this type, leave it null.
		return ind, nil
	}

	ind.SetPermalink(link)
	if err := r.store.SaveIndexable(ctx, ind); err != nil {
		return nil, err
	}

	if r.cache != nil {
		// A stale entry under this permalink would mask the fresh row.
		if err := r.cache.DeleteByPermalink(ctx, link); err != nil {
			logrus.Errorf("permalink cache invalidation failed: %v", err)
		}
	}

	if err := r.events.PublishUpdated(ctx, ind); err != nil {
		// Event delivery is best effort, the row is already persisted.
		logrus.Errorf("error publishing indexable updated event: %v", err)
	}

	return ind, nil
}

// CountPostsWithOutdatedProminentWords counts posts of the given types, in a
// visible status, whose indexable is not yet at updatedVersion. An empty type
// set yields zero without touching the database.
func (r *Repository) CountPostsWithOutdatedProminentWords(ctx context.Context, updatedVersion int64, postTypes []string) (int64, error) {
	if len(postTypes) == 0 {
		return 0, nil
	}

	return r.store.CountPostsWithOutdatedProminentWords(ctx, updatedVersion, postTypes)
}

// FindPostsWithOutdatedProminentWords returns up to limit ids of posts of the
// given types, in a visible status, whose indexable is not yet at
// updatedVersion. A limit of zero or less falls back to DefaultOutdatedLimit.
// An empty type set yields no ids without touching the database.
func (r *Repository) FindPostsWithOutdatedProminentWords(ctx context.Context, updatedVersion int64, postTypes []string, limit int) ([]int64, error) {
	if len(postTypes) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultOutdatedLimit
	}

	return r.store.FindPostsWithOutdatedProminentWords(ctx, updatedVersion, postTypes, limit)
}

func (r *Repository) ensureAll(ctx context.Context, inds []*model.Indexable) ([]*model.Indexable, error) {
	for _, ind := range inds {
		if _, err := r.EnsurePermalink(ctx, ind); err != nil {
			return nil, err
		}
	}

	return inds, nil
}
