package hierarchy

import (
	"context"
	"errors"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/seoworks/indexable/internal/builder"
	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/store"
)

// Repository resolves the ancestor chain of an indexable by walking the
// parent links of its content object. Each ancestor object is resolved to its
// own indexable, auto-creating missing ones.
type Repository struct {
	store   store.Store
	builder builder.Builder
}

func NewRepository(store store.Store, builder builder.Builder) *Repository {
	return &Repository{
		store:   store,
		builder: builder,
	}
}

// AncestorIDs returns the indexable ids of the ancestors of ind, nearest
// ancestor first. Objects without a hierarchy yield an empty list.
func (r *Repository) AncestorIDs(ctx context.Context, ind *model.Indexable) ([]int64, error) {
	if ind.ObjectID == nil {
		return nil, nil
	}

	var parents []int64
	var err error

	switch ind.ObjectType {
	case model.ObjectTypePost:
		parents, err = r.postAncestors(ctx, *ind.ObjectID)
	case model.ObjectTypeTerm:
		parents, err = r.termAncestors(ctx, *ind.ObjectID)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(parents))
	for _, objectID := range parents {
		ancestor, err := r.resolve(ctx, objectID, ind.ObjectType)
		if err != nil {
			return nil, err
		}
		ids = append(ids, ancestor.ID)
	}

	return ids, nil
}

func (r *Repository) postAncestors(ctx context.Context, id int64) ([]int64, error) {
	seen := mapset.NewSet[int64](id)
	var parents []int64

	for {
		post, err := r.store.GetPost(ctx, id)
		if err != nil {
			return nil, err
		}
		if post.ParentID == 0 || seen.Contains(post.ParentID) {
			return parents, nil
		}

		seen.Add(post.ParentID)
		parents = append(parents, post.ParentID)
		id = post.ParentID
	}
}

func (r *Repository) termAncestors(ctx context.Context, id int64) ([]int64, error) {
	seen := mapset.NewSet[int64](id)
	var parents []int64

	for {
		term, err := r.store.GetTerm(ctx, id)
		if err != nil {
			return nil, err
		}
		if term.ParentID == 0 || seen.Contains(term.ParentID) {
			return parents, nil
		}

		seen.Add(term.ParentID)
		parents = append(parents, term.ParentID)
		id = term.ParentID
	}
}

func (r *Repository) resolve(ctx context.Context, objectID int64, objectType string) (*model.Indexable, error) {
	ind, err := r.store.GetIndexableByObject(ctx, objectID, objectType)
	if err == nil {
		return ind, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	return r.builder.ForIDAndType(ctx, objectID, objectType)
}
