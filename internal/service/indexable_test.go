package service

import (
	"context"
	"testing"

	"github.com/seoworks/indexable/internal/builder"
	"github.com/seoworks/indexable/internal/content"
	"github.com/seoworks/indexable/internal/frontend"
	"github.com/seoworks/indexable/internal/hierarchy"
	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/permalink"
	"github.com/seoworks/indexable/internal/queue"
	"github.com/seoworks/indexable/internal/repository"
	"github.com/seoworks/indexable/internal/store"
	"github.com/seoworks/indexable/internal/tester"
	"github.com/stretchr/testify/assert"
)

func newTestService() *IndexableService {
	st := store.NewGormStore(tester.TestDB())
	b := builder.NewStoreBuilder(st, queue.NewNop())
	resolver := permalink.NewResolver(content.NewStoreSource(st, "http://example.test"))
	repo := repository.New(st, b, resolver, hierarchy.NewRepository(st, b), nil, queue.NewNop())

	return NewIndexableService(repo, frontend.NewStoreClassifier(st), st)
}

func TestIndexableService_ResolveURL(t *testing.T) {
	tester.Setup()
	svc := newTestService()

	assert.NoError(t, tester.TestDB().Create(&model.Post{ID: 1, PostType: "post", PostStatus: "publish", Slug: "about"}).Error)

	ind, err := svc.ResolveURL(context.TODO(), "http://example.test/about/")
	assert.NoError(t, err)
	assert.Equal(t, model.ObjectTypePost, ind.ObjectType)
	assert.Equal(t, "http://example.test/about/", *ind.Permalink)

	// Unroutable pages resolve to the 404 system page.
	ind, err = svc.ResolveURL(context.TODO(), "http://example.test/nothing-here/")
	assert.NoError(t, err)
	assert.Equal(t, model.ObjectTypeSystemPage, ind.ObjectType)
	assert.Equal(t, model.SubTypeNotFound, ind.ObjectSubType)

	_, err = svc.ResolveURL(context.TODO(), "://bad")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestIndexableService_GetByObject(t *testing.T) {
	tester.Setup()
	svc := newTestService()

	assert.NoError(t, tester.TestDB().Create(&model.Post{ID: 1, PostType: "post", PostStatus: "publish", Slug: "about"}).Error)

	ind, err := svc.GetByObject(context.TODO(), 1, model.ObjectTypePost, true)
	assert.NoError(t, err)
	assert.NotNil(t, ind)

	_, err = svc.GetByObject(context.TODO(), 1, "bogus", true)
	assert.ErrorIs(t, err, ErrUnknownObjectType)
}

func TestIndexableService_GetByPermalink(t *testing.T) {
	tester.Setup()
	svc := newTestService()

	_, err := svc.GetByPermalink(context.TODO(), "")
	assert.ErrorIs(t, err, ErrEmptyPermalink)

	_, err = svc.GetByPermalink(context.TODO(), "http://example.test/none/")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestIndexableService_Ancestors(t *testing.T) {
	tester.Setup()
	svc := newTestService()

	db := tester.TestDB()
	assert.NoError(t, db.Create(&model.Post{ID: 1, PostType: "page", PostStatus: "publish", Slug: "root"}).Error)
	assert.NoError(t, db.Create(&model.Post{ID: 2, PostType: "page", PostStatus: "publish", Slug: "leaf", ParentID: 1}).Error)

	leaf, err := svc.GetByObject(context.TODO(), 2, model.ObjectTypePost, true)
	assert.NoError(t, err)

	ancestors, err := svc.Ancestors(context.TODO(), leaf.ID)
	assert.NoError(t, err)
	assert.Len(t, ancestors, 1)
	assert.Equal(t, int64(1), *ancestors[0].ObjectID)

	_, err = svc.Ancestors(context.TODO(), 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestIndexableService_ListByType(t *testing.T) {
	tester.Setup()
	svc := newTestService()

	assert.NoError(t, tester.TestDB().Create(&model.Post{ID: 1, PostType: "post", PostStatus: "publish", Slug: "a"}).Error)

	_, err := svc.GetByObject(context.TODO(), 1, model.ObjectTypePost, true)
	assert.NoError(t, err)

	inds, err := svc.ListByType(context.TODO(), model.ObjectTypePost, "")
	assert.NoError(t, err)
	assert.Len(t, inds, 1)

	inds, err = svc.ListByType(context.TODO(), model.ObjectTypePost, "page")
	assert.NoError(t, err)
	assert.Empty(t, inds)

	_, err = svc.ListByType(context.TODO(), "bogus", "")
	assert.ErrorIs(t, err, ErrUnknownObjectType)
}
