package hierarchy

import (
	"context"
	"testing"

	"github.com/seoworks/indexable/internal/builder"
	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/queue"
	"github.com/seoworks/indexable/internal/store"
	"github.com/seoworks/indexable/internal/tester"
	"github.com/stretchr/testify/assert"
)

func newTestHierarchy() (*Repository, store.Store) {
	st := store.NewGormStore(tester.TestDB())

	return NewRepository(st, builder.NewStoreBuilder(st, queue.NewNop())), st
}

func TestRepository_AncestorIDs_Posts(t *testing.T) {
	tester.Setup()
	repo, st := newTestHierarchy()

	db := tester.TestDB()
	assert.NoError(t, db.Create(&model.Post{ID: 1, PostType: "page", PostStatus: "publish", Slug: "root"}).Error)
	assert.NoError(t, db.Create(&model.Post{ID: 2, PostType: "page", PostStatus: "publish", Slug: "mid", ParentID: 1}).Error)
	assert.NoError(t, db.Create(&model.Post{ID: 3, PostType: "page", PostStatus: "publish", Slug: "leaf", ParentID: 2}).Error)

	leaf := int64(3)
	ids, err := repo.AncestorIDs(context.TODO(), &model.Indexable{ObjectID: &leaf, ObjectType: model.ObjectTypePost})
	assert.NoError(t, err)
	assert.Len(t, ids, 2)

	// Each ancestor got its own indexable, nearest first.
	first, err := st.GetIndexableByID(context.TODO(), ids[0])
	assert.NoError(t, err)
	assert.Equal(t, int64(2), *first.ObjectID)

	second, err := st.GetIndexableByID(context.TODO(), ids[1])
	assert.NoError(t, err)
	assert.Equal(t, int64(1), *second.ObjectID)
}

func TestRepository_AncestorIDs_Terms(t *testing.T) {
	tester.Setup()
	repo, _ := newTestHierarchy()

	db := tester.TestDB()
	assert.NoError(t, db.Create(&model.Term{ID: 1, Taxonomy: "category", Slug: "top"}).Error)
	assert.NoError(t, db.Create(&model.Term{ID: 2, Taxonomy: "category", Slug: "sub", ParentID: 1}).Error)

	sub := int64(2)
	ids, err := repo.AncestorIDs(context.TODO(), &model.Indexable{ObjectID: &sub, ObjectType: model.ObjectTypeTerm})
	assert.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestRepository_AncestorIDs_NoHierarchy(t *testing.T) {
	tester.Setup()
	repo, _ := newTestHierarchy()

	// Users have no hierarchy.
	id := int64(1)
	ids, err := repo.AncestorIDs(context.TODO(), &model.Indexable{ObjectID: &id, ObjectType: model.ObjectTypeUser})
	assert.NoError(t, err)
	assert.Empty(t, ids)

	// Neither do rows without an object.
	ids, err = repo.AncestorIDs(context.TODO(), &model.Indexable{ObjectType: model.ObjectTypeHomePage})
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRepository_AncestorIDs_CycleGuard(t *testing.T) {
	tester.Setup()
	repo, _ := newTestHierarchy()

	db := tester.TestDB()
	assert.NoError(t, db.Create(&model.Post{ID: 1, PostType: "page", PostStatus: "publish", Slug: "a", ParentID: 2}).Error)
	assert.NoError(t, db.Create(&model.Post{ID: 2, PostType: "page", PostStatus: "publish", Slug: "b", ParentID: 1}).Error)

	one := int64(1)
	ids, err := repo.AncestorIDs(context.TODO(), &model.Indexable{ObjectID: &one, ObjectType: model.ObjectTypePost})
	assert.NoError(t, err)
	assert.Len(t, ids, 1, "cycle must terminate after the first parent")
}
