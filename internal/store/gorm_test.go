package store

import (
	"context"
	"testing"

	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/tester"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	tester.Setup()

	return NewGormStore(tester.TestDB())
}

func TestGormStore_IndexableLookups(t *testing.T) {
	st := newTestStore(t)
	ctx := context.TODO()

	objectID := int64(42)
	ind := &model.Indexable{ObjectID: &objectID, ObjectType: model.ObjectTypePost, ObjectSubType: "post"}
	assert.NoError(t, st.CreateIndexable(ctx, ind))
	assert.NotZero(t, ind.ID)

	got, err := st.GetIndexableByObject(ctx, 42, model.ObjectTypePost)
	assert.NoError(t, err)
	assert.Equal(t, ind.ID, got.ID)

	_, err = st.GetIndexableByObject(ctx, 42, model.ObjectTypeTerm)
	assert.ErrorIs(t, err, ErrNotFound)

	byID, err := st.GetIndexableByID(ctx, ind.ID)
	assert.NoError(t, err)
	assert.Equal(t, ind.ID, byID.ID)

	many, err := st.ListIndexablesByObjects(ctx, []int64{42, 43}, model.ObjectTypePost)
	assert.NoError(t, err)
	assert.Len(t, many, 1)
}

func TestGormStore_PermalinkLookup(t *testing.T) {
	st := newTestStore(t)
	ctx := context.TODO()

	objectID := int64(1)
	ind := &model.Indexable{ObjectID: &objectID, ObjectType: model.ObjectTypePost}
	ind.SetPermalink("http://example.test/about/")
	assert.NoError(t, st.CreateIndexable(ctx, ind))

	got, err := st.GetIndexableByPermalink(ctx, model.PermalinkHash("http://example.test/about/"), "http://example.test/about/")
	assert.NoError(t, err)
	assert.Equal(t, ind.ID, got.ID)

	// Matching hash with a different raw permalink is rejected.
	_, err = st.GetIndexableByPermalink(ctx, *ind.PermalinkHash, "http://example.test/other/")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_ListIndexablesMissingPermalink(t *testing.T) {
	st := newTestStore(t)
	ctx := context.TODO()

	withLink := &model.Indexable{ObjectType: model.ObjectTypePostTypeArchive, ObjectSubType: "post"}
	withLink.SetPermalink("http://example.test/post/")
	assert.NoError(t, st.CreateIndexable(ctx, withLink))
	assert.NoError(t, st.CreateIndexable(ctx, &model.Indexable{ObjectType: model.ObjectTypeDateArchive}))
	assert.NoError(t, st.CreateIndexable(ctx, &model.Indexable{ObjectType: model.ObjectTypeHomePage}))

	missing, err := st.ListIndexablesMissingPermalink(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, missing, 2)

	limited, err := st.ListIndexablesMissingPermalink(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGormStore_OutdatedProminentWordsAntiJoin(t *testing.T) {
	st := newTestStore(t)
	ctx := context.TODO()

	assert.NoError(t, st.db.Create(&model.Post{ID: 1, PostType: "post", PostStatus: "publish", Slug: "a"}).Error)
	assert.NoError(t, st.db.Create(&model.Post{ID: 2, PostType: "post", PostStatus: "future", Slug: "b"}).Error)
	assert.NoError(t, st.db.Create(&model.Post{ID: 3, PostType: "post", PostStatus: "trash", Slug: "c"}).Error)

	version := int64(3)
	one := int64(1)
	assert.NoError(t, st.CreateIndexable(ctx, &model.Indexable{
		ObjectID:              &one,
		ObjectType:            model.ObjectTypePost,
		ObjectSubType:         "post",
		ProminentWordsVersion: &version,
	}))

	count, err := st.CountPostsWithOutdatedProminentWords(ctx, version, []string{"post"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	ids, err := st.FindPostsWithOutdatedProminentWords(ctx, version, []string{"post"}, 10)
	assert.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)
}

func TestGormStore_Settings(t *testing.T) {
	st := newTestStore(t)
	ctx := context.TODO()

	_, err := st.GetSetting(ctx, "site_url")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, st.SaveSetting(ctx, "site_url", "http://example.test"))
	assert.NoError(t, st.SaveSetting(ctx, "site_url", "http://example.org"))

	got, err := st.GetSetting(ctx, "site_url")
	assert.NoError(t, err)
	assert.Equal(t, "http://example.org", got)

	settings, err := st.ListSettings(ctx)
	assert.NoError(t, err)
	assert.Len(t, settings, 1)
}

func TestGormStore_ListPostTypes(t *testing.T) {
	st := newTestStore(t)
	ctx := context.TODO()

	assert.NoError(t, st.db.Create(&model.Post{ID: 1, PostType: "post", PostStatus: "publish", Slug: "a"}).Error)
	assert.NoError(t, st.db.Create(&model.Post{ID: 2, PostType: "post", PostStatus: "publish", Slug: "b"}).Error)
	assert.NoError(t, st.db.Create(&model.Post{ID: 3, PostType: "book", PostStatus: "publish", Slug: "c"}).Error)

	types, err := st.ListPostTypes(ctx)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"post", "book"}, types)
}
