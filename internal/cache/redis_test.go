package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/seoworks/indexable/internal/compress"
	"github.com/seoworks/indexable/internal/model"
	"github.com/stretchr/testify/assert"
)

func newTestCache(t *testing.T, codec compress.Codec) *RedisIndexableCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return NewRedisIndexableCacheWithClient(client, codec)
}

func TestRedisIndexableCache_RoundTrip(t *testing.T) {
	for _, codec := range []compress.Codec{compress.NewNop(), compress.NewGZip(), compress.NewBrotli(), compress.NewLZ4()} {
		c := newTestCache(t, codec)
		ctx := context.TODO()

		link := "http://example.test/about/"
		objectID := int64(42)
		ind := &model.Indexable{ID: 7, ObjectID: &objectID, ObjectType: model.ObjectTypePost}
		ind.SetPermalink(link)

		assert.NoError(t, c.SetByPermalink(ctx, link, ind))

		got, err := c.GetByPermalink(ctx, link)
		assert.NoError(t, err)
		assert.Equal(t, ind.ID, got.ID)
		assert.Equal(t, objectID, *got.ObjectID)
		assert.Equal(t, link, *got.Permalink)
	}
}

func TestRedisIndexableCache_Miss(t *testing.T) {
	c := newTestCache(t, compress.NewNop())

	_, err := c.GetByPermalink(context.TODO(), "http://example.test/nothing/")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisIndexableCache_Delete(t *testing.T) {
	c := newTestCache(t, compress.NewNop())
	ctx := context.TODO()

	link := "http://example.test/about/"
	ind := &model.Indexable{ID: 1, ObjectType: model.ObjectTypePost}
	ind.SetPermalink(link)

	assert.NoError(t, c.SetByPermalink(ctx, link, ind))
	assert.NoError(t, c.DeleteByPermalink(ctx, link))

	_, err := c.GetByPermalink(ctx, link)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
