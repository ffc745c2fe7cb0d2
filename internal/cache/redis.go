package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/seoworks/indexable/internal/compress"
	"github.com/seoworks/indexable/internal/model"
)

const permalinkTTL = time.Hour

func permalinkKey(permalink string) string {
	// The hash keeps redis keys short for arbitrarily long permalinks.
	return "indexable:permalink:" + model.PermalinkHash(permalink)
}

var _ IndexableCache = (*RedisIndexableCache)(nil)

type RedisIndexableCache struct {
	client *redis.Client
	codec  compress.Codec
}

func NewRedisIndexableCache(addr string, codec compress.Codec) *RedisIndexableCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return &RedisIndexableCache{client: client, codec: codec}
}

// NewRedisIndexableCacheWithClient wraps an existing client, used by tests.
func NewRedisIndexableCacheWithClient(client *redis.Client, codec compress.Codec) *RedisIndexableCache {
	return &RedisIndexableCache{client: client, codec: codec}
}

func (r *RedisIndexableCache) GetByPermalink(ctx context.Context, permalink string) (*model.Indexable, error) {
	res := r.client.Get(ctx, permalinkKey(permalink))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, ErrCacheMiss
		}

		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	data, err := r.codec.Decode(buf)
	if err != nil {
		return nil, err
	}

	ind := &model.Indexable{}
	if err := json.Unmarshal(data, ind); err != nil {
		return nil, err
	}

	return ind, nil
}

func (r *RedisIndexableCache) SetByPermalink(ctx context.Context, permalink string, ind *model.Indexable) error {
	marshal, err := json.Marshal(ind)
	if err != nil {
		return err
	}

	data, err := r.codec.Encode(marshal)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, permalinkKey(permalink), data, permalinkTTL).Err()
}

func (r *RedisIndexableCache) DeleteByPermalink(ctx context.Context, permalink string) error {
	return r.client.Del(ctx, permalinkKey(permalink)).Err()
}
