package kvstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"parkingbot/internal/infra"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

var deleteIfEqualsScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// ConnectRedis accepts redis:// and rediss:// URLs, as REDISCLOUD_URL-style
// hosting hands them out.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, func(), error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, infra.WrapStoreErr(infra.KindStoreFailure, "invalid redis url", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, infra.WrapStoreErr(infra.KindStoreFailure, "failed to ping redis", err)
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, infra.WrapStoreErr(infra.KindStoreFailure, "redis GET "+key, err)
	}
	return value, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return infra.WrapStoreErr(infra.KindStoreFailure, "redis SET "+key, err)
	}
	return nil
}

func (r *RedisStore) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, infra.WrapStoreErr(infra.KindStoreFailure, "redis SETNX "+key, err)
	}
	return ok, nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return infra.WrapStoreErr(infra.KindStoreFailure, "redis DEL "+key, err)
	}
	return nil
}

func (r *RedisStore) DeleteIfEquals(ctx context.Context, key, value string) (bool, error) {
	n, err := deleteIfEqualsScript.Run(ctx, r.client, []string{key}, value).Int()
	if err != nil {
		return false, infra.WrapStoreErr(infra.KindStoreFailure, "redis compare-and-delete "+key, err)
	}
	return n == 1, nil
}

// Scan walks the keyspace with SCAN. SCAN may repeat keys, so results are deduplicated.
func (r *RedisStore) Scan(ctx context.Context, prefix string) ([]string, error) {
	seen := make(map[string]struct{})
	keys := make([]string, 0)

	iter := r.client.Scan(ctx, 0, escapeGlob(prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if err := iter.Err(); err != nil {
		return nil, infra.WrapStoreErr(infra.KindStoreFailure, "redis SCAN "+prefix, err)
	}
	return keys, nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
