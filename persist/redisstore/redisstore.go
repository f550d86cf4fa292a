// Package redisstore implements persist.Store on Redis, for server-side
// storefront deployments (kiosks, bots) where snapshots must survive the
// process and be shared across restarts.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	internalerrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/persist"
)

var _ persist.Store = (*RedisStore)(nil)

// RedisStore persists snapshots under "storefront:<key>". Calls use a
// background context: snapshot writes are fire-and-forget mirrors, never
// tied to a request lifetime.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// New connects to Redis at addr and verifies the connection.
func New(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client, prefix: "storefront:"}, nil
}

func (rs *RedisStore) Load(key string) ([]byte, error) {
	value, err := rs.client.Get(context.Background(), rs.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, internalerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

func (rs *RedisStore) Save(key string, value []byte) error {
	if err := rs.client.Set(context.Background(), rs.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (rs *RedisStore) Delete(key string) error {
	deleted, err := rs.client.Del(context.Background(), rs.prefix+key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	if deleted == 0 {
		return internalerrors.ErrNotFound
	}
	return nil
}

// Close releases the underlying Redis connection.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
