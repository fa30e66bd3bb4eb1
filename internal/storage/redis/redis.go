// Package redis is implementation of storage interface over redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Decentr-net/notos/internal/storage"
)

type rds struct {
	c      redis.UniversalClient
	prefix string
}

// New creates new instance of redis storage. Keys are stored under prefix.
func New(c redis.UniversalClient, prefix string) storage.Storage {
	return rds{c: c, prefix: prefix}
}

func (r rds) key(k string) string {
	return r.prefix + k
}

func (r rds) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.c.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return b, nil
}

func (r rds) Put(ctx context.Context, key string, value []byte) error {
	if err := r.c.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

func (r rds) Delete(ctx context.Context, key string) error {
	if err := r.c.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

func (r rds) Ping(ctx context.Context) error {
	if err := r.c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}
