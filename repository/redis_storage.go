package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage implements LocalStorage on Redis. Every client write refreshes
// the key's TTL. GlobalScope keys never expire.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStorage) getKey(clientID, key string) string {
	return fmt.Sprintf("storage:%s:%s", clientID, key)
}

func (r *RedisStorage) GetItem(ctx context.Context, clientID, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.getKey(clientID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisStorage) SetItem(ctx context.Context, clientID, key, value string) error {
	return r.client.Set(ctx, r.getKey(clientID, key), value, r.expiration(clientID)).Err()
}

func (r *RedisStorage) RemoveItem(ctx context.Context, clientID, key string) error {
	return r.client.Del(ctx, r.getKey(clientID, key)).Err()
}

func (r *RedisStorage) expiration(clientID string) time.Duration {
	if clientID == GlobalScope {
		return 0
	}
	return r.ttl
}
