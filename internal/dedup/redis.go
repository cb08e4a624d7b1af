package dedup

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "processed:"

// RedisStore is a redis-backed local dedup tier. Marks never expire; a
// dedupe id once recorded must never trigger side effects again.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKeyPrefix+eventID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) MarkProcessed(ctx context.Context, eventID string, rawEvent []byte) error {
	return s.client.Set(ctx, redisKeyPrefix+eventID, rawEvent, 0).Err()
}

// Close releases the redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
