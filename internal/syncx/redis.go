package syncx

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisBackend stores the encrypted sync content as a single string value,
// for users running their own Redis instead of a hosted blob store. Unlike
// Gist and S3 it keeps no history of overwritten pushes.
type RedisBackend struct {
	client *redis.Client
	key    string
}

func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	return &RedisBackend{client: client, key: key}
}

// Read returns the stored value, or "" when the key does not exist.
func (b *RedisBackend) Read(ctx context.Context) (string, error) {
	val, err := b.client.Get(ctx, b.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return val, nil
}

// Write replaces the stored value.
func (b *RedisBackend) Write(ctx context.Context, content string) error {
	if err := b.client.Set(ctx, b.key, content, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

// Append adds one line to the stored value (read-modify-write).
func (b *RedisBackend) Append(ctx context.Context, line string) error {
	return appendLine(ctx, b, line)
}
