package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlot stores each slot as a plain Redis string without expiry.
type RedisSlot struct {
	client *redis.Client
}

func NewRedisSlot(client *redis.Client) *RedisSlot {
	if client == nil {
		panic("storage.NewRedisSlot: client is nil")
	}
	return &RedisSlot{client: client}
}

// DialRedis builds a RedisSlot from a redis:// URL and checks the connection.
func DialRedis(ctx context.Context, url string) (*RedisSlot, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisSlot(client), nil
}

func (r *RedisSlot) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, nil
}

func (r *RedisSlot) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (r *RedisSlot) Close() error {
	return r.client.Close()
}
