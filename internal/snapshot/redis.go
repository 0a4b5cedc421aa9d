package snapshot

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dentassist/dentsync/internal/model"
)

// RedisStore keeps the snapshot under a single Redis key, mirroring the
// one-blob-per-clinic layout of the other backends.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, key: Key}, nil
}

func (r *RedisStore) Load(ctx context.Context) (model.AppState, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return model.DefaultState(), nil
	}
	if err != nil {
		return model.DefaultState(), fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data)
}

func (r *RedisStore) Save(ctx context.Context, state model.AppState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
