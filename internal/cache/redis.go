package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hrcore/hrconsole/internal/config"
)

const (
	redisKeyPrefix = "hrconsole:cache:"

	// Hard expiry guard; client-side staleness decides refreshes long
	// before this hits.
	redisEntryTTL = 24 * time.Hour
)

// RedisStore keeps cached pages in Redis so repeated CLI invocations
// within the staleness window reuse each other's fetches.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg *config.Config, logger *slog.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logger.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, err
	}

	logger.Info("Successfully connected to Redis")

	return &RedisStore{client: rdb}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("corrupt cache entry for %q: %w", key, err)
	}
	return &entry, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	return r.client.Set(ctx, redisKeyPrefix+key, data, redisEntryTTL).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisKeyPrefix+key).Err()
}

func (r *RedisStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
