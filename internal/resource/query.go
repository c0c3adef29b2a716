package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Fetcher loads a value from the backend.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Query serves a cached read. A fresh entry is returned without any
// network call; a stale entry is returned immediately while a background
// refetch replaces it (no loading flash); a miss fetches synchronously.
func Query[T any](ctx context.Context, rt *Runtime, key string, fetch Fetcher[T]) (T, error) {
	var zero T

	now := time.Now()
	entry, fresh := rt.cache.Lookup(ctx, key, now)
	if entry != nil {
		var cached T
		if err := json.Unmarshal(entry.Data, &cached); err != nil {
			rt.log.Warn("Discarding undecodable cache entry",
				slog.String("key", key), slog.String("error", err.Error()))
		} else {
			if !fresh {
				rt.startRefresh(ctx, key, func(ctx context.Context) {
					if _, err := fetchAndStore(ctx, rt, key, fetch); err != nil {
						rt.log.Warn("Background refresh failed",
							slog.String("key", key), slog.String("error", err.Error()))
					}
				})
			}
			return cached, nil
		}
	}

	value, err := fetchAndStore(ctx, rt, key, fetch)
	if err != nil {
		return zero, err
	}
	return value, nil
}

// QueryUncached always fetches. Used for conflict checks, which have a
// zero staleness window by contract.
func QueryUncached[T any](ctx context.Context, _ *Runtime, fetch Fetcher[T]) (T, error) {
	return fetch(ctx)
}

// Mutate runs a write operation and invalidates the affected resources
// before reporting success, so a read issued from the completion path can
// never observe pre-mutation data. Errors pass through untouched; the
// caller decides presentation.
func Mutate[T any](ctx context.Context, rt *Runtime, invalidates []string, op Fetcher[T]) (T, error) {
	var zero T

	value, err := op(ctx)
	if err != nil {
		return zero, err
	}

	rt.Invalidate(ctx, invalidates...)
	return value, nil
}

func fetchAndStore[T any](ctx context.Context, rt *Runtime, key string, fetch Fetcher[T]) (T, error) {
	var zero T

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal %q for cache: %w", key, err)
	}
	rt.cache.Put(ctx, key, data, time.Now())

	return value, nil
}
