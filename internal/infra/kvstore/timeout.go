package kvstore

import (
	"context"
	"errors"
	"time"

	"parkingbot/internal/infra"
	"parkingbot/internal/usecase/shared"
)

// WithTimeout bounds every call on next by d. A non-positive d returns next unchanged.
func WithTimeout(next shared.KeyValueStore, d time.Duration) shared.KeyValueStore {
	if d <= 0 {
		return next
	}
	return &timeoutStore{next: next, timeout: d}
}

type timeoutStore struct {
	next    shared.KeyValueStore
	timeout time.Duration
}

func (t *timeoutStore) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	value, found, err := t.next.Get(ctx, key)
	return value, found, classify(err, "get "+key)
}

func (t *timeoutStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return classify(t.next.Set(ctx, key, value, ttl), "set "+key)
}

func (t *timeoutStore) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	ok, err := t.next.SetIfAbsent(ctx, key, value, ttl)
	return ok, classify(err, "set-if-absent "+key)
}

func (t *timeoutStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return classify(t.next.Delete(ctx, key), "delete "+key)
}

func (t *timeoutStore) DeleteIfEquals(ctx context.Context, key, value string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	ok, err := t.next.DeleteIfEquals(ctx, key, value)
	return ok, classify(err, "delete-if-equals "+key)
}

func (t *timeoutStore) Scan(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	keys, err := t.next.Scan(ctx, prefix)
	return keys, classify(err, "scan "+prefix)
}

func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && !infra.IsKind(err, infra.KindTimeout) {
		return infra.WrapStoreErr(infra.KindTimeout, op+" timed out", err)
	}
	return err
}
