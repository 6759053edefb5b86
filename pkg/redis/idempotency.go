package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// pendingMarker is stored while the first request holding a key is still running
const pendingMarker = "\x00pending"

// IdempotencyStore keeps one value per key: the pending marker, then the committed payload.
// The marker lives for pendingTTL only, so a request that dies before Commit frees its key.
type IdempotencyStore struct {
	client     *redis.Client
	prefix     string
	ttl        time.Duration
	pendingTTL time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl, pendingTTL time.Duration) *IdempotencyStore {
	if pendingTTL <= 0 || pendingTTL > ttl {
		pendingTTL = ttl
	}
	return &IdempotencyStore{client: client, prefix: "idem:", ttl: ttl, pendingTTL: pendingTTL}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, pendingMarker, s.pendingTTL).Result()
	if err != nil {
		return false, fmt.Errorf("redis idempotency reserve: %w", err)
	}
	return ok, nil
}

func (s *IdempotencyStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis idempotency load: %w", err)
	}
	if string(val) == pendingMarker {
		return nil, false, nil
	}
	return val, true, nil
}

func (s *IdempotencyStore) Commit(ctx context.Context, key string, payload []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis idempotency commit: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis idempotency release: %w", err)
	}
	return nil
}
