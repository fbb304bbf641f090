package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const markerKeyPrefix = "checkout:inflight:"

// MarkerStore records that a payment redirect is in flight for a browsing
// session. The marker must outlive the round trip to the gateway but not a
// fresh visit, so it carries a bounded TTL as a backstop for sessions that
// never come back.
type MarkerStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMarkerStore(client *redis.Client, ttl time.Duration) *MarkerStore {
	return &MarkerStore{client: client, ttl: ttl}
}

func (s *MarkerStore) Set(ctx context.Context, sid string) error {
	if err := s.client.Set(ctx, markerKeyPrefix+sid, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("set checkout marker: %w", err)
	}
	return nil
}

// Clear removes the marker and reports whether it was set, so a single caller
// observes each in-flight checkout at most once.
func (s *MarkerStore) Clear(ctx context.Context, sid string) (bool, error) {
	removed, err := s.client.Del(ctx, markerKeyPrefix+sid).Result()
	if err != nil {
		return false, fmt.Errorf("clear checkout marker: %w", err)
	}
	return removed > 0, nil
}
