package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "session:token:"

// TokenStore keeps the bearer token for each browsing session under a TTL'd
// key. The TTL matches the session lifetime so stale tokens expire on their
// own instead of accumulating.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

func (s *TokenStore) Save(ctx context.Context, sid, token string) error {
	if err := s.client.Set(ctx, tokenKeyPrefix+sid, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	return nil
}

// Load returns the stored token, or the empty string when none is installed.
func (s *TokenStore) Load(ctx context.Context, sid string) (string, error) {
	token, err := s.client.Get(ctx, tokenKeyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load session token: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, tokenKeyPrefix+sid).Err(); err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}
