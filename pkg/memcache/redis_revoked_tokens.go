package mem

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "nps:revoked_jti:"

type RedisRevokedTokens struct {
	client *redis.Client
}

// NewRedisRevokedTokens shares revocations between replicas. Keys expire
// together with the token they describe.
func NewRedisRevokedTokens(client *redis.Client) *RedisRevokedTokens {
	return &RedisRevokedTokens{client: client}
}

func (s *RedisRevokedTokens) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

func (s *RedisRevokedTokens) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("checking revoked token: %w", err)
	}
	return n > 0, nil
}
