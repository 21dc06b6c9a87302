package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bizboard/backoffice/internal/core/domain"
)

// RefreshTokenStore is the Redis-backed allowlist of live refresh tokens.
// Key format: refresh:<jti> → userID, expiring with the refresh lifetime.
type RefreshTokenStore struct {
	client *redis.Client
}

func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

// Save admits a freshly issued refresh token.
func (s *RefreshTokenStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(jti), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Swap is the rotation primitive: the old jti is consumed and the new one
// admitted. A missing old entry means the token was already used or revoked,
// which must end the session.
func (s *RefreshTokenStore) Swap(ctx context.Context, oldJTI, newJTI, userID string, ttl time.Duration) error {
	owner, err := s.client.GetDel(ctx, s.key(oldJTI)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrUnauthenticated
		}
		return fmt.Errorf("consume refresh token: %w", err)
	}
	if owner != userID {
		return domain.ErrUnauthenticated
	}
	return s.Save(ctx, newJTI, userID, ttl)
}

// Revoke drops the allowlist entry. Deleting a missing key is not an error,
// so revocation is idempotent.
func (s *RefreshTokenStore) Revoke(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, s.key(jti)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) key(jti string) string {
	return "refresh:" + jti
}
