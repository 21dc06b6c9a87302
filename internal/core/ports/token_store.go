package ports

import (
	"context"
	"time"
)

// RefreshTokenStore is the allowlist of live refresh tokens, keyed by jti.
// A refresh token is valid only while its jti is present; Swap is the
// rotation primitive, removing the old entry and admitting the new one so a
// replayed token fails.
type RefreshTokenStore interface {
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	Swap(ctx context.Context, oldJTI, newJTI, userID string, ttl time.Duration) error
	Revoke(ctx context.Context, jti string) error
}
