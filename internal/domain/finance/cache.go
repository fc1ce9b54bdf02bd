package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BalanceCache stores computed account balance snapshots. Get returns
// (nil, nil) on a cache miss; implementations must treat cache failures
// as misses rather than surfacing them to callers.
type BalanceCache interface {
	Get(ctx context.Context, tenantID, accountID uuid.UUID) (*AccountBalance, error)
	Set(ctx context.Context, tenantID uuid.UUID, balance AccountBalance, ttl time.Duration) error
	Invalidate(ctx context.Context, tenantID, accountID uuid.UUID) error
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error
}
