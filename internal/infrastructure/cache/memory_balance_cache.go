package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryBalanceCache implements finance.BalanceCache with process-local
// storage. Useful for tests and single-instance deployments where Redis
// is not available.
type InMemoryBalanceCache struct {
	entries    sync.Map // map[string]*balanceEntry
	defaultTTL time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
}

type balanceEntry struct {
	balance   finance.AccountBalance
	expiresAt time.Time
}

func (e *balanceEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryBalanceCache creates a new in-memory balance cache
func NewInMemoryBalanceCache() *InMemoryBalanceCache {
	cache := &InMemoryBalanceCache{
		defaultTTL: defaultBalanceTTL,
		stopCh:     make(chan struct{}),
	}

	go cache.cleanupExpired()

	return cache
}

func (c *InMemoryBalanceCache) key(tenantID, accountID uuid.UUID) string {
	return tenantID.String() + ":" + accountID.String()
}

// Get retrieves a cached account balance, nil on miss
func (c *InMemoryBalanceCache) Get(_ context.Context, tenantID, accountID uuid.UUID) (*finance.AccountBalance, error) {
	value, ok := c.entries.Load(c.key(tenantID, accountID))
	if !ok {
		return nil, nil
	}

	entry := value.(*balanceEntry)
	if entry.isExpired() {
		c.entries.Delete(c.key(tenantID, accountID))
		return nil, nil
	}

	balance := entry.balance
	return &balance, nil
}

// Set stores an account balance
func (c *InMemoryBalanceCache) Set(_ context.Context, tenantID uuid.UUID, balance finance.AccountBalance, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	c.entries.Store(c.key(tenantID, balance.AccountID), &balanceEntry{
		balance:   balance,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Invalidate removes a single account's cached balance
func (c *InMemoryBalanceCache) Invalidate(_ context.Context, tenantID, accountID uuid.UUID) error {
	c.entries.Delete(c.key(tenantID, accountID))
	return nil
}

// InvalidateTenant removes every cached balance for a tenant
func (c *InMemoryBalanceCache) InvalidateTenant(_ context.Context, tenantID uuid.UUID) error {
	prefix := tenantID.String() + ":"
	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
		}
		return true
	})
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryBalanceCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	return nil
}

func (c *InMemoryBalanceCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*balanceEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}
