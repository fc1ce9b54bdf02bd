package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultScanBatchSize = 100
	defaultBalanceTTL    = 5 * time.Minute
)

// RedisConfig holds connection settings for the Redis cache
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisBalanceCache implements finance.BalanceCache using Redis
type RedisBalanceCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	defaultTTL time.Duration
	logger     *zap.Logger
}

// RedisBalanceCacheOption is a functional option for configuring the cache
type RedisBalanceCacheOption func(*RedisBalanceCache)

// WithBalanceTTL sets the TTL applied when Set is called with a zero TTL
func WithBalanceTTL(ttl time.Duration) RedisBalanceCacheOption {
	return func(c *RedisBalanceCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisBalanceCacheOption {
	return func(c *RedisBalanceCache) {
		c.logger = logger
	}
}

// NewRedisBalanceCache creates a new Redis-based balance cache
func NewRedisBalanceCache(cfg RedisConfig, opts ...RedisBalanceCacheOption) (*RedisBalanceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisBalanceCache{
		client:     client,
		ownsClient: true,
		defaultTTL: defaultBalanceTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisBalanceCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisBalanceCacheWithClient(client *redis.Client, opts ...RedisBalanceCacheOption) *RedisBalanceCache {
	cache := &RedisBalanceCache{
		client:     client,
		ownsClient: false,
		defaultTTL: defaultBalanceTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *RedisBalanceCache) balanceKey(tenantID, accountID uuid.UUID) string {
	return fmt.Sprintf("balance:%s:%s", tenantID.String(), accountID.String())
}

func (c *RedisBalanceCache) tenantPattern(tenantID uuid.UUID) string {
	return fmt.Sprintf("balance:%s:*", tenantID.String())
}

// Get retrieves a cached account balance. Redis failures and corrupted
// entries are treated as misses so the caller falls back to recomputing.
func (c *RedisBalanceCache) Get(ctx context.Context, tenantID, accountID uuid.UUID) (*finance.AccountBalance, error) {
	cacheKey := c.balanceKey(tenantID, accountID)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for account balance",
			zap.String("account_id", accountID.String()))
		return nil, nil
	}
	if err != nil {
		c.logger.Warn("Failed to get account balance from cache",
			zap.String("account_id", accountID.String()),
			zap.Error(err))
		return nil, nil
	}

	var balance finance.AccountBalance
	if err := json.Unmarshal(data, &balance); err != nil {
		c.logger.Warn("Failed to unmarshal cached balance, dropping entry",
			zap.String("account_id", accountID.String()),
			zap.Error(err))
		_ = c.client.Del(ctx, cacheKey)
		return nil, nil
	}

	c.logger.Debug("Cache hit for account balance",
		zap.String("account_id", accountID.String()))
	return &balance, nil
}

// Set stores an account balance in cache
func (c *RedisBalanceCache) Set(ctx context.Context, tenantID uuid.UUID, balance finance.AccountBalance, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	cacheKey := c.balanceKey(tenantID, balance.AccountID)

	data, err := json.Marshal(balance)
	if err != nil {
		c.logger.Error("Failed to marshal account balance",
			zap.String("account_id", balance.AccountID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to marshal balance: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set account balance in cache",
			zap.String("account_id", balance.AccountID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to set balance in cache: %w", err)
	}

	c.logger.Debug("Cached account balance",
		zap.String("account_id", balance.AccountID.String()),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes a single account's cached balance
func (c *RedisBalanceCache) Invalidate(ctx context.Context, tenantID, accountID uuid.UUID) error {
	cacheKey := c.balanceKey(tenantID, accountID)

	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("Failed to invalidate account balance",
			zap.String("account_id", accountID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to invalidate balance: %w", err)
	}
	return nil
}

// InvalidateTenant removes every cached balance for a tenant
func (c *RedisBalanceCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, c.tenantPattern(tenantID), defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan balance keys", zap.Error(err))
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete balance keys", zap.Error(err))
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("Invalidated tenant balances",
		zap.String("tenant_id", tenantID.String()),
		zap.Int64("deleted", deletedCount))
	return nil
}

// Close releases any resources held by the cache
func (c *RedisBalanceCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
