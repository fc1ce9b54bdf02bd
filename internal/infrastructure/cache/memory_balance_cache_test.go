package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBalance(accountID uuid.UUID) finance.AccountBalance {
	return finance.AccountBalance{
		AccountID:   accountID,
		AccountName: "Banco Nacion",
		Currency:    valueobject.Currency("ARS"),
		PaidIncome:  decimal.NewFromInt(150000),
		PaidExpense: decimal.NewFromInt(42000),
		TotalPaid:   decimal.NewFromInt(108000),
	}
}

func TestInMemoryBalanceCache_GetSet(t *testing.T) {
	cache := NewInMemoryBalanceCache()
	defer cache.Close()

	ctx := context.Background()
	tenantID := uuid.New()
	accountID := uuid.New()

	t.Run("miss returns nil without error", func(t *testing.T) {
		got, err := cache.Get(ctx, tenantID, accountID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get returns the balance", func(t *testing.T) {
		balance := newTestBalance(accountID)
		require.NoError(t, cache.Set(ctx, tenantID, balance, time.Minute))

		got, err := cache.Get(ctx, tenantID, accountID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, accountID, got.AccountID)
		assert.True(t, got.TotalPaid.Equal(decimal.NewFromInt(108000)))
	})

	t.Run("entries are scoped per tenant", func(t *testing.T) {
		otherTenant := uuid.New()
		got, err := cache.Get(ctx, otherTenant, accountID)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		shortLived := uuid.New()
		require.NoError(t, cache.Set(ctx, tenantID, newTestBalance(shortLived), time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		got, err := cache.Get(ctx, tenantID, shortLived)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestInMemoryBalanceCache_Invalidate(t *testing.T) {
	cache := NewInMemoryBalanceCache()
	defer cache.Close()

	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("invalidate removes a single account", func(t *testing.T) {
		accountID := uuid.New()
		otherID := uuid.New()
		require.NoError(t, cache.Set(ctx, tenantID, newTestBalance(accountID), time.Minute))
		require.NoError(t, cache.Set(ctx, tenantID, newTestBalance(otherID), time.Minute))

		require.NoError(t, cache.Invalidate(ctx, tenantID, accountID))

		got, err := cache.Get(ctx, tenantID, accountID)
		assert.NoError(t, err)
		assert.Nil(t, got)

		kept, err := cache.Get(ctx, tenantID, otherID)
		assert.NoError(t, err)
		assert.NotNil(t, kept)
	})

	t.Run("invalidate tenant clears only that tenant", func(t *testing.T) {
		otherTenant := uuid.New()
		a := uuid.New()
		b := uuid.New()
		require.NoError(t, cache.Set(ctx, tenantID, newTestBalance(a), time.Minute))
		require.NoError(t, cache.Set(ctx, otherTenant, newTestBalance(b), time.Minute))

		require.NoError(t, cache.InvalidateTenant(ctx, tenantID))

		got, err := cache.Get(ctx, tenantID, a)
		assert.NoError(t, err)
		assert.Nil(t, got)

		kept, err := cache.Get(ctx, otherTenant, b)
		assert.NoError(t, err)
		assert.NotNil(t, kept)
	})
}
