package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestContract(t *testing.T) *Contract {
	c, err := NewContract(
		uuid.New(),
		"CT-2024-001",
		uuid.New(),
		TenantRefs{uuid.New()},
		uuid.New(),
		valueobject.ARS,
		date(2024, time.January, 15),
		date(2024, time.June, 15),
		ars(600),
		false,
	)
	require.NoError(t, err)
	return c
}

func createMaintenanceContract(t *testing.T) *Contract {
	c, err := NewContract(
		uuid.New(),
		"CT-2024-M01",
		uuid.New(),
		TenantRefs{uuid.New()},
		uuid.New(),
		valueobject.ARS,
		date(2024, time.January, 1),
		date(2024, time.December, 31),
		valueobject.Zero(valueobject.ARS),
		true,
	)
	require.NoError(t, err)
	return c
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var derr *shared.DomainError
	require.True(t, errors.As(err, &derr), "expected DomainError, got %v", err)
	assert.Equal(t, code, derr.Code)
}

func TestNewContract(t *testing.T) {
	t.Run("creates rental contract with schedule", func(t *testing.T) {
		c := createTestContract(t)
		assert.Len(t, c.Installments, 6)
		assert.True(t, c.Installments.TotalAmount().Equal(decimal.NewFromInt(600)))
		assert.Equal(t, 1, c.Version)
		assert.Len(t, c.GetDomainEvents(), 1)
		assert.Equal(t, "ContractCreated", c.GetDomainEvents()[0].EventType())
	})

	t.Run("maintenance contract has empty schedule", func(t *testing.T) {
		c := createMaintenanceContract(t)
		assert.Empty(t, c.Installments)
	})

	t.Run("requires at least one tenant", func(t *testing.T) {
		_, err := NewContract(uuid.New(), "CT-1", uuid.New(), TenantRefs{}, uuid.New(),
			valueobject.ARS, date(2024, time.January, 1), date(2024, time.June, 1), ars(100), false)
		assertDomainErrorCode(t, err, "INVALID_TENANTS")
	})

	t.Run("rejects nil tenant reference", func(t *testing.T) {
		_, err := NewContract(uuid.New(), "CT-1", uuid.New(), TenantRefs{uuid.Nil}, uuid.New(),
			valueobject.ARS, date(2024, time.January, 1), date(2024, time.June, 1), ars(100), false)
		assertDomainErrorCode(t, err, "INVALID_TENANTS")
	})

	t.Run("rejects empty contract number", func(t *testing.T) {
		_, err := NewContract(uuid.New(), "", uuid.New(), TenantRefs{uuid.New()}, uuid.New(),
			valueobject.ARS, date(2024, time.January, 1), date(2024, time.June, 1), ars(100), false)
		assertDomainErrorCode(t, err, "INVALID_CONTRACT_NUMBER")
	})

	t.Run("rejects invalid range", func(t *testing.T) {
		_, err := NewContract(uuid.New(), "CT-1", uuid.New(), TenantRefs{uuid.New()}, uuid.New(),
			valueobject.ARS, date(2024, time.June, 1), date(2024, time.January, 1), ars(100), false)
		assertDomainErrorCode(t, err, "INVALID_RANGE")
	})

	t.Run("rejects non positive price", func(t *testing.T) {
		_, err := NewContract(uuid.New(), "CT-1", uuid.New(), TenantRefs{uuid.New()}, uuid.New(),
			valueobject.ARS, date(2024, time.January, 1), date(2024, time.June, 1), ars(0), false)
		assertDomainErrorCode(t, err, "INVALID_AMOUNT")
	})
}

func TestContract_EffectiveStatus(t *testing.T) {
	c := createTestContract(t)

	t.Run("natural status without override", func(t *testing.T) {
		assert.Equal(t, StatusPlaneado, c.EffectiveStatus(date(2024, time.January, 1)))
		assert.Equal(t, StatusActivo, c.EffectiveStatus(date(2024, time.March, 1)))
		assert.Equal(t, StatusFinalizado, c.EffectiveStatus(date(2024, time.July, 1)))
	})

	t.Run("override wins over natural status", func(t *testing.T) {
		require.NoError(t, c.Suspend("impago", "admin"))
		assert.Equal(t, StatusSuspendido, c.EffectiveStatus(date(2024, time.March, 1)))
		// natural status is still computable underneath
		assert.Equal(t, StatusActivo, c.NaturalStatus(date(2024, time.March, 1)))
	})
}

func TestContract_Suspend(t *testing.T) {
	t.Run("requires reason", func(t *testing.T) {
		c := createTestContract(t)
		assertDomainErrorCode(t, c.Suspend("", "admin"), "INVALID_REASON")
	})

	t.Run("suspend then reactivate restores natural status", func(t *testing.T) {
		c := createTestContract(t)
		require.NoError(t, c.Suspend("obras", "admin"))
		require.NotNil(t, c.Override)

		require.NoError(t, c.Reactivate())
		assert.Nil(t, c.Override)
		assert.Equal(t, StatusActivo, c.EffectiveStatus(date(2024, time.March, 1)))
	})
}

func TestContract_Finalize(t *testing.T) {
	c := createTestContract(t)
	require.NoError(t, c.Finalize("admin"))
	assert.Equal(t, StatusFinalizado, c.EffectiveStatus(date(2024, time.March, 1)))

	t.Run("cannot finalize twice", func(t *testing.T) {
		assertDomainErrorCode(t, c.Finalize("admin"), "INVALID_STATE")
	})
}

func TestContract_Cancel(t *testing.T) {
	t.Run("cancels unpaid contract", func(t *testing.T) {
		c := createTestContract(t)
		require.NoError(t, c.Cancel("desistimiento", "admin"))
		assert.Equal(t, StatusCancelado, c.EffectiveStatus(date(2024, time.March, 1)))
	})

	t.Run("cannot cancel with paid installments", func(t *testing.T) {
		c := createTestContract(t)
		require.NoError(t, c.MarkInstallmentPaid(1, date(2024, time.January, 20), uuid.New()))
		assertDomainErrorCode(t, c.Cancel("desistimiento", "admin"), "HAS_PAYMENTS")
	})

	t.Run("cancelled contract cannot be reactivated", func(t *testing.T) {
		c := createTestContract(t)
		require.NoError(t, c.Cancel("desistimiento", "admin"))
		assertDomainErrorCode(t, c.Reactivate(), "INVALID_STATE")
	})
}

func TestContract_Reactivate_WithoutOverride(t *testing.T) {
	c := createTestContract(t)
	assertDomainErrorCode(t, c.Reactivate(), "INVALID_STATE")
}

func TestContract_MarkInstallmentPaid(t *testing.T) {
	t.Run("marks installment and links transaction", func(t *testing.T) {
		c := createTestContract(t)
		txID := uuid.New()
		paidAt := date(2024, time.January, 20)

		require.NoError(t, c.MarkInstallmentPaid(1, paidAt, txID))

		assert.True(t, c.Installments[0].Paid)
		require.NotNil(t, c.Installments[0].PaidAt)
		assert.Equal(t, paidAt, *c.Installments[0].PaidAt)
		require.NotNil(t, c.Installments[0].TransactionID)
		assert.Equal(t, txID, *c.Installments[0].TransactionID)
		assert.Equal(t, 2, c.Version)
	})

	t.Run("rejects unknown sequence", func(t *testing.T) {
		c := createTestContract(t)
		assertDomainErrorCode(t, c.MarkInstallmentPaid(99, time.Now(), uuid.New()), "INVALID_INSTALLMENT")
	})

	t.Run("rejects double payment", func(t *testing.T) {
		c := createTestContract(t)
		require.NoError(t, c.MarkInstallmentPaid(2, time.Now(), uuid.New()))
		assertDomainErrorCode(t, c.MarkInstallmentPaid(2, time.Now(), uuid.New()), "ALREADY_PAID")
	})

	t.Run("rejects payment on cancelled contract", func(t *testing.T) {
		c := createTestContract(t)
		require.NoError(t, c.Cancel("desistimiento", "admin"))
		assertDomainErrorCode(t, c.MarkInstallmentPaid(1, time.Now(), uuid.New()), "INVALID_STATE")
	})
}

func TestContract_Renew(t *testing.T) {
	t.Run("extends schedule and total", func(t *testing.T) {
		c := createTestContract(t) // Jan 15 - Jun 15, 600, 6 installments
		require.NoError(t, c.Renew(date(2024, time.September, 15), ars(300)))

		assert.Equal(t, date(2024, time.September, 15), c.EndDate)
		assert.True(t, c.TotalPrice.Equal(decimal.NewFromInt(900)))
		require.Len(t, c.Installments, 9)

		// extension keeps the original due day and continues the sequence
		assert.Equal(t, 7, c.Installments[6].Seq)
		assert.Equal(t, date(2024, time.July, 15), c.Installments[6].DueDate)
		assert.Equal(t, date(2024, time.September, 15), c.Installments[8].DueDate)
		assert.True(t, c.Installments.TotalAmount().Equal(decimal.NewFromInt(900)))
	})

	t.Run("clears suspension override", func(t *testing.T) {
		c := createTestContract(t)
		require.NoError(t, c.Suspend("impago", "admin"))
		require.NoError(t, c.Renew(date(2024, time.December, 15), ars(600)))
		assert.Nil(t, c.Override)
	})

	t.Run("rejects end date not after current end", func(t *testing.T) {
		c := createTestContract(t)
		assertDomainErrorCode(t, c.Renew(date(2024, time.June, 15), ars(100)), "INVALID_RANGE")
	})

	t.Run("rejects currency mismatch", func(t *testing.T) {
		c := createTestContract(t)
		usd, _ := valueobject.NewMoneyFromFloat(100, valueobject.USD)
		assertDomainErrorCode(t, c.Renew(date(2024, time.December, 15), usd), "CURRENCY_MISMATCH")
	})

	t.Run("cancelled contract cannot be renewed", func(t *testing.T) {
		c := createTestContract(t)
		require.NoError(t, c.Cancel("desistimiento", "admin"))
		assertDomainErrorCode(t, c.Renew(date(2024, time.December, 15), ars(100)), "INVALID_STATE")
	})

	t.Run("maintenance renewal moves end date only", func(t *testing.T) {
		c := createMaintenanceContract(t)
		require.NoError(t, c.Renew(date(2025, time.June, 30), valueobject.Zero(valueobject.ARS)))
		assert.Equal(t, date(2025, time.June, 30), c.EndDate)
		assert.Empty(t, c.Installments)
	})
}

func TestContract_ReplaceSchedule(t *testing.T) {
	t.Run("accepts edited schedule", func(t *testing.T) {
		c := createTestContract(t)
		edited := make(Installments, len(c.Installments))
		copy(edited, c.Installments)
		edited[0].Amount = decimal.NewFromFloat(101)
		edited[5].Amount = decimal.NewFromFloat(99)

		require.NoError(t, c.ReplaceSchedule(edited))
		assert.Equal(t, "101", c.Installments[0].Amount.String())
	})

	t.Run("rejected once an installment is paid", func(t *testing.T) {
		c := createTestContract(t)
		require.NoError(t, c.MarkInstallmentPaid(1, time.Now(), uuid.New()))
		assertDomainErrorCode(t, c.ReplaceSchedule(c.Installments), "INVALID_STATE")
	})

	t.Run("rejected on maintenance contract", func(t *testing.T) {
		c := createMaintenanceContract(t)
		assertDomainErrorCode(t, c.ReplaceSchedule(Installments{}), "INVALID_STATE")
	})
}
