package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ars(t *testing.T, amount float64) valueobject.Money {
	t.Helper()
	return valueobject.NewMoneyARSFromFloat(amount)
}

func TestNewTransaction(t *testing.T) {
	tenantID := uuid.New()
	accountID := uuid.New()

	t.Run("valid income", func(t *testing.T) {
		tx, err := NewTransaction(tenantID, accountID, valueobject.ARS,
			TransactionTypeIncome, TransactionStatusPaid, ars(t, 1500.50),
			"Alquiler enero", date(2024, time.January, 5), nil)

		require.NoError(t, err)
		assert.Equal(t, tenantID, tx.TenantID)
		assert.Equal(t, valueobject.ARS, tx.Currency)
		assert.True(t, tx.Amount.Equal(decimal.NewFromFloat(1500.50)))
		assert.Equal(t, date(2024, time.January, 5), tx.Date)
		assert.Len(t, tx.GetDomainEvents(), 1)
	})

	t.Run("rejects currency mismatch with account", func(t *testing.T) {
		usd, err := valueobject.NewMoneyFromFloat(100, valueobject.USD)
		require.NoError(t, err)

		_, err = NewTransaction(tenantID, accountID, valueobject.ARS,
			TransactionTypeIncome, TransactionStatusPaid, usd,
			"", date(2024, time.January, 5), nil)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CURRENCY_MISMATCH", domainErr.Code)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewTransaction(tenantID, accountID, valueobject.ARS,
			TransactionTypeExpense, TransactionStatusPaid, valueobject.Zero(valueobject.ARS),
			"", date(2024, time.January, 5), nil)
		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	})

	t.Run("rejects empty account", func(t *testing.T) {
		_, err := NewTransaction(tenantID, uuid.Nil, valueobject.ARS,
			TransactionTypeIncome, TransactionStatusPaid, ars(t, 100),
			"", date(2024, time.January, 5), nil)
		assert.Error(t, err)
	})

	t.Run("date is normalized to midnight", func(t *testing.T) {
		tx, err := NewTransaction(tenantID, accountID, valueobject.ARS,
			TransactionTypeIncome, TransactionStatusPaid, ars(t, 100),
			"", time.Date(2024, time.March, 10, 17, 45, 3, 0, time.UTC), nil)
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.March, 10), tx.Date)
	})
}

func TestTransaction_MarkPaid(t *testing.T) {
	tenantID := uuid.New()
	accountID := uuid.New()

	tx, err := NewTransaction(tenantID, accountID, valueobject.ARS,
		TransactionTypeIncome, TransactionStatusPending, ars(t, 200),
		"Expensas", date(2024, time.April, 1), nil)
	require.NoError(t, err)

	require.NoError(t, tx.MarkPaid(date(2024, time.April, 12)))
	assert.Equal(t, TransactionStatusPaid, tx.Status)
	assert.Equal(t, date(2024, time.April, 12), tx.Date)

	err = tx.MarkPaid(date(2024, time.April, 13))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_PAID", domainErr.Code)
}

func TestTransaction_SignedAmount(t *testing.T) {
	tenantID := uuid.New()
	accountID := uuid.New()

	income, err := NewTransaction(tenantID, accountID, valueobject.ARS,
		TransactionTypeIncome, TransactionStatusPaid, ars(t, 100),
		"", date(2024, time.January, 1), nil)
	require.NoError(t, err)
	assert.True(t, income.SignedAmount().Equal(decimal.NewFromInt(100)))

	expense, err := NewTransaction(tenantID, accountID, valueobject.ARS,
		TransactionTypeExpense, TransactionStatusPaid, ars(t, 100),
		"", date(2024, time.January, 1), nil)
	require.NoError(t, err)
	assert.True(t, expense.SignedAmount().Equal(decimal.NewFromInt(-100)))
}

func TestTransaction_LinkContract(t *testing.T) {
	tx, err := NewTransaction(uuid.New(), uuid.New(), valueobject.ARS,
		TransactionTypeIncome, TransactionStatusPaid, ars(t, 100),
		"", date(2024, time.January, 1), nil)
	require.NoError(t, err)

	assert.Error(t, tx.LinkContract(uuid.Nil))

	contractID := uuid.New()
	require.NoError(t, tx.LinkContract(contractID))
	require.NotNil(t, tx.ContractID)
	assert.Equal(t, contractID, *tx.ContractID)
}
