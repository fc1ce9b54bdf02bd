package finance

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	tenantID := uuid.New()
	currencyID := uuid.New()

	t.Run("valid account", func(t *testing.T) {
		acc, err := NewAccount(tenantID, "Banco Nación", AccountTypeBank, currencyID, valueobject.ARS)
		require.NoError(t, err)
		assert.Equal(t, "Banco Nación", acc.Name)
		assert.Equal(t, AccountTypeBank, acc.Type)
		assert.True(t, acc.Active)
		assert.True(t, acc.ZeroBalance().IsZero())
	})

	tests := []struct {
		name        string
		accountName string
		accType     AccountType
		currencyID  uuid.UUID
		currency    valueobject.Currency
	}{
		{"empty name", "", AccountTypeCash, currencyID, valueobject.ARS},
		{"name too long", strings.Repeat("a", 101), AccountTypeCash, currencyID, valueobject.ARS},
		{"invalid type", "Caja", AccountType("SOCK_DRAWER"), currencyID, valueobject.ARS},
		{"nil currency id", "Caja", AccountTypeCash, uuid.Nil, valueobject.ARS},
		{"empty currency code", "Caja", AccountTypeCash, currencyID, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAccount(tenantID, tt.accountName, tt.accType, tt.currencyID, tt.currency)
			assert.Error(t, err)
		})
	}
}

func TestAccount_Lifecycle(t *testing.T) {
	acc, err := NewAccount(uuid.New(), "Mercado Pago", AccountTypeDigitalWallet, uuid.New(), valueobject.ARS)
	require.NoError(t, err)

	acc.Deactivate()
	assert.False(t, acc.Active)

	acc.Activate()
	assert.True(t, acc.Active)

	require.NoError(t, acc.Rename("MP Personal"))
	assert.Equal(t, "MP Personal", acc.Name)
	assert.Error(t, acc.Rename(""))

	acc.SetRemark("cuenta principal")
	assert.Equal(t, "cuenta principal", acc.Remark)
}
