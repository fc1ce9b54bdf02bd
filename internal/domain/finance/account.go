package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
)

// AccountType classifies where an account's money lives
type AccountType string

const (
	AccountTypeCash          AccountType = "CASH"
	AccountTypeBank          AccountType = "BANK"
	AccountTypeDigitalWallet AccountType = "DIGITAL_WALLET"
	AccountTypeCrypto        AccountType = "CRYPTO"
	AccountTypeOther         AccountType = "OTHER"
)

// IsValid checks if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeDigitalWallet,
		AccountTypeCrypto, AccountTypeOther:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// Account represents a named money-holding entity denominated in exactly
// one currency. Balances are always computed from transactions, never
// stored, so they cannot diverge.
type Account struct {
	shared.TenantAggregateRoot
	Name       string               `json:"name"`
	Type       AccountType          `json:"type"`
	CurrencyID uuid.UUID            `json:"currency_id"`
	Currency   valueobject.Currency `json:"currency"` // Denormalized code for Money tagging
	Active     bool                 `json:"active"`
	Remark     string               `json:"remark,omitempty"`
}

// NewAccount creates a new account
func NewAccount(tenantID uuid.UUID, name string, accountType AccountType, currencyID uuid.UUID, currency valueobject.Currency) (*Account, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot exceed 100 characters")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}
	if currencyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency ID cannot be empty")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code cannot be empty")
	}

	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Type:                accountType,
		CurrencyID:          currencyID,
		Currency:            currency,
		Active:              true,
	}, nil
}

// Rename updates the account display name
func (a *Account) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	a.Name = name
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Deactivate hides the account from new transactions without deleting its history
func (a *Account) Deactivate() {
	a.Active = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Activate re-enables the account
func (a *Account) Activate() {
	a.Active = true
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// SetRemark sets the remark
func (a *Account) SetRemark(remark string) {
	a.Remark = remark
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// ZeroBalance returns a zero Money in the account's currency
func (a *Account) ZeroBalance() valueobject.Money {
	return valueobject.Zero(a.Currency)
}
