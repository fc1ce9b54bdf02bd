package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// TransactionStatus tracks whether a transaction has settled
type TransactionStatus string

const (
	TransactionStatusPaid    TransactionStatus = "PAID"
	TransactionStatusPending TransactionStatus = "PENDING"
)

// IsValid checks if the transaction status is valid
func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusPaid || s == TransactionStatusPending
}

// Transaction represents a single money movement on an account, optionally
// linked to the contract installment it settles.
type Transaction struct {
	shared.TenantAggregateRoot
	AccountID   uuid.UUID            `json:"account_id"`
	Currency    valueobject.Currency `json:"currency"` // Denormalized from the account at creation
	Type        TransactionType      `json:"type"`
	Status      TransactionStatus    `json:"status"`
	Amount      decimal.Decimal      `json:"amount"` // Always positive; sign comes from Type
	Description string               `json:"description"`
	Date        time.Time            `json:"date"`
	ContractID  *uuid.UUID           `json:"contract_id,omitempty"`
}

// NewTransaction creates a new transaction
func NewTransaction(
	tenantID uuid.UUID,
	accountID uuid.UUID,
	currency valueobject.Currency,
	txType TransactionType,
	status TransactionStatus,
	amount valueobject.Money,
	description string,
	date time.Time,
	contractID *uuid.UUID,
) (*Transaction, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Transaction type is not valid")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_STATUS", "Transaction status is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if currency != "" && amount.Currency() != currency {
		return nil, shared.NewDomainError("CURRENCY_MISMATCH", "Transaction amount must be in the account currency")
	}

	tx := &Transaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AccountID:           accountID,
		Currency:            amount.Currency(),
		Type:                txType,
		Status:              status,
		Amount:              amount.Amount(),
		Description:         description,
		Date:                valueobject.DateOnly(date),
		ContractID:          contractID,
	}

	tx.AddDomainEvent(NewTransactionRecordedEvent(tx))

	return tx, nil
}

// MarkPaid settles a pending transaction
func (t *Transaction) MarkPaid(settledAt time.Time) error {
	if t.Status == TransactionStatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Transaction is already settled")
	}
	t.Status = TransactionStatusPaid
	t.Date = valueobject.DateOnly(settledAt)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTransactionSettledEvent(t))

	return nil
}

// SignedAmount returns the amount with the sign implied by the type:
// positive for income, negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// GetAmountMoney returns the amount as Money in the transaction currency
func (t *Transaction) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(t.Amount, t.Currency)
	return m
}

// LinkContract associates the transaction with a contract
func (t *Transaction) LinkContract(contractID uuid.UUID) error {
	if contractID == uuid.Nil {
		return shared.NewDomainError("INVALID_CONTRACT", "Contract ID cannot be empty")
	}
	t.ContractID = &contractID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}
