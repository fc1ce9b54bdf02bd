package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionRecordedEvent is raised when a new transaction is created
type TransactionRecordedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID         `json:"transaction_id"`
	AccountID     uuid.UUID         `json:"account_id"`
	Type          TransactionType   `json:"transaction_type"`
	Status        TransactionStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"`
	Date          time.Time         `json:"date"`
	ContractID    *uuid.UUID        `json:"contract_id,omitempty"`
}

// EventType returns the event type name
func (e *TransactionRecordedEvent) EventType() string {
	return "TransactionRecorded"
}

// NewTransactionRecordedEvent creates a new TransactionRecordedEvent
func NewTransactionRecordedEvent(t *Transaction) *TransactionRecordedEvent {
	return &TransactionRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransactionRecorded", "Transaction", t.ID, t.TenantID),
		TransactionID:   t.ID,
		AccountID:       t.AccountID,
		Type:            t.Type,
		Status:          t.Status,
		Amount:          t.Amount,
		Date:            t.Date,
		ContractID:      t.ContractID,
	}
}

// TransactionSettledEvent is raised when a pending transaction is marked paid
type TransactionSettledEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID       `json:"transaction_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	SettledAt     time.Time       `json:"settled_at"`
	ContractID    *uuid.UUID      `json:"contract_id,omitempty"`
}

// EventType returns the event type name
func (e *TransactionSettledEvent) EventType() string {
	return "TransactionSettled"
}

// NewTransactionSettledEvent creates a new TransactionSettledEvent
func NewTransactionSettledEvent(t *Transaction) *TransactionSettledEvent {
	return &TransactionSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransactionSettled", "Transaction", t.ID, t.TenantID),
		TransactionID:   t.ID,
		AccountID:       t.AccountID,
		Amount:          t.Amount,
		SettledAt:       t.Date,
		ContractID:      t.ContractID,
	}
}
