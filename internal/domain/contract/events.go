package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ContractCreatedEvent is raised when a new contract is created
type ContractCreatedEvent struct {
	shared.BaseDomainEvent
	ContractID       uuid.UUID       `json:"contract_id"`
	ContractNumber   string          `json:"contract_number"`
	PropertyID       uuid.UUID       `json:"property_id"`
	AccountID        uuid.UUID       `json:"account_id"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	IsMaintenance    bool            `json:"is_maintenance"`
	InstallmentCount int             `json:"installment_count"`
}

// EventType returns the event type name
func (e *ContractCreatedEvent) EventType() string {
	return "ContractCreated"
}

// NewContractCreatedEvent creates a new ContractCreatedEvent
func NewContractCreatedEvent(c *Contract) *ContractCreatedEvent {
	return &ContractCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("ContractCreated", "Contract", c.ID, c.TenantID),
		ContractID:       c.ID,
		ContractNumber:   c.ContractNumber,
		PropertyID:       c.PropertyID,
		AccountID:        c.AccountID,
		StartDate:        c.StartDate,
		EndDate:          c.EndDate,
		TotalPrice:       c.TotalPrice,
		IsMaintenance:    c.IsMaintenance,
		InstallmentCount: len(c.Installments),
	}
}

// ContractStatusOverriddenEvent is raised when an explicit lifecycle
// transition (finalize, suspend, cancel) is applied
type ContractStatusOverriddenEvent struct {
	shared.BaseDomainEvent
	ContractID     uuid.UUID `json:"contract_id"`
	ContractNumber string    `json:"contract_number"`
	Status         Status    `json:"status"`
	Reason         string    `json:"reason,omitempty"`
}

// EventType returns the event type name
func (e *ContractStatusOverriddenEvent) EventType() string {
	return "ContractStatusOverridden"
}

// NewContractStatusOverriddenEvent creates a new ContractStatusOverriddenEvent
func NewContractStatusOverriddenEvent(c *Contract, status Status, reason string) *ContractStatusOverriddenEvent {
	return &ContractStatusOverriddenEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ContractStatusOverridden", "Contract", c.ID, c.TenantID),
		ContractID:      c.ID,
		ContractNumber:  c.ContractNumber,
		Status:          status,
		Reason:          reason,
	}
}

// ContractReactivatedEvent is raised when an override is cleared and the
// natural status applies again
type ContractReactivatedEvent struct {
	shared.BaseDomainEvent
	ContractID     uuid.UUID `json:"contract_id"`
	ContractNumber string    `json:"contract_number"`
	PreviousStatus Status    `json:"previous_status"`
}

// EventType returns the event type name
func (e *ContractReactivatedEvent) EventType() string {
	return "ContractReactivated"
}

// NewContractReactivatedEvent creates a new ContractReactivatedEvent
func NewContractReactivatedEvent(c *Contract, previous Status) *ContractReactivatedEvent {
	return &ContractReactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ContractReactivated", "Contract", c.ID, c.TenantID),
		ContractID:      c.ID,
		ContractNumber:  c.ContractNumber,
		PreviousStatus:  previous,
	}
}

// ContractRenewedEvent is raised when a contract is extended to a new end date
type ContractRenewedEvent struct {
	shared.BaseDomainEvent
	ContractID     uuid.UUID       `json:"contract_id"`
	ContractNumber string          `json:"contract_number"`
	PreviousEnd    time.Time       `json:"previous_end"`
	NewEnd         time.Time       `json:"new_end"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// EventType returns the event type name
func (e *ContractRenewedEvent) EventType() string {
	return "ContractRenewed"
}

// NewContractRenewedEvent creates a new ContractRenewedEvent
func NewContractRenewedEvent(c *Contract, previousEnd time.Time) *ContractRenewedEvent {
	return &ContractRenewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ContractRenewed", "Contract", c.ID, c.TenantID),
		ContractID:      c.ID,
		ContractNumber:  c.ContractNumber,
		PreviousEnd:     previousEnd,
		NewEnd:          c.EndDate,
		TotalPrice:      c.TotalPrice,
	}
}

// InstallmentPaidEvent is raised when an installment is marked paid
type InstallmentPaidEvent struct {
	shared.BaseDomainEvent
	ContractID     uuid.UUID       `json:"contract_id"`
	ContractNumber string          `json:"contract_number"`
	AccountID      uuid.UUID       `json:"account_id"`
	Seq            int             `json:"seq"`
	Amount         decimal.Decimal `json:"amount"`
	PaidAt         time.Time       `json:"paid_at"`
	TransactionID  *uuid.UUID      `json:"transaction_id,omitempty"`
}

// EventType returns the event type name
func (e *InstallmentPaidEvent) EventType() string {
	return "InstallmentPaid"
}

// NewInstallmentPaidEvent creates a new InstallmentPaidEvent
func NewInstallmentPaidEvent(c *Contract, ins Installment) *InstallmentPaidEvent {
	paidAt := time.Now()
	if ins.PaidAt != nil {
		paidAt = *ins.PaidAt
	}
	return &InstallmentPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InstallmentPaid", "Contract", c.ID, c.TenantID),
		ContractID:      c.ID,
		ContractNumber:  c.ContractNumber,
		AccountID:       c.AccountID,
		Seq:             ins.Seq,
		Amount:          ins.Amount,
		PaidAt:          paidAt,
		TransactionID:   ins.TransactionID,
	}
}
