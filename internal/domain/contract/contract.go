package contract

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TenantRefs is an ordered, non-empty sequence of tenant (inquilino)
// references stored as JSONB.
type TenantRefs []uuid.UUID

// Value implements driver.Valuer interface for GORM to store as JSONB
func (t TenantRefs) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (t *TenantRefs) Scan(value interface{}) error {
	if value == nil {
		*t = TenantRefs{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan TenantRefs: unsupported type")
	}

	if len(bytes) == 0 {
		*t = TenantRefs{}
		return nil
	}

	return json.Unmarshal(bytes, t)
}

// Contract represents a lease or maintenance agreement aggregate root.
// It binds a property to one or more tenants for a fixed period, carries
// the monthly installment schedule derived from its total price, and is
// settled through the account it references.
type Contract struct {
	shared.TenantAggregateRoot
	ContractNumber string               `json:"contract_number"`
	PropertyID     uuid.UUID            `json:"property_id"`
	TenantIDs      TenantRefs           `json:"tenant_ids"`
	AccountID      uuid.UUID            `json:"account_id"`
	Currency       valueobject.Currency `json:"currency"` // Denormalized from the account
	StartDate      time.Time            `json:"start_date"`
	EndDate        time.Time            `json:"end_date"`
	TotalPrice     decimal.Decimal      `json:"total_price"`
	IsMaintenance  bool                 `json:"is_maintenance"`
	Installments   Installments         `json:"installments"`
	Override       *StatusOverride      `json:"override,omitempty"`
	Remark         string               `json:"remark,omitempty"`
}

// NewContract creates a new contract with a generated installment schedule.
// Rental contracts require a positive total price and an end date after the
// start date; maintenance contracts skip installment generation entirely.
func NewContract(
	tenantID uuid.UUID,
	contractNumber string,
	propertyID uuid.UUID,
	tenants TenantRefs,
	accountID uuid.UUID,
	currency valueobject.Currency,
	startDate, endDate time.Time,
	totalPrice valueobject.Money,
	isMaintenance bool,
) (*Contract, error) {
	if contractNumber == "" {
		return nil, shared.NewDomainError("INVALID_CONTRACT_NUMBER", "Contract number cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if len(tenants) == 0 {
		return nil, shared.NewDomainError("INVALID_TENANTS", "Contract requires at least one tenant")
	}
	for _, id := range tenants {
		if id == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_TENANTS", "Tenant reference cannot be empty")
		}
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !isMaintenance {
		if !endDate.After(startDate) {
			return nil, shared.ErrInvalidRange
		}
		if !totalPrice.IsPositive() {
			return nil, shared.ErrInvalidAmount
		}
	}

	installments, err := GenerateInstallments(startDate, endDate, totalPrice, isMaintenance)
	if err != nil {
		return nil, err
	}

	c := &Contract{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ContractNumber:      contractNumber,
		PropertyID:          propertyID,
		TenantIDs:           tenants,
		AccountID:           accountID,
		Currency:            currency,
		StartDate:           valueobject.DateOnly(startDate),
		EndDate:             valueobject.DateOnly(endDate),
		TotalPrice:          totalPrice.Amount(),
		IsMaintenance:       isMaintenance,
		Installments:        installments,
	}

	c.AddDomainEvent(NewContractCreatedEvent(c))

	return c, nil
}

// ReplaceSchedule swaps in a hand-edited installment schedule from the
// creation wizard, after validating it against the contract's range and
// total. Only allowed before any installment has been paid.
func (c *Contract) ReplaceSchedule(ins Installments) error {
	if c.IsMaintenance {
		return shared.NewDomainError("INVALID_STATE", "Maintenance contracts have no installment schedule")
	}
	for _, i := range c.Installments {
		if i.Paid {
			return shared.NewDomainError("INVALID_STATE", "Cannot replace schedule once installments have been paid")
		}
	}
	total, err := valueobject.NewMoney(c.TotalPrice, c.Currency)
	if err != nil {
		return err
	}
	if err := ValidateSchedule(ins, c.StartDate, c.EndDate, total); err != nil {
		return err
	}

	c.Installments = ins
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// NaturalStatus returns the pure date-derived status as of today
func (c *Contract) NaturalStatus(today time.Time) Status {
	return ResolveNaturalStatus(today, c.StartDate, c.EndDate, c.IsMaintenance)
}

// EffectiveStatus returns the status used for display and filtering:
// an explicit override when present, else the natural status.
func (c *Contract) EffectiveStatus(today time.Time) Status {
	if c.Override != nil {
		return c.Override.Status
	}
	return c.NaturalStatus(today)
}

// MarkInstallmentPaid marks the installment with the given sequence number
// as paid, linking the settling transaction.
func (c *Contract) MarkInstallmentPaid(seq int, paidAt time.Time, transactionID uuid.UUID) error {
	if c.EffectiveStatus(paidAt).IsTerminal() && c.Override != nil {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay installments on a %s contract", c.Override.Status))
	}

	idx := -1
	for i := range c.Installments {
		if c.Installments[i].Seq == seq {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.NewDomainError("INVALID_INSTALLMENT", fmt.Sprintf("Installment %d not found", seq))
	}
	if c.Installments[idx].Paid {
		return shared.NewDomainError("ALREADY_PAID", fmt.Sprintf("Installment %d is already paid", seq))
	}

	c.Installments[idx].Paid = true
	c.Installments[idx].PaidAt = &paidAt
	if transactionID != uuid.Nil {
		c.Installments[idx].TransactionID = &transactionID
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewInstallmentPaidEvent(c, c.Installments[idx]))

	return nil
}

// Finalize explicitly ends the contract ahead of (or confirming) its
// natural expiry.
func (c *Contract) Finalize(by string) error {
	return c.applyOverride(StatusFinalizado, "", by)
}

// Suspend pauses the contract; the natural status no longer applies until
// it is reactivated.
func (c *Contract) Suspend(reason, by string) error {
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Suspension reason is required")
	}
	return c.applyOverride(StatusSuspendido, reason, by)
}

// Cancel voids the contract. Contracts with paid installments cannot be
// cancelled, mirroring the receivable rule that paid money needs an
// explicit reversal path.
func (c *Contract) Cancel(reason, by string) error {
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	if c.Installments.PaidAmount().IsPositive() {
		return shared.NewDomainError("HAS_PAYMENTS", "Cannot cancel a contract with paid installments")
	}
	return c.applyOverride(StatusCancelado, reason, by)
}

// Reactivate clears a suspension or finalization override so the natural
// date-derived status applies again. Cancelled contracts stay cancelled.
func (c *Contract) Reactivate() error {
	if c.Override == nil {
		return shared.NewDomainError("INVALID_STATE", "Contract has no explicit status to clear")
	}
	if c.Override.Status == StatusCancelado {
		return shared.NewDomainError("INVALID_STATE", "Cancelled contracts cannot be reactivated")
	}

	previous := c.Override.Status
	c.Override = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractReactivatedEvent(c, previous))

	return nil
}

// Renew extends the contract to a new end date, appending installments for
// the extension period priced at additionalPrice. Any override is cleared:
// a renewed contract is governed by its dates again.
func (c *Contract) Renew(newEndDate time.Time, additionalPrice valueobject.Money) error {
	if c.Override != nil && c.Override.Status == StatusCancelado {
		return shared.NewDomainError("INVALID_STATE", "Cancelled contracts cannot be renewed")
	}
	newEnd := valueobject.DateOnly(newEndDate)
	if !newEnd.After(c.EndDate) {
		return shared.NewDomainError("INVALID_RANGE", "Renewal end date must be after the current end date")
	}
	if additionalPrice.Currency() != c.Currency {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Renewal price must be in the contract currency")
	}

	if !c.IsMaintenance {
		if !additionalPrice.IsPositive() {
			return shared.ErrInvalidAmount
		}
		// The extension schedule picks up the month after the current one,
		// keeping the original start date's day of month.
		extensionStart := valueobject.AddMonthsClamped(c.StartDate, len(c.Installments))
		extension, err := GenerateInstallments(extensionStart, newEnd, additionalPrice, false)
		if err != nil {
			return err
		}
		for i := range extension {
			extension[i].Seq = len(c.Installments) + i + 1
		}
		c.Installments = append(c.Installments, extension...)
		c.TotalPrice = c.TotalPrice.Add(additionalPrice.Amount())
	}

	previousEnd := c.EndDate
	c.EndDate = newEnd
	c.Override = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractRenewedEvent(c, previousEnd))

	return nil
}

// SetRemark sets the remark
func (c *Contract) SetRemark(remark string) {
	c.Remark = remark
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// GetTotalPriceMoney returns the total price as Money
func (c *Contract) GetTotalPriceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(c.TotalPrice, c.Currency)
	return m
}

func (c *Contract) applyOverride(status Status, reason, by string) error {
	if !status.IsValidOverride() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("%s cannot be set explicitly", status))
	}
	if c.Override != nil && c.Override.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Contract is already %s", c.Override.Status))
	}

	now := time.Now()
	c.Override = &StatusOverride{
		Status:    status,
		Reason:    reason,
		AppliedAt: now,
		AppliedBy: by,
	}
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewContractStatusOverriddenEvent(c, status, reason))

	return nil
}
