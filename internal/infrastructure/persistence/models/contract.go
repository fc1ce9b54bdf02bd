package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/contract"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ContractModel is the persistence model for the Contract aggregate root.
// The lifecycle status is never stored: it is derived from the dates plus
// the override columns.
type ContractModel struct {
	TenantAggregateModel
	ContractNumber    string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_contract_tenant_number,priority:2"`
	PropertyID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	TenantIDs         contract.TenantRefs   `gorm:"type:jsonb;default:'[]'"`
	AccountID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	Currency          valueobject.Currency  `gorm:"type:varchar(3);not null"`
	StartDate         time.Time             `gorm:"not null;index"`
	EndDate           time.Time             `gorm:"not null;index"`
	TotalPrice        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	IsMaintenance     bool                  `gorm:"not null;default:false"`
	Installments      contract.Installments `gorm:"type:jsonb;default:'[]'"`
	OverrideStatus    *contract.Status      `gorm:"type:varchar(20);index"`
	OverrideReason    string                `gorm:"type:varchar(500)"`
	OverrideAppliedAt *time.Time
	OverrideAppliedBy string `gorm:"type:varchar(200)"`
	Remark            string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract entity.
func (m *ContractModel) ToDomain() *contract.Contract {
	c := &contract.Contract{
		ContractNumber: m.ContractNumber,
		PropertyID:     m.PropertyID,
		TenantIDs:      m.TenantIDs,
		AccountID:      m.AccountID,
		Currency:       m.Currency,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		TotalPrice:     m.TotalPrice,
		IsMaintenance:  m.IsMaintenance,
		Installments:   m.Installments,
		Remark:         m.Remark,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	if m.OverrideStatus != nil {
		c.Override = &contract.StatusOverride{
			Status:    *m.OverrideStatus,
			Reason:    m.OverrideReason,
			AppliedBy: m.OverrideAppliedBy,
		}
		if m.OverrideAppliedAt != nil {
			c.Override.AppliedAt = *m.OverrideAppliedAt
		}
	}
	return c
}

// FromDomain populates the persistence model from a domain Contract entity.
func (m *ContractModel) FromDomain(c *contract.Contract) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.ContractNumber = c.ContractNumber
	m.PropertyID = c.PropertyID
	m.TenantIDs = c.TenantIDs
	m.AccountID = c.AccountID
	m.Currency = c.Currency
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.TotalPrice = c.TotalPrice
	m.IsMaintenance = c.IsMaintenance
	m.Installments = c.Installments
	m.Remark = c.Remark
	if c.Override != nil {
		status := c.Override.Status
		appliedAt := c.Override.AppliedAt
		m.OverrideStatus = &status
		m.OverrideReason = c.Override.Reason
		m.OverrideAppliedAt = &appliedAt
		m.OverrideAppliedBy = c.Override.AppliedBy
	} else {
		m.OverrideStatus = nil
		m.OverrideReason = ""
		m.OverrideAppliedAt = nil
		m.OverrideAppliedBy = ""
	}
}

// ContractModelFromDomain creates a new persistence model from a domain Contract.
func ContractModelFromDomain(c *contract.Contract) *ContractModel {
	m := &ContractModel{}
	m.FromDomain(c)
	return m
}
