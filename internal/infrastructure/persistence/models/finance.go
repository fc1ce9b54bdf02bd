package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CurrencyModel is the persistence model for the CurrencyInfo aggregate root.
type CurrencyModel struct {
	TenantAggregateModel
	Code   valueobject.Currency `gorm:"type:varchar(3);not null;uniqueIndex:idx_currency_tenant_code,priority:2"`
	Name   string               `gorm:"type:varchar(100);not null"`
	Symbol string               `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToDomain converts the persistence model to a domain CurrencyInfo entity.
func (m *CurrencyModel) ToDomain() *finance.CurrencyInfo {
	c := &finance.CurrencyInfo{
		Code:   m.Code,
		Name:   m.Name,
		Symbol: m.Symbol,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain CurrencyInfo entity.
func (m *CurrencyModel) FromDomain(c *finance.CurrencyInfo) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Symbol = c.Symbol
}

// CurrencyModelFromDomain creates a new persistence model from a domain CurrencyInfo.
func CurrencyModelFromDomain(c *finance.CurrencyInfo) *CurrencyModel {
	m := &CurrencyModel{}
	m.FromDomain(c)
	return m
}

// AccountModel is the persistence model for the Account aggregate root.
type AccountModel struct {
	TenantAggregateModel
	Name       string               `gorm:"type:varchar(100);not null"`
	Type       finance.AccountType  `gorm:"type:varchar(20);not null;index"`
	CurrencyID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Currency   valueobject.Currency `gorm:"type:varchar(3);not null"`
	Active     bool                 `gorm:"not null;default:true;index"`
	Remark     string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *finance.Account {
	a := &finance.Account{
		Name:       m.Name,
		Type:       m.Type,
		CurrencyID: m.CurrencyID,
		Currency:   m.Currency,
		Active:     m.Active,
		Remark:     m.Remark,
	}
	m.PopulateTenantAggregateRoot(&a.TenantAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *finance.Account) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Name = a.Name
	m.Type = a.Type
	m.CurrencyID = a.CurrencyID
	m.Currency = a.Currency
	m.Active = a.Active
	m.Remark = a.Remark
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *finance.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// TransactionModel is the persistence model for the Transaction aggregate root.
type TransactionModel struct {
	TenantAggregateModel
	AccountID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Currency    valueobject.Currency      `gorm:"type:varchar(3);not null"`
	Type        finance.TransactionType   `gorm:"type:varchar(10);not null;index"`
	Status      finance.TransactionStatus `gorm:"type:varchar(10);not null;index"`
	Amount      decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Description string                    `gorm:"type:varchar(500)"`
	Date        time.Time                 `gorm:"not null;index"`
	ContractID  *uuid.UUID                `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *finance.Transaction {
	t := &finance.Transaction{
		AccountID:   m.AccountID,
		Currency:    m.Currency,
		Type:        m.Type,
		Status:      m.Status,
		Amount:      m.Amount,
		Description: m.Description,
		Date:        m.Date,
		ContractID:  m.ContractID,
	}
	m.PopulateTenantAggregateRoot(&t.TenantAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(t *finance.Transaction) {
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	m.AccountID = t.AccountID
	m.Currency = t.Currency
	m.Type = t.Type
	m.Status = t.Status
	m.Amount = t.Amount
	m.Description = t.Description
	m.Date = t.Date
	m.ContractID = t.ContractID
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction.
func TransactionModelFromDomain(t *finance.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}
