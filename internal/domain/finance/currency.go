package finance

import (
	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
)

// CurrencyInfo represents a currency available to a tenant's accounts.
// The ISO code doubles as the valueobject.Currency tag used by Money.
type CurrencyInfo struct {
	shared.TenantAggregateRoot
	Code   valueobject.Currency `json:"code"`
	Name   string               `json:"name"`
	Symbol string               `json:"symbol"`
}

// NewCurrencyInfo creates a new currency
func NewCurrencyInfo(tenantID uuid.UUID, code valueobject.Currency, name, symbol string) (*CurrencyInfo, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY_CODE", "Currency code cannot be empty")
	}
	if len(code) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY_CODE", "Currency code must be a 3-letter ISO code")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY_NAME", "Currency name cannot be empty")
	}

	return &CurrencyInfo{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Symbol:              symbol,
	}, nil
}

// Rename updates the display name and symbol
func (c *CurrencyInfo) Rename(name, symbol string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CURRENCY_NAME", "Currency name cannot be empty")
	}
	c.Name = name
	c.Symbol = symbol
	c.IncrementVersion()
	return nil
}
