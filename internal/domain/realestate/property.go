package realestate

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PropertyType classifies what kind of unit a property is
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "DEPARTAMENTO"
	PropertyTypeHouse      PropertyType = "CASA"
	PropertyTypeOffice     PropertyType = "OFICINA"
	PropertyTypeCommercial PropertyType = "LOCAL"
	PropertyTypeLand       PropertyType = "TERRENO"
)

// IsValid checks if the property type is valid
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeOffice,
		PropertyTypeCommercial, PropertyTypeLand:
		return true
	}
	return false
}

// PropertyStatus is derived from the property's contracts, never stored by hand
type PropertyStatus string

const (
	PropertyStatusAvailable   PropertyStatus = "DISPONIBLE"
	PropertyStatusOccupied    PropertyStatus = "OCUPADA"
	PropertyStatusMaintenance PropertyStatus = "MANTENIMIENTO"
	PropertyStatusReserved    PropertyStatus = "RESERVADA"
)

// DerivePropertyStatus computes a property's status from the effective
// statuses of its contracts. Maintenance wins over occupancy, occupancy
// over a reservation, and a property with no relevant contract is
// available.
func DerivePropertyStatus(hasMaintenance, hasActive, hasPlanned bool) PropertyStatus {
	switch {
	case hasMaintenance:
		return PropertyStatusMaintenance
	case hasActive:
		return PropertyStatusOccupied
	case hasPlanned:
		return PropertyStatusReserved
	default:
		return PropertyStatusAvailable
	}
}

// Address is the physical location of a property
type Address struct {
	Street   string `json:"street"`
	Number   string `json:"number,omitempty"`
	City     string `json:"city"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`
	ZipCode  string `json:"zip_code,omitempty"`
}

// Property is a rentable unit. Its status is always derived from its
// contracts via DerivePropertyStatus so listings and contract state
// cannot disagree.
type Property struct {
	shared.TenantAggregateRoot
	Alias         string               `json:"alias"`
	Type          PropertyType         `json:"type"`
	Address       Address              `json:"address"`
	MonthlyAmount decimal.Decimal      `json:"monthly_amount"`
	Currency      valueobject.Currency `json:"currency"`
	Remark        string               `json:"remark,omitempty"`
}

// NewProperty creates a new property
func NewProperty(tenantID uuid.UUID, alias string, propType PropertyType, address Address, monthlyAmount valueobject.Money) (*Property, error) {
	if alias == "" {
		return nil, shared.NewDomainError("INVALID_ALIAS", "Property alias cannot be empty")
	}
	if !propType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PROPERTY_TYPE", "Property type is not valid")
	}
	if address.Street == "" || address.City == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address requires at least street and city")
	}
	if monthlyAmount.IsNegative() {
		return nil, shared.ErrInvalidAmount
	}

	p := &Property{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Alias:               alias,
		Type:                propType,
		Address:             address,
		MonthlyAmount:       monthlyAmount.Amount(),
		Currency:            monthlyAmount.Currency(),
	}

	p.AddDomainEvent(NewPropertyListedEvent(p))

	return p, nil
}

// UpdateDetails updates the property's mutable fields
func (p *Property) UpdateDetails(alias string, address Address, monthlyAmount valueobject.Money) error {
	if alias == "" {
		return shared.NewDomainError("INVALID_ALIAS", "Property alias cannot be empty")
	}
	if address.Street == "" || address.City == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address requires at least street and city")
	}
	if monthlyAmount.IsNegative() {
		return shared.ErrInvalidAmount
	}

	p.Alias = alias
	p.Address = address
	p.MonthlyAmount = monthlyAmount.Amount()
	p.Currency = monthlyAmount.Currency()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetRemark sets the remark
func (p *Property) SetRemark(remark string) {
	p.Remark = remark
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// MonthlyAmountMoney returns the listed monthly amount as Money
func (p *Property) MonthlyAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(p.MonthlyAmount, p.Currency)
	return m
}
