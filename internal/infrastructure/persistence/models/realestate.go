package models

import (
	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/realestate"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for the Property aggregate root.
// Address fields are flattened into columns so city and province can be
// filtered without JSON operators.
type PropertyModel struct {
	TenantAggregateModel
	Alias         string                  `gorm:"type:varchar(100);not null"`
	Type          realestate.PropertyType `gorm:"type:varchar(20);not null;index"`
	Street        string                  `gorm:"type:varchar(200);not null"`
	Number        string                  `gorm:"type:varchar(20)"`
	City          string                  `gorm:"type:varchar(100);not null;index"`
	Province      string                  `gorm:"type:varchar(100)"`
	Country       string                  `gorm:"type:varchar(100)"`
	ZipCode       string                  `gorm:"type:varchar(20)"`
	MonthlyAmount decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Currency      valueobject.Currency    `gorm:"type:varchar(3);not null"`
	Remark        string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *realestate.Property {
	p := &realestate.Property{
		Alias: m.Alias,
		Type:  m.Type,
		Address: realestate.Address{
			Street:   m.Street,
			Number:   m.Number,
			City:     m.City,
			Province: m.Province,
			Country:  m.Country,
			ZipCode:  m.ZipCode,
		},
		MonthlyAmount: m.MonthlyAmount,
		Currency:      m.Currency,
		Remark:        m.Remark,
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *realestate.Property) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Alias = p.Alias
	m.Type = p.Type
	m.Street = p.Address.Street
	m.Number = p.Address.Number
	m.City = p.Address.City
	m.Province = p.Address.Province
	m.Country = p.Address.Country
	m.ZipCode = p.Address.ZipCode
	m.MonthlyAmount = p.MonthlyAmount
	m.Currency = p.Currency
	m.Remark = p.Remark
}

// PropertyModelFromDomain creates a new persistence model from a domain Property.
func PropertyModelFromDomain(p *realestate.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// RoomModel is the persistence model for the Room aggregate root.
type RoomModel struct {
	TenantAggregateModel
	PropertyID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name       string              `gorm:"type:varchar(100);not null"`
	Type       realestate.RoomType `gorm:"type:varchar(20);not null"`
	Remark     string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain Room entity.
func (m *RoomModel) ToDomain() *realestate.Room {
	r := &realestate.Room{
		PropertyID: m.PropertyID,
		Name:       m.Name,
		Type:       m.Type,
		Remark:     m.Remark,
	}
	m.PopulateTenantAggregateRoot(&r.TenantAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Room entity.
func (m *RoomModel) FromDomain(r *realestate.Room) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.PropertyID = r.PropertyID
	m.Name = r.Name
	m.Type = r.Type
	m.Remark = r.Remark
}

// RoomModelFromDomain creates a new persistence model from a domain Room.
func RoomModelFromDomain(r *realestate.Room) *RoomModel {
	m := &RoomModel{}
	m.FromDomain(r)
	return m
}

// InventoryItemModel is the persistence model for the InventoryItem aggregate root.
type InventoryItemModel struct {
	TenantAggregateModel
	PropertyID uuid.UUID                `gorm:"type:uuid;not null;index"`
	RoomID     *uuid.UUID               `gorm:"type:uuid;index"`
	Name       string                   `gorm:"type:varchar(100);not null"`
	Quantity   int                      `gorm:"not null;default:1"`
	Condition  realestate.ItemCondition `gorm:"type:varchar(20);not null"`
	Remark     string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem entity.
func (m *InventoryItemModel) ToDomain() *realestate.InventoryItem {
	item := &realestate.InventoryItem{
		PropertyID: m.PropertyID,
		RoomID:     m.RoomID,
		Name:       m.Name,
		Quantity:   m.Quantity,
		Condition:  m.Condition,
		Remark:     m.Remark,
	}
	m.PopulateTenantAggregateRoot(&item.TenantAggregateRoot)
	return item
}

// FromDomain populates the persistence model from a domain InventoryItem entity.
func (m *InventoryItemModel) FromDomain(item *realestate.InventoryItem) {
	m.FromDomainTenantAggregateRoot(item.TenantAggregateRoot)
	m.PropertyID = item.PropertyID
	m.RoomID = item.RoomID
	m.Name = item.Name
	m.Quantity = item.Quantity
	m.Condition = item.Condition
	m.Remark = item.Remark
}

// InventoryItemModelFromDomain creates a new persistence model from a domain InventoryItem.
func InventoryItemModelFromDomain(item *realestate.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{}
	m.FromDomain(item)
	return m
}

// OccupantModel is the persistence model for the Occupant aggregate root.
type OccupantModel struct {
	TenantAggregateModel
	FirstName string                    `gorm:"type:varchar(100);not null"`
	LastName  string                    `gorm:"type:varchar(100);not null;index"`
	Email     string                    `gorm:"type:varchar(255);index"`
	Phone     string                    `gorm:"type:varchar(50)"`
	Document  string                    `gorm:"type:varchar(50);index"`
	Status    realestate.OccupantStatus `gorm:"type:varchar(20);not null;index"`
	Remark    string                    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OccupantModel) TableName() string {
	return "occupants"
}

// ToDomain converts the persistence model to a domain Occupant entity.
func (m *OccupantModel) ToDomain() *realestate.Occupant {
	o := &realestate.Occupant{
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Phone:     m.Phone,
		Document:  m.Document,
		Status:    m.Status,
		Remark:    m.Remark,
	}
	m.PopulateTenantAggregateRoot(&o.TenantAggregateRoot)
	return o
}

// FromDomain populates the persistence model from a domain Occupant entity.
func (m *OccupantModel) FromDomain(o *realestate.Occupant) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.FirstName = o.FirstName
	m.LastName = o.LastName
	m.Email = o.Email
	m.Phone = o.Phone
	m.Document = o.Document
	m.Status = o.Status
	m.Remark = o.Remark
}

// OccupantModelFromDomain creates a new persistence model from a domain Occupant.
func OccupantModelFromDomain(o *realestate.Occupant) *OccupantModel {
	m := &OccupantModel{}
	m.FromDomain(o)
	return m
}
