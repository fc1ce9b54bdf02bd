package realestate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/contract"
	"github.com/poloatt/attadia-backend/internal/domain/realestate"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PropertyService provides application-level property operations
type PropertyService struct {
	propertyRepo  realestate.PropertyRepository
	roomRepo      realestate.RoomRepository
	inventoryRepo realestate.InventoryRepository
	contractRepo  contract.Repository
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo realestate.PropertyRepository,
	roomRepo realestate.RoomRepository,
	inventoryRepo realestate.InventoryRepository,
	contractRepo contract.Repository,
) *PropertyService {
	return &PropertyService{
		propertyRepo:  propertyRepo,
		roomRepo:      roomRepo,
		inventoryRepo: inventoryRepo,
		contractRepo:  contractRepo,
	}
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID            uuid.UUID          `json:"id"`
	TenantID      uuid.UUID          `json:"tenant_id"`
	Alias         string             `json:"alias"`
	Type          string             `json:"type"`
	Address       realestate.Address `json:"address"`
	MonthlyAmount decimal.Decimal    `json:"monthly_amount"`
	Currency      string             `json:"currency"`
	Status        string             `json:"status"`
	Remark        string             `json:"remark,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Version       int                `json:"version"`
}

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Alias         string             `json:"alias" binding:"required"`
	Type          string             `json:"type" binding:"required"`
	Address       realestate.Address `json:"address" binding:"required"`
	MonthlyAmount decimal.Decimal    `json:"monthly_amount"`
	Currency      string             `json:"currency"`
	Remark        string             `json:"remark"`
	CreatedBy     *uuid.UUID         `json:"-"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Alias         string             `json:"alias" binding:"required"`
	Address       realestate.Address `json:"address" binding:"required"`
	MonthlyAmount decimal.Decimal    `json:"monthly_amount"`
	Currency      string             `json:"currency"`
	Remark        string             `json:"remark"`
}

// PropertyListFilter defines filtering options for property list queries
type PropertyListFilter struct {
	Type     *string `form:"type"`
	City     *string `form:"city"`
	Search   string  `form:"search"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

// Create creates a new property
func (s *PropertyService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePropertyRequest) (*PropertyResponse, error) {
	amount, err := requestMoney(req.MonthlyAmount, req.Currency)
	if err != nil {
		return nil, err
	}

	p, err := realestate.NewProperty(tenantID, req.Alias, realestate.PropertyType(req.Type), req.Address, amount)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		p.SetRemark(req.Remark)
	}
	if req.CreatedBy != nil {
		p.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, p)
	return resp, nil
}

// GetByID gets a property by ID, with its contract-derived status
func (s *PropertyService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.findProperty(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p), nil
}

// List retrieves properties with filtering and pagination
func (s *PropertyService) List(ctx context.Context, tenantID uuid.UUID, filter PropertyListFilter) ([]PropertyResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := realestate.PropertyFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "created_at",
			OrderDir: "desc",
			Search:   filter.Search,
		},
		City: filter.City,
	}
	if filter.Type != nil {
		t := realestate.PropertyType(*filter.Type)
		domainFilter.Type = &t
	}

	properties, err := s.propertyRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.propertyRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PropertyResponse, len(properties))
	for i := range properties {
		responses[i] = *s.toResponse(ctx, &properties[i])
	}
	return responses, total, nil
}

// Update updates a property's details
func (s *PropertyService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	p, err := s.findProperty(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := shared.CheckOwnership(ctx, &p.TenantAggregateRoot); err != nil {
		return nil, err
	}

	amount, err := requestMoney(req.MonthlyAmount, req.Currency)
	if err != nil {
		return nil, err
	}

	if err := p.UpdateDetails(req.Alias, req.Address, amount); err != nil {
		return nil, err
	}
	p.SetRemark(req.Remark)

	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p), nil
}

// Delete removes a property that has no contracts
func (s *PropertyService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	p, err := s.findProperty(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := shared.CheckOwnership(ctx, &p.TenantAggregateRoot); err != nil {
		return err
	}

	contracts, err := s.contractRepo.FindByProperty(ctx, tenantID, p.ID)
	if err != nil {
		return err
	}
	if len(contracts) > 0 {
		return shared.NewDomainError("IN_USE", "Properties with contracts cannot be deleted")
	}

	return s.propertyRepo.DeleteForTenant(ctx, tenantID, id)
}

// Status computes the property's current contract-derived status
func (s *PropertyService) Status(ctx context.Context, tenantID, id uuid.UUID) (realestate.PropertyStatus, error) {
	p, err := s.findProperty(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	return s.deriveStatus(ctx, p), nil
}

func (s *PropertyService) findProperty(ctx context.Context, tenantID, id uuid.UUID) (*realestate.Property, error) {
	p, err := s.propertyRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}
	return p, nil
}

func (s *PropertyService) deriveStatus(ctx context.Context, p *realestate.Property) realestate.PropertyStatus {
	contracts, err := s.contractRepo.FindByProperty(ctx, p.TenantID, p.ID)
	if err != nil {
		// Worst case we report the property as available; listing must
		// not fail because the status could not be derived.
		return realestate.PropertyStatusAvailable
	}

	now := time.Now()
	var hasMaintenance, hasActive, hasPlanned bool
	for i := range contracts {
		switch contracts[i].EffectiveStatus(now) {
		case contract.StatusMantenimiento:
			hasMaintenance = true
		case contract.StatusActivo:
			hasActive = true
		case contract.StatusPlaneado:
			hasPlanned = true
		}
	}
	return realestate.DerivePropertyStatus(hasMaintenance, hasActive, hasPlanned)
}

func (s *PropertyService) toResponse(ctx context.Context, p *realestate.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		Alias:         p.Alias,
		Type:          string(p.Type),
		Address:       p.Address,
		MonthlyAmount: p.MonthlyAmount,
		Currency:      string(p.Currency),
		Status:        string(s.deriveStatus(ctx, p)),
		Remark:        p.Remark,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

func requestMoney(amount decimal.Decimal, currency string) (valueobject.Money, error) {
	code := valueobject.Currency(currency)
	if code == "" {
		code = valueobject.DefaultCurrency
	}
	return valueobject.NewMoney(amount, code)
}
