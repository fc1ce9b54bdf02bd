package realestate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/contract"
	"github.com/poloatt/attadia-backend/internal/domain/realestate"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// OccupantService provides application-level occupant (inquilino) operations
type OccupantService struct {
	occupantRepo realestate.OccupantRepository
	contractRepo contract.Repository
}

// NewOccupantService creates a new OccupantService
func NewOccupantService(occupantRepo realestate.OccupantRepository, contractRepo contract.Repository) *OccupantService {
	return &OccupantService{
		occupantRepo: occupantRepo,
		contractRepo: contractRepo,
	}
}

// OccupantResponse represents an occupant in API responses
type OccupantResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Document  string    `json:"document,omitempty"`
	Status    string    `json:"status"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateOccupantRequest represents a request to register an occupant
type CreateOccupantRequest struct {
	FirstName string     `json:"first_name" binding:"required"`
	LastName  string     `json:"last_name" binding:"required"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Document  string     `json:"document"`
	CreatedBy *uuid.UUID `json:"-"`
}

// UpdateOccupantRequest represents a request to update an occupant
type UpdateOccupantRequest struct {
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
	Status *string `json:"status"`
	Remark string  `json:"remark"`
}

// OccupantListFilter defines filtering options for occupant list queries
type OccupantListFilter struct {
	Status   *string `form:"status"`
	Search   string  `form:"search"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

// Create registers a new occupant
func (s *OccupantService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOccupantRequest) (*OccupantResponse, error) {
	o, err := realestate.NewOccupant(tenantID, req.FirstName, req.LastName, req.Email, req.Phone, req.Document)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		o.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.occupantRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return toOccupantResponse(o), nil
}

// GetByID gets an occupant by ID
func (s *OccupantService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*OccupantResponse, error) {
	o, err := s.findOccupant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toOccupantResponse(o), nil
}

// List retrieves occupants with filtering and pagination
func (s *OccupantService) List(ctx context.Context, tenantID uuid.UUID, filter OccupantListFilter) ([]OccupantResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := realestate.OccupantFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "last_name",
			OrderDir: "asc",
			Search:   filter.Search,
		},
	}
	if filter.Status != nil {
		st := realestate.OccupantStatus(*filter.Status)
		domainFilter.Status = &st
	}

	occupants, err := s.occupantRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.occupantRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OccupantResponse, len(occupants))
	for i := range occupants {
		responses[i] = *toOccupantResponse(&occupants[i])
	}
	return responses, total, nil
}

// Update updates an occupant's contact details and status
func (s *OccupantService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateOccupantRequest) (*OccupantResponse, error) {
	o, err := s.findOccupant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := shared.CheckOwnership(ctx, &o.TenantAggregateRoot); err != nil {
		return nil, err
	}

	if err := o.UpdateContact(req.Email, req.Phone); err != nil {
		return nil, err
	}
	if req.Status != nil {
		switch realestate.OccupantStatus(*req.Status) {
		case realestate.OccupantStatusActive:
			o.Activate()
		case realestate.OccupantStatusInactive:
			o.Deactivate()
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Occupant status must be ACTIVO or INACTIVO")
		}
	}
	o.Remark = req.Remark

	if err := s.occupantRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return toOccupantResponse(o), nil
}

// Delete removes an occupant who is not referenced by any contract
func (s *OccupantService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	o, err := s.findOccupant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := shared.CheckOwnership(ctx, &o.TenantAggregateRoot); err != nil {
		return err
	}

	contracts, err := s.contractRepo.FindAllForTenant(ctx, tenantID, contract.Filter{
		Filter:    shared.Filter{Page: 1, PageSize: 1},
		TenantRef: &o.ID,
	})
	if err != nil {
		return err
	}
	if len(contracts) > 0 {
		return shared.NewDomainError("IN_USE", "Occupants referenced by contracts cannot be deleted")
	}

	return s.occupantRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *OccupantService) findOccupant(ctx context.Context, tenantID, id uuid.UUID) (*realestate.Occupant, error) {
	o, err := s.occupantRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Occupant not found")
	}
	return o, nil
}

func toOccupantResponse(o *realestate.Occupant) *OccupantResponse {
	return &OccupantResponse{
		ID:        o.ID,
		TenantID:  o.TenantID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		FullName:  o.FullName(),
		Email:     o.Email,
		Phone:     o.Phone,
		Document:  o.Document,
		Status:    string(o.Status),
		Remark:    o.Remark,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
