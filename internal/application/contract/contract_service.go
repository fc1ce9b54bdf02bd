package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/contract"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
	"github.com/poloatt/attadia-backend/internal/domain/realestate"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Service provides application-level contract operations
type Service struct {
	contractRepo   contract.Repository
	propertyRepo   realestate.PropertyRepository
	occupantRepo   realestate.OccupantRepository
	accountRepo    finance.AccountRepository
	txRepo         finance.TransactionRepository
	eventPublisher shared.EventPublisher
}

// NewService creates a new contract Service
func NewService(
	contractRepo contract.Repository,
	propertyRepo realestate.PropertyRepository,
	occupantRepo realestate.OccupantRepository,
	accountRepo finance.AccountRepository,
	txRepo finance.TransactionRepository,
) *Service {
	return &Service{
		contractRepo: contractRepo,
		propertyRepo: propertyRepo,
		occupantRepo: occupantRepo,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// InstallmentResponse represents one installment in API responses
type InstallmentResponse struct {
	Seq           int             `json:"seq"`
	DueDate       time.Time       `json:"due_date"`
	Amount        decimal.Decimal `json:"amount"`
	Paid          bool            `json:"paid"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	TransactionID *uuid.UUID      `json:"transaction_id,omitempty"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID             uuid.UUID                `json:"id"`
	TenantID       uuid.UUID                `json:"tenant_id"`
	ContractNumber string                   `json:"contract_number"`
	PropertyID     uuid.UUID                `json:"property_id"`
	TenantIDs      []uuid.UUID              `json:"tenant_ids"`
	AccountID      uuid.UUID                `json:"account_id"`
	Currency       string                   `json:"currency"`
	StartDate      time.Time                `json:"start_date"`
	EndDate        time.Time                `json:"end_date"`
	TotalPrice     decimal.Decimal          `json:"total_price"`
	IsMaintenance  bool                     `json:"is_maintenance"`
	Status         string                   `json:"status"`
	Override       *contract.StatusOverride `json:"override,omitempty"`
	Installments   []InstallmentResponse    `json:"installments"`
	PendingCount   int                      `json:"pending_count"`
	PendingAmount  decimal.Decimal          `json:"pending_amount"`
	Remark         string                   `json:"remark,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
	Version        int                      `json:"version"`
}

// CreateContractRequest represents a request to create a contract
type CreateContractRequest struct {
	PropertyID    uuid.UUID       `json:"property_id" binding:"required"`
	TenantIDs     []uuid.UUID     `json:"tenant_ids" binding:"required,min=1"`
	AccountID     uuid.UUID       `json:"account_id" binding:"required"`
	StartDate     time.Time       `json:"start_date" binding:"required"`
	EndDate       time.Time       `json:"end_date"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	IsMaintenance bool            `json:"is_maintenance"`
	Remark        string          `json:"remark"`
	// Schedule optionally carries a wizard-edited installment plan that
	// replaces the generated one after validation.
	Schedule  []InstallmentRequest `json:"schedule"`
	CreatedBy *uuid.UUID           `json:"-"` // Set from JWT context, not from request body
}

// InstallmentRequest is one hand-edited installment from the creation wizard
type InstallmentRequest struct {
	DueDate time.Time       `json:"due_date" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateContractRequest represents a request to update contract metadata
type UpdateContractRequest struct {
	Remark string `json:"remark"`
}

// SuspendRequest carries the reason for a suspension or cancellation
type SuspendRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RenewRequest represents a request to extend a contract
type RenewRequest struct {
	NewEndDate      time.Time       `json:"new_end_date" binding:"required"`
	AdditionalPrice decimal.Decimal `json:"additional_price" binding:"required"`
}

// PayInstallmentRequest settles one installment
type PayInstallmentRequest struct {
	PaidAt      *time.Time `json:"paid_at"`
	Description string     `json:"description"`
}

// PreviewRequest asks for a generated schedule without persisting anything
type PreviewRequest struct {
	StartDate  time.Time       `json:"start_date" binding:"required"`
	EndDate    time.Time       `json:"end_date" binding:"required"`
	TotalPrice decimal.Decimal `json:"total_price" binding:"required"`
	Currency   string          `json:"currency"`
}

// ListFilter defines filtering options for contract list queries
type ListFilter struct {
	PropertyID    *uuid.UUID `form:"property_id"`
	TenantRef     *uuid.UUID `form:"tenant_id"`
	AccountID     *uuid.UUID `form:"account_id"`
	Status        *string    `form:"status"`
	IsMaintenance *bool      `form:"is_maintenance"`
	ActiveOn      *time.Time `form:"active_on"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir"`
}

// StatusResponse is one row of the current-status report
type StatusResponse struct {
	ID             uuid.UUID `json:"id"`
	ContractNumber string    `json:"contract_number"`
	PropertyID     uuid.UUID `json:"property_id"`
	NaturalStatus  string    `json:"natural_status"`
	Status         string    `json:"status"`
	Overridden     bool      `json:"overridden"`
}

// Create creates a new contract with a generated (or wizard-provided)
// installment schedule
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req CreateContractRequest) (*ContractResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, tenantID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	occupants, err := s.occupantRepo.FindByIDs(ctx, tenantID, req.TenantIDs)
	if err != nil {
		return nil, err
	}
	if len(occupants) != len(req.TenantIDs) {
		return nil, shared.ErrMissingReference
	}

	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Account not found")
	}

	// A property cannot be rented twice over the same period. Maintenance
	// contracts coexist with rentals, so only rentals are checked.
	if !req.IsMaintenance {
		occupying, err := s.contractRepo.FindActiveOn(ctx, tenantID, req.StartDate)
		if err != nil {
			return nil, err
		}
		for i := range occupying {
			if occupying[i].PropertyID == req.PropertyID && !occupying[i].IsMaintenance {
				return nil, shared.NewDomainError("PROPERTY_OCCUPIED", "Property already has an active contract on the start date")
			}
		}
	}

	number, err := s.contractRepo.GenerateContractNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	totalPrice, err := valueobject.NewMoney(req.TotalPrice, account.Currency)
	if err != nil {
		return nil, err
	}

	c, err := contract.NewContract(
		tenantID,
		number,
		req.PropertyID,
		contract.TenantRefs(req.TenantIDs),
		req.AccountID,
		account.Currency,
		req.StartDate,
		req.EndDate,
		totalPrice,
		req.IsMaintenance,
	)
	if err != nil {
		return nil, err
	}

	if len(req.Schedule) > 0 {
		edited := make(contract.Installments, len(req.Schedule))
		for i, ins := range req.Schedule {
			edited[i] = contract.Installment{
				Seq:     i + 1,
				DueDate: valueobject.DateOnly(ins.DueDate),
				Amount:  ins.Amount,
			}
		}
		if err := c.ReplaceSchedule(edited); err != nil {
			return nil, err
		}
	}

	if req.Remark != "" {
		c.SetRemark(req.Remark)
	}
	if req.CreatedBy != nil {
		c.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.contractRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	return toContractResponse(c), nil
}

// GetByID gets a contract by ID
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ContractResponse, error) {
	c, err := s.findContract(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toContractResponse(c), nil
}

// List retrieves contracts with filtering and pagination
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]ContractResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := contract.Filter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Filters:  make(map[string]interface{}),
		},
		PropertyID:    filter.PropertyID,
		TenantRef:     filter.TenantRef,
		AccountID:     filter.AccountID,
		IsMaintenance: filter.IsMaintenance,
		ActiveOn:      filter.ActiveOn,
	}
	if filter.Status != nil {
		st := contract.Status(*filter.Status)
		domainFilter.Status = &st
	}

	contracts, err := s.contractRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.contractRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ContractResponse, len(contracts))
	for i := range contracts {
		responses[i] = *toContractResponse(&contracts[i])
	}
	return responses, total, nil
}

// Update updates a contract's mutable metadata
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	c, err := s.findContractForWrite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	c.SetRemark(req.Remark)

	if err := s.contractRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}
	return toContractResponse(c), nil
}

// Delete removes a contract that has no settled installments
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	c, err := s.findContractForWrite(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if c.Installments.PaidAmount().IsPositive() {
		return shared.NewDomainError("HAS_PAYMENTS", "Contracts with settled installments cannot be deleted")
	}

	return s.contractRepo.DeleteForTenant(ctx, tenantID, id)
}

// PreviewInstallments generates an installment schedule without persisting
// anything, for the creation wizard
func (s *Service) PreviewInstallments(ctx context.Context, req PreviewRequest) ([]InstallmentResponse, error) {
	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	total, err := valueobject.NewMoney(req.TotalPrice, currency)
	if err != nil {
		return nil, err
	}

	ins, err := contract.GenerateInstallments(req.StartDate, req.EndDate, total, false)
	if err != nil {
		return nil, err
	}
	return toInstallmentResponses(ins), nil
}

// CurrentStatus reports the effective status of every contract as of today
func (s *Service) CurrentStatus(ctx context.Context, tenantID uuid.UUID) ([]StatusResponse, error) {
	contracts, err := s.contractRepo.FindAllForTenant(ctx, tenantID, contract.Filter{
		Filter: shared.Filter{Page: 1, PageSize: 1000, OrderBy: "start_date", OrderDir: "asc"},
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]StatusResponse, len(contracts))
	for i := range contracts {
		c := &contracts[i]
		responses[i] = StatusResponse{
			ID:             c.ID,
			ContractNumber: c.ContractNumber,
			PropertyID:     c.PropertyID,
			NaturalStatus:  c.NaturalStatus(now).String(),
			Status:         c.EffectiveStatus(now).String(),
			Overridden:     c.Override != nil,
		}
	}
	return responses, nil
}

// Finalize closes a contract before its natural end
func (s *Service) Finalize(ctx context.Context, tenantID, id uuid.UUID, by string) (*ContractResponse, error) {
	return s.transition(ctx, tenantID, id, func(c *contract.Contract) error {
		return c.Finalize(by)
	})
}

// Suspend pauses a contract with a reason
func (s *Service) Suspend(ctx context.Context, tenantID, id uuid.UUID, reason, by string) (*ContractResponse, error) {
	return s.transition(ctx, tenantID, id, func(c *contract.Contract) error {
		return c.Suspend(reason, by)
	})
}

// Cancel voids a contract with a reason
func (s *Service) Cancel(ctx context.Context, tenantID, id uuid.UUID, reason, by string) (*ContractResponse, error) {
	return s.transition(ctx, tenantID, id, func(c *contract.Contract) error {
		return c.Cancel(reason, by)
	})
}

// Reactivate clears a contract's override so its natural status applies
func (s *Service) Reactivate(ctx context.Context, tenantID, id uuid.UUID) (*ContractResponse, error) {
	return s.transition(ctx, tenantID, id, func(c *contract.Contract) error {
		return c.Reactivate()
	})
}

// Renew extends a contract and appends installments for the extension
func (s *Service) Renew(ctx context.Context, tenantID, id uuid.UUID, req RenewRequest) (*ContractResponse, error) {
	c, err := s.findContractForWrite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	additional, err := valueobject.NewMoney(req.AdditionalPrice, c.Currency)
	if err != nil {
		return nil, err
	}

	if err := c.Renew(req.NewEndDate, additional); err != nil {
		return nil, err
	}

	if err := s.contractRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	return toContractResponse(c), nil
}

// PayInstallment records an income transaction on the contract's account
// and marks the installment as settled by it
func (s *Service) PayInstallment(ctx context.Context, tenantID, id uuid.UUID, seq int, req PayInstallmentRequest) (*ContractResponse, error) {
	c, err := s.findContractForWrite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	var target *contract.Installment
	for i := range c.Installments {
		if c.Installments[i].Seq == seq {
			target = &c.Installments[i]
			break
		}
	}
	if target == nil {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT", "Installment sequence not found")
	}

	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	description := req.Description
	if description == "" {
		description = "Cuota " + c.ContractNumber
	}

	amount, err := valueobject.NewMoney(target.Amount, c.Currency)
	if err != nil {
		return nil, err
	}

	tx, err := finance.NewTransaction(
		tenantID,
		c.AccountID,
		c.Currency,
		finance.TransactionTypeIncome,
		finance.TransactionStatusPaid,
		amount,
		description,
		paidAt,
		&c.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := c.MarkInstallmentPaid(seq, paidAt, tx.ID); err != nil {
		return nil, err
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.contractRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)
	s.publishAggregateEvents(ctx, tx)

	return toContractResponse(c), nil
}

func (s *Service) transition(ctx context.Context, tenantID, id uuid.UUID, apply func(*contract.Contract) error) (*ContractResponse, error) {
	c, err := s.findContractForWrite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := apply(c); err != nil {
		return nil, err
	}

	if err := s.contractRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)

	return toContractResponse(c), nil
}

func (s *Service) findContract(ctx context.Context, tenantID, id uuid.UUID) (*contract.Contract, error) {
	c, err := s.contractRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Contract not found")
	}
	return c, nil
}

// findContractForWrite loads a contract and authorizes the caller to
// mutate it. Non-admin users may only touch contracts they created.
func (s *Service) findContractForWrite(ctx context.Context, tenantID, id uuid.UUID) (*contract.Contract, error) {
	c, err := s.findContract(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := shared.CheckOwnership(ctx, &c.TenantAggregateRoot); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) publishEvents(ctx context.Context, c *contract.Contract) {
	s.publishAggregateEvents(ctx, c)
}

type eventCarrier interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}

func (s *Service) publishAggregateEvents(ctx context.Context, agg eventCarrier) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range agg.GetDomainEvents() {
		// Log-and-continue semantics live in the bus; a failed publish
		// must not fail the business operation.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	agg.ClearDomainEvents()
}

func toInstallmentResponses(ins contract.Installments) []InstallmentResponse {
	out := make([]InstallmentResponse, len(ins))
	for i, in := range ins {
		out[i] = InstallmentResponse{
			Seq:           in.Seq,
			DueDate:       in.DueDate,
			Amount:        in.Amount,
			Paid:          in.Paid,
			PaidAt:        in.PaidAt,
			TransactionID: in.TransactionID,
		}
	}
	return out
}

func toContractResponse(c *contract.Contract) *ContractResponse {
	now := time.Now()
	return &ContractResponse{
		ID:             c.ID,
		TenantID:       c.TenantID,
		ContractNumber: c.ContractNumber,
		PropertyID:     c.PropertyID,
		TenantIDs:      c.TenantIDs,
		AccountID:      c.AccountID,
		Currency:       string(c.Currency),
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		TotalPrice:     c.TotalPrice,
		IsMaintenance:  c.IsMaintenance,
		Status:         c.EffectiveStatus(now).String(),
		Override:       c.Override,
		Installments:   toInstallmentResponses(c.Installments),
		PendingCount:   c.Installments.PendingCount(),
		PendingAmount:  c.Installments.PendingAmount(),
		Remark:         c.Remark,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		Version:        c.Version,
	}
}
