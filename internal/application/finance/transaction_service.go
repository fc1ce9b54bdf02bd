package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionService provides application-level transaction operations
type TransactionService struct {
	txRepo         finance.TransactionRepository
	accountRepo    finance.AccountRepository
	eventPublisher shared.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(txRepo finance.TransactionRepository, accountRepo finance.AccountRepository) *TransactionService {
	return &TransactionService{
		txRepo:      txRepo,
		accountRepo: accountRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TransactionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Currency    string          `json:"currency"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	ContractID  *uuid.UUID      `json:"contract_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// CreateTransactionRequest represents a request to record a transaction
type CreateTransactionRequest struct {
	AccountID   uuid.UUID       `json:"account_id" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Status      string          `json:"status" binding:"required,oneof=PAID PENDING"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date" binding:"required"`
	ContractID  *uuid.UUID      `json:"contract_id"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

// UpdateTransactionRequest represents a request to update a transaction
type UpdateTransactionRequest struct {
	Description string `json:"description"`
}

// TransactionListFilter defines filtering options for transaction list queries
type TransactionListFilter struct {
	AccountID  *uuid.UUID `form:"account_id"`
	ContractID *uuid.UUID `form:"contract_id"`
	Type       *string    `form:"type"`
	Status     *string    `form:"status"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// Create records a new transaction on an account
func (s *TransactionService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Account not found")
	}
	if !account.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Account is deactivated")
	}

	amount, err := valueobject.NewMoney(req.Amount, account.Currency)
	if err != nil {
		return nil, err
	}

	tx, err := finance.NewTransaction(
		tenantID,
		account.ID,
		account.Currency,
		finance.TransactionType(req.Type),
		finance.TransactionStatus(req.Status),
		amount,
		req.Description,
		req.Date,
		req.ContractID,
	)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		tx.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, tx)

	return toTransactionResponse(tx), nil
}

// GetByID gets a transaction by ID
func (s *TransactionService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.findTransaction(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// List retrieves transactions with filtering and pagination
func (s *TransactionService) List(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	domainFilter := toDomainTransactionFilter(filter)

	txs, err := s.txRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = *toTransactionResponse(&txs[i])
	}
	return responses, total, nil
}

// ListByAccount retrieves one account's transactions
func (s *TransactionService) ListByAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	filter.AccountID = &accountID
	return s.List(ctx, tenantID, filter)
}

// MarkPaid settles a pending transaction
func (s *TransactionService) MarkPaid(ctx context.Context, tenantID, id uuid.UUID, settledAt time.Time) (*TransactionResponse, error) {
	tx, err := s.findTransactionForWrite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := tx.MarkPaid(settledAt); err != nil {
		return nil, err
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, tx)

	return toTransactionResponse(tx), nil
}

// Update updates a transaction's description
func (s *TransactionService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	tx, err := s.findTransactionForWrite(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	tx.Description = req.Description
	tx.UpdatedAt = time.Now()
	tx.IncrementVersion()

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// Delete removes a transaction that is not linked to a contract
func (s *TransactionService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tx, err := s.findTransactionForWrite(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if tx.ContractID != nil {
		return shared.NewDomainError("IN_USE", "Transactions that settle a contract installment cannot be deleted")
	}

	if err := s.txRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	// A deleted transaction changes the account balance just like a new one.
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, finance.NewTransactionRecordedEvent(tx))
	}
	return nil
}

func (s *TransactionService) findTransaction(ctx context.Context, tenantID, id uuid.UUID) (*finance.Transaction, error) {
	tx, err := s.txRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Transaction not found")
	}
	return tx, nil
}

// findTransactionForWrite loads a transaction and authorizes the caller
// to mutate it. Non-admin users may only touch records they created.
func (s *TransactionService) findTransactionForWrite(ctx context.Context, tenantID, id uuid.UUID) (*finance.Transaction, error) {
	tx, err := s.findTransaction(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := shared.CheckOwnership(ctx, &tx.TenantAggregateRoot); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *TransactionService) publishEvents(ctx context.Context, tx *finance.Transaction) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range tx.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	tx.ClearDomainEvents()
}

func toDomainTransactionFilter(filter TransactionListFilter) finance.TransactionFilter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := finance.TransactionFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "date",
			OrderDir: "desc",
			Filters:  make(map[string]interface{}),
		},
		AccountID:  filter.AccountID,
		ContractID: filter.ContractID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}
	if filter.Type != nil {
		t := finance.TransactionType(*filter.Type)
		domainFilter.Type = &t
	}
	if filter.Status != nil {
		st := finance.TransactionStatus(*filter.Status)
		domainFilter.Status = &st
	}
	return domainFilter
}

func toTransactionResponse(t *finance.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		TenantID:    t.TenantID,
		AccountID:   t.AccountID,
		Currency:    string(t.Currency),
		Type:        string(t.Type),
		Status:      string(t.Status),
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
		ContractID:  t.ContractID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Version:     t.Version,
	}
}
