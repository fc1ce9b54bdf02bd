package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
)

// Service provides application-level currency and account operations
type Service struct {
	currencyRepo finance.CurrencyRepository
	accountRepo  finance.AccountRepository
	txRepo       finance.TransactionRepository
}

// NewService creates a new finance Service
func NewService(
	currencyRepo finance.CurrencyRepository,
	accountRepo finance.AccountRepository,
	txRepo finance.TransactionRepository,
) *Service {
	return &Service{
		currencyRepo: currencyRepo,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
	}
}

// ===================== Currency Operations =====================

// CurrencyResponse represents a currency in API responses
type CurrencyResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCurrencyRequest represents a request to create a currency
type CreateCurrencyRequest struct {
	Code      string     `json:"code" binding:"required,len=3"`
	Name      string     `json:"name" binding:"required"`
	Symbol    string     `json:"symbol" binding:"required"`
	CreatedBy *uuid.UUID `json:"-"`
}

// CreateCurrency registers a currency for the tenant
func (s *Service) CreateCurrency(ctx context.Context, tenantID uuid.UUID, req CreateCurrencyRequest) (*CurrencyResponse, error) {
	code := valueobject.Currency(req.Code)

	existing, err := s.currencyRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Currency code is already registered")
	}

	c, err := finance.NewCurrencyInfo(tenantID, code, req.Name, req.Symbol)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		c.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.currencyRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCurrencyResponse(c), nil
}

// ListCurrencies lists the tenant's currencies
func (s *Service) ListCurrencies(ctx context.Context, tenantID uuid.UUID) ([]CurrencyResponse, error) {
	currencies, err := s.currencyRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = *toCurrencyResponse(&currencies[i])
	}
	return responses, nil
}

// DeleteCurrency removes a currency that no account references
func (s *Service) DeleteCurrency(ctx context.Context, tenantID, id uuid.UUID) error {
	c, err := s.currencyRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if c == nil {
		return shared.NewDomainError("NOT_FOUND", "Currency not found")
	}
	if err := shared.CheckOwnership(ctx, &c.TenantAggregateRoot); err != nil {
		return err
	}

	accounts, err := s.accountRepo.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].CurrencyID == id {
			return shared.NewDomainError("IN_USE", "Currency is referenced by an account")
		}
	}

	return s.currencyRepo.DeleteForTenant(ctx, tenantID, id)
}

// ===================== Account Operations =====================

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	CurrencyID uuid.UUID `json:"currency_id"`
	Currency   string    `json:"currency"`
	Active     bool      `json:"active"`
	Remark     string    `json:"remark,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// CreateAccountRequest represents a request to create an account
type CreateAccountRequest struct {
	Name       string     `json:"name" binding:"required,max=100"`
	Type       string     `json:"type" binding:"required"`
	CurrencyID uuid.UUID  `json:"currency_id" binding:"required"`
	Remark     string     `json:"remark"`
	CreatedBy  *uuid.UUID `json:"-"`
}

// UpdateAccountRequest represents a request to update an account
type UpdateAccountRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Active *bool  `json:"active"`
	Remark string `json:"remark"`
}

// CreateAccount creates a new account denominated in a registered currency
func (s *Service) CreateAccount(ctx context.Context, tenantID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	currency, err := s.currencyRepo.FindByIDForTenant(ctx, tenantID, req.CurrencyID)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Currency not found")
	}

	account, err := finance.NewAccount(tenantID, req.Name, finance.AccountType(req.Type), currency.ID, currency.Code)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		account.SetRemark(req.Remark)
	}
	if req.CreatedBy != nil {
		account.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// GetAccountByID gets an account by ID
func (s *Service) GetAccountByID(ctx context.Context, tenantID, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.findAccount(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// ListAccounts lists the tenant's accounts
func (s *Service) ListAccounts(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]AccountResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	accounts, err := s.accountRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.accountRepo.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *toAccountResponse(&accounts[i])
	}
	return responses, total, nil
}

// UpdateAccount updates an account's name, active flag and remark
func (s *Service) UpdateAccount(ctx context.Context, tenantID, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.findAccount(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := shared.CheckOwnership(ctx, &account.TenantAggregateRoot); err != nil {
		return nil, err
	}

	if err := account.Rename(req.Name); err != nil {
		return nil, err
	}
	if req.Active != nil {
		if *req.Active {
			account.Activate()
		} else {
			account.Deactivate()
		}
	}
	account.SetRemark(req.Remark)

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// DeleteAccount removes an account with no transactions
func (s *Service) DeleteAccount(ctx context.Context, tenantID, id uuid.UUID) error {
	account, err := s.findAccount(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := shared.CheckOwnership(ctx, &account.TenantAggregateRoot); err != nil {
		return err
	}

	count, err := s.txRepo.CountForTenant(ctx, tenantID, finance.TransactionFilter{AccountID: &account.ID})
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("IN_USE", "Accounts with transactions cannot be deleted")
	}

	return s.accountRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *Service) findAccount(ctx context.Context, tenantID, id uuid.UUID) (*finance.Account, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Account not found")
	}
	return account, nil
}

func toCurrencyResponse(c *finance.CurrencyInfo) *CurrencyResponse {
	return &CurrencyResponse{
		ID:        c.ID,
		Code:      string(c.Code),
		Name:      c.Name,
		Symbol:    c.Symbol,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toAccountResponse(a *finance.Account) *AccountResponse {
	return &AccountResponse{
		ID:         a.ID,
		TenantID:   a.TenantID,
		Name:       a.Name,
		Type:       string(a.Type),
		CurrencyID: a.CurrencyID,
		Currency:   string(a.Currency),
		Active:     a.Active,
		Remark:     a.Remark,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		Version:    a.Version,
	}
}
