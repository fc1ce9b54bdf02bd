package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
)

// TransactionFilter defines filtering options for transaction queries
type TransactionFilter struct {
	shared.Filter
	AccountID  *uuid.UUID
	ContractID *uuid.UUID
	Type       *TransactionType
	Status     *TransactionStatus
	FromDate   *time.Time
	ToDate     *time.Time
}

// CurrencyRepository defines the interface for currency persistence
type CurrencyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CurrencyInfo, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CurrencyInfo, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code valueobject.Currency) (*CurrencyInfo, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]CurrencyInfo, error)
	Save(ctx context.Context, c *CurrencyInfo) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Account, error)
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]Account, error)
	Save(ctx context.Context, a *Account) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Transaction, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) ([]Transaction, error)
	FindByAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter TransactionFilter) ([]Transaction, error)
	FindByContract(ctx context.Context, tenantID, contractID uuid.UUID) ([]Transaction, error)
	Save(ctx context.Context, t *Transaction) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) (int64, error)
}
