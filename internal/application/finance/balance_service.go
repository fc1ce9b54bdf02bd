package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/contract"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Snapshot TTL; balances are recomputed from transactions so staleness
// only delays a read, never corrupts one.
const balanceSnapshotTTL = 5 * time.Minute

// BalanceService computes account and tenant-wide balances on demand,
// with a cache for single-account snapshots
type BalanceService struct {
	txRepo       finance.TransactionRepository
	accountRepo  finance.AccountRepository
	contractRepo contract.Repository
	cache        finance.BalanceCache
	aggregator   *finance.BalanceAggregator
	logger       *zap.Logger
}

// NewBalanceService creates a new BalanceService. The cache may be nil, in
// which case every read recomputes.
func NewBalanceService(
	txRepo finance.TransactionRepository,
	accountRepo finance.AccountRepository,
	contractRepo contract.Repository,
	cache finance.BalanceCache,
	logger *zap.Logger,
) *BalanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BalanceService{
		txRepo:       txRepo,
		accountRepo:  accountRepo,
		contractRepo: contractRepo,
		cache:        cache,
		aggregator:   finance.NewBalanceAggregator(logger),
		logger:       logger,
	}
}

// GetAccountBalance returns one account's settled balance, from the
// snapshot cache when fresh
func (s *BalanceService) GetAccountBalance(ctx context.Context, tenantID, accountID uuid.UUID) (*finance.AccountBalance, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, tenantID, accountID)
		if err != nil {
			s.logger.Warn("balance cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Account not found")
	}

	txs, err := s.txRepo.FindByAccount(ctx, tenantID, accountID, finance.TransactionFilter{
		Filter: shared.Filter{Page: 1, PageSize: 10000},
	})
	if err != nil {
		return nil, err
	}

	balance := s.aggregator.AggregateAccount(account, txs, time.Now())

	if s.cache != nil {
		if err := s.cache.Set(ctx, tenantID, balance, balanceSnapshotTTL); err != nil {
			s.logger.Warn("balance cache write failed", zap.Error(err))
		}
	}

	return &balance, nil
}

// GetReport aggregates every active account, currency bucket and pending
// installment for the tenant as of the given date. Deactivated accounts
// keep their transactions but drop out of the report.
func (s *BalanceService) GetReport(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*finance.BalanceReport, error) {
	accounts, err := s.accountRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	txs, err := s.txRepo.FindAllForTenant(ctx, tenantID, finance.TransactionFilter{
		Filter: shared.Filter{Page: 1, PageSize: 100000},
	})
	if err != nil {
		return nil, err
	}

	contracts, err := s.contractRepo.FindAllForTenant(ctx, tenantID, contract.Filter{
		Filter: shared.Filter{Page: 1, PageSize: 10000},
	})
	if err != nil {
		return nil, err
	}

	dues := collectInstallmentDues(contracts, asOf)

	return s.aggregator.Aggregate(txs, accounts, dues, asOf), nil
}

// InvalidateAccount drops the cached snapshot for an account
func (s *BalanceService) InvalidateAccount(ctx context.Context, tenantID, accountID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, tenantID, accountID); err != nil {
		s.logger.Warn("balance cache invalidation failed",
			zap.String("account_id", accountID.String()),
			zap.Error(err))
	}
}

// collectInstallmentDues flattens contract schedules into the aggregator's
// input shape. Cancelled contracts are skipped since their unpaid
// installments stopped being obligations.
func collectInstallmentDues(contracts []contract.Contract, asOf time.Time) []finance.InstallmentDue {
	var dues []finance.InstallmentDue
	for i := range contracts {
		c := &contracts[i]
		if c.EffectiveStatus(asOf) == contract.StatusCancelado {
			continue
		}
		for _, ins := range c.Installments {
			dues = append(dues, finance.InstallmentDue{
				ContractID: c.ID,
				Seq:        ins.Seq,
				DueDate:    ins.DueDate,
				Amount:     ins.Amount,
				Currency:   c.Currency,
				Paid:       ins.Paid,
			})
		}
	}
	return dues
}
