package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InstallmentDue is the aggregator's view of one scheduled contract
// installment. The application layer maps contract schedules into this
// shape so the finance domain stays independent of the contract package.
type InstallmentDue struct {
	ContractID uuid.UUID
	Seq        int
	DueDate    time.Time
	Amount     decimal.Decimal
	Currency   valueobject.Currency
	Paid       bool
}

// CurrencyBalance is the rollup of settled and pending money in a single
// currency. Amounts from one currency never contribute to another: the
// aggregation key is the account's currency and Money arithmetic rejects
// mixing.
type CurrencyBalance struct {
	Currency      valueobject.Currency `json:"currency"`
	PaidIncome    decimal.Decimal      `json:"paid_income"`
	PaidExpense   decimal.Decimal      `json:"paid_expense"`
	TotalPaid     decimal.Decimal      `json:"total_paid"` // PaidIncome - PaidExpense
	PendingAmount decimal.Decimal      `json:"pending_amount"`
	PendingCount  int                  `json:"pending_count"`
}

// AccountBalance is the rollup for one account
type AccountBalance struct {
	AccountID   uuid.UUID            `json:"account_id"`
	AccountName string               `json:"account_name"`
	Currency    valueobject.Currency `json:"currency"`
	PaidIncome  decimal.Decimal      `json:"paid_income"`
	PaidExpense decimal.Decimal      `json:"paid_expense"`
	TotalPaid   decimal.Decimal      `json:"total_paid"`
}

// BalanceReport is the result of a balance aggregation run
type BalanceReport struct {
	AsOf       time.Time                                 `json:"as_of"`
	ByAccount  []AccountBalance                          `json:"by_account"`
	ByCurrency map[valueobject.Currency]*CurrencyBalance `json:"by_currency"`
	// Skipped counts transactions that referenced a missing account and
	// were excluded from the aggregate (best-effort reporting).
	Skipped int `json:"skipped"`
}

// TotalPaidFor returns the settled net total for a currency, zero when the
// currency has no activity.
func (r *BalanceReport) TotalPaidFor(currency valueobject.Currency) decimal.Decimal {
	if cb, ok := r.ByCurrency[currency]; ok {
		return cb.TotalPaid
	}
	return decimal.Zero
}

// BalanceAggregator computes balances from transactions and installment
// schedules already loaded in memory. All methods are pure apart from
// logging; every read recomputes from scratch so stored and derived state
// cannot drift apart.
type BalanceAggregator struct {
	logger *zap.Logger
}

// NewBalanceAggregator creates a new BalanceAggregator
func NewBalanceAggregator(logger *zap.Logger) *BalanceAggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BalanceAggregator{logger: logger}
}

// Aggregate sums settled transactions per account and per currency as of
// the given date, and folds pending installments into the per-currency
// buckets. A transaction whose account cannot be resolved is skipped and
// logged rather than failing the whole aggregate.
func (a *BalanceAggregator) Aggregate(
	transactions []Transaction,
	accounts []Account,
	installments []InstallmentDue,
	asOf time.Time,
) *BalanceReport {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	cutoff := valueobject.DateOnly(asOf)

	accountsByID := make(map[uuid.UUID]*Account, len(accounts))
	for i := range accounts {
		accountsByID[accounts[i].ID] = &accounts[i]
	}

	report := &BalanceReport{
		AsOf:       cutoff,
		ByCurrency: make(map[valueobject.Currency]*CurrencyBalance),
	}

	perAccount := make(map[uuid.UUID]*AccountBalance, len(accounts))
	for i := range accounts {
		acc := &accounts[i]
		perAccount[acc.ID] = &AccountBalance{
			AccountID:   acc.ID,
			AccountName: acc.Name,
			Currency:    acc.Currency,
			PaidIncome:  decimal.Zero,
			PaidExpense: decimal.Zero,
			TotalPaid:   decimal.Zero,
		}
	}

	for i := range transactions {
		tx := &transactions[i]

		acc, ok := accountsByID[tx.AccountID]
		if !ok {
			report.Skipped++
			a.logger.Warn("skipping transaction with unresolvable account",
				zap.String("transaction_id", tx.ID.String()),
				zap.String("account_id", tx.AccountID.String()),
			)
			continue
		}

		if tx.Status != TransactionStatusPaid {
			continue
		}
		if valueobject.DateOnly(tx.Date).After(cutoff) {
			continue
		}

		ab := perAccount[acc.ID]
		cb := a.currencyBucket(report, acc.Currency)

		switch tx.Type {
		case TransactionTypeIncome:
			ab.PaidIncome = ab.PaidIncome.Add(tx.Amount)
			cb.PaidIncome = cb.PaidIncome.Add(tx.Amount)
		case TransactionTypeExpense:
			ab.PaidExpense = ab.PaidExpense.Add(tx.Amount)
			cb.PaidExpense = cb.PaidExpense.Add(tx.Amount)
		}
		ab.TotalPaid = ab.PaidIncome.Sub(ab.PaidExpense)
		cb.TotalPaid = cb.PaidIncome.Sub(cb.PaidExpense)
	}

	for _, due := range installments {
		if due.Paid {
			continue
		}
		cb := a.currencyBucket(report, due.Currency)
		cb.PendingAmount = cb.PendingAmount.Add(due.Amount)
		cb.PendingCount++
	}

	for _, acc := range accounts {
		report.ByAccount = append(report.ByAccount, *perAccount[acc.ID])
	}

	return report
}

// AggregateAccount computes the settled balance of a single account as of
// the given date. Transactions belonging to other accounts are ignored.
func (a *BalanceAggregator) AggregateAccount(account *Account, transactions []Transaction, asOf time.Time) AccountBalance {
	scoped := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.AccountID == account.ID {
			scoped = append(scoped, tx)
		}
	}
	report := a.Aggregate(scoped, []Account{*account}, nil, asOf)
	return report.ByAccount[0]
}

func (a *BalanceAggregator) currencyBucket(r *BalanceReport, currency valueobject.Currency) *CurrencyBalance {
	cb, ok := r.ByCurrency[currency]
	if !ok {
		cb = &CurrencyBalance{
			Currency:      currency,
			PaidIncome:    decimal.Zero,
			PaidExpense:   decimal.Zero,
			TotalPaid:     decimal.Zero,
			PendingAmount: decimal.Zero,
		}
		r.ByCurrency[currency] = cb
	}
	return cb
}
