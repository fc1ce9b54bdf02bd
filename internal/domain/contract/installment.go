package contract

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Installment represents one scheduled monthly payment obligation (cuota)
// derived from the contract's total price. It is a value object within the
// Contract aggregate, stored as JSONB.
type Installment struct {
	Seq           int             `json:"seq"` // 1-based position in the schedule
	DueDate       time.Time       `json:"due_date"`
	Amount        decimal.Decimal `json:"amount"`
	Paid          bool            `json:"paid"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	TransactionID *uuid.UUID      `json:"transaction_id,omitempty"` // Settling transaction, if any
}

// GetAmountMoney returns the installment amount as Money in the given currency
func (i *Installment) GetAmountMoney(currency valueobject.Currency) valueobject.Money {
	m, _ := valueobject.NewMoney(i.Amount, currency)
	return m
}

// Installments is a slice of Installment that implements GORM Scanner/Valuer for JSONB storage
type Installments []Installment

// Value implements driver.Valuer interface for GORM to store as JSONB
func (ins Installments) Value() (driver.Value, error) {
	if ins == nil {
		return "[]", nil
	}
	return json.Marshal(ins)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (ins *Installments) Scan(value interface{}) error {
	if value == nil {
		*ins = Installments{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Installments: unsupported type")
	}

	if len(bytes) == 0 {
		*ins = Installments{}
		return nil
	}

	return json.Unmarshal(bytes, ins)
}

// TotalAmount returns the sum of all installment amounts
func (ins Installments) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, i := range ins {
		total = total.Add(i.Amount)
	}
	return total
}

// PendingCount returns the number of unpaid installments
func (ins Installments) PendingCount() int {
	count := 0
	for _, i := range ins {
		if !i.Paid {
			count++
		}
	}
	return count
}

// PendingAmount returns the sum of unpaid installment amounts
func (ins Installments) PendingAmount() decimal.Decimal {
	total := decimal.Zero
	for _, i := range ins {
		if !i.Paid {
			total = total.Add(i.Amount)
		}
	}
	return total
}

// PaidAmount returns the sum of paid installment amounts
func (ins Installments) PaidAmount() decimal.Decimal {
	total := decimal.Zero
	for _, i := range ins {
		if i.Paid {
			total = total.Add(i.Amount)
		}
	}
	return total
}

// sumTolerance is the accepted relative drift between an edited schedule
// and the contract's total price (±1%).
var sumTolerance = decimal.NewFromFloat(0.01)

// GenerateInstallments splits a contract's total price into one installment
// per calendar month between startDate and endDate inclusive.
//
// The per-month base amount is the total divided by the month count, rounded
// to 2 decimal places; the rounding remainder is assigned to the last
// installment so the schedule always sums to the total exactly. Due dates
// keep the start date's day of month, clamped to the length of shorter
// months.
//
// Maintenance contracts are invoiced manually and produce an empty schedule.
func GenerateInstallments(startDate, endDate time.Time, totalPrice valueobject.Money, isMaintenance bool) (Installments, error) {
	if isMaintenance {
		return Installments{}, nil
	}
	if !endDate.After(startDate) {
		return nil, shared.ErrInvalidRange
	}
	if !totalPrice.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}

	months := valueobject.MonthsSpanned(startDate, endDate)

	total := totalPrice.Amount()
	base := total.Div(decimal.NewFromInt(int64(months))).Round(2)
	remainder := total.Sub(base.Mul(decimal.NewFromInt(int64(months))))

	installments := make(Installments, months)
	for i := 0; i < months; i++ {
		amount := base
		if i == months-1 {
			amount = amount.Add(remainder)
		}
		installments[i] = Installment{
			Seq:     i + 1,
			DueDate: valueobject.AddMonthsClamped(valueobject.DateOnly(startDate), i),
			Amount:  amount,
		}
	}

	return installments, nil
}

// ValidateSchedule checks an installment schedule (possibly hand-edited in
// the creation wizard) against the contract's total price and date range.
// Amounts may drift from the generated split but must sum to the total
// within the ±1% tolerance; due dates must be strictly increasing with
// exactly one installment per calendar month of the range.
func ValidateSchedule(ins Installments, startDate, endDate time.Time, totalPrice valueobject.Money) error {
	months := valueobject.MonthsSpanned(startDate, endDate)
	if len(ins) != months {
		return shared.NewDomainError("INVALID_SCHEDULE", "Schedule must have exactly one installment per month of the contract range")
	}

	expectedMonth := valueobject.YearMonthOf(startDate)
	var prev time.Time
	for idx, i := range ins {
		if !i.Amount.IsPositive() {
			return shared.ErrInvalidAmount
		}
		if idx > 0 && !i.DueDate.After(prev) {
			return shared.NewDomainError("INVALID_SCHEDULE", "Installment due dates must be strictly increasing")
		}
		if valueobject.YearMonthOf(i.DueDate) != expectedMonth {
			return shared.NewDomainError("INVALID_SCHEDULE", "Installment due dates must cover each calendar month exactly once")
		}
		prev = i.DueDate
		expectedMonth = valueobject.YearMonthOf(valueobject.AddMonthsClamped(i.DueDate, 1))
	}

	total := totalPrice.Amount()
	drift := ins.TotalAmount().Sub(total).Abs()
	if total.IsPositive() && drift.GreaterThan(total.Mul(sumTolerance)) {
		return shared.NewDomainError("INVALID_SCHEDULE", "Installment amounts must sum to the contract total within tolerance")
	}

	return nil
}
