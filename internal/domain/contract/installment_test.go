package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ars(amount float64) valueobject.Money {
	return valueobject.NewMoneyARSFromFloat(amount)
}

func TestGenerateInstallments_EvenSplit(t *testing.T) {
	ins, err := GenerateInstallments(date(2024, time.January, 15), date(2024, time.March, 15), ars(300), false)
	require.NoError(t, err)
	require.Len(t, ins, 3)

	expected := []time.Time{
		date(2024, time.January, 15),
		date(2024, time.February, 15),
		date(2024, time.March, 15),
	}
	for i, inst := range ins {
		assert.Equal(t, i+1, inst.Seq)
		assert.Equal(t, expected[i], inst.DueDate)
		assert.True(t, inst.Amount.Equal(decimal.NewFromInt(100)), "installment %d: %s", i, inst.Amount)
		assert.False(t, inst.Paid)
	}
}

func TestGenerateInstallments_RemainderOnLast(t *testing.T) {
	ins, err := GenerateInstallments(date(2024, time.January, 1), date(2024, time.March, 1), ars(100), false)
	require.NoError(t, err)
	require.Len(t, ins, 3)

	assert.Equal(t, "33.33", ins[0].Amount.StringFixed(2))
	assert.Equal(t, "33.33", ins[1].Amount.StringFixed(2))
	assert.Equal(t, "33.34", ins[2].Amount.StringFixed(2))
	assert.True(t, ins.TotalAmount().Equal(decimal.NewFromInt(100)))
}

func TestGenerateInstallments_ClampsDueDay(t *testing.T) {
	ins, err := GenerateInstallments(date(2024, time.January, 31), date(2024, time.February, 28), ars(100), false)
	require.NoError(t, err)
	require.Len(t, ins, 2)

	assert.Equal(t, date(2024, time.January, 31), ins[0].DueDate)
	assert.Equal(t, date(2024, time.February, 29), ins[1].DueDate) // 2024 is a leap year
}

func TestGenerateInstallments_ClampsDueDayNonLeap(t *testing.T) {
	ins, err := GenerateInstallments(date(2023, time.January, 31), date(2023, time.February, 28), ars(100), false)
	require.NoError(t, err)
	require.Len(t, ins, 2)

	assert.Equal(t, date(2023, time.February, 28), ins[1].DueDate)
}

func TestGenerateInstallments_Maintenance(t *testing.T) {
	ins, err := GenerateInstallments(date(2024, time.March, 1), date(2024, time.January, 1), ars(-50), true)
	require.NoError(t, err)
	assert.Empty(t, ins)
}

func TestGenerateInstallments_InvalidRange(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"end before start", date(2024, time.March, 1), date(2024, time.January, 1)},
		{"end equals start", date(2024, time.March, 1), date(2024, time.March, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateInstallments(tt.start, tt.end, ars(100), false)
			var derr *shared.DomainError
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, "INVALID_RANGE", derr.Code)
		})
	}
}

func TestGenerateInstallments_InvalidAmount(t *testing.T) {
	for _, amount := range []float64{0, -100} {
		_, err := GenerateInstallments(date(2024, time.January, 1), date(2024, time.June, 1), ars(amount), false)
		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "INVALID_AMOUNT", derr.Code)
	}
}

func TestGenerateInstallments_SumAlwaysExact(t *testing.T) {
	// Property: for any valid range and price, the schedule sums to the
	// total exactly and dates are strictly increasing, one per month.
	cases := []struct {
		start, end time.Time
		total      float64
	}{
		{date(2024, time.January, 15), date(2024, time.December, 15), 1234.56},
		{date(2024, time.January, 31), date(2025, time.January, 30), 999.99},
		{date(2023, time.November, 5), date(2024, time.February, 5), 0.07},
		{date(2024, time.June, 1), date(2024, time.July, 1), 1000000},
		{date(2024, time.February, 29), date(2025, time.February, 27), 777.77},
	}

	for _, tc := range cases {
		ins, err := GenerateInstallments(tc.start, tc.end, ars(tc.total), false)
		require.NoError(t, err)
		require.Equal(t, valueobject.MonthsSpanned(tc.start, tc.end), len(ins))

		assert.True(t, ins.TotalAmount().Equal(decimal.NewFromFloat(tc.total)),
			"total %v: got %s", tc.total, ins.TotalAmount())

		month := valueobject.YearMonthOf(tc.start)
		for i, inst := range ins {
			if i > 0 {
				assert.True(t, inst.DueDate.After(ins[i-1].DueDate), "dates must be strictly increasing")
			}
			assert.Equal(t, month, valueobject.YearMonthOf(inst.DueDate), "one installment per calendar month")
			month = valueobject.YearMonthOf(valueobject.AddMonthsClamped(inst.DueDate, 1))
		}
		assert.Equal(t, valueobject.YearMonthOf(tc.end), valueobject.YearMonthOf(ins[len(ins)-1].DueDate))
	}
}

func TestInstallments_Summaries(t *testing.T) {
	paidAt := date(2024, time.February, 1)
	ins := Installments{
		{Seq: 1, DueDate: date(2024, time.January, 1), Amount: decimal.NewFromInt(100), Paid: true, PaidAt: &paidAt},
		{Seq: 2, DueDate: date(2024, time.February, 1), Amount: decimal.NewFromInt(100)},
		{Seq: 3, DueDate: date(2024, time.March, 1), Amount: decimal.NewFromInt(100)},
	}

	assert.Equal(t, 2, ins.PendingCount())
	assert.True(t, ins.PendingAmount().Equal(decimal.NewFromInt(200)))
	assert.True(t, ins.PaidAmount().Equal(decimal.NewFromInt(100)))
	assert.True(t, ins.TotalAmount().Equal(decimal.NewFromInt(300)))
}

func TestValidateSchedule(t *testing.T) {
	start := date(2024, time.January, 15)
	end := date(2024, time.March, 15)
	total := ars(300)

	valid := func() Installments {
		ins, err := GenerateInstallments(start, end, total, false)
		require.NoError(t, err)
		return ins
	}

	t.Run("generated schedule validates", func(t *testing.T) {
		assert.NoError(t, ValidateSchedule(valid(), start, end, total))
	})

	t.Run("edited amounts within tolerance validate", func(t *testing.T) {
		ins := valid()
		ins[0].Amount = decimal.NewFromFloat(101.00)
		ins[1].Amount = decimal.NewFromFloat(99.50)
		// sum = 300.50, drift 0.5 < 1% of 300
		assert.NoError(t, ValidateSchedule(ins, start, end, total))
	})

	t.Run("drift beyond tolerance rejected", func(t *testing.T) {
		ins := valid()
		ins[0].Amount = decimal.NewFromFloat(150.00)
		err := ValidateSchedule(ins, start, end, total)
		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "INVALID_SCHEDULE", derr.Code)
	})

	t.Run("wrong installment count rejected", func(t *testing.T) {
		ins := valid()[:2]
		assert.Error(t, ValidateSchedule(ins, start, end, total))
	})

	t.Run("non increasing dates rejected", func(t *testing.T) {
		ins := valid()
		ins[1].DueDate = ins[0].DueDate
		assert.Error(t, ValidateSchedule(ins, start, end, total))
	})

	t.Run("duplicate month rejected", func(t *testing.T) {
		ins := valid()
		ins[1].DueDate = ins[0].DueDate.AddDate(0, 0, 1)
		assert.Error(t, ValidateSchedule(ins, start, end, total))
	})

	t.Run("non positive amount rejected", func(t *testing.T) {
		ins := valid()
		ins[1].Amount = decimal.Zero
		assert.Error(t, ValidateSchedule(ins, start, end, total))
	})
}
