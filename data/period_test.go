package data_test

import (
	"testing"
	"time"

	"github.com/danokoye/athenaeum/data"
	"github.com/danokoye/athenaeum/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(date string) clock.Fixed {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return clock.NewFixed(t)
}

func TestNewLoanPeriod(t *testing.T) {
	t.Run("truncates both ends to UTC midnight", func(t *testing.T) {
		loan := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
		due := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
		period, err := data.NewLoanPeriod(loan, due)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), period.LoanDate)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), period.DueDate)
	})

	t.Run("rejects a due date before the loan date", func(t *testing.T) {
		loan := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err := data.NewLoanPeriod(loan, due)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}

func TestLoanPeriodOfDays(t *testing.T) {
	c := fixedClock("2026-03-01")

	t.Run("spans the requested number of days from today", func(t *testing.T) {
		period, err := data.LoanPeriodOfDays(c, 14)
		require.NoError(t, err)
		assert.Equal(t, c.Today(), period.LoanDate)
		assert.Equal(t, c.Today().AddDate(0, 0, 14), period.DueDate)
		assert.Equal(t, 14, period.TotalLoanDays())
	})

	t.Run("rejects non-positive day counts", func(t *testing.T) {
		_, err := data.LoanPeriodOfDays(c, 0)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}

func TestDefaultLoanPeriod(t *testing.T) {
	c := fixedClock("2026-03-01")
	period := data.DefaultLoanPeriod(c)
	assert.Equal(t, data.DefaultLoanPeriodDays, period.TotalLoanDays())
}

func TestLoanPeriodExtend(t *testing.T) {
	c := fixedClock("2026-03-01")
	period, err := data.LoanPeriodOfDays(c, 14)
	require.NoError(t, err)

	t.Run("advances the due date and keeps the loan date", func(t *testing.T) {
		extended, err := period.Extend(7)
		require.NoError(t, err)
		assert.Equal(t, period.LoanDate, extended.LoanDate)
		assert.Equal(t, period.DueDate.AddDate(0, 0, 7), extended.DueDate)
		assert.Equal(t, 21, extended.TotalLoanDays())
	})

	t.Run("rejects non-positive extensions", func(t *testing.T) {
		_, err := period.Extend(0)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}

func TestLoanPeriodOverdue(t *testing.T) {
	c := fixedClock("2026-03-01")
	period, err := data.LoanPeriodOfDays(c, 14)
	require.NoError(t, err)

	t.Run("not overdue on the due date itself", func(t *testing.T) {
		onDueDate := fixedClock("2026-03-15")
		assert.False(t, period.IsOverdue(onDueDate))
		assert.Equal(t, 0, period.OverdueDays(onDueDate))
		assert.Equal(t, 0, period.DaysUntilDue(onDueDate))
	})

	t.Run("overdue the day after", func(t *testing.T) {
		dayAfter := fixedClock("2026-03-16")
		assert.True(t, period.IsOverdue(dayAfter))
		assert.Equal(t, 1, period.OverdueDays(dayAfter))
		assert.Equal(t, -1, period.DaysUntilDue(dayAfter))
	})

	t.Run("days until due counts down", func(t *testing.T) {
		assert.Equal(t, 14, period.DaysUntilDue(c))
	})
}
