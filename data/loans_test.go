package data_test

import (
	"testing"

	"github.com/danokoye/athenaeum/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser() *data.User {
	return &data.User{
		ID:        11,
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Role:      data.RoleUser,
		Activated: true,
	}
}

func newTestLoan(t *testing.T, book *data.Book, copies int) *data.BookLoan {
	t.Helper()
	quantity, err := data.NewLoanQuantity(copies)
	require.NoError(t, err)
	period, err := data.LoanPeriodOfDays(fixedClock("2026-03-01"), 14)
	require.NoError(t, err)
	loan, err := data.NewBookLoan(book, newTestUser(), quantity, period)
	require.NoError(t, err)
	return loan
}

func TestNewBookLoan(t *testing.T) {
	t.Run("creates an active loan with a reference", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		assert.Equal(t, data.LoanActive, loan.Status)
		assert.NotEmpty(t, loan.Reference)
		assert.Equal(t, book.ID, loan.BookID)
		assert.True(t, loan.IsActive())
	})

	t.Run("rejects an inactive user", func(t *testing.T) {
		book := newTestBook(t, 3)
		user := newTestUser()
		user.Activated = false
		quantity, _ := data.NewLoanQuantity(1)
		period, _ := data.LoanPeriodOfDays(fixedClock("2026-03-01"), 14)
		_, err := data.NewBookLoan(book, user, quantity, period)
		assert.ErrorIs(t, err, data.ErrInvalidState)
	})

	t.Run("rejects a suspended user", func(t *testing.T) {
		book := newTestBook(t, 3)
		user := newTestUser()
		user.Suspended = true
		quantity, _ := data.NewLoanQuantity(1)
		period, _ := data.LoanPeriodOfDays(fixedClock("2026-03-01"), 14)
		_, err := data.NewBookLoan(book, user, quantity, period)
		assert.ErrorIs(t, err, data.ErrInvalidState)
	})

	t.Run("rejects a book without enough stock", func(t *testing.T) {
		book := newTestBook(t, 1)
		quantity, _ := data.NewLoanQuantity(2)
		period, _ := data.LoanPeriodOfDays(fixedClock("2026-03-01"), 14)
		_, err := data.NewBookLoan(book, newTestUser(), quantity, period)
		assert.ErrorIs(t, err, data.ErrInvalidState)
	})
}

func TestExecuteLoan(t *testing.T) {
	t.Run("decrements the book stock once", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 2)
		require.NoError(t, loan.ExecuteLoan(book))
		assert.Equal(t, 1, book.Quantity.Value())

		err := loan.ExecuteLoan(book)
		assert.ErrorIs(t, err, data.ErrInvalidState)
		assert.Equal(t, 1, book.Quantity.Value())
	})

	t.Run("rejects a different book", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		other := newTestBook(t, 3)
		other.ID = 99
		err := loan.ExecuteLoan(other)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}

func TestReturnBook(t *testing.T) {
	c := fixedClock("2026-03-10")

	t.Run("completes the loan and restores stock", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 2)
		require.NoError(t, loan.ExecuteLoan(book))

		require.NoError(t, loan.ReturnBook(book, c))
		assert.Equal(t, data.LoanReturned, loan.Status)
		assert.Equal(t, 3, book.Quantity.Value())
		require.NotNil(t, loan.ReturnedAt)
		assert.Equal(t, c.Now(), *loan.ReturnedAt)
	})

	t.Run("cannot return a loan twice", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		require.NoError(t, loan.ExecuteLoan(book))
		require.NoError(t, loan.ReturnBook(book, c))

		err := loan.ReturnBook(book, c)
		assert.ErrorIs(t, err, data.ErrInvalidState)
		assert.Equal(t, 3, book.Quantity.Value())
	})

	t.Run("cannot return a cancelled loan", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		require.NoError(t, loan.CancelLoan())

		err := loan.ReturnBook(book, c)
		assert.ErrorIs(t, err, data.ErrInvalidState)
	})
}

func TestExtendLoan(t *testing.T) {
	t.Run("pushes the due date out", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		dueBefore := loan.Period.DueDate
		require.NoError(t, loan.ExtendLoan(fixedClock("2026-03-05"), 7))
		assert.Equal(t, dueBefore.AddDate(0, 0, 7), loan.Period.DueDate)
	})

	t.Run("rejects extending an overdue loan", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		overdueClock := fixedClock("2026-04-01")
		require.True(t, loan.IsOverdue(overdueClock))
		err := loan.ExtendLoan(overdueClock, 7)
		assert.ErrorIs(t, err, data.ErrInvalidState)
	})

	t.Run("rejects extending a returned loan", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		require.NoError(t, loan.ExecuteLoan(book))
		require.NoError(t, loan.ReturnBook(book, fixedClock("2026-03-10")))
		err := loan.ExtendLoan(fixedClock("2026-03-10"), 7)
		assert.ErrorIs(t, err, data.ErrInvalidState)
	})
}

func TestCancelLoan(t *testing.T) {
	t.Run("cancels an active loan", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		require.NoError(t, loan.CancelLoan())
		assert.Equal(t, data.LoanCancelled, loan.Status)
		assert.False(t, loan.IsActive())
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		require.NoError(t, loan.CancelLoan())
		assert.ErrorIs(t, loan.CancelLoan(), data.ErrInvalidState)
		assert.ErrorIs(t, loan.ReturnBook(book, fixedClock("2026-03-10")), data.ErrInvalidState)
	})
}

func TestLoanOverdueDays(t *testing.T) {
	book := newTestBook(t, 3)
	loan := newTestLoan(t, book, 1)
	assert.Equal(t, 0, loan.OverdueDays(fixedClock("2026-03-10")))
	assert.Equal(t, 5, loan.OverdueDays(fixedClock("2026-03-20")))

	require.NoError(t, loan.ExecuteLoan(book))
	require.NoError(t, loan.ReturnBook(book, fixedClock("2026-03-20")))
	assert.Equal(t, 0, loan.OverdueDays(fixedClock("2026-03-20")))
}
