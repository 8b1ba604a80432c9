package data_test

import (
	"testing"

	"github.com/danokoye/athenaeum/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicy() data.LoanPolicy {
	return data.NewLoanPolicy(data.DefaultLoanPolicyConfig())
}

func TestAuthorizeBorrow(t *testing.T) {
	policy := newTestPolicy()
	user := newTestUser()

	t.Run("allows a clean request", func(t *testing.T) {
		books := []*data.Book{newTestBook(t, 3)}
		err := policy.AuthorizeBorrow(user, books, data.BorrowerHistory{})
		assert.NoError(t, err)
	})

	t.Run("rejects an inactive user", func(t *testing.T) {
		inactive := newTestUser()
		inactive.Activated = false
		err := policy.AuthorizeBorrow(inactive, []*data.Book{newTestBook(t, 3)}, data.BorrowerHistory{})
		assert.ErrorIs(t, err, data.ErrPolicyViolation)
	})

	t.Run("rejects a suspended user", func(t *testing.T) {
		suspended := newTestUser()
		suspended.Suspended = true
		err := policy.AuthorizeBorrow(suspended, []*data.Book{newTestBook(t, 3)}, data.BorrowerHistory{})
		assert.ErrorIs(t, err, data.ErrPolicyViolation)
	})

	t.Run("rejects duplicate books in one request", func(t *testing.T) {
		book := newTestBook(t, 3)
		err := policy.AuthorizeBorrow(user, []*data.Book{book, book}, data.BorrowerHistory{})
		assert.ErrorIs(t, err, data.ErrPolicyViolation)
	})

	t.Run("rejects reference books", func(t *testing.T) {
		quantity, err := data.NewBookQuantity(3)
		require.NoError(t, err)
		reference, err := data.NewBook("Encyclopaedia", nil, data.LanguageEnglish, data.TypeReference, quantity, 1)
		require.NoError(t, err)
		reference.ID = 5
		err = policy.AuthorizeBorrow(user, []*data.Book{reference}, data.BorrowerHistory{})
		assert.ErrorIs(t, err, data.ErrPolicyViolation)
	})

	t.Run("rejects a borrower holding an overdue loan", func(t *testing.T) {
		history := data.BorrowerHistory{OverdueActiveLoans: 1}
		err := policy.AuthorizeBorrow(user, []*data.Book{newTestBook(t, 3)}, history)
		assert.ErrorIs(t, err, data.ErrPolicyViolation)
	})

	t.Run("rejects a borrower past the overdue return limit", func(t *testing.T) {
		history := data.BorrowerHistory{OverdueReturns: 5}
		err := policy.AuthorizeBorrow(user, []*data.Book{newTestBook(t, 3)}, history)
		assert.ErrorIs(t, err, data.ErrPolicyViolation)
	})

	t.Run("enforces the concurrent loan cap across the request", func(t *testing.T) {
		first := newTestBook(t, 3)
		second := newTestBook(t, 3)
		second.ID = 8
		history := data.BorrowerHistory{ActiveLoans: 4}
		err := policy.AuthorizeBorrow(user, []*data.Book{first, second}, history)
		assert.ErrorIs(t, err, data.ErrPolicyViolation)

		err = policy.AuthorizeBorrow(user, []*data.Book{first}, history)
		assert.NoError(t, err)
	})

	t.Run("enforces the daily cap across the request", func(t *testing.T) {
		first := newTestBook(t, 3)
		second := newTestBook(t, 3)
		second.ID = 8
		history := data.BorrowerHistory{LoansToday: 2}
		err := policy.AuthorizeBorrow(user, []*data.Book{first, second}, history)
		assert.ErrorIs(t, err, data.ErrPolicyViolation)

		err = policy.AuthorizeBorrow(user, []*data.Book{first}, history)
		assert.NoError(t, err)
	})

	t.Run("requires at least one book", func(t *testing.T) {
		err := policy.AuthorizeBorrow(user, nil, data.BorrowerHistory{})
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}

func TestAuthorizeExtension(t *testing.T) {
	policy := newTestPolicy()
	c := fixedClock("2026-03-05")

	t.Run("allows an extension within the limits", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		assert.NoError(t, policy.AuthorizeExtension(loan, c, 7))
	})

	t.Run("rejects an overdue loan", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		err := policy.AuthorizeExtension(loan, fixedClock("2026-04-01"), 7)
		assert.ErrorIs(t, err, data.ErrPolicyViolation)
	})

	t.Run("caps a single extension", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		err := policy.AuthorizeExtension(loan, c, 15)
		assert.ErrorIs(t, err, data.ErrPolicyViolation)
	})

	t.Run("caps the total loan period", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		// 14-day period plus 10 is fine, a second 10 would push past 30.
		require.NoError(t, policy.AuthorizeExtension(loan, c, 10))
		require.NoError(t, loan.ExtendLoan(c, 10))
		err := policy.AuthorizeExtension(loan, c, 10)
		assert.ErrorIs(t, err, data.ErrPolicyViolation)
	})

	t.Run("rejects non-positive days", func(t *testing.T) {
		book := newTestBook(t, 3)
		loan := newTestLoan(t, book, 1)
		err := policy.AuthorizeExtension(loan, c, 0)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}
