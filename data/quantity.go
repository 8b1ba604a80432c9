package data

import "fmt"

// MaxBookQuantity is the largest number of copies of a single book the
// catalog will track.
const MaxBookQuantity = 9999

// BookQuantity is the count of physical copies of a book available for loan.
// It is an immutable value in [0, MaxBookQuantity]; every mutation returns a
// re-validated new instance.
type BookQuantity struct {
	value int
}

// NewBookQuantity validates value and returns a new BookQuantity.
func NewBookQuantity(value int) (BookQuantity, error) {
	if value < 0 {
		return BookQuantity{}, fmt.Errorf("%w: book quantity must not be negative", ErrInvalidArgument)
	}
	if value > MaxBookQuantity {
		return BookQuantity{}, fmt.Errorf("%w: book quantity must not exceed %d", ErrInvalidArgument, MaxBookQuantity)
	}
	return BookQuantity{value: value}, nil
}

// Value returns the number of copies.
func (q BookQuantity) Value() int { return q.value }

// Increase returns a new BookQuantity raised by amount. The result is
// re-validated against the upper bound.
func (q BookQuantity) Increase(amount int) (BookQuantity, error) {
	if amount <= 0 {
		return BookQuantity{}, fmt.Errorf("%w: increase amount must be positive", ErrInvalidArgument)
	}
	return NewBookQuantity(q.value + amount)
}

// Decrease returns a new BookQuantity lowered by amount. Decreasing below
// zero is rejected.
func (q BookQuantity) Decrease(amount int) (BookQuantity, error) {
	if amount <= 0 {
		return BookQuantity{}, fmt.Errorf("%w: decrease amount must be positive", ErrInvalidArgument)
	}
	if amount > q.value {
		return BookQuantity{}, fmt.Errorf("%w: cannot decrease quantity %d by %d", ErrInvalidArgument, q.value, amount)
	}
	return NewBookQuantity(q.value - amount)
}

// HasStock reports whether at least one copy is available.
func (q BookQuantity) HasStock() bool { return q.value > 0 }

// HasStockFor reports whether at least required copies are available.
func (q BookQuantity) HasStockFor(required int) bool { return q.value >= required }

// LoanQuantity is the number of copies taken out by a single loan. It is at
// least 1; the practical upper bound comes from the loan policy, not this type.
type LoanQuantity struct {
	value int
}

// NewLoanQuantity validates value and returns a new LoanQuantity.
func NewLoanQuantity(value int) (LoanQuantity, error) {
	if value < 1 {
		return LoanQuantity{}, fmt.Errorf("%w: loan quantity must be at least 1", ErrInvalidArgument)
	}
	return LoanQuantity{value: value}, nil
}

// Value returns the number of copies on loan.
func (q LoanQuantity) Value() int { return q.value }
