package data

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/danokoye/athenaeum/internal/clock"
	"github.com/google/uuid"
)

// LoanStatus is the lifecycle state of a loan. Active is the only state that
// permits transitions; returned and cancelled are terminal.
type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanReturned  LoanStatus = "returned"
	LoanCancelled LoanStatus = "cancelled"
)

// SupportedLoanStatuses lists every valid loan status.
var SupportedLoanStatuses = []LoanStatus{LoanActive, LoanReturned, LoanCancelled}

// BookLoan associates one book and one user for a quantity and period, and
// owns the loan state machine. It is the only writer of book stock during the
// loan lifecycle: ExecuteLoan is the sole decrement path and ReturnBook the
// sole increment path.
type BookLoan struct {
	ID        int64        `json:"id"`
	Reference string       `json:"reference"`
	BookID    int64        `json:"book_id"`
	UserID    int64        `json:"user_id"`
	Quantity  LoanQuantity `json:"quantity"`
	Period    LoanPeriod   `json:"period"`
	Status    LoanStatus   `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	ReturnedAt *time.Time  `json:"returned_at,omitempty"`
	Version   int32        `json:"-"`

	// executed guards the once-only stock decrement within the transaction
	// that creates the loan. It is not persisted.
	executed bool
}

// MarshalJSON renders a LoanQuantity as its plain copy count.
func (q LoanQuantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.value)
}

// UnmarshalJSON parses and validates a LoanQuantity from a plain number.
func (q *LoanQuantity) UnmarshalJSON(b []byte) error {
	var value int
	if err := json.Unmarshal(b, &value); err != nil {
		return err
	}
	parsed, err := NewLoanQuantity(value)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// NewBookLoan validates its inputs and returns a new active loan. The book
// stock is untouched until ExecuteLoan runs.
func NewBookLoan(book *Book, user *User, quantity LoanQuantity, period LoanPeriod) (*BookLoan, error) {
	if book == nil {
		return nil, fmt.Errorf("%w: book must be provided", ErrInvalidArgument)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user must be provided", ErrInvalidArgument)
	}
	if quantity.Value() < 1 {
		return nil, fmt.Errorf("%w: loan quantity must be provided", ErrInvalidArgument)
	}
	if period.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: loan period must be provided", ErrInvalidArgument)
	}
	if !user.IsActive() {
		return nil, fmt.Errorf("%w: only active users can borrow books", ErrInvalidState)
	}
	if !book.CanBorrow(quantity.Value()) {
		return nil, fmt.Errorf("%w: book %q is not available for %d copies", ErrInvalidState, book.Title, quantity.Value())
	}
	return &BookLoan{
		Reference: uuid.NewString(),
		BookID:    book.ID,
		UserID:    user.ID,
		Quantity:  quantity,
		Period:    period,
		Status:    LoanActive,
	}, nil
}

// IsActive reports whether the loan is still out.
func (l *BookLoan) IsActive() bool { return l.Status == LoanActive }

// IsOverdue reports whether the loan is active and past its due date.
func (l *BookLoan) IsOverdue(c clock.Clock) bool {
	return l.Status == LoanActive && l.Period.IsOverdue(c)
}

// OverdueDays returns how many days past due the loan is, or 0.
func (l *BookLoan) OverdueDays(c clock.Clock) int {
	if l.Status != LoanActive {
		return 0
	}
	return l.Period.OverdueDays(c)
}

// ExecuteLoan performs the stock decrement on the associated book. It may run
// exactly once, while the loan is active.
func (l *BookLoan) ExecuteLoan(book *Book) error {
	if l.Status != LoanActive {
		return fmt.Errorf("%w: only active loans can be executed", ErrInvalidState)
	}
	if l.executed {
		return fmt.Errorf("%w: loan %s has already been executed", ErrInvalidState, l.Reference)
	}
	if book == nil || (l.BookID != 0 && book.ID != l.BookID) {
		return fmt.Errorf("%w: loan %s does not belong to this book", ErrInvalidArgument, l.Reference)
	}
	if err := book.BorrowStock(l.Quantity.Value()); err != nil {
		return err
	}
	l.executed = true
	return nil
}

// ReturnBook puts the borrowed copies back into stock and moves the loan to
// its returned terminal state. Only active loans can be returned.
func (l *BookLoan) ReturnBook(book *Book, c clock.Clock) error {
	if l.Status != LoanActive {
		return fmt.Errorf("%w: only active loans can be returned", ErrInvalidState)
	}
	if book == nil || (l.BookID != 0 && book.ID != l.BookID) {
		return fmt.Errorf("%w: loan %s does not belong to this book", ErrInvalidArgument, l.Reference)
	}
	if err := book.ReturnStock(l.Quantity.Value()); err != nil {
		return err
	}
	l.Status = LoanReturned
	now := c.Now()
	l.ReturnedAt = &now
	return nil
}

// ExtendLoan advances the due date by days. Overdue or settled loans cannot
// be extended; the policy layer additionally caps extension length.
func (l *BookLoan) ExtendLoan(c clock.Clock, days int) error {
	if l.Status != LoanActive {
		return fmt.Errorf("%w: only active loans can be extended", ErrInvalidState)
	}
	if l.IsOverdue(c) {
		return fmt.Errorf("%w: overdue loans cannot be extended", ErrInvalidState)
	}
	period, err := l.Period.Extend(days)
	if err != nil {
		return err
	}
	l.Period = period
	return nil
}

// CancelLoan moves an active loan to its cancelled terminal state. It has no
// stock side effect of its own; callers restore stock for executed loans.
func (l *BookLoan) CancelLoan() error {
	if l.Status != LoanActive {
		return fmt.Errorf("%w: only active loans can be cancelled", ErrInvalidState)
	}
	l.Status = LoanCancelled
	return nil
}
