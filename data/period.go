package data

import (
	"fmt"
	"time"

	"github.com/danokoye/athenaeum/internal/clock"
)

// LoanPeriod is an immutable date range from the day a loan is taken out to
// the day it falls due. Both ends are UTC midnights.
type LoanPeriod struct {
	LoanDate time.Time `json:"loan_date"`
	DueDate  time.Time `json:"due_date"`
}

// NewLoanPeriod returns a LoanPeriod covering [loanDate, dueDate]. A due date
// before the loan date is rejected.
func NewLoanPeriod(loanDate, dueDate time.Time) (LoanPeriod, error) {
	loanDate = clock.Midnight(loanDate)
	dueDate = clock.Midnight(dueDate)
	if dueDate.Before(loanDate) {
		return LoanPeriod{}, fmt.Errorf("%w: due date must not be before loan date", ErrInvalidArgument)
	}
	return LoanPeriod{LoanDate: loanDate, DueDate: dueDate}, nil
}

// DefaultLoanPeriodDays is the standard lending window.
const DefaultLoanPeriodDays = 14

// DefaultLoanPeriod returns a LoanPeriod starting today with the standard
// lending window.
func DefaultLoanPeriod(c clock.Clock) LoanPeriod {
	period, _ := LoanPeriodOfDays(c, DefaultLoanPeriodDays)
	return period
}

// LoanPeriodOfDays returns a LoanPeriod starting today and due days from now.
func LoanPeriodOfDays(c clock.Clock, days int) (LoanPeriod, error) {
	if days <= 0 {
		return LoanPeriod{}, fmt.Errorf("%w: loan period days must be positive", ErrInvalidArgument)
	}
	today := c.Today()
	return NewLoanPeriod(today, today.AddDate(0, 0, days))
}

// Extend returns a new period with the due date advanced by days. The loan
// date is unchanged. Upper bounds on the total period are enforced by the
// loan policy, not here.
func (p LoanPeriod) Extend(days int) (LoanPeriod, error) {
	if days <= 0 {
		return LoanPeriod{}, fmt.Errorf("%w: extension days must be positive", ErrInvalidArgument)
	}
	return LoanPeriod{LoanDate: p.LoanDate, DueDate: p.DueDate.AddDate(0, 0, days)}, nil
}

// OverdueDays returns how many whole days past due the period is as of today,
// or 0 if it is not yet due.
func (p LoanPeriod) OverdueDays(c clock.Clock) int {
	days := daysBetween(p.DueDate, c.Today())
	if days < 0 {
		return 0
	}
	return days
}

// DaysUntilDue returns the signed number of days from today to the due date.
// The result is negative once the period is overdue.
func (p LoanPeriod) DaysUntilDue(c clock.Clock) int {
	return daysBetween(c.Today(), p.DueDate)
}

// TotalLoanDays returns the length of the period in days.
func (p LoanPeriod) TotalLoanDays() int {
	return daysBetween(p.LoanDate, p.DueDate)
}

// IsOverdue reports whether today is past the due date.
func (p LoanPeriod) IsOverdue(c clock.Clock) bool {
	return c.Today().After(p.DueDate)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
