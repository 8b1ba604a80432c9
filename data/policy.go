package data

import (
	"fmt"

	"github.com/danokoye/athenaeum/internal/clock"
)

// LoanPolicyConfig carries every borrowing limit in one place so tests can
// exercise boundary values without touching constants.
type LoanPolicyConfig struct {
	LoanPeriodDays      int
	MaxActiveLoans      int
	MaxDailyLoans       int
	MaxExtensionDays    int
	MaxTotalLoanDays    int
	OverdueReturnLimit  int
	OverdueWindowDays   int
	DueSoonDays         int
}

// DefaultLoanPolicyConfig returns the standing library rules: a 14-day loan
// window, at most 5 concurrent and 3 daily loans per user, 14-day extensions
// capped at a 30-day total, and a soft blacklist of 5 overdue returns within
// the trailing 3 months.
func DefaultLoanPolicyConfig() LoanPolicyConfig {
	return LoanPolicyConfig{
		LoanPeriodDays:     14,
		MaxActiveLoans:     5,
		MaxDailyLoans:      3,
		MaxExtensionDays:   14,
		MaxTotalLoanDays:   30,
		OverdueReturnLimit: 5,
		OverdueWindowDays:  90,
		DueSoonDays:        3,
	}
}

// BorrowerHistory carries the aggregate counts the policy needs. They are
// supplied by the repository; the policy itself performs no I/O.
type BorrowerHistory struct {
	ActiveLoans        int64
	LoansToday         int64
	OverdueActiveLoans int64
	OverdueReturns     int64
}

// LoanPolicy enforces the cross-entity borrowing rules. All checks are pure
// decision functions over a user, the requested books and borrower history.
type LoanPolicy struct {
	cfg LoanPolicyConfig
}

// NewLoanPolicy returns a LoanPolicy enforcing cfg.
func NewLoanPolicy(cfg LoanPolicyConfig) LoanPolicy {
	return LoanPolicy{cfg: cfg}
}

// Config returns the limits the policy enforces.
func (p LoanPolicy) Config() LoanPolicyConfig { return p.cfg }

// AuthorizeBorrow checks every borrowing rule for a multi-book request and
// returns the first violation, before any loan is constructed or any stock
// touched.
func (p LoanPolicy) AuthorizeBorrow(user *User, books []*Book, history BorrowerHistory) error {
	if user == nil {
		return fmt.Errorf("%w: user must be provided", ErrInvalidArgument)
	}
	if len(books) == 0 {
		return fmt.Errorf("%w: at least one book must be requested", ErrInvalidArgument)
	}
	if !user.IsActive() {
		return fmt.Errorf("%w: only active users can borrow books", ErrPolicyViolation)
	}
	seen := make(map[int64]bool, len(books))
	for _, book := range books {
		if seen[book.ID] {
			return fmt.Errorf("%w: book %q appears more than once in the request", ErrPolicyViolation, book.Title)
		}
		seen[book.ID] = true
		if book.Type == TypeReference {
			return fmt.Errorf("%w: reference book %q is library-only and cannot be borrowed", ErrPolicyViolation, book.Title)
		}
	}
	if history.OverdueActiveLoans > 0 {
		return fmt.Errorf("%w: user holds an overdue loan and cannot borrow", ErrPolicyViolation)
	}
	if history.OverdueReturns >= int64(p.cfg.OverdueReturnLimit) {
		return fmt.Errorf("%w: user returned %d loans late within the last %d days and is temporarily blocked",
			ErrPolicyViolation, history.OverdueReturns, p.cfg.OverdueWindowDays)
	}
	if history.ActiveLoans+int64(len(books)) > int64(p.cfg.MaxActiveLoans) {
		return fmt.Errorf("%w: request exceeds the limit of %d concurrent loans", ErrPolicyViolation, p.cfg.MaxActiveLoans)
	}
	if history.LoansToday+int64(len(books)) > int64(p.cfg.MaxDailyLoans) {
		return fmt.Errorf("%w: request exceeds the limit of %d loans per day", ErrPolicyViolation, p.cfg.MaxDailyLoans)
	}
	return nil
}

// AuthorizeExtension checks the extension rules for a single loan. Both the
// borrow path and the extend path funnel through the policy, so the same
// rules hold everywhere.
func (p LoanPolicy) AuthorizeExtension(loan *BookLoan, c clock.Clock, days int) error {
	if loan == nil {
		return fmt.Errorf("%w: loan must be provided", ErrInvalidArgument)
	}
	if days <= 0 {
		return fmt.Errorf("%w: extension days must be positive", ErrInvalidArgument)
	}
	if loan.IsOverdue(c) {
		return fmt.Errorf("%w: overdue loans cannot be extended", ErrPolicyViolation)
	}
	if days > p.cfg.MaxExtensionDays {
		return fmt.Errorf("%w: a single extension cannot exceed %d days", ErrPolicyViolation, p.cfg.MaxExtensionDays)
	}
	if loan.Period.TotalLoanDays()+days > p.cfg.MaxTotalLoanDays {
		return fmt.Errorf("%w: total loan period cannot exceed %d days", ErrPolicyViolation, p.cfg.MaxTotalLoanDays)
	}
	return nil
}
