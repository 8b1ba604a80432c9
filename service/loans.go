package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/danokoye/athenaeum/data"
	"github.com/danokoye/athenaeum/data/dto"
	"github.com/danokoye/athenaeum/internal/validator"
	"github.com/danokoye/athenaeum/repository"
)

type loans interface {
	BorrowBooks(userID int64, body dto.BorrowBooksRequestBody) ([]*data.BookLoan, error)
	ShowLoan(loanID int64) (*data.BookLoan, error)
	ShowLoanByReference(reference string) (*data.BookLoan, error)
	ListLoans(qs dto.QsListLoans) ([]*data.BookLoan, data.Metadata, error)
	ListOverdueLoans() ([]*data.BookLoan, error)
	ReturnLoan(loanID int64) (*data.BookLoan, error)
	ExtendLoan(loanID int64, days int) (*data.BookLoan, error)
	CancelLoan(loanID int64) (*data.BookLoan, error)
	LoanOwner(loanID int64) (int64, error)
}

// BorrowBooks service takes out one loan per requested book for a user. The
// whole request is authorized by the loan policy up front and persisted in a
// single transaction, so a request either creates every loan or none.
func (s *service) BorrowBooks(userID int64, body dto.BorrowBooksRequestBody) ([]*data.BookLoan, error) {
	v := validator.New()
	v.Check(len(body.Books) > 0, "books", "must contain at least one book")
	for _, item := range body.Books {
		v.Check(item.BookID > 0, "books.book_id", "must be a positive integer")
		v.Check(item.Quantity > 0, "books.quantity", "must be a positive integer")
	}
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	bookIDs := make([]int64, 0, len(body.Books))
	for _, item := range body.Books {
		bookIDs = append(bookIDs, item.BookID)
	}
	books, err := s.repo.GetBooksByIDIn(bookIDs)
	if err != nil {
		return nil, err
	}
	booksByID := make(map[int64]*data.Book, len(books))
	for _, book := range books {
		booksByID[book.ID] = book
	}
	for _, id := range bookIDs {
		if _, ok := booksByID[id]; !ok {
			v.AddError("books", fmt.Sprintf("book with id %d does not exist", id))
			return nil, s.failedValidation(v.Errors)
		}
	}
	// The query returns each book once however many times it is requested,
	// so the policy gets one entry per request line.
	requested := make([]*data.Book, 0, len(body.Books))
	for _, item := range body.Books {
		requested = append(requested, booksByID[item.BookID])
	}
	history, err := s.borrowerHistory(userID)
	if err != nil {
		return nil, err
	}
	err = s.policy.AuthorizeBorrow(user, requested, history)
	if err != nil {
		return nil, s.mapDomainError(err)
	}
	period, err := data.LoanPeriodOfDays(s.clock, s.policy.Config().LoanPeriodDays)
	if err != nil {
		return nil, err
	}
	newLoans := make([]*data.BookLoan, 0, len(body.Books))
	for _, item := range body.Books {
		quantity, err := data.NewLoanQuantity(item.Quantity)
		if err != nil {
			return nil, s.mapDomainError(err)
		}
		loan, err := data.NewBookLoan(booksByID[item.BookID], user, quantity, period)
		if err != nil {
			return nil, s.mapDomainError(err)
		}
		err = loan.ExecuteLoan(booksByID[item.BookID])
		if err != nil {
			return nil, s.mapDomainError(err)
		}
		newLoans = append(newLoans, loan)
	}
	err = s.repo.CreateLoans(newLoans, books)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return newLoans, nil
}

// ShowLoan service shows the details of a specific loan.
func (s *service) ShowLoan(loanID int64) (*data.BookLoan, error) {
	loan, err := s.repo.GetLoan(loanID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return loan, nil
}

// ShowLoanByReference service looks a loan up by the reference printed on
// borrowing receipts and notification emails.
func (s *service) ShowLoanByReference(reference string) (*data.BookLoan, error) {
	v := validator.New()
	if v.Check(reference != "", "reference", "must be provided"); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	loan, err := s.repo.GetLoanByReference(reference)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return loan, nil
}

// ListLoans service retrieves a paginated list of loans, optionally
// restricted to a status or a loan date range.
func (s *service) ListLoans(qs dto.QsListLoans) ([]*data.BookLoan, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, qs.Filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	if qs.FromDate != "" || qs.ToDate != "" {
		from, to, err := parseDateRange(qs.FromDate, qs.ToDate)
		if err != nil {
			v.AddError("date", "must be a valid date in the format YYYY-MM-DD")
			return nil, data.Metadata{}, s.failedValidation(v.Errors)
		}
		return s.repo.GetLoansBetweenDates(from, to, qs.Filters)
	}
	return s.repo.GetAllLoans(qs.Status, qs.Filters)
}

// ListOverdueLoans service retrieves every active loan past its due date.
func (s *service) ListOverdueLoans() ([]*data.BookLoan, error) {
	return s.repo.GetOverdueLoans(s.clock.Today())
}

// ReturnLoan service completes an active loan, putting the borrowed copies
// back into the book's stock. Loan and book are written in one transaction.
func (s *service) ReturnLoan(loanID int64) (*data.BookLoan, error) {
	loan, book, err := s.loanWithBook(loanID)
	if err != nil {
		return nil, err
	}
	err = loan.ReturnBook(book, s.clock)
	if err != nil {
		return nil, s.mapDomainError(err)
	}
	err = s.repo.UpdateLoanAndBook(loan, book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return loan, nil
}

// ExtendLoan service pushes an active loan's due date out by days. The
// extension goes through the same loan policy that authorizes borrowing.
func (s *service) ExtendLoan(loanID int64, days int) (*data.BookLoan, error) {
	loan, err := s.repo.GetLoan(loanID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	err = s.policy.AuthorizeExtension(loan, s.clock, days)
	if err != nil {
		return nil, s.mapDomainError(err)
	}
	err = loan.ExtendLoan(s.clock, days)
	if err != nil {
		return nil, s.mapDomainError(err)
	}
	err = s.repo.UpdateLoan(loan)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return loan, nil
}

// CancelLoan service voids an active loan and restores the book's stock, as
// when the copies never left the building.
func (s *service) CancelLoan(loanID int64) (*data.BookLoan, error) {
	loan, book, err := s.loanWithBook(loanID)
	if err != nil {
		return nil, err
	}
	err = loan.CancelLoan()
	if err != nil {
		return nil, s.mapDomainError(err)
	}
	err = book.ReturnStock(loan.Quantity.Value())
	if err != nil {
		return nil, s.mapDomainError(err)
	}
	err = s.repo.UpdateLoanAndBook(loan, book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return loan, nil
}

// LoanOwner service returns the ID of the user a loan belongs to. The result
// backs the owner-or-admin authorization check.
func (s *service) LoanOwner(loanID int64) (int64, error) {
	loan, err := s.repo.GetLoan(loanID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}
	return loan.UserID, nil
}

// borrowerHistory assembles the aggregate counts the loan policy decides on.
func (s *service) borrowerHistory(userID int64) (data.BorrowerHistory, error) {
	today := s.clock.Today()
	active, err := s.repo.CountActiveLoansForUser(userID)
	if err != nil {
		return data.BorrowerHistory{}, err
	}
	loansToday, err := s.repo.CountLoansCreatedSince(userID, today)
	if err != nil {
		return data.BorrowerHistory{}, err
	}
	overdueActive, err := s.repo.CountOverdueActiveLoansForUser(userID, today)
	if err != nil {
		return data.BorrowerHistory{}, err
	}
	windowStart := today.AddDate(0, 0, -s.policy.Config().OverdueWindowDays)
	overdueReturns, err := s.repo.CountOverdueReturnsSince(userID, windowStart)
	if err != nil {
		return data.BorrowerHistory{}, err
	}
	return data.BorrowerHistory{
		ActiveLoans:        active,
		LoansToday:         loansToday,
		OverdueActiveLoans: overdueActive,
		OverdueReturns:     overdueReturns,
	}, nil
}

// loanWithBook loads a loan together with the book it was taken out on.
func (s *service) loanWithBook(loanID int64) (*data.BookLoan, *data.Book, error) {
	loan, err := s.repo.GetLoan(loanID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, nil, ErrRecordNotFound
		default:
			return nil, nil, err
		}
	}
	book, err := s.repo.GetBook(loan.BookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, nil, ErrRecordNotFound
		default:
			return nil, nil, err
		}
	}
	return loan, book, nil
}

// mapDomainError translates domain sentinels into the service error the
// transport layer switches on, keeping the domain message intact.
func (s *service) mapDomainError(err error) error {
	switch {
	case errors.Is(err, data.ErrPolicyViolation):
		return fmt.Errorf("%w: %s", ErrPolicyViolation, trimSentinel(err, data.ErrPolicyViolation))
	case errors.Is(err, data.ErrInvalidState):
		return fmt.Errorf("%w: %s", ErrLoanStateViolation, trimSentinel(err, data.ErrInvalidState))
	case errors.Is(err, data.ErrInvalidArgument):
		return fmt.Errorf("%w: %s", ErrFailedValidation, trimSentinel(err, data.ErrInvalidArgument))
	default:
		return err
	}
}

// trimSentinel strips the sentinel prefix from a wrapped domain error so the
// reason reads cleanly in API responses.
func trimSentinel(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

// parseDateRange turns YYYY-MM-DD query strings into an inclusive loan date
// range, substituting open ends with sensible extremes.
func parseDateRange(fromDate, toDate string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	var err error
	if fromDate != "" {
		from, err = time.Parse("2006-01-02", fromDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toDate != "" {
		to, err = time.Parse("2006-01-02", toDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}
