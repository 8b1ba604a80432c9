package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danokoye/athenaeum/data"
)

type loans interface {
	CreateLoans(loansToCreate []*data.BookLoan, booksToUpdate []*data.Book) error
	GetLoan(loanID int64) (*data.BookLoan, error)
	GetLoanByReference(reference string) (*data.BookLoan, error)
	UpdateLoan(loan *data.BookLoan) error
	UpdateLoanAndBook(loan *data.BookLoan, book *data.Book) error
	GetAllLoans(status string, filters data.Filters) ([]*data.BookLoan, data.Metadata, error)
	GetAllLoansForUser(userID int64, status string, filters data.Filters) ([]*data.BookLoan, data.Metadata, error)
	GetOverdueLoans(asOf time.Time) ([]*data.BookLoan, error)
	GetUpcomingDueLoans(from, to time.Time) ([]*data.BookLoan, error)
	GetLoansBetweenDates(from, to time.Time, filters data.Filters) ([]*data.BookLoan, data.Metadata, error)
	CountActiveLoansForUser(userID int64) (int64, error)
	CountOverdueActiveLoansForUser(userID int64, asOf time.Time) (int64, error)
	CountLoansCreatedSince(userID int64, since time.Time) (int64, error)
	CountOverdueReturnsSince(userID int64, since time.Time) (int64, error)
}

const loanColumns = `id, reference, book_id, user_id, quantity, loan_date, due_date, status, created_at, returned_at, version`

func scanLoan(row interface{ Scan(...interface{}) error }, loan *data.BookLoan) error {
	var quantity int
	err := row.Scan(
		&loan.ID,
		&loan.Reference,
		&loan.BookID,
		&loan.UserID,
		&quantity,
		&loan.Period.LoanDate,
		&loan.Period.DueDate,
		&loan.Status,
		&loan.CreatedAt,
		&loan.ReturnedAt,
		&loan.Version,
	)
	if err != nil {
		return err
	}
	loan.Quantity, err = data.NewLoanQuantity(quantity)
	return err
}

// CreateLoans persists a borrow request: every new loan plus the stock
// decrement on its book, in one all-or-nothing transaction. Each book update
// is version-guarded, so a concurrent borrow of the same book fails the later
// transaction with ErrEditConflict instead of losing a decrement.
func (r *repository) CreateLoans(loansToCreate []*data.BookLoan, booksToUpdate []*data.Book) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	insert := `
		INSERT INTO book_loans (reference, book_id, user_id, quantity, loan_date, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version`
	for _, loan := range loansToCreate {
		args := []interface{}{
			loan.Reference,
			loan.BookID,
			loan.UserID,
			loan.Quantity.Value(),
			loan.Period.LoanDate,
			loan.Period.DueDate,
			loan.Status,
		}
		err := tx.QueryRowContext(ctx, insert, args...).Scan(&loan.ID, &loan.CreatedAt, &loan.Version)
		if err != nil {
			switch {
			case err.Error() == `pq: duplicate key value violates unique constraint "book_loans_reference_key"`:
				return ErrDuplicateRecord
			default:
				return err
			}
		}
	}
	for _, book := range booksToUpdate {
		if err := updateBookTx(ctx, tx, book); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateLoanAndBook persists a loan transition together with its book stock
// side effect (a return) in one transaction. Both rows are version-guarded.
func (r *repository) UpdateLoanAndBook(loan *data.BookLoan, book *data.Book) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := updateLoanTx(ctx, tx, loan); err != nil {
		return err
	}
	if err := updateBookTx(ctx, tx, book); err != nil {
		return err
	}
	return tx.Commit()
}

func updateLoanTx(ctx context.Context, tx *sql.Tx, loan *data.BookLoan) error {
	query := `
		UPDATE book_loans
		SET quantity = $1, loan_date = $2, due_date = $3, status = $4, returned_at = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version`
	args := []interface{}{
		loan.Quantity.Value(),
		loan.Period.LoanDate,
		loan.Period.DueDate,
		loan.Status,
		loan.ReturnedAt,
		loan.ID,
		loan.Version,
	}
	err := tx.QueryRowContext(ctx, query, args...).Scan(&loan.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

func updateBookTx(ctx context.Context, tx *sql.Tx, book *data.Book) error {
	query := `
		UPDATE books
		SET quantity = $1, status = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version`
	args := []interface{}{
		book.Quantity.Value(),
		book.Status,
		book.ID,
		book.Version,
	}
	err := tx.QueryRowContext(ctx, query, args...).Scan(&book.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// GetLoan retrieves a loan record by its ID.
func (r *repository) GetLoan(loanID int64) (*data.BookLoan, error) {
	if loanID < 1 {
		return nil, ErrRecordNotFound
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM book_loans
		WHERE id = $1`, loanColumns)
	var loan data.BookLoan
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := scanLoan(r.db.QueryRowContext(ctx, query, loanID), &loan)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &loan, nil
}

// GetLoanByReference retrieves a loan record by its external reference.
func (r *repository) GetLoanByReference(reference string) (*data.BookLoan, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM book_loans
		WHERE reference = $1`, loanColumns)
	var loan data.BookLoan
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := scanLoan(r.db.QueryRowContext(ctx, query, reference), &loan)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &loan, nil
}

// UpdateLoan updates a loan record without touching its book. Used for the
// transitions that have no stock side effect (extend, cancel).
func (r *repository) UpdateLoan(loan *data.BookLoan) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	query := `
		UPDATE book_loans
		SET quantity = $1, loan_date = $2, due_date = $3, status = $4, returned_at = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version`
	args := []interface{}{
		loan.Quantity.Value(),
		loan.Period.LoanDate,
		loan.Period.DueDate,
		loan.Status,
		loan.ReturnedAt,
		loan.ID,
		loan.Version,
	}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&loan.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

func (r *repository) queryLoans(query string, args ...interface{}) ([]*data.BookLoan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var loansFound []*data.BookLoan
	for rows.Next() {
		var loan data.BookLoan
		if err := scanLoan(rows, &loan); err != nil {
			return nil, err
		}
		loansFound = append(loansFound, &loan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return loansFound, nil
}

func (r *repository) queryLoansPage(query string, args ...interface{}) ([]*data.BookLoan, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	totalRecords := 0
	var loansFound []*data.BookLoan
	for rows.Next() {
		var loan data.BookLoan
		var quantity int
		err := rows.Scan(
			&totalRecords,
			&loan.ID,
			&loan.Reference,
			&loan.BookID,
			&loan.UserID,
			&quantity,
			&loan.Period.LoanDate,
			&loan.Period.DueDate,
			&loan.Status,
			&loan.CreatedAt,
			&loan.ReturnedAt,
			&loan.Version,
		)
		if err != nil {
			return nil, 0, err
		}
		loan.Quantity, err = data.NewLoanQuantity(quantity)
		if err != nil {
			return nil, 0, err
		}
		loansFound = append(loansFound, &loan)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return loansFound, totalRecords, nil
}

// GetAllLoans retrieves a paginated list of all loan records, optionally
// restricted to one status.
func (r *repository) GetAllLoans(status string, filters data.Filters) ([]*data.BookLoan, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM book_loans
		WHERE (status = $1 OR $1 = '')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, loanColumns, filters.SortColumn(), filters.SortDirection())
	loansFound, totalRecords, err := r.queryLoansPage(query, status, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return loansFound, metadata, nil
}

// GetAllLoansForUser retrieves a paginated list of one user's loan records.
func (r *repository) GetAllLoansForUser(userID int64, status string, filters data.Filters) ([]*data.BookLoan, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM book_loans
		WHERE user_id = $1 AND (status = $2 OR $2 = '')
		ORDER BY %s %s, id ASC
		LIMIT $3 OFFSET $4`, loanColumns, filters.SortColumn(), filters.SortDirection())
	loansFound, totalRecords, err := r.queryLoansPage(query, userID, status, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return loansFound, metadata, nil
}

// GetOverdueLoans retrieves every active loan whose due date is before asOf.
// Used by the overdue notification sweep, which reads and never mutates.
func (r *repository) GetOverdueLoans(asOf time.Time) ([]*data.BookLoan, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM book_loans
		WHERE status = $1 AND due_date < $2
		ORDER BY due_date ASC`, loanColumns)
	return r.queryLoans(query, data.LoanActive, asOf)
}

// GetUpcomingDueLoans retrieves every active loan due within [from, to].
func (r *repository) GetUpcomingDueLoans(from, to time.Time) ([]*data.BookLoan, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM book_loans
		WHERE status = $1 AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date ASC`, loanColumns)
	return r.queryLoans(query, data.LoanActive, from, to)
}

// GetLoansBetweenDates retrieves a paginated list of loans taken out within
// [from, to].
func (r *repository) GetLoansBetweenDates(from, to time.Time, filters data.Filters) ([]*data.BookLoan, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM book_loans
		WHERE loan_date >= $1 AND loan_date <= $2
		ORDER BY %s %s, id ASC
		LIMIT $3 OFFSET $4`, loanColumns, filters.SortColumn(), filters.SortDirection())
	loansFound, totalRecords, err := r.queryLoansPage(query, from, to, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return loansFound, metadata, nil
}

// CountActiveLoansForUser counts a user's active loans.
func (r *repository) CountActiveLoansForUser(userID int64) (int64, error) {
	query := `
		SELECT count(*)
		FROM book_loans
		WHERE user_id = $1 AND status = $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var count int64
	err := r.db.QueryRowContext(ctx, query, userID, data.LoanActive).Scan(&count)
	return count, err
}

// CountOverdueActiveLoansForUser counts a user's active loans that are past
// due as of asOf. Any result above zero blocks further borrowing.
func (r *repository) CountOverdueActiveLoansForUser(userID int64, asOf time.Time) (int64, error) {
	query := `
		SELECT count(*)
		FROM book_loans
		WHERE user_id = $1 AND status = $2 AND due_date < $3`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var count int64
	err := r.db.QueryRowContext(ctx, query, userID, data.LoanActive, asOf).Scan(&count)
	return count, err
}

// CountLoansCreatedSince counts a user's loans created at or after since.
// Passing today's midnight gives the daily-cap count.
func (r *repository) CountLoansCreatedSince(userID int64, since time.Time) (int64, error) {
	query := `
		SELECT count(*)
		FROM book_loans
		WHERE user_id = $1 AND created_at >= $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var count int64
	err := r.db.QueryRowContext(ctx, query, userID, since).Scan(&count)
	return count, err
}

// CountOverdueReturnsSince counts a user's loans that were returned after
// their due date, for returns at or after since. Feeds the soft blacklist.
func (r *repository) CountOverdueReturnsSince(userID int64, since time.Time) (int64, error) {
	query := `
		SELECT count(*)
		FROM book_loans
		WHERE user_id = $1 AND status = $2 AND returned_at IS NOT NULL
		AND returned_at > due_date AND returned_at >= $3`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var count int64
	err := r.db.QueryRowContext(ctx, query, userID, data.LoanReturned, since).Scan(&count)
	return count, err
}
