package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danokoye/athenaeum/data"
	"github.com/lib/pq"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(bookID int64) (*data.Book, error)
	GetBooksByIDIn(bookIDs []int64) ([]*data.Book, error)
	GetAllBooks(search string, language, bookType []string, status string, filters data.Filters) ([]*data.Book, data.Metadata, error)
	UpdateBook(book *data.Book) error
	DeleteBook(bookID int64) error
}

// CreateBook creates a new book record.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (title, authors, language, type, quantity, status, registered_by, cover_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version`
	args := []interface{}{
		book.Title,
		pq.Array(book.Authors),
		book.Language,
		book.Type,
		book.Quantity.Value(),
		book.Status,
		book.RegisteredBy,
		book.CoverPath,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.Version)
}

func scanBook(row interface{ Scan(...interface{}) error }, book *data.Book) error {
	var quantity int
	err := row.Scan(
		&book.ID,
		&book.CreatedAt,
		&book.Title,
		pq.Array(&book.Authors),
		&book.Language,
		&book.Type,
		&quantity,
		&book.Status,
		&book.RegisteredBy,
		&book.CoverPath,
		&book.Version,
	)
	if err != nil {
		return err
	}
	book.Quantity, err = data.NewBookQuantity(quantity)
	return err
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(bookID int64) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, title, authors, language, type, quantity, status, registered_by, cover_path, version
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := scanBook(r.db.QueryRowContext(ctx, query, bookID), &book)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetBooksByIDIn retrieves every book whose ID appears in bookIDs. Missing
// IDs are simply absent from the result; the caller decides whether that is
// an error.
func (r *repository) GetBooksByIDIn(bookIDs []int64) ([]*data.Book, error) {
	query := `
		SELECT id, created_at, title, authors, language, type, quantity, status, registered_by, cover_path, version
		FROM books
		WHERE id = ANY($1)
		ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, pq.Array(bookIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var booksFound []*data.Book
	for rows.Next() {
		var book data.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, err
		}
		booksFound = append(booksFound, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return booksFound, nil
}

// GetAllBooks retrieves a paginated list of all book records. Records can be
// searched, filtered and sorted.
func (r *repository) GetAllBooks(search string, language, bookType []string, status string, filters data.Filters) ([]*data.Book, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, created_at, title, authors, language, type, quantity, status, registered_by, cover_path, version
		FROM books
		WHERE (
			to_tsvector('simple', title) ||
			to_tsvector('simple', array_to_string(authors, ' '::text))
			@@ plainto_tsquery('simple', $1) OR $1 = ''
		)
		AND (language ILIKE ANY($2) OR $2 = '{}')
		AND (type ILIKE ANY($3) OR $3 = '{}')
		AND (status = $4 OR $4 = '')
		ORDER BY %s %s, id ASC
		LIMIT $5 OFFSET $6`,
		filters.SortColumn(), filters.SortDirection(),
	)
	args := []interface{}{
		search,
		pq.Array(language),
		pq.Array(bookType),
		status,
		filters.Limit(),
		filters.Offset(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	var booksFound []*data.Book
	for rows.Next() {
		var book data.Book
		var quantity int
		err := rows.Scan(
			&totalRecords,
			&book.ID,
			&book.CreatedAt,
			&book.Title,
			pq.Array(&book.Authors),
			&book.Language,
			&book.Type,
			&quantity,
			&book.Status,
			&book.RegisteredBy,
			&book.CoverPath,
			&book.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		book.Quantity, err = data.NewBookQuantity(quantity)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		booksFound = append(booksFound, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return booksFound, metadata, nil
}

// UpdateBook updates a book record. A version mismatch means a concurrent
// update won the race and the caller must retry.
func (r *repository) UpdateBook(book *data.Book) error {
	query := `
		UPDATE books
		SET title = $1, authors = $2, language = $3, type = $4, quantity = $5, status = $6, cover_path = $7, version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version`
	args := []interface{}{
		book.Title,
		pq.Array(book.Authors),
		book.Language,
		book.Type,
		book.Quantity.Value(),
		book.Status,
		book.CoverPath,
		book.ID,
		book.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.Version)
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

// DeleteBook deletes a book record by its ID.
func (r *repository) DeleteBook(bookID int64) error {
	if bookID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, bookID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
