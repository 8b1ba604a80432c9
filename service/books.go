package service

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/danokoye/athenaeum/clients"
	"github.com/danokoye/athenaeum/data"
	"github.com/danokoye/athenaeum/data/dto"
	"github.com/danokoye/athenaeum/internal/validator"
	"github.com/danokoye/athenaeum/repository"
)

type books interface {
	CreateBook(userID int64, body dto.CreateBookRequestBody) (*data.Book, error)
	ShowBook(bookID int64) (*data.Book, error)
	ListBooks(qs dto.QsListBooks) ([]*data.Book, data.Metadata, error)
	UpdateBook(bookID int64, body dto.UpdateBookRequestBody) (*data.Book, error)
	DeleteBook(bookID int64) error
	AddBookStock(bookID int64, amount int) (*data.Book, error)
	ChangeBookStatus(bookID int64, status string) (*data.Book, error)
	UpdateBookCover(bookID int64, file multipart.File, fileHeader *multipart.FileHeader) (*data.Book, error)
}

// CreateBook service registers a new book in the catalogue.
func (s *service) CreateBook(userID int64, body dto.CreateBookRequestBody) (*data.Book, error) {
	quantity, err := data.NewBookQuantity(body.Quantity)
	if err != nil {
		v := validator.New()
		v.AddError("quantity", fmt.Sprintf("must be between 0 and %d", data.MaxBookQuantity))
		return nil, s.failedValidation(v.Errors)
	}
	book, err := data.NewBook(body.Title, body.Authors, data.BookLanguage(body.Language), data.BookType(body.Type), quantity, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFailedValidation, err)
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.CreateBook(book)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// ShowBook service shows the details of a specific book.
func (s *service) ShowBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// ListBooks service retrieves a paginated list of books matching the search
// and filter query strings.
func (s *service) ListBooks(qs dto.QsListBooks) ([]*data.Book, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, qs.Filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllBooks(qs.Search, qs.Language, qs.Type, qs.Status, qs.Filters)
}

// UpdateBook service applies a partial update to a book's descriptive fields.
func (s *service) UpdateBook(bookID int64, body dto.UpdateBookRequestBody) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	var language *data.BookLanguage
	if body.Language != nil {
		l := data.BookLanguage(*body.Language)
		language = &l
	}
	var bookType *data.BookType
	if body.Type != nil {
		t := data.BookType(*body.Type)
		bookType = &t
	}
	err = book.UpdateInfo(body.Title, body.Authors, language, bookType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFailedValidation, err)
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook service removes a book from the catalogue.
func (s *service) DeleteBook(bookID int64) error {
	err := s.repo.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// AddBookStock service restocks copies of a book.
func (s *service) AddBookStock(bookID int64, amount int) (*data.Book, error) {
	if amount < 1 {
		v := validator.New()
		v.AddError("amount", "must be a positive integer")
		return nil, s.failedValidation(v.Errors)
	}
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	err = book.AddStock(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFailedValidation, err)
	}
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return book, nil
}

// ChangeBookStatus service moves a book into an administrative circulation
// status such as maintenance, lost or damaged.
func (s *service) ChangeBookStatus(bookID int64, status string) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	err = book.ChangeStatus(data.BookStatus(status))
	if err != nil {
		v := validator.New()
		v.AddError("status", "must be a supported book status")
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return book, nil
}

// UpdateBookCover service uploads a cover image to S3 and stores its public
// URL on the book record. Only JPEG and PNG images are accepted.
func (s *service) UpdateBookCover(bookID int64, file multipart.File, fileHeader *multipart.FileHeader) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if fileHeader.Size > 5_242_880 {
		return nil, ErrContentTooLarge
	}
	buffer, mtype, err := s.detectMimeType(file, fileHeader)
	if err != nil {
		return nil, err
	}
	v := validator.New()
	if v.Check(validator.Mime(mtype, "image/jpeg", "image/png"), "cover", "must be a jpeg or png image"); !v.Valid() {
		return nil, ErrUnsupportedMediaType
	}
	client, err := clients.NewS3Client(s.config)
	if err != nil {
		return nil, err
	}
	url, err := s.uploadCoverToS3(client, buffer, mtype, fileHeader)
	if err != nil {
		return nil, err
	}
	book.CoverPath = url
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return book, nil
}
