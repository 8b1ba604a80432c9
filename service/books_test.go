package service_test

import (
	"testing"

	"github.com/danokoye/athenaeum/data"
	"github.com/danokoye/athenaeum/data/dto"
	"github.com/danokoye/athenaeum/repository"
	"github.com/danokoye/athenaeum/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBook(t *testing.T) {
	t.Run("persists a valid book", func(t *testing.T) {
		var created *data.Book
		m := &repoMock{
			createBookFn: func(book *data.Book) error {
				created = book
				book.ID = 42
				return nil
			},
		}
		s := newTestService(m)

		book, err := s.CreateBook(1, dto.CreateBookRequestBody{
			Title:    "Clean Architecture",
			Authors:  []string{"Robert Martin"},
			Language: "english",
			Type:     "technology",
			Quantity: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), book.ID)
		assert.Equal(t, data.BookAvailable, book.Status)
		assert.Same(t, book, created)
	})

	t.Run("rejects an out-of-range quantity", func(t *testing.T) {
		s := newTestService(&repoMock{})
		_, err := s.CreateBook(1, dto.CreateBookRequestBody{
			Title:    "Clean Architecture",
			Language: "english",
			Type:     "technology",
			Quantity: data.MaxBookQuantity + 1,
		})
		assert.ErrorIs(t, err, service.ErrFailedValidation)
	})

	t.Run("rejects an unsupported language", func(t *testing.T) {
		s := newTestService(&repoMock{})
		_, err := s.CreateBook(1, dto.CreateBookRequestBody{
			Title:    "Clean Architecture",
			Language: "latin",
			Type:     "technology",
			Quantity: 1,
		})
		assert.ErrorIs(t, err, service.ErrFailedValidation)
	})
}

func TestAddBookStock(t *testing.T) {
	t.Run("restocks and persists", func(t *testing.T) {
		book := availableBook(7, 2)
		m := &repoMock{
			getBookFn:    func(int64) (*data.Book, error) { return book, nil },
			updateBookFn: func(*data.Book) error { return nil },
		}
		s := newTestService(m)

		updated, err := s.AddBookStock(7, 5)
		require.NoError(t, err)
		assert.Equal(t, 7, updated.Quantity.Value())
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		s := newTestService(&repoMock{})
		_, err := s.AddBookStock(7, 0)
		assert.ErrorIs(t, err, service.ErrFailedValidation)
	})

	t.Run("maps version conflicts", func(t *testing.T) {
		book := availableBook(7, 2)
		m := &repoMock{
			getBookFn:    func(int64) (*data.Book, error) { return book, nil },
			updateBookFn: func(*data.Book) error { return repository.ErrEditConflict },
		}
		s := newTestService(m)

		_, err := s.AddBookStock(7, 5)
		assert.ErrorIs(t, err, service.ErrEditConflict)
	})
}

func TestChangeBookStatus(t *testing.T) {
	book := availableBook(7, 2)
	m := &repoMock{
		getBookFn:    func(int64) (*data.Book, error) { return book, nil },
		updateBookFn: func(*data.Book) error { return nil },
	}
	s := newTestService(m)

	updated, err := s.ChangeBookStatus(7, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, data.BookMaintenance, updated.Status)

	_, err = s.ChangeBookStatus(7, "pulped")
	assert.ErrorIs(t, err, service.ErrFailedValidation)
}

func TestUpdateBook(t *testing.T) {
	t.Run("applies partial updates", func(t *testing.T) {
		book := availableBook(7, 2)
		m := &repoMock{
			getBookFn:    func(int64) (*data.Book, error) { return book, nil },
			updateBookFn: func(*data.Book) error { return nil },
		}
		s := newTestService(m)

		title := "Renamed"
		updated, err := s.UpdateBook(7, dto.UpdateBookRequestBody{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, data.LanguageEnglish, updated.Language)
	})

	t.Run("maps a missing book", func(t *testing.T) {
		m := &repoMock{
			getBookFn: func(int64) (*data.Book, error) { return nil, repository.ErrRecordNotFound },
		}
		s := newTestService(m)

		_, err := s.UpdateBook(7, dto.UpdateBookRequestBody{})
		assert.ErrorIs(t, err, service.ErrRecordNotFound)
	})
}
