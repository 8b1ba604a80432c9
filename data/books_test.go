package data_test

import (
	"testing"

	"github.com/danokoye/athenaeum/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook(t *testing.T, copies int) *data.Book {
	t.Helper()
	quantity, err := data.NewBookQuantity(copies)
	require.NoError(t, err)
	book, err := data.NewBook("The Go Programming Language", []string{"Alan Donovan", "Brian Kernighan"}, data.LanguageEnglish, data.TypeTechnology, quantity, 1)
	require.NoError(t, err)
	book.ID = 7
	return book
}

func TestNewBook(t *testing.T) {
	t.Run("starts available", func(t *testing.T) {
		book := newTestBook(t, 3)
		assert.Equal(t, data.BookAvailable, book.Status)
		assert.True(t, book.IsAvailable())
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		quantity, _ := data.NewBookQuantity(1)
		_, err := data.NewBook("", nil, data.LanguageEnglish, data.TypeFiction, quantity, 1)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})

	t.Run("rejects an unsupported language", func(t *testing.T) {
		quantity, _ := data.NewBookQuantity(1)
		_, err := data.NewBook("Title", nil, data.BookLanguage("latin"), data.TypeFiction, quantity, 1)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})

	t.Run("rejects an unsupported type", func(t *testing.T) {
		quantity, _ := data.NewBookQuantity(1)
		_, err := data.NewBook("Title", nil, data.LanguageEnglish, data.BookType("cookbook"), quantity, 1)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}

func TestBookBorrowStock(t *testing.T) {
	t.Run("last copy flips the status to borrowed", func(t *testing.T) {
		book := newTestBook(t, 2)
		require.NoError(t, book.BorrowStock(1))
		assert.Equal(t, data.BookAvailable, book.Status)
		require.NoError(t, book.BorrowStock(1))
		assert.Equal(t, data.BookBorrowed, book.Status)
		assert.Equal(t, 0, book.Quantity.Value())
	})

	t.Run("cannot borrow more than in stock", func(t *testing.T) {
		book := newTestBook(t, 1)
		err := book.BorrowStock(2)
		assert.ErrorIs(t, err, data.ErrInvalidState)
		assert.Equal(t, 1, book.Quantity.Value())
	})

	t.Run("cannot borrow from a non-available book", func(t *testing.T) {
		book := newTestBook(t, 5)
		require.NoError(t, book.ChangeStatus(data.BookMaintenance))
		err := book.BorrowStock(1)
		assert.ErrorIs(t, err, data.ErrInvalidState)
	})
}

func TestBookReturnStock(t *testing.T) {
	t.Run("restores availability when stock comes back", func(t *testing.T) {
		book := newTestBook(t, 1)
		require.NoError(t, book.BorrowStock(1))
		require.Equal(t, data.BookBorrowed, book.Status)
		require.NoError(t, book.ReturnStock(1))
		assert.Equal(t, data.BookAvailable, book.Status)
		assert.Equal(t, 1, book.Quantity.Value())
	})

	t.Run("borrow then return round-trips the quantity", func(t *testing.T) {
		book := newTestBook(t, 5)
		require.NoError(t, book.BorrowStock(3))
		require.NoError(t, book.ReturnStock(3))
		assert.Equal(t, 5, book.Quantity.Value())
	})

	t.Run("cannot return past the maximum", func(t *testing.T) {
		book := newTestBook(t, data.MaxBookQuantity)
		err := book.ReturnStock(1)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}

func TestBookAddStock(t *testing.T) {
	book := newTestBook(t, 0)
	book.Status = data.BookBorrowed
	require.NoError(t, book.AddStock(10))
	assert.Equal(t, 10, book.Quantity.Value())
	assert.Equal(t, data.BookAvailable, book.Status)
}

func TestBookChangeStatus(t *testing.T) {
	book := newTestBook(t, 3)
	require.NoError(t, book.ChangeStatus(data.BookLost))
	assert.Equal(t, data.BookLost, book.Status)
	assert.False(t, book.CanBorrow(1))

	err := book.ChangeStatus(data.BookStatus("destroyed"))
	assert.ErrorIs(t, err, data.ErrInvalidArgument)
}

func TestBookUpdateInfo(t *testing.T) {
	book := newTestBook(t, 3)

	t.Run("nil pointers leave fields untouched", func(t *testing.T) {
		title := "Renamed"
		require.NoError(t, book.UpdateInfo(&title, nil, nil, nil))
		assert.Equal(t, "Renamed", book.Title)
		assert.Equal(t, data.LanguageEnglish, book.Language)
		assert.Equal(t, data.TypeTechnology, book.Type)
	})

	t.Run("rejects invalid partial values", func(t *testing.T) {
		empty := ""
		assert.ErrorIs(t, book.UpdateInfo(&empty, nil, nil, nil), data.ErrInvalidArgument)
		badLang := data.BookLanguage("klingon")
		assert.ErrorIs(t, book.UpdateInfo(nil, nil, &badLang, nil), data.ErrInvalidArgument)
	})
}
