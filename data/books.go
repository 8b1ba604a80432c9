package data

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/danokoye/athenaeum/internal/validator"
)

// BookLanguage is the closed set of languages the catalog accepts.
type BookLanguage string

const (
	LanguageKorean   BookLanguage = "korean"
	LanguageEnglish  BookLanguage = "english"
	LanguageJapanese BookLanguage = "japanese"
	LanguageChinese  BookLanguage = "chinese"
	LanguageSpanish  BookLanguage = "spanish"
	LanguageFrench   BookLanguage = "french"
	LanguageGerman   BookLanguage = "german"
)

// SupportedBookLanguages lists every accepted catalog language.
var SupportedBookLanguages = []BookLanguage{
	LanguageKorean,
	LanguageEnglish,
	LanguageJapanese,
	LanguageChinese,
	LanguageSpanish,
	LanguageFrench,
	LanguageGerman,
}

// IsValid reports whether l is a supported catalog language.
func (l BookLanguage) IsValid() bool {
	return validator.PermittedValue(l, SupportedBookLanguages...)
}

// BookType is the closed set of catalog categories.
type BookType string

const (
	TypeFiction    BookType = "fiction"
	TypeNonFiction BookType = "non_fiction"
	TypeScience    BookType = "science"
	TypeTechnology BookType = "technology"
	TypeHistory    BookType = "history"
	TypeBiography  BookType = "biography"
	TypeReference  BookType = "reference"
	TypeTextbook   BookType = "textbook"
	TypeChildren   BookType = "children"
	TypeComic      BookType = "comic"
)

// SupportedBookTypes lists every accepted catalog category.
var SupportedBookTypes = []BookType{
	TypeFiction,
	TypeNonFiction,
	TypeScience,
	TypeTechnology,
	TypeHistory,
	TypeBiography,
	TypeReference,
	TypeTextbook,
	TypeChildren,
	TypeComic,
}

// IsValid reports whether t is a supported catalog category.
func (t BookType) IsValid() bool {
	return validator.PermittedValue(t, SupportedBookTypes...)
}

// BookStatus is the circulation status of a catalog entry.
type BookStatus string

const (
	BookAvailable   BookStatus = "available"
	BookBorrowed    BookStatus = "borrowed"
	BookReserved    BookStatus = "reserved"
	BookMaintenance BookStatus = "maintenance"
	BookLost        BookStatus = "lost"
	BookDamaged     BookStatus = "damaged"
)

// SupportedBookStatuses lists every valid circulation status.
var SupportedBookStatuses = []BookStatus{
	BookAvailable,
	BookBorrowed,
	BookReserved,
	BookMaintenance,
	BookLost,
	BookDamaged,
}

// IsValid reports whether s is a valid circulation status.
func (s BookStatus) IsValid() bool {
	return validator.PermittedValue(s, SupportedBookStatuses...)
}

// Book defines a catalog entry. Stock and status mutation go through the
// entity methods so the borrowed/available transition rule holds everywhere.
type Book struct {
	ID           int64        `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	Title        string       `json:"title"`
	Authors      []string     `json:"authors,omitempty"`
	Language     BookLanguage `json:"language"`
	Type         BookType     `json:"type"`
	Quantity     BookQuantity `json:"quantity"`
	Status       BookStatus   `json:"status"`
	RegisteredBy int64        `json:"registered_by"`
	CoverPath    string       `json:"cover_path,omitempty"`
	Version      int32        `json:"-"`
}

// MarshalJSON renders a BookQuantity as its plain copy count.
func (q BookQuantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.value)
}

// UnmarshalJSON parses and validates a BookQuantity from a plain number.
func (q *BookQuantity) UnmarshalJSON(b []byte) error {
	var value int
	if err := json.Unmarshal(b, &value); err != nil {
		return err
	}
	parsed, err := NewBookQuantity(value)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// NewBook validates all construction-time fields and returns a new Book with
// status available.
func NewBook(title string, authors []string, language BookLanguage, bookType BookType, quantity BookQuantity, registeredBy int64) (*Book, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title must be provided", ErrInvalidArgument)
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("%w: title must not be more than 200 characters", ErrInvalidArgument)
	}
	if !language.IsValid() {
		return nil, fmt.Errorf("%w: unsupported language %q", ErrInvalidArgument, language)
	}
	if !bookType.IsValid() {
		return nil, fmt.Errorf("%w: unsupported book type %q", ErrInvalidArgument, bookType)
	}
	if registeredBy < 1 {
		return nil, fmt.Errorf("%w: registering user must be provided", ErrInvalidArgument)
	}
	return &Book{
		Title:        title,
		Authors:      authors,
		Language:     language,
		Type:         bookType,
		Quantity:     quantity,
		Status:       BookAvailable,
		RegisteredBy: registeredBy,
	}, nil
}

// CanBorrow reports whether amount copies can be taken out right now.
func (b *Book) CanBorrow(amount int) bool {
	return b.Status == BookAvailable && b.Quantity.HasStockFor(amount)
}

// IsAvailable reports whether the book is circulating and has stock.
func (b *Book) IsAvailable() bool {
	return b.Status == BookAvailable && b.Quantity.HasStock()
}

// BorrowStock removes amount copies from stock. When the last copy goes out
// the status moves to borrowed. Callers go through BookLoan.ExecuteLoan; the
// entity only protects its own invariant.
func (b *Book) BorrowStock(amount int) error {
	if !b.CanBorrow(amount) {
		return fmt.Errorf("%w: book %q cannot be borrowed (status %s, stock %d)", ErrInvalidState, b.Title, b.Status, b.Quantity.Value())
	}
	quantity, err := b.Quantity.Decrease(amount)
	if err != nil {
		return err
	}
	b.Quantity = quantity
	if !b.Quantity.HasStock() {
		b.Status = BookBorrowed
	}
	return nil
}

// ReturnStock puts amount copies back into stock. A book that sold out of
// copies becomes available again as soon as stock is positive.
func (b *Book) ReturnStock(amount int) error {
	quantity, err := b.Quantity.Increase(amount)
	if err != nil {
		return err
	}
	b.Quantity = quantity
	if b.Status == BookBorrowed && b.Quantity.HasStock() {
		b.Status = BookAvailable
	}
	return nil
}

// AddStock restocks copies independent of any loan. The status transition
// rule is the same as for returned stock.
func (b *Book) AddStock(amount int) error {
	return b.ReturnStock(amount)
}

// ChangeStatus overwrites the circulation status unconditionally. Used for
// the administrative states (maintenance, lost, damaged) that are not derived
// from stock.
func (b *Book) ChangeStatus(status BookStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unsupported book status %q", ErrInvalidArgument, status)
	}
	b.Status = status
	return nil
}

// UpdateInfo applies a partial update to the descriptive fields. Nil pointers
// leave the current value in place.
func (b *Book) UpdateInfo(title *string, authors []string, language *BookLanguage, bookType *BookType) error {
	if title != nil {
		if *title == "" || len(*title) > 200 {
			return fmt.Errorf("%w: title must be between 1 and 200 characters", ErrInvalidArgument)
		}
		b.Title = *title
	}
	if authors != nil {
		b.Authors = authors
	}
	if language != nil {
		if !language.IsValid() {
			return fmt.Errorf("%w: unsupported language %q", ErrInvalidArgument, *language)
		}
		b.Language = *language
	}
	if bookType != nil {
		if !bookType.IsValid() {
			return fmt.Errorf("%w: unsupported book type %q", ErrInvalidArgument, *bookType)
		}
		b.Type = *bookType
	}
	return nil
}

// ValidateBook collects field-level failures for the API boundary.
func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 200, "title", "must not be more than 200 characters long")
	v.Check(len(book.Authors) <= 5, "authors", "must not contain more than 5 authors")
	v.Check(validator.Unique(book.Authors), "authors", "must not contain duplicate values")
	v.Check(book.Language.IsValid(), "language", "must be a supported language")
	v.Check(book.Type.IsValid(), "type", "must be a supported book type")
	v.Check(book.RegisteredBy > 0, "registered_by", "must be provided")
}
