package dto

import "github.com/danokoye/athenaeum/data"

// BorrowBooksRequestBody defines the request body for the BorrowBooks
// service. A single request may take out several distinct books at once.
type BorrowBooksRequestBody struct {
	Books []BorrowBookItem `json:"books"`
}

// BorrowBookItem is one book line in a borrow request.
type BorrowBookItem struct {
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
}

// ExtendLoanRequestBody defines the request body for the ExtendLoan service.
type ExtendLoanRequestBody struct {
	Days int `json:"days"`
}

// QsListLoans defines the query strings used for listing loans.
type QsListLoans struct {
	Status   string
	Overdue  bool
	FromDate string
	ToDate   string
	Filters  data.Filters
}
