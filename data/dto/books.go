package dto

import "github.com/danokoye/athenaeum/data"

// QsListBooks defines the query strings used for listing books.
type QsListBooks struct {
	Search   string
	Language []string
	Type     []string
	Status   string
	Filters  data.Filters
}

// CreateBookRequestBody defines the request body for the CreateBook service.
type CreateBookRequestBody struct {
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Language string   `json:"language"`
	Type     string   `json:"type"`
	Quantity int      `json:"quantity"`
}

// UpdateBookRequestBody defines the request body for the UpdateBook service.
// The fields are pointer types to allow partial updates based on whether the
// value is nil.
type UpdateBookRequestBody struct {
	Title    *string  `json:"title"`
	Authors  []string `json:"authors"`
	Language *string  `json:"language"`
	Type     *string  `json:"type"`
}

// AddBookStockRequestBody defines the request body for the AddBookStock service.
type AddBookStockRequestBody struct {
	Amount int `json:"amount"`
}

// ChangeBookStatusRequestBody defines the request body for the ChangeBookStatus service.
type ChangeBookStatusRequestBody struct {
	Status string `json:"status"`
}
