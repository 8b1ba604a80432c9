package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/v1/books", h.requireActivatedUser(h.listBooksHandler))
	router.HandlerFunc(http.MethodPost, "/v1/books", h.requireAdminUser(h.createBookHandler))
	router.HandlerFunc(http.MethodGet, "/v1/books/:bookId", h.requireActivatedUser(h.showBookHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/books/:bookId", h.requireAdminUser(h.updateBookHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/books/:bookId", h.requireAdminUser(h.deleteBookHandler))
	router.HandlerFunc(http.MethodPost, "/v1/books/:bookId/stock", h.requireAdminUser(h.addBookStockHandler))
	router.HandlerFunc(http.MethodPut, "/v1/books/:bookId/status", h.requireAdminUser(h.changeBookStatusHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/books/:bookId/cover", h.requireAdminUser(h.updateBookCoverHandler))

	router.HandlerFunc(http.MethodPost, "/v1/loans", h.requireActivatedUser(h.borrowBooksHandler))
	router.HandlerFunc(http.MethodGet, "/v1/loans", h.requireAdminUser(h.listLoansHandler))
	router.HandlerFunc(http.MethodGet, "/v1/loans/:loanId", h.requireLoanOwnerOrAdmin(h.showLoanHandler))
	router.HandlerFunc(http.MethodPost, "/v1/loans/:loanId/return", h.requireLoanOwnerOrAdmin(h.returnLoanHandler))
	router.HandlerFunc(http.MethodPost, "/v1/loans/:loanId/extend", h.requireLoanOwnerOrAdmin(h.extendLoanHandler))
	router.HandlerFunc(http.MethodPost, "/v1/loans/:loanId/cancel", h.requireLoanOwnerOrAdmin(h.cancelLoanHandler))

	router.HandlerFunc(http.MethodPost, "/v1/users", h.registerUserHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/activated", h.activateUserHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/password", h.resetUserPasswordHandler)

	router.HandlerFunc(http.MethodGet, "/v1/users/profile", h.requireActivatedUser(h.showUserHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/users/profile", h.requireActivatedUser(h.updateUserHandler))
	router.HandlerFunc(http.MethodPut, "/v1/users/profile", h.requireActivatedUser(h.updateUserPasswordHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/users/profile", h.requireActivatedUser(h.deleteUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/loans", h.requireActivatedUser(h.listUserLoansHandler))

	router.HandlerFunc(http.MethodPost, "/v1/tokens/activation", h.createActivationTokenHandler)
	router.HandlerFunc(http.MethodPost, "/v1/tokens/authentication", h.createAuthenticationTokenHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/tokens/authentication", h.requireAuthenticatedUser(h.deleteAuthenticationTokenHandler))
	router.HandlerFunc(http.MethodPost, "/v1/tokens/password-reset", h.createPasswordResetTokenHandler)

	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.metrics(h.recoverPanic(h.enableCORS(h.rateLimit(h.authenticate(router)))))
}
