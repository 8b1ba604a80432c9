package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danokoye/athenaeum/config"
	"github.com/danokoye/athenaeum/internal/jsonlog"
	"github.com/danokoye/athenaeum/service"
	"github.com/stretchr/testify/assert"
)

// serviceStub satisfies service.Service for handlers that reject the request
// before reaching the service layer. Any call panics via the nil embed.
type serviceStub struct {
	service.Service
}

func TestListLoansSurfacesQueryFieldErrors(t *testing.T) {
	logger := jsonlog.New(io.Discard, jsonlog.LevelFatal)
	h := New(config.Config{}, logger, nil, serviceStub{})

	r := httptest.NewRequest(http.MethodGet, "/v1/loans?page=first&overdue=perhaps", nil)
	rr := httptest.NewRecorder()
	h.listLoansHandler(rr, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), `"page": "must be an integer value"`)
	assert.Contains(t, rr.Body.String(), `"overdue": "must be a boolean value"`)
}
