package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/danokoye/athenaeum/data/dto"
	"github.com/danokoye/athenaeum/internal/validator"
	"github.com/danokoye/athenaeum/service"
)

func (h *Handler) borrowBooksHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.BorrowBooksRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	loans, err := h.service.BorrowBooks(user.ID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrPolicyViolation):
			h.policyViolationResponse(w, r, err)
		case errors.Is(err, service.ErrLoanStateViolation):
			h.loanStateViolationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	if len(loans) == 1 {
		headers.Set("Location", fmt.Sprintf("/v1/loans/%d", loans[0].ID))
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"loans": loans}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showLoanHandler(w http.ResponseWriter, r *http.Request) {
	loanID, err := h.readIDParam(r, "loanId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	loan, err := h.service.ShowLoan(loanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loan": loan}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listLoansHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListLoans
	v := validator.New()
	qs := r.URL.Query()
	if reference := h.readString(qs, "reference", ""); reference != "" {
		loan, err := h.service.ShowLoanByReference(reference)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrRecordNotFound):
				h.notFoundResponse(w, r)
			default:
				h.serverErrorResponse(w, r, err)
			}
			return
		}
		err = h.encodeJSON(w, http.StatusOK, envelope{"loan": loan}, nil)
		if err != nil {
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	qsInput.Status = h.readString(qs, "status", "")
	qsInput.Overdue = h.readBool(qs, "overdue", false, v)
	qsInput.FromDate = h.readString(qs, "from_date", "")
	qsInput.ToDate = h.readString(qs, "to_date", "")
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "-created_at")
	qsInput.Filters.SortSafeList = []string{"id", "loan_date", "due_date", "created_at", "-id", "-loan_date", "-due_date", "-created_at"}
	if !v.Valid() {
		h.failedValidationErrors(w, r, v.Errors)
		return
	}
	if qsInput.Overdue {
		loans, err := h.service.ListOverdueLoans()
		if err != nil {
			h.serverErrorResponse(w, r, err)
			return
		}
		err = h.encodeJSON(w, http.StatusOK, envelope{"loans": loans}, nil)
		if err != nil {
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	loans, metadata, err := h.service.ListLoans(qsInput)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loans": loans, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) returnLoanHandler(w http.ResponseWriter, r *http.Request) {
	loanID, err := h.readIDParam(r, "loanId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	loan, err := h.service.ReturnLoan(loanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrLoanStateViolation):
			h.loanStateViolationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loan": loan}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) extendLoanHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.ExtendLoanRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	loanID, err := h.readIDParam(r, "loanId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	loan, err := h.service.ExtendLoan(loanID, requestBody.Days)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrPolicyViolation):
			h.policyViolationResponse(w, r, err)
		case errors.Is(err, service.ErrLoanStateViolation):
			h.loanStateViolationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loan": loan}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) cancelLoanHandler(w http.ResponseWriter, r *http.Request) {
	loanID, err := h.readIDParam(r, "loanId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	loan, err := h.service.CancelLoan(loanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrLoanStateViolation):
			h.loanStateViolationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"loan": loan}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
