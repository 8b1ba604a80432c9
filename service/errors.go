package service

import (
	"errors"
	"fmt"
)

var (
	ErrFailedValidation   = errors.New("failed validation")
	ErrRecordNotFound     = errors.New("record not found")
	ErrEditConflict       = errors.New("edit conflict")
	ErrDuplicateRecord    = errors.New("duplicate record")
	ErrNotPermitted       = errors.New("not permitted")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("password mismatch")
	ErrBadRequest         = errors.New("bad request")

	// ErrPolicyViolation wraps a borrowing-rule rejection from the loan
	// policy (limits, blacklist, reference books).
	ErrPolicyViolation = errors.New("loan policy violation")

	// ErrLoanStateViolation wraps a state-machine guard failure, such as
	// returning a loan that is not active.
	ErrLoanStateViolation = errors.New("loan state violation")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrContentTooLarge      = errors.New("content too large")
)

// failedValidation flattens a validation error map into a single error that
// wraps ErrFailedValidation, so callers can match it with errors.Is.
func (s *service) failedValidation(errorMap map[string]string) error {
	err := ErrFailedValidation
	for k, v := range errorMap {
		err = fmt.Errorf("%w: %q %s", err, k, v)
	}
	return err
}
