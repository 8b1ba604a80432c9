package data

import "errors"

var (
	// ErrInvalidArgument marks malformed or missing input to a constructor or
	// factory. It is always raised before any state mutation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState marks an operation invoked on an entity in the wrong
	// state, such as returning a loan that is not active. The entity is left
	// unchanged.
	ErrInvalidState = errors.New("invalid state")

	// ErrPolicyViolation marks a cross-entity business rule failure, such as
	// exceeding the borrowing limit. It is raised before any loan is
	// constructed.
	ErrPolicyViolation = errors.New("policy violation")
)
