package domain

import (
	"errors"
	"fmt"
)

// Error types for consistent error handling inside the BFF. They are turned
// into an ErrorKind at every layer boundary.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrExternalService indicates a failure in the remote CRM call.
type ErrExternalService struct {
	Service string
	Status  int
	Err     error
}

func (e *ErrExternalService) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("external service error [%s] status %d: %v", e.Service, e.Status, e.Err)
	}
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrUnauthorized indicates a missing or invalid session.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrPrecondition indicates the caller lacks state an action needs, such as
// a workspace association.
type ErrPrecondition struct {
	Reason string
}

func (e *ErrPrecondition) Error() string {
	return "precondition failed: " + e.Reason
}

// KindOf classifies err into an ErrorKind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var (
		notFound     *ErrNotFound
		circuitOpen  *ErrCircuitOpen
		validation   *ErrValidation
		unauthorized *ErrUnauthorized
		precondition *ErrPrecondition
		external     *ErrExternalService
	)
	switch {
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &circuitOpen):
		return KindCircuitOpen
	case errors.As(err, &validation):
		return KindValidation
	case errors.As(err, &unauthorized):
		return KindUnauthorized
	case errors.As(err, &precondition):
		return KindPrecondition
	case errors.As(err, &external):
		if external.Status != 0 {
			return KindRemote
		}
		return KindTransport
	}
	return KindTransport
}
