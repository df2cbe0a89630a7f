package common

import (
	"errors"
	"net/http"
)

// Error codes shared across handlers. The three UPSTREAM_* codes map the
// failure kinds of the external endpoints: transport failure, non-2xx
// status, and a payload whose shape does not match the contract.
const (
	CodeValidation          = "VALIDATION"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeEmptySelection      = "EMPTY_SELECTION"
	CodeOperationInFlight   = "OPERATION_IN_FLIGHT"
	CodeNotReconciled       = "NOT_RECONCILED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamStatus      = "UPSTREAM_STATUS"
	CodeUpstreamShape       = "UPSTREAM_SHAPE"
	CodeInternal            = "INTERNAL"
)

// AppError carries a machine code and the HTTP status to surface it with.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// AsAppError extracts an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var target *AppError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// UpstreamUnavailable wraps a transport-level failure talking to an external
// endpoint.
func UpstreamUnavailable(endpoint string, err error) *AppError {
	return &AppError{
		Code:       CodeUpstreamUnavailable,
		Message:    endpoint + " unreachable",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// UpstreamStatus reports a non-success HTTP status from an external endpoint.
func UpstreamStatus(endpoint string, status int) *AppError {
	return &AppError{
		Code:       CodeUpstreamStatus,
		Message:    endpoint + " returned " + http.StatusText(status),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"endpoint": endpoint, "status": status},
	}
}

// UpstreamShape reports a payload that could not be decoded or failed shape
// validation. Shape mismatches are reported, never crashed on.
func UpstreamShape(endpoint string, err error) *AppError {
	return &AppError{
		Code:       CodeUpstreamShape,
		Message:    endpoint + " returned an unexpected payload",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}
