package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrLevelMismatch indicates a validation submitted at a level other than the memorandum's pending level.
var ErrLevelMismatch = errors.New("validation level does not match the pending level")

// ErrInvalidStateTransition indicates an attempt to validate or edit a memorandum in a terminal state.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrUnauthorized indicates the caller's role is not permitted to perform the action.
var ErrUnauthorized = errors.New("not authorized for this action")

// ErrUnauthenticated indicates missing or invalid credentials.
var ErrUnauthenticated = errors.New("authentication required")

// ErrPersistence indicates the underlying store failed to process the operation.
var ErrPersistence = errors.New("persistence failure")

// ErrStatusChanged is returned by stores when a conditional status write found a different status.
// Services translate it into a business-rule error after re-reading the record.
var ErrStatusChanged = errors.New("status changed concurrently")

// ErrMFARequired indicates a second factor must be supplied to complete login.
var ErrMFARequired = errors.New("multi-factor code required")

// ErrInvalidMFACode indicates a TOTP or backup code did not verify.
var ErrInvalidMFACode = errors.New("invalid multi-factor code")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// AppError carries an HTTP status code and a client-safe message alongside the wrapped cause.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewBadRequestError wraps ErrValidation.
func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewUnauthorizedError wraps ErrUnauthenticated.
func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthenticated)
}

// NewForbiddenError wraps ErrUnauthorized.
func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrUnauthorized)
}

// NewConflictError wraps ErrDuplicate.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

func NewInternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, nil)
}

func NewGatewayTimeoutError(message string) *AppError {
	return NewAppError(http.StatusGatewayTimeout, message, nil)
}

// NewPersistenceError marks err as a store failure. The cause stays reachable through errors.Is/As.
func NewPersistenceError(message string, err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, errors.Join(ErrPersistence, err))
}

// IsBusinessRule reports whether err was caused by a rule the caller can correct,
// as opposed to a system failure that may succeed on retry.
func IsBusinessRule(err error) bool {
	if err == nil || errors.Is(err, ErrPersistence) {
		return false
	}
	return errors.Is(err, ErrLevelMismatch) ||
		errors.Is(err, ErrInvalidStateTransition) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate)
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrPersistence):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrLevelMismatch), errors.Is(err, ErrInvalidStateTransition), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrMFARequired),
		errors.Is(err, ErrInvalidMFACode), errors.Is(err, ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
