package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAlreadyApproved     = errors.New("kyc already approved")
	ErrInvalidStatus       = errors.New("invalid kyc status")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrStorageFailure      = errors.New("storage failure")
)

// Error codes surfaced alongside HTTP statuses
const (
	CodeValidation      = "ERR_VALIDATION"
	CodeConflict        = "ERR_CONFLICT"
	CodeUnauthenticated = "ERR_UNAUTHENTICATED"
	CodeForbidden       = "ERR_FORBIDDEN"
	CodeNotFound        = "ERR_NOT_FOUND"
	CodeStateConflict   = "ERR_STATE_CONFLICT"
	CodeInternal        = "ERR_INTERNAL"
)

// AppError represents an application error with an HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthenticated, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func StateConflict(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeStateConflict, message, ErrAlreadyApproved)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}
