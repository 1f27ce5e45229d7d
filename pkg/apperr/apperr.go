package apperr

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrorCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeConflict           ErrorCode = "CONFLICT"
	ErrorCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrorCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	ErrorCodeInternalFailure    ErrorCode = "INTERNAL_FAILURE"
)

// AppError carries the HTTP status and stable code a handler should answer with.
type AppError struct {
	Status  int
	Message string
	Code    ErrorCode
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code ErrorCode, message string, err error) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Err: err}
}

func InvalidRequest(message string, err error) *AppError {
	return New(http.StatusBadRequest, ErrorCodeInvalidRequest, message, err)
}

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, ErrorCodeValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, ErrorCodeUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, ErrorCodeForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, ErrorCodeNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, ErrorCodeConflict, message, nil)
}

func CatalogUnavailable(err error) *AppError {
	return New(http.StatusServiceUnavailable, ErrorCodeCatalogUnavailable, "catalog is unavailable, try again later", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, ErrorCodeInternalFailure, "Internal Server Error", err)
}
