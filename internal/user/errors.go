package user

import (
	"errors"
	"net/http"

	"travelagg/pkg/apperr"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func conflict(err error) error {
	return apperr.New(http.StatusConflict, apperr.ErrorCodeConflict, "Username or email already exists", err)
}

func invalidCredentials() error {
	return apperr.New(http.StatusUnauthorized, apperr.ErrorCodeUnauthorized, "Invalid credentials", ErrInvalidCredentials)
}
