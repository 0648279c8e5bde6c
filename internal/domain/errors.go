package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTwoFactorInvalid    = errors.New("two-factor code required or invalid")
	ErrAccountNotActivated = errors.New("account not activated")
	ErrNotLoggedIn         = errors.New("not logged in")
	ErrRateLimited         = errors.New("rate limited")
	ErrInvalidToken        = errors.New("invalid token")
)

// MissingFieldError reports a required request field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
