package domain

import (
	"errors"
	"fmt"
	"time"
)

// Account errors
var (
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountGone     = errors.New("the account belonging to this token no longer exists")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("email or password is wrong")
	ErrNotAuthenticated   = errors.New("you are not logged in")
	ErrNotVerified        = errors.New("email address is not verified")
	ErrAlreadyVerified    = errors.New("email address is already verified")
	ErrStalePassword      = errors.New("password was changed, log in again to get a new token")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrIncorrectPassword  = errors.New("password is wrong")
	ErrMissingFields      = errors.New("missing required fields")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
)

// Token errors
var (
	ErrTokenMissing          = errors.New("token is missing")
	ErrTokenInvalid          = errors.New("invalid token")
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenInvalidOrExpired = errors.New("token is invalid or has expired")
	ErrVerificationPending   = errors.New("a valid verification token was already issued")
)

// Infrastructure errors
var (
	ErrEmailDelivery = errors.New("there was an error sending the email, try again later")
)

// TooManyAttemptsError carries the remaining cooldown so callers can tell
// the user how long to wait. errors.Is matches it against ErrTooManyAttempts.
type TooManyAttemptsError struct {
	RetryAfter time.Duration
}

func (e *TooManyAttemptsError) Error() string {
	mins := int(e.RetryAfter.Minutes())
	if mins < 1 {
		mins = 1
	}
	return fmt.Sprintf("too many login attempts, try again in %d minutes", mins)
}

func (e *TooManyAttemptsError) Is(target error) bool {
	return target == ErrTooManyAttempts
}
