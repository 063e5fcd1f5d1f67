package services

import (
	"errors"
	"fmt"
)

var (
	// OTP challenge / reset request store errors.
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrActiveChallenge   = errors.New("active challenge already exists")
	ErrCodeExpired       = errors.New("code expired")
	ErrCodeInvalid       = errors.New("code invalid")
	ErrResetNotFound     = errors.New("reset request not found")
	ErrResetExpired      = errors.New("reset link expired")
	ErrConcurrentReissue = errors.New("concurrent reissue, please retry")

	// account errors
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already exists")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordNotSet   = errors.New("password not set, use forgot password")
	ErrPasswordMismatch = errors.New("password and confirm password should be the same")

	// notes errors
	ErrNoteNotFound     = errors.New("note not found")
	ErrNoteAccessDenied = errors.New("access denied")
)

// TooManyAttemptsError carries the remaining lockout so the client can tell
// the user exactly how long to wait.
type TooManyAttemptsError struct {
	WaitHours   int
	WaitMinutes int
}

func (e *TooManyAttemptsError) Error() string {
	return fmt.Sprintf("too many attempts, you must wait %d hours and %d minutes before requesting a new one", e.WaitHours, e.WaitMinutes)
}
