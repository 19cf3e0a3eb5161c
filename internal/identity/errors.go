package identity

import "errors"

var (
	// ErrUserNotFound indicates no user record exists for the canonical phone.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates a user record already exists for the phone.
	ErrUserExists = errors.New("user exists")

	// ErrInsufficientBalance occurs when a debit exceeds the available balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrChallengeNotFound indicates no live one-time code exists for the phone.
	ErrChallengeNotFound = errors.New("otp not found")

	// ErrCodeExpired indicates the one-time code is past its expiry window.
	ErrCodeExpired = errors.New("otp expired")

	// ErrCodeMismatch indicates the submitted code does not match the issued one.
	ErrCodeMismatch = errors.New("otp mismatch")
)
