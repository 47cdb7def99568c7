package service

import "errors"

var (
	ErrValidation = errors.New("invalid input")
	ErrForbidden  = errors.New("unauthorized")

	// Signup state machine failure modes.
	ErrDuplicateAccount      = errors.New("email already registered")
	ErrDeliveryFailed        = errors.New("failed to send OTP")
	ErrCodeNotFound          = errors.New("OTP not found")
	ErrCodeMismatchOrExpired = errors.New("invalid or expired OTP")
	ErrAlreadyVerified       = errors.New("user already verified")

	// Login failure modes. "no such user" is gorm.ErrRecordNotFound passed
	// through, so callers can tell absence from bad credentials.
	ErrNotVerified   = errors.New("email not verified")
	ErrBadCredential = errors.New("invalid password")
)
