package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrEmailVerified      = errors.New("email already verified")
	ErrWeakPassword       = errors.New("password does not meet complexity requirements")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// OTP errors
var (
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPThrottled   = errors.New("otp resend throttled")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenWrongUse  = errors.New("token used for wrong purpose")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Authorization errors
var (
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrAdminRequired = errors.New("admin access required")
)

// Application errors
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrMissingFields       = errors.New("required fields missing")
	ErrInvalidServiceType  = errors.New("invalid service type")
	ErrDurationTooShort    = errors.New("minimum 3 days required to complete the project")
	ErrDescriptionTooLong  = errors.New("project description exceeds word limit")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrUnknownStatus       = errors.New("unknown status")
	ErrEmptyDelivery       = errors.New("delivery payload is empty")
)

// Upload errors
var (
	ErrFileNotFound       = errors.New("file not found")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileEmpty          = errors.New("file is empty")
)
