package service

import "errors"

// Sentinel errors the API layer maps to HTTP status codes.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrBadCredentials   = errors.New("invalid credentials")
	ErrUnverified       = errors.New("email not verified")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrForbidden        = errors.New("operation not allowed")
	ErrValidation       = errors.New("invalid request")
	ErrDeliveryFailure  = errors.New("email delivery failed")
	ErrConfigIncomplete = errors.New("email configuration incomplete")
)
