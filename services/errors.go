package services

import "errors"

// Sentinel errors the handlers translate into HTTP statuses. Anything
// else coming out of a service is an internal failure.
var (
	ErrValidation     = errors.New("original URL, expiry date, and remarks are required")
	ErrNotFound       = errors.New("record not found")
	ErrExpired        = errors.New("URL has expired")
	ErrEmailTaken     = errors.New("user already exists")
	ErrBadCredentials = errors.New("invalid email or password")
)
