package services

import "errors"

// Errors shared across services and the HTTP mapping.
var (
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrUserNotFound           = errors.New("user not found")
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 8
