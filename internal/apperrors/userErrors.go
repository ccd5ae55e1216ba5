package apperrors

import "errors"

var (
	ErrUserNotFound       = errors.New("User not found.")
	ErrUsernameTaken      = errors.New("Username already taken")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)
