package auth

import "errors"

var (
	ErrUsernamePasswordRequired = errors.New("Username and password are required")
	ErrInvalidUsername          = errors.New("Invalid username")
	ErrWeakPassword             = errors.New("Password must be at least 8 characters with a letter and a number")
	ErrUsernameTaken            = errors.New("Username already taken")
	ErrUnknownUsername          = errors.New("Invalid credentials")
	ErrIncorrectPassword        = errors.New("Invalid credentials")
)
