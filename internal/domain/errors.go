package domain

import "errors"

var (
	// ErrValidation covers locally rejected input; it never reaches storage.
	ErrValidation = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidToken       = errors.New("invalid token")

	ErrNotFound = errors.New("not found")

	ErrSpawnNotFound = errors.New("spawn not found")
	ErrNotReady      = errors.New("session not ready")
)
