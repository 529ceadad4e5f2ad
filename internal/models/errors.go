package models

import "errors"

var (
	// store errors
	ErrNotFound = errors.New("not found")

	// auth errors
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidInput = errors.New("invalid input")
)
