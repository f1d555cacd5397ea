package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyEmail is returned when an email address is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrEmptyTitle is returned when a product title is missing.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidQuantity is returned when a quantity is negative.
	ErrInvalidQuantity = errors.New("quantity cannot be negative")

	// ErrInvalidPrice is returned when a price is negative.
	ErrInvalidPrice = errors.New("price cannot be negative")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
