package domain

import "errors"

// Sentinel errors for the application.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("invalid input")
	ErrDelivery   = errors.New("notification delivery failed")
)
