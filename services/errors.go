package services

import "errors"

var (
	// ErrNotFound covers missing references and, for lifecycle operations,
	// records that exist but belong to another recipient. Callers cannot
	// tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrValidation covers missing or malformed required input.
	ErrValidation = errors.New("invalid input")
)
