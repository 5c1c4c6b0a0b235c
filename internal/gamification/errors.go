package gamification

import "errors"

// Sentinel errors checked with errors.Is at the handler boundary. Everything
// else surfaces as a storage failure.
var (
	ErrValidation    = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
