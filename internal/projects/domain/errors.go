package domain

import "errors"

var (
	ErrAuthRequired = errors.New("authentication required")
	ErrNotFound     = errors.New("project not found")
	ErrConflict     = errors.New("subdomain is already in use")
	ErrInvalidInput = errors.New("invalid input")
)

// StorageError is any backend failure that is not a missing row or a unique
// violation. Its message is the backend's, unchanged.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }
