package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrConfigurationGap = errors.New("configuration gap")
	ErrBusy             = errors.New("submission already in progress")
)

// CityNotFoundError reports a city name with no exact match in the city
// reference collection.
type CityNotFoundError struct {
	Name string
}

func (e *CityNotFoundError) Error() string {
	return "Cidade não encontrada: " + e.Name
}

func (e *CityNotFoundError) Unwrap() error { return ErrNotFound }

// RemoteInsertError wraps a rejected or failed insert. Its message is the
// backend's own message so it can be shown to the user as-is.
type RemoteInsertError struct {
	Collection string
	Err        error
}

func (e *RemoteInsertError) Error() string { return e.Err.Error() }

func (e *RemoteInsertError) Unwrap() error { return e.Err }

// RemoteQueryError wraps a failed select against one collection.
type RemoteQueryError struct {
	Collection string
	Err        error
}

func (e *RemoteQueryError) Error() string { return e.Err.Error() }

func (e *RemoteQueryError) Unwrap() error { return e.Err }

// BackendError is the error reported by the record store itself, e.g. a
// constraint violation or an authorization failure.
type BackendError struct {
	Status  int
	Code    string
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return fmt.Sprintf("erro do servidor (%s)", e.Code)
	}
	return fmt.Sprintf("erro do servidor (status %d)", e.Status)
}

// ValidationError describes a submitted field that does not fit its category's schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, FieldLabel(e.Field))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
