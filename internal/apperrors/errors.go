// Package apperrors holds the error taxonomy shared by handlers, stores and
// blob storage, and maps it onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden: you don't own this image")
	ErrNotFound        = errors.New("not found")
)

// ValidationError reports malformed or out-of-policy input for one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps a failure of the key-value or blob store.
// Its cause is logged but never returned to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// Body is the JSON error payload returned for every failure.
type Body struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Status maps err to an HTTP status and a caller-safe body.
func Status(err error) (int, Body) {
	var validation *ValidationError
	var storage *StorageError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, Body{Error: validation.Message, Field: validation.Field}
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, Body{Error: "unauthorized"}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, Body{Error: ErrForbidden.Error()}
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, Body{Error: "image not found"}
	case errors.As(err, &storage):
		return http.StatusBadGateway, Body{Error: "storage service unavailable"}
	}
	return http.StatusInternalServerError, Body{Error: "internal server error"}
}
