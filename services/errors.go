package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals the referenced record does not exist in scope.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden signals the caller is outside the tenant or
	// assignment scope.
	ErrForbidden = errors.New("forbidden")
	// ErrStaleOrder signals the order changed state under a concurrent
	// transition; the caller should reload and retry or give up.
	ErrStaleOrder = errors.New("order state changed concurrently")
)

// ValidationError is a recoverable precondition failure. No state change
// occurs when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
