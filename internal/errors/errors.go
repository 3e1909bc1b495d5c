// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInputValidation   = errors.New("input validation failed")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrTradeNotFound     = errors.New("trade not found")
	ErrObjectiveNotFound = errors.New("objective not found")
	ErrMalformedImport   = errors.New("malformed import payload")
	ErrDataNotFound      = errors.New("data not found")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrStorage           = errors.New("storage error")
)

// ValidationError represents a rejected field at the mutation boundary.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ImportError reports why an import payload was rejected.
type ImportError struct {
	Key string
	Err error
}

func (e *ImportError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("import error: %v", e.Err)
	}
	return fmt.Sprintf("import error [%s]: %v", e.Key, e.Err)
}

// Is makes every ImportError match ErrMalformedImport.
func (e *ImportError) Is(target error) bool {
	return target == ErrMalformedImport
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(key string, err error) *ImportError {
	return &ImportError{Key: key, Err: err}
}

// StorageError represents a failed key-value operation.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [%s] %s: %v", e.Key, e.Op, e.Err)
}

// Is makes every StorageError match ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError.
func NewStorageError(key, op string, err error) *StorageError {
	return &StorageError{Key: key, Op: op, Err: err}
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
