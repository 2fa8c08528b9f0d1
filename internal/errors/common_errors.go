package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the kind of failure
type ErrorType string

const (
	ErrTypeMissingSource ErrorType = "MISSING_SOURCE_FILE"
	ErrTypeMissingColumn ErrorType = "MISSING_COLUMN"
	ErrTypeParsing       ErrorType = "PARSING"
	ErrTypeStorage       ErrorType = "STORAGE"
	ErrTypeEmptySet      ErrorType = "EMPTY_SET"
	ErrTypeValidation    ErrorType = "VALIDATION"
	ErrTypeNotFound      ErrorType = "NOT_FOUND"
	ErrTypeConfig        ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError of the same Type, so callers can write
// errors.Is(err, ErrMissingSourceFile) regardless of message or context.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Sentinels for errors.Is checks; only the Type is compared.
var (
	ErrMissingSourceFile = &AppError{Type: ErrTypeMissingSource}
	ErrMissingColumn     = &AppError{Type: ErrTypeMissingColumn}
	ErrParsing           = &AppError{Type: ErrTypeParsing}
	ErrStorage           = &AppError{Type: ErrTypeStorage}
	ErrEmptySet          = &AppError{Type: ErrTypeEmptySet}
	ErrInvalid           = &AppError{Type: ErrTypeValidation}
	ErrMissing           = &AppError{Type: ErrTypeNotFound}
	ErrConfig            = &AppError{Type: ErrTypeConfig}
)

// TypeOf returns the ErrorType of the first AppError in err's chain, or ""
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// Helper functions for common error types

// NewMissingSourceError reports that the input spreadsheet is absent.
// The expected path is kept in the context under "path".
func NewMissingSourceError(path string, cause error) *AppError {
	return NewAppError(ErrTypeMissingSource,
		fmt.Sprintf("source file not found: %s", path), cause).
		WithContext("path", path)
}

// NewMissingColumnError reports a required column absent after header
// normalization, listing the columns that were found.
func NewMissingColumnError(column string, found []string) *AppError {
	return NewAppError(ErrTypeMissingColumn,
		fmt.Sprintf("required column %q not found; columns found: [%s]", column, strings.Join(found, ", ")), nil).
		WithContext("column", column).
		WithContext("columns_found", found)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewEmptySetError reports that a filter selection matched no records
func NewEmptySetError(message string) *AppError {
	return NewAppError(ErrTypeEmptySet, message, nil)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
