package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeParsing      ErrorType = "PARSING"
	ErrTypeEmptySource  ErrorType = "EMPTY_SOURCE"
	ErrTypeEmptyDataset ErrorType = "EMPTY_DATASET"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeStorage      ErrorType = "STORAGE"
	ErrTypeConfig       ErrorType = "CONFIG"
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

// IsType reports whether err is an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for common error types

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewEmptySourceError reports a source that contained no data rows at all.
// Distinct from NewEmptyDatasetError so callers can tell an empty file
// from a malformed one.
func NewEmptySourceError(source string) *AppError {
	return NewAppError(ErrTypeEmptySource, "source contains no data rows", nil).
		WithContext("source", source)
}

// NewEmptyDatasetError reports a source that had rows but none of them
// parsed successfully. Fatal for ingestion: downstream analytics must not
// run against an empty store.
func NewEmptyDatasetError(source string, rows int) *AppError {
	return NewAppError(ErrTypeEmptyDataset,
		fmt.Sprintf("no valid measurements parsed from %d rows", rows), nil).
		WithContext("source", source).
		WithContext("rows", rows)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsEmptySource reports whether err signals a source with no rows
func IsEmptySource(err error) bool {
	return IsType(err, ErrTypeEmptySource)
}

// IsEmptyDataset reports whether err signals a source where no rows parsed
func IsEmptyDataset(err error) bool {
	return IsType(err, ErrTypeEmptyDataset)
}
