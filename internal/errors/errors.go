// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeMissingOrInvalidInput indicates an engine input that is absent or
	// violates an input invariant; fatal to that product's computation
	TypeMissingOrInvalidInput Type = "MISSING_OR_INVALID_INPUT"

	// TypeUnsupportedCurrency indicates a currency code outside the supported set
	TypeUnsupportedCurrency Type = "UNSUPPORTED_CURRENCY"

	// TypeSheetNotFound indicates no calculation worksheet could be located
	TypeSheetNotFound Type = "SHEET_NOT_FOUND"

	// TypeFieldMappingMissing indicates a hole in the validator's field
	// mapping table; a defect to fix, not a data problem
	TypeFieldMappingMissing Type = "FIELD_MAPPING_MISSING"

	// TypeParsing indicates a legacy file parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// MissingInput creates a missing-or-invalid-input error naming the field
// and the phase that required it
func MissingInput(phase, field, reason string) *Error {
	return Newf(TypeMissingOrInvalidInput, "phase %q requires field %q: %s", phase, field, reason).
		WithContext("phase", phase).
		WithContext("field", field)
}

// UnsupportedCurrency creates an unsupported-currency error
func UnsupportedCurrency(code string) *Error {
	return Newf(TypeUnsupportedCurrency, "currency %q is not in the supported set", code).
		WithContext("currency", code)
}

// SheetNotFound creates a sheet-not-found error listing the sheets that
// were tried and the structural markers that were expected
func SheetNotFound(tried []string, markers []string) *Error {
	return Newf(TypeSheetNotFound, "no calculation sheet found; tried sheets %v, expected markers %v", tried, markers).
		WithContext("tried_sheets", tried).
		WithContext("expected_markers", markers)
}

// FieldMappingMissing creates a field-mapping-missing error
func FieldMappingMissing(field string) *Error {
	return Newf(TypeFieldMappingMissing, "no mapping entry for field %q", field).
		WithContext("field", field)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
