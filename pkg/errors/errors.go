// Package errors provides custom error types for the cbxmatch system.
// These errors separate recoverable data warnings from fatal data errors
// so callers can decide whether a run may continue.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// As and Is are the standard library functions, re-exported so callers
// need a single errors import.
var (
	As = errors.As
	Is = errors.Is
)

// Common sentinel errors for the cbxmatch system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataWarning indicates a recoverable problem in input data.
	// Warnings abort a run unless warnings are explicitly ignored.
	ErrDataWarning = errors.New("data warning")

	// ErrFatalData indicates a problem in input data that no setting can override
	ErrFatalData = errors.New("fatal data error")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// DataWarning is a recoverable problem found in a single input row.
// Row is the zero-based record index, or -1 when the warning applies to a whole file.
type DataWarning struct {
	Row     int
	Field   string
	Value   string
	Message string
}

// Error implements the error interface
func (e *DataWarning) Error() string {
	var b strings.Builder
	b.WriteString("warning")
	if e.Row >= 0 {
		fmt.Fprintf(&b, " at row %d", e.Row)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s", e.Field)
		if e.Value != "" {
			fmt.Fprintf(&b, "=%q", e.Value)
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Is implements errors.Is support
func (e *DataWarning) Is(target error) bool {
	return target == ErrDataWarning
}

// NewDataWarning creates a new DataWarning
func NewDataWarning(row int, field, value, message string) *DataWarning {
	return &DataWarning{Row: row, Field: field, Value: value, Message: message}
}

// DataError is a fatal problem in input data.
type DataError struct {
	Row     int
	Field   string
	Value   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DataError) Error() string {
	loc := ""
	if e.Row >= 0 {
		loc = fmt.Sprintf(" at row %d", e.Row)
	}
	if e.Field != "" {
		return fmt.Sprintf("data error%s in %s %q: %s", loc, e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("data error%s: %s", loc, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DataError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *DataError) Is(target error) bool {
	return target == ErrFatalData
}

// NewDataError creates a new DataError
func NewDataError(row int, field, value, message string) *DataError {
	return &DataError{Row: row, Field: field, Value: value, Message: message}
}

// Warnings collects data warnings raised while reading or processing a file.
type Warnings []*DataWarning

// Add appends a warning.
func (w *Warnings) Add(warning *DataWarning) {
	*w = append(*w, warning)
}

// Error implements the error interface
func (w Warnings) Error() string {
	msgs := make([]string, len(w))
	for i, warn := range w {
		msgs[i] = warn.Error()
	}
	return fmt.Sprintf("%d data warning(s):\n  %s", len(w), strings.Join(msgs, "\n  "))
}

// Is implements errors.Is support
func (w Warnings) Is(target error) bool {
	return target == ErrDataWarning && len(w) > 0
}

// Err returns the collection as an error, or nil when empty.
func (w Warnings) Err() error {
	if len(w) == 0 {
		return nil
	}
	return w
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing input files
type ParseError struct {
	Format  string // "csv", "xlsx", "date"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "save"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsWarning checks if an error carries only recoverable data warnings
func IsWarning(err error) bool {
	return errors.Is(err, ErrDataWarning) && !errors.Is(err, ErrFatalData)
}

// IsFatal checks if an error is a fatal data error
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatalData)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
