// Package errors provides structured error types for tinyplan.
package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for tinyplan.
const (
	// Storage errors
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"

	// Constraint errors
	CodeDuplicatePhone   Code = "DUPLICATE_PHONE"
	CodeInvalidReference Code = "INVALID_REFERENCE"

	// Lookup errors
	CodeNotFound Code = "NOT_FOUND"

	// Validation errors
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// Category groups error codes into coarse classes.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNotFound
	CategoryBadRequest
	CategoryConflict
	CategoryUnavailable
)

// codeCategories maps error codes to their categories.
var codeCategories = map[Code]Category{
	CodeStorageUnavailable: CategoryUnavailable,
	CodeDuplicatePhone:     CategoryConflict,
	CodeInvalidReference:   CategoryBadRequest,
	CodeNotFound:           CategoryNotFound,
	CodeInvalidArgument:    CategoryBadRequest,
}

// PlanError is the structured error type for tinyplan.
type PlanError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Why   string `json:"why,omitempty"`
	Fix   string `json:"fix,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *PlanError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *PlanError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	return b.String()
}

// Category returns the error category.
func (e *PlanError) Category() Category {
	if cat, ok := codeCategories[e.Code]; ok {
		return cat
	}
	return CategoryUnknown
}

// MarshalJSON implements json.Marshaler.
func (e *PlanError) MarshalJSON() ([]byte, error) {
	type alias PlanError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// Is reports whether target is a PlanError with the same code.
func (e *PlanError) Is(target error) bool {
	t, ok := target.(*PlanError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *PlanError) WithCause(err error) *PlanError {
	return &PlanError{
		Code:  e.Code,
		What:  e.What,
		Why:   e.Why,
		Fix:   e.Fix,
		Cause: err,
	}
}

// --- Error constructors ---

// ErrStorageUnavailable returns an error for an unopenable store.
func ErrStorageUnavailable(cause error) *PlanError {
	return &PlanError{
		Code:  CodeStorageUnavailable,
		What:  "storage is unavailable",
		Why:   "The local database could not be opened or initialized",
		Fix:   "Check that the database path is writable, or set a different path in config",
		Cause: cause,
	}
}

// ErrDuplicatePhone returns an error when a phone number is already taken.
func ErrDuplicatePhone(phone string) *PlanError {
	return &PlanError{
		Code: CodeDuplicatePhone,
		What: fmt.Sprintf("phone %s is already in use", phone),
		Why:  "Another user is registered with this phone number",
		Fix:  "Use a different phone number, or update the existing user",
	}
}

// ErrInvalidReference returns an error when a foreign key target is missing.
func ErrInvalidReference(entity string, id int64) *PlanError {
	return &PlanError{
		Code: CodeInvalidReference,
		What: fmt.Sprintf("%s %d does not exist", entity, id),
		Why:  "The referenced row was deleted or never created",
		Fix:  fmt.Sprintf("List existing rows with 'tinyplan %s list'", entity),
	}
}

// ErrNotFound returns an error when an operation targets a missing row.
func ErrNotFound(entity string, id int64) *PlanError {
	return &PlanError{
		Code: CodeNotFound,
		What: fmt.Sprintf("%s %d not found", entity, id),
		Why:  "No row with this id exists",
	}
}

// ErrInvalidArgument returns an error for an empty or malformed field.
func ErrInvalidArgument(field string) *PlanError {
	return &PlanError{
		Code: CodeInvalidArgument,
		What: fmt.Sprintf("%s must not be empty", field),
	}
}

// AsPlanError attempts to convert an error to a PlanError.
// Returns nil if the error is not a PlanError.
func AsPlanError(err error) *PlanError {
	var pe *PlanError
	if As(err, &pe) {
		return pe
	}
	return nil
}

// As is a convenience wrapper for errors.As.
func As(err error, target any) bool {
	return asError(err, target)
}

// asError implements errors.As behavior.
func asError(err error, target any) bool {
	if err == nil {
		return false
	}
	if pe, ok := err.(*PlanError); ok {
		if t, ok := target.(**PlanError); ok {
			*t = pe
			return true
		}
	}
	// Check unwrapped error
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return asError(unwrapper.Unwrap(), target)
	}
	return false
}

// GetCode extracts the error code, or empty string for other errors.
func GetCode(err error) Code {
	if pe := AsPlanError(err); pe != nil {
		return pe.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// Wrap wraps a generic error into a PlanError with unknown code.
func Wrap(err error, what string) *PlanError {
	return &PlanError{
		Code:  Code("UNKNOWN"),
		What:  what,
		Cause: err,
	}
}
