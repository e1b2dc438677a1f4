// Package domain – classified business errors.
//
// This file defines the Error type returned by the service layer for every
// predictable failure. Each error carries a Kind (the business
// classification), a human-readable Message, and an optional Details map with
// structured context (offending ids, requirements, owners). Translation into
// HTTP status codes and the wire envelope is performed exclusively at the
// handler layer; services never shape responses themselves.
package domain

// ErrorKind classifies a business failure. The string value is the `type`
// field rendered in the wire envelope.
type ErrorKind string

// The closed set of error kinds. Each kind maps to exactly one HTTP status
// at the response boundary.
const (
	KindValidation    ErrorKind = "ValidationError"    // 400
	KindNotFound      ErrorKind = "NotFoundError"      // 404
	KindConflict      ErrorKind = "ConflictError"      // 409
	KindUnauthorized  ErrorKind = "UnauthorizedError"  // 401
	KindBusinessLogic ErrorKind = "BusinessLogicError" // 400
	KindDatabase      ErrorKind = "DatabaseError"      // 500
)

// Error is an immutable, classified business failure. It is created at the
// point a rule is violated and consumed once by the response boundary; it is
// never persisted.
type Error struct {
	Kind    ErrorKind
	Message string
	// Details holds structured context safe to expose to callers
	// (e.g. {"user_id": 0, "requirement": "must be a positive integer"}).
	Details map[string]any
	// Cause is the underlying infrastructure error, if any. It is surfaced
	// to callers only when verbose diagnostics are enabled.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Cause }

// newError applies the kind-specific default message when msg is empty.
func newError(kind ErrorKind, msg, def string, details map[string]any) *Error {
	if msg == "" {
		msg = def
	}
	return &Error{Kind: kind, Message: msg, Details: details}
}

// NewValidationError reports caller-supplied data violating a business rule.
func NewValidationError(msg string, details map[string]any) *Error {
	return newError(KindValidation, msg, "Validation failed", details)
}

// NewNotFoundError reports that a referenced entity does not exist.
func NewNotFoundError(msg string, details map[string]any) *Error {
	return newError(KindNotFound, msg, "Resource not found", details)
}

// NewConflictError reports a uniqueness or state conflict.
func NewConflictError(msg string, details map[string]any) *Error {
	return newError(KindConflict, msg, "Data conflict occurred", details)
}

// NewUnauthorizedError reports that the actor lacks rights over a resource.
func NewUnauthorizedError(msg string, details map[string]any) *Error {
	return newError(KindUnauthorized, msg, "Unauthorized access", details)
}

// NewBusinessLogicError reports a rule violation that is not simple field
// validation.
func NewBusinessLogicError(msg string, details map[string]any) *Error {
	return newError(KindBusinessLogic, msg, "Business logic error", details)
}

// NewDatabaseError wraps an underlying persistence failure with operation
// context. The cause is kept for server-side logs and verbose diagnostics but
// is never rendered to callers by default.
func NewDatabaseError(msg string, details map[string]any, cause error) *Error {
	e := newError(KindDatabase, msg, "Database operation failed", details)
	e.Cause = cause
	return e
}
