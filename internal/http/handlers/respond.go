// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the error responder: the single place that converts any
// failure reaching the transport boundary into the canonical JSON error
// envelope and status code. Business logic never builds envelopes; it returns
// classified *domain.Error values (or raw errors, which are normalized here).
//
// The envelope shape is stable across every endpoint and failure source:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "error": {
//	    "type": "ConflictError",
//	    "message": "Favorite already exists for this user and item",
//	    "timestamp": "2025-01-02T15:04:05Z",
//	    "status_code": 409,
//	    "details": {"existing_favorite_id": 7},
//	    "request_id": "123e4567-e89b-12d3-a456-426614174000"
//	  }
//	}
//
// details is omitted when empty and request_id when no correlation id is
// active. Raw internals (driver error text, stack state) are exposed in
// details.error_details only when verbose diagnostics are enabled.
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/avasil/go-bakery-backend/internal/domain"
	"github.com/avasil/go-bakery-backend/internal/http/middleware"
)

// ErrorBody is the inner object of the canonical error envelope.
type ErrorBody struct {
	Type       string         `json:"type" example:"NotFoundError"`
	Message    string         `json:"message" example:"Favorite not found"`
	Timestamp  string         `json:"timestamp" example:"2025-01-02T15:04:05Z"`
	StatusCode int            `json:"status_code" example:"404"`
	Details    map[string]any `json:"details,omitempty"`
	RequestID  string         `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// ErrorEnvelope is the wire representation of every error response.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// statusForKind is the total mapping from error kind to HTTP status.
// Unknown kinds fall through to 500.
func statusForKind(k domain.ErrorKind) int {
	switch k {
	case domain.KindValidation, domain.KindBusinessLogic:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindDatabase:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// writeEnvelope renders the envelope with the given status, attaching the
// request correlation id when one is active, and logs server-side failures
// with the request-scoped logger.
func writeEnvelope(c *gin.Context, status int, typ, msg string, details map[string]any) {
	body := ErrorBody{
		Type:       typ,
		Message:    msg,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		StatusCode: status,
	}
	if len(details) > 0 {
		body.Details = details
	}
	if rid := c.Writer.Header().Get("X-Request-ID"); rid != "" {
		body.RequestID = rid
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("type", typ).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: body})
}

// fail converts err into the canonical envelope.
//
// Precedence:
//  1. *domain.Error → its kind's status; a Database error whose cause is an
//     integrity violation is special-cased to 409.
//  2. validator.ValidationErrors (binding/schema failures) → 422 with one
//     entry per failed field.
//  3. Anything else → generic 500, fixed message, no internals echoed.
//
// verbose controls whether raw cause text is attached under
// details.error_details.
func fail(c *gin.Context, verbose bool, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		status := statusForKind(de.Kind)
		msg := de.Message
		details := cloneDetails(de.Details)
		if de.Kind == domain.KindDatabase && de.Cause != nil && isIntegrityViolation(de.Cause) {
			status = http.StatusConflict
			msg = "Data integrity constraint violation"
		}
		if verbose && de.Cause != nil {
			details = withDetail(details, "error_details", de.Cause.Error())
		}
		writeEnvelope(c, status, string(de.Kind), msg, details)
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		writeEnvelope(c, http.StatusUnprocessableEntity, string(domain.KindValidation),
			"Request validation failed", map[string]any{"validation_errors": formatFieldErrors(verrs)})
		return
	}

	var details map[string]any
	if verbose {
		details = withDetail(nil, "error_details", err.Error())
	}
	writeEnvelope(c, http.StatusInternalServerError, "InternalServerError",
		"An unexpected error occurred", details)
}

// failBinding renders a 422 for a malformed request payload. Typed field
// failures keep per-field entries; undecodable JSON gets a single entry.
func failBinding(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fail(c, false, err)
		return
	}
	writeEnvelope(c, http.StatusUnprocessableEntity, string(domain.KindValidation),
		"Request validation failed",
		map[string]any{"validation_errors": []fieldError{{
			Field:   "body",
			Message: err.Error(),
			Type:    "invalid_payload",
		}}})
}

// failParam renders a 422 for an unparseable path or query parameter, in the
// same per-field shape as body validation failures.
func failParam(c *gin.Context, field, requirement string) {
	writeEnvelope(c, http.StatusUnprocessableEntity, string(domain.KindValidation),
		"Request validation failed",
		map[string]any{"validation_errors": []fieldError{{
			Field:   field,
			Message: requirement,
			Type:    "type_error",
		}}})
}

// Fail is the exported envelope writer for wiring code (router fallbacks).
// It bypasses classification and renders the given type/status directly.
func Fail(c *gin.Context, status int, typ, msg string) {
	writeEnvelope(c, status, typ, msg, nil)
}

// fieldError is one entry of details.validation_errors.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// formatFieldErrors flattens validator output into stable wire entries.
func formatFieldErrors(verrs validator.ValidationErrors) []fieldError {
	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError{
			Field:   fe.Namespace(),
			Message: "failed on the '" + fe.Tag() + "' rule",
			Type:    fe.Tag(),
		})
	}
	return out
}

// isIntegrityViolation reports whether a raw store error indicates a
// uniqueness/integrity constraint failure (driver-agnostic).
func isIntegrityViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "constraint failed")
}

// cloneDetails copies the map so the responder never mutates a domain error.
func cloneDetails(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func withDetail(m map[string]any, k string, v any) map[string]any {
	if m == nil {
		m = map[string]any{}
	}
	m[k] = v
	return m
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
