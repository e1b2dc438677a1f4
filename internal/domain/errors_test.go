package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_MessageAndKind(t *testing.T) {
	e := NewValidationError("Rating must be between 1 and 5", map[string]any{"rating": 9.0})
	if e.Kind != KindValidation {
		t.Fatalf("kind = %q, want %q", e.Kind, KindValidation)
	}
	if e.Error() != "Rating must be between 1 and 5" {
		t.Fatalf("Error() = %q", e.Error())
	}
	if e.Details["rating"] != 9.0 {
		t.Fatalf("details = %v", e.Details)
	}
}

func TestError_DefaultMessages(t *testing.T) {
	cases := []struct {
		err  *Error
		kind ErrorKind
		msg  string
	}{
		{NewValidationError("", nil), KindValidation, "Validation failed"},
		{NewNotFoundError("", nil), KindNotFound, "Resource not found"},
		{NewConflictError("", nil), KindConflict, "Data conflict occurred"},
		{NewUnauthorizedError("", nil), KindUnauthorized, "Unauthorized access"},
		{NewBusinessLogicError("", nil), KindBusinessLogic, "Business logic error"},
		{NewDatabaseError("", nil, nil), KindDatabase, "Database operation failed"},
	}
	for _, tc := range cases {
		if tc.err.Kind != tc.kind {
			t.Errorf("kind = %q, want %q", tc.err.Kind, tc.kind)
		}
		if tc.err.Message != tc.msg {
			t.Errorf("message = %q, want %q", tc.err.Message, tc.msg)
		}
	}
}

func TestError_UnwrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	e := NewDatabaseError("Failed to add favorite item to database", nil, cause)

	if !errors.Is(e, cause) {
		t.Fatalf("errors.Is should reach the cause")
	}

	var de *Error
	wrapped := fmt.Errorf("tx failed: %w", e)
	if !errors.As(wrapped, &de) {
		t.Fatalf("errors.As should find *Error in the chain")
	}
	if de.Kind != KindDatabase {
		t.Fatalf("kind = %q", de.Kind)
	}
}

func TestError_NilCauseUnwrap(t *testing.T) {
	e := NewNotFoundError("Favorite not found", nil)
	if e.Unwrap() != nil {
		t.Fatalf("expected nil cause")
	}
}
