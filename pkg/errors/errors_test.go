package errors

import (
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := NewValidationError("bad token")
	if err.Error() != "bad token" {
		t.Errorf("message = %q, want %q", err.Error(), "bad token")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", NewValidationError("v"), IsValidationError},
		{"not found", NewNotFoundError("n"), IsNotFoundError},
		{"conflict", NewConflictError("c"), IsConflictError},
		{"permission", NewPermissionError("p"), IsPermissionError},
		{"oracle", NewOracleError("o"), IsOracleError},
		{"delivery", NewDeliveryError("d"), IsDeliveryError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Error("predicate rejected its own error type")
			}
			if tt.check(fmt.Errorf("plain")) {
				t.Error("predicate accepted a plain error")
			}
		})
	}
}

func TestPredicatesUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("calling oracle: %w", NewOracleError("timeout"))
	if !IsOracleError(wrapped) {
		t.Error("expected the predicate to see through wrapping")
	}
	if IsValidationError(wrapped) {
		t.Error("wrong predicate matched a wrapped oracle error")
	}
}
