// Package errors provides typed errors for the application
package errors

import "errors"

// baseError is the base implementation for all error types
type baseError struct {
	msg string
}

func (e *baseError) Error() string {
	return e.msg
}

// ValidationError represents malformed operator input; handlers re-prompt
// without changing conversation state
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// NotFoundError represents an unknown artifact/channel/bot reference
type NotFoundError struct {
	baseError
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{baseError{msg: msg}}
}

// ConflictError represents a duplicate registration; reported as a normal
// negative outcome, not a system failure
type ConflictError struct {
	baseError
}

// NewConflictError creates a new ConflictError
func NewConflictError(msg string) *ConflictError {
	return &ConflictError{baseError{msg: msg}}
}

// PermissionError represents an actor without the required rights
type PermissionError struct {
	baseError
}

// NewPermissionError creates a new PermissionError
func NewPermissionError(msg string) *PermissionError {
	return &PermissionError{baseError{msg: msg}}
}

// OracleError represents a failed call to the Telegram platform
type OracleError struct {
	baseError
}

// NewOracleError creates a new OracleError
func NewOracleError(msg string) *OracleError {
	return &OracleError{baseError{msg: msg}}
}

// DeliveryError represents a payload dispatch failure after a successful
// gate check
type DeliveryError struct {
	baseError
}

// NewDeliveryError creates a new DeliveryError
func NewDeliveryError(msg string) *DeliveryError {
	return &DeliveryError{baseError{msg: msg}}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFoundError checks if error is a NotFoundError
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflictError checks if error is a ConflictError
func IsConflictError(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsPermissionError checks if error is a PermissionError
func IsPermissionError(err error) bool {
	var target *PermissionError
	return errors.As(err, &target)
}

// IsOracleError checks if error is an OracleError
func IsOracleError(err error) bool {
	var target *OracleError
	return errors.As(err, &target)
}

// IsDeliveryError checks if error is a DeliveryError
func IsDeliveryError(err error) bool {
	var target *DeliveryError
	return errors.As(err, &target)
}
