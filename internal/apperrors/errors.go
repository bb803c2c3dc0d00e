// Package apperrors defines the error taxonomy shared by the stores and
// services. Handlers map each kind to an HTTP status at the boundary;
// inside the services errors are wrapped with %w and never repackaged.
package apperrors

import "fmt"

// ValidationError reports missing or malformed required input. Surfaced as
// a 400 with the message verbatim; never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError for a resource/id pair.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// InvalidTransitionError reports a lifecycle operation attempted from a
// state that does not permit it. Distinct from generic failure so clients
// can explain "already dispatched" instead of a blank error.
type InvalidTransitionError struct {
	TransferID string
	Action     string
	Status     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s transfer %s: status is %s", e.Action, e.TransferID, e.Status)
}

// NotificationError wraps a failure to compose or send a notification after
// a successful receive. Logged and swallowed; never reaches the caller.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
