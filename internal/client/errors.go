package client

import (
	"fmt"

	"github.com/mambusrl/npsquare-go/internal/validation"
)

// AuthError reports a 401/403 from the platform. The session keeps its token;
// whether to re-authenticate is the caller's decision, nothing is retried
// internally.
type AuthError struct {
	Operation string
	Code      int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: unauthorized (status %d)", e.Operation, e.Code)
}

// NotFoundError reports a 404 for the requested resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found", e.Resource)
}

// NotAuthenticatedError is returned when an operation requiring a bearer
// token runs before Authenticate. No network call is made.
type NotAuthenticatedError struct{}

func (e *NotAuthenticatedError) Error() string {
	return "not authenticated: call Authenticate first"
}

// SessionClosedError is returned for any operation on a closed session, which
// is terminal; construct a fresh client to continue.
type SessionClosedError struct{}

func (e *SessionClosedError) Error() string {
	return "session closed: construct a new client"
}

// LocalValidationError carries the violations found by the pre-flight
// validator. The document never reaches the network.
type LocalValidationError struct {
	Violations []validation.Violation
}

func (e *LocalValidationError) Error() string {
	return fmt.Sprintf("document failed local validation (%d violations)", len(e.Violations))
}

// Formatted renders the violation list for display.
func (e *LocalValidationError) Formatted() string {
	return validation.Format(e.Violations)
}

// RemoteValidationError carries the violations parsed from a 422 response,
// together with the raw body for diagnostics.
type RemoteValidationError struct {
	Violations []validation.Violation
	RawBody    string
}

func (e *RemoteValidationError) Error() string {
	return fmt.Sprintf("document rejected by the platform (%d violations)", len(e.Violations))
}

// Formatted renders the violation list for display.
func (e *RemoteValidationError) Formatted() string {
	return validation.Format(e.Violations)
}

// UnexpectedTransportError reports a status code outside the documented
// contract, with the raw body for diagnostics.
type UnexpectedTransportError struct {
	Code int
	Body string
}

func (e *UnexpectedTransportError) Error() string {
	return fmt.Sprintf("unexpected response (status %d): %s", e.Code, e.Body)
}
