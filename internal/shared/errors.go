package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated indicates a missing or invalid session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates the caller is authenticated but denied.
	ErrForbidden = errors.New("forbidden")
	// ErrUpstream indicates an opaque backend or network failure.
	ErrUpstream = errors.New("upstream failure")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// ErrValidation indicates a request payload rejected before reaching the
// backend.
var ErrValidation = errors.New("validation failed")
