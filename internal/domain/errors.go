package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when a request carries no token, or a token
// that is malformed, forged, or expired.
// Handlers should map this to HTTP 401. Distinct from ErrForbidden — the two
// must never be conflated.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when an authenticated caller is not the owner of
// the target resource and does not hold a role that overrides ownership.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write collides with existing state, such as
// registering an email address that is already taken.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnavailable is returned when the database cannot be reached or the
// connection pool times out acquiring a connection. The condition is
// retryable. Handlers should map this to HTTP 503.
var ErrUnavailable = errors.New("service unavailable")
