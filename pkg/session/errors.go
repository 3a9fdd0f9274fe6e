package session

import "errors"

var (
	// ErrAlreadyStarted is returned by configuration setters while the session is started.
	ErrAlreadyStarted = errors.New("session.already_started")

	// ErrNotStarted is returned by Commit without a prior successful Start.
	ErrNotStarted = errors.New("session.not_started")

	// ErrBackendDisabled is returned by Start when the backend has sessions turned off.
	ErrBackendDisabled = errors.New("session.backend_disabled")

	// ErrAlreadyActive is returned by Start when the backend already has an open session.
	ErrAlreadyActive = errors.New("session.already_active")

	// ErrInvalidConfiguration indicates options that conflict with externally managed
	// transport or values the backend cannot use.
	ErrInvalidConfiguration = errors.New("session.invalid_configuration")

	// ErrBackendFailure wraps I/O errors reported by the backend or its store.
	ErrBackendFailure = errors.New("session.backend_failure")

	// ErrSessionNotFound indicates no stored record exists for an identifier.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidRecord indicates a stored record could not be encoded or decoded.
	ErrInvalidRecord = errors.New("session.invalid_record")

	// ErrNoStore indicates no store is configured.
	ErrNoStore = errors.New("session.no_store")

	// ErrNoTransport indicates no transport is configured.
	ErrNoTransport = errors.New("session.no_transport")

	// ErrCSRFMismatch indicates a request did not present the session CSRF token.
	ErrCSRFMismatch = errors.New("session.csrf_mismatch")
)
