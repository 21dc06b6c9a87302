package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")

	// ErrUnauthenticated covers a missing, expired, or revoked token. A
	// refresh attempt that fails with it terminates the session.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is a role mismatch: the caller is authenticated but the
	// resource belongs to another area.
	ErrForbidden = errors.New("access forbidden")

	// ErrTokenPersistence signals that a token-pair write could not be
	// confirmed by reading it back. Login must abort rather than proceed
	// with an inconsistent session.
	ErrTokenPersistence = errors.New("token persistence failed")

	// ErrSessionExpired is surfaced by the client when a transparent refresh
	// fails and the local session has been torn down.
	ErrSessionExpired = errors.New("session expired")
)
