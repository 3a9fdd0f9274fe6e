package session

import "context"

// Store persists session records by session identifier.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the record stored under id.
	// It returns ErrSessionNotFound when the record is absent or expired.
	Load(ctx context.Context, id string) (*Record, error)

	// Save stores r under id. r.ExpiresAt sets its lifetime.
	Save(ctx context.Context, id string, r *Record) error

	// Delete removes the record stored under id. Missing records are not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes all expired records.
	DeleteExpired(ctx context.Context) error
}
