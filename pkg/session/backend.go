package session

import "context"

// Reserved buffer keys. They never appear as parameter groups.
const (
	KeyIDExpiration = "@id_expiration_interval"
	KeyCSRF         = "@csrf"
)

// Backend is the storage side of a session: it tracks whether a session is
// open, holds the raw key/value buffer while it is, and persists it.
// A Backend is owned by one request at a time.
type Backend interface {
	// Disabled reports whether sessions are turned off for this environment.
	Disabled() bool

	// Active reports whether a session is currently open.
	Active() bool

	// Name returns the name of the open session, or the default name when none is open.
	Name() string

	// Open starts a session under name and loads its buffer. An empty id asks
	// the backend to assign one. It returns the resolved identifier.
	Open(ctx context.Context, name, id string, opts Options) (string, error)

	// Keys lists the buffer keys of the open session.
	Keys() []string

	// Value returns a raw buffer value.
	Value(key string) (any, bool)

	// Put stores a raw buffer value.
	Put(key string, value any)

	// Remove deletes a raw buffer value.
	Remove(key string)

	// RegenerateID assigns a new identifier to the open session, keeping its
	// buffer and erasing the record stored under the old identifier.
	RegenerateID(ctx context.Context) (string, error)

	// Close persists the buffer and closes the session.
	Close(ctx context.Context) error

	// Abort closes the session without persisting the buffer.
	Abort(ctx context.Context) error

	// Destroy erases the persisted session and closes it.
	Destroy(ctx context.Context) error
}
