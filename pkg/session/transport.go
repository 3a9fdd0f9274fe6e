package session

import (
	"net/http"
	"time"
)

// Transport carries the session identifier between client and server.
// Sessions never touch a transport themselves; the Manager does.
type Transport interface {
	// GetID extracts the session identifier from the request.
	// It returns ErrSessionNotFound when the request carries none.
	GetID(r *http.Request) (string, error)

	// SetID sends the session identifier in the response.
	// A zero ttl asks the client to keep it for the browsing session only.
	SetID(w http.ResponseWriter, id string, ttl time.Duration) error

	// ClearID tells the client to drop the session identifier.
	ClearID(w http.ResponseWriter) error
}
