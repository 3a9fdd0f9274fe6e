package session

import (
	"errors"
	"fmt"
	"net/http"
)

// ValueResolver reads a single string value from a parameter group of the
// request session, for example the active tenant of a user.
type ValueResolver struct {
	// GetSession retrieves the session from the request
	GetSession func(r *http.Request) (*Session, error)

	Group string
	Key   string
}

// NewValueResolver creates a resolver reading group/key from the session in
// the request context.
func NewValueResolver(group, key string) *ValueResolver {
	return &ValueResolver{
		GetSession: func(r *http.Request) (*Session, error) {
			sess, ok := FromContext(r.Context())
			if !ok {
				return nil, nil
			}
			return sess, nil
		},
		Group: group,
		Key:   key,
	}
}

// Resolve returns the value, or an empty string when there is no session or
// the value is missing.
func (r *ValueResolver) Resolve(req *http.Request) (string, error) {
	if r.GetSession == nil {
		return "", errors.New("session resolver: GetSession function not configured")
	}

	sess, err := r.GetSession(req)
	if err != nil {
		return "", fmt.Errorf("session resolver: %w", err)
	}

	if sess == nil || !sess.HasStarted() {
		return "", nil
	}

	value, ok := sess.Get(r.Group).GetString(r.Key)
	if !ok {
		return "", nil
	}
	return value, nil
}
