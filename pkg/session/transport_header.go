package session

import (
	"net/http"
	"strings"
	"time"
)

// DefaultHeaderName is used when NewHeaderTransport gets an empty name.
const DefaultHeaderName = "X-Session-ID"

// expiresSuffix names the companion header that advertises the lifetime.
const expiresSuffix = "-Expires"

// HeaderTransport carries the session identifier in a request/response
// header, for API clients that do not keep cookies.
type HeaderTransport struct {
	name   string
	prefix string
	now    func() time.Time
}

type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix expects and writes a scheme in front of the identifier,
// e.g. "Bearer ".
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) { t.prefix = prefix }
}

// WithHeaderClock sets the time source for the expiry header.
func WithHeaderClock(now func() time.Time) HeaderOption {
	return func(t *HeaderTransport) {
		if now != nil {
			t.now = now
		}
	}
}

func NewHeaderTransport(name string, opts ...HeaderOption) *HeaderTransport {
	if name == "" {
		name = DefaultHeaderName
	}
	t := &HeaderTransport{name: name, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetID returns ErrSessionNotFound for a missing header, a missing prefix or
// a value that cannot be a session identifier.
func (t *HeaderTransport) GetID(r *http.Request) (string, error) {
	value, ok := strings.CutPrefix(r.Header.Get(t.name), t.prefix)
	if !ok {
		return "", ErrSessionNotFound
	}
	value = strings.TrimSpace(value)
	if value == "" || !validID(value) {
		return "", ErrSessionNotFound
	}
	return value, nil
}

// SetID writes the identifier. A positive ttl also sets <name>-Expires.
func (t *HeaderTransport) SetID(w http.ResponseWriter, id string, ttl time.Duration) error {
	h := w.Header()
	h.Set(t.name, t.prefix+id)
	if ttl > 0 {
		h.Set(t.name+expiresSuffix, t.now().Add(ttl).UTC().Format(time.RFC3339))
	} else {
		h.Del(t.name + expiresSuffix)
	}
	return nil
}

func (t *HeaderTransport) ClearID(w http.ResponseWriter) error {
	w.Header().Del(t.name)
	w.Header().Del(t.name + expiresSuffix)
	return nil
}
