package session

import (
	"log/slog"
	"time"
)

// Option configures a Session.
type Option func(*Session)

// WithName sets the session name. An empty name means the backend default.
func WithName(name string) Option {
	return func(s *Session) {
		s.name = name
	}
}

// WithID sets the identifier to resume. An empty id lets the backend assign one.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithOptions sets the backend directives. They are sanitized by New.
func WithOptions(opts Options) Option {
	return func(s *Session) {
		s.options = opts.Clone()
	}
}

// WithIDExpirationInterval sets how long an identifier stays valid before it is
// rotated. Zero disables rotation.
func WithIDExpirationInterval(d time.Duration) Option {
	return func(s *Session) {
		s.idExpiration = d
	}
}

// WithClock overrides the time source used by the rotation policy.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
