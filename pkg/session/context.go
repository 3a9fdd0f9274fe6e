package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/sessionstate/pkg/logger"
)

type sessionContextKey struct{}

// WithSession adds a session to the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext retrieves a session from the context
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}

// MustFromContext retrieves a session from the context or panics
func MustFromContext(ctx context.Context) *Session {
	session, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return session
}

// LoggerExtractor returns a logger.ContextExtractor adding the name and masked
// identifier of the request session under the key "session".
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		session, ok := FromContext(ctx)
		if !ok || session.ID() == "" {
			return slog.Attr{}, false
		}
		return logger.Group("session",
			slog.String("name", session.Name()),
			logger.SessionID(session.ID()),
		), true
	}
}
