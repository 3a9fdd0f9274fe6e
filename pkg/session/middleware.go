package session

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/sessionstate/pkg/logger"
)

// Middleware starts the request session before next and commits it afterwards.
// With sessions disabled the request is served without one.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, err := m.Load(ctx, w, r)
		if err != nil {
			if errors.Is(err, ErrBackendDisabled) {
				next.ServeHTTP(w, r)
				return
			}
			m.logger.ErrorContext(ctx, "failed to start session", logger.Error(err))
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		ctx = WithSession(ctx, sess)
		next.ServeHTTP(w, r.WithContext(ctx))

		if !sess.HasStarted() {
			return
		}
		if err := m.Save(ctx, sess); err != nil {
			m.logger.ErrorContext(ctx, "failed to commit session",
				logger.SessionName(sess.Name()),
				logger.SessionID(sess.ID()),
				logger.Error(err),
			)
		}
	})
}
