package session

import (
	"net/http"

	"github.com/dmitrymomot/sessionstate/pkg/logger"
	"github.com/dmitrymomot/sessionstate/pkg/token"
)

// CSRF defaults.
const (
	CSRFHeaderName = "X-CSRF-Token"
	CSRFFormField  = "csrf_token"
)

// CSRFMiddleware rejects unsafe requests that do not present the session CSRF
// token in the X-CSRF-Token header or the csrf_token form field.
// It must run inside Manager.Middleware. Requests without a session pass through.
func CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		if !ok || isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		presented := r.Header.Get(CSRFHeaderName)
		if presented == "" {
			presented = r.PostFormValue(CSRFFormField)
		}

		if !token.Equal(sess.CSRFToken().Value(), presented) {
			sess.logger.WarnContext(r.Context(), "csrf token mismatch",
				logger.SessionName(sess.Name()),
				logger.Error(ErrCSRFMismatch),
			)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
