package session_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstate/pkg/session"
)

func TestCSRFMiddleware(t *testing.T) {
	m, _ := newManager(t)

	router := chi.NewRouter()
	router.Use(m.Middleware, session.CSRFMiddleware)
	router.Get("/form", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(session.MustFromContext(r.Context()).CSRFToken().Value()))
	})
	router.Post("/submit", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, w.Code)
	csrf := w.Body.String()
	c := sessionCookie(t, w)
	require.NotNil(t, c)

	t.Run("header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/submit", nil)
		r.AddCookie(c)
		r.Header.Set(session.CSRFHeaderName, csrf)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("form field", func(t *testing.T) {
		form := url.Values{session.CSRFFormField: {csrf}}
		r := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.AddCookie(c)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("mismatch", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/submit", nil)
		r.AddCookie(c)
		r.Header.Set(session.CSRFHeaderName, "wrong")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/submit", nil)
		r.AddCookie(c)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("safe methods pass", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/form", nil)
		r.AddCookie(c)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCSRFMiddleware_NoSession(t *testing.T) {
	handler := session.CSRFMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
