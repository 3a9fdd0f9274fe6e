package session_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstate/pkg/cookie"
	"github.com/dmitrymomot/sessionstate/pkg/session"
)

const testSecret = "this-is-a-very-long-secret-key-32chars"

func newCookieManager(t *testing.T) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	return m
}

func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestCookieTransport(t *testing.T) {
	cookies := newCookieManager(t)

	t.Run("signed round trip", func(t *testing.T) {
		tr := session.NewCookieTransport(cookies, "sid", session.WithSecureCookies(true))

		w := httptest.NewRecorder()
		require.NoError(t, tr.SetID(w, "abc123", time.Hour))

		c := w.Result().Cookies()[0]
		assert.Equal(t, "sid", c.Name)
		assert.Equal(t, 3600, c.MaxAge)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

		id, err := tr.GetID(requestWithCookies(w))
		require.NoError(t, err)
		assert.Equal(t, "abc123", id)
	})

	t.Run("encrypted round trip", func(t *testing.T) {
		tr := session.NewCookieTransport(cookies, "sid", session.WithEncryptedCookies(true))

		w := httptest.NewRecorder()
		require.NoError(t, tr.SetID(w, "abc123", 0))

		c := w.Result().Cookies()[0]
		assert.NotContains(t, c.Value, "abc123")
		assert.Zero(t, c.MaxAge)

		id, err := tr.GetID(requestWithCookies(w))
		require.NoError(t, err)
		assert.Equal(t, "abc123", id)
	})

	t.Run("tampered cookie", func(t *testing.T) {
		tr := session.NewCookieTransport(cookies, "sid")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: "forged"})

		_, err := tr.GetID(r)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("missing cookie", func(t *testing.T) {
		tr := session.NewCookieTransport(cookies, "sid")
		_, err := tr.GetID(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("clear", func(t *testing.T) {
		tr := session.NewCookieTransport(cookies, "sid", session.WithCookieOptions(cookie.WithDomain("example.com")))
		w := httptest.NewRecorder()
		require.NoError(t, tr.ClearID(w))

		c := w.Result().Cookies()[0]
		assert.Equal(t, "sid", c.Name)
		assert.Equal(t, -1, c.MaxAge)
		assert.Equal(t, "example.com", c.Domain)
	})
}

func TestHeaderTransport(t *testing.T) {
	t.Run("default header without prefix", func(t *testing.T) {
		tr := session.NewHeaderTransport("")

		w := httptest.NewRecorder()
		require.NoError(t, tr.SetID(w, "abc", time.Minute))
		assert.Equal(t, "abc", w.Header().Get(session.DefaultHeaderName))
		assert.NotEmpty(t, w.Header().Get(session.DefaultHeaderName+"-Expires"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(session.DefaultHeaderName, "abc")
		id, err := tr.GetID(r)
		require.NoError(t, err)
		assert.Equal(t, "abc", id)
	})

	t.Run("prefix", func(t *testing.T) {
		tr := session.NewHeaderTransport("Authorization", session.WithHeaderPrefix("Bearer "))

		w := httptest.NewRecorder()
		require.NoError(t, tr.SetID(w, "abc", 0))
		assert.Equal(t, "Bearer abc", w.Header().Get("Authorization"))
		assert.Empty(t, w.Header().Get("Authorization-Expires"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer abc")
		id, err := tr.GetID(r)
		require.NoError(t, err)
		assert.Equal(t, "abc", id)
	})

	t.Run("missing or blank", func(t *testing.T) {
		tr := session.NewHeaderTransport("X-Session", session.WithHeaderPrefix("Bearer "))

		_, err := tr.GetID(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Session", "Bearer ")
		_, err = tr.GetID(r)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("malformed identifier", func(t *testing.T) {
		tr := session.NewHeaderTransport("X-Session")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Session", "abc; drop")
		_, err := tr.GetID(r)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expiry uses clock", func(t *testing.T) {
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		tr := session.NewHeaderTransport("X-Session", session.WithHeaderClock(func() time.Time { return now }))

		w := httptest.NewRecorder()
		require.NoError(t, tr.SetID(w, "abc", time.Hour))
		assert.Equal(t, "2025-03-01T13:00:00Z", w.Header().Get("X-Session-Expires"))

		require.NoError(t, tr.SetID(w, "def", 0))
		assert.Empty(t, w.Header().Get("X-Session-Expires"))
	})

	t.Run("clear", func(t *testing.T) {
		tr := session.NewHeaderTransport("X-Session")
		w := httptest.NewRecorder()
		require.NoError(t, tr.SetID(w, "abc", time.Minute))
		require.NoError(t, tr.ClearID(w))
		assert.Empty(t, w.Header().Get("X-Session"))
		assert.Empty(t, w.Header().Get("X-Session-Expires"))
	})
}

type failingTransport struct{ err error }

func (f failingTransport) GetID(*http.Request) (string, error) { return "", f.err }
func (f failingTransport) SetID(http.ResponseWriter, string, time.Duration) error {
	return f.err
}
func (f failingTransport) ClearID(http.ResponseWriter) error { return f.err }

func TestCompositeTransport(t *testing.T) {
	header := session.NewHeaderTransport("X-Session")
	cookies := session.NewCookieTransport(newCookieManager(t), "sid")
	tr := session.NewCompositeTransport(header, cookies)

	t.Run("reads first available", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, cookies.SetID(w, "from-cookie", 0))

		r := requestWithCookies(w)
		id, err := tr.GetID(r)
		require.NoError(t, err)
		assert.Equal(t, "from-cookie", id)

		r.Header.Set("X-Session", "from-header")
		id, err = tr.GetID(r)
		require.NoError(t, err)
		assert.Equal(t, "from-header", id)
	})

	t.Run("none available", func(t *testing.T) {
		_, err := tr.GetID(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("writes to all", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, tr.SetID(w, "abc", time.Minute))
		assert.Equal(t, "abc", w.Header().Get("X-Session"))
		assert.Len(t, w.Result().Cookies(), 1)
	})

	t.Run("joins errors", func(t *testing.T) {
		errA, errB := errors.New("a"), errors.New("b")
		failing := session.NewCompositeTransport(failingTransport{errA}, header, failingTransport{errB})

		w := httptest.NewRecorder()
		err := failing.SetID(w, "abc", 0)
		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
		assert.Equal(t, "abc", w.Header().Get("X-Session"))

		err = failing.ClearID(w)
		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
	})
}
