package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/sessionstate/pkg/cookie"
)

// CookieTransport implements Transport using signed cookies
type CookieTransport struct {
	cookieMgr     *cookie.Manager
	cookieName    string
	options       []cookie.Option
	secureCookies bool
	encrypted     bool
}

// CookieTransportOption is a functional option for CookieTransport
type CookieTransportOption func(*CookieTransport)

// WithSecureCookies sets the Secure flag on the session cookie
func WithSecureCookies(secure bool) CookieTransportOption {
	return func(t *CookieTransport) {
		t.secureCookies = secure
	}
}

// WithEncryptedCookies encrypts the session cookie instead of signing it
func WithEncryptedCookies(encrypted bool) CookieTransportOption {
	return func(t *CookieTransport) {
		t.encrypted = encrypted
	}
}

// WithCookieOptions appends cookie options applied on every write
func WithCookieOptions(opts ...cookie.Option) CookieTransportOption {
	return func(t *CookieTransport) {
		t.options = append(t.options, opts...)
	}
}

// NewCookieTransport creates a new cookie-based transport
func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string, opts ...CookieTransportOption) *CookieTransport {
	t := &CookieTransport{
		cookieMgr:  cookieMgr,
		cookieName: cookieName,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetID extracts the session identifier from the cookie
func (t *CookieTransport) GetID(r *http.Request) (string, error) {
	var (
		id  string
		err error
	)
	if t.encrypted {
		id, err = t.cookieMgr.GetEncrypted(r, t.cookieName)
	} else {
		id, err = t.cookieMgr.GetSigned(r, t.cookieName)
	}
	if err != nil || id == "" {
		return "", ErrSessionNotFound
	}
	return id, nil
}

// SetID stores the session identifier in a cookie
func (t *CookieTransport) SetID(w http.ResponseWriter, id string, ttl time.Duration) error {
	opts := []cookie.Option{
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if t.secureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}
	opts = append(opts, t.options...)

	if t.encrypted {
		return t.cookieMgr.SetEncrypted(w, t.cookieName, id, opts...)
	}
	return t.cookieMgr.SetSigned(w, t.cookieName, id, opts...)
}

// ClearID removes the session cookie
func (t *CookieTransport) ClearID(w http.ResponseWriter) error {
	opts := []cookie.Option{cookie.WithPath("/")}
	if t.secureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}
	t.cookieMgr.Delete(w, t.cookieName, append(opts, t.options...)...)
	return nil
}
