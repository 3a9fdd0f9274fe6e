package cookie

import (
	"fmt"
	"net/http"
	"strings"
)

// Config describes a Manager loaded from the environment.
// Either Secrets (newest first) or Key must be set. Key is expanded with
// HKDF; Secrets are used as given.
type Config struct {
	Secrets  []string `env:"COOKIE_SECRETS" envSeparator:","`
	Key      string   `env:"COOKIE_KEY"`
	Path     string   `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string   `env:"COOKIE_DOMAIN"`
	MaxAge   int      `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool     `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool     `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite string   `env:"COOKIE_SAME_SITE" envDefault:"lax"`
}

func DefaultConfig() Config {
	return Config{
		Path:     "/",
		HttpOnly: true,
		SameSite: "lax",
	}
}

// ParseSameSite maps "lax", "strict", "none" and "default" (any case) to
// http.SameSite. An empty string means lax.
func ParseSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	case "default":
		return http.SameSiteDefaultMode, nil
	default:
		return 0, fmt.Errorf("%w: same_site %q", ErrInvalidConfig, s)
	}
}

// NewFromConfig builds a Manager from cfg; opts are applied after the
// config values.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	sameSite, err := ParseSameSite(cfg.SameSite)
	if err != nil {
		return nil, err
	}

	path := cfg.Path
	if path == "" {
		path = "/"
	}
	all := append([]Option{
		WithPath(path),
		WithDomain(cfg.Domain),
		WithMaxAge(cfg.MaxAge),
		WithSecure(cfg.Secure),
		WithHTTPOnly(cfg.HttpOnly),
		WithSameSite(sameSite),
	}, opts...)

	secrets := make([]string, 0, len(cfg.Secrets))
	for _, s := range cfg.Secrets {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 || cfg.Key == "" {
		return New(secrets, all...)
	}
	return NewFromKey([]byte(cfg.Key), nil, all...)
}
