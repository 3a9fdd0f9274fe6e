package session

import (
	"errors"
	"time"
)

// Config holds session configuration
type Config struct {
	// Name is the session name, also used as the cookie name (default: "sid")
	Name string `env:"SESSION_NAME" envDefault:"sid"`

	// IDExpirationInterval is how long an identifier lives before rotation (0 disables rotation)
	IDExpirationInterval time.Duration `env:"SESSION_ID_EXPIRATION_INTERVAL" envDefault:"15m"`

	// MaxLifetime is how long an untouched session record is kept
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24m"`

	// StrictMode replaces unknown session identifiers instead of adopting them
	StrictMode bool `env:"SESSION_STRICT_MODE" envDefault:"true"`

	// CookieLifetime is the Max-Age of the session cookie (0 for a browser-session cookie)
	CookieLifetime time.Duration `env:"SESSION_COOKIE_LIFETIME" envDefault:"0"`

	// SecureCookies enables the Secure flag on session cookies (recommended for production)
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// CleanupInterval for expired sessions (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// Disabled turns sessions off; requests are served without one
	Disabled bool `env:"SESSION_DISABLED" envDefault:"false"`

	// OptionsFile is an optional YAML file with extra backend options
	OptionsFile string `env:"SESSION_OPTIONS_FILE"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		Name:                 DefaultName,
		IDExpirationInterval: 15 * time.Minute,
		MaxLifetime:          DefaultMaxLifetime * time.Second,
		StrictMode:           true,
		CleanupInterval:      5 * time.Minute,
	}
}

// BackendOptions builds the backend directives: the options file first,
// then the lifetime and strict mode settings on top.
func (c Config) BackendOptions() (Options, error) {
	opts := Options{}
	if c.OptionsFile != "" {
		fileOpts, err := LoadOptionsFile(c.OptionsFile)
		if err != nil {
			return nil, err
		}
		opts = fileOpts
	}

	if c.MaxLifetime > 0 {
		opts[OptionMaxLifetime] = int64(c.MaxLifetime / time.Second)
	}
	opts[OptionStrictMode] = c.StrictMode

	return opts, nil
}

// NewFromConfig creates a new Manager from the provided Config.
// A cookie manager is required via options unless a transport is given.
func NewFromConfig(cfg Config, opts ...ManagerOption) (*Manager, error) {
	if cfg.MaxLifetime > 0 && cfg.MaxLifetime < time.Second {
		return nil, errors.Join(ErrInvalidConfiguration, errors.New("max lifetime must be at least one second"))
	}

	configOpts := []ManagerOption{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return NewManager(configOpts...)
}
