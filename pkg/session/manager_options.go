package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionstate/pkg/cookie"
)

// ManagerOption is a functional option for configuring the Manager
type ManagerOption func(*Manager)

// WithStore sets a custom session store
func WithStore(store Store) ManagerOption {
	return func(m *Manager) {
		m.store = store
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) ManagerOption {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithConfig sets custom configuration
func WithConfig(config Config) ManagerOption {
	return func(m *Manager) {
		m.config = config
	}
}

// WithSessionName sets the session name
func WithSessionName(name string) ManagerOption {
	return func(m *Manager) {
		m.config.Name = name
	}
}

// WithRotationInterval sets the identifier rotation interval
func WithRotationInterval(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.config.IDExpirationInterval = d
	}
}

// WithCleanupInterval sets the cleanup interval for expired sessions
func WithCleanupInterval(interval time.Duration) ManagerOption {
	return func(m *Manager) {
		m.config.CleanupInterval = interval
	}
}

// WithBackendOptions sets extra backend directives, applied over the configuration
func WithBackendOptions(opts Options) ManagerOption {
	return func(m *Manager) {
		m.extraOptions = opts.Clone()
	}
}

// WithCookieManager sets the cookie manager for the default cookie transport
func WithCookieManager(cookieMgr *cookie.Manager, opts ...cookie.Option) ManagerOption {
	return func(m *Manager) {
		m.cookieManager = cookieMgr
		m.cookieOptions = opts
	}
}

// WithManagerLogger sets the logger used by the manager and its sessions
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithManagerClock overrides the time source of the manager and its sessions
func WithManagerClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithManagerIDGenerator overrides how session identifiers are generated
func WithManagerIDGenerator(gen IDGenerator) ManagerOption {
	return func(m *Manager) {
		if gen != nil {
			m.generateID = gen
		}
	}
}
