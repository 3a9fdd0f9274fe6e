package session

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/sessionstate/pkg/cookie"
	"github.com/dmitrymomot/sessionstate/pkg/logger"
)

// Manager creates a Session per request over a shared Store and carries the
// session identifier through a Transport.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	options       Options
	extraOptions  Options
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	logger        *slog.Logger
	now           func() time.Time
	generateID    IDGenerator

	ownedStore *MemoryStore
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewManager creates a new session manager with the given options.
// Without a store it keeps sessions in memory. Without a transport it uses
// signed cookies, which requires WithCookieManager.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		config:     DefaultConfig(),
		logger:     slog.Default(),
		now:        time.Now,
		generateID: GenerateID,
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.config.Name == "" {
		m.config.Name = DefaultName
	}
	if m.config.IDExpirationInterval < 0 {
		return nil, errors.Join(ErrInvalidConfiguration, errors.New("id expiration interval must not be negative"))
	}

	backendOpts, err := m.config.BackendOptions()
	if err != nil {
		return nil, err
	}
	maps.Copy(backendOpts, m.extraOptions)
	if m.options, err = sanitizeOptions(backendOpts); err != nil {
		return nil, err
	}
	if _, err := NewEngine(nil).configure(m.options); err != nil {
		return nil, err
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			return nil, errors.Join(ErrNoTransport, errors.New("cookie manager is required for the default cookie transport"))
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.Name,
			WithSecureCookies(m.config.SecureCookies),
			WithCookieOptions(m.cookieOptions...),
		)
	}

	if m.store == nil {
		m.ownedStore = NewMemoryStore(m.config.CleanupInterval, WithStoreClock(m.now))
		m.store = m.ownedStore
	}

	return m, nil
}

// Store returns the store sessions are persisted to.
func (m *Manager) Store() Store {
	return m.store
}

// Load starts the session of the request and, when the identifier is new or
// was rotated, sends it to the client.
func (m *Manager) Load(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	requested, err := m.transport.GetID(r)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	engine := NewEngine(m.store,
		WithDefaultName(m.config.Name),
		WithEngineDisabled(m.config.Disabled),
		WithEngineClock(m.now),
		WithIDGenerator(m.generateID),
	)

	sess, err := New(engine,
		WithName(m.config.Name),
		WithID(requested),
		WithOptions(m.options),
		WithIDExpirationInterval(m.config.IDExpirationInterval),
		WithClock(m.now),
		WithLogger(m.logger),
	)
	if err != nil {
		return nil, err
	}

	if err := sess.Start(ctx); err != nil {
		return nil, err
	}

	if sess.ID() != requested || m.config.CookieLifetime > 0 {
		if err := m.transport.SetID(w, sess.ID(), m.config.CookieLifetime); err != nil {
			_ = engine.Abort(ctx)
			return nil, err
		}
	}

	m.logger.DebugContext(ctx, "session started",
		logger.SessionName(sess.Name()),
		logger.SessionID(sess.ID()),
		logger.RecordID(engine.RecordID()),
	)

	return sess, nil
}

// Save commits the session.
func (m *Manager) Save(ctx context.Context, sess *Session) error {
	return sess.Commit(ctx)
}

// Destroy erases the session and tells the client to drop its identifier.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if err := sess.Destroy(ctx); err != nil {
		return err
	}
	return m.transport.ClearID(w)
}

// StartCleanup removes expired records from the store every interval until
// ctx is done or the manager is closed. A non-positive interval uses the
// configured cleanup interval; if that is zero too, it does nothing.
func (m *Manager) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = m.config.CleanupInterval
	}
	if interval <= 0 {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := m.store.DeleteExpired(ctx); err != nil {
					m.logger.ErrorContext(ctx, "failed to delete expired sessions", logger.Error(err))
				}
			case <-ctx.Done():
				return
			case <-m.done:
				return
			}
		}
	}()
}

// Close stops background cleanup and releases the in-memory store, if the
// manager created one.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()

	if m.ownedStore != nil {
		return m.ownedStore.Close()
	}
	return nil
}
