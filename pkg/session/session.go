package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionstate/pkg/logger"
)

// Session binds a State to a Backend and drives its lifecycle.
// A Session belongs to a single request and is not safe for concurrent use.
type Session struct {
	base

	backend      Backend
	name         string
	openName     string // name the backend resolved at Start
	id           string
	options      Options
	idExpiration time.Duration
	idExpiresAt  int64 // unix seconds, zero when unset

	now    func() time.Time
	logger *slog.Logger
	lc     *lifecycle
}

var _ State = (*Session)(nil)

// New creates an unstarted session over backend.
func New(backend Backend, opts ...Option) (*Session, error) {
	if backend == nil {
		return nil, errors.Join(ErrInvalidConfiguration, errors.New("backend is nil"))
	}

	s := &Session{
		backend: backend,
		options: Options{},
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.idExpiration < 0 {
		return nil, errors.Join(ErrInvalidConfiguration, errors.New("id expiration interval must not be negative"))
	}

	sanitized, err := sanitizeOptions(s.options)
	if err != nil {
		return nil, err
	}
	s.options = sanitized

	s.lc = newLifecycle(func(_, to Phase) {
		s.setStarted(to == PhaseStarted)
	})

	return s, nil
}

// Name returns the configured session name. Without one it returns the name
// the backend resolved at Start, or the backend default before that.
func (s *Session) Name() string {
	switch {
	case s.name != "":
		return s.name
	case s.openName != "":
		return s.openName
	}
	return s.backend.Name()
}

// SetName changes the session name.
func (s *Session) SetName(name string) error {
	if s.started {
		return ErrAlreadyStarted
	}
	s.name = name
	return nil
}

// ID returns the session identifier: the requested one before Start and the
// resolved one afterwards.
func (s *Session) ID() string {
	return s.id
}

// SetID sets the identifier to resume on the next Start.
func (s *Session) SetID(id string) error {
	if s.started {
		return ErrAlreadyStarted
	}
	s.id = id
	return nil
}

// Options returns a copy of the sanitized backend directives.
func (s *Session) Options() Options {
	return s.options.Clone()
}

// SetOptions replaces the backend directives.
func (s *Session) SetOptions(opts Options) error {
	if s.started {
		return ErrAlreadyStarted
	}
	sanitized, err := sanitizeOptions(opts)
	if err != nil {
		return err
	}
	s.options = sanitized
	return nil
}

// IDExpirationInterval returns the rotation interval. Zero means never rotate.
func (s *Session) IDExpirationInterval() time.Duration {
	return s.idExpiration
}

// SetIDExpirationInterval changes the rotation interval.
func (s *Session) SetIDExpirationInterval(d time.Duration) error {
	if s.started {
		return ErrAlreadyStarted
	}
	if d < 0 {
		return errors.Join(ErrInvalidConfiguration, errors.New("id expiration interval must not be negative"))
	}
	s.idExpiration = d
	return nil
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.lc.current
}

// Start opens the backend session and loads its parameter groups and CSRF token.
func (s *Session) Start(ctx context.Context) error {
	if s.backend.Disabled() {
		return ErrBackendDisabled
	}
	if s.backend.Active() {
		return ErrAlreadyActive
	}
	if !s.lc.can(eventStart) {
		return ErrAlreadyStarted
	}

	id, err := s.backend.Open(ctx, s.name, s.id, s.options)
	if err != nil {
		if errors.Is(err, ErrInvalidConfiguration) {
			return err
		}
		return errors.Join(ErrBackendFailure, err)
	}
	s.openName = s.backend.Name()

	if s.idExpiration > 0 {
		rotated, err := s.rotate(ctx)
		if err != nil {
			s.abort(ctx)
			return errors.Join(ErrBackendFailure, err)
		}
		if rotated != "" {
			s.logger.DebugContext(ctx, "session id rotated",
				logger.SessionName(s.Name()),
				logger.SessionID(rotated),
			)
			id = rotated
		}
	}

	s.id = id
	s.load(ctx)

	return s.lc.fire(eventStart)
}

// rotate applies the identifier expiry policy and returns the new identifier
// when rotation happened.
func (s *Session) rotate(ctx context.Context) (string, error) {
	now := s.now().Unix()
	interval := int64(s.idExpiration / time.Second)
	limit := now + interval

	marker := limit
	if raw, ok := s.backend.Value(KeyIDExpiration); ok {
		if v, err := toInt(raw); err == nil {
			marker = v
		} else {
			marker = 0 // unreadable, force rotation
		}
		s.backend.Remove(KeyIDExpiration)
	}
	s.idExpiresAt = marker

	if marker >= now && marker <= limit {
		return "", nil
	}

	id, err := s.backend.RegenerateID(ctx)
	if err != nil {
		return "", err
	}
	s.idExpiresAt = limit
	return id, nil
}

// load moves the backend buffer into the state.
func (s *Session) load(ctx context.Context) {
	for _, key := range s.backend.Keys() {
		value, ok := s.backend.Value(key)
		s.backend.Remove(key)
		if !ok {
			continue
		}

		if key == KeyIDExpiration {
			continue
		}
		if key == KeyCSRF {
			if v, ok := value.(string); ok {
				s.setCSRFToken(v)
			}
			continue
		}

		group, ok := asMap(value)
		if !ok {
			s.logger.WarnContext(ctx, "dropping session value that is not a parameter group",
				logger.SessionName(s.Name()),
				logger.ParamGroup(key),
			)
			continue
		}
		s.Set(key, group)
	}
}

// abort closes a half-started backend session without persisting anything.
func (s *Session) abort(ctx context.Context) {
	s.idExpiresAt = 0
	s.openName = ""
	if err := s.backend.Abort(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to close session after start error",
			logger.SessionName(s.Name()),
			logger.Error(err),
		)
	}
}

// owns reports whether the backend still holds the session opened by Start.
func (s *Session) owns() bool {
	return s.openName != "" && s.backend.Active() && s.backend.Name() == s.openName
}

// Commit writes non-empty groups, the rotation marker and the CSRF token to
// the backend and closes it. It does nothing when the backend holds another session.
func (s *Session) Commit(ctx context.Context) error {
	if !s.started {
		return ErrNotStarted
	}
	if !s.owns() {
		s.logger.DebugContext(ctx, "skipping commit of session not held by backend",
			logger.SessionName(s.Name()),
		)
		return nil
	}

	for name, group := range s.groups {
		if group.Count() == 0 {
			continue
		}
		s.backend.Put(name, group.Data())
	}
	if s.idExpiration > 0 {
		s.backend.Put(KeyIDExpiration, s.idExpiresAt)
	}
	s.backend.Put(KeyCSRF, s.CSRFToken().Value())

	if err := s.backend.Close(ctx); err != nil {
		return errors.Join(ErrBackendFailure, err)
	}

	s.idExpiresAt = 0
	return s.lc.fire(eventCommit)
}

// Destroy clears the state and erases the backend session. It does nothing
// when the backend holds another session.
func (s *Session) Destroy(ctx context.Context) error {
	if !s.owns() {
		s.logger.DebugContext(ctx, "skipping destroy of session not held by backend",
			logger.SessionName(s.Name()),
		)
		return nil
	}

	if err := s.backend.Destroy(ctx); err != nil {
		return errors.Join(ErrBackendFailure, err)
	}
	s.Clear()
	s.resetCSRFToken()
	s.idExpiresAt = 0

	return s.lc.fire(eventDestroy)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	}
	return nil, false
}
