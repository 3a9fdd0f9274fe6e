package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Engine defaults.
const (
	DefaultName        = "sid"
	DefaultMaxLifetime = 1440 // seconds
	DefaultSIDLength   = 32
	MinSIDLength       = 22
	MaxSIDLength       = 256
)

// IDGenerator returns a new random session identifier of the given length.
type IDGenerator func(length int) (string, error)

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDefaultName sets the name used when a session is opened without one.
func WithDefaultName(name string) EngineOption {
	return func(e *Engine) {
		if name != "" {
			e.defaultName = name
		}
	}
}

// WithEngineDisabled turns sessions off: Open fails and Disabled reports true.
func WithEngineDisabled(disabled bool) EngineOption {
	return func(e *Engine) {
		e.disabled = disabled
	}
}

// WithEngineClock overrides the time source used for record timestamps.
func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides how new session identifiers are generated.
func WithIDGenerator(gen IDGenerator) EngineOption {
	return func(e *Engine) {
		if gen != nil {
			e.generateID = gen
		}
	}
}

// Engine is a Backend that keeps the open session buffer in memory and
// persists it to a Store. It holds at most one open session and, like the
// Session it serves, belongs to a single request.
type Engine struct {
	store       Store
	defaultName string
	disabled    bool
	now         func() time.Time
	generateID  IDGenerator

	active bool
	name   string
	id     string
	record *Record

	ttl       time.Duration
	sidLength int
}

var _ Backend = (*Engine)(nil)

// NewEngine creates an Engine persisting to store.
func NewEngine(store Store, opts ...EngineOption) *Engine {
	e := &Engine{
		store:       store,
		defaultName: DefaultName,
		now:         time.Now,
		generateID:  GenerateID,
		sidLength:   DefaultSIDLength,
		ttl:         DefaultMaxLifetime * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateID returns a random identifier of length URL-safe characters.
func GenerateID(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid id length %d", length)
	}
	b := make([]byte, (length*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:length], nil
}

func (e *Engine) Disabled() bool {
	return e.disabled
}

func (e *Engine) Active() bool {
	return e.active
}

// Name returns the open session name, or the default name when none is open.
func (e *Engine) Name() string {
	if e.active {
		return e.name
	}
	return e.defaultName
}

// ID returns the identifier of the open or most recently closed session.
func (e *Engine) ID() string {
	return e.id
}

// RecordID returns the stable record identifier of the open session.
func (e *Engine) RecordID() uuid.UUID {
	if e.record == nil {
		return uuid.Nil
	}
	return e.record.ID
}

// Open loads the session stored under id. Unknown or malformed identifiers
// are replaced with fresh ones in strict mode; otherwise unknown identifiers
// are adopted for a new record.
func (e *Engine) Open(ctx context.Context, name, id string, opts Options) (string, error) {
	if e.disabled {
		return "", ErrBackendDisabled
	}
	if e.active {
		return "", ErrAlreadyActive
	}
	if e.store == nil {
		return "", ErrNoStore
	}

	strict, err := e.configure(opts)
	if err != nil {
		return "", err
	}

	if name == "" {
		name = e.defaultName
	}

	var record *Record
	if id != "" && validID(id) {
		record, err = e.store.Load(ctx, id)
		switch {
		case err == nil:
		case errors.Is(err, ErrSessionNotFound):
			if strict {
				id = ""
			}
		default:
			return "", err
		}
	} else {
		id = ""
	}

	if id == "" {
		if id, err = e.generateID(e.sidLength); err != nil {
			return "", err
		}
	}
	if record == nil {
		record = NewRecord(e.now(), e.ttl)
	}

	e.active = true
	e.name = name
	e.id = id
	e.record = record

	return id, nil
}

// configure applies the engine directives and reports whether strict mode is on.
func (e *Engine) configure(opts Options) (bool, error) {
	maxLifetime, err := opts.Int(OptionMaxLifetime, DefaultMaxLifetime)
	if err != nil {
		return false, errors.Join(ErrInvalidConfiguration, err)
	}
	if maxLifetime <= 0 {
		return false, errors.Join(ErrInvalidConfiguration, fmt.Errorf("option %q must be positive", OptionMaxLifetime))
	}

	sidLength, err := opts.Int(OptionSIDLength, DefaultSIDLength)
	if err != nil {
		return false, errors.Join(ErrInvalidConfiguration, err)
	}
	if sidLength < MinSIDLength || sidLength > MaxSIDLength {
		return false, errors.Join(ErrInvalidConfiguration,
			fmt.Errorf("option %q must be between %d and %d", OptionSIDLength, MinSIDLength, MaxSIDLength))
	}

	strict, err := opts.Bool(OptionStrictMode, false)
	if err != nil {
		return false, errors.Join(ErrInvalidConfiguration, err)
	}

	e.ttl = time.Duration(maxLifetime) * time.Second
	e.sidLength = int(sidLength)
	return strict, nil
}

// Keys returns the buffer keys in lexical order.
func (e *Engine) Keys() []string {
	if e.record == nil {
		return nil
	}
	keys := make([]string, 0, len(e.record.Data))
	for k := range e.record.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (e *Engine) Value(key string) (any, bool) {
	if e.record == nil {
		return nil, false
	}
	v, ok := e.record.Data[key]
	return v, ok
}

func (e *Engine) Put(key string, value any) {
	if e.record == nil {
		return
	}
	e.record.Data[key] = value
}

func (e *Engine) Remove(key string) {
	if e.record == nil {
		return
	}
	delete(e.record.Data, key)
}

// RegenerateID moves the open session to a new identifier.
func (e *Engine) RegenerateID(ctx context.Context) (string, error) {
	if !e.active {
		return "", ErrNotStarted
	}

	id, err := e.generateID(e.sidLength)
	if err != nil {
		return "", err
	}
	if err := e.store.Delete(ctx, e.id); err != nil {
		return "", err
	}

	e.id = id
	return id, nil
}

// Close saves the buffer and closes the session. The session stays open when
// saving fails.
func (e *Engine) Close(ctx context.Context) error {
	if !e.active {
		return nil
	}

	now := e.now()
	e.record.UpdatedAt = now
	e.record.ExpiresAt = now.Add(e.ttl)

	if err := e.store.Save(ctx, e.id, e.record); err != nil {
		return err
	}

	e.reset()
	return nil
}

func (e *Engine) Abort(ctx context.Context) error {
	e.reset()
	return nil
}

// Destroy deletes the stored record and closes the session.
func (e *Engine) Destroy(ctx context.Context) error {
	if !e.active {
		return nil
	}
	if err := e.store.Delete(ctx, e.id); err != nil {
		return err
	}
	e.reset()
	return nil
}

func (e *Engine) reset() {
	e.active = false
	e.name = ""
	e.record = nil
}

func validID(id string) bool {
	if len(id) > MaxSIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == ',':
		default:
			return false
		}
	}
	return true
}
