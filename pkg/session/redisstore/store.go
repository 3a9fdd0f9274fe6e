package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionstate/pkg/session"
)

const (
	DefaultKeyPrefix     = "session:"
	DefaultScanBatchSize = 1000
)

// Store keeps session records in Redis. Record expiry is delegated to key TTLs.
type Store struct {
	db            redis.UniversalClient
	prefix        string
	scanBatchSize int64
	now           func() time.Time
}

var _ session.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix sets the prefix of every session key.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithScanBatchSize sets the SCAN count hint used by Count.
func WithScanBatchSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.scanBatchSize = int64(n)
		}
	}
}

// WithClock overrides the time source used to compute key TTLs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a store over client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		db:            client,
		prefix:        DefaultKeyPrefix,
		scanBatchSize: DefaultScanBatchSize,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig creates a store using the key settings of cfg.
func NewFromConfig(client redis.UniversalClient, cfg Config, opts ...Option) *Store {
	base := []Option{
		WithKeyPrefix(cfg.KeyPrefix),
		WithScanBatchSize(cfg.ScanBatchSize),
	}
	return New(client, append(base, opts...)...)
}

// Key returns the Redis key holding the session id.
func (s *Store) Key(id string) string {
	return s.prefix + id
}

func (s *Store) Load(ctx context.Context, id string) (*session.Record, error) {
	if id == "" {
		return nil, session.ErrSessionNotFound
	}

	data, err := s.db.Get(ctx, s.Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}

	r, err := session.UnmarshalRecord(data)
	if err != nil {
		return nil, err
	}
	if r.IsExpired(s.now()) {
		return nil, session.ErrSessionNotFound
	}
	return r, nil
}

// Save writes the record with a TTL matching its expiry. Records already
// expired are deleted instead.
func (s *Store) Save(ctx context.Context, id string, r *session.Record) error {
	if id == "" || r == nil {
		return session.ErrInvalidRecord
	}

	ttl := r.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, id)
	}

	data, err := session.MarshalRecord(r)
	if err != nil {
		return err
	}
	return s.db.Set(ctx, s.Key(id), data, ttl).Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.db.Del(ctx, s.Key(id)).Err()
}

// DeleteExpired is a no-op: Redis evicts expired keys itself.
func (s *Store) DeleteExpired(context.Context) error {
	return nil
}

// Count returns the number of stored sessions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var (
		count  int64
		cursor uint64
	)
	for {
		batch, next, err := s.db.Scan(ctx, cursor, s.prefix+"*", s.scanBatchSize).Result()
		if err != nil {
			return 0, err
		}
		count += int64(len(batch))

		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}
