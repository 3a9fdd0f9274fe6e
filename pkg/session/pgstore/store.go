package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/sessionstate/pkg/session"
)

// DefaultTableName is the table created by Migrate.
const DefaultTableName = "sessions"

// DB is the subset of *pgxpool.Pool used by Store.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store keeps session records in a PostgreSQL table.
type Store struct {
	db  DB
	now func() time.Time

	loadSQL          string
	saveSQL          string
	deleteSQL        string
	deleteExpiredSQL string
}

var _ session.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to filter expired records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a store over db using the given table, or DefaultTableName when empty.
func New(db DB, table string, opts ...Option) *Store {
	if table == "" {
		table = DefaultTableName
	}
	t := pgx.Identifier{table}.Sanitize()

	s := &Store{
		db:  db,
		now: time.Now,

		loadSQL: fmt.Sprintf(`SELECT data FROM %s WHERE id = $1 AND expires_at > $2`, t),
		saveSQL: fmt.Sprintf(`INSERT INTO %s (id, record_id, data, created_at, updated_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    record_id = EXCLUDED.record_id,
    data = EXCLUDED.data,
    updated_at = EXCLUDED.updated_at,
    expires_at = EXCLUDED.expires_at`, t),
		deleteSQL:        fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t),
		deleteExpiredSQL: fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= $1`, t),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig creates a store using the table configured in cfg.
func NewFromConfig(db DB, cfg Config, opts ...Option) *Store {
	return New(db, cfg.TableName, opts...)
}

func (s *Store) Load(ctx context.Context, id string) (*session.Record, error) {
	if id == "" {
		return nil, session.ErrSessionNotFound
	}

	var data []byte
	if err := s.db.QueryRow(ctx, s.loadSQL, id, s.now()).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}

	return session.UnmarshalRecord(data)
}

func (s *Store) Save(ctx context.Context, id string, r *session.Record) error {
	if id == "" || r == nil {
		return session.ErrInvalidRecord
	}

	data, err := session.MarshalRecord(r)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, s.saveSQL, id, r.ID, data, r.CreatedAt, r.UpdatedAt, r.ExpiresAt)
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	_, err := s.db.Exec(ctx, s.deleteSQL, id)
	return err
}

// DeleteExpired removes all records past their expiry.
func (s *Store) DeleteExpired(ctx context.Context) error {
	_, err := s.db.Exec(ctx, s.deleteExpiredSQL, s.now())
	return err
}
