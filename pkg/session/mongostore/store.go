package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sessionstate/pkg/session"
)

// Store keeps session records as documents in a MongoDB collection.
type Store struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ session.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to filter expired documents.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a store over coll. Call EnsureIndexes once at startup.
func New(coll *mongo.Collection, opts ...Option) *Store {
	s := &Store{
		coll: coll,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureIndexes creates the TTL index on expires_at, so MongoDB removes
// expired sessions, and an index on record_id.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "record_id", Value: 1}},
		},
	})
	if err != nil {
		return errors.Join(ErrFailedToCreateIndexes, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*session.Record, error) {
	if id == "" {
		return nil, session.ErrSessionNotFound
	}

	var doc document
	err := s.coll.FindOne(ctx, liveFilter(id, s.now())).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}

	return doc.record()
}

func (s *Store) Save(ctx context.Context, id string, r *session.Record) error {
	if id == "" || r == nil {
		return session.ErrInvalidRecord
	}

	doc, err := toDocument(id, r)
	if err != nil {
		return err
	}

	_, err = s.coll.ReplaceOne(ctx, idFilter(id), doc, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	_, err := s.coll.DeleteOne(ctx, idFilter(id))
	return err
}

// DeleteExpired removes expired documents without waiting for the TTL monitor.
func (s *Store) DeleteExpired(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, expiredFilter(s.now()))
	return err
}

func idFilter(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func liveFilter(id string, now time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: now}}},
	}
}

func expiredFilter(now time.Time) bson.D {
	return bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lte", Value: now}}}}
}
