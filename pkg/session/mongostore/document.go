package mongostore

import (
	"time"

	"github.com/dmitrymomot/sessionstate/pkg/session"
)

// document is the stored shape of a session. Data holds the encoded record;
// the other fields exist for indexing and inspection.
type document struct {
	ID        string    `bson:"_id"`
	RecordID  string    `bson:"record_id"`
	Data      []byte    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func toDocument(id string, r *session.Record) (*document, error) {
	data, err := session.MarshalRecord(r)
	if err != nil {
		return nil, err
	}
	return &document{
		ID:        id,
		RecordID:  r.ID.String(),
		Data:      data,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		ExpiresAt: r.ExpiresAt,
	}, nil
}

func (d *document) record() (*session.Record, error) {
	return session.UnmarshalRecord(d.Data)
}
