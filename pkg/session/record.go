package session

import (
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Record is the persisted form of a session buffer.
// ID identifies the record for its whole life; it does not change when the
// session identifier is rotated.
type Record struct {
	ID        uuid.UUID      `json:"id"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// NewRecord creates an empty record that expires ttl after now.
func NewRecord(now time.Time, ttl time.Duration) *Record {
	return &Record{
		ID:        uuid.New(),
		Data:      make(map[string]any),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the record is past its expiry at now.
func (r *Record) IsExpired(now time.Time) bool {
	return r != nil && !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}

// Clone returns a deep copy: nested maps and slices are copied too, so the
// clone shares no mutable data with r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Data = cloneMap(r.Data)
	return &c
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return make(map[string]any)
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]string:
		return maps.Clone(t)
	case []string:
		return slices.Clone(t)
	case []byte:
		return slices.Clone(t)
	}
	return v
}

var recordCodec = sonic.Config{
	UseInt64:    true,
	SortMapKeys: true,
}.Froze()

// MarshalRecord encodes a record for storage.
func MarshalRecord(r *Record) ([]byte, error) {
	if r == nil {
		return nil, errors.Join(ErrInvalidRecord, errors.New("record is nil"))
	}
	data, err := recordCodec.Marshal(r)
	if err != nil {
		return nil, errors.Join(ErrInvalidRecord, err)
	}
	return data, nil
}

// UnmarshalRecord decodes a stored record.
func UnmarshalRecord(data []byte) (*Record, error) {
	var r Record
	if err := recordCodec.Unmarshal(data, &r); err != nil {
		return nil, errors.Join(ErrInvalidRecord, err)
	}
	if r.Data == nil {
		r.Data = make(map[string]any)
	}
	return &r, nil
}
