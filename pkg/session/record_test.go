package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstate/pkg/session"
)

func TestRecord_Codec(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := session.NewRecord(now, time.Hour)
	r.Data["cart"] = map[string]any{"item": "book", "qty": 2}
	r.Data[session.KeyIDExpiration] = now.Unix()
	r.Data[session.KeyCSRF] = "token"

	data, err := session.MarshalRecord(r)
	require.NoError(t, err)

	decoded, err := session.UnmarshalRecord(data)
	require.NoError(t, err)

	assert.Equal(t, r.ID, decoded.ID)
	assert.True(t, r.CreatedAt.Equal(decoded.CreatedAt))
	assert.True(t, r.ExpiresAt.Equal(decoded.ExpiresAt))
	assert.Equal(t, "token", decoded.Data[session.KeyCSRF])
	assert.Equal(t, now.Unix(), decoded.Data[session.KeyIDExpiration], "integers decode as int64")
	assert.Equal(t, map[string]any{"item": "book", "qty": int64(2)}, decoded.Data["cart"])
}

func TestRecord_CodecErrors(t *testing.T) {
	_, err := session.MarshalRecord(nil)
	assert.ErrorIs(t, err, session.ErrInvalidRecord)

	_, err = session.UnmarshalRecord([]byte("{not json"))
	assert.ErrorIs(t, err, session.ErrInvalidRecord)

	r, err := session.UnmarshalRecord([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, r.Data)
}

func TestRecord_IsExpired(t *testing.T) {
	now := time.Now()
	r := session.NewRecord(now, time.Minute)

	assert.False(t, r.IsExpired(now))
	assert.True(t, r.IsExpired(now.Add(2*time.Minute)))

	var zero session.Record
	assert.False(t, zero.IsExpired(now))
}

func TestRecord_Clone(t *testing.T) {
	r := session.NewRecord(time.Now(), time.Minute)
	r.Data["cart"] = map[string]any{"item": "book"}

	c := r.Clone()
	c.Data["cart"].(map[string]any)["item"] = "pen"
	c.Data["new"] = true

	assert.Equal(t, "book", r.Data["cart"].(map[string]any)["item"])
	assert.NotContains(t, r.Data, "new")

	var nilRecord *session.Record
	assert.Nil(t, nilRecord.Clone())
}

func TestRecord_CloneNested(t *testing.T) {
	r := session.NewRecord(time.Now(), time.Minute)
	r.Data["user"] = map[string]any{
		"prefs": map[string]any{"lang": "en"},
		"tags":  []any{"a", map[string]any{"k": "v"}},
		"roles": []string{"admin"},
	}

	c := r.Clone()
	user := c.Data["user"].(map[string]any)
	user["prefs"].(map[string]any)["lang"] = "de"
	user["tags"].([]any)[0] = "z"
	user["tags"].([]any)[1].(map[string]any)["k"] = "changed"
	user["roles"].([]string)[0] = "guest"

	orig := r.Data["user"].(map[string]any)
	assert.Equal(t, "en", orig["prefs"].(map[string]any)["lang"])
	assert.Equal(t, "a", orig["tags"].([]any)[0])
	assert.Equal(t, "v", orig["tags"].([]any)[1].(map[string]any)["k"])
	assert.Equal(t, []string{"admin"}, orig["roles"])
}
