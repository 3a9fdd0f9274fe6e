package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstate/pkg/config"
	"github.com/dmitrymomot/sessionstate/pkg/session"
	"github.com/dmitrymomot/sessionstate/pkg/session/redisstore"
)

// unreachableClient points at a closed port so every command fails fast.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestStore_Key(t *testing.T) {
	client := unreachableClient(t)

	assert.Equal(t, "session:abc", redisstore.New(client).Key("abc"))
	assert.Equal(t, "app:sess:abc", redisstore.New(client, redisstore.WithKeyPrefix("app:sess:")).Key("abc"))

	cfg := redisstore.Config{KeyPrefix: "cfg:"}
	assert.Equal(t, "cfg:abc", redisstore.NewFromConfig(client, cfg).Key("abc"))
}

func TestStore_InputValidation(t *testing.T) {
	ctx := context.Background()
	store := redisstore.New(unreachableClient(t))

	_, err := store.Load(ctx, "")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	assert.ErrorIs(t, store.Save(ctx, "", session.NewRecord(time.Now(), time.Hour)), session.ErrInvalidRecord)
	assert.ErrorIs(t, store.Save(ctx, "id", nil), session.ErrInvalidRecord)
	assert.NoError(t, store.Delete(ctx, ""))
	assert.NoError(t, store.DeleteExpired(ctx))
}

func TestStore_ConnectionErrors(t *testing.T) {
	ctx := context.Background()
	store := redisstore.New(unreachableClient(t))

	_, err := store.Load(ctx, "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrSessionNotFound)

	assert.Error(t, store.Save(ctx, "abc", session.NewRecord(time.Now(), time.Hour)))

	_, err = store.Count(ctx)
	assert.Error(t, err)
}

func TestHealthcheck(t *testing.T) {
	err := redisstore.Healthcheck(unreachableClient(t))(context.Background())
	assert.ErrorIs(t, err, redisstore.ErrHealthcheckFailed)
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("empty url", func(t *testing.T) {
		_, err := redisstore.Connect(ctx, redisstore.Config{})
		assert.ErrorIs(t, err, redisstore.ErrEmptyConnectionURL)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := redisstore.Connect(ctx, redisstore.Config{ConnectionURL: "http://not-redis"})
		assert.ErrorIs(t, err, redisstore.ErrFailedToParseRedisConnString)
	})

	t.Run("server not ready", func(t *testing.T) {
		_, err := redisstore.Connect(ctx, redisstore.Config{
			ConnectionURL:  "redis://127.0.0.1:1/0?dial_timeout=50ms&max_retries=-1",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, redisstore.ErrRedisNotReady)
	})
}

func TestConfig_FromEnv(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("SESSION_REDIS_KEY_PREFIX", "app:")

	var cfg redisstore.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "redis://cache:6379/2", cfg.ConnectionURL)
	assert.Equal(t, "app:", cfg.KeyPrefix)
	assert.Equal(t, 1000, cfg.ScanBatchSize)
	assert.Equal(t, 3, cfg.RetryAttempts)
}
