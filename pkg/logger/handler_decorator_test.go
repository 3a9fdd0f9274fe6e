package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstate/pkg/logger"
)

func newJSONSessionLogger(buf *bytes.Buffer, extractors []logger.ContextExtractor, keys ...string) *slog.Logger {
	return slog.New(logger.NewSessionHandler(slog.NewJSONHandler(buf, nil), extractors, keys...))
}

func TestSessionHandler_RedactsDefaults(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newJSONSessionLogger(buf, nil)

	log.Info("commit", slog.String("csrf", "secret-token"), slog.String("phase", "committed"))

	entry := decodeLine(t, buf)
	assert.Equal(t, logger.Redacted, entry["csrf"])
	assert.Equal(t, "committed", entry["phase"])
	assert.NotContains(t, buf.String(), "secret-token")
}

func TestSessionHandler_RedactsNestedGroups(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newJSONSessionLogger(buf, nil)

	log.Info("load", logger.Group("params", slog.String("@csrf", "abc"), slog.Int("n", 1)))

	entry := decodeLine(t, buf)
	group, ok := entry["params"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, logger.Redacted, group["@csrf"])
	assert.EqualValues(t, 1, group["n"])
}

func TestSessionHandler_RedactsWithAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newJSONSessionLogger(buf, nil, "secret").With(slog.String("secret", "s3"))

	log.WithGroup("g").Info("msg", slog.String("token", "kept"))

	entry := decodeLine(t, buf)
	assert.Equal(t, logger.Redacted, entry["secret"])
	group, ok := entry["g"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "kept", group["token"], "custom keys replace the defaults")
}

func TestSessionHandler_Extractors(t *testing.T) {
	buf := &bytes.Buffer{}
	extract := func(context.Context) (slog.Attr, bool) {
		return logger.Group("session", slog.String("csrf", "leak")), true
	}
	log := newJSONSessionLogger(buf, []logger.ContextExtractor{nil, extract})

	log.InfoContext(context.Background(), "msg")

	entry := decodeLine(t, buf)
	group, ok := entry["session"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, logger.Redacted, group["csrf"])
}

func TestSessionHandler_Enabled(t *testing.T) {
	next := slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	h := logger.NewSessionHandler(next, nil)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}
