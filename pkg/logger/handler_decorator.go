package logger

import (
	"context"
	"log/slog"
)

// Redacted replaces the value of every attribute whose key is redacted.
const Redacted = "[REDACTED]"

// DefaultRedactedKeys are attribute keys that carry session credentials.
// "session_id" is absent: SessionID already logs a masked prefix.
var DefaultRedactedKeys = []string{"csrf", "csrf_token", "@csrf", "cookie", "token"}

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// SessionHandler wraps a slog.Handler. It appends attributes pulled from the
// record's context and scrubs credential values before delegating.
type SessionHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
	redact     map[string]struct{}
}

// NewSessionHandler wraps next. Nil extractors are dropped.
// With no redactKeys the handler scrubs DefaultRedactedKeys.
func NewSessionHandler(next slog.Handler, extractors []ContextExtractor, redactKeys ...string) *SessionHandler {
	h := &SessionHandler{next: next, redact: make(map[string]struct{})}
	for _, ex := range extractors {
		if ex != nil {
			h.extractors = append(h.extractors, ex)
		}
	}
	if len(redactKeys) == 0 {
		redactKeys = DefaultRedactedKeys
	}
	for _, k := range redactKeys {
		h.redact[k] = struct{}{}
	}
	return h
}

func (h *SessionHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle rebuilds the record with context attributes appended and
// credential values scrubbed, then hands it to the wrapped handler.
func (h *SessionHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.scrub(a))
		return true
	})
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			out.AddAttrs(h.scrub(attr))
		}
	}
	return h.next.Handle(ctx, out)
}

func (h *SessionHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	scrubbed := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		scrubbed[i] = h.scrub(a)
	}
	return &SessionHandler{
		next:       h.next.WithAttrs(scrubbed),
		extractors: h.extractors,
		redact:     h.redact,
	}
}

func (h *SessionHandler) WithGroup(name string) slog.Handler {
	return &SessionHandler{
		next:       h.next.WithGroup(name),
		extractors: h.extractors,
		redact:     h.redact,
	}
}

// scrub walks groups recursively.
func (h *SessionHandler) scrub(a slog.Attr) slog.Attr {
	if _, ok := h.redact[a.Key]; ok {
		return slog.String(a.Key, Redacted)
	}
	if a.Value.Kind() != slog.KindGroup {
		return a
	}
	group := a.Value.Group()
	cleaned := make([]slog.Attr, len(group))
	for i, ga := range group {
		cleaned[i] = h.scrub(ga)
	}
	return slog.Attr{Key: a.Key, Value: slog.GroupValue(cleaned...)}
}
