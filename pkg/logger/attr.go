package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// idPrefixLen is how much of a session identifier ends up in logs.
// Full identifiers are bearer credentials and must not be logged.
const idPrefixLen = 6

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// SessionName records the logical session name under the key "session_name".
func SessionName(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("session_name", name)
}

// SessionID records a masked session identifier under the key "session_id".
// Only the first few characters are kept.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	if len(id) > idPrefixLen {
		id = id[:idPrefixLen] + "***"
	}
	return slog.String("session_id", id)
}

// ParamGroup records a session parameter group name under the key "param_group".
func ParamGroup(name string) slog.Attr {
	return slog.String("param_group", name)
}

// RecordID records the stable record identifier under the key "record_id".
// If id is nil, it returns an empty Attr.
func RecordID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("record_id", id)
}

// Phase records a session lifecycle phase under the key "phase".
func Phase(phase string) slog.Attr {
	return slog.String("phase", phase)
}

// Expiry records an expiration time under the key "expires_at".
func Expiry(t time.Time) slog.Attr {
	if t.IsZero() {
		return slog.Attr{}
	}
	return slog.Time("expires_at", t)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Store records the store implementation under the key "store".
func Store(name string) slog.Attr {
	return slog.String("store", name)
}

// Count records a number of affected items under the key "count".
func Count(n int64) slog.Attr {
	return slog.Int64("count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
