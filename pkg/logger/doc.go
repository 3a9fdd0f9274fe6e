// Package logger builds log/slog loggers for session-aware services.
//
// New wraps a text or JSON handler in a SessionHandler. The handler appends
// attributes produced by registered ContextExtractor functions and replaces
// credential values (CSRF tokens, cookies, raw tokens) with Redacted before
// anything reaches the output.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "web"),
//	    logger.WithContextExtractors(session.LoggerExtractor()),
//	    logger.WithRedactedKeys("api_key"),
//	)
//	slog.SetDefault(log)
//
//	log.InfoContext(ctx, "session committed",
//	    logger.SessionName(sess.Name()),
//	    logger.SessionID(sess.ID()),
//	)
//
// Config loads the same settings from SERVICE_NAME, APP_ENV, LOG_LEVEL,
// LOG_FORMAT and LOG_REDACT_KEYS; pass it to NewFromConfig.
//
// # Attributes
//
// Error and Errors only produce attributes for non-nil errors, so
//
//	log.Info("operation finished", logger.Error(err))
//
// needs no nil check. SessionID keeps only the first characters of an
// identifier.
package logger
