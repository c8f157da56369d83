// Package logger builds slog loggers for the mailer and its transports.
//
// Loggers created with New write JSON (or text) records to stdout and, when a
// Sentry DSN is configured, forward warnings and errors to Sentry as well.
// Sentry initialization failures fall back to stdout-only logging.
//
// Request-scoped attributes travel on the context:
//
//	ctx = logger.ContextWithAttrs(ctx, slog.String("template", "welcome"))
//	log.InfoContext(ctx, "mail sent")
//	// {"level":"INFO","msg":"mail sent","mail":{"template":"welcome"}}
//
// The mailer stores the transport name and template name this way, so
// transports logging with the send context get them for free. Additional
// ContextExtractor functions can be passed to New.
//
// Libraries default to NewNope, which discards everything.
package logger
