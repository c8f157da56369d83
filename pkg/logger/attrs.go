package logger

import (
	"context"
	"log/slog"
	"slices"
)

type attrsKey struct{}

// ContextWithAttrs returns a context carrying attrs in addition to any attrs
// already stored on ctx. Loggers built by this package add them to every
// record logged with that context.
func ContextWithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	existing, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return context.WithValue(ctx, attrsKey{}, append(slices.Clone(existing), attrs...))
}

// AttrsFromContext returns the attrs stored by ContextWithAttrs.
func AttrsFromContext(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}

// contextAttrs groups context-stored attributes under "mail".
func contextAttrs(ctx context.Context) (slog.Attr, bool) {
	attrs := AttrsFromContext(ctx)
	if len(attrs) == 0 {
		return slog.Attr{}, false
	}
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return slog.Group("mail", args...), true
}
