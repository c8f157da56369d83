// Package logtransport provides a mailer.Transport that logs messages instead of sending them.
// Useful for development and testing.
package logtransport

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailer/pkg/mailer"
)

// Transport writes every message to a slog.Logger.
type Transport struct {
	logger   *slog.Logger
	withBody bool
}

// Option configures the Transport.
type Option func(*Transport)

// WithBody includes the text (or HTML) body in the log record.
func WithBody() Option {
	return func(t *Transport) {
		t.withBody = true
	}
}

// New creates a log transport. A nil logger falls back to slog.Default().
func New(logger *slog.Logger, opts ...Option) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Transport{logger: logger}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name implements mailer.Transport.
func (t *Transport) Name() string { return "log" }

// Send implements mailer.Transport. It never fails.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	id := uuid.NewString()

	attrs := []any{
		slog.String("message_id", id),
		slog.String("from", msg.From),
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("attachments", len(msg.Attachments)),
	}
	if len(msg.CC) > 0 {
		attrs = append(attrs, slog.Any("cc", msg.CC))
	}
	if t.withBody {
		body := msg.Text
		if body == "" {
			body = msg.HTML
		}
		attrs = append(attrs, slog.String("body", body))
	}

	t.logger.InfoContext(ctx, "email (dev mode - not actually sent)", attrs...)

	return &mailer.SendResult{
		MessageID: id,
		Accepted:  msg.Recipients(),
		Response:  "logged",
	}, nil
}
