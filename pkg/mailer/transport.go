package mailer

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/mailer/pkg/logger"
)

// Transport defines the minimal interface that delivery backends must implement.
// It accepts a fully-prepared Message and handles the actual delivery.
type Transport interface {
	// Name identifies the transport in logs (e.g., "smtp", "resend").
	Name() string

	// Send delivers a message and reports the backend's result.
	// The Message has HTML already rendered.
	Send(ctx context.Context, msg *Message) (*SendResult, error)
}

// Step names a stage of the send pipeline that plugins attach to.
type Step string

const (
	// StepCompile runs first; template rendering is installed here.
	StepCompile Step = "compile"
	// StepStream runs after compile, right before the transport.
	StepStream Step = "stream"
)

// Plugin processes a message in place before delivery.
// A non-nil error aborts the send; the transport is not called.
type Plugin func(ctx context.Context, msg *Message) error

// transporter wraps a Transport with message defaults and a plugin pipeline.
type transporter struct {
	transport Transport
	defaults  *Message
	plugins   map[Step][]Plugin
	logger    *slog.Logger
}

func newTransporter(t Transport, defaults *Message, log *slog.Logger) *transporter {
	return &transporter{
		transport: t,
		defaults:  defaults,
		plugins:   make(map[Step][]Plugin),
		logger:    log,
	}
}

// use appends a plugin to the given step.
func (t *transporter) use(step Step, p Plugin) {
	if p == nil {
		return
	}
	t.plugins[step] = append(t.plugins[step], p)
}

// send clones msg, merges defaults, runs plugins and hands the result to the transport.
// Transport errors are returned unchanged.
func (t *transporter) send(ctx context.Context, msg *Message) (*SendResult, error) {
	mail := msg.clone()
	mail.applyDefaults(t.defaults)

	ctx = logger.ContextWithAttrs(ctx, slog.String("transport", t.transport.Name()))
	if mail.Template != "" {
		ctx = logger.ContextWithAttrs(ctx, slog.String("template", mail.Template))
	}

	for _, step := range []Step{StepCompile, StepStream} {
		for _, p := range t.plugins[step] {
			if err := p(ctx, mail); err != nil {
				t.logger.ErrorContext(ctx, "mail plugin failed",
					slog.String("step", string(step)),
					slog.Any("error", err),
				)
				return nil, err
			}
		}
	}

	result, err := t.transport.Send(ctx, mail)
	if err != nil {
		t.logger.ErrorContext(ctx, "mail delivery failed", slog.Any("error", err))
		return nil, err
	}

	attrs := []any{slog.Int("recipients", len(mail.Recipients()))}
	if result != nil {
		attrs = append(attrs, slog.String("message_id", result.MessageID))
	}
	t.logger.DebugContext(ctx, "mail sent", attrs...)

	return result, nil
}

func (t *transporter) close() error {
	if c, ok := t.transport.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
