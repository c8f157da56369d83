package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/mailer/pkg/logger"
)

// Mailer renders templates into outgoing messages and hands them to a Transport.
// It is safe for concurrent use.
type Mailer struct {
	transporter *transporter
	renderer    renderStrategy
	templates   *templateCache
	logger      *slog.Logger
	templateDir string
}

// New creates a Mailer from cfg.
// It fails with ErrConfiguration if no transport is set or no engine/adapter is
// configured, and with ErrUnsupportedEngine for an unknown engine name.
func New(cfg Config, opts ...Option) (*Mailer, error) {
	if cfg.Transport == nil {
		return nil, fmt.Errorf("%w: provide a transport instance", ErrConfiguration)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.NewNope()
	}

	templateDir := cfg.TemplateDir
	if templateDir == "" {
		templateDir = DefaultTemplateDir
	}

	templateOpts := cfg.TemplateOptions
	if templateOpts == nil {
		templateOpts = &TemplateOptions{Engine: EnginePug}
	}

	cache := newTemplateCache(templateOpts.PrecompiledTemplates)

	r, err := newRenderer(templateDir, templateOpts, o.fsys, cache, o.compiler)
	if err != nil {
		return nil, err
	}

	m := &Mailer{
		transporter: newTransporter(cfg.Transport, cfg.Defaults, o.logger),
		renderer:    r,
		templates:   cache,
		logger:      o.logger,
		templateDir: templateDir,
	}

	m.transporter.use(StepCompile, m.compile)
	if cfg.TextFromHTML {
		m.transporter.use(StepStream, textFromHTML)
	}
	for _, p := range o.plugins {
		m.transporter.use(p.step, p.plugin)
	}

	return m, nil
}

// Send renders msg (unless it already has HTML) and delivers it through the transport.
// msg itself is not modified. Render errors wrap ErrRenderFailed and abort the send
// before the transport is called; transport errors are returned unchanged.
func (m *Mailer) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	if msg == nil {
		msg = &Message{}
	}
	return m.transporter.send(ctx, msg)
}

// Use registers an additional plugin for a pipeline step.
// Register plugins before the first Send; Use is not safe to call concurrently with Send.
func (m *Mailer) Use(step Step, p Plugin) {
	m.transporter.use(step, p)
}

// TemplateDir returns the directory templates are resolved against.
func (m *Mailer) TemplateDir() string {
	return m.templateDir
}

// Close releases the transport if it holds resources.
func (m *Mailer) Close() error {
	return m.transporter.close()
}

// compile is the render step: a no-op when HTML is already present.
func (m *Mailer) compile(ctx context.Context, msg *Message) error {
	if msg.HTML != "" {
		return nil
	}

	if err := m.renderer.render(ctx, msg); err != nil {
		return err
	}

	m.logger.DebugContext(ctx, "mail template rendered",
		slog.Int("html_bytes", len(msg.HTML)),
		slog.Int("cached_templates", m.templates.size()),
	)
	return nil
}
