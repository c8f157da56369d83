// Package templadapter renders mail bodies from templ components.
//
// Components are registered by template name and looked up by Message.Template:
//
//	adapter := templadapter.New(map[string]templadapter.ComponentFunc{
//		"welcome": func(data any) templ.Component {
//			return views.Welcome(data.(views.WelcomeData))
//		},
//	})
//
//	m, err := mailer.New(mailer.Config{
//		Transport:       transport,
//		TemplateOptions: &mailer.TemplateOptions{EngineAdapter: adapter},
//	})
package templadapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailer/pkg/mailer"
)

// ComponentFunc builds a component from the message context.
type ComponentFunc func(data any) templ.Component

// New returns a mailer.EngineAdapter that renders msg.Template with the
// matching component. The template directory is ignored.
func New(components map[string]ComponentFunc) mailer.EngineAdapter {
	return func(ctx context.Context, _ string, msg *mailer.Message) error {
		if msg.Template == "" {
			return mailer.ErrNoTemplate
		}

		build, ok := components[msg.Template]
		if !ok {
			return fmt.Errorf("%w: component %q", mailer.ErrTemplateNotFound, msg.Template)
		}

		html, err := Render(ctx, build(msg.Context))
		if err != nil {
			return fmt.Errorf("templadapter: render %q: %w", msg.Template, err)
		}

		msg.HTML = html
		return nil
	}
}

// Render renders a component to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
