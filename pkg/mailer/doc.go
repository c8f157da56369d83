// Package mailer is an email facade: it renders a template into the message
// body and hands the message to a pluggable transport.
//
// # Architecture
//
// The package consists of three parts:
//
//   - Transport: interface implemented by delivery backends (smtp, resend, log, redisqueue)
//   - Render adapter: one per Mailer, chosen at construction (pug, handlebars, markdown or custom)
//   - Mailer: merges defaults, runs the plugin pipeline and calls the transport
//
// # Usage
//
//	import (
//		"context"
//
//		"github.com/dmitrymomot/mailer/pkg/mailer"
//		"github.com/dmitrymomot/mailer/pkg/mailer/smtp"
//	)
//
//	func main() {
//		transport, err := smtp.New(smtp.Config{
//			Host:    "smtp.example.com",
//			Port:    587,
//			TLSMode: smtp.TLSModeStartTLS,
//		})
//		if err != nil {
//			panic(err)
//		}
//
//		m, err := mailer.New(mailer.Config{
//			Transport:       transport,
//			Defaults:        &mailer.Message{From: "Team <team@example.com>"},
//			TemplateDir:     "./public/templates",
//			TemplateOptions: &mailer.TemplateOptions{Engine: "handlebars"},
//		})
//		if err != nil {
//			panic(err)
//		}
//
//		res, err := m.Send(context.Background(), &mailer.Message{
//			To:       []string{"user@example.com"},
//			Subject:  "Welcome",
//			Template: "welcome", // ./public/templates/welcome.hbs
//			Context:  map[string]any{"name": "John"},
//		})
//		if err != nil {
//			panic(err)
//		}
//		_ = res.MessageID
//	}
//
// # Template Engines
//
// TemplateOptions.Engine selects a built-in engine (case-insensitive):
//
//   - "pug" (default): <dir>/<template>.pug, converted with Joker/jade, read on every send
//   - "handlebars": <dir>/<template>.hbs, compiled with raymond and cached by name
//   - "markdown": <dir>/<template>.md with YAML frontmatter, cached by name
//
// Pug templates compile to html/template, so context values are referenced
// with a leading dot:
//
//	p Hello #{.name}
//
// A bare #{name} is parsed as a function call and fails to render.
//
// TemplateOptions.EngineAdapter replaces the built-in engines entirely and takes
// precedence over Engine. PrecompiledTemplates seeds the cache so that the named
// templates are never read from disk.
//
// A message that already carries HTML is sent as is: no file is read and no
// engine runs.
//
// # Plugins
//
// Rendering is a plugin on the "compile" step. Further plugins can be added for
// the "compile" and "stream" steps with WithPlugin or Mailer.Use; any plugin
// error aborts the send before the transport is called. Config.TextFromHTML
// installs a stream plugin that derives the plain text body from HTML.
//
// # Errors
//
//   - ErrConfiguration: no transport, or neither engine nor adapter configured
//   - ErrUnsupportedEngine: unknown engine name
//   - ErrRenderFailed: template missing, invalid or failing to execute
//   - ErrTemplateNotFound: template file missing or unreadable (joined with ErrRenderFailed)
//   - ErrInvalidFrontmatter: invalid markdown frontmatter
//
// Transport errors are returned unchanged.
package mailer
