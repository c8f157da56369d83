package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

const markdownExt = ".md"

// markdownRenderer renders <dir>/<template>.md: YAML frontmatter, a text/template
// body and goldmark conversion to HTML.
type markdownRenderer struct {
	files *templateFiles
	cache *templateCache
	md    goldmark.Markdown
}

func newMarkdownRenderer(files *templateFiles, cache *templateCache) *markdownRenderer {
	return &markdownRenderer{
		files: files,
		cache: cache,
		md: goldmark.New(
			goldmark.WithExtensions(NewButtonExtension()),
		),
	}
}

func (r *markdownRenderer) render(_ context.Context, msg *Message) error {
	key := templateKey(msg.Template)

	tpl, err := r.cache.getOrCompile(key, func() (*compiledTemplate, error) {
		return r.compile(key, msg.Template)
	})
	if err != nil {
		return err
	}

	// Precompiled entries only know how to produce HTML.
	if tpl.body == nil {
		html, err := tpl.render(msg.Context)
		if err != nil {
			return errors.Join(ErrRenderFailed, fmt.Errorf("execute %s: %w", key, err))
		}
		msg.HTML = html
		return nil
	}

	var processed bytes.Buffer
	if err := tpl.body.Execute(&processed, msg.Context); err != nil {
		return errors.Join(ErrRenderFailed, fmt.Errorf("execute %s: %w", key, err))
	}

	html, err := r.convert(processed.Bytes())
	if err != nil {
		return err
	}
	msg.HTML = html

	// Plain text = processed markdown (before HTML conversion)
	if msg.Text == "" {
		msg.Text = processed.String()
	}

	if msg.Subject == "" {
		if subject, ok := tpl.metadata["Subject"].(string); ok {
			processedSubject, err := processSubject(subject, msg.Context)
			if err != nil {
				return errors.Join(ErrRenderFailed, err)
			}
			msg.Subject = processedSubject
		}
	}

	return nil
}

func (r *markdownRenderer) compile(key, name string) (*compiledTemplate, error) {
	content, err := r.files.read(name, markdownExt)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseMarkdown(content)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, fmt.Errorf("%s: %w", key, err))
	}

	body, err := texttemplate.New(key).Parse(parsed.Body)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, fmt.Errorf("parse %s: %w", key, err))
	}

	return &compiledTemplate{metadata: parsed.Metadata, body: body}, nil
}

func (r *markdownRenderer) convert(source []byte) (string, error) {
	var out bytes.Buffer
	if err := r.md.Convert(source, &out); err != nil {
		return "", errors.Join(ErrRenderFailed, fmt.Errorf("convert markdown: %w", err))
	}
	return out.String(), nil
}

// processSubject renders a subject line as a template ({{.Variable}} syntax).
func processSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
