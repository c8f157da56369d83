package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/aymerick/raymond"
)

const handlebarsExt = ".hbs"

// Compiler turns template source into a reusable TemplateFunc.
type Compiler func(name, source string) (TemplateFunc, error)

// HandlebarsCompiler compiles handlebars source with raymond.
func HandlebarsCompiler(name, source string) (TemplateFunc, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return func(data any) (string, error) {
		return tpl.Exec(data)
	}, nil
}

// handlebarsRenderer renders <dir>/<template>.hbs, caching compiled templates by name.
type handlebarsRenderer struct {
	files   *templateFiles
	cache   *templateCache
	compile Compiler
}

func (r *handlebarsRenderer) render(_ context.Context, msg *Message) error {
	key := templateKey(msg.Template)

	tpl, err := r.cache.getOrCompile(key, func() (*compiledTemplate, error) {
		source, err := r.files.read(msg.Template, handlebarsExt)
		if err != nil {
			return nil, err
		}
		fn, err := r.compile(key, string(source))
		if err != nil {
			return nil, errors.Join(ErrRenderFailed, err)
		}
		return &compiledTemplate{render: fn}, nil
	})
	if err != nil {
		return err
	}

	html, err := tpl.render(msg.Context)
	if err != nil {
		return errors.Join(ErrRenderFailed, fmt.Errorf("execute %s: %w", key, err))
	}

	msg.HTML = html
	return nil
}
