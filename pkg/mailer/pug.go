package mailer

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/Joker/jade"
)

const pugExt = ".pug"

// pugRenderer renders <dir>/<template>.pug on every call; pug templates are not cached.
type pugRenderer struct {
	files *templateFiles
}

func (r *pugRenderer) render(_ context.Context, msg *Message) error {
	source, err := r.files.read(msg.Template, pugExt)
	if err != nil {
		return err
	}

	html, err := renderPug(r.files.path(msg.Template, pugExt), source, msg.Context)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	msg.HTML = html
	return nil
}

// renderPug converts pug source into an html/template and executes it with data.
func renderPug(name string, source []byte, data any) (string, error) {
	goTpl, err := jade.Parse(name, source)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(goTpl)
	if err != nil {
		return "", fmt.Errorf("compile %s: %w", name, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return sb.String(), nil
}
