package mailer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// TemplateFunc is a compiled template: it renders data into a body.
type TemplateFunc func(data any) (string, error)

// EngineAdapter renders msg in place, typically by setting msg.HTML.
// It receives the configured template directory and is called only when
// msg.HTML is empty.
type EngineAdapter func(ctx context.Context, templateDir string, msg *Message) error

// renderStrategy is the render step installed at construction time.
type renderStrategy interface {
	render(ctx context.Context, msg *Message) error
}

// newRenderer resolves the render strategy from template options.
// A custom adapter takes precedence over the engine name.
func newRenderer(dir string, opts *TemplateOptions, fsys fs.FS, cache *templateCache, compiler Compiler) (renderStrategy, error) {
	if opts.EngineAdapter != nil {
		return &adapterRenderer{dir: dir, adapter: opts.EngineAdapter}, nil
	}

	if opts.Engine == "" {
		return nil, fmt.Errorf("%w: could not find template engine or adapter", ErrConfiguration)
	}

	files := &templateFiles{fsys: fsys, dir: dir}

	switch engine := strings.ToLower(opts.Engine); engine {
	case EngineHandlebars:
		return &handlebarsRenderer{files: files, cache: cache, compile: compiler}, nil
	case EnginePug:
		return &pugRenderer{files: files}, nil
	case EngineMarkdown:
		return newMarkdownRenderer(files, cache), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEngine, engine)
	}
}

// adapterRenderer delegates to a user supplied EngineAdapter.
type adapterRenderer struct {
	adapter EngineAdapter
	dir     string
}

func (r *adapterRenderer) render(ctx context.Context, msg *Message) error {
	if err := r.adapter(ctx, r.dir, msg); err != nil {
		return errors.Join(ErrRenderFailed, err)
	}
	return nil
}

// templateFiles resolves and reads template files.
type templateFiles struct {
	fsys fs.FS
	dir  string
}

// path returns <dir>/<name><ext>.
func (f *templateFiles) path(name, ext string) string {
	return path.Join(filepath.ToSlash(f.dir), name+ext)
}

// read loads the template source for name.
// Missing or unreadable files are reported as ErrTemplateNotFound.
func (f *templateFiles) read(name, ext string) ([]byte, error) {
	if name == "" {
		return nil, errors.Join(ErrRenderFailed, ErrNoTemplate)
	}

	p := f.path(name, ext)
	content, err := fs.ReadFile(f.fsys, p)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, p, err))
	}
	return content, nil
}

// templateKey strips the extension from a template name: "welcome.hbs" -> "welcome".
func templateKey(name string) string {
	base := path.Base(filepath.ToSlash(name))
	return strings.TrimSuffix(base, path.Ext(base))
}

// osFS reads files straight from the OS so that relative and absolute
// template directories both work.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(filepath.FromSlash(name))
}

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(name))
}
