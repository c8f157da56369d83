package mailer

import (
	"io/fs"
	"log/slog"
)

// Option configures the Mailer.
type Option func(*options)

type options struct {
	fsys     fs.FS
	compiler Compiler
	logger   *slog.Logger
	plugins  []stepPlugin
}

type stepPlugin struct {
	plugin Plugin
	step   Step
}

func defaultOptions() *options {
	return &options{
		fsys:     osFS{},
		compiler: HandlebarsCompiler,
	}
}

// WithLogger sets the logger for render and delivery events.
// Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFileSystem sets the filesystem templates are read from.
// Paths are resolved as path.Join(TemplateDir, name+ext) inside fsys.
// Default: the OS filesystem relative to the working directory.
func WithFileSystem(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithCompiler replaces the handlebars compiler.
// Default: HandlebarsCompiler.
func WithCompiler(c Compiler) Option {
	return func(o *options) {
		if c != nil {
			o.compiler = c
		}
	}
}

// WithPlugin registers a plugin for the given pipeline step.
// Plugins run after the built-in ones of the same step, in registration order.
func WithPlugin(step Step, p Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, stepPlugin{step: step, plugin: p})
	}
}
