package mailer

import "errors"

var (
	// ErrConfiguration indicates the mailer cannot be built from the given config:
	// the transport is missing or no engine or adapter was specified.
	ErrConfiguration = errors.New("invalid mailer configuration")

	// ErrUnsupportedEngine indicates the configured template engine is not known.
	ErrUnsupportedEngine = errors.New("unsupported template engine")

	// ErrTemplateNotFound indicates the template file was not found or could not be read.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrRenderFailed indicates template compilation or rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrNoTemplate indicates a message has neither HTML nor a template name.
	ErrNoTemplate = errors.New("message has no html body and no template name")
)
