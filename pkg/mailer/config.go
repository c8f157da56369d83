package mailer

// DefaultTemplateDir is used when Config.TemplateDir is empty.
const DefaultTemplateDir = "./public/templates"

// Supported built-in template engines.
const (
	EnginePug        = "pug"
	EngineHandlebars = "handlebars"
	EngineMarkdown   = "markdown"
)

// Config holds mailer configuration.
// Scalar fields carry env tags for parsing with caarlos0/env; Transport and the
// function-valued template options must be set in code.
type Config struct {
	// Transport delivers composed messages. Required.
	Transport Transport `env:"-"`

	// Defaults are merged into every outgoing message.
	Defaults *Message `env:"-"`

	// TemplateOptions selects the render adapter. Nil means the pug engine.
	TemplateOptions *TemplateOptions `env:"-"`

	// TemplateDir is the base directory for template files.
	TemplateDir string `env:"MAILER_TEMPLATE_DIR" envDefault:"./public/templates"`

	// TextFromHTML fills an empty Text body with the tag-stripped HTML.
	TextFromHTML bool `env:"MAILER_TEXT_FROM_HTML" envDefault:"false"`
}

// TemplateOptions configures template rendering.
type TemplateOptions struct {
	// EngineAdapter overrides the built-in engines when set,
	// even if Engine is also configured.
	EngineAdapter EngineAdapter `env:"-"`

	// PrecompiledTemplates seeds the compiled template cache, keyed by template name.
	PrecompiledTemplates map[string]TemplateFunc `env:"-"`

	// Engine is one of "pug", "handlebars" or "markdown" (case-insensitive).
	Engine string `env:"MAILER_TEMPLATE_ENGINE" envDefault:"pug"`
}
