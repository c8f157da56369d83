package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/textproto"
	"strings"

	"github.com/spf13/viper"

	"github.com/dmitrymomot/mailer/pkg/logger"
	"github.com/dmitrymomot/mailer/pkg/mailer"
)

// envPrefix namespaces environment overrides: MAILSEND_TRANSPORT_URL,
// MAILSEND_LOG_LEVEL, and so on.
const envPrefix = "MAILSEND"

// config is the YAML file read by mailsend.
type config struct {
	Log          logger.Config
	Defaults     defaultsConfig
	TransportURL string
	TemplateDir  string
	Engine       string
	TextFromHTML bool
}

type defaultsConfig struct {
	Headers map[string]string
	From    string
	ReplyTo string
	BCC     []string
}

var (
	errNoTransport  = errors.New("mailsend: transport_url is required")
	errNoRecipients = errors.New("mailsend: -to is required")
)

// loadConfig reads the config file; the type is inferred from its extension.
func loadConfig(pathFile string) (*config, error) {
	v := newViper()
	v.SetConfigFile(pathFile)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("mailsend: read config: %w", err)
	}
	return fromViper(v)
}

// parseConfig reads a YAML config from memory.
func parseConfig(raw []byte) (*config, error) {
	v := newViper()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("mailsend: parse config: %w", err)
	}
	return fromViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("engine", mailer.EnginePug)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.sentry_environment", "production")
	return v
}

func fromViper(v *viper.Viper) (*config, error) {
	cfg := &config{
		Log: logger.Config{
			Level:             v.GetString("log.level"),
			Format:            v.GetString("log.format"),
			SentryDSN:         v.GetString("log.sentry_dsn"),
			SentryEnvironment: v.GetString("log.sentry_environment"),
		},
		Defaults: defaultsConfig{
			Headers: canonicalHeaders(v.GetStringMapString("defaults.headers")),
			From:    v.GetString("defaults.from"),
			ReplyTo: v.GetString("defaults.reply_to"),
			BCC:     v.GetStringSlice("defaults.bcc"),
		},
		TransportURL: v.GetString("transport_url"),
		TemplateDir:  v.GetString("template_dir"),
		Engine:       v.GetString("engine"),
		TextFromHTML: v.GetBool("text_from_html"),
	}

	if cfg.TransportURL == "" {
		return nil, errNoTransport
	}
	return cfg, nil
}

// canonicalHeaders restores header case; viper lower-cases map keys.
func canonicalHeaders(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, val := range in {
		out[textproto.CanonicalMIMEHeaderKey(k)] = val
	}
	return out
}

func (c *config) mailerConfig(t mailer.Transport) mailer.Config {
	return mailer.Config{
		Transport: t,
		Defaults: &mailer.Message{
			From:    c.Defaults.From,
			ReplyTo: c.Defaults.ReplyTo,
			BCC:     c.Defaults.BCC,
			Headers: c.Defaults.Headers,
		},
		TemplateOptions: &mailer.TemplateOptions{Engine: c.Engine},
		TemplateDir:     c.TemplateDir,
		TextFromHTML:    c.TextFromHTML,
	}
}
