// Command mailsend renders a template and sends a single email.
//
//	mailsend -config mailer.yaml -to user@example.com -subject Welcome \
//		-template welcome -data data.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrymomot/mailer/pkg/logger"
	"github.com/dmitrymomot/mailer/pkg/mailer"
	"github.com/dmitrymomot/mailer/pkg/mailer/dsn"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fset := flag.NewFlagSet("mailsend", flag.ContinueOnError)
	var (
		configPath = fset.String("config", "mailer.yaml", "path to the YAML config")
		to         = fset.String("to", "", "comma separated recipients")
		subject    = fset.String("subject", "", "message subject")
		template   = fset.String("template", "", "template name, without extension")
		dataPath   = fset.String("data", "", "JSON file with template data")
		htmlPath   = fset.String("html", "", "send this HTML file instead of rendering a template")
	)
	if err := fset.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log).With("app", "mailsend")

	transport, err := dsn.Open(cfg.TransportURL, dsn.WithLogger(log))
	if err != nil {
		return err
	}

	m, err := mailer.New(cfg.mailerConfig(transport), mailer.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error("close transport", "error", err)
		}
	}()

	msg, err := buildMessage(*to, *subject, *template, *dataPath, *htmlPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := m.Send(ctx, msg)
	if err != nil {
		log.Error("send failed", "error", err)
		return err
	}

	fmt.Println(res.MessageID)
	return nil
}

func buildMessage(to, subject, template, dataPath, htmlPath string) (*mailer.Message, error) {
	msg := &mailer.Message{
		Subject:  subject,
		Template: template,
	}
	for addr := range strings.SplitSeq(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			msg.To = append(msg.To, addr)
		}
	}
	if len(msg.To) == 0 {
		return nil, errNoRecipients
	}

	if dataPath != "" {
		raw, err := os.ReadFile(dataPath)
		if err != nil {
			return nil, fmt.Errorf("mailsend: read data: %w", err)
		}
		var data map[string]any
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("mailsend: parse data: %w", err)
		}
		msg.Context = data
	}

	if htmlPath != "" {
		raw, err := os.ReadFile(htmlPath)
		if err != nil {
			return nil, fmt.Errorf("mailsend: read html: %w", err)
		}
		msg.HTML = string(raw)
	}

	return msg, nil
}
