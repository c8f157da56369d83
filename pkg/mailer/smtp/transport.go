package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrymomot/mailer/pkg/mailer"
)

// Transport is a mailer.Transport backed by net/smtp.
// Each Send opens its own connection.
type Transport struct {
	config Config
	addr   string
	auth   smtp.Auth
	now    func() time.Time
}

// New validates cfg and constructs an SMTP transport.
func New(cfg Config) (*Transport, error) {
	if cfg.TLSMode == "" {
		cfg.TLSMode = TLSModeStartTLS
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &Transport{
		config: cfg,
		addr:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		auth:   auth,
		now:    time.Now,
	}, nil
}

// Name implements mailer.Transport.
func (t *Transport) Name() string { return "smtp" }

// Send implements mailer.Transport.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recipients := msg.Recipients()
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	from := msg.From
	if from == "" {
		from = t.config.From
	}
	if from == "" {
		return nil, ErrNoSender
	}

	envelopeFrom, err := addressOf(from)
	if err != nil {
		return nil, fmt.Errorf("smtp: invalid sender %q: %w", from, err)
	}
	envelopeTo := make([]string, len(recipients))
	for i, r := range recipients {
		if envelopeTo[i], err = addressOf(r); err != nil {
			return nil, fmt.Errorf("smtp: invalid recipient %q: %w", r, err)
		}
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), t.config.Host)
	raw, err := buildMessage(msg, from, messageID, t.now())
	if err != nil {
		return nil, fmt.Errorf("smtp: build message: %w", err)
	}

	if err := t.deliver(ctx, envelopeFrom, envelopeTo, raw); err != nil {
		return nil, err
	}

	return &mailer.SendResult{
		MessageID: messageID,
		Accepted:  recipients,
		Response:  "250 OK",
	}, nil
}

func (t *Transport) deliver(ctx context.Context, from string, to []string, raw []byte) error {
	tlsConfig := &tls.Config{
		ServerName:         t.config.Host,
		InsecureSkipVerify: t.config.InsecureSkipVerify, //nolint:gosec // opt-in for local relays
	}

	dialer := &net.Dialer{}
	var conn net.Conn
	var err error
	if t.config.TLSMode == TLSModeTLS {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", t.addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", t.addr)
	}
	if err != nil {
		return fmt.Errorf("smtp: dial %s: %w", t.addr, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, t.config.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp: handshake: %w", err)
	}
	defer c.Close()

	if t.config.TLSMode == TLSModeStartTLS {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			return fmt.Errorf("%w: %s", ErrStartTLSUnsupported, t.addr)
		}
		if err := c.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("smtp: starttls: %w", err)
		}
	}

	if t.auth != nil {
		if err := c.Auth(t.auth); err != nil {
			return fmt.Errorf("smtp: auth: %w", err)
		}
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp: mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp: rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp: data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("smtp: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: data close: %w", err)
	}

	return c.Quit()
}

// addressOf extracts the bare address from "Name <addr>" forms.
func addressOf(s string) (string, error) {
	a, err := mail.ParseAddress(s)
	if err != nil {
		return "", err
	}
	return a.Address, nil
}
