package resend

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailer/pkg/mailer"
)

// ErrInvalidConfig indicates the Resend configuration failed validation.
var ErrInvalidConfig = errors.New("resend: invalid config")

// Transport implements mailer.Transport using the Resend API.
type Transport struct {
	client *resend.Client
	config Config
}

// New creates a Resend transport.
func New(cfg Config) (*Transport, error) {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &Transport{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}, nil
}

// Name implements mailer.Transport.
func (t *Transport) Name() string { return "resend" }

// Send implements mailer.Transport.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	req := t.request(msg)

	resp, err := t.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("resend: failed to send email: %w", err)
	}

	return &mailer.SendResult{
		MessageID: resp.Id,
		Accepted:  msg.Recipients(),
	}, nil
}

func (t *Transport) request(msg *mailer.Message) *resend.SendEmailRequest {
	from := msg.From
	if from == "" {
		from = mailer.Recipient(t.config.SenderName, t.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
		Cc:      msg.CC,
		Bcc:     msg.BCC,
		Headers: msg.Headers,
	}

	if len(msg.Attachments) > 0 {
		req.Attachments = make([]*resend.Attachment, len(msg.Attachments))
		for i, a := range msg.Attachments {
			req.Attachments[i] = &resend.Attachment{
				Filename:    a.Filename,
				Content:     a.Content,
				ContentType: a.ContentType,
				ContentId:   a.ContentID,
			}
		}
	}

	if len(msg.Tags) > 0 {
		req.Tags = make([]resend.Tag, 0, len(msg.Tags))
		for name, value := range msg.Tags {
			req.Tags = append(req.Tags, resend.Tag{Name: name, Value: tagValue(value)})
		}
	}

	return req
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
